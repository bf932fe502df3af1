package middleware

import (
	"mime"
	"net/http"
	"strings"
)

const methodOverrideParam = "_method"

// MethodOverride lets HTML forms reach PUT and DELETE routes. A POST carrying
// _method in the query string, or in a urlencoded body, is rerouted.
func MethodOverride(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			override := r.URL.Query().Get(methodOverrideParam)
			if override == "" && isURLEncoded(r) {
				override = r.PostFormValue(methodOverrideParam)
			}
			switch strings.ToUpper(override) {
			case http.MethodPut:
				r.Method = http.MethodPut
			case http.MethodDelete:
				r.Method = http.MethodDelete
			case http.MethodPatch:
				r.Method = http.MethodPatch
			}
		}
		next.ServeHTTP(w, r)
	})
}

func isURLEncoded(r *http.Request) bool {
	ct, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && ct == "application/x-www-form-urlencoded"
}
