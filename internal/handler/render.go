package handler

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"

	"github.com/Abdurahmanit/GroupProject/wanderlust/internal/domain"
	"github.com/Abdurahmanit/GroupProject/wanderlust/internal/middleware"
	"github.com/Abdurahmanit/GroupProject/wanderlust/internal/session"
)

//go:embed templates static
var assets embed.FS

// StaticFS is the embedded stylesheet directory.
func StaticFS() fs.FS {
	sub, err := fs.Sub(assets, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

var pages = []string{
	"listings/index.html",
	"listings/new.html",
	"listings/show.html",
	"listings/edit.html",
	"users/signup.html",
	"users/login.html",
	"error.html",
}

// pageData is what every template receives.
type pageData struct {
	Title       string
	Message     string
	CurrentUser *domain.User
	Success     []string
	Errors      []string

	Listings []*domain.Listing
	Listing  *domain.Listing
	Detail   *domain.ListingDetail
}

// Renderer executes a page inside the shared layout.
type Renderer struct {
	templates map[string]*template.Template
}

func NewRenderer() (*Renderer, error) {
	funcs := template.FuncMap{
		"price": func(p float64) string {
			return formatPrice(p)
		},
		"stars": func(n int) string {
			if n < 0 {
				n = 0
			}
			if n > 5 {
				n = 5
			}
			return strings.Repeat("★", n) + strings.Repeat("☆", 5-n)
		},
		"listingPath": middleware.ListingPath,
	}

	r := &Renderer{templates: make(map[string]*template.Template, len(pages))}
	for _, page := range pages {
		t, err := template.New("layout.html").Funcs(funcs).ParseFS(assets, "templates/layout.html", "templates/"+page)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", page, err)
		}
		r.templates[page] = t
	}
	return r, nil
}

// Page renders page with status. Pending flash messages are consumed.
func (rd *Renderer) Page(w http.ResponseWriter, r *http.Request, status int, page string, data pageData) {
	t, ok := rd.templates[page]
	if !ok {
		http.Error(w, "template not found: "+page, http.StatusInternalServerError)
		return
	}
	data.CurrentUser = middleware.CurrentUser(r.Context())
	flashes := session.FromContext(r.Context()).Flashes()
	data.Success = flashes[session.FlashSuccess]
	data.Errors = flashes[session.FlashError]

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout.html", data); err != nil {
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// formatPrice renders p with thousands separators, e.g. 12,500.
func formatPrice(p float64) string {
	s := fmt.Sprintf("%.0f", p)
	if p != float64(int64(p)) {
		s = fmt.Sprintf("%.2f", p)
	}
	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}
	var b strings.Builder
	for i, c := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	return b.String() + frac
}
