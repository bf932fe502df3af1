package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/Abdurahmanit/GroupProject/wanderlust/internal/domain"
	"github.com/Abdurahmanit/GroupProject/wanderlust/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/wanderlust/internal/platform/metrics"
	"github.com/Abdurahmanit/GroupProject/wanderlust/internal/session"
	"go.uber.org/zap"
)

// UserFinder resolves the user id stored in a session.
type UserFinder interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
}

// LoadUser puts the session's user into the request context. A session that
// names a user who no longer exists is logged out.
func LoadUser(users UserFinder, log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			st := session.FromContext(r.Context())
			if !st.IsAuthenticated() {
				next.ServeHTTP(w, r)
				return
			}
			user, err := users.GetByID(r.Context(), st.UserID())
			if err != nil {
				if !errors.Is(err, domain.ErrUserNotFound) {
					log.Error("Failed to resolve session user", zap.String("user_id", st.UserID()), zap.Error(err))
				}
				st.Logout()
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithCurrentUser(r.Context(), user)))
		})
	}
}

// RequireAuth sends anonymous visitors to the login page. With remember set,
// the requested path of a GET is stored so login can return there. Routes that
// act instead of render, like /logout, pass false.
func RequireAuth(m *metrics.MetricsManager, remember bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if CurrentUser(r.Context()) != nil {
				next.ServeHTTP(w, r)
				return
			}
			st := session.FromContext(r.Context())
			if remember && r.Method == http.MethodGet {
				st.SetRedirectURL(r.URL.RequestURI())
			}
			m.GuardDenied("auth")
			deny(w, r, "You must be logged in first!", "/login")
		})
	}
}

// SaveRedirectURL exposes the stored post-login target to the login handler.
func SaveRedirectURL(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		target := session.FromContext(r.Context()).RedirectURL()
		if target == "" {
			next.ServeHTTP(w, r)
			return
		}
		ctx := context.WithValue(r.Context(), RedirectURLCtxKey, target)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func deny(w http.ResponseWriter, r *http.Request, message, target string) {
	session.FromContext(r.Context()).AddFlash(session.FlashError, message)
	http.Redirect(w, r, target, http.StatusFound)
}
