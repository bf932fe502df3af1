// Package session keeps per-visitor state server side. The browser holds a
// signed cookie naming the session; the session itself lives in the store.
package session

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/Abdurahmanit/GroupProject/wanderlust/internal/domain"
	"github.com/Abdurahmanit/GroupProject/wanderlust/internal/platform/logger"
	"go.uber.org/zap"
)

const DefaultCookieName = "wanderlust.sid"

type Options struct {
	Secret     string
	TTL        time.Duration
	TouchAfter time.Duration
	CookieName string
	Secure     bool
}

// Manager loads and commits sessions around each request.
type Manager struct {
	store      domain.SessionRepository
	secret     []byte
	ttl        time.Duration
	touchAfter time.Duration
	cookieName string
	secure     bool
	logger     *logger.Logger
	now        func() time.Time
}

func NewManager(store domain.SessionRepository, opts Options, log *logger.Logger) *Manager {
	if opts.TTL <= 0 {
		opts.TTL = 7 * 24 * time.Hour
	}
	if opts.TouchAfter <= 0 {
		opts.TouchAfter = 24 * time.Hour
	}
	if opts.CookieName == "" {
		opts.CookieName = DefaultCookieName
	}
	return &Manager{
		store:      store,
		secret:     []byte(opts.Secret),
		ttl:        opts.TTL,
		touchAfter: opts.TouchAfter,
		cookieName: opts.CookieName,
		secure:     opts.Secure,
		logger:     log.Named("SessionManager"),
		now:        time.Now,
	}
}

func (m *Manager) CookieName() string { return m.cookieName }

// Load resolves the session named by the request cookie. Missing, forged or
// expired cookies yield a new anonymous session.
func (m *Manager) Load(r *http.Request) *State {
	cookie, err := r.Cookie(m.cookieName)
	if err != nil || cookie.Value == "" {
		return newState(m.ttl)
	}
	sid, err := parseToken(m.secret, cookie.Value)
	if err != nil {
		m.logger.Debug("Rejected session cookie", zap.Error(err))
		return newState(m.ttl)
	}
	sess, err := m.store.Get(r.Context(), sid)
	if err != nil {
		if !errors.Is(err, domain.ErrSessionNotFound) {
			m.logger.Error("Failed to load session", zap.String("session_id", sid), zap.Error(err))
		}
		return newState(m.ttl)
	}
	if sess.Flash == nil {
		sess.Flash = map[string][]string{}
	}
	return &State{data: *sess, persisted: true}
}

// Commit persists st if it changed or is due for a touch, and sets the
// cookie. It must run before the response headers are written.
func (m *Manager) Commit(ctx context.Context, w http.ResponseWriter, st *State) error {
	now := m.now()
	due := st.persisted && now.Sub(st.data.UpdatedAt) >= m.touchAfter
	if !st.dirty && !due {
		return nil
	}
	if !st.persisted && st.data.UserID == "" && len(st.data.Flash) == 0 && st.data.RedirectURL == "" {
		// nothing worth a cookie
		return nil
	}

	st.data.UpdatedAt = now
	st.data.ExpiresAt = now.Add(m.ttl)
	if err := m.store.Save(ctx, &st.data); err != nil {
		return err
	}
	if st.staleID != "" {
		if err := m.store.Delete(ctx, st.staleID); err != nil {
			m.logger.Warn("Failed to delete rotated session", zap.String("session_id", st.staleID), zap.Error(err))
		}
		st.staleID = ""
	}
	st.persisted = true
	st.dirty = false

	token, err := signToken(m.secret, st.data.ID, st.data.ExpiresAt)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    token,
		Path:     "/",
		Expires:  st.data.ExpiresAt,
		MaxAge:   int(m.ttl.Seconds()),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Middleware attaches the session to the request context and commits it
// before the first byte of the response.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		st := m.Load(r)
		cw := &commitWriter{ResponseWriter: w, commit: func() {
			if err := m.Commit(r.Context(), w, st); err != nil {
				m.logger.Error("Failed to save session", zap.String("session_id", st.ID()), zap.Error(err))
			}
		}}
		next.ServeHTTP(cw, r.WithContext(NewContext(r.Context(), st)))
		cw.flush()
	})
}

type commitWriter struct {
	http.ResponseWriter
	commit    func()
	committed bool
}

func (cw *commitWriter) flush() {
	if cw.committed {
		return
	}
	cw.committed = true
	cw.commit()
}

func (cw *commitWriter) WriteHeader(code int) {
	cw.flush()
	cw.ResponseWriter.WriteHeader(code)
}

func (cw *commitWriter) Write(b []byte) (int, error) {
	cw.flush()
	return cw.ResponseWriter.Write(b)
}

func (cw *commitWriter) Unwrap() http.ResponseWriter {
	return cw.ResponseWriter
}
