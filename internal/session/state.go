package session

import (
	"context"
	"time"

	"github.com/Abdurahmanit/GroupProject/wanderlust/internal/domain"
	"github.com/google/uuid"
)

// Flash kinds rendered by the layout.
const (
	FlashSuccess = "success"
	FlashError   = "error"
)

// State is the session of one request. It is not safe for concurrent use.
type State struct {
	data      domain.Session
	persisted bool
	dirty     bool
	staleID   string
}

func newState(ttl time.Duration) *State {
	return &State{
		data: domain.Session{
			ID:        uuid.NewString(),
			Flash:     map[string][]string{},
			ExpiresAt: time.Now().Add(ttl),
		},
	}
}

func (s *State) ID() string { return s.data.ID }

// UserID is the logged-in user, or "" for an anonymous session.
func (s *State) UserID() string { return s.data.UserID }

func (s *State) IsAuthenticated() bool { return s.data.UserID != "" }

// Login binds the session to userID and gives it a fresh id. Any pending
// post-login redirect is dropped; callers read it first.
func (s *State) Login(userID string) {
	if s.persisted && s.staleID == "" {
		s.staleID = s.data.ID
	}
	s.data.ID = uuid.NewString()
	s.data.UserID = userID
	s.data.RedirectURL = ""
	s.dirty = true
}

// Logout clears the identity. Flash and redirect state survive.
func (s *State) Logout() {
	if s.data.UserID == "" {
		return
	}
	s.data.UserID = ""
	s.dirty = true
}

func (s *State) AddFlash(kind, message string) {
	if s.data.Flash == nil {
		s.data.Flash = map[string][]string{}
	}
	s.data.Flash[kind] = append(s.data.Flash[kind], message)
	s.dirty = true
}

// Flashes returns the pending messages and clears them.
func (s *State) Flashes() map[string][]string {
	if len(s.data.Flash) == 0 {
		return map[string][]string{}
	}
	out := s.data.Flash
	s.data.Flash = map[string][]string{}
	s.dirty = true
	return out
}

func (s *State) SetRedirectURL(url string) {
	if s.data.RedirectURL == url {
		return
	}
	s.data.RedirectURL = url
	s.dirty = true
}

func (s *State) RedirectURL() string { return s.data.RedirectURL }

// PopRedirectURL returns the stored redirect target and clears it.
func (s *State) PopRedirectURL() string {
	url := s.data.RedirectURL
	if url != "" {
		s.data.RedirectURL = ""
		s.dirty = true
	}
	return url
}

type ctxKey struct{}

// NewContext returns ctx carrying st.
func NewContext(ctx context.Context, st *State) context.Context {
	return context.WithValue(ctx, ctxKey{}, st)
}

// FromContext returns the request session. Outside the middleware it returns
// a throwaway anonymous state so callers never see nil.
func FromContext(ctx context.Context) *State {
	if st, ok := ctx.Value(ctxKey{}).(*State); ok && st != nil {
		return st
	}
	return newState(time.Minute)
}
