package middleware

import (
	"context"
	"net/http"

	"github.com/Abdurahmanit/GroupProject/wanderlust/internal/domain"
)

// ContextKey is a private type for request context keys.
type ContextKey string

const (
	// CurrentUserCtxKey holds the *domain.User resolved from the session.
	CurrentUserCtxKey = ContextKey("current_user")
	// ListingCtxKey holds the *domain.Listing loaded by the ownership guard.
	ListingCtxKey = ContextKey("listing")
	// ReviewCtxKey holds the *domain.Review loaded by the authorship guard.
	ReviewCtxKey = ContextKey("review")
	// RedirectURLCtxKey holds the post-login target captured before login.
	RedirectURLCtxKey = ContextKey("redirect_url")
)

// ErrorResponder renders err as the terminal error page.
type ErrorResponder func(w http.ResponseWriter, r *http.Request, err error)

// CurrentUser returns the logged-in user, or nil.
func CurrentUser(ctx context.Context) *domain.User {
	u, _ := ctx.Value(CurrentUserCtxKey).(*domain.User)
	return u
}

func WithCurrentUser(ctx context.Context, u *domain.User) context.Context {
	return context.WithValue(ctx, CurrentUserCtxKey, u)
}

func ListingFromContext(ctx context.Context) *domain.Listing {
	l, _ := ctx.Value(ListingCtxKey).(*domain.Listing)
	return l
}

func ReviewFromContext(ctx context.Context) *domain.Review {
	rv, _ := ctx.Value(ReviewCtxKey).(*domain.Review)
	return rv
}

// RedirectURL returns the target captured by SaveRedirectURL.
func RedirectURL(ctx context.Context) string {
	s, _ := ctx.Value(RedirectURLCtxKey).(string)
	return s
}
