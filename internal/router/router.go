package router

import (
	"net/http"

	"github.com/Abdurahmanit/GroupProject/wanderlust/internal/handler"
	"github.com/Abdurahmanit/GroupProject/wanderlust/internal/middleware"
	"github.com/Abdurahmanit/GroupProject/wanderlust/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/wanderlust/internal/platform/metrics"
	"github.com/Abdurahmanit/GroupProject/wanderlust/internal/session"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// Deps is everything the router wires together.
type Deps struct {
	Handler  *handler.Handler
	Sessions *session.Manager
	Users    middleware.UserFinder
	Listings middleware.ListingAuthorizer
	Reviews  middleware.ReviewAuthorizer
	Limiter  *middleware.LimiterStore
	Metrics  *metrics.MetricsManager
	Logger   *logger.Logger

	// TrustProxy applies X-Forwarded-For / X-Real-IP to RemoteAddr, which
	// keys the login rate limit.
	TrustProxy bool
}

// New builds the application router.
func New(d Deps) *chi.Mux {
	h := d.Handler
	log := d.Logger.Named("HTTP")

	mux := chi.NewRouter()
	mux.Use(chimw.RequestID)
	if d.TrustProxy {
		mux.Use(chimw.RealIP)
	}
	mux.Use(middleware.Logger(log))
	mux.Use(middleware.Recoverer(log, h.RenderError))
	mux.Use(middleware.Instrument(d.Metrics))
	mux.Use(middleware.MethodOverride)
	mux.Use(d.Sessions.Middleware)
	mux.Use(middleware.LoadUser(d.Users, log))

	mux.NotFound(h.NotFound)
	mux.MethodNotAllowed(h.NotFound)

	mux.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/listings", http.StatusFound)
	})
	mux.Get("/healthz", h.Health)
	mux.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(handler.StaticFS()))))

	requireAuth := middleware.RequireAuth(d.Metrics, true)
	owner := middleware.ListingOwner(d.Listings, d.Metrics, h.RenderError)
	author := middleware.ReviewAuthor(d.Reviews, d.Metrics, h.RenderError)
	limit := middleware.RateLimit(d.Limiter, log, h.RenderError)

	mux.Route("/listings", func(r chi.Router) {
		SetupListingRoutes(r, h, requireAuth, owner)
		SetupReviewRoutes(r, h, requireAuth, author)
	})
	SetupUserRoutes(mux, h, middleware.RequireAuth(d.Metrics, false), limit)

	return mux
}

type mw = func(http.Handler) http.Handler

// SetupListingRoutes mounts the listing pages under /listings.
func SetupListingRoutes(r chi.Router, h *handler.Handler, requireAuth, owner mw) {
	r.Get("/", h.Wrap(h.ListListings))
	r.With(requireAuth).Get("/new", h.Wrap(h.NewListing))
	r.With(requireAuth).Post("/", h.Wrap(h.CreateListing))

	r.Get("/{id}", h.Wrap(h.ShowListing))
	r.Group(func(r chi.Router) {
		r.Use(requireAuth, owner)
		r.Get("/{id}/edit", h.Wrap(h.EditListing))
		r.Put("/{id}", h.Wrap(h.UpdateListing))
		r.Delete("/{id}", h.Wrap(h.DeleteListing))
	})
}

// SetupReviewRoutes mounts review writes under /listings/{id}/reviews.
func SetupReviewRoutes(r chi.Router, h *handler.Handler, requireAuth, author mw) {
	r.With(requireAuth).Post("/{id}/reviews", h.Wrap(h.CreateReview))
	r.With(requireAuth, author).Delete("/{id}/reviews/{reviewId}", h.Wrap(h.DeleteReview))
}

// SetupUserRoutes mounts signup, login and logout. requireAuth guards logout
// and must not remember the path, or the next login would log straight out.
func SetupUserRoutes(mux *chi.Mux, h *handler.Handler, requireAuth, limit mw) {
	mux.Get("/signup", h.Wrap(h.SignupForm))
	mux.With(limit).Post("/signup", h.Wrap(h.Signup))

	mux.Get("/login", h.Wrap(h.LoginForm))
	mux.With(limit, middleware.SaveRedirectURL).Post("/login", h.Wrap(h.Login))

	mux.With(requireAuth).Get("/logout", h.Wrap(h.Logout))
}
