package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/Abdurahmanit/GroupProject/wanderlust/internal/apperror"
	"github.com/Abdurahmanit/GroupProject/wanderlust/internal/domain"
	"github.com/Abdurahmanit/GroupProject/wanderlust/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/wanderlust/internal/platform/metrics"
	"go.uber.org/zap"
)

// ListingService is the listing usecase as the handlers see it. Update and
// Delete assume the caller already passed the owner guard; a nil image keeps
// the current one.
type ListingService interface {
	List(ctx context.Context) ([]*domain.Listing, error)
	Detail(ctx context.Context, id string) (*domain.ListingDetail, error)
	Create(ctx context.Context, ownerID string, in domain.ListingInput, image *domain.ImageUpload) (*domain.Listing, error)
	Update(ctx context.Context, id string, in domain.ListingInput, image *domain.ImageUpload) (*domain.Listing, error)
	Delete(ctx context.Context, id string) error
}

// ReviewService creates and removes reviews on a listing.
type ReviewService interface {
	Create(ctx context.Context, listingID, authorID string, in domain.ReviewInput) (*domain.Review, error)
	// Delete fails with ErrReviewNotFound when reviewID is not on listingID.
	Delete(ctx context.Context, listingID, reviewID string) error
}

// UserService covers signup and login.
type UserService interface {
	Register(ctx context.Context, username, email, password string) (*domain.User, error)
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)
}

// HealthChecker reports whether the backing store is reachable.
type HealthChecker func(ctx context.Context) error

// AppHandler is an http handler that reports failures by returning them.
type AppHandler func(w http.ResponseWriter, r *http.Request) error

type Handler struct {
	listings  ListingService
	reviews   ReviewService
	users     UserService
	renderer  *Renderer
	metrics   *metrics.MetricsManager
	health    HealthChecker
	maxUpload int64
	logger    *logger.Logger
}

type Options struct {
	Listings  ListingService
	Reviews   ReviewService
	Users     UserService
	Metrics   *metrics.MetricsManager
	Health    HealthChecker
	MaxUpload int64
}

func New(opts Options, log *logger.Logger) (*Handler, error) {
	renderer, err := NewRenderer()
	if err != nil {
		return nil, err
	}
	if opts.MaxUpload <= 0 {
		opts.MaxUpload = 10 << 20
	}
	return &Handler{
		listings:  opts.Listings,
		reviews:   opts.Reviews,
		users:     opts.Users,
		renderer:  renderer,
		metrics:   opts.Metrics,
		health:    opts.Health,
		maxUpload: opts.MaxUpload,
		logger:    log.Named("HTTPHandler"),
	}, nil
}

// Wrap adapts fn to http.HandlerFunc, sending returned errors to the error
// page.
func (h *Handler) Wrap(fn AppHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := fn(w, r); err != nil {
			h.RenderError(w, r, err)
		}
	}
}

// RenderError is the terminal error handler.
func (h *Handler) RenderError(w http.ResponseWriter, r *http.Request, err error) {
	status, message := apperror.StatusAndMessage(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("Request failed", zap.String("method", r.Method), zap.String("path", r.URL.Path), zap.Error(err))
	} else {
		h.logger.Debug("Request rejected", zap.String("path", r.URL.Path), zap.Int("status", status), zap.String("message", message))
	}
	h.renderer.Page(w, r, status, "error.html", pageData{Title: "Error", Message: message})
}

// NotFound answers every unmatched path or method.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.RenderError(w, r, apperror.NotFound("Page Not Found!"))
}

// Health pings the store.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if h.health != nil {
		if err := h.health(r.Context()); err != nil {
			h.logger.Warn("Health check failed", zap.Error(err))
			http.Error(w, "unavailable", http.StatusServiceUnavailable)
			return
		}
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// internal maps unexpected errors to a 500 while letting apperrors through.
func internal(err error) error {
	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		return err
	}
	return apperror.Internal(err)
}
