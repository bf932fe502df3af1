package handler

import (
	"errors"
	"net/http"

	"github.com/Abdurahmanit/GroupProject/wanderlust/internal/apperror"
	"github.com/Abdurahmanit/GroupProject/wanderlust/internal/domain"
	"github.com/Abdurahmanit/GroupProject/wanderlust/internal/middleware"
	"github.com/Abdurahmanit/GroupProject/wanderlust/internal/session"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) CreateReview(w http.ResponseWriter, r *http.Request) error {
	id := chi.URLParam(r, "id")
	if err := r.ParseForm(); err != nil {
		return apperror.BadRequest("Invalid form data")
	}
	form, err := parseReviewForm(r)
	if err != nil {
		return err
	}

	user := middleware.CurrentUser(r.Context())
	if _, err := h.reviews.Create(r.Context(), id, user.ID, form.input()); err != nil {
		switch {
		case errors.Is(err, domain.ErrListingNotFound):
			flashRedirect(w, r, session.FlashError, "Listing not found!", "/listings")
			return nil
		case errors.Is(err, domain.ErrInvalidInput):
			return apperror.BadRequest(err.Error())
		}
		return internal(err)
	}
	h.metrics.ReviewCreated()

	flashRedirect(w, r, session.FlashSuccess, "New review created successfully!", middleware.ListingPath(id))
	return nil
}

func (h *Handler) DeleteReview(w http.ResponseWriter, r *http.Request) error {
	id := chi.URLParam(r, "id")
	reviewID := chi.URLParam(r, "reviewId")

	if err := h.reviews.Delete(r.Context(), id, reviewID); err != nil {
		if errors.Is(err, domain.ErrListingNotFound) {
			flashRedirect(w, r, session.FlashError, "Listing not found!", "/listings")
			return nil
		}
		if errors.Is(err, domain.ErrReviewNotFound) {
			flashRedirect(w, r, session.FlashError, "Review not found!", middleware.ListingPath(id))
			return nil
		}
		return internal(err)
	}
	h.metrics.ReviewDeleted()

	flashRedirect(w, r, session.FlashSuccess, "Review deleted successfully!", middleware.ListingPath(id))
	return nil
}
