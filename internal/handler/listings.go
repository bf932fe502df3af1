package handler

import (
	"errors"
	"net/http"

	"github.com/Abdurahmanit/GroupProject/wanderlust/internal/apperror"
	"github.com/Abdurahmanit/GroupProject/wanderlust/internal/domain"
	"github.com/Abdurahmanit/GroupProject/wanderlust/internal/middleware"
	"github.com/Abdurahmanit/GroupProject/wanderlust/internal/session"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func (h *Handler) ListListings(w http.ResponseWriter, r *http.Request) error {
	listings, err := h.listings.List(r.Context())
	if err != nil {
		return internal(err)
	}
	h.renderer.Page(w, r, http.StatusOK, "listings/index.html", pageData{Title: "All Listings", Listings: listings})
	return nil
}

func (h *Handler) NewListing(w http.ResponseWriter, r *http.Request) error {
	h.renderer.Page(w, r, http.StatusOK, "listings/new.html", pageData{Title: "New Listing"})
	return nil
}

func (h *Handler) ShowListing(w http.ResponseWriter, r *http.Request) error {
	id := chi.URLParam(r, "id")
	detail, err := h.listings.Detail(r.Context(), id)
	if errors.Is(err, domain.ErrListingNotFound) {
		flashRedirect(w, r, session.FlashError, "Listing not found!", "/listings")
		return nil
	}
	if err != nil {
		return internal(err)
	}
	h.renderer.Page(w, r, http.StatusOK, "listings/show.html", pageData{Title: detail.Listing.Title, Detail: detail, Listing: detail.Listing})
	return nil
}

func (h *Handler) CreateListing(w http.ResponseWriter, r *http.Request) error {
	if err := h.parseMultipart(w, r); err != nil {
		return err
	}
	upload, file, err := h.imageUpload(r)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	form, err := parseListingForm(r)
	if err != nil {
		return err
	}
	if upload == nil {
		return apperror.BadRequest("Image is required")
	}

	user := middleware.CurrentUser(r.Context())
	listing, err := h.listings.Create(r.Context(), user.ID, form.input(), upload)
	if err != nil {
		return listingWriteError(err)
	}
	h.metrics.ListingCreated()
	h.logger.Info("Listing created via form", zap.String("listing_id", listing.ID), zap.String("user_id", user.ID))

	flashRedirect(w, r, session.FlashSuccess, "New listing created successfully!", "/listings")
	return nil
}

func (h *Handler) EditListing(w http.ResponseWriter, r *http.Request) error {
	listing := middleware.ListingFromContext(r.Context())
	if listing == nil {
		return apperror.Internal(errors.New("edit reached without ownership guard"))
	}
	h.renderer.Page(w, r, http.StatusOK, "listings/edit.html", pageData{Title: "Edit Listing", Listing: listing})
	return nil
}

func (h *Handler) UpdateListing(w http.ResponseWriter, r *http.Request) error {
	id := chi.URLParam(r, "id")
	if err := h.parseMultipart(w, r); err != nil {
		return err
	}
	upload, file, err := h.imageUpload(r)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	form, err := parseListingForm(r)
	if err != nil {
		return err
	}

	if _, err := h.listings.Update(r.Context(), id, form.input(), upload); err != nil {
		if errors.Is(err, domain.ErrListingNotFound) {
			flashRedirect(w, r, session.FlashError, "Listing not found!", "/listings")
			return nil
		}
		return listingWriteError(err)
	}
	h.metrics.ListingUpdated()

	flashRedirect(w, r, session.FlashSuccess, "Listing updated successfully!", middleware.ListingPath(id))
	return nil
}

func (h *Handler) DeleteListing(w http.ResponseWriter, r *http.Request) error {
	id := chi.URLParam(r, "id")
	if err := h.listings.Delete(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrListingNotFound) {
			flashRedirect(w, r, session.FlashError, "Listing not found!", "/listings")
			return nil
		}
		return internal(err)
	}
	h.metrics.ListingDeleted()

	flashRedirect(w, r, session.FlashSuccess, "Listing deleted successfully!", "/listings")
	return nil
}

func listingWriteError(err error) error {
	switch {
	case errors.Is(err, domain.ErrImageRequired):
		return apperror.BadRequest("Image is required")
	case errors.Is(err, domain.ErrUnsupportedImage):
		return apperror.BadRequest("Image must be a jpg, jpeg or png file")
	case errors.Is(err, domain.ErrInvalidInput):
		return apperror.BadRequest(err.Error())
	}
	return internal(err)
}

func flashRedirect(w http.ResponseWriter, r *http.Request, kind, message, target string) {
	session.FromContext(r.Context()).AddFlash(kind, message)
	http.Redirect(w, r, target, http.StatusFound)
}
