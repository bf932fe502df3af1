package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/Abdurahmanit/GroupProject/wanderlust/internal/domain"
	"github.com/Abdurahmanit/GroupProject/wanderlust/internal/platform/logger"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("wanderlust/usecase")

// ListingUsecase implements the listing lifecycle.
type ListingUsecase struct {
	listings domain.ListingRepository
	reviews  domain.ReviewRepository
	users    domain.UserRepository
	tx       domain.TxManager
	images   domain.ImageStorage

	cache  domain.ListingCache
	events domain.EventPublisher
	mailer domain.Mailer

	logger *logger.Logger
}

// ListingOption wires an optional collaborator.
type ListingOption func(*ListingUsecase)

func WithListingCache(c domain.ListingCache) ListingOption {
	return func(uc *ListingUsecase) { uc.cache = c }
}

func WithListingEvents(p domain.EventPublisher) ListingOption {
	return func(uc *ListingUsecase) { uc.events = p }
}

func WithMailer(m domain.Mailer) ListingOption {
	return func(uc *ListingUsecase) { uc.mailer = m }
}

func NewListingUsecase(
	listings domain.ListingRepository,
	reviews domain.ReviewRepository,
	users domain.UserRepository,
	tx domain.TxManager,
	images domain.ImageStorage,
	log *logger.Logger,
	opts ...ListingOption,
) *ListingUsecase {
	uc := &ListingUsecase{
		listings: listings,
		reviews:  reviews,
		users:    users,
		tx:       tx,
		images:   images,
		logger:   log.Named("ListingUsecase"),
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

func (uc *ListingUsecase) List(ctx context.Context) ([]*domain.Listing, error) {
	ctx, span := tracer.Start(ctx, "ListingUsecase.List")
	defer span.End()

	listings, err := uc.listings.List(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("list listings: %w", err)
	}
	return listings, nil
}

// Get returns one listing, consulting the cache first.
func (uc *ListingUsecase) Get(ctx context.Context, id string) (*domain.Listing, error) {
	ctx, span := tracer.Start(ctx, "ListingUsecase.Get")
	defer span.End()
	span.SetAttributes(attribute.String("listing.id", id))

	if uc.cache != nil {
		cached, err := uc.cache.Get(ctx, id)
		if err != nil {
			uc.logger.Warn("Listing cache read failed", zap.String("listing_id", id), zap.Error(err))
		} else if cached != nil {
			return cached, nil
		}
	}

	// Taken before the store read so an invalidation racing with it wins.
	readStarted := time.Now()
	listing, err := uc.listings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		if err := uc.cache.Set(ctx, listing, readStarted); err != nil {
			uc.logger.Warn("Listing cache write failed", zap.String("listing_id", id), zap.Error(err))
		}
	}
	return listing, nil
}

// Detail expands the owner and the reviews with their authors. Review ids
// whose documents are gone are skipped.
func (uc *ListingUsecase) Detail(ctx context.Context, id string) (*domain.ListingDetail, error) {
	ctx, span := tracer.Start(ctx, "ListingUsecase.Detail")
	defer span.End()

	listing, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	reviews, err := uc.reviews.GetByIDs(ctx, listing.ReviewIDs)
	if err != nil {
		return nil, fmt.Errorf("load reviews: %w", err)
	}
	byID := make(map[string]*domain.Review, len(reviews))
	userIDs := []string{listing.OwnerID}
	for _, r := range reviews {
		byID[r.ID] = r
		userIDs = append(userIDs, r.AuthorID)
	}

	users, err := uc.users.GetByIDs(ctx, userIDs)
	if err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}
	usersByID := make(map[string]*domain.User, len(users))
	for _, u := range users {
		usersByID[u.ID] = u
	}

	detail := &domain.ListingDetail{
		Listing: listing,
		Owner:   usersByID[listing.OwnerID],
		Reviews: make([]domain.ReviewDetail, 0, len(listing.ReviewIDs)),
	}
	for _, rid := range listing.ReviewIDs {
		r, ok := byID[rid]
		if !ok {
			uc.logger.Warn("Listing references a missing review", zap.String("listing_id", id), zap.String("review_id", rid))
			continue
		}
		detail.Reviews = append(detail.Reviews, domain.ReviewDetail{Review: r, Author: usersByID[r.AuthorID]})
	}
	return detail, nil
}

// Authorize loads the listing and confirms userID owns it.
func (uc *ListingUsecase) Authorize(ctx context.Context, id, userID string) (*domain.Listing, error) {
	listing, err := uc.listings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !listing.IsOwnedBy(userID) {
		uc.logger.Warn("User forbidden to modify listing",
			zap.String("listing_id", id),
			zap.String("owner_id", listing.OwnerID),
			zap.String("requesting_user", userID))
		return nil, domain.ErrForbidden
	}
	return listing, nil
}

// Create stores the image and then the listing. No write happens without an
// image.
func (uc *ListingUsecase) Create(ctx context.Context, ownerID string, in domain.ListingInput, image *domain.ImageUpload) (*domain.Listing, error) {
	ctx, span := tracer.Start(ctx, "ListingUsecase.Create")
	defer span.End()

	if image == nil {
		return nil, domain.ErrImageRequired
	}
	if ownerID == "" {
		return nil, fmt.Errorf("%w: owner is required", domain.ErrInvalidInput)
	}
	if !validPrice(in.Price) {
		return nil, fmt.Errorf("%w: price must be a non-negative number", domain.ErrInvalidInput)
	}

	stored, err := uc.images.Upload(ctx, *image)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("upload image: %w", err)
	}

	listing := &domain.Listing{
		Title:       in.Title,
		Description: in.Description,
		Price:       in.Price,
		Location:    in.Location,
		Image:       stored,
		OwnerID:     ownerID,
		ReviewIDs:   []string{},
	}
	if err := uc.listings.Create(ctx, listing); err != nil {
		uc.discardImage(ctx, stored.Filename)
		span.RecordError(err)
		return nil, fmt.Errorf("create listing: %w", err)
	}

	uc.publish(ctx, "listing.created", map[string]interface{}{
		"listing_id": listing.ID,
		"owner_id":   listing.OwnerID,
		"title":      listing.Title,
		"price":      listing.Price,
		"created_at": listing.CreatedAt.Format(time.RFC3339Nano),
	})
	uc.notifyOwner(ctx, listing)

	uc.logger.Info("Listing created", zap.String("listing_id", listing.ID), zap.String("owner_id", ownerID))
	return listing, nil
}

// Update applies in to the listing and swaps the image when one is given.
func (uc *ListingUsecase) Update(ctx context.Context, id string, in domain.ListingInput, image *domain.ImageUpload) (*domain.Listing, error) {
	ctx, span := tracer.Start(ctx, "ListingUsecase.Update")
	defer span.End()

	if !validPrice(in.Price) {
		return nil, fmt.Errorf("%w: price must be a non-negative number", domain.ErrInvalidInput)
	}

	listing, err := uc.listings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	previous := listing.Image

	listing.Title = in.Title
	listing.Description = in.Description
	listing.Price = in.Price
	listing.Location = in.Location

	if image != nil {
		stored, err := uc.images.Upload(ctx, *image)
		if err != nil {
			span.RecordError(err)
			return nil, fmt.Errorf("upload image: %w", err)
		}
		listing.Image = stored
	}

	if err := uc.listings.Update(ctx, listing); err != nil {
		if image != nil {
			uc.discardImage(ctx, listing.Image.Filename)
		}
		return nil, err
	}
	uc.invalidate(ctx, id)

	if image != nil {
		uc.discardImage(ctx, previous.Filename)
	}

	uc.publish(ctx, "listing.updated", map[string]interface{}{
		"listing_id":    listing.ID,
		"image_changed": image != nil,
		"updated_at":    listing.UpdatedAt.Format(time.RFC3339Nano),
	})
	uc.logger.Info("Listing updated", zap.String("listing_id", id), zap.Bool("image_changed", image != nil))
	return listing, nil
}

// Delete removes the listing and its reviews together.
func (uc *ListingUsecase) Delete(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "ListingUsecase.Delete")
	defer span.End()

	var image domain.Image
	var removedReviews int64
	err := uc.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		listing, err := uc.listings.GetByID(ctx, id)
		if err != nil {
			return err
		}
		image = listing.Image
		if removedReviews, err = uc.reviews.DeleteMany(ctx, listing.ReviewIDs); err != nil {
			return fmt.Errorf("delete reviews: %w", err)
		}
		return uc.listings.Delete(ctx, id)
	})
	if err != nil {
		span.RecordError(err)
		return err
	}
	uc.invalidate(ctx, id)
	uc.discardImage(ctx, image.Filename)

	uc.publish(ctx, "listing.deleted", map[string]interface{}{
		"listing_id":      id,
		"reviews_removed": removedReviews,
	})
	uc.logger.Info("Listing deleted", zap.String("listing_id", id), zap.Int64("reviews_removed", removedReviews))
	return nil
}

func validPrice(p float64) bool {
	return p >= 0 && !math.IsInf(p, 1)
}

func (uc *ListingUsecase) invalidate(ctx context.Context, id string) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.Delete(ctx, id); err != nil {
		uc.logger.Warn("Listing cache invalidation failed", zap.String("listing_id", id), zap.Error(err))
	}
}

func (uc *ListingUsecase) discardImage(ctx context.Context, filename string) {
	if filename == "" {
		return
	}
	if err := uc.images.Delete(ctx, filename); err != nil {
		uc.logger.Warn("Failed to delete stored image", zap.String("filename", filename), zap.Error(err))
	}
}

func (uc *ListingUsecase) publish(ctx context.Context, subject string, data map[string]interface{}) {
	if uc.events == nil {
		return
	}
	if err := uc.events.Publish(ctx, subject, data); err != nil {
		uc.logger.Warn("Failed to publish event", zap.String("subject", subject), zap.Error(err))
	}
}

func (uc *ListingUsecase) notifyOwner(ctx context.Context, listing *domain.Listing) {
	if uc.mailer == nil {
		return
	}
	owner, err := uc.users.GetByID(ctx, listing.OwnerID)
	if err != nil {
		if !errors.Is(err, domain.ErrUserNotFound) {
			uc.logger.Warn("Could not load owner for listing notice", zap.String("owner_id", listing.OwnerID), zap.Error(err))
		}
		return
	}
	if owner.Email == "" {
		return
	}
	if err := uc.mailer.SendListingCreated(ctx, owner.Email, listing.Title); err != nil {
		uc.logger.Warn("Listing created email not sent", zap.String("listing_id", listing.ID), zap.Error(err))
	}
}
