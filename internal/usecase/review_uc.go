package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Abdurahmanit/GroupProject/wanderlust/internal/domain"
	"github.com/Abdurahmanit/GroupProject/wanderlust/internal/platform/logger"
	"go.uber.org/zap"
)

// ReviewUsecase implements the review lifecycle.
type ReviewUsecase struct {
	listings domain.ListingRepository
	reviews  domain.ReviewRepository
	tx       domain.TxManager

	cache  domain.ListingCache
	events domain.EventPublisher

	logger *logger.Logger
}

type ReviewOption func(*ReviewUsecase)

func WithReviewCache(c domain.ListingCache) ReviewOption {
	return func(uc *ReviewUsecase) { uc.cache = c }
}

func WithReviewEvents(p domain.EventPublisher) ReviewOption {
	return func(uc *ReviewUsecase) { uc.events = p }
}

func NewReviewUsecase(listings domain.ListingRepository, reviews domain.ReviewRepository, tx domain.TxManager, log *logger.Logger, opts ...ReviewOption) *ReviewUsecase {
	uc := &ReviewUsecase{
		listings: listings,
		reviews:  reviews,
		tx:       tx,
		logger:   log.Named("ReviewUsecase"),
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Create inserts the review and appends it to the listing in one transaction.
func (uc *ReviewUsecase) Create(ctx context.Context, listingID, authorID string, in domain.ReviewInput) (*domain.Review, error) {
	ctx, span := tracer.Start(ctx, "ReviewUsecase.Create")
	defer span.End()

	if authorID == "" {
		return nil, fmt.Errorf("%w: author is required", domain.ErrInvalidInput)
	}
	if in.Rating < 1 || in.Rating > 5 {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(in.Comment) == "" {
		return nil, fmt.Errorf("%w: comment is required", domain.ErrInvalidInput)
	}

	if _, err := uc.listings.GetByID(ctx, listingID); err != nil {
		return nil, err
	}

	review := &domain.Review{Comment: in.Comment, Rating: in.Rating, AuthorID: authorID}
	err := uc.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := uc.reviews.Create(ctx, review); err != nil {
			return fmt.Errorf("create review: %w", err)
		}
		return uc.listings.AddReview(ctx, listingID, review.ID)
	})
	if err != nil {
		span.RecordError(err)
		uc.logger.Error("Failed to create review", zap.String("listing_id", listingID), zap.Error(err))
		return nil, err
	}
	uc.invalidate(ctx, listingID)

	uc.publish(ctx, "review.created", map[string]interface{}{
		"review_id":  review.ID,
		"listing_id": listingID,
		"author_id":  authorID,
		"rating":     review.Rating,
		"created_at": review.CreatedAt.Format(time.RFC3339Nano),
	})
	uc.logger.Info("Review created", zap.String("review_id", review.ID), zap.String("listing_id", listingID))
	return review, nil
}

// Authorize confirms that reviewID is attached to listingID and that userID
// wrote it. A review that belongs to another listing reports ErrReviewNotFound.
func (uc *ReviewUsecase) Authorize(ctx context.Context, listingID, reviewID, userID string) (*domain.Review, error) {
	listing, err := uc.listings.GetByID(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if !listing.HasReview(reviewID) {
		uc.logger.Warn("Review is not attached to listing",
			zap.String("listing_id", listingID),
			zap.String("review_id", reviewID))
		return nil, domain.ErrReviewNotFound
	}

	review, err := uc.reviews.GetByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if !review.IsAuthoredBy(userID) {
		uc.logger.Warn("User forbidden to delete review",
			zap.String("review_id", reviewID),
			zap.String("review_author", review.AuthorID),
			zap.String("requesting_user", userID))
		return nil, domain.ErrForbidden
	}
	return review, nil
}

// Delete pulls the reference from the listing and removes the review in one
// transaction. The review must be attached to listingID.
func (uc *ReviewUsecase) Delete(ctx context.Context, listingID, reviewID string) error {
	ctx, span := tracer.Start(ctx, "ReviewUsecase.Delete")
	defer span.End()

	err := uc.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		listing, err := uc.listings.GetByID(ctx, listingID)
		if err != nil {
			return err
		}
		if !listing.HasReview(reviewID) {
			return domain.ErrReviewNotFound
		}
		if err := uc.listings.RemoveReview(ctx, listingID, reviewID); err != nil {
			return fmt.Errorf("remove review reference: %w", err)
		}
		return uc.reviews.Delete(ctx, reviewID)
	})
	if err != nil {
		span.RecordError(err)
		return err
	}
	uc.invalidate(ctx, listingID)

	uc.publish(ctx, "review.deleted", map[string]interface{}{
		"review_id":  reviewID,
		"listing_id": listingID,
	})
	uc.logger.Info("Review deleted", zap.String("review_id", reviewID), zap.String("listing_id", listingID))
	return nil
}

func (uc *ReviewUsecase) invalidate(ctx context.Context, listingID string) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.Delete(ctx, listingID); err != nil {
		uc.logger.Warn("Listing cache invalidation failed", zap.String("listing_id", listingID), zap.Error(err))
	}
}

func (uc *ReviewUsecase) publish(ctx context.Context, subject string, data map[string]interface{}) {
	if uc.events == nil {
		return
	}
	if err := uc.events.Publish(ctx, subject, data); err != nil {
		uc.logger.Warn("Failed to publish event", zap.String("subject", subject), zap.Error(err))
	}
}
