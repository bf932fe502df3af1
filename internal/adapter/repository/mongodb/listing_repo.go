package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Abdurahmanit/GroupProject/wanderlust/internal/domain"
	"github.com/Abdurahmanit/GroupProject/wanderlust/internal/platform/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const listingCollectionName = "listings"

// ListingRepository implements domain.ListingRepository using MongoDB.
type ListingRepository struct {
	collection *mongo.Collection
	logger     *logger.Logger
}

func NewListingRepository(db *mongo.Database, log *logger.Logger) (*ListingRepository, error) {
	collection := db.Collection(listingCollectionName)

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "owner", Value: 1}}},
		{Keys: bson.D{{Key: "reviews", Value: 1}}},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		log.Warn("Failed to create indexes for listings collection (may already exist)", zap.Error(err))
	} else {
		log.Info("Successfully ensured indexes for listings collection")
	}

	return &ListingRepository{
		collection: collection,
		logger:     log.Named("ListingRepository"),
	}, nil
}

// parseListingID treats a malformed id the same as a missing listing.
func parseListingID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, domain.ErrListingNotFound
	}
	return oid, nil
}

func (r *ListingRepository) Create(ctx context.Context, listing *domain.Listing) error {
	doc, err := toListingDocument(listing)
	if err != nil {
		r.logger.Error("Failed to convert listing for Create", zap.Error(err))
		return err
	}
	if doc.ID.IsZero() {
		doc.ID = primitive.NewObjectID()
	}
	now := time.Now().UTC()
	doc.CreatedAt = now
	doc.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		r.logger.Error("Failed to insert listing", zap.Error(err))
		return fmt.Errorf("db insert failed: %w", err)
	}

	listing.ID = doc.ID.Hex()
	listing.CreatedAt = now
	listing.UpdatedAt = now
	if listing.ReviewIDs == nil {
		listing.ReviewIDs = []string{}
	}
	r.logger.Info("Listing created", zap.String("listing_id", listing.ID))
	return nil
}

func (r *ListingRepository) GetByID(ctx context.Context, id string) (*domain.Listing, error) {
	oid, err := parseListingID(id)
	if err != nil {
		return nil, err
	}
	var doc listingDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrListingNotFound
		}
		r.logger.Error("Failed to get listing", zap.String("listing_id", id), zap.Error(err))
		return nil, fmt.Errorf("db findone failed: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *ListingRepository) List(ctx context.Context) ([]*domain.Listing, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		r.logger.Error("Failed to list listings", zap.Error(err))
		return nil, fmt.Errorf("db find failed: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []*listingDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("db cursor all failed: %w", err)
	}
	out := make([]*domain.Listing, len(docs))
	for i, d := range docs {
		out[i] = d.toDomain()
	}
	return out, nil
}

func (r *ListingRepository) Update(ctx context.Context, listing *domain.Listing) error {
	oid, err := parseListingID(listing.ID)
	if err != nil {
		return err
	}
	listing.UpdatedAt = time.Now().UTC()

	update := bson.M{"$set": bson.M{
		"title":       listing.Title,
		"description": listing.Description,
		"price":       listing.Price,
		"location":    listing.Location,
		"image":       imageDocument{URL: listing.Image.URL, Filename: listing.Image.Filename},
		"updated_at":  listing.UpdatedAt,
	}}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		r.logger.Error("Failed to update listing", zap.String("listing_id", listing.ID), zap.Error(err))
		return fmt.Errorf("db update failed: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrListingNotFound
	}
	r.logger.Info("Listing updated", zap.String("listing_id", listing.ID))
	return nil
}

func (r *ListingRepository) Delete(ctx context.Context, id string) error {
	oid, err := parseListingID(id)
	if err != nil {
		return err
	}
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		r.logger.Error("Failed to delete listing", zap.String("listing_id", id), zap.Error(err))
		return fmt.Errorf("db delete failed: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrListingNotFound
	}
	r.logger.Info("Listing deleted", zap.String("listing_id", id))
	return nil
}

func (r *ListingRepository) AddReview(ctx context.Context, listingID, reviewID string) error {
	return r.modifyReviews(ctx, listingID, reviewID, "$push")
}

func (r *ListingRepository) RemoveReview(ctx context.Context, listingID, reviewID string) error {
	return r.modifyReviews(ctx, listingID, reviewID, "$pull")
}

func (r *ListingRepository) modifyReviews(ctx context.Context, listingID, reviewID, op string) error {
	oid, err := parseListingID(listingID)
	if err != nil {
		return err
	}
	rid, err := primitive.ObjectIDFromHex(reviewID)
	if err != nil {
		return domain.ErrReviewNotFound
	}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{op: bson.M{"reviews": rid}})
	if err != nil {
		r.logger.Error("Failed to update listing reviews",
			zap.String("op", op), zap.String("listing_id", listingID), zap.String("review_id", reviewID), zap.Error(err))
		return fmt.Errorf("db update reviews failed: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrListingNotFound
	}
	return nil
}
