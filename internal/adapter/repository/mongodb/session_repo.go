package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Abdurahmanit/GroupProject/wanderlust/internal/domain"
	"github.com/Abdurahmanit/GroupProject/wanderlust/internal/platform/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const sessionCollectionName = "sessions"

// SessionRepository stores session state. A TTL index on expires_at lets
// MongoDB reap abandoned sessions.
type SessionRepository struct {
	collection *mongo.Collection
	logger     *logger.Logger
}

func NewSessionRepository(db *mongo.Database, log *logger.Logger) (*SessionRepository, error) {
	collection := db.Collection(sessionCollectionName)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "expires_at", Value: 1}}, Options: options.Index().SetExpireAfterSeconds(0)},
	}
	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		log.Warn("Failed to create TTL index for sessions collection (may already exist)", zap.Error(err))
	} else {
		log.Info("Successfully ensured indexes for sessions collection")
	}

	return &SessionRepository{
		collection: collection,
		logger:     log.Named("SessionRepository"),
	}, nil
}

func (r *SessionRepository) Get(ctx context.Context, id string) (*domain.Session, error) {
	// The TTL monitor runs about once a minute, so filter expired rows too.
	filter := bson.M{"_id": id, "expires_at": bson.M{"$gt": time.Now().UTC()}}
	var doc sessionDocument
	if err := r.collection.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrSessionNotFound
		}
		r.logger.Error("Failed to load session", zap.Error(err))
		return nil, fmt.Errorf("db findone failed: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *SessionRepository) Save(ctx context.Context, session *domain.Session) error {
	doc := toSessionDocument(session)
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		r.logger.Error("Failed to save session", zap.Error(err))
		return fmt.Errorf("db upsert failed: %w", err)
	}
	return nil
}

func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.collection.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		r.logger.Error("Failed to delete session", zap.Error(err))
		return fmt.Errorf("db delete failed: %w", err)
	}
	return nil
}
