//go:build integration

package mongodb

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	"github.com/Abdurahmanit/GroupProject/wanderlust/internal/domain"
	"github.com/Abdurahmanit/GroupProject/wanderlust/internal/platform/logger"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	testClient *mongo.Client
	testDB     *mongo.Database
	testLogger = logger.NewNop()
)

// TestMain starts a single-node replica set so transactions are available.
func TestMain(m *testing.M) {
	pool, err := dockertest.NewPool("")
	if err != nil {
		log.Fatalf("Could not construct pool: %s", err)
	}
	if err := pool.Client.Ping(); err != nil {
		log.Fatalf("Could not connect to Docker: %s", err)
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "mongo",
		Tag:        "6.0",
		Cmd:        []string{"--replSet", "rs0", "--bind_ip_all"},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		log.Fatalf("Could not start MongoDB resource: %s", err)
	}

	uri := fmt.Sprintf("mongodb://%s/?directConnection=true", resource.GetHostPort("27017/tcp"))
	if err := pool.Retry(func() error {
		var errRetry error
		testClient, errRetry = mongo.Connect(context.Background(), options.Client().ApplyURI(uri))
		if errRetry != nil {
			return errRetry
		}
		return testClient.Ping(context.Background(), nil)
	}); err != nil {
		log.Fatalf("Could not connect to MongoDB: %s", err)
	}

	initiate := bson.D{{Key: "replSetInitiate", Value: bson.M{
		"_id":     "rs0",
		"members": bson.A{bson.M{"_id": 0, "host": "localhost:27017"}},
	}}}
	if err := testClient.Database("admin").RunCommand(context.Background(), initiate).Err(); err != nil {
		log.Fatalf("Could not initiate replica set: %s", err)
	}
	if err := pool.Retry(func() error {
		var hello bson.M
		if err := testClient.Database("admin").RunCommand(context.Background(), bson.D{{Key: "hello", Value: 1}}).Decode(&hello); err != nil {
			return err
		}
		if primary, _ := hello["isWritablePrimary"].(bool); !primary {
			return errors.New("replica set has no primary yet")
		}
		return nil
	}); err != nil {
		log.Fatalf("Replica set never elected a primary: %s", err)
	}

	testDB = testClient.Database("wanderlust_test")
	code := m.Run()

	_ = testClient.Disconnect(context.Background())
	if err := pool.Purge(resource); err != nil {
		log.Printf("Could not purge resource: %s", err)
	}
	os.Exit(code)
}

func clearCollections(t *testing.T) {
	t.Helper()
	for _, name := range []string{listingCollectionName, reviewCollectionName, userCollectionName, sessionCollectionName} {
		_, err := testDB.Collection(name).DeleteMany(context.Background(), bson.M{})
		require.NoError(t, err)
	}
}

func newListing(owner string) *domain.Listing {
	return &domain.Listing{
		Title:       "Mountain Retreat",
		Description: "Unplug and unwind",
		Image:       domain.Image{URL: "http://img/1.png", Filename: "wanderlust_DEV/1.png"},
		Price:       1000,
		Location:    "Aspen",
		OwnerID:     owner,
	}
}

func TestListingRepository_RoundTrip(t *testing.T) {
	clearCollections(t)
	ctx := context.Background()
	repo, err := NewListingRepository(testDB, testLogger)
	require.NoError(t, err)

	owner := primitive.NewObjectID().Hex()
	l := newListing(owner)
	require.NoError(t, repo.Create(ctx, l))
	require.NotEmpty(t, l.ID)

	got, err := repo.GetByID(ctx, l.ID)
	require.NoError(t, err)
	assert.Equal(t, "Mountain Retreat", got.Title)
	assert.Equal(t, "Unplug and unwind", got.Description)
	assert.Equal(t, 1000.0, got.Price)
	assert.Equal(t, "Aspen", got.Location)
	assert.Equal(t, owner, got.OwnerID)
	assert.Empty(t, got.ReviewIDs)

	got.Title = "Mountain Retreat II"
	require.NoError(t, repo.Update(ctx, got))
	again, err := repo.GetByID(ctx, l.ID)
	require.NoError(t, err)
	assert.Equal(t, "Mountain Retreat II", again.Title)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, repo.Delete(ctx, l.ID))
	_, err = repo.GetByID(ctx, l.ID)
	assert.ErrorIs(t, err, domain.ErrListingNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, l.ID), domain.ErrListingNotFound)
}

func TestListingRepository_MissingAndMalformedIDs(t *testing.T) {
	clearCollections(t)
	ctx := context.Background()
	repo, err := NewListingRepository(testDB, testLogger)
	require.NoError(t, err)

	_, err = repo.GetByID(ctx, "not-an-object-id")
	assert.ErrorIs(t, err, domain.ErrListingNotFound)
	_, err = repo.GetByID(ctx, primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, domain.ErrListingNotFound)
	assert.ErrorIs(t, repo.AddReview(ctx, primitive.NewObjectID().Hex(), primitive.NewObjectID().Hex()), domain.ErrListingNotFound)
}

func TestReviewLifecycle_InTransaction(t *testing.T) {
	clearCollections(t)
	ctx := context.Background()
	listings, err := NewListingRepository(testDB, testLogger)
	require.NoError(t, err)
	reviews, err := NewReviewRepository(testDB, testLogger)
	require.NoError(t, err)
	tx := NewTxManager(testClient, true, testLogger)

	l := newListing(primitive.NewObjectID().Hex())
	require.NoError(t, listings.Create(ctx, l))

	rv := &domain.Review{Comment: "Great stay", Rating: 5, AuthorID: primitive.NewObjectID().Hex()}
	require.NoError(t, tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := reviews.Create(ctx, rv); err != nil {
			return err
		}
		return listings.AddReview(ctx, l.ID, rv.ID)
	}))

	got, err := listings.GetByID(ctx, l.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{rv.ID}, got.ReviewIDs)

	require.NoError(t, tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := listings.RemoveReview(ctx, l.ID, rv.ID); err != nil {
			return err
		}
		return reviews.Delete(ctx, rv.ID)
	}))

	got, err = listings.GetByID(ctx, l.ID)
	require.NoError(t, err)
	assert.Empty(t, got.ReviewIDs)
	_, err = reviews.GetByID(ctx, rv.ID)
	assert.ErrorIs(t, err, domain.ErrReviewNotFound)
}

func TestTxManager_RollsBackOnError(t *testing.T) {
	clearCollections(t)
	ctx := context.Background()
	reviews, err := NewReviewRepository(testDB, testLogger)
	require.NoError(t, err)
	listings, err := NewListingRepository(testDB, testLogger)
	require.NoError(t, err)
	tx := NewTxManager(testClient, true, testLogger)

	rv := &domain.Review{Comment: "Orphan", Rating: 3, AuthorID: primitive.NewObjectID().Hex()}
	err = tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := reviews.Create(ctx, rv); err != nil {
			return err
		}
		return listings.AddReview(ctx, primitive.NewObjectID().Hex(), rv.ID)
	})
	require.ErrorIs(t, err, domain.ErrListingNotFound)

	_, err = reviews.GetByID(ctx, rv.ID)
	assert.ErrorIs(t, err, domain.ErrReviewNotFound, "review insert must roll back with the failed push")
}

func TestUserRepository_UniqueUsername(t *testing.T) {
	clearCollections(t)
	ctx := context.Background()
	repo, err := NewUserRepository(testDB, testLogger)
	require.NoError(t, err)

	u := &domain.User{Username: "alice", Email: "a@x.com", PasswordHash: "hash"}
	require.NoError(t, repo.Create(ctx, u))

	dup := &domain.User{Username: "alice", Email: "other@x.com", PasswordHash: "hash"}
	assert.ErrorIs(t, repo.Create(ctx, dup), domain.ErrDuplicateUsername)

	byName, err := repo.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byName.ID)

	many, err := repo.GetByIDs(ctx, []string{u.ID, "garbage"})
	require.NoError(t, err)
	assert.Len(t, many, 1)
}

func TestSessionRepository_SaveGetExpire(t *testing.T) {
	clearCollections(t)
	ctx := context.Background()
	repo, err := NewSessionRepository(testDB, testLogger)
	require.NoError(t, err)

	s := &domain.Session{
		ID:        "sid-1",
		UserID:    "u1",
		Flash:     map[string][]string{"success": {"Welcome back!"}},
		ExpiresAt: time.Now().Add(time.Hour).UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	require.NoError(t, repo.Save(ctx, s))

	got, err := repo.Get(ctx, "sid-1")
	require.NoError(t, err)
	assert.Equal(t, "u1", got.UserID)
	assert.Equal(t, []string{"Welcome back!"}, got.Flash["success"])

	s.ExpiresAt = time.Now().Add(-time.Minute).UTC()
	require.NoError(t, repo.Save(ctx, s))
	_, err = repo.Get(ctx, "sid-1")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	require.NoError(t, repo.Delete(ctx, "sid-1"))
}
