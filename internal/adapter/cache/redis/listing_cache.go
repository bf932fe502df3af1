package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Abdurahmanit/GroupProject/wanderlust/internal/domain"
	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix = "listing:"
	// invalidatedPrefix keys hold the unix nano time of the last Delete.
	invalidatedPrefix = "listing-invalidated:"
)

// ListingCache implements domain.ListingCache with Redis.
type ListingCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewListingCache connects to addr and pings it.
func NewListingCache(ctx context.Context, addr string, ttl time.Duration) (*ListingCache, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return NewListingCacheWithClient(client, ttl), nil
}

func NewListingCacheWithClient(client *redis.Client, ttl time.Duration) *ListingCache {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &ListingCache{client: client, ttl: ttl}
}

// cachedListing pins the JSON layout so domain field renames don't silently
// invalidate entries.
type cachedListing struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url"`
	ImageFile   string    `json:"image_filename"`
	Price       float64   `json:"price"`
	Location    string    `json:"location"`
	OwnerID     string    `json:"owner"`
	ReviewIDs   []string  `json:"reviews"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (c *ListingCache) Get(ctx context.Context, id string) (*domain.Listing, error) {
	data, err := c.client.Get(ctx, keyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var cl cachedListing
	if err := json.Unmarshal(data, &cl); err != nil {
		return nil, err
	}
	reviews := cl.ReviewIDs
	if reviews == nil {
		reviews = []string{}
	}
	return &domain.Listing{
		ID:          cl.ID,
		Title:       cl.Title,
		Description: cl.Description,
		Image:       domain.Image{URL: cl.ImageURL, Filename: cl.ImageFile},
		Price:       cl.Price,
		Location:    cl.Location,
		OwnerID:     cl.OwnerID,
		ReviewIDs:   reviews,
		CreatedAt:   cl.CreatedAt,
		UpdatedAt:   cl.UpdatedAt,
	}, nil
}

// Set writes l unless Delete ran for the same id at or after readStarted.
// The marker key is watched so a Delete landing between the check and the
// write aborts the write.
func (c *ListingCache) Set(ctx context.Context, l *domain.Listing, readStarted time.Time) error {
	data, err := json.Marshal(cachedListing{
		ID:          l.ID,
		Title:       l.Title,
		Description: l.Description,
		ImageURL:    l.Image.URL,
		ImageFile:   l.Image.Filename,
		Price:       l.Price,
		Location:    l.Location,
		OwnerID:     l.OwnerID,
		ReviewIDs:   l.ReviewIDs,
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	})
	if err != nil {
		return err
	}
	marker := invalidatedPrefix + l.ID
	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		invalidated, err := tx.Get(ctx, marker).Int64()
		switch {
		case errors.Is(err, redis.Nil):
		case err != nil:
			return err
		case invalidated >= readStarted.UnixNano():
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, keyPrefix+l.ID, data, c.ttl)
			return nil
		})
		return err
	}, marker)
	if errors.Is(err, redis.TxFailedErr) {
		return nil
	}
	return err
}

// Delete drops the entry and records when it did, so reads that started
// earlier cannot put the old value back.
func (c *ListingCache) Delete(ctx context.Context, id string) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, keyPrefix+id)
		pipe.Set(ctx, invalidatedPrefix+id, time.Now().UnixNano(), c.ttl)
		return nil
	})
	return err
}

func (c *ListingCache) Close() error {
	return c.client.Close()
}
