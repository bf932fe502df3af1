package domain

import (
	"context"
	"time"
)

// ListingRepository persists listings. Lookups of unknown or malformed ids
// return ErrListingNotFound.
type ListingRepository interface {
	Create(ctx context.Context, listing *Listing) error
	GetByID(ctx context.Context, id string) (*Listing, error)
	List(ctx context.Context) ([]*Listing, error)
	Update(ctx context.Context, listing *Listing) error
	Delete(ctx context.Context, id string) error
	AddReview(ctx context.Context, listingID, reviewID string) error
	RemoveReview(ctx context.Context, listingID, reviewID string) error
}

// ReviewRepository persists reviews. A review's membership in a listing is
// tracked on the listing, not here.
type ReviewRepository interface {
	Create(ctx context.Context, review *Review) error
	GetByID(ctx context.Context, id string) (*Review, error)
	// GetByIDs returns the reviews that exist, in no particular order.
	GetByIDs(ctx context.Context, ids []string) ([]*Review, error)
	Delete(ctx context.Context, id string) error
	DeleteMany(ctx context.Context, ids []string) (int64, error)
}

type UserRepository interface {
	// Create returns ErrDuplicateUsername when the username is taken.
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetByIDs(ctx context.Context, ids []string) ([]*User, error)
}

type SessionRepository interface {
	Get(ctx context.Context, id string) (*Session, error)
	// Save upserts the session.
	Save(ctx context.Context, session *Session) error
	Delete(ctx context.Context, id string) error
}

// TxManager runs fn so that every repository call made with the ctx it
// receives commits or aborts together.
type TxManager interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// ImageStorage is the image upload service.
type ImageStorage interface {
	Upload(ctx context.Context, upload ImageUpload) (Image, error)
	Delete(ctx context.Context, filename string) error
}

// ListingCache is a read-through cache. Get returns (nil, nil) on a miss.
type ListingCache interface {
	Get(ctx context.Context, id string) (*Listing, error)
	// Set stores listing unless its key was invalidated at or after
	// readStarted, in which case the write is silently dropped.
	Set(ctx context.Context, listing *Listing, readStarted time.Time) error
	Delete(ctx context.Context, id string) error
}

type EventPublisher interface {
	Publish(ctx context.Context, subject string, data interface{}) error
}

type Mailer interface {
	SendListingCreated(ctx context.Context, toEmail, listingTitle string) error
}
