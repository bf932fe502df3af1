package domain

import (
	"io"
	"time"
)

// Image is a stored listing picture. Filename is the storage key.
type Image struct {
	URL      string
	Filename string
}

type Listing struct {
	ID          string
	Title       string
	Description string
	Image       Image
	Price       float64
	Location    string
	OwnerID     string
	ReviewIDs   []string // in insertion order
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsOwnedBy reports whether userID owns the listing.
func (l *Listing) IsOwnedBy(userID string) bool {
	return userID != "" && l.OwnerID == userID
}

// HasReview reports whether reviewID is attached to the listing.
func (l *Listing) HasReview(reviewID string) bool {
	for _, id := range l.ReviewIDs {
		if id == reviewID {
			return true
		}
	}
	return false
}

type Review struct {
	ID        string
	Comment   string
	Rating    int
	AuthorID  string
	CreatedAt time.Time
}

// IsAuthoredBy reports whether userID wrote the review.
func (r *Review) IsAuthoredBy(userID string) bool {
	return userID != "" && r.AuthorID == userID
}

type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// ReviewDetail is a review with its author expanded. Author is nil when the
// account no longer resolves.
type ReviewDetail struct {
	Review *Review
	Author *User
}

// ListingDetail is a listing with its owner and reviews expanded.
type ListingDetail struct {
	Listing *Listing
	Owner   *User
	Reviews []ReviewDetail
}

// ListingInput carries the editable fields of a listing.
type ListingInput struct {
	Title       string
	Description string
	Price       float64
	Location    string
}

// ReviewInput carries the fields of a new review.
type ReviewInput struct {
	Comment string
	Rating  int
}

// ImageUpload is a file received from a listing form.
type ImageUpload struct {
	FileName    string
	ContentType string
	Size        int64
	Data        io.Reader
}

// Session is the server-side state behind a session cookie.
type Session struct {
	ID          string
	UserID      string
	RedirectURL string
	Flash       map[string][]string
	ExpiresAt   time.Time
	UpdatedAt   time.Time
}
