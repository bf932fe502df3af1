package mongodb

import (
	"fmt"
	"time"

	"github.com/Abdurahmanit/GroupProject/wanderlust/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type imageDocument struct {
	URL      string `bson:"url"`
	Filename string `bson:"filename"`
}

type listingDocument struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty"`
	Title       string               `bson:"title"`
	Description string               `bson:"description"`
	Image       imageDocument        `bson:"image"`
	Price       float64              `bson:"price"`
	Location    string               `bson:"location"`
	Owner       primitive.ObjectID   `bson:"owner"`
	Reviews     []primitive.ObjectID `bson:"reviews"`
	CreatedAt   time.Time            `bson:"created_at"`
	UpdatedAt   time.Time            `bson:"updated_at"`
}

type reviewDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Comment   string             `bson:"comment"`
	Rating    int                `bson:"rating"`
	Author    primitive.ObjectID `bson:"author"`
	CreatedAt time.Time          `bson:"created_at"`
}

type userDocument struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Username     string             `bson:"username"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"password_hash"`
	CreatedAt    time.Time          `bson:"created_at"`
}

type sessionDocument struct {
	ID          string              `bson:"_id"`
	UserID      string              `bson:"user_id,omitempty"`
	RedirectURL string              `bson:"redirect_url,omitempty"`
	Flash       map[string][]string `bson:"flash,omitempty"`
	ExpiresAt   time.Time           `bson:"expires_at"`
	UpdatedAt   time.Time           `bson:"updated_at"`
}

// objectIDFromHex parses an optional id; the empty string maps to NilObjectID.
func objectIDFromHex(id string) (primitive.ObjectID, error) {
	if id == "" {
		return primitive.NilObjectID, nil
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("invalid object id %q: %w", id, err)
	}
	return oid, nil
}

// objectIDs converts ids, dropping malformed ones.
func objectIDs(ids []string) []primitive.ObjectID {
	out := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			out = append(out, oid)
		}
	}
	return out
}

func hexIDs(oids []primitive.ObjectID) []string {
	out := make([]string, len(oids))
	for i, oid := range oids {
		out[i] = oid.Hex()
	}
	return out
}

func hexOrEmpty(oid primitive.ObjectID) string {
	if oid.IsZero() {
		return ""
	}
	return oid.Hex()
}

func toListingDocument(l *domain.Listing) (*listingDocument, error) {
	id, err := objectIDFromHex(l.ID)
	if err != nil {
		return nil, err
	}
	owner, err := objectIDFromHex(l.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("owner: %w", err)
	}
	reviews := make([]primitive.ObjectID, 0, len(l.ReviewIDs))
	for _, rid := range l.ReviewIDs {
		oid, err := primitive.ObjectIDFromHex(rid)
		if err != nil {
			return nil, fmt.Errorf("review reference %q: %w", rid, err)
		}
		reviews = append(reviews, oid)
	}
	return &listingDocument{
		ID:          id,
		Title:       l.Title,
		Description: l.Description,
		Image:       imageDocument{URL: l.Image.URL, Filename: l.Image.Filename},
		Price:       l.Price,
		Location:    l.Location,
		Owner:       owner,
		Reviews:     reviews,
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}, nil
}

func (d *listingDocument) toDomain() *domain.Listing {
	return &domain.Listing{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Description: d.Description,
		Image:       domain.Image{URL: d.Image.URL, Filename: d.Image.Filename},
		Price:       d.Price,
		Location:    d.Location,
		OwnerID:     hexOrEmpty(d.Owner),
		ReviewIDs:   hexIDs(d.Reviews),
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func toReviewDocument(r *domain.Review) (*reviewDocument, error) {
	id, err := objectIDFromHex(r.ID)
	if err != nil {
		return nil, err
	}
	author, err := objectIDFromHex(r.AuthorID)
	if err != nil {
		return nil, fmt.Errorf("author: %w", err)
	}
	return &reviewDocument{
		ID:        id,
		Comment:   r.Comment,
		Rating:    r.Rating,
		Author:    author,
		CreatedAt: r.CreatedAt,
	}, nil
}

func (d *reviewDocument) toDomain() *domain.Review {
	return &domain.Review{
		ID:        d.ID.Hex(),
		Comment:   d.Comment,
		Rating:    d.Rating,
		AuthorID:  hexOrEmpty(d.Author),
		CreatedAt: d.CreatedAt,
	}
}

func toUserDocument(u *domain.User) (*userDocument, error) {
	id, err := objectIDFromHex(u.ID)
	if err != nil {
		return nil, err
	}
	return &userDocument{
		ID:           id,
		Username:     u.Username,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt,
	}, nil
}

func (d *userDocument) toDomain() *domain.User {
	return &domain.User{
		ID:           d.ID.Hex(),
		Username:     d.Username,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		CreatedAt:    d.CreatedAt,
	}
}

func toSessionDocument(s *domain.Session) *sessionDocument {
	return &sessionDocument{
		ID:          s.ID,
		UserID:      s.UserID,
		RedirectURL: s.RedirectURL,
		Flash:       s.Flash,
		ExpiresAt:   s.ExpiresAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

func (d *sessionDocument) toDomain() *domain.Session {
	flash := d.Flash
	if flash == nil {
		flash = map[string][]string{}
	}
	return &domain.Session{
		ID:          d.ID,
		UserID:      d.UserID,
		RedirectURL: d.RedirectURL,
		Flash:       flash,
		ExpiresAt:   d.ExpiresAt,
		UpdatedAt:   d.UpdatedAt,
	}
}
