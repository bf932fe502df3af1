package mongodb

import (
	"testing"
	"time"

	"github.com/Abdurahmanit/GroupProject/wanderlust/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestListingDocumentConversion(t *testing.T) {
	owner := primitive.NewObjectID()
	r1, r2 := primitive.NewObjectID(), primitive.NewObjectID()
	now := time.Now().UTC().Truncate(time.Millisecond)

	in := &domain.Listing{
		Title:       "Cozy Beachfront Cottage",
		Description: "Escape to this charming cottage",
		Image:       domain.Image{URL: "http://minio/wanderlust/a.png", Filename: "wanderlust_DEV/a.png"},
		Price:       1500,
		Location:    "Malibu",
		OwnerID:     owner.Hex(),
		ReviewIDs:   []string{r1.Hex(), r2.Hex()},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	doc, err := toListingDocument(in)
	require.NoError(t, err)
	assert.True(t, doc.ID.IsZero(), "new listings get their id on insert")
	assert.Equal(t, owner, doc.Owner)
	assert.Equal(t, []primitive.ObjectID{r1, r2}, doc.Reviews)

	doc.ID = primitive.NewObjectID()
	out := doc.toDomain()
	assert.Equal(t, doc.ID.Hex(), out.ID)
	assert.Equal(t, in.Title, out.Title)
	assert.Equal(t, in.Image, out.Image)
	assert.Equal(t, in.ReviewIDs, out.ReviewIDs)
	assert.Equal(t, in.OwnerID, out.OwnerID)
}

func TestListingDocumentConversion_RejectsBadReferences(t *testing.T) {
	_, err := toListingDocument(&domain.Listing{OwnerID: "not-hex"})
	assert.Error(t, err)

	_, err = toListingDocument(&domain.Listing{ReviewIDs: []string{"nope"}})
	assert.Error(t, err)
}

func TestEmptyReviewsDecodeAsEmptySlice(t *testing.T) {
	doc := &listingDocument{ID: primitive.NewObjectID()}
	out := doc.toDomain()
	assert.NotNil(t, out.ReviewIDs)
	assert.Empty(t, out.ReviewIDs)
	assert.Equal(t, "", out.OwnerID)
}

func TestObjectIDsSkipsMalformed(t *testing.T) {
	good := primitive.NewObjectID()
	assert.Equal(t, []primitive.ObjectID{good}, objectIDs([]string{"bad", good.Hex(), ""}))
}

func TestSessionDocumentConversion(t *testing.T) {
	s := &domain.Session{ID: "sid", UserID: "u1", RedirectURL: "/listings/new"}
	out := toSessionDocument(s).toDomain()
	assert.Equal(t, "sid", out.ID)
	assert.Equal(t, "/listings/new", out.RedirectURL)
	assert.NotNil(t, out.Flash)
}
