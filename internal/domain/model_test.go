package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListingIsOwnedBy(t *testing.T) {
	l := &Listing{OwnerID: "u1"}
	assert.True(t, l.IsOwnedBy("u1"))
	assert.False(t, l.IsOwnedBy("u2"))
	assert.False(t, l.IsOwnedBy(""))

	orphan := &Listing{}
	assert.False(t, orphan.IsOwnedBy(""), "anonymous callers never own ownerless listings")
}

func TestReviewIsAuthoredBy(t *testing.T) {
	r := &Review{AuthorID: "u1"}
	assert.True(t, r.IsAuthoredBy("u1"))
	assert.False(t, r.IsAuthoredBy("u2"))
	assert.False(t, r.IsAuthoredBy(""))
}

func TestListingHasReview(t *testing.T) {
	l := &Listing{ReviewIDs: []string{"r1", "r2"}}
	assert.True(t, l.HasReview("r2"))
	assert.False(t, l.HasReview("r3"))
	assert.False(t, (&Listing{}).HasReview(""))
}
