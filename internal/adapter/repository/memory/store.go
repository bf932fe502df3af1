// Package memory is an in-process implementation of the repositories, used
// with STORE_DRIVER=memory for local runs and by handler tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Abdurahmanit/GroupProject/wanderlust/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Store holds every collection behind one lock.
type Store struct {
	mu   sync.RWMutex
	txMu sync.Mutex

	listings map[string]domain.Listing
	reviews  map[string]domain.Review
	users    map[string]domain.User
	sessions map[string]domain.Session
	seq      int64
}

func NewStore() *Store {
	return &Store{
		listings: map[string]domain.Listing{},
		reviews:  map[string]domain.Review{},
		users:    map[string]domain.User{},
		sessions: map[string]domain.Session{},
	}
}

func (s *Store) Listings() *ListingRepository { return &ListingRepository{s: s} }
func (s *Store) Reviews() *ReviewRepository   { return &ReviewRepository{s: s} }
func (s *Store) Users() *UserRepository       { return &UserRepository{s: s} }
func (s *Store) Sessions() *SessionRepository { return &SessionRepository{s: s} }

// WithinTransaction serializes transactions and restores a snapshot when fn
// fails. Writes made outside a transaction while one is running may be lost
// on rollback.
func (s *Store) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	snap := s.snapshot()
	if err := fn(ctx); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

type snapshot struct {
	listings map[string]domain.Listing
	reviews  map[string]domain.Review
	users    map[string]domain.User
}

func (s *Store) snapshot() snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := snapshot{
		listings: make(map[string]domain.Listing, len(s.listings)),
		reviews:  make(map[string]domain.Review, len(s.reviews)),
		users:    make(map[string]domain.User, len(s.users)),
	}
	for k, v := range s.listings {
		snap.listings[k] = copyListing(v)
	}
	for k, v := range s.reviews {
		snap.reviews[k] = v
	}
	for k, v := range s.users {
		snap.users[k] = v
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listings = snap.listings
	s.reviews = snap.reviews
	s.users = snap.users
}

// tick returns a strictly increasing timestamp so insertion order survives
// sorting even on coarse clocks.
func (s *Store) tick() time.Time {
	s.seq++
	return time.Now().UTC().Add(time.Duration(s.seq))
}

func copyListing(l domain.Listing) domain.Listing {
	ids := make([]string, len(l.ReviewIDs))
	copy(ids, l.ReviewIDs)
	l.ReviewIDs = ids
	return l
}

func newID() string {
	return primitive.NewObjectID().Hex()
}

type ListingRepository struct{ s *Store }

func (r *ListingRepository) Create(_ context.Context, listing *domain.Listing) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if listing.ID == "" {
		listing.ID = newID()
	}
	now := r.s.tick()
	listing.CreatedAt, listing.UpdatedAt = now, now
	if listing.ReviewIDs == nil {
		listing.ReviewIDs = []string{}
	}
	r.s.listings[listing.ID] = copyListing(*listing)
	return nil
}

func (r *ListingRepository) GetByID(_ context.Context, id string) (*domain.Listing, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	l, ok := r.s.listings[id]
	if !ok {
		return nil, domain.ErrListingNotFound
	}
	out := copyListing(l)
	return &out, nil
}

func (r *ListingRepository) List(_ context.Context) ([]*domain.Listing, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*domain.Listing, 0, len(r.s.listings))
	for _, l := range r.s.listings {
		c := copyListing(l)
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *ListingRepository) Update(_ context.Context, listing *domain.Listing) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.listings[listing.ID]
	if !ok {
		return domain.ErrListingNotFound
	}
	cur.Title = listing.Title
	cur.Description = listing.Description
	cur.Price = listing.Price
	cur.Location = listing.Location
	cur.Image = listing.Image
	cur.UpdatedAt = r.s.tick()
	listing.UpdatedAt = cur.UpdatedAt
	r.s.listings[listing.ID] = cur
	return nil
}

func (r *ListingRepository) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.listings[id]; !ok {
		return domain.ErrListingNotFound
	}
	delete(r.s.listings, id)
	return nil
}

func (r *ListingRepository) AddReview(_ context.Context, listingID, reviewID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	l, ok := r.s.listings[listingID]
	if !ok {
		return domain.ErrListingNotFound
	}
	l = copyListing(l)
	l.ReviewIDs = append(l.ReviewIDs, reviewID)
	r.s.listings[listingID] = l
	return nil
}

func (r *ListingRepository) RemoveReview(_ context.Context, listingID, reviewID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	l, ok := r.s.listings[listingID]
	if !ok {
		return domain.ErrListingNotFound
	}
	kept := make([]string, 0, len(l.ReviewIDs))
	for _, id := range l.ReviewIDs {
		if id != reviewID {
			kept = append(kept, id)
		}
	}
	l.ReviewIDs = kept
	r.s.listings[listingID] = l
	return nil
}

type ReviewRepository struct{ s *Store }

func (r *ReviewRepository) Create(_ context.Context, review *domain.Review) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if review.ID == "" {
		review.ID = newID()
	}
	review.CreatedAt = r.s.tick()
	r.s.reviews[review.ID] = *review
	return nil
}

func (r *ReviewRepository) GetByID(_ context.Context, id string) (*domain.Review, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	rv, ok := r.s.reviews[id]
	if !ok {
		return nil, domain.ErrReviewNotFound
	}
	return &rv, nil
}

func (r *ReviewRepository) GetByIDs(_ context.Context, ids []string) ([]*domain.Review, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*domain.Review, 0, len(ids))
	for _, id := range ids {
		if rv, ok := r.s.reviews[id]; ok {
			rv := rv
			out = append(out, &rv)
		}
	}
	return out, nil
}

func (r *ReviewRepository) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.reviews[id]; !ok {
		return domain.ErrReviewNotFound
	}
	delete(r.s.reviews, id)
	return nil
}

func (r *ReviewRepository) DeleteMany(_ context.Context, ids []string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for _, id := range ids {
		if _, ok := r.s.reviews[id]; ok {
			delete(r.s.reviews, id)
			n++
		}
	}
	return n, nil
}

type UserRepository struct{ s *Store }

func (r *UserRepository) Create(_ context.Context, user *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Username == user.Username {
			return domain.ErrDuplicateUsername
		}
	}
	if user.ID == "" {
		user.ID = newID()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = r.s.tick()
	}
	r.s.users[user.ID] = *user
	return nil
}

func (r *UserRepository) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &u, nil
}

func (r *UserRepository) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if u.Username == username {
			u := u
			return &u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *UserRepository) GetByIDs(_ context.Context, ids []string) ([]*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*domain.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := r.s.users[id]; ok {
			u := u
			out = append(out, &u)
		}
	}
	return out, nil
}

type SessionRepository struct{ s *Store }

func (r *SessionRepository) Get(_ context.Context, id string) (*domain.Session, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	sess, ok := r.s.sessions[id]
	if !ok || !sess.ExpiresAt.After(time.Now()) {
		return nil, domain.ErrSessionNotFound
	}
	flash := make(map[string][]string, len(sess.Flash))
	for k, v := range sess.Flash {
		flash[k] = append([]string(nil), v...)
	}
	sess.Flash = flash
	return &sess, nil
}

func (r *SessionRepository) Save(_ context.Context, session *domain.Session) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c := *session
	c.Flash = make(map[string][]string, len(session.Flash))
	for k, v := range session.Flash {
		c.Flash[k] = append([]string(nil), v...)
	}
	r.s.sessions[c.ID] = c
	return nil
}

func (r *SessionRepository) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.sessions, id)
	return nil
}
