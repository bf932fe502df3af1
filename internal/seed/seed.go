// Package seed fills a store with sample listings for local development.
package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/Abdurahmanit/GroupProject/wanderlust/internal/domain"
	"github.com/Abdurahmanit/GroupProject/wanderlust/internal/platform/logger"
	"go.uber.org/zap"
)

// Registrar creates an account with a hashed password.
type Registrar interface {
	Register(ctx context.Context, username, email, password string) (*domain.User, error)
}

type Seeder struct {
	listings domain.ListingRepository
	reviews  domain.ReviewRepository
	users    domain.UserRepository
	accounts Registrar
	logger   *logger.Logger
}

func NewSeeder(listings domain.ListingRepository, reviews domain.ReviewRepository, users domain.UserRepository, accounts Registrar, log *logger.Logger) *Seeder {
	return &Seeder{
		listings: listings,
		reviews:  reviews,
		users:    users,
		accounts: accounts,
		logger:   log.Named("Seeder"),
	}
}

// Owner returns the user named username, registering it first when missing.
func (s *Seeder) Owner(ctx context.Context, username, email, password string) (*domain.User, error) {
	u, err := s.users.GetByUsername(ctx, username)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("lookup owner %q: %w", username, err)
	}
	u, err = s.accounts.Register(ctx, username, email, password)
	if err != nil {
		return nil, fmt.Errorf("register owner %q: %w", username, err)
	}
	s.logger.Info("Registered seed owner", zap.String("username", username))
	return u, nil
}

// Clear deletes every listing together with its reviews and returns how many
// listings were removed.
func (s *Seeder) Clear(ctx context.Context) (int, error) {
	all, err := s.listings.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("list listings: %w", err)
	}
	for _, l := range all {
		if len(l.ReviewIDs) > 0 {
			if _, err := s.reviews.DeleteMany(ctx, l.ReviewIDs); err != nil {
				return 0, fmt.Errorf("delete reviews of %s: %w", l.ID, err)
			}
		}
		if err := s.listings.Delete(ctx, l.ID); err != nil && !errors.Is(err, domain.ErrListingNotFound) {
			return 0, fmt.Errorf("delete listing %s: %w", l.ID, err)
		}
	}
	return len(all), nil
}

// Listings inserts the sample data owned by ownerID.
func (s *Seeder) Listings(ctx context.Context, ownerID string) ([]*domain.Listing, error) {
	out := make([]*domain.Listing, 0, len(samples))
	for _, smp := range samples {
		l := smp
		l.OwnerID = ownerID
		l.ReviewIDs = nil
		if err := s.listings.Create(ctx, &l); err != nil {
			return out, fmt.Errorf("create %q: %w", l.Title, err)
		}
		out = append(out, &l)
	}
	s.logger.Info("Sample listings inserted", zap.Int("count", len(out)), zap.String("owner_id", ownerID))
	return out, nil
}
