package storage

import (
	"context"

	"github.com/termfolio/pixelsmash/internal/leaderboard"
)

// CountryBoard is the local leaderboard as seen by one country. It
// implements leaderboard.Store and leaderboard.LocationService.
type CountryBoard struct {
	store   *Store
	country string
	limit   int
}

// Leaderboard returns a leaderboard.Store that credits submissions to
// country.
func (s *Store) Leaderboard(country string) *CountryBoard {
	return &CountryBoard{
		store:   s,
		country: leaderboard.NormalizeCountry(country),
		limit:   leaderboard.Limit,
	}
}

// Leaderboard implements leaderboard.Store.
func (b *CountryBoard) Leaderboard(ctx context.Context) ([]leaderboard.Entry, error) {
	return b.store.Top(ctx, b.limit)
}

// Submit implements leaderboard.Store.
func (b *CountryBoard) Submit(ctx context.Context, score int) ([]leaderboard.Entry, error) {
	if err := b.store.Accumulate(ctx, b.country, score); err != nil {
		return nil, err
	}
	return b.store.Top(ctx, b.limit)
}

// Country implements leaderboard.LocationService.
func (b *CountryBoard) Country(context.Context) (string, error) {
	return b.country, nil
}

var (
	_ leaderboard.Store           = (*CountryBoard)(nil)
	_ leaderboard.LocationService = (*CountryBoard)(nil)
)
