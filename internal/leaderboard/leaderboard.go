// Package leaderboard submits finished matches to the per-country
// leaderboard and works out how the player's country moved.
//
// The leaderboard itself lives behind the Store interface: the hosted
// service is reached through HTTPClient, and internal/storage provides a
// local SQLite equivalent.
package leaderboard

import (
	"context"
	"errors"
	"strings"

	"github.com/termfolio/pixelsmash/internal/config"
)

// Limit is the number of countries a leaderboard holds.
const Limit = 15

// DisplayLimit is the number of countries shown after a match.
const DisplayLimit = 10

// FallbackCountry is used when the caller's country cannot be determined.
const FallbackCountry = "DEV"

var (
	// ErrInFlight is returned while a submission for the match is running.
	ErrInFlight = errors.New("leaderboard: submission already in flight")

	// ErrInvalidScore is returned for scores that are not positive.
	ErrInvalidScore = errors.New("leaderboard: score must be positive")

	// ErrUnexpectedStatus is returned when the leaderboard service answers
	// with a non-2xx status.
	ErrUnexpectedStatus = errors.New("leaderboard: unexpected status")
)

// Entry is one country's accumulated total. Totals travel as decimal
// strings so large sums survive JSON number handling.
type Entry struct {
	CountryCode string `json:"country_code"`
	TotalScore  int64  `json:"total_score,string"`
	UpdatedAt   string `json:"updated_at,omitempty"`
}

// Store is a leaderboard ordered by total score, highest first.
type Store interface {
	// Leaderboard returns the current top entries.
	Leaderboard(ctx context.Context) ([]Entry, error)

	// Submit adds score to the caller's country and returns the refreshed
	// leaderboard.
	Submit(ctx context.Context, score int) ([]Entry, error)
}

// LocationService reports the caller's country code.
type LocationService interface {
	Country(ctx context.Context) (string, error)
}

// StaticLocation always reports the same country. The empty value reports
// FallbackCountry.
type StaticLocation string

// Country implements LocationService.
func (l StaticLocation) Country(context.Context) (string, error) {
	return NormalizeCountry(string(l)), nil
}

// EnvLocation returns a location fixed by the PIXELSMASH_COUNTRY
// environment variable.
func EnvLocation() StaticLocation {
	return StaticLocation(config.GetEnv(config.EnvCountry, FallbackCountry))
}

// NormalizeCountry upper-cases a country code, mapping blanks to
// FallbackCountry.
func NormalizeCountry(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return FallbackCountry
	}
	return code
}

// Find returns the 1-based rank and total of country in entries, or
// rank 0 and total 0 when it is absent.
func Find(entries []Entry, country string) (rank int, total int64) {
	for i, e := range entries {
		if e.CountryCode == country {
			return i + 1, e.TotalScore
		}
	}
	return 0, 0
}
