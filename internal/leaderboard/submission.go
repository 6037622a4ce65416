package leaderboard

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"
)

// State is the lifecycle of a match's submission.
type State int

const (
	StateIdle     State = iota // Nothing submitted yet
	StateInFlight              // Network calls running
	StateDone                  // Submitted; the result is cached
	StateFailed                // Last attempt failed; retry allowed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateInFlight:
		return "in_flight"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result describes a completed submission.
type Result struct {
	Country       string
	PreviousScore int64
	NewScore      int64
	ScoreGained   int
	PreviousRank  int // 0 when the country was not on the board
	NewRank       int // 0 when the country is not on the refreshed board
	Change        RankChange
	Leaderboard   []Entry
}

// Top returns at most n leaderboard entries.
func (r Result) Top(n int) []Entry {
	if len(r.Leaderboard) <= n {
		return r.Leaderboard
	}
	return r.Leaderboard[:n]
}

// Submission submits one match's score at most once.
//
// Submit may be called any number of times: a running submission makes
// further calls fail with ErrInFlight, a finished one returns its cached
// Result without touching the network, and a failed one is retried.
type Submission struct {
	store    Store
	location LocationService
	log      *log.Logger

	mu      sync.Mutex
	state   State
	result  Result
	err     error
	matchID string
	gen     uint64
}

// NewSubmission creates a submission bound to a store and location
// service. A nil logger discards output.
func NewSubmission(store Store, location LocationService, logger *log.Logger) *Submission {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Submission{
		store:    store,
		location: location,
		log:      logger,
	}
}

// Reset forgets the previous match. A submission still running for it
// finishes without affecting the new match.
func (s *Submission) Reset(matchID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	s.state = StateIdle
	s.result = Result{}
	s.err = nil
	s.matchID = matchID
}

// State returns the current lifecycle state.
func (s *Submission) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Err returns the error of the last failed attempt.
func (s *Submission) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Result returns the cached result once the submission is done.
func (s *Submission) Result() (Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result, s.state == StateDone
}

// Submit sends score to the leaderboard and classifies the rank change.
func (s *Submission) Submit(ctx context.Context, score int) (Result, error) {
	if score <= 0 {
		return Result{}, ErrInvalidScore
	}

	s.mu.Lock()
	switch s.state {
	case StateInFlight:
		s.mu.Unlock()
		return Result{}, ErrInFlight
	case StateDone:
		res := s.result
		s.mu.Unlock()
		return res, nil
	}
	s.state = StateInFlight
	s.err = nil
	gen, matchID := s.gen, s.matchID
	s.mu.Unlock()

	res, err := s.run(ctx, score)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return res, err
	}
	if err != nil {
		s.state = StateFailed
		s.err = err
		s.log.Warn("score submission failed", "match", matchID, "score", score, "err", err)
		return Result{}, err
	}
	s.state = StateDone
	s.result = res
	s.log.Info("score submitted",
		"match", matchID,
		"country", res.Country,
		"total", res.NewScore,
		"rank", res.NewRank,
		"change", res.Change,
	)
	return res, nil
}

func (s *Submission) run(ctx context.Context, score int) (Result, error) {
	before, err := s.store.Leaderboard(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("leaderboard: cannot fetch leaderboard: %w", err)
	}

	country := s.country(ctx)
	prevRank, prevScore := Find(before, country)

	after, err := s.store.Submit(ctx, score)
	if err != nil {
		return Result{}, fmt.Errorf("leaderboard: cannot submit score: %w", err)
	}
	newRank, newScore := Find(after, country)

	return Result{
		Country:       country,
		PreviousScore: prevScore,
		NewScore:      newScore,
		ScoreGained:   score,
		PreviousRank:  prevRank,
		NewRank:       newRank,
		Change:        ClassifyRankChange(prevRank, newRank),
		Leaderboard:   after,
	}, nil
}

// country never fails: lookups that error fall back to FallbackCountry.
func (s *Submission) country(ctx context.Context) string {
	if s.location == nil {
		return FallbackCountry
	}
	code, err := s.location.Country(ctx)
	if err != nil {
		s.log.Warn("location lookup failed", "err", err, "fallback", FallbackCountry)
		return FallbackCountry
	}
	return NormalizeCountry(code)
}
