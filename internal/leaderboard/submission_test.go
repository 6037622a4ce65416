package leaderboard

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"sync"
	"testing"
)

// memoryStore accumulates scores for one country in memory.
type memoryStore struct {
	mu      sync.Mutex
	country string
	totals  map[string]int64
	submits int

	leaderboardErr error
	submitErr      error

	// When set, Submit signals started and waits for release.
	started chan struct{}
	release chan struct{}
}

func newMemoryStore(country string, totals map[string]int64) *memoryStore {
	if totals == nil {
		totals = map[string]int64{}
	}
	return &memoryStore{country: country, totals: totals}
}

func (s *memoryStore) Leaderboard(context.Context) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.leaderboardErr != nil {
		return nil, s.leaderboardErr
	}
	return s.top(), nil
}

func (s *memoryStore) Submit(_ context.Context, score int) ([]Entry, error) {
	if s.started != nil {
		s.started <- struct{}{}
		<-s.release
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.submitErr != nil {
		return nil, s.submitErr
	}
	s.submits++
	s.totals[s.country] += int64(score)
	return s.top(), nil
}

func (s *memoryStore) top() []Entry {
	entries := make([]Entry, 0, len(s.totals))
	for code, total := range s.totals {
		entries = append(entries, Entry{CountryCode: code, TotalScore: total})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].TotalScore != entries[j].TotalScore {
			return entries[i].TotalScore > entries[j].TotalScore
		}
		return entries[i].CountryCode < entries[j].CountryCode
	})
	if len(entries) > Limit {
		entries = entries[:Limit]
	}
	return entries
}

type failingLocation struct{}

func (failingLocation) Country(context.Context) (string, error) {
	return "", errors.New("lookup timed out")
}

func TestSubmitFirstEntry(t *testing.T) {
	store := newMemoryStore("TW", map[string]int64{"US": 3000, "JP": 1200})
	sub := NewSubmission(store, StaticLocation("TW"), nil)
	sub.Reset("match-1")

	res, err := sub.Submit(context.Background(), 500)
	if err != nil {
		t.Fatalf("Submit() failed: %v", err)
	}

	if res.Change != RankNew {
		t.Errorf("change = %s, expected new", res.Change)
	}
	if res.PreviousRank != 0 || res.PreviousScore != 0 {
		t.Errorf("previous = #%d %d, expected none", res.PreviousRank, res.PreviousScore)
	}
	if res.NewScore != 500 || res.NewRank != 3 || res.ScoreGained != 500 {
		t.Errorf("result = %+v", res)
	}

	rank, total := Find(res.Leaderboard, "TW")
	if rank != 3 || total != 500 {
		t.Errorf("TW on board at #%d with %d", rank, total)
	}

	data, err := json.Marshal(res.Leaderboard[rank-1])
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"total_score":"500"`) {
		t.Errorf("entry JSON = %s, expected total as a string", data)
	}
}

func TestSubmitRankUp(t *testing.T) {
	store := newMemoryStore("TW", map[string]int64{"US": 950, "JP": 900, "TW": 800, "DE": 100})
	sub := NewSubmission(store, StaticLocation("tw"), nil)

	res, err := sub.Submit(context.Background(), 200)
	if err != nil {
		t.Fatalf("Submit() failed: %v", err)
	}

	if res.PreviousRank != 3 || res.NewRank != 1 {
		t.Errorf("rank #%d -> #%d, expected #3 -> #1", res.PreviousRank, res.NewRank)
	}
	if res.Change != RankUp {
		t.Errorf("change = %s, expected up", res.Change)
	}
	if res.PreviousScore != 800 || res.NewScore != 1000 {
		t.Errorf("score %d -> %d, expected 800 -> 1000", res.PreviousScore, res.NewScore)
	}
	if got := res.Change.Describe(res.PreviousRank, res.NewRank); got != "Up 2! From #3 to #1" {
		t.Errorf("Describe() = %q", got)
	}
}

func TestSubmitIsIdempotent(t *testing.T) {
	store := newMemoryStore("TW", nil)
	sub := NewSubmission(store, StaticLocation("TW"), nil)

	first, err := sub.Submit(context.Background(), 300)
	if err != nil {
		t.Fatalf("first Submit() failed: %v", err)
	}
	second, err := sub.Submit(context.Background(), 300)
	if err != nil {
		t.Fatalf("second Submit() failed: %v", err)
	}

	if store.submits != 1 {
		t.Errorf("store saw %d submits, expected 1", store.submits)
	}
	if second.NewScore != first.NewScore || store.totals["TW"] != 300 {
		t.Errorf("second submit changed the total: %d", store.totals["TW"])
	}
	if sub.State() != StateDone {
		t.Errorf("state = %s, expected done", sub.State())
	}

	// A new match submits again
	sub.Reset("match-2")
	if _, err := sub.Submit(context.Background(), 300); err != nil {
		t.Fatalf("Submit() after reset failed: %v", err)
	}
	if store.submits != 2 || store.totals["TW"] != 600 {
		t.Errorf("after reset: %d submits, total %d", store.submits, store.totals["TW"])
	}
}

func TestSubmitInFlight(t *testing.T) {
	store := newMemoryStore("TW", nil)
	store.started = make(chan struct{})
	store.release = make(chan struct{})
	sub := NewSubmission(store, StaticLocation("TW"), nil)

	done := make(chan error, 1)
	go func() {
		_, err := sub.Submit(context.Background(), 100)
		done <- err
	}()
	<-store.started

	if sub.State() != StateInFlight {
		t.Errorf("state = %s, expected in_flight", sub.State())
	}
	if _, err := sub.Submit(context.Background(), 100); !errors.Is(err, ErrInFlight) {
		t.Errorf("concurrent Submit() error = %v, expected ErrInFlight", err)
	}

	close(store.release)
	if err := <-done; err != nil {
		t.Fatalf("Submit() failed: %v", err)
	}
	if store.submits != 1 {
		t.Errorf("store saw %d submits, expected 1", store.submits)
	}
}

func TestSubmitFailureIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		fail func(s *memoryStore)
		want string
	}{
		{"leaderboard fetch", func(s *memoryStore) { s.leaderboardErr = errors.New("connection refused") }, "cannot fetch leaderboard"},
		{"submit", func(s *memoryStore) { s.submitErr = errors.New("connection reset") }, "cannot submit score"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemoryStore("TW", nil)
			tt.fail(store)
			sub := NewSubmission(store, StaticLocation("TW"), nil)

			_, err := sub.Submit(context.Background(), 400)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("Submit() error = %v, expected %q", err, tt.want)
			}
			if sub.State() != StateFailed || sub.Err() == nil {
				t.Errorf("state = %s, err = %v", sub.State(), sub.Err())
			}
			if _, ok := sub.Result(); ok {
				t.Error("failed submission should have no result")
			}

			store.leaderboardErr, store.submitErr = nil, nil
			res, err := sub.Submit(context.Background(), 400)
			if err != nil {
				t.Fatalf("retry failed: %v", err)
			}
			if res.NewScore != 400 || sub.State() != StateDone || sub.Err() != nil {
				t.Errorf("after retry: %+v, state %s", res, sub.State())
			}
		})
	}
}

func TestSubmitLocationFallback(t *testing.T) {
	store := newMemoryStore(FallbackCountry, nil)
	sub := NewSubmission(store, failingLocation{}, nil)

	res, err := sub.Submit(context.Background(), 100)
	if err != nil {
		t.Fatalf("Submit() failed: %v", err)
	}
	if res.Country != FallbackCountry || res.NewRank != 1 {
		t.Errorf("result = %+v, expected the fallback country ranked first", res)
	}
}

func TestSubmitRejectsInvalidScore(t *testing.T) {
	store := newMemoryStore("TW", nil)
	sub := NewSubmission(store, StaticLocation("TW"), nil)

	for _, score := range []int{0, -5} {
		if _, err := sub.Submit(context.Background(), score); !errors.Is(err, ErrInvalidScore) {
			t.Errorf("Submit(%d) error = %v, expected ErrInvalidScore", score, err)
		}
	}
	if sub.State() != StateIdle || store.submits != 0 {
		t.Errorf("invalid score changed state to %s", sub.State())
	}
}

func TestResetDiscardsRunningSubmission(t *testing.T) {
	store := newMemoryStore("TW", nil)
	store.started = make(chan struct{})
	store.release = make(chan struct{})
	sub := NewSubmission(store, StaticLocation("TW"), nil)
	sub.Reset("old")

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = sub.Submit(context.Background(), 100)
	}()
	<-store.started

	sub.Reset("new")
	close(store.release)
	<-done

	if sub.State() != StateIdle {
		t.Errorf("state = %s, expected idle for the new match", sub.State())
	}
	if _, ok := sub.Result(); ok {
		t.Error("old match result leaked into the new match")
	}
}

func TestResultTop(t *testing.T) {
	res := Result{Leaderboard: make([]Entry, 15)}
	if got := len(res.Top(DisplayLimit)); got != 10 {
		t.Errorf("Top(10) returned %d entries", got)
	}
	res.Leaderboard = res.Leaderboard[:4]
	if got := len(res.Top(DisplayLimit)); got != 4 {
		t.Errorf("Top(10) of 4 returned %d entries", got)
	}
}
