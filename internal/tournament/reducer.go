package tournament

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ResultInput is one submitted finish: which player, and where they placed.
type ResultInput struct {
	PlayerID string `json:"playerId"`
	Rank     int    `json:"rank"`
}

// Reducer applies operations that need a timestamp or a fresh id.
// The zero value is not usable; build one with NewReducer.
type Reducer struct {
	now   func() time.Time
	newID func() string
}

// Option customises a Reducer.
type Option func(*Reducer)

// WithClock overrides the time source used for registration and match timestamps.
func WithClock(now func() time.Time) Option {
	return func(r *Reducer) { r.now = now }
}

// WithIDGenerator overrides how player and match ids are minted.
// Ids only need to be unique for the lifetime of one tournament.
func WithIDGenerator(newID func() string) Option {
	return func(r *Reducer) { r.newID = newID }
}

// NewReducer returns a Reducer using the wall clock (UTC) and random UUIDs.
func NewReducer(opts ...Option) *Reducer {
	r := &Reducer{
		now:   func() time.Time { return time.Now().UTC() },
		newID: func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var defaultReducer = NewReducer()

// Register adds a player using the default Reducer.
func Register(s State, name string) (State, error) {
	return defaultReducer.Register(s, name)
}

// RecordMatch records a match using the default Reducer.
func RecordMatch(s State, results []ResultInput) (State, error) {
	return defaultReducer.RecordMatch(s, results)
}

// Register appends a new player named name with score 0 and StatusNormal.
//
// Names are compared exactly (case-sensitive) after trimming surrounding whitespace.
// A name already in use returns ErrDuplicatePlayer; a blank name returns ErrInvalidName.
func (r *Reducer) Register(s State, name string) (State, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return s, ErrInvalidName
	}
	for _, p := range s.Players {
		if p.Name == name {
			return s, fmt.Errorf("%w: %q", ErrDuplicatePlayer, name)
		}
	}

	next := s.Clone()
	next.Players = append(next.Players, Player{
		ID:           r.newID(),
		Name:         name,
		TotalScore:   0,
		Status:       StatusNormal,
		RegisteredAt: r.now(),
	})
	return next, nil
}

// RecordMatch appends a match built from results and returns the recomputed state.
//
// The checks run in this order and the first failure is returned with s unchanged:
//   - the tournament is finished → ErrTournamentFinished
//   - ranks are not exactly 1..N (or N is 0 or above MaxRank) → ErrInvalidRankSet
//   - a player id is not registered → ErrUnknownPlayer
//   - a player id is submitted twice → ErrDuplicateResult
//
// After the match is appended every player's score and status is rebuilt from the full
// ledger, then winners of this match who were already elimination-eligible going into it are
// promoted to champion.
func (r *Reducer) RecordMatch(s State, results []ResultInput) (State, error) {
	if s.IsFinished {
		return s, ErrTournamentFinished
	}
	if err := validateRanks(results); err != nil {
		return s, err
	}

	matchResults := make([]MatchResult, 0, len(results))
	seen := make(map[string]bool, len(results))
	for _, in := range results {
		player, ok := s.Player(in.PlayerID)
		if !ok {
			return s, fmt.Errorf("%w: %s", ErrUnknownPlayer, in.PlayerID)
		}
		if seen[in.PlayerID] {
			return s, fmt.Errorf("%w: %s", ErrDuplicateResult, player.Name)
		}
		seen[in.PlayerID] = true

		// validateRanks has already bounded the rank to the table.
		points, _ := PointsForRank(in.Rank)
		matchResults = append(matchResults, MatchResult{
			PlayerID:   player.ID,
			PlayerName: player.Name,
			Rank:       in.Rank,
			Score:      points,
		})
	}

	// Eligibility is judged on the state going into the match.
	eligible := make(map[string]bool)
	for _, p := range s.Players {
		if p.Status == StatusElimination {
			eligible[p.ID] = true
		}
	}

	now := r.now()
	next := s.Clone()
	next.Matches = append(next.Matches, Match{
		ID:        r.newID(),
		Date:      now,
		CreatedAt: now,
		Results:   matchResults,
	})
	next.Players = recomputePlayers(next.Players, next.Matches)

	for _, res := range matchResults {
		if res.Rank != 1 || !eligible[res.PlayerID] {
			continue
		}
		for i := range next.Players {
			if next.Players[i].ID == res.PlayerID {
				next.Players[i].Status = StatusChampion
			}
		}
	}

	deriveTotals(&next)
	return next, nil
}

// DeleteMatch removes the match with id matchID and rebuilds every score and status.
// An unknown id is a no-op apart from the recomputation. Champions are never demoted.
func DeleteMatch(s State, matchID string) State {
	next := s.Clone()
	kept := next.Matches[:0]
	for _, m := range next.Matches {
		if m.ID != matchID {
			kept = append(kept, m)
		}
	}
	next.Matches = kept
	next.Players = recomputePlayers(next.Players, next.Matches)
	deriveTotals(&next)
	return next
}

// Recompute rebuilds scores, statuses, ChampionCount and IsFinished from the match ledger.
// It is the same rule every mutation runs, exposed for documents that arrive from outside
// (for example a whole-document replace) so their derived fields cannot drift.
func Recompute(s State) State {
	next := s.Clone()
	next.Players = recomputePlayers(next.Players, next.Matches)
	deriveTotals(&next)
	return next
}

// Validate performs the shape checks a replaced document must pass: every player and match has
// an id, player ids are unique, and statuses are known values.
func Validate(s State) error {
	if s.Players == nil || s.Matches == nil {
		return fmt.Errorf("%w: players and matches must be arrays", ErrInvalidState)
	}
	ids := make(map[string]bool, len(s.Players))
	for _, p := range s.Players {
		if p.ID == "" {
			return fmt.Errorf("%w: player without id", ErrInvalidState)
		}
		if ids[p.ID] {
			return fmt.Errorf("%w: duplicate player id %s", ErrInvalidState, p.ID)
		}
		ids[p.ID] = true
		if !p.Status.Valid() {
			return fmt.Errorf("%w: unknown status %q", ErrInvalidState, p.Status)
		}
	}
	for _, m := range s.Matches {
		if m.ID == "" {
			return fmt.Errorf("%w: match without id", ErrInvalidState)
		}
	}
	return nil
}

func validateRanks(results []ResultInput) error {
	n := len(results)
	if n == 0 || n > MaxRank {
		return fmt.Errorf("%w: got %d results", ErrInvalidRankSet, n)
	}
	seen := make([]bool, n+1)
	for _, r := range results {
		if r.Rank < 1 || r.Rank > n || seen[r.Rank] {
			return fmt.Errorf("%w: rank %d", ErrInvalidRankSet, r.Rank)
		}
		seen[r.Rank] = true
	}
	return nil
}

// recomputePlayers returns players with TotalScore summed over matches and Status re-derived.
// players is modified in place; callers pass a clone.
func recomputePlayers(players []Player, matches []Match) []Player {
	totals := make(map[string]int, len(players))
	for _, m := range matches {
		for _, res := range m.Results {
			totals[res.PlayerID] += res.Score
		}
	}
	for i := range players {
		players[i].TotalScore = totals[players[i].ID]
		players[i].Status = statusFor(players[i].TotalScore, players[i].Status)
	}
	return players
}

// statusFor keeps champions as they are and otherwise derives the status from score.
func statusFor(score int, current Status) Status {
	switch {
	case current == StatusChampion:
		return StatusChampion
	case score >= EliminationThreshold:
		return StatusElimination
	default:
		return StatusNormal
	}
}

func deriveTotals(s *State) {
	champions := 0
	for _, p := range s.Players {
		if p.Status == StatusChampion {
			champions++
		}
	}
	s.ChampionCount = champions
	s.IsFinished = champions >= MaxChampions
}
