// Package tournament holds the scoring and state-transition rules for a game-night tournament.
//
// The whole tournament is one value, State: the registered players, the ledger of recorded
// matches and two derived fields (championCount and isFinished). Every operation in this package
// takes a State and returns a brand-new State. Nothing here reads or writes storage, and the
// input value is never modified. Callers load the document, apply one operation, and persist
// the returned value.
//
// Scores and statuses are never patched incrementally. After every change to the ledger the
// registry is rebuilt from scratch (see Recompute), so deleting a match always lands players
// back on the numbers the remaining matches justify.
package tournament

import "time"

// Status is a player's standing in the tournament. Values match the JSON wire format.
type Status string

const (
	StatusNormal      Status = "normal"      // Below the elimination threshold
	StatusElimination Status = "elimination" // At or above the threshold; a match win now crowns them
	StatusChampion    Status = "champion"    // Permanent once granted
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusNormal, StatusElimination, StatusChampion:
		return true
	}
	return false
}

// Player is one registered participant.
// TotalScore and Status are derived from the match ledger; see Recompute.
type Player struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	TotalScore   int       `json:"totalScore"`
	Status       Status    `json:"status"`
	RegisteredAt time.Time `json:"registeredAt"` // Only used as the final leaderboard tie-break
}

// MatchResult is one player's finish in one match.
// PlayerName is a snapshot taken when the match was recorded, not a live reference.
type MatchResult struct {
	PlayerID   string `json:"playerId"`
	PlayerName string `json:"playerName"`
	Rank       int    `json:"rank"`  // 1 = winner
	Score      int    `json:"score"` // Points from the scoring table for Rank
}

// Match is one recorded game. Ranks across Results form the permutation 1..len(Results).
type Match struct {
	ID        string        `json:"id"`
	Date      time.Time     `json:"date"`
	CreatedAt time.Time     `json:"createdAt"`
	Results   []MatchResult `json:"results"`
}

// State is the aggregate root persisted as a single JSON document.
//
// ChampionCount and IsFinished are derived: ChampionCount is the number of players with
// StatusChampion and IsFinished is ChampionCount >= MaxChampions. They are exported only so
// they appear in the JSON document.
type State struct {
	Players       []Player `json:"players"`
	Matches       []Match  `json:"matches"`
	IsFinished    bool     `json:"isFinished"`
	ChampionCount int      `json:"championCount"`
}

// Empty returns the initial tournament: no players, no matches, not finished.
// Slices are non-nil so the document serialises as [] rather than null.
func Empty() State {
	return State{
		Players: []Player{},
		Matches: []Match{},
	}
}

// Clone returns a deep copy of s. Operations build on a clone so the caller's value is untouched.
func (s State) Clone() State {
	out := State{
		Players:       make([]Player, len(s.Players)),
		Matches:       make([]Match, len(s.Matches)),
		IsFinished:    s.IsFinished,
		ChampionCount: s.ChampionCount,
	}
	copy(out.Players, s.Players)
	for i, m := range s.Matches {
		m.Results = append([]MatchResult(nil), m.Results...)
		out.Matches[i] = m
	}
	return out
}

// Player returns the player with the given id.
func (s State) Player(id string) (Player, bool) {
	for _, p := range s.Players {
		if p.ID == id {
			return p, true
		}
	}
	return Player{}, false
}

// Match returns the match with the given id.
func (s State) Match(id string) (Match, bool) {
	for _, m := range s.Matches {
		if m.ID == id {
			return m, true
		}
	}
	return Match{}, false
}
