package tournament

import (
	"cmp"
	"slices"
)

// Standing is a player with their 1-based leaderboard position.
type Standing struct {
	Position int `json:"position"`
	Player
}

// Leaderboard returns players ordered for display: champions first, then by score descending,
// then by registration time ascending. The input slice is not reordered.
func Leaderboard(players []Player) []Player {
	sorted := slices.Clone(players)
	slices.SortStableFunc(sorted, func(a, b Player) int {
		if ac, bc := a.Status == StatusChampion, b.Status == StatusChampion; ac != bc {
			if ac {
				return -1
			}
			return 1
		}
		if c := cmp.Compare(b.TotalScore, a.TotalScore); c != 0 {
			return c
		}
		return a.RegisteredAt.Compare(b.RegisteredAt)
	})
	if sorted == nil {
		sorted = []Player{}
	}
	return sorted
}

// Standings is Leaderboard with positions attached.
func Standings(players []Player) []Standing {
	ordered := Leaderboard(players)
	out := make([]Standing, len(ordered))
	for i, p := range ordered {
		out[i] = Standing{Position: i + 1, Player: p}
	}
	return out
}
