package tournament

const (
	// EliminationThreshold is the cumulative score at which a player becomes elimination-eligible.
	EliminationThreshold = 25

	// MaxChampions is the number of champions that ends the tournament.
	MaxChampions = 3

	// MaxRank is the last rank the scoring table covers, which also caps players per match.
	MaxRank = 8
)

// pointsByRank is indexed by rank; index 0 is unused.
var pointsByRank = [MaxRank + 1]int{0, 8, 6, 5, 4, 3, 2, 1, 0}

// PointsForRank returns the points awarded for finishing at rank.
// ok is false for ranks outside 1..MaxRank.
func PointsForRank(rank int) (points int, ok bool) {
	if rank < 1 || rank > MaxRank {
		return 0, false
	}
	return pointsByRank[rank], true
}

// ScoringTable returns the rank→points table, e.g. for display next to a rank picker.
func ScoringTable() map[int]int {
	table := make(map[int]int, MaxRank)
	for rank := 1; rank <= MaxRank; rank++ {
		table[rank] = pointsByRank[rank]
	}
	return table
}
