package tournament

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func names(players []Player) []string {
	out := make([]string, len(players))
	for i, p := range players {
		out[i] = p.Name
	}
	return out
}

func TestLeaderboard(t *testing.T) {
	at := func(minute int) time.Time { return epoch.Add(time.Duration(minute) * time.Minute) }

	tests := []struct {
		name    string
		players []Player
		want    []string
	}{
		{
			name: "champion first then score then registration",
			players: []Player{
				{Name: "A", TotalScore: 10, Status: StatusNormal, RegisteredAt: at(1)},
				{Name: "B", TotalScore: 25, Status: StatusChampion, RegisteredAt: at(2)},
				{Name: "C", TotalScore: 10, Status: StatusNormal, RegisteredAt: at(3)},
			},
			want: []string{"B", "A", "C"},
		},
		{
			name: "champions outrank higher scores",
			players: []Player{
				{Name: "Leader", TotalScore: 60, Status: StatusElimination, RegisteredAt: at(1)},
				{Name: "Champ", TotalScore: 33, Status: StatusChampion, RegisteredAt: at(2)},
			},
			want: []string{"Champ", "Leader"},
		},
		{
			name: "champions ordered by score among themselves",
			players: []Player{
				{Name: "Low", TotalScore: 33, Status: StatusChampion, RegisteredAt: at(1)},
				{Name: "High", TotalScore: 41, Status: StatusChampion, RegisteredAt: at(2)},
			},
			want: []string{"High", "Low"},
		},
		{
			name: "ties broken by earlier registration",
			players: []Player{
				{Name: "Late", TotalScore: 12, Status: StatusNormal, RegisteredAt: at(9)},
				{Name: "Early", TotalScore: 12, Status: StatusNormal, RegisteredAt: at(1)},
			},
			want: []string{"Early", "Late"},
		},
		{
			name:    "no players",
			players: nil,
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, names(Leaderboard(tt.players)))
		})
	}
}

func TestLeaderboard_DoesNotReorderInput(t *testing.T) {
	players := []Player{
		{Name: "A", TotalScore: 1},
		{Name: "B", TotalScore: 2},
	}

	_ = Leaderboard(players)

	assert.Equal(t, []string{"A", "B"}, names(players))
}

func TestStandings(t *testing.T) {
	players := []Player{
		{Name: "A", TotalScore: 4},
		{Name: "B", TotalScore: 9},
	}

	got := Standings(players)

	assert.Len(t, got, 2)
	assert.Equal(t, 1, got[0].Position)
	assert.Equal(t, "B", got[0].Name)
	assert.Equal(t, 2, got[1].Position)
	assert.Equal(t, "A", got[1].Name)
}
