package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/trentd187/lychee-cup/internal/tournament"
)

func TestMetrics(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.Count("register", OutcomeOK)
	m.Count("register", OutcomeOK)
	m.Count("record_match", OutcomeRejected)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Operations.WithLabelValues("register", OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Operations.WithLabelValues("record_match", OutcomeRejected)))

	s := tournament.Empty()
	s.Players = make([]tournament.Player, 5)
	s.Matches = make([]tournament.Match, 2)
	s.ChampionCount = 3
	s.IsFinished = true
	m.Observe(s)

	assert.Equal(t, 5.0, testutil.ToFloat64(m.Players))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Matches))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.Champions))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Finished))

	m.Observe(tournament.Empty())
	assert.Equal(t, 0.0, testutil.ToFloat64(m.Finished))
}
