// Package metrics exposes Prometheus instruments for tournament operations.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/trentd187/lychee-cup/internal/tournament"
)

// Outcome labels for Operations.
const (
	OutcomeOK       = "ok"
	OutcomeRejected = "rejected" // validation failure; the document was not changed
	OutcomeError    = "error"    // storage failure
)

// Metrics groups the collectors the API updates.
type Metrics struct {
	Operations  *prometheus.CounterVec
	Players     prometheus.Gauge
	Matches     prometheus.Gauge
	Champions   prometheus.Gauge
	Finished    prometheus.Gauge
	Subscribers prometheus.Gauge
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "lychee_cup",
			Name:      "operations_total",
			Help:      "Tournament operations by kind and outcome.",
		}, []string{"operation", "outcome"}),
		Players: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "lychee_cup",
			Name:      "players",
			Help:      "Registered players in the current tournament.",
		}),
		Matches: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "lychee_cup",
			Name:      "matches",
			Help:      "Matches in the current ledger.",
		}),
		Champions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "lychee_cup",
			Name:      "champions",
			Help:      "Players holding champion status.",
		}),
		Finished: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "lychee_cup",
			Name:      "finished",
			Help:      "1 once the tournament has its champions.",
		}),
		Subscribers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "lychee_cup",
			Name:      "stream_subscribers",
			Help:      "Open live update streams.",
		}),
	}
	reg.MustRegister(m.Operations, m.Players, m.Matches, m.Champions, m.Finished, m.Subscribers)
	return m
}

// Count records one operation with its outcome.
func (m *Metrics) Count(operation, outcome string) {
	m.Operations.WithLabelValues(operation, outcome).Inc()
}

// Observe sets the gauges from a tournament state.
func (m *Metrics) Observe(s tournament.State) {
	m.Players.Set(float64(len(s.Players)))
	m.Matches.Set(float64(len(s.Matches)))
	m.Champions.Set(float64(s.ChampionCount))
	if s.IsFinished {
		m.Finished.Set(1)
	} else {
		m.Finished.Set(0)
	}
}
