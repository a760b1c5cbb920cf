// Package workers runs background jobs for the API server.
package workers

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/trentd187/lychee-cup/internal/store"
	"github.com/trentd187/lychee-cup/internal/tournament"
)

// StateSync re-reads the stored tournament on a schedule and publishes it when it differs from
// the last state this process published. It picks up writes made by other server instances
// sharing the same store, so their subscribers still see every change.
type StateSync struct {
	repo    *store.Tournaments
	publish func(tournament.State, []byte)
	log     *slog.Logger

	mu   sync.Mutex
	last []byte
}

// NewStateSync returns a worker that calls publish with each changed state and its JSON.
func NewStateSync(repo *store.Tournaments, publish func(tournament.State, []byte), log *slog.Logger) *StateSync {
	return &StateSync{repo: repo, publish: publish, log: log}
}

// Mark records payload as already published, so the next Tick does not send it again.
func (w *StateSync) Mark(payload []byte) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.last = bytes.Clone(payload)
}

// Tick loads the document once and publishes it if it changed.
func (w *StateSync) Tick(ctx context.Context) error {
	s, err := w.repo.Load(ctx)
	if err != nil {
		return err
	}
	payload, err := json.Marshal(s)
	if err != nil {
		return err
	}

	w.mu.Lock()
	changed := !bytes.Equal(payload, w.last)
	if changed {
		w.last = payload
	}
	w.mu.Unlock()

	if changed {
		w.log.Debug("tournament changed in store", "key", w.repo.Key(), "matches", len(s.Matches))
		w.publish(s, payload)
	}
	return nil
}

// Start schedules Tick every interval and returns the running scheduler.
// Runs never overlap; the caller stops the job with Shutdown.
func (w *StateSync) Start(ctx context.Context, interval time.Duration) (gocron.Scheduler, error) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	_, err = sched.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			if err := w.Tick(ctx); err != nil {
				w.log.Error("sync tournament", "key", w.repo.Key(), "error", err)
			}
		}),
		gocron.WithName("tournament-sync"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = sched.Shutdown()
		return nil, err
	}

	sched.Start()
	w.log.Info("tournament sync started", "key", w.repo.Key(), "interval", interval)
	return sched, nil
}
