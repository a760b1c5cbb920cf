package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/trentd187/lychee-cup/internal/tournament"
)

// Tournaments loads and saves the tournament document stored under one key.
//
// Update runs load → apply → save under a mutex, so concurrent requests to the same process
// apply one after another. Writers in other processes are not coordinated with: the last
// save wins.
type Tournaments struct {
	blobs Blob
	key   string
	mu    sync.Mutex
}

// NewTournaments returns a repository for the document at key.
func NewTournaments(blobs Blob, key string) *Tournaments {
	return &Tournaments{blobs: blobs, key: key}
}

// Key is the storage key of the document.
func (t *Tournaments) Key() string {
	return t.key
}

// Load returns the stored state, or tournament.Empty() when nothing has been saved yet.
func (t *Tournaments) Load(ctx context.Context) (tournament.State, error) {
	raw, err := t.blobs.Get(ctx, t.key)
	if errors.Is(err, ErrNotFound) {
		return tournament.Empty(), nil
	}
	if err != nil {
		return tournament.State{}, err
	}
	return Decode(raw)
}

// Save encodes s and stores it.
func (t *Tournaments) Save(ctx context.Context, s tournament.State) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode tournament: %w", err)
	}
	return t.blobs.Put(ctx, t.key, raw)
}

// Update loads the current state, applies fn and saves the result.
// When fn fails nothing is written and its error is returned unchanged.
func (t *Tournaments) Update(ctx context.Context, fn func(tournament.State) (tournament.State, error)) (tournament.State, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	current, err := t.Load(ctx)
	if err != nil {
		return tournament.State{}, err
	}
	next, err := fn(current)
	if err != nil {
		return current, err
	}
	if err := t.Save(ctx, next); err != nil {
		return current, err
	}
	return next, nil
}

// Replace overwrites the document with s after shape checks. Derived fields are recomputed,
// so a caller cannot store scores or a champion count the ledger does not support.
func (t *Tournaments) Replace(ctx context.Context, s tournament.State) (tournament.State, error) {
	if err := tournament.Validate(s); err != nil {
		return tournament.State{}, err
	}
	return t.Update(ctx, func(tournament.State) (tournament.State, error) {
		return tournament.Recompute(s), nil
	})
}

// Reset deletes the document; the next Load returns the empty tournament.
func (t *Tournaments) Reset(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.blobs.Delete(ctx, t.key)
}

// Decode parses a stored document. Missing arrays decode as empty ones.
func Decode(raw []byte) (tournament.State, error) {
	var s tournament.State
	if err := json.Unmarshal(raw, &s); err != nil {
		return tournament.State{}, fmt.Errorf("decode tournament: %w", err)
	}
	if s.Players == nil {
		s.Players = []tournament.Player{}
	}
	if s.Matches == nil {
		s.Matches = []tournament.Match{}
	}
	return s, nil
}
