// Package store persists the tournament document.
//
// The document is an opaque blob under a single key; Blob is the minimal get/put/delete
// contract a backend must offer. Three backends exist: Postgres (through GORM), any
// S3-compatible bucket, and an in-process map for development and tests. Tournaments sits on
// top of a Blob and speaks tournament.State instead of bytes.
package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Blob.Get when nothing is stored under the key.
var ErrNotFound = errors.New("store: key not found")

// Blob is a key/value store for raw JSON documents.
type Blob interface {
	// Get returns the stored bytes or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// Put stores value under key, replacing any previous value.
	Put(ctx context.Context, key string, value []byte) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}
