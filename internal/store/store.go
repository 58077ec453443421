// internal/store/store.go
//
// Persistence collaborator for saved gifts.
// A gift is stored once under its slug and never updated or deleted.
//
// Implementations:
//   - memory.go: map + RWMutex, for development and tests.
//   - sqlite.go: database/sql over mattn/go-sqlite3 with embedded migrations.
//   - gorm.go:   gorm (Postgres in production, SQLite in tests).

package store

import (
	"context"
	"errors"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	// ErrNotFound is returned by Get when no record has the slug.
	ErrNotFound = errors.New("store: not found")
	// ErrConflict is returned by Create when the slug is taken.
	ErrConflict = errors.New("store: slug already exists")
)

// Record is one saved gift. Config holds the JSON document exactly as
// written; Digest is a hex digest of Config computed by the caller.
type Record struct {
	ID        string
	Slug      string
	Config    []byte
	Digest    string
	CreatedAt time.Time
}

// Store defines the persistence interface for saved gifts.
type Store interface {
	// Create inserts r. ID and CreatedAt are filled in when empty.
	Create(ctx context.Context, r Record) (Record, error)

	// Get returns the record with the given slug or ErrNotFound.
	Get(ctx context.Context, slug string) (Record, error)

	// Count returns the number of stored records.
	Count(ctx context.Context) (int, error)

	// Close releases the backend's resources.
	Close() error
}

// prepare fills in the generated fields of r.
func prepare(r Record) Record {
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	if r.ID == "" {
		r.ID = ulid.MustNew(ulid.Timestamp(r.CreatedAt), ulid.DefaultEntropy()).String()
	}
	return r
}
