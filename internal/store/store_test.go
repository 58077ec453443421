package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
)

type backend struct {
	name string
	open func(t *testing.T) Store
}

func backends() []backend {
	return []backend{
		{"memory", func(t *testing.T) Store { return NewMemoryStore() }},
		{"sqlite", func(t *testing.T) Store {
			s, err := OpenSQLite(filepath.Join(t.TempDir(), "nested", "gifts.db"))
			require.NoError(t, err)
			return s
		}},
		{"gorm", func(t *testing.T) Store {
			s, err := NewGormStore(sqlite.Open("file:gorm_contract?mode=memory&cache=shared"))
			require.NoError(t, err)
			return s
		}},
	}
}

func TestStoreContract(t *testing.T) {
	for _, b := range backends() {
		t.Run(b.name, func(t *testing.T) {
			ctx := context.Background()
			s := b.open(t)
			t.Cleanup(func() { _ = s.Close() })

			n, err := s.Count(ctx)
			require.NoError(t, err)
			assert.Zero(t, n)

			_, err = s.Get(ctx, "missing")
			assert.ErrorIs(t, err, ErrNotFound)

			created, err := s.Create(ctx, Record{Slug: "abc123", Config: []byte(`{"a":1}`), Digest: "d1"})
			require.NoError(t, err)
			assert.Len(t, created.ID, 26, "ulid")
			assert.False(t, created.CreatedAt.IsZero())

			got, err := s.Get(ctx, "abc123")
			require.NoError(t, err)
			assert.Equal(t, created.ID, got.ID)
			assert.Equal(t, "abc123", got.Slug)
			assert.JSONEq(t, `{"a":1}`, string(got.Config))
			assert.Equal(t, "d1", got.Digest)
			assert.WithinDuration(t, created.CreatedAt, got.CreatedAt, time.Second)

			_, err = s.Create(ctx, Record{Slug: "abc123", Config: []byte(`{}`), Digest: "d2"})
			assert.ErrorIs(t, err, ErrConflict)

			_, err = s.Create(ctx, Record{Slug: "other1", Config: []byte(`{}`), Digest: "d3"})
			require.NoError(t, err)
			n, err = s.Count(ctx)
			require.NoError(t, err)
			assert.Equal(t, 2, n)
		})
	}
}

func TestMemoryStoreCopiesConfig(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	cfg := []byte(`{"x":1}`)
	_, err := s.Create(ctx, Record{Slug: "copy01", Config: cfg})
	require.NoError(t, err)
	cfg[2] = 'y'

	got, err := s.Get(ctx, "copy01")
	require.NoError(t, err)
	assert.Equal(t, `{"x":1}`, string(got.Config))
}

func TestMemoryStoreHonorsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := NewMemoryStore()
	_, err := s.Create(ctx, Record{Slug: "abcdef"})
	assert.ErrorIs(t, err, context.Canceled)
	_, err = s.Count(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSQLiteMigrationsAreIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gifts.db")
	s, err := OpenSQLite(path)
	require.NoError(t, err)
	_, err = s.Create(context.Background(), Record{Slug: "keep01", Config: []byte(`{}`)})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = OpenSQLite(path)
	require.NoError(t, err)
	defer s.Close()
	n, err := s.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	db := s.(*sqliteStore).db
	var applied int
	require.NoError(t, db.QueryRow(`SELECT COUNT(1) FROM _migrations`).Scan(&applied))
	assert.Equal(t, 2, applied)
}

func TestPrepareKeepsGivenFields(t *testing.T) {
	at := time.Date(2025, 2, 14, 0, 0, 0, 0, time.UTC)
	r := prepare(Record{ID: "fixed", CreatedAt: at})
	assert.Equal(t, "fixed", r.ID)
	assert.Equal(t, at, r.CreatedAt)
}
