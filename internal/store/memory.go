// internal/store/memory.go
//
// In-memory implementation of the Store interface.
//
// Characteristics:
//   - Records keyed by slug in a map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process restarts.
//   - Config bytes are copied on the way in and out so callers cannot
//     mutate stored data.

package store

import (
	"context"
	"sync"
)

type memory struct {
	mu    sync.RWMutex      // guards gifts
	gifts map[string]Record // keyed by Record.Slug
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{gifts: make(map[string]Record)}
}

func (m *memory) Create(ctx context.Context, r Record) (Record, error) {
	if err := ctx.Err(); err != nil {
		return Record{}, err
	}
	r = prepare(r)
	r.Config = append([]byte(nil), r.Config...)

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, taken := m.gifts[r.Slug]; taken {
		return Record{}, ErrConflict
	}
	m.gifts[r.Slug] = r
	return r, nil
}

func (m *memory) Get(ctx context.Context, slug string) (Record, error) {
	if err := ctx.Err(); err != nil {
		return Record{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.gifts[slug]
	if !ok {
		return Record{}, ErrNotFound
	}
	r.Config = append([]byte(nil), r.Config...)
	return r, nil
}

func (m *memory) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.gifts), nil
}

func (m *memory) Close() error { return nil }
