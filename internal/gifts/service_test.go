package gifts

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/giftbox/internal/gift"
	"github.com/robalobadob/giftbox/internal/store"
)

func newService(t *testing.T, st store.Store) *Service {
	t.Helper()
	svc, err := NewService(st, []byte("test-key"))
	require.NoError(t, err)
	return svc
}

func chocolateGift() gift.GiftConfig {
	return gift.GiftConfig{
		Screens: []gift.Screen{gift.ChocolateScreen{Reasons: []string{"a", "b"}}},
		Note:    gift.Note{Body: "hi"},
	}
}

func TestCreateThenGetRoundTrip(t *testing.T) {
	ctx := context.Background()
	svc := newService(t, store.NewMemoryStore())

	cfg, err := gift.Check([]byte(`{"screens":[{"type":"chocolate","reasons":["a","b"]}],"note":{"body":"hi"}}`))
	require.NoError(t, err)

	slug, err := svc.Create(ctx, "", cfg)
	require.NoError(t, err)
	assert.Len(t, slug, SlugLen)
	assert.True(t, ValidSlug(slug))

	got, err := svc.Get(ctx, slug)
	require.NoError(t, err)
	if diff := cmp.Diff(chocolateGift(), got, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("retrieved gift mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 1, svc.Count(ctx))
}

func TestCreateRejectsInvalidConfig(t *testing.T) {
	st := store.NewMemoryStore()
	svc := newService(t, st)
	cfg := chocolateGift()
	cfg.Note.Body = "   "

	_, err := svc.Create(context.Background(), "", cfg)
	require.ErrorIs(t, err, ErrValidation)
	issues := gift.IssuesOf(err)
	require.Len(t, issues, 1)
	assert.Equal(t, "note.body", issues[0].Path.String())

	n, _ := st.Count(context.Background())
	assert.Zero(t, n, "nothing persisted")
}

func TestCreateJSON(t *testing.T) {
	svc := newService(t, store.NewMemoryStore())
	_, err := svc.CreateJSON(context.Background(), "", []byte(`{"screens":[{"type":"nope"}],"note":{"body":"x"}}`))
	assert.ErrorIs(t, err, ErrValidation)

	slug, err := svc.CreateJSON(context.Background(), "our-day", []byte(`{"screens":[{"type":"chocolate","reasons":["x"]}],"note":{"body":"x"}}`))
	require.NoError(t, err)
	assert.Equal(t, "our-day", slug)
}

func TestSlugPolicy(t *testing.T) {
	tests := []struct {
		name  string
		slug  string
		keeps bool
	}{
		{"valid", "Anniv_2025", true},
		{"minimum length", "abc-12", true},
		{"too short", "abc12", false},
		{"too long", "abcdefghijklmnopqrstuvwxyz0123456", false},
		{"bad characters", "hello world", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newService(t, store.NewMemoryStore())
			got, err := svc.Create(context.Background(), tt.slug, chocolateGift())
			require.NoError(t, err)
			if tt.keeps {
				assert.Equal(t, tt.slug, got)
			} else {
				assert.Len(t, got, SlugLen)
				assert.NotEqual(t, tt.slug, got)
			}
		})
	}
}

func TestCreateFallsBackOnTakenSlug(t *testing.T) {
	ctx := context.Background()
	svc := newService(t, store.NewMemoryStore())
	first, err := svc.Create(ctx, "taken01", chocolateGift())
	require.NoError(t, err)
	second, err := svc.Create(ctx, "taken01", chocolateGift())
	require.NoError(t, err)
	assert.Equal(t, "taken01", first)
	assert.NotEqual(t, "taken01", second)
	assert.Equal(t, 2, svc.Count(ctx))
}

func TestGetRejectsTamperedAndLegacyRecords(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	svc := newService(t, st)

	tampered := []byte(`{"screens":[{"type":"chocolate","reasons":["z"]}],"note":{"body":"hi"}}`)
	_, err := st.Create(ctx, store.Record{Slug: "tampered", Config: tampered, Digest: "00"})
	require.NoError(t, err)

	legacy := []byte(`{"screens":[{"type":"wordSearch","words":["love","hug"]}],"note":{"body":"hi"}}`)
	_, err = st.Create(ctx, store.Record{Slug: "legacy1", Config: legacy, Digest: svc.digest.sum(legacy)})
	require.NoError(t, err)

	tooFew := []byte(`{"screens":[{"type":"scramble","phrases":[{"id":"1","scrambled":"b a","solution":"a b"}]}],"note":{"body":"hi"}}`)
	_, err = st.Create(ctx, store.Record{Slug: "toofew1", Config: tooFew})
	require.NoError(t, err)

	for _, slug := range []string{"tampered", "legacy1", "toofew1", "missing"} {
		_, err := svc.Get(ctx, slug)
		assert.ErrorIs(t, err, ErrNotFound, slug)
	}
}

// brokenStore fails every call.
type brokenStore struct{}

var errDown = errors.New("db down")

func (brokenStore) Create(context.Context, store.Record) (store.Record, error) {
	return store.Record{}, errDown
}
func (brokenStore) Get(context.Context, string) (store.Record, error) { return store.Record{}, errDown }
func (brokenStore) Count(context.Context) (int, error)                { return 0, errDown }
func (brokenStore) Close() error                                      { return nil }

func TestStorageFailures(t *testing.T) {
	ctx := context.Background()
	svc := newService(t, brokenStore{})

	_, err := svc.Create(ctx, "", chocolateGift())
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.ErrorIs(t, err, errDown)

	_, err = svc.Get(ctx, "abcdef")
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.NotErrorIs(t, err, ErrNotFound)

	assert.Zero(t, svc.Count(ctx))
}

// alwaysTaken reports a conflict for every insert.
type alwaysTaken struct{ brokenStore }

func (alwaysTaken) Create(context.Context, store.Record) (store.Record, error) {
	return store.Record{}, store.ErrConflict
}

func TestCreateGivesUpAfterRepeatedConflicts(t *testing.T) {
	svc := newService(t, alwaysTaken{})
	_, err := svc.Create(context.Background(), "", chocolateGift())
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestNewServiceRejectsLongKey(t *testing.T) {
	_, err := NewService(store.NewMemoryStore(), make([]byte, 65))
	assert.Error(t, err)
}

func TestNewSlugAndShareURL(t *testing.T) {
	seen := map[string]bool{}
	for range 200 {
		s := NewSlug()
		assert.Len(t, s, SlugLen)
		assert.True(t, ValidSlug(s))
		seen[s] = true
	}
	assert.Len(t, seen, 200)
	assert.Equal(t, "https://gift.test/g/abc123", ShareURL("https://gift.test/", "abc123"))
}
