package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/giftbox/internal/clock"
	"github.com/robalobadob/giftbox/internal/gift"
	"github.com/robalobadob/giftbox/internal/words"
)

func TestBuildMemoryDeck(t *testing.T) {
	deck := BuildMemoryDeck(memoryCards(4), words.Seeded(1))
	require.Len(t, deck, 8)
	for _, key := range []string{"m0", "m1", "m2", "m3"} {
		ids := cardsOf(deck, key)
		assert.ElementsMatch(t, []string{key + "-a", key + "-b"}, ids)
	}
	for _, c := range deck {
		assert.Equal(t, RoleImage, c.Role)
		assert.False(t, c.Revealed)
		assert.False(t, c.Matched)
	}
}

func TestBuildPairsDeck(t *testing.T) {
	deck := BuildPairsDeck(pairs(4), words.Seeded(1))
	require.Len(t, deck, 8)
	roles := map[Role]int{}
	for _, c := range deck {
		roles[c.Role]++
	}
	assert.Equal(t, map[Role]int{RoleQuestion: 4, RoleAnswer: 4}, roles)
	assert.ElementsMatch(t, []string{"p2-q", "p2-a"}, cardsOf(deck, "p2"))
}

func TestPairKeysDisambiguateDuplicates(t *testing.T) {
	cards := []gift.MemoryCard{{ID: "x"}, {ID: "x"}, {ID: ""}, {ID: "y"}}
	deck := BuildMemoryDeck(cards, words.Seeded(2))
	ids := map[string]bool{}
	for _, c := range deck {
		assert.False(t, ids[c.ID], "duplicate card id %s", c.ID)
		ids[c.ID] = true
	}
	assert.Len(t, cardsOf(deck, "y"), 2)
	assert.Len(t, cardsOf(deck, "x#0"), 2)
	assert.Len(t, cardsOf(deck, "x#1"), 2)
	assert.Len(t, cardsOf(deck, "#2"), 2)
}

func TestMemoryCompletesOnce(t *testing.T) {
	fake := clock.NewFake()
	m := NewMemory(gift.MemoryScreen{Cards: memoryCards(4)}, words.Seeded(5), fake)
	defer m.Close()
	deck := m.Deck()

	for i, key := range []string{"m0", "m1", "m2", "m3"} {
		ids := cardsOf(deck, key)
		require.True(t, m.Select(ids[0]))
		require.True(t, m.Select(ids[1]))
		assert.Equal(t, i+1, m.Moves())
		assert.Equal(t, i+1, m.MatchedPairs())
		assert.Empty(t, m.FaceUp())
	}

	select {
	case <-m.Done():
	default:
		t.Fatal("expected completion")
	}
	assert.True(t, m.Completed())
	for _, c := range m.Deck() {
		assert.True(t, c.Matched)
		assert.True(t, c.Revealed)
	}

	// Further selects are rejected and do not touch the counters.
	assert.False(t, m.Select(deck[0].ID))
	assert.Equal(t, 4, m.Moves())
	assert.Zero(t, fake.Pending())
}

func TestMismatchFlipsBackAfterDelay(t *testing.T) {
	tests := []struct {
		name  string
		build func(clock.Scheduler) *Matching
		a, b  string // two cards that do not match
		delay time.Duration
	}{
		{
			name: "memory",
			build: func(s clock.Scheduler) *Matching {
				return NewMemory(gift.MemoryScreen{Cards: memoryCards(4)}, words.Seeded(1), s)
			},
			a: "m0-a", b: "m1-b", delay: MemoryRevertDelay,
		},
		{
			name: "matching pairs",
			build: func(s clock.Scheduler) *Matching {
				return NewMatchingPairs(gift.MatchingPairsScreen{Pairs: pairs(4)}, words.Seeded(1), s)
			},
			a: "p0-q", b: "p1-a", delay: PairsRevertDelay,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := clock.NewFake()
			m := tt.build(fake)
			defer m.Close()

			require.True(t, m.Select(tt.a))
			require.True(t, m.Select(tt.b))
			assert.Equal(t, 1, m.Moves())
			assert.True(t, m.Locked())
			assert.Equal(t, []string{tt.a, tt.b}, m.FaceUp())

			// Locked: every selection is a no-op.
			for _, c := range m.Deck() {
				assert.False(t, m.Select(c.ID))
			}
			assert.Equal(t, 1, m.Moves())

			fake.Advance(tt.delay - time.Millisecond)
			assert.True(t, m.Locked())

			fake.Advance(time.Millisecond)
			assert.False(t, m.Locked())
			assert.Empty(t, m.FaceUp())
			for _, c := range m.Deck() {
				assert.False(t, c.Revealed, c.ID)
			}
			assert.True(t, m.Select(tt.a))
		})
	}
}

func TestPairsRejectSameRole(t *testing.T) {
	m := NewMatchingPairs(gift.MatchingPairsScreen{Pairs: pairs(4)}, words.Seeded(1), clock.NewFake())
	defer m.Close()

	require.True(t, m.Select("p0-q"))
	assert.False(t, m.Select("p1-q"))
	assert.Equal(t, 0, m.Moves())
	assert.Equal(t, []string{"p0-q"}, m.FaceUp())

	assert.True(t, m.Select("p0-a"))
	assert.Equal(t, 1, m.MatchedPairs())
}

func TestSelectRejections(t *testing.T) {
	m := NewMemory(gift.MemoryScreen{Cards: memoryCards(4)}, words.Seeded(1), clock.NewFake())
	defer m.Close()

	assert.False(t, m.Select("nope"))
	require.True(t, m.Select("m0-a"))
	assert.False(t, m.Select("m0-a"), "already face-up")
	require.True(t, m.Select("m0-b"))
	assert.False(t, m.Select("m0-a"), "matched")
	assert.False(t, m.Select("m0-b"), "matched")
	assert.Equal(t, 1, m.Moves())
}

func TestNeverMoreThanTwoFaceUp(t *testing.T) {
	fake := clock.NewFake()
	m := NewMemory(gift.MemoryScreen{Cards: memoryCards(6)}, words.Seeded(11), fake)
	defer m.Close()
	deck := m.Deck()
	r := words.Seeded(99)

	judged := 0
	for range 500 {
		before := len(m.FaceUp())
		if m.Select(deck[r.IntN(len(deck))].ID) && before == 1 {
			judged++
		}
		faceUp := 0
		for _, c := range m.Deck() {
			if c.FaceUp() {
				faceUp++
			}
		}
		require.LessOrEqual(t, faceUp, 2)
		assert.Equal(t, judged, m.Moves())
		if r.IntN(3) == 0 {
			fake.Advance(MemoryRevertDelay)
		}
	}
}

func TestCloseCancelsFlipBack(t *testing.T) {
	fake := clock.NewFake()
	m := NewMemory(gift.MemoryScreen{Cards: memoryCards(4)}, words.Seeded(1), fake)
	require.True(t, m.Select("m0-a"))
	require.True(t, m.Select("m1-a"))
	m.Close()
	assert.Zero(t, fake.Pending())

	fake.Advance(time.Minute)
	assert.Len(t, m.FaceUp(), 2)
	assert.False(t, m.Select("m2-a"))
}

func TestCloseWithRealSchedulerLeaksNothing(t *testing.T) {
	m := NewMemory(gift.MemoryScreen{Cards: memoryCards(4)}, nil, nil)
	require.True(t, m.Select("m0-a"))
	require.True(t, m.Select("m1-a"))
	m.Close()
	m.Close()
}

func TestEmptyDeck(t *testing.T) {
	m := NewMatchingPairs(gift.MatchingPairsScreen{}, nil, clock.NewFake())
	defer m.Close()
	assert.True(t, m.Empty())
	assert.False(t, m.Select("anything"))
	assert.False(t, m.Completed())
}
