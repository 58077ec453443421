// internal/game/matching.go
//
// Two-card matching engine shared by the memory and matching-pairs games.
//
// States:
//   idle (0 or 1 card face-up) → pending (2 face-up, judged) → idle
//
// Select(id) is a no-op when:
//   - a mismatch is waiting to flip back (Locked),
//   - the card is unknown, matched, or already face-up,
//   - two cards are already face-up,
//   - RejectSameRole is set and the card's role equals the first pick's.
//
// The second flip is judged synchronously: Moves increments once, a match
// marks both cards matched at once, a mismatch flips both back after
// RevertDelay. Done() is closed once every card is matched.

package game

import (
	"fmt"
	"sync"
	"time"

	"github.com/robalobadob/giftbox/internal/clock"
	"github.com/robalobadob/giftbox/internal/gift"
	"github.com/robalobadob/giftbox/internal/words"
)

const (
	MemoryRevertDelay = 800 * time.Millisecond
	PairsRevertDelay  = 1000 * time.Millisecond
)

// Rule decides whether two face-up cards form a match.
type Rule func(a, b Card) bool

// SamePair matches cards built from the same configured entry.
func SamePair(a, b Card) bool { return a.pair == b.pair }

// SamePairOppositeRole additionally requires a question and an answer.
func SamePairOppositeRole(a, b Card) bool {
	return a.pair == b.pair && a.Role != b.Role
}

// Options configures a Matching engine.
type Options struct {
	Match          Rule
	RejectSameRole bool
	RevertDelay    time.Duration
	Scheduler      clock.Scheduler // nil means clock.Real()
}

// Matching is one play session of a matching-style game.
// It is safe for concurrent use.
type Matching struct {
	opts Options

	mu      sync.Mutex
	deck    []Card
	open    []int // deck indices currently face-up and unmatched
	locked  bool
	moves   int
	matched int
	closed  bool

	revert *clock.Slot
	done   *signal
}

// NewMatching starts a session over an already shuffled deck.
func NewMatching(deck []Card, opts Options) *Matching {
	if opts.Match == nil {
		opts.Match = SamePair
	}
	d := make([]Card, len(deck))
	copy(d, deck)
	return &Matching{
		opts:   opts,
		deck:   d,
		revert: clock.NewSlot(opts.Scheduler),
		done:   newSignal(),
	}
}

// NewMemory builds, shuffles and starts a memory game.
func NewMemory(s gift.MemoryScreen, r Rand, sched clock.Scheduler) *Matching {
	return NewMatching(BuildMemoryDeck(s.Cards, r), Options{
		Match:       SamePair,
		RevertDelay: MemoryRevertDelay,
		Scheduler:   sched,
	})
}

// NewMatchingPairs builds, shuffles and starts a question/answer game.
func NewMatchingPairs(s gift.MatchingPairsScreen, r Rand, sched clock.Scheduler) *Matching {
	return NewMatching(BuildPairsDeck(s.Pairs, r), Options{
		Match:          SamePairOppositeRole,
		RejectSameRole: true,
		RevertDelay:    PairsRevertDelay,
		Scheduler:      sched,
	})
}

// BuildMemoryDeck doubles every card into two identical entries and shuffles.
func BuildMemoryDeck(cards []gift.MemoryCard, r Rand) []Card {
	keys := pairKeys(len(cards), func(i int) string { return cards[i].ID })
	deck := make([]Card, 0, 2*len(cards))
	for i, c := range cards {
		for _, half := range []string{"a", "b"} {
			deck = append(deck, Card{
				ID:      keys[i] + "-" + half,
				PairID:  keys[i],
				Role:    RoleImage,
				Content: c.Image,
				Label:   c.Label,
				pair:    i,
			})
		}
	}
	words.Shuffle(deck, r)
	return deck
}

// BuildPairsDeck makes one question and one answer entry per pair and shuffles.
func BuildPairsDeck(pairs []gift.Pair, r Rand) []Card {
	keys := pairKeys(len(pairs), func(i int) string { return pairs[i].ID })
	deck := make([]Card, 0, 2*len(pairs))
	for i, p := range pairs {
		deck = append(deck,
			Card{ID: keys[i] + "-q", PairID: keys[i], Role: RoleQuestion, Content: p.Question, pair: i},
			Card{ID: keys[i] + "-a", PairID: keys[i], Role: RoleAnswer, Content: p.Answer, pair: i},
		)
	}
	words.Shuffle(deck, r)
	return deck
}

// pairKeys keeps configured ids when they are unique and non-empty, and
// falls back to a positional key otherwise so card ids never collide.
func pairKeys(n int, id func(int) string) []string {
	seen := make(map[string]int, n)
	for i := range n {
		seen[id(i)]++
	}
	keys := make([]string, n)
	for i := range n {
		k := id(i)
		if k == "" || seen[k] > 1 {
			k = fmt.Sprintf("%s#%d", k, i)
		}
		keys[i] = k
	}
	return keys
}

// Select flips the card with the given id. It reports whether the card was
// flipped; rejected selections change nothing.
func (m *Matching) Select(cardID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed || m.locked || len(m.open) >= 2 {
		return false
	}
	idx := m.indexOf(cardID)
	if idx < 0 {
		return false
	}
	card := m.deck[idx]
	if card.Matched || card.Revealed {
		return false
	}
	if m.opts.RejectSameRole && len(m.open) == 1 && m.deck[m.open[0]].Role == card.Role {
		return false
	}

	m.deck[idx].Revealed = true
	m.open = append(m.open, idx)
	if len(m.open) == 2 {
		m.judge()
	}
	return true
}

func (m *Matching) judge() {
	m.moves++
	a, b := m.open[0], m.open[1]
	if m.opts.Match(m.deck[a], m.deck[b]) {
		m.deck[a].Matched = true
		m.deck[b].Matched = true
		m.matched += 2
		m.open = nil
		if m.matched == len(m.deck) {
			m.done.fire()
		}
		return
	}
	m.locked = true
	m.revert.Schedule(m.opts.RevertDelay, m.flipBack)
}

func (m *Matching) flipBack() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	for _, i := range m.open {
		m.deck[i].Revealed = false
	}
	m.open = nil
	m.locked = false
}

func (m *Matching) indexOf(id string) int {
	for i := range m.deck {
		if m.deck[i].ID == id {
			return i
		}
	}
	return -1
}

// Deck returns a snapshot of the cards in play order.
func (m *Matching) Deck() []Card {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Card, len(m.deck))
	copy(out, m.deck)
	return out
}

// FaceUp returns the ids of face-up, unmatched cards in selection order.
func (m *Matching) FaceUp() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.open))
	for i, idx := range m.open {
		out[i] = m.deck[idx].ID
	}
	return out
}

// Moves is the number of completed two-card judgements.
func (m *Matching) Moves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.moves
}

// MatchedPairs is the number of pairs found so far.
func (m *Matching) MatchedPairs() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.matched / 2
}

// Locked reports whether a mismatch is waiting to flip back.
func (m *Matching) Locked() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.locked
}

// Empty reports whether the deck has no cards; such a session never
// completes and the player should be offered a skip instead.
func (m *Matching) Empty() bool { return len(m.deck) == 0 }

// Done is closed once, when every card is matched.
func (m *Matching) Done() <-chan struct{} { return m.done.ch }

// Completed reports whether Done has been closed.
func (m *Matching) Completed() bool { return m.done.fired() }

// Close cancels any pending flip-back. Later calls change nothing.
func (m *Matching) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	m.revert.Stop()
}
