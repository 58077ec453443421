// internal/game/scramble.go
//
// Phrase-by-phrase unscramble engine.
//
// Submit compares the trimmed, lower-cased input against the current
// phrase's solution (same normalization). Punctuation and inner spacing
// still count. A wrong answer changes nothing.
//
// On a correct answer the phrase is marked solved and its message (if any)
// is shown; after MessageDelay (message) or AdvanceDelay (no message) the
// engine moves to the next unsolved phrase in list order, or to none.
// Submits are ignored while that advance is pending. Done() is closed as
// soon as the last phrase is solved.

package game

import (
	"strings"
	"sync"
	"time"

	"github.com/robalobadob/giftbox/internal/clock"
	"github.com/robalobadob/giftbox/internal/gift"
	"github.com/robalobadob/giftbox/internal/words"
)

const (
	MessageDelay = 2000 * time.Millisecond
	AdvanceDelay = 600 * time.Millisecond
)

// Scramble is one play session of the scramble game.
type Scramble struct {
	phrases []gift.Phrase

	mu        sync.Mutex
	current   int // -1 when no phrase is active
	solved    []bool
	count     int
	message   string
	advancing bool
	closed    bool

	advance *clock.Slot
	done    *signal
}

// NewScramble starts a session at the first phrase.
func NewScramble(s gift.ScrambleScreen, sched clock.Scheduler) *Scramble {
	phrases := make([]gift.Phrase, len(s.Phrases))
	copy(phrases, s.Phrases)
	cur := 0
	if len(phrases) == 0 {
		cur = -1
	}
	return &Scramble{
		phrases: phrases,
		current: cur,
		solved:  make([]bool, len(phrases)),
		advance: clock.NewSlot(sched),
		done:    newSignal(),
	}
}

// Submit checks text against the current phrase and reports a match.
func (s *Scramble) Submit(text string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || s.advancing || s.current < 0 {
		return false
	}
	p := s.phrases[s.current]
	if !words.Equal(text, p.Solution) {
		return false
	}

	s.solved[s.current] = true
	s.count++
	delay := AdvanceDelay
	if strings.TrimSpace(p.Message) != "" {
		s.message = p.Message
		delay = MessageDelay
	}
	if s.count == len(s.phrases) {
		s.done.fire()
	}

	s.advancing = true
	from := s.current
	s.advance.Schedule(delay, func() { s.advanceFrom(from) })
	return true
}

func (s *Scramble) advanceFrom(from int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.message = ""
	s.advancing = false
	s.current = -1
	for i := from + 1; i < len(s.phrases); i++ {
		if !s.solved[i] {
			s.current = i
			return
		}
	}
}

// Current returns the active phrase and its position. ok is false when
// every phrase is solved or the list is empty.
func (s *Scramble) Current() (p gift.Phrase, index int, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current < 0 {
		return gift.Phrase{}, -1, false
	}
	return s.phrases[s.current], s.current, true
}

// Solved is the number of phrases solved so far.
func (s *Scramble) Solved() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.count
}

// IsSolved reports whether the phrase at index i is solved.
func (s *Scramble) IsSolved(i int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return i >= 0 && i < len(s.solved) && s.solved[i]
}

// Message is the solved phrase's message while it is on display.
func (s *Scramble) Message() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.message
}

// Advancing reports whether a move to the next phrase is pending.
func (s *Scramble) Advancing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.advancing
}

func (s *Scramble) Len() int    { return len(s.phrases) }
func (s *Scramble) Empty() bool { return len(s.phrases) == 0 }

// Done is closed once, when every phrase is solved.
func (s *Scramble) Done() <-chan struct{} { return s.done.ch }

func (s *Scramble) Completed() bool { return s.done.fired() }

// Close cancels a pending advance.
func (s *Scramble) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.advance.Stop()
}
