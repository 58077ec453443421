// internal/assembly/items.go
//
// Item-level editing helpers for the Configure step.
// New items get a fresh id; list caps mirror the validator's maxima so the
// editor refuses an add instead of producing an invalid screen.

package assembly

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/robalobadob/giftbox/internal/gift"
	"github.com/robalobadob/giftbox/internal/words"
)

const (
	MaxPhotos  = 12
	MaxReasons = 14
	MaxCards   = 12
	MaxPairs   = 12
	MaxPhrases = 10
	MaxWords   = 15
)

var (
	ErrListFull  = errors.New("list is full")
	ErrWrongKind = errors.New("screen is a different kind")
)

// NewItemID returns a short random id for a new list item.
func NewItemID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

func screenAt[S gift.Screen](b *Builder, i int) (S, error) {
	var zero S
	if i < 0 || i >= len(b.screens) {
		return zero, ErrNoScreen
	}
	s, ok := b.screens[i].(S)
	if !ok {
		return zero, fmt.Errorf("screen %d: %w", i+1, ErrWrongKind)
	}
	return s, nil
}

// AddPhoto appends a photo to the gallery screen at i.
func (b *Builder) AddPhoto(i int, url, caption string) error {
	s, err := screenAt[gift.GalleryScreen](b, i)
	if err != nil {
		return err
	}
	if len(s.Photos) >= MaxPhotos {
		return ErrListFull
	}
	s.Photos = append(append([]gift.Photo(nil), s.Photos...), gift.Photo{ID: NewItemID(), URL: url, Caption: caption})
	b.screens[i] = s
	return nil
}

// AddReason appends a reason to the chocolate screen at i.
func (b *Builder) AddReason(i int, reason string) error {
	s, err := screenAt[gift.ChocolateScreen](b, i)
	if err != nil {
		return err
	}
	if len(s.Reasons) >= MaxReasons {
		return ErrListFull
	}
	s.Reasons = append(append([]string(nil), s.Reasons...), reason)
	b.screens[i] = s
	return nil
}

// AddCard appends a card to the memory screen at i.
func (b *Builder) AddCard(i int, image, label string) error {
	s, err := screenAt[gift.MemoryScreen](b, i)
	if err != nil {
		return err
	}
	if len(s.Cards) >= MaxCards {
		return ErrListFull
	}
	s.Cards = append(append([]gift.MemoryCard(nil), s.Cards...), gift.MemoryCard{ID: NewItemID(), Image: image, Label: label})
	b.screens[i] = s
	return nil
}

// AddPair appends a question/answer pair to the matching-pairs screen at i.
func (b *Builder) AddPair(i int, question, answer string) error {
	s, err := screenAt[gift.MatchingPairsScreen](b, i)
	if err != nil {
		return err
	}
	if len(s.Pairs) >= MaxPairs {
		return ErrListFull
	}
	s.Pairs = append(append([]gift.Pair(nil), s.Pairs...), gift.Pair{ID: NewItemID(), Question: question, Answer: answer})
	b.screens[i] = s
	return nil
}

// AddPhrase appends a phrase to the scramble screen at i. The scrambled
// form is produced by shuffling the solution's words with r (nil = default).
func (b *Builder) AddPhrase(i int, solution, message string, r words.Rand) error {
	s, err := screenAt[gift.ScrambleScreen](b, i)
	if err != nil {
		return err
	}
	if len(s.Phrases) >= MaxPhrases {
		return ErrListFull
	}
	s.Phrases = append(append([]gift.Phrase(nil), s.Phrases...), gift.Phrase{
		ID:        NewItemID(),
		Scrambled: words.ScramblePhrase(solution, r),
		Solution:  solution,
		Message:   message,
	})
	b.screens[i] = s
	return nil
}

// AddWord appends a hidden word to the word-search screen at i.
func (b *Builder) AddWord(i int, word, message string) error {
	s, err := screenAt[gift.WordSearchScreen](b, i)
	if err != nil {
		return err
	}
	if len(s.Words) >= MaxWords {
		return ErrListFull
	}
	s.Words = append(append([]gift.SearchWord(nil), s.Words...), gift.SearchWord{
		ID:      NewItemID(),
		Word:    strings.ToUpper(strings.TrimSpace(word)),
		Message: message,
	})
	b.screens[i] = s
	return nil
}
