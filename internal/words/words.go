// internal/words/words.go
//
// Text and randomness helpers shared by the puzzle engines and editors.
//
// Responsibilities:
//   - Normalize typed answers for comparison (trim + lower-case).
//   - Produce the upper-case letters a word occupies in a word-search grid.
//   - Scramble a phrase by shuffling its word order.
//   - Supply a uniform Fisher–Yates shuffle and random filler letters.
//
// Randomness:
//   Every helper takes a Rand so callers (and tests) choose the source.
//   Default() is backed by math/rand/v2's global generator and is safe for
//   concurrent use; sequences are not reproducible across runs.

package words

import (
	"math/rand/v2"
	"strings"
)

// Alphabet is the filler letter set for word-search grids.
const Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Rand is the subset of *rand.Rand the helpers need.
type Rand interface {
	// IntN returns a uniform value in [0, n). n > 0.
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// Default returns the process-wide random source.
func Default() Rand { return globalRand{} }

// Seeded returns a deterministic source, useful for reproducible boards.
func Seeded(seed uint64) Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Or returns r, or Default() when r is nil.
func Or(r Rand) Rand {
	if r == nil {
		return Default()
	}
	return r
}

// Normalize trims surrounding whitespace and lower-cases s.
// Punctuation and inner spacing are kept, so "I LOVEYOU" != "i love you".
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Equal reports whether a and b match after Normalize.
func Equal(a, b string) bool {
	return Normalize(a) == Normalize(b)
}

// Letters returns the upper-case runes of word as placed in a grid.
func Letters(word string) []rune {
	return []rune(strings.ToUpper(word))
}

// Len is the number of grid cells word occupies.
func Len(word string) int {
	return len(Letters(word))
}

// RandomLetter returns one uniformly chosen letter from Alphabet.
func RandomLetter(r Rand) string {
	i := Or(r).IntN(len(Alphabet))
	return Alphabet[i : i+1]
}

// Shuffle permutes s in place with a uniform Fisher–Yates shuffle.
func Shuffle[T any](s []T, r Rand) {
	r = Or(r)
	for i := len(s) - 1; i > 0; i-- {
		j := r.IntN(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}

// ScramblePhrase shuffles the space-separated words of solution.
// Single-word phrases come back unchanged.
func ScramblePhrase(solution string, r Rand) string {
	parts := strings.Split(solution, " ")
	Shuffle(parts, r)
	return strings.Join(parts, " ")
}
