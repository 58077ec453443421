// internal/game/generate.go
//
// Word-search grid generation.
//
// Algorithm (per word, in input order):
//   1. Up to MaxPlacementAttempts times, pick a direction uniformly from
//      Directions and a uniform start cell.
//   2. Reject the attempt if the run leaves the grid, or if any cell on it
//      is owned by a different word (letters are never shared across words,
//      even when they coincide).
//   3. On success write the upper-cased letters and record a Placement.
//   4. A word that never fits is skipped and its id reported in Board.Skipped.
// Finally every empty cell gets a uniform random letter A–Z.
//
// Grids are not reproducible unless the caller passes a seeded Rand.

package game

import (
	"github.com/robalobadob/giftbox/internal/gift"
	"github.com/robalobadob/giftbox/internal/words"
)

const (
	DefaultGridSize      = 15
	MaxPlacementAttempts = 100
)

// Generate places words on a size×size grid. size <= 0 means DefaultGridSize;
// a nil r means words.Default().
func Generate(list []gift.SearchWord, size int, r Rand) Board {
	if size <= 0 {
		size = DefaultGridSize
	}
	r = words.Or(r)

	b := Board{
		Size:       size,
		Grid:       make([][]Cell, size),
		Placements: []Placement{},
	}
	for i := range b.Grid {
		b.Grid[i] = make([]Cell, size)
	}

	for i, w := range list {
		owner := i + 1
		p, ok := place(&b, w, owner, r)
		if !ok {
			b.Skipped = append(b.Skipped, w.ID)
			continue
		}
		b.Placements = append(b.Placements, p)
	}

	for row := range b.Grid {
		for col := range b.Grid[row] {
			if b.Grid[row][col].Letter == "" {
				b.Grid[row][col].Letter = words.RandomLetter(r)
			}
		}
	}
	return b
}

func place(b *Board, w gift.SearchWord, owner int, r Rand) (Placement, bool) {
	letters := words.Letters(w.Word)
	n := len(letters)
	if n == 0 {
		return Placement{}, false
	}
	for range MaxPlacementAttempts {
		dir := Directions[r.IntN(len(Directions))]
		start := Coord{Row: r.IntN(b.Size), Col: r.IntN(b.Size)}
		dr, dc := dir.step()
		end := Coord{Row: start.Row + (n-1)*dr, Col: start.Col + (n-1)*dc}
		if !b.In(end) || !fits(b, start, dr, dc, n, owner) {
			continue
		}
		for k := range n {
			cell := &b.Grid[start.Row+k*dr][start.Col+k*dc]
			cell.Letter = string(letters[k])
			cell.WordID = w.ID
			cell.owner = owner
		}
		return Placement{
			WordID:    w.ID,
			Word:      string(letters),
			StartRow:  start.Row,
			StartCol:  start.Col,
			EndRow:    end.Row,
			EndCol:    end.Col,
			Direction: dir,
			owner:     owner,
		}, true
	}
	return Placement{}, false
}

func fits(b *Board, start Coord, dr, dc, n, owner int) bool {
	for k := range n {
		o := b.Grid[start.Row+k*dr][start.Col+k*dc].owner
		if o != 0 && o != owner {
			return false
		}
	}
	return true
}
