// internal/game/types.go
//
// Core type definitions for the puzzle engines.
// Defines:
//   - Role / Card: one entry of a matching-style deck.
//   - Coord / Cell / Placement / Board: a generated word-search grid.
//   - signal: the once-only "completed" notification every engine exposes.

package game

import (
	"sync"

	"github.com/robalobadob/giftbox/internal/words"
)

// Rand is the random source used for shuffles and grid generation.
type Rand = words.Rand

// Role distinguishes the two halves of a pair.
//   - "image":    memory cards; both halves are identical.
//   - "question": the prompt side of a matching pair.
//   - "answer":   the reply side of a matching pair.
type Role string

const (
	RoleImage    Role = "image"
	RoleQuestion Role = "question"
	RoleAnswer   Role = "answer"
)

// Card is one deck entry. Revealed stays true once a card is matched.
type Card struct {
	ID       string `json:"id"`
	PairID   string `json:"pairId"`
	Role     Role   `json:"role"`
	Content  string `json:"content"`
	Label    string `json:"label,omitempty"`
	Revealed bool   `json:"revealed"`
	Matched  bool   `json:"matched"`

	pair int // position of the source pair in the configuration
}

// FaceUp reports whether the card is showing but not yet matched.
func (c Card) FaceUp() bool { return c.Revealed && !c.Matched }

// Coord addresses one grid cell.
type Coord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Direction is the run direction of a placed word.
type Direction string

const (
	Horizontal Direction = "horizontal"
	Vertical   Direction = "vertical"
	Diagonal   Direction = "diagonal" // down-right
)

// Directions are drawn uniformly during placement.
var Directions = []Direction{Horizontal, Vertical, Diagonal}

func (d Direction) step() (dr, dc int) {
	switch d {
	case Vertical:
		return 1, 0
	case Diagonal:
		return 1, 1
	}
	return 0, 1
}

// Cell is one grid square. WordID is empty for filler letters.
type Cell struct {
	Letter string `json:"letter"`
	WordID string `json:"wordId,omitempty"`

	owner int // 1-based index of the owning word; 0 = filler
}

// Placement is the run of cells one word occupies.
type Placement struct {
	WordID    string    `json:"wordId"`
	Word      string    `json:"word"`
	StartRow  int       `json:"startRow"`
	StartCol  int       `json:"startCol"`
	EndRow    int       `json:"endRow"`
	EndCol    int       `json:"endCol"`
	Direction Direction `json:"direction"`

	owner int
}

// Len is the number of cells in the run.
func (p Placement) Len() int {
	dr, _ := p.Direction.step()
	if dr != 0 {
		return p.EndRow - p.StartRow + 1
	}
	return p.EndCol - p.StartCol + 1
}

// Cells lists the run from start to end.
func (p Placement) Cells() []Coord {
	dr, dc := p.Direction.step()
	n := p.Len()
	out := make([]Coord, n)
	for i := range n {
		out[i] = Coord{Row: p.StartRow + i*dr, Col: p.StartCol + i*dc}
	}
	return out
}

// Board is a generated word-search grid.
type Board struct {
	Size       int         `json:"size"`
	Grid       [][]Cell    `json:"grid"`
	Placements []Placement `json:"placements"`
	// Skipped lists the ids of words that found no valid placement.
	Skipped []string `json:"skipped,omitempty"`
}

// In reports whether c lies on the grid.
func (b Board) In(c Coord) bool {
	return c.Row >= 0 && c.Row < b.Size && c.Col >= 0 && c.Col < b.Size
}

// At returns the cell at c. c must be on the grid.
func (b Board) At(c Coord) Cell { return b.Grid[c.Row][c.Col] }

// Read spells the letters along p.
func (b Board) Read(p Placement) string {
	var sb []byte
	for _, c := range p.Cells() {
		sb = append(sb, b.At(c).Letter...)
	}
	return string(sb)
}

// signal is closed exactly once when an engine completes.
type signal struct {
	once sync.Once
	ch   chan struct{}
}

func newSignal() *signal { return &signal{ch: make(chan struct{})} }

func (s *signal) fire() { s.once.Do(func() { close(s.ch) }) }

func (s *signal) fired() bool {
	select {
	case <-s.ch:
		return true
	default:
		return false
	}
}
