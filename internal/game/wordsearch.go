// internal/game/wordsearch.go
//
// Word-search selection engine.
//
// Pointer and touch input both drive the same three calls:
//   Press(cell)   start a gesture with a single cell
//   Drag(cell)    add a cell to the gesture (duplicates ignored)
//   Release()     evaluate the gesture and clear it
//
// A gesture finds a word when its cells are all owned by one placed word
// and their count equals that word's length. Order is irrelevant: any
// permutation of the right cell set counts. Anything else clears silently.
// A found word with a message shows it for FoundMessageDelay.
//
// Completion counts placed words only; words the generator skipped are
// reported by Board.Skipped and are not required.

package game

import (
	"strings"
	"sync"
	"time"

	"github.com/robalobadob/giftbox/internal/clock"
	"github.com/robalobadob/giftbox/internal/gift"
)

const FoundMessageDelay = 3000 * time.Millisecond

// WordSearch is one play session over a generated Board.
type WordSearch struct {
	board   Board
	words   []gift.SearchWord
	byOwner map[int]int // owner → placement index

	mu        sync.Mutex
	selecting bool
	selection []Coord
	found     []bool // per placement
	order     []string
	message   string
	closed    bool

	msg  *clock.Slot
	done *signal
}

// NewWordSearch starts a session for s on board, which must have been
// generated from s.Words.
//
// The board may come from a cache: ownership of the grid cells is rebuilt
// from board.Placements, matching the k-th placement of an id to the k-th
// word with that id. Placements that leave the grid are dropped.
func NewWordSearch(s gift.WordSearchScreen, board Board, sched clock.Scheduler) *WordSearch {
	board = claim(board, s.Words)
	ws := &WordSearch{
		board:   board,
		words:   s.Words,
		byOwner: make(map[int]int, len(board.Placements)),
		found:   make([]bool, len(board.Placements)),
		msg:     clock.NewSlot(sched),
		done:    newSignal(),
	}
	for i, p := range board.Placements {
		ws.byOwner[p.owner] = i
	}
	return ws
}

// claim returns a copy of b whose cells and placements carry owners for list.
// A grid that is not Size×Size keeps no placements and accepts no cells.
func claim(b Board, list []gift.SearchWord) Board {
	out := Board{Size: b.Size, Grid: make([][]Cell, len(b.Grid)), Placements: []Placement{}, Skipped: b.Skipped}
	square := len(b.Grid) == b.Size
	for i, row := range b.Grid {
		out.Grid[i] = make([]Cell, len(row))
		for j, c := range row {
			out.Grid[i][j] = Cell{Letter: c.Letter}
		}
		square = square && len(row) == b.Size
	}
	if !square {
		out.Size = 0
		return out
	}

	used := make([]bool, len(list))
	for _, p := range b.Placements {
		if p.Len() < 1 || !allIn(out, p.Cells()) {
			continue
		}
		if k := p.owner - 1; k >= 0 && k < len(list) && !used[k] && list[k].ID == p.WordID {
			used[k] = true
		} else {
			p.owner = len(list) + len(out.Placements) + 1 // no configured word
			for i, w := range list {
				if !used[i] && w.ID == p.WordID {
					used[i] = true
					p.owner = i + 1
					break
				}
			}
		}
		for _, c := range p.Cells() {
			out.Grid[c.Row][c.Col].WordID = p.WordID
			out.Grid[c.Row][c.Col].owner = p.owner
		}
		out.Placements = append(out.Placements, p)
	}
	return out
}

func allIn(b Board, cells []Coord) bool {
	for _, c := range cells {
		if !b.In(c) {
			return false
		}
	}
	return true
}

// Board returns the grid being played.
func (w *WordSearch) Board() Board { return w.board }

// Press starts a new gesture at c, discarding any unfinished one.
func (w *WordSearch) Press(c Coord) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed || !w.board.In(c) {
		return
	}
	w.selecting = true
	w.selection = []Coord{c}
}

// Drag extends the current gesture with c.
func (w *WordSearch) Drag(c Coord) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed || !w.selecting || !w.board.In(c) {
		return
	}
	for _, s := range w.selection {
		if s == c {
			return
		}
	}
	w.selection = append(w.selection, c)
}

// Release ends the gesture and reports whether it found a new word.
func (w *WordSearch) Release() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed || !w.selecting {
		return false
	}
	cells := w.selection
	w.selecting = false
	w.selection = nil
	return w.evaluate(cells)
}

// Cancel drops the current gesture without evaluating it.
func (w *WordSearch) Cancel() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.selecting = false
	w.selection = nil
}

// Select runs a whole gesture over cells.
func (w *WordSearch) Select(cells []Coord) bool {
	if len(cells) == 0 {
		return false
	}
	w.Press(cells[0])
	for _, c := range cells[1:] {
		w.Drag(c)
	}
	return w.Release()
}

func (w *WordSearch) evaluate(cells []Coord) bool {
	if len(cells) < 2 {
		return false
	}
	owner := w.board.At(cells[0]).owner
	if owner == 0 {
		return false
	}
	for _, c := range cells[1:] {
		if w.board.At(c).owner != owner {
			return false
		}
	}
	idx, ok := w.byOwner[owner]
	if !ok || w.found[idx] || len(cells) != w.board.Placements[idx].Len() {
		return false
	}

	w.found[idx] = true
	w.order = append(w.order, w.board.Placements[idx].WordID)
	if owner <= len(w.words) {
		if msg := w.words[owner-1].Message; strings.TrimSpace(msg) != "" {
			w.message = msg
			w.msg.Schedule(FoundMessageDelay, w.clearMessage)
		}
	}
	if len(w.order) == len(w.found) {
		w.done.fire()
	}
	return true
}

func (w *WordSearch) clearMessage() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.closed {
		w.message = ""
	}
}

// Selection returns the cells of the gesture in progress.
func (w *WordSearch) Selection() []Coord {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]Coord(nil), w.selection...)
}

// Found returns the found word ids in the order they were found.
func (w *WordSearch) Found() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]string(nil), w.order...)
}

// IsFound reports whether the placed word with the given id was found.
func (w *WordSearch) IsFound(wordID string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	for i, p := range w.board.Placements {
		if p.WordID == wordID && w.found[i] {
			return true
		}
	}
	return false
}

// Remaining is the number of placed words still hidden.
func (w *WordSearch) Remaining() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.found) - len(w.order)
}

// Message is the last found word's message while it is on display.
func (w *WordSearch) Message() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.message
}

// Empty reports whether there is nothing to find.
func (w *WordSearch) Empty() bool { return len(w.board.Placements) == 0 }

// Done is closed once, when every placed word is found.
func (w *WordSearch) Done() <-chan struct{} { return w.done.ch }

func (w *WordSearch) Completed() bool { return w.done.fired() }

// Close cancels a pending message timer.
func (w *WordSearch) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
	w.selecting = false
	w.selection = nil
	w.msg.Stop()
}
