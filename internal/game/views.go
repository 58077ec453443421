package game

import (
	"sync"

	"github.com/robalobadob/giftbox/internal/gift"
)

// Gallery steps through photos. Reaching past the last photo completes it.
type Gallery struct {
	photos []gift.Photo

	mu    sync.Mutex
	index int
	done  *signal
}

func NewGallery(s gift.GalleryScreen) *Gallery {
	return &Gallery{photos: s.Photos, done: newSignal()}
}

// Current returns the photo on display.
func (g *Gallery) Current() (gift.Photo, int, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if len(g.photos) == 0 {
		return gift.Photo{}, -1, false
	}
	return g.photos[g.index], g.index, true
}

// Next moves forward; on the last photo it completes the gallery.
func (g *Gallery) Next() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if len(g.photos) == 0 {
		return
	}
	if g.index == len(g.photos)-1 {
		g.done.fire()
		return
	}
	g.index++
}

// Prev moves back, stopping at the first photo.
func (g *Gallery) Prev() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.index > 0 {
		g.index--
	}
}

// Jump shows photo i if it exists.
func (g *Gallery) Jump(i int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if i >= 0 && i < len(g.photos) {
		g.index = i
	}
}

func (g *Gallery) Empty() bool           { return len(g.photos) == 0 }
func (g *Gallery) Done() <-chan struct{} { return g.done.ch }
func (g *Gallery) Completed() bool       { return g.done.fired() }
func (g *Gallery) Close()                {}

// Chocolate is the box of reasons; it completes when every piece is opened.
type Chocolate struct {
	reasons []string

	mu       sync.Mutex
	opened   []bool
	count    int
	selected int
	done     *signal
}

func NewChocolate(s gift.ChocolateScreen) *Chocolate {
	return &Chocolate{
		reasons:  s.Reasons,
		opened:   make([]bool, len(s.Reasons)),
		selected: -1,
		done:     newSignal(),
	}
}

// Open reveals reason i and reports whether it was newly opened.
// Reopening an opened piece only selects it again.
func (c *Chocolate) Open(i int) (reason string, fresh bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i < 0 || i >= len(c.reasons) {
		return "", false
	}
	c.selected = i
	if c.opened[i] {
		return c.reasons[i], false
	}
	c.opened[i] = true
	c.count++
	if c.count == len(c.reasons) {
		c.done.fire()
	}
	return c.reasons[i], true
}

// Opened is the number of pieces opened so far.
func (c *Chocolate) Opened() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.count
}

// Selected returns the index of the last opened piece, or -1.
func (c *Chocolate) Selected() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selected
}

func (c *Chocolate) Empty() bool           { return len(c.reasons) == 0 }
func (c *Chocolate) Done() <-chan struct{} { return c.done.ch }
func (c *Chocolate) Completed() bool       { return c.done.fired() }
func (c *Chocolate) Close()                {}
