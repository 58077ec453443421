package game

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/robalobadob/giftbox/internal/gift"
)

func TestGallery(t *testing.T) {
	g := NewGallery(gift.GalleryScreen{Photos: []gift.Photo{{ID: "1"}, {ID: "2"}}})
	p, i, ok := g.Current()
	assert.True(t, ok)
	assert.Equal(t, "1", p.ID)
	assert.Equal(t, 0, i)

	g.Prev()
	g.Next()
	_, i, _ = g.Current()
	assert.Equal(t, 1, i)
	assert.False(t, g.Completed())

	g.Next()
	assert.True(t, g.Completed())

	g.Jump(0)
	_, i, _ = g.Current()
	assert.Equal(t, 0, i)
	g.Jump(7)
	_, i, _ = g.Current()
	assert.Equal(t, 0, i)
}

func TestChocolate(t *testing.T) {
	c := NewChocolate(gift.ChocolateScreen{Reasons: []string{"smile", "laugh"}})
	assert.Equal(t, -1, c.Selected())

	r, fresh := c.Open(1)
	assert.Equal(t, "laugh", r)
	assert.True(t, fresh)

	_, fresh = c.Open(1)
	assert.False(t, fresh)
	assert.Equal(t, 1, c.Opened())

	_, fresh = c.Open(5)
	assert.False(t, fresh)

	c.Open(0)
	assert.True(t, c.Completed())
	assert.Equal(t, 0, c.Selected())
}

func TestEmptyViews(t *testing.T) {
	assert.True(t, NewGallery(gift.GalleryScreen{}).Empty())
	assert.True(t, NewChocolate(gift.ChocolateScreen{}).Empty())
	g := NewGallery(gift.GalleryScreen{})
	g.Next()
	assert.False(t, g.Completed())
}
