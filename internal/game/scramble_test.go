package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/giftbox/internal/clock"
	"github.com/robalobadob/giftbox/internal/gift"
)

func scrambleScreen() gift.ScrambleScreen {
	return gift.ScrambleScreen{Phrases: []gift.Phrase{
		{ID: "a", Scrambled: "YOU LOVE I", Solution: "I Love You", Message: "always"},
		{ID: "b", Scrambled: "ME MARRY", Solution: "marry me"},
		{ID: "c", Scrambled: "TOGETHER FOREVER", Solution: "forever together", Message: "  "},
	}}
}

func TestScrambleNormalization(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"I LOVE YOU", true},
		{"  i love you  ", true},
		{"I LOVEYOU", false},
		{"I love you!", false},
		{"you love I", false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			s := NewScramble(scrambleScreen(), clock.NewFake())
			defer s.Close()
			assert.Equal(t, tt.want, s.Submit(tt.input))
		})
	}
}

func TestScrambleSolutionIsTrimmedToo(t *testing.T) {
	s := NewScramble(gift.ScrambleScreen{Phrases: []gift.Phrase{{ID: "x", Solution: " Hello "}}}, clock.NewFake())
	defer s.Close()
	assert.True(t, s.Submit("hello"))
}

func TestScrambleAdvanceTiming(t *testing.T) {
	fake := clock.NewFake()
	s := NewScramble(scrambleScreen(), fake)
	defer s.Close()

	p, i, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, "a", p.ID)
	assert.Equal(t, 0, i)

	assert.False(t, s.Submit("wrong"))
	assert.Equal(t, 0, s.Solved())

	require.True(t, s.Submit("i love you"))
	assert.Equal(t, "always", s.Message())
	assert.True(t, s.Advancing())
	assert.False(t, s.Submit("marry me"), "ignored while advancing")

	fake.Advance(MessageDelay - time.Millisecond)
	p, _, _ = s.Current()
	assert.Equal(t, "a", p.ID)

	fake.Advance(time.Millisecond)
	p, i, _ = s.Current()
	assert.Equal(t, "b", p.ID)
	assert.Equal(t, 1, i)
	assert.Empty(t, s.Message())

	require.True(t, s.Submit("MARRY ME"))
	assert.Empty(t, s.Message())
	fake.Advance(AdvanceDelay)
	p, _, _ = s.Current()
	assert.Equal(t, "c", p.ID)

	// A whitespace-only message counts as none.
	require.True(t, s.Submit("forever together"))
	assert.Empty(t, s.Message())
	assert.True(t, s.Completed(), "completes as soon as the last phrase is solved")
	fake.Advance(AdvanceDelay)

	_, _, ok = s.Current()
	assert.False(t, ok)
	assert.Equal(t, 3, s.Solved())
	assert.True(t, s.IsSolved(2))
	assert.False(t, s.Submit("forever together"))

	select {
	case <-s.Done():
	default:
		t.Fatal("done not closed")
	}
}

func TestScrambleCloseCancelsAdvance(t *testing.T) {
	fake := clock.NewFake()
	s := NewScramble(scrambleScreen(), fake)
	require.True(t, s.Submit("I love you"))
	s.Close()
	assert.Zero(t, fake.Pending())
	fake.Advance(time.Minute)
	_, i, _ := s.Current()
	assert.Equal(t, 0, i)
	assert.False(t, s.Submit("marry me"))
}

func TestScrambleEmpty(t *testing.T) {
	s := NewScramble(gift.ScrambleScreen{}, nil)
	defer s.Close()
	assert.True(t, s.Empty())
	_, _, ok := s.Current()
	assert.False(t, ok)
	assert.False(t, s.Submit(""))
	assert.False(t, s.Completed())
}
