// internal/play/capabilities.go
//
// Capability table: one entry per screen kind, built once at package init
// and looked up by the screen's "type" tag.
// Each entry knows how to:
//   - produce the empty screen an editor starts from (Default),
//   - validate a screen of its kind (Validate),
//   - start an interactive session for it (NewSession).

package play

import (
	"fmt"
	"reflect"

	"github.com/robalobadob/giftbox/internal/clock"
	"github.com/robalobadob/giftbox/internal/game"
	"github.com/robalobadob/giftbox/internal/gift"
	"github.com/robalobadob/giftbox/internal/words"
)

// Session is a running screen. Done is closed when the player completes
// it; an Empty session never completes and should be skipped.
type Session interface {
	Empty() bool
	Done() <-chan struct{}
	Close()
}

// Env carries the collaborators a session needs.
type Env struct {
	Rand      words.Rand      // nil means words.Default()
	Scheduler clock.Scheduler // nil means clock.Real()
	GridSize  int             // word-search grid; 0 means game.DefaultGridSize
}

// Capability is the behavior bundle for one screen kind.
type Capability struct {
	Kind       gift.Kind
	Label      string
	Default    func() gift.Screen
	Validate   func(gift.Screen) []gift.Issue
	NewSession func(gift.Screen, Env) (Session, error)
}

var capabilities = map[gift.Kind]Capability{
	gift.KindGallery: capability(gift.KindGallery, func(s gift.GalleryScreen, _ Env) Session {
		return game.NewGallery(s)
	}),
	gift.KindChocolate: capability(gift.KindChocolate, func(s gift.ChocolateScreen, _ Env) Session {
		return game.NewChocolate(s)
	}),
	gift.KindMemory: capability(gift.KindMemory, func(s gift.MemoryScreen, env Env) Session {
		return game.NewMemory(s, env.Rand, env.Scheduler)
	}),
	gift.KindMatchingPairs: capability(gift.KindMatchingPairs, func(s gift.MatchingPairsScreen, env Env) Session {
		return game.NewMatchingPairs(s, env.Rand, env.Scheduler)
	}),
	gift.KindScramble: capability(gift.KindScramble, func(s gift.ScrambleScreen, env Env) Session {
		return game.NewScramble(s, env.Scheduler)
	}),
	gift.KindWordSearch: capability(gift.KindWordSearch, func(s gift.WordSearchScreen, env Env) Session {
		return game.NewWordSearch(s, game.Generate(s.Words, env.GridSize, env.Rand), env.Scheduler)
	}),
}

// capability wires a typed session constructor into the untyped table.
func capability[S gift.Screen](kind gift.Kind, start func(S, Env) Session) Capability {
	return Capability{
		Kind:  kind,
		Label: kind.Label(),
		Default: func() gift.Screen {
			s, _ := gift.DefaultScreen(kind)
			return s
		},
		Validate: gift.ValidateScreen,
		NewSession: func(s gift.Screen, env Env) (Session, error) {
			typed, ok := deref(s).(S)
			if !ok {
				return nil, fmt.Errorf("play: %s capability got %T", kind, s)
			}
			return start(typed, env), nil
		},
	}
}

// Lookup returns the capability for k.
func Lookup(k gift.Kind) (Capability, bool) {
	c, ok := capabilities[k]
	return c, ok
}

// NewSession starts a session for s using its kind's capability.
// A pointer to a screen plays the screen it points to.
func NewSession(s gift.Screen, env Env) (Session, error) {
	s = deref(s)
	if s == nil {
		return nil, fmt.Errorf("play: nil screen")
	}
	c, ok := capabilities[s.Kind()]
	if !ok {
		return nil, fmt.Errorf("play: unknown screen type %q", s.Kind())
	}
	return c.NewSession(s, env)
}

// deref returns the screen behind a pointer, or nil for a nil pointer.
func deref(s gift.Screen) gift.Screen {
	v := reflect.ValueOf(s)
	if v.Kind() != reflect.Pointer {
		return s
	}
	if v.IsNil() {
		return nil
	}
	elem, _ := v.Elem().Interface().(gift.Screen)
	return elem
}
