// internal/assembly/builder.go
//
// Gift assembly wizard.
// Steps: Theme → Screens → Configure → Note → Generate.
//
// Gating (Next):
//   - Theme:     always.
//   - Screens:   1..3 screens chosen.
//   - Configure: at least one screen and every screen valid (placeholder note).
//   - Note:      never; Next stops here.
// Any earlier step can be revisited with GoTo; later ones cannot.
//
// Share is not gated by step: it can be called from any step, validates the
// whole gift, and on success jumps to Generate. An invalid gift sends the
// wizard to the Note step.
//
// The builder slug is passed in explicitly. It namespaces uploaded assets
// and is offered as the requested slug on Share.

package assembly

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/robalobadob/giftbox/internal/gift"
	"github.com/robalobadob/giftbox/internal/play"
)

type Step int

const (
	StepTheme Step = iota
	StepScreens
	StepConfigure
	StepNote
	StepGenerate
)

var stepLabels = [...]string{"Theme", "Screens", "Configure", "Note", "Generate"}

func (s Step) String() string {
	if s < StepTheme || s > StepGenerate {
		return fmt.Sprintf("Step(%d)", int(s))
	}
	return stepLabels[s]
}

// Defaults a new builder starts from.
const (
	DefaultAccent     = play.DefaultAccent
	DefaultBackground = play.DefaultBackground
	DefaultNoteTitle  = "A Note From My Heart"
	MaxScreens        = 3
)

const noteRequired = "Please write a note for your recipient."

var (
	ErrTooManyScreens = errors.New("at most 3 screens")
	ErrStepBlocked    = errors.New("finish this step first")
	ErrNoScreen       = errors.New("no screen at that position")
)

// Creator persists a finished gift; *gifts.Service satisfies it.
type Creator interface {
	Create(ctx context.Context, slug string, cfg gift.GiftConfig) (string, error)
}

// Builder holds one in-progress gift. It is not safe for concurrent use.
type Builder struct {
	slug    string
	step    Step
	theme   gift.Theme
	screens []gift.Screen
	note    gift.Note
	saved   string
}

// NewBuilder starts a wizard namespaced under builderSlug.
func NewBuilder(builderSlug string) *Builder {
	return &Builder{
		slug:    builderSlug,
		theme:   gift.Theme{Accent: DefaultAccent, Background: DefaultBackground},
		screens: []gift.Screen{},
		note:    gift.Note{Title: DefaultNoteTitle},
	}
}

func (b *Builder) Slug() string { return b.slug }
func (b *Builder) Step() Step   { return b.step }

// Config returns the gift as currently assembled.
func (b *Builder) Config() gift.GiftConfig {
	theme := b.theme
	return gift.GiftConfig{
		Theme:   &theme,
		Screens: append([]gift.Screen(nil), b.screens...),
		Note:    b.note,
	}
}

func (b *Builder) SetTheme(t gift.Theme) { b.theme = t }
func (b *Builder) SetNote(n gift.Note)   { b.note = n }
func (b *Builder) Note() gift.Note       { return b.note }

// Screens returns the chosen screens in order.
func (b *Builder) Screens() []gift.Screen {
	return append([]gift.Screen(nil), b.screens...)
}

// ToggleScreen removes every screen of kind k, or appends a fresh one when
// none is chosen. It reports whether a screen was added.
func (b *Builder) ToggleScreen(k gift.Kind) (bool, error) {
	kept := b.screens[:0:0]
	for _, s := range b.screens {
		if s.Kind() != k {
			kept = append(kept, s)
		}
	}
	if len(kept) != len(b.screens) {
		b.screens = kept
		return false, nil
	}
	return true, b.AddScreen(k)
}

// AddScreen appends the default screen of kind k.
func (b *Builder) AddScreen(k gift.Kind) error {
	if len(b.screens) >= MaxScreens {
		return ErrTooManyScreens
	}
	s, err := gift.DefaultScreen(k)
	if err != nil {
		return err
	}
	b.screens = append(b.screens, s)
	return nil
}

// RemoveScreen drops the screen at i.
func (b *Builder) RemoveScreen(i int) error {
	if i < 0 || i >= len(b.screens) {
		return ErrNoScreen
	}
	b.screens = append(b.screens[:i:i], b.screens[i+1:]...)
	return nil
}

// MoveScreen moves the screen at from to position to.
func (b *Builder) MoveScreen(from, to int) error {
	if from < 0 || from >= len(b.screens) || to < 0 || to >= len(b.screens) {
		return ErrNoScreen
	}
	s := b.screens[from]
	rest := append(b.screens[:from:from], b.screens[from+1:]...)
	b.screens = append(rest[:to:to], append([]gift.Screen{s}, rest[to:]...)...)
	return nil
}

// SetScreen replaces the screen at i with an edited version.
func (b *Builder) SetScreen(i int, s gift.Screen) error {
	if i < 0 || i >= len(b.screens) {
		return ErrNoScreen
	}
	if s == nil {
		return fmt.Errorf("screen %d: nil screen", i+1)
	}
	b.screens[i] = s
	return nil
}

// ScreensIssues lists the wizard messages for the screens alone.
func (b *Builder) ScreensIssues() []string {
	cfg := b.Config()
	return gift.FormatIssues(cfg, gift.IssuesOf(gift.ValidateScreens(cfg)))
}

// ConfigIssues lists the wizard messages for the whole gift.
func (b *Builder) ConfigIssues() []string {
	cfg := b.Config()
	return gift.FormatIssues(cfg, gift.IssuesOf(gift.Validate(cfg)))
}

// NoteError is the inline note message shown from the Note step on.
func (b *Builder) NoteError() string {
	if b.step >= StepNote && strings.TrimSpace(b.note.Body) == "" {
		return noteRequired
	}
	return ""
}

// CanAdvance reports whether Next is allowed from the current step.
func (b *Builder) CanAdvance() bool {
	switch b.step {
	case StepTheme:
		return true
	case StepScreens:
		return len(b.screens) >= 1 && len(b.screens) <= MaxScreens
	case StepConfigure:
		return len(b.screens) >= 1 && gift.ValidateScreens(b.Config()) == nil
	case StepNote:
		return false
	}
	return false
}

// Next moves to the following step when the current one allows it.
func (b *Builder) Next() error {
	if !b.CanAdvance() {
		return ErrStepBlocked
	}
	b.step++
	return nil
}

// Back returns to the previous step.
func (b *Builder) Back() {
	if b.step > StepTheme {
		b.step--
	}
}

// GoTo jumps back to an already visited step.
func (b *Builder) GoTo(s Step) error {
	if s < StepTheme || s > b.step {
		return ErrStepBlocked
	}
	b.step = s
	return nil
}

// Share validates the gift and hands it to c, from whatever step the wizard
// is on. On validation failure the wizard moves to the Note step and the
// error carries the issues.
func (b *Builder) Share(ctx context.Context, c Creator) (string, error) {
	cfg := b.Config()
	if err := gift.Validate(cfg); err != nil {
		b.step = StepNote
		return "", err
	}
	slug, err := c.Create(ctx, b.slug, cfg)
	if err != nil {
		return "", err
	}
	b.saved = slug
	b.step = StepGenerate
	return slug, nil
}

// Saved returns the slug from the last successful Share.
func (b *Builder) Saved() string { return b.saved }
