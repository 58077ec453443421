// internal/play/playback.go
//
// Recipient-side playback: landing → screen 1..n → closing note.
//
// Each screen gets a fresh Session from the capability table when it is
// entered; the previous screen's session is closed on the way out so no
// pending timer can touch it afterwards. Restart returns to the landing
// page, and Close tears everything down.

package play

import (
	"context"
	"errors"
	"sync"

	"github.com/robalobadob/giftbox/internal/gift"
)

// Default colors when the gift has no theme.
const (
	DefaultAccent     = "#fb7185"
	DefaultBackground = "#fff1f2"
)

var (
	ErrClosed   = errors.New("play: playback closed")
	ErrFinished = errors.New("play: already at the note")
)

type Stage string

const (
	StageLanding Stage = "landing"
	StageScreen  Stage = "screen"
	StageNote    Stage = "note"
)

// Playback walks a recipient through one gift.
type Playback struct {
	cfg gift.GiftConfig
	env Env

	mu      sync.Mutex
	index   int // -1 landing, len(screens) note
	session Session
	closed  bool
}

// NewPlayback starts on the landing page.
func NewPlayback(cfg gift.GiftConfig, env Env) *Playback {
	return &Playback{cfg: cfg, env: env, index: -1}
}

// Colors returns the theme's accent and background with defaults applied.
func (p *Playback) Colors() (accent, background string) {
	return p.cfg.Theme.AccentOr(DefaultAccent), p.cfg.Theme.BackgroundOr(DefaultBackground)
}

// Note is the closing note.
func (p *Playback) Note() gift.Note { return p.cfg.Note }

// Position reports the current stage, the screen index when on a screen
// (otherwise -1), and the running session (nil off-screen).
func (p *Playback) Position() (Stage, int, Session) {
	p.mu.Lock()
	defer p.mu.Unlock()
	switch {
	case p.index < 0:
		return StageLanding, -1, nil
	case p.index >= len(p.cfg.Screens):
		return StageNote, -1, nil
	}
	return StageScreen, p.index, p.session
}

// Advance leaves the current stage for the next one. If the next screen's
// session cannot be started, playback stays where it was.
func (p *Playback) Advance() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrClosed
	}
	if p.index >= len(p.cfg.Screens) {
		return ErrFinished
	}
	next := p.index + 1
	var s Session
	if next < len(p.cfg.Screens) {
		var err error
		if s, err = NewSession(p.cfg.Screens[next], p.env); err != nil {
			return err
		}
	}
	p.closeSessionLocked()
	p.index = next
	p.session = s
	return nil
}

// AdvanceWhenDone waits for the current screen to complete, then advances.
// Empty screens and the landing page advance immediately.
func (p *Playback) AdvanceWhenDone(ctx context.Context) error {
	stage, _, s := p.Position()
	switch stage {
	case StageNote:
		return ErrFinished
	case StageScreen:
		if s != nil && !s.Empty() {
			select {
			case <-s.Done():
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
	return p.Advance()
}

// Restart goes back to the landing page.
func (p *Playback) Restart() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closeSessionLocked()
	p.index = -1
}

// Close ends playback and the running session.
func (p *Playback) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closeSessionLocked()
	p.closed = true
}

func (p *Playback) closeSessionLocked() {
	if p.session != nil {
		p.session.Close()
		p.session = nil
	}
}
