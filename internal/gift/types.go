// internal/gift/types.go
//
// Core type definitions for a gift configuration.
// Defines:
//   - Theme: optional accent/background colors.
//   - Note: the closing note shown after the last screen.
//   - Screen: a sealed sum type with one struct per screen kind.
//   - GiftConfig: theme + 1..3 screens + note.
//
// Every screen marshals with its "type" discriminant so a stored config
// can be decoded back into the same concrete variant (see parse.go).

package gift

import "encoding/json"

// Kind is the discriminant carried in a screen's "type" field.
type Kind string

const (
	KindGallery       Kind = "gallery"
	KindChocolate     Kind = "chocolate"
	KindMemory        Kind = "memory"
	KindMatchingPairs Kind = "matchingPairs"
	KindScramble      Kind = "scramble"
	KindWordSearch    Kind = "wordSearch"
)

// Kinds lists every screen kind in picker order.
var Kinds = []Kind{
	KindGallery,
	KindChocolate,
	KindMemory,
	KindMatchingPairs,
	KindScramble,
	KindWordSearch,
}

// Valid reports whether k names a known screen kind.
func (k Kind) Valid() bool {
	for _, known := range Kinds {
		if k == known {
			return true
		}
	}
	return false
}

// Theme holds optional colors; empty fields fall back to caller defaults.
type Theme struct {
	Accent     string `json:"accent,omitempty"`
	Background string `json:"background,omitempty"`
}

// AccentOr returns the accent color or def when unset.
func (t *Theme) AccentOr(def string) string {
	if t == nil || t.Accent == "" {
		return def
	}
	return t.Accent
}

// BackgroundOr returns the background color or def when unset.
func (t *Theme) BackgroundOr(def string) string {
	if t == nil || t.Background == "" {
		return def
	}
	return t.Background
}

// Note is the closing message. Body is required.
type Note struct {
	Title string `json:"title,omitempty" validate:"max=120"`
	Body  string `json:"body" validate:"notblank,max=2000"`
	From  string `json:"from,omitempty" validate:"max=80"`
}

// Screen is implemented by exactly the six screen structs in this package.
type Screen interface {
	Kind() Kind
	isScreen()
}

type Photo struct {
	ID      string `json:"id"`
	URL     string `json:"url" validate:"absurl"`
	Caption string `json:"caption,omitempty"`
}

type GalleryScreen struct {
	Photos []Photo `json:"photos" validate:"min=1,max=12,dive"`
}

type ChocolateScreen struct {
	Reasons []string `json:"reasons" validate:"min=1,max=14,dive,min=1"`
}

// MemoryCard is one pair in the memory game; it is doubled at play time.
type MemoryCard struct {
	ID    string `json:"id"`
	Image string `json:"image" validate:"absurl"`
	Label string `json:"label,omitempty"`
}

type MemoryScreen struct {
	Cards []MemoryCard `json:"cards" validate:"min=4,max=12,dive"`
}

type Pair struct {
	ID       string `json:"id"`
	Question string `json:"question" validate:"min=1"`
	Answer   string `json:"answer" validate:"min=1"`
}

type MatchingPairsScreen struct {
	Pairs []Pair `json:"pairs" validate:"min=4,max=12,dive"`
}

type Phrase struct {
	ID        string `json:"id"`
	Scrambled string `json:"scrambled" validate:"min=1"`
	Solution  string `json:"solution" validate:"min=1"`
	Message   string `json:"message,omitempty"`
}

type ScrambleScreen struct {
	Phrases []Phrase `json:"phrases" validate:"min=3,max=10,dive"`
}

type SearchWord struct {
	ID      string `json:"id"`
	Word    string `json:"word" validate:"min=2"`
	Message string `json:"message,omitempty"`
}

type WordSearchScreen struct {
	Words []SearchWord `json:"words" validate:"min=5,max=15,dive"`
}

func (GalleryScreen) Kind() Kind       { return KindGallery }
func (ChocolateScreen) Kind() Kind     { return KindChocolate }
func (MemoryScreen) Kind() Kind        { return KindMemory }
func (MatchingPairsScreen) Kind() Kind { return KindMatchingPairs }
func (ScrambleScreen) Kind() Kind      { return KindScramble }
func (WordSearchScreen) Kind() Kind    { return KindWordSearch }

func (GalleryScreen) isScreen()       {}
func (ChocolateScreen) isScreen()     {}
func (MemoryScreen) isScreen()        {}
func (MatchingPairsScreen) isScreen() {}
func (ScrambleScreen) isScreen()      {}
func (WordSearchScreen) isScreen()    {}

// GiftConfig is the whole shareable gift.
type GiftConfig struct {
	Theme   *Theme   `json:"theme,omitempty"`
	Screens []Screen `json:"screens" validate:"min=1,max=3"`
	Note    Note     `json:"note" validate:"-"`
}

// tagged prefixes v's JSON object with the "type" discriminant.
func tagged(kind Kind, v any) ([]byte, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	head, err := json.Marshal(struct {
		Type Kind `json:"type"`
	}{kind})
	if err != nil {
		return nil, err
	}
	// head is {"type":"..."}; splice the payload fields in after it.
	if len(body) <= 2 {
		return head, nil
	}
	out := make([]byte, 0, len(head)+len(body))
	out = append(out, head[:len(head)-1]...)
	out = append(out, ',')
	out = append(out, body[1:]...)
	return out, nil
}

func (s GalleryScreen) MarshalJSON() ([]byte, error) {
	type plain GalleryScreen
	return tagged(KindGallery, plain(s))
}

func (s ChocolateScreen) MarshalJSON() ([]byte, error) {
	type plain ChocolateScreen
	return tagged(KindChocolate, plain(s))
}

func (s MemoryScreen) MarshalJSON() ([]byte, error) {
	type plain MemoryScreen
	return tagged(KindMemory, plain(s))
}

func (s MatchingPairsScreen) MarshalJSON() ([]byte, error) {
	type plain MatchingPairsScreen
	return tagged(KindMatchingPairs, plain(s))
}

func (s ScrambleScreen) MarshalJSON() ([]byte, error) {
	type plain ScrambleScreen
	return tagged(KindScramble, plain(s))
}

func (s WordSearchScreen) MarshalJSON() ([]byte, error) {
	type plain WordSearchScreen
	return tagged(KindWordSearch, plain(s))
}
