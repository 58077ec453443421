package gift

import (
	"fmt"
	"strings"
)

// KindInfo is the picker metadata for a screen kind.
type KindInfo struct {
	Kind        Kind   `json:"type"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

var kindInfo = map[Kind]KindInfo{
	KindGallery:       {KindGallery, "Photo Gallery", "Carousel of your favorite photos together."},
	KindChocolate:     {KindChocolate, "Reasons I Love You", "A chocolate box with tappable reasons."},
	KindMemory:        {KindMemory, "Memory Match", "A cute memory game with your photos."},
	KindMatchingPairs: {KindMatchingPairs, "Matching Pairs", "Match each question with its answer."},
	KindScramble:      {KindScramble, "Letter Scramble", "Unscramble sweet phrases one by one."},
	KindWordSearch:    {KindWordSearch, "Word Search", "Find hidden words in a grid of letters."},
}

// Info returns the metadata for k.
func Info(k Kind) (KindInfo, bool) {
	info, ok := kindInfo[k]
	return info, ok
}

// Label returns k's display label, or the raw kind when unknown.
func (k Kind) Label() string {
	if info, ok := kindInfo[k]; ok {
		return info.Label
	}
	return string(k)
}

// DefaultScreen returns the empty instance a new screen of kind k starts from.
func DefaultScreen(k Kind) (Screen, error) {
	switch k {
	case KindGallery:
		return GalleryScreen{Photos: []Photo{}}, nil
	case KindChocolate:
		return ChocolateScreen{Reasons: []string{}}, nil
	case KindMemory:
		return MemoryScreen{Cards: []MemoryCard{}}, nil
	case KindMatchingPairs:
		return MatchingPairsScreen{Pairs: []Pair{}}, nil
	case KindScramble:
		return ScrambleScreen{Phrases: []Phrase{}}, nil
	case KindWordSearch:
		return WordSearchScreen{Words: []SearchWord{}}, nil
	}
	return nil, fmt.Errorf("unknown screen type %q", k)
}

var noteFields = map[string]string{
	"body":  "Message",
	"title": "Title",
	"from":  "From",
}

// FormatIssues renders issues as wizard messages such as
// "Screen 2 (Letter Scramble): Add at least 3 phrases". Duplicates are dropped.
func FormatIssues(cfg GiftConfig, issues []Issue) []string {
	seen := make(map[string]struct{}, len(issues))
	out := make([]string, 0, len(issues))
	for _, is := range issues {
		msg := formatIssue(cfg, is)
		if _, dup := seen[msg]; dup {
			continue
		}
		seen[msg] = struct{}{}
		out = append(out, msg)
	}
	return out
}

func formatIssue(cfg GiftConfig, is Issue) string {
	if i, ok := is.Path.ScreenIndex(); ok {
		if i < len(cfg.Screens) && cfg.Screens[i] != nil {
			return fmt.Sprintf("Screen %d (%s): %s", i+1, cfg.Screens[i].Kind().Label(), is.Message)
		}
		return fmt.Sprintf("Screen %d: %s", i+1, is.Message)
	}
	if len(is.Path) >= 1 && is.Path[0] == "note" {
		if len(is.Path) == 1 {
			return "Note: " + is.Message
		}
		field, ok := noteFields[is.Path[1]]
		if !ok {
			field = strings.Join(is.Path[1:], ".")
		}
		return fmt.Sprintf("Note - %s: %s", field, is.Message)
	}
	return is.Message
}
