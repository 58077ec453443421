package gift

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// rawConfig mirrors GiftConfig with screens left undecoded until their
// discriminant has been read.
type rawConfig struct {
	Theme   *Theme            `json:"theme"`
	Screens []json.RawMessage `json:"screens"`
	Note    *Note             `json:"note"`
}

// Parse decodes a gift configuration, checking its outer shape and the
// screen discriminants. Shape problems come back as a *ValidationError.
// Parse does not apply the field rules; see Validate and Check.
func Parse(data []byte) (GiftConfig, error) {
	var raw rawConfig
	if err := json.Unmarshal(data, &raw); err != nil {
		return GiftConfig{}, invalid([]Issue{decodeIssue(nil, err)})
	}

	var issues []Issue
	cfg := GiftConfig{Theme: raw.Theme}
	if raw.Screens != nil {
		cfg.Screens = make([]Screen, 0, len(raw.Screens))
	}
	for i, rs := range raw.Screens {
		s, issue := decodeScreen(rs, Path{"screens", strconv.Itoa(i)})
		if issue != nil {
			issues = append(issues, *issue)
			continue
		}
		cfg.Screens = append(cfg.Screens, s)
	}
	if raw.Note == nil {
		issues = append(issues, Issue{Path: Path{"note"}, Code: CodeRequired, Message: "Required"})
	} else {
		cfg.Note = *raw.Note
	}
	if err := invalid(issues); err != nil {
		return GiftConfig{}, err
	}
	return cfg, nil
}

// Check parses data and applies the full validation rules.
func Check(data []byte) (GiftConfig, error) {
	cfg, err := Parse(data)
	if err != nil {
		return GiftConfig{}, err
	}
	if err := Validate(cfg); err != nil {
		return GiftConfig{}, err
	}
	return cfg, nil
}

// UnmarshalJSON decodes through Parse so unknown screen types are rejected.
func (c *GiftConfig) UnmarshalJSON(data []byte) error {
	cfg, err := Parse(data)
	if err != nil {
		return err
	}
	*c = cfg
	return nil
}

func decodeScreen(rs json.RawMessage, at Path) (Screen, *Issue) {
	var head struct {
		Type *Kind `json:"type"`
	}
	if err := json.Unmarshal(rs, &head); err != nil {
		is := decodeIssue(at, err)
		return nil, &is
	}
	if head.Type == nil {
		return nil, &Issue{Path: at.with("type"), Code: CodeUnknownScreenType, Message: "Screen type is required"}
	}
	switch *head.Type {
	case KindGallery:
		return decodeAs[GalleryScreen](rs, at)
	case KindChocolate:
		return decodeAs[ChocolateScreen](rs, at)
	case KindMemory:
		return decodeAs[MemoryScreen](rs, at)
	case KindMatchingPairs:
		return decodeAs[MatchingPairsScreen](rs, at)
	case KindScramble:
		return decodeAs[ScrambleScreen](rs, at)
	case KindWordSearch:
		return decodeAs[WordSearchScreen](rs, at)
	}
	return nil, &Issue{
		Path:    at.with("type"),
		Code:    CodeUnknownScreenType,
		Message: fmt.Sprintf("Unknown screen type %q", string(*head.Type)),
	}
}

func decodeAs[T Screen](rs json.RawMessage, at Path) (Screen, *Issue) {
	var s T
	if err := json.Unmarshal(rs, &s); err != nil {
		is := decodeIssue(at, err)
		return nil, &is
	}
	return s, nil
}

// decodeIssue turns a json decode error into an issue rooted at prefix.
func decodeIssue(prefix Path, err error) Issue {
	var te *json.UnmarshalTypeError
	if errors.As(err, &te) {
		path := append(Path{}, prefix...)
		if te.Field != "" {
			path = append(path, strings.Split(te.Field, ".")...)
		}
		return Issue{
			Path:    path,
			Code:    CodeInvalidType,
			Message: fmt.Sprintf("Expected %s, received %s", jsonKind(te.Type), te.Value),
		}
	}
	var se *json.SyntaxError
	if errors.As(err, &se) {
		return Issue{Path: prefix, Code: CodeInvalidJSON, Message: "Invalid JSON"}
	}
	return Issue{Path: prefix, Code: CodeInvalidJSON, Message: err.Error()}
}

func jsonKind(t reflect.Type) string {
	switch t.Kind() {
	case reflect.String:
		return "string"
	case reflect.Bool:
		return "boolean"
	case reflect.Slice, reflect.Array:
		if t.Elem().Kind() == reflect.Uint8 && t.Name() == "RawMessage" {
			return "value"
		}
		return "array"
	case reflect.Struct, reflect.Map, reflect.Pointer:
		return "object"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "number"
	}
	return t.String()
}

func (p Path) with(seg ...string) Path {
	out := make(Path, 0, len(p)+len(seg))
	out = append(out, p...)
	return append(out, seg...)
}
