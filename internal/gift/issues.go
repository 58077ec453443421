package gift

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalid is matched (via errors.Is) by every *ValidationError.
var ErrInvalid = errors.New("invalid gift configuration")

// Code is a machine-readable issue code.
type Code string

const (
	CodeInvalidJSON       Code = "INVALID_JSON"
	CodeInvalidType       Code = "INVALID_TYPE"
	CodeRequired          Code = "REQUIRED"
	CodeUnknownScreenType Code = "UNKNOWN_SCREEN_TYPE"
	CodeTooSmall          Code = "TOO_SMALL"
	CodeTooBig            Code = "TOO_BIG"
	CodeInvalidURL        Code = "INVALID_URL"
	CodeBlank             Code = "BLANK"
)

// Path addresses a field inside a config, e.g. screens.1.phrases.
type Path []string

func (p Path) String() string { return strings.Join(p, ".") }

// ScreenIndex returns the screen index when p points inside screens[i].
func (p Path) ScreenIndex() (int, bool) {
	if len(p) < 2 || p[0] != "screens" {
		return 0, false
	}
	i, err := strconv.Atoi(p[1])
	if err != nil {
		return 0, false
	}
	return i, true
}

// Issue is a single validation failure.
type Issue struct {
	Path    Path   `json:"path"`
	Code    Code   `json:"code"`
	Message string `json:"message"`
}

func (i Issue) String() string {
	if len(i.Path) == 0 {
		return i.Message
	}
	return i.Path.String() + ": " + i.Message
}

// ValidationError carries every issue found in one validation pass.
type ValidationError struct {
	Issues []Issue
}

func (e *ValidationError) Error() string {
	switch len(e.Issues) {
	case 0:
		return ErrInvalid.Error()
	case 1:
		return fmt.Sprintf("%s: %s", ErrInvalid, e.Issues[0])
	default:
		return fmt.Sprintf("%s: %s (and %d more)", ErrInvalid, e.Issues[0], len(e.Issues)-1)
	}
}

func (e *ValidationError) Is(target error) bool { return target == ErrInvalid }

// First returns the first issue message, or a generic one.
func (e *ValidationError) First() string {
	if len(e.Issues) == 0 {
		return "Invalid config"
	}
	return e.Issues[0].Message
}

// IssueGroup is every issue reported for one path.
type IssueGroup struct {
	Path   Path
	Issues []Issue
}

// Grouped groups issues by path, keeping first-seen order.
func (e *ValidationError) Grouped() []IssueGroup {
	var out []IssueGroup
	at := map[string]int{}
	for _, is := range e.Issues {
		key := is.Path.String()
		i, ok := at[key]
		if !ok {
			i = len(out)
			at[key] = i
			out = append(out, IssueGroup{Path: is.Path})
		}
		out[i].Issues = append(out[i].Issues, is)
	}
	return out
}

// IssuesOf extracts the issues from err, or nil when err is not a validation error.
func IssuesOf(err error) []Issue {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Issues
	}
	return nil
}

func invalid(issues []Issue) error {
	if len(issues) == 0 {
		return nil
	}
	return &ValidationError{Issues: issues}
}
