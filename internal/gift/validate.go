// internal/gift/validate.go
//
// Structural validation of a GiftConfig.
// Rules are declared as `validate:` struct tags on the types (types.go) and
// evaluated with go-playground/validator; failures are translated into
// path-tagged Issues with the user-facing messages below.
//
// Order of checks (issues are reported in this order):
//   1. screens length within [1,3]
//   2. each screen against its kind's rules
//   3. the note
//
// Validation never mutates its input.

package gift

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// PlaceholderNote stands in for the note when only screens are being checked.
var PlaceholderNote = Note{Body: "placeholder"}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		switch name {
		case "-":
			return ""
		case "":
			return f.Name
		}
		return name
	})
	// Registration only fails on an empty tag or nil func.
	_ = v.RegisterValidation("absurl", isAbsoluteURL)
	_ = v.RegisterValidation("notblank", isNotBlank)
	return v
}

// isAbsoluteURL accepts URLs with a scheme and either a host or an opaque part.
func isAbsoluteURL(fl validator.FieldLevel) bool {
	u, err := url.Parse(fl.Field().String())
	if err != nil || u.Scheme == "" {
		return false
	}
	return u.Host != "" || u.Opaque != ""
}

func isNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// Validate applies every rule to cfg. It returns nil or a *ValidationError.
func Validate(cfg GiftConfig) error {
	var issues []Issue
	issues = append(issues, structIssues(nil, "config", cfg)...)
	for i, s := range cfg.Screens {
		at := Path{"screens", strconv.Itoa(i)}
		for _, is := range ValidateScreen(s) {
			is.Path = at.with(is.Path...)
			issues = append(issues, is)
		}
	}
	issues = append(issues, structIssues(Path{"note"}, "note", cfg.Note)...)
	return invalid(issues)
}

// ValidateScreens validates cfg with PlaceholderNote in place of its note,
// so screens can be checked before the note is written.
func ValidateScreens(cfg GiftConfig) error {
	cfg.Note = PlaceholderNote
	return Validate(cfg)
}

// ValidateScreen checks one screen. Issue paths are relative to the screen.
func ValidateScreen(s Screen) []Issue {
	if s == nil || reflect.ValueOf(s).Kind() == reflect.Pointer && reflect.ValueOf(s).IsNil() {
		return []Issue{{Path: Path{"type"}, Code: CodeUnknownScreenType, Message: "Screen type is required"}}
	}
	return structIssues(nil, string(s.Kind()), s)
}

func structIssues(prefix Path, scope string, v any) []Issue {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return []Issue{{Path: prefix, Code: CodeInvalidType, Message: err.Error()}}
	}
	issues := make([]Issue, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		issues = append(issues, Issue{
			Path:    prefix.with(namespacePath(fe.Namespace())...),
			Code:    codeFor(fe.Tag()),
			Message: messageFor(scope, fe),
		})
	}
	return issues
}

var indexRe = regexp.MustCompile(`\[(\d+)\]`)

// namespacePath turns "GalleryScreen.photos[0].url" into [photos 0 url].
func namespacePath(ns string) Path {
	ns = indexRe.ReplaceAllString(ns, ".$1")
	parts := strings.Split(ns, ".")
	if len(parts) <= 1 {
		return nil
	}
	return Path(parts[1:])
}

func codeFor(tag string) Code {
	switch tag {
	case "min":
		return CodeTooSmall
	case "max":
		return CodeTooBig
	case "absurl":
		return CodeInvalidURL
	case "notblank":
		return CodeBlank
	}
	return CodeInvalidType
}

// messages is keyed by scope.field.tag; "[]" marks a slice element.
var messages = map[string]string{
	"config.screens.min": "Choose at least one screen",
	"config.screens.max": "Choose at most 3 screens",

	"gallery.photos.min": "Add at least one photo",
	"gallery.photos.max": "Maximum of 12 photos",
	"gallery.url.absurl": "Photo must be a valid URL",

	"chocolate.reasons.min":   "Add at least one reason",
	"chocolate.reasons.max":   "Maximum of 14 reasons",
	"chocolate.reasons[].min": "Reason cannot be empty",

	"memory.cards.min":    "Add at least 4 cards",
	"memory.cards.max":    "Maximum of 12 cards",
	"memory.image.absurl": "Card image must be a valid URL",

	"matchingPairs.pairs.min":    "Add at least 4 pairs",
	"matchingPairs.pairs.max":    "Maximum of 12 pairs",
	"matchingPairs.question.min": "Question cannot be empty",
	"matchingPairs.answer.min":   "Answer cannot be empty",

	"scramble.phrases.min":   "Add at least 3 phrases",
	"scramble.phrases.max":   "Maximum of 10 phrases",
	"scramble.scrambled.min": "Scrambled phrase cannot be empty",
	"scramble.solution.min":  "Solution cannot be empty",

	"wordSearch.words.min": "Add at least 5 words",
	"wordSearch.words.max": "Maximum of 15 words",
	"wordSearch.word.min":  "Word must be at least 2 characters",

	"note.title.max":     "Title must be at most 120 characters",
	"note.body.notblank": "Please write a note for your recipient.",
	"note.body.max":      "Note is a bit too long for this card.",
	"note.from.max":      "From must be at most 80 characters",
}

func messageFor(scope string, fe validator.FieldError) string {
	field := indexRe.ReplaceAllString(fe.Field(), "[]")
	if msg, ok := messages[scope+"."+field+"."+fe.Tag()]; ok {
		return msg
	}
	if fe.Param() != "" {
		return fmt.Sprintf("Invalid %s (%s=%s)", field, fe.Tag(), fe.Param())
	}
	return fmt.Sprintf("Invalid %s (%s)", field, fe.Tag())
}
