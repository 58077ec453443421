package gift

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDispatchesOnType(t *testing.T) {
	data := []byte(`{
		"theme": {"accent": "#000"},
		"screens": [
			{"type": "chocolate", "reasons": ["a", "b"]},
			{"type": "wordSearch", "words": [{"id": "w1", "word": "love", "message": "yes"}]}
		],
		"note": {"body": "hi"}
	}`)
	cfg, err := Parse(data)
	require.NoError(t, err)
	require.Len(t, cfg.Screens, 2)

	choc, ok := cfg.Screens[0].(ChocolateScreen)
	require.True(t, ok, "got %T", cfg.Screens[0])
	assert.Equal(t, []string{"a", "b"}, choc.Reasons)

	ws, ok := cfg.Screens[1].(WordSearchScreen)
	require.True(t, ok, "got %T", cfg.Screens[1])
	assert.Equal(t, "yes", ws.Words[0].Message)
	assert.Equal(t, "#000", cfg.Theme.AccentOr("#fff"))
	assert.Equal(t, "#fff", cfg.Theme.BackgroundOr("#fff"))
}

func TestParseShapeIssues(t *testing.T) {
	tests := []struct {
		name string
		data string
		path string
		code Code
	}{
		{"not json", `{"screens":`, "", CodeInvalidJSON},
		{"array root", `[]`, "", CodeInvalidType},
		{"screens not array", `{"screens": "x", "note": {"body": "hi"}}`, "screens", CodeInvalidType},
		{"note body number", `{"screens": [], "note": {"body": 3}}`, "note.body", CodeInvalidType},
		{"missing note", `{"screens": []}`, "note", CodeRequired},
		{"unknown type", `{"screens": [{"type": "polaroid"}], "note": {"body": "hi"}}`, "screens.0.type", CodeUnknownScreenType},
		{"missing type", `{"screens": [{"reasons": ["a"]}], "note": {"body": "hi"}}`, "screens.0.type", CodeUnknownScreenType},
		{"screen not object", `{"screens": ["gallery"], "note": {"body": "hi"}}`, "screens.0", CodeInvalidType},
		{"payload wrong type", `{"screens": [{"type": "chocolate", "reasons": "a"}], "note": {"body": "hi"}}`, "screens.0.reasons", CodeInvalidType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			require.ErrorIs(t, err, ErrInvalid)
			issues := IssuesOf(err)
			require.NotEmpty(t, issues)
			assert.Equal(t, tt.path, issues[0].Path.String())
			assert.Equal(t, tt.code, issues[0].Code)
		})
	}
}

func TestCheckRejectsLegacyShapedRecord(t *testing.T) {
	// A record saved before word search existed used "words" as plain strings.
	legacy := []byte(`{"screens": [{"type": "wordSearch", "words": ["love", "hug"]}], "note": {"body": "hi"}}`)
	_, err := Check(legacy)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestUnmarshalJSONUsesParse(t *testing.T) {
	var cfg GiftConfig
	err := json.Unmarshal([]byte(`{"screens": [{"type": "nope"}], "note": {"body": "x"}}`), &cfg)
	require.ErrorIs(t, err, ErrInvalid)

	require.NoError(t, json.Unmarshal([]byte(`{"screens": [{"type": "chocolate", "reasons": ["a"]}], "note": {"body": "x"}}`), &cfg))
	assert.Equal(t, KindChocolate, cfg.Screens[0].Kind())
}

func TestScreenMarshalCarriesType(t *testing.T) {
	tests := []struct {
		screen Screen
		want   string
	}{
		{ChocolateScreen{Reasons: []string{"a"}}, `{"type":"chocolate","reasons":["a"]}`},
		{GalleryScreen{Photos: []Photo{{ID: "1", URL: "https://x.test/a.png"}}}, `{"type":"gallery","photos":[{"id":"1","url":"https://x.test/a.png"}]}`},
		{ScrambleScreen{Phrases: []Phrase{}}, `{"type":"scramble","phrases":[]}`},
	}
	for _, tt := range tests {
		t.Run(string(tt.screen.Kind()), func(t *testing.T) {
			got, err := json.Marshal(tt.screen)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(got))
		})
	}
}
