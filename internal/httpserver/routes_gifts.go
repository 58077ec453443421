// internal/httpserver/routes_gifts.go
//
// Gift endpoints under /api/gifts:
//   - POST /                           → save a gift, 201 {slug, url}
//   - GET  /count                      → {count}, never fails
//   - POST /validate?mode=screens|full → {ok, messages, issues}
//   - GET  /{slug}                     → the stored config
//   - GET  /{slug}/screens/{i}/board   → a freshly dealt deck or grid
//
// Boards are generated per request and not stored; two requests for the
// same screen see different shuffles.

package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"

	"github.com/robalobadob/giftbox/internal/game"
	"github.com/robalobadob/giftbox/internal/gift"
	"github.com/robalobadob/giftbox/internal/gifts"
)

const maxBodyBytes = 1 << 20

func (s *Server) mountGifts(r chi.Router) {
	r.Post("/", s.handleCreate)
	r.Get("/count", s.handleCount)
	r.Post("/validate", s.handleValidate)
	r.Get("/{slug}", s.handleGet)
	r.Get("/{slug}/screens/{index}/board", s.handleBoard)
}

// createReq is the POST /api/gifts payload.
type createReq struct {
	Slug   string          `json:"slug,omitempty"`
	Config json.RawMessage `json:"config"`
}

type createRes struct {
	Slug string `json:"slug"`
	URL  string `json:"url"`
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createReq
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if len(req.Config) == 0 || string(req.Config) == "null" {
		writeError(w, http.StatusBadRequest, "Missing gift config")
		return
	}

	slug, err := s.gifts.CreateJSON(r.Context(), req.Slug, req.Config)
	var ve *gift.ValidationError
	switch {
	case errors.As(err, &ve):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: ve.First(), Issues: ve.Issues})
		return
	case err != nil:
		hlog.FromRequest(r).Error().Err(err).Msg("create gift")
		writeError(w, http.StatusInternalServerError, "Failed to save gift")
		return
	}
	writeJSON(w, http.StatusCreated, createRes{Slug: slug, URL: gifts.ShareURL(s.opts.PublicBaseURL, slug)})
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	cfg, ok := s.load(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, cfg)
}

// load fetches the gift named by the {slug} param, writing the error
// response itself when it fails.
func (s *Server) load(w http.ResponseWriter, r *http.Request) (gift.GiftConfig, bool) {
	cfg, err := s.gifts.Get(r.Context(), chi.URLParam(r, "slug"))
	switch {
	case errors.Is(err, gifts.ErrNotFound):
		writeError(w, http.StatusNotFound, "Gift not found")
		return cfg, false
	case err != nil:
		hlog.FromRequest(r).Error().Err(err).Msg("load gift")
		writeError(w, http.StatusInternalServerError, "Failed to load gift")
		return cfg, false
	}
	return cfg, true
}

func (s *Server) handleCount(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]int{"count": s.gifts.Count(r.Context())})
}

type validateRes struct {
	OK       bool         `json:"ok"`
	Messages []string     `json:"messages"`
	Issues   []gift.Issue `json:"issues"`
}

// handleValidate checks a draft config. mode=screens substitutes the
// placeholder note so screens can be checked before the note is written.
func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	mode := r.URL.Query().Get("mode")
	if mode == "" {
		mode = "full"
	}
	if mode != "full" && mode != "screens" {
		writeError(w, http.StatusBadRequest, "mode must be screens or full")
		return
	}

	res := validateRes{Messages: []string{}, Issues: []gift.Issue{}}
	cfg, err := gift.Parse(data)
	if err == nil {
		if mode == "screens" {
			err = gift.ValidateScreens(cfg)
		} else {
			err = gift.Validate(cfg)
		}
	}
	if issues := gift.IssuesOf(err); len(issues) > 0 {
		res.Issues = issues
		res.Messages = gift.FormatIssues(cfg, issues)
	}
	res.OK = len(res.Issues) == 0
	writeJSON(w, http.StatusOK, res)
}

type deckRes struct {
	Type  gift.Kind   `json:"type"`
	Cards []game.Card `json:"cards"`
}

type boardRes struct {
	Type  gift.Kind  `json:"type"`
	Board game.Board `json:"board"`
}

func (s *Server) handleBoard(w http.ResponseWriter, r *http.Request) {
	cfg, ok := s.load(w, r)
	if !ok {
		return
	}
	i, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil || i < 0 || i >= len(cfg.Screens) {
		writeError(w, http.StatusNotFound, "Screen not found")
		return
	}

	env := s.opts.Env
	switch sc := cfg.Screens[i].(type) {
	case gift.MemoryScreen:
		writeJSON(w, http.StatusOK, deckRes{Type: sc.Kind(), Cards: game.BuildMemoryDeck(sc.Cards, env.Rand)})
	case gift.MatchingPairsScreen:
		writeJSON(w, http.StatusOK, deckRes{Type: sc.Kind(), Cards: game.BuildPairsDeck(sc.Pairs, env.Rand)})
	case gift.WordSearchScreen:
		writeJSON(w, http.StatusOK, boardRes{Type: sc.Kind(), Board: game.Generate(sc.Words, env.GridSize, env.Rand)})
	default:
		writeError(w, http.StatusNotFound, "Screen has no board")
	}
}
