// internal/gifts/service.go
//
// Persistence contract for saved gifts, layered on a store.Store.
// Responsibilities:
//   - Create: validate, choose the slug, serialize, digest, insert.
//   - Get: load, verify digest, re-validate; anything malformed is NotFound.
//   - Count: best-effort record count that degrades to 0.
//
// Slug policy:
//   - A caller slug matching ^[A-Za-z0-9_-]{6,32}$ is used as-is.
//   - Anything else (including empty) is replaced by NewSlug().
//   - If the slug is taken, a fresh one is drawn (up to maxSlugAttempts).

package gifts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/giftbox/internal/gift"
	"github.com/robalobadob/giftbox/internal/store"
)

var (
	ErrNotFound    = errors.New("gift not found")
	ErrValidation  = gift.ErrInvalid
	ErrUnavailable = errors.New("storage unavailable")
)

const maxSlugAttempts = 5

// Service implements create/get/count over a Store.
type Service struct {
	store  store.Store
	digest digester
}

// NewService wraps st. digestKey (at most 64 bytes) keys record digests;
// it may be empty.
func NewService(st store.Store, digestKey []byte) (*Service, error) {
	d, err := newDigester(digestKey)
	if err != nil {
		return nil, err
	}
	return &Service{store: st, digest: d}, nil
}

// Create validates cfg and stores it, returning the slug it was saved under.
// Validation failures satisfy errors.Is(err, ErrValidation) and carry issues
// (see gift.IssuesOf); storage failures satisfy errors.Is(err, ErrUnavailable).
func (s *Service) Create(ctx context.Context, slug string, cfg gift.GiftConfig) (string, error) {
	if err := gift.Validate(cfg); err != nil {
		return "", err
	}
	data, err := json.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("encode gift: %w", err)
	}
	digest := s.digest.sum(data)

	if !ValidSlug(slug) {
		slug = NewSlug()
	}
	for range maxSlugAttempts {
		_, err = s.store.Create(ctx, store.Record{Slug: slug, Config: data, Digest: digest})
		if err == nil {
			log.Info().Str("slug", slug).Int("screens", len(cfg.Screens)).Msg("gift saved")
			return slug, nil
		}
		if !errors.Is(err, store.ErrConflict) {
			log.Error().Err(err).Str("slug", slug).Msg("save gift")
			return "", fmt.Errorf("%w: %w", ErrUnavailable, err)
		}
		log.Warn().Str("slug", slug).Msg("slug taken; drawing a fresh one")
		slug = NewSlug()
	}
	return "", fmt.Errorf("%w: no free slug after %d attempts", ErrUnavailable, maxSlugAttempts)
}

// CreateJSON parses data as a gift config and stores it.
func (s *Service) CreateJSON(ctx context.Context, slug string, data []byte) (string, error) {
	cfg, err := gift.Parse(data)
	if err != nil {
		return "", err
	}
	return s.Create(ctx, slug, cfg)
}

// Get loads the gift saved under slug. Records that fail their digest or
// no longer validate are reported as ErrNotFound.
func (s *Service) Get(ctx context.Context, slug string) (gift.GiftConfig, error) {
	rec, err := s.store.Get(ctx, slug)
	if errors.Is(err, store.ErrNotFound) {
		return gift.GiftConfig{}, ErrNotFound
	}
	if err != nil {
		log.Error().Err(err).Str("slug", slug).Msg("load gift")
		return gift.GiftConfig{}, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	if rec.Digest != "" && !s.digest.verify(rec.Config, rec.Digest) {
		log.Warn().Str("slug", slug).Msg("stored gift failed digest check")
		return gift.GiftConfig{}, ErrNotFound
	}
	cfg, err := gift.Check(rec.Config)
	if err != nil {
		log.Warn().Str("slug", slug).Strs("issues", issueStrings(err)).Msg("stored gift is invalid")
		return gift.GiftConfig{}, ErrNotFound
	}
	return cfg, nil
}

// Count returns the number of saved gifts, or 0 when the store fails.
func (s *Service) Count(ctx context.Context) int {
	n, err := s.store.Count(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("count gifts")
		return 0
	}
	return n
}

func issueStrings(err error) []string {
	issues := gift.IssuesOf(err)
	out := make([]string, len(issues))
	for i, is := range issues {
		out[i] = is.String()
	}
	return out
}
