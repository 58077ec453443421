// internal/assembly/uploads.go
//
// Gallery photo uploads.
// Files over MaxUploadBytes are skipped; the rest are taken in order until
// the gallery holds MaxPhotos. Each file is stored under
// "<builderSlug>/<id>.<ext>" and the returned public URL becomes a photo.

package assembly

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/giftbox/internal/gift"
)

const (
	MaxUploadBytes = 8 << 20
	AssetBucket    = "gift-assets"
)

const oversizeMessage = "Some files were over 8MB and were skipped."

// AssetStore puts a file and returns its public URL.
type AssetStore interface {
	Put(ctx context.Context, bucket, key string, body io.Reader, size int64) (string, error)
}

// Upload is one picked file.
type Upload struct {
	Name string
	Size int64
	Body io.Reader
}

// UploadResult summarises an upload batch.
type UploadResult struct {
	Added   int
	Skipped []string // oversize file names
	Dropped []string // over the photo cap
	Notice  string
}

// AssetPath returns the storage key for a file uploaded by this builder.
func (b *Builder) AssetPath(filename string) string {
	ext := strings.TrimPrefix(strings.ToLower(path.Ext(filename)), ".")
	if ext == "" {
		ext = "jpg"
	}
	return fmt.Sprintf("%s/%s.%s", b.slug, NewItemID(), ext)
}

// UploadPhotos stores files and appends them to the gallery screen at i.
// A store error stops the batch; photos already added stay.
func (b *Builder) UploadPhotos(ctx context.Context, i int, files []Upload, st AssetStore) (UploadResult, error) {
	var res UploadResult
	s, err := screenAt[gift.GalleryScreen](b, i)
	if err != nil {
		return res, err
	}

	room := MaxPhotos - len(s.Photos)
	for _, f := range files {
		if f.Size > MaxUploadBytes {
			res.Skipped = append(res.Skipped, f.Name)
			continue
		}
		if res.Added >= room {
			res.Dropped = append(res.Dropped, f.Name)
			continue
		}
		key := b.AssetPath(f.Name)
		url, err := st.Put(ctx, AssetBucket, key, f.Body, f.Size)
		if err != nil {
			log.Error().Err(err).Str("key", key).Msg("photo upload failed")
			b.screens[i] = s
			return res, fmt.Errorf("upload %s: %w", f.Name, err)
		}
		s.Photos = append(append([]gift.Photo(nil), s.Photos...), gift.Photo{ID: NewItemID(), URL: url})
		res.Added++
	}
	if len(res.Skipped) > 0 {
		res.Notice = oversizeMessage
	}
	b.screens[i] = s
	return res, nil
}
