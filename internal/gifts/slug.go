package gifts

import (
	"crypto/rand"
	"encoding/base64"
	"regexp"
	"strings"
)

// SlugLen is the length of generated slugs.
const SlugLen = 10

var slugRe = regexp.MustCompile(`^[A-Za-z0-9_-]{6,32}$`)

// ValidSlug reports whether s may be used as a caller-chosen slug.
func ValidSlug(s string) bool { return slugRe.MatchString(s) }

// NewSlug returns a fresh random slug from the URL-safe alphabet.
func NewSlug() string {
	var b [8]byte // 8 bytes → 11 base64 chars, trimmed to SlugLen
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])[:SlugLen]
}

// ShareURL is the recipient link for slug under base.
func ShareURL(base, slug string) string {
	return strings.TrimRight(base, "/") + "/g/" + slug
}
