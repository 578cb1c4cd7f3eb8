// Package wiki validates English Wikipedia article URLs and scrapes article
// text from their HTML.
package wiki

import (
	"errors"
	"regexp"
	"strings"
)

// ErrInvalidURL is returned for anything other than an English Wikipedia
// article URL without query or fragment.
var ErrInvalidURL = errors.New("invalid Wikipedia URL: must be an https://en.wikipedia.org/wiki/ article link")

var articleURL = regexp.MustCompile(`^https?://en\.wikipedia\.org/wiki/[^#?\s]+$`)

// ValidateURL checks raw and returns it trimmed of surrounding whitespace.
// The returned string is the cache key for the article.
func ValidateURL(raw string) (string, error) {
	u := strings.TrimSpace(raw)
	if !articleURL.MatchString(u) {
		return "", ErrInvalidURL
	}
	return u, nil
}
