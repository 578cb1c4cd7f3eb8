package quizgen

import (
	"strings"
	"unicode"
)

// StripFences removes a surrounding markdown code fence, with or without a
// language tag, from a model completion. Unfenced input is only trimmed.
func StripFences(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	s = strings.TrimPrefix(s, "```")
	s = strings.TrimLeftFunc(s, unicode.IsLetter) // "json", "JSON", ...
	if i := strings.LastIndex(s, "```"); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}
