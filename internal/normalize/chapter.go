package normalize

import (
	"log/slog"
	"regexp"
	"strconv"
	"strings"
)

var (
	chapterPrefix = regexp.MustCompile(`^(chapter|ch\.?|episode|ep\.?|cap\.?|capítulo)\s*`)
	chapterNumber = regexp.MustCompile(`(\d+(?:\.\d+)?)`)
)

// ChapterNumber extracts a canonical chapter number ("42", "42.5") from raw
// site text. The returned bool is false when no number could be extracted, in
// which case the string is the literal "0" — callers that care about the
// difference between a failed parse and a real chapter zero must check it.
func ChapterNumber(raw string, logger *slog.Logger) (string, bool) {
	lower := strings.ToLower(raw)

	// "First Chapter" style titles, checked before prefix stripping.
	if strings.Contains(lower, "first") {
		return "1", true
	}

	stripped := chapterPrefix.ReplaceAllString(lower, "")

	if m := chapterNumber.FindString(stripped); m != "" {
		return m, true
	}

	if logger != nil {
		logger.Warn("could not parse chapter number", "text", raw)
	}
	return "0", false
}

// ChapterValue converts a canonical chapter number to its numeric value for
// ordering. Unparsable input sorts first, as value 0.
func ChapterValue(number string) float64 {
	v, err := strconv.ParseFloat(number, 64)
	if err != nil {
		return 0
	}
	return v
}
