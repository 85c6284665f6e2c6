package normalize

import (
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var relativeDate = regexp.MustCompile(`(\d+)\s+(second|minute|hour|day|week|month|year)s?\s+ago`)

// Absolute formats tried in order; first successful parse wins.
var dateFormats = []string{
	"Jan 2, 2006",
	"January 2, 2006",
	"2006-01-02",
	"2/1/2006",
	"1/2/2006",
}

// Date turns raw site date text into a timestamp. It never fails: anything
// unrecognized falls back to the current time. Callers must not depend on
// accuracy when the input is malformed.
//
// Relative months and years use the 30-day/365-day approximation rather than
// calendar arithmetic.
func Date(raw string, logger *slog.Logger) time.Time {
	now := time.Now()

	text := strings.ToLower(strings.TrimSpace(raw))
	if text == "" {
		return now
	}

	if strings.Contains(text, "ago") {
		if m := relativeDate.FindStringSubmatch(text); m != nil {
			amount, _ := strconv.Atoi(m[1])
			n := time.Duration(amount)
			switch m[2] {
			case "second":
				return now.Add(-n * time.Second)
			case "minute":
				return now.Add(-n * time.Minute)
			case "hour":
				return now.Add(-n * time.Hour)
			case "day":
				return now.Add(-n * 24 * time.Hour)
			case "week":
				return now.Add(-n * 7 * 24 * time.Hour)
			case "month":
				return now.Add(-n * 30 * 24 * time.Hour)
			case "year":
				return now.Add(-n * 365 * 24 * time.Hour)
			}
		}
	}

	if strings.Contains(text, "yesterday") {
		return now.Add(-24 * time.Hour)
	}
	if strings.Contains(text, "today") {
		return now
	}

	for _, format := range dateFormats {
		if t, err := time.Parse(format, strings.TrimSpace(raw)); err == nil {
			return t
		}
	}

	if logger != nil {
		logger.Debug("could not parse date, using current time", "text", raw)
	}
	return now
}
