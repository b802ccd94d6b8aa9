package application

import (
	"regexp"
	"strings"
	"time"
)

const isoDate = "2006-01-02"

var (
	yearOnly  = regexp.MustCompile(`^\d{4}$`)
	yearMonth = regexp.MustCompile(`^\d{4}-\d{2}$`)

	dateLayouts = []string{
		time.RFC3339Nano,
		time.RFC3339,
		isoDate,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"2006/01/02",
		"01/02/2006",
		"January 2, 2006",
		"Jan 2, 2006",
		"2 January 2006",
		"2 Jan 2006",
		"January 2006",
		"Jan 2006",
		time.RFC1123Z,
		time.RFC1123,
	}
)

// NormalizeDate turns a free-text period into an ISO date:
// "2024" is 2024-01-01, "2024-08" is 2024-08-01, anything parseable is its
// UTC date, and empty or unparseable input is the date of now.
func NormalizeDate(period string, now time.Time) string {
	p := strings.TrimSpace(period)
	switch {
	case p == "":
	case yearOnly.MatchString(p):
		return p + "-01-01"
	case yearMonth.MatchString(p):
		return p + "-01"
	default:
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, p); err == nil {
				return t.UTC().Format(isoDate)
			}
		}
	}
	return now.Format(isoDate)
}

// dateOrToday normalizes an optional date.
func dateOrToday(d *string, now time.Time) string {
	if d == nil {
		return NormalizeDate("", now)
	}
	return NormalizeDate(*d, now)
}
