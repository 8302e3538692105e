package speech

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultElide is the display limit used by Speech.String
const DefaultElide = 280

var (
	wordHyphen = regexp.MustCompile(`\b-\b`)
	nonAlnum   = regexp.MustCompile(`[^0-9a-z]+`)
)

// Slugify reduces s to lowercase letters, digits and single underscores:
// "Inaugural Addresses: Pre-1900" becomes "inaugural_addresses_pre1900"
func Slugify(s string) string {
	s = strings.ToLower(s)
	s = wordHyphen.ReplaceAllString(s, "")
	s = nonAlnum.ReplaceAllString(s, "_")
	return strings.Trim(s, "_")
}

// Elide shortens s to at most max runes, replacing the tail with an
// ellipsis and the full length
func Elide(s string, max int) string {
	n := utf8.RuneCountInString(s)
	if n <= max {
		return s
	}
	summary := message.NewPrinter(language.English).Sprintf("… (%d characters total)", n)
	keep := max - utf8.RuneCountInString(summary)
	if keep < 0 {
		keep = 0
	}
	return string([]rune(s)[:keep]) + summary
}

// ElectionDay returns the US Election Day preceding an inauguration: the
// Tuesday after the first Monday of November of the previous year
func ElectionDay(inauguration time.Time) time.Time {
	year := inauguration.Year() - 1
	nov1 := time.Date(year, time.November, 1, 0, 0, 0, 0, inauguration.Location())
	offset := (int(time.Monday) - int(nov1.Weekday()) + 7) % 7
	return nov1.AddDate(0, 0, offset+1)
}
