package normalize

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// StageDirections lists the bracketed non-linguistic annotations found in
// transcripts, matched case-insensitively
var StageDirections = []string{
	"applause", "cheers and applause", "laughter",
	"booing", "boos", "crosstalk", "inaudible", "silence",
}

type pass struct {
	name string
	re   *regexp.Regexp
	fn   func(string) string
	repl string
}

func (p pass) apply(s string) string {
	if p.fn != nil {
		return p.re.ReplaceAllStringFunc(s, p.fn)
	}
	return p.re.ReplaceAllString(s, p.repl)
}

// passes run in this order. Numbers must lose their separators before
// non-word characters become spaces, and abbreviations must lose their
// periods before the same step strands their initials as one-letter words
var passes = []pass{
	{
		name: "abbreviations",
		re:   regexp.MustCompile(`(?:[A-Z]\.)+`),
		fn:   func(m string) string { return strings.ReplaceAll(m, ".", "") },
	},
	{
		name: "thousands",
		re:   regexp.MustCompile(`,(\d{3})\b`),
		repl: "${1}",
	},
	{
		name: "stage directions",
		re:   regexp.MustCompile(`(?i)\[(?:` + strings.Join(StageDirections, "|") + `)\]`),
		repl: " ",
	},
	{
		// the swearing-in boilerplate skews every inaugural address
		name: "chief justice",
		re:   regexp.MustCompile(`Chief Justice`),
		repl: " ",
	},
	{
		name: "non-word",
		re:   regexp.MustCompile(`[^\p{L}\p{N}_]`),
		repl: " ",
	},
}

// Normalize applies every pass in order. It does not lowercase
func Normalize(text string) string {
	for _, p := range passes {
		text = p.apply(text)
	}
	return text
}

// Passes returns the pass names in application order
func Passes() []string {
	names := make([]string, len(passes))
	for i, p := range passes {
		names[i] = p.name
	}
	return names
}

// Stopwords is the membership test Words uses to drop tokens
type Stopwords interface {
	Contains(word string) bool
}

// Words normalizes text, lowercases it and splits it on whitespace,
// dropping any word in stops. A nil stops keeps everything
func Words(text string, stops Stopwords) []string {
	lower := cases.Lower(language.English).String(Normalize(text))
	fields := strings.Fields(lower)
	if stops == nil {
		return fields
	}
	out := fields[:0]
	for _, w := range fields {
		if !stops.Contains(w) {
			out = append(out, w)
		}
	}
	return out
}
