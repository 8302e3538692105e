package prosetok

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/aaaton/golem/v4"
	"github.com/aaaton/golem/v4/dicts/en"
	"github.com/jdkato/prose/v2"
	"github.com/kljensen/snowball"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/cognicore/rhetoric/pkg/rhetoric/doc"
)

// ErrAlignment is returned when a token or sentence cannot be located in the
// source text
var ErrAlignment = errors.New("prosetok: cannot align to source text")

// Stopwords reports stopword membership of a lowercase form
type Stopwords interface {
	Contains(word string) bool
}

// Tokenizer is safe for concurrent use
type Tokenizer struct {
	lem     *golem.Lemmatizer
	stops   Stopwords
	segment bool
	tag     bool
}

// Option configures a Tokenizer
type Option func(*Tokenizer)

// WithoutSegmentation treats the whole text as one sentence
func WithoutSegmentation() Option {
	return func(t *Tokenizer) { t.segment = false }
}

// WithoutTagging skips part-of-speech tagging; Token.Tag stays empty
func WithoutTagging() Option {
	return func(t *Tokenizer) { t.tag = false }
}

// WithStopwords sets Token.IsStop from s
func WithStopwords(s Stopwords) Option {
	return func(t *Tokenizer) { t.stops = s }
}

// New loads the English lemma dictionary and returns a Tokenizer
func New(opts ...Option) (*Tokenizer, error) {
	lem, err := golem.New(en.New())
	if err != nil {
		return nil, fmt.Errorf("load lemmatizer: %w", err)
	}
	t := &Tokenizer{lem: lem, segment: true, tag: true}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// Tokenize implements doc.Tokenizer. prose returns token and sentence
// strings without offsets, and rewrites curly quotes and "&rsquo;" before
// tokenizing, so byte offsets are recovered by walking the source text
// alongside them
func (t *Tokenizer) Tokenize(text string) (*doc.Document, error) {
	pd, err := prose.NewDocument(text,
		prose.WithSegmentation(t.segment),
		prose.WithTagging(t.tag),
		prose.WithExtraction(false),
	)
	if err != nil {
		return nil, fmt.Errorf("prose: %w", err)
	}

	lower := cases.Lower(language.English)
	d := &doc.Document{Text: text}

	pos := 0
	for _, pt := range pd.Tokens() {
		start, end, err := locate(text, pos, pt.Text)
		if err != nil {
			return nil, fmt.Errorf("token %d %q: %w", len(d.Tokens), pt.Text, err)
		}
		pos = end

		surface := text[start:end]
		low := lower.String(surface)
		d.Tokens = append(d.Tokens, doc.Token{
			Text:    surface,
			Lower:   low,
			Lemma:   t.lem.Lemma(low),
			Stem:    stem(low),
			Tag:     pt.Tag,
			IsStop:  t.stops != nil && t.stops.Contains(low),
			IsPunct: all(surface, unicode.IsPunct),
			IsSpace: all(surface, unicode.IsSpace),
			IsDigit: all(surface, unicode.IsDigit),
			IsOOV:   !t.lem.InDict(low),
			Start:   start,
			End:     end,
			Index:   len(d.Tokens),
		})
	}

	var starts []int
	if t.segment {
		pos = 0
		for _, s := range pd.Sentences() {
			words := strings.Fields(s.Text)
			if len(words) == 0 {
				continue
			}
			start, end, err := locate(text, pos, strings.TrimSpace(s.Text))
			if err != nil {
				// only the start matters; retry with the first word
				start, end, err = locate(text, pos, words[0])
			}
			if err != nil {
				return nil, fmt.Errorf("sentence %d: %w", len(starts), err)
			}
			starts = append(starts, start)
			pos = end
		}
	}
	d.Sentences = assignSentences(d.Tokens, starts)
	return d, nil
}

// assignSentences places each token in the last sentence starting at or
// before it and returns the resulting token ranges. Sentences that receive
// no tokens are dropped, so the ranges always tile the token sequence
func assignSentences(tokens []doc.Token, starts []int) []doc.Sentence {
	if len(tokens) == 0 {
		return nil
	}
	var out []doc.Sentence
	k, cur := 0, -1
	for i := range tokens {
		for k < len(starts) && starts[k] <= tokens[i].Start {
			k++
		}
		if k != cur {
			if len(out) > 0 {
				out[len(out)-1].End = i
			}
			out = append(out, doc.Sentence{Start: i})
			cur = k
		}
		tokens[i].Sent = len(out) - 1
	}
	out[len(out)-1].End = len(tokens)
	return out
}

// locate finds s in src at or after pos. It first tries to match s right
// after any whitespace at pos, allowing for the quote rewriting prose
// applies, and falls back to a plain search
func locate(src string, pos int, s string) (int, int, error) {
	p := pos
	for p < len(src) {
		r, size := utf8.DecodeRuneInString(src[p:])
		if !unicode.IsSpace(r) {
			break
		}
		p += size
	}
	if end, ok := matchAt(src, p, s); ok {
		return p, end, nil
	}
	if i := strings.Index(src[pos:], s); i >= 0 {
		return pos + i, pos + i + len(s), nil
	}
	return 0, 0, fmt.Errorf("%w: %q after offset %d", ErrAlignment, s, pos)
}

// matchAt reports whether s occurs at src[p:] and where the match ends
func matchAt(src string, p int, s string) (int, bool) {
	for _, want := range s {
		if p >= len(src) {
			return 0, false
		}
		got, size := utf8.DecodeRuneInString(src[p:])
		switch {
		case got == want:
		case want == '"' && (got == '“' || got == '”'):
		case want == '\'' && (got == '‘' || got == '’'):
		case want == '\'' && strings.HasPrefix(src[p:], "&rsquo;"):
			size = len("&rsquo;")
		default:
			return 0, false
		}
		p += size
	}
	return p, true
}

func stem(w string) string {
	s, err := snowball.Stem(w, "english", true)
	if err != nil || s == "" {
		return w
	}
	return s
}

func all(s string, f func(rune) bool) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !f(r) {
			return false
		}
	}
	return true
}
