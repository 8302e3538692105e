package kwic

import (
	"fmt"
	"log"
	"regexp"
	"unicode/utf8"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/cognicore/rhetoric/pkg/rhetoric/doc"
)

// DefaultCacheSize bounds the matched-text -> token-length cache
const DefaultCacheSize = 4096

// Window is the context around one match
type Window struct {
	Preceding  doc.Span
	Match      doc.Span
	Subsequent doc.Span

	// Start and End are the byte offsets of the regexp match.
	Start, End int
}

// Ranges returns the three token-index ranges as [start, end) pairs
func (w Window) Ranges() [3][2]int {
	return [3][2]int{
		{w.Preceding.Start, w.Preceding.End},
		{w.Match.Start, w.Match.End},
		{w.Subsequent.Start, w.Subsequent.End},
	}
}

// Render returns the source text of each span
func (w Window) Render(d *doc.Document) [3]string {
	return [3]string{w.Preceding.Text(d), w.Match.Text(d), w.Subsequent.Text(d)}
}

// Diagnostic describes a match that was skipped
type Diagnostic struct {
	Offset int
	Match  string
	Reason string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("offset %d %q: %s", d.Offset, d.Match, d.Reason)
}

// Locator aligns matches to tokens. It measures the token length of a match
// by tokenizing the matched text with the same Tokenizer that produced the
// document, and caches those lengths
type Locator struct {
	tok       doc.Tokenizer
	lengths   *lru.Cache[string, int]
	logger    *log.Logger
	overlap   bool
	cacheSize int
}

// Option configures a Locator
type Option func(*Locator)

// WithLogger logs each skipped match
func WithLogger(l *log.Logger) Option {
	return func(loc *Locator) { loc.logger = l }
}

// WithCacheSize sets the length cache capacity
func WithCacheSize(n int) Option {
	return func(loc *Locator) { loc.cacheSize = n }
}

// Overlapping also reports matches that begin inside an earlier match. By
// default only leftmost non-overlapping matches are reported, the way
// regexp.FindAllStringIndex does
func Overlapping() Option {
	return func(loc *Locator) { loc.overlap = true }
}

// New creates a Locator measuring matches with tok
func New(tok doc.Tokenizer, opts ...Option) (*Locator, error) {
	loc := &Locator{tok: tok, cacheSize: DefaultCacheSize}
	for _, opt := range opts {
		opt(loc)
	}
	cache, err := lru.New[string, int](loc.cacheSize)
	if err != nil {
		return nil, fmt.Errorf("length cache: %w", err)
	}
	loc.lengths = cache
	return loc, nil
}

// Spans returns a Window for every match of re in d.Text that starts on a
// token boundary, plus a Diagnostic for every match that does not. The
// preceding span holds up to pre tokens and the subsequent span up to post
// tokens; both are clipped to the document
//
// The regexp reports byte offsets into d.Text while windows are token
// index ranges; a match start is converted by looking it up among the token
// start offsets
func (l *Locator) Spans(d *doc.Document, re *regexp.Regexp, pre, post int) ([]Window, []Diagnostic, error) {
	if pre < 0 || post < 0 {
		return nil, nil, fmt.Errorf("negative window size (%d, %d)", pre, post)
	}

	starts := make(map[int]int, len(d.Tokens))
	for _, t := range d.Tokens {
		if _, dup := starts[t.Start]; !dup {
			starts[t.Start] = t.Index
		}
	}

	var (
		windows []Window
		diags   []Diagnostic
	)
	ms, err := l.matches(d.Text, re)
	if err != nil {
		return nil, nil, err
	}
	for _, m := range ms {
		text := d.Text[m[0]:m[1]]
		i, ok := starts[m[0]]
		if !ok {
			diag := Diagnostic{Offset: m[0], Match: text, Reason: "match does not start on a token boundary"}
			diags = append(diags, diag)
			if l.logger != nil {
				l.logger.Printf("kwic: skipping %s", diag)
			}
			continue
		}

		n, err := l.tokenLength(text)
		if err != nil {
			return windows, diags, fmt.Errorf("measure match at offset %d: %w", m[0], err)
		}

		precedingStart := max(i-pre, 0)
		subsequentStart := i + n
		subsequentEnd := subsequentStart + post

		windows = append(windows, Window{
			Preceding:  d.Span(precedingStart, i),
			Match:      d.Span(i, subsequentStart),
			Subsequent: d.Span(subsequentStart, subsequentEnd),
			Start:      m[0],
			End:        m[1],
		})
	}
	return windows, diags, nil
}

// Tokens returns the tokens of every preceding and subsequent span, in
// match order
func (l *Locator) Tokens(d *doc.Document, re *regexp.Regexp, pre, post int) ([]doc.Token, []Diagnostic, error) {
	windows, diags, err := l.Spans(d, re, pre, post)
	var out []doc.Token
	for _, w := range windows {
		out = append(out, w.Preceding.Tokens...)
		out = append(out, w.Subsequent.Tokens...)
	}
	return out, diags, err
}

func (l *Locator) matches(text string, re *regexp.Regexp) ([][]int, error) {
	if !l.overlap {
		return re.FindAllStringIndex(text, -1), nil
	}
	// Resuming inside the text must not make \b or ^ see the resume point as
	// the start of text, so each search after the first starts one rune
	// early and matches that rune as context.
	after, err := regexp.Compile(`(?s:.)(` + re.String() + `)`)
	if err != nil {
		return nil, fmt.Errorf("compile %q: %w", re, err)
	}
	var out [][]int
	for pos := 0; pos <= len(text); {
		var start, end int
		if pos == 0 {
			loc := re.FindStringIndex(text)
			if loc == nil {
				break
			}
			start, end = loc[0], loc[1]
		} else {
			_, prev := utf8.DecodeLastRuneInString(text[:pos])
			base := pos - prev
			sub := after.FindStringSubmatchIndex(text[base:])
			if sub == nil {
				break
			}
			start, end = base+sub[2], base+sub[3]
		}
		out = append(out, []int{start, end})
		if start == len(text) {
			break
		}
		_, size := utf8.DecodeRuneInString(text[start:])
		pos = start + size
	}
	return out, nil
}

func (l *Locator) tokenLength(text string) (int, error) {
	if n, ok := l.lengths.Get(text); ok {
		return n, nil
	}
	sub, err := l.tok.Tokenize(text)
	if err != nil {
		return 0, err
	}
	n := sub.Len()
	l.lengths.Add(text, n)
	return n, nil
}
