package doc

import (
	"errors"
	"fmt"
	"strings"
)

// Token is one unit produced by a Tokenizer, with its positional and
// linguistic attributes. Start and End are byte offsets into Document.Text
type Token struct {
	Text  string
	Lower string
	Lemma string
	Stem  string
	Tag   string

	IsStop  bool
	IsPunct bool
	IsSpace bool
	IsDigit bool
	IsOOV   bool

	Start int
	End   int

	// Sent is the index of the sentence containing the token.
	Sent int
	// Index is the position of the token in Document.Tokens.
	Index int
}

// Sentence is a half-open range of token indices
type Sentence struct {
	Start, End int
}

// Len returns the number of tokens in the sentence
func (s Sentence) Len() int { return s.End - s.Start }

// Document is a tokenized text. Tokens and Sentences are never modified
// after a Tokenizer returns the Document
type Document struct {
	Text      string
	Tokens    []Token
	Sentences []Sentence
}

// Tokenizer turns raw text into a Document
type Tokenizer interface {
	Tokenize(text string) (*Document, error)
}

// TokenizerFunc adapts a function to the Tokenizer interface
type TokenizerFunc func(text string) (*Document, error)

// Tokenize calls f(text)
func (f TokenizerFunc) Tokenize(text string) (*Document, error) { return f(text) }

// ErrMalformed is returned by Validate
var ErrMalformed = errors.New("malformed document")

// Len returns the number of tokens
func (d *Document) Len() int { return len(d.Tokens) }

// SentenceTokens returns the tokens of sentence i
func (d *Document) SentenceTokens(i int) []Token {
	s := d.Sentences[i]
	return d.Tokens[s.Start:s.End]
}

// Span returns the tokens in [start, end), clipped to the document
func (d *Document) Span(start, end int) Span {
	start = clamp(start, 0, len(d.Tokens))
	end = clamp(end, start, len(d.Tokens))
	return Span{Start: start, End: end, Tokens: d.Tokens[start:end]}
}

// Validate checks the invariants a Tokenizer must uphold: token indices are
// sequential, offsets lie inside the text and increase, and sentences tile
// the token sequence without gaps
func (d *Document) Validate() error {
	prev := 0
	for i, t := range d.Tokens {
		if t.Index != i {
			return fmt.Errorf("%w: token %d has index %d", ErrMalformed, i, t.Index)
		}
		if t.Start < prev || t.End < t.Start || t.End > len(d.Text) {
			return fmt.Errorf("%w: token %d offsets [%d,%d)", ErrMalformed, i, t.Start, t.End)
		}
		prev = t.Start
	}
	next := 0
	for i, s := range d.Sentences {
		if s.Start != next || s.End < s.Start {
			return fmt.Errorf("%w: sentence %d range [%d,%d)", ErrMalformed, i, s.Start, s.End)
		}
		for j := s.Start; j < s.End; j++ {
			if d.Tokens[j].Sent != i {
				return fmt.Errorf("%w: token %d claims sentence %d, inside %d", ErrMalformed, j, d.Tokens[j].Sent, i)
			}
		}
		next = s.End
	}
	if len(d.Tokens) > 0 && next != len(d.Tokens) {
		return fmt.Errorf("%w: sentences cover %d of %d tokens", ErrMalformed, next, len(d.Tokens))
	}
	return nil
}

// Span is a contiguous run of tokens
type Span struct {
	Start, End int
	Tokens     []Token
}

// Len returns the number of tokens in the span
func (s Span) Len() int { return s.End - s.Start }

// Text renders the source text covered by the span, from the first token's
// start to the last token's end. An empty span renders as ""
func (s Span) Text(d *Document) string {
	if len(s.Tokens) == 0 {
		return ""
	}
	return d.Text[s.Tokens[0].Start:s.Tokens[len(s.Tokens)-1].End]
}

// Words returns the surface form of each token
func (s Span) Words() []string {
	out := make([]string, len(s.Tokens))
	for i, t := range s.Tokens {
		out[i] = t.Text
	}
	return out
}

// String joins the surface forms with single spaces
func (s Span) String() string {
	return strings.Join(s.Words(), " ")
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
