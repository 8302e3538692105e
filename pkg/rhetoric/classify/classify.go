package classify

import (
	"strings"
	"unicode/utf8"

	"github.com/cognicore/rhetoric/pkg/rhetoric/doc"
	"github.com/cognicore/rhetoric/pkg/rhetoric/stoplist"
)

// DefaultSingleLetters are the one-character tokens IsSubstantive keeps
var DefaultSingleLetters = []string{"a", "i", "A", "I"}

// Classifier holds the stopword set and single-letter allowlist. It is
// read-only after construction and safe to share
type Classifier struct {
	stops   *stoplist.Set
	singles map[string]struct{}
}

// Option configures a Classifier
type Option func(*Classifier)

// WithSingleLetters replaces the one-character allowlist
func WithSingleLetters(letters ...string) Option {
	return func(c *Classifier) {
		c.singles = make(map[string]struct{}, len(letters))
		for _, l := range letters {
			c.singles[l] = struct{}{}
		}
	}
}

// New creates a classifier. A nil stops set means only the token's own
// IsStop flag marks stopwords
func New(stops *stoplist.Set, opts ...Option) *Classifier {
	c := &Classifier{stops: stops}
	WithSingleLetters(DefaultSingleLetters...)(c)
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Stopwords returns the classifier's stopword set
func (c *Classifier) Stopwords() *stoplist.Set { return c.stops }

// IsStop reports whether the token is a stopword, either by its own flag or
// by set membership of its lowercase form
func (c *Classifier) IsStop(t doc.Token) bool {
	if t.IsStop {
		return true
	}
	lower := t.Lower
	if lower == "" {
		lower = strings.ToLower(t.Text)
	}
	return c.stops.Contains(lower)
}

// IsWord is true iff the token is not a stopword, punctuation or whitespace
func (c *Classifier) IsWord(t doc.Token) bool {
	return !(c.IsStop(t) || t.IsPunct || t.IsSpace)
}

// IsSubstantive narrows IsWord: it also drops out-of-vocabulary tokens,
// purely numeric tokens and one-character tokens outside the allowlist
func (c *Classifier) IsSubstantive(t doc.Token) bool {
	if !c.IsWord(t) || t.IsOOV || t.IsDigit {
		return false
	}
	if utf8.RuneCountInString(t.Text) > 1 {
		return true
	}
	_, ok := c.singles[t.Text]
	return ok
}

// SubstantiveWords returns the lowercase form of every substantive token
func (c *Classifier) SubstantiveWords(tokens []doc.Token) []string {
	var out []string
	for _, t := range tokens {
		if c.IsSubstantive(t) {
			out = append(out, strings.ToLower(t.Text))
		}
	}
	return out
}
