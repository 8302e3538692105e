package doctest

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/cognicore/rhetoric/pkg/rhetoric/doc"
)

var tokenRE = regexp.MustCompile(`[\p{L}\p{N}]+|[^\s\p{L}\p{N}]`)

// Tokenizer splits on letters and digits, emits every other non-space rune
// as its own punctuation token, and ends sentences after '.', '!' and '?'
// Lower, Lemma and Stem are all the lowercase form
type Tokenizer struct {
	Stops map[string]bool
	// OOV marks lowercase forms treated as out of vocabulary.
	OOV map[string]bool
}

// New returns a Tokenizer that flags the given lowercase words as stopwords
func New(stops ...string) *Tokenizer {
	t := &Tokenizer{Stops: make(map[string]bool), OOV: make(map[string]bool)}
	for _, s := range stops {
		t.Stops[s] = true
	}
	return t
}

// Tokenize implements doc.Tokenizer
func (t *Tokenizer) Tokenize(text string) (*doc.Document, error) {
	d := &doc.Document{Text: text}
	sentStart := 0
	for _, loc := range tokenRE.FindAllStringIndex(text, -1) {
		w := text[loc[0]:loc[1]]
		lower := strings.ToLower(w)
		r := []rune(w)[0]
		d.Tokens = append(d.Tokens, doc.Token{
			Text:    w,
			Lower:   lower,
			Lemma:   lower,
			Stem:    lower,
			IsStop:  t.Stops[lower],
			IsPunct: !unicode.IsLetter(r) && !unicode.IsDigit(r),
			IsDigit: isDigits(w),
			IsOOV:   t.OOV[lower],
			Start:   loc[0],
			End:     loc[1],
			Sent:    len(d.Sentences),
			Index:   len(d.Tokens),
		})
		if w == "." || w == "!" || w == "?" {
			d.Sentences = append(d.Sentences, doc.Sentence{Start: sentStart, End: len(d.Tokens)})
			sentStart = len(d.Tokens)
		}
	}
	if sentStart < len(d.Tokens) {
		d.Sentences = append(d.Sentences, doc.Sentence{Start: sentStart, End: len(d.Tokens)})
	}
	return d, nil
}

// MustTokenize tokenizes text, panicking on error
func (t *Tokenizer) MustTokenize(text string) *doc.Document {
	d, err := t.Tokenize(text)
	if err != nil {
		panic(err)
	}
	return d
}

func isDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return s != ""
}
