package classify

import (
	"slices"
	"testing"

	"github.com/cognicore/rhetoric/pkg/rhetoric/doc"
	"github.com/cognicore/rhetoric/pkg/rhetoric/stoplist"
)

func tok(text string) doc.Token {
	return doc.Token{Text: text, Lower: text}
}

func TestIsWord(t *testing.T) {
	c := New(stoplist.Standard(stoplist.New("the", "of")))

	tests := []struct {
		name string
		tok  doc.Token
		want bool
	}{
		{"content word", tok("liberty"), true},
		{"base stopword", tok("the"), false},
		{"contraction suffix", tok("'s"), false},
		{"contraction prefix", tok("ca"), false},
		{"flagged stop", doc.Token{Text: "upon", Lower: "upon", IsStop: true}, false},
		{"punct", doc.Token{Text: ",", Lower: ",", IsPunct: true}, false},
		{"space", doc.Token{Text: "\n", Lower: "\n", IsSpace: true}, false},
		{"uppercase stopword via lower", doc.Token{Text: "The", Lower: "the"}, false},
		{"digit is still a word", doc.Token{Text: "1776", Lower: "1776", IsDigit: true}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.IsWord(tt.tok); got != tt.want {
				t.Errorf("IsWord(%q) = %v, want %v", tt.tok.Text, got, tt.want)
			}
		})
	}
}

func TestIsSubstantive(t *testing.T) {
	c := New(stoplist.New("the"))

	tests := []struct {
		name string
		tok  doc.Token
		want bool
	}{
		{"content word", tok("nation"), true},
		{"stopword", tok("the"), false},
		{"oov", doc.Token{Text: "blargh", Lower: "blargh", IsOOV: true}, false},
		{"digit", doc.Token{Text: "1776", Lower: "1776", IsDigit: true}, false},
		{"single a", tok("a"), true},
		{"single I", doc.Token{Text: "I", Lower: "i"}, true},
		{"single x", tok("x"), false},
		{"multibyte single rune", tok("é"), false},
		{"punct", doc.Token{Text: "--", Lower: "--", IsPunct: true}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.IsSubstantive(tt.tok); got != tt.want {
				t.Errorf("IsSubstantive(%q) = %v, want %v", tt.tok.Text, got, tt.want)
			}
		})
	}
}

func TestWithSingleLetters(t *testing.T) {
	c := New(nil, WithSingleLetters("a", "i"))
	if c.IsSubstantive(doc.Token{Text: "I", Lower: "i"}) {
		t.Error("uppercase I should be rejected when only lowercase letters are allowed")
	}
	if !c.IsSubstantive(tok("i")) {
		t.Error("lowercase i should be kept")
	}
}

func TestSubstantiveWords(t *testing.T) {
	c := New(stoplist.New("of"))
	tokens := []doc.Token{
		{Text: "Government", Lower: "government"},
		{Text: "of", Lower: "of"},
		{Text: "the", Lower: "the"},
		{Text: "People", Lower: "people"},
		{Text: ",", Lower: ",", IsPunct: true},
	}
	got := c.SubstantiveWords(tokens)
	want := []string{"government", "the", "people"}
	if !slices.Equal(got, want) {
		t.Errorf("SubstantiveWords = %v, want %v", got, want)
	}
}
