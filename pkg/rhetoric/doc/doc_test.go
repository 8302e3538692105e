package doc

import (
	"errors"
	"testing"
)

func sample() *Document {
	text := "We hold these truths. All men are equal."
	words := []struct {
		s          string
		start, end int
		sent       int
	}{
		{"We", 0, 2, 0}, {"hold", 3, 7, 0}, {"these", 8, 13, 0}, {"truths", 14, 20, 0}, {".", 20, 21, 0},
		{"All", 22, 25, 1}, {"men", 26, 29, 1}, {"are", 30, 33, 1}, {"equal", 34, 39, 1}, {".", 39, 40, 1},
	}
	d := &Document{Text: text, Sentences: []Sentence{{Start: 0, End: 5}, {Start: 5, End: 10}}}
	for i, w := range words {
		d.Tokens = append(d.Tokens, Token{Text: w.s, Start: w.start, End: w.end, Sent: w.sent, Index: i})
	}
	return d
}

func TestDocumentValidate(t *testing.T) {
	d := sample()
	if err := d.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	bad := sample()
	bad.Sentences = []Sentence{{Start: 0, End: 5}}
	if err := bad.Validate(); !errors.Is(err, ErrMalformed) {
		t.Errorf("expected ErrMalformed for partial sentence coverage, got %v", err)
	}

	bad = sample()
	bad.Tokens[3].Index = 7
	if err := bad.Validate(); !errors.Is(err, ErrMalformed) {
		t.Errorf("expected ErrMalformed for bad index, got %v", err)
	}
}

func TestSpanClipping(t *testing.T) {
	d := sample()

	tests := []struct {
		name       string
		start, end int
		wantStart  int
		wantEnd    int
	}{
		{"inside", 2, 4, 2, 4},
		{"negative start", -3, 2, 0, 2},
		{"past end", 8, 20, 8, 10},
		{"inverted", 6, 3, 6, 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := d.Span(tt.start, tt.end)
			if s.Start != tt.wantStart || s.End != tt.wantEnd {
				t.Errorf("Span(%d,%d) = [%d,%d), want [%d,%d)", tt.start, tt.end, s.Start, s.End, tt.wantStart, tt.wantEnd)
			}
			if len(s.Tokens) != s.Len() {
				t.Errorf("token slice length %d != Len %d", len(s.Tokens), s.Len())
			}
		})
	}
}

func TestSpanText(t *testing.T) {
	d := sample()
	if got := d.Span(1, 4).Text(d); got != "hold these truths" {
		t.Errorf("Text = %q", got)
	}
	if got := d.Span(3, 3).Text(d); got != "" {
		t.Errorf("empty span Text = %q", got)
	}
}

func TestParseAttribute(t *testing.T) {
	for _, a := range []Attribute{Orth, Lower, Lemma, Stem} {
		got, err := ParseAttribute(a.String())
		if err != nil || got != a {
			t.Errorf("ParseAttribute(%q) = %v, %v", a.String(), got, err)
		}
	}
	if _, err := ParseAttribute("pos"); err == nil {
		t.Error("expected error for unknown attribute")
	}

	tok := Token{Text: "Liberty", Lower: "liberty", Lemma: "liberty", Stem: "liberti"}
	if Orth.Of(tok) != "Liberty" || Lower.Of(tok) != "liberty" || Stem.Of(tok) != "liberti" {
		t.Error("Attribute.Of returned the wrong field")
	}
}
