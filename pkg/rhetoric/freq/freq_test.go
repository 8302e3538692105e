package freq

import (
	"errors"
	"math"
	"testing"

	"github.com/cognicore/rhetoric/pkg/rhetoric/doc"
)

func testDoc() *doc.Document {
	words := []struct {
		text, lower, lemma string
		punct              bool
	}{
		{"Freedom", "freedom", "freedom", false},
		{"rings", "rings", "ring", false},
		{",", ",", ",", true},
		{"freedom", "freedom", "freedom", false},
		{"rang", "rang", "ring", false},
		{".", ".", ".", true},
	}
	d := &doc.Document{}
	for i, w := range words {
		d.Tokens = append(d.Tokens, doc.Token{Text: w.text, Lower: w.lower, Lemma: w.lemma, IsPunct: w.punct, Index: i})
	}
	d.Sentences = []doc.Sentence{{Start: 0, End: len(d.Tokens)}}
	return d
}

func notPunct(t doc.Token) bool { return !t.IsPunct }

func TestCountWordsByAttribute(t *testing.T) {
	d := testDoc()

	tests := []struct {
		attr doc.Attribute
		want map[string]int64
	}{
		{doc.Orth, map[string]int64{"Freedom": 1, "freedom": 1, "rings": 1, "rang": 1}},
		{doc.Lower, map[string]int64{"freedom": 2, "rings": 1, "rang": 1}},
		{doc.Lemma, map[string]int64{"freedom": 2, "ring": 2}},
	}
	for _, tt := range tests {
		t.Run(tt.attr.String(), func(t *testing.T) {
			got := CountWordsBy(d, tt.attr, notPunct)
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for k, v := range tt.want {
				if got[k] != v {
					t.Errorf("%s: got %d, want %d", k, got[k], v)
				}
			}
		})
	}
}

func TestCountSumEqualsWordCount(t *testing.T) {
	d := testDoc()
	var words int64
	for _, tok := range d.Tokens {
		if notPunct(tok) {
			words++
		}
	}
	for _, attr := range []doc.Attribute{doc.Orth, doc.Lower, doc.Lemma, doc.Stem} {
		if got := CountWordsBy(d, attr, notPunct).Total(); got != words {
			t.Errorf("%s: total %d, want %d", attr, got, words)
		}
	}
}

func TestFreqWordsBy(t *testing.T) {
	freqs, err := FreqWordsBy(testDoc(), doc.Lemma, notPunct)
	if err != nil {
		t.Fatal(err)
	}
	var sum float64
	for _, f := range freqs {
		sum += f
	}
	if math.Abs(sum-1) > 1e-9 {
		t.Errorf("frequencies sum to %f", sum)
	}
	if freqs["ring"] != 0.5 {
		t.Errorf("ring = %f, want 0.5", freqs["ring"])
	}
}

func TestFreqWordsByDegenerate(t *testing.T) {
	d := &doc.Document{Tokens: []doc.Token{{Text: ".", IsPunct: true}}}
	_, err := FreqWordsBy(d, doc.Orth, notPunct)
	if !errors.Is(err, ErrDegenerateDocument) {
		t.Fatalf("expected ErrDegenerateDocument, got %v", err)
	}
}

func TestProportion(t *testing.T) {
	p, err := Proportion(1, 4, "x")
	if err != nil || p != 0.25 {
		t.Errorf("Proportion(1,4) = %f, %v", p, err)
	}
	_, err = Proportion(0, 0, "empty speech")
	var de *DegenerateDocumentError
	if !errors.As(err, &de) || de.Name != "empty speech" {
		t.Errorf("expected DegenerateDocumentError naming the speech, got %v", err)
	}
}

func TestSumAssociative(t *testing.T) {
	a := NewCounter("x", "y", "x")
	b := NewCounter("y", "z")
	c := NewCounter("x")

	left := Sum(Sum(a, b), c)
	right := Sum(a, Sum(b, c))
	if len(left) != len(right) {
		t.Fatalf("left %v right %v", left, right)
	}
	for k, v := range left {
		if right[k] != v {
			t.Errorf("%s: %d vs %d", k, v, right[k])
		}
	}
	if len(Sum[string]()) != 0 {
		t.Error("Sum of nothing should be empty")
	}
	// inputs stay untouched
	if a["x"] != 2 {
		t.Error("Sum mutated its input")
	}
}

func TestTopTieBreak(t *testing.T) {
	c := Counter[string]{"b": 3, "a": 3, "c": 5, "d": 1}
	top := Top(c, 3)
	want := []string{"c", "a", "b"}
	for i, e := range top {
		if e.Key != want[i] {
			t.Errorf("Top[%d] = %s, want %s", i, e.Key, want[i])
		}
	}
	if got := len(Top(c, -1)); got != 4 {
		t.Errorf("Top(-1) returned %d entries", got)
	}
}
