package colloc

import (
	"cmp"
	"slices"
	"strings"
	"testing"

	"github.com/cognicore/rhetoric/pkg/rhetoric/doc"
	"github.com/cognicore/rhetoric/pkg/rhetoric/vocab"
)

// build makes a document from sentences of space-separated words. Words
// starting with '_' are flagged as stopwords.
func build(sentences ...string) *doc.Document {
	d := &doc.Document{}
	var b strings.Builder
	for si, s := range sentences {
		start := len(d.Tokens)
		for _, w := range strings.Fields(s) {
			if b.Len() > 0 {
				b.WriteByte(' ')
			}
			stop := strings.HasPrefix(w, "_")
			w = strings.TrimPrefix(w, "_")
			off := b.Len()
			b.WriteString(w)
			d.Tokens = append(d.Tokens, doc.Token{
				Text: w, Lower: strings.ToLower(w), Lemma: strings.ToLower(w),
				IsStop: stop, Start: off, End: off + len(w),
				Sent: si, Index: len(d.Tokens),
			})
		}
		d.Sentences = append(d.Sentences, doc.Sentence{Start: start, End: len(d.Tokens)})
	}
	d.Text = b.String()
	return d
}

func notStop(t doc.Token) bool { return !t.IsStop }

func collect[V cmp.Ordered](docs []*doc.Document, mapf func(doc.Token) V) [][2]V {
	var out [][2]V
	for a, b := range SentenceCollocations(docs, notStop, mapf) {
		out = append(out, [2]V{a, b})
	}
	return out
}

func TestCollocationsPermutations(t *testing.T) {
	var got [][2]string
	for a, b := range Collocations([]string{"c", "a", "b"}) {
		got = append(got, [2]string{a, b})
	}
	want := [][2]string{{"a", "b"}, {"a", "c"}, {"b", "a"}, {"b", "c"}, {"c", "a"}, {"c", "b"}}
	if !slices.Equal(got, want) {
		t.Errorf("Collocations = %v, want %v", got, want)
	}
}

func TestCollocationsDropSelfPairs(t *testing.T) {
	var got [][2]string
	for a, b := range Collocations([]string{"war", "war", "peace"}) {
		if a == b {
			t.Fatalf("self pair (%s, %s)", a, b)
		}
		got = append(got, [2]string{a, b})
	}
	// each war position pairs with peace in both orders
	if len(got) != 4 {
		t.Errorf("expected 4 pairs, got %v", got)
	}
}

func TestSentenceScoped(t *testing.T) {
	d := build("liberty _and union", "peace _and war")
	pairs := collect([]*doc.Document{d}, Strings(doc.Lower))

	for _, p := range pairs {
		crossed := (p[0] == "liberty" || p[0] == "union") != (p[1] == "liberty" || p[1] == "union")
		if crossed {
			t.Errorf("cross-sentence pair %v", p)
		}
		if p[0] == "and" || p[1] == "and" {
			t.Errorf("stopword in pair %v", p)
		}
	}
	if len(pairs) != 4 {
		t.Errorf("expected 4 pairs, got %d: %v", len(pairs), pairs)
	}
}

func TestCountsSymmetric(t *testing.T) {
	docs := []*doc.Document{
		build("freedom liberty nation", "nation _of laws"),
		build("liberty freedom freedom", "people nation freedom"),
	}
	counts := SentenceCollocationCounts(docs, notStop, Strings(doc.Lower))

	if !counts.Symmetric() {
		t.Fatalf("counts not symmetric: %v", counts)
	}
	for p := range counts {
		if p.A == p.B {
			t.Errorf("self pair %v", p)
		}
	}
	// sentence 1: one (freedom, liberty); sentence 3: two freedoms x one liberty
	if got := counts.Get("freedom", "liberty"); got != 3 {
		t.Errorf("freedom/liberty = %d, want 3", got)
	}
	if counts.Get("liberty", "freedom") != counts.Get("freedom", "liberty") {
		t.Error("reverse count differs")
	}
	if counts.Get("laws", "freedom") != 0 {
		t.Error("laws and freedom never share a sentence")
	}
}

func TestMapping(t *testing.T) {
	d := build("freedom liberty nation", "freedom nation")
	m := SentenceCollocationMapping([]*doc.Document{d}, notStop, Strings(doc.Lower))

	if got := m["freedom"]["nation"]; got != 2 {
		t.Errorf("freedom->nation = %d, want 2", got)
	}
	if got := m["freedom"]["liberty"]; got != 1 {
		t.Errorf("freedom->liberty = %d, want 1", got)
	}
	if _, ok := m["freedom"]["freedom"]; ok {
		t.Error("value listed as its own collocate")
	}
	if !slices.Equal(m.Keys(), []string{"freedom", "liberty", "nation"}) {
		t.Errorf("Keys = %v", m.Keys())
	}
}

func TestInternedMapping(t *testing.T) {
	v := vocab.New()
	d := build("Liberty freedom", "liberty Nation")
	counts := SentenceCollocationCounts([]*doc.Document{d}, nil, Interned(v, doc.Lower))

	lib, _ := v.Lookup("liberty")
	fr, _ := v.Lookup("freedom")
	if counts.Get(lib, fr) != 1 || counts.Get(fr, lib) != 1 {
		t.Errorf("interned counts wrong: %v", counts)
	}
	if v.Len() != 3 {
		t.Errorf("expected 3 interned forms, got %d", v.Len())
	}
}

func TestEarlyStop(t *testing.T) {
	d := build("a b c d e")
	n := 0
	for range SentenceCollocations([]*doc.Document{d}, nil, Strings(doc.Orth)) {
		n++
		if n == 3 {
			break
		}
	}
	if n != 3 {
		t.Errorf("iteration did not stop: %d", n)
	}
}
