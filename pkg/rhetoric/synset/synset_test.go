package synset

import (
	"encoding/json"
	"errors"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/cognicore/rhetoric/internal/doctest"
	"github.com/cognicore/rhetoric/pkg/rhetoric/classify"
	"github.com/cognicore/rhetoric/pkg/rhetoric/colloc"
	"github.com/cognicore/rhetoric/pkg/rhetoric/doc"
	"github.com/cognicore/rhetoric/pkg/rhetoric/freq"
	"github.com/cognicore/rhetoric/pkg/rhetoric/speech"
	"github.com/cognicore/rhetoric/pkg/rhetoric/stoplist"
)

var stopwords = []string{"the", "of", "and", "a", "to", "we", "our", "is", "in"}

func pipeline() *speech.Pipeline {
	return &speech.Pipeline{
		Tokenizer:  doctest.New(stopwords...),
		Classifier: classify.New(stoplist.New(stopwords...)),
	}
}

func inaugurals(pipe *speech.Pipeline) *speech.Group {
	return speech.NewGroup("A inaugurals", []*speech.Speech{
		speech.New(speech.Record{
			Author:    "A",
			Title:     "Inaugural Address",
			Timestamp: time.Date(1801, time.March, 4, 0, 0, 0, 0, time.UTC),
			Text:      "Friends and fellow citizens. We are all republicans. Liberty and freedom of religion.",
		}, pipe),
		speech.New(speech.Record{
			Author:    "A",
			Title:     "Second Inaugural Address",
			Timestamp: time.Date(1805, time.March, 4, 0, 0, 0, 0, time.UTC),
			Text:      "Proceeding to the duties of this office. Freedom of the press.",
		}, pipe),
	})
}

func TestStatsEndToEnd(t *testing.T) {
	g := inaugurals(pipeline())
	recs, err := Stats(g, New("liberty", "liberty", "freedom"))
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recs))
	}
	for i, r := range recs {
		if r.Synset != "liberty" || r.Group != "A inaugurals" || r.ID != i {
			t.Errorf("record %d = %+v", i, r)
		}
		if r.Proportion < 0 || r.Proportion > 1 {
			t.Errorf("record %d proportion %f out of range", i, r.Proportion)
		}
	}

	// friends fellow citizens are all republicans liberty freedom religion
	if recs[0].Matches != 2 || recs[0].Total != 9 {
		t.Errorf("first speech = %d/%d, want 2/9", recs[0].Matches, recs[0].Total)
	}
	// proceeding duties this office freedom press
	if recs[1].Matches != 1 || recs[1].Total != 6 {
		t.Errorf("second speech = %d/%d, want 1/6", recs[1].Matches, recs[1].Total)
	}
}

func TestStatsDegenerate(t *testing.T) {
	pipe := pipeline()
	g := speech.NewGroup("empty", []*speech.Speech{
		speech.New(speech.Record{Title: "Silence", Text: "the of and ."}, pipe),
	})
	_, err := Stats(g, New("liberty", "liberty"))
	if !errors.Is(err, freq.ErrDegenerateDocument) {
		t.Fatalf("expected ErrDegenerateDocument, got %v", err)
	}
	var de *freq.DegenerateDocumentError
	if !errors.As(err, &de) || de.Name != "Silence" {
		t.Errorf("error does not name the speech: %v", err)
	}

	if _, err := WordStats(g, []Synset{New("liberty", "liberty")}, stoplist.New(stopwords...)); !errors.Is(err, freq.ErrDegenerateDocument) {
		t.Errorf("WordStats error = %v", err)
	}
}

func TestAllStatsOrder(t *testing.T) {
	pipe := pipeline()
	g1 := inaugurals(pipe)
	g2 := speech.NewGroup("B", g1.Speeches[:1])
	synsets := []Synset{New("liberty", "liberty", "freedom"), New("office", "office")}

	recs, err := AllStats([]*speech.Group{g1, g2}, synsets)
	if err != nil {
		t.Fatalf("AllStats: %v", err)
	}
	var got []string
	for _, r := range recs {
		got = append(got, r.Group+"/"+r.Synset)
	}
	want := []string{
		"A inaugurals/liberty", "A inaugurals/liberty",
		"A inaugurals/office", "A inaugurals/office",
		"B/liberty", "B/office",
	}
	if !slices.Equal(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
}

func TestWordStats(t *testing.T) {
	g := inaugurals(pipeline())
	recs, err := WordStats(g, []Synset{New("liberty", "liberty", "freedom"), New("press", "press")}, stoplist.New(stopwords...))
	if err != nil {
		t.Fatalf("WordStats: %v", err)
	}
	if len(recs) != 4 {
		t.Fatalf("expected 4 records, got %d", len(recs))
	}
	// speech-major
	if recs[0].ID != 0 || recs[1].ID != 0 || recs[2].ID != 1 || recs[1].Synset != "press" {
		t.Errorf("records out of order: %+v", recs)
	}
	if recs[3].Matches != 1 {
		t.Errorf("press matches = %d", recs[3].Matches)
	}

	b, err := json.Marshal(recs[0].Legacy())
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	for _, key := range []string{`"synset_count":2`, `"total_count":`, `"synset_proportion":`} {
		if !strings.Contains(string(b), key) {
			t.Errorf("legacy json %s missing %s", b, key)
		}
	}
}

func TestUnion(t *testing.T) {
	u := New("liberty", "liberty", "freedom").Union(New("independence", "independence", "freedom"))
	if u.Name != "liberty+independence" {
		t.Errorf("name = %q", u.Name)
	}
	if !slices.Equal(u.Values, []string{"liberty", "freedom", "independence"}) {
		t.Errorf("values = %v", u.Values)
	}
	if !u.Contains("independence") || u.Contains("union") {
		t.Error("Contains mismatch")
	}
}

func TestExpandAndSeeds(t *testing.T) {
	pipe := pipeline()
	g := inaugurals(pipe)
	docs, err := speech.Documents(g.Speeches)
	if err != nil {
		t.Fatalf("Documents: %v", err)
	}
	m := colloc.SentenceCollocationMapping(docs, pipe.IsWord, colloc.Strings(doc.Lower))

	seeds, err := Seeds(pipe, doc.Lower, []string{"Freedom", "the", "freedom"})
	if err != nil {
		t.Fatalf("Seeds: %v", err)
	}
	// stopwords stay in the synset
	if !slices.Equal(seeds, []string{"freedom", "the"}) {
		t.Fatalf("seeds = %v", seeds)
	}

	s := Expand(New("freedom", seeds...), m, 3)
	if !slices.Equal(s.Values[:2], seeds) {
		t.Errorf("seeds not first: %v", s.Values)
	}
	if len(s.Values) != 5 {
		t.Errorf("expected seeds plus 3 collocates, got %v", s.Values)
	}
	for _, v := range s.Values[2:] {
		if v == "freedom" || v == "the" {
			t.Error("seed repeated in expansion")
		}
	}
}
