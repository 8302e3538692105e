package storetest

import (
	"context"
	"testing"
	"time"

	"github.com/cognicore/rhetoric/pkg/rhetoric/colloc"
	"github.com/cognicore/rhetoric/pkg/rhetoric/speech"
	"github.com/cognicore/rhetoric/pkg/rhetoric/store"
	"github.com/cognicore/rhetoric/pkg/rhetoric/synset"
)

// Run exercises every Store method on a fresh store from open
func Run(t *testing.T, open func(t *testing.T) store.Store) {
	t.Run("Speeches", func(t *testing.T) { testSpeeches(t, open(t)) })
	t.Run("SynsetRecords", func(t *testing.T) { testSynsetRecords(t, open(t)) })
	t.Run("Pairs", func(t *testing.T) { testPairs(t, open(t)) })
}

func testSpeeches(t *testing.T, st store.Store) {
	ctx := context.Background()
	defer st.Close()

	first := store.FromSpeech(speech.New(speech.Record{
		Title:     "First Inaugural Address",
		Author:    "Thomas Jefferson",
		Text:      "Friends and fellow citizens.",
		Timestamp: time.Date(1801, time.March, 4, 12, 0, 0, 0, time.UTC),
		Metadata:  map[string]any{"kind": "inaugural"},
	}, nil))
	second := store.FromSpeech(speech.New(speech.Record{
		Title:     "Second Inaugural Address",
		Author:    "Thomas Jefferson",
		Timestamp: time.Date(1805, time.March, 4, 12, 0, 0, 0, time.UTC),
	}, nil))

	for _, sp := range []store.Speech{second, first} {
		if err := st.UpsertSpeech(ctx, sp); err != nil {
			t.Fatalf("UpsertSpeech: %v", err)
		}
	}

	got, ok, err := st.GetSpeech(ctx, first.ID)
	if err != nil || !ok {
		t.Fatalf("GetSpeech: %v, %v", ok, err)
	}
	if got.Title != first.Title || got.Text != first.Text || !got.Timestamp.Equal(first.Timestamp) {
		t.Errorf("GetSpeech = %+v", got)
	}
	if got.Metadata["kind"] != "inaugural" {
		t.Errorf("metadata = %v", got.Metadata)
	}

	if _, ok, err := st.GetSpeech(ctx, "missing"); ok || err != nil {
		t.Errorf("GetSpeech(missing) = %v, %v", ok, err)
	}

	first.Title = "Inaugural Address"
	if err := st.UpsertSpeech(ctx, first); err != nil {
		t.Fatalf("UpsertSpeech: %v", err)
	}
	list, err := st.SpeechesByAuthor(ctx, "Thomas Jefferson")
	if err != nil {
		t.Fatalf("SpeechesByAuthor: %v", err)
	}
	if len(list) != 2 || list[0].Title != "Inaugural Address" || list[1].ID != second.ID {
		t.Errorf("SpeechesByAuthor = %+v", list)
	}
}

func testSynsetRecords(t *testing.T, st store.Store) {
	ctx := context.Background()
	defer st.Close()

	recs := []synset.Record{
		{Group: "g", Synset: "war", SpeechID: "s1", ID: 0, Matches: 1, Total: 10, Proportion: 0.1},
		{Group: "g", Synset: "liberty", SpeechID: "s2", ID: 1, Matches: 2, Total: 10, Proportion: 0.2},
		{Group: "g", Synset: "liberty", SpeechID: "s1", ID: 0, Matches: 3, Total: 10, Proportion: 0.3},
		{Group: "other", Synset: "liberty", SpeechID: "s1", ID: 0, Matches: 0, Total: 10},
	}
	if err := st.PutSynsetRecords(ctx, recs); err != nil {
		t.Fatalf("PutSynsetRecords: %v", err)
	}
	// replaces the first record
	if err := st.PutSynsetRecords(ctx, []synset.Record{{Group: "g", Synset: "war", SpeechID: "s1", Matches: 4, Total: 10, Proportion: 0.4}}); err != nil {
		t.Fatalf("PutSynsetRecords: %v", err)
	}

	got, err := st.SynsetRecords(ctx, "g")
	if err != nil {
		t.Fatalf("SynsetRecords: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 records, got %+v", got)
	}
	if got[0].Synset != "liberty" || got[0].SpeechID != "s1" || got[1].SpeechID != "s2" {
		t.Errorf("order = %+v", got)
	}
	if got[2].Synset != "war" || got[2].Matches != 4 {
		t.Errorf("replaced record = %+v", got[2])
	}
}

func testPairs(t *testing.T, st store.Store) {
	ctx := context.Background()
	defer st.Close()

	for _, p := range [][2]string{{"liberty", "freedom"}, {"freedom", "liberty"}, {"liberty", "liberty"}, {"liberty", "union"}} {
		if err := st.IncPair(ctx, p[0], p[1]); err != nil {
			t.Fatalf("IncPair: %v", err)
		}
	}
	counts := colloc.Counts[string]{
		{A: "liberty", B: "union"}: 2,
		{A: "union", B: "liberty"}: 2,
		{A: "liberty", B: "nation"}: 2,
		{A: "nation", B: "liberty"}: 2,
	}
	if err := st.AddPairs(ctx, counts); err != nil {
		t.Fatalf("AddPairs: %v", err)
	}

	if n, _ := st.PairCount(ctx, "freedom", "liberty"); n != 2 {
		t.Errorf("freedom/liberty = %d, want 2", n)
	}
	if n, _ := st.PairCount(ctx, "union", "liberty"); n != 3 {
		t.Errorf("union/liberty = %d, want 3", n)
	}
	if n, _ := st.PairCount(ctx, "liberty", "liberty"); n != 0 {
		t.Errorf("self pair stored: %d", n)
	}

	top, err := st.TopCollocates(ctx, "liberty", 2)
	if err != nil {
		t.Fatalf("TopCollocates: %v", err)
	}
	if len(top) != 2 || top[0] != (store.Collocate{Token: "union", Count: 3}) || top[1] != (store.Collocate{Token: "freedom", Count: 2}) {
		t.Errorf("TopCollocates = %+v", top)
	}
}
