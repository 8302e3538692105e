package rhetoric

import (
	"context"
	"fmt"

	"github.com/cognicore/rhetoric/pkg/rhetoric/colloc"
	"github.com/cognicore/rhetoric/pkg/rhetoric/doc"
	"github.com/cognicore/rhetoric/pkg/rhetoric/speech"
	"github.com/cognicore/rhetoric/pkg/rhetoric/store"
	"github.com/cognicore/rhetoric/pkg/rhetoric/synset"
	"github.com/cognicore/rhetoric/pkg/rhetoric/vocab"
)

// Engine runs analyses and persists their results
type Engine struct {
	store   store.Store
	pipe    *speech.Pipeline
	workers int
}

// Options configures an Engine
type Options struct {
	Store    store.Store
	Pipeline *speech.Pipeline
	// Workers bounds parallel tokenization; <= 0 means GOMAXPROCS.
	Workers int
}

// New creates an Engine
func New(opts Options) *Engine {
	return &Engine{store: opts.Store, pipe: opts.Pipeline, workers: opts.Workers}
}

// Close closes the store
func (e *Engine) Close() error {
	return e.store.Close()
}

// Pipeline returns the engine's pipeline
func (e *Engine) Pipeline() *speech.Pipeline { return e.pipe }

// Ingest binds records to the pipeline, stores them and tokenizes them in
// parallel
func (e *Engine) Ingest(ctx context.Context, recs []speech.Record) ([]*speech.Speech, error) {
	speeches := make([]*speech.Speech, len(recs))
	for i, rec := range recs {
		s := speech.New(rec, e.pipe)
		if err := e.store.UpsertSpeech(ctx, store.FromSpeech(s)); err != nil {
			return nil, fmt.Errorf("store speech %q: %w", rec.Title, err)
		}
		speeches[i] = s
	}
	if err := speech.Parallel(ctx, speeches, e.workers); err != nil {
		return nil, err
	}
	return speeches, nil
}

// SynsetStats computes the statistics of every synset in every group and
// stores them
func (e *Engine) SynsetStats(ctx context.Context, groups []*speech.Group, synsets []synset.Synset) ([]synset.Record, error) {
	recs, err := synset.AllStats(groups, synsets)
	if err != nil {
		return nil, err
	}
	if err := e.store.PutSynsetRecords(ctx, recs); err != nil {
		return nil, fmt.Errorf("store synset records: %w", err)
	}
	return recs, nil
}

// Collocations counts sentence collocations of the attr forms of every
// word in speeches, adds them to the store and returns the mapping. Forms
// are interned while counting
func (e *Engine) Collocations(ctx context.Context, speeches []*speech.Speech, attr doc.Attribute) (colloc.Mapping[string], error) {
	docs, err := speech.Documents(speeches)
	if err != nil {
		return nil, err
	}
	v := vocab.New()
	ids := colloc.SentenceCollocationCounts(docs, e.pipe.IsWord, colloc.Interned(v, attr))
	counts := make(colloc.Counts[string], len(ids))
	for p, n := range ids {
		counts[colloc.Pair[string]{A: v.MustResolve(p.A), B: v.MustResolve(p.B)}] = n
	}
	if err := e.store.AddPairs(ctx, counts); err != nil {
		return nil, fmt.Errorf("store collocations: %w", err)
	}
	return counts.Mapping(), nil
}

// Expand grows each synset by up to n collocates. Values are first reduced
// to their attr forms with the pipeline
func (e *Engine) Expand(synsets []synset.Synset, m colloc.Mapping[string], attr doc.Attribute, n int) ([]synset.Synset, error) {
	out := make([]synset.Synset, len(synsets))
	for i, s := range synsets {
		seeds, err := synset.Seeds(e.pipe, attr, s.Values)
		if err != nil {
			return nil, fmt.Errorf("synset %q: %w", s.Name, err)
		}
		out[i] = synset.Expand(synset.New(s.Name, seeds...), m, n)
	}
	return out, nil
}
