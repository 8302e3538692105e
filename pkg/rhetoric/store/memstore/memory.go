package memstore

import (
	"context"
	"maps"
	"sort"
	"sync"

	"github.com/cognicore/rhetoric/pkg/rhetoric/colloc"
	"github.com/cognicore/rhetoric/pkg/rhetoric/store"
	"github.com/cognicore/rhetoric/pkg/rhetoric/synset"
)

type recordKey struct {
	group, synset, speechID string
}

// Store is an in-memory implementation of store.Store for tests
type Store struct {
	mu       sync.RWMutex
	speeches map[string]store.Speech
	records  map[recordKey]synset.Record
	pairs    map[[2]string]int64
}

// New creates an empty store
func New() *Store {
	return &Store{
		speeches: make(map[string]store.Speech),
		records:  make(map[recordKey]synset.Record),
		pairs:    make(map[[2]string]int64),
	}
}

// Close implements store.Store
func (s *Store) Close() error { return nil }

func copySpeech(sp store.Speech) store.Speech {
	sp.Metadata = maps.Clone(sp.Metadata)
	if sp.Metadata == nil {
		sp.Metadata = map[string]any{}
	}
	return sp
}

// UpsertSpeech stores a copy of sp
func (s *Store) UpsertSpeech(ctx context.Context, sp store.Speech) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.speeches[sp.ID] = copySpeech(sp)
	return nil
}

// GetSpeech returns a speech by ID
func (s *Store) GetSpeech(ctx context.Context, id string) (store.Speech, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sp, ok := s.speeches[id]
	if !ok {
		return store.Speech{}, false, nil
	}
	return copySpeech(sp), true, nil
}

// SpeechesByAuthor returns an author's speeches in timestamp order
func (s *Store) SpeechesByAuthor(ctx context.Context, author string) ([]store.Speech, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []store.Speech
	for _, sp := range s.speeches {
		if sp.Author == author {
			out = append(out, copySpeech(sp))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].Timestamp.Before(out[j].Timestamp)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// PutSynsetRecords stores recs, replacing matching keys
func (s *Store) PutSynsetRecords(ctx context.Context, recs []synset.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range recs {
		s.records[recordKey{r.Group, r.Synset, r.SpeechID}] = r
	}
	return nil
}

// SynsetRecords returns a group's records ordered by synset, then position
func (s *Store) SynsetRecords(ctx context.Context, group string) ([]synset.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []synset.Record
	for k, r := range s.records {
		if k.group == group {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Synset != out[j].Synset {
			return out[i].Synset < out[j].Synset
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// IncPair increments the count of an unordered pair
func (s *Store) IncPair(ctx context.Context, a, b string) error {
	if a == b {
		return nil
	}
	a, b = store.Ordered(a, b)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pairs[[2]string{a, b}]++
	return nil
}

// AddPairs adds the A < B half of counts
func (s *Store) AddPairs(ctx context.Context, counts colloc.Counts[string]) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for p, n := range counts {
		if p.A < p.B && n > 0 {
			s.pairs[[2]string{p.A, p.B}] += n
		}
	}
	return nil
}

// PairCount returns the count of an unordered pair
func (s *Store) PairCount(ctx context.Context, a, b string) (int64, error) {
	a, b = store.Ordered(a, b)
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pairs[[2]string{a, b}], nil
}

// TopCollocates returns the k tokens seen most often with token
func (s *Store) TopCollocates(ctx context.Context, token string, k int) ([]store.Collocate, error) {
	if k <= 0 {
		k = 10
	}
	s.mu.RLock()
	var out []store.Collocate
	for p, n := range s.pairs {
		switch token {
		case p[0]:
			out = append(out, store.Collocate{Token: p[1], Count: n})
		case p[1]:
			out = append(out, store.Collocate{Token: p[0], Count: n})
		}
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Token < out[j].Token
	})
	if len(out) > k {
		out = out[:k]
	}
	return out, nil
}
