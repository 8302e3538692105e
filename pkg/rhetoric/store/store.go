package store

import (
	"context"

	"github.com/cognicore/rhetoric/pkg/rhetoric/colloc"
	"github.com/cognicore/rhetoric/pkg/rhetoric/speech"
	"github.com/cognicore/rhetoric/pkg/rhetoric/synset"
)

// Store is implemented by sqlite and memstore
type Store interface {
	Close() error

	// Speeches
	UpsertSpeech(ctx context.Context, s Speech) error
	GetSpeech(ctx context.Context, id string) (Speech, bool, error)
	SpeechesByAuthor(ctx context.Context, author string) ([]Speech, error)

	// Synset statistics, keyed by (group, synset, speech ID)
	PutSynsetRecords(ctx context.Context, recs []synset.Record) error
	SynsetRecords(ctx context.Context, group string) ([]synset.Record, error)

	// Collocations, stored once per unordered pair
	IncPair(ctx context.Context, a, b string) error
	AddPairs(ctx context.Context, counts colloc.Counts[string]) error
	PairCount(ctx context.Context, a, b string) (int64, error)
	TopCollocates(ctx context.Context, token string, k int) ([]Collocate, error)
}

// Speech is a stored speech record
type Speech struct {
	ID string
	speech.Record
}

// FromSpeech copies the persistent fields of s
func FromSpeech(s *speech.Speech) Speech {
	return Speech{ID: s.ID, Record: s.Record}
}

// Collocate is a token and its co-occurrence count with another token
type Collocate struct {
	Token string
	Count int64
}

// Ordered returns a and b with the smaller first, the key under which a
// pair is stored
func Ordered(a, b string) (string, string) {
	if a > b {
		return b, a
	}
	return a, b
}
