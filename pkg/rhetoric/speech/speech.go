package speech

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/cognicore/rhetoric/pkg/rhetoric/classify"
	"github.com/cognicore/rhetoric/pkg/rhetoric/doc"
	"github.com/cognicore/rhetoric/pkg/rhetoric/freq"
)

// ErrNoPipeline is returned when a speech has no pipeline to tokenize with
var ErrNoPipeline = errors.New("speech has no pipeline")

// Pipeline carries the components every speech shares. It is passed
// explicitly instead of living in package state
type Pipeline struct {
	Tokenizer  doc.Tokenizer
	Classifier *classify.Classifier
	// Prepare rewrites the text before tokenization, e.g. normalize.Normalize.
	Prepare func(string) string
}

// Process tokenizes text
func (p *Pipeline) Process(text string) (*doc.Document, error) {
	if p == nil || p.Tokenizer == nil {
		return nil, ErrNoPipeline
	}
	if p.Prepare != nil {
		text = p.Prepare(text)
	}
	return p.Tokenizer.Tokenize(text)
}

// IsWord is the predicate word counts use
func (p *Pipeline) IsWord(t doc.Token) bool {
	if p == nil || p.Classifier == nil {
		return !(t.IsStop || t.IsPunct || t.IsSpace)
	}
	return p.Classifier.IsWord(t)
}

// Record is the serialized form of a speech
type Record struct {
	Title     string         `json:"title"`
	Author    string         `json:"author"`
	Text      string         `json:"text"`
	Source    string         `json:"source"`
	Timestamp time.Time      `json:"timestamp"`
	Metadata  map[string]any `json:"-"`
}

var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(rand.Reader, 0)
)

func newID() string {
	entropyMu.Lock()
	defer entropyMu.Unlock()
	return ulid.MustNew(ulid.Now(), entropy).String()
}

// Speech is an immutable record plus its lazily computed document
type Speech struct {
	Record
	ID string

	pipe *Pipeline

	once sync.Once
	doc  *doc.Document
	err  error

	mu     sync.Mutex
	counts map[doc.Attribute]freq.Counter[string]
}

// New binds rec to pipe and assigns it a ULID
func New(rec Record, pipe *Pipeline) *Speech {
	if rec.Metadata == nil {
		rec.Metadata = map[string]any{}
	}
	return &Speech{Record: rec, ID: newID(), pipe: pipe}
}

// Pipeline returns the pipeline the speech was created with
func (s *Speech) Pipeline() *Pipeline { return s.pipe }

// Document tokenizes the text on first use. The result, or the error, is
// kept for the life of the speech
func (s *Speech) Document() (*doc.Document, error) {
	s.once.Do(func() {
		s.doc, s.err = s.pipe.Process(s.Text)
		if s.err != nil {
			s.err = fmt.Errorf("tokenize %q: %w", s.Title, s.err)
		}
	})
	return s.doc, s.err
}

// CountWordsBy counts the words of the speech by attr. Results are cached per
// attribute; callers must not modify the returned counter
func (s *Speech) CountWordsBy(attr doc.Attribute) (freq.Counter[string], error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.counts[attr]; ok {
		return c, nil
	}
	d, err := s.Document()
	if err != nil {
		return nil, err
	}
	c := freq.CountWordsBy(d, attr, s.pipe.IsWord)
	if s.counts == nil {
		s.counts = make(map[doc.Attribute]freq.Counter[string])
	}
	s.counts[attr] = c
	return c, nil
}

// Get looks up a fixed field by its serialized name, then the metadata
func (s *Speech) Get(key string) (any, bool) {
	switch key {
	case "id":
		return s.ID, true
	case "title":
		return s.Title, true
	case "author":
		return s.Author, true
	case "text":
		return s.Text, true
	case "source":
		return s.Source, true
	case "timestamp":
		return s.Timestamp, true
	}
	v, ok := s.Metadata[key]
	return v, ok
}

// Keys lists the fixed field names followed by the sorted metadata keys
func (s *Speech) Keys() []string {
	keys := []string{"id", "title", "author", "text", "source", "timestamp"}
	return append(keys, slices.Sorted(maps.Keys(s.Metadata))...)
}

// Date returns midnight of the speech's day in its own time zone
func (s *Speech) Date() time.Time {
	y, m, d := s.Timestamp.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, s.Timestamp.Location())
}

// MarshalJSON flattens the metadata into the top-level object
func (s *Speech) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(s.Metadata)+6)
	for k, v := range s.Metadata {
		out[k] = v
	}
	out["id"] = s.ID
	out["title"] = s.Title
	out["author"] = s.Author
	out["text"] = s.Text
	out["source"] = s.Source
	out["timestamp"] = s.Timestamp
	return json.Marshal(out)
}

func (s *Speech) String() string {
	parts := []string{
		fmt.Sprintf("title=%q", s.Title),
		fmt.Sprintf("author=%q", s.Author),
		fmt.Sprintf("text=%q", Elide(s.Text, DefaultElide)),
		fmt.Sprintf("source=%q", s.Source),
		"timestamp=" + s.Timestamp.Format(time.RFC3339),
	}
	if len(s.Metadata) > 0 {
		parts = append(parts, fmt.Sprintf("metadata=%v", s.Metadata))
	}
	return "Speech(" + strings.Join(parts, ", ") + ")"
}

// Documents returns the document of every speech, stopping at the first error
func Documents(speeches []*Speech) ([]*doc.Document, error) {
	docs := make([]*doc.Document, 0, len(speeches))
	for _, s := range speeches {
		d, err := s.Document()
		if err != nil {
			return nil, err
		}
		docs = append(docs, d)
	}
	return docs, nil
}
