package synset

import (
	"fmt"
	"time"

	"github.com/cognicore/rhetoric/pkg/rhetoric/doc"
	"github.com/cognicore/rhetoric/pkg/rhetoric/freq"
	"github.com/cognicore/rhetoric/pkg/rhetoric/normalize"
	"github.com/cognicore/rhetoric/pkg/rhetoric/speech"
)

// Record is the usage of one synset in one speech
type Record struct {
	Group  string `json:"group"`
	Synset string `json:"synset"`
	// ID is the speech's position within its group.
	ID        int       `json:"id"`
	SpeechID  string    `json:"speech_id,omitempty"`
	Title     string    `json:"title,omitempty"`
	Author    string    `json:"author,omitempty"`
	Source    string    `json:"source,omitempty"`
	Timestamp time.Time `json:"timestamp"`

	Matches    int64   `json:"n_matches"`
	Total      int64   `json:"n_total"`
	Proportion float64 `json:"proportion"`
}

// LegacyRecord renders a Record with the field names of the word-level
// statistics export
type LegacyRecord struct {
	Group            string    `json:"group"`
	ID               int       `json:"id"`
	Synset           string    `json:"synset"`
	SynsetCount      int64     `json:"synset_count"`
	TotalCount       int64     `json:"total_count"`
	SynsetProportion float64   `json:"synset_proportion"`
	Title            string    `json:"title,omitempty"`
	Author           string    `json:"author,omitempty"`
	Source           string    `json:"source,omitempty"`
	Timestamp        time.Time `json:"timestamp"`
}

// Legacy converts r to the word-level field names
func (r Record) Legacy() LegacyRecord {
	return LegacyRecord{
		Group:            r.Group,
		ID:               r.ID,
		Synset:           r.Synset,
		SynsetCount:      r.Matches,
		TotalCount:       r.Total,
		SynsetProportion: r.Proportion,
		Title:            r.Title,
		Author:           r.Author,
		Source:           r.Source,
		Timestamp:        r.Timestamp,
	}
}

func newRecord(g *speech.Group, s Synset, id int, sp *speech.Speech, matches, total int64) (Record, error) {
	p, err := freq.Proportion(matches, total, sp.Title)
	if err != nil {
		return Record{}, fmt.Errorf("group %q synset %q: %w", g.Name, s.Name, err)
	}
	return Record{
		Group:      g.Name,
		Synset:     s.Name,
		ID:         id,
		SpeechID:   sp.ID,
		Title:      sp.Title,
		Author:     sp.Author,
		Source:     sp.Source,
		Timestamp:  sp.Timestamp,
		Matches:    matches,
		Total:      total,
		Proportion: p,
	}, nil
}

func tally(counts freq.Counter[string], s Synset) int64 {
	var n int64
	for v := range s.set() {
		n += counts[v]
	}
	return n
}

// Stats returns one record per speech of g, in group order, counting
// lowercase word forms
func Stats(g *speech.Group, s Synset) ([]Record, error) {
	out := make([]Record, 0, g.Len())
	for i, sp := range g.Speeches {
		counts, err := sp.CountWordsBy(doc.Lower)
		if err != nil {
			return nil, err
		}
		r, err := newRecord(g, s, i, sp, tally(counts, s), counts.Total())
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

// AllStats runs Stats for every group and synset, group-major
func AllStats(groups []*speech.Group, synsets []Synset) ([]Record, error) {
	var out []Record
	for _, g := range groups {
		for _, s := range synsets {
			recs, err := Stats(g, s)
			if err != nil {
				return nil, err
			}
			out = append(out, recs...)
		}
	}
	return out, nil
}

// WordStats counts with the regular-expression word path instead of the
// speech's tokenizer, for every speech of g and then every synset. Records
// are speech-major
func WordStats(g *speech.Group, synsets []Synset, stops normalize.Stopwords) ([]Record, error) {
	var out []Record
	for i, sp := range g.Speeches {
		counts := freq.NewCounter(normalize.Words(sp.Text, stops)...)
		for _, s := range synsets {
			r, err := newRecord(g, s, i, sp, tally(counts, s), counts.Total())
			if err != nil {
				return nil, err
			}
			out = append(out, r)
		}
	}
	return out, nil
}

// AllWordStats runs WordStats for every group
func AllWordStats(groups []*speech.Group, synsets []Synset, stops normalize.Stopwords) ([]Record, error) {
	var out []Record
	for _, g := range groups {
		recs, err := WordStats(g, synsets, stops)
		if err != nil {
			return nil, err
		}
		out = append(out, recs...)
	}
	return out, nil
}
