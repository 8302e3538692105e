package config

import (
	"fmt"
	"time"

	"github.com/cognicore/rhetoric/internal/feed"
	"github.com/cognicore/rhetoric/pkg/rhetoric/speech"
)

// Group selects speeches by every field that is set
type Group struct {
	Name          string            `yaml:"name"`
	Slug          string            `yaml:"slug"`
	Author        string            `yaml:"author"`
	TitleContains string            `yaml:"title_contains"`
	From          string            `yaml:"from"`
	To            string            `yaml:"to"`
	Metadata      map[string]string `yaml:"metadata"`
}

// Predicates translates the set fields into speech predicates. Dates
// without a zone are read in loc
func (g Group) Predicates(loc *time.Location) ([]speech.Predicate, error) {
	var preds []speech.Predicate
	if g.Author != "" {
		preds = append(preds, speech.ByAuthor(g.Author))
	}
	if g.TitleContains != "" {
		preds = append(preds, speech.TitleContains(g.TitleContains))
	}
	if g.From != "" || g.To != "" {
		var from, to time.Time
		var err error
		if g.From != "" {
			if from, err = feed.ParseTimestamp(g.From, loc); err != nil {
				return nil, fmt.Errorf("group %q from: %w", g.Name, err)
			}
		}
		if g.To != "" {
			if to, err = feed.ParseTimestamp(g.To, loc); err != nil {
				return nil, fmt.Errorf("group %q to: %w", g.Name, err)
			}
		}
		preds = append(preds, speech.Between(from, to))
	}
	for k, v := range g.Metadata {
		preds = append(preds, speech.MetadataEquals(k, v))
	}
	return preds, nil
}

// Build selects g's speeches
func (g Group) Build(speeches []*speech.Speech, loc *time.Location) (*speech.Group, error) {
	preds, err := g.Predicates(loc)
	if err != nil {
		return nil, err
	}
	return speech.FromPredicates(g.Name, g.Slug, speeches, preds...), nil
}

// ByAuthor makes one group per author, in order of first appearance
func ByAuthor(speeches []*speech.Speech) []*speech.Group {
	var out []*speech.Group
	index := map[string]*speech.Group{}
	for _, s := range speeches {
		g, ok := index[s.Author]
		if !ok {
			g = speech.NewGroup(s.Author, nil)
			index[s.Author] = g
			out = append(out, g)
		}
		g.Speeches = append(g.Speeches, s)
	}
	return out
}
