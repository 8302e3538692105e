package synset

import (
	"fmt"
	"slices"
	"strings"

	"github.com/cognicore/rhetoric/pkg/rhetoric/colloc"
	"github.com/cognicore/rhetoric/pkg/rhetoric/doc"
	"github.com/cognicore/rhetoric/pkg/rhetoric/speech"
)

// Synset is a named set of lowercase word forms counted as one concept
type Synset struct {
	Name   string   `yaml:"name" json:"name"`
	Values []string `yaml:"values" json:"values"`
}

// New creates a synset, dropping duplicate values
func New(name string, values ...string) Synset {
	return Synset{Name: name, Values: dedupe(values)}
}

// Contains reports whether v is one of the values
func (s Synset) Contains(v string) bool {
	return slices.Contains(s.Values, v)
}

// Union joins the names with "+" and concatenates the values, keeping the
// first occurrence of each
func (s Synset) Union(other Synset) Synset {
	return Synset{
		Name:   s.Name + "+" + other.Name,
		Values: dedupe(append(slices.Clone(s.Values), other.Values...)),
	}
}

func (s Synset) String() string {
	return fmt.Sprintf("%s{%s}", s.Name, strings.Join(s.Values, ", "))
}

func (s Synset) set() map[string]struct{} {
	m := make(map[string]struct{}, len(s.Values))
	for _, v := range s.Values {
		m[v] = struct{}{}
	}
	return m
}

func dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// Seeds tokenizes the values with pipe and returns the distinct attr forms of
// every non-space token, in order of first appearance. Stopwords are kept;
// they have no collocates, so they add nothing to an expansion
func Seeds(pipe *speech.Pipeline, attr doc.Attribute, values []string) ([]string, error) {
	d, err := pipe.Process(strings.Join(values, " "))
	if err != nil {
		return nil, fmt.Errorf("tokenize seeds: %w", err)
	}
	var out []string
	for _, t := range d.Tokens {
		if !t.IsSpace {
			out = append(out, attr.Of(t))
		}
	}
	return dedupe(out), nil
}

// Expand returns a synset holding s's values followed by up to n of their
// strongest collocates in m
func Expand(s Synset, m colloc.Mapping[string], n int) Synset {
	extra := colloc.Bootstrap(s.Values, m, n)
	return Synset{
		Name:   s.Name,
		Values: dedupe(append(slices.Clone(s.Values), extra...)),
	}
}
