package stoplist

import (
	"bufio"
	"io"
	"sort"
	"strings"
)

// Source records which list contributed a stopword
type Source string

const (
	SourceBase   Source = "base"
	SourceSuffix Source = "contraction-suffix"
	SourcePrefix Source = "contraction-prefix"
	SourceExtra  Source = "extra"
	SourceManual Source = "manual"
)

// ContractionSuffixes are the pieces a tokenizer splits off contractions,
// with and without the apostrophe
var ContractionSuffixes = []string{
	"'s", "s",
	"'m", "m",
	"'re", "re",
	"'ll", "ll",
	"'ve", "ve",
	"'d", "d",
	"n't", "t",
}

// ContractionPrefixes are the stems left behind by "can't", "don't", "isn't"
var ContractionPrefixes = []string{"ca", "don", "isn"}

// Extras are words whose lemmas are stopwords but which base lists miss
var Extras = []string{"going", "getting", "got", "-PRON-"}

// Set is a stopword set that remembers where each word came from
// Membership is exact; callers lowercase before asking
type Set struct {
	words map[string]Source
}

// New creates a set holding words, attributed to SourceBase
func New(words ...string) *Set {
	s := &Set{words: make(map[string]Source, len(words))}
	s.AddAll(SourceBase, words...)
	return s
}

// Standard returns base plus the contraction suffixes, contraction prefixes
// and extras. A nil base yields just the fixed lists
func Standard(base *Set) *Set {
	s := &Set{words: make(map[string]Source)}
	if base != nil {
		for w, src := range base.words {
			s.words[w] = src
		}
	}
	s.AddAll(SourceSuffix, ContractionSuffixes...)
	s.AddAll(SourcePrefix, ContractionPrefixes...)
	s.AddAll(SourceExtra, Extras...)
	return s
}

// Contains reports whether word is a stopword. A nil set contains nothing
func (s *Set) Contains(word string) bool {
	if s == nil {
		return false
	}
	_, ok := s.words[word]
	return ok
}

// Source returns the list that contributed word
func (s *Set) Source(word string) (Source, bool) {
	if s == nil {
		return "", false
	}
	src, ok := s.words[word]
	return src, ok
}

// Add adds word; an existing attribution is kept
func (s *Set) Add(word string, src Source) {
	if _, ok := s.words[word]; !ok {
		s.words[word] = src
	}
}

// AddAll adds every word with the same attribution
func (s *Set) AddAll(src Source, words ...string) {
	for _, w := range words {
		if w = strings.TrimSpace(w); w != "" {
			s.Add(w, src)
		}
	}
}

// Remove deletes word from the set
func (s *Set) Remove(word string) {
	delete(s.words, word)
}

// Union returns a new set holding the words of s and other
func (s *Set) Union(other *Set) *Set {
	out := &Set{words: make(map[string]Source, s.Len()+other.Len())}
	for _, src := range []*Set{s, other} {
		if src == nil {
			continue
		}
		for w, from := range src.words {
			out.Add(w, from)
		}
	}
	return out
}

// Len returns the number of stopwords
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.words)
}

// All returns every stopword in sorted order
func (s *Set) All() []string {
	result := make([]string, 0, s.Len())
	if s == nil {
		return result
	}
	for w := range s.words {
		result = append(result, w)
	}
	sort.Strings(result)
	return result
}

// Read parses a one-word-per-line list. Blank lines and lines starting with
// '#' are skipped; trailing whitespace is trimmed
func Read(r io.Reader) ([]string, error) {
	var words []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), " \t\r")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, line)
	}
	return words, sc.Err()
}
