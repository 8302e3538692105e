package colloc

import (
	"cmp"
	"iter"
	"slices"

	"github.com/cognicore/rhetoric/pkg/rhetoric/doc"
	"github.com/cognicore/rhetoric/pkg/rhetoric/freq"
	"github.com/cognicore/rhetoric/pkg/rhetoric/vocab"
)

// Pair is an ordered pair of token representations
type Pair[V cmp.Ordered] struct {
	A, B V
}

// Reverse returns (B, A)
func (p Pair[V]) Reverse() Pair[V] { return Pair[V]{A: p.B, B: p.A} }

// Collocations sorts values and yields every ordered pair of positions
// i != j whose values differ. Repeated values yield repeated pairs
func Collocations[V cmp.Ordered](values []V) iter.Seq2[V, V] {
	sorted := slices.Clone(values)
	slices.Sort(sorted)
	return func(yield func(V, V) bool) {
		for i, a := range sorted {
			for j, b := range sorted {
				if i == j || a == b {
					continue
				}
				if !yield(a, b) {
					return
				}
			}
		}
	}
}

// SentenceCollocations yields the collocations of every sentence in docs,
// taking mapf of each token that passes test. A nil test keeps every token
func SentenceCollocations[V cmp.Ordered](docs []*doc.Document, test func(doc.Token) bool, mapf func(doc.Token) V) iter.Seq2[V, V] {
	return func(yield func(V, V) bool) {
		var values []V
		for _, d := range docs {
			for i := range d.Sentences {
				values = values[:0]
				for _, t := range d.SentenceTokens(i) {
					if test == nil || test(t) {
						values = append(values, mapf(t))
					}
				}
				for a, b := range Collocations(values) {
					if !yield(a, b) {
						return
					}
				}
			}
		}
	}
}

// Counts maps each pair to the number of times it was emitted
type Counts[V cmp.Ordered] map[Pair[V]]int64

// SentenceCollocationCounts reduces SentenceCollocations to a count table
func SentenceCollocationCounts[V cmp.Ordered](docs []*doc.Document, test func(doc.Token) bool, mapf func(doc.Token) V) Counts[V] {
	counts := make(Counts[V])
	for a, b := range SentenceCollocations(docs, test, mapf) {
		counts[Pair[V]{A: a, B: b}]++
	}
	return counts
}

// Get returns the count for (a, b)
func (c Counts[V]) Get(a, b V) int64 {
	return c[Pair[V]{A: a, B: b}]
}

// Symmetric reports whether every pair has a reverse with the same count
// and no pair repeats its value
func (c Counts[V]) Symmetric() bool {
	for p, n := range c {
		if p.A == p.B || c[p.Reverse()] != n {
			return false
		}
	}
	return true
}

// Merge adds the counts of others into c and returns c
func (c Counts[V]) Merge(others ...Counts[V]) Counts[V] {
	for _, o := range others {
		for p, n := range o {
			c[p] += n
		}
	}
	return c
}

// Mapping groups a count table by first element: for each value, the count
// distribution over its collocates
type Mapping[V cmp.Ordered] map[V]freq.Counter[V]

// Mapping regroups the table by first element
func (c Counts[V]) Mapping() Mapping[V] {
	m := make(Mapping[V])
	for p, n := range c {
		dist, ok := m[p.A]
		if !ok {
			dist = make(freq.Counter[V])
			m[p.A] = dist
		}
		dist[p.B] += n
	}
	return m
}

// SentenceCollocationMapping is SentenceCollocationCounts grouped by first
// element
func SentenceCollocationMapping[V cmp.Ordered](docs []*doc.Document, test func(doc.Token) bool, mapf func(doc.Token) V) Mapping[V] {
	return SentenceCollocationCounts(docs, test, mapf).Mapping()
}

// Keys returns the mapping's first elements in ascending order
func (m Mapping[V]) Keys() []V {
	keys := make([]V, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Interned returns a mapf that interns the attr value of each token
func Interned(v vocab.Interner, attr doc.Attribute) func(doc.Token) vocab.ID {
	return func(t doc.Token) vocab.ID {
		return v.Intern(attr.Of(t))
	}
}

// Strings returns a mapf that takes the attr value of each token as is
func Strings(attr doc.Attribute) func(doc.Token) string {
	return attr.Of
}
