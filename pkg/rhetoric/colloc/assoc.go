package colloc

import (
	"cmp"
	"math"
	"slices"
	"sort"

	"github.com/cognicore/rhetoric/pkg/rhetoric/doc"
)

// Table counts, per sentence, which values occur and which co-occur. Unlike
// Counts it records each value and each unordered pair at most once per
// sentence, which is what association scores need
type Table[V cmp.Ordered] struct {
	N   int64             // sentences seen
	Nx  map[V]int64       // sentences containing each value
	Nxy map[Pair[V]]int64 // sentences containing both, keyed with A < B
}

// NewTable creates an empty table
func NewTable[V cmp.Ordered]() *Table[V] {
	return &Table[V]{
		Nx:  make(map[V]int64),
		Nxy: make(map[Pair[V]]int64),
	}
}

// AddSentence records one sentence's values. Duplicates are ignored
func (t *Table[V]) AddSentence(values []V) {
	t.N++

	uniq := slices.Clone(values)
	slices.Sort(uniq)
	uniq = slices.Compact(uniq)

	for _, v := range uniq {
		t.Nx[v]++
	}
	for i := 0; i < len(uniq); i++ {
		for j := i + 1; j < len(uniq); j++ {
			t.Nxy[Pair[V]{A: uniq[i], B: uniq[j]}]++
		}
	}
}

// AddDocuments records every sentence of docs
func (t *Table[V]) AddDocuments(docs []*doc.Document, test func(doc.Token) bool, mapf func(doc.Token) V) {
	var values []V
	for _, d := range docs {
		for i := range d.Sentences {
			values = values[:0]
			for _, tok := range d.SentenceTokens(i) {
				if test == nil || test(tok) {
					values = append(values, mapf(tok))
				}
			}
			t.AddSentence(values)
		}
	}
}

// PairCount returns the number of sentences containing both a and b
func (t *Table[V]) PairCount(a, b V) int64 {
	if a > b {
		a, b = b, a
	}
	return t.Nxy[Pair[V]{A: a, B: b}]
}

// Scorer computes smoothed association scores
type Scorer struct {
	Epsilon float64
}

// DefaultScorer smooths with epsilon 1
var DefaultScorer = Scorer{Epsilon: 1}

// PMI(a,b) = log((N_ab + e) * N / ((N_a + e)(N_b + e)))
func (s Scorer) PMI(nAB, nA, nB, n int64) float64 {
	if n == 0 {
		return 0
	}
	eps := s.Epsilon
	if eps <= 0 {
		eps = 1
	}
	num := (float64(nAB) + eps) * float64(n)
	den := (float64(nA) + eps) * (float64(nB) + eps)
	return math.Log(num / den)
}

// NPMI scales PMI into [-1, 1] by -log P(a,b)
func (s Scorer) NPMI(nAB, nA, nB, n int64) float64 {
	if n == 0 || nAB == 0 {
		return 0
	}
	eps := s.Epsilon
	if eps <= 0 {
		eps = 1
	}
	logP := math.Log((float64(nAB) + eps) / float64(n))
	if logP == 0 {
		return 0
	}
	return s.PMI(nAB, nA, nB, n) / -logP
}

// Neighbor is a collocate with its association score and support
type Neighbor[V cmp.Ordered] struct {
	Value   V
	Score   float64
	Support int64
}

// Neighbors ranks the collocates of v by NPMI, dropping any seen in fewer
// than minSupport sentences together with v. Ties are ordered by ascending
// value
func (t *Table[V]) Neighbors(v V, k int, minSupport int64, s Scorer) []Neighbor[V] {
	var out []Neighbor[V]
	for p, n := range t.Nxy {
		var other V
		switch v {
		case p.A:
			other = p.B
		case p.B:
			other = p.A
		default:
			continue
		}
		if n < minSupport {
			continue
		}
		out = append(out, Neighbor[V]{
			Value:   other,
			Score:   s.NPMI(n, t.Nx[v], t.Nx[other], t.N),
			Support: n,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Value < out[j].Value
	})
	if k >= 0 && k < len(out) {
		out = out[:k]
	}
	return out
}
