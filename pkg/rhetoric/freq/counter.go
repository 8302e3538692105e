package freq

import (
	"cmp"
	"sort"
)

// Counter maps keys to occurrence counts. The zero value is not usable;
// build one with make or NewCounter
type Counter[K comparable] map[K]int64

// NewCounter counts keys
func NewCounter[K comparable](keys ...K) Counter[K] {
	c := make(Counter[K], len(keys))
	for _, k := range keys {
		c[k]++
	}
	return c
}

// Add increments k by n
func (c Counter[K]) Add(k K, n int64) {
	c[k] += n
}

// Total sums every count
func (c Counter[K]) Total() int64 {
	var total int64
	for _, n := range c {
		total += n
	}
	return total
}

// Merge adds the counts of others into c and returns c
func (c Counter[K]) Merge(others ...Counter[K]) Counter[K] {
	for _, o := range others {
		for k, n := range o {
			c[k] += n
		}
	}
	return c
}

// Sum returns a fresh counter holding the element-wise sum of counters
// Sum() is the empty counter, and Sum is associative, so partial sums may
// be computed in any grouping and combined
func Sum[K comparable](counters ...Counter[K]) Counter[K] {
	return make(Counter[K]).Merge(counters...)
}

// Entry is a key with its count
type Entry[K comparable] struct {
	Key   K
	Count int64
}

// MostCommon returns the n entries with the highest counts; n < 0 returns
// all of them. Equal counts are ordered by less, which must be a strict
// order over keys so that the result is deterministic
func (c Counter[K]) MostCommon(n int, less func(a, b K) bool) []Entry[K] {
	entries := make([]Entry[K], 0, len(c))
	for k, v := range c {
		entries = append(entries, Entry[K]{Key: k, Count: v})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return less(entries[i].Key, entries[j].Key)
	})
	if n >= 0 && n < len(entries) {
		entries = entries[:n]
	}
	return entries
}

// Top is MostCommon for ordered keys, breaking ties by ascending key
func Top[K cmp.Ordered](c Counter[K], n int) []Entry[K] {
	return c.MostCommon(n, cmp.Less[K])
}
