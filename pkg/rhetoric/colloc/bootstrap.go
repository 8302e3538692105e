package colloc

import (
	"cmp"

	"github.com/cognicore/rhetoric/pkg/rhetoric/freq"
)

// Bootstrap sums the collocate distributions of the seed values, takes the
// n most frequent collocates and drops any that are seeds themselves, so
// fewer than n values may come back. Seeds missing from m contribute
// nothing. Equal counts are ordered by ascending value. A negative n
// considers every collocate
func Bootstrap[V cmp.Ordered](seed []V, m Mapping[V], n int) []V {
	seen := make(map[V]struct{}, len(seed))
	dists := make([]freq.Counter[V], 0, len(seed))
	for _, s := range seed {
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		dists = append(dists, m[s])
	}

	var out []V
	for _, e := range freq.Top(freq.Sum(dists...), n) {
		if _, isSeed := seen[e.Key]; isSeed {
			continue
		}
		out = append(out, e.Key)
	}
	return out
}
