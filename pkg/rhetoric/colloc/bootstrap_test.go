package colloc

import (
	"slices"
	"testing"

	"github.com/cognicore/rhetoric/pkg/rhetoric/doc"
	"github.com/cognicore/rhetoric/pkg/rhetoric/freq"
)

func TestBootstrapSumsDistributions(t *testing.T) {
	m := Mapping[string]{
		"liberty": freq.Counter[string]{"freedom": 4, "blessings": 3, "union": 1},
		"freedom": freq.Counter[string]{"liberty": 4, "blessings": 2, "speech": 2},
	}
	got := Bootstrap([]string{"liberty", "freedom"}, m, 3)

	// combined: blessings 5, liberty 4, freedom 4, speech 2, union 1
	// top 3 = blessings, freedom, liberty; both seeds are dropped
	want := []string{"blessings"}
	if !slices.Equal(got, want) {
		t.Errorf("Bootstrap = %v, want %v", got, want)
	}
}

func TestBootstrapNeverReturnsSeed(t *testing.T) {
	d := build(
		"liberty freedom union",
		"freedom liberty blessings",
		"union constitution liberty",
		"people freedom speech",
	)
	m := SentenceCollocationMapping([]*doc.Document{d}, nil, Strings(doc.Lower))

	seeds := [][]string{
		{"liberty"},
		{"liberty", "freedom"},
		{"union", "people", "speech"},
		{"absent"},
		{"freedom", "freedom"},
	}
	for _, seed := range seeds {
		for n := -1; n <= 8; n++ {
			for _, v := range Bootstrap(seed, m, n) {
				if slices.Contains(seed, v) {
					t.Errorf("Bootstrap(%v, %d) returned seed %q", seed, n, v)
				}
			}
		}
	}
}

func TestBootstrapTieBreakAscending(t *testing.T) {
	m := Mapping[string]{
		"seed": freq.Counter[string]{"zeal": 2, "ardor": 2, "mettle": 2, "calm": 1},
	}
	got := Bootstrap([]string{"seed"}, m, 2)
	want := []string{"ardor", "mettle"}
	if !slices.Equal(got, want) {
		t.Errorf("Bootstrap = %v, want %v", got, want)
	}
}

func TestBootstrapMissingSeed(t *testing.T) {
	m := Mapping[string]{"a": freq.Counter[string]{"b": 1}}
	if got := Bootstrap([]string{"zzz"}, m, 5); len(got) != 0 {
		t.Errorf("expected nothing for unknown seed, got %v", got)
	}
	if got := Bootstrap([]string{"a"}, m, 0); len(got) != 0 {
		t.Errorf("n=0 should return nothing, got %v", got)
	}
}
