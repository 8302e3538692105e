package compare

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/cognicore/rhetoric/pkg/rhetoric/freq"
	"github.com/cognicore/rhetoric/pkg/rhetoric/speech"
)

// Result is a square matrix with one label per row and column
type Result struct {
	Labels []string
	Values *mat.Dense
}

// Matrix compares every x with every x, rows and columns in input order
func Matrix[T any](xs []T, cmp func(a, b T) float64, label func(T) string) *Result {
	n := len(xs)
	r := &Result{Labels: make([]string, n)}
	if n == 0 {
		return r
	}
	r.Values = mat.NewDense(n, n, nil)
	for i, a := range xs {
		r.Labels[i] = label(a)
		for j, b := range xs {
			r.Values.Set(i, j, cmp(a, b))
		}
	}
	return r
}

// At returns the value at the first row and column with the given labels
func (r *Result) At(row, col string) (float64, bool) {
	i := slices.Index(r.Labels, row)
	j := slices.Index(r.Labels, col)
	if i < 0 || j < 0 {
		return 0, false
	}
	return r.Values.At(i, j), true
}

// WriteTSV writes the matrix with a header row and a label column
func (r *Result) WriteTSV(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "\t%s\n", strings.Join(r.Labels, "\t")); err != nil {
		return err
	}
	for i, label := range r.Labels {
		cells := make([]string, len(r.Labels))
		for j := range r.Labels {
			cells[j] = fmt.Sprintf("%.4f", r.Values.At(i, j))
		}
		if _, err := fmt.Fprintf(w, "%s\t%s\n", label, strings.Join(cells, "\t")); err != nil {
			return err
		}
	}
	return nil
}

// vectors lays a and b out over their sorted combined keys
func vectors(a, b freq.Counter[string]) (*mat.VecDense, *mat.VecDense) {
	keys := make(map[string]struct{}, len(a)+len(b))
	for k := range a {
		keys[k] = struct{}{}
	}
	for k := range b {
		keys[k] = struct{}{}
	}
	if len(keys) == 0 {
		return nil, nil
	}
	sorted := make([]string, 0, len(keys))
	for k := range keys {
		sorted = append(sorted, k)
	}
	slices.Sort(sorted)

	va := mat.NewVecDense(len(sorted), nil)
	vb := mat.NewVecDense(len(sorted), nil)
	for i, k := range sorted {
		va.SetVec(i, float64(a[k]))
		vb.SetVec(i, float64(b[k]))
	}
	return va, vb
}

// Cosine is the cosine similarity of two count vectors, 0 when either is
// empty
func Cosine(a, b freq.Counter[string]) float64 {
	va, vb := vectors(a, b)
	if va == nil {
		return 0
	}
	na, nb := mat.Norm(va, 2), mat.Norm(vb, 2)
	if na == 0 || nb == 0 {
		return 0
	}
	return mat.Dot(va, vb) / (na * nb)
}

// Jaccard is the size of the intersection of the key sets over the size of
// their union, 0 when both are empty
func Jaccard(a, b freq.Counter[string]) float64 {
	var inter, union int
	for k := range a {
		union++
		if _, ok := b[k]; ok {
			inter++
		}
	}
	for k := range b {
		if _, ok := a[k]; !ok {
			union++
		}
	}
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

var ordinals = map[string]string{
	"First":  "1st",
	"Second": "2nd",
	"Third":  "3rd",
	"Fourth": "4th",
}

// InauguralLabels names consecutive inaugural addresses. A speech whose
// author gave the previous one is labelled by its title's ordinal ("2nd,
// 1805"), any other by its author ("Thomas Jefferson, 1801")
func InauguralLabels(speeches []*speech.Speech) []string {
	out := make([]string, len(speeches))
	last := ""
	for i, s := range speeches {
		name := s.Author
		if i > 0 && s.Author == last {
			if fields := strings.Fields(s.Title); len(fields) > 0 {
				if o, ok := ordinals[fields[0]]; ok {
					name = o
				} else {
					name = fields[0]
				}
			}
		}
		out[i] = fmt.Sprintf("%s, %d", name, s.Timestamp.Year())
		last = s.Author
	}
	return out
}
