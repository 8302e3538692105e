package freq

import (
	"errors"
	"fmt"

	"github.com/cognicore/rhetoric/pkg/rhetoric/doc"
)

// ErrDegenerateDocument is returned whenever a proportion would divide by
// a zero total
var ErrDegenerateDocument = errors.New("degenerate document: no countable words")

// DegenerateDocumentError names the document that had no countable words
type DegenerateDocumentError struct {
	Name string
}

func (e *DegenerateDocumentError) Error() string {
	if e.Name == "" {
		return ErrDegenerateDocument.Error()
	}
	return fmt.Sprintf("%v: %s", ErrDegenerateDocument, e.Name)
}

func (e *DegenerateDocumentError) Unwrap() error { return ErrDegenerateDocument }

// Proportion returns n/total, or a *DegenerateDocumentError when total is
// zero. Every ratio in this module goes through here
func Proportion(n, total int64, name string) (float64, error) {
	if total == 0 {
		return 0, &DegenerateDocumentError{Name: name}
	}
	return float64(n) / float64(total), nil
}

// Predicate selects the tokens to count
type Predicate func(doc.Token) bool

// CountWordsBy counts the attr value of every token passing keep
func CountWordsBy(d *doc.Document, attr doc.Attribute, keep Predicate) Counter[string] {
	counts := make(Counter[string])
	for _, t := range d.Tokens {
		if keep != nil && !keep(t) {
			continue
		}
		counts[attr.Of(t)]++
	}
	return counts
}

// FreqWordsBy is CountWordsBy normalized so the values sum to 1
func FreqWordsBy(d *doc.Document, attr doc.Attribute, keep Predicate) (map[string]float64, error) {
	return Normalize(CountWordsBy(d, attr, keep))
}

// Normalize divides each count by the total
func Normalize(c Counter[string]) (map[string]float64, error) {
	total := c.Total()
	if total == 0 {
		return nil, &DegenerateDocumentError{}
	}
	out := make(map[string]float64, len(c))
	for k, n := range c {
		out[k] = float64(n) / float64(total)
	}
	return out, nil
}
