package speech

import (
	"fmt"
	"strings"
	"time"
)

// DefaultGroupName is used when FromPredicates is given no name
const DefaultGroupName = "Not Available"

// Group is a named collection of speeches
type Group struct {
	Name     string
	Slug     string
	Speeches []*Speech
}

// NewGroup creates a group slugged from its name
func NewGroup(name string, speeches []*Speech) *Group {
	return &Group{Name: name, Slug: Slugify(name), Speeches: speeches}
}

// Predicate selects speeches
type Predicate func(*Speech) bool

// FromPredicates keeps the speeches satisfying every predicate, in order
// An empty slug is derived from name
func FromPredicates(name, slug string, speeches []*Speech, preds ...Predicate) *Group {
	if name == "" {
		name = DefaultGroupName
	}
	if slug == "" {
		slug = Slugify(name)
	}
	g := &Group{Name: name, Slug: slug}
next:
	for _, s := range speeches {
		for _, p := range preds {
			if !p(s) {
				continue next
			}
		}
		g.Speeches = append(g.Speeches, s)
	}
	return g
}

// Len returns the number of speeches
func (g *Group) Len() int { return len(g.Speeches) }

func (g *Group) String() string {
	return fmt.Sprintf("<Group %s %q (%d speeches)>", g.Slug, g.Name, g.Len())
}

// ByAuthor matches the author exactly
func ByAuthor(author string) Predicate {
	return func(s *Speech) bool { return s.Author == author }
}

// TitleContains matches a case-insensitive substring of the title
func TitleContains(sub string) Predicate {
	sub = strings.ToLower(sub)
	return func(s *Speech) bool { return strings.Contains(strings.ToLower(s.Title), sub) }
}

// Between matches timestamps in [from, to). A zero bound is open
func Between(from, to time.Time) Predicate {
	return func(s *Speech) bool {
		if !from.IsZero() && s.Timestamp.Before(from) {
			return false
		}
		if !to.IsZero() && !s.Timestamp.Before(to) {
			return false
		}
		return true
	}
}

// MetadataEquals matches a metadata value by its printed form
func MetadataEquals(key, value string) Predicate {
	return func(s *Speech) bool {
		v, ok := s.Metadata[key]
		return ok && fmt.Sprint(v) == value
	}
}
