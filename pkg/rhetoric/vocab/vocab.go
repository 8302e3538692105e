package vocab

import (
	"errors"
	"fmt"
	"sync"
)

// ID is the interned identifier of a string, valid only for the Vocab that
// produced it
type ID uint32

// ErrUnknownID is wrapped by every LookupError
var ErrUnknownID = errors.New("unknown vocabulary id")

// LookupError reports an ID that was never issued by the vocabulary
type LookupError struct {
	ID ID
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("%v: %d", ErrUnknownID, e.ID)
}

func (e *LookupError) Unwrap() error { return ErrUnknownID }

// Interner is the behaviour shared by Vocab and Synced
type Interner interface {
	Intern(s string) ID
	Resolve(id ID) (string, error)
	Lookup(s string) (ID, bool)
	Len() int
}

// Vocab is a bidirectional string <-> ID table. IDs are dense and assigned in
// first-seen order. A Vocab is not safe for concurrent use; wrap it with
// NewSynced when sharing it between goroutines, or build it up front and only
// call Lookup and Resolve afterwards
type Vocab struct {
	strs []string
	ids  map[string]ID
}

// New creates an empty vocabulary, optionally pre-interning words
func New(words ...string) *Vocab {
	v := &Vocab{ids: make(map[string]ID, len(words))}
	for _, w := range words {
		v.Intern(w)
	}
	return v
}

// Intern returns the ID for s, assigning the next free ID on first sight
func (v *Vocab) Intern(s string) ID {
	if id, ok := v.ids[s]; ok {
		return id
	}
	id := ID(len(v.strs))
	v.strs = append(v.strs, s)
	v.ids[s] = id
	return id
}

// Resolve returns the string behind id, or a *LookupError
func (v *Vocab) Resolve(id ID) (string, error) {
	if int(id) >= len(v.strs) {
		return "", &LookupError{ID: id}
	}
	return v.strs[id], nil
}

// MustResolve is Resolve for IDs known to come from this vocabulary
func (v *Vocab) MustResolve(id ID) string {
	s, err := v.Resolve(id)
	if err != nil {
		panic(err)
	}
	return s
}

// Lookup returns the ID of s without interning it
func (v *Vocab) Lookup(s string) (ID, bool) {
	id, ok := v.ids[s]
	return id, ok
}

// Len returns the number of interned strings
func (v *Vocab) Len() int { return len(v.strs) }

// Strings returns a copy of the table, indexed by ID
func (v *Vocab) Strings() []string {
	out := make([]string, len(v.strs))
	copy(out, v.strs)
	return out
}

// Synced serializes access to a Vocab
type Synced struct {
	mu sync.RWMutex
	v  *Vocab
}

// NewSynced wraps v; a nil v starts empty
func NewSynced(v *Vocab) *Synced {
	if v == nil {
		v = New()
	}
	return &Synced{v: v}
}

func (s *Synced) Intern(str string) ID {
	s.mu.RLock()
	id, ok := s.v.ids[str]
	s.mu.RUnlock()
	if ok {
		return id
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.v.Intern(str)
}

func (s *Synced) Resolve(id ID) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.v.Resolve(id)
}

func (s *Synced) Lookup(str string) (ID, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.v.Lookup(str)
}

func (s *Synced) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.v.Len()
}

var (
	_ Interner = (*Vocab)(nil)
	_ Interner = (*Synced)(nil)
)
