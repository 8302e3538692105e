package doc

import (
	"fmt"
	"strings"
)

// Attribute selects which representation of a token to count or compare by
type Attribute int

const (
	// Orth is the surface form as it appears in the text.
	Orth Attribute = iota
	Lower
	Lemma
	// Stem is the snowball stem; not every Tokenizer fills it.
	Stem
)

var attrNames = [...]string{"orth", "lower", "lemma", "stem"}

// Of returns the token's value for the attribute
func (a Attribute) Of(t Token) string {
	switch a {
	case Lower:
		return t.Lower
	case Lemma:
		return t.Lemma
	case Stem:
		return t.Stem
	default:
		return t.Text
	}
}

func (a Attribute) String() string {
	if a < 0 || int(a) >= len(attrNames) {
		return fmt.Sprintf("Attribute(%d)", int(a))
	}
	return attrNames[a]
}

// ParseAttribute accepts the names printed by String, plus "text" and
// "surface" as aliases for Orth
func ParseAttribute(s string) (Attribute, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "orth", "text", "surface":
		return Orth, nil
	case "lower", "lowercase":
		return Lower, nil
	case "lemma":
		return Lemma, nil
	case "stem":
		return Stem, nil
	}
	return Orth, fmt.Errorf("unknown token attribute %q", s)
}

// MarshalText implements encoding.TextMarshaler
func (a Attribute) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler, which also lets
// yaml.v3 decode attributes by name
func (a *Attribute) UnmarshalText(b []byte) error {
	v, err := ParseAttribute(string(b))
	if err != nil {
		return err
	}
	*a = v
	return nil
}
