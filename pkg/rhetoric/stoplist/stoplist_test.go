package stoplist

import (
	"strings"
	"testing"
)

func TestStandardUnion(t *testing.T) {
	s := Standard(New("the", "of"))

	for _, w := range []string{"the", "of", "'s", "t", "n't", "ca", "don", "isn", "going", "-PRON-"} {
		if !s.Contains(w) {
			t.Errorf("expected %q in standard set", w)
		}
	}
	if s.Contains("liberty") {
		t.Error("liberty is not a stopword")
	}

	if src, _ := s.Source("the"); src != SourceBase {
		t.Errorf("the: source %q, want base", src)
	}
	if src, _ := s.Source("ca"); src != SourcePrefix {
		t.Errorf("ca: source %q, want prefix", src)
	}
	if src, _ := s.Source("'ll"); src != SourceSuffix {
		t.Errorf("'ll: source %q, want suffix", src)
	}
}

func TestStandardNilBase(t *testing.T) {
	s := Standard(nil)
	want := len(ContractionSuffixes) + len(ContractionPrefixes) + len(Extras)
	if s.Len() != want {
		t.Errorf("expected %d words, got %d", want, s.Len())
	}
}

func TestAddKeepsFirstSource(t *testing.T) {
	s := New("us")
	s.Add("us", SourceManual)
	if src, _ := s.Source("us"); src != SourceBase {
		t.Errorf("source overwritten: %q", src)
	}
	s.Remove("us")
	if s.Contains("us") {
		t.Error("Remove did not delete")
	}
}

func TestNilSet(t *testing.T) {
	var s *Set
	if s.Contains("the") || s.Len() != 0 || len(s.All()) != 0 {
		t.Error("nil set should behave as empty")
	}
}

func TestUnion(t *testing.T) {
	u := New("a", "b").Union(New("b", "c"))
	got := strings.Join(u.All(), ",")
	if got != "a,b,c" {
		t.Errorf("Union = %s", got)
	}
}

func TestRead(t *testing.T) {
	in := "the\n# comment\n\nof  \r\nand\n"
	words, err := Read(strings.NewReader(in))
	if err != nil {
		t.Fatal(err)
	}
	if strings.Join(words, ",") != "the,of,and" {
		t.Errorf("Read = %v", words)
	}
}

func TestEnglish(t *testing.T) {
	s := English()
	for _, w := range []string{"the", "and", "we", "ourselves"} {
		if !s.Contains(w) {
			t.Errorf("English() missing %q", w)
		}
	}
	if s.Contains("liberty") {
		t.Error("English() contains a content word")
	}
	if src, _ := Standard(s).Source("the"); src != SourceBase {
		t.Errorf("source of the = %q", src)
	}
}
