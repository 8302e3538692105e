package stoplist

import (
	_ "embed"
	"strings"
)

//go:embed english.txt
var englishList string

// English returns the bundled English stopword list as a base set
func English() *Set {
	words, _ := Read(strings.NewReader(englishList))
	return New(words...)
}
