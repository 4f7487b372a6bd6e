package javadoc

import (
	_ "embed"
	"strings"
	"sync"
)

//go:embed names.txt
var namesData string

var givenNames = sync.OnceValue(func() map[string]struct{} {
	set := make(map[string]struct{})

	for line := range strings.Lines(namesData) {
		name := strings.TrimSpace(line)
		if name == "" || strings.HasPrefix(name, "#") {
			continue
		}

		set[name] = struct{}{}
	}

	return set
})

// IsLikelyName reports whether word is a common given name. The match is
// case-sensitive, so "John" is a name and "john" is not.
//
// It is the default name recognizer of a [Fixer]; replace it with
// [WithNameRecognizer].
func IsLikelyName(word string) bool {
	_, ok := givenNames()[word]

	return ok
}
