package javadoc

import (
	"maps"
	"strings"
)

// properNouns stay capitalized at the start of tag text.
var properNouns = []string{
	"Android",
	"Apache",
	"English",
	"Gradle",
	"Groovy",
	"Java",
	"Javadoc",
	"Kotlin",
	"Linux",
	"Maven",
	"Scala",
	"Unicode",
	"Unix",
}

// abbreviations keep their trailing period at the end of tag text and do not
// end a sentence.
var abbreviations = []string{
	"Inc.", "Ltd.", "Corp.", "Co.", "LLC.", "LLP.", "LP.",
	"Jr.", "Sr.", "Esq.",
	"Dr.", "Mr.", "Mrs.", "Ms.", "Miss.", "Prof.",
	"Ph.D.", "M.D.", "M.B.A.", "B.A.", "B.S.", "M.A.", "M.S.",
	"Ave.", "St.", "Rd.", "Blvd.", "Dept.", "Univ.",
	"etc.", "e.g.", "i.e.", "cf.", "vs.", "vol.", "no.", "pp.",
}

// lexicon holds the word lists consulted during tag normalization. A lexicon
// is never modified after construction.
type lexicon struct {
	properNouns   map[string]struct{}
	abbreviations map[string]struct{}
	isName        func(string) bool
}

var defaultLexicon = newLexicon()

func newLexicon() lexicon {
	l := lexicon{
		properNouns:   make(map[string]struct{}, len(properNouns)),
		abbreviations: make(map[string]struct{}, len(abbreviations)),
		isName:        IsLikelyName,
	}

	for _, w := range properNouns {
		l.properNouns[w] = struct{}{}
	}

	for _, w := range abbreviations {
		l.abbreviations[w] = struct{}{}
	}

	return l
}

// clone returns a copy of l whose maps may be extended independently.
func (l lexicon) clone() lexicon {
	return lexicon{
		properNouns:   maps.Clone(l.properNouns),
		abbreviations: maps.Clone(l.abbreviations),
		isName:        l.isName,
	}
}

func (l lexicon) isAbbreviation(word string) bool {
	word = strings.TrimLeft(word, "([{\"'")
	_, ok := l.abbreviations[word]

	return ok
}

func (l lexicon) endsWithAbbreviation(text string) bool {
	return l.isAbbreviation(lastWord(text))
}

// isProperNoun reports whether word, stripped of punctuation, is a configured
// proper noun or a recognized name.
func (l lexicon) isProperNoun(word string) bool {
	bare := bareWord(word)
	if bare == "" {
		return false
	}

	if _, ok := l.properNouns[bare]; ok {
		return true
	}

	return l.isName != nil && l.isName(bare)
}

// hasSentenceBoundary reports whether text contains a period followed by a
// space or line break, ignoring periods that end an abbreviation.
func (l lexicon) hasSentenceBoundary(text string) bool {
	for i := 0; i < len(text)-1; i++ {
		if text[i] != '.' || (text[i+1] != ' ' && text[i+1] != '\n') {
			continue
		}

		if !l.isAbbreviation(lastWord(text[:i+1])) {
			return true
		}
	}

	return false
}
