package javadoc

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// Fixer normalizes doc comments. A Fixer is immutable once built and safe
// for concurrent use.
//
// Create instances with [New].
type Fixer struct {
	cache *lru.Cache[string, string]
	lex   lexicon
}

// Option configures a [Fixer].
type Option func(*Fixer)

var defaultFixer = New()

// New creates a new [Fixer] with the built-in word lists, adjusted by opts.
func New(opts ...Option) *Fixer {
	f := &Fixer{lex: defaultLexicon.clone()}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// WithNameRecognizer replaces the function that decides whether a
// capitalized first word is a person's name. A nil fn disables name
// recognition.
func WithNameRecognizer(fn func(word string) bool) Option {
	return func(f *Fixer) {
		f.lex.isName = fn
	}
}

// WithNames adds names to those recognized by the current name recognizer.
func WithNames(names ...string) Option {
	return func(f *Fixer) {
		if len(names) == 0 {
			return
		}

		extra := make(map[string]struct{}, len(names))
		for _, n := range names {
			extra[n] = struct{}{}
		}

		prev := f.lex.isName
		f.lex.isName = func(word string) bool {
			if _, ok := extra[word]; ok {
				return true
			}

			return prev != nil && prev(word)
		}
	}
}

// WithProperNouns adds words that keep their capital letter at the start of
// tag text, such as product names.
func WithProperNouns(words ...string) Option {
	return func(f *Fixer) {
		for _, w := range words {
			f.lex.properNouns[w] = struct{}{}
		}
	}
}

// WithAbbreviations adds abbreviations that keep their trailing period, such
// as "approx.".
func WithAbbreviations(abbrs ...string) Option {
	return func(f *Fixer) {
		for _, a := range abbrs {
			f.lex.abbreviations[a] = struct{}{}
		}
	}
}

// WithCache caches up to size rendered comments, keyed by their raw text.
// Repeated runs over the same sources, as in watch mode, then skip parsing
// unchanged comments. A size below one disables the cache.
func WithCache(size int) Option {
	return func(f *Fixer) {
		if size < 1 {
			f.cache = nil

			return
		}

		cache, err := lru.New[string, string](size)
		if err != nil {
			panic(err)
		}

		f.cache = cache
	}
}
