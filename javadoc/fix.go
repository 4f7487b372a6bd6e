package javadoc

import (
	"fmt"
	"strings"
	"unicode"
)

// Fix normalizes every doc comment in src with the default [Fixer].
func Fix(src string) (string, error) {
	return defaultFixer.Fix(src)
}

// FixLines normalizes the doc comments in lines, joined by eol, with the
// default [Fixer].
func FixLines(lines []string, eol string) ([]string, error) {
	return defaultFixer.FixLines(lines, eol)
}

// Fix normalizes every doc comment in src and returns the result. Line
// breaks in the result all use the first line ending found in src.
//
// Comments that normalize to nothing are removed together with their lines.
// Code outside doc comments is passed through unchanged, except that a doc
// comment sharing a line with code is moved onto lines of its own.
func (f *Fixer) Fix(src string) (string, error) {
	lines, err := f.fixLines(src)
	if err != nil {
		return "", err
	}

	return strings.Join(lines, DetectLineEnding(src)), nil
}

// FixLines is like [Fixer.Fix] for a file held as lines. The returned lines
// carry no terminators.
func (f *Fixer) FixLines(lines []string, eol string) ([]string, error) {
	return f.fixLines(strings.Join(lines, eol))
}

func (f *Fixer) fixLines(src string) ([]string, error) {
	chunks, err := Chunks(src)
	if err != nil {
		return nil, err
	}

	out := make([]string, 0, len(chunks))

	for i := 0; i < len(chunks); i++ {
		c := chunks[i]
		if !c.Doc {
			out = append(out, c.Text)

			continue
		}

		rendered, err := f.render(inferKind(chunks[i+1:]), c.Text)
		if err != nil {
			return nil, err
		}

		if rendered != "" {
			out = append(out, strings.Split(rendered, "\n")...)

			continue
		}

		// A removed comment between two blank lines leaves one.
		if len(out) > 0 && out[len(out)-1] == "" &&
			i+1 < len(chunks) && !chunks[i+1].Doc && chunks[i+1].Text == "" {
			i++
		}
	}

	return out, nil
}

// render parses and renders one doc comment, consulting the cache when the
// Fixer has one.
func (f *Fixer) render(kind ElementKind, raw string) (string, error) {
	key := kind.String() + "\x00" + raw

	if f.cache != nil {
		if s, ok := f.cache.Get(key); ok {
			return s, nil
		}
	}

	c, err := f.ParseComment(kind, raw)
	if err != nil {
		return "", fmt.Errorf("parse %q: %w", excerpt(strings.TrimSpace(raw)), err)
	}

	s := Render(c)

	if f.cache != nil {
		f.cache.Add(key, s)
	}

	return s, nil
}

// inferKind guesses the kind of declaration documented by a comment from the
// chunks that follow it.
func inferKind(next []Chunk) ElementKind {
	for _, c := range next {
		if c.Doc {
			return KindUnknown
		}

		line := c.Text
		if i := lineCommentStart(line); i >= 0 {
			line = line[:i]
		}

		line = skipAnnotations(strings.TrimSpace(line))
		if line == "" {
			continue
		}

		return declarationKind(line)
	}

	return KindUnknown
}

// skipAnnotations removes leading annotations such as "@Override" or
// "@SuppressWarnings("unchecked")" from line. An "@interface" declaration is
// kept.
func skipAnnotations(line string) string {
	for strings.HasPrefix(line, "@") && !strings.HasPrefix(line, "@interface") {
		i := 1
		for i < len(line) && (isIdentByte(line[i]) || line[i] == '.') {
			i++
		}

		rest := strings.TrimLeft(line[i:], " \t")
		if strings.HasPrefix(rest, "(") {
			rest = rest[closingParen(rest):]
		}

		line = strings.TrimLeft(rest, " \t")
	}

	return line
}

// closingParen returns the offset just past the parenthesis matching the one
// s starts with, or len(s).
func closingParen(s string) int {
	depth := 0

	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c == '"' || c == '\'':
			i = literalEnd(s, i+1, c) - 1
		case c == '(':
			depth++
		case c == ')':
			depth--
			if depth == 0 {
				return i + 1
			}
		}
	}

	return len(s)
}

func declarationKind(line string) ElementKind {
	decl, _, _ := strings.Cut(line, "=")

	words := strings.FieldsFunc(decl, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' && r != '$' && r != '@'
	})

	for _, w := range words {
		switch w {
		case "class", "interface", "@interface", "enum", "record":
			return KindType
		}
	}

	paren := strings.IndexByte(decl, '(')
	if paren < 0 || InQuotes(decl, paren) {
		return KindField
	}

	// Enum constants with arguments, as in "RED(255, 0, 0),".
	if head := strings.Fields(decl[:paren]); len(head) == 1 && IsAcronym(head[0]) {
		return KindField
	}

	return KindRoutine
}

func isIdentByte(c byte) bool {
	return c == '_' || c == '$' ||
		'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9'
}
