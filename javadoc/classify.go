package javadoc

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Line endings recognized by [DetectLineEnding].
const (
	LF   = "\n"
	CRLF = "\r\n"
	CR   = "\r"
)

// urlSchemes mark a token as a URL wherever they appear in it.
var urlSchemes = []string{"http://", "https://", "ftp://", "ftps://", "file://", "mailto:"}

// urlHosts mark a token as a URL when it starts with them.
var urlHosts = []string{"www.", "ftp."}

// Indent returns the width of the leading whitespace of s, counting a space
// as one column and a tab as four.
func Indent(s string) int {
	n := 0

	for _, r := range s {
		switch r {
		case ' ':
			n++
		case '\t':
			n += 4
		default:
			return n
		}
	}

	return n
}

// DetectLineEnding returns the first line terminator that occurs in s. A
// carriage return followed by a line feed is [CRLF]; a lone carriage return
// is [CR]. When s has no terminator, [LF] is returned.
func DetectLineEnding(s string) string {
	i := strings.IndexAny(s, "\r\n")
	switch {
	case i < 0:
		return LF
	case s[i] == '\n':
		return LF
	case i+1 < len(s) && s[i+1] == '\n':
		return CRLF
	default:
		return CR
	}
}

// EndsWithURL reports whether the last whitespace-separated word of text is a
// URL: it contains a scheme such as "https://" or "mailto:", or it starts
// with "www." or "ftp.". Bare domain names are not URLs.
func EndsWithURL(text string) bool {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return false
	}

	return IsURL(fields[len(fields)-1])
}

// IsURL reports whether word looks like a URL. See [EndsWithURL].
func IsURL(word string) bool {
	for _, scheme := range urlSchemes {
		if strings.Contains(word, scheme) {
			return true
		}
	}

	for _, host := range urlHosts {
		if strings.HasPrefix(word, host) {
			return true
		}
	}

	return false
}

// IsAcronym reports whether word is at least three runes long, contains an
// upper-case letter, and contains no lower-case letter. "XML" and "I/O" are
// acronyms; "IO" and "Xml" are not.
func IsAcronym(word string) bool {
	if utf8.RuneCountInString(word) < 3 {
		return false
	}

	upper := false

	for _, r := range word {
		if unicode.IsLower(r) {
			return false
		}

		if unicode.IsUpper(r) {
			upper = true
		}
	}

	return upper
}

// IsAbbreviation reports whether word is one of the built-in abbreviations
// that keep their trailing period, such as "Inc." or "e.g.".
func IsAbbreviation(word string) bool {
	return defaultLexicon.isAbbreviation(word)
}

// EndsWithAbbreviation reports whether the last word of text is a built-in
// abbreviation.
func EndsWithAbbreviation(text string) bool {
	return defaultLexicon.endsWithAbbreviation(text)
}

// InQuotes reports whether byte offset pos of line lies inside a string or
// character literal. Backslash escapes are honored and a line comment ends
// the scan.
func InQuotes(line string, pos int) bool {
	var quote byte

	for i := 0; i < len(line) && i < pos; i++ {
		c := line[i]

		switch {
		case quote != 0 && c == '\\':
			i++
		case quote != 0 && c == quote:
			quote = 0
		case quote != 0:
		case c == '"' || c == '\'':
			quote = c
		case strings.HasPrefix(line[i:], "//"):
			return false
		}
	}

	return quote != 0
}

// InLineComment reports whether byte offset pos of line lies inside a line
// comment, that is after a "//" that is not itself inside a literal.
func InLineComment(line string, pos int) bool {
	start := lineCommentStart(line)

	return start >= 0 && pos >= start
}

// lineCommentStart returns the offset of the first "//" in line that is
// outside literals and block comments, or -1.
func lineCommentStart(line string) int {
	var quote byte

	block := false

	for i := 0; i < len(line); i++ {
		c := line[i]

		switch {
		case block:
			if strings.HasPrefix(line[i:], "*/") {
				block = false
				i++
			}
		case quote != 0 && c == '\\':
			i++
		case quote != 0 && c == quote:
			quote = 0
		case quote != 0:
		case c == '"' || c == '\'':
			quote = c
		case strings.HasPrefix(line[i:], "//"):
			return i
		case strings.HasPrefix(line[i:], "/*"):
			block = true
			i++
		}
	}

	return -1
}

// firstWord returns the leading run of non-whitespace runes of text.
func firstWord(text string) string {
	text = strings.TrimLeftFunc(text, unicode.IsSpace)

	end := strings.IndexFunc(text, unicode.IsSpace)
	if end < 0 {
		return text
	}

	return text[:end]
}

// lastWord returns the trailing run of non-whitespace runes of text.
func lastWord(text string) string {
	text = strings.TrimRightFunc(text, unicode.IsSpace)

	start := strings.LastIndexFunc(text, unicode.IsSpace)
	if start < 0 {
		return text
	}

	_, size := utf8.DecodeRuneInString(text[start:])

	return text[start+size:]
}

// bareWord strips surrounding punctuation and a trailing possessive from
// word, so "(John's," becomes "John".
func bareWord(word string) string {
	word = strings.TrimFunc(word, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\'' && r != '’'
	})

	for _, suffix := range []string{"'s", "’s"} {
		word = strings.TrimSuffix(word, suffix)
	}

	return strings.Trim(word, "'’")
}

// leadingSpace returns the leading spaces and tabs of s.
func leadingSpace(s string) string {
	return s[:len(s)-len(strings.TrimLeft(s, " \t"))]
}

// isBlank reports whether s contains only whitespace.
func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
