package javadoc

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Tag is one block tag of a doc comment, such as "@param name the name".
//
// Build tags with [Fixer.NewTag] or [NewTag]; the constructor applies the
// normalization rules, so every constructed Tag is canonical.
type Tag struct {
	// Name is the canonical tag name without the "@", such as "param".
	Name string
	// Argument is the parameter name, exception type, or other token that
	// argument-bearing tags carry before their text.
	Argument string
	// Text is the normalized description. Lines after the first are
	// continuation lines, each holding what followed the "*" marker.
	Text string
	// Spacing separates Argument and Text when a comment has several tags,
	// preserving author alignment.
	Spacing string
}

// argumentFree tags have no argument; everything after the name is text.
var argumentFree = map[string]bool{
	"return":     true,
	"deprecated": true,
	"author":     true,
	"serial":     true,
	"see":        true,
	"serialData": true,
	"since":      true,
	"version":    true,
}

// keepCase tags hold names or full sentences and are never lowercased.
var keepCase = map[string]bool{
	"author":     true,
	"see":        true,
	"deprecated": true,
}

// CanonicalTagName maps legacy tag names to their modern equivalents.
func CanonicalTagName(name string) string {
	if name == "exception" {
		return "throws"
	}

	return name
}

// TakesArgument reports whether tags named name carry an argument.
func TakesArgument(name string) bool {
	return !argumentFree[CanonicalTagName(name)]
}

// NewTag builds a normalized [Tag] using the default [Fixer].
func NewTag(name, argument, text, spacing string) Tag {
	return defaultFixer.NewTag(name, argument, text, spacing)
}

// NewTag builds a normalized [Tag]. Text may span several lines; see
// [Tag.Text].
func (f *Fixer) NewTag(name, argument, text, spacing string) Tag {
	name = CanonicalTagName(name)

	if spacing == "" || !isBlank(spacing) || strings.ContainsAny(spacing, "\r\n") {
		spacing = " "
	}

	return Tag{
		Name:     name,
		Argument: strings.TrimSpace(argument),
		Text:     f.normalizeTagText(name, text),
		Spacing:  spacing,
	}
}

// IsBlank reports whether t documents nothing: a param or throws tag with
// neither argument nor text, or a return tag without text.
func (t Tag) IsBlank() bool {
	switch t.Name {
	case "return":
		return isBlank(t.Text)
	case "param", "throws":
		return isBlank(t.Argument) && isBlank(t.Text)
	default:
		return false
	}
}

// String returns t in source form without a line marker, such as
// "@param name the name".
func (t Tag) String() string {
	var sb strings.Builder

	sb.WriteString("@" + t.Name)

	if t.Argument != "" {
		sb.WriteString(" " + t.Argument)
	}

	if t.Text != "" {
		sb.WriteString(" " + t.Text)
	}

	return sb.String()
}

// render writes t as comment lines prefixed by pad.
func (t Tag) render(sb *strings.Builder, pad string, aligned bool) {
	sb.WriteString(pad + " * @" + t.Name)

	if t.Argument != "" {
		sb.WriteString(" " + t.Argument)
	}

	if t.Text != "" {
		sep := " "
		if aligned {
			sep = t.Spacing
		}

		lines := strings.Split(t.Text, "\n")
		sb.WriteString(sep + lines[0])

		for _, line := range lines[1:] {
			sb.WriteString("\n" + pad + " *" + line)
		}
	}

	sb.WriteString("\n")
}

func (f *Fixer) normalizeTagText(name, text string) string {
	text = trimText(text)

	for {
		prev := text

		if strings.HasPrefix(text, "- ") {
			text = trimText(text[2:])
		}

		if name == "return" {
			text = stripReturn(text)
		}

		if text == prev {
			break
		}
	}

	if f.shouldLowercase(name, text) {
		r, size := utf8.DecodeRuneInString(text)
		text = string(unicode.ToLower(r)) + text[size:]
	}

	if f.shouldStripPeriod(name, text) {
		text = trimText(text[:len(text)-1])
	}

	return text
}

// stripReturn removes one leading "returns " or "return ", ignoring case,
// when text has more after it.
func stripReturn(text string) string {
	for _, prefix := range []string{"returns ", "return "} {
		if len(text) > len(prefix) && strings.EqualFold(text[:len(prefix)], prefix) {
			return trimText(text[len(prefix):])
		}
	}

	return text
}

func (f *Fixer) shouldLowercase(name, text string) bool {
	if keepCase[name] || text == "" {
		return false
	}

	r, size := utf8.DecodeRuneInString(text)
	if !unicode.IsUpper(r) {
		return false
	}

	word := firstWord(text)
	if f.lex.isProperNoun(word) || IsAcronym(bareWord(word)) {
		return false
	}

	return !strings.ContainsFunc(word[size:], unicode.IsUpper)
}

func (f *Fixer) shouldStripPeriod(name, text string) bool {
	if name == "deprecated" || !strings.HasSuffix(text, ".") || strings.HasSuffix(text, "..") {
		return false
	}

	if f.lex.hasSentenceBoundary(text) {
		return false
	}

	return !f.lex.endsWithAbbreviation(text)
}

// trimText removes surrounding whitespace, including line breaks.
func trimText(text string) string {
	return strings.TrimFunc(text, unicode.IsSpace)
}
