package javadoc

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ElementKind identifies the declaration a doc comment documents.
type ElementKind int

const (
	// KindUnknown is used when no declaration follows the comment.
	KindUnknown ElementKind = iota
	// KindType documents a class, interface, enum, record or annotation type.
	KindType
	// KindRoutine documents a method or constructor.
	KindRoutine
	// KindField documents a field or enum constant.
	KindField
)

func (k ElementKind) String() string {
	switch k {
	case KindType:
		return "type"
	case KindRoutine:
		return "routine"
	case KindField:
		return "field"
	default:
		return "unknown"
	}
}

// Comment is a parsed doc comment: either a [Multiline] or a [SingleLine].
// Render one with [Render].
type Comment interface {
	// Kind returns the kind of declaration the comment documents.
	Kind() ElementKind
	// Text returns the normalized description.
	Text() string

	comment()
}

// Multiline is a doc comment rendered with its delimiters on their own lines.
type Multiline struct {
	Description string
	Margin      string
	Tags        []Tag
	Element     ElementKind
	Indent      int
}

// SingleLine is a tagless, one-line doc comment rendered as
// "/** Description. */".
type SingleLine struct {
	Description string
	Margin      string
	Element     ElementKind
	Indent      int
}

// NewMultiline builds a canonical [Multiline]: the description is
// normalized, blank tags are dropped, and the rest are sorted with
// [SortTags]. pad is the whitespace the comment is indented with.
func NewMultiline(kind ElementKind, description string, tags []Tag, pad string) Multiline {
	return Multiline{
		Element:     kind,
		Description: normalizeDescription(description),
		Tags:        SortTags(pruneTags(tags)),
		Indent:      Indent(pad),
		Margin:      pad,
	}
}

// NewSingleLine builds a canonical [SingleLine].
func NewSingleLine(kind ElementKind, description, pad string) SingleLine {
	return SingleLine{
		Element:     kind,
		Description: normalizeSentence(description),
		Indent:      Indent(pad),
		Margin:      pad,
	}
}

func (c Multiline) Kind() ElementKind  { return c.Element }
func (c Multiline) Text() string       { return c.Description }
func (c SingleLine) Kind() ElementKind { return c.Element }
func (c SingleLine) Text() string      { return c.Description }
func (Multiline) comment()             {}
func (SingleLine) comment()            {}

// Render returns the canonical text of c, indented by its margin and with
// "\n" line breaks. A comment with neither description nor tags renders as
// the empty string.
func Render(c Comment) string {
	switch c := c.(type) {
	case Multiline:
		return renderMultiline(c)
	case *Multiline:
		return renderMultiline(*c)
	case SingleLine:
		return renderSingleLine(c)
	case *SingleLine:
		return renderSingleLine(*c)
	default:
		return ""
	}
}

func renderMultiline(c Multiline) string {
	if isBlank(c.Description) && len(c.Tags) == 0 {
		return ""
	}

	pad := margin(c.Indent, c.Margin)

	var sb strings.Builder

	sb.WriteString(pad + "/**\n")

	if !isBlank(c.Description) {
		for line := range strings.SplitSeq(c.Description, "\n") {
			sb.WriteString(pad + " *")

			if line != "" {
				sb.WriteString(" " + line)
			}

			sb.WriteString("\n")
		}

		if len(c.Tags) > 0 {
			sb.WriteString(pad + " *\n")
		}
	}

	aligned := len(c.Tags) > 1
	for _, tag := range c.Tags {
		tag.render(&sb, pad, aligned)
	}

	sb.WriteString(pad + " */")

	return sb.String()
}

func renderSingleLine(c SingleLine) string {
	if isBlank(c.Description) {
		return ""
	}

	return margin(c.Indent, c.Margin) + "/** " + c.Description + " */"
}

// margin returns the literal margin when it is indent columns wide, and
// indent spaces otherwise.
func margin(indent int, literal string) string {
	if literal != "" && isBlank(literal) && Indent(literal) == indent {
		return literal
	}

	return strings.Repeat(" ", max(indent, 0))
}

// normalizeDescription trims and capitalizes the description of a
// [Multiline], ending it with a period when it stops on a letter or digit
// that is not part of a URL.
func normalizeDescription(text string) string {
	text = capitalize(trimText(text))
	if text == "" {
		return text
	}

	last, _ := utf8.DecodeLastRuneInString(text)
	if (unicode.IsLetter(last) || unicode.IsDigit(last)) && !EndsWithURL(text) {
		text += "."
	}

	return text
}

// normalizeSentence trims and capitalizes the description of a
// [SingleLine], ending it with a period unless it already ends in ".", "!",
// "?" or a URL.
func normalizeSentence(text string) string {
	text = capitalize(trimText(text))
	if text == "" || strings.ContainsAny(text[len(text)-1:], ".!?") || EndsWithURL(text) {
		return text
	}

	return text + "."
}

// capitalize upper-cases the first letter of text unless the first word is
// mixed case, as in "serialVersionUID", or a URL.
func capitalize(text string) string {
	r, size := utf8.DecodeRuneInString(text)
	if !unicode.IsLower(r) {
		return text
	}

	word := firstWord(text)
	if strings.ContainsFunc(word[size:], unicode.IsUpper) || IsURL(word) {
		return text
	}

	return string(unicode.ToUpper(r)) + text[size:]
}

// ParseComment parses raw with the default [Fixer].
func ParseComment(kind ElementKind, raw string) (Comment, error) {
	return defaultFixer.ParseComment(kind, raw)
}

// ParseComment parses raw, a doc comment including its delimiters and
// optionally preceded by its margin, into a normalized [Comment].
//
// A raw comment that fits on one line and has no block tag becomes a
// [SingleLine]; anything else becomes a [Multiline]. Text that is not
// delimited by "/**" and "*/" returns an error wrapping
// [ErrMalformedComment].
func (f *Fixer) ParseComment(kind ElementKind, raw string) (Comment, error) {
	raw = strings.ReplaceAll(raw, CRLF, LF)
	raw = strings.ReplaceAll(raw, CR, LF)

	pad := leadingSpace(raw)
	body := trimText(raw)

	if !strings.HasPrefix(body, "/**") || !strings.HasSuffix(body, "*/") {
		return nil, fmt.Errorf("%w: %q", ErrMalformedComment, excerpt(body))
	}

	if len(body) < len("/***/") {
		return NewMultiline(kind, "", nil, pad), nil
	}

	inner := body[len("/**"):]
	if strings.HasSuffix(inner, "**/") {
		inner = inner[:len(inner)-len("**/")]
	} else {
		inner = inner[:len(inner)-len("*/")]
	}

	inner = trimText(strings.TrimLeft(inner, "*"))

	if !strings.Contains(body, "\n") && !hasBlockTag(inner) {
		return NewSingleLine(kind, inner, pad), nil
	}

	return f.parseMultiline(kind, inner, pad, markerIndent(raw)), nil
}

// parseMultiline splits the body of a comment into description lines and
// tag blocks.
func (f *Fixer) parseMultiline(kind ElementKind, inner, pad string, indent int) Multiline {
	var (
		desc   []string
		blocks [][]string
	)

	for _, line := range strings.Split(inner, "\n") {
		content := stripMarker(line, indent)

		switch {
		case isTagLine(content):
			blocks = append(blocks, []string{strings.TrimLeft(content, " \t")})
		case len(blocks) > 0:
			blocks[len(blocks)-1] = append(blocks[len(blocks)-1], line)
		default:
			desc = append(desc, strings.TrimRightFunc(content, unicode.IsSpace))
		}
	}

	tags := make([]Tag, 0, len(blocks))
	for _, block := range blocks {
		tags = append(tags, f.parseTag(block[0], continuation(block[1:])))
	}

	return NewMultiline(kind, strings.Join(desc, "\n"), tags, pad)
}

// parseTag builds a [Tag] from a line starting with "@" and its
// continuation lines.
func (f *Fixer) parseTag(head string, cont []string) Tag {
	name, rest := strings.TrimPrefix(head, "@"), ""
	if i := strings.IndexAny(name, " \t"); i >= 0 {
		name, rest = name[:i], name[i:]
	}

	name = CanonicalTagName(name)

	argument, text, spacing := splitTag(name, rest)
	for text == "" && len(cont) > 0 {
		rest = strings.TrimRight(rest, " \t") + " " + trimText(cont[0])
		cont = cont[1:]
		argument, text, spacing = splitTag(name, rest)
	}

	if len(cont) > 0 {
		text += "\n" + strings.Join(cont, "\n")
	}

	return f.NewTag(name, argument, text, spacing)
}

// splitTag separates what follows a tag name into argument, text, and the
// spacing between them.
func splitTag(name, rest string) (string, string, string) {
	if !TakesArgument(name) {
		return "", trimText(rest), " "
	}

	rest = strings.TrimLeft(rest, " \t")

	argument := firstWord(rest)
	after := rest[len(argument):]
	spacing := leadingSpace(after)

	return argument, trimText(after), spacing
}

// continuation converts the raw lines following a tag line to the content
// after their "*" marker. Blank lines are dropped.
func continuation(lines []string) []string {
	out := make([]string, 0, len(lines))

	for _, line := range lines {
		t := strings.TrimLeft(line, " \t")
		if c, ok := strings.CutPrefix(t, "*"); ok {
			t = c
		} else {
			t = " " + t
		}

		if isBlank(t) {
			continue
		}

		if t[0] != ' ' && t[0] != '\t' {
			t = " " + t
		}

		out = append(out, strings.TrimRightFunc(t, unicode.IsSpace))
	}

	return out
}

// markerIndent returns the smallest indentation that follows the "*" marker
// on the comment's description lines, and at least 1.
func markerIndent(raw string) int {
	least := -1

	lines := strings.Split(raw, "\n")
	for _, line := range lines[1:] {
		t := strings.TrimSpace(line)

		after, ok := strings.CutPrefix(t, "*")
		if !ok || after == "" || strings.HasSuffix(t, "*/") {
			continue
		}

		if isTagLine(after) {
			break
		}

		if n := Indent(after); least < 0 || n < least {
			least = n
		}
	}

	return max(least, 1)
}

// stripMarker removes the margin, the "*" marker, and up to indent columns
// of whitespace following it from a comment line.
func stripMarker(line string, indent int) string {
	t := strings.TrimLeft(line, " \t")

	after, ok := strings.CutPrefix(t, "*")
	if !ok {
		return t
	}

	n := 0
	for n < len(after) && (after[n] == ' ' || after[n] == '\t') && Indent(after[:n+1]) <= indent {
		n++
	}

	return after[n:]
}

// isTagLine reports whether s, after leading whitespace, starts a block tag.
func isTagLine(s string) bool {
	s = strings.TrimLeft(s, " \t")
	if !strings.HasPrefix(s, "@") {
		return false
	}

	r, _ := utf8.DecodeRuneInString(s[1:])

	return unicode.IsLetter(r)
}

// hasBlockTag reports whether any word of s starts a block tag. Inline tags
// such as "{@link Foo}" do not count.
func hasBlockTag(s string) bool {
	for _, word := range strings.Fields(s) {
		if isTagLine(word) {
			return true
		}
	}

	return false
}

func excerpt(s string) string {
	const limit = 40
	if len(s) <= limit {
		return s
	}

	return s[:limit] + "..."
}
