package javadoc

import (
	"strings"
)

// RegionKind classifies a [Region].
type RegionKind int

const (
	// RegionPlain is code or text outside doc comments, including ordinary
	// comments and string literals.
	RegionPlain RegionKind = iota
	// RegionDoc is a doc comment from "/**" through "*/" inclusive.
	RegionDoc
)

func (k RegionKind) String() string {
	if k == RegionDoc {
		return "doc"
	}

	return "plain"
}

// Region is a contiguous span of source text.
type Region struct {
	Text   string
	Kind   RegionKind
	Offset int
}

// Scan partitions src into plain and doc comment regions. The regions cover
// src exactly and appear in source order.
//
// Doc comment openers inside string, character and text block literals,
// line comments, and ordinary block comments are not recognized. An opener
// without a closer returns a [*ParseError] wrapping [ErrUnterminatedComment].
func Scan(src string) ([]Region, error) {
	var regions []Region

	start := 0
	i := 0

	for i < len(src) {
		rest := src[i:]

		switch {
		case strings.HasPrefix(rest, "//"):
			i = lineEnd(src, i)

		case strings.HasPrefix(rest, "/**") && !strings.HasPrefix(rest, "/**/"):
			n := strings.Index(src[i+len("/**"):], "*/")
			if n < 0 {
				return nil, &ParseError{
					Err:    ErrUnterminatedComment,
					Offset: i,
					Line:   lineAt(src, i),
				}
			}

			end := i + len("/**") + n + len("*/")
			if start < i {
				regions = append(regions, Region{Kind: RegionPlain, Offset: start, Text: src[start:i]})
			}

			regions = append(regions, Region{Kind: RegionDoc, Offset: i, Text: src[i:end]})
			i, start = end, end

		case strings.HasPrefix(rest, "/*"):
			n := strings.Index(src[i+len("/*"):], "*/")
			if n < 0 {
				i = len(src)
			} else {
				i += len("/*") + n + len("*/")
			}

		case strings.HasPrefix(rest, `"""`):
			i = textBlockEnd(src, i+len(`"""`))

		case rest[0] == '"' || rest[0] == '\'':
			i = literalEnd(src, i+1, rest[0])

		default:
			i++
		}
	}

	if start < len(src) {
		regions = append(regions, Region{Kind: RegionPlain, Offset: start, Text: src[start:]})
	}

	return regions, nil
}

// ScanLines scans lines joined by eol. See [Scan].
func ScanLines(lines []string, eol string) ([]Region, error) {
	return Scan(strings.Join(lines, eol))
}

// lineEnd returns the offset of the line terminator at or after i.
func lineEnd(src string, i int) int {
	n := strings.IndexAny(src[i:], "\r\n")
	if n < 0 {
		return len(src)
	}

	return i + n
}

// literalEnd returns the offset just past the quote closing a literal whose
// body starts at i. An unterminated literal ends at the end of its line.
func literalEnd(src string, i int, quote byte) int {
	for i < len(src) {
		switch src[i] {
		case '\\':
			i += 2
		case quote:
			return i + 1
		case '\r', '\n':
			return i
		default:
			i++
		}
	}

	return len(src)
}

// textBlockEnd returns the offset just past the `"""` closing a text block
// whose body starts at i.
func textBlockEnd(src string, i int) int {
	for i < len(src) {
		switch {
		case src[i] == '\\':
			i += 2
		case strings.HasPrefix(src[i:], `"""`):
			return i + len(`"""`)
		default:
			i++
		}
	}

	return len(src)
}

// Chunk is one line-oriented piece of a source file. Plain chunks are single
// physical lines; doc chunks hold a whole doc comment preceded by its
// margin.
type Chunk struct {
	Text string
	Doc  bool
}

// Chunks returns the line-oriented view of src that [Fix] works on.
//
// Each doc comment becomes one chunk occupying whole lines. Code sharing a
// line with a doc comment is split into chunks of its own: code before the
// comment keeps its line, and code after it moves to the following line at
// the comment's margin. Each blank line is an empty plain chunk.
//
// Joining the chunk texts with the line ending of src reproduces src when
// every doc comment already sits on lines of its own.
func Chunks(src string) ([]Chunk, error) {
	regions, err := Scan(src)
	if err != nil {
		return nil, err
	}

	plains, docs := alternate(regions)

	var (
		chunks  []Chunk
		margins = make([]string, len(docs))
	)

	for k, plain := range plains {
		lines := splitLines(plain)

		hasAfter := k > 0
		hasBefore := k < len(docs)

		if hasAfter && hasBefore && len(lines) == 1 {
			// Code between two comments on one line.
			if code := strings.TrimSpace(lines[0]); code != "" {
				chunks = append(chunks, Chunk{Text: margins[k-1] + code})
			}

			margins[k] = margins[k-1]
			chunks = append(chunks, Chunk{Doc: true, Text: margins[k] + docs[k]})

			continue
		}

		if hasAfter {
			if after := strings.TrimLeft(lines[0], " \t"); after != "" {
				chunks = append(chunks, Chunk{Text: margins[k-1] + after})
			}

			lines = lines[1:]
		}

		var before string
		if hasBefore {
			before = lines[len(lines)-1]
			lines = lines[:len(lines)-1]
		}

		for _, line := range lines {
			chunks = append(chunks, Chunk{Text: line})
		}

		if !hasBefore {
			continue
		}

		margins[k] = before
		if !isBlank(before) {
			chunks = append(chunks, Chunk{Text: strings.TrimRight(before, " \t")})
			margins[k] = leadingSpace(before)
		}

		chunks = append(chunks, Chunk{Doc: true, Text: margins[k] + docs[k]})
	}

	return chunks, nil
}

// alternate normalizes regions into plain texts interleaved with doc
// comments, so that len(plains) == len(docs)+1. Missing plains are empty.
func alternate(regions []Region) ([]string, []string) {
	var (
		plains []string
		docs   []string
		plain  string
	)

	for _, r := range regions {
		if r.Kind == RegionPlain {
			plain += r.Text

			continue
		}

		plains = append(plains, plain)
		docs = append(docs, r.Text)
		plain = ""
	}

	return append(plains, plain), docs
}

// splitLines splits s at every CRLF, CR, or LF.
func splitLines(s string) []string {
	var lines []string

	for {
		i := strings.IndexAny(s, "\r\n")
		if i < 0 {
			return append(lines, s)
		}

		lines = append(lines, s[:i])

		if s[i] == '\r' && i+1 < len(s) && s[i+1] == '\n' {
			i++
		}

		s = s[i+1:]
	}
}
