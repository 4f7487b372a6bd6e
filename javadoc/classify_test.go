package javadoc_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"go.jacobcolvin.com/docfix/javadoc"
)

func TestIndent(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input string
		want  int
	}{
		"empty":          {input: "", want: 0},
		"no indent":      {input: "int x;", want: 0},
		"spaces":         {input: "    int x;", want: 4},
		"tab":            {input: "\tint x;", want: 4},
		"tab and spaces": {input: "\t  int x;", want: 6},
		"blank":          {input: "   ", want: 3},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, javadoc.Indent(tc.input))
		})
	}
}

func TestDetectLineEnding(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input string
		want  string
	}{
		"no terminator": {input: "class A {}", want: javadoc.LF},
		"lf":            {input: "a\nb\r\nc", want: javadoc.LF},
		"crlf":          {input: "a\r\nb\nc", want: javadoc.CRLF},
		"cr":            {input: "a\rb\nc", want: javadoc.CR},
		"trailing cr":   {input: "a\r", want: javadoc.CR},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, javadoc.DetectLineEnding(tc.input))
		})
	}
}

func TestEndsWithURL(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input string
		want  bool
	}{
		"https":             {input: "See https://example.com/docs", want: true},
		"http":              {input: "See http://example.com", want: true},
		"mailto":            {input: "Contact mailto:dev@example.com", want: true},
		"www":               {input: "Visit www.example.com", want: true},
		"bare domain":       {input: "Hosted at docs.example.com", want: false},
		"url not last":      {input: "See www.example.com for details", want: false},
		"empty":             {input: "", want: false},
		"trailing space":    {input: "See https://example.com  ", want: true},
		"plain description": {input: "Returns the value", want: false},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, javadoc.EndsWithURL(tc.input))
		})
	}
}

func TestIsAcronym(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input string
		want  bool
	}{
		"xml":         {input: "XML", want: true},
		"with slash":  {input: "I/O", want: true},
		"with digits": {input: "UTF8", want: true},
		"too short":   {input: "IO", want: false},
		"mixed case":  {input: "Xml", want: false},
		"no letters":  {input: "123", want: false},
		"url":         {input: "URL", want: true},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, javadoc.IsAcronym(tc.input))
		})
	}
}

func TestIsAbbreviation(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input string
		want  bool
	}{
		"inc":            {input: "Inc.", want: true},
		"eg":             {input: "e.g.", want: true},
		"parenthesized":  {input: "(etc.", want: true},
		"missing period": {input: "Inc", want: false},
		"ordinary word":  {input: "piano.", want: false},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, javadoc.IsAbbreviation(tc.input))
		})
	}
}

func TestEndsWithAbbreviation(t *testing.T) {
	t.Parallel()

	assert.True(t, javadoc.EndsWithAbbreviation("Rahul Srivastava, Sun Microsystems Inc."))
	assert.True(t, javadoc.EndsWithAbbreviation("apples, pears, etc."))
	assert.False(t, javadoc.EndsWithAbbreviation("played the piano."))
	assert.False(t, javadoc.EndsWithAbbreviation(""))
}

func TestInQuotes(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		line   string
		marker string
		want   bool
	}{
		"inside string": {
			line:   `String s = "/** not a comment */";`,
			marker: "/**",
			want:   true,
		},
		"after string": {
			line:   `String s = "x"; /** doc */`,
			marker: "/**",
			want:   false,
		},
		"escaped quote": {
			line:   `String s = "a\" /** b";`,
			marker: "/**",
			want:   true,
		},
		"char literal": {
			line:   `char c = '"'; /** doc */`,
			marker: "/**",
			want:   false,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			pos := strings.Index(tc.line, tc.marker)
			assert.Equal(t, tc.want, javadoc.InQuotes(tc.line, pos))
		})
	}
}

func TestInLineComment(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		line   string
		marker string
		want   bool
	}{
		"commented out": {
			line:   "// /** old doc */",
			marker: "/**",
			want:   true,
		},
		"after code": {
			line:   "int x; // see /** y */",
			marker: "/**",
			want:   true,
		},
		"slashes in string": {
			line:   `String url = "http://example.com"; /** doc */`,
			marker: "/**",
			want:   false,
		},
		"no comment": {
			line:   "/** doc */ int x;",
			marker: "/**",
			want:   false,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			pos := strings.Index(tc.line, tc.marker)
			assert.Equal(t, tc.want, javadoc.InLineComment(tc.line, pos))
		})
	}
}

func TestIsLikelyName(t *testing.T) {
	t.Parallel()

	assert.True(t, javadoc.IsLikelyName("John"))
	assert.True(t, javadoc.IsLikelyName("Elliotte"))
	assert.False(t, javadoc.IsLikelyName("john"))
	assert.False(t, javadoc.IsLikelyName("The"))
	assert.False(t, javadoc.IsLikelyName(""))
}
