package diffview_test

import (
	"bytes"
	"strconv"
	"testing"

	"github.com/sourcegraph/go-diff/diff"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/docfix/diffview"
)

func numbered(n int) []string {
	lines := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		lines = append(lines, "l"+strconv.Itoa(i))
	}

	return lines
}

func TestLines(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		old, new []string
		want     []diffview.Edit
	}{
		"replace": {
			old: []string{"a", "b", "c"},
			new: []string{"a", "x", "c"},
			want: []diffview.Edit{
				{Op: diffview.OpEqual, Text: "a", Old: 0, New: 0},
				{Op: diffview.OpDelete, Text: "b", Old: 1, New: -1},
				{Op: diffview.OpInsert, Text: "x", Old: -1, New: 1},
				{Op: diffview.OpEqual, Text: "c", Old: 2, New: 2},
			},
		},
		"append": {
			old: []string{"a"},
			new: []string{"a", "b"},
			want: []diffview.Edit{
				{Op: diffview.OpEqual, Text: "a", Old: 0, New: 0},
				{Op: diffview.OpInsert, Text: "b", Old: -1, New: 1},
			},
		},
		"delete all": {
			old: []string{"a", "b"},
			new: nil,
			want: []diffview.Edit{
				{Op: diffview.OpDelete, Text: "a", Old: 0, New: -1},
				{Op: diffview.OpDelete, Text: "b", Old: 1, New: -1},
			},
		},
		"both empty": {},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, diffview.Lines(tc.old, tc.new))
		})
	}
}

func TestChanges(t *testing.T) {
	t.Parallel()

	edits := diffview.Lines(
		[]string{"a", "b", "", "c", "d"},
		[]string{"a", "B", "c", "D", "E"},
	)

	var got []string
	for _, e := range diffview.Changes(edits) {
		got = append(got, e.Op.String()+" "+e.Text)
	}

	assert.Equal(t, []string{
		"delete b",
		"insert B",
		"delete d",
		"insert D",
		"insert E",
	}, got)
}

func TestUnified(t *testing.T) {
	t.Parallel()

	t.Run("single hunk", func(t *testing.T) {
		t.Parallel()

		old := numbered(10)
		new := numbered(10)
		new[4] = "L5"

		fd := diffview.Unified("F.java", "F.java", old, new, 1)
		out, err := diffview.UnifiedText(fd)
		require.NoError(t, err)

		assert.Equal(t, "--- F.java\n+++ F.java\n@@ -4,3 +4,3 @@\n l4\n-l5\n+L5\n l6\n", string(out))
	})

	t.Run("separate hunks", func(t *testing.T) {
		t.Parallel()

		old := numbered(10)
		new := numbered(10)
		new[1] = "L2"
		new[8] = "L9"

		fd := diffview.Unified("F.java", "F.java", old, new, 1)
		require.Len(t, fd.Hunks, 2)
		assert.Equal(t, int32(1), fd.Hunks[0].OrigStartLine)
		assert.Equal(t, int32(3), fd.Hunks[0].OrigLines)
		assert.Equal(t, int32(8), fd.Hunks[1].OrigStartLine)
		assert.Equal(t, int32(3), fd.Hunks[1].NewLines)
	})

	t.Run("insert into empty", func(t *testing.T) {
		t.Parallel()

		fd := diffview.Unified("F.java", "F.java", nil, []string{"a"}, 3)
		out, err := diffview.UnifiedText(fd)
		require.NoError(t, err)

		assert.Equal(t, "--- F.java\n+++ F.java\n@@ -0,0 +1,1 @@\n+a\n", string(out))
	})

	t.Run("equal", func(t *testing.T) {
		t.Parallel()

		fd := diffview.Unified("F.java", "F.java", numbered(3), numbered(3), 3)
		assert.Empty(t, fd.Hunks)

		out, err := diffview.UnifiedText(fd)
		require.NoError(t, err)
		assert.Empty(t, out)
	})

	t.Run("parses back", func(t *testing.T) {
		t.Parallel()

		old := numbered(20)
		new := append(numbered(20), "l21")
		new[0] = "first"
		new = append(new[:10], new[11:]...)

		fd := diffview.Unified("a/F.java", "b/F.java", old, new, 2)
		out, err := diffview.UnifiedText(fd)
		require.NoError(t, err)

		parsed, err := diff.ParseFileDiff(out)
		require.NoError(t, err)
		assert.Equal(t, "a/F.java", parsed.OrigName)
		assert.Equal(t, "b/F.java", parsed.NewName)
		require.Len(t, parsed.Hunks, len(fd.Hunks))

		for i, h := range parsed.Hunks {
			assert.Equal(t, fd.Hunks[i].OrigStartLine, h.OrigStartLine)
			assert.Equal(t, fd.Hunks[i].OrigLines, h.OrigLines)
			assert.Equal(t, fd.Hunks[i].NewStartLine, h.NewStartLine)
			assert.Equal(t, fd.Hunks[i].NewLines, h.NewLines)
			assert.Equal(t, string(fd.Hunks[i].Body), string(h.Body))
		}
	})
}

func TestSplitLines(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		in   string
		want []string
	}{
		"empty":          {in: "", want: nil},
		"no terminator":  {in: "a", want: []string{"a"}},
		"lf":             {in: "a\nb\n", want: []string{"a", "b"}},
		"crlf":           {in: "a\r\nb\r\n", want: []string{"a", "b"}},
		"cr":             {in: "a\rb", want: []string{"a", "b"}},
		"blank lines":    {in: "a\n\nb\n", want: []string{"a", "", "b"}},
		"only a newline": {in: "\n", want: []string{""}},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, diffview.SplitLines(tc.in))
		})
	}
}

func TestPrinter(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		before, after string
		want          string
		opts          []diffview.Option
	}{
		"unified": {
			before: "a\nb\nc\n",
			after:  "a\nB\nc\n",
			want:   "--- A.java\n+++ A.java\n@@ -1,3 +1,3 @@\n a\n-b\n+B\n c\n",
		},
		"unified without context": {
			before: "a\nb\nc\n",
			after:  "a\nB\nc\n",
			opts:   []diffview.Option{diffview.WithContext(0)},
			want:   "--- A.java\n+++ A.java\n@@ -2,1 +2,1 @@\n-b\n+B\n",
		},
		"lines": {
			before: "a\nb\n\nc\n",
			after:  "a\nB\nc\n",
			opts:   []diffview.Option{diffview.WithFormat(diffview.FormatLines)},
			want:   "A.java\nb\nB\n",
		},
		"lines with crlf": {
			before: "a\r\nb\r\n",
			after:  "a\r\nB\r\n",
			opts:   []diffview.Option{diffview.WithFormat(diffview.FormatLines)},
			want:   "A.java\nb\nB\n",
		},
		"equal": {
			before: "a\n",
			after:  "a\n",
			want:   "",
		},
		"line endings only": {
			before: "a\r\n",
			after:  "a\n",
			opts:   []diffview.Option{diffview.WithFormat(diffview.FormatLines)},
			want:   "",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer

			p := diffview.NewPrinter(&buf, tc.opts...)
			require.NoError(t, p.Print("A.java", tc.before, tc.after))
			assert.Equal(t, tc.want, buf.String())
		})
	}
}

func TestPrinterColor(t *testing.T) {
	t.Parallel()

	var plain, colored bytes.Buffer

	require.NoError(t, diffview.NewPrinter(&plain).Print("A.java", "a\n", "b\n"))
	require.NoError(t, diffview.NewPrinter(&colored, diffview.WithColor(true)).Print("A.java", "a\n", "b\n"))

	assert.NotContains(t, plain.String(), "\x1b[")
	assert.Contains(t, colored.String(), "\x1b[")
	assert.Contains(t, colored.String(), "-a")
	assert.Contains(t, colored.String(), "+b")
}

func TestParse(t *testing.T) {
	t.Parallel()

	f, err := diffview.ParseFormat("Unified")
	require.NoError(t, err)
	assert.Equal(t, diffview.FormatUnified, f)

	_, err = diffview.ParseFormat("side-by-side")
	require.ErrorIs(t, err, diffview.ErrUnknownFormat)

	m, err := diffview.ParseColorMode("never")
	require.NoError(t, err)
	assert.Equal(t, diffview.ColorNever, m)

	_, err = diffview.ParseColorMode("sometimes")
	require.ErrorIs(t, err, diffview.ErrUnknownColorMode)
}

func TestColorEnabled(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	assert.True(t, diffview.ColorEnabled(diffview.ColorAlways, &buf))
	assert.False(t, diffview.ColorEnabled(diffview.ColorNever, &buf))
	assert.False(t, diffview.ColorEnabled(diffview.ColorAuto, &buf))
}
