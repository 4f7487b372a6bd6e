// Package diffview computes and prints line diffs between a file and its
// fixed form, for reviewing changes without writing them.
//
// Two output formats are supported. [FormatUnified] prints a unified diff
// built with [github.com/sourcegraph/go-diff/diff]. [FormatLines] prints only
// the changed lines, each old line followed by its replacement.
//
// Use [Printer] to write either format, optionally in color:
//
//	p := diffview.NewPrinter(os.Stdout,
//	    diffview.WithFormat(diffview.FormatUnified),
//	    diffview.WithColor(diffview.ColorEnabled(diffview.ColorAuto, os.Stdout)),
//	)
//
//	err := p.Print("Foo.java", before, after)
package diffview

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/sourcegraph/go-diff/diff"
)

// Op is the kind of an [Edit].
type Op byte

const (
	// OpEqual keeps a line.
	OpEqual Op = 'e'
	// OpDelete removes a line of the old text.
	OpDelete Op = 'd'
	// OpInsert adds a line of the new text.
	OpInsert Op = 'i'
)

func (o Op) String() string {
	switch o {
	case OpEqual:
		return "equal"
	case OpDelete:
		return "delete"
	case OpInsert:
		return "insert"
	default:
		return "unknown"
	}
}

// Edit is one line of a line diff.
type Edit struct {
	Text string
	// Old is the 0-based index of the line in the old text, or -1 for
	// inserted lines.
	Old int
	// New is the 0-based index of the line in the new text, or -1 for
	// deleted lines.
	New int
	Op  Op
}

// Lines returns the edits that turn old into new. Deleted lines come before
// the lines inserted in their place.
func Lines(old, new []string) []Edit {
	var edits []Edit

	for _, c := range matcher(old, new).GetOpCodes() {
		edits = appendOpCode(edits, c, old, new)
	}

	return edits
}

// matcher compares lines without the popularity heuristic, which would
// otherwise stop lines such as " */" from anchoring matches in long files.
func matcher(old, new []string) *difflib.SequenceMatcher {
	return difflib.NewMatcherWithJunk(old, new, false, nil)
}

func appendOpCode(edits []Edit, c difflib.OpCode, old, new []string) []Edit {
	if c.Tag == 'e' {
		for k := range c.I2 - c.I1 {
			edits = append(edits, Edit{Op: OpEqual, Text: old[c.I1+k], Old: c.I1 + k, New: c.J1 + k})
		}

		return edits
	}

	if c.Tag == 'r' || c.Tag == 'd' {
		for i := c.I1; i < c.I2; i++ {
			edits = append(edits, Edit{Op: OpDelete, Text: old[i], Old: i, New: -1})
		}
	}

	if c.Tag == 'r' || c.Tag == 'i' {
		for j := c.J1; j < c.J2; j++ {
			edits = append(edits, Edit{Op: OpInsert, Text: new[j], Old: -1, New: j})
		}
	}

	return edits
}

// Changes reduces edits to the changed lines. Within each run of changes,
// deleted and inserted lines are interleaved so each old line is followed by
// the line that replaced it. Empty lines are omitted.
func Changes(edits []Edit) []Edit {
	var (
		out       []Edit
		dels, ins []Edit
	)

	flush := func() {
		for i := range max(len(dels), len(ins)) {
			if i < len(dels) && dels[i].Text != "" {
				out = append(out, dels[i])
			}

			if i < len(ins) && ins[i].Text != "" {
				out = append(out, ins[i])
			}
		}

		dels, ins = dels[:0], ins[:0]
	}

	for _, e := range edits {
		switch e.Op {
		case OpDelete:
			dels = append(dels, e)
		case OpInsert:
			ins = append(ins, e)
		default:
			flush()
		}
	}

	flush()

	return out
}

// Unified returns the unified diff of old and new with context lines of
// context around each change. The result has no hunks when the texts are
// equal.
func Unified(oldName, newName string, old, new []string, context int) *diff.FileDiff {
	fd := &diff.FileDiff{OrigName: oldName, NewName: newName}

	for _, group := range matcher(old, new).GetGroupedOpCodes(max(context, 0)) {
		if h := hunk(group, old, new); h != nil {
			fd.Hunks = append(fd.Hunks, h)
		}
	}

	return fd
}

func hunk(group []difflib.OpCode, old, new []string) *diff.Hunk {
	changed := false

	var body strings.Builder

	for _, c := range group {
		for _, e := range appendOpCode(nil, c, old, new) {
			switch e.Op {
			case OpEqual:
				body.WriteString(" ")
			case OpDelete:
				body.WriteString("-")

				changed = true
			case OpInsert:
				body.WriteString("+")

				changed = true
			}

			body.WriteString(e.Text + "\n")
		}
	}

	if !changed {
		return nil
	}

	first, last := group[0], group[len(group)-1]

	return &diff.Hunk{
		OrigStartLine: startLine(first.I1, last.I2),
		OrigLines:     int32(last.I2 - first.I1),
		NewStartLine:  startLine(first.J1, last.J2),
		NewLines:      int32(last.J2 - first.J1),
		Body:          []byte(body.String()),
	}
}

// startLine returns the 1-based start line of a hunk range. An empty range
// starts at the line before it, as in diff -u.
func startLine(start, stop int) int32 {
	if stop == start {
		return int32(start)
	}

	return int32(start + 1)
}

// UnifiedText renders fd as unified diff text.
func UnifiedText(fd *diff.FileDiff) ([]byte, error) {
	return diff.PrintFileDiff(fd)
}

// SplitLines splits text into lines at every CRLF, CR or LF. A final line
// terminator does not start another line.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}

	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}
