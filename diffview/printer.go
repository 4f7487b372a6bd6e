package diffview

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"sync"

	"github.com/fatih/color"
	"golang.org/x/term"
)

var (
	// ErrUnknownFormat indicates an unsupported diff format name.
	ErrUnknownFormat = errors.New("unknown diff format")
	// ErrUnknownColorMode indicates an unsupported color mode name.
	ErrUnknownColorMode = errors.New("unknown color mode")
)

// Format selects how a [Printer] shows changes.
type Format string

const (
	// FormatUnified prints a unified diff.
	FormatUnified Format = "unified"
	// FormatLines prints the changed lines only.
	FormatLines Format = "lines"
)

// Formats lists the supported formats.
var Formats = []Format{FormatUnified, FormatLines}

// ParseFormat parses a [Format] name.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(s))
	if !slices.Contains(Formats, f) {
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}

	return f, nil
}

// ColorMode selects when a [Printer] uses color.
type ColorMode string

const (
	// ColorAuto uses color when writing to a terminal and NO_COLOR is unset.
	ColorAuto ColorMode = "auto"
	// ColorAlways always uses color.
	ColorAlways ColorMode = "always"
	// ColorNever never uses color.
	ColorNever ColorMode = "never"
)

// ColorModes lists the supported color modes.
var ColorModes = []ColorMode{ColorAuto, ColorAlways, ColorNever}

// ParseColorMode parses a [ColorMode] name.
func ParseColorMode(s string) (ColorMode, error) {
	m := ColorMode(strings.ToLower(s))
	if !slices.Contains(ColorModes, m) {
		return "", fmt.Errorf("%w: %q", ErrUnknownColorMode, s)
	}

	return m, nil
}

// ColorEnabled reports whether output to w should be colored under mode.
func ColorEnabled(mode ColorMode, w io.Writer) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}

	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}

	f, ok := w.(*os.File)

	return ok && term.IsTerminal(int(f.Fd()))
}

// Printer writes the changes between two versions of a file.
// It is safe for concurrent use; each call to [Printer.Print] is written
// in one piece.
type Printer struct {
	w       io.Writer
	header  *color.Color
	hunk    *color.Color
	add     *color.Color
	del     *color.Color
	format  Format
	context int
	mu      sync.Mutex
}

// Option configures a [Printer].
type Option func(*Printer)

// WithFormat sets the output format. The default is [FormatUnified].
func WithFormat(f Format) Option {
	return func(p *Printer) {
		p.format = f
	}
}

// WithContext sets the number of unchanged lines shown around each change in
// unified diffs. The default is 3.
func WithContext(n int) Option {
	return func(p *Printer) {
		p.context = n
	}
}

// WithColor enables or disables colored output. Output is plain by default.
func WithColor(enabled bool) Option {
	return func(p *Printer) {
		for _, c := range []*color.Color{p.header, p.hunk, p.add, p.del} {
			if enabled {
				c.EnableColor()
			} else {
				c.DisableColor()
			}
		}
	}
}

// NewPrinter creates a [Printer] writing to w.
func NewPrinter(w io.Writer, opts ...Option) *Printer {
	p := &Printer{
		w:       w,
		format:  FormatUnified,
		context: 3,
		header:  color.New(color.Bold),
		hunk:    color.New(color.FgCyan),
		add:     color.New(color.FgGreen),
		del:     color.New(color.FgRed),
	}

	WithColor(false)(p)

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Print writes the changes that turn before into after, labelled with path.
// Nothing is written when the two are equal.
func (p *Printer) Print(path, before, after string) error {
	if before == after {
		return nil
	}

	old, new := SplitLines(before), SplitLines(after)

	var (
		buf bytes.Buffer
		err error
	)

	switch p.format {
	case FormatLines:
		p.printLines(&buf, path, old, new)
	default:
		err = p.printUnified(&buf, path, old, new)
	}

	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	_, err = p.w.Write(buf.Bytes())
	if err != nil {
		return fmt.Errorf("write diff: %w", err)
	}

	return nil
}

func (p *Printer) printLines(buf *bytes.Buffer, path string, old, new []string) {
	changes := Changes(Lines(old, new))
	if len(changes) == 0 {
		return
	}

	fmt.Fprintln(buf, p.header.Sprint(path))

	for _, e := range changes {
		if e.Op == OpDelete {
			fmt.Fprintln(buf, p.del.Sprint(e.Text))
		} else {
			fmt.Fprintln(buf, p.add.Sprint(e.Text))
		}
	}
}

func (p *Printer) printUnified(buf *bytes.Buffer, path string, old, new []string) error {
	fd := Unified(path, path, old, new, p.context)
	if len(fd.Hunks) == 0 {
		return nil
	}

	out, err := UnifiedText(fd)
	if err != nil {
		return fmt.Errorf("format diff: %w", err)
	}

	sc := bufio.NewScanner(bytes.NewReader(out))
	sc.Buffer(make([]byte, 0, 64*1024), len(out)+1)

	for sc.Scan() {
		fmt.Fprintln(buf, p.colorize(sc.Text()))
	}

	return sc.Err()
}

func (p *Printer) colorize(line string) string {
	switch {
	case strings.HasPrefix(line, "--- "), strings.HasPrefix(line, "+++ "):
		return p.header.Sprint(line)
	case strings.HasPrefix(line, "@@"):
		return p.hunk.Sprint(line)
	case strings.HasPrefix(line, "+"):
		return p.add.Sprint(line)
	case strings.HasPrefix(line, "-"):
		return p.del.Sprint(line)
	default:
		return line
	}
}
