// Package runner applies doc comment fixes to Java source files on disk.
//
// [Collect] expands files and directories into the source files to fix.
// A [Runner] then fixes those files in parallel: it reads each file,
// decodes it with a detected or given [charset.Charset], runs the
// [javadoc.Fixer], and either writes the result back, prints a diff, or
// lists the file, depending on its mode.
//
// Failures are reported per file and do not stop the run:
//
//	r := runner.New(runner.WithDryRun(true))
//
//	sum, err := r.Run(ctx, "src/main/java")
//	if errors.Is(err, runner.ErrFilesFailed) {
//	    // Some files could not be fixed; each was logged.
//	}
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"go.jacobcolvin.com/docfix/charset"
	"go.jacobcolvin.com/docfix/diffview"
	"go.jacobcolvin.com/docfix/javadoc"
)

// Sentinel errors returned by the runner.
var (
	ErrInvalidOption = errors.New("invalid option")
	ErrReadInput     = errors.New("read input")
	ErrWriteOutput   = errors.New("write output")
	ErrFilesFailed   = errors.New("files failed")
	ErrWouldChange   = errors.New("files would change")
)

// Result is the outcome of fixing one file.
type Result struct {
	Err     error
	Path    string
	Charset string
	Changed bool
}

// Summary counts the outcomes of a run.
type Summary struct {
	Files   int
	Changed int
	Failed  int
}

// Runner fixes files. It is safe for concurrent use.
//
// Create instances with [New].
type Runner struct {
	out     io.Writer
	fixer   *javadoc.Fixer
	printer *diffview.Printer
	charset *charset.Charset
	cwd     string
	walk    WalkOptions
	jobs    int
	mu      sync.Mutex
	dryRun  bool
	list    bool
	check   bool
}

// Option configures a [Runner].
type Option func(*Runner)

// WithFixer sets the fixer applied to each file. Defaults to [javadoc.New].
func WithFixer(f *javadoc.Fixer) Option {
	return func(r *Runner) {
		r.fixer = f
	}
}

// WithOutput sets where file lists and diffs are written. Defaults to
// [os.Stdout].
func WithOutput(w io.Writer) Option {
	return func(r *Runner) {
		r.out = w
	}
}

// WithPrinter sets the printer for dry-run diffs. Defaults to a plain
// unified diff printer writing to the output.
func WithPrinter(p *diffview.Printer) Option {
	return func(r *Runner) {
		r.printer = p
	}
}

// WithCharset fixes the encoding of every file instead of detecting it.
func WithCharset(cs charset.Charset) Option {
	return func(r *Runner) {
		r.charset = &cs
	}
}

// WithJobs sets how many files are fixed at once. Values below one use
// [runtime.GOMAXPROCS].
func WithJobs(n int) Option {
	return func(r *Runner) {
		r.jobs = n
	}
}

// WithWalkOptions sets how directories are walked.
func WithWalkOptions(o WalkOptions) Option {
	return func(r *Runner) {
		r.walk = o
	}
}

// WithDryRun prints a diff for each file that would change instead of
// writing it.
func WithDryRun(enabled bool) Option {
	return func(r *Runner) {
		r.dryRun = enabled
	}
}

// WithList prints the path of each file that would change instead of
// writing it.
func WithList(enabled bool) Option {
	return func(r *Runner) {
		r.list = enabled
	}
}

// WithCheck leaves files unchanged and makes [Runner.Run] return
// [ErrWouldChange] when any file would change.
func WithCheck(enabled bool) Option {
	return func(r *Runner) {
		r.check = enabled
	}
}

// New creates a new [Runner].
func New(opts ...Option) *Runner {
	r := &Runner{out: os.Stdout}

	for _, opt := range opts {
		opt(r)
	}

	if r.fixer == nil {
		r.fixer = javadoc.New()
	}

	if r.printer == nil {
		r.printer = diffview.NewPrinter(r.out)
	}

	if r.jobs < 1 {
		r.jobs = runtime.GOMAXPROCS(0)
	}

	if cwd, err := os.Getwd(); err == nil {
		r.cwd = cwd
	}

	return r
}

// writes reports whether fixed files are written back.
func (r *Runner) writes() bool {
	return !r.dryRun && !r.list && !r.check
}

// Run fixes the files named by paths, as expanded by [Collect].
//
// Each failure is logged and counted. Run returns an error wrapping
// [ErrFilesFailed] when any path failed, and one wrapping [ErrWouldChange]
// in check mode when any file would change.
func (r *Runner) Run(ctx context.Context, paths ...string) (Summary, error) {
	var sum Summary

	files, err := Collect(paths, r.walk)
	if err != nil {
		for _, e := range unjoin(err) {
			slog.Error("cannot read input", slog.Any("error", e))

			sum.Failed++
		}
	}

	results := make([]Result, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(r.jobs, max(len(files), 1)))

	for i, path := range files {
		g.Go(func() error {
			err := gctx.Err()
			if err != nil {
				return err
			}

			results[i] = r.FixFile(path)

			return nil
		})
	}

	err = g.Wait()
	if err != nil {
		return sum, err
	}

	for _, res := range results {
		sum.Files++

		switch {
		case res.Err != nil:
			sum.Failed++
		case res.Changed:
			sum.Changed++
		}
	}

	slog.Debug("run complete",
		slog.Int("files", sum.Files),
		slog.Int("changed", sum.Changed),
		slog.Int("failed", sum.Failed),
	)

	var errs []error
	if sum.Failed > 0 {
		errs = append(errs, fmt.Errorf("%w: %d failed", ErrFilesFailed, sum.Failed))
	}

	if r.check && sum.Changed > 0 {
		errs = append(errs, fmt.Errorf("%w: %d of %d", ErrWouldChange, sum.Changed, sum.Files))
	}

	return sum, errors.Join(errs...)
}

// FixFile fixes the file at path. Any failure is logged and recorded in
// the result.
func (r *Runner) FixFile(path string) Result {
	res := r.fixFile(path)
	if res.Err != nil {
		slog.Error("cannot fix file",
			slog.String("path", path),
			slog.Any("error", res.Err),
		)
	}

	return res
}

func (r *Runner) fixFile(path string) Result {
	res := Result{Path: path}

	info, err := os.Stat(path)
	if err != nil {
		res.Err = fmt.Errorf("%w: %w", ErrReadInput, err)

		return res
	}

	data, err := os.ReadFile(path)
	if err != nil {
		res.Err = fmt.Errorf("%w: %w", ErrReadInput, err)

		return res
	}

	cs := charset.Detect(data)
	if r.charset != nil {
		cs = r.charset.WithBOM(data)
	}

	res.Charset = cs.String()

	text, err := cs.Decode(data)
	if err != nil {
		res.Err = fmt.Errorf("%w: %w", ErrReadInput, err)

		return res
	}

	fixed, err := r.fixer.Fix(text)
	if err != nil {
		res.Err = err

		return res
	}

	res.Changed = fixed != text
	if !res.Changed {
		slog.Debug("unchanged", slog.String("path", path), slog.String("charset", res.Charset))

		return res
	}

	display := r.display(path)

	switch {
	case r.dryRun:
		err = r.printer.Print(display, text, fixed)
	case r.list:
		err = r.println(display)
	case r.check:
		slog.Warn("would change", slog.String("path", display))
	}

	if err != nil {
		res.Err = fmt.Errorf("%w: %w", ErrWriteOutput, err)

		return res
	}

	if !r.writes() {
		return res
	}

	out, err := cs.Encode(fixed)
	if err != nil {
		res.Err = fmt.Errorf("%w: %w", ErrWriteOutput, err)

		return res
	}

	err = os.WriteFile(path, out, info.Mode().Perm())
	if err != nil {
		res.Err = fmt.Errorf("%w: %w", ErrWriteOutput, err)

		return res
	}

	slog.Info("fixed", slog.String("path", display), slog.String("charset", res.Charset))

	return res
}

func (r *Runner) println(s string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := fmt.Fprintln(r.out, s)

	return err
}

// display returns path relative to the working directory when it lies
// below it.
func (r *Runner) display(path string) string {
	if r.cwd == "" || !filepath.IsAbs(path) {
		return path
	}

	rel, err := filepath.Rel(r.cwd, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}

	return rel
}

// unjoin splits an error made by [errors.Join].
func unjoin(err error) []error {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		return joined.Unwrap()
	}

	return []error{err}
}
