package runner

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"go.jacobcolvin.com/docfix/charset"
	"go.jacobcolvin.com/docfix/diffview"
	"go.jacobcolvin.com/docfix/javadoc"
	"go.jacobcolvin.com/docfix/settings"
)

// Flags holds CLI flag names for runner configuration, allowing callers to
// customize flag names while keeping sensible defaults.
type Flags struct {
	DryRun     string
	List       string
	Check      string
	Encoding   string
	Jobs       string
	MaxDepth   string
	Ext        string
	Exclude    string
	Color      string
	DiffFormat string
}

// Config holds CLI flag values for runner configuration.
//
// Create instances with [NewConfig] and register CLI flags with
// [Config.RegisterFlags]. Use [Config.NewRunner] to create a [Runner].
type Config struct {
	Flags      Flags
	Encoding   string
	Color      string
	DiffFormat string
	Extensions []string
	Exclude    []string
	Jobs       int
	MaxDepth   int
	DryRun     bool
	List       bool
	Check      bool
}

// NewConfig returns a new [Config] with default flag names.
func NewConfig() *Config {
	f := Flags{
		DryRun:     "dry-run",
		List:       "list",
		Check:      "check",
		Encoding:   "encoding",
		Jobs:       "jobs",
		MaxDepth:   "max-depth",
		Ext:        "ext",
		Exclude:    "exclude",
		Color:      "color",
		DiffFormat: "diff-format",
	}

	return &Config{
		Flags:      f,
		Color:      string(diffview.ColorAuto),
		DiffFormat: string(diffview.FormatUnified),
		Extensions: []string{".java"},
		Exclude:    []string{".git"},
		MaxDepth:   DefaultMaxDepth,
	}
}

// RegisterFlags adds runner flags to the given [*pflag.FlagSet].
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.BoolVarP(&c.DryRun, c.Flags.DryRun, "n", false,
		"print the changes as a diff instead of writing files")
	flags.BoolVarP(&c.List, c.Flags.List, "l", false,
		"list files that would change instead of writing them")
	flags.BoolVar(&c.Check, c.Flags.Check, false,
		"exit with status 1 when any file would change, without writing")
	flags.StringVar(&c.Encoding, c.Flags.Encoding, "",
		"encoding of all sources (default: detect per file)")
	flags.IntVarP(&c.Jobs, c.Flags.Jobs, "j", 0,
		"number of files fixed in parallel (default: number of CPUs)")
	flags.IntVar(&c.MaxDepth, c.Flags.MaxDepth, DefaultMaxDepth,
		"maximum directory depth to walk")
	flags.StringSliceVar(&c.Extensions, c.Flags.Ext, []string{".java"},
		"file extensions to select in directories")
	flags.StringSliceVar(&c.Exclude, c.Flags.Exclude, []string{".git"},
		"glob patterns of file and directory names to skip")
	flags.StringVar(&c.Color, c.Flags.Color, string(diffview.ColorAuto),
		fmt.Sprintf("when to color diffs: %s", joinStrings(diffview.ColorModes)))
	flags.StringVar(&c.DiffFormat, c.Flags.DiffFormat, string(diffview.FormatUnified),
		fmt.Sprintf("dry-run diff format: %s", joinStrings(diffview.Formats)))
}

// RegisterCompletions registers shell completions for runner flags on cmd.
func (c *Config) RegisterCompletions(cmd *cobra.Command) error {
	fixed := map[string][]string{
		c.Flags.Color:      toStrings(diffview.ColorModes),
		c.Flags.DiffFormat: toStrings(diffview.Formats),
		c.Flags.Encoding:   {"UTF-8", "UTF-16LE", "UTF-16BE", "ISO-8859-1", "windows-1252"},
		c.Flags.Ext:        {".java"},
	}

	for _, flag := range slices.Sorted(maps.Keys(fixed)) {
		err := cmd.RegisterFlagCompletionFunc(flag,
			cobra.FixedCompletions(fixed[flag], cobra.ShellCompDirectiveNoFileComp))
		if err != nil {
			return fmt.Errorf("registering %s completion: %w", flag, err)
		}
	}

	noFileComp := func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	for _, flag := range []string{c.Flags.Jobs, c.Flags.MaxDepth, c.Flags.Exclude} {
		err := cmd.RegisterFlagCompletionFunc(flag, noFileComp)
		if err != nil {
			return fmt.Errorf("registering %s completion: %w", flag, err)
		}
	}

	return nil
}

// ApplySettings copies values from s into c for each flag that was not set
// explicitly on flags.
func (c *Config) ApplySettings(s *settings.Settings, flags *pflag.FlagSet) {
	unset := func(name string) bool {
		return flags == nil || !flags.Changed(name)
	}

	if s.Encoding != "" && unset(c.Flags.Encoding) {
		c.Encoding = s.Encoding
	}

	if s.Jobs > 0 && unset(c.Flags.Jobs) {
		c.Jobs = s.Jobs
	}

	if s.MaxDepth > 0 && unset(c.Flags.MaxDepth) {
		c.MaxDepth = s.MaxDepth
	}

	if len(s.Extensions) > 0 && unset(c.Flags.Ext) {
		c.Extensions = s.Extensions
	}

	if len(s.Exclude) > 0 && unset(c.Flags.Exclude) {
		c.Exclude = s.Exclude
	}
}

// WalkOptions returns the directory walk options selected by c.
func (c *Config) WalkOptions() WalkOptions {
	return WalkOptions{
		Extensions: c.Extensions,
		Exclude:    c.Exclude,
		MaxDepth:   c.MaxDepth,
	}
}

// NewRunner creates a [Runner] using this [Config], writing file lists and
// diffs to out. The fixer options are passed to [javadoc.New].
func (c *Config) NewRunner(out io.Writer, opts ...javadoc.Option) (*Runner, error) {
	if c.Jobs < 0 {
		return nil, fmt.Errorf("%w: %s must not be negative", ErrInvalidOption, c.Flags.Jobs)
	}

	if c.MaxDepth < 1 {
		return nil, fmt.Errorf("%w: %s must be at least 1", ErrInvalidOption, c.Flags.MaxDepth)
	}

	if c.DryRun && c.List {
		return nil, fmt.Errorf("%w: --%s and --%s are mutually exclusive",
			ErrInvalidOption, c.Flags.DryRun, c.Flags.List)
	}

	for _, ext := range c.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return nil, fmt.Errorf("%w: %s %q must start with a dot", ErrInvalidOption, c.Flags.Ext, ext)
		}
	}

	mode, err := diffview.ParseColorMode(c.Color)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidOption, err)
	}

	format, err := diffview.ParseFormat(c.DiffFormat)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidOption, err)
	}

	printer := diffview.NewPrinter(out,
		diffview.WithFormat(format),
		diffview.WithColor(diffview.ColorEnabled(mode, out)),
	)

	ropts := []Option{
		WithOutput(out),
		WithPrinter(printer),
		WithFixer(javadoc.New(opts...)),
		WithJobs(c.Jobs),
		WithWalkOptions(c.WalkOptions()),
		WithDryRun(c.DryRun),
		WithList(c.List),
		WithCheck(c.Check),
	}

	if c.Encoding != "" {
		cs, err := charset.Lookup(c.Encoding)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidOption, err)
		}

		ropts = append(ropts, WithCharset(cs))
	}

	return New(ropts...), nil
}

func joinStrings[S ~string](ss []S) string {
	return strings.Join(toStrings(ss), ", ")
}

func toStrings[S ~string](ss []S) []string {
	out := make([]string, 0, len(ss))
	for _, s := range ss {
		out = append(out, string(s))
	}

	return out
}
