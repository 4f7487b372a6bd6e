package profile

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Flags holds CLI flag names for profiling configuration, allowing callers to
// customize flag names while keeping sensible defaults via [NewConfig].
type Flags struct {
	// Output path flag names.
	CPUProfile          string
	HeapProfile         string
	AllocsProfile       string
	GoroutineProfile    string
	ThreadcreateProfile string
	BlockProfile        string
	MutexProfile        string
	Trace               string

	// Sampling flag names.
	MemProfileRate       string
	BlockProfileRate     string
	MutexProfileFraction string
}

// NewConfig creates a new [Config] embedding these flag names.
func (f Flags) NewConfig() *Config {
	return &Config{
		Flags: f,
	}
}

// Config holds the profiles to write and the sampling rates to use. A
// zero-value Config writes nothing and leaves the runtime's rates alone.
//
// Create instances with [NewConfig] and register CLI flags with
// [Config.RegisterFlags]. Once the flags are parsed, use [Config.NewProfiler]
// to create the [Profiler].
type Config struct {
	Flags Flags

	// Output paths; empty disables the profile.
	CPUProfile          string
	HeapProfile         string
	AllocsProfile       string
	GoroutineProfile    string
	ThreadcreateProfile string
	BlockProfile        string
	MutexProfile        string
	Trace               string

	// Sampling rates; zero keeps the runtime default.
	MemProfileRate       int
	BlockProfileRate     int
	MutexProfileFraction int
}

// NewConfig creates a new [Config] with default flag names and every profile
// disabled.
func NewConfig() *Config {
	f := Flags{
		CPUProfile:           "cpu-profile",
		HeapProfile:          "heap-profile",
		AllocsProfile:        "allocs-profile",
		GoroutineProfile:     "goroutine-profile",
		ThreadcreateProfile:  "threadcreate-profile",
		BlockProfile:         "block-profile",
		MutexProfile:         "mutex-profile",
		Trace:                "trace",
		MemProfileRate:       "mem-profile-rate",
		BlockProfileRate:     "block-profile-rate",
		MutexProfileFraction: "mutex-profile-fraction",
	}

	return f.NewConfig()
}

type pathFlag struct {
	dst  *string
	name string
	what string
}

type rateFlag struct {
	dst   *int
	name  string
	usage string
	def   int
}

func (c *Config) paths() []pathFlag {
	return []pathFlag{
		{&c.CPUProfile, c.Flags.CPUProfile, "CPU profile"},
		{&c.HeapProfile, c.Flags.HeapProfile, "heap profile"},
		{&c.AllocsProfile, c.Flags.AllocsProfile, "allocs profile"},
		{&c.GoroutineProfile, c.Flags.GoroutineProfile, "goroutine profile"},
		{&c.ThreadcreateProfile, c.Flags.ThreadcreateProfile, "threadcreate profile"},
		{&c.BlockProfile, c.Flags.BlockProfile, "block profile"},
		{&c.MutexProfile, c.Flags.MutexProfile, "mutex profile"},
		{&c.Trace, c.Flags.Trace, "execution trace"},
	}
}

func (c *Config) rates() []rateFlag {
	return []rateFlag{
		{&c.MemProfileRate, c.Flags.MemProfileRate, "bytes allocated per memory profile sample", 512 * 1024},
		{&c.BlockProfileRate, c.Flags.BlockProfileRate, "nanoseconds blocked per block profile sample", 1},
		{&c.MutexProfileFraction, c.Flags.MutexProfileFraction, "report 1/N of mutex contention events", 1},
	}
}

// RegisterFlags adds profiling flags to the given [*pflag.FlagSet].
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	for _, f := range c.paths() {
		flags.StringVar(f.dst, f.name, "", "write "+f.what+" to file")
	}

	for _, f := range c.rates() {
		flags.IntVar(f.dst, f.name, f.def, f.usage)
	}
}

// RegisterCompletions registers shell completions for profile flags on cmd.
// Output path flags complete profile file names; rate flags complete
// nothing.
func (c *Config) RegisterCompletions(cmd *cobra.Command) error {
	noFileComp := func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	for _, f := range c.rates() {
		err := cmd.RegisterFlagCompletionFunc(f.name, noFileComp)
		if err != nil {
			return fmt.Errorf("registering %s completion: %w", f.name, err)
		}
	}

	for _, f := range c.paths() {
		err := cmd.MarkFlagFilename(f.name, "prof", "pprof", "out")
		if err != nil {
			return fmt.Errorf("registering %s completion: %w", f.name, err)
		}
	}

	return nil
}

// Enabled reports whether any profile or trace output is set.
func (c *Config) Enabled() bool {
	for _, f := range c.paths() {
		if *f.dst != "" {
			return true
		}
	}

	return false
}

// NewProfiler creates a new [Profiler] from a copy of this [Config].
func (c *Config) NewProfiler() *Profiler {
	return &Profiler{
		Config: *c,
	}
}
