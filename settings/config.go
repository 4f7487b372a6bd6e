package settings

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Flags holds CLI flag names for settings file selection.
type Flags struct {
	Config string
}

// Config holds CLI flag values for settings file selection.
//
// Create instances with [NewConfig] and register CLI flags with
// [Config.RegisterFlags]. Use [Config.Load] to read the selected file.
type Config struct {
	Flags Flags
	Path  string
}

// NewConfig returns a new [Config] with default flag names.
func NewConfig() *Config {
	return &Config{Flags: Flags{Config: "config"}}
}

// RegisterFlags adds settings flags to the given [*pflag.FlagSet].
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.StringVar(&c.Path, c.Flags.Config, "",
		"settings file (default: nearest "+DefaultFile+" above the working directory)")
}

// RegisterCompletions registers shell completions for settings flags on cmd.
func (c *Config) RegisterCompletions(cmd *cobra.Command) error {
	err := cmd.MarkFlagFilename(c.Flags.Config, "yaml", "yml")
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.Config, err)
	}

	return nil
}

// Load returns the settings from the file given with the config flag, or
// else from the nearest [DefaultFile] at or above dir. Empty settings are
// returned when neither exists.
func (c *Config) Load(dir string) (*Settings, error) {
	path := c.Path
	if path == "" {
		found, ok := Find(dir)
		if !ok {
			return &Settings{}, nil
		}

		path = found
	}

	s, err := Load(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	slog.Debug("loaded settings", slog.String("path", path))

	return s, nil
}
