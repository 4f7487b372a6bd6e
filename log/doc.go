// Package log builds the [log/slog] handlers docfix logs through.
//
// Three formats are available. [FormatText] is meant for terminals and is
// rendered by [charm.land/log/v2]; [FormatLogfmt] and [FormatJSON] use the
// handlers from [log/slog] and suit CI logs and tooling.
//
// Commands register the flags of a [Config] and install the handler once
// the flags are parsed:
//
//	cfg := log.NewConfig()
//	cfg.RegisterFlags(rootCmd.PersistentFlags())
//
//	// In PersistentPreRunE:
//	err := cfg.Install(os.Stderr)
//
// Other docfix packages only call the [log/slog] package functions and
// never install a handler themselves.
package log
