// Command docfix normalizes Javadoc comments in Java source files.
//
// # Usage
//
//	docfix [flags] <file.java|directory> ...
//	docfix chunks <file.java>
//	docfix schema
//	docfix version
//
// Files are fixed in place unless --dry-run, --list, or --check is given.
// Settings are read from the nearest .docfix.yaml above the working
// directory, or from --config. Flags given on the command line win over
// the settings file.
//
// With --watch, docfix fixes the given paths once and then keeps fixing
// files as they change until interrupted.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"go.jacobcolvin.com/docfix/charset"
	"go.jacobcolvin.com/docfix/diffview"
	"go.jacobcolvin.com/docfix/javadoc"
	"go.jacobcolvin.com/docfix/log"
	"go.jacobcolvin.com/docfix/profile"
	"go.jacobcolvin.com/docfix/runner"
	"go.jacobcolvin.com/docfix/settings"
	"go.jacobcolvin.com/docfix/version"
	"go.jacobcolvin.com/docfix/watch"
)

// watchCacheSize bounds the render cache used while watching, where the
// same comments are fixed again and again.
const watchCacheSize = 4096

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	a := newApp(os.Stdout, os.Stderr)

	err := a.execute(ctx, os.Args[1:])

	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

type app struct {
	stdout   io.Writer
	stderr   io.Writer
	log      *log.Config
	profile  *profile.Config
	runner   *runner.Config
	settings *settings.Config
	profiler *profile.Profiler
	root     *cobra.Command
	watch    bool
}

func newApp(stdout, stderr io.Writer) *app {
	a := &app{
		stdout:   stdout,
		stderr:   stderr,
		log:      log.NewConfig(),
		profile:  profile.NewConfig(),
		runner:   runner.NewConfig(),
		settings: settings.NewConfig(),
	}

	a.root = &cobra.Command{
		Use:   "docfix [flags] <file.java|directory> ...",
		Short: "Normalize Javadoc comments",
		Long: `docfix rewrites Javadoc comments in Java sources into a canonical form:
descriptions are capitalized and end with a period, block tags are ordered
and aligned, and empty or useless tags are dropped.

Directories are searched recursively for .java files.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			err := a.log.Install(a.stderr)
			if err != nil {
				return err
			}

			a.profiler = a.profile.NewProfiler()

			return a.profiler.Start()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd.Context(), cmd.Flags(), args)
		},
	}

	a.root.SetOut(stdout)
	a.root.SetErr(stderr)

	a.log.RegisterFlags(a.root.PersistentFlags())
	a.profile.RegisterFlags(a.root.PersistentFlags())
	a.runner.RegisterFlags(a.root.Flags())
	a.settings.RegisterFlags(a.root.Flags())
	a.root.Flags().BoolVarP(&a.watch, "watch", "w", false,
		"keep running and fix files as they change")

	a.root.AddCommand(a.versionCmd(), a.schemaCmd(), a.chunksCmd())

	for _, register := range []func(*cobra.Command) error{
		a.log.RegisterCompletions,
		a.profile.RegisterCompletions,
		a.runner.RegisterCompletions,
		a.settings.RegisterCompletions,
	} {
		err := register(a.root)
		if err != nil {
			fmt.Fprintf(stderr, "register completions: %v\n", err)
		}
	}

	return a
}

// execute runs the command line args and stops any profiling started by
// the command.
func (a *app) execute(ctx context.Context, args []string) error {
	a.root.SetArgs(args)

	err := a.root.ExecuteContext(ctx)

	if a.profiler != nil {
		err = errors.Join(err, a.profiler.Stop())
	}

	return err
}

func (a *app) run(ctx context.Context, flags *pflag.FlagSet, args []string) error {
	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	s, err := a.settings.Load(wd)
	if err != nil {
		return err
	}

	a.runner.ApplySettings(s, flags)

	opts := s.Options()
	if a.watch {
		opts = append(opts, javadoc.WithCache(watchCacheSize))
	}

	r, err := a.runner.NewRunner(a.stdout, opts...)
	if err != nil {
		return err
	}

	sum, err := r.Run(ctx, args...)
	if !a.watch {
		return err
	}

	if err != nil && ctx.Err() != nil {
		return nil
	}

	slog.Info("initial run complete",
		slog.Int("files", sum.Files),
		slog.Int("changed", sum.Changed),
		slog.Int("failed", sum.Failed),
	)

	w, err := watch.New(args, func(ctx context.Context, paths []string) {
		// Failures are logged per file by the runner.
		_, _ = r.Run(ctx, paths...)
	},
		watch.WithExtensions(a.runner.Extensions...),
		watch.WithExclude(a.runner.Exclude...),
	)
	if err != nil {
		return err
	}

	slog.Info("watching for changes")

	return w.Run(ctx)
}

func (a *app) versionCmd() *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := version.Get()

			if short {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), info.String())
				if err != nil {
					return fmt.Errorf("write version: %w", err)
				}

				return nil
			}

			return info.Write(cmd.OutOrStdout(), diffview.ColorEnabled(diffview.ColorAuto, cmd.OutOrStdout()))
		},
	}

	cmd.Flags().BoolVar(&short, "short", false, "print a single line")

	return cmd
}

func (a *app) schemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema of the " + settings.DefaultFile + " settings file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			schema, err := settings.Schema()
			if err != nil {
				return err
			}

			out, err := json.MarshalIndent(schema, "", "  ")
			if err != nil {
				return fmt.Errorf("marshal schema: %w", err)
			}

			out = append(out, '\n')

			_, err = cmd.OutOrStdout().Write(out)
			if err != nil {
				return fmt.Errorf("write schema: %w", err)
			}

			return nil
		},
	}
}

func (a *app) chunksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chunks <file.java>",
		Short: "Print the line chunks docfix sees in a file",
		Long: `chunks prints the line-oriented view of a Java file that docfix fixes.
Doc comment chunks are marked with "doc", other lines with "   ".`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return printChunks(cmd.OutOrStdout(), args[0])
		},
	}
}

func printChunks(w io.Writer, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: %w", runner.ErrReadInput, err)
	}

	text, err := charset.Detect(data).Decode(data)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", runner.ErrReadInput, path, err)
	}

	chunks, err := javadoc.Chunks(text)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	for _, c := range chunks {
		mark := "   "
		if c.Doc {
			mark = "doc"
		}

		for _, line := range diffview.SplitLines(c.Text) {
			_, err := fmt.Fprintf(w, "%s | %s\n", mark, line)
			if err != nil {
				return fmt.Errorf("%w: %w", runner.ErrWriteOutput, err)
			}
		}

		if c.Text == "" {
			_, err := fmt.Fprintf(w, "%s |\n", mark)
			if err != nil {
				return fmt.Errorf("%w: %w", runner.ErrWriteOutput, err)
			}
		}
	}

	return nil
}
