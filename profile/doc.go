// Package profile adds runtime profiling and execution tracing to a command.
//
// It supports CPU, heap, allocs, goroutine, threadcreate, block and mutex
// profiles, plus a runtime/trace execution trace, each enabled by naming an
// output file on the command line. Use [Config.RegisterFlags] to add the
// flags and [Config.RegisterCompletions] to wire up shell completions.
//
// The [Profiler] brackets the command's work:
//
//	cfg := profile.NewConfig()
//
//	var p *profile.Profiler
//
//	rootCmd := &cobra.Command{
//	    PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
//	        p = cfg.NewProfiler()
//	        return p.Start()
//	    },
//	}
//
//	cfg.RegisterFlags(rootCmd.PersistentFlags())
//	err := rootCmd.Execute()
//	if p != nil {
//	    err = errors.Join(err, p.Stop())
//	}
//
// A slow run over a large source tree can then be examined with
// "docfix --cpu-profile=cpu.prof src/" and "go tool pprof cpu.prof".
package profile
