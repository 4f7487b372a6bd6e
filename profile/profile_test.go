package profile_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/docfix/profile"
)

func TestConfigFlags(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		check       func(*testing.T, *profile.Config)
		args        []string
		wantEnabled bool
	}{
		"defaults": {
			check: func(t *testing.T, c *profile.Config) {
				t.Helper()

				assert.Empty(t, c.CPUProfile)
				assert.Empty(t, c.Trace)
				assert.Equal(t, 512*1024, c.MemProfileRate)
				assert.Equal(t, 1, c.BlockProfileRate)
				assert.Equal(t, 1, c.MutexProfileFraction)
			},
		},
		"paths": {
			args: []string{
				"--cpu-profile=cpu.prof",
				"--heap-profile=heap.prof",
				"--allocs-profile=allocs.prof",
				"--goroutine-profile=goroutine.prof",
				"--threadcreate-profile=threadcreate.prof",
				"--block-profile=block.prof",
				"--mutex-profile=mutex.prof",
			},
			wantEnabled: true,
			check: func(t *testing.T, c *profile.Config) {
				t.Helper()

				assert.Equal(t, "cpu.prof", c.CPUProfile)
				assert.Equal(t, "heap.prof", c.HeapProfile)
				assert.Equal(t, "allocs.prof", c.AllocsProfile)
				assert.Equal(t, "goroutine.prof", c.GoroutineProfile)
				assert.Equal(t, "threadcreate.prof", c.ThreadcreateProfile)
				assert.Equal(t, "block.prof", c.BlockProfile)
				assert.Equal(t, "mutex.prof", c.MutexProfile)
			},
		},
		"trace only": {
			args:        []string{"--trace=trace.out"},
			wantEnabled: true,
			check: func(t *testing.T, c *profile.Config) {
				t.Helper()

				assert.Equal(t, "trace.out", c.Trace)
			},
		},
		"rates alone do not enable": {
			args: []string{
				"--mem-profile-rate=1024",
				"--block-profile-rate=100",
				"--mutex-profile-fraction=10",
			},
			check: func(t *testing.T, c *profile.Config) {
				t.Helper()

				assert.Equal(t, 1024, c.MemProfileRate)
				assert.Equal(t, 100, c.BlockProfileRate)
				assert.Equal(t, 10, c.MutexProfileFraction)
			},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			cfg := profile.NewConfig()
			flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
			cfg.RegisterFlags(flags)

			require.NoError(t, flags.Parse(tc.args))

			tc.check(t, cfg)
			assert.Equal(t, tc.wantEnabled, cfg.Enabled())
		})
	}
}

func TestRegisterCompletions(t *testing.T) {
	t.Parallel()

	cfg := profile.NewConfig()

	cmd := &cobra.Command{Use: "test"}
	cfg.RegisterFlags(cmd.Flags())
	require.NoError(t, cfg.RegisterCompletions(cmd))

	for _, name := range []string{"mem-profile-rate", "block-profile-rate", "mutex-profile-fraction"} {
		completionFn, ok := cmd.GetFlagCompletionFunc(name)
		require.True(t, ok, name)

		values, directive := completionFn(cmd, nil, "")
		assert.Equal(t, cobra.ShellCompDirectiveNoFileComp, directive, name)
		assert.Nil(t, values, name)
	}

	for _, name := range []string{"cpu-profile", "trace"} {
		flag := cmd.Flags().Lookup(name)
		require.NotNil(t, flag, name)
		assert.Equal(t, []string{"prof", "pprof", "out"}, flag.Annotations[cobra.BashCompFilenameExt], name)
	}
}

// Profiling state is process-wide, so this test does not run in parallel.
func TestProfiler_StartStop(t *testing.T) {
	dir := t.TempDir()

	cfg := profile.NewConfig()
	cfg.CPUProfile = filepath.Join(dir, "cpu.prof")
	cfg.HeapProfile = filepath.Join(dir, "heap.prof")
	cfg.Trace = filepath.Join(dir, "trace.out")

	p := cfg.NewProfiler()
	require.NoError(t, p.Start())
	require.NoError(t, p.Stop())

	for _, path := range []string{cfg.CPUProfile, cfg.HeapProfile, cfg.Trace} {
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Positive(t, info.Size(), path)
	}

	// A second Stop only rewrites the snapshots.
	require.NoError(t, p.Stop())
}

func TestProfiler_Disabled(t *testing.T) {
	t.Parallel()

	p := profile.NewConfig().NewProfiler()
	require.NoError(t, p.Start())
	require.NoError(t, p.Stop())
}

func TestProfiler_StopError(t *testing.T) {
	t.Parallel()

	cfg := profile.NewConfig()
	cfg.HeapProfile = filepath.Join(t.TempDir(), "missing", "heap.prof")

	p := cfg.NewProfiler()
	require.NoError(t, p.Start())
	require.ErrorContains(t, p.Stop(), "create heap profile")
}

func TestProfiler_StartError(t *testing.T) {
	t.Parallel()

	cfg := profile.NewConfig()
	cfg.Trace = filepath.Join(t.TempDir(), "missing", "trace.out")

	p := cfg.NewProfiler()
	require.ErrorContains(t, p.Start(), "create trace")
}
