package profile

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
	"runtime/trace"
)

// Profiler controls the lifecycle of a profiling session.
//
// Call [Profiler.Start] before the profiled work and [Profiler.Stop] after
// it. Stop writes every enabled snapshot profile.
//
// Create instances with [Config.NewProfiler].
type Profiler struct {
	cpuFile   *os.File
	traceFile *os.File
	Config
}

// Start sets the non-zero sampling rates, then starts CPU profiling and
// execution tracing when enabled. It does nothing when no output is set.
func (p *Profiler) Start() error {
	if !p.Enabled() {
		return nil
	}

	if p.MemProfileRate > 0 {
		runtime.MemProfileRate = p.MemProfileRate
	}

	if p.BlockProfileRate > 0 {
		runtime.SetBlockProfileRate(p.BlockProfileRate)
	}

	if p.MutexProfileFraction > 0 {
		runtime.SetMutexProfileFraction(p.MutexProfileFraction)
	}

	if p.CPUProfile != "" {
		f, err := os.Create(p.CPUProfile) //nolint:gosec // Profile path from CLI flag is expected.
		if err != nil {
			return fmt.Errorf("create CPU profile: %w", err)
		}

		err = pprof.StartCPUProfile(f)
		if err != nil {
			return errors.Join(fmt.Errorf("start CPU profile: %w", err), f.Close())
		}

		p.cpuFile = f
	}

	if p.Trace != "" {
		f, err := os.Create(p.Trace) //nolint:gosec // Trace path from CLI flag is expected.
		if err != nil {
			return errors.Join(fmt.Errorf("create trace: %w", err), p.stopCPU())
		}

		err = trace.Start(f)
		if err != nil {
			return errors.Join(fmt.Errorf("start trace: %w", err), f.Close(), p.stopCPU())
		}

		p.traceFile = f
	}

	return nil
}

// Stop ends CPU profiling and tracing and writes the snapshot profiles.
// It attempts every step and reports all failures.
func (p *Profiler) Stop() error {
	return errors.Join(p.stopCPU(), p.stopTrace(), p.writeSnapshots())
}

func (p *Profiler) stopCPU() error {
	if p.cpuFile == nil {
		return nil
	}

	pprof.StopCPUProfile()

	f := p.cpuFile
	p.cpuFile = nil

	err := f.Close()
	if err != nil {
		return fmt.Errorf("close CPU profile: %w", err)
	}

	return nil
}

func (p *Profiler) stopTrace() error {
	if p.traceFile == nil {
		return nil
	}

	trace.Stop()

	f := p.traceFile
	p.traceFile = nil

	err := f.Close()
	if err != nil {
		return fmt.Errorf("close trace: %w", err)
	}

	return nil
}

// snapshots pairs each snapshot profile name with its output path.
func (p *Profiler) snapshots() map[string]string {
	return map[string]string{
		"heap":         p.HeapProfile,
		"allocs":       p.AllocsProfile,
		"goroutine":    p.GoroutineProfile,
		"threadcreate": p.ThreadcreateProfile,
		"block":        p.BlockProfile,
		"mutex":        p.MutexProfile,
	}
}

func (p *Profiler) writeSnapshots() error {
	var errs []error

	for name, path := range p.snapshots() {
		if path == "" {
			continue
		}

		err := writeProfile(name, path)
		if err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func writeProfile(name, path string) error {
	prof := pprof.Lookup(name)
	if prof == nil {
		return fmt.Errorf("unknown profile: %s", name)
	}

	f, err := os.Create(path) //nolint:gosec // Profile path from CLI flag is expected.
	if err != nil {
		return fmt.Errorf("create %s profile: %w", name, err)
	}

	err = prof.WriteTo(f, 0)
	if err != nil {
		return errors.Join(fmt.Errorf("write %s profile: %w", name, err), f.Close())
	}

	err = f.Close()
	if err != nil {
		return fmt.Errorf("close %s profile: %w", name, err)
	}

	return nil
}
