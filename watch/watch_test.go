package watch_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/docfix/watch"
)

// start runs a watcher over roots and returns the channel of its batches.
func start(t *testing.T, roots []string, opts ...watch.Option) <-chan []string {
	t.Helper()

	batches := make(chan []string, 16)

	w, err := watch.New(roots, func(_ context.Context, paths []string) {
		batches <- paths
	}, append([]watch.Option{watch.WithDebounce(50 * time.Millisecond)}, opts...)...)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	go func() {
		done <- w.Run(ctx)
	}()

	t.Cleanup(func() {
		cancel()
		require.NoError(t, <-done)
	})

	return batches
}

// next waits for a batch containing want.
func next(t *testing.T, batches <-chan []string, want string) []string {
	t.Helper()

	timeout := time.After(5 * time.Second)

	for {
		select {
		case paths := <-batches:
			for _, p := range paths {
				if p == want {
					return paths
				}
			}
		case <-timeout:
			require.FailNow(t, "no change reported", want)
		}
	}
}

func write(t *testing.T, path, content string) {
	t.Helper()

	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestWatchDirectory(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, "build"), 0o755))

	batches := start(t, []string{root}, watch.WithExclude("build"))

	write(t, filepath.Join(root, "notes.txt"), "x")
	write(t, filepath.Join(root, "build", "Gen.java"), "class Gen {}")

	a := filepath.Join(root, "A.java")
	write(t, a, "class A {}")

	got := next(t, batches, a)
	assert.NotContains(t, got, filepath.Join(root, "notes.txt"))
	assert.NotContains(t, got, filepath.Join(root, "build", "Gen.java"))
}

func TestWatchNewDirectory(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	batches := start(t, []string{root})

	dir := filepath.Join(root, "pkg")
	require.NoError(t, os.Mkdir(dir, 0o755))

	b := filepath.Join(dir, "B.java")
	write(t, b, "class B {}")
	next(t, batches, b)

	// Later writes inside the new directory are seen too.
	write(t, b, "class B { int x; }")
	next(t, batches, b)
}

func TestWatchFile(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	a := filepath.Join(root, "A.java")
	write(t, a, "class A {}")

	batches := start(t, []string{a})

	write(t, filepath.Join(root, "Other.java"), "class Other {}")
	write(t, a, "class A { int x; }")

	got := next(t, batches, a)
	assert.NotContains(t, got, filepath.Join(root, "Other.java"))
}

func TestWatchMissingRoot(t *testing.T) {
	t.Parallel()

	_, err := watch.New([]string{filepath.Join(t.TempDir(), "missing")}, func(context.Context, []string) {})
	require.ErrorIs(t, err, watch.ErrWatch)
}
