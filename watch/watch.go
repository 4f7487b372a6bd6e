// Package watch reports changed source files under a set of roots.
//
// A [Watcher] watches root directories recursively, including directories
// created while it runs, and named files. Changes are collected until no
// new change arrives for the debounce window, then passed to the handler
// as one sorted batch of paths.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ErrWatch indicates a root that cannot be watched.
var ErrWatch = errors.New("watch")

// DefaultDebounce is the default debounce window.
const DefaultDebounce = 200 * time.Millisecond

// Handler receives a batch of changed files.
type Handler func(ctx context.Context, paths []string)

// Watcher watches files and directories for changes.
//
// Create instances with [New].
type Watcher struct {
	fsw      *fsnotify.Watcher
	handler  Handler
	files    map[string]bool
	dirs     map[string]bool
	exts     []string
	exclude  []string
	debounce time.Duration
}

// Option configures a [Watcher].
type Option func(*Watcher)

// WithDebounce sets how long the watcher waits for further changes before
// calling the handler. Defaults to [DefaultDebounce].
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		w.debounce = d
	}
}

// WithExtensions sets the extensions of files reported in watched
// directories. Defaults to ".java".
func WithExtensions(exts ...string) Option {
	return func(w *Watcher) {
		w.exts = exts
	}
}

// WithExclude sets [filepath.Match] patterns for file and directory names
// to ignore.
func WithExclude(patterns ...string) Option {
	return func(w *Watcher) {
		w.exclude = patterns
	}
}

// New creates a new [Watcher] for roots, which may name files or
// directories. Call [Watcher.Run] to start watching.
func New(roots []string, handler Handler, opts ...Option) (*Watcher, error) {
	w := &Watcher{
		handler:  handler,
		files:    make(map[string]bool),
		dirs:     make(map[string]bool),
		exts:     []string{".java"},
		debounce: DefaultDebounce,
	}

	for _, opt := range opts {
		opt(w)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWatch, err)
	}

	w.fsw = fsw

	for _, root := range roots {
		err := w.addRoot(root)
		if err != nil {
			_ = fsw.Close()

			return nil, err
		}
	}

	return w, nil
}

func (w *Watcher) addRoot(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWatch, err)
	}

	if info.IsDir() {
		_, err := w.addTree(root)

		return err
	}

	path := filepath.Clean(root)
	w.files[path] = true

	err = w.fsw.Add(filepath.Dir(path))
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWatch, path, err)
	}

	return nil
}

// addTree watches dir and the directories below it, returning the matching
// files already inside them.
func (w *Watcher) addTree(dir string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			slog.Warn("cannot watch", slog.String("path", path), slog.Any("error", err))

			return nil
		}

		if path != dir && w.excluded(d.Name()) {
			if d.IsDir() {
				return fs.SkipDir
			}

			return nil
		}

		if !d.IsDir() {
			if d.Type().IsRegular() && slices.Contains(w.exts, filepath.Ext(path)) {
				files = append(files, path)
			}

			return nil
		}

		err = w.fsw.Add(path)
		if err != nil {
			return fmt.Errorf("%w: %s: %w", ErrWatch, path, err)
		}

		w.dirs[filepath.Clean(path)] = true

		return nil
	})

	return files, err
}

func (w *Watcher) excluded(name string) bool {
	for _, pattern := range w.exclude {
		if ok, _ := filepath.Match(pattern, name); ok {
			return true
		}
	}

	return false
}

// relevant reports whether a change to path should be reported.
func (w *Watcher) relevant(path string) bool {
	if w.files[path] {
		return true
	}

	if !w.dirs[filepath.Dir(path)] || w.excluded(filepath.Base(path)) {
		return false
	}

	return slices.Contains(w.exts, filepath.Ext(path))
}

// Run watches until ctx is canceled, calling the handler with each batch of
// changed files. The handler runs on the watching goroutine, so changes
// made while it runs are reported in the next batch. Run closes the
// watcher before returning.
func (w *Watcher) Run(ctx context.Context) error {
	defer func() {
		_ = w.fsw.Close()
	}()

	pending := make(map[string]bool)

	timer := time.NewTimer(w.debounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}

			for _, path := range w.changed(event) {
				pending[path] = true
			}

			if len(pending) > 0 {
				timer.Reset(w.debounce)
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}

			slog.Warn("watch error", slog.Any("error", err))

		case <-timer.C:
			paths := slices.Sorted(maps.Keys(pending))
			clear(pending)

			slog.Debug("files changed", slog.Int("count", len(paths)))
			w.handler(ctx, paths)
		}
	}
}

// changed returns the files to report for event, watching new directories.
func (w *Watcher) changed(event fsnotify.Event) []string {
	path := filepath.Clean(event.Name)

	if event.Has(fsnotify.Create) && w.dirs[filepath.Dir(path)] && !w.excluded(filepath.Base(path)) {
		info, err := os.Stat(path)
		if err == nil && info.IsDir() {
			// Files may have been created before the directory was watched.
			files, err := w.addTree(path)
			if err != nil {
				slog.Warn("cannot watch", slog.String("path", path), slog.Any("error", err))
			}

			return files
		}
	}

	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return nil
	}

	if !w.relevant(path) {
		return nil
	}

	return []string{path}
}
