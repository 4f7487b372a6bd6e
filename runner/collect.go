package runner

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// DefaultMaxDepth is the directory depth walked when [WalkOptions.MaxDepth]
// is zero.
const DefaultMaxDepth = 63

// WalkOptions selects the files [Collect] finds in directories.
type WalkOptions struct {
	// Extensions are the file name extensions to select, such as ".java".
	// Defaults to ".java".
	Extensions []string
	// Exclude holds [filepath.Match] patterns. Files and directories below
	// a root whose names match any pattern are skipped.
	Exclude []string
	// MaxDepth bounds how far below a root directory files are selected.
	// Files directly inside the root are at depth 1.
	MaxDepth int
}

func (o WalkOptions) extensions() []string {
	if len(o.Extensions) == 0 {
		return []string{".java"}
	}

	return o.Extensions
}

func (o WalkOptions) maxDepth() int {
	if o.MaxDepth <= 0 {
		return DefaultMaxDepth
	}

	return o.MaxDepth
}

func (o WalkOptions) excluded(name string) bool {
	for _, pattern := range o.Exclude {
		if ok, _ := filepath.Match(pattern, name); ok {
			return true
		}
	}

	return false
}

// Collect returns the sorted, de-duplicated files named by roots.
//
// A root naming a file is always selected. A root naming a directory is
// walked to [WalkOptions.MaxDepth], selecting regular files with a matching
// extension and skipping symbolic links and excluded names.
//
// Roots and directories that cannot be read are reported in the returned
// error, which joins one error per failure; the files that could be found
// are returned regardless.
func Collect(roots []string, opts WalkOptions) ([]string, error) {
	var (
		files []string
		errs  []error
	)

	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil {
			errs = append(errs, fmt.Errorf("%w: %w", ErrReadInput, err))

			continue
		}

		if !info.IsDir() {
			files = append(files, root)

			continue
		}

		// A trailing separator makes WalkDir follow a root that is a link.
		if lst, err := os.Lstat(root); err == nil && lst.Mode()&fs.ModeSymlink != 0 {
			root += string(filepath.Separator)
		}

		found, walkErrs := walk(root, opts)
		files = append(files, found...)
		errs = append(errs, walkErrs...)
	}

	slices.Sort(files)

	return slices.Compact(files), errors.Join(errs...)
}

func walk(root string, opts WalkOptions) ([]string, []error) {
	var (
		files []string
		errs  []error
	)

	exts := opts.extensions()
	maxDepth := opts.maxDepth()

	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			errs = append(errs, fmt.Errorf("%w: %w", ErrReadInput, err))

			return nil
		}

		if path == root {
			return nil
		}

		if opts.excluded(d.Name()) {
			if d.IsDir() {
				return fs.SkipDir
			}

			return nil
		}

		if d.IsDir() {
			if depth(root, path) >= maxDepth {
				return fs.SkipDir
			}

			return nil
		}

		if !d.Type().IsRegular() {
			return nil
		}

		if slices.Contains(exts, filepath.Ext(path)) {
			files = append(files, path)
		}

		return nil
	})

	return files, errs
}

// depth returns how many path elements path lies below root.
func depth(root, path string) int {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return 0
	}

	return strings.Count(filepath.ToSlash(rel), "/") + 1
}
