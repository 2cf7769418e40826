// Package resource creates and locates application resources inside the
// XDG base directories. It builds on pkg/basedir: the resolver answers
// "where do these directories live", this package answers "make me a
// subdirectory there" and "which of these bases already has one".
package resource

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/lengau/goxdg/pkg/basedir"
	"github.com/lengau/goxdg/pkg/errors"
)

// Directory creation modes. The runtime directory must only be
// accessible to its owner, everything else follows the usual umask.
const (
	dirMode        = os.FileMode(0755)
	runtimeDirMode = os.FileMode(0700)
)

// Locator binds resource operations to a resolved directory set.
type Locator struct {
	dirs *basedir.Directories
}

// New creates a Locator over the given resolved directories.
func New(dirs *basedir.Directories) *Locator {
	return &Locator{dirs: dirs}
}

// Current creates a Locator over the process-wide resolved directories.
func Current() (*Locator, error) {
	dirs, err := basedir.Current()
	if err != nil {
		return nil, err
	}
	return New(dirs), nil
}

// Directories returns the resolved directory set the Locator is bound to.
func (l *Locator) Directories() *basedir.Directories {
	return l.dirs
}

// join composes base with the sub-path elements and rejects any result
// that does not stay inside base. Absolute elements and ".." traversal
// are both escapes.
func join(base string, sub ...string) (string, error) {
	if base == "" {
		return "", errors.New(errors.ErrInvalidInput, "empty base directory")
	}

	for _, s := range sub {
		if filepath.IsAbs(s) {
			return "", errors.New(errors.ErrOutsideBase,
				"absolute sub-path not allowed").WithDetail("sub_path", s)
		}
	}

	path := filepath.Join(append([]string{base}, sub...)...)

	rel, err := filepath.Rel(base, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", errors.New(errors.ErrOutsideBase,
			"sub-path escapes the base directory").
			WithDetail("base", base).
			WithDetail("path", path)
	}

	return path, nil
}

// Path joins the sub-path elements under base with the same escape
// guard as Ensure, without touching the filesystem.
func Path(base string, sub ...string) (string, error) {
	return join(base, sub...)
}

// Ensure joins the sub-path elements under base, creates the resulting
// directory (parents included) and returns its path. The sub-path must
// stay inside base.
func Ensure(base string, sub ...string) (string, error) {
	return ensure(base, dirMode, sub...)
}

func ensure(base string, mode os.FileMode, sub ...string) (string, error) {
	path, err := join(base, sub...)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(path, mode); err != nil {
		return "", errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", path)
	}

	return path, nil
}

// EnsureData creates a subdirectory under the data home.
func (l *Locator) EnsureData(sub ...string) (string, error) {
	return Ensure(l.dirs.DataHome, sub...)
}

// EnsureConfig creates a subdirectory under the config home.
func (l *Locator) EnsureConfig(sub ...string) (string, error) {
	return Ensure(l.dirs.ConfigHome, sub...)
}

// EnsureState creates a subdirectory under the state home.
func (l *Locator) EnsureState(sub ...string) (string, error) {
	return Ensure(l.dirs.StateHome, sub...)
}

// EnsureCache creates a subdirectory under the cache home.
func (l *Locator) EnsureCache(sub ...string) (string, error) {
	return Ensure(l.dirs.CacheHome, sub...)
}

// EnsureRuntime creates a subdirectory under the runtime directory with
// owner-only permissions. It fails with RUNTIME_UNSET when the runtime
// directory is absent; no substitute is ever fabricated.
func (l *Locator) EnsureRuntime(sub ...string) (string, error) {
	runtime, ok := l.dirs.Runtime()
	if !ok {
		return "", errors.New(errors.ErrRuntimeUnset,
			"XDG_RUNTIME_DIR is not set to an absolute path")
	}
	return ensure(runtime, runtimeDirMode, sub...)
}

// Find returns every existing path formed by joining the sub-path
// elements under each base, in the order the bases are given. A
// sub-path that escapes any base is an error; bases where the result
// does not exist are skipped.
func Find(bases []string, sub ...string) ([]string, error) {
	var found []string
	for _, base := range bases {
		path, err := join(base, sub...)
		if err != nil {
			return nil, err
		}
		if _, err := os.Stat(path); err != nil {
			continue
		}
		found = append(found, path)
	}
	return found, nil
}

// FindData returns every existing match across the data search path,
// highest priority first.
func (l *Locator) FindData(sub ...string) ([]string, error) {
	return Find(l.dirs.DataDirs, sub...)
}

// FindConfig returns every existing match across the config search
// path, highest priority first.
func (l *Locator) FindConfig(sub ...string) ([]string, error) {
	return Find(l.dirs.ConfigDirs, sub...)
}

// DataSearchPath returns the data search path, highest priority first.
func (l *Locator) DataSearchPath() []string {
	return append([]string(nil), l.dirs.DataDirs...)
}

// ConfigSearchPath returns the config search path, highest priority first.
func (l *Locator) ConfigSearchPath() []string {
	return append([]string(nil), l.dirs.ConfigDirs...)
}
