// Package testutil provides helpers for tests that touch the process
// environment or need throwaway directory trees.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lengau/goxdg/pkg/basedir"
)

// xdgVariables is every variable the resolver reads, plus the goxdg
// overrides that would leak between tests.
var xdgVariables = []string{
	"XDG_DATA_HOME",
	"XDG_CONFIG_HOME",
	"XDG_STATE_HOME",
	"XDG_CACHE_HOME",
	"XDG_RUNTIME_DIR",
	"XDG_DATA_DIRS",
	"XDG_CONFIG_DIRS",
	"GOXDG_FORMAT",
	"GOXDG_COLOR",
	"GOXDG_APP",
	"NO_COLOR",
}

// Sandbox points HOME at a fresh temporary directory, unsets every
// XDG_* and GOXDG_* variable, and resets the process-wide directory
// cache. It returns the sandbox home path.
func Sandbox(t *testing.T) string {
	t.Helper()

	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, variable := range xdgVariables {
		Unsetenv(t, variable)
	}

	basedir.Reload()
	t.Cleanup(basedir.Reload)

	return home
}

// Unsetenv removes a variable for the duration of the test, restoring
// the original value afterwards.
func Unsetenv(t *testing.T, key string) {
	t.Helper()

	// t.Setenv registers the restore; Unsetenv then clears the value for
	// real, since an empty string is still "set" to LookupEnv.
	t.Setenv(key, "")
	if err := os.Unsetenv(key); err != nil {
		t.Fatalf("Failed to unset environment variable %s: %v", key, err)
	}
}

// CreateDir creates a directory in the specified parent directory.
// It fails the test if the directory cannot be created.
func CreateDir(t *testing.T, parent, name string) string {
	t.Helper()

	path := filepath.Join(parent, name)

	if err := os.MkdirAll(path, 0755); err != nil {
		t.Fatalf("Failed to create directory %s: %v", path, err)
	}

	return path
}

// CreateFile creates a file with the given content in the specified directory.
// It fails the test if the file cannot be created.
func CreateFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)

	// Create parent directories if needed
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create parent directories for %s: %v", path, err)
	}

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create file %s: %v", path, err)
	}

	return path
}
