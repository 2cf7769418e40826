package basedir

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/lengau/goxdg/pkg/errors"
)

// Environment variable names defined by the XDG Base Directory specification
const (
	// EnvHome is the standard home directory variable
	EnvHome = "HOME"

	// EnvDataHome is the base directory for user-specific data files
	EnvDataHome = "XDG_DATA_HOME"

	// EnvConfigHome is the base directory for user-specific configuration
	EnvConfigHome = "XDG_CONFIG_HOME"

	// EnvStateHome is the base directory for user-specific state data
	EnvStateHome = "XDG_STATE_HOME"

	// EnvCacheHome is the base directory for user-specific cached data
	EnvCacheHome = "XDG_CACHE_HOME"

	// EnvRuntimeDir is the per-session runtime directory, owned by the
	// session manager; the specification defines no fallback for it
	EnvRuntimeDir = "XDG_RUNTIME_DIR"

	// EnvDataDirs is the preference-ordered list of additional data directories
	EnvDataDirs = "XDG_DATA_DIRS"

	// EnvConfigDirs is the preference-ordered list of additional config directories
	EnvConfigDirs = "XDG_CONFIG_DIRS"
)

// Specification defaults for the home directories, relative to HOME
const (
	defaultDataHome   = ".local/share"
	defaultConfigHome = ".config"
	defaultStateHome  = ".local/state"
	defaultCacheHome  = ".cache"
)

// Specification defaults for the search lists, used when the corresponding
// variable is unset or empty
var (
	fallbackDataDirs   = []string{"/usr/local/share", "/usr/share"}
	fallbackConfigDirs = []string{"/etc/xdg"}
)

// Directories is the resolved base directory set for one environment
// snapshot. All paths are absolute and cleaned. The search lists are ordered
// by preference, start with the matching home directory, and contain no
// duplicates.
type Directories struct {
	DataHome   string `json:"data_home" yaml:"data_home" toml:"data_home"`
	ConfigHome string `json:"config_home" yaml:"config_home" toml:"config_home"`
	StateHome  string `json:"state_home" yaml:"state_home" toml:"state_home"`
	CacheHome  string `json:"cache_home" yaml:"cache_home" toml:"cache_home"`

	// RuntimeDir is empty when the session manager did not provide one.
	// Use Runtime for the explicit present/absent form.
	RuntimeDir string `json:"runtime_dir,omitempty" yaml:"runtime_dir,omitempty" toml:"runtime_dir,omitempty"`

	DataDirs   []string `json:"data_dirs" yaml:"data_dirs" toml:"data_dirs"`
	ConfigDirs []string `json:"config_dirs" yaml:"config_dirs" toml:"config_dirs"`
}

// Runtime returns the runtime directory and whether the session manager
// provided one.
func (d *Directories) Runtime() (string, bool) {
	return d.RuntimeDir, d.RuntimeDir != ""
}

// HomeDir returns the user's home directory from the snapshot.
// HOME must be set to an absolute path; the specification defines no
// secondary fallback for it.
func HomeDir(env *Environment) (string, error) {
	home, ok := env.Lookup(EnvHome)
	if !ok || home == "" {
		return "", errors.New(errors.ErrNoHome, "HOME is not set")
	}
	if !filepath.IsAbs(home) {
		return "", errors.Newf(errors.ErrNoHome, "HOME is not an absolute path: %q", home)
	}
	return filepath.Clean(home), nil
}

// DataHome resolves XDG_DATA_HOME, defaulting to $HOME/.local/share.
func DataHome(env *Environment) (string, error) {
	return resolveHome(env, EnvDataHome, defaultDataHome)
}

// ConfigHome resolves XDG_CONFIG_HOME, defaulting to $HOME/.config.
func ConfigHome(env *Environment) (string, error) {
	return resolveHome(env, EnvConfigHome, defaultConfigHome)
}

// StateHome resolves XDG_STATE_HOME, defaulting to $HOME/.local/state.
func StateHome(env *Environment) (string, error) {
	return resolveHome(env, EnvStateHome, defaultStateHome)
}

// CacheHome resolves XDG_CACHE_HOME, defaulting to $HOME/.cache.
func CacheHome(env *Environment) (string, error) {
	return resolveHome(env, EnvCacheHome, defaultCacheHome)
}

// RuntimeDir resolves XDG_RUNTIME_DIR. The second return is false when the
// variable is unset, empty, or not absolute: the runtime directory carries
// ownership and lifetime guarantees only the session manager can provide,
// so no path is ever fabricated in its place.
func RuntimeDir(env *Environment) (string, bool) {
	value, ok := env.Lookup(EnvRuntimeDir)
	if !ok || value == "" {
		return "", false
	}
	if !filepath.IsAbs(value) {
		log.Warn().
			Str("variable", EnvRuntimeDir).
			Str("value", value).
			Msg("Ignoring non-absolute runtime directory")
		return "", false
	}
	return filepath.Clean(value), true
}

// DataDirs resolves the data search path: the data home directory followed
// by XDG_DATA_DIRS (or /usr/local/share:/usr/share when unset or empty).
func DataDirs(env *Environment) ([]string, error) {
	home, err := DataHome(env)
	if err != nil {
		return nil, err
	}
	return resolveDirs(env, EnvDataDirs, fallbackDataDirs, home), nil
}

// ConfigDirs resolves the config search path: the config home directory
// followed by XDG_CONFIG_DIRS (or /etc/xdg when unset or empty).
func ConfigDirs(env *Environment) ([]string, error) {
	home, err := ConfigHome(env)
	if err != nil {
		return nil, err
	}
	return resolveDirs(env, EnvConfigDirs, fallbackConfigDirs, home), nil
}

// Resolve computes the full directory set for one snapshot.
//
// A missing HOME is only an error for directories whose variable is unset
// and therefore need the home-relative default. Runtime directory absence
// is not an error; it surfaces as the empty RuntimeDir field.
func Resolve(env *Environment) (*Directories, error) {
	dataHome, err := DataHome(env)
	if err != nil {
		return nil, err
	}
	configHome, err := ConfigHome(env)
	if err != nil {
		return nil, err
	}
	stateHome, err := StateHome(env)
	if err != nil {
		return nil, err
	}
	cacheHome, err := CacheHome(env)
	if err != nil {
		return nil, err
	}

	runtime, _ := RuntimeDir(env)

	return &Directories{
		DataHome:   dataHome,
		ConfigHome: configHome,
		StateHome:  stateHome,
		CacheHome:  cacheHome,
		RuntimeDir: runtime,
		DataDirs:   resolveDirs(env, EnvDataDirs, fallbackDataDirs, dataHome),
		ConfigDirs: resolveDirs(env, EnvConfigDirs, fallbackConfigDirs, configHome),
	}, nil
}

// resolveHome reads a single home-directory variable. Unset, empty, and
// non-absolute values all fall back to $HOME/fallback per the specification.
func resolveHome(env *Environment, variable, fallback string) (string, error) {
	if value, ok := env.Lookup(variable); ok && value != "" {
		if filepath.IsAbs(value) {
			return filepath.Clean(value), nil
		}
		log.Debug().
			Str("variable", variable).
			Str("value", value).
			Msg("Ignoring non-absolute path in environment")
	}

	home, err := HomeDir(env)
	if err != nil {
		return "", err
	}
	return filepath.Join(home, fallback), nil
}

// resolveDirs reads a search-list variable and composes the search path:
// home first, then each valid entry in order, duplicates collapsed to their
// first occurrence. Invalid entries are skipped, never fatal, because the
// specification instructs consumers to ignore them.
func resolveDirs(env *Environment, variable string, fallback []string, home string) []string {
	entries := fallback
	if value, ok := env.Lookup(variable); ok && value != "" {
		entries = strings.Split(value, string(os.PathListSeparator))
	}

	seen := make(map[string]struct{}, len(entries)+1)
	dirs := make([]string, 0, len(entries)+1)
	appendDir := func(dir string) {
		if _, dup := seen[dir]; dup {
			return
		}
		seen[dir] = struct{}{}
		dirs = append(dirs, dir)
	}

	appendDir(home)
	for _, entry := range entries {
		if entry == "" {
			continue
		}
		if !filepath.IsAbs(entry) {
			log.Warn().
				Str("variable", variable).
				Str("entry", entry).
				Msg("Dropping non-absolute search path entry")
			continue
		}
		appendDir(filepath.Clean(entry))
	}
	return dirs
}
