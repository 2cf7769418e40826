// Package basedir resolves the XDG Base Directory specification.
//
// Given an environment snapshot, the package computes the base directories
// for user-specific data, configuration, state, and cached files, the
// per-session runtime directory, and the preference-ordered search paths
// for data and configuration. Defaults mandated by the specification are
// applied when a variable is unset, empty, or not an absolute path:
//
//   - XDG_DATA_HOME    default $HOME/.local/share
//   - XDG_CONFIG_HOME  default $HOME/.config
//   - XDG_STATE_HOME   default $HOME/.local/state
//   - XDG_CACHE_HOME   default $HOME/.cache
//   - XDG_DATA_DIRS    default /usr/local/share:/usr/share
//   - XDG_CONFIG_DIRS  default /etc/xdg
//   - XDG_RUNTIME_DIR  no default; absence is reported, never papered over
//
// Resolution is a pure function of the snapshot: no filesystem access, no
// mutation, identical results for identical snapshots. Directories are not
// created by this package; see pkg/resource for that.
//
// # Usage
//
//	dirs, err := basedir.Resolve(basedir.OSEnvironment())
//	if err != nil {
//	    // HOME was needed and is unset
//	}
//
//	dirs.ConfigHome        // /home/user/.config
//	dirs.ConfigDirs        // [/home/user/.config /etc/xdg]
//	if rt, ok := dirs.Runtime(); ok {
//	    // rt is the session runtime directory
//	}
//
// Tests can resolve arbitrary environments without touching the real one:
//
//	env := basedir.NewEnvironment(map[string]string{"HOME": "/home/alex"})
//	configHome, _ := basedir.ConfigHome(env)  // /home/alex/.config
//
// For process-wide use, Current caches one resolution of the live
// environment and Reload discards it.
//
// Reference: https://specifications.freedesktop.org/basedir-spec/basedir-spec-0.8.html
package basedir
