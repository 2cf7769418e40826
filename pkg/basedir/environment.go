package basedir

import (
	"os"
	"strings"
)

// Environment is an immutable snapshot of environment variables.
//
// Resolution functions read from a snapshot instead of the ambient process
// environment so results are deterministic: the snapshot cannot change
// mid-resolution, and tests can supply arbitrary environments without
// touching the real one.
type Environment struct {
	vars map[string]string
}

// OSEnvironment captures the current process environment.
func OSEnvironment() *Environment {
	environ := os.Environ()
	vars := make(map[string]string, len(environ))
	for _, kv := range environ {
		if i := strings.IndexByte(kv, '='); i > 0 {
			vars[kv[:i]] = kv[i+1:]
		}
	}
	return &Environment{vars: vars}
}

// NewEnvironment builds a snapshot from an explicit set of variables.
// The map is copied; later changes to it do not affect the snapshot.
func NewEnvironment(vars map[string]string) *Environment {
	copied := make(map[string]string, len(vars))
	for k, v := range vars {
		copied[k] = v
	}
	return &Environment{vars: copied}
}

// Lookup returns the value of a variable and whether it is present.
func (e *Environment) Lookup(key string) (string, bool) {
	value, ok := e.vars[key]
	return value, ok
}

// Get returns the value of a variable, or the empty string when unset.
func (e *Environment) Get(key string) string {
	return e.vars[key]
}
