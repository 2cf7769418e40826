package basedir

import "sync"

var (
	currentMu       sync.RWMutex
	currentDirs     *Directories
	currentErr      error
	currentResolved bool
)

// Current returns the directory set resolved from the live process
// environment. The snapshot is captured on first use and cached for the
// life of the process; all callers share the result and must treat it as
// read-only.
func Current() (*Directories, error) {
	currentMu.RLock()
	if currentResolved {
		dirs, err := currentDirs, currentErr
		currentMu.RUnlock()
		return dirs, err
	}
	currentMu.RUnlock()

	currentMu.Lock()
	defer currentMu.Unlock()
	if !currentResolved {
		currentDirs, currentErr = Resolve(OSEnvironment())
		currentResolved = true
	}
	return currentDirs, currentErr
}

// Reload discards the cached resolution so the next Current call captures a
// fresh snapshot. Intended for tests that mutate the process environment.
func Reload() {
	currentMu.Lock()
	defer currentMu.Unlock()
	currentDirs, currentErr, currentResolved = nil, nil, false
}
