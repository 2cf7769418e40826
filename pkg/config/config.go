// Package config loads goxdg's own settings. The user config file is
// located with the resolver this module ships, so the tool always honors
// the same XDG semantics it reports.
package config

import (
	_ "embed"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/lengau/goxdg/pkg/basedir"
	"github.com/lengau/goxdg/pkg/errors"
)

// ConfigFileName is the user config file under the goxdg config directory.
const ConfigFileName = "config.toml"

// appDirName is the subdirectory goxdg claims inside the XDG directories.
const appDirName = "goxdg"

// envPrefix marks environment variables that override settings.
const envPrefix = "GOXDG_"

//go:embed embedded/defaults.toml
var defaultConfig []byte

type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, stderrors.New("not implemented")
}

// Settings are the user-tunable knobs of the goxdg CLI.
type Settings struct {
	// Format is the default output format (auto, term, text, json, yaml, toml).
	Format string `koanf:"format"`

	// Color controls styled output (auto, always, never).
	Color string `koanf:"color"`

	// App is the application name joined in front of ensure/locate
	// sub-paths. Empty means no prefix.
	App string `koanf:"app"`
}

// Load assembles the settings: embedded defaults, then the user config
// file if it exists, then GOXDG_* environment variables.
func Load() (*Settings, error) {
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(confmap.Provider(defaultSettings(), "."), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load default config")
	}

	// 2. User config file, when present
	if path, ok := userConfigPath(); ok {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad,
				"failed to load config from %s", path)
		}
	}

	// 3. Environment overrides: GOXDG_FORMAT, GOXDG_COLOR, GOXDG_APP
	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "_", ".")
	}), nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
	}

	var settings Settings
	if err := k.Unmarshal("", &settings); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to unmarshal config")
	}

	return &settings, nil
}

// defaultSettings parses the embedded defaults into a flat map.
func defaultSettings() map[string]interface{} {
	k := koanf.New(".")
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return map[string]interface{}{}
	}
	return k.All()
}

// userConfigPath resolves the user config file location and reports
// whether the file exists. A missing home directory just means there is
// no user config.
func userConfigPath() (string, bool) {
	configHome, err := basedir.ConfigHome(basedir.OSEnvironment())
	if err != nil {
		return "", false
	}

	path := filepath.Join(configHome, appDirName, ConfigFileName)
	if _, err := os.Stat(path); err != nil {
		return "", false
	}
	return path, true
}
