package basedir_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lengau/goxdg/pkg/basedir"
	"github.com/lengau/goxdg/pkg/errors"
)

func TestHomeDir(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		want    string
		wantErr bool
	}{
		{
			name: "absolute_home",
			env:  map[string]string{"HOME": "/home/alex"},
			want: "/home/alex",
		},
		{
			name: "trailing_slash_cleaned",
			env:  map[string]string{"HOME": "/home/alex/"},
			want: "/home/alex",
		},
		{
			name:    "unset",
			env:     map[string]string{},
			wantErr: true,
		},
		{
			name:    "empty",
			env:     map[string]string{"HOME": ""},
			wantErr: true,
		},
		{
			name:    "relative",
			env:     map[string]string{"HOME": "home/alex"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := basedir.HomeDir(basedir.NewEnvironment(tt.env))

			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsErrorCode(err, errors.ErrNoHome))
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHomeResolvers(t *testing.T) {
	resolvers := []struct {
		name     string
		variable string
		fallback string
		resolve  func(*basedir.Environment) (string, error)
	}{
		{"data_home", basedir.EnvDataHome, "/home/alex/.local/share", basedir.DataHome},
		{"config_home", basedir.EnvConfigHome, "/home/alex/.config", basedir.ConfigHome},
		{"state_home", basedir.EnvStateHome, "/home/alex/.local/state", basedir.StateHome},
		{"cache_home", basedir.EnvCacheHome, "/home/alex/.cache", basedir.CacheHome},
	}

	for _, r := range resolvers {
		t.Run(r.name, func(t *testing.T) {
			t.Run("set_absolute", func(t *testing.T) {
				env := basedir.NewEnvironment(map[string]string{
					"HOME":     "/home/alex",
					r.variable: "/custom/dir",
				})
				got, err := r.resolve(env)
				require.NoError(t, err)
				assert.Equal(t, "/custom/dir", got)
			})

			t.Run("set_absolute_without_home", func(t *testing.T) {
				// HOME is only needed when the fallback is.
				env := basedir.NewEnvironment(map[string]string{
					r.variable: "/custom/dir",
				})
				got, err := r.resolve(env)
				require.NoError(t, err)
				assert.Equal(t, "/custom/dir", got)
			})

			t.Run("unset_falls_back", func(t *testing.T) {
				env := basedir.NewEnvironment(map[string]string{"HOME": "/home/alex"})
				got, err := r.resolve(env)
				require.NoError(t, err)
				assert.Equal(t, r.fallback, got)
			})

			t.Run("empty_falls_back", func(t *testing.T) {
				env := basedir.NewEnvironment(map[string]string{
					"HOME":     "/home/alex",
					r.variable: "",
				})
				got, err := r.resolve(env)
				require.NoError(t, err)
				assert.Equal(t, r.fallback, got)
			})

			t.Run("relative_falls_back", func(t *testing.T) {
				env := basedir.NewEnvironment(map[string]string{
					"HOME":     "/home/alex",
					r.variable: "relative/dir",
				})
				got, err := r.resolve(env)
				require.NoError(t, err)
				assert.Equal(t, r.fallback, got)
			})

			t.Run("tilde_is_not_absolute", func(t *testing.T) {
				env := basedir.NewEnvironment(map[string]string{
					"HOME":     "/home/alex",
					r.variable: "~/dir",
				})
				got, err := r.resolve(env)
				require.NoError(t, err)
				assert.Equal(t, r.fallback, got)
			})

			t.Run("unset_without_home_fails", func(t *testing.T) {
				_, err := r.resolve(basedir.NewEnvironment(nil))
				require.Error(t, err)
				assert.True(t, errors.IsErrorCode(err, errors.ErrNoHome))
			})
		})
	}
}

func TestRuntimeDir(t *testing.T) {
	tests := []struct {
		name   string
		env    map[string]string
		want   string
		wantOK bool
	}{
		{
			name:   "set_absolute",
			env:    map[string]string{"XDG_RUNTIME_DIR": "/run/user/1000"},
			want:   "/run/user/1000",
			wantOK: true,
		},
		{
			name:   "trailing_slash_cleaned",
			env:    map[string]string{"XDG_RUNTIME_DIR": "/run/user/1000/"},
			want:   "/run/user/1000",
			wantOK: true,
		},
		{
			name:   "unset",
			env:    map[string]string{"HOME": "/home/alex"},
			wantOK: false,
		},
		{
			name:   "empty",
			env:    map[string]string{"XDG_RUNTIME_DIR": ""},
			wantOK: false,
		},
		{
			name:   "relative_is_invalid",
			env:    map[string]string{"XDG_RUNTIME_DIR": "run/user/1000"},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := basedir.RuntimeDir(basedir.NewEnvironment(tt.env))
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDataDirs(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		want    []string
		wantErr bool
	}{
		{
			name: "unset_uses_spec_defaults",
			env:  map[string]string{"HOME": "/home/alex"},
			want: []string{"/home/alex/.local/share", "/usr/local/share", "/usr/share"},
		},
		{
			name: "empty_uses_spec_defaults",
			env: map[string]string{
				"HOME":          "/home/alex",
				"XDG_DATA_DIRS": "",
			},
			want: []string{"/home/alex/.local/share", "/usr/local/share", "/usr/share"},
		},
		{
			name: "set_list",
			env: map[string]string{
				"HOME":          "/home/alex",
				"XDG_DATA_DIRS": "/opt/share:/srv/share",
			},
			want: []string{"/home/alex/.local/share", "/opt/share", "/srv/share"},
		},
		{
			name: "trailing_separators_cleaned",
			env: map[string]string{
				"HOME":          "/home/alex",
				"XDG_DATA_DIRS": "/usr/local/share/:/usr/share/",
			},
			want: []string{"/home/alex/.local/share", "/usr/local/share", "/usr/share"},
		},
		{
			name: "home_dedup_when_listed",
			env: map[string]string{
				"HOME":          "/home/alex",
				"XDG_DATA_DIRS": "/home/alex/.local/share:/usr/share",
			},
			want: []string{"/home/alex/.local/share", "/usr/share"},
		},
		{
			name: "custom_data_home_prepended",
			env: map[string]string{
				"HOME":          "/home/alex",
				"XDG_DATA_HOME": "/custom/data",
				"XDG_DATA_DIRS": "/usr/share",
			},
			want: []string{"/custom/data", "/usr/share"},
		},
		{
			name: "all_entries_invalid_leaves_home_only",
			env: map[string]string{
				"HOME":          "/home/alex",
				"XDG_DATA_DIRS": "relative:also/relative",
			},
			want: []string{"/home/alex/.local/share"},
		},
		{
			name:    "no_home_fails",
			env:     map[string]string{"XDG_DATA_DIRS": "/usr/share"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := basedir.DataDirs(basedir.NewEnvironment(tt.env))

			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsErrorCode(err, errors.ErrNoHome))
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConfigDirs(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want []string
	}{
		{
			name: "unset_uses_spec_default",
			env:  map[string]string{"HOME": "/home/alex"},
			want: []string{"/home/alex/.config", "/etc/xdg"},
		},
		{
			// The worked example: relative entries dropped, exact
			// duplicates collapsed to their first occurrence.
			name: "relative_dropped_duplicate_collapsed",
			env: map[string]string{
				"HOME":            "/home/alex",
				"XDG_CONFIG_DIRS": "/etc/xdg:relative/bad:/etc/xdg",
			},
			want: []string{"/home/alex/.config", "/etc/xdg"},
		},
		{
			name: "empty_entries_skipped",
			env: map[string]string{
				"HOME":            "/home/alex",
				"XDG_CONFIG_DIRS": ":/etc/xdg::/opt/etc/xdg:",
			},
			want: []string{"/home/alex/.config", "/etc/xdg", "/opt/etc/xdg"},
		},
		{
			name: "order_preserved",
			env: map[string]string{
				"HOME":            "/home/alex",
				"XDG_CONFIG_DIRS": "/b:/a:/c",
			},
			want: []string{"/home/alex/.config", "/b", "/a", "/c"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := basedir.ConfigDirs(basedir.NewEnvironment(tt.env))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolve(t *testing.T) {
	t.Run("defaults_only", func(t *testing.T) {
		env := basedir.NewEnvironment(map[string]string{"HOME": "/home/alex"})

		dirs, err := basedir.Resolve(env)
		require.NoError(t, err)

		assert.Equal(t, "/home/alex/.local/share", dirs.DataHome)
		assert.Equal(t, "/home/alex/.config", dirs.ConfigHome)
		assert.Equal(t, "/home/alex/.local/state", dirs.StateHome)
		assert.Equal(t, "/home/alex/.cache", dirs.CacheHome)
		assert.Empty(t, dirs.RuntimeDir)
		assert.Equal(t, []string{"/home/alex/.local/share", "/usr/local/share", "/usr/share"}, dirs.DataDirs)
		assert.Equal(t, []string{"/home/alex/.config", "/etc/xdg"}, dirs.ConfigDirs)

		_, ok := dirs.Runtime()
		assert.False(t, ok)
	})

	t.Run("fully_specified", func(t *testing.T) {
		env := basedir.NewEnvironment(map[string]string{
			"HOME":            "/home/alex",
			"XDG_DATA_HOME":   "/d",
			"XDG_CONFIG_HOME": "/c",
			"XDG_STATE_HOME":  "/s",
			"XDG_CACHE_HOME":  "/k",
			"XDG_RUNTIME_DIR": "/run/user/1000",
			"XDG_DATA_DIRS":   "/dd1:/dd2",
			"XDG_CONFIG_DIRS": "/cd1",
		})

		dirs, err := basedir.Resolve(env)
		require.NoError(t, err)

		assert.Equal(t, &basedir.Directories{
			DataHome:   "/d",
			ConfigHome: "/c",
			StateHome:  "/s",
			CacheHome:  "/k",
			RuntimeDir: "/run/user/1000",
			DataDirs:   []string{"/d", "/dd1", "/dd2"},
			ConfigDirs: []string{"/c", "/cd1"},
		}, dirs)

		rt, ok := dirs.Runtime()
		assert.True(t, ok)
		assert.Equal(t, "/run/user/1000", rt)
	})

	t.Run("no_home_needed_when_everything_set", func(t *testing.T) {
		env := basedir.NewEnvironment(map[string]string{
			"XDG_DATA_HOME":   "/d",
			"XDG_CONFIG_HOME": "/c",
			"XDG_STATE_HOME":  "/s",
			"XDG_CACHE_HOME":  "/k",
		})

		dirs, err := basedir.Resolve(env)
		require.NoError(t, err)
		assert.Equal(t, "/d", dirs.DataHome)
		assert.Equal(t, "/k", dirs.CacheHome)
	})

	t.Run("no_home_fails_when_fallback_needed", func(t *testing.T) {
		env := basedir.NewEnvironment(map[string]string{
			"XDG_DATA_HOME": "/d",
			// config home unset, so HOME is required
		})

		_, err := basedir.Resolve(env)
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrNoHome))
	})

	t.Run("idempotent", func(t *testing.T) {
		env := basedir.NewEnvironment(map[string]string{
			"HOME":            "/home/alex",
			"XDG_DATA_DIRS":   "/opt/share:bad:/opt/share",
			"XDG_RUNTIME_DIR": "/run/user/1000",
		})

		first, err := basedir.Resolve(env)
		require.NoError(t, err)
		second, err := basedir.Resolve(env)
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})
}
