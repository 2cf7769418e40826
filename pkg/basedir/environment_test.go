package basedir_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lengau/goxdg/pkg/basedir"
)

func TestNewEnvironment(t *testing.T) {
	t.Run("lookup_distinguishes_empty_from_unset", func(t *testing.T) {
		env := basedir.NewEnvironment(map[string]string{
			"SET":   "value",
			"EMPTY": "",
		})

		got, ok := env.Lookup("SET")
		assert.True(t, ok)
		assert.Equal(t, "value", got)

		got, ok = env.Lookup("EMPTY")
		assert.True(t, ok)
		assert.Empty(t, got)

		_, ok = env.Lookup("UNSET")
		assert.False(t, ok)
	})

	t.Run("get_returns_empty_for_unset", func(t *testing.T) {
		env := basedir.NewEnvironment(map[string]string{"SET": "value"})

		assert.Equal(t, "value", env.Get("SET"))
		assert.Empty(t, env.Get("UNSET"))
	})

	t.Run("nil_map", func(t *testing.T) {
		env := basedir.NewEnvironment(nil)

		_, ok := env.Lookup("HOME")
		assert.False(t, ok)
	})

	t.Run("snapshot_is_detached_from_source_map", func(t *testing.T) {
		source := map[string]string{"HOME": "/home/alex"}
		env := basedir.NewEnvironment(source)

		source["HOME"] = "/home/mallory"
		source["EXTRA"] = "later"

		assert.Equal(t, "/home/alex", env.Get("HOME"))
		_, ok := env.Lookup("EXTRA")
		assert.False(t, ok)
	})
}

func TestOSEnvironment(t *testing.T) {
	t.Run("captures_process_environment", func(t *testing.T) {
		t.Setenv("GOXDG_TEST_MARKER", "captured")

		env := basedir.OSEnvironment()

		got, ok := env.Lookup("GOXDG_TEST_MARKER")
		require.True(t, ok)
		assert.Equal(t, "captured", got)
	})

	t.Run("snapshot_is_detached_from_process", func(t *testing.T) {
		t.Setenv("GOXDG_TEST_MARKER", "before")

		env := basedir.OSEnvironment()
		t.Setenv("GOXDG_TEST_MARKER", "after")

		assert.Equal(t, "before", env.Get("GOXDG_TEST_MARKER"))
	})
}
