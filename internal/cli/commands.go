// Package cli implements the goxdg command tree. Commands are thin:
// resolution lives in pkg/basedir, directory creation and lookup in
// pkg/resource, and this package only wires flags, settings and output
// formats around them.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/lengau/goxdg/internal/version"
	"github.com/lengau/goxdg/pkg/basedir"
	"github.com/lengau/goxdg/pkg/config"
	"github.com/lengau/goxdg/pkg/errors"
	"github.com/lengau/goxdg/pkg/logging"
	"github.com/lengau/goxdg/pkg/resource"
	"github.com/lengau/goxdg/pkg/ui"
)

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	var (
		verbosity  int
		dryRun     bool
		formatFlag string
		appFlag    string
	)

	rootCmd := &cobra.Command{
		Use:   "goxdg",
		Short: "Resolve XDG base directories",
		Long: `goxdg resolves the XDG base directories for the current environment:
where user data, configuration, state, cache and runtime files belong,
and which system directories are searched after them.

Values come from the XDG_* environment variables when they hold
absolute paths; anything else falls back to the defaults published in
the freedesktop.org Base Directory specification. XDG_RUNTIME_DIR is
the exception: it has no fallback and is reported as unset when the
session does not provide it.`,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Setup logging based on verbosity
			logging.SetupLogger(verbosity)
			logging.LogCommand(cmd.Name(), args)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	// Global flags
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "Preview changes without executing them")
	rootCmd.PersistentFlags().StringVar(&formatFlag, "format", "", "Output format: auto, term, text, json, yaml or toml")
	rootCmd.PersistentFlags().StringVar(&appFlag, "app", "", "Application name joined in front of sub-paths")

	// Add all commands
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newResolveCmd())
	rootCmd.AddCommand(newEnsureCmd())
	rootCmd.AddCommand(newLocateCmd())

	return rootCmd
}

// loadSettings merges the layered configuration with the persistent
// flags; a flag given on the command line beats every config source.
func loadSettings(cmd *cobra.Command) (*config.Settings, error) {
	settings, err := config.Load()
	if err != nil {
		return nil, err
	}

	flags := cmd.Root().PersistentFlags()
	if format, _ := flags.GetString("format"); format != "" {
		settings.Format = format
	}
	if app, _ := flags.GetString("app"); app != "" {
		settings.App = app
	}

	return settings, nil
}

// outputFormat turns the format setting into a concrete render format.
// The color setting steers auto-detection only; an explicit format is
// always respected as given.
func outputFormat(settings *config.Settings) (ui.Format, error) {
	format, err := ui.ParseFormat(settings.Format)
	if err != nil {
		return ui.FormatAuto, errors.Wrap(err, errors.ErrInvalidInput, "invalid output format")
	}

	if format == ui.FormatAuto {
		switch settings.Color {
		case "always":
			return ui.FormatTerminal, nil
		case "never":
			return ui.FormatText, nil
		}
	}

	return format.Resolve(os.Stdout), nil
}

// subPath prepends the configured application name to the user-supplied
// sub-path elements.
func subPath(settings *config.Settings, args []string) []string {
	if settings.App == "" {
		return args
	}
	return append([]string{settings.App}, args...)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including commit hash and build date`,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "goxdg version %s\n", version.Version)
			if version.Commit != "" {
				fmt.Fprintf(out, "Commit: %s\n", version.Commit)
			}
			if version.Date != "" {
				fmt.Fprintf(out, "Built:  %s\n", version.Date)
			}
		},
	}
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show every resolved base directory",
		Long: `List resolves the complete base directory set from the current
environment and prints it: the four user homes, the runtime directory
when the session provides one, and the data and config search paths in
preference order.`,
		Example: `  # Human-readable listing
  goxdg list

  # Machine-readable variants
  goxdg list --format json
  goxdg list --format toml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			format, err := outputFormat(settings)
			if err != nil {
				return err
			}

			dirs, err := basedir.Current()
			if err != nil {
				return err
			}

			return renderDirectories(cmd.OutOrStdout(), dirs, format)
		},
	}
}

// resolve command argument names, mapped to their output keys.
var resolveKeys = map[string]string{
	"data-home":   "data_home",
	"config-home": "config_home",
	"state-home":  "state_home",
	"cache-home":  "cache_home",
	"runtime-dir": "runtime_dir",
	"data-dirs":   "data_dirs",
	"config-dirs": "config_dirs",
}

func newResolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <directory>",
		Short: "Print a single resolved directory",
		Long: `Resolve prints one base directory or search path. Search paths print
one entry per line in text output.

Requesting runtime-dir fails when the session manager has not provided
one; goxdg never invents a runtime directory.`,
		ValidArgs: []string{
			"data-home", "config-home", "state-home", "cache-home",
			"runtime-dir", "data-dirs", "config-dirs",
		},
		Args: cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		Example: `  # Where does user configuration belong?
  goxdg resolve config-home

  # Full config search path, one per line
  goxdg resolve config-dirs`,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			format, err := outputFormat(settings)
			if err != nil {
				return err
			}

			env := basedir.OSEnvironment()
			name := args[0]

			var value interface{}
			switch name {
			case "data-home":
				value, err = basedir.DataHome(env)
			case "config-home":
				value, err = basedir.ConfigHome(env)
			case "state-home":
				value, err = basedir.StateHome(env)
			case "cache-home":
				value, err = basedir.CacheHome(env)
			case "runtime-dir":
				dir, ok := basedir.RuntimeDir(env)
				if !ok {
					return errors.New(errors.ErrRuntimeUnset,
						"XDG_RUNTIME_DIR is not set to an absolute path")
				}
				value = dir
			case "data-dirs":
				value, err = basedir.DataDirs(env)
			case "config-dirs":
				value, err = basedir.ConfigDirs(env)
			}
			if err != nil {
				return err
			}

			return renderValue(cmd.OutOrStdout(), resolveKeys[name], value, format)
		},
	}
}

func newEnsureCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ensure <kind> [subpath...]",
		Short: "Create an application directory under a base directory",
		Long: `Ensure creates a subdirectory (parents included) under the chosen base
directory and prints the resulting path. The sub-path must stay inside
the base directory.

Kind runtime requires the session to provide XDG_RUNTIME_DIR and
creates the directory with owner-only permissions.`,
		ValidArgs: []string{"data", "config", "state", "cache", "runtime"},
		Args:      cobra.MinimumNArgs(1),
		Example: `  # ~/.local/share/myapp/themes
  goxdg --app myapp ensure data themes

  # Preview without creating
  goxdg ensure cache myapp --dry-run`,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			format, err := outputFormat(settings)
			if err != nil {
				return err
			}
			dryRun, _ := cmd.Root().PersistentFlags().GetBool("dry-run")

			loc, err := resource.Current()
			if err != nil {
				return err
			}

			kind := args[0]
			sub := subPath(settings, args[1:])

			var path string
			if dryRun {
				path, err = ensureTarget(loc, kind, sub)
			} else {
				path, err = ensureDir(loc, kind, sub)
			}
			if err != nil {
				return err
			}

			log.Info().
				Str("kind", kind).
				Str("path", path).
				Bool("dry_run", dryRun).
				Msg("Ensured directory")

			return renderEnsured(cmd.OutOrStdout(), path, dryRun, format)
		},
	}
}

// ensureDir creates the sub-path under the base directory of the given kind.
func ensureDir(loc *resource.Locator, kind string, sub []string) (string, error) {
	switch kind {
	case "data":
		return loc.EnsureData(sub...)
	case "config":
		return loc.EnsureConfig(sub...)
	case "state":
		return loc.EnsureState(sub...)
	case "cache":
		return loc.EnsureCache(sub...)
	case "runtime":
		return loc.EnsureRuntime(sub...)
	}
	return "", errors.Newf(errors.ErrInvalidInput, "unknown directory kind: %s", kind)
}

// ensureTarget computes the path ensureDir would create, without
// creating it.
func ensureTarget(loc *resource.Locator, kind string, sub []string) (string, error) {
	dirs := loc.Directories()

	var base string
	switch kind {
	case "data":
		base = dirs.DataHome
	case "config":
		base = dirs.ConfigHome
	case "state":
		base = dirs.StateHome
	case "cache":
		base = dirs.CacheHome
	case "runtime":
		runtime, ok := dirs.Runtime()
		if !ok {
			return "", errors.New(errors.ErrRuntimeUnset,
				"XDG_RUNTIME_DIR is not set to an absolute path")
		}
		base = runtime
	default:
		return "", errors.Newf(errors.ErrInvalidInput, "unknown directory kind: %s", kind)
	}

	return resource.Path(base, sub...)
}

func newLocateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "locate <kind> [subpath...]",
		Short: "Find existing resources across the search path",
		Long: `Locate prints every existing match for the sub-path across the data or
config search path, highest priority first. The home directory entry is
searched before the system entries.`,
		ValidArgs: []string{"data", "config"},
		Args:      cobra.MinimumNArgs(1),
		Example: `  # All existing myapp config directories, highest priority first
  goxdg --app myapp locate config

  # Icons on the data search path
  goxdg locate data icons hicolor`,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			format, err := outputFormat(settings)
			if err != nil {
				return err
			}

			loc, err := resource.Current()
			if err != nil {
				return err
			}

			kind := args[0]
			sub := subPath(settings, args[1:])

			var matches []string
			switch kind {
			case "data":
				matches, err = loc.FindData(sub...)
			case "config":
				matches, err = loc.FindConfig(sub...)
			default:
				return errors.Newf(errors.ErrInvalidInput, "unknown directory kind: %s", kind)
			}
			if err != nil {
				return err
			}

			if len(matches) == 0 {
				target := filepath.Join(sub...)
				if target == "" {
					return errors.Newf(errors.ErrNotFound,
						"no existing %s directories on the search path", kind)
				}
				return errors.Newf(errors.ErrNotFound,
					"no existing %s resource matches %s", kind, target)
			}

			return renderValue(cmd.OutOrStdout(), "matches", matches, format)
		},
	}
}
