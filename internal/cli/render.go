package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/lengau/goxdg/pkg/basedir"
	"github.com/lengau/goxdg/pkg/errors"
	"github.com/lengau/goxdg/pkg/ui"
)

// unsetMarker is printed where the environment provides no runtime
// directory. Machine formats omit the field instead.
const unsetMarker = "(unset)"

// listing order and labels for the directory set.
var directoryRows = []struct {
	label string
	value func(*basedir.Directories) interface{}
}{
	{"data_home", func(d *basedir.Directories) interface{} { return d.DataHome }},
	{"config_home", func(d *basedir.Directories) interface{} { return d.ConfigHome }},
	{"state_home", func(d *basedir.Directories) interface{} { return d.StateHome }},
	{"cache_home", func(d *basedir.Directories) interface{} { return d.CacheHome }},
	{"runtime_dir", func(d *basedir.Directories) interface{} {
		runtime, ok := d.Runtime()
		if !ok {
			return nil
		}
		return runtime
	}},
	{"data_dirs", func(d *basedir.Directories) interface{} { return d.DataDirs }},
	{"config_dirs", func(d *basedir.Directories) interface{} { return d.ConfigDirs }},
}

// renderDirectories prints the full directory set in the given format.
func renderDirectories(w io.Writer, dirs *basedir.Directories, format ui.Format) error {
	switch format {
	case ui.FormatTerminal, ui.FormatText:
		styled := format == ui.FormatTerminal
		for _, row := range directoryRows {
			switch value := row.value(dirs).(type) {
			case nil:
				printRow(w, row.label, unsetMarker, styled, true)
			case string:
				printRow(w, row.label, value, styled, false)
			case []string:
				for _, entry := range value {
					printRow(w, row.label, entry, styled, false)
				}
			}
		}
		return nil
	default:
		return marshal(w, dirs, format)
	}
}

// renderValue prints a single resolved value: a path or a path list.
func renderValue(w io.Writer, key string, value interface{}, format ui.Format) error {
	switch format {
	case ui.FormatTerminal, ui.FormatText:
		styled := format == ui.FormatTerminal
		switch v := value.(type) {
		case string:
			printPath(w, v, styled)
		case []string:
			for _, entry := range v {
				printPath(w, entry, styled)
			}
		}
		return nil
	default:
		return marshal(w, map[string]interface{}{key: value}, format)
	}
}

// renderEnsured prints the path an ensure operation produced (or, in
// dry-run mode, would produce).
func renderEnsured(w io.Writer, path string, dryRun bool, format ui.Format) error {
	switch format {
	case ui.FormatTerminal:
		if dryRun {
			fmt.Fprintf(w, "%s %s\n", ui.PathStyle.Render(path), ui.UnsetStyle.Render("(dry-run)"))
		} else {
			fmt.Fprintln(w, ui.PathStyle.Render(path))
		}
		return nil
	case ui.FormatText:
		fmt.Fprintln(w, path)
		return nil
	default:
		return marshal(w, map[string]interface{}{
			"path":    path,
			"created": !dryRun,
		}, format)
	}
}

func printRow(w io.Writer, label, value string, styled, unset bool) {
	if !styled {
		fmt.Fprintf(w, "%s\t%s\n", label, value)
		return
	}

	rendered := ui.PathStyle.Render(value)
	if unset {
		rendered = ui.UnsetStyle.Render(value)
	}
	fmt.Fprintf(w, "%s %s\n", ui.KeyStyle.Render(fmt.Sprintf("%-12s", label)), rendered)
}

func printPath(w io.Writer, path string, styled bool) {
	if styled {
		fmt.Fprintln(w, ui.PathStyle.Render(path))
		return
	}
	fmt.Fprintln(w, path)
}

// marshal writes the value in one of the machine formats.
func marshal(w io.Writer, value interface{}, format ui.Format) error {
	switch format {
	case ui.FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(value); err != nil {
			return errors.Wrap(err, errors.ErrUnknown, "failed to encode JSON")
		}
		return nil
	case ui.FormatYAML:
		data, err := yaml.Marshal(value)
		if err != nil {
			return errors.Wrap(err, errors.ErrUnknown, "failed to encode YAML")
		}
		_, err = w.Write(data)
		return err
	case ui.FormatTOML:
		data, err := toml.Marshal(value)
		if err != nil {
			return errors.Wrap(err, errors.ErrUnknown, "failed to encode TOML")
		}
		_, err = w.Write(data)
		return err
	default:
		return errors.Newf(errors.ErrInvalidInput, "unsupported output format: %s", format)
	}
}
