package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"gitlab.com/tinyland/lab/contrail/pkg/theme"
)

// ErrUnknownTheme reports a global.theme naming no built-in palette.
var ErrUnknownTheme = errors.New("unknown theme")

// Format is a configuration file syntax.
type Format int

const (
	FormatTOML Format = iota
	FormatYAML
)

// FormatFor picks the syntax from a file extension. Anything other than
// .yaml or .yml is TOML.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatTOML
	}
}

// Load reads configuration from the standard config path.
// Search order:
//  1. $XDG_CONFIG_HOME/contrail/config.toml (then config.yaml)
//  2. ~/.config/contrail/config.toml (then config.yaml)
//
// If no file exists, returns the defaults.
func Load() (*Tree, error) {
	for _, p := range configSearchPaths() {
		if _, err := os.Stat(p); err == nil {
			return LoadFromFile(p)
		}
	}
	return Build(nil)
}

// LoadFromFile reads configuration from a specific file path. A missing
// file yields the defaults.
func LoadFromFile(path string) (*Tree, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Build(nil)
		}
		return nil, err
	}
	defer f.Close()
	return LoadFromReader(f, FormatFor(path))
}

// LoadFromReader decodes a configuration file and layers it over the
// defaults.
func LoadFromReader(r io.Reader, format Format) (*Tree, error) {
	user, err := decode(r, format)
	if err != nil {
		return nil, err
	}
	return Build(user)
}

// Build merges, from lowest to highest priority: the defaults, the palette
// named by global.theme, the user values and environment overrides.
func Build(user map[string]any) (*Tree, error) {
	top := New(user)
	applyEnvOverrides(top)

	layers := []map[string]any{Defaults()}

	name, ok, err := top.String("global.theme")
	if err != nil {
		return nil, err
	}
	if ok && name != "" {
		p, found := theme.Lookup(name)
		if !found {
			return nil, &KeyError{Key: "global.theme", Err: fmt.Errorf("%w %q", ErrUnknownTheme, name)}
		}
		layers = append(layers, p.Values())
	}

	layers = append(layers, top.root)
	return Merge(layers...), nil
}

// Generate writes the defaults to path unless a file already exists there.
// It reports whether a file was created.
func Generate(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("create config directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return false, err
	}
	defer f.Close()

	if err := encode(f, FormatFor(path), Defaults()); err != nil {
		return false, fmt.Errorf("write %s: %w", path, err)
	}
	return true, nil
}

func decode(r io.Reader, format Format) (map[string]any, error) {
	values := map[string]any{}
	switch format {
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&values); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parse YAML: %w", err)
		}
	default:
		if _, err := toml.NewDecoder(r).Decode(&values); err != nil {
			return nil, fmt.Errorf("parse TOML: %w", err)
		}
	}
	return values, nil
}

func encode(w io.Writer, format Format, values map[string]any) error {
	if format == FormatYAML {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(values); err != nil {
			return err
		}
		return enc.Close()
	}
	return toml.NewEncoder(w).Encode(values)
}

// applyEnvOverrides checks environment variables and overrides config values.
func applyEnvOverrides(t *Tree) {
	if v := os.Getenv("CONTRAIL_THEME"); v != "" {
		t.Set("global.theme", v)
	}
	if v := os.Getenv("CONTRAIL_SHELL"); v != "" {
		t.Set("global.shell", v)
	}
	if v := os.Getenv("CONTRAIL_SEGMENTS"); v != "" {
		var names []string
		for _, name := range strings.Split(v, ",") {
			if name = strings.TrimSpace(name); name != "" {
				names = append(names, name)
			}
		}
		t.Set("global.segments", names)
	}
}

// configSearchPaths returns the ordered list of config file paths to try.
func configSearchPaths() []string {
	home, _ := os.UserHomeDir()
	dirs := []string{filepath.Join(xdgConfigHome(home), "contrail")}

	// If XDG_CONFIG_HOME was explicitly set, also try the fallback default.
	defaultDir := filepath.Join(home, ".config", "contrail")
	if dirs[0] != defaultDir {
		dirs = append(dirs, defaultDir)
	}

	var paths []string
	for _, dir := range dirs {
		paths = append(paths,
			filepath.Join(dir, "config.toml"),
			filepath.Join(dir, "config.yaml"),
		)
	}
	return paths
}

// DefaultPath returns the first search path, where --generate-config writes
// when no --config is given.
func DefaultPath() string {
	return configSearchPaths()[0]
}

// xdgConfigHome returns XDG_CONFIG_HOME or ~/.config as fallback.
func xdgConfigHome(home string) string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	return filepath.Join(home, ".config")
}
