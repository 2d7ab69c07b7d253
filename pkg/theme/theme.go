// Package theme provides built-in prompt palettes. A palette is a layer of
// configuration values merged between the built-in defaults and the user's
// configuration file, selected with global.theme.
package theme

import (
	"sort"
	"strings"
)

// Palette holds the colors a theme assigns to the prompt. Colors use any
// form accepted by the color parser; the built-ins use #rrggbb.
type Palette struct {
	Name string

	Text string // segment foreground
	Base string // default segment background

	Directory string // directory segment background
	VCS       string // git segment background

	Success string // exit_code and prompt background after exit status 0
	Error   string // exit_code and prompt background after a failure
}

var registry = map[string]Palette{}

func init() {
	thRegisterBuiltins()
}

// Lookup returns the named palette. Names are case-insensitive.
func Lookup(name string) (Palette, bool) {
	p, ok := registry[strings.ToLower(name)]
	return p, ok
}

// Names returns all palette names sorted alphabetically.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Values returns the palette as a configuration layer.
func (p Palette) Values() map[string]any {
	status := func() map[string]any {
		return map[string]any{
			"style_success": map[string]any{"background": p.Success},
			"style_error":   map[string]any{"background": p.Error},
		}
	}
	return map[string]any{
		"global": map[string]any{
			"foreground": p.Text,
			"background": p.Base,
		},
		"segments": map[string]any{
			"directory": map[string]any{
				"style": map[string]any{"background": p.Directory},
			},
			"git": map[string]any{
				"style": map[string]any{"background": p.VCS},
			},
			"exit_code": status(),
			"prompt":    status(),
		},
	}
}

func thRegister(p Palette) {
	registry[strings.ToLower(p.Name)] = p
}
