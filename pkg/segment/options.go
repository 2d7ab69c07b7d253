package segment

import (
	"gitlab.com/tinyland/lab/contrail/pkg/config"
	"gitlab.com/tinyland/lab/contrail/pkg/style"
)

// Options is the resolved configuration of one segment. It is built once per
// render and not modified afterwards.
type Options struct {
	Name string

	// Output replaces whatever the provider would compute. It is read from
	// segments.<name>.output only.
	Output    string
	HasOutput bool

	PaddingLeft  string
	PaddingRight string
	Separator    string

	// Style is the segment-local style. Fields left unset inherit the
	// global style when the effective style is computed.
	Style style.Style
}

// Resolver turns configuration keys into Options and styles.
type Resolver struct {
	tree   *config.Tree
	global style.Style
}

// NewResolver parses the global style once so every segment can fall back
// to it.
func NewResolver(tree *config.Tree) (*Resolver, error) {
	r := &Resolver{tree: tree}

	global, err := r.sgStyle("global.foreground", "global.background", "global.style")
	if err != nil {
		return nil, err
	}
	r.global = global
	return r, nil
}

// Tree returns the configuration the resolver reads from.
func (r *Resolver) Tree() *config.Tree {
	return r.tree
}

// Effective fills the unset fields of local from the global style.
func (r *Resolver) Effective(local style.Style) style.Style {
	return local.Fallback(r.global)
}

// Resolve reads the options of the named segment. Padding and separator fall
// through segments.<name>.<field>, then global.<field>, then a single space
// for padding and nothing for the separator.
func (r *Resolver) Resolve(name string) (Options, error) {
	prefix := "segments." + name
	if err := r.sgRequireTable(prefix); err != nil {
		return Options{}, err
	}

	opts := Options{Name: name}
	var err error

	if opts.PaddingLeft, err = r.sgLayeredString(name, "padding_left", " "); err != nil {
		return Options{}, err
	}
	if opts.PaddingRight, err = r.sgLayeredString(name, "padding_right", " "); err != nil {
		return Options{}, err
	}
	if opts.Separator, err = r.sgLayeredString(name, "separator", ""); err != nil {
		return Options{}, err
	}
	if opts.Output, opts.HasOutput, err = r.tree.String(prefix + ".output"); err != nil {
		return Options{}, err
	}
	if opts.Style, _, err = r.StyleTable(prefix + ".style"); err != nil {
		return Options{}, err
	}
	return opts, nil
}

// StyleTable parses a table holding foreground, background and
// text_attributes keys, such as segments.git.style or
// segments.exit_code.style_error. It reports whether the table exists.
func (r *Resolver) StyleTable(key string) (style.Style, bool, error) {
	if _, ok := r.tree.Lookup(key); !ok {
		return style.Style{}, false, nil
	}
	if err := r.sgRequireTable(key); err != nil {
		return style.Style{}, true, err
	}
	s, err := r.sgStyle(key+".foreground", key+".background", key+".text_attributes")
	return s, true, err
}

// Color parses the color at key. A missing key yields the zero Color.
// Strings go through style.ParseColor, integers are palette indexes and a
// three-integer array is an RGB triple.
func (r *Resolver) Color(key string) (style.Color, error) {
	v, ok := r.tree.Lookup(key)
	if !ok {
		return style.Color{}, nil
	}

	var (
		c   style.Color
		err error
	)
	switch val := v.(type) {
	case string:
		c, err = style.ParseColor(val)
	case int64:
		c, err = style.ColorFromInt(val)
	case []any:
		ns, _, kerr := r.tree.Ints(key)
		if kerr != nil {
			return style.Color{}, kerr
		}
		c, err = style.ColorFromInts(ns)
	default:
		return style.Color{}, &config.KindError{
			Key:  key,
			Want: []config.Kind{config.KindString, config.KindInteger, config.KindArray},
			Got:  config.KindOf(v),
		}
	}
	if err != nil {
		return style.Color{}, &config.KeyError{Key: key, Err: err}
	}
	return c, nil
}

// Attributes parses a single attribute name or an array of names at key. It
// reports whether the key was present.
func (r *Resolver) Attributes(key string) (style.Attributes, bool, error) {
	v, ok := r.tree.Lookup(key)
	if !ok {
		return 0, false, nil
	}

	var tokens []string
	switch val := v.(type) {
	case string:
		tokens = []string{val}
	case []any:
		ss, _, err := r.tree.Strings(key)
		if err != nil {
			return 0, true, err
		}
		tokens = ss
	default:
		return 0, true, &config.KindError{
			Key:  key,
			Want: []config.Kind{config.KindString, config.KindArray},
			Got:  config.KindOf(v),
		}
	}

	a, err := style.ParseAttributes(tokens...)
	if err != nil {
		return 0, true, &config.KeyError{Key: key, Err: err}
	}
	return a, true, nil
}

func (r *Resolver) sgStyle(fgKey, bgKey, attrKey string) (style.Style, error) {
	var s style.Style
	var err error
	if s.Foreground, err = r.Color(fgKey); err != nil {
		return style.Style{}, err
	}
	if s.Background, err = r.Color(bgKey); err != nil {
		return style.Style{}, err
	}
	a, ok, err := r.Attributes(attrKey)
	if err != nil {
		return style.Style{}, err
	}
	if ok {
		s = s.WithAttributes(a)
	}
	return s, nil
}

// sgLayeredString looks up segments.<name>.<field>, then global.<field>.
func (r *Resolver) sgLayeredString(name, field, def string) (string, error) {
	for _, key := range []string{"segments." + name + "." + field, "global." + field} {
		s, ok, err := r.tree.String(key)
		if err != nil {
			return "", err
		}
		if ok {
			return s, nil
		}
	}
	return def, nil
}

// sgRequireTable rejects a key that exists but is not a table.
func (r *Resolver) sgRequireTable(key string) error {
	v, ok := r.tree.Lookup(key)
	if !ok {
		return nil
	}
	if _, isTable := v.(map[string]any); !isTable {
		return &config.KindError{Key: key, Want: []config.Kind{config.KindTable}, Got: config.KindOf(v)}
	}
	return nil
}
