// Package config provides the merged key-value configuration consumed by the
// prompt renderer. Values are addressed by dotted paths such as
// "global.background" or "segments.git.style.foreground".
package config

import (
	"math"
	"strings"
	"time"
)

// Tree is a read-only view of a merged configuration.
type Tree struct {
	root map[string]any
}

// New wraps values in a Tree. Numeric and container types produced by the
// TOML and YAML decoders are normalized to int64, float64, []any and
// map[string]any.
func New(values map[string]any) *Tree {
	root, _ := normalize(values).(map[string]any)
	if root == nil {
		root = map[string]any{}
	}
	return &Tree{root: root}
}

// Lookup returns the value at key.
func (t *Tree) Lookup(key string) (any, bool) {
	var cur any = t.root
	for _, part := range strings.Split(key, ".") {
		table, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = table[part]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// String returns the string at key. A missing key reports ok == false; a
// value of another kind is a *KindError.
func (t *Tree) String(key string) (s string, ok bool, err error) {
	v, ok := t.Lookup(key)
	if !ok {
		return "", false, nil
	}
	s, isString := v.(string)
	if !isString {
		return "", true, &KindError{Key: key, Want: []Kind{KindString}, Got: KindOf(v)}
	}
	return s, true, nil
}

// Int returns the integer at key.
func (t *Tree) Int(key string) (n int64, ok bool, err error) {
	v, ok := t.Lookup(key)
	if !ok {
		return 0, false, nil
	}
	n, isInt := v.(int64)
	if !isInt {
		return 0, true, &KindError{Key: key, Want: []Kind{KindInteger}, Got: KindOf(v)}
	}
	return n, true, nil
}

// Bool returns the boolean at key.
func (t *Tree) Bool(key string) (b bool, ok bool, err error) {
	v, ok := t.Lookup(key)
	if !ok {
		return false, false, nil
	}
	b, isBool := v.(bool)
	if !isBool {
		return false, true, &KindError{Key: key, Want: []Kind{KindBoolean}, Got: KindOf(v)}
	}
	return b, true, nil
}

// Strings returns the array of strings at key. Every element must be a
// string.
func (t *Tree) Strings(key string) (ss []string, ok bool, err error) {
	v, ok := t.Lookup(key)
	if !ok {
		return nil, false, nil
	}
	arr, isArray := v.([]any)
	if !isArray {
		return nil, true, &KindError{Key: key, Want: []Kind{KindArray}, Got: KindOf(v)}
	}
	ss = make([]string, 0, len(arr))
	for _, elem := range arr {
		s, isString := elem.(string)
		if !isString {
			return nil, true, &KindError{Key: key, Want: []Kind{KindString}, Got: KindOf(elem), Element: true}
		}
		ss = append(ss, s)
	}
	return ss, true, nil
}

// Ints returns the array of integers at key.
func (t *Tree) Ints(key string) (ns []int64, ok bool, err error) {
	v, ok := t.Lookup(key)
	if !ok {
		return nil, false, nil
	}
	arr, isArray := v.([]any)
	if !isArray {
		return nil, true, &KindError{Key: key, Want: []Kind{KindArray}, Got: KindOf(v)}
	}
	ns = make([]int64, 0, len(arr))
	for _, elem := range arr {
		n, isInt := elem.(int64)
		if !isInt {
			return nil, true, &KindError{Key: key, Want: []Kind{KindInteger}, Got: KindOf(elem), Element: true}
		}
		ns = append(ns, n)
	}
	return ns, true, nil
}

// Set stores value at key, creating intermediate tables. It exists for
// command-line overrides applied before rendering starts.
func (t *Tree) Set(key string, value any) {
	parts := strings.Split(key, ".")
	table := t.root
	for _, part := range parts[:len(parts)-1] {
		next, ok := table[part].(map[string]any)
		if !ok {
			next = map[string]any{}
			table[part] = next
		}
		table = next
	}
	table[parts[len(parts)-1]] = normalize(value)
}

// Merge layers the given value maps over each other; later layers win.
// Tables merge key by key, every other value (including arrays) replaces.
func Merge(layers ...map[string]any) *Tree {
	out := map[string]any{}
	for _, layer := range layers {
		norm, _ := normalize(layer).(map[string]any)
		out = merge(out, norm)
	}
	return &Tree{root: out}
}

func merge(dst, src map[string]any) map[string]any {
	for k, v := range src {
		if srcTable, ok := v.(map[string]any); ok {
			dstTable, _ := dst[k].(map[string]any)
			if dstTable == nil {
				dstTable = map[string]any{}
			}
			dst[k] = merge(dstTable, srcTable)
			continue
		}
		if arr, ok := v.([]any); ok {
			v = append([]any(nil), arr...)
		}
		dst[k] = v
	}
	return dst
}

// normalize converts decoder-specific types to the canonical set.
func normalize(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, elem := range val {
			out[k] = normalize(elem)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(val))
		for k, elem := range val {
			if ks, ok := k.(string); ok {
				out[ks] = normalize(elem)
			}
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, elem := range val {
			out[i] = normalize(elem)
		}
		return out
	case []string:
		out := make([]any, len(val))
		for i, elem := range val {
			out[i] = elem
		}
		return out
	case int:
		return int64(val)
	case int8:
		return int64(val)
	case int16:
		return int64(val)
	case int32:
		return int64(val)
	case uint8:
		return int64(val)
	case uint16:
		return int64(val)
	case uint32:
		return int64(val)
	case uint:
		return normalize(uint64(val))
	case uint64:
		if val > math.MaxInt64 {
			// Left as is so typed lookups report a kind error.
			return val
		}
		return int64(val)
	case float32:
		return float64(val)
	case time.Time:
		return val
	default:
		return v
	}
}
