package style

import (
	"strings"
)

// Attributes is a set of text attributes.
type Attributes uint8

const (
	Bold Attributes = 1 << iota
	Dimmed
	Italic
	Underline
	Blink
	Reverse
	Hidden
	Strikethrough
)

// stAttributeNames is in bit order.
var stAttributeNames = [...]string{
	"bold", "dimmed", "italic", "underline",
	"blink", "reverse", "hidden", "strikethrough",
}

// Has reports whether every attribute in f is set in a.
func (a Attributes) Has(f Attributes) bool {
	return a&f == f
}

// String returns the set attribute names joined by "|", or "none".
func (a Attributes) String() string {
	var names []string
	for i, name := range stAttributeNames {
		if a.Has(1 << i) {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, "|")
}

// ParseAttributes parses attribute names case-insensitively. Empty tokens
// and the words "default", "normal" and "none" contribute nothing, so an
// empty or missing value is the empty set. Repeating a name is harmless.
func ParseAttributes(tokens ...string) (Attributes, error) {
	var a Attributes
	for _, tok := range tokens {
		f, err := stParseAttribute(tok)
		if err != nil {
			return 0, err
		}
		a |= f
	}
	return a, nil
}

func stParseAttribute(tok string) (Attributes, error) {
	switch lower := strings.ToLower(strings.TrimSpace(tok)); lower {
	case "", "default", "normal", "none":
		return 0, nil
	default:
		for i, name := range stAttributeNames {
			if lower == name {
				return 1 << i, nil
			}
		}
		return 0, stError(tok, ErrNoSuchMatch)
	}
}
