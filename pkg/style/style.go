package style

import (
	"fmt"
	"strings"

	"github.com/muesli/termenv"
)

// concealSeq is the SGR "hidden" parameter, which termenv does not define.
const concealSeq = "8"

// Style is an optional foreground, background and attribute set. A zero
// color or HasAttributes == false means the field inherits a default.
type Style struct {
	Foreground    Color
	Background    Color
	Attributes    Attributes
	HasAttributes bool
}

// WithAttributes returns s with its attribute set explicitly set to a.
func (s Style) WithAttributes(a Attributes) Style {
	s.Attributes = a
	s.HasAttributes = true
	return s
}

// Fallback fills every field that s leaves unset from def.
func (s Style) Fallback(def Style) Style {
	if s.Foreground.IsZero() {
		s.Foreground = def.Foreground
	}
	if s.Background.IsZero() {
		s.Background = def.Background
	}
	if !s.HasAttributes {
		s.Attributes = def.Attributes
		s.HasAttributes = def.HasAttributes
	}
	return s
}

// Downsample replaces RGB colors with their nearest 256-palette entries.
func (s Style) Downsample() Style {
	s.Foreground = s.Foreground.Downsample()
	s.Background = s.Background.Downsample()
	return s
}

// IsPlain reports whether s emits no escape codes.
func (s Style) IsPlain() bool {
	return len(s.params()) == 0
}

// Sequences returns the SGR sequences that start and end s. Both are empty
// when s sets nothing.
func (s Style) Sequences() (start, end string) {
	params := s.params()
	if len(params) == 0 {
		return "", ""
	}
	return termenv.CSI + strings.Join(params, ";") + "m", termenv.CSI + termenv.ResetSeq + "m"
}

// Paint wraps text in the sequences of s.
func (s Style) Paint(text string) string {
	start, end := s.Sequences()
	return start + text + end
}

// params lists SGR parameters: attributes first, then foreground, then
// background.
func (s Style) params() []string {
	var params []string
	for _, a := range []struct {
		flag Attributes
		seq  string
	}{
		{Bold, termenv.BoldSeq},
		{Dimmed, termenv.FaintSeq},
		{Italic, termenv.ItalicSeq},
		{Underline, termenv.UnderlineSeq},
		{Blink, termenv.BlinkSeq},
		{Reverse, termenv.ReverseSeq},
		{Hidden, concealSeq},
		{Strikethrough, termenv.CrossOutSeq},
	} {
		if s.Attributes.Has(a.flag) {
			params = append(params, a.seq)
		}
	}
	if seq := s.Foreground.sequence(false); seq != "" {
		params = append(params, seq)
	}
	if seq := s.Background.sequence(true); seq != "" {
		params = append(params, seq)
	}
	return params
}

// sequence returns the SGR parameter for c as a foreground or background.
func (c Color) sequence(bg bool) string {
	switch c.Kind {
	case ColorNamed:
		return termenv.ANSIColor(c.Index).Sequence(bg)
	case ColorIndexed:
		return termenv.ANSI256Color(c.Index).Sequence(bg)
	case ColorRGB:
		prefix := termenv.Foreground
		if bg {
			prefix = termenv.Background
		}
		return fmt.Sprintf("%s;2;%d;%d;%d", prefix, c.R, c.G, c.B)
	default:
		return ""
	}
}
