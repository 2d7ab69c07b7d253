// Package terminal identifies the terminal emulator from the environment and
// decides whether 24-bit color escapes can be emitted. Detection only inspects
// environment variables: the prompt is captured by the shell, so stdout is
// never the terminal itself.
package terminal

import (
	"strings"
)

// Terminal identifies the terminal emulator in use.
type Terminal int

const (
	TermUnknown Terminal = iota
	TermGhostty
	TermKitty
	TermWezTerm
	TermITerm2
	TermAlacritty
	TermTilix
	TermGNOME
	TermTmux
	TermScreen
	TermVSCode
	TermEmacs
	TermGeneric
)

var terminalNames = [...]string{
	TermUnknown:   "unknown",
	TermGhostty:   "ghostty",
	TermKitty:     "kitty",
	TermWezTerm:   "wezterm",
	TermITerm2:    "iterm2",
	TermAlacritty: "alacritty",
	TermTilix:     "tilix",
	TermGNOME:     "gnome-terminal",
	TermTmux:      "tmux",
	TermScreen:    "screen",
	TermVSCode:    "vscode",
	TermEmacs:     "emacs",
	TermGeneric:   "generic",
}

// String returns the human-readable name of the terminal.
func (t Terminal) String() string {
	if t >= 0 && int(t) < len(terminalNames) {
		return terminalNames[t]
	}
	return "unknown"
}

// SupportsTrueColor reports whether the emulator renders 24-bit color. Multiplexers
// report false; COLORTERM decides for them.
func (t Terminal) SupportsTrueColor() bool {
	switch t {
	case TermGhostty, TermKitty, TermWezTerm, TermITerm2,
		TermAlacritty, TermTilix, TermGNOME, TermVSCode:
		return true
	default:
		return false
	}
}

// termPrograms maps lowercased TERM_PROGRAM values.
var termPrograms = map[string]Terminal{
	"ghostty":   TermGhostty,
	"kitty":     TermKitty,
	"wezterm":   TermWezTerm,
	"iterm.app": TermITerm2,
	"vscode":    TermVSCode,
	"alacritty": TermAlacritty,
	"tmux":      TermTmux,
}

// termMarkers are emulator-specific variables whose presence alone is enough.
var termMarkers = []struct {
	env  string
	term Terminal
}{
	{"KITTY_WINDOW_ID", TermKitty},
	{"ITERM_SESSION_ID", TermITerm2},
	{"WEZTERM_EXECUTABLE", TermWezTerm},
}

// Detect identifies the terminal emulator using getenv. Signals are
// consulted from most to least reliable:
//
//  1. TERM_PROGRAM
//  2. TERM (xterm-ghostty, xterm-kitty, alacritty*, screen* with STY)
//  3. emulator-specific variables (KITTY_WINDOW_ID, ITERM_SESSION_ID, ...)
//  4. VTE_VERSION for VTE-based terminals
//  5. INSIDE_EMACS
//  6. TMUX / STY for multiplexers
//  7. LC_TERMINAL=iTerm2 (forwarded over SSH)
//
// Anything else is TermGeneric.
func Detect(getenv func(string) string) Terminal {
	if term, ok := termPrograms[strings.ToLower(getenv("TERM_PROGRAM"))]; ok {
		return term
	}

	switch term := getenv("TERM"); {
	case term == "xterm-ghostty":
		return TermGhostty
	case term == "xterm-kitty":
		return TermKitty
	case strings.HasPrefix(term, "alacritty"):
		return TermAlacritty
	case strings.HasPrefix(term, "screen") && getenv("STY") != "":
		return TermScreen
	}

	for _, m := range termMarkers {
		if getenv(m.env) != "" {
			return m.term
		}
	}

	if getenv("VTE_VERSION") != "" {
		if getenv("TILIX_ID") != "" {
			return TermTilix
		}
		return TermGNOME
	}

	switch {
	case getenv("INSIDE_EMACS") != "":
		return TermEmacs
	case getenv("TMUX") != "":
		return TermTmux
	case getenv("STY") != "":
		return TermScreen
	case getenv("LC_TERMINAL") == "iTerm2":
		return TermITerm2
	}
	return TermGeneric
}
