package terminal

import (
	"testing"
)

// fakeEnv builds a getenv over a fixed set of variables.
func fakeEnv(vars map[string]string) func(string) string {
	return func(key string) string { return vars[key] }
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want Terminal
	}{
		{"ghostty term program", map[string]string{"TERM_PROGRAM": "ghostty"}, TermGhostty},
		{"ghostty term", map[string]string{"TERM": "xterm-ghostty"}, TermGhostty},
		{"kitty term", map[string]string{"TERM": "xterm-kitty"}, TermKitty},
		{"kitty window id", map[string]string{"KITTY_WINDOW_ID": "1"}, TermKitty},
		{"wezterm executable", map[string]string{"WEZTERM_EXECUTABLE": "/usr/bin/wezterm"}, TermWezTerm},
		{"iterm2 term program", map[string]string{"TERM_PROGRAM": "iTerm.app"}, TermITerm2},
		{"iterm2 session id", map[string]string{"ITERM_SESSION_ID": "w0t0p0"}, TermITerm2},
		{"iterm2 over ssh", map[string]string{"LC_TERMINAL": "iTerm2"}, TermITerm2},
		{"alacritty term", map[string]string{"TERM": "alacritty-direct"}, TermAlacritty},
		{"tilix", map[string]string{"VTE_VERSION": "7006", "TILIX_ID": "abc"}, TermTilix},
		{"gnome", map[string]string{"VTE_VERSION": "7006"}, TermGNOME},
		{"vscode", map[string]string{"TERM_PROGRAM": "vscode"}, TermVSCode},
		{"emacs", map[string]string{"INSIDE_EMACS": "vterm"}, TermEmacs},
		{"tmux", map[string]string{"TMUX": "/tmp/tmux-1000/default,1,0"}, TermTmux},
		{"screen", map[string]string{"TERM": "screen-256color", "STY": "1.pts-0"}, TermScreen},
		{"screen term without STY", map[string]string{"TERM": "screen"}, TermGeneric},
		{"generic", map[string]string{"TERM": "xterm-256color"}, TermGeneric},
		{"term program wins over tmux", map[string]string{"TERM_PROGRAM": "kitty", "TMUX": "x"}, TermKitty},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Detect(fakeEnv(tt.env)); got != tt.want {
				t.Errorf("Detect() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTerminal_String(t *testing.T) {
	tests := map[Terminal]string{
		TermGhostty:   "ghostty",
		TermGNOME:     "gnome-terminal",
		TermGeneric:   "generic",
		Terminal(99):  "unknown",
		Terminal(-1):  "unknown",
		TermUnknown:   "unknown",
		TermAlacritty: "alacritty",
	}
	for term, want := range tests {
		if got := term.String(); got != want {
			t.Errorf("Terminal(%d).String() = %q, want %q", int(term), got, want)
		}
	}
}

func TestTerminal_SupportsTrueColor(t *testing.T) {
	yes := []Terminal{TermGhostty, TermKitty, TermWezTerm, TermITerm2,
		TermAlacritty, TermTilix, TermGNOME, TermVSCode}
	no := []Terminal{TermTmux, TermScreen, TermEmacs, TermGeneric, TermUnknown}

	for _, term := range yes {
		if !term.SupportsTrueColor() {
			t.Errorf("%v.SupportsTrueColor() = false, want true", term)
		}
	}
	for _, term := range no {
		if term.SupportsTrueColor() {
			t.Errorf("%v.SupportsTrueColor() = true, want false", term)
		}
	}
}

func TestDetectCapabilities_TrueColor(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want bool
	}{
		{"native", map[string]string{"TERM_PROGRAM": "ghostty"}, true},
		{"colorterm truecolor", map[string]string{"COLORTERM": "truecolor"}, true},
		{"colorterm 24bit", map[string]string{"COLORTERM": "24bit"}, true},
		{"tmux without colorterm", map[string]string{"TMUX": "x"}, false},
		{"plain xterm", map[string]string{"TERM": "xterm-256color"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectCapabilitiesFrom(fakeEnv(tt.env)).TrueColor; got != tt.want {
				t.Errorf("TrueColor = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDetectCapabilities_Mux(t *testing.T) {
	caps := DetectCapabilitiesFrom(fakeEnv(map[string]string{"STY": "1.pts-0"}))
	if !caps.Mux {
		t.Error("caps.Mux = false, want true (screen)")
	}
	if caps.Term != TermScreen {
		t.Errorf("caps.Term = %v, want screen", caps.Term)
	}
}

func TestDetectCapabilities_ProcessEnv(t *testing.T) {
	t.Setenv("TERM_PROGRAM", "WezTerm")
	if caps := DetectCapabilities(); caps.Term != TermWezTerm || !caps.TrueColor {
		t.Errorf("DetectCapabilities() = %+v", caps)
	}
}
