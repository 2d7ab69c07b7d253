package terminal

import "os"

// Capabilities summarizes what the prompt may emit for the current session.
type Capabilities struct {
	Term      Terminal // Detected terminal emulator
	TrueColor bool     // 24-bit color support
	Mux       bool     // Inside tmux or screen
}

// DetectCapabilities inspects the process environment.
func DetectCapabilities() Capabilities {
	return DetectCapabilitiesFrom(os.Getenv)
}

// DetectCapabilitiesFrom inspects the environment exposed by getenv.
func DetectCapabilitiesFrom(getenv func(string) string) Capabilities {
	term := Detect(getenv)

	// Either the emulator is known to support it, or COLORTERM says so.
	trueColor := term.SupportsTrueColor()
	if !trueColor {
		switch getenv("COLORTERM") {
		case "truecolor", "24bit":
			trueColor = true
		}
	}

	return Capabilities{
		Term:      term,
		TrueColor: trueColor,
		Mux:       getenv("TMUX") != "" || getenv("STY") != "",
	}
}
