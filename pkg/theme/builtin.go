package theme

// thRegisterBuiltins registers all built-in palettes in the registry.
func thRegisterBuiltins() {
	for _, p := range []Palette{
		thGruvbox(),
		thNord(),
		thCatppuccin(),
		thDracula(),
		thTokyoNight(),
	} {
		thRegister(p)
	}
}

// thGruvbox returns the warm retro Gruvbox palette.
func thGruvbox() Palette {
	return Palette{
		Name:      "gruvbox",
		Text:      "#ebdbb2",
		Base:      "#504945",
		Directory: "#d65d0e",
		VCS:       "#fabd2f",
		Success:   "#b8bb26",
		Error:     "#fb4934",
	}
}

// thNord returns the arctic blue Nord palette.
func thNord() Palette {
	return Palette{
		Name:      "nord",
		Text:      "#eceff4",
		Base:      "#3b4252",
		Directory: "#5e81ac",
		VCS:       "#ebcb8b",
		Success:   "#a3be8c",
		Error:     "#bf616a",
	}
}

// thCatppuccin returns the Catppuccin Mocha palette.
func thCatppuccin() Palette {
	return Palette{
		Name:      "catppuccin",
		Text:      "#cdd6f4",
		Base:      "#313244",
		Directory: "#cba6f7",
		VCS:       "#f9e2af",
		Success:   "#a6e3a1",
		Error:     "#f38ba8",
	}
}

// thDracula returns the Dracula palette.
func thDracula() Palette {
	return Palette{
		Name:      "dracula",
		Text:      "#f8f8f2",
		Base:      "#44475a",
		Directory: "#bd93f9",
		VCS:       "#f1fa8c",
		Success:   "#50fa7b",
		Error:     "#ff5555",
	}
}

// thTokyoNight returns the Tokyo Night palette.
func thTokyoNight() Palette {
	return Palette{
		Name:      "tokyo-night",
		Text:      "#c0caf5",
		Base:      "#292e42",
		Directory: "#7aa2f7",
		VCS:       "#e0af68",
		Success:   "#9ece6a",
		Error:     "#f7768e",
	}
}
