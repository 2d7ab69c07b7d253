package config

// Defaults returns the built-in configuration layer, the lowest priority
// layer of every merged Tree.
func Defaults() map[string]any {
	status := func() map[string]any {
		return map[string]any{
			"style_success": map[string]any{"background": "green"},
			"style_error":   map[string]any{"background": "red"},
		}
	}

	exitCode := status()
	prompt := status()
	prompt["output"] = "$"

	return map[string]any{
		"global": map[string]any{
			"segments":      []any{"exit_code", "directory", "git", "prompt"},
			"foreground":    "bright_white",
			"background":    "blue",
			"style":         "",
			"separator":     "",
			"padding_left":  " ",
			"padding_right": " ",
		},
		"segments": map[string]any{
			"directory": map[string]any{
				"max_depth":       int64(4),
				"truncate_middle": false,
				"ellipsis":        "...",
			},
			"exit_code": exitCode,
			"git": map[string]any{
				"show_changes":      true,
				"show_diff_stats":   false,
				"show_ahead_behind": true,
				"symbol_dirty":      "+",
				"symbol_insertion":  "+",
				"symbol_deletion":   "-",
				"symbol_ahead":      "⇡",
				"symbol_behind":     "⇣",
				"symbol_detached":   "",
			},
			"prompt": prompt,
		},
	}
}
