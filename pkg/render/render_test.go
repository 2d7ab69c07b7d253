package render

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"testing"

	"gitlab.com/tinyland/lab/contrail/pkg/config"
	"gitlab.com/tinyland/lab/contrail/pkg/git"
	"gitlab.com/tinyland/lab/contrail/pkg/segment"
	"gitlab.com/tinyland/lab/contrail/pkg/shell"
	"gitlab.com/tinyland/lab/contrail/pkg/style"
)

// rnEnv is an environment with no working directory and no repository.
func rnEnv(exitCode uint8) *segment.Env {
	return &segment.Env{
		ExitCode: exitCode,
		Getenv:   func(string) string { return "" },
		Getwd:    func() (string, error) { return "", errors.New("no cwd") },
		OpenRepo: func(context.Context, string) (segment.Repository, error) {
			return nil, git.ErrNotRepository
		},
	}
}

func rnRender(t *testing.T, tree *config.Tree, sh shell.ShellType, env *segment.Env) string {
	t.Helper()
	out, err := Render(context.Background(), tree, Config{Shell: sh, TrueColor: true, Env: env})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	return out
}

func rnGeneric(output string, settings map[string]any) map[string]any {
	seg := map[string]any{}
	if output != "" {
		seg["output"] = output
	}
	for k, v := range settings {
		seg[k] = v
	}
	return seg
}

func TestExitCodeAndPromptScenario(t *testing.T) {
	tree := config.Merge(config.Defaults(), map[string]any{
		"global": map[string]any{
			"background": "blue",
			"segments":   []any{"exit_code", "prompt"},
		},
	})

	got := rnRender(t, tree, shell.Bash, rnEnv(0))
	want := `\[` + "\x1b[97;42m" + `\]` + " 0 " + `\[` + "\x1b[0m" + `\]` +
		`\[` + "\x1b[97;42m" + `\]` + ` \\$ ` + `\[` + "\x1b[0m" + `\]`
	if got != want {
		t.Errorf("Render() =\n%q\nwant\n%q", got, want)
	}
}

func TestExitCodeErrorStyle(t *testing.T) {
	tree := config.Merge(config.Defaults(), map[string]any{
		"global": map[string]any{"segments": []any{"exit_code"}},
	})
	got := rnRender(t, tree, shell.Fish, rnEnv(127))
	if want := "\x1b[97;41m 127 \x1b[0m"; got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestChainSkipsHiddenSegments(t *testing.T) {
	tree := config.Merge(config.Defaults(), map[string]any{
		"global": map[string]any{
			"segments":      []any{"one", "ghost", "two"},
			"separator":     ">",
			"padding_left":  "",
			"padding_right": "",
		},
		"segments": map[string]any{
			"one":   rnGeneric("1", map[string]any{"style": map[string]any{"background": "red"}}),
			"ghost": rnGeneric("", map[string]any{"style": map[string]any{"background": "green"}}),
			"two":   rnGeneric("2", nil),
		},
	})

	got := rnRender(t, tree, shell.Fish, rnEnv(0))
	want := "\x1b[97;41m1\x1b[0m" + "\x1b[31;44m>\x1b[0m" + // one, blending into two's blue
		"\x1b[97;44m2\x1b[0m" + "\x1b[34m>\x1b[0m" // two is last: flat separator
	if got != want {
		t.Errorf("Render() =\n%q\nwant\n%q", got, want)
	}
}

func TestLastSeparatorHasNoBackground(t *testing.T) {
	seg := &segment.Segment{
		Text:    "x",
		Options: segment.Options{Separator: "|"},
		Style:   style.Style{Background: style.Indexed(24)},
	}
	got := Segment(seg, style.Color{}, shell.Zsh)
	want := "%{\x1b[48;5;24m%}x%{\x1b[0m%}" + "%{\x1b[38;5;24m%}|%{\x1b[0m%}"
	if got != want {
		t.Errorf("Segment() = %q, want %q", got, want)
	}
}

func TestPlainSegmentsOmitMarkers(t *testing.T) {
	tree := config.New(map[string]any{
		"global":   map[string]any{"segments": []any{"note"}, "separator": "/"},
		"segments": map[string]any{"note": rnGeneric("hi", nil)},
	})
	// No colors anywhere: neither the text nor the separator needs markers.
	if got := rnRender(t, tree, shell.Bash, rnEnv(0)); got != " hi /" {
		t.Errorf("Render() = %q, want %q", got, " hi /")
	}
}

func TestShellEscaping(t *testing.T) {
	tree := config.New(map[string]any{
		"global":   map[string]any{"segments": []any{"pct"}},
		"segments": map[string]any{"pct": rnGeneric(`100% \o/`, nil)},
	})
	tests := map[shell.ShellType]string{
		shell.Zsh:  ` 100%% \o/ `,
		shell.Bash: ` 100% \\\\o/ `,
		shell.Fish: ` 100% \o/ `,
	}
	for sh, want := range tests {
		if got := rnRender(t, tree, sh, rnEnv(0)); got != want {
			t.Errorf("%s: Render() = %q, want %q", sh, got, want)
		}
	}
}

// rnBashExpand runs prompt through bash's own PS1 decoding and expansion.
func rnBashExpand(t *testing.T, prompt string) string {
	t.Helper()
	if _, err := exec.LookPath("bash"); err != nil {
		t.Skip("bash not installed")
	}
	cmd := exec.Command("bash", "--norc", "--noprofile", "-c", `PS1="$CONTRAIL_TEST_PROMPT"; printf %s "${PS1@P}"`)
	cmd.Env = append(os.Environ(), "CONTRAIL_TEST_PROMPT="+prompt)
	out, err := cmd.Output()
	if err != nil {
		t.Skipf("bash cannot expand prompts: %v", err)
	}
	return string(out)
}

func TestBashPromptExpansionIsLiteral(t *testing.T) {
	text := "$(echo PWNED) `echo TICK` \\$HOME \\w"
	tree := config.New(map[string]any{
		"global":   map[string]any{"segments": []any{"evil"}},
		"segments": map[string]any{"evil": rnGeneric(text, nil)},
	})

	got := rnBashExpand(t, rnRender(t, tree, shell.Bash, rnEnv(0)))
	if want := " " + text + " "; got != want {
		t.Errorf("bash displayed %q, want %q", got, want)
	}
}

func TestBashDirectoryExpansionIsLiteral(t *testing.T) {
	tree := config.Merge(config.Defaults(), map[string]any{
		"global": map[string]any{"segments": []any{"directory"}},
	})
	env := rnEnv(0)
	env.Getenv = func(k string) string {
		if k == "PWD" {
			return "/tmp/$(echo PWNED)"
		}
		return ""
	}

	got := rnBashExpand(t, rnRender(t, tree, shell.Bash, env))
	if !strings.Contains(got, "/tmp/$(echo PWNED)") {
		t.Errorf("bash displayed %q, want the literal directory name", got)
	}
}

func TestUnsupportedShell(t *testing.T) {
	tree := config.Merge(config.Defaults())
	_, err := Render(context.Background(), tree, Config{Shell: "tcsh", Env: rnEnv(0)})
	if !errors.Is(err, shell.ErrUnsupported) {
		t.Errorf("err = %v, want ErrUnsupported", err)
	}
}

func TestGitOutsideRepositoryIsAbsent(t *testing.T) {
	tree := config.Merge(config.Defaults(), map[string]any{
		"global": map[string]any{"segments": []any{"git", "prompt"}, "separator": ">"},
	})
	got := rnRender(t, tree, shell.Fish, rnEnv(0))
	want := "\x1b[97;42m $ \x1b[0m" + "\x1b[32m>\x1b[0m"
	if got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestDownsampleWithoutTrueColor(t *testing.T) {
	tree := config.New(map[string]any{
		"global":   map[string]any{"segments": []any{"x"}, "padding_left": "", "padding_right": ""},
		"segments": map[string]any{"x": rnGeneric("x", map[string]any{"style": map[string]any{"background": "#ff0000"}})},
	})

	for _, tt := range []struct {
		trueColor bool
		want      string
	}{
		{true, "\x1b[48;2;255;0;0mx\x1b[0m"},
		{false, "\x1b[48;5;196mx\x1b[0m"},
	} {
		got, err := Render(context.Background(), tree, Config{Shell: shell.Fish, TrueColor: tt.trueColor, Env: rnEnv(0)})
		if err != nil {
			t.Fatal(err)
		}
		if got != tt.want {
			t.Errorf("trueColor=%v: Render() = %q, want %q", tt.trueColor, got, tt.want)
		}
	}
}

func TestConfigErrorAbortsRender(t *testing.T) {
	tree := config.Merge(config.Defaults(), map[string]any{
		"global":   map[string]any{"segments": []any{"prompt", "bad"}},
		"segments": map[string]any{"bad": map[string]any{"padding_left": true}},
	})
	_, err := Render(context.Background(), tree, Config{Shell: shell.Bash, Env: rnEnv(0)})
	var ke *config.KindError
	if !errors.As(err, &ke) || ke.Key != "segments.bad.padding_left" {
		t.Errorf("err = %v, want KindError for segments.bad.padding_left", err)
	}
}

func TestSegmentListKind(t *testing.T) {
	tree := config.New(map[string]any{"global": map[string]any{"segments": "prompt"}})
	_, err := Render(context.Background(), tree, Config{Shell: shell.Bash, Env: rnEnv(0)})
	var ke *config.KindError
	if !errors.As(err, &ke) {
		t.Errorf("err = %v, want KindError", err)
	}
}

func TestEmptySegmentList(t *testing.T) {
	tree := config.New(map[string]any{"global": map[string]any{"segments": []any{}}})
	if got := rnRender(t, tree, shell.Zsh, rnEnv(0)); got != "" {
		t.Errorf("Render() = %q, want empty", got)
	}
}

func TestRenderLeavesCallerEnvUntouched(t *testing.T) {
	tree := config.New(map[string]any{"global": map[string]any{"segments": []any{}}})
	env := rnEnv(0)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	if _, err := Render(context.Background(), tree, Config{Shell: shell.Bash, Env: env, Logger: logger}); err != nil {
		t.Fatal(err)
	}
	if env.Logger != nil {
		t.Error("Render stored its logger in the caller's Env")
	}
}

func TestCustomProvider(t *testing.T) {
	reg := segment.NewRegistry()
	reg.Register("clock", segment.ProviderFunc(func(_ context.Context, req segment.Request) (*segment.Segment, error) {
		return segment.Build(req, "12:00", req.Options.Style), nil
	}))
	tree := config.New(map[string]any{"global": map[string]any{"segments": []any{"clock"}}})

	got, err := Render(context.Background(), tree, Config{Shell: shell.Fish, Registry: reg, Env: rnEnv(0)})
	if err != nil {
		t.Fatal(err)
	}
	if got != " 12:00 " {
		t.Errorf("Render() = %q", got)
	}
}

func TestVisibleWidth(t *testing.T) {
	tests := []struct {
		sh     shell.ShellType
		prompt string
		want   int
	}{
		{shell.Bash, `\[` + "\x1b[97;42m" + `\]` + " 0 " + `\[` + "\x1b[0m" + `\]`, 3},
		{shell.Bash, ` \\$ \\\\w`, 5},
		{shell.Zsh, "%{\x1b[1m%}100%%%{\x1b[0m%}", 4},
		{shell.Fish, "\x1b[34m⇡2\x1b[0m", 2},
	}
	for _, tt := range tests {
		if got := VisibleWidth(tt.prompt, tt.sh); got != tt.want {
			t.Errorf("VisibleWidth(%q, %s) = %d, want %d", tt.prompt, tt.sh, got, tt.want)
		}
	}
}
