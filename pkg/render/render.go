// Package render stitches segments into the final prompt string.
//
// Segments are computed right to left. Each visible segment's separator is
// painted in its own background over the background of the next visible
// segment, so hidden segments never break the chain between their visible
// neighbors. The rightmost visible segment's separator has no background.
package render

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"gitlab.com/tinyland/lab/contrail/pkg/config"
	"gitlab.com/tinyland/lab/contrail/pkg/segment"
	"gitlab.com/tinyland/lab/contrail/pkg/shell"
	"gitlab.com/tinyland/lab/contrail/pkg/style"
)

// Config controls a render pass.
type Config struct {
	Shell     shell.ShellType
	TrueColor bool              // emit 24-bit colors; otherwise RGB is downsampled
	Registry  *segment.Registry // nil uses the built-in providers
	Env       *segment.Env
	Logger    *slog.Logger
}

// Render produces the prompt for the segments listed in global.segments.
// Configuration errors abort the render; environmental failures only hide
// the affected segment.
func Render(ctx context.Context, tree *config.Tree, cfg Config) (string, error) {
	sh, err := shell.Parse(string(cfg.Shell))
	if err != nil {
		return "", err
	}
	log := cfg.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	registry := cfg.Registry
	if registry == nil {
		registry = segment.NewRegistry()
	}
	var env segment.Env
	if cfg.Env != nil {
		env = *cfg.Env
	}
	if env.Logger == nil {
		env.Logger = log
	}

	names, _, err := tree.Strings("global.segments")
	if err != nil {
		return "", err
	}
	log.Debug("rendering", "shell", sh, "segments", names, "providers", registry.Names())

	resolver, err := segment.NewResolver(tree)
	if err != nil {
		return "", err
	}

	var (
		next     style.Color
		reversed = make([]string, 0, len(names))
	)
	for i := len(names) - 1; i >= 0; i-- {
		name := names[i]

		opts, err := resolver.Resolve(name)
		if err != nil {
			return "", fmt.Errorf("segment %s: %w", name, err)
		}
		seg, err := registry.Lookup(name).Provide(ctx, segment.Request{
			Name:     name,
			Options:  opts,
			Resolver: resolver,
			Env:      &env,
		})
		if err != nil {
			return "", fmt.Errorf("segment %s: %w", name, err)
		}
		if seg == nil {
			log.Debug("segment hidden", "segment", name)
			continue
		}
		if !cfg.TrueColor {
			seg.Style = seg.Style.Downsample()
		}

		reversed = append(reversed, Segment(seg, next, sh))
		next = seg.Background()
	}

	slices.Reverse(reversed)
	prompt := strings.Join(reversed, "")

	log.Debug("rendered prompt",
		"shell", sh,
		"segments", len(reversed),
		"width", VisibleWidth(prompt, sh),
	)
	return prompt, nil
}

// Segment renders one visible segment followed by its separator. next is
// the background of the following visible segment, zero if there is none.
func Segment(seg *segment.Segment, next style.Color, sh shell.ShellType) string {
	var b strings.Builder

	start, end := seg.Style.Sequences()
	b.WriteString(sh.Wrap(start))
	b.WriteString(sh.Escape(seg.Options.PaddingLeft + seg.Text + seg.Options.PaddingRight))
	b.WriteString(sh.Wrap(end))

	if sep := seg.Options.Separator; sep != "" {
		sepStyle := style.Style{Foreground: seg.Background(), Background: next}
		start, end := sepStyle.Sequences()
		b.WriteString(sh.Wrap(start))
		b.WriteString(sh.Escape(sep))
		b.WriteString(sh.Wrap(end))
	}
	return b.String()
}

// VisibleWidth returns the number of terminal columns the prompt occupies
// once the shell has processed it.
func VisibleWidth(prompt string, sh shell.ShellType) int {
	return ansi.StringWidth(sh.Unwrap(prompt))
}
