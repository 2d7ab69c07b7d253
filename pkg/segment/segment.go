// Package segment resolves per-segment options from configuration and
// computes the content of each prompt segment.
//
// A provider returns a nil *Segment when the segment has nothing to show;
// the renderer then skips it entirely, separator and padding included.
// Configuration errors are returned; environmental failures (no repository,
// unreadable working directory) are not errors and simply hide the segment
// or the affected fragment.
package segment

import (
	"context"
	"io"
	"log/slog"
	"os"

	"gitlab.com/tinyland/lab/contrail/pkg/git"
	"gitlab.com/tinyland/lab/contrail/pkg/style"
)

// Segment is one visible unit of the prompt.
type Segment struct {
	Name    string
	Text    string
	Options Options

	// Style is the effective style: segment-local or override values with
	// the global style filling the gaps.
	Style style.Style
}

// Background is the color the preceding segment's separator blends into.
func (s *Segment) Background() style.Color {
	return s.Style.Background
}

// Repository is the subset of git.Repo the git segment consults.
type Repository interface {
	Head(ctx context.Context) (git.Head, error)
	DiffStats(ctx context.Context) (git.DiffStats, error)
	Upstream(ctx context.Context) (string, error)
	AheadBehind(ctx context.Context, upstream string) (ahead, behind int, err error)
}

// Env carries everything providers read from outside the configuration.
type Env struct {
	ExitCode uint8
	Getenv   func(string) string
	Getwd    func() (string, error)
	OpenRepo func(ctx context.Context, dir string) (Repository, error)
	Logger   *slog.Logger
}

// DefaultEnv reads from the running process and discovers repositories with
// the git binary.
func DefaultEnv(exitCode uint8, logger *slog.Logger) *Env {
	return &Env{
		ExitCode: exitCode,
		Getenv:   os.Getenv,
		Getwd:    os.Getwd,
		OpenRepo: func(ctx context.Context, dir string) (Repository, error) {
			repo, err := git.Discover(ctx, dir)
			if err != nil {
				return nil, err
			}
			return repo, nil
		},
		Logger: logger,
	}
}

func (e *Env) logger() *slog.Logger {
	if e.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return e.Logger
}

func (e *Env) getenv(key string) string {
	if e.Getenv == nil {
		return ""
	}
	return e.Getenv(key)
}

// Request is what a provider receives for one segment.
type Request struct {
	Name     string
	Options  Options
	Resolver *Resolver
	Env      *Env
}

// Provider computes the content of one kind of segment.
type Provider interface {
	Provide(ctx context.Context, req Request) (*Segment, error)
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc func(ctx context.Context, req Request) (*Segment, error)

func (f ProviderFunc) Provide(ctx context.Context, req Request) (*Segment, error) {
	return f(ctx, req)
}

// Build finishes a segment from computed text and the style to apply. An
// output override replaces text; empty text with no override hides the
// segment.
func Build(req Request, text string, local style.Style) *Segment {
	if req.Options.HasOutput {
		text = req.Options.Output
	}
	if text == "" && !req.Options.HasOutput {
		return nil
	}
	return &Segment{
		Name:    req.Name,
		Text:    text,
		Options: req.Options,
		Style:   req.Resolver.Effective(local),
	}
}
