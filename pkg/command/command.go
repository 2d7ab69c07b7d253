// Package command runs external programs for segment providers, one at a time
// or as an ordered concurrent batch.
package command

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Command describes one program invocation.
type Command struct {
	Name string
	Args []string
	Dir  string   // working directory; empty means the current one
	Env  []string // full environment; nil inherits the process environment
}

func (c Command) String() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

// Error wraps a failed invocation with the program's standard error.
type Error struct {
	Command string
	Stderr  string
	Err     error
}

func (e *Error) Error() string {
	if e.Stderr == "" {
		return e.Command + ": " + e.Err.Error()
	}
	return e.Command + ": " + strings.TrimSpace(e.Stderr)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Run executes c and returns its standard output with surrounding whitespace
// trimmed. A non-zero exit is an *Error.
func Run(ctx context.Context, c Command) (string, error) {
	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Dir = c.Dir
	cmd.Env = c.Env

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if errors.Is(ctx.Err(), context.Canceled) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", fmt.Errorf("%s: %w", c, ctx.Err())
		}
		return "", &Error{Command: c.String(), Stderr: stderr.String(), Err: err}
	}
	return strings.TrimSpace(stdout.String()), nil
}

type result struct {
	index  int
	output string
}

// RunAll executes every command concurrently and returns their outputs in
// request order. The first failure cancels the rest and fails the batch.
func RunAll(ctx context.Context, cmds []Command) ([]string, error) {
	results := make(chan result, len(cmds))

	g, gctx := errgroup.WithContext(ctx)
	for i, c := range cmds {
		i, c := i, c
		g.Go(func() error {
			out, err := Run(gctx, c)
			if err != nil {
				return err
			}
			results <- result{index: i, output: out}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	close(results)

	outputs := make([]string, len(cmds))
	for r := range results {
		outputs[r.index] = r.output
	}
	return outputs, nil
}
