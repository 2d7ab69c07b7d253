package git

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gitlab.com/tinyland/lab/contrail/pkg/command"
)

var (
	// ErrNotRepository reports a directory outside any work tree.
	ErrNotRepository = errors.New("not a git repository")
	// ErrUnbornHead reports a repository with no commits on HEAD yet.
	ErrUnbornHead = errors.New("HEAD has no commits")
	// ErrNoUpstream reports that HEAD tracks no remote branch.
	ErrNoUpstream = errors.New("no upstream configured")
)

// Repo is a discovered work tree.
type Repo struct {
	Root string
}

// Head describes what HEAD points at.
type Head struct {
	Branch   string // short branch name; empty when detached
	Commit   string // abbreviated commit id; set only when detached
	Detached bool
}

// DiffStats summarizes changes in the work tree that are not in the index.
type DiffStats struct {
	Files      int
	Insertions int
	Deletions  int
}

// Dirty reports whether any file differs from the index.
func (d DiffStats) Dirty() bool {
	return d.Files > 0
}

// Discover finds the repository containing dir.
func Discover(ctx context.Context, dir string) (*Repo, error) {
	root, err := Run(ctx, dir, "rev-parse", "--show-toplevel")
	if err != nil {
		var gerr *Error
		if errors.As(err, &gerr) {
			return nil, fmt.Errorf("%s: %w", dir, ErrNotRepository)
		}
		return nil, err
	}
	if root == "" {
		// Inside the .git directory itself.
		return nil, fmt.Errorf("%s: %w", dir, ErrNotRepository)
	}
	return &Repo{Root: root}, nil
}

func (r *Repo) run(ctx context.Context, args ...string) (string, error) {
	return Run(ctx, r.Root, args...)
}

// Head resolves HEAD. An unborn HEAD is ErrUnbornHead.
func (r *Repo) Head(ctx context.Context) (Head, error) {
	if _, err := r.run(ctx, "rev-parse", "--verify", "-q", "HEAD"); err != nil {
		var gerr *Error
		if errors.As(err, &gerr) {
			return Head{}, ErrUnbornHead
		}
		return Head{}, err
	}

	branch, err := r.run(ctx, "symbolic-ref", "--short", "-q", "HEAD")
	if err == nil && branch != "" {
		return Head{Branch: branch}, nil
	}
	var gerr *Error
	if err != nil && !errors.As(err, &gerr) {
		return Head{}, err
	}

	commit, err := r.run(ctx, "rev-parse", "--short", "HEAD")
	if err != nil {
		return Head{}, err
	}
	return Head{Commit: commit, Detached: true}, nil
}

// DiffStats compares the work tree with the index. Binary files count as
// changed without line totals.
func (r *Repo) DiffStats(ctx context.Context) (DiffStats, error) {
	out, err := r.run(ctx, "diff", "--numstat", "--no-renames", "--no-ext-diff")
	if err != nil {
		return DiffStats{}, err
	}
	return parseNumstat(out)
}

func parseNumstat(out string) (DiffStats, error) {
	var stats DiffStats
	for _, line := range strings.Split(out, "\n") {
		if line == "" {
			continue
		}
		fields := strings.SplitN(line, "\t", 3)
		if len(fields) != 3 {
			return DiffStats{}, fmt.Errorf("unexpected numstat line %q", line)
		}
		stats.Files++
		if fields[0] == "-" {
			continue
		}
		ins, err := strconv.Atoi(fields[0])
		if err != nil {
			return DiffStats{}, fmt.Errorf("numstat insertions %q: %w", fields[0], err)
		}
		del, err := strconv.Atoi(fields[1])
		if err != nil {
			return DiffStats{}, fmt.Errorf("numstat deletions %q: %w", fields[1], err)
		}
		stats.Insertions += ins
		stats.Deletions += del
	}
	return stats, nil
}

// Upstream returns the short name of the branch HEAD tracks, such as
// "origin/main".
func (r *Repo) Upstream(ctx context.Context) (string, error) {
	name, err := r.run(ctx, "rev-parse", "--abbrev-ref", "--symbolic-full-name", "@{upstream}")
	if err != nil {
		var gerr *Error
		if errors.As(err, &gerr) {
			return "", ErrNoUpstream
		}
		return "", err
	}
	return name, nil
}

// AheadBehind counts commits reachable from HEAD but not upstream (ahead)
// and the reverse (behind). Both references are resolved in one batch.
func (r *Repo) AheadBehind(ctx context.Context, upstream string) (ahead, behind int, err error) {
	ids, err := command.RunAll(ctx, []command.Command{
		gitCommand(r.Root, "rev-parse", "--verify", "HEAD"),
		gitCommand(r.Root, "rev-parse", "--verify", upstream),
	})
	if err != nil {
		return 0, 0, err
	}

	out, err := r.run(ctx, "rev-list", "--left-right", "--count", ids[0]+"..."+ids[1])
	if err != nil {
		return 0, 0, err
	}
	fields := strings.Fields(out)
	if len(fields) != 2 {
		return 0, 0, fmt.Errorf("unexpected rev-list output %q", out)
	}
	if ahead, err = strconv.Atoi(fields[0]); err != nil {
		return 0, 0, err
	}
	if behind, err = strconv.Atoi(fields[1]); err != nil {
		return 0, 0, err
	}
	return ahead, behind, nil
}
