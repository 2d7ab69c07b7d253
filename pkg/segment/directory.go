package segment

import (
	"context"
	"fmt"
	"strings"

	"gitlab.com/tinyland/lab/contrail/pkg/config"
	"gitlab.com/tinyland/lab/contrail/pkg/style"
)

const sgDefaultMaxDepth = 4

// Directory renders the working directory, home-relative and truncated to
// segments.directory.max_depth components.
func Directory(_ context.Context, req Request) (*Segment, error) {
	tree := req.Resolver.Tree()
	prefix := "segments." + req.Name + "."

	maxDepth, ok, err := tree.Int(prefix + "max_depth")
	if err != nil {
		return nil, err
	}
	if !ok {
		maxDepth = sgDefaultMaxDepth
	}
	if maxDepth < 0 {
		return nil, &config.KeyError{
			Key: prefix + "max_depth",
			Err: fmt.Errorf("%w: negative depth %d", style.ErrInvalidForm, maxDepth),
		}
	}

	middle, _, err := tree.Bool(prefix + "truncate_middle")
	if err != nil {
		return nil, err
	}
	ellipsis, ok, err := tree.String(prefix + "ellipsis")
	if err != nil {
		return nil, err
	}
	if !ok {
		ellipsis = "..."
	}
	leading, hasLeading, err := tree.Int(prefix + "leading_depth")
	if err != nil {
		return nil, err
	}
	if !hasLeading {
		leading = maxDepth / 2
	}
	if leading < 0 || leading > maxDepth {
		return nil, &config.KeyError{
			Key: prefix + "leading_depth",
			Err: fmt.Errorf("%w: %d outside 0..%d", style.ErrInvalidForm, leading, maxDepth),
		}
	}

	path := sgWorkingDir(req.Env)
	path = sgHomeRelative(path, req.Env.getenv("HOME"))

	parts := sgSplitPath(path)
	if len(parts) > int(maxDepth) {
		if middle {
			parts = sgTruncateMiddle(parts, int(maxDepth), int(leading), ellipsis)
		} else {
			parts = sgTruncateLeading(parts, int(maxDepth), ellipsis)
		}
	}

	return Build(req, sgJoinPath(parts), req.Options.Style), nil
}

// sgWorkingDir prefers $PWD, which keeps the symlinked path the shell shows,
// over the resolved OS working directory. Failure yields an empty path.
func sgWorkingDir(env *Env) string {
	if pwd := env.getenv("PWD"); pwd != "" {
		return pwd
	}
	if env.Getwd != nil {
		if wd, err := env.Getwd(); err == nil {
			return wd
		}
	}
	return ""
}

// sgHomeRelative replaces a leading home directory with "~". The home must
// end on a component boundary: /home/al does not shorten /home/alice.
func sgHomeRelative(path, home string) string {
	home = strings.TrimRight(home, "/")
	if home == "" {
		return path
	}
	if path == home {
		return "~"
	}
	if strings.HasPrefix(path, home+"/") {
		return "~" + path[len(home):]
	}
	return path
}

// sgSplitPath breaks a path into components. A leading "/" is a component of
// its own so absolute and relative paths count depth the same way.
func sgSplitPath(path string) []string {
	var parts []string
	if strings.HasPrefix(path, "/") {
		parts = append(parts, "/")
	}
	for _, p := range strings.Split(path, "/") {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

func sgJoinPath(parts []string) string {
	if len(parts) == 0 {
		return ""
	}
	if parts[0] == "/" {
		return "/" + strings.Join(parts[1:], "/")
	}
	return strings.Join(parts, "/")
}

// sgTruncateLeading keeps the last depth components behind one ellipsis.
func sgTruncateLeading(parts []string, depth int, ellipsis string) []string {
	out := make([]string, 0, depth+1)
	out = append(out, ellipsis)
	return append(out, parts[len(parts)-depth:]...)
}

// sgTruncateMiddle keeps the first leading and last depth-leading components
// around one ellipsis.
func sgTruncateMiddle(parts []string, depth, leading int, ellipsis string) []string {
	out := make([]string, 0, depth+1)
	out = append(out, parts[:leading]...)
	out = append(out, ellipsis)
	return append(out, parts[len(parts)-(depth-leading):]...)
}
