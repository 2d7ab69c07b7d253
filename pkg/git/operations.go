// Package git answers the questions the git segment asks of a working tree by
// running the git binary.
package git

import (
	"context"
	"os"
	"strings"

	"gitlab.com/tinyland/lab/contrail/pkg/command"
)

// Error wraps git command errors with the command line and stderr.
type Error = command.Error

// Run executes a git command in the specified directory.
func Run(ctx context.Context, dir string, args ...string) (string, error) {
	return command.Run(ctx, gitCommand(dir, args...))
}

func gitCommand(dir string, args ...string) command.Command {
	return command.Command{
		Name: "git",
		Args: args,
		Dir:  dir,
		Env:  filteredGitEnv(),
	}
}

func filteredGitEnv() []string {
	// Drop variables that would point git at another repository, as set
	// inside hooks, and keep the output free of localized messages.
	var env []string
	for _, e := range os.Environ() {
		if !strings.HasPrefix(e, "GIT_DIR=") &&
			!strings.HasPrefix(e, "GIT_WORK_TREE=") &&
			!strings.HasPrefix(e, "GIT_INDEX_FILE=") &&
			!strings.HasPrefix(e, "LC_ALL=") {
			env = append(env, e)
		}
	}
	return append(env, "LC_ALL=C", "GIT_OPTIONAL_LOCKS=0")
}
