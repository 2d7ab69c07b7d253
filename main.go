// contrail renders a powerline-style shell prompt.
//
// It reads configuration from $XDG_CONFIG_HOME/contrail/config.toml (or
// config.yaml), computes the configured segments and prints the prompt with
// the escape markers the target shell expects.
//
// Usage:
//
//	contrail [flags]
//
// Flags:
//
//	-e, --exit-code uint8     Exit status of the previous command (default 0)
//	-c, --config string       Path to configuration file
//	-s, --shell string        Target shell (bash|zsh|fish)
//	-z, --zsh                 Shorthand for --shell zsh
//	-g, --generate-config     Write the default configuration and exit
//	-v, --verbose             Enable debug logging on stderr
//	    --version             Print version and exit
//
// Bash decodes \[ and \] before command substitution, so the prompt must be
// assigned to PS1 on each command:
//
//	PROMPT_COMMAND='PS1="$(contrail -e $? -s bash)"'
//
// Zsh and fish call contrail from the prompt itself:
//
//	setopt prompt_subst; PROMPT='$(contrail -e $? -z)'
//	function fish_prompt; contrail -e $status -s fish; end
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"gitlab.com/tinyland/lab/contrail/pkg/config"
	"gitlab.com/tinyland/lab/contrail/pkg/render"
	"gitlab.com/tinyland/lab/contrail/pkg/segment"
	"gitlab.com/tinyland/lab/contrail/pkg/shell"
	"gitlab.com/tinyland/lab/contrail/pkg/terminal"
)

var (
	version = "0.1.0"
	commit  = "dev"
	date    = "unknown"
)

type options struct {
	exitCode       uint8
	configPath     string
	shellName      string
	zsh            bool
	generateConfig bool
	verbose        bool
}

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "contrail: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:     "contrail",
		Short:   "Render a powerline-style shell prompt",
		Version: fmt.Sprintf("%s (%s) built %s", version, commit, date),
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), opts, stdout, stderr)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	f := cmd.Flags()
	f.Uint8VarP(&opts.exitCode, "exit-code", "e", 0, "exit status of the previous command")
	f.StringVarP(&opts.configPath, "config", "c", "", "path to configuration file")
	f.StringVarP(&opts.shellName, "shell", "s", "", "target shell (bash|zsh|fish)")
	f.BoolVarP(&opts.zsh, "zsh", "z", false, "shorthand for --shell zsh")
	f.BoolVarP(&opts.generateConfig, "generate-config", "g", false, "write the default configuration and exit")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")
	return cmd
}

func run(ctx context.Context, opts options, stdout, stderr io.Writer) error {
	logLevel := slog.LevelWarn
	if opts.verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))

	if opts.generateConfig {
		return generateConfig(opts.configPath, stdout)
	}

	var (
		tree *config.Tree
		err  error
	)
	if opts.configPath != "" {
		tree, err = config.LoadFromFile(opts.configPath)
	} else {
		tree, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	sh, err := selectShell(opts, tree)
	if err != nil {
		return err
	}

	trueColor, ok, err := tree.Bool("global.true_color")
	if err != nil {
		return err
	}
	if !ok {
		caps := terminal.DetectCapabilities()
		trueColor = caps.TrueColor
		logger.Debug("detected terminal", "term", caps.Term, "true_color", caps.TrueColor, "mux", caps.Mux)
	}

	prompt, err := render.Render(ctx, tree, render.Config{
		Shell:     sh,
		TrueColor: trueColor,
		Env:       segment.DefaultEnv(opts.exitCode, logger),
		Logger:    logger,
	})
	if err != nil {
		return err
	}

	if f, ok := stdout.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		prompt += "\n"
	}
	_, err = io.WriteString(stdout, prompt)
	return err
}

// selectShell honours, in order: --shell, --zsh, global.shell, then the
// detected login shell.
func selectShell(opts options, tree *config.Tree) (shell.ShellType, error) {
	switch {
	case opts.shellName != "":
		return shell.Parse(opts.shellName)
	case opts.zsh:
		return shell.Zsh, nil
	}
	name, ok, err := tree.String("global.shell")
	if err != nil {
		return "", err
	}
	if ok && name != "" {
		sh, err := shell.Parse(name)
		if err != nil {
			return "", &config.KeyError{Key: "global.shell", Err: err}
		}
		return sh, nil
	}
	return shell.Detect(), nil
}

func generateConfig(path string, stdout io.Writer) error {
	if path == "" {
		path = config.DefaultPath()
	}
	created, err := config.Generate(path)
	if err != nil {
		return fmt.Errorf("generate config: %w", err)
	}
	if created {
		fmt.Fprintf(stdout, "wrote %s\n", path)
	} else {
		fmt.Fprintf(stdout, "%s already exists\n", path)
	}
	return nil
}
