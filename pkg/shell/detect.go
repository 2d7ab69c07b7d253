package shell

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
)

// Detect returns the current shell type by examining the environment and, if
// necessary, the parent process. It checks in order:
//
//  1. $SHELL environment variable
//  2. /proc/$PPID/comm on Linux
//  3. ps -p $PPID -o comm= on Darwin
//  4. Falls back to Bash as a safe default
func Detect() ShellType {
	if sh := shDetectFromEnv(); sh != "" {
		return sh
	}
	if sh := shDetectFromParent(); sh != "" {
		return sh
	}
	return Bash
}

// shDetectFromEnv maps the $SHELL environment variable to a ShellType.
func shDetectFromEnv() ShellType {
	shellPath := os.Getenv("SHELL")
	if shellPath == "" {
		return ""
	}
	return shParseShellName(filepath.Base(shellPath))
}

// shDetectFromParent identifies the parent process's shell.
func shDetectFromParent() ShellType {
	ppid := os.Getppid()
	if ppid <= 0 {
		return ""
	}

	switch runtime.GOOS {
	case "linux":
		return shDetectLinuxParent(ppid)
	case "darwin":
		return shDetectDarwinParent(ppid)
	default:
		return ""
	}
}

func shDetectLinuxParent(ppid int) ShellType {
	data, err := os.ReadFile("/proc/" + strconv.Itoa(ppid) + "/comm")
	if err != nil {
		return ""
	}
	return shParseShellName(strings.TrimSpace(string(data)))
}

func shDetectDarwinParent(ppid int) ShellType {
	out, err := exec.Command("ps", "-p", strconv.Itoa(ppid), "-o", "comm=").Output()
	if err != nil {
		return ""
	}
	return shParseShellName(filepath.Base(strings.TrimSpace(string(out))))
}

// shParseShellName maps a shell binary name (e.g. "zsh", "-bash") to a
// ShellType. Returns empty string if unrecognized.
func shParseShellName(name string) ShellType {
	// Login shells carry a leading dash.
	name = strings.TrimPrefix(name, "-")
	sh, err := Parse(name)
	if err != nil {
		return ""
	}
	return sh
}
