// Package shell identifies the target shell and knows how that shell expects
// prompt text to be marked up.
package shell

import (
	"errors"
	"fmt"
	"strings"
)

// ShellType names a shell whose prompt syntax contrail can produce.
type ShellType string

const (
	Bash ShellType = "bash"
	Zsh  ShellType = "zsh"
	Fish ShellType = "fish"
)

// ErrUnsupported reports a shell identifier contrail cannot render for.
var ErrUnsupported = errors.New("unsupported shell")

// Supported lists every shell in the order they are documented.
func Supported() []ShellType {
	return []ShellType{Bash, Zsh, Fish}
}

// Parse maps a user-supplied identifier to a ShellType. Matching is
// case-insensitive; anything unknown is ErrUnsupported.
func Parse(name string) (ShellType, error) {
	switch ShellType(strings.ToLower(strings.TrimSpace(name))) {
	case Bash:
		return Bash, nil
	case Zsh:
		return Zsh, nil
	case Fish:
		return Fish, nil
	}
	names := make([]string, 0, len(Supported()))
	for _, sh := range Supported() {
		names = append(names, string(sh))
	}
	return "", fmt.Errorf("%w %q (want one of %s)", ErrUnsupported, name, strings.Join(names, ", "))
}

// Markers returns the sequences that tell the shell a span of the prompt
// occupies no columns. Fish measures escapes itself and needs none.
func (s ShellType) Markers() (start, end string) {
	switch s {
	case Bash:
		return `\[`, `\]`
	case Zsh:
		return "%{", "%}"
	default:
		return "", ""
	}
}

// Wrap surrounds an escape sequence with the shell's zero-width markers. An
// empty sequence stays empty.
func (s ShellType) Wrap(seq string) string {
	if seq == "" {
		return ""
	}
	start, end := s.Markers()
	return start + seq + end
}

// bashEscaper quotes text for a PS1 assignment. Bash first decodes the
// backslash escapes of PS1, then expands it like a double-quoted string, so
// every backslash, dollar sign and backquote needs one level of quoting per
// pass.
var (
	bashEscaper   = strings.NewReplacer(`\`, `\\\\`, "$", `\\$`, "`", "\\\\`")
	bashUnescaper = strings.NewReplacer(`\[`, "", `\]`, "", `\\\\`, `\`, `\\$`, "$", "\\\\`", "`")
	zshUnescaper  = strings.NewReplacer("%{", "", "%}", "", "%%", "%")
)

// Escape quotes characters the shell would otherwise expand inside its prompt
// string. Zsh output is meant for PROMPT='$(contrail -z)' with prompt_subst,
// where substituted text is not expanded again, so only % needs quoting.
func (s ShellType) Escape(text string) string {
	switch s {
	case Zsh:
		return strings.ReplaceAll(text, "%", "%%")
	case Bash:
		return bashEscaper.Replace(text)
	default:
		return text
	}
}

// Unwrap removes the shell's markers and escapes from a rendered prompt,
// leaving what the terminal will receive.
func (s ShellType) Unwrap(prompt string) string {
	switch s {
	case Zsh:
		return zshUnescaper.Replace(prompt)
	case Bash:
		return bashUnescaper.Replace(prompt)
	}
	return prompt
}

func (s ShellType) String() string {
	return string(s)
}
