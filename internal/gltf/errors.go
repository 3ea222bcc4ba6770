package gltf

import (
	"errors"
	"os/exec"
	"strings"
)

// maxDiagnosticLines bounds how much stderr is carried into an error message.
const maxDiagnosticLines = 20

// Diagnostic returns the text describing a failed invocation: the tail of
// stderr when the tool wrote any, otherwise the process error itself.
func (r ExecResult) Diagnostic() string {
	if s := Tail(r.Stderr, maxDiagnosticLines); s != "" {
		return s
	}
	if r.Err != nil {
		return r.Err.Error()
	}
	return ""
}

// Warning returns trimmed stderr from a successful invocation, or "".
func (r ExecResult) Warning() string {
	if r.Err != nil {
		return ""
	}
	return strings.TrimSpace(r.Stderr)
}

// ExitCode extracts the process exit code from err. It returns 0 for nil
// and -1 when the process never ran or was killed by a signal.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}

// Tail returns the last n lines of s after trimming surrounding whitespace.
func Tail(s string, n int) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	lines := strings.Split(s, "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}
