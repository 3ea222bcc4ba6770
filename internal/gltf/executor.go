package gltf

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"

	"github.com/backmassage/glbcrunch/internal/config"
)

// ExecResult holds the outcome of a single tool invocation.
type ExecResult struct {
	Args   []string
	Stderr string
	Err    error
}

// Execute runs args (args[0] is the executable). When verbose is enabled,
// stderr is tee'd to os.Stderr in real time; otherwise it is captured
// silently. stdout is discarded.
func Execute(ctx context.Context, cfg *config.Config, args []string) ExecResult {
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)

	var stderrBuf bytes.Buffer
	if cfg.Verbose {
		cmd.Stderr = io.MultiWriter(&stderrBuf, os.Stderr)
	} else {
		cmd.Stderr = &stderrBuf
	}

	err := cmd.Run()
	return ExecResult{
		Args:   args,
		Stderr: stderrBuf.String(),
		Err:    err,
	}
}
