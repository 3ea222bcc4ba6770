// Package check provides the compressor availability probe used before any
// file is touched ([Prober.Probe], via gltf.CLI) and the interactive --check
// report ([RunCheck]).
package check

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/backmassage/glbcrunch/internal/config"
)

// InstallHint is shown whenever the compressor cannot be invoked.
const InstallHint = `install it with "npm install -g @gltf-transform/cli"`

// Sentinel errors returned by Prober.Probe when the compressor is unusable.
var (
	ErrToolNotFound = errors.New("compressor not found on PATH")
	ErrToolBroken   = errors.New("compressor found but --version failed")
)

const probeTimeout = 30 * time.Second

// Logger is the minimal logging interface needed by RunCheck.
// Defined here (rather than importing the logging package) so that check
// remains dependency-light and testable with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
	Debug(bool, string, ...interface{})
}

// Prober runs the availability probe. The zero value uses the real PATH and
// process execution; tests replace the hooks.
type Prober struct {
	LookPath func(string) (string, error)
	Version  func(ctx context.Context, path string) (string, error)
}

// RunCheck runs the --check flow: reports where the compressor lives and
// its version. Returns true when the tool is usable.
func RunCheck(ctx context.Context, cfg *config.Config, log Logger) bool {
	log.Info("=== System Check ===")
	version, err := Prober{}.Probe(ctx, cfg.Tool)
	if err != nil {
		log.Error("%s: %v", cfg.Tool, err)
		log.Error("Remedy: %s", InstallHint)
		return false
	}
	log.Success("%s: %s", cfg.Tool, version)
	log.Info("Texture stage:  %s %s <src> <dst> %s", cfg.Tool, cfg.TextureCommand, strings.Join(cfg.TextureArgs, " "))
	log.Info("Geometry stage: %s %s <src> <dst> %s", cfg.Tool, cfg.GeometryCommand, strings.Join(cfg.GeometryArgs, " "))
	return true
}

// Probe looks tool up on PATH and runs "<tool> --version", returning the
// first line of its output.
func (p Prober) Probe(ctx context.Context, tool string) (string, error) {
	lookPath := p.LookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	version := p.Version
	if version == nil {
		version = runVersion
	}

	path, err := lookPath(tool)
	if err != nil {
		return "", fmt.Errorf("%w: %s; %s", ErrToolNotFound, tool, InstallHint)
	}
	out, err := version(ctx, path)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v; %s", ErrToolBroken, tool, err, InstallHint)
	}
	return firstLine(out), nil
}

// runVersion runs "<path> --version" with a timeout and returns stdout.
func runVersion(ctx context.Context, path string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, path, "--version")
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("%v: %s", err, firstLine(msg))
		}
		return "", err
	}
	return string(out), nil
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		s = strings.TrimSpace(s[:idx])
	}
	return s
}
