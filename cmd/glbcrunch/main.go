// Command glbcrunch finds .glb models under a directory, lets the user pick
// some, and compresses each in place with gltf-transform (etc1s textures,
// then draco geometry).
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/backmassage/glbcrunch/internal/check"
	"github.com/backmassage/glbcrunch/internal/config"
	"github.com/backmassage/glbcrunch/internal/display"
	"github.com/backmassage/glbcrunch/internal/gltf"
	"github.com/backmassage/glbcrunch/internal/logging"
	"github.com/backmassage/glbcrunch/internal/pipeline"
	"github.com/backmassage/glbcrunch/internal/selection"
)

// version and commit are injected at build time via -ldflags.
var (
	version = "1.0.0"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Phase 1: Bootstrap. The logger doesn't exist yet, so errors go
	// directly to stderr via fmt.
	cfg := config.DefaultConfig()
	if err := config.ParseFlags(&cfg, version, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "glbcrunch: %v\n", err)
		return 1
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "glbcrunch: %v\n", err)
		return 1
	}

	log, err := logging.NewLogger(&cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "glbcrunch: %v\n", err)
		return 1
	}
	defer log.Close()

	// Phase 2: Logger available.
	display.PrintBanner(os.Stdout)

	// Signal handling: cancel context on SIGINT/SIGTERM so the batch stops
	// between stages, leaving either the input or the intermediate on disk.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Warn("Received interrupt, stopping after the current step…")
		cancel()
	}()

	if cfg.CheckOnly {
		if !check.RunCheck(ctx, &cfg, log) {
			return 1
		}
		return 0
	}

	root, err := filepath.Abs(cfg.Root)
	if err != nil {
		log.Error("Cannot resolve root %s: %v", cfg.Root, err)
		return 1
	}
	cfg.Root = root

	log.Info("=== glbcrunch v%s (%s) ===", version, commit)
	log.Info("Root: %s", cfg.Root)
	if cfg.ConfigFile != "" {
		log.Info("Config: %s", cfg.ConfigFile)
	}
	log.Info("")

	if cfg.Analyze {
		_, err := pipeline.Analyze(ctx, &cfg, log, os.Stdout)
		switch {
		case err == nil:
			return 0
		case pipeline.IsNotice(err):
			log.Info("%v", err)
			return 0
		default:
			log.Error("Analysis failed: %v", err)
			return 1
		}
	}

	deps := pipeline.Deps{
		Compressor: gltf.NewCLI(&cfg),
		Selector:   selection.ForTerminal(cfg.AssumeYes),
		Reporter:   display.NewProgress(log),
	}

	stats, err := pipeline.Run(ctx, &cfg, log, deps)
	switch {
	case err == nil:
		if cfg.DryRun {
			log.Success("Dry run completed.")
		} else {
			log.Success("Compression completed successfully!")
		}
		return 0
	case pipeline.IsNotice(err):
		log.Info("%v", err)
		return 0
	case errors.Is(err, pipeline.ErrToolUnavailable):
		log.Error("%v", err)
		log.Error("Run with --check for details.")
		return 1
	case stats.Failed > 0:
		// Run already logged each failed file.
		log.Error("Compression finished with %d failed file(s).", stats.Failed)
		return 1
	default:
		log.Error("An error occurred: %v", err)
		return 1
	}
}
