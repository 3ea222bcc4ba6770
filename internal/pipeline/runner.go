package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/backmassage/glbcrunch/internal/config"
	"github.com/backmassage/glbcrunch/internal/display"
	"github.com/backmassage/glbcrunch/internal/gltf"
)

// Logger is the logging surface the pipeline needs; *logging.Logger satisfies it.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
	Debug(bool, string, ...interface{})
}

// Compressor runs the external stages. *gltf.CLI is the real implementation.
type Compressor interface {
	Probe(ctx context.Context) error
	TextureCompress(ctx context.Context, src, dst string) gltf.ExecResult
	GeometryCompress(ctx context.Context, src, dst string) gltf.ExecResult
}

// Selector narrows discovered candidates to the files the user wants. An
// empty result means nothing was chosen.
type Selector interface {
	Select(ctx context.Context, candidates []Candidate) ([]Candidate, error)
}

// Reporter receives per-file progress.
type Reporter interface {
	Begin(idx, total int, name string)
	Step(name, message string)
}

// Deps are the collaborators of a batch run.
type Deps struct {
	Compressor Compressor
	Selector   Selector
	Reporter   Reporter
}

// Run is the top-level batch entry point: probe the compressor, discover,
// select, then compress each selected file in order. Notices (see
// [IsNotice]) are returned for empty inputs. With the abort policy the first
// failed file ends the batch; with continue every file runs and all
// failures are returned joined.
func Run(ctx context.Context, cfg *config.Config, log Logger, deps Deps) (RunStats, error) {
	var stats RunStats

	// Probe first: a missing tool must not cost a single file mutation.
	if err := deps.Compressor.Probe(ctx); err != nil {
		return stats, fmt.Errorf("%w: %w", ErrToolUnavailable, err)
	}

	if strings.TrimSpace(cfg.Root) == "" {
		return stats, ErrNoWorkspace
	}

	candidates, err := DiscoverWith(cfg.Root, DiscoverOptions{
		MaxDepth:       cfg.MaxDepth,
		SkipUnreadable: cfg.SkipUnreadable,
		OnSkip: func(path string, err error) {
			log.Warn("Skipping unreadable directory %s: %v", path, err)
		},
	})
	if err != nil {
		return stats, err
	}
	if len(candidates) == 0 {
		return stats, ErrNoCandidates
	}

	log.Info("Found %d GLB files (depth <= %d)", len(candidates), cfg.MaxDepth)
	for _, c := range candidates {
		log.Debug(cfg.Verbose, "  %s (%s)", c.RelPath, display.FormatBytes(c.Size))
	}

	selected, err := deps.Selector.Select(ctx, candidates)
	if err != nil {
		return stats, fmt.Errorf("selection: %w", err)
	}
	if len(selected) == 0 {
		return stats, ErrNoSelection
	}

	stats.Total = len(selected)
	logBatchHeader(cfg, log, &stats)

	var failures []error
	for i, c := range selected {
		stats.Current = i + 1

		if ctx.Err() != nil {
			log.Warn("Interrupted")
			stats.Skipped = stats.Total - i
			failures = append(failures, ctx.Err())
			break
		}

		job := NewJob(c, cfg.IntermediateSuffix)
		deps.Reporter.Begin(stats.Current, stats.Total, job.Display)
		log.Debug(cfg.Verbose, "job %s: %s -> %s", job.ID, job.Input, job.Intermediate)

		if cfg.DryRun {
			logDryRun(cfg, log, job)
			stats.Compressed++
			continue
		}

		if err := RunJob(ctx, cfg, log, job, deps.Compressor, deps.Reporter); err != nil {
			stats.Failed++
			log.Error("%v", err)
			failures = append(failures, err)
			if cfg.OnFailure == config.FailureAbort {
				stats.Skipped = stats.Total - stats.Current
				break
			}
			continue
		}

		var outSize int64
		if fi, err := os.Stat(job.Input); err == nil {
			outSize = fi.Size()
		}
		stats.TotalInputBytes += job.InputSize
		stats.TotalOutputBytes += outSize
		stats.Compressed++
		log.Success("Compressed %s (%s -> %s, %s of original)",
			job.Display, display.FormatBytes(job.InputSize), display.FormatBytes(outSize),
			display.FormatRatio(outSize, job.InputSize))
	}

	logSummary(cfg, log, &stats)
	return stats, errors.Join(failures...)
}

// RunJob runs the two stages for one job. On return the job is Done or
// Failed. A failure never deletes the predecessor file: after a texture
// failure the input remains, after a geometry failure the intermediate
// remains. Partial output written by a failed stage is removed.
func RunJob(ctx context.Context, cfg *config.Config, log Logger, job *Job, comp Compressor, rep Reporter) error {
	fail := func(stage, diagnostic string, err error) *StageError {
		job.Stage = StageFailed
		return &StageError{File: job.Display, Stage: stage, Diagnostic: diagnostic, Err: err}
	}
	failTool := func(stage string, res gltf.ExecResult) error {
		se := fail(stage, res.Diagnostic(), res.Err)
		if code := gltf.ExitCode(res.Err); code > 0 {
			se.ExitCode = code
			if strings.TrimSpace(res.Stderr) == "" {
				se.Diagnostic = ""
			}
		}
		return se
	}

	if _, err := os.Lstat(job.Intermediate); err == nil {
		return fail(StepPreflight, job.Intermediate+" already exists", ErrIntermediateExists)
	}

	// --- Stage 1: texture ---
	if err := ctx.Err(); err != nil {
		return fail(cfg.TextureCommand, "interrupted", err)
	}
	rep.Step(job.Display, fmt.Sprintf("Compressing with %s...", cfg.TextureCommand))
	res := comp.TextureCompress(ctx, job.Input, job.Intermediate)
	if res.Err != nil {
		removePartial(log, job.Intermediate)
		return failTool(cfg.TextureCommand, res)
	}
	warnStderr(log, cfg.TextureCommand, res)

	rep.Step(job.Display, "Deleting original file...")
	if err := os.Remove(job.Input); err != nil {
		return fail(StepDeleteInput, err.Error(), err)
	}
	job.Stage = StagePendingGeometry

	// --- Stage 2: geometry ---
	if err := ctx.Err(); err != nil {
		return fail(cfg.GeometryCommand, "interrupted", err)
	}
	rep.Step(job.Display, fmt.Sprintf("Compressing with %s...", cfg.GeometryCommand))
	res = comp.GeometryCompress(ctx, job.Intermediate, job.Input)
	if res.Err != nil {
		removePartial(log, job.Input)
		return failTool(cfg.GeometryCommand, res)
	}
	warnStderr(log, cfg.GeometryCommand, res)

	rep.Step(job.Display, "Deleting intermediate file...")
	if err := os.Remove(job.Intermediate); err != nil {
		return fail(StepDeleteIntermediate, err.Error(), err)
	}
	job.Stage = StageDone
	return nil
}

// removePartial deletes whatever a failed stage managed to write.
func removePartial(log Logger, path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warn("Could not remove partial output %s: %v", path, err)
	}
}

// warnStderr logs stderr from a successful invocation as a warning.
func warnStderr(log Logger, stage string, res gltf.ExecResult) {
	w := res.Warning()
	if w == "" {
		return
	}
	for _, l := range strings.Split(gltf.Tail(w, 20), "\n") {
		log.Warn("  %s: %s", stage, l)
	}
}

// --- Logging helpers ---

func logBatchHeader(cfg *config.Config, log Logger, stats *RunStats) {
	log.Info("Selected %d files", stats.Total)
	log.Info("Pipeline: %s %s -> %s", cfg.Tool, cfg.TextureCommand, cfg.GeometryCommand)
	log.Info("Intermediate suffix: %s", cfg.IntermediateSuffix)
	if cfg.OnFailure == config.FailureContinue {
		log.Info("On failure: continue with remaining files")
	} else {
		log.Info("On failure: stop the batch")
	}
	if cfg.DryRun {
		log.Warn("DRY RUN - no files will be touched")
	}
}

func logDryRun(cfg *config.Config, log Logger, job *Job) {
	log.Success("[DRY] Would run: %s", strings.Join(gltf.Build(cfg, gltf.StageTexture, job.Input, job.Intermediate), " "))
	log.Success("[DRY] Would delete: %s", job.Input)
	log.Success("[DRY] Would run: %s", strings.Join(gltf.Build(cfg, gltf.StageGeometry, job.Intermediate, job.Input), " "))
	log.Success("[DRY] Would delete: %s", job.Intermediate)
}

func logSummary(cfg *config.Config, log Logger, stats *RunStats) {
	log.Info("==============================")
	log.Info("Done: %d compressed, %d failed, %d not attempted", stats.Compressed, stats.Failed, stats.Skipped)

	if cfg.DryRun {
		log.Info("Total space saved: n/a (dry run)")
		return
	}
	if stats.Compressed == 0 {
		return
	}

	saved := stats.SpaceSaved()
	if saved >= 0 {
		log.Success("Total space saved: %s (input %s -> output %s)",
			display.FormatBytes(saved),
			display.FormatBytes(stats.TotalInputBytes),
			display.FormatBytes(stats.TotalOutputBytes))
	} else {
		log.Warn("Total space saved: %s (overall output is larger)",
			display.FormatBytesWithSign(saved))
	}
}
