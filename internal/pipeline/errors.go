package pipeline

import (
	"errors"
	"fmt"
)

// Errors that stop a batch before any file is touched.
var (
	ErrToolUnavailable = errors.New("compressor unavailable")
	ErrDiscovery       = errors.New("discovery failed")
)

// Benign outcomes: the batch ends with nothing to do. They satisfy [IsNotice].
var (
	// ErrNoWorkspace is returned for an empty Root. The CLI always has a root
	// (default "."), so only library callers of [Run] see it.
	ErrNoWorkspace  error = &noticeError{"No root directory to scan."}
	ErrNoCandidates error = &noticeError{"No GLB files found in the current folder."}
	ErrNoSelection  error = &noticeError{"No files selected."}
)

// ErrIntermediateExists is the cause of a preflight [StageError]: the texture
// stage would overwrite a file the job does not own.
var ErrIntermediateExists = errors.New("intermediate file already exists")

type noticeError struct{ msg string }

func (e *noticeError) Error() string { return e.msg }

// IsNotice reports whether err is an informational "nothing to do" outcome
// rather than a failure.
func IsNotice(err error) bool {
	var n *noticeError
	return errors.As(err, &n)
}

// Stage labels used in StageError besides the tool subcommand names.
const (
	StepPreflight          = "preflight"
	StepDeleteInput        = "delete input"
	StepDeleteIntermediate = "delete intermediate"
)

// StageError reports the failure of one step of one job.
type StageError struct {
	File       string // Display name of the input.
	Stage      string // Tool subcommand (e.g. "etc1s") or one of the Step* labels.
	Diagnostic string // stderr tail or underlying error text.
	ExitCode   int    // Tool exit status; 0 when the step was not a tool run or the process never exited.
	Err        error
}

// Error formats the failure for logs and the final user message.
func (e *StageError) Error() string {
	if e == nil {
		return ""
	}
	stage := e.Stage
	if e.ExitCode > 0 {
		stage = fmt.Sprintf("%s (exit status %d)", e.Stage, e.ExitCode)
	}
	if e.Diagnostic == "" {
		return fmt.Sprintf("Failed to compress %s: %s failed", e.File, stage)
	}
	return fmt.Sprintf("Failed to compress %s: %s: %s", e.File, stage, e.Diagnostic)
}

// Unwrap exposes the underlying error for errors.Is / errors.As.
func (e *StageError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
