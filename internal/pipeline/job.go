package pipeline

import (
	"github.com/google/uuid"

	"github.com/backmassage/glbcrunch/internal/naming"
)

// Stage is the position of a job in the two-step pipeline.
type Stage int

const (
	StagePendingTexture Stage = iota
	StagePendingGeometry
	StageDone
	StageFailed
)

func (s Stage) String() string {
	switch s {
	case StagePendingTexture:
		return "pending-texture"
	case StagePendingGeometry:
		return "pending-geometry"
	case StageDone:
		return "done"
	case StageFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Job is one file's run through the pipeline. The final output replaces
// Input; Intermediate exists only between the two stages.
type Job struct {
	ID           uuid.UUID
	Input        string
	Intermediate string
	Display      string
	InputSize    int64
	Stage        Stage
}

// NewJob creates a job for c. The intermediate path is derived from the
// input path alone.
func NewJob(c Candidate, suffix string) *Job {
	return &Job{
		ID:           uuid.New(),
		Input:        c.Path,
		Intermediate: naming.IntermediatePath(c.Path, suffix),
		Display:      c.RelPath,
		InputSize:    c.Size,
		Stage:        StagePendingTexture,
	}
}
