package pipeline

import (
	"context"
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"github.com/backmassage/glbcrunch/internal/config"
	"github.com/backmassage/glbcrunch/internal/display"
	"github.com/backmassage/glbcrunch/internal/term"
)

// Size classes for the analysis table.
const (
	classNormal  = ""
	classOutlier = "outlier"
	classExtreme = "extreme"
)

// AnalyzeReport summarizes an --analyze run.
type AnalyzeReport struct {
	Files      int
	TotalBytes int64
	Outliers   int
	Extremes   int
}

// Analyze discovers GLB files under cfg.Root and writes a size table to w,
// flagging files whose size is an IQR outlier among the discovered set.
// Nothing is compressed and the compressor is never invoked.
func Analyze(ctx context.Context, cfg *config.Config, log Logger, w io.Writer) (AnalyzeReport, error) {
	var report AnalyzeReport

	candidates, err := DiscoverWith(cfg.Root, DiscoverOptions{
		MaxDepth:       cfg.MaxDepth,
		SkipUnreadable: cfg.SkipUnreadable,
		OnSkip: func(path string, err error) {
			log.Warn("Skipping unreadable directory %s: %v", path, err)
		},
	})
	if err != nil {
		return report, err
	}
	if len(candidates) == 0 {
		return report, ErrNoCandidates
	}
	if err := ctx.Err(); err != nil {
		return report, err
	}

	log.Info("Analyzing %d GLB files in %s", len(candidates), cfg.Root)

	sizes := make([]float64, 0, len(candidates))
	for _, c := range candidates {
		sizes = append(sizes, float64(c.Size))
		report.TotalBytes += c.Size
	}
	bounds := computeStats(sizes)

	printAnalysisTable(w, candidates, bounds)

	report.Files = len(candidates)
	for _, c := range candidates {
		switch bounds.classify(float64(c.Size)) {
		case classExtreme:
			report.Extremes++
		case classOutlier:
			report.Outliers++
		}
	}
	printAnalysisSummary(log, report, bounds)
	return report, nil
}

// iqrBounds holds the IQR-based thresholds for outlier classification.
type iqrBounds struct {
	q1, q3    float64
	outlierLo float64 // Q1 - 1.5*IQR
	outlierHi float64 // Q3 + 1.5*IQR
	extremeLo float64 // Q1 - 3.0*IQR
	extremeHi float64 // Q3 + 3.0*IQR
	valid     bool
}

func computeStats(vals []float64) iqrBounds {
	if len(vals) < 4 {
		return iqrBounds{}
	}

	sorted := make([]float64, len(vals))
	copy(sorted, vals)
	sort.Float64s(sorted)

	q1 := percentile(sorted, 25)
	q3 := percentile(sorted, 75)
	iqr := q3 - q1

	return iqrBounds{
		q1:        q1,
		q3:        q3,
		outlierLo: q1 - 1.5*iqr,
		outlierHi: q3 + 1.5*iqr,
		extremeLo: q1 - 3.0*iqr,
		extremeHi: q3 + 3.0*iqr,
		valid:     iqr > 0,
	}
}

func (b *iqrBounds) classify(v float64) string {
	if !b.valid || v <= 0 {
		return classNormal
	}
	if v < b.extremeLo || v > b.extremeHi {
		return classExtreme
	}
	if v < b.outlierLo || v > b.outlierHi {
		return classOutlier
	}
	return classNormal
}

func printAnalysisTable(w io.Writer, files []Candidate, bounds iqrBounds) {
	nameW := len("File")
	sizeW := len("Size")
	for _, c := range files {
		if len(c.RelPath) > nameW {
			nameW = len(c.RelPath)
		}
		if s := display.FormatBytes(c.Size); len(s) > sizeW {
			sizeW = len(s)
		}
	}
	if nameW > 60 {
		nameW = 60
	}

	header := fmt.Sprintf("  %-*s  %*s", nameW, "File", sizeW, "Size")
	fmt.Fprintln(w, header)
	fmt.Fprintln(w, "  "+strings.Repeat("─", len(header)-2))

	for _, c := range files {
		name := c.RelPath
		if len(name) > nameW {
			name = "…" + name[len(name)-nameW+1:]
		}
		class := bounds.classify(float64(c.Size))
		fmt.Fprintf(w, "  %-*s  %s  %s\n",
			nameW, name, colorPad(display.FormatBytes(c.Size), sizeW, class), formatFlag(class))
	}
	fmt.Fprintln(w)
}

func printAnalysisSummary(log Logger, r AnalyzeReport, bounds iqrBounds) {
	log.Info("Analyzed %d files, %s total", r.Files, display.FormatBytes(r.TotalBytes))
	if bounds.valid {
		log.Info("  Size IQR: %s - %s (outlier above %s)",
			display.FormatBytes(int64(bounds.q1)),
			display.FormatBytes(int64(bounds.q3)),
			display.FormatBytes(int64(bounds.outlierHi)))
	}
	if r.Outliers > 0 {
		log.Warn("  %d outlier(s) flagged [*]", r.Outliers)
	}
	if r.Extremes > 0 {
		log.Error("  %d extreme outlier(s) flagged [!]", r.Extremes)
	}
	if r.Outliers == 0 && r.Extremes == 0 {
		log.Success("  No outliers detected")
	}
}

func formatFlag(class string) string {
	switch class {
	case classExtreme:
		return term.Red + "[!]" + term.NC
	case classOutlier:
		return term.Yellow + "[*]" + term.NC
	default:
		return ""
	}
}

// colorPad right-aligns s to width before adding color, so escape bytes do
// not count toward the column width.
func colorPad(s string, width int, class string) string {
	padded := fmt.Sprintf("%*s", width, s)
	switch class {
	case classExtreme:
		return term.Red + padded + term.NC
	case classOutlier:
		return term.Yellow + padded + term.NC
	default:
		return padded
	}
}

// percentile computes the p-th percentile using linear interpolation.
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	rank := (p / 100) * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi || hi >= len(sorted) {
		return sorted[lo]
	}
	frac := rank - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}
