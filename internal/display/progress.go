package display

// Logger is the subset of logging.Logger used for progress output.
type Logger interface {
	Info(string, ...interface{})
}

// Progress renders per-file progress as log lines. It stands in for a host
// progress notification: one header per file, one line per step.
type Progress struct {
	log Logger
}

// NewProgress returns a Progress writing through log.
func NewProgress(log Logger) *Progress {
	return &Progress{log: log}
}

// Begin announces file idx (1-based) of total.
func (p *Progress) Begin(idx, total int, name string) {
	p.log.Info("[%d/%d] Compressing %s", idx, total, name)
}

// Step reports one step of the current file.
func (p *Progress) Step(_, message string) {
	p.log.Info("  %s", message)
}
