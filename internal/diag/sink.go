package diag

import (
	"fmt"
	"io"
)

// Sink receives Warnings as they are raised during elaboration and
// emission. A nil Sink is valid and silently discards every Warning.
type Sink interface {
	Warn(w Warning)
}

// WriterSink writes every Warning to W as one line, matching
// install_warning_handler's plain (non-"fancy") rendering mode.
type WriterSink struct {
	W io.Writer
}

// Warn writes w to s.W, ignoring any write error: a diagnostic sink must
// never itself fail the pipeline it is reporting on.
func (s WriterSink) Warn(w Warning) {
	fmt.Fprintln(s.W, w.String())
}

// CollectSink accumulates every Warning it receives, in arrival order.
// Used by tests and by callers that want to inspect warnings rather than
// have them printed.
type CollectSink struct {
	Warnings []Warning
}

// Warn appends w to s.Warnings.
func (s *CollectSink) Warn(w Warning) {
	s.Warnings = append(s.Warnings, w)
}

// Warn reports w to sink if sink is non-nil, making every call site's
// nil-check one line instead of an if-statement.
func Warn(sink Sink, w Warning) {
	if sink != nil {
		sink.Warn(w)
	}
}
