package diag

import "fmt"

// Kind identifies which non-fatal condition a Warning reports (spec §7;
// original_source/torii/diagnostics/warnings.py's warning class
// hierarchy, flattened to one enum since Go diagnostics are values, not
// exception classes to catch selectively).
type Kind int

const (
	// DriverConflict reports a signal with conflicting drivers.
	// fragment.AddDriver treats a signal driven in two domains as the
	// hard error fragment.ErrDriverConflict instead.
	DriverConflict Kind = iota
	// UnusedElaboratable reports an Elaboratable that was constructed
	// but never passed to elaboration.
	UnusedElaboratable
	// UnusedProperty reports an assert/assume/cover Property that was
	// constructed but never attached to a fragment.
	UnusedProperty
	// NameWarning reports an inadvisable HDL construct name (e.g. one
	// colliding with an RTLIL reserved word after sanitization).
	NameWarning
)

func (k Kind) String() string {
	switch k {
	case DriverConflict:
		return "driver-conflict"
	case UnusedElaboratable:
		return "unused-elaboratable"
	case UnusedProperty:
		return "unused-property"
	case NameWarning:
		return "name-warning"
	default:
		return "warning"
	}
}

// Warning is one non-fatal diagnostic notice.
type Warning struct {
	Kind    Kind
	Message string
	File    string
	Line    int
}

// String renders w the way internal/diag's Sink implementations render
// it by default: "kind: message (file:line)", omitting the location
// when File is empty.
func (w Warning) String() string {
	if w.File == "" {
		return fmt.Sprintf("%s: %s", w.Kind, w.Message)
	}
	return fmt.Sprintf("%s: %s (%s:%d)", w.Kind, w.Message, w.File, w.Line)
}
