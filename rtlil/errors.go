package rtlil

import "errors"

// Sentinel errors for RTLIL emission.
var (
	// ErrNilFragment indicates Convert was given a nil root fragment.
	ErrNilFragment = errors.New("rtlil: nil fragment")

	// ErrWireTooWide indicates a wire wider than maxWireWidth was about
	// to be emitted (spec §4.7.1: wires beyond this width synthesize
	// unreliably in every known downstream tool).
	ErrWireTooWide = errors.New("rtlil: wire exceeds maximum emittable width")

	// ErrBadPortKind indicates a port direction outside
	// {input, output, inout} was requested of a wire.
	ErrBadPortKind = errors.New("rtlil: invalid wire port kind")

	// ErrPositionalPort indicates a cell port name made only of decimal
	// digits, the form of a positional connection, which this module
	// never performs (spec §4.7.6).
	ErrPositionalPort = errors.New("rtlil: port name is reserved for positional connection")

	// ErrNotLegalSigSpec indicates a Value reached the RHS/LHS compiler
	// that is not a legal RTLIL signal specification source (e.g. a
	// ClockSignal/ResetSignal/Sample leaf that ir.Prepare should have
	// already lowered away).
	ErrNotLegalSigSpec = errors.New("rtlil: value is not a legal signal specification")

	// ErrUnknownOperator indicates an Op with no entry in operatorMap
	// reached the RHS compiler.
	ErrUnknownOperator = errors.New("rtlil: unknown operator")
)

// maxWireWidth bounds emitted wire width (spec §4.7.1), matching the
// conservative limit the source backend self-imposes well under Yosys's
// own hard ceiling.
const maxWireWidth = 1 << 16
