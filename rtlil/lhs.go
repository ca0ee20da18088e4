package rtlil

import (
	"fmt"

	"github.com/shrine-maiden-heavy-industries/torii-go/value"
)

// lhsCompiler lowers a value.Value appearing on the left of an
// assignment into an RTLIL signal specification naming the "current"
// (combinational) or "$next" (synchronous) wire to assign into.
// Only Signal/Slice/Cat/Part/transparent-cast trees reach it, since
// value.LHSSignals already rejects anything else at statement
// construction time.
type lhsCompiler struct {
	state *compilerState
	rhs   *rhsCompiler
	src   string
}

func newLHSCompiler(state *compilerState, rhs *rhsCompiler) *lhsCompiler {
	return &lhsCompiler{state: state, rhs: rhs}
}

func (l *lhsCompiler) compile(v value.Value) (string, error) {
	switch n := v.(type) {
	case *value.Signal:
		if _, ok := l.state.driven[n.ID]; !ok {
			return "", fmt.Errorf("rtlil: signal %q has no LHS wire (not driven): %w", n.Name, ErrNotLegalSigSpec)
		}
		curr, next, err := l.state.resolve(n, "", l.src)
		if err != nil {
			return "", err
		}
		if next != "" {
			return next, nil
		}
		return curr, nil
	case *value.Operator:
		if !n.Op.IsCast() {
			return "", fmt.Errorf("rtlil: operator %q is not a legal LHS: %w", n.Op, ErrNotLegalSigSpec)
		}
		return l.compile(n.Operands[0])
	case *value.Slice:
		return l.compileSlice(n)
	case *value.Cat:
		return l.compileCat(n)
	case *value.Part:
		return l.compileStaticPart(n)
	default:
		return "", fmt.Errorf("rtlil: %T: %w", v, ErrNotLegalSigSpec)
	}
}

// matchShape pads or truncates v's compiled LHS sigspec to new_shape's
// width: widening prepends a throwaway wire (the source's "dummy bits"
// construction), narrowing slices.
func (l *lhsCompiler) matchShape(v value.Value, width int) (string, error) {
	have := value.Len(v)
	if width == have {
		return l.compile(v)
	}
	if width < have {
		sl, err := value.NewSlice(v, 0, width)
		if err != nil {
			return "", err
		}
		return l.compile(sl)
	}
	inner, err := l.compile(v)
	if err != nil {
		return "", err
	}
	dummy, err := l.state.mod.Wire(width-have, 0, "", "", nil, l.src)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("{ %s %s }", dummy, inner), nil
}

func (l *lhsCompiler) prepareForSlice(v value.Value) (string, error) {
	switch v.(type) {
	case *value.Signal, *value.Slice, *value.Cat, *value.Part:
		return l.compile(v)
	default:
		return "", fmt.Errorf("rtlil: %T inside a Slice LHS: %w", v, ErrNotLegalSigSpec)
	}
}

func (l *lhsCompiler) compileSlice(s *value.Slice) (string, error) {
	if s.Start == 0 && s.Stop == value.Len(s.Value) {
		return l.compile(s.Value)
	}
	sigspec, err := l.prepareForSlice(s.Value)
	if err != nil {
		return "", err
	}
	switch {
	case s.Start == s.Stop:
		return "{ }", nil
	case s.Start+1 == s.Stop:
		return fmt.Sprintf("%s [%d]", sigspec, s.Start), nil
	default:
		return fmt.Sprintf("%s [%d:%d]", sigspec, s.Stop-1, s.Start), nil
	}
}

func (l *lhsCompiler) compileCat(c *value.Cat) (string, error) {
	parts := make([]string, len(c.Parts))
	for i, p := range c.Parts {
		compiled, err := l.compile(p)
		if err != nil {
			return "", err
		}
		parts[i] = compiled
	}
	out := "{ "
	for i := len(parts) - 1; i >= 0; i-- {
		out += parts[i] + " "
	}
	out += "}"
	return out, nil
}

// compileStaticPart handles a Part whose Offset is already a constant
// (Stride applied to compute the effective start bit). A dynamic-offset
// Part on the LHS cannot be addressed this way; it is legalized at the
// statement level instead (see compileDynamicPartAssign in
// stmtcompile.go), which calls partTargetAt directly per branch.
func (l *lhsCompiler) compileStaticPart(p *value.Part) (string, error) {
	c, ok := p.Offset.(*value.Const)
	if !ok {
		return "", fmt.Errorf("rtlil: Part with non-constant offset reached compileStaticPart: %w", ErrNotLegalSigSpec)
	}
	start := int(c.Val.Int64()) * p.Stride
	return l.partTargetAt(p.Value, start, p.Width)
}

// partTargetAt builds the LHS sigspec for writing a [start, start+width)
// window of base, padding with a throwaway wire when the window runs
// past base's own width (spec §3: "bits read outside [0, len(value))
// are zero" — the corresponding LHS write to such bits is simply
// discarded into the dummy wire, which no cell or wire ever reads).
func (l *lhsCompiler) partTargetAt(base value.Value, start, width int) (string, error) {
	total := value.Len(base)
	stop := start + width
	if stop > total {
		stop = total
	}
	if stop < start {
		stop = start
	}
	sl, err := value.NewSlice(base, start, stop)
	if err != nil {
		return "", err
	}
	sliceWire, err := l.compile(sl)
	if err != nil {
		return "", err
	}
	if total >= start+width {
		return sliceWire, nil
	}
	dummy, err := l.state.mod.Wire(start+width-total, 0, "", "", nil, l.src)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("{ %s %s }", dummy, sliceWire), nil
}
