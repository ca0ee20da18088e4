package rtlil

import (
	"fmt"

	"github.com/shrine-maiden-heavy-industries/torii-go/shape"
	"github.com/shrine-maiden-heavy-industries/torii-go/stmt"
	"github.com/shrine-maiden-heavy-industries/torii-go/value"
)

// stmtCompiler lowers one LHS-group's statement list into RTLIL process
// case/switch text (spec §4.7.3). Grounded on original_source/torii/
// back/rtlil.py's _StatementCompiler, including its "wrap_assign" device:
// RTLIL's process model logically runs all top-level assigns before any
// switch, regardless of source order, so an assign following a switch is
// wrapped in a dummy unconditional switch to force it to run after.
type stmtCompiler struct {
	state      *compilerState
	rhs        *rhsCompiler
	lhs        *lhsCompiler
	wrapAssign bool
}

func newStmtCompiler(state *compilerState, rhs *rhsCompiler, lhs *lhsCompiler) *stmtCompiler {
	return &stmtCompiler{state: state, rhs: rhs, lhs: lhs}
}

func (sc *stmtCompiler) compileList(caseB *CaseBuilder, list stmt.List) error {
	for _, s := range list {
		if err := sc.compileOne(caseB, s); err != nil {
			return err
		}
	}
	return nil
}

func (sc *stmtCompiler) compileOne(caseB *CaseBuilder, s stmt.Statement) error {
	switch n := s.(type) {
	case *stmt.Assign:
		return sc.compileAssign(caseB, n)
	case *stmt.Switch:
		return sc.compileSwitch(caseB, n)
	default:
		return fmt.Errorf("rtlil: %T: unrecognized statement (properties are rewritten away before statement compilation)", s)
	}
}

func (sc *stmtCompiler) compileAssign(caseB *CaseBuilder, a *stmt.Assign) error {
	src := srcOf(a.SrcLoc)
	sc.rhs.src, sc.lhs.src = src, src
	sc.state.currentCase = caseB

	if part, ok := a.LHS.(*value.Part); ok {
		if _, isConst := part.Offset.(*value.Const); !isConst {
			return sc.compileDynamicPartAssign(caseB, part, a.RHS)
		}
	}

	lhsShape := value.ShapeOf(a.LHS)
	rhsWire, err := sc.rhs.matchShape(a.RHS, lhsShape)
	if err != nil {
		return err
	}
	lhsWire, err := sc.lhs.compile(a.LHS)
	if err != nil {
		return err
	}

	if sc.wrapAssign {
		sw := caseB.Switch("{ }", nil, "")
		wrap := sw.Case(nil, "")
		wrap.Assign(lhsWire, rhsWire)
		sw.Finish()
		return nil
	}
	caseB.Assign(lhsWire, rhsWire)
	return nil
}

// compileDynamicPartAssign legalizes an assignment whose LHS is a Part
// with a non-constant Offset by branching on the offset's compiled
// value, one switch case per reachable window position (spec §3 "Part"
// + §4.7.2 legalization). This legalizes locally around just this one
// assignment rather than the enclosing statement as a whole; see
// DESIGN.md for the scoping rationale.
func (sc *stmtCompiler) compileDynamicPartAssign(caseB *CaseBuilder, p *value.Part, rhs value.Value) error {
	offset := p.Offset
	if p.Stride != 1 {
		offset = value.NewBinary(value.OpMul, offset, value.NewConstInt(int64(p.Stride), 0))
	}
	offWire, err := sc.rhs.compile(offset)
	if err != nil {
		return err
	}
	rhsWire, err := sc.rhs.matchShape(rhs, shape.MustUnsigned(p.Width))
	if err != nil {
		return err
	}

	offWidth := value.Len(p.Offset)
	maxBranches := value.Len(p.Value)/p.Stride + 1
	if offWidth < 31 && (1<<uint(offWidth)) < maxBranches {
		maxBranches = 1 << uint(offWidth)
	}
	if maxBranches < 1 {
		maxBranches = 1
	}

	sw := caseB.Switch(offWire, nil, "")
	for i := 0; i < maxBranches; i++ {
		var cb *CaseBuilder
		if i == maxBranches-1 {
			cb = sw.Case(nil, "")
		} else {
			cb = sw.Case(nil, "", formatPattern(int64(i), offWidth))
		}
		target, err := sc.lhs.partTargetAt(p.Value, i*p.Stride, p.Width)
		if err != nil {
			return err
		}
		cb.Assign(target, rhsWire)
	}
	sw.Finish()
	return nil
}

func (sc *stmtCompiler) compileSwitch(caseB *CaseBuilder, n *stmt.Switch) error {
	sc.rhs.src = srcOf(n.SrcLoc)
	sc.state.currentCase = caseB
	testWire, err := sc.rhs.compile(n.Test)
	if err != nil {
		return err
	}

	sw := caseB.Switch(testWire, nil, srcOf(n.SrcLoc))
	for _, c := range n.Cases {
		values := make([]string, len(c.Patterns))
		for i, p := range c.Patterns {
			values[i] = string(p)
		}
		var cb *CaseBuilder
		if len(values) == 0 {
			cb = sw.Case(nil, "")
		} else {
			cb = sw.Case(nil, "", values...)
		}
		savedWrap := sc.wrapAssign
		sc.wrapAssign = false
		if err := sc.compileList(cb, c.Body); err != nil {
			return err
		}
		sc.wrapAssign = savedWrap
	}
	sw.Finish()
	sc.wrapAssign = true
	return nil
}

