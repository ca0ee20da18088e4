package rtlil

import (
	"fmt"
	"math/big"

	"github.com/shrine-maiden-heavy-industries/torii-go/shape"
	"github.com/shrine-maiden-heavy-industries/torii-go/value"
)

// operatorMap gives the RTLIL cell name for each (arity, Op) pair (spec
// §4.7.2), matching the source backend's operator_map exactly, shift
// directions included: both << and >> lower to the sign-aware $sshl/
// $sshr cells (see DESIGN.md for why this module follows
// original_source/torii/back/rtlil.py here rather than spec.md's plain
// $shl/$shr naming).
var operatorMap = map[string]string{
	"1~":  "$not",
	"1-":  "$neg",
	"1b":  "$reduce_bool",
	"1r|": "$reduce_or",
	"1r&": "$reduce_and",
	"1r^": "$reduce_xor",
	"2+":  "$add",
	"2-":  "$sub",
	"2*":  "$mul",
	"2//": "$divfloor",
	"2%":  "$modfloor",
	"2**": "$pow",
	"2<<": "$sshl",
	"2>>": "$sshr",
	"2&":  "$and",
	"2^":  "$xor",
	"2|":  "$or",
	"2==": "$eq",
	"2!=": "$ne",
	"2<":  "$lt",
	"2<=": "$le",
	"2>":  "$gt",
	"2>=": "$ge",
}

func opCell(arity int, op value.Op) (string, error) {
	key := fmt.Sprintf("%d%s", arity, op)
	cell, ok := operatorMap[key]
	if !ok {
		return "", fmt.Errorf("rtlil: operator %d-ary %q: %w", arity, op, ErrUnknownOperator)
	}
	return cell, nil
}

// rhsCompiler lowers a value.Value appearing on the right of an
// assignment (or as a Switch/Property test) into an RTLIL signal
// specification string, allocating helper wires and cells as needed.
type rhsCompiler struct {
	state *compilerState
	src   string
}

func newRHSCompiler(state *compilerState) *rhsCompiler {
	return &rhsCompiler{state: state}
}

func (r *rhsCompiler) compile(v value.Value) (string, error) {
	switch n := v.(type) {
	case nil:
		return "", nil
	case *value.Const:
		return formatConstWidth(n.Val, n.Shape.Width), nil
	case *value.AnyValue:
		return r.compileAny(n)
	case *value.Signal:
		curr, _, err := r.state.resolve(n, "", r.src)
		return curr, err
	case *value.Operator:
		return r.compileOperator(n)
	case *value.Slice:
		return r.compileSlice(n)
	case *value.Part:
		return r.compilePart(n)
	case *value.Cat:
		return r.compileCat(n)
	case *value.ArrayProxy:
		return r.compileArrayProxy(n)
	default:
		return "", fmt.Errorf("rtlil: %T: %w", v, ErrNotLegalSigSpec)
	}
}

func (r *rhsCompiler) compileAny(n *value.AnyValue) (string, error) {
	if wire, ok := r.state.anys[n]; ok {
		return wire, nil
	}
	sh := n.Shape
	res, err := r.state.mod.Wire(sh.Width, 0, "", "", nil, r.src)
	if err != nil {
		return "", err
	}
	if _, err := r.state.mod.Cell("$"+n.Kind.String(), "", nil, map[string]string{"Y": res}, []string{"Y"}, nil, r.src); err != nil {
		return "", err
	}
	r.state.anys[n] = res
	return res, nil
}

// matchShape compiles v and, if its shape differs in width from want,
// either truncates (a Slice) or sign/zero-extends (a $pos cell) the
// result to want.Width.
func (r *rhsCompiler) matchShape(v value.Value, want shape.Shape) (string, error) {
	if c, ok := v.(*value.Const); ok {
		return formatConstWidth(c.Val, want.Width), nil
	}
	have := value.ShapeOf(v)
	if want.Width <= have.Width {
		sl, err := value.NewSlice(v, 0, want.Width)
		if err != nil {
			return "", err
		}
		return r.compile(sl)
	}
	wire, err := r.compile(v)
	if err != nil {
		return "", err
	}
	res, err := r.state.mod.Wire(want.Width, 0, "", "", nil, r.src)
	if err != nil {
		return "", err
	}
	_, err = r.state.mod.Cell("$pos", "", map[string]Param{
		"A_SIGNED": IntParam(boolToInt(have.Signed)),
		"A_WIDTH":  IntParam(have.Width),
		"Y_WIDTH":  IntParam(want.Width),
	}, map[string]string{"A": wire, "Y": res}, []string{"A", "Y"}, nil, r.src)
	return res, err
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func (r *rhsCompiler) compileOperator(op *value.Operator) (string, error) {
	switch len(op.Operands) {
	case 1:
		return r.compileUnary(op)
	case 2:
		return r.compileBinary(op)
	case 3:
		return r.compileMux(op)
	default:
		return "", fmt.Errorf("rtlil: operator %q: %w", op.Op, ErrUnknownOperator)
	}
}

func (r *rhsCompiler) compileUnary(op *value.Operator) (string, error) {
	arg := op.Operands[0]
	if op.Op.IsCast() {
		return r.compile(arg)
	}
	cell, err := opCell(1, op.Op)
	if err != nil {
		return "", err
	}
	argWire, err := r.compile(arg)
	if err != nil {
		return "", err
	}
	argShape := value.ShapeOf(arg)
	resShape := value.ShapeOf(op)
	res, err := r.state.mod.Wire(resShape.Width, 0, "", "", nil, r.src)
	if err != nil {
		return "", err
	}
	_, err = r.state.mod.Cell(cell, "", map[string]Param{
		"A_SIGNED": IntParam(boolToInt(argShape.Signed)),
		"A_WIDTH":  IntParam(argShape.Width),
		"Y_WIDTH":  IntParam(resShape.Width),
	}, map[string]string{"A": argWire, "Y": res}, []string{"A", "Y"}, nil, r.src)
	return res, err
}

func (r *rhsCompiler) compileBinary(op *value.Operator) (string, error) {
	cell, err := opCell(2, op.Op)
	if err != nil {
		return "", err
	}
	lhs, rhs := op.Operands[0], op.Operands[1]
	lhsShape, rhsShape := value.ShapeOf(lhs), value.ShapeOf(rhs)

	var lhsWire, rhsWire string
	noFixup := lhsShape.Signed == rhsShape.Signed || op.Op == value.OpShl || op.Op == value.OpShr || op.Op == value.OpPow
	if noFixup {
		if lhsWire, err = r.compile(lhs); err != nil {
			return "", err
		}
		if rhsWire, err = r.compile(rhs); err != nil {
			return "", err
		}
	} else {
		promoted := value.PromotedSigned(lhsShape, rhsShape)
		lhsShape, rhsShape = promoted, promoted
		if lhsWire, err = r.matchShape(lhs, promoted); err != nil {
			return "", err
		}
		if rhsWire, err = r.matchShape(rhs, promoted); err != nil {
			return "", err
		}
	}

	resShape := value.ShapeOf(op)
	res, err := r.state.mod.Wire(resShape.Width, 0, "", "", nil, r.src)
	if err != nil {
		return "", err
	}
	_, err = r.state.mod.Cell(cell, "", map[string]Param{
		"A_SIGNED": IntParam(boolToInt(lhsShape.Signed)),
		"A_WIDTH":  IntParam(lhsShape.Width),
		"B_SIGNED": IntParam(boolToInt(rhsShape.Signed)),
		"B_WIDTH":  IntParam(rhsShape.Width),
		"Y_WIDTH":  IntParam(resShape.Width),
	}, map[string]string{"A": lhsWire, "B": rhsWire, "Y": res}, []string{"A", "B", "Y"}, nil, r.src)
	if err != nil {
		return "", err
	}

	if op.Op == value.OpFloorDiv || op.Op == value.OpMod {
		// RTLIL leaves division by zero undefined; this module requires it
		// to return zero (spec §4.7.2).
		zero, err := r.compile(value.NewConst(big.NewInt(0), resShape))
		if err != nil {
			return "", err
		}
		isZero, err := r.compileBinary(value.NewBinary(value.OpEq, rhs, value.NewConstInt(0, 0)))
		if err != nil {
			return "", err
		}
		muxed, err := r.state.mod.Wire(resShape.Width, 0, "", "", nil, r.src)
		if err != nil {
			return "", err
		}
		if _, err := r.state.mod.Cell("$mux", "", map[string]Param{"WIDTH": IntParam(resShape.Width)},
			map[string]string{"A": res, "B": zero, "S": isZero, "Y": muxed}, []string{"A", "B", "S", "Y"}, nil, r.src); err != nil {
			return "", err
		}
		return muxed, nil
	}
	return res, nil
}

func (r *rhsCompiler) compileMux(op *value.Operator) (string, error) {
	sel, ifTrue, ifFalse := op.Operands[0], op.Operands[1], op.Operands[2]
	if value.Len(sel) != 1 {
		sel = value.NewUnary(value.OpBool, sel)
	}
	resShape := value.ShapeOf(op)
	trueWire, err := r.matchShape(ifTrue, resShape)
	if err != nil {
		return "", err
	}
	falseWire, err := r.matchShape(ifFalse, resShape)
	if err != nil {
		return "", err
	}
	selWire, err := r.compile(sel)
	if err != nil {
		return "", err
	}
	res, err := r.state.mod.Wire(resShape.Width, 0, "", "", nil, r.src)
	if err != nil {
		return "", err
	}
	_, err = r.state.mod.Cell("$mux", "", map[string]Param{"WIDTH": IntParam(resShape.Width)},
		map[string]string{"A": falseWire, "B": trueWire, "S": selWire, "Y": res}, []string{"A", "B", "S", "Y"}, nil, r.src)
	return res, err
}

// prepareForSlice compiles v into a sigspec that is itself bit-indexable
// (a Signal, Slice, or Cat can be addressed with "[n]"/"[m:n]" directly;
// anything else is materialized into a throwaway wire first).
func (r *rhsCompiler) prepareForSlice(v value.Value) (string, error) {
	switch v.(type) {
	case *value.Signal, *value.Slice, *value.Cat:
		return r.compile(v)
	default:
		wire, err := r.state.mod.Wire(value.Len(v), 0, "", "", nil, r.src)
		if err != nil {
			return "", err
		}
		inner, err := r.compile(v)
		if err != nil {
			return "", err
		}
		r.state.mod.Connect(wire, inner)
		return wire, nil
	}
}

func (r *rhsCompiler) compileSlice(s *value.Slice) (string, error) {
	if s.Start == 0 && s.Stop == value.Len(s.Value) {
		return r.compile(s.Value)
	}
	sigspec, err := r.prepareForSlice(s.Value)
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

func (r *rhsCompiler) compilePart(p *value.Part) (string, error) {
	offset := p.Offset
	if p.Stride != 1 {
		offset = value.NewBinary(value.OpMul, offset, value.NewConstInt(int64(p.Stride), 0))
	}
	lhsShape := value.ShapeOf(p.Value)
	offShape := value.ShapeOf(offset)
	resShape := value.ShapeOf(p)

	lhsWire, err := r.compile(p.Value)
	if err != nil {
		return "", err
	}
	offWire, err := r.compile(offset)
	if err != nil {
		return "", err
	}
	res, err := r.state.mod.Wire(resShape.Width, 0, "", "", nil, r.src)
	if err != nil {
		return "", err
	}
	// Torii defines out-of-range Part bits as zero, which is exactly
	// what $shift (not Verilog's $shiftx) produces.
	_, err = r.state.mod.Cell("$shift", "", map[string]Param{
		"A_SIGNED": IntParam(boolToInt(lhsShape.Signed)),
		"A_WIDTH":  IntParam(lhsShape.Width),
		"B_SIGNED": IntParam(boolToInt(offShape.Signed)),
		"B_WIDTH":  IntParam(offShape.Width),
		"Y_WIDTH":  IntParam(resShape.Width),
	}, map[string]string{"A": lhsWire, "B": offWire, "Y": res}, []string{"A", "B", "Y"}, nil, r.src)
	return res, err
}

func (r *rhsCompiler) compileCat(c *value.Cat) (string, error) {
	parts := make([]string, len(c.Parts))
	for i, p := range c.Parts {
		compiled, err := r.compile(p)
		if err != nil {
			return "", err
		}
		parts[i] = compiled
	}
	// RTLIL concatenations are written MSB-first; Cat.Parts is LSB-first.
	out := "{ "
	for i := len(parts) - 1; i >= 0; i-- {
		out += parts[i] + " "
	}
	out += "}"
	return out, nil
}

func (r *rhsCompiler) compileArrayProxy(a *value.ArrayProxy) (string, error) {
	resShape := value.ShapeOf(a)
	if c, ok := a.Index.(*value.Const); ok {
		elem := a.ElemAt(int(c.Val.Int64()))
		return r.matchShape(elem, resShape)
	}
	if r.state.currentCase == nil {
		return "", fmt.Errorf("rtlil: ArrayProxy with non-constant index outside a statement context: %w", ErrNotLegalSigSpec)
	}

	width := value.Len(a.Index)
	maxIndex := 1
	if width < 31 {
		maxIndex = 1 << uint(width)
	} else {
		maxIndex = len(a.Elems)
	}
	branches := maxIndex
	if len(a.Elems) < branches {
		branches = len(a.Elems)
	}
	if branches == 0 {
		branches = 1
	}

	selWire, err := r.compile(a.Index)
	if err != nil {
		return "", err
	}
	res, err := r.state.mod.Wire(resShape.Width, 0, "", "", nil, r.src)
	if err != nil {
		return "", err
	}

	outerCase := r.state.currentCase
	sw := outerCase.Switch(selWire, nil, r.src)
	for i := 0; i < branches; i++ {
		pattern := formatPattern(int64(i), width)
		last := i == branches-1
		var cb *CaseBuilder
		if last {
			cb = sw.Case(nil, "")
		} else {
			cb = sw.Case(nil, "", pattern)
		}
		r.state.currentCase = cb
		elemWire, err := r.matchShape(a.ElemAt(i), resShape)
		if err != nil {
			r.state.currentCase = outerCase
			return "", err
		}
		cb.Assign(res, elemWire)
	}
	r.state.currentCase = outerCase
	sw.Finish()
	return res, nil
}

func formatPattern(v int64, width int) string {
	s := formatConstWidth(big.NewInt(v), width)
	// strip the "<width>'" size prefix RTLIL case patterns don't use.
	for i := 0; i < len(s); i++ {
		if s[i] == '\'' {
			return s[i+1:]
		}
	}
	return s
}
