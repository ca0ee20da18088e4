package value

import "github.com/shrine-maiden-heavy-industries/torii-go/shape"

// ShapeOf returns the shape of any Value per the semantic width rules of
// spec §3/§4.1. It is pure and total: every legally constructed Value has
// a well-defined shape (spec testable property 1).
func ShapeOf(v Value) shape.Shape {
	switch n := v.(type) {
	case nil:
		return shape.Shape{}
	case *Const:
		return n.Shape
	case *AnyValue:
		return n.Shape
	case *Signal:
		return n.Shape
	case *ClockSignal, *ResetSignal:
		return shape.MustUnsigned(1)
	case *Initial:
		return shape.MustUnsigned(1)
	case *Slice:
		return shape.MustUnsigned(n.Stop - n.Start)
	case *Part:
		return shape.MustUnsigned(n.Width)
	case *Cat:
		w := 0
		for _, p := range n.Parts {
			w += Len(p)
		}
		return shape.MustUnsigned(w)
	case *ArrayProxy:
		return widestShape(n.Elems)
	case *Sample:
		return ShapeOf(n.Value)
	case *Operator:
		return operatorShape(n)
	default:
		return shape.Shape{}
	}
}

// widestShape returns the widest shape among vs, promoting to signed if
// any member is signed. Used by ArrayProxy (every branch must share a
// shape wide enough for any selected element) and by the mux operator.
func widestShape(vs []Value) shape.Shape {
	width, signed := 0, false
	for _, v := range vs {
		s := ShapeOf(v)
		if s.Width > width {
			width = s.Width
		}
		signed = signed || s.Signed
	}
	if signed {
		if width == 0 {
			width = 1
		}
		return shape.MustSigned(width)
	}
	return shape.MustUnsigned(width)
}

// operatorShape implements spec §3's width/signedness rules for every
// Operator variant.
func operatorShape(op *Operator) shape.Shape {
	// Dispatches on the actual operand count rather than Op.Arity():
	// Neg and Sub share the spelling "-", so arity cannot be recovered
	// from op alone (see NewOperator).
	switch len(op.Operands) {
	case 1:
		return unaryShape(op)
	case 2:
		return binaryShape(op)
	case 3:
		return widestShape(op.Operands[1:])
	default:
		return shape.Shape{}
	}
}

func unaryShape(op *Operator) shape.Shape {
	a := ShapeOf(op.Operands[0])
	switch op.Op {
	case OpNot:
		return a
	case OpNeg:
		return shape.MustSigned(a.Width + 1)
	case OpBool, OpReduceOr, OpReduceAnd, OpReduceXor:
		return shape.MustUnsigned(1)
	case OpAsUnsigned:
		return shape.MustUnsigned(a.Width)
	case OpAsSigned:
		if a.Width == 0 {
			return shape.MustSigned(1)
		}
		return shape.MustSigned(a.Width)
	default:
		return a
	}
}

func binaryShape(op *Operator) shape.Shape {
	a := ShapeOf(op.Operands[0])
	b := ShapeOf(op.Operands[1])
	switch op.Op {
	case OpAdd, OpSub:
		signed := a.Signed || b.Signed
		aw := a.Width
		if signed && !a.Signed {
			aw++
		}
		bw := b.Width
		if signed && !b.Signed {
			bw++
		}
		w := aw
		if bw > w {
			w = bw
		}
		return widenBy(w+1, signed)
	case OpMul:
		return widenBy(a.Width+b.Width, a.Signed || b.Signed)
	case OpFloorDiv, OpMod:
		return widenBy(a.Width, a.Signed || b.Signed)
	case OpPow:
		// Bounded by operand-specific rule (spec §3): the exponent's
		// upper bound is 2^b.Width - 1, so the result needs a.Width *
		// (2^b.Width - 1) bits in the worst case for unsigned bases;
		// we cap growth the same way the emitter's $pow cell expects
		// its Y_WIDTH to be supplied.
		if b.Width == 0 {
			return widenBy(a.Width, a.Signed)
		}
		maxExp := (1 << uint(minInt(b.Width, 16))) - 1
		return widenBy(a.Width*maxInt(1, maxExp), a.Signed)
	case OpShl:
		maxShift := (1 << uint(minInt(b.Width, 16))) - 1
		return widenBy(a.Width+maxShift, a.Signed)
	case OpShr:
		return widenBy(a.Width, a.Signed)
	case OpAnd, OpXor, OpOr:
		signed := a.Signed || b.Signed
		aw := a.Width
		if signed && !a.Signed {
			aw++
		}
		bw := b.Width
		if signed && !b.Signed {
			bw++
		}
		w := aw
		if bw > w {
			w = bw
		}
		return widenBy(w, signed)
	case OpEq, OpNe, OpLt, OpLe, OpGt, OpGe:
		return shape.MustUnsigned(1)
	default:
		return shape.Shape{}
	}
}

func widenBy(width int, signed bool) shape.Shape {
	if signed {
		if width == 0 {
			width = 1
		}
		return shape.MustSigned(width)
	}
	return shape.MustUnsigned(width)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// PromotedSigned returns the shape both operands of a mixed-sign binary
// operator (other than shift/power) are promoted to before the operator
// executes, per spec §3 "When operand signedness differs for a binary op
// ... both operands are promoted to signed of max(wi + !signedi)" and
// §4.7.2 "Binary mixed-sign fixup".
func PromotedSigned(a, b shape.Shape) shape.Shape {
	aw := a.Width
	if !a.Signed {
		aw++
	}
	bw := b.Width
	if !b.Signed {
		bw++
	}
	w := aw
	if bw > w {
		w = bw
	}
	if w == 0 {
		w = 1
	}
	return shape.MustSigned(w)
}
