package value

// Cat concatenates its Parts LSB-first: Cat(a, b).Bit(0) is a's bit 0,
// and bit len(a) is b's bit 0 (spec §3). The result is always unsigned,
// with width equal to the sum of the parts' widths (spec testable
// property 4).
type Cat struct {
	Parts []Value
}

func (*Cat) isValue() {}

// NewCat concatenates parts LSB-first. A nil part is rejected; an empty
// parts list yields a legal, zero-width Cat (the identity for
// concatenation).
func NewCat(parts ...Value) (*Cat, error) {
	for _, p := range parts {
		if p == nil {
			return nil, ErrNilValue
		}
	}
	cp := make([]Value, len(parts))
	copy(cp, parts)
	return &Cat{Parts: cp}, nil
}

// Repl replicates v n times via concatenation (spec.md "SUPPLEMENTED
// FEATURES": bit replication is pure sugar over Cat).
func Repl(v Value, n int) (*Cat, error) {
	if n < 0 {
		n = 0
	}
	parts := make([]Value, n)
	for i := range parts {
		parts[i] = v
	}
	return NewCat(parts...)
}
