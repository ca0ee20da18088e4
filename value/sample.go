package value

import "fmt"

// Sample refers to the value of Value Cycles cycles ago in the named
// clock Domain (spec §3). Sample never reaches the RTLIL emitter: the
// sample-lowering IR pass (spec §4.6 step 1) replaces every Sample with a
// chain of Cycles sync registers before domain propagation runs.
type Sample struct {
	Value  Value
	Cycles int
	Domain string
}

func (*Sample) isValue() {}

// NewSample constructs a Sample, rejecting a negative cycle count (spec
// §4.6 step 1 only makes sense for cycles >= 0; cycles == 0 is legal and
// denotes "this cycle", i.e. an identity lowering).
func NewSample(v Value, cycles int, domain string) (*Sample, error) {
	if v == nil {
		return nil, ErrNilValue
	}
	if cycles < 0 {
		return nil, fmt.Errorf("value.NewSample(cycles=%d): %w", cycles, ErrNegativeCycles)
	}
	return &Sample{Value: v, Cycles: cycles, Domain: domain}, nil
}
