package memory

import (
	"fmt"
	"math/big"

	"github.com/shrine-maiden-heavy-industries/torii-go/fragment"
	"github.com/shrine-maiden-heavy-industries/torii-go/value"
)

// Memory is the builder-facing handle for a depth×width addressable
// array (spec §4.5). Build one with New, attach ports with ReadPort and
// WritePort, then call Fragment to obtain the elaborated
// fragment.Fragment (Kind KindMemory) to add as a subfragment.
type Memory struct {
	arena *value.Arena
	info  *fragment.MemoryInfo
}

// Option configures a Memory at construction time.
type Option func(*fragment.MemoryInfo)

// WithInit supplies the initial contents, one entry per row in address
// order. Fewer entries than Depth leaves the remaining rows zeroed.
func WithInit(rows []*big.Int) Option {
	return func(m *fragment.MemoryInfo) { m.Init = rows }
}

// WithAttr attaches a single string-valued RTLIL attribute to the
// memory cell.
func WithAttr(key, val string) Option {
	return func(m *fragment.MemoryInfo) {
		if m.Attrs == nil {
			m.Attrs = map[string]string{}
		}
		m.Attrs[key] = val
	}
}

// New constructs a Memory named name with the given depth (row count)
// and width (bits per row), allocating port signals from arena.
func New(arena *value.Arena, name string, depth, width int, opts ...Option) (*Memory, error) {
	if depth <= 0 {
		return nil, fmt.Errorf("memory.New: %w", ErrBadDepth)
	}
	if width <= 0 {
		return nil, fmt.Errorf("memory.New: %w", ErrBadWidth)
	}
	info := &fragment.MemoryInfo{Name: name, Depth: depth, Width: width}
	for _, opt := range opts {
		opt(info)
	}
	if len(info.Init) > depth {
		return nil, fmt.Errorf("memory.New: %w", ErrInitTooLong)
	}
	mod := new(big.Int).Lsh(big.NewInt(1), uint(width))
	for i, row := range info.Init {
		if row.CmpAbs(mod) >= 0 || row.Sign() < 0 {
			return nil, fmt.Errorf("memory.New: init row %d: %w", i, ErrInitTooWide)
		}
	}
	return &Memory{arena: arena, info: info}, nil
}

// Fragment returns the fragment.Fragment (Kind KindMemory) representing
// this memory and its ports, suitable for AddSubfragment.
func (m *Memory) Fragment() *fragment.Fragment {
	return fragment.NewMemory(m.info)
}

// addrBitsFor returns the minimum unsigned width that can index depth
// distinct rows (ceil(log2(depth)), at least 1).
func addrBitsFor(depth int) int {
	bits := 1
	for (1 << uint(bits)) < depth {
		bits++
	}
	return bits
}

func checkAddrWidth(addr value.Value, depth int) error {
	need := addrBitsFor(depth)
	if value.Len(addr) < need {
		return fmt.Errorf("memory: %w (need >= %d bits for depth %d)", ErrBadAddrWidth, need, depth)
	}
	return nil
}
