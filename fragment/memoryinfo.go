package fragment

import (
	"math/big"

	"github.com/shrine-maiden-heavy-industries/torii-go/value"
)

// ReadPort is one read port of a MemoryInfo (spec §3 "MemoryInstance",
// spec §4.5 "Memory primitives"). Addr selects the row; Data is the
// combinational or registered (per Domain) read result; En gates
// whether a registered port samples on this cycle.
//
// Domain == "" selects an asynchronous (combinational) read port;
// otherwise the port is synchronous to that clock domain.
type ReadPort struct {
	Domain      string
	Addr        value.Value
	Data        *value.Signal
	En          value.Value
	Transparent bool
}

// WritePort is one write port of a MemoryInfo. Granularity splits Data's
// width into independently-enabled bit groups; En's width must equal
// Data's width divided by Granularity (spec §4.5).
type WritePort struct {
	Domain      string
	Addr        value.Value
	Data        value.Value
	En          value.Value
	Granularity int
}

// MemoryInfo is the content and port list of a KindMemory Fragment (spec
// §3 "MemoryInstance"). Init holds one entry per row starting at row 0;
// if it is shorter than Depth, the remaining higher rows are zero at
// emission time.
type MemoryInfo struct {
	Name       string
	Depth      int
	Width      int
	Init       []*big.Int
	ReadPorts  []ReadPort
	WritePorts []WritePort
	Attrs      map[string]string
}

// AddReadPort appends a read port, preserving declaration order (spec
// §5: port order is part of emitted-cell determinism).
func (m *MemoryInfo) AddReadPort(p ReadPort) {
	m.ReadPorts = append(m.ReadPorts, p)
}

// AddWritePort appends a write port, preserving declaration order.
func (m *MemoryInfo) AddWritePort(p WritePort) {
	m.WritePorts = append(m.WritePorts, p)
}
