package memory

import (
	"fmt"

	"github.com/shrine-maiden-heavy-industries/torii-go/fragment"
	"github.com/shrine-maiden-heavy-industries/torii-go/shape"
	"github.com/shrine-maiden-heavy-industries/torii-go/value"
)

// ReadPortOption configures a read port at attachment time.
type ReadPortOption func(*fragment.ReadPort)

// WithTransparent marks a synchronous read port as transparent: a
// same-cycle write to the read address is visible on Data immediately
// rather than on the following cycle (spec §4.5).
func WithTransparent() ReadPortOption {
	return func(p *fragment.ReadPort) { p.Transparent = true }
}

// WithReadEnable gates a synchronous read port's sampling with en.
// Ignored (Data always samples) on asynchronous ports.
func WithReadEnable(en value.Value) ReadPortOption {
	return func(p *fragment.ReadPort) { p.En = en }
}

// ReadPort attaches a read port addressed by addr, synchronous to
// domainName ("" for asynchronous/combinational), and returns the
// signal carrying its output data.
func (m *Memory) ReadPort(domainName string, addr value.Value, opts ...ReadPortOption) (*value.Signal, error) {
	if addr == nil {
		return nil, fmt.Errorf("memory.ReadPort: %w", value.ErrNilValue)
	}
	if err := checkAddrWidth(addr, m.info.Depth); err != nil {
		return nil, fmt.Errorf("memory.ReadPort: %w", err)
	}
	data := value.NewSignal(m.arena, shape.MustUnsigned(m.info.Width),
		value.WithName(fmt.Sprintf("%s_r_data", m.info.Name)))
	port := fragment.ReadPort{Domain: domainName, Addr: addr, Data: data}
	for _, opt := range opts {
		opt(&port)
	}
	m.info.AddReadPort(port)
	return data, nil
}
