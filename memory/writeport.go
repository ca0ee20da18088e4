package memory

import (
	"fmt"

	"github.com/shrine-maiden-heavy-industries/torii-go/fragment"
	"github.com/shrine-maiden-heavy-industries/torii-go/value"
)

// WriteWithGranularity attaches a write port whose Width/granularity
// independently-enabled byte (or other-width) lanes are gated by the
// corresponding bit of en. granularity must evenly divide the memory's
// width, and en must be exactly width/granularity bits wide.
func (m *Memory) WriteWithGranularity(domainName string, addr, data, en value.Value, granularity int) error {
	if addr == nil || data == nil || en == nil {
		return fmt.Errorf("memory.WriteWithGranularity: %w", value.ErrNilValue)
	}
	if err := checkAddrWidth(addr, m.info.Depth); err != nil {
		return fmt.Errorf("memory.WriteWithGranularity: %w", err)
	}
	if granularity <= 0 || m.info.Width%granularity != 0 {
		return fmt.Errorf("memory.WriteWithGranularity: %w", ErrBadGranularity)
	}
	if value.Len(data) != m.info.Width {
		return fmt.Errorf("memory.WriteWithGranularity: data width %d != memory width %d", value.Len(data), m.info.Width)
	}
	wantEn := m.info.Width / granularity
	if value.Len(en) != wantEn {
		return fmt.Errorf("memory.WriteWithGranularity: %w (got %d, want %d)", ErrBadEnableWidth, value.Len(en), wantEn)
	}
	m.info.AddWritePort(fragment.WritePort{
		Domain:      domainName,
		Addr:        addr,
		Data:        data,
		En:          en,
		Granularity: granularity,
	})
	return nil
}

// WritePort attaches a whole-word write port: a single-bit en gates the
// entire Width-bit data word (granularity == width, so En must be
// exactly one bit wide).
func (m *Memory) WritePort(domainName string, addr, data, en value.Value) error {
	return m.WriteWithGranularity(domainName, addr, data, en, m.info.Width)
}
