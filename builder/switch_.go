package builder

import (
	"fmt"

	"github.com/shrine-maiden-heavy-industries/torii-go/stmt"
	"github.com/shrine-maiden-heavy-industries/torii-go/value"
)

// switchFrame is one open Switch/Case/Default tree: an arbitrary-width
// priority decision over a single test value, unlike the boolified
// single-bit tests an If chain builds.
type switchFrame struct {
	sw         *stmt.Switch
	curCaseIdx int // -1 until the first Case/Default
}

func (f *switchFrame) kind() string { return "Switch" }

func (f *switchFrame) appendStmt(s stmt.Statement) error {
	if f.curCaseIdx < 0 {
		return fmt.Errorf("builder.Switch: %w", ErrCaseOutsideSwitch)
	}
	c := f.sw.Cases[f.curCaseIdx]
	c.Body = append(c.Body, s)
	f.sw.Cases[f.curCaseIdx] = c
	return nil
}

func validPatternChars(p string) bool {
	for i := 0; i < len(p); i++ {
		switch p[i] {
		case '0', '1', '-':
		default:
			return false
		}
	}
	return true
}

// Switch opens a decision tree over test. Every pattern given to a
// subsequent Case must have the same width as test.
func (m *Module) Switch(test value.Value) error {
	if test == nil {
		return fmt.Errorf("builder.Switch: %w", ErrNilValue)
	}
	sw := &stmt.Switch{Test: test}
	if err := m.appendStmt(sw); err != nil {
		return err
	}
	m.push(&switchFrame{sw: sw, curCaseIdx: -1})
	return nil
}

// Case opens a new arm of the innermost open Switch, selected when the
// test value matches any one of patterns bit-for-bit ('-' matches
// either bit). Case order is priority order: the first matching case
// wins even if a later one also matches.
func (m *Module) Case(patterns ...string) error {
	f, ok := m.top().(*switchFrame)
	if !ok {
		return fmt.Errorf("builder.Case: %w", ErrCaseOutsideSwitch)
	}
	width := value.Len(f.sw.Test)
	pp := make([]stmt.Pattern, len(patterns))
	for i, p := range patterns {
		if len(p) != width || !validPatternChars(p) {
			return fmt.Errorf("builder.Case: pattern %q: %w", p, stmt.ErrBadPattern)
		}
		pp[i] = stmt.Pattern(p)
	}
	f.sw.Cases = append(f.sw.Cases, stmt.Case{Patterns: pp})
	f.curCaseIdx = len(f.sw.Cases) - 1
	return nil
}

// Default opens the innermost open Switch's catch-all arm, matched when
// no preceding Case's patterns do. It must be the last arm opened.
func (m *Module) Default() error {
	f, ok := m.top().(*switchFrame)
	if !ok {
		return fmt.Errorf("builder.Default: %w", ErrCaseOutsideSwitch)
	}
	f.sw.Cases = append(f.sw.Cases, stmt.Case{})
	f.curCaseIdx = len(f.sw.Cases) - 1
	return nil
}

// EndSwitch closes the innermost open Switch.
func (m *Module) EndSwitch() error {
	return m.closeExpecting("Switch")
}
