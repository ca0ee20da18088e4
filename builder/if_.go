package builder

import (
	"fmt"

	"github.com/shrine-maiden-heavy-industries/torii-go/stmt"
	"github.com/shrine-maiden-heavy-industries/torii-go/value"
)

// ifFrame is one open If/Elif/Else chain. curSwitch/curCaseIdx always
// point at whichever case body is currently accepting statements: the
// "1" (true) case of the most recently opened level, or (after Else)
// that level's bare default case.
//
// Elif does not append a second case to curSwitch's own Cases, since a
// stmt.Switch carries exactly one Test and an elif's condition differs
// from the enclosing If's; instead it nests a fresh Switch inside
// curSwitch's default case and descends into it. The user sees one
// logical chain; the statement tree is a right-leaning nest of
// single-condition switches, one per elif.
type ifFrame struct {
	curSwitch  *stmt.Switch
	curCaseIdx int
	sealed     bool
}

func (f *ifFrame) kind() string { return "If" }

func (f *ifFrame) appendStmt(s stmt.Statement) error {
	c := f.curSwitch.Cases[f.curCaseIdx]
	c.Body = append(c.Body, s)
	f.curSwitch.Cases[f.curCaseIdx] = c
	return nil
}

// boolify reduces cond to a single bit via OpBool, unless it is already
// one bit wide.
func boolify(cond value.Value) value.Value {
	if value.Len(cond) == 1 {
		return cond
	}
	return value.NewUnary(value.OpBool, cond)
}

// If opens a new If/Elif/Else chain, testing cond. Statements appended
// before the next Elif, Else, or EndIf belong to the true branch.
func (m *Module) If(cond value.Value) error {
	if cond == nil {
		return fmt.Errorf("builder.If: %w", ErrNilValue)
	}
	sw := &stmt.Switch{
		Test:  boolify(cond),
		Cases: []stmt.Case{{Patterns: []stmt.Pattern{"1"}}},
	}
	if err := m.appendStmt(sw); err != nil {
		return err
	}
	m.push(&ifFrame{curSwitch: sw, curCaseIdx: 0})
	return nil
}

// Elif extends the innermost open If chain with another condition,
// tested only when every earlier condition in the chain was false.
func (m *Module) Elif(cond value.Value) error {
	if cond == nil {
		return fmt.Errorf("builder.Elif: %w", ErrNilValue)
	}
	f, ok := m.top().(*ifFrame)
	if !ok || f.sealed {
		return fmt.Errorf("builder.Elif: %w", ErrElifElseWithoutIf)
	}
	inner := &stmt.Switch{
		Test:  boolify(cond),
		Cases: []stmt.Case{{Patterns: []stmt.Pattern{"1"}}},
	}
	f.curSwitch.Cases = append(f.curSwitch.Cases, stmt.Case{Body: stmt.List{inner}})
	f.curSwitch = inner
	f.curCaseIdx = 0
	return nil
}

// Else opens the final, unconditional branch of the innermost open If
// chain: reached only when every earlier condition was false.
func (m *Module) Else() error {
	f, ok := m.top().(*ifFrame)
	if !ok || f.sealed {
		return fmt.Errorf("builder.Else: %w", ErrElifElseWithoutIf)
	}
	f.curSwitch.Cases = append(f.curSwitch.Cases, stmt.Case{})
	f.curCaseIdx = len(f.curSwitch.Cases) - 1
	f.sealed = true
	return nil
}

// EndIf closes the innermost open If chain.
func (m *Module) EndIf() error {
	return m.closeExpecting("If")
}
