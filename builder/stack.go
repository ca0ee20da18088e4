package builder

import (
	"fmt"

	"github.com/shrine-maiden-heavy-industries/torii-go/stmt"
)

// frame is one open block on the builder's stack: an If/Elif/Else chain,
// a Switch/Case tree, or an FSM. appendStmt routes a statement into
// whichever case body is currently active for that block.
type frame interface {
	appendStmt(s stmt.Statement) error
	kind() string
}

// appendStmt routes s to the innermost open frame's active case body, or
// to the fragment's top-level statement list when the stack is empty.
func (m *Module) appendStmt(s stmt.Statement) error {
	if len(m.stack) == 0 {
		return m.frag.AddStatement(s)
	}
	return m.stack[len(m.stack)-1].appendStmt(s)
}

// top returns the innermost open frame, or nil if the stack is empty.
func (m *Module) top() frame {
	if len(m.stack) == 0 {
		return nil
	}
	return m.stack[len(m.stack)-1]
}

// push opens a new block, making it the innermost frame.
func (m *Module) push(f frame) {
	m.stack = append(m.stack, f)
}

// Close pops the innermost open block, regardless of its kind. Prefer
// the kind-specific EndIf/EndSwitch/EndFSM when the expected kind is
// known at the call site; they report a more precise mismatch.
func (m *Module) Close() error {
	if len(m.stack) == 0 {
		return fmt.Errorf("builder.Close: %w", ErrUnbalancedStack)
	}
	m.stack = m.stack[:len(m.stack)-1]
	return nil
}

// Depth reports how many blocks are currently open.
func (m *Module) Depth() int {
	return len(m.stack)
}

// closeExpecting pops the top frame, verifying it reports kindWant.
func (m *Module) closeExpecting(kindWant string) error {
	f := m.top()
	if f == nil || f.kind() != kindWant {
		return fmt.Errorf("builder.End%s: %w", kindWant, ErrUnbalancedStack)
	}
	return m.Close()
}
