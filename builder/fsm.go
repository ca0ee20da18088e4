package builder

import (
	"fmt"

	"github.com/shrine-maiden-heavy-industries/torii-go/fragment"
	"github.com/shrine-maiden-heavy-industries/torii-go/shape"
	"github.com/shrine-maiden-heavy-industries/torii-go/stmt"
	"github.com/shrine-maiden-heavy-industries/torii-go/value"
)

// FSMHandle is the durable reference an FSM call returns: its state
// Signal outlives the FSM block itself, so Ongoing can be called anytime
// after construction, inside or outside the block (spec §4.4 "ongoing").
//
// The full set of states must be known when FSM is opened, rather than
// discovered incrementally as State is called: the state Signal's width
// is fixed at allocation time and, like every Signal, never resized
// afterward (spec §9 "FSM lowering" names this the "synthesized state
// Signal").
type FSMHandle struct {
	name       string
	stateSig   *value.Signal
	nextSig    *value.Signal
	stateIndex map[string]int
	width      int
}

// Ongoing returns a one-bit Value that is true exactly when the FSM's
// current state is name.
func (h *FSMHandle) Ongoing(name string) (value.Value, error) {
	idx, ok := h.stateIndex[name]
	if !ok {
		return nil, fmt.Errorf("builder.Ongoing(%s, %s): %w", h.name, name, ErrUnknownState)
	}
	return value.NewBinary(value.OpEq, h.stateSig, value.NewConstInt(int64(idx), h.width)), nil
}

// fsmFrame is one open FSM block. curState is the index into sw.Cases
// of the state arm currently accepting statements, or -1 before the
// first State call.
type fsmFrame struct {
	h        *FSMHandle
	sw       *stmt.Switch
	curState int
	opened   []bool
}

func (f *fsmFrame) kind() string { return "FSM" }

func (f *fsmFrame) appendStmt(s stmt.Statement) error {
	if f.curState < 0 {
		return fmt.Errorf("builder.FSM(%s): %w", f.h.name, ErrStateOutsideFSM)
	}
	c := f.sw.Cases[f.curState]
	c.Body = append(c.Body, s)
	f.sw.Cases[f.curState] = c
	return nil
}

func bitsForCount(n int) int {
	if n <= 1 {
		return 1
	}
	w := 0
	for (1 << uint(w)) < n {
		w++
	}
	return w
}

func formatStatePattern(idx, width int) stmt.Pattern {
	b := make([]byte, width)
	for i := 0; i < width; i++ {
		bit := (idx >> uint(width-1-i)) & 1
		b[i] = byte('0' + bit)
	}
	return stmt.Pattern(b)
}

// FSM opens a new finite-state machine running in domainName, with the
// given states in declaration order (spec §4.4 "FSM/State/Next/Ongoing";
// spec §9 "FSM lowering"). It synthesizes a state Signal and a
// combinational next-state Signal, and appends a Switch over the state
// Signal plus the synchronous assignment that latches next into state.
//
// State calls open one arm of that Switch per listed state name; Next
// and Ongoing reference states by the same names.
func (m *Module) FSM(name, domainName string, states []string) (*FSMHandle, error) {
	if len(states) == 0 {
		return nil, fmt.Errorf("builder.FSM(%s): %w", name, ErrUnknownState)
	}
	stateIndex := make(map[string]int, len(states))
	for i, s := range states {
		if _, dup := stateIndex[s]; dup {
			return nil, fmt.Errorf("builder.FSM(%s): state %q: %w", name, s, ErrDuplicateState)
		}
		stateIndex[s] = i
	}

	width := bitsForCount(len(states))
	sh := shape.MustUnsigned(width)
	stateSig := value.NewSignal(m.arena, sh, value.WithName(name+"_state"))
	nextSig := value.NewSignal(m.arena, sh, value.WithName(name+"_next"))

	sw := &stmt.Switch{Test: stateSig}
	if err := m.appendStmt(sw); err != nil {
		return nil, err
	}
	regAssign, err := stmt.NewAssign(stateSig, nextSig, domainName)
	if err != nil {
		return nil, fmt.Errorf("builder.FSM(%s): %w", name, err)
	}
	if err := m.appendStmt(regAssign); err != nil {
		return nil, err
	}
	if err := m.frag.AddDriver(stateSig, domainName); err != nil {
		return nil, fmt.Errorf("builder.FSM(%s): %w", name, err)
	}
	if err := m.frag.AddDriver(nextSig, fragment.CombDomain); err != nil {
		return nil, fmt.Errorf("builder.FSM(%s): %w", name, err)
	}

	h := &FSMHandle{name: name, stateSig: stateSig, nextSig: nextSig, stateIndex: stateIndex, width: width}
	m.push(&fsmFrame{h: h, sw: sw, curState: -1, opened: make([]bool, len(states))})
	return h, nil
}

// State opens the arm of the innermost open FSM named name, closing
// whichever state (if any) was open before it. A state not explicitly
// assigned to by Next holds at itself on the next clock edge.
func (m *Module) State(name string) error {
	f, ok := m.top().(*fsmFrame)
	if !ok {
		return fmt.Errorf("builder.State(%s): %w", name, ErrStateOutsideFSM)
	}
	idx, ok := f.h.stateIndex[name]
	if !ok {
		return fmt.Errorf("builder.State(%s): %w", name, ErrUnknownState)
	}
	if f.opened[idx] {
		return fmt.Errorf("builder.State(%s): %w", name, ErrDuplicateState)
	}
	f.opened[idx] = true
	f.sw.Cases = append(f.sw.Cases, stmt.Case{Patterns: []stmt.Pattern{formatStatePattern(idx, f.h.width)}})
	f.curState = len(f.sw.Cases) - 1

	seed, err := stmt.NewAssign(f.h.nextSig, value.NewConstInt(int64(idx), f.h.width), fragment.CombDomain)
	if err != nil {
		return fmt.Errorf("builder.State(%s): %w", name, err)
	}
	return f.appendStmt(seed)
}

// Next assigns the innermost open FSM's next state to name, wherever in
// the current state's body Next is called (including nested inside an
// If/Switch), overriding the default seed that holds the current state.
func (m *Module) Next(name string) error {
	var f *fsmFrame
	for i := len(m.stack) - 1; i >= 0; i-- {
		if ff, ok := m.stack[i].(*fsmFrame); ok && ff.curState >= 0 {
			f = ff
			break
		}
	}
	if f == nil {
		return fmt.Errorf("builder.Next(%s): %w", name, ErrNextOutsideState)
	}
	idx, ok := f.h.stateIndex[name]
	if !ok {
		return fmt.Errorf("builder.Next(%s): %w", name, ErrUnknownState)
	}
	assign, err := stmt.NewAssign(f.h.nextSig, value.NewConstInt(int64(idx), f.h.width), fragment.CombDomain)
	if err != nil {
		return fmt.Errorf("builder.Next(%s): %w", name, err)
	}
	return m.appendStmt(assign)
}

// EndFSM closes the innermost open FSM, whether or not its last State
// was itself closed by a following State call.
func (m *Module) EndFSM() error {
	return m.closeExpecting("FSM")
}
