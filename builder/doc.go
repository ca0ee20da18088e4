// Package builder provides the DSL surface for constructing a
// fragment.Fragment by hand (spec §4.4): a Module accumulates signal
// assignments, recording driver sets per clock domain, and records
// if/elif/else and switch/case control flow as nested stmt.Switch
// trees.
//
// The package offers the following key components:
//
//   - Module, New: the builder's entry point; owns the fragment being
//     assembled plus the value.Arena its signals are allocated from.
//   - Domain selection (domainsel.go): Comb/Sync/Domain, qualifying
//     every subsequent Assign until the next selector.
//   - If/Elif/Else (if_.go): nested-Switch lowering with a "1" case for
//     the true branch and a pattern-less default case otherwise.
//   - Switch/Case/Default (switch_.go): an explicit priority decision
//     tree over an arbitrary-width test value.
//   - FSM/State/Ongoing (fsm.go): an implicit Switch over a synthesized
//     state Signal.
//
// Every block construct (If/Switch/FSM) is opened and closed through an
// explicit stack (stack.go): opening a block appends its stmt.Switch node
// to the enclosing body and pushes a frame; Close (or the End* variants)
// pops that frame, returning ErrUnbalancedStack if the stack is empty or
// (for End*) the wrong kind of frame is on top. Builder methods are not safe for concurrent use by multiple
// goroutines on the same Module; callers assemble one fragment per
// goroutine and pass the result onward.
package builder
