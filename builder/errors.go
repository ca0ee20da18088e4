// errors.go — sentinel errors for the builder package.
//
// Error policy: only sentinel variables are exposed; callers use
// errors.Is(err, ErrX) to branch on semantics. Sentinels are never
// wrapped with formatted strings at definition site; implementations
// attach context with %w at the call site.

package builder

import "errors"

// ErrCaseOutsideSwitch indicates Case or Default was called with no
// open Switch frame on the stack (spec §4.4 "invalid nesting").
var ErrCaseOutsideSwitch = errors.New("builder: case outside switch")

// ErrStateOutsideFSM indicates State was called with no open FSM frame
// on the stack.
var ErrStateOutsideFSM = errors.New("builder: state outside FSM")

// ErrNextOutsideState indicates Next was called with no open FSM state
// frame on the stack (spec §4.4 "next outside FSM").
var ErrNextOutsideState = errors.New("builder: next outside state")

// ErrElifElseWithoutIf indicates Elif or Else was called when the frame
// on top of the stack is not an open If chain.
var ErrElifElseWithoutIf = errors.New("builder: elif/else without a matching if")

// ErrUnbalancedStack indicates Close (or an End* method) was called with
// no open block, or with the wrong kind of block on top of the stack.
var ErrUnbalancedStack = errors.New("builder: unbalanced open/close")

// ErrUnknownState indicates State, Next or Ongoing named a state absent
// from the state list given to FSM, or FSM was given an empty list.
var ErrUnknownState = errors.New("builder: unknown FSM state")

// ErrDuplicateState indicates State was called twice with the same name
// inside one FSM.
var ErrDuplicateState = errors.New("builder: duplicate FSM state")

// ErrDomainRequired indicates an Assign was attempted before any domain
// selector (Comb/Sync/Domain) had been chosen.
var ErrDomainRequired = errors.New("builder: no domain selected")

// ErrNilValue indicates a nil value.Value was passed where a value is
// required (condition, test, assignment operand).
var ErrNilValue = errors.New("builder: nil value")
