package fragment

import (
	"errors"
	"fmt"
)

// fragmentErrorf wraps sentinel with a call-site-specific message,
// matching builder's "pkg.Func: %w" wrapping convention.
func fragmentErrorf(where string, sentinel error, detail string) error {
	return fmt.Errorf("fragment.%s: %w: %s", where, sentinel, detail)
}

// Sentinel errors for Fragment construction and mutation.
var (
	// ErrNilFragment indicates a nil *Fragment receiver or argument was
	// used where a real Fragment is required.
	ErrNilFragment = errors.New("fragment: nil fragment")

	// ErrDuplicateSubfragmentName indicates two subfragments were added
	// under the same explicit name (spec §3 invariant: "the set of
	// subfragment names is unique").
	ErrDuplicateSubfragmentName = errors.New("fragment: duplicate subfragment name")

	// ErrDriverConflict indicates a signal was driven in two different
	// domains within the same fragment (spec §3: "A signal may be
	// driven in at most one domain per fragment").
	ErrDriverConflict = errors.New("fragment: signal driven in two domains")

	// ErrUnknownDomain indicates a statement or driver set referenced a
	// clock domain name not present in Domains and not resolvable by the
	// caller-supplied missing-domain callback (spec §4.6 step 2).
	ErrUnknownDomain = errors.New("fragment: unknown clock domain")

	// ErrBadPortDirection indicates a Direction value outside {In, Out,
	// InOut} was supplied.
	ErrBadPortDirection = errors.New("fragment: invalid port direction")

	// ErrUndrivenSignal indicates the post-elaboration invariant check
	// (spec §3 "Invariants enforced after elaboration") found a signal
	// named in a driver set with no corresponding LHS appearance.
	ErrUndrivenSignal = errors.New("fragment: driven signal has no assignment")
)
