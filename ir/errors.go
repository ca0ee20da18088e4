package ir

import "errors"

// Sentinel errors for the elaboration pipeline's ir passes.
var (
	// ErrDomainConflict indicates two distinct ClockDomain values were
	// found registered under the same name somewhere in a fragment tree
	// (spec §4.6 step 2).
	ErrDomainConflict = errors.New("ir: conflicting clock domain definitions for the same name")

	// ErrUnknownDomain indicates a ClockSignal or ResetSignal referenced
	// a domain name absent from the propagated domain table (spec §4.6
	// step 3).
	ErrUnknownDomain = errors.New("ir: unknown clock domain")
)
