// Package diag implements the non-fatal warning channel the elaboration
// and emission pipeline reports through (spec §7 "Error Handling
// Design": DriverConflict and UnusedElaboratable are warnings, not
// errors — emission continues after they are reported).
//
// There is no precedent for a non-fatal diagnostic sink anywhere in this
// module's teacher repo (every teacher error is a hard, returned error),
// so this package is grounded instead on original_source/torii/
// diagnostics/warnings.py's warning taxonomy, translated from Python's
// runtime-installed warnings.showwarning hook to an explicit Sink value
// threaded through by the caller — the idiomatic Go shape for "collect
// zero or more non-fatal notices during a call".
package diag
