// Package rtlil emits a prepared fragment.Fragment tree as textual
// Yosys RTLIL (spec §4.7 "RTLIL Emitter"). It is the final stage of the
// elaboration pipeline: by the time Convert runs, ir.Prepare has already
// lowered Sample/ClockSignal/ResetSignal leaves and propagated ports, so
// this package only ever has to turn an already-legal structural tree
// into text.
//
// Grounded on original_source/torii/back/rtlil.py, the only RTLIL
// backend this module's source tree has ever had. The teacher repo
// (katalvlaran-lvlath) has no textual-emitter precedent of its own;
// matrix/textbuilder-shaped helpers are adapted from its functional-
// options and sentinel-error conventions, not from a matching emitter.
package rtlil
