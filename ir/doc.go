// Package ir implements the elaboration pipeline's post-build passes
// (spec §4.6 "Elaboration pipeline"): sample lowering, clock-domain
// propagation and lowering, and port propagation. Prepare runs these in
// the fixed order the spec requires, mirroring tsp.SolveWithMatrix's
// role as a single dispatcher stepping through several independently-
// testable stages. Clock-domain lowering unconditionally folds each
// domain's own synchronous reset into the signals it drives; callers
// that additionally want some other, arbitrary signal to gate or reset
// a fragment's statements reach for the separate EnableInserter/
// ResetInserter helper transforms; Prepare runs EnableInserter only when
// asked via WithEnable and never runs ResetInserter.
package ir
