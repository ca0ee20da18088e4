// Package fragment implements the structural IR node described in spec
// §3/§4.6: a tree of Fragments holding statements, per-domain driver
// sets, named clock domains, ordered sub-fragments, and port directions.
//
// Fragment plays the role core.Graph plays in this module's teacher: the
// single mutable, map-owning container everything else (builder, ir,
// rtlil) operates over. Unlike core.Graph, Fragment carries no mutex —
// spec §5 is explicit that elaboration and emission are single-threaded,
// so the concurrency safety the teacher buys with sync.RWMutex is simply
// not needed here (see DESIGN.md).
package fragment
