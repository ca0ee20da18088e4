// Package stmt implements the sequential-logic statement tree (spec §3
// Statement / §4.3): assignments, switch/case priority trees, and formal
// property statements.
//
// Grounded on bfs/types.go's plain-data, sentinel-error-only style: this
// package holds types, not algorithms — the algorithms that consume a
// statement tree live in ir and rtlil.
package stmt
