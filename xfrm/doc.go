// Package xfrm implements the generic value/statement rewrite framework
// the ir passes are built from (spec §4.8 "Transform framework", §9
// "Cycle avoidance in transforms" and "Determinism under iteration").
//
// Like algorithms.BFS's hook-struct traversal, a ValueMapper or
// StatementMapper is a plain struct of optional callback fields: leave a
// hook nil and MapValue/MapStatements recurses through that node
// unchanged, or set it to intercept and rewrite that node kind.
package xfrm
