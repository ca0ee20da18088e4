// Package domain implements ClockDomain (spec §3): a named pair of
// (clock, reset) signals plus reset polarity/timing flags, as referenced
// by synchronous statements and resolved by the domain-lowering IR pass.
//
// Grounded on dijkstra/types.go's small, single-concept, functional-
// constructor style.
package domain
