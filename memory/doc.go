// Package memory implements the Memory primitive builder described in
// spec §4.5: a depth×width addressable array with independently
// configurable read and write ports, elaborating to a
// fragment.Fragment of Kind KindMemory.
//
// The builder API mirrors builder.New's functional-options
// construction style (see SPEC_FULL.md "AMBIENT STACK"), generalized
// from gridgraph's 2-D cell addressing to a 1-D depth×width array with
// named ports instead of geometric neighbors.
package memory
