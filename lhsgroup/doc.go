// Package lhsgroup analyzes compound assignment targets (spec §4.7.4:
// "LHS group analysis"). When a single Assign's left-hand side is a
// Cat of several distinct Signals — `Cat(a, b) <= rhs` — the emitter
// must treat a and b as co-written by one cell output and legalize them
// together; lhsgroup computes that grouping with a union-find over
// signal identities, the same data structure prim_kruskal uses to group
// vertices into spanning-tree components, repurposed here to group
// signals into co-assigned sets instead.
package lhsgroup
