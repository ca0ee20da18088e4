// Package value implements the immutable bit-vector expression algebra
// described in spec §3/§4.2: constants, signals, operators, slices, part
// selects, concatenation, array proxies, clock-domain samples, and the
// formal-only AnyValue/Initial leaves.
//
// Every exported type implements Value. Construction never normalizes or
// simplifies an expression — the tree a caller builds is the tree the
// rtlil package later emits, bit for bit (spec §4.2: "Operator
// construction never normalizes or simplifies").
//
// Values are shared and immutable: the same *Signal or *Cat may appear in
// many statement trees, and equality is by identity (pointer identity for
// every variant here), never by structural comparison; RHSSignals and
// LHSSignals deduplicate signals by SignalID.
package value
