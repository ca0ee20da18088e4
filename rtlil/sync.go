package rtlil

import (
	"fmt"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/shrine-maiden-heavy-industries/torii-go/domain"
	"github.com/shrine-maiden-heavy-industries/torii-go/fragment"
	"github.com/shrine-maiden-heavy-industries/torii-go/value"
)

// emitSyncFlops instantiates one $dff or $adff per signal driven inside
// a real (non-comb) clock domain of frag (spec §4.7.4). Sync-reset
// domains get a plain $dff: ir.LowerDomains already appended a reset
// override switch to frag's statements for every such domain, so the
// signal's "$next" wire already carries the reset value whenever the
// domain's reset is asserted by the time the statement compiler reaches
// it. Async-reset domains instead get an $adff with ARST wired
// directly, since that reset must override the D input rather than the
// logic feeding it.
func emitSyncFlops(state *compilerState, frag *fragment.Fragment, src string) error {
	for _, domainName := range frag.DriverDomains() {
		if domainName == fragment.CombDomain {
			continue
		}
		cd, ok := frag.Domains[domainName]
		if !ok {
			return fmt.Errorf("rtlil: fragment drives undeclared domain %q", domainName)
		}
		clkWire, err := state.resolveCurr(cd.Clock, "")
		if err != nil {
			return err
		}
		var rstWire string
		if cd.Reset != nil {
			rstWire, err = state.resolveCurr(cd.Reset, "")
			if err != nil {
				return err
			}
		}
		polarity := 0
		if cd.ClockEdge == domain.Pos {
			polarity = 1
		}

		for _, id := range frag.DrivenSignals(domainName) {
			sig, ok := frag.Signal(id)
			if !ok {
				continue
			}
			curr, next, err := state.resolve(sig, "", src)
			if err != nil {
				return err
			}

			if !cd.AsyncReset || cd.Reset == nil {
				_, err = state.mod.Cell("$dff", "", map[string]Param{
					"CLK_POLARITY": IntParam(polarity),
					"WIDTH":        IntParam(sig.Shape.Width),
				}, map[string]string{
					"CLK": clkWire, "D": next, "Q": curr,
				}, []string{"CLK", "D", "Q"}, nil, src)
			} else {
				_, err = state.mod.Cell("$adff", "", map[string]Param{
					"ARST_POLARITY": IntParam(1),
					"ARST_VALUE":    ConstParam(sig.Reset, sig.Shape.Width, sig.Shape.Signed),
					"CLK_POLARITY":  IntParam(polarity),
					"WIDTH":         IntParam(sig.Shape.Width),
				}, map[string]string{
					"ARST": rstWire, "CLK": clkWire, "D": next, "Q": curr,
				}, []string{"ARST", "CLK", "D", "Q"}, nil, src)
			}
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// connectUndrivenToReset wires every wire this module allocated but
// never actually drives (no LHS assignment, no input/inout port, no
// subfragment output) directly to its signal's reset value (spec
// §4.7.4: "a signal read but never driven behaves as its reset
// constant"). driven collects every SignalID considered driven from any
// of those three sources.
func connectUndrivenToReset(state *compilerState, driven map[value.SignalID]bool, frag *fragment.Fragment, rhs *rhsCompiler) error {
	ids := maps.Keys(state.wires)
	slices.Sort(ids)
	for _, id := range ids {
		wp := state.wires[id]
		if driven[id] {
			continue
		}
		sig, ok := frag.Signal(id)
		if !ok {
			continue
		}
		resetWire, err := rhs.compile(value.NewConst(sig.Reset, sig.Shape))
		if err != nil {
			return err
		}
		state.mod.Connect(wp.curr, resetWire)
	}
	return nil
}
