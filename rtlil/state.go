package rtlil

import (
	"fmt"

	"github.com/shrine-maiden-heavy-industries/torii-go/stmt"
	"github.com/shrine-maiden-heavy-industries/torii-go/value"
)

// wirePair is a driven signal's current-value wire and, for
// synchronously-driven signals, its "$next" companion wire that the
// sync flop's D input reads from (spec §4.7.3).
type wirePair struct {
	curr string
	next string
}

// portInfo records a signal's position and kind within its module's
// port list, assigned in propagation order (spec §4.7.6).
type portInfo struct {
	id   int
	kind string
}

// compilerState is the per-module working set shared by the RHS/LHS
// value compilers and the statement compiler while converting one
// fragment.Fragment into one ModuleBuilder (grounded on
// original_source/torii/back/rtlil.py's _ValueCompilerState).
type compilerState struct {
	mod     *ModuleBuilder
	emitSrc bool

	wires  map[value.SignalID]*wirePair
	driven map[value.SignalID]bool
	ports  map[value.SignalID]portInfo
	anys   map[value.Value]string

	nextPortID int
	// currentCase is the switch-case arm the RHS/LHS compilers should
	// emit dynamic-index legalization switches into; set by the
	// statement compiler while it walks a Switch's Cases.
	currentCase *CaseBuilder
}

func newCompilerState(mod *ModuleBuilder, emitSrc bool) *compilerState {
	return &compilerState{
		mod:     mod,
		emitSrc: emitSrc,
		wires:   map[value.SignalID]*wirePair{},
		driven:  map[value.SignalID]bool{},
		ports:   map[value.SignalID]portInfo{},
		anys:    map[value.Value]string{},
	}
}

// markDriven records that signal is driven within the fragment being
// converted; sync selects whether it additionally needs a "$next" wire.
func (s *compilerState) markDriven(id value.SignalID, sync bool) {
	if sync {
		s.driven[id] = true
	} else if _, ok := s.driven[id]; !ok {
		s.driven[id] = false
	}
}

// markPort records signal's RTLIL port kind ("input"/"output"/"inout"),
// in first-registered order.
func (s *compilerState) markPort(id value.SignalID, kind string) {
	if _, ok := s.ports[id]; ok {
		return
	}
	s.nextPortID++
	s.ports[id] = portInfo{id: s.nextPortID, kind: kind}
}

// resolve returns signal's current/next wire pair, declaring the wire(s)
// on first use. prefix, if non-empty, names the wire "<prefix>_<name>"
// (used for a subfragment's otherwise-unconnected internal signals, spec
// §4.7.6 "sensible prefixed names").
func (s *compilerState) resolve(sig *value.Signal, prefix string, src string) (string, string, error) {
	if sig.Shape.Width == 0 {
		return "{ }", "{ }", nil
	}
	if wp, ok := s.wires[sig.ID]; ok {
		return wp.curr, wp.next, nil
	}

	var portID int
	var portKind string
	if pi, ok := s.ports[sig.ID]; ok {
		portID, portKind = pi.id, pi.kind
	}

	name := sig.Name
	if prefix != "" {
		name = prefix + "_" + sig.Name
	}

	attrs := Attrs{}
	for k, v := range sig.Attrs {
		attrs[k] = StrAttr(v)
	}
	syncDriven := s.driven[sig.ID]
	if syncDriven {
		attrs["init"] = ConstAttr(sig.Reset, sig.Shape.Width)
	}

	curr, err := s.mod.Wire(sig.Shape.Width, portID, portKind, name, attrs, src)
	if err != nil {
		return "", "", err
	}
	next := ""
	if syncDriven {
		next, err = s.mod.Wire(sig.Shape.Width, 0, "", curr+"$next", nil, src)
		if err != nil {
			return "", "", err
		}
	}
	s.wires[sig.ID] = &wirePair{curr: curr, next: next}
	return curr, next, nil
}

// resolveCurr is resolve, discarding the "$next" wire.
func (s *compilerState) resolveCurr(sig *value.Signal, prefix string) (string, error) {
	curr, _, err := s.resolve(sig, prefix, "")
	return curr, err
}

func srcOf(loc stmt.SrcLoc) string {
	if loc.File == "" {
		return ""
	}
	return fmt.Sprintf("%s:%d", loc.File, loc.Line)
}
