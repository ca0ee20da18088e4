package rtlil

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/shrine-maiden-heavy-industries/torii-go/domain"
	"github.com/shrine-maiden-heavy-industries/torii-go/fragment"
	"github.com/shrine-maiden-heavy-industries/torii-go/lhsgroup"
	"github.com/shrine-maiden-heavy-industries/torii-go/shape"
	"github.com/shrine-maiden-heavy-industries/torii-go/stmt"
	"github.com/shrine-maiden-heavy-industries/torii-go/value"
)

// convertFragment lowers one fragment.Fragment into an RTLIL cell
// description usable by its parent (spec §4.7.5 "Subfragment
// conversion"): a cell kind, a port map of parent-context values still
// awaiting compilation by the parent's own RHS compiler, and any cell
// parameters. Instance and KindMemory fragments are leaves with no
// module of their own; a KindNormal fragment is first emitted as a
// complete module (via convertModule), then referenced by name.
func convertFragment(b *Builder, arena *value.Arena, frag *fragment.Fragment, hierarchy []string) (cellType string, portMap map[string]value.Value, params map[string]Param, err error) {
	switch frag.Kind {
	case fragment.KindInstance:
		return convertInstance(frag)
	case fragment.KindMemory:
		return convertMemoryInstance(frag, hierarchy)
	default:
		modName, err := convertModule(b, arena, frag, hierarchy)
		if err != nil {
			return "", nil, nil, err
		}
		ports := map[string]value.Value{}
		for _, id := range frag.Ports.Signals() {
			sig, _ := frag.Signal(id)
			ports[sig.Name] = sig
		}
		return "\\" + modName, ports, nil, nil
	}
}

func convertInstance(frag *fragment.Fragment) (string, map[string]value.Value, map[string]Param, error) {
	ports := map[string]value.Value{}
	for name, v := range frag.NamedPorts {
		ports[name] = v
	}
	params := map[string]Param{}
	for name, raw := range frag.Parameters {
		params[name] = StrParam(raw)
	}
	cellType := frag.CellType
	if !strings.HasPrefix(cellType, "$") {
		cellType = "\\" + cellType
	}
	return cellType, ports, params, nil
}

func convertMemoryInstance(frag *fragment.Fragment, hierarchy []string) (string, map[string]value.Value, map[string]Param, error) {
	mem := frag.Memory
	rdClk := make([]value.Value, len(mem.ReadPorts))
	rdClkEnable, rdClkPolarity, rdTransparencyMask := 0, 0, 0
	rdEn := make([]value.Value, len(mem.ReadPorts))
	rdAddr := make([]value.Value, len(mem.ReadPorts))
	rdData := make([]value.Value, len(mem.ReadPorts))
	for i, p := range mem.ReadPorts {
		rdEn[i] = p.En
		rdAddr[i] = p.Addr
		rdData[i] = p.Data
		if p.Domain != fragment.CombDomain {
			cd, ok := frag.Domains[p.Domain]
			if !ok {
				return "", nil, nil, fmt.Errorf("rtlil: memory read port references undeclared domain %q", p.Domain)
			}
			rdClk[i] = cd.Clock
			rdClkEnable |= 1 << uint(i)
			if cd.ClockEdge == domain.Pos {
				rdClkPolarity |= 1 << uint(i)
			}
			if p.Transparent {
				for wi, wp := range mem.WritePorts {
					if wp.Domain == p.Domain {
						rdTransparencyMask |= 1 << uint(i*len(mem.WritePorts)+wi)
					}
				}
			}
		} else {
			rdClk[i] = value.NewConstInt(0, 1)
		}
	}

	wrClk := make([]value.Value, len(mem.WritePorts))
	wrAddr := make([]value.Value, len(mem.WritePorts))
	wrData := make([]value.Value, len(mem.WritePorts))
	wrEn := make([]value.Value, len(mem.WritePorts))
	wrClkEnable, wrClkPolarity := 0, 0
	for i, p := range mem.WritePorts {
		cd, ok := frag.Domains[p.Domain]
		if !ok {
			return "", nil, nil, fmt.Errorf("rtlil: memory write port references undeclared domain %q", p.Domain)
		}
		wrClk[i] = cd.Clock
		wrClkEnable |= 1 << uint(i)
		if cd.ClockEdge == domain.Pos {
			wrClkPolarity |= 1 << uint(i)
		}
		wrAddr[i] = p.Addr
		wrData[i] = p.Data
		granularity := p.Granularity
		if granularity == 0 {
			granularity = 1
		}
		bits := make([]value.Value, value.Len(p.En))
		for j := range bits {
			bit, err := value.NewSlice(p.En, j, j+1)
			if err != nil {
				return "", nil, nil, err
			}
			replicated := make([]value.Value, granularity)
			for k := range replicated {
				replicated[k] = bit
			}
			cat, err := value.NewCat(replicated...)
			if err != nil {
				return "", nil, nil, err
			}
			bits[j] = cat
		}
		cat, err := value.NewCat(bits...)
		if err != nil {
			return "", nil, nil, err
		}
		wrEn[i] = cat
	}

	initBits := new(big.Int)
	shift := 0
	for _, row := range mem.Init {
		v := new(big.Int).Set(row)
		mask := new(big.Int).Lsh(big.NewInt(1), uint(mem.Width))
		v.Mod(v, mask)
		v.Lsh(v, uint(shift))
		initBits.Or(initBits, v)
		shift += mem.Width
	}

	abits, err := shapeWidthForDepth(mem.Depth)
	if err != nil {
		return "", nil, nil, err
	}

	maxRD := maxInt(1, len(mem.ReadPorts))
	maxWR := maxInt(1, len(mem.WritePorts))
	maxRDWR := maxInt(1, len(mem.ReadPorts)*len(mem.WritePorts))

	memName := mem.Name
	if memName == "" && len(hierarchy) > 0 {
		memName = hierarchy[len(hierarchy)-1]
	}

	params := map[string]Param{
		"MEMID":                 StrParam(memName),
		"SIZE":                  IntParam(mem.Depth),
		"OFFSET":                IntParam(0),
		"ABITS":                 IntParam(abits),
		"WIDTH":                 IntParam(mem.Width),
		"INIT":                  ConstParam(initBits, mem.Depth*mem.Width, false),
		"RD_PORTS":              IntParam(len(mem.ReadPorts)),
		"RD_CLK_ENABLE":         ConstParam(big.NewInt(int64(rdClkEnable)), maxRD, false),
		"RD_CLK_POLARITY":       ConstParam(big.NewInt(int64(rdClkPolarity)), maxRD, false),
		"RD_TRANSPARENCY_MASK":  ConstParam(big.NewInt(int64(rdTransparencyMask)), maxRDWR, false),
		"RD_COLLISION_X_MASK":   ConstParam(big.NewInt(0), maxRDWR, false),
		"RD_WIDE_CONTINUATION":  ConstParam(big.NewInt(0), maxRD, false),
		"RD_CE_OVER_SRST":       ConstParam(big.NewInt(0), maxRD, false),
		"RD_ARST_VALUE":         ConstParam(big.NewInt(0), maxInt(1, len(mem.ReadPorts)*mem.Width), false),
		"RD_SRST_VALUE":         ConstParam(big.NewInt(0), maxInt(1, len(mem.ReadPorts)*mem.Width), false),
		"RD_INIT_VALUE":         ConstParam(big.NewInt(0), maxInt(1, len(mem.ReadPorts)*mem.Width), false),
		"WR_PORTS":              IntParam(len(mem.WritePorts)),
		"WR_CLK_ENABLE":         ConstParam(big.NewInt(int64(wrClkEnable)), maxWR, false),
		"WR_CLK_POLARITY":       ConstParam(big.NewInt(int64(wrClkPolarity)), maxWR, false),
		"WR_PRIORITY_MASK":      ConstParam(big.NewInt(0), maxInt(1, len(mem.WritePorts)*len(mem.WritePorts)), false),
		"WR_WIDE_CONTINUATION":  ConstParam(big.NewInt(0), maxWR, false),
	}

	catOrZero := func(parts []value.Value, width int) (value.Value, error) {
		if len(parts) == 0 {
			return value.NewConstInt(0, width), nil
		}
		return value.NewCat(parts...)
	}

	rdClkCat, err := catOrZero(rdClk, maxRD)
	if err != nil {
		return "", nil, nil, err
	}
	rdEnCat, err := catOrZero(rdEn, maxRD)
	if err != nil {
		return "", nil, nil, err
	}
	rdAddrCat, err := catOrZero(rdAddr, 0)
	if err != nil {
		return "", nil, nil, err
	}
	rdDataCat, err := catOrZero(rdData, maxInt(1, len(mem.ReadPorts)*mem.Width))
	if err != nil {
		return "", nil, nil, err
	}
	wrClkCat, err := catOrZero(wrClk, maxWR)
	if err != nil {
		return "", nil, nil, err
	}
	wrEnCat, err := catOrZero(wrEn, maxInt(1, len(mem.WritePorts)*mem.Width))
	if err != nil {
		return "", nil, nil, err
	}
	wrAddrCat, err := catOrZero(wrAddr, 0)
	if err != nil {
		return "", nil, nil, err
	}
	wrDataCat, err := catOrZero(wrData, maxInt(1, len(mem.WritePorts)*mem.Width))
	if err != nil {
		return "", nil, nil, err
	}

	ports := map[string]value.Value{
		"RD_CLK":  rdClkCat,
		"RD_EN":   rdEnCat,
		"RD_ARST": value.NewConstInt(0, maxRD),
		"RD_SRST": value.NewConstInt(0, maxRD),
		"RD_ADDR": rdAddrCat,
		"RD_DATA": rdDataCat,
		"WR_CLK":  wrClkCat,
		"WR_EN":   wrEnCat,
		"WR_ADDR": wrAddrCat,
		"WR_DATA": wrDataCat,
	}
	return "$mem_v2", ports, params, nil
}

func shapeWidthForDepth(depth int) (int, error) {
	w := 0
	for (1 << uint(w)) < depth {
		w++
	}
	return w, nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// convertModule emits one fragment.Fragment as a complete RTLIL module
// (spec §4.7.3-§4.7.5): it declares ports, recursively converts and
// instantiates subfragments, splits the fragment's statement tree into
// independent LHS groups and emits one process per group, emits
// synchronous flops, and wires every otherwise-undriven wire to its
// signal's reset value.
func convertModule(b *Builder, arena *value.Arena, frag *fragment.Fragment, hierarchy []string) (string, error) {
	attrs := Attrs{}
	if len(hierarchy) == 1 {
		attrs["top"] = IntAttr(1)
	}
	mod := b.Module(strings.Join(hierarchy, "."), attrs)
	state := newCompilerState(mod, b.emitSrc)
	rhs := newRHSCompiler(state)
	lhs := newLHSCompiler(state, rhs)

	rewritten, props := rewriteProperties(arena, frag.Statements)
	frag.Statements = rewritten
	for _, p := range props {
		if err := frag.AddDriver(p.check, fragment.CombDomain); err != nil {
			mod.Finish()
			return "", err
		}
		if err := frag.AddDriver(p.en, fragment.CombDomain); err != nil {
			mod.Finish()
			return "", err
		}
	}

	for _, domainName := range frag.DriverDomains() {
		sync := domainName != fragment.CombDomain
		for _, id := range frag.DrivenSignals(domainName) {
			state.markDriven(id, sync)
		}
	}

	for _, id := range frag.Ports.Signals() {
		dir, _ := frag.Ports.Direction(id)
		state.markPort(id, dir.String())
	}
	for _, id := range frag.Ports.Signals() {
		sig, _ := frag.Signal(id)
		if sig == nil {
			continue
		}
		if _, err := state.resolveCurr(sig, ""); err != nil {
			mod.Finish()
			return "", err
		}
	}

	for _, domainName := range frag.DriverDomains() {
		if domainName == fragment.CombDomain {
			continue
		}
		cd := frag.Domains[domainName]
		if _, err := state.resolveCurr(cd.Clock, ""); err != nil {
			mod.Finish()
			return "", err
		}
		if cd.Reset != nil {
			if _, err := state.resolveCurr(cd.Reset, ""); err != nil {
				mod.Finish()
				return "", err
			}
		}
	}

	driven := map[value.SignalID]bool{}
	for _, id := range frag.Ports.Signals() {
		dir, _ := frag.Ports.Direction(id)
		if dir == fragment.In || dir == fragment.InOut {
			driven[id] = true
		}
	}

	for _, sub := range frag.Subfragments {
		if isEmptySubfragment(sub.Frag) {
			continue
		}
		subName := sub.Name
		if subName == "" {
			subName = mod.Anonymous()
		}
		subHierarchy := append(append([]string{}, hierarchy...), subName)
		subType, subPortMap, subParams, err := convertFragment(b, arena, sub.Frag, subHierarchy)
		if err != nil {
			mod.Finish()
			return "", err
		}

		subPorts := map[string]string{}
		portOrder := sortedKeys(subPortMap)
		for _, port := range portOrder {
			v := subPortMap[port]
			if sub.Frag.Kind == fragment.KindNormal {
				for _, sig := range value.RHSSignals(v) {
					if _, err := state.resolveCurr(sig, subName); err != nil {
						mod.Finish()
						return "", err
					}
				}
			}
			if value.Len(v) > 0 || subType == "$mem_v2" {
				wire, err := rhs.compile(v)
				if err != nil {
					mod.Finish()
					return "", err
				}
				subPorts[port] = wire
			}
		}

		if _, err := mod.Cell(subType, subName, subParams, subPorts, portOrder, nil, ""); err != nil {
			mod.Finish()
			return "", err
		}

		if sub.Frag.Kind != fragment.KindNormal {
			for _, dir := range []fragment.Direction{fragment.Out, fragment.InOut} {
				for _, id := range sub.Frag.Ports.Signals() {
					d, _ := sub.Frag.Ports.Direction(id)
					if d == dir {
						driven[id] = true
					}
				}
			}
		} else {
			for _, id := range sub.Frag.Ports.Signals() {
				d, _ := sub.Frag.Ports.Direction(id)
				if d == fragment.Out || d == fragment.InOut {
					driven[id] = true
				}
			}
		}
	}

	if err := emitProcesses(state, rhs, lhs, frag); err != nil {
		mod.Finish()
		return "", err
	}

	if err := emitSyncFlops(state, frag, ""); err != nil {
		mod.Finish()
		return "", err
	}

	for _, domainName := range frag.DriverDomains() {
		for _, id := range frag.DrivenSignals(domainName) {
			driven[id] = true
		}
	}
	if err := connectUndrivenToReset(state, driven, frag, rhs); err != nil {
		mod.Finish()
		return "", err
	}

	if err := emitPropertyCells(state, props); err != nil {
		mod.Finish()
		return "", err
	}

	mod.Finish()
	return mod.Name(), nil
}

func isEmptySubfragment(f *fragment.Fragment) bool {
	if f.Kind != fragment.KindNormal {
		return false
	}
	return f.Ports.Len() == 0 && len(f.Statements) == 0 && len(f.Subfragments) == 0
}

func sortedKeys(m map[string]value.Value) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1] > out[j]; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}

// emitProcesses splits frag's statement tree into independent LHS groups
// (spec §4.7.3: "each group of signals co-written through a single
// statement must lower into its own RTLIL process, or Verilog
// simulators derived from it lose delta-cycle ordering") and emits one
// process per group, seeded with each driven signal's previous value
// ($next := reset constant for comb, $next := current value for sync).
func emitProcesses(state *compilerState, rhs *rhsCompiler, lhs *lhsCompiler, frag *fragment.Fragment) error {
	analyzer := lhsgroup.NewAnalyzer()
	collectAssignTargets(frag.Statements, analyzer)
	groups := analyzer.Groups()

	for gi, members := range groups {
		memberSet := map[value.SignalID]bool{}
		for _, id := range members {
			memberSet[id] = true
		}
		groupStmts := filterStatementsForGroup(frag.Statements, memberSet)

		proc := state.mod.Process(fmt.Sprintf("$group_%d", gi), nil, "")
		caseB := proc.Case()

		for _, domainName := range frag.DriverDomains() {
			for _, id := range frag.DrivenSignals(domainName) {
				if !memberSet[id] {
					continue
				}
				sig, ok := frag.Signal(id)
				if !ok {
					continue
				}
				var prev value.Value
				if domainName == fragment.CombDomain {
					prev = value.NewConst(sig.Reset, sig.Shape)
				} else {
					prev = sig
				}
				lhsWire, err := lhs.compile(sig)
				if err != nil {
					return err
				}
				rhsWire, err := rhs.compile(prev)
				if err != nil {
					return err
				}
				caseB.Assign(lhsWire, rhsWire)
			}
		}

		sc := newStmtCompiler(state, rhs, lhs)
		sc.wrapAssign = false
		if err := sc.compileList(caseB, groupStmts); err != nil {
			return err
		}

		proc.Finish()
	}
	return nil
}

func collectAssignTargets(list stmt.List, a *lhsgroup.Analyzer) {
	for _, s := range list {
		switch n := s.(type) {
		case *stmt.Assign:
			_ = a.AddAssign(n.LHS)
		case *stmt.Switch:
			for _, c := range n.Cases {
				collectAssignTargets(c.Body, a)
			}
		}
	}
}

// filterStatementsForGroup returns the subset of list relevant to
// members, preserving Switch structure (so a case with statements for
// more than one group still makes each group's process see the correct
// decision tree). Every case is kept, with its body filtered, since an
// emptied case still takes priority over the cases after it; a switch
// none of whose cases keeps a statement is dropped.
func filterStatementsForGroup(list stmt.List, members map[value.SignalID]bool) stmt.List {
	var out stmt.List
	for _, s := range list {
		switch n := s.(type) {
		case *stmt.Assign:
			sigs, err := value.LHSSignals(n.LHS)
			if err != nil {
				continue
			}
			touches := false
			for _, sig := range sigs {
				if members[sig.ID] {
					touches = true
					break
				}
			}
			if touches {
				out = append(out, n)
			}
		case *stmt.Switch:
			var cases []stmt.Case
			kept := false
			for _, c := range n.Cases {
				body := filterStatementsForGroup(c.Body, members)
				if len(body) > 0 {
					kept = true
				}
				cases = append(cases, stmt.Case{Patterns: c.Patterns, Body: body})
			}
			if kept {
				out = append(out, &stmt.Switch{Test: n.Test, Cases: cases, SrcLoc: n.SrcLoc})
			}
		}
	}
	return out
}

// propertyRecord is one assert/assume/cover statement normalized by
// rewriteProperties into a pair of ordinary driven signals, so the
// usual LHS-group/process machinery computes its conditionally-correct
// value; the actual $assert/$assume/$cover cell referencing those
// signals' resolved wires is emitted afterward, directly on the module
// (spec §4.7.3: cells are unconditional module-level constructs and
// cannot themselves live inside a process's switch/case tree).
type propertyRecord struct {
	check *value.Signal
	en    *value.Signal
	kind  stmt.PropertyKind
	name  string
	src   string
}

// rewriteProperties replaces every stmt.Property in list with two
// synthetic Assign statements (to freshly allocated check/enable
// signals) at the same tree position, preserving whatever switch
// nesting gated the original property, and returns the replaced list
// plus one propertyRecord per property found.
func rewriteProperties(arena *value.Arena, list stmt.List) (stmt.List, []propertyRecord) {
	var out stmt.List
	var props []propertyRecord
	for _, s := range list {
		switch n := s.(type) {
		case *stmt.Property:
			checkSig := value.NewSignal(arena, mustBoolShape(), value.WithName(propName(n, "check")))
			enSig := value.NewSignal(arena, mustBoolShape(), value.WithName(propName(n, "en")))
			enable := n.Enable
			if enable == nil {
				enable = value.NewConstInt(1, 1)
			}
			checkAssign, _ := stmt.NewAssign(checkSig, n.Test, fragment.CombDomain)
			enAssign, _ := stmt.NewAssign(enSig, enable, fragment.CombDomain)
			out = append(out, checkAssign, enAssign)
			props = append(props, propertyRecord{
				check: checkSig, en: enSig, kind: n.Kind, name: n.Name, src: srcOf(n.SrcLoc),
			})
		case *stmt.Switch:
			var cases []stmt.Case
			for _, c := range n.Cases {
				body, sub := rewriteProperties(arena, c.Body)
				props = append(props, sub...)
				cases = append(cases, stmt.Case{Patterns: c.Patterns, Body: body})
			}
			out = append(out, &stmt.Switch{Test: n.Test, Cases: cases, SrcLoc: n.SrcLoc})
		default:
			out = append(out, s)
		}
	}
	return out, props
}

func propName(p *stmt.Property, suffix string) string {
	if p.Name != "" {
		return p.Name + "$" + suffix
	}
	return "$" + p.Kind.String() + "$" + suffix
}

func mustBoolShape() shape.Shape { return shape.MustUnsigned(1) }

// emitPropertyCells instantiates the formal-only assert/assume/cover
// cell for every propertyRecord collected by rewriteProperties,
// referencing its check/enable signals' now-resolved current wires.
func emitPropertyCells(state *compilerState, props []propertyRecord) error {
	for _, p := range props {
		checkWire, err := state.resolveCurr(p.check, "")
		if err != nil {
			return err
		}
		enWire, err := state.resolveCurr(p.en, "")
		if err != nil {
			return err
		}
		if _, err := state.mod.Cell("$"+p.kind.String(), p.name, nil,
			map[string]string{"A": checkWire, "EN": enWire}, []string{"A", "EN"}, nil, p.src); err != nil {
			return err
		}
	}
	return nil
}
