package fragment

import "github.com/shrine-maiden-heavy-industries/torii-go/value"

// CombDomain is the driver-set key used for combinationally-driven
// signals (spec §3: "domain = ⊥"). A real clock domain never has this
// name (domain.New rejects an empty name), so CombDomain can never alias
// a user domain.
const CombDomain = ""

// driverSet is an insertion-ordered set of SignalIDs, keyed by domain
// name. Ordered iteration is required end-to-end by spec §5/§9, so this
// is a slice-backed set (index map for O(1) membership, slice for
// deterministic order) rather than a bare map.
type driverSet struct {
	order []value.SignalID
	index map[value.SignalID]int
}

func newDriverSet() *driverSet {
	return &driverSet{index: map[value.SignalID]int{}}
}

func (d *driverSet) add(id value.SignalID) {
	if _, ok := d.index[id]; ok {
		return
	}
	d.index[id] = len(d.order)
	d.order = append(d.order, id)
}

func (d *driverSet) has(id value.SignalID) bool {
	_, ok := d.index[id]
	return ok
}

func (d *driverSet) signals() []value.SignalID {
	out := make([]value.SignalID, len(d.order))
	copy(out, d.order)
	return out
}

// AddDriver records that signal is driven within domainName ("" for
// combinational) inside f. It returns ErrDriverConflict if signal is
// already driven in a different domain within f (spec §3 invariant,
// spec testable property 6).
func (f *Fragment) AddDriver(signal *value.Signal, domainName string) error {
	if f == nil || signal == nil {
		return ErrNilFragment
	}
	if existing, ok := f.driverOf[signal.ID]; ok && existing != domainName {
		return fragmentErrorf("AddDriver(%s)", ErrDriverConflict, signal.Name)
	}
	f.driverOf[signal.ID] = domainName
	f.signals[signal.ID] = signal
	set, ok := f.drivers[domainName]
	if !ok {
		set = newDriverSet()
		f.drivers[domainName] = set
		f.domainOrder = append(f.domainOrder, domainName)
	}
	set.add(signal.ID)
	return nil
}

// DriverDomains returns the domain names with at least one driven
// signal, in first-referenced order, ⊥/CombDomain included if present.
func (f *Fragment) DriverDomains() []string {
	out := make([]string, len(f.domainOrder))
	copy(out, f.domainOrder)
	return out
}

// DrivenSignals returns the SignalIDs driven within domainName, in
// insertion order.
func (f *Fragment) DrivenSignals(domainName string) []value.SignalID {
	set, ok := f.drivers[domainName]
	if !ok {
		return nil
	}
	return set.signals()
}

// DomainOf reports which domain (possibly CombDomain) drives signal
// within f, and whether it is driven at all.
func (f *Fragment) DomainOf(id value.SignalID) (string, bool) {
	d, ok := f.driverOf[id]
	return d, ok
}
