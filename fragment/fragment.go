package fragment

import (
	"github.com/shrine-maiden-heavy-industries/torii-go/domain"
	"github.com/shrine-maiden-heavy-industries/torii-go/stmt"
	"github.com/shrine-maiden-heavy-industries/torii-go/value"
)

// Kind distinguishes the three Fragment variants (spec §3: "Fragment
// Kind"). A plain Fragment (KindNormal) holds statements and
// subfragments; KindInstance and KindMemory fragments are leaves whose
// semantics come entirely from their Instance/Memory fields and carry no
// statements of their own.
type Kind int

const (
	KindNormal Kind = iota
	KindInstance
	KindMemory
)

func (k Kind) String() string {
	switch k {
	case KindNormal:
		return "normal"
	case KindInstance:
		return "instance"
	case KindMemory:
		return "memory"
	default:
		return "unknown"
	}
}

// Fragment is the structural IR node (spec §3, §4.6): a statement tree
// plus the per-domain driver sets, named clock domains, ordered
// sub-fragments, and port directions needed to elaborate and emit it.
//
// Fragment is the module's analogue of the teacher's core.Graph: every
// later package (builder, ir, rtlil) either builds one up or walks one
// down. Unlike core.Graph it carries no mutex; see doc.go.
type Fragment struct {
	Kind       Kind
	Statements stmt.List
	Domains    map[string]*domain.ClockDomain

	Subfragments []Subfragment
	Ports        *PortSet

	Attrs   map[string]string
	Flatten bool
	SrcLoc  stmt.SrcLoc

	// CellType, Parameters, and NamedPorts are populated only when
	// Kind == KindInstance (spec §3 "Instance").
	CellType   string
	Parameters map[string]string
	NamedPorts map[string]value.Value

	// Memory is populated only when Kind == KindMemory.
	Memory *MemoryInfo

	drivers     map[string]*driverSet
	driverOf    map[value.SignalID]string
	domainOrder []string
	signals     map[value.SignalID]*value.Signal
}

// New constructs an empty KindNormal Fragment.
func New() *Fragment {
	return &Fragment{
		Kind:     KindNormal,
		Domains:  map[string]*domain.ClockDomain{},
		Ports:    newPortSet(),
		drivers:  map[string]*driverSet{},
		driverOf: map[value.SignalID]string{},
		signals:  map[value.SignalID]*value.Signal{},
	}
}

// Signal looks up a Signal previously recorded via AddDriver, or
// (failing that) registered as a port, by its ID. Used by ir's
// port-propagation pass and the rtlil back-end, both of which need the
// Signal pointer (for its Shape and Name) given only the SignalID a
// driver set or PortSet stores.
func (f *Fragment) Signal(id value.SignalID) (*value.Signal, bool) {
	if s, ok := f.signals[id]; ok {
		return s, true
	}
	return f.Ports.Signal(id)
}

// NewInstance constructs a KindInstance leaf Fragment wrapping an
// external cell reference (spec §3 "Instance").
func NewInstance(cellType string) *Fragment {
	f := New()
	f.Kind = KindInstance
	f.CellType = cellType
	f.Parameters = map[string]string{}
	f.NamedPorts = map[string]value.Value{}
	return f
}

// NewMemory constructs a KindMemory leaf Fragment wrapping a
// MemoryInfo (spec §3 "MemoryInstance").
func NewMemory(mem *MemoryInfo) *Fragment {
	f := New()
	f.Kind = KindMemory
	f.Memory = mem
	return f
}

// AddStatement appends s to f's statement list. Order is preserved and
// semantically significant (spec §5 "Statement order").
func (f *Fragment) AddStatement(s stmt.Statement) error {
	if f == nil {
		return ErrNilFragment
	}
	f.Statements = append(f.Statements, s)
	return nil
}

// AddDomain registers a named clock domain for use by this fragment's
// statements and driver sets. Re-registering the same name with an
// identical domain is a no-op.
func (f *Fragment) AddDomain(d *domain.ClockDomain) {
	if f == nil || d == nil {
		return
	}
	f.Domains[d.Name] = d
}
