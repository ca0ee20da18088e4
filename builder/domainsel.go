package builder

import "github.com/shrine-maiden-heavy-industries/torii-go/fragment"

// SyncDomain is the conventional name of a design's primary
// synchronous domain, analogous to the teacher's default weighting
// scheme: a name every caller can reach for before registering anything
// more specific via Domain.
const SyncDomain = "sync"

// Comb selects the combinational pseudo-domain for every Assign that
// follows, until the next domain selector (spec §4.4 "d.comb").
func (m *Module) Comb() {
	m.domain = fragment.CombDomain
	m.domainSet = true
}

// Sync selects SyncDomain for every Assign that follows (spec §4.4
// "d.sync"). For a non-default synchronous domain use Domain.
func (m *Module) Sync() {
	m.Domain(SyncDomain)
}

// Domain selects an arbitrary named clock domain for every Assign that
// follows (spec §4.4 "d.<name>"). name is not validated against
// Fragment.Domains here; ir.Prepare later creates a domain for an
// unregistered name through its missing-domain callback, while
// ir.LowerDomains called on its own reports ir.ErrUnknownDomain for it.
func (m *Module) Domain(name string) {
	m.domain = name
	m.domainSet = true
}
