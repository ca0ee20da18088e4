package xfrm

import "github.com/shrine-maiden-heavy-industries/torii-go/fragment"

// MapFragment rewrites f's own statement list in place through sm, and,
// if recurse is true, does the same for every subfragment transitively.
// KindInstance and KindMemory fragments carry no statements of their own
// and are left untouched beyond recursing into their (always empty)
// Subfragments list.
func MapFragment(f *fragment.Fragment, sm *StatementMapper, recurse bool) {
	if f == nil {
		return
	}
	f.Statements = sm.MapStatements(f.Statements)
	if !recurse {
		return
	}
	for _, sub := range f.Subfragments {
		MapFragment(sub.Frag, sm, true)
	}
}
