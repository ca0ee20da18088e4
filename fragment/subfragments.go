package fragment

// Subfragment pairs a nested Fragment with the (possibly empty) name it
// was added under. An empty Name means the fragment is anonymous and
// will be assigned a positional name at emission time (spec §4.7.6).
type Subfragment struct {
	Frag *Fragment
	Name string
}

// AddSubfragment appends sub under name, preserving insertion order
// (spec §5: subfragment emission order is part of output determinism).
// A non-empty name that collides with an existing subfragment name
// returns ErrDuplicateSubfragmentName.
func (f *Fragment) AddSubfragment(sub *Fragment, name string) error {
	if f == nil || sub == nil {
		return ErrNilFragment
	}
	if name != "" {
		for _, existing := range f.Subfragments {
			if existing.Name == name {
				return fragmentErrorf("AddSubfragment", ErrDuplicateSubfragmentName, name)
			}
		}
	}
	f.Subfragments = append(f.Subfragments, Subfragment{Frag: sub, Name: name})
	return nil
}
