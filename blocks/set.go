package blocks

// Set is a lookup table of namespaced block identifiers.
type Set map[string]struct{}

// NewSet builds a set from identifiers. Bare names get the default namespace.
func NewSet(names ...string) Set {
	set := make(Set, len(names))
	for _, name := range names {
		set[Namespaced(name)] = struct{}{}
	}
	return set
}

func (s Set) Contains(name string) bool {
	_, ok := s[name]
	return ok
}

// Skips reports whether a decoded block should be left out of the collision
// geometry: air always is, anything else only when it is in the set.
func (s Set) Skips(name string) bool {
	return IsAir(name) || s.Contains(name)
}
