package attrib

// Companion defaults. Some attribute kinds need an explicit default written
// when an attribute is removed, so that host or browser default styling
// cannot leak back in. The classic case: removing a text color must pin the
// background to an explicit "transparent" marker, or the host's default
// highlight would reappear.
//
// The table is consulted uniformly by the applier instead of scattering
// per-kind policy through the mutation code.

var companionDefaults = map[Kind]Attribute{
	Color: {Kind: Background, Value: "transparent"},
}

// CompanionDefault returns the attribute to write explicitly when an
// attribute of kind k is removed from a run. The second return value
// reports whether the kind has a companion default at all.
func CompanionDefault(k Kind) (Attribute, bool) {
	a, ok := companionDefaults[k]
	if !ok {
		return Attribute{}, false
	}
	return Canonical(a), true
}

// SetCompanionDefault registers or replaces the companion default for a
// kind. Registering an attribute of kind None removes the entry.
func SetCompanionDefault(k Kind, a Attribute) {
	if a.Kind == None {
		delete(companionDefaults, k)
		tracer().Debugf("attrib: companion default for %s cleared", k)
		return
	}
	companionDefaults[k] = Canonical(a)
	tracer().Debugf("attrib: companion default for %s is now %s", k, a)
}
