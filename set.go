package attrib

import (
	"iter"
	"sort"
	"strings"
)

// Set is an unordered set of attributes with at most one attribute per kind.
// The zero value is the empty set and ready to use. Sets have value
// semantics; Add and Remove mutate the receiver, Merge and Without return
// derived sets.
type Set struct {
	attrs []Attribute // sorted by kind, one entry per kind
}

// MakeSet creates a set from the given attributes. Later duplicates of a
// kind win over earlier ones.
func MakeSet(attrs ...Attribute) Set {
	var s Set
	for _, a := range attrs {
		s.Add(a)
	}
	return s
}

// Len returns the number of attributes in the set.
func (s Set) Len() int {
	return len(s.attrs)
}

// IsEmpty reports whether the set contains no attributes.
func (s Set) IsEmpty() bool {
	return len(s.attrs) == 0
}

// Add puts an attribute into the set, in canonical form. An existing
// attribute of the same kind is replaced, never duplicated.
func (s *Set) Add(a Attribute) {
	if a.Kind == None {
		return
	}
	a = Canonical(a)
	i := sort.Search(len(s.attrs), func(i int) bool { return s.attrs[i].Kind >= a.Kind })
	if i < len(s.attrs) && s.attrs[i].Kind == a.Kind {
		s.attrs[i] = a
		return
	}
	s.attrs = append(s.attrs, Attribute{})
	copy(s.attrs[i+1:], s.attrs[i:])
	s.attrs[i] = a
}

// Remove deletes the attribute of the given kind, if present. It reports
// whether an attribute has been removed.
func (s *Set) Remove(k Kind) bool {
	for i, a := range s.attrs {
		if a.Kind == k {
			s.attrs = append(s.attrs[:i:i], s.attrs[i+1:]...)
			return true
		}
	}
	return false
}

// Get returns the attribute of the given kind.
func (s Set) Get(k Kind) (Attribute, bool) {
	for _, a := range s.attrs {
		if a.Kind == k {
			return a, true
		}
	}
	return Attribute{}, false
}

// Has reports whether the set carries an attribute of the given kind.
func (s Set) Has(k Kind) bool {
	_, ok := s.Get(k)
	return ok
}

// Contains reports whether the set carries the given attribute. For kinds
// without a value payload this is a kind check; for parameterized kinds the
// values have to match in canonical form.
func (s Set) Contains(a Attribute) bool {
	got, ok := s.Get(a.Kind)
	if !ok {
		return false
	}
	if !a.Kind.HasValue() {
		return true
	}
	return got.Equal(a)
}

// Equal reports whether two sets contain the same kind/value pairs.
func (s Set) Equal(other Set) bool {
	if len(s.attrs) != len(other.attrs) {
		return false
	}
	for i, a := range s.attrs {
		if !a.Equal(other.attrs[i]) {
			return false
		}
	}
	return true
}

// Clone returns an independent copy of the set.
func (s Set) Clone() Set {
	if len(s.attrs) == 0 {
		return Set{}
	}
	c := Set{attrs: make([]Attribute, len(s.attrs))}
	copy(c.attrs, s.attrs)
	return c
}

// Merge returns the union of two sets. On kind collisions the attributes of
// other win.
func (s Set) Merge(other Set) Set {
	m := s.Clone()
	for _, a := range other.attrs {
		m.Add(a)
	}
	return m
}

// Without returns a copy of the set with the attribute of kind k removed.
func (s Set) Without(k Kind) Set {
	c := s.Clone()
	c.Remove(k)
	return c
}

// With returns a copy of the set with attribute a added.
func (s Set) With(a Attribute) Set {
	c := s.Clone()
	c.Add(a)
	return c
}

// Canonicalize rewrites every attribute of the set to its canonical form.
func (s *Set) Canonicalize() {
	for i, a := range s.attrs {
		s.attrs[i] = Canonical(a)
	}
}

// RangeAttributes returns an iterator over the attributes of the set, in
// ascending kind order.
func (s Set) RangeAttributes() iter.Seq[Attribute] {
	return func(yield func(Attribute) bool) {
		for _, a := range s.attrs {
			if !yield(a) {
				return
			}
		}
	}
}

// Each applies a function to every attribute of the set. Iteration stops at
// the first callback error and returns that error to the caller.
func (s Set) Each(f func(Attribute) error) error {
	for _, a := range s.attrs {
		if err := f(a); err != nil {
			return err
		}
	}
	return nil
}

// String returns an informational string for the set. Clients must not rely
// on the format of the string.
func (s Set) String() string {
	if len(s.attrs) == 0 {
		return "{}"
	}
	parts := make([]string, len(s.attrs))
	for i, a := range s.attrs {
		parts[i] = a.String()
	}
	return "{" + strings.Join(parts, ",") + "}"
}
