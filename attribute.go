package attrib

import (
	"fmt"
	"strings"
)

// Kind identifies a class of formatting attribute. A run of text carries at
// most one attribute per kind.
type Kind int8

// Built-in attribute kinds.
const (
	None Kind = iota
	Bold
	Italic
	Underline
	Strike
	Link
	Color
	Background
)

func kindString(k Kind) string {
	switch k {
	case None:
		return "none"
	case Bold:
		return "bold"
	case Italic:
		return "italic"
	case Underline:
		return "underline"
	case Strike:
		return "strike"
	case Link:
		return "link"
	case Color:
		return "color"
	case Background:
		return "background"
	}
	return fmt.Sprintf("Kind(%d)", k)
}

func (k Kind) String() string {
	return kindString(k)
}

// HasValue reports whether attributes of this kind carry a value payload.
// Bold, italics etc. are pure flags, while links and colors are
// parameterized.
func (k Kind) HasValue() bool {
	switch k {
	case Link, Color, Background:
		return true
	}
	return false
}

// KindFromName maps an attribute-kind name onto a Kind. It accepts the
// canonical names as well as legacy encodings found in persisted markup,
// e.g. both "b" and "strong" denote Bold.
func KindFromName(name string) (Kind, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "b", "strong", "bold":
		return Bold, true
	case "i", "em", "italic", "italics":
		return Italic, true
	case "u", "ins", "underline":
		return Underline, true
	case "s", "del", "strike", "strikethrough":
		return Strike, true
	case "a", "link":
		return Link, true
	case "color":
		return Color, true
	case "background", "background-color":
		return Background, true
	}
	return None, false
}

// Attribute is a single formatting property: a kind plus an optional value.
// For kinds without a value payload the Value field is empty.
type Attribute struct {
	Kind  Kind
	Value string
}

func (a Attribute) String() string {
	if a.Kind.HasValue() {
		return fmt.Sprintf("%s(%s)", a.Kind, a.Value)
	}
	return a.Kind.String()
}

// Equal compares two attributes for kind and value equality. Values are
// compared in canonical form, i.e. `#F00` and `#ff0000` denote an equal
// color attribute.
func (a Attribute) Equal(other Attribute) bool {
	if a.Kind != other.Kind {
		return false
	}
	if !a.Kind.HasValue() {
		return true
	}
	return Canonical(a).Value == Canonical(other).Value
}

// Canonical returns the canonical form of an attribute. Legacy and duplicate
// encodings of the same formatting collapse to a single representation:
// color values are lowercased and 3-digit hex colors expand to 6 digits;
// values of kinds without a payload are dropped.
func Canonical(a Attribute) Attribute {
	if !a.Kind.HasValue() {
		a.Value = ""
		return a
	}
	switch a.Kind {
	case Color, Background:
		a.Value = canonicalColor(a.Value)
	case Link:
		a.Value = strings.TrimSpace(a.Value)
	}
	return a
}

// canonicalColor normalizes a CSS-ish color value. Hex colors are lowercased
// and short forms expanded; named colors are lowercased and passed through.
func canonicalColor(v string) string {
	v = strings.ToLower(strings.TrimSpace(v))
	if !strings.HasPrefix(v, "#") {
		return v
	}
	hex := v[1:]
	if len(hex) != 3 {
		return v
	}
	var sb strings.Builder
	sb.WriteByte('#')
	for i := 0; i < 3; i++ {
		sb.WriteByte(hex[i])
		sb.WriteByte(hex[i])
	}
	return sb.String()
}
