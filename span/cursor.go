package span

import (
	"fmt"

	"github.com/npillmayer/attrib"
)

// Cursor is a position within a span, expressed as a byte offset into one
// of its runs. Offset 0 is the run's start; an offset equal to the run's
// length denotes the boundary after it.
type Cursor struct {
	Run    RunID
	Offset int
}

func (c Cursor) String() string {
	return fmt.Sprintf("⟨run#%d+%d⟩", c.Run, c.Offset)
}

// Range is a selection between two cursors. Anchor is where the selection
// started, Focus where it ends; Focus may precede Anchor in text order.
// A range with equal anchor and focus is a collapsed cursor.
type Range struct {
	Anchor Cursor
	Focus  Cursor
}

// Collapsed creates a collapsed range at the given cursor.
func Collapsed(c Cursor) Range {
	return Range{Anchor: c, Focus: c}
}

// IsCollapsed reports whether anchor and focus denote the same position.
func (rng Range) IsCollapsed() bool {
	return rng.Anchor == rng.Focus
}

// Locate maps an absolute byte offset onto a cursor. Offsets on a run
// boundary resolve into the run following the boundary, except for the very
// end of the span.
func (sp *Span) Locate(pos int) (Cursor, error) {
	if pos < 0 {
		return Cursor{}, attrib.ErrOutOfRange
	}
	at := 0
	for _, id := range sp.order {
		r := sp.byID[id]
		if pos < at+len(r.text) {
			return Cursor{Run: id, Offset: pos - at}, nil
		}
		at += len(r.text)
	}
	if pos == at && len(sp.order) > 0 {
		last := sp.byID[sp.order[len(sp.order)-1]]
		return Cursor{Run: last.id, Offset: len(last.text)}, nil
	}
	return Cursor{}, attrib.ErrOutOfRange
}

// Offset maps a cursor onto its absolute byte offset within the span.
func (sp *Span) Offset(c Cursor) (int, error) {
	i := sp.indexOf(c.Run)
	if i < 0 {
		return 0, attrib.ErrStaleReference
	}
	r := sp.byID[c.Run]
	if c.Offset < 0 || c.Offset > len(r.text) {
		return 0, attrib.ErrOutOfRange
	}
	return sp.start(i) + c.Offset, nil
}

// Ordered returns the range with anchor and focus swapped if the focus
// precedes the anchor in text order. The second return value reports
// whether the original range was reversed.
func (sp *Span) Ordered(rng Range) (Range, bool, error) {
	a, err := sp.Offset(rng.Anchor)
	if err != nil {
		return rng, false, err
	}
	f, err := sp.Offset(rng.Focus)
	if err != nil {
		return rng, false, err
	}
	if f < a {
		return Range{Anchor: rng.Focus, Focus: rng.Anchor}, true, nil
	}
	return rng, false, nil
}
