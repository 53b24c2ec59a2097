package span

import (
	"github.com/npillmayer/attrib"
)

// The locator maps externally reported cursors and ranges onto run
// boundaries. An offset falling inside a run splits the run at that offset
// into two runs carrying identical attributes, so that the requested
// position becomes a boundary. Splitting at an existing boundary is a
// no-op.

// Resolve aligns a cursor with a run boundary, splitting the host run if
// the offset falls in its interior. The returned cursor sits at the start
// of the run following the boundary; only the very end of the span resolves
// to an end-of-run cursor.
//
// Resolving a stale run id flags ErrStaleReference, an offset outside the
// run's bounds flags ErrOutOfRange.
func (sp *Span) Resolve(c Cursor) (Cursor, error) {
	r, ok := sp.byID[c.Run]
	if !ok {
		return Cursor{}, attrib.ErrStaleReference
	}
	if c.Offset < 0 || c.Offset > len(r.text) {
		return Cursor{}, attrib.ErrOutOfRange
	}
	if c.Offset == 0 {
		return c, nil
	}
	if c.Offset == len(r.text) {
		if nxt, ok := sp.Next(c.Run); ok {
			return Cursor{Run: nxt, Offset: 0}, nil
		}
		return c, nil // end of span
	}
	right := sp.splitRun(r, c.Offset)
	tracer().Debugf("span: split run#%d at %d, new right run#%d", c.Run, c.Offset, right)
	return Cursor{Run: right, Offset: 0}, nil
}

// ResolveRange aligns both ends of a range with run boundaries. The range
// is returned in text order (anchor before focus). Both cursors of a
// collapsed range resolve to the same boundary.
func (sp *Span) ResolveRange(rng Range) (Range, error) {
	aPos, err := sp.Offset(rng.Anchor)
	if err != nil {
		return Range{}, err
	}
	fPos, err := sp.Offset(rng.Focus)
	if err != nil {
		return Range{}, err
	}
	return sp.ResolveOffsets(aPos, fPos)
}

// ResolveOffsets aligns the absolute byte range [from,to) with run
// boundaries and returns it as a boundary-aligned Range.
//
// The earlier position is resolved first; since splitting keeps the left
// half's identity and does not move absolute offsets, the later position is
// re-located afterwards and resolved in turn.
func (sp *Span) ResolveOffsets(from, to int) (Range, error) {
	if to < from {
		from, to = to, from
	}
	anchor, err := sp.Locate(from)
	if err != nil {
		return Range{}, err
	}
	if anchor, err = sp.Resolve(anchor); err != nil {
		return Range{}, err
	}
	if from == to {
		return Collapsed(anchor), nil
	}
	focus, err := sp.Locate(to)
	if err != nil {
		return Range{}, err
	}
	if focus, err = sp.Resolve(focus); err != nil {
		return Range{}, err
	}
	return Range{Anchor: anchor, Focus: focus}, nil
}

// Covered returns the ids of the runs fully contained in a
// boundary-aligned range, in span order. The range must have been resolved;
// a collapsed range covers no runs.
func (sp *Span) Covered(rng Range) ([]RunID, error) {
	if rng.IsCollapsed() {
		return nil, nil
	}
	ordered, _, err := sp.Ordered(rng)
	if err != nil {
		return nil, err
	}
	i := sp.indexOf(ordered.Anchor.Run)
	j := sp.indexOf(ordered.Focus.Run)
	if ordered.Focus.Offset > 0 {
		// end-of-span cursor: the focus run is included
		j++
	}
	if i < 0 || j < i {
		return nil, attrib.ErrOutOfRange
	}
	ids := make([]RunID, 0, j-i)
	for k := i; k < j && k < len(sp.order); k++ {
		ids = append(ids, sp.order[k])
	}
	return ids, nil
}

// splitRun splits r at interior offset off. The left part keeps the run's
// identity, the right part is a new run with an equal attribute set.
// left.text + right.text equals the original text exactly.
func (sp *Span) splitRun(r *Run, off int) RunID {
	i := sp.indexOf(r.id)
	right := sp.insertRunAt(i+1, r.text[off:], r.attrs)
	r.text = r.text[:off]
	return right
}
