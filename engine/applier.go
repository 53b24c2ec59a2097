package engine

/*
_________________________________________________________________________

BSD 3-Clause License

Copyright (c) Norbert Pillmayer

For details please refer to the LICENSE file.
*/

import (
	"strings"

	"github.com/npillmayer/attrib"
	"github.com/npillmayer/attrib/span"
)

// Apply sets an attribute on every run covered by a range. Run boundaries
// are created as needed: a range starting or ending in a run's interior
// splits the run, and only the inner part receives the attribute. A run
// already carrying another value of the same kind gets the new value,
// attributes of one kind never accumulate.
//
// A zero-width range is left alone entirely; formatting a collapsed
// cursor is the business of TogglePendingAtCursor. The selection after
// the operation is returned.
func (e *Engine) Apply(rng span.Range, a attrib.Attribute) span.Range {
	if !e.enter("Apply") {
		return e.sel
	}
	defer e.leave()
	return e.mutateRange(rng, a, addAttr)
}

// Remove takes an attribute kind off every run covered by a range,
// splitting boundary runs as Apply does. If the removed kind has a
// companion kind, the companion's default value is written to runs that
// do not carry the companion, so dependent renderers see a complete pair.
func (e *Engine) Remove(rng span.Range, a attrib.Attribute) span.Range {
	if !e.enter("Remove") {
		return e.sel
	}
	defer e.leave()
	return e.mutateRange(rng, a, removeAttr)
}

// Toggle applies an attribute to a range, or removes it if the range
// already carries it uniformly. Whitespace-only stretches do not count
// against uniformity, so toggling bold over "foo bar" with only the words
// bold still removes. A collapsed range is routed to the pending
// attribute machinery instead.
func (e *Engine) Toggle(rng span.Range, a attrib.Attribute) span.Range {
	if !e.enter("Toggle") {
		return e.sel
	}
	defer e.leave()
	a = attrib.Canonical(a)
	collapsed, err := e.zeroWidth(rng)
	if err != nil {
		tracer().Errorf("engine: toggle: %v", err)
		return e.sel
	}
	if collapsed {
		e.sel = span.Collapsed(rng.Anchor)
		return e.togglePending(a)
	}
	if e.uniform(rng, a) {
		return e.mutateRange(rng, a, removeAttr)
	}
	return e.mutateRange(rng, a, addAttr)
}

// IsUniform reports whether an attribute is carried by every
// non-whitespace character of a range. A collapsed range reports the
// attribute state at the cursor's run. The check is read-only and never
// alters run boundaries.
func (e *Engine) IsUniform(rng span.Range, a attrib.Attribute) bool {
	return e.uniform(rng, attrib.Canonical(a))
}

func (e *Engine) uniform(rng span.Range, a attrib.Attribute) bool {
	lo, err := e.sp.Offset(rng.Anchor)
	if err != nil {
		tracer().Debugf("engine: uniformity check at stale anchor: %v", err)
		return false
	}
	hi, err := e.sp.Offset(rng.Focus)
	if err != nil {
		tracer().Debugf("engine: uniformity check at stale focus: %v", err)
		return false
	}
	if lo > hi {
		lo, hi = hi, lo
	}
	if lo == hi {
		r, err := e.sp.Run(rng.Anchor.Run)
		return err == nil && r.Attrs().Contains(a)
	}
	any := false
	for r, pos := range e.sp.RangeRuns() {
		if pos >= hi {
			break
		}
		end := pos + r.Len()
		if end <= lo || r.IsEmpty() {
			continue
		}
		from, to := max(pos, lo)-pos, min(end, hi)-pos
		if strings.TrimSpace(r.Text()[from:to]) == "" {
			continue
		}
		any = true
		if !r.Attrs().Contains(a) {
			return false
		}
	}
	return any
}

// mutateRange resolves a range onto run boundaries, rewrites the covered
// runs' attribute sets, re-normalizes the touched region and restores the
// selection over the same text. Stale or out-of-range cursors abort the
// mutation before anything changed; the span is never left with a half
// applied attribute.
func (e *Engine) mutateRange(rng span.Range, a attrib.Attribute, mut func(*attrib.Set, attrib.Attribute)) span.Range {
	a = attrib.Canonical(a)
	snap := e.sp.SnapshotSelection(rng)
	collapsed, err := e.zeroWidth(rng)
	if err != nil {
		return e.recoverSelection(snap, err)
	}
	if collapsed {
		e.setSelection(span.Collapsed(rng.Anchor))
		return e.sel
	}
	resolved, err := e.sp.ResolveRange(rng)
	if err != nil {
		return e.recoverSelection(snap, err)
	}
	covered, err := e.sp.Covered(resolved)
	if err != nil {
		return e.recoverSelection(snap, err)
	}
	for _, id := range covered {
		r, err := e.sp.Run(id)
		if err != nil {
			continue
		}
		attrs := r.Attrs()
		mut(&attrs, a)
		e.sp.SetRunAttrs(id, attrs)
	}
	e.sp.Normalize(e.scopeAround(covered...), e.pins())
	e.setSelection(e.sp.RestoreSelection(snap))
	return e.sel
}

// zeroWidth reports whether a range spans no text at all, which includes
// distinct cursors denoting the same boundary.
func (e *Engine) zeroWidth(rng span.Range) (bool, error) {
	if rng.IsCollapsed() {
		return true, nil
	}
	lo, err := e.sp.Offset(rng.Anchor)
	if err != nil {
		return false, err
	}
	hi, err := e.sp.Offset(rng.Focus)
	if err != nil {
		return false, err
	}
	return lo == hi, nil
}

// recoverSelection logs a failed range operation and re-derives a usable
// selection; the span itself is untouched at this point.
func (e *Engine) recoverSelection(snap span.SelectionSnapshot, err error) span.Range {
	tracer().Errorf("engine: range operation aborted: %v", err)
	e.setSelection(e.sp.RestoreSelection(snap))
	return e.sel
}

func addAttr(attrs *attrib.Set, a attrib.Attribute) {
	attrs.Add(a)
}

func removeAttr(attrs *attrib.Set, a attrib.Attribute) {
	if !attrs.Remove(a.Kind) {
		return
	}
	if def, ok := attrib.CompanionDefault(a.Kind); ok && !attrs.Has(def.Kind) {
		attrs.Add(def)
	}
}
