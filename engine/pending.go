package engine

/*
_________________________________________________________________________

BSD 3-Clause License

Copyright (c) Norbert Pillmayer

For details please refer to the LICENSE file.
*/

import (
	"strings"

	"github.com/google/uuid"
	"github.com/npillmayer/attrib"
	"github.com/npillmayer/attrib/span"
)

// Toggling an attribute at a collapsed cursor cannot change any existing
// run. Instead, an empty run carrying the toggled attribute set is placed
// at the cursor position and a pending record keeps watch over it across
// content changes:
//
//   - while the cursor stays inside the run, typed text lands in it and
//     picks up the toggled formatting (phases open and typing),
//   - when the cursor leaves an untouched run, the run is taken out again
//     and the surrounding structure healed,
//   - when the cursor leaves a typed-into run, the run is sealed at its
//     current length and the record keeps relocating any text the host
//     appends past that length to the far side of the boundary (phase
//     tracking), until a deletion inside the sealed run retires it.
type pendingPhase int8

const (
	pendingOpen     pendingPhase = iota + 1 // created, nothing typed yet
	pendingTyping                           // cursor inside, text typed
	pendingTracking                         // sealed, boundary watched
)

type pending struct {
	id       uuid.UUID
	run      span.RunID
	attr     attrib.Attribute
	outside  attrib.Set // formatting in effect outside the pending run
	phase    pendingPhase
	baseLen  int // run length right after entry
	prevRun  span.RunID
	prevLen  int // preceding run's length, to spot drifted insertions
	allowed  int // run length sealed at exit
	boundary uuid.UUID
	leadWS   string // whitespace provisionally held at the boundary
	flushed  bool   // boundary text has been relocated at least once
	typed    bool
}

// TogglePendingAtCursor toggles an attribute at the collapsed cursor. If a
// pending record for the same attribute is already open at the cursor, the
// toggle closes it; otherwise a new pending attribute is entered. Called
// with a non-collapsed selection this is a no-op, range toggles go through
// Toggle.
//
// The resulting selection is returned; the cursor ends up inside the
// pending run so that subsequent typing picks up the toggled formatting.
func (e *Engine) TogglePendingAtCursor(a attrib.Attribute) span.Range {
	if !e.enter("TogglePendingAtCursor") {
		return e.sel
	}
	defer e.leave()
	return e.togglePending(attrib.Canonical(a))
}

func (e *Engine) togglePending(a attrib.Attribute) span.Range {
	if !e.sel.IsCollapsed() {
		tracer().Debugf("engine: pending toggle with non-collapsed selection ignored")
		return e.sel
	}
	cur := e.sel.Anchor
	for _, p := range e.livePending() {
		if p.run != cur.Run || !p.attr.Equal(a) {
			continue
		}
		switch p.phase {
		case pendingOpen, pendingTyping:
			return e.closePending(p)
		case pendingTracking:
			if r, err := e.sp.Run(p.run); err == nil && cur.Offset == r.Len() {
				return e.unseal(p)
			}
		}
	}
	if host := e.openPendingAt(cur.Run); host != nil {
		return e.stackPending(host, a)
	}
	return e.enterPending(cur, a)
}

// enterPending places an empty run with the toggled attribute set at the
// cursor, splitting the host run if the cursor is in its interior. An
// attribute-identical preceding run is merged in, so that no superfluous
// run boundary appears.
func (e *Engine) enterPending(cur span.Cursor, a attrib.Attribute) span.Range {
	host, err := e.sp.Run(cur.Run)
	if err != nil {
		tracer().Errorf("engine: pending toggle at stale cursor %v: %v", cur, err)
		return e.sel
	}
	outside := host.Attrs()
	attrs := outside.Clone()
	if attrs.Contains(a) {
		attrs = attrs.Without(a.Kind)
		if def, ok := attrib.CompanionDefault(a.Kind); ok && !attrs.Has(def.Kind) {
			attrs = attrs.With(def)
		}
	} else {
		attrs = attrs.With(a)
	}
	bc, err := e.sp.Resolve(cur)
	if err != nil {
		tracer().Errorf("engine: pending toggle: %v", err)
		return e.sel
	}
	var nr span.RunID
	if bc.Offset == 0 {
		nr, err = e.sp.InsertRunBefore(bc.Run, "", attrs)
	} else { // cursor at the very end of the span
		nr, err = e.sp.InsertRunAfter(bc.Run, "", attrs)
	}
	if err != nil {
		tracer().Errorf("engine: pending toggle: %v", err)
		return e.sel
	}
	p := &pending{
		id:      uuid.New(),
		run:     nr,
		attr:    a,
		outside: outside,
		phase:   pendingOpen,
	}
	off := 0
	if prev, ok := e.sp.Prev(nr); ok {
		if pr, err := e.sp.Run(prev); err == nil && pr.Attrs().Equal(attrs) {
			off = pr.Len()
			p.baseLen = off
			e.sp.Merge(prev, nr)
			p.run = prev
		}
	}
	e.refreshPrev(p)
	e.pending = append(e.pending, p)
	tracer().Debugf("engine: pending %s enters %v on run %d", p.id, a, p.run)
	e.setSelection(span.Collapsed(span.Cursor{Run: p.run, Offset: off}))
	return e.sel
}

// stackPending toggles a second attribute onto a run already targeted by
// an open pending record. The run is reused, only its attribute set
// changes; a separate record per attribute keeps exit handling uniform.
func (e *Engine) stackPending(host *pending, a attrib.Attribute) span.Range {
	r, err := e.sp.Run(host.run)
	if err != nil {
		return e.sel
	}
	attrs := r.Attrs()
	if attrs.Contains(a) {
		attrs = attrs.Without(a.Kind)
		if def, ok := attrib.CompanionDefault(a.Kind); ok && !attrs.Has(def.Kind) {
			attrs = attrs.With(def)
		}
	} else {
		attrs = attrs.With(a)
	}
	if err := e.sp.SetRunAttrs(host.run, attrs); err != nil {
		return e.sel
	}
	e.pending = append(e.pending, &pending{
		id:      uuid.New(),
		run:     host.run,
		attr:    a,
		outside: host.outside,
		phase:   host.phase,
		baseLen: host.baseLen,
		prevRun: host.prevRun,
		prevLen: host.prevLen,
		typed:   host.typed,
	})
	return e.sel
}

// closePending ends a pending record: an untouched empty run is removed
// and the split healed, a typed-into run is sealed at its current length.
// A record whose run was merged into an existing one without any typing
// simply goes away, the structure is as it was.
func (e *Engine) closePending(p *pending) span.Range {
	r, err := e.sp.Run(p.run)
	if err != nil {
		e.drop(p)
		return e.sel
	}
	if !p.typed && r.Len() <= p.baseLen {
		if r.IsEmpty() && p.baseLen == 0 {
			return e.removePendingRun(p)
		}
		e.drop(p)
		return e.sel
	}
	return e.seal(p)
}

// removePendingRun takes an untouched pending run out of the span again
// and lets the normalizer re-merge the halves of the original split. The
// span ends up textually and structurally as it was before entry.
func (e *Engine) removePendingRun(p *pending) span.Range {
	snap := e.sp.SnapshotSelection(e.sel)
	var ns []span.RunID
	if prev, ok := e.sp.Prev(p.run); ok {
		ns = append(ns, prev)
	}
	if next, ok := e.sp.Next(p.run); ok {
		ns = append(ns, next)
	}
	e.sp.RemoveRun(p.run)
	e.drop(p)
	e.sp.Normalize(e.scopeAround(ns...), e.pins())
	e.setSelection(e.sp.RestoreSelection(snap))
	return e.sel
}

// seal freezes a typed-into pending run at its current length and starts
// watching the trailing boundary: text the host appends past the sealed
// length does not belong to the run anymore and will be relocated.
func (e *Engine) seal(p *pending) span.Range {
	r, err := e.sp.Run(p.run)
	if err != nil {
		e.drop(p)
		return e.sel
	}
	p.allowed = r.Len()
	p.boundary = uuid.New()
	p.phase = pendingTracking
	tracer().Debugf("engine: pending %s sealed at %d, boundary %s", p.id, p.allowed, p.boundary)
	return e.sel
}

// unseal reverts a sealed record when the attribute is toggled back on at
// the boundary. Held whitespace rejoins the run, typing extends the run
// again through the host's default semantics.
func (e *Engine) unseal(p *pending) span.Range {
	if p.leadWS != "" {
		if text, err := e.sp.RunText(p.run); err == nil {
			e.sp.SetRunText(p.run, text+p.leadWS)
		}
		p.leadWS = ""
	}
	e.drop(p)
	if r, err := e.sp.Run(p.run); err == nil {
		e.setSelection(span.Collapsed(span.Cursor{Run: p.run, Offset: r.Len()}))
	}
	return e.sel
}

// maintainPending runs over all live records after a content change and
// returns the runs it touched.
func (e *Engine) maintainPending() []span.RunID {
	var touched []span.RunID
	for _, p := range e.livePending() {
		if !e.sp.Valid(p.run) {
			// the run was deleted wholesale, the record dies with it
			e.drop(p)
			continue
		}
		switch p.phase {
		case pendingOpen, pendingTyping:
			touched = append(touched, e.absorb(p)...)
		case pendingTracking:
			touched = append(touched, e.track(p)...)
		}
	}
	return touched
}

// absorb claims text for an open pending run. Hosts with sticky
// end-of-run insertion append text typed at the boundary to the preceding
// run; such text grew the preceding run past its recorded length and is
// moved into the pending run, where it belongs.
func (e *Engine) absorb(p *pending) []span.RunID {
	touched := []span.RunID{p.run}
	if e.sp.Valid(p.prevRun) {
		if pr, err := e.sp.Run(p.prevRun); err == nil {
			if pr.Len() > p.prevLen {
				drift := pr.Text()[p.prevLen:]
				e.sp.SetRunText(p.prevRun, pr.Text()[:p.prevLen])
				text, _ := e.sp.RunText(p.run)
				e.sp.SetRunText(p.run, drift+text)
				touched = append(touched, p.prevRun)
				e.sel = span.Collapsed(span.Cursor{Run: p.run, Offset: len(drift)})
			} else if pr.Len() < p.prevLen {
				p.prevLen = pr.Len()
			}
		}
	}
	if r, err := e.sp.Run(p.run); err == nil && r.Len() > p.baseLen {
		p.typed = true
		p.phase = pendingTyping
	}
	return touched
}

// track enforces a sealed record's boundary. Text past the sealed length
// is cut off and relocated to the far side of the boundary; whitespace is
// held back until something substantive follows it, so a space typed right
// after sealing neither extends the formatted run nor gets lost.
func (e *Engine) track(p *pending) []span.RunID {
	r, err := e.sp.Run(p.run)
	if err != nil {
		e.drop(p)
		return nil
	}
	touched := []span.RunID{p.run}
	if r.Len() > p.allowed {
		text := r.Text()
		extra := text[p.allowed:]
		e.sp.SetRunText(p.run, text[:p.allowed])
		if !p.flushed && strings.TrimSpace(extra) == "" {
			p.leadWS += extra
			e.sel = span.Collapsed(span.Cursor{Run: p.run, Offset: p.allowed})
		} else {
			p.flushed = true
			c, ids := e.spill(p, p.leadWS+extra)
			p.leadWS = ""
			touched = append(touched, ids...)
			e.sel = span.Collapsed(c)
		}
	} else if r.Len() < p.allowed {
		if p.typed {
			touched = append(touched, e.retire(p)...)
		} else {
			p.allowed = r.Len()
		}
	}
	return touched
}

// retire permanently removes a sealed record, re-prepending held
// whitespace to the boundary text first.
func (e *Engine) retire(p *pending) []span.RunID {
	var touched []span.RunID
	if p.leadWS != "" {
		_, touched = e.spill(p, p.leadWS)
		p.leadWS = ""
	}
	tracer().Debugf("engine: pending %s retired", p.id)
	e.drop(p)
	return touched
}

// spill places text just past a sealed run's trailing boundary, carrying
// the formatting in effect outside the pending run. It returns the cursor
// position after the spilled text.
func (e *Engine) spill(p *pending, s string) (span.Cursor, []span.RunID) {
	if next, ok := e.sp.Next(p.run); ok {
		if err := e.sp.InsertText(span.Cursor{Run: next}, s); err == nil {
			return span.Cursor{Run: next, Offset: len(s)}, []span.RunID{next}
		}
	}
	nr, err := e.sp.InsertRunAfter(p.run, s, p.outside.Clone())
	if err != nil {
		tracer().Errorf("engine: boundary relocation failed: %v", err)
		r, _ := e.sp.Run(p.run)
		return span.Cursor{Run: p.run, Offset: r.Len()}, nil
	}
	return span.Cursor{Run: nr, Offset: len(s)}, []span.RunID{nr}
}

// refreshPrev records the pending run's preceding neighbor and its
// length, the baseline for drift detection in absorb.
func (e *Engine) refreshPrev(p *pending) {
	p.prevRun, p.prevLen = span.InvalidRun, 0
	if prev, ok := e.sp.Prev(p.run); ok {
		if r, err := e.sp.Run(prev); err == nil {
			p.prevRun, p.prevLen = prev, r.Len()
		}
	}
}

func (e *Engine) openPendingAt(id span.RunID) *pending {
	for _, p := range e.pending {
		if p.run == id && p.phase != pendingTracking {
			return p
		}
	}
	return nil
}

// livePending returns a copy of the record list, safe to iterate while
// records drop out.
func (e *Engine) livePending() []*pending {
	out := make([]*pending, len(e.pending))
	copy(out, e.pending)
	return out
}

func (e *Engine) drop(p *pending) {
	for i, q := range e.pending {
		if q == p {
			e.pending = append(e.pending[:i], e.pending[i+1:]...)
			return
		}
	}
}

// PendingAt reports the attribute of an open pending record targeting the
// given run, if any. Sealed records do not count, their formatting is
// already materialized in the run.
func (e *Engine) PendingAt(id span.RunID) (attrib.Attribute, bool) {
	if p := e.openPendingAt(id); p != nil {
		return p.attr, true
	}
	return attrib.Attribute{}, false
}

// PendingCount returns the number of open pending records.
func (e *Engine) PendingCount() int {
	n := 0
	for _, p := range e.pending {
		if p.phase != pendingTracking {
			n++
		}
	}
	return n
}
