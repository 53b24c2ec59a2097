package engine

/*
_________________________________________________________________________

BSD 3-Clause License

Copyright (c) Norbert Pillmayer

For details please refer to the LICENSE file.
*/

import (
	"github.com/npillmayer/attrib"
	"github.com/npillmayer/attrib/span"
)

// Engine drives attribute changes on a span of text on behalf of a hosting
// editor. The host owns text input and selection; the engine mirrors both
// and is notified of changes through OnSelectionChanged and
// OnContentChanged.
//
// Engines are not safe for concurrent use.
type Engine struct {
	sp       *span.Span
	sel      span.Range
	pending  []*pending
	scope    func() span.Scope
	listener func(span.Range)
	busy     bool
}

// Option configures an engine at creation time.
type Option func(*Engine)

// WithScopeLookup installs a callback the engine will consult to bound
// normalization passes, e.g. to the paragraph containing the cursor.
// Without it, normalization is bounded to the runs an operation touched.
func WithScopeLookup(lookup func() span.Scope) Option {
	return func(e *Engine) {
		e.scope = lookup
	}
}

// WithSelectionListener installs a callback invoked whenever an engine
// operation moved or restored the selection. The listener must not call
// back into the engine; such calls are rejected by the re-entrancy guard.
func WithSelectionListener(listener func(span.Range)) Option {
	return func(e *Engine) {
		e.listener = listener
	}
}

// New creates an engine for a span. A nil span is replaced by an empty one.
// The selection starts out collapsed at the beginning of the span.
func New(sp *span.Span, opts ...Option) *Engine {
	if sp == nil {
		sp = span.New()
	}
	e := &Engine{
		sp:  sp,
		sel: span.Collapsed(span.Cursor{Run: sp.First()}),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Span returns the span the engine operates on. Mutating it directly,
// bypassing the engine, invalidates pending attribute bookkeeping.
func (e *Engine) Span() *span.Span {
	return e.sp
}

// Selection returns the selection as the engine last saw it.
func (e *Engine) Selection() span.Range {
	return e.sel
}

// enter flips the re-entrancy guard. Operations called while another
// operation is still running are rejected, not queued.
func (e *Engine) enter(op string) bool {
	if e.busy {
		tracer().Errorf("engine: re-entrant call to %s rejected", op)
		return false
	}
	e.busy = true
	return true
}

func (e *Engine) leave() {
	e.busy = false
}

// setSelection records a selection change originated by the engine and
// notifies the host.
func (e *Engine) setSelection(sel span.Range) {
	e.sel = sel
	if e.listener != nil {
		e.listener(sel)
	}
}

// pins returns the predicate protecting runs from the normalizer: runs
// targeted by a pending attribute keep their identity, and an empty run
// hosting the collapsed cursor is not dropped.
func (e *Engine) pins() func(span.RunID) bool {
	sel := e.sel
	return func(id span.RunID) bool {
		for _, p := range e.pending {
			if p.run == id {
				return true
			}
		}
		if sel.IsCollapsed() && sel.Anchor.Run == id {
			if r, err := e.sp.Run(id); err == nil && r.IsEmpty() {
				return true
			}
		}
		return false
	}
}

// scopeAround bounds a normalization pass to the host-provided scope if
// one is configured, and to the neighborhood of the touched runs
// otherwise.
func (e *Engine) scopeAround(touched ...span.RunID) span.Scope {
	if e.scope != nil {
		return e.scope()
	}
	live := touched[:0]
	for _, id := range touched {
		if e.sp.Valid(id) {
			live = append(live, id)
		}
	}
	if len(live) == 0 {
		return span.WholeSpan()
	}
	return e.sp.ScopeAround(live...)
}

// EditEvent describes a single text edit the host performed or is about
// to perform. At locates the edit; for an insertion the new text starts
// at At, for a deletion the removed text started at At.
type EditEvent struct {
	At       span.Cursor
	Inserted string
	Deleted  string
}

// OnSelectionChanged lets the host report a moved selection. Moving the
// cursor away from a pending attribute's target run exits the pending
// state: an untouched pending run is removed again, a typed-into one is
// sealed at its current length (see TogglePendingAtCursor).
//
// The possibly adjusted selection is returned.
func (e *Engine) OnSelectionChanged(sel span.Range) span.Range {
	if !e.enter("OnSelectionChanged") {
		return e.sel
	}
	defer e.leave()
	e.sel = sel
	for _, p := range e.livePending() {
		if p.phase == pendingTracking {
			continue
		}
		if sel.IsCollapsed() && sel.Anchor.Run == p.run {
			continue
		}
		e.closePending(p)
	}
	return e.sel
}

// OnBeforeEdit gives the engine a chance to handle an edit itself before
// the host applies its default semantics. It returns true if the edit has
// been fully handled: this is the case for text inserted at a collapsed
// cursor inside a pending attribute's target run, which must pick up the
// pending formatting rather than the host's default run assignment.
func (e *Engine) OnBeforeEdit(ev EditEvent) bool {
	if !e.enter("OnBeforeEdit") {
		return false
	}
	defer e.leave()
	if ev.Inserted == "" || ev.Deleted != "" {
		return false
	}
	for _, p := range e.pending {
		if p.phase == pendingTracking || p.run != ev.At.Run {
			continue
		}
		if err := e.sp.InsertText(ev.At, ev.Inserted); err != nil {
			tracer().Errorf("engine: pending insert failed: %v", err)
			return false
		}
		p.typed = true
		p.phase = pendingTyping
		e.refreshPrev(p)
		e.setSelection(span.Collapsed(span.Cursor{
			Run:    p.run,
			Offset: ev.At.Offset + len(ev.Inserted),
		}))
		return true
	}
	return false
}

// ApplyEdit performs an edit with the host's default text semantics:
// insertions extend the run the event points into, deletions remove text
// run by run. Hosts with their own text model skip this and only report
// edits through OnContentChanged.
func (e *Engine) ApplyEdit(ev EditEvent) error {
	if !e.enter("ApplyEdit") {
		return nil
	}
	defer e.leave()
	if ev.Deleted != "" {
		if err := e.deleteText(ev.At, len(ev.Deleted)); err != nil {
			return err
		}
	}
	if ev.Inserted != "" {
		if err := e.sp.InsertText(ev.At, ev.Inserted); err != nil {
			return err
		}
		e.sel = span.Collapsed(span.Cursor{
			Run:    ev.At.Run,
			Offset: ev.At.Offset + len(ev.Inserted),
		})
	}
	return nil
}

// deleteText removes n bytes of text starting at cursor c and leaves the
// selection collapsed at the deletion site.
func (e *Engine) deleteText(c span.Cursor, n int) error {
	if err := e.sp.DeleteText(c, n); err != nil {
		return err
	}
	e.sel = span.Collapsed(c)
	return nil
}

// OnContentChanged lets the host report a completed edit. The engine runs
// pending attribute maintenance (absorption, boundary relocation,
// retirement), normalizes the affected region and restores the selection.
func (e *Engine) OnContentChanged(ev EditEvent) span.Range {
	if !e.enter("OnContentChanged") {
		return e.sel
	}
	defer e.leave()
	touched := []span.RunID{ev.At.Run}
	touched = append(touched, e.maintainPending()...)
	snap := e.sp.SnapshotSelection(e.sel)
	e.sp.Normalize(e.scopeAround(touched...), e.pins())
	e.setSelection(e.sp.RestoreSelection(snap))
	return e.sel
}

// State is a deep snapshot of an engine's model, taken with SnapshotState
// and brought back with RestoreState. Hosts use it to implement undo of
// formatting operations.
type State struct {
	sp      *span.Span
	sel     span.Range
	pending []pending
}

// SnapshotState captures span, selection and pending attribute records.
func (e *Engine) SnapshotState() *State {
	st := &State{
		sp:  e.sp.Clone(),
		sel: e.sel,
	}
	for _, p := range e.pending {
		st.pending = append(st.pending, *p)
	}
	return st
}

// RestoreState brings the engine back to a previously captured state. The
// snapshot itself stays valid and may be restored again.
func (e *Engine) RestoreState(st *State) {
	if !e.enter("RestoreState") {
		return
	}
	defer e.leave()
	e.sp = st.sp.Clone()
	e.sel = st.sel
	e.pending = e.pending[:0]
	for i := range st.pending {
		p := st.pending[i]
		e.pending = append(e.pending, &p)
	}
}

// Attributes reports the attribute set in effect at a collapsed cursor,
// taking pending attributes on the cursor's run into account. Hosts use
// this to render toolbar state.
func (e *Engine) Attributes(c span.Cursor) attrib.Set {
	r, err := e.sp.Run(c.Run)
	if err != nil {
		tracer().Debugf("engine: attributes at stale cursor %v", c)
		return attrib.Set{}
	}
	return r.Attrs()
}
