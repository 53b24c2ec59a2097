package span

// Scope bounds a normalization pass to a contiguous section of runs. The
// zero Scope denotes the whole span.
type Scope struct {
	From, To RunID // inclusive; InvalidRun means span edge
}

// WholeSpan returns the scope covering all runs.
func WholeSpan() Scope {
	return Scope{}
}

// ScopeAround returns the smallest scope containing all given runs plus
// their immediate neighbors. Stale ids are ignored; if no id is live, the
// whole span is returned.
func (sp *Span) ScopeAround(ids ...RunID) Scope {
	lo, hi := -1, -1
	for _, id := range ids {
		i := sp.indexOf(id)
		if i < 0 {
			continue
		}
		if lo < 0 || i < lo {
			lo = i
		}
		if i > hi {
			hi = i
		}
	}
	if lo < 0 {
		return WholeSpan()
	}
	if lo > 0 {
		lo--
	}
	if hi < len(sp.order)-1 {
		hi++
	}
	return Scope{From: sp.order[lo], To: sp.order[hi]}
}

// bounds resolves a scope into order positions [i0,i1], inclusive. Stale
// scope ends widen to the span edges.
func (sp *Span) bounds(scope Scope) (int, int) {
	i0, i1 := 0, len(sp.order)-1
	if scope.From != InvalidRun {
		if i := sp.indexOf(scope.From); i >= 0 {
			i0 = i
		}
	}
	if scope.To != InvalidRun {
		if i := sp.indexOf(scope.To); i >= 0 {
			i1 = i
		}
	}
	if i1 < i0 {
		i0, i1 = i1, i0
	}
	return i0, i1
}

// Normalize restores the canonical run partition within scope: attribute
// sets are canonicalized, textually-adjacent runs with equal attribute sets
// are merged (the left run's identity survives), and empty runs are
// removed.
//
// An empty run survives normalization if the pinned callback claims it —
// pins mark the active pending-attribute target and the run hosting the
// external cursor — or if it is the span's only run. Normalize is
// idempotent and never reorders or loses text.
func (sp *Span) Normalize(scope Scope, pinned func(RunID) bool) {
	if len(sp.order) == 0 {
		return
	}
	if pinned == nil {
		pinned = func(RunID) bool { return false }
	}
	i0, i1 := sp.bounds(scope)
	for i := i0; i <= i1 && i < len(sp.order); i++ {
		sp.byID[sp.order[i]].attrs.Canonicalize()
	}
	// drop empty runs, then merge equal neighbors; both passes shrink the
	// order slice in place
	i := i0
	for i <= i1 && i < len(sp.order) {
		r := sp.byID[sp.order[i]]
		if r.IsEmpty() && !pinned(r.id) && len(sp.order) > 1 {
			tracer().Debugf("span: normalize drops empty run#%d", r.id)
			_ = sp.RemoveRun(r.id)
			i1--
			continue
		}
		i++
	}
	i = i0 + 1
	for i <= i1 && i < len(sp.order) {
		left := sp.byID[sp.order[i-1]]
		right := sp.byID[sp.order[i]]
		if !pinned(left.id) && !pinned(right.id) && left.attrs.Equal(right.attrs) {
			tracer().Debugf("span: normalize merges run#%d into run#%d", right.id, left.id)
			_ = sp.Merge(left.id, right.id)
			i1--
			continue
		}
		i++
	}
}
