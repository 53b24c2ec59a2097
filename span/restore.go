package span

import (
	"strings"
	"sync"

	"github.com/npillmayer/uax/grapheme"
)

// Selection restoration. Structural mutations may split, merge or remove
// the runs a host selection referred to. A selection snapshot taken before
// the mutation carries enough redundancy to re-derive a valid selection
// afterwards: the run-relative cursors, their absolute offsets, and the
// selected text itself.

// SelectionSnapshot describes a selection before a structural mutation.
type SelectionSnapshot struct {
	Sel       Range
	AnchorPos int    // absolute byte offset of the anchor at snapshot time
	FocusPos  int    // absolute byte offset of the focus at snapshot time
	Text      string // selected text at snapshot time
}

// SnapshotSelection records a selection description for later restoration.
// Invalid cursors degrade to offset zero rather than failing; restoration
// is a recovery path and must not introduce error conditions of its own.
func (sp *Span) SnapshotSelection(rng Range) SelectionSnapshot {
	snap := SelectionSnapshot{Sel: rng}
	if pos, err := sp.Offset(rng.Anchor); err == nil {
		snap.AnchorPos = pos
	}
	if pos, err := sp.Offset(rng.Focus); err == nil {
		snap.FocusPos = pos
	}
	lo, hi := snap.AnchorPos, snap.FocusPos
	if hi < lo {
		lo, hi = hi, lo
	}
	if text := sp.String(); hi <= len(text) {
		snap.Text = text[lo:hi]
	}
	return snap
}

// RestoreSelection recomputes a valid selection from a snapshot after the
// span has been mutated.
//
// Identity-based restoration comes first: if both run ids are still live
// and both offsets still fall inside their runs, the cursors are reused as
// they are, snapped onto grapheme cluster boundaries. A cursor whose run
// was merged away, removed, or shrunk below the recorded offset
// invalidates the identity strategy; the previously selected text is then
// re-located in the span and the selection re-derived from its position.
// If both strategies fail, a collapsed cursor is returned, placed at the
// snapshot's absolute position if it still exists and at the nearest
// surviving run boundary otherwise — selection loss degrades the UX but
// is never an error.
func (sp *Span) RestoreSelection(snap SelectionSnapshot) Range {
	if len(sp.order) == 0 {
		return Range{}
	}
	if sp.cursorIntact(snap.Sel.Anchor) && sp.cursorIntact(snap.Sel.Focus) {
		return Range{
			Anchor: sp.snapCursor(snap.Sel.Anchor),
			Focus:  sp.snapCursor(snap.Sel.Focus),
		}
	}
	if snap.Text != "" {
		if rng, ok := sp.relocateText(snap); ok {
			return rng
		}
		tracer().Debugf("span: selection not restorable, collapsing to nearest boundary")
		return Collapsed(sp.nearestBoundary(snap.AnchorPos))
	}
	// a collapsed cursor can always be re-derived from its absolute position
	pos := snap.AnchorPos
	if pos < 0 {
		pos = 0
	}
	if pos > sp.Len() {
		pos = sp.Len()
	}
	if c, err := sp.Locate(pos); err == nil {
		return Collapsed(sp.snapCursor(c))
	}
	return Collapsed(sp.nearestBoundary(pos))
}

// cursorIntact reports whether a snapshot cursor still denotes a position
// inside its (live) run.
func (sp *Span) cursorIntact(c Cursor) bool {
	r, ok := sp.byID[c.Run]
	return ok && c.Offset >= 0 && c.Offset <= len(r.text)
}

// snapCursor snaps a cursor onto a grapheme cluster boundary, so that a
// restored cursor never lands inside a user-perceived character.
func (sp *Span) snapCursor(c Cursor) Cursor {
	r := sp.byID[c.Run]
	return Cursor{Run: c.Run, Offset: clampToGrapheme(r.text, c.Offset)}
}

// relocateText re-derives the selection by finding the previously selected
// text again, preferring the occurrence closest to its former position.
func (sp *Span) relocateText(snap SelectionSnapshot) (Range, bool) {
	text := sp.String()
	lo := snap.AnchorPos
	if snap.FocusPos < lo {
		lo = snap.FocusPos
	}
	at := closestIndex(text, snap.Text, lo)
	if at < 0 {
		return Range{}, false
	}
	start, err := sp.Locate(at)
	if err != nil {
		return Range{}, false
	}
	end, err := sp.Locate(at + len(snap.Text))
	if err != nil {
		return Range{}, false
	}
	if snap.FocusPos < snap.AnchorPos { // preserve selection direction
		return Range{Anchor: end, Focus: start}, true
	}
	return Range{Anchor: start, Focus: end}, true
}

// closestIndex returns the start of the occurrence of sub in s closest to
// the wanted position, or -1.
func closestIndex(s, sub string, want int) int {
	best := -1
	for from := 0; ; {
		i := strings.Index(s[from:], sub)
		if i < 0 {
			break
		}
		at := from + i
		if best < 0 || abs(at-want) < abs(best-want) {
			best = at
		}
		from = at + 1
		if at >= want && best >= 0 {
			break // occurrences only move further away from here on
		}
	}
	return best
}

// nearestBoundary returns a cursor at the run boundary closest to the
// given absolute position.
func (sp *Span) nearestBoundary(pos int) Cursor {
	if pos < 0 {
		pos = 0
	}
	if l := sp.Len(); pos > l {
		pos = l
	}
	bestAt, bestDist := 0, pos
	at := 0
	for _, id := range sp.order {
		at += len(sp.byID[id].text)
		if d := abs(at - pos); d < bestDist {
			bestAt, bestDist = at, d
		}
	}
	c, err := sp.Locate(bestAt)
	if err != nil {
		return Cursor{Run: sp.First(), Offset: 0}
	}
	return c
}

var setupGraphemes sync.Once

// clampToGrapheme snaps a byte offset onto the nearest preceding grapheme
// cluster boundary of text.
func clampToGrapheme(text string, off int) int {
	if off <= 0 || off >= len(text) {
		return off
	}
	setupGraphemes.Do(grapheme.SetupGraphemeClasses)
	gstr := grapheme.StringFromString(text)
	pos := 0
	for i := 0; i < gstr.Len(); i++ {
		l := len(gstr.Nth(i))
		if pos+l > off {
			return pos
		}
		pos += l
	}
	return pos
}

func abs(a int) int {
	if a < 0 {
		return -a
	}
	return a
}
