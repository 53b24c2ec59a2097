package engine

import (
	"testing"

	"github.com/npillmayer/attrib"
	"github.com/npillmayer/attrib/span"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

// type simulates a host edit: the engine gets the right of first refusal,
// otherwise default text semantics apply, and in both cases the engine is
// notified afterwards.
func typeText(e *Engine, at span.Cursor, s string) span.Range {
	ev := EditEvent{At: at, Inserted: s}
	if !e.OnBeforeEdit(ev) {
		if err := e.ApplyEdit(ev); err != nil {
			return e.Selection()
		}
	}
	return e.OnContentChanged(ev)
}

func deleteText(e *Engine, at span.Cursor, s string) span.Range {
	ev := EditEvent{At: at, Deleted: s}
	if err := e.ApplyEdit(ev); err != nil {
		return e.Selection()
	}
	return e.OnContentChanged(ev)
}

func TestPendingEnterExitWithoutTyping(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "attrib")
	defer teardown()
	//
	sp := span.FromString("Hello world")
	e := New(sp)
	host := sp.First()
	e.OnSelectionChanged(span.Collapsed(span.Cursor{Run: host, Offset: 5}))
	sel := e.TogglePendingAtCursor(bold())
	if e.PendingCount() != 1 {
		t.Fatalf("expected one open pending record, got %d", e.PendingCount())
	}
	if sp.RunCount() != 3 {
		t.Fatalf("expected split plus empty pending run, got %d runs", sp.RunCount())
	}
	if r, err := sp.Run(sel.Anchor.Run); err != nil || !r.IsEmpty() {
		t.Fatalf("expected the cursor inside the empty pending run")
	}
	// toggling again without typing must undo everything
	sel = e.TogglePendingAtCursor(bold())
	if e.PendingCount() != 0 {
		t.Errorf("expected no pending records left, got %d", e.PendingCount())
	}
	if sp.RunCount() != 1 {
		t.Errorf("expected the span structurally unchanged, got %d runs", sp.RunCount())
	}
	if sp.String() != "Hello world" {
		t.Errorf("expected the text unchanged, got %q", sp.String())
	}
	if pos, _ := sp.Offset(sel.Anchor); pos != 5 || !sel.IsCollapsed() {
		t.Errorf("expected the cursor back at position 5, got %v", sel)
	}
}

func TestPendingExitOnCursorMove(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "attrib")
	defer teardown()
	//
	sp := span.FromString("Hello world")
	e := New(sp)
	host := sp.First()
	e.OnSelectionChanged(span.Collapsed(span.Cursor{Run: host, Offset: 5}))
	e.TogglePendingAtCursor(bold())
	// moving the cursor away exits the untouched pending state
	e.OnSelectionChanged(span.Collapsed(span.Cursor{Run: sp.First(), Offset: 0}))
	if e.PendingCount() != 0 {
		t.Errorf("expected pending record gone, got %d", e.PendingCount())
	}
	if sp.RunCount() != 1 || sp.String() != "Hello world" {
		t.Errorf("expected structure healed, got %d runs %q", sp.RunCount(), sp.String())
	}
}

func TestPendingTypingPicksUpAttribute(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "attrib")
	defer teardown()
	//
	sp := span.FromString("Hello world")
	e := New(sp)
	host := sp.First()
	e.OnSelectionChanged(span.Collapsed(span.Cursor{Run: host, Offset: 11}))
	sel := e.TogglePendingAtCursor(bold())
	pr := sel.Anchor.Run
	if _, ok := e.PendingAt(pr); !ok {
		t.Fatalf("expected an open pending record on the cursor run")
	}
	sel = typeText(e, sel.Anchor, "!")
	if sp.String() != "Hello world!" {
		t.Fatalf("expected text 'Hello world!', got %q", sp.String())
	}
	r, err := sp.Run(pr)
	if err != nil {
		t.Fatal(err)
	}
	if r.Text() != "!" || !r.Attrs().Contains(bold()) {
		t.Errorf("expected typed text to pick up bold, got %v", r)
	}
	if text, _ := sp.RunText(host); text != "Hello world" {
		t.Errorf("expected host run untouched, got %q", text)
	}
	if sel.Anchor.Run != pr || sel.Anchor.Offset != 1 {
		t.Errorf("expected cursor after the typed character, got %v", sel)
	}
}

func TestPendingAbsorbsDriftedInsertion(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "attrib")
	defer teardown()
	//
	sp := span.FromString("Hello world")
	e := New(sp)
	host := sp.First()
	e.OnSelectionChanged(span.Collapsed(span.Cursor{Run: host, Offset: 11}))
	sel := e.TogglePendingAtCursor(bold())
	pr := sel.Anchor.Run
	// a host with sticky end-of-run insertion reports the edit on the
	// preceding run instead of the pending one
	sel = typeText(e, span.Cursor{Run: host, Offset: 11}, "!")
	if text, _ := sp.RunText(host); text != "Hello world" {
		t.Errorf("expected drifted text moved out of the host run, got %q", text)
	}
	r, err := sp.Run(pr)
	if err != nil {
		t.Fatal(err)
	}
	if r.Text() != "!" || !r.Attrs().Contains(bold()) {
		t.Errorf("expected pending run to absorb the typed text, got %v", r)
	}
	if sel.Anchor.Run != pr || sel.Anchor.Offset != 1 {
		t.Errorf("expected cursor inside the pending run, got %v", sel)
	}
}

func TestSealedBoundaryRelocatesTyping(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "attrib")
	defer teardown()
	//
	sp := span.FromString("Hello world")
	e := New(sp)
	host := sp.First()
	e.OnSelectionChanged(span.Collapsed(span.Cursor{Run: host, Offset: 11}))
	sel := e.TogglePendingAtCursor(bold())
	pr := sel.Anchor.Run
	typeText(e, sel.Anchor, "!")
	// moving away seals the typed-into run at its current length
	e.OnSelectionChanged(span.Collapsed(span.Cursor{Run: host, Offset: 0}))
	if e.PendingCount() != 0 {
		t.Fatalf("expected no open pending records after sealing")
	}
	// typing at the old boundary again: sticky insertion would extend the
	// bold run, the sealed boundary pushes the text outside
	sel = typeText(e, span.Cursor{Run: pr, Offset: 1}, "x")
	r, _ := sp.Run(pr)
	if r.Text() != "!" {
		t.Errorf("expected sealed run frozen at '!', got %q", r.Text())
	}
	out, err := sp.Run(sel.Anchor.Run)
	if err != nil {
		t.Fatal(err)
	}
	if out.ID() == pr || out.Attrs().Contains(bold()) {
		t.Errorf("expected relocated text outside the bold run, got %v", out)
	}
	if sp.String() != "Hello world!x" {
		t.Errorf("expected text 'Hello world!x', got %q", sp.String())
	}
}

func TestSealedBoundaryHoldsWhitespace(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "attrib")
	defer teardown()
	//
	sp := span.FromString("Hello world")
	e := New(sp)
	host := sp.First()
	e.OnSelectionChanged(span.Collapsed(span.Cursor{Run: host, Offset: 11}))
	sel := e.TogglePendingAtCursor(bold())
	pr := sel.Anchor.Run
	typeText(e, sel.Anchor, "!")
	e.OnSelectionChanged(span.Collapsed(span.Cursor{Run: host, Offset: 0}))
	// whitespace typed at the boundary is held back
	typeText(e, span.Cursor{Run: pr, Offset: 1}, " ")
	if r, _ := sp.Run(pr); r.Text() != "!" {
		t.Fatalf("expected held whitespace to not extend the sealed run, got %q", r.Text())
	}
	// something substantive flushes it, whitespace first
	typeText(e, span.Cursor{Run: pr, Offset: 1}, "x")
	if sp.String() != "Hello world! x" {
		t.Errorf("expected held whitespace re-prepended, got %q", sp.String())
	}
	if r, _ := sp.Run(pr); r.Text() != "!" || !r.Attrs().Contains(bold()) {
		t.Errorf("expected sealed bold run unchanged, got %v", r)
	}
}

func TestSealedBoundaryUnsealsOnReToggle(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "attrib")
	defer teardown()
	//
	sp := span.FromString("Hello world")
	e := New(sp)
	host := sp.First()
	e.OnSelectionChanged(span.Collapsed(span.Cursor{Run: host, Offset: 11}))
	sel := e.TogglePendingAtCursor(bold())
	pr := sel.Anchor.Run
	typeText(e, sel.Anchor, "!")
	e.OnSelectionChanged(span.Collapsed(span.Cursor{Run: host, Offset: 0})) // seals
	typeText(e, span.Cursor{Run: pr, Offset: 1}, " ")                       // held back
	// toggling the attribute at the boundary again re-opens the run
	sel = e.TogglePendingAtCursor(bold())
	if r, _ := sp.Run(pr); r.Text() != "! " {
		t.Fatalf("expected held whitespace to rejoin the run, got %q", r.Text())
	}
	if !sel.IsCollapsed() || sel.Anchor.Run != pr || sel.Anchor.Offset != 2 {
		t.Fatalf("expected cursor at the run end after re-toggle, got %v", sel)
	}
	// the boundary is gone, typing extends the run normally
	typeText(e, sel.Anchor, "x")
	if sp.String() != "Hello world! x" {
		t.Errorf("expected typed text inside the run, got %q", sp.String())
	}
	if r, _ := sp.Run(pr); r.Text() != "! x" || !r.Attrs().Contains(bold()) {
		t.Errorf("expected the whole tail attributed, got %v", r)
	}
}

func TestSealedRecordRetiresOnDeletion(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "attrib")
	defer teardown()
	//
	sp := span.FromString("Hello world")
	e := New(sp)
	host := sp.First()
	e.OnSelectionChanged(span.Collapsed(span.Cursor{Run: host, Offset: 11}))
	sel := e.TogglePendingAtCursor(bold())
	pr := sel.Anchor.Run
	typeText(e, sel.Anchor, "!")
	e.OnSelectionChanged(span.Collapsed(span.Cursor{Run: host, Offset: 0}))
	// deleting inside the sealed run retires the record for good
	deleteText(e, span.Cursor{Run: pr, Offset: 0}, "!")
	if sp.String() != "Hello world" {
		t.Errorf("expected text 'Hello world', got %q", sp.String())
	}
	// typing at the end now extends text normally again
	e.OnSelectionChanged(span.Collapsed(span.Cursor{Run: host, Offset: 11}))
	typeText(e, span.Cursor{Run: host, Offset: 11}, "?")
	if sp.String() != "Hello world?" {
		t.Errorf("expected text 'Hello world?', got %q", sp.String())
	}
	if r, _ := sp.Run(host); r.Attrs().Contains(bold()) {
		t.Errorf("expected no formatting left, got %v", r.Attrs())
	}
}

func TestPendingMergesWithIdenticalNeighbor(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "attrib")
	defer teardown()
	//
	b := span.NewBuilder()
	b.Append("abc", attrib.MakeSet(bold()))
	b.Append("def", attrib.Set{})
	sp := b.Span()
	e := New(sp)
	boldRun := sp.First()
	plain, _ := sp.Next(boldRun)
	// toggling bold at the start of the plain run, right after the bold
	// run: the pending run merges into the bold neighbor
	e.OnSelectionChanged(span.Collapsed(span.Cursor{Run: plain, Offset: 0}))
	sel := e.TogglePendingAtCursor(bold())
	if sp.RunCount() != 2 {
		t.Fatalf("expected no extra run after neighbor merge, got %d", sp.RunCount())
	}
	if sel.Anchor.Run != boldRun || sel.Anchor.Offset != 3 {
		t.Fatalf("expected cursor at the end of the bold run, got %v", sel)
	}
	sel = typeText(e, sel.Anchor, "x")
	if r, _ := sp.Run(boldRun); r.Text() != "abcx" || !r.Attrs().Contains(bold()) {
		t.Errorf("expected typed text to extend the bold run, got %v", r)
	}
}

func TestPendingRecordDiesWithItsRun(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "attrib")
	defer teardown()
	//
	sp := span.FromString("Hello world")
	e := New(sp)
	host := sp.First()
	e.OnSelectionChanged(span.Collapsed(span.Cursor{Run: host, Offset: 5}))
	sel := e.TogglePendingAtCursor(bold())
	pr := sel.Anchor.Run
	// the host deletes the region wholesale, bypassing the engine
	sp.RemoveRun(pr)
	e.OnContentChanged(EditEvent{At: span.Cursor{Run: host, Offset: 5}, Deleted: ""})
	if e.PendingCount() != 0 {
		t.Errorf("expected pending record to die with its run, got %d", e.PendingCount())
	}
}

func TestPendingToggleOffAfterTypingSeals(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "attrib")
	defer teardown()
	//
	sp := span.FromString("Hello world")
	e := New(sp)
	host := sp.First()
	e.OnSelectionChanged(span.Collapsed(span.Cursor{Run: host, Offset: 11}))
	sel := e.TogglePendingAtCursor(bold())
	pr := sel.Anchor.Run
	typeText(e, sel.Anchor, "bold")
	// toggling the attribute off at the cursor seals the run
	e.TogglePendingAtCursor(bold())
	if e.PendingCount() != 0 {
		t.Fatalf("expected the open record sealed, got %d open", e.PendingCount())
	}
	// subsequent sticky typing lands outside the bold run
	sel = typeText(e, span.Cursor{Run: pr, Offset: 4}, "plain")
	if r, _ := sp.Run(pr); r.Text() != "bold" {
		t.Errorf("expected the bold run frozen at 'bold', got %q", r.Text())
	}
	if sp.String() != "Hello worldboldplain" {
		t.Errorf("unexpected text %q", sp.String())
	}
	out, err := sp.Run(sel.Anchor.Run)
	if err != nil {
		t.Fatal(err)
	}
	if out.Attrs().Contains(bold()) {
		t.Errorf("expected text after toggle-off unformatted, got %v", out)
	}
}
