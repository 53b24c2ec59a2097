package markup

import (
	"testing"

	"github.com/npillmayer/attrib"
	"github.com/npillmayer/attrib/span"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func buildSpan(t *testing.T, parts ...any) *span.Span {
	t.Helper()
	b := span.NewBuilder()
	for i := 0; i < len(parts); i += 2 {
		if err := b.Append(parts[i].(string), parts[i+1].(attrib.Set)); err != nil {
			t.Fatal(err)
		}
	}
	return b.Span()
}

func TestSerializeTags(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "attrib")
	defer teardown()
	//
	sp := buildSpan(t,
		"Hello ", attrib.Set{},
		"world", attrib.MakeSet(attrib.Attribute{Kind: attrib.Bold}),
	)
	if got := String(sp); got != "Hello <strong>world</strong>" {
		t.Errorf("unexpected serialization %q", got)
	}
}

func TestSerializeNestedAndEscaped(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "attrib")
	defer teardown()
	//
	sp := buildSpan(t,
		"a < b", attrib.MakeSet(
			attrib.Attribute{Kind: attrib.Bold},
			attrib.Attribute{Kind: attrib.Italic},
		),
	)
	if got := String(sp); got != "<strong><em>a &lt; b</em></strong>" {
		t.Errorf("unexpected serialization %q", got)
	}
}

func TestSerializeStyleDeclaration(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "attrib")
	defer teardown()
	//
	sp := buildSpan(t,
		"x", attrib.MakeSet(
			attrib.Attribute{Kind: attrib.Color, Value: "#FF0000"},
			attrib.Attribute{Kind: attrib.Background, Value: "transparent"},
		),
	)
	want := `<mark style="color: #ff0000; background-color: transparent">x</mark>`
	if got := String(sp); got != want {
		t.Errorf("unexpected serialization %q", got)
	}
}

func TestDeserializeLegacyTags(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "attrib")
	defer teardown()
	//
	sp := FromString("<b>a</b><i>b</i><ins>c</ins><del>d</del>")
	if sp.String() != "abcd" {
		t.Fatalf("expected text 'abcd', got %q", sp.String())
	}
	want := []attrib.Kind{attrib.Bold, attrib.Italic, attrib.Underline, attrib.Strike}
	i := 0
	for r := range sp.RangeRuns() {
		if i >= len(want) {
			t.Fatalf("too many runs: %v", r)
		}
		if !r.Attrs().Has(want[i]) {
			t.Errorf("run %d: expected %v, got %v", i, want[i], r.Attrs())
		}
		i++
	}
	if i != len(want) {
		t.Errorf("expected %d runs, got %d", len(want), i)
	}
}

func TestDeserializeMergesEqualRuns(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "attrib")
	defer teardown()
	//
	sp := FromString("<strong>a</strong><b>b</b>")
	if sp.RunCount() != 1 {
		t.Fatalf("expected equal-attributed fragments merged, got %d runs", sp.RunCount())
	}
	r, _ := sp.Run(sp.First())
	if r.Text() != "ab" || !r.Attrs().Has(attrib.Bold) {
		t.Errorf("expected single bold run 'ab', got %v", r)
	}
}

func TestDeserializeStripsDisallowedStyle(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "attrib")
	defer teardown()
	//
	sp := FromString(`<mark style="color: Red; position: absolute; background-image: url(x)">x</mark>`)
	r, _ := sp.Run(sp.First())
	c, ok := r.Attrs().Get(attrib.Color)
	if !ok || c.Value != "red" {
		t.Errorf("expected canonical color red, got %v", r.Attrs())
	}
	if r.Attrs().Len() != 1 {
		t.Errorf("expected disallowed properties stripped, got %v", r.Attrs())
	}
}

func TestDeserializeUnknownTagContributesText(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "attrib")
	defer teardown()
	//
	sp := FromString("<blink>abc</blink>def")
	if sp.String() != "abcdef" {
		t.Errorf("expected text preserved, got %q", sp.String())
	}
	if sp.RunCount() != 1 {
		t.Errorf("expected one unattributed run, got %d", sp.RunCount())
	}
}

func TestDeserializeMalformedDegrades(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "attrib")
	defer teardown()
	//
	sp := FromString("abc</strong><em>def")
	if sp.String() != "abcdef" {
		t.Errorf("expected text preserved despite malformed markup, got %q", sp.String())
	}
	last, _ := sp.Run(sp.Last())
	if !last.Attrs().Has(attrib.Italic) {
		t.Errorf("expected trailing italics recovered, got %v", last.Attrs())
	}
}

func TestRoundTrip(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "attrib")
	defer teardown()
	//
	sp := buildSpan(t,
		"plain ", attrib.Set{},
		"bold", attrib.MakeSet(attrib.Attribute{Kind: attrib.Bold}),
		" and a ", attrib.Set{},
		"link", attrib.MakeSet(attrib.Attribute{Kind: attrib.Link, Value: "https://example.com/?a=1&b=2"}),
	)
	back := FromString(String(sp))
	if back.String() != sp.String() {
		t.Fatalf("round trip changed the text: %q vs %q", back.String(), sp.String())
	}
	if back.RunCount() != sp.RunCount() {
		t.Fatalf("round trip changed the partition: %d vs %d runs", back.RunCount(), sp.RunCount())
	}
	var orig, got []span.Run
	for r := range sp.RangeRuns() {
		orig = append(orig, r)
	}
	for r := range back.RangeRuns() {
		got = append(got, r)
	}
	for i := range orig {
		if orig[i].Text() != got[i].Text() || !orig[i].Attrs().Equal(got[i].Attrs()) {
			t.Errorf("run %d differs: %v vs %v", i, orig[i], got[i])
		}
	}
}
