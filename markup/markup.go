package markup

/*
_________________________________________________________________________

BSD 3-Clause License

Copyright (c) Norbert Pillmayer

For details please refer to the LICENSE file.
*/

import (
	"io"
	"strings"

	"github.com/npillmayer/attrib"
	"github.com/npillmayer/attrib/span"
	"golang.org/x/net/html"
)

// Serialize writes a span as inline markup. Every run becomes a stretch of
// escaped text wrapped in the tags for its attributes; empty runs (cursor
// homes, pending targets) produce no output.
func Serialize(sp *span.Span, w io.Writer) error {
	for r := range sp.RangeRuns() {
		if r.IsEmpty() {
			continue
		}
		if _, err := io.WriteString(w, runMarkup(r)); err != nil {
			return err
		}
	}
	return nil
}

// String returns a span's inline markup serialization.
func String(sp *span.Span) string {
	var sb strings.Builder
	Serialize(sp, &sb)
	return sb.String()
}

func runMarkup(r span.Run) string {
	attrs := r.Attrs()
	var sb strings.Builder
	var closing []string
	wrap := func(open, end string) {
		sb.WriteString(open)
		closing = append(closing, end)
	}
	if attrs.Has(attrib.Bold) {
		wrap("<strong>", "</strong>")
	}
	if attrs.Has(attrib.Italic) {
		wrap("<em>", "</em>")
	}
	if attrs.Has(attrib.Underline) {
		wrap("<u>", "</u>")
	}
	if attrs.Has(attrib.Strike) {
		wrap("<s>", "</s>")
	}
	if a, ok := attrs.Get(attrib.Link); ok {
		wrap(`<a href="`+html.EscapeString(a.Value)+`">`, "</a>")
	}
	if decl := styleDecl(attrs); decl != "" {
		wrap(`<mark style="`+html.EscapeString(decl)+`">`, "</mark>")
	}
	sb.WriteString(html.EscapeString(r.Text()))
	for i := len(closing) - 1; i >= 0; i-- {
		sb.WriteString(closing[i])
	}
	return sb.String()
}

// styleDecl renders the value-carrying color attributes as a style
// declaration, the one place the wire format needs CSS syntax.
func styleDecl(attrs attrib.Set) string {
	var parts []string
	if a, ok := attrs.Get(attrib.Color); ok {
		parts = append(parts, "color: "+a.Value)
	}
	if a, ok := attrs.Get(attrib.Background); ok {
		parts = append(parts, "background-color: "+a.Value)
	}
	return strings.Join(parts, "; ")
}

// Deserialize reads inline markup and reconstructs the attributed span.
// Only reading the input can fail; parsing cannot, the HTML parser
// error-corrects and whatever it cannot make sense of degrades to
// unattributed text.
func Deserialize(r io.Reader) (*span.Span, error) {
	input, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return FromString(string(input)), nil
}

// FromString reconstructs an attributed span from inline markup.
func FromString(s string) *span.Span {
	nodes, err := html.ParseFragment(strings.NewReader(s), nil)
	if err != nil {
		tracer().Errorf("markup: %v: %v", attrib.ErrBadMarkup, err)
		return span.FromString(s)
	}
	b := span.NewBuilder()
	for _, n := range nodes {
		collect(n, attrib.Set{}, b)
	}
	return b.Span()
}

// collect walks an HTML fragment, accumulating the attribute set implied
// by the element path and appending text leaves to the builder. Unknown
// elements contribute their text content, nothing else.
func collect(n *html.Node, attrs attrib.Set, b *span.Builder) {
	switch n.Type {
	case html.TextNode:
		b.Append(n.Data, attrs.Clone())
	case html.ElementNode:
		attrs = elementAttrs(n, attrs)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collect(c, attrs, b)
	}
}

func elementAttrs(n *html.Node, attrs attrib.Set) attrib.Set {
	switch n.Data {
	case "a":
		if href := attrValue(n, "href"); href != "" {
			return attrs.With(attrib.Attribute{Kind: attrib.Link, Value: href})
		}
		return attrs
	case "mark":
		out := attrs.Clone()
		for _, a := range parseStyle(attrValue(n, "style")) {
			out.Add(a)
		}
		return out
	}
	if k, ok := attrib.KindFromName(n.Data); ok && !k.HasValue() {
		return attrs.With(attrib.Attribute{Kind: k})
	}
	return attrs
}

func attrValue(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

// parseStyle extracts the allow-listed properties from a style
// declaration. Everything else is dropped; persisted markup may come from
// untrusted sources and style is the injection surface.
func parseStyle(decl string) []attrib.Attribute {
	var out []attrib.Attribute
	for _, part := range strings.Split(decl, ";") {
		prop, val, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}
		prop = strings.ToLower(strings.TrimSpace(prop))
		val = strings.TrimSpace(val)
		if val == "" {
			continue
		}
		switch prop {
		case "color":
			out = append(out, attrib.Attribute{Kind: attrib.Color, Value: val})
		case "background-color":
			out = append(out, attrib.Attribute{Kind: attrib.Background, Value: val})
		default:
			tracer().Debugf("markup: stripping style property %q", prop)
		}
	}
	return out
}
