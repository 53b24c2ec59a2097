package span

import (
	"github.com/npillmayer/attrib"
)

// Builder assembles a span from attributed text fragments.
type Builder struct {
	sp   *Span
	done bool
}

// NewBuilder creates a new and empty builder for a span.
func NewBuilder() *Builder {
	return &Builder{
		sp: &Span{
			byID: make(map[RunID]*Run),
			next: 1,
		},
	}
}

// Append appends a text fragment with the given attributes at the end of
// the span to build. Empty fragments are dropped silently.
func (b *Builder) Append(text string, attrs attrib.Set) error {
	if b.done {
		return attrib.ErrStaleReference
	}
	if text == "" {
		return nil
	}
	b.sp.insertRunAt(len(b.sp.order), text, attrs)
	return nil
}

// Span returns the built span, normalized. It is illegal to continue
// appending fragments after Span has been called. A builder without any
// fragments yields the span of the empty text.
func (b *Builder) Span() *Span {
	b.done = true
	if len(b.sp.order) == 0 {
		b.sp.insertRunAt(0, "", attrib.Set{})
	}
	b.sp.Normalize(WholeSpan(), nil)
	return b.sp
}
