package formatter

/*
_________________________________________________________________________

BSD 3-Clause License

Copyright (c) Norbert Pillmayer

For details please refer to the LICENSE file.
*/

import (
	"errors"
	"io"
	"sync"

	"github.com/npillmayer/attrib"
	"github.com/npillmayer/attrib/span"
	"github.com/npillmayer/uax/grapheme"
	"github.com/npillmayer/uax/uax11"
)

// Config represents a set of configuration parameters for formatting.
type Config struct {
	LineWidth int
	Context   *uax11.Context
}

// Format is an interface for formatting drivers, given an io.Writer.
type Format interface {
	Preamble(io.Writer)
	Postamble(io.Writer)
	StyledText(string, attrib.Set, io.Writer)
	Newline(io.Writer)
}

var setupGraphemes sync.Once

// Output renders a span using a given formatting driver.
//
// Neither span, config nor format may be nil. It is safe to leave
// config.Context empty; uax11.LatinContext is used in that case.
func Output(sp *span.Span, out io.Writer, config *Config, format Format) error {
	if sp == nil || config == nil || format == nil {
		return errors.New("illegal argument: nil")
	}
	context := config.Context
	if context == nil {
		context = uax11.LatinContext
	}
	width := config.LineWidth
	if width <= 0 {
		width = 65
	}
	setupGraphemes.Do(grapheme.SetupGraphemeClasses)
	format.Preamble(out)
	used := 0
	for r := range sp.RangeRuns() {
		if r.IsEmpty() {
			continue
		}
		attrs := r.Attrs()
		gstr := grapheme.StringFromString(r.Text())
		chunk := ""
		for i := 0; i < gstr.Len(); i++ {
			g := gstr.Nth(i)
			gw := uax11.StringWidth(grapheme.StringFromString(g), context)
			if used+gw > width && used > 0 {
				if chunk != "" {
					format.StyledText(chunk, attrs, out)
					chunk = ""
				}
				format.Newline(out)
				used = 0
			}
			chunk += g
			used += gw
		}
		if chunk != "" {
			format.StyledText(chunk, attrs, out)
		}
	}
	format.Newline(out)
	format.Postamble(out)
	return nil
}
