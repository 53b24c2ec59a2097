/*
Package formatter renders attributed spans to a console.

This is a debugging and demo surface: it makes run boundaries and
formatting visible on a terminal, it does not attempt typographic layout.
Line breaking is greedy at grapheme granularity, with character widths
taken from an East-Asian-width context, so CJK text does not overshoot
the terminal width.

_________________________________________________________________________

BSD 3-Clause License

Copyright (c) Norbert Pillmayer

For details please refer to the LICENSE file.
*/
package formatter

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'attrib'
func tracer() tracing.Trace {
	return tracing.Select("attrib")
}
