/*
Package markupfile loads attributed text documents from markup files.

Opening a file happens synchronously, so callers get I/O errors right
away; decoding the markup into a span runs in a background goroutine.
Completion is broadcast to any number of subscribers, and Await offers a
blocking, context-aware way to pick up the result.

_________________________________________________________________________

BSD 3-Clause License

Copyright (c) Norbert Pillmayer

For details please refer to the LICENSE file.
*/
package markupfile

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'attrib'
func tracer() tracing.Trace {
	return tracing.Select("attrib")
}
