/*
Package engine applies character-level formatting to attributed text spans.

The engine is the single entry point a hosting editor talks to. It owns a
span.Span, tracks the externally-reported selection, and offers the range
operations Apply, Remove and Toggle plus the collapsed-cursor operation
TogglePendingAtCursor. Toggling an attribute at a collapsed cursor does not
modify any existing run; instead a pending attribute record is created and
maintained across subsequent content changes, so that text typed at the
cursor picks up the toggled formatting while text typed elsewhere does not.

All operations are synchronous and must be called from a single goroutine.
A re-entrancy guard rejects calls made from within a notification hook;
such calls are logged and return the current selection unchanged. Errors
arising from stale references or out-of-range offsets are recovered
internally, an operation never leaves the span in a state violating the
run partition.

_________________________________________________________________________

BSD 3-Clause License

Copyright (c) Norbert Pillmayer

For details please refer to the LICENSE file.
*/
package engine

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'attrib'
func tracer() tracing.Trace {
	return tracing.Select("attrib")
}
