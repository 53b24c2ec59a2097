/*
Package span maintains the partition of an editable text region into
attributed runs.

A Span owns an ordered sequence of runs whose concatenated text equals the
span's full text, with no gaps and no overlaps. Runs live in an arena
indexed by stable opaque ids; neighbor relationships are derived from span
order rather than stored pointers, so a removed run can never dangle.

The package provides the boundary locator (resolving external cursors onto
run boundaries, splitting runs as needed), the normalizer (merging equal
neighbors, dropping empty runs) and selection restoration after structural
mutations.

_________________________________________________________________________

BSD 3-Clause License

Copyright (c) Norbert Pillmayer

For details please refer to the LICENSE file.
*/
package span

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'attrib'
func tracer() tracing.Trace {
	return tracing.Select("attrib")
}
