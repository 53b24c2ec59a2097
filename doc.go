/*
Package attrib implements an inline attribute range engine for rich text.

Attributes

Rich text is modelled as a span of text partitioned into runs, where every
run carries a set of character-level formatting attributes (bold, italics,
text color, link targets and the like). This root package holds the
attribute model: kinds, attribute values, attribute sets and the
canonicalization rules which collapse legacy encodings of the same
formatting into one representation.

The run partition itself, boundary resolution and normalization live in
package span. Applying and removing attributes over ranges, including the
handling of attributes toggled at a collapsed cursor, is the job of package
engine. Package markup reads and writes the inline markup wire format.

_________________________________________________________________________

BSD 3-Clause License

Copyright (c) Norbert Pillmayer

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions are met:

1. Redistributions of source code must retain the above copyright notice, this
list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright notice,
this list of conditions and the following disclaimer in the documentation
and/or other materials provided with the distribution.

3. Neither the name of the copyright holder nor the names of its
contributors may be used to endorse or promote products derived from
this software without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS "AS IS"
AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED TO, THE
IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE ARE
DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR CONTRIBUTORS BE LIABLE
FOR ANY DIRECT, INDIRECT, INCIDENTAL, SPECIAL, EXEMPLARY, OR CONSEQUENTIAL
DAMAGES (INCLUDING, BUT NOT LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR
SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER
CAUSED AND ON ANY THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY,
OR TORT (INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.

*/
package attrib

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'attrib'
func tracer() tracing.Trace {
	return tracing.Select("attrib")
}

// Error is an error type for the attrib module.
type Error string

func (e Error) Error() string {
	return string(e)
}

// ErrOutOfRange is flagged whenever an offset lies outside the bounds of the
// run or span it refers to.
const ErrOutOfRange = Error("offset out of range")

// ErrStaleReference is flagged whenever an operation targets a run or cursor
// which has been removed from its span.
const ErrStaleReference = Error("stale run reference")

// ErrAttributeConflict is reserved for attribute kinds with mutually
// exclusive values. No built-in kind currently produces it.
const ErrAttributeConflict = Error("conflicting attribute values")

// ErrBadMarkup is flagged for malformed inline markup during deserialization.
const ErrBadMarkup = Error("malformed inline markup")
