/*
Package markup reads and writes attributed spans as inline markup.

The wire format is a flat sequence of inline HTML tags: bold runs
serialize to <strong>, italics to <em>, links to <a href=…>, colors to
<mark> elements carrying a style declaration. Deserialization accepts
legacy tag spellings (<b>, <i>, <ins>, <del>) and canonicalizes them.
Style declarations are restricted to an explicit allow-list of
properties; everything else is stripped on the way in, the parser is a
sanitization boundary. Malformed markup never aborts a load — the
offending text degrades to unattributed runs.

_________________________________________________________________________

BSD 3-Clause License

Copyright (c) Norbert Pillmayer

For details please refer to the LICENSE file.
*/
package markup

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'attrib'
func tracer() tracing.Trace {
	return tracing.Select("attrib")
}
