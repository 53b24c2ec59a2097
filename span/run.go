package span

import (
	"fmt"
	"strings"

	"github.com/npillmayer/attrib"
)

// RunID is a stable opaque identifier for a run within its span. The zero
// value never identifies a live run.
type RunID int32

// InvalidRun is the zero RunID.
const InvalidRun RunID = 0

// Run is the atomic unit of formatting: a slice of text together with the
// attribute set applied to it. A run owns its text exclusively; runs of a
// span never overlap.
//
// Runs handed out by a span are copies. All mutation goes through the
// owning span, keyed by RunID.
type Run struct {
	id    RunID
	text  string
	attrs attrib.Set
}

// ID returns the run's stable identifier.
func (r Run) ID() RunID {
	return r.id
}

// Text returns the run's text slice.
func (r Run) Text() string {
	return r.text
}

// Len returns the run's text length in bytes.
func (r Run) Len() int {
	return len(r.text)
}

// IsEmpty reports whether the run holds no text.
func (r Run) IsEmpty() bool {
	return len(r.text) == 0
}

// IsWhitespace reports whether the run's text consists of whitespace only.
// An empty run does not count as whitespace.
func (r Run) IsWhitespace() bool {
	return len(r.text) > 0 && strings.TrimSpace(r.text) == ""
}

// Attrs returns a copy of the run's attribute set.
func (r Run) Attrs() attrib.Set {
	return r.attrs.Clone()
}

// String returns an informational string for the run. Clients must not rely
// on the format of the string.
func (r Run) String() string {
	return fmt.Sprintf("run#%d%v(%q)", r.id, r.attrs, r.text)
}
