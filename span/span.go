package span

import (
	"iter"
	"strings"

	"github.com/npillmayer/attrib"
)

// Span is an ordered partition of one editable text region into attributed
// runs. The concatenation of all run texts, in order, is the span's full
// text; runs never overlap and leave no gaps.
//
// Runs are held in an arena indexed by stable ids. Order and neighborship
// are derived from the span's run order, not from pointers stored in runs.
type Span struct {
	byID  map[RunID]*Run
	order []RunID
	next  RunID
}

// New creates a span for the empty text. It holds a single empty run, which
// serves as the home for a cursor in an empty document.
func New() *Span {
	sp := &Span{
		byID: make(map[RunID]*Run),
		next: 1,
	}
	sp.insertRunAt(0, "", attrib.Set{})
	return sp
}

// FromString creates a span holding the given text as one unattributed run.
func FromString(s string) *Span {
	sp := &Span{
		byID: make(map[RunID]*Run),
		next: 1,
	}
	sp.insertRunAt(0, s, attrib.Set{})
	return sp
}

// String returns the span's full text: the concatenation of all run texts
// in order.
func (sp *Span) String() string {
	var sb strings.Builder
	for _, id := range sp.order {
		sb.WriteString(sp.byID[id].text)
	}
	return sb.String()
}

// Len returns the span's text length in bytes.
func (sp *Span) Len() int {
	n := 0
	for _, id := range sp.order {
		n += len(sp.byID[id].text)
	}
	return n
}

// RunCount returns the number of runs in the span.
func (sp *Span) RunCount() int {
	return len(sp.order)
}

// Valid reports whether id identifies a live run of this span.
func (sp *Span) Valid(id RunID) bool {
	_, ok := sp.byID[id]
	return ok
}

// Run returns a copy of the identified run.
func (sp *Span) Run(id RunID) (Run, error) {
	r, ok := sp.byID[id]
	if !ok {
		return Run{}, attrib.ErrStaleReference
	}
	return *r, nil
}

// RunText returns the text of the identified run.
func (sp *Span) RunText(id RunID) (string, error) {
	r, ok := sp.byID[id]
	if !ok {
		return "", attrib.ErrStaleReference
	}
	return r.text, nil
}

// First returns the id of the first run, or InvalidRun for a void span.
func (sp *Span) First() RunID {
	if len(sp.order) == 0 {
		return InvalidRun
	}
	return sp.order[0]
}

// Last returns the id of the last run, or InvalidRun for a void span.
func (sp *Span) Last() RunID {
	if len(sp.order) == 0 {
		return InvalidRun
	}
	return sp.order[len(sp.order)-1]
}

// Next returns the id of the run following id in span order.
func (sp *Span) Next(id RunID) (RunID, bool) {
	i := sp.indexOf(id)
	if i < 0 || i+1 >= len(sp.order) {
		return InvalidRun, false
	}
	return sp.order[i+1], true
}

// Prev returns the id of the run preceding id in span order.
func (sp *Span) Prev(id RunID) (RunID, bool) {
	i := sp.indexOf(id)
	if i <= 0 {
		return InvalidRun, false
	}
	return sp.order[i-1], true
}

// RangeRuns returns an iterator over copies of all runs in span order,
// together with each run's starting byte offset.
func (sp *Span) RangeRuns() iter.Seq2[Run, int] {
	return func(yield func(Run, int) bool) {
		pos := 0
		for _, id := range sp.order {
			r := sp.byID[id]
			if !yield(*r, pos) {
				return
			}
			pos += len(r.text)
		}
	}
}

// EachRun applies a function to every run in span order. The callback
// receives a copy of each run and its starting byte offset. Iteration stops
// at the first callback error and returns that error to the caller.
func (sp *Span) EachRun(f func(r Run, pos int) error) error {
	pos := 0
	for _, id := range sp.order {
		r := sp.byID[id]
		if err := f(*r, pos); err != nil {
			return err
		}
		pos += len(r.text)
	}
	return nil
}

// Clone returns a deep copy of the span. Run ids are preserved, so cursors
// taken from the original remain meaningful in the copy.
func (sp *Span) Clone() *Span {
	c := &Span{
		byID:  make(map[RunID]*Run, len(sp.byID)),
		order: make([]RunID, len(sp.order)),
		next:  sp.next,
	}
	copy(c.order, sp.order)
	for id, r := range sp.byID {
		rc := *r
		rc.attrs = r.attrs.Clone()
		c.byID[id] = &rc
	}
	return c
}

// --- Mutation --------------------------------------------------------------

// SetRunText replaces the text of the identified run. Aside from text
// growth or shrinkage this changes nothing about the partition; callers are
// responsible for a subsequent normalize pass if the run may have become
// empty.
func (sp *Span) SetRunText(id RunID, text string) error {
	r, ok := sp.byID[id]
	if !ok {
		return attrib.ErrStaleReference
	}
	r.text = text
	return nil
}

// SetRunAttrs replaces the attribute set of the identified run.
func (sp *Span) SetRunAttrs(id RunID, attrs attrib.Set) error {
	r, ok := sp.byID[id]
	if !ok {
		return attrib.ErrStaleReference
	}
	r.attrs = attrs.Clone()
	return nil
}

// InsertText inserts s into the identified run at the given offset.
func (sp *Span) InsertText(c Cursor, s string) error {
	r, ok := sp.byID[c.Run]
	if !ok {
		return attrib.ErrStaleReference
	}
	if c.Offset < 0 || c.Offset > len(r.text) {
		return attrib.ErrOutOfRange
	}
	r.text = r.text[:c.Offset] + s + r.text[c.Offset:]
	return nil
}

// DeleteText removes n bytes of text starting at cursor c, crossing run
// boundaries as needed. Runs emptied by the deletion are left in place;
// a later normalization pass will collect them. Deleting past the span
// end stops at the end.
func (sp *Span) DeleteText(c Cursor, n int) error {
	pos, err := sp.Offset(c)
	if err != nil {
		return err
	}
	for n > 0 {
		at, err := sp.Locate(pos)
		if err != nil {
			return err
		}
		r := sp.byID[at.Run]
		k := len(r.text) - at.Offset
		if k == 0 { // end of span
			break
		}
		if k > n {
			k = n
		}
		r.text = r.text[:at.Offset] + r.text[at.Offset+k:]
		n -= k
	}
	return nil
}

// InsertRunBefore creates a new run with the given text and attributes
// immediately before the identified run and returns its id.
func (sp *Span) InsertRunBefore(id RunID, text string, attrs attrib.Set) (RunID, error) {
	i := sp.indexOf(id)
	if i < 0 {
		return InvalidRun, attrib.ErrStaleReference
	}
	return sp.insertRunAt(i, text, attrs), nil
}

// InsertRunAfter creates a new run with the given text and attributes
// immediately after the identified run and returns its id.
func (sp *Span) InsertRunAfter(id RunID, text string, attrs attrib.Set) (RunID, error) {
	i := sp.indexOf(id)
	if i < 0 {
		return InvalidRun, attrib.ErrStaleReference
	}
	return sp.insertRunAt(i+1, text, attrs), nil
}

// RemoveRun deletes the identified run from the span. The run's text is
// dropped with it; callers deleting non-empty runs relocate the text first.
func (sp *Span) RemoveRun(id RunID) error {
	i := sp.indexOf(id)
	if i < 0 {
		return attrib.ErrStaleReference
	}
	delete(sp.byID, id)
	sp.order = append(sp.order[:i:i], sp.order[i+1:]...)
	return nil
}

// Merge concatenates the right run into the left one. Both runs must be
// adjacent in span order, left before right. The left run's identity
// survives, the right run is removed. Attributes of the left run win; Merge
// does not check attribute equality, that is the normalizer's business.
func (sp *Span) Merge(left, right RunID) error {
	l, ok := sp.byID[left]
	if !ok {
		return attrib.ErrStaleReference
	}
	r, ok := sp.byID[right]
	if !ok {
		return attrib.ErrStaleReference
	}
	if nxt, ok := sp.Next(left); !ok || nxt != right {
		return attrib.ErrOutOfRange
	}
	l.text += r.text
	return sp.RemoveRun(right)
}

// insertRunAt creates a run and splices it into the order at position i.
func (sp *Span) insertRunAt(i int, text string, attrs attrib.Set) RunID {
	id := sp.next
	sp.next++
	sp.byID[id] = &Run{id: id, text: text, attrs: attrs.Clone()}
	sp.order = append(sp.order, InvalidRun)
	copy(sp.order[i+1:], sp.order[i:])
	sp.order[i] = id
	return id
}

// indexOf returns the position of id in span order, or -1.
func (sp *Span) indexOf(id RunID) int {
	for i, rid := range sp.order {
		if rid == id {
			return i
		}
	}
	return -1
}

// start returns the absolute byte offset of the run at order position i.
func (sp *Span) start(i int) int {
	pos := 0
	for k := 0; k < i; k++ {
		pos += len(sp.byID[sp.order[k]].text)
	}
	return pos
}
