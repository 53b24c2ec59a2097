package markupfile

/*
_________________________________________________________________________

BSD 3-Clause License

Copyright (c) Norbert Pillmayer

For details please refer to the LICENSE file.
*/

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/guiguan/caster"
	"github.com/npillmayer/attrib/markup"
	"github.com/npillmayer/attrib/span"
)

// Document is a markup document backed by a file. Its span becomes
// available once the background decoding has finished; until then Span
// reports not-ready and Await blocks.
type Document struct {
	Path string
	info os.FileInfo
	cast *caster.Caster
	done chan struct{}
	mx   sync.Mutex
	sp   *span.Span
	err  error
}

// Load opens a markup file and starts decoding it into a span in the
// background. Opening is synchronous, callers see missing or irregular
// files immediately; malformed markup is not an error condition, it
// degrades to unattributed text.
func Load(name string) (*Document, error) {
	fi, err := os.Stat(name)
	if err != nil {
		return nil, err
	}
	if !fi.Mode().IsRegular() {
		return nil, fmt.Errorf("file is not a regular file")
	}
	file, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	doc := &Document{
		Path: name,
		info: fi,
		cast: caster.New(nil),
		done: make(chan struct{}),
	}
	go doc.decode(file)
	return doc, nil
}

func (doc *Document) decode(file *os.File) {
	defer doc.cast.Close()
	defer close(doc.done)
	sp, err := markup.Deserialize(file)
	file.Close()
	doc.mx.Lock()
	doc.sp, doc.err = sp, err
	doc.mx.Unlock()
	if err != nil {
		tracer().Errorf("markupfile: decoding %s: %v", doc.Path, err)
		doc.cast.Pub(err)
		return
	}
	tracer().Debugf("markupfile: %s decoded, %d runs", doc.Path, sp.RunCount())
	doc.cast.Pub(sp)
}

// Size returns the size of the underlying file in bytes.
func (doc *Document) Size() int64 {
	return doc.info.Size()
}

// Ready reports whether background decoding has finished.
func (doc *Document) Ready() bool {
	select {
	case <-doc.done:
		return true
	default:
		return false
	}
}

// Span returns the decoded span. While decoding is still in flight it
// returns (nil, nil); after completion it returns the span or the I/O
// error decoding ran into.
func (doc *Document) Span() (*span.Span, error) {
	if !doc.Ready() {
		return nil, nil
	}
	doc.mx.Lock()
	defer doc.mx.Unlock()
	return doc.sp, doc.err
}

// Await blocks until the document is decoded or the context is done.
func (doc *Document) Await(ctx context.Context) (*span.Span, error) {
	select {
	case <-doc.done:
		return doc.Span()
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Subscribe registers for the completion broadcast. The returned channel
// receives the decoded *span.Span (or an error value) and is closed
// afterwards. Subscribing after completion yields a closed channel; use
// Await or Span for late pickup.
func (doc *Document) Subscribe(ctx context.Context) (<-chan interface{}, bool) {
	return doc.cast.Sub(ctx, 1)
}

// Save writes a span to a file as inline markup, replacing the file's
// previous content.
func Save(name string, sp *span.Span) error {
	file, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := markup.Serialize(sp, file); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
