// Package flushio provides buffered output streams that must be explicitly
// flushed, and a way to fan one stream out to several.
package flushio

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"strings"
)

// WriteFlusher is a flush-able io.Writer.
type WriteFlusher interface {
	io.Writer
	Flush() error
}

// NewWriteFlusher adapts w into a WriteFlusher. Anything that can already
// flush is used as-is; in-memory buffers and io.Discard get a Flush that
// does nothing; any other writer is buffered by a new bufio.Writer.
func NewWriteFlusher(w io.Writer) WriteFlusher {
	switch impl := w.(type) {
	case WriteFlusher:
		return impl
	case *bytes.Buffer, *strings.Builder:
		return writeThrough{w}
	}
	if w == io.Discard {
		return writeThrough{w}
	}
	return bufio.NewWriter(w)
}

type writeThrough struct{ io.Writer }

func (writeThrough) Flush() error { return nil }

// WriteFlushers tees into every given WriteFlusher; nil ones are skipped,
// and nested tees are flattened. Returns nil when given no streams, or the
// only stream when given just one.
func WriteFlushers(wfs ...WriteFlusher) WriteFlusher {
	var t tee
	for _, wf := range wfs {
		switch impl := wf.(type) {
		case nil:
		case tee:
			t = append(t, impl...)
		default:
			t = append(t, impl)
		}
	}
	if len(t) == 0 {
		return nil
	} else if len(t) == 1 {
		return t[0]
	}
	return t
}

type tee []WriteFlusher

// Write stops at the first stream that fails or comes up short.
func (t tee) Write(p []byte) (int, error) {
	for _, wf := range t {
		if n, err := wf.Write(p); err != nil {
			return n, err
		} else if n < len(p) {
			return n, io.ErrShortWrite
		}
	}
	return len(p), nil
}

// Flush flushes every stream, even after one fails.
func (t tee) Flush() error {
	errs := make([]error, len(t))
	for i, wf := range t {
		errs[i] = wf.Flush()
	}
	return errors.Join(errs...)
}
