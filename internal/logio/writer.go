package logio

import (
	"bytes"
	"sync"
)

// Writer turns written bytes into one Logf call per line, e.g. to route
// program output into testing.T.Logf. Each line is logged with Prefix in
// front of it and without its line ending.
type Writer struct {
	Logf   func(string, ...interface{})
	Prefix string

	mu      sync.Mutex
	partial []byte
}

// Write never fails; an unterminated last line is held until more is
// written or the Writer is flushed.
func (lw *Writer) Write(p []byte) (int, error) {
	lw.mu.Lock()
	defer lw.mu.Unlock()
	rest := append(lw.partial, p...)
	for {
		line, after, found := bytes.Cut(rest, []byte{'\n'})
		if !found {
			break
		}
		lw.logLine(line)
		rest = after
	}
	lw.partial = append(lw.partial[:0], rest...)
	return len(p), nil
}

// Flush logs any held partial line.
func (lw *Writer) Flush() error {
	lw.mu.Lock()
	defer lw.mu.Unlock()
	if len(lw.partial) > 0 {
		lw.logLine(lw.partial)
		lw.partial = lw.partial[:0]
	}
	return nil
}

// Close is Flush.
func (lw *Writer) Close() error { return lw.Flush() }

func (lw *Writer) logLine(line []byte) {
	lw.Logf("%s%s", lw.Prefix, line)
}
