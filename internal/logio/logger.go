// Package logio implements the command line's diagnostic channel: leveled
// trace lines, plus error lines that also decide the process exit code.
package logio

import (
	"bytes"
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
)

// Logger writes whole lines to an output stream while holding a lock.
type Logger struct {
	sync.Mutex
	output   io.Writer
	errColor *color.Color
	buf      bytes.Buffer
	exitCode int
}

// SetOutput sets the logger's output stream.
func (log *Logger) SetOutput(out io.Writer) {
	log.Lock()
	defer log.Unlock()
	log.output = out
}

// SetErrorColor sets a color for error lines; nil disables coloring.
// Whether color escapes are actually emitted is up to c (see color.NoColor).
func (log *Logger) SetErrorColor(c *color.Color) {
	log.Lock()
	defer log.Unlock()
	log.errColor = c
}

// ExitCode returns a code to pass to os.Exit: 0 if nothing went wrong, 1
// after any Errorf, 2 if the output stream itself failed.
func (log *Logger) ExitCode() int {
	log.Lock()
	defer log.Unlock()
	return log.exitCode
}

// Leveledf returns a typical printf-style formatting function that logs
// messages with the given level.
func (log *Logger) Leveledf(level string) func(mess string, args ...interface{}) {
	return func(mess string, args ...interface{}) { log.Printf(level, mess, args...) }
}

// ErrorIf logs any non-nil error through Errorf.
func (log *Logger) ErrorIf(err error) {
	if err != nil {
		log.Errorf("%v", err)
	}
}

// Errorf prints a bare message line, without any level prefix, and retains
// state so that ExitCode() will return non-zero.
func (log *Logger) Errorf(mess string, args ...interface{}) {
	log.Lock()
	defer log.Unlock()
	if len(args) > 0 {
		mess = fmt.Sprintf(mess, args...)
	}
	if log.errColor != nil {
		mess = log.errColor.Sprint(mess)
	}
	log.printf("", "%s", mess)
	if log.exitCode == 0 {
		log.exitCode = 1
	}
}

// Printf prints a line to the output stream like "level: message...\n".
func (log *Logger) Printf(level, mess string, args ...interface{}) {
	log.Lock()
	defer log.Unlock()
	log.printf(level, mess, args...)
}

func (log *Logger) printf(level, mess string, args ...interface{}) {
	if level != "" {
		log.buf.WriteString(level)
		log.buf.WriteString(": ")
	}
	if len(args) > 0 {
		fmt.Fprintf(&log.buf, mess, args...)
	} else {
		log.buf.WriteString(mess)
	}
	if b := log.buf.Bytes(); len(b) == 0 || b[len(b)-1] != '\n' {
		log.buf.WriteByte('\n')
	}
	if log.output == nil {
		log.buf.Reset()
		return
	}
	if _, err := log.buf.WriteTo(log.output); err != nil {
		log.buf.Reset()
		log.exitCode = 2
	}
}
