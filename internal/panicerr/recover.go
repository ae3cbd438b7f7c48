// Package panicerr turns panics and runtime.Goexit calls into plain errors,
// so that a malfunction deep inside the interpreter still comes back to the
// caller as a single error value.
package panicerr

import (
	"errors"
	"fmt"
	"runtime/debug"
)

// Error describes how a function run under Recover failed to return.
type Error struct {
	Name   string      // label given to Recover
	Value  interface{} // the panic value, nil if the goroutine exited
	Stack  []byte      // captured at recovery, nil if the goroutine exited
	Exited bool        // runtime.Goexit was called
}

// Recover runs f in a new goroutine, returning whatever error it returns.
// If f panics, or calls runtime.Goexit, an *Error labeled with name is
// returned instead.
func Recover(name string, f func() error) (err error) {
	done := make(chan struct{})
	go func() {
		defer close(done)
		returned := false
		defer func() {
			if e := recover(); e != nil {
				err = &Error{Name: name, Value: e, Stack: debug.Stack()}
			} else if !returned {
				err = &Error{Name: name, Exited: true}
			}
		}()
		err = f()
		returned = true
	}()
	<-done
	return err
}

func (pe *Error) Error() string {
	switch {
	case pe.Exited && pe.Name == "":
		return "runtime.Goexit called"
	case pe.Exited:
		return fmt.Sprintf("%v called runtime.Goexit", pe.Name)
	case pe.Name == "":
		return fmt.Sprintf("paniced: %v", pe.Value)
	default:
		return fmt.Sprintf("%v paniced: %v", pe.Name, pe.Value)
	}
}

// Format supports %+v, which appends any stack trace to the message.
func (pe *Error) Format(f fmt.State, c rune) {
	fmt.Fprint(f, pe.Error())
	if c == 'v' && f.Flag('+') && pe.Stack != nil {
		fmt.Fprintf(f, "\nPanic stack: %s", pe.Stack)
	}
}

// Unwrap returns the panic value if it was itself an error.
func (pe *Error) Unwrap() error {
	err, _ := pe.Value.(error)
	return err
}

// IsExit returns true if err indicates a recovered goroutine exit.
func IsExit(err error) bool {
	var pe *Error
	return errors.As(err, &pe) && pe.Exited
}

// IsPanic returns true if err indicates a recovered goroutine panic.
func IsPanic(err error) bool {
	var pe *Error
	return errors.As(err, &pe) && !pe.Exited
}

// PanicStack returns the stack trace of a recovered panic, or "" if err
// is not one.
func PanicStack(err error) string {
	var pe *Error
	if errors.As(err, &pe) {
		return string(pe.Stack)
	}
	return ""
}
