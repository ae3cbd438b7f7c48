package main

import (
	"io"

	"github.com/jcorbin/gostack/internal/fileinput"
	"github.com/jcorbin/gostack/internal/panicerr"
)

// New creates a Machine; by default its output is discarded.
func New(opts ...Option) *Machine {
	var m Machine
	defaultOptions.apply(&m)
	if opt := Options(opts...); opt != nil {
		opt.apply(&m)
	}
	return &m
}

// WithOutput sets where POP lines are written.
func WithOutput(w io.Writer) Option { return withOutput(w) }

// WithTee copies POP lines to w, in addition to any prior output.
func WithTee(w io.Writer) Option { return withTee(w) }

// WithLogf enables trace logging of every executed node.
func WithLogf(logfn func(mess string, args ...interface{})) Option { return withLogfn(logfn) }

// Run executes the program held by the top-level pairs produced by Parse,
// starting from an empty stack. It returns the final instruction index, or
// the index at which execution failed along with the error.
func (m *Machine) Run(pairs Pairs) (uint, error) {
	return m.run(pairs, m.execProgram)
}

// Resume is like Run, but starts from whatever values earlier runs left on
// the stack.
func (m *Machine) Resume(pairs Pairs) (uint, error) {
	return m.run(pairs, m.execStack)
}

func (m *Machine) run(pairs Pairs, exec func(root Pair) (uint, error)) (index uint, err error) {
	err = panicerr.Recover("stack", func() error {
		root, ok := pairs.Peek()
		if !ok {
			return errEmptyParse
		}
		index, err = exec(root)
		return err
	})
	return index, err
}

// RunString parses and runs an in-memory script.
func (m *Machine) RunString(name, text string) (uint, error) {
	return m.runFile(fileinput.New(name, text))
}

// RunFile reads, parses, and runs the named script file.
func (m *Machine) RunFile(name string) (uint, error) {
	file, err := fileinput.Open(name)
	if err != nil {
		return 0, err
	}
	return m.runFile(file)
}

func (m *Machine) runFile(file *fileinput.File) (uint, error) {
	pairs, err := Parse(file)
	if err != nil {
		return 0, err
	}
	return m.Run(pairs)
}
