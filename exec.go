package main

import (
	"errors"
	"fmt"

	"github.com/edwingeng/deque"

	"github.com/jcorbin/gostack/internal/flushio"
)

// Machine executes parsed stack programs. It holds a single stack of string
// values, which each program execution starts out empty.
type Machine struct {
	logging
	out flushio.WriteFlusher

	stack deque.Deque
}

func (m *Machine) push(val string) {
	if m.stack == nil {
		m.stack = deque.NewDeque()
	}
	m.stack.PushBack(val)
}

func (m *Machine) pop() (string, bool) {
	if m.stack == nil || m.stack.Empty() {
		return "", false
	}
	return m.stack.PopBack().(string), true
}

func (m *Machine) depth() int {
	if m.stack == nil {
		return 0
	}
	return m.stack.Len()
}

// reset discards the stack.
func (m *Machine) reset() { m.stack = deque.NewDeque() }

// values returns the stack contents, bottom first.
func (m *Machine) values() []string {
	n := m.depth()
	if n == 0 {
		return nil
	}
	vals := make([]string, n)
	for i := n - 1; i >= 0; i-- {
		vals[i], _ = m.pop()
	}
	for _, val := range vals {
		m.stack.PushBack(val)
	}
	return vals
}

// execProgram runs a stack program against a fresh, empty, stack; see
// execStack.
func (m *Machine) execProgram(root Pair) (uint, error) {
	m.reset()
	return m.execStack(root)
}

// execStack runs each child of root in order against the current stack.
// It stops at the first failure, returning the index of the failed child
// along with its error; otherwise it returns the number of children run.
// Any output is flushed before returning.
func (m *Machine) execStack(root Pair) (index uint, err error) {
	defer func() {
		if ferr := m.out.Flush(); err == nil && ferr != nil {
			err = ferr
		}
	}()

	if rule := root.Rule(); rule != ruleStack {
		m.logf("!", "root rule %v", rule)
		return 0, errNotStack
	}

	if m.logfn != nil {
		defer m.withLogPrefix("	")()
	}

	children := root.Inner()
	for i := 0; i < children.Len(); i++ {
		if index, err = m.execNode(children.At(i), index); err != nil {
			m.logf("#", "halt @%v: %v", index, err)
			return index, err
		}
	}
	return index, nil
}

// execNode executes one expression, returning the next instruction index.
func (m *Machine) execNode(node Pair, index uint) (uint, error) {
	if m.logfn != nil {
		m.logf(">", "exec @%v %v %q -- s:%v", index, node.Rule(), node.Text(), m.depth())
	}

	switch node.Rule() {

	// push the literal payload
	case rulePushExpr:
		m.push(node.Inner().Text())
		return index + 1, nil

	// pop and print the top value
	case rulePopExpr:
		val, ok := m.pop()
		if !ok {
			return index, popError{index, node.Text()}
		}
		if _, err := fmt.Fprintf(m.out, "POP: %v\n", val); err != nil {
			return index, err
		}
		return index + 1, nil

	// end of input; nothing to do
	case ruleEOI:
		return index + 1, nil

	default:
		return index, errUnknownRule
	}
}

var (
	errMissingInput = errors.New("Not input file provided")
	errEmptyParse   = errors.New("Parsed code is empty")
	errNotStack     = errors.New("Provided rule was not 'stack'")
	errUnknownRule  = errors.New("Received unknown rule")
	errEmptyStack   = errors.New("empty stack")
)

// popError reports a pop_expr executed against an empty stack.
type popError struct {
	Index uint
	Text  string
}

func (err popError) Error() string {
	return fmt.Sprintf("Cannot pop from empty stack at index %v: %v", err.Index, err.Text)
}

func (err popError) Unwrap() error { return errEmptyStack }
