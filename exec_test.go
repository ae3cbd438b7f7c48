package main

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcorbin/gostack/internal/fileinput"
	"github.com/jcorbin/gostack/internal/logio"
	"github.com/jcorbin/gostack/internal/panicerr"
)

func Test_Machine(t *testing.T) {
	stackTestCases{
		stackTest("empty program").withSource(``).
			expectIndex(1).expectOutput("").expectStack(),

		stackTest("only comments").withSource("# nothing here\n\n  # or here").
			expectIndex(1).expectOutput(""),

		stackTest("push").withSource(`push "a"`).
			expectIndex(2).expectOutput("").expectStack("a"),

		stackTest("push push pop pop").withSource(`push "a" push "b" pop pop`).
			expectIndex(5).expectOutput(lines("POP: b", "POP: a")).expectStack(),

		stackTest("round trip").withSource(`push "hello" pop`).
			expectIndex(3).expectOutput(lines("POP: hello")),

		stackTest("verbatim literal").withSource("push \"  spaced\tout # not a comment \" pop").
			expectOutput(lines("POP:   spaced\tout # not a comment ")),

		stackTest("multi-line literal").withSource("push \"a\nb\"\npop").
			expectIndex(3).expectOutput(lines("POP: a", "b")),

		stackTest("empty literal").withSource(`push "" pop`).
			expectIndex(3).expectOutput(lines("POP: ")),

		stackTest("keyword adjacent literal").withSource(`push"x"pop`).
			expectIndex(3).expectOutput(lines("POP: x")),

		stackTest("pop empty").withSource(`pop`).
			expectIndex(0).expectOutput("").
			expectError(errEmptyStack).
			expectErrorString("Cannot pop from empty stack at index 0: pop"),

		stackTest("first failure only").withSource(`pop pop pop`).
			expectIndex(0).
			expectErrorString("Cannot pop from empty stack at index 0: pop"),

		stackTest("fails midway").withSource("push \"a\"\n  pop  pop # extra\npush \"b\"").
			expectIndex(2).
			expectOutput(lines("POP: a")).
			expectErrorString("Cannot pop from empty stack at index 2: pop").
			expectStack(),

		stackTest("runs start empty").withStack("stale").withSource(`pop`).
			expectIndex(0).
			expectError(errEmptyStack),

		stackTest("resume").withStack("under", "over").resuming().withSource(`pop push "top" pop pop`).
			expectIndex(5).
			expectOutput(lines("POP: over", "POP: top", "POP: under")).
			expectStack(),

		stackTest("resume fails").withStack("only").resuming().withSource(`pop pop`).
			expectIndex(1).
			expectOutput(lines("POP: only")).
			expectErrorString("Cannot pop from empty stack at index 1: pop"),

		stackTest("tree").withSource(`push "a" pop`).
			expectDump(lines(
				`# Tree Test_Machine/tree`,
				`  @ 0..12 stack`,
				`  @ 0..8    push_expr "push \"a\""`,
				`  @ 6..7      literal "a"`,
				`  @ 9..12   pop_expr "pop"`,
				`  @12..12   EOI`,
			)),
	}.run(t)
}

func Test_Machine_contract(t *testing.T) {
	build := func(text string, nodes ...treeNode) Pairs {
		tree := newTree(fileinput.New("contract", text))
		tree.nodes = nodes
		return Pairs{tree, []int{len(nodes) - 1}}
	}

	t.Run("not stack", func(t *testing.T) {
		pairs := build("pop", treeNode{rule: rulePopExpr, start: 0, end: 3})
		index, err := New().Run(pairs)
		assert.Equal(t, uint(0), index)
		assert.EqualError(t, err, "Provided rule was not 'stack'")
	})

	t.Run("unknown rule", func(t *testing.T) {
		pairs := build(`push "a" "b"`,
			treeNode{rule: ruleLiteral, start: 6, end: 7},
			treeNode{rule: rulePushExpr, start: 0, end: 8, children: []int{0}},
			treeNode{rule: ruleLiteral, start: 10, end: 11},
			treeNode{rule: ruleEOI, start: 12, end: 12},
			treeNode{rule: ruleStack, start: 0, end: 12, children: []int{1, 2, 3}},
		)
		m := New()
		index, err := m.Run(pairs)
		assert.Equal(t, uint(1), index)
		assert.True(t, errors.Is(err, errUnknownRule), "expected unknown rule error, got %v", err)
		assert.EqualError(t, err, "Received unknown rule")
		assert.Equal(t, []string{"a"}, m.values(), "expected the push to have run")
	})

	t.Run("empty parse", func(t *testing.T) {
		index, err := New().Run(Pairs{})
		assert.Equal(t, uint(0), index)
		assert.EqualError(t, err, "Parsed code is empty")

		pairs := build("")
		pairs.ids = nil
		_, err = New().Run(pairs)
		assert.True(t, errors.Is(err, errEmptyParse), "expected empty parse error, got %v", err)
	})

	t.Run("recovers panics", func(t *testing.T) {
		pairs := build("", treeNode{rule: ruleStack, children: []int{7}})
		_, err := New().Run(pairs)
		require.Error(t, err)
		assert.True(t, panicerr.IsPanic(err), "expected a recovered panic, got %v", err)
		assert.Contains(t, err.Error(), "stack paniced: runtime error: index out of range")
	})
}

type failWriter struct{}

func (failWriter) Write(p []byte) (int, error) { return 0, errors.New("broken pipe") }

func Test_Machine_outputError(t *testing.T) {
	m := New(WithOutput(onlyWriter{failWriter{}}))
	index, err := m.RunString("out", `push "a" pop`)
	assert.Equal(t, uint(3), index)
	assert.EqualError(t, err, "broken pipe")

	m = New(WithOutput(onlyWriter{failWriter{}}))
	index, err = m.RunString("out", `push "a" pop pop`)
	assert.Equal(t, uint(2), index)
	assert.True(t, errors.Is(err, errEmptyStack), "the first failure wins over flushing, got %v", err)
}

func Test_Machine_trace(t *testing.T) {
	var logged []string
	m := New(WithLogf(func(mess string, args ...interface{}) {
		logged = append(logged, fmt.Sprintf(mess, args...))
	}))
	_, err := m.RunString("trace", `push "a" pop pop`)
	require.Error(t, err)
	assert.Equal(t, []string{
		"\t> exec @0 push_expr " + `"push \"a\""` + " -- s:0",
		"\t> exec @1 pop_expr \"pop\" -- s:1",
		"\t> exec @2 pop_expr \"pop\" -- s:0",
		"\t# halt @2: Cannot pop from empty stack at index 2: pop",
	}, logged)
}

func Test_Machine_tee(t *testing.T) {
	var out, tee strings.Builder
	m := New(WithOutput(&out), WithTee(&tee))
	_, err := m.RunString("tee", `push "a" pop`)
	require.NoError(t, err)
	assert.Equal(t, "POP: a\n", out.String())
	assert.Equal(t, "POP: a\n", tee.String())
}

// Test_Machine_lifo runs random prefix-valid push/pop sequences, checking
// every pop against a reference stack.
func Test_Machine_lifo(t *testing.T) {
	seed := time.Now().UnixNano()
	rng := rand.New(rand.NewSource(seed))
	t.Logf("seed: %v", seed)

	for round := 0; round < 50; round++ {
		var (
			src    strings.Builder
			want   strings.Builder
			ref    []string
			nexprs uint
		)
		for pushes, n := 0, rng.Intn(20); pushes < n || len(ref) > 0; {
			if pushes < n && (len(ref) == 0 || rng.Intn(2) == 0) {
				val := fmt.Sprintf("v%v.%v", round, pushes)
				fmt.Fprintf(&src, "push %q\n", val)
				ref = append(ref, val)
				pushes++
			} else {
				i := len(ref) - 1
				fmt.Fprintf(&src, "pop\n")
				fmt.Fprintf(&want, "POP: %v\n", ref[i])
				ref = ref[:i]
			}
			nexprs++
		}

		var out strings.Builder
		index, err := New(WithOutput(&out)).RunString("lifo", src.String())
		if !assert.NoError(t, err, "round %v:\n%v", round, src.String()) {
			continue
		}
		assert.Equal(t, nexprs+1, index, "round %v: expected final index", round)
		assert.Equal(t, want.String(), out.String(), "round %v: expected output", round)
	}
}

func Test_Machine_onlyPops(t *testing.T) {
	for n := 1; n <= 5; n++ {
		src := strings.TrimSpace(strings.Repeat("pop ", n))
		index, err := New().RunString("pops", src)
		assert.Equal(t, uint(0), index)
		if assert.Error(t, err) {
			assert.Contains(t, err.Error(), "index 0")
		}
	}
}

// Test_Machine_sharedExpects runs the same source under differing starting
// stacks, sharing expectations between cases.
func Test_Machine_sharedExpects(t *testing.T) {
	const src = `pop push "x" pop`
	failsAtStart := []func(stackTestCase) stackTestCase{
		expectRunIndex(0),
		expectRunOutput(""),
		expectRunError(errEmptyStack),
	}
	stackTestCases{
		stackTest("fresh").withSource(src).apply(failsAtStart...),
		stackTest("fresh ignores stale").withStack("stale").withSource(src).apply(failsAtStart...),
		stackTest("resumed").withStack("stale").resuming().withSource(src).apply(
			expectRunIndex(4),
			expectRunOutput(lines("POP: stale", "POP: x")),
			expectRunStack(),
		),
		stackTest("resumed deeper").withStack("a", "b").resuming().withSource(src).apply(
			expectRunIndex(4),
			expectRunStack("a"),
			expectRunDump(lines(
				`# Tree Test_Machine_sharedExpects/resumed_deeper`,
				`  @ 0..16 stack`,
				`  @ 0..3    pop_expr "pop"`,
				`  @ 4..12   push_expr "push \"x\""`,
				`  @10..11     literal "x"`,
				`  @13..16   pop_expr "pop"`,
				`  @16..16   EOI`,
			)),
		),
		stackTest("resumed too shallow").resuming().withSource(src).apply(
			expectRunIndex(0),
			expectRunErrorString("Cannot pop from empty stack at index 0: pop"),
		),
	}.run(t)
}

//// test harness

type stackTestCases []stackTestCase

func (sts stackTestCases) run(t *testing.T) {
	{
		var exclusive []stackTestCase
		for _, st := range sts {
			if st.exclusive {
				exclusive = append(exclusive, st)
			}
		}
		if len(exclusive) > 0 {
			sts = exclusive
		}
	}
	for _, st := range sts {
		if !t.Run(st.name, st.run) {
			return
		}
	}
}

func stackTest(name string) (st stackTestCase) {
	st.name = name
	return st
}

type stackTestCase struct {
	name   string
	source string
	opts   []Option
	setup  []func(m *Machine)
	expect []func(t *testing.T, m *Machine, pairs Pairs)
	resume bool

	wantIndex  *uint
	wantErr    error
	wantErrStr string

	exclusive bool
}

func (st stackTestCase) apply(wraps ...func(stackTestCase) stackTestCase) stackTestCase {
	for _, wrap := range wraps {
		st = wrap(st)
	}
	return st
}

func (st stackTestCase) exclusiveTest() stackTestCase {
	st.exclusive = true
	return st
}

func (st stackTestCase) withOptions(opts ...Option) stackTestCase {
	st.opts = append(st.opts, opts...)
	return st
}

func (st stackTestCase) withSource(source string) stackTestCase {
	st.source = source
	return st
}

func (st stackTestCase) withStack(values ...string) stackTestCase {
	st.setup = append(st.setup, func(m *Machine) {
		for _, val := range values {
			m.push(val)
		}
	})
	return st
}

func (st stackTestCase) resuming() stackTestCase {
	st.resume = true
	return st
}

func (st stackTestCase) expectIndex(index uint) stackTestCase {
	st.wantIndex = &index
	return st
}

func (st stackTestCase) expectError(err error) stackTestCase {
	st.wantErr = err
	return st
}

func (st stackTestCase) expectErrorString(mess string) stackTestCase {
	st.wantErrStr = mess
	return st
}

func (st stackTestCase) expectOutput(output string) stackTestCase {
	var out strings.Builder
	st.opts = append(st.opts, WithOutput(&out))
	st.expect = append(st.expect, func(t *testing.T, m *Machine, pairs Pairs) {
		assert.Equal(t, output, out.String(), "expected output")
	})
	return st
}

func (st stackTestCase) expectStack(values ...string) stackTestCase {
	st.expect = append(st.expect, func(t *testing.T, m *Machine, pairs Pairs) {
		assert.Equal(t, values, m.values(), "expected stack values")
	})
	return st
}

func (st stackTestCase) expectDump(dump string) stackTestCase {
	st.expect = append(st.expect, func(t *testing.T, m *Machine, pairs Pairs) {
		var out strings.Builder
		dumper{out: &out}.dumpTree(pairs)
		assert.Equal(t, dump, out.String(), "expected tree dump")
	})
	return st
}

func (st stackTestCase) run(t *testing.T) {
	m := st.buildMachine()
	lw := &logio.Writer{Logf: t.Logf, Prefix: "out: "}
	defer lw.Close()
	Options(WithLogf(t.Logf), WithTee(lw)).apply(m)
	st.runTest(t, m)
}

func (st stackTestCase) buildMachine() *Machine {
	m := New(st.opts...)
	for _, setup := range st.setup {
		setup(m)
	}
	return m
}

func (st stackTestCase) runTest(t *testing.T, m *Machine) {
	pairs, err := ParseString(t.Name(), st.source)
	require.NoError(t, err, "unexpected parse error")

	defer func() {
		if t.Failed() {
			st.dumpToTest(t, m, pairs)
		}
	}()

	var index uint
	if st.resume {
		index, err = m.Resume(pairs)
	} else {
		index, err = m.Run(pairs)
	}

	if st.wantErr != nil || st.wantErrStr != "" {
		if st.wantErr != nil {
			assert.True(t, errors.Is(err, st.wantErr), "expected error: %v\ngot: %+v", st.wantErr, err)
		}
		if st.wantErrStr != "" {
			assert.EqualError(t, err, st.wantErrStr, "expected error message")
		}
	} else {
		assert.NoError(t, err, "unexpected run error")
	}
	if st.wantIndex != nil {
		assert.Equal(t, *st.wantIndex, index, "expected instruction index")
	}

	for _, expect := range st.expect {
		expect(t, m, pairs)
	}
}

func (st stackTestCase) dumpToTest(t *testing.T, m *Machine, pairs Pairs) {
	lw := logio.Writer{Logf: t.Logf}
	defer lw.Close()
	dump := dumper{out: &lw}
	dump.dumpTree(pairs)
	dump.dumpMachine(m)
}

//// utilities

type onlyWriter struct{ w interface{ Write([]byte) (int, error) } }

func (ow onlyWriter) Write(p []byte) (int, error) { return ow.w.Write(p) }

func lines(parts ...string) string {
	return strings.Join(parts, "\n") + "\n"
}
