package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

type dumper struct {
	out io.Writer

	spanWidth int
}

// dumpTree writes one line per node, children indented under their parent:
//   @start..end rule "text"
func (dump dumper) dumpTree(pairs Pairs) {
	if pairs.tree == nil {
		fmt.Fprintf(dump.out, "# Tree <empty>\n")
		return
	}
	fmt.Fprintf(dump.out, "# Tree %v\n", pairs.tree.Name)
	if dump.spanWidth == 0 {
		dump.spanWidth = len(strconv.Itoa(len(pairs.tree.Text)))
	}
	for i := 0; i < pairs.Len(); i++ {
		dump.dumpPair(pairs.At(i), 0)
	}
}

func (dump dumper) dumpPair(pair Pair, depth int) {
	var buf strings.Builder
	start, end := pair.Span()
	fmt.Fprintf(&buf, "  @%*v..%-*v %v%v",
		dump.spanWidth, start,
		dump.spanWidth, end,
		strings.Repeat("  ", depth), pair.Rule())
	switch pair.Rule() {
	case ruleStack, ruleEOI:
	default:
		buf.WriteByte(' ')
		buf.WriteString(strconv.Quote(pair.Text()))
	}
	buf.WriteByte('\n')
	io.WriteString(dump.out, buf.String())

	children := pair.Inner()
	for i := 0; i < children.Len(); i++ {
		dump.dumpPair(children.At(i), depth+1)
	}
}

func (dump dumper) dumpMachine(m *Machine) {
	fmt.Fprintf(dump.out, "# Machine\n")
	fmt.Fprintf(dump.out, "  depth: %v\n", m.depth())
	fmt.Fprintf(dump.out, "  stack: %q\n", m.values())
}
