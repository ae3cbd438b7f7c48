package main

import (
	"fmt"

	"github.com/jcorbin/gostack/internal/fileinput"
)

//// Grammar

// Rule names the kind of a syntax tree node. The set is closed: the parser
// only ever produces these, and the executor dispatches on them.
type Rule uint8

//   Rule        Shape                            Children
//   stack       expression* EOI                  each expression, then EOI
//   push_expr   "push" literal                   the literal
//   pop_expr    "pop"                            none
//   literal     '"' { not '"' } '"'              none; spans the quoted text only
//   EOI         end of input                     none; zero width
//
// Whitespace (space, tab, CR, LF) and '#' line comments may appear between
// any two tokens and are not part of any node.
const (
	ruleNone Rule = iota
	ruleStack
	rulePushExpr
	rulePopExpr
	ruleLiteral
	ruleEOI
	ruleMax
)

var ruleNames = [ruleMax]string{
	ruleNone:     "none",
	ruleStack:    "stack",
	rulePushExpr: "push_expr",
	rulePopExpr:  "pop_expr",
	ruleLiteral:  "literal",
	ruleEOI:      "EOI",
}

func (r Rule) String() string {
	if r < ruleMax {
		return ruleNames[r]
	}
	return fmt.Sprintf("Rule(%d)", uint8(r))
}

const (
	pushKeyword = "push"
	popKeyword  = "pop"
)

//// Syntax tree

// Tree holds every node parsed from one source file. Nodes refer to their
// children by index, and are never modified once parsing is done.
type Tree struct {
	*fileinput.File
	nodes []treeNode
}

type treeNode struct {
	rule       Rule
	start, end int
	children   []int
}

func newTree(file *fileinput.File) *Tree {
	return &Tree{File: file}
}

func (tree *Tree) add(rule Rule, start, end int, children ...int) int {
	id := len(tree.nodes)
	tree.nodes = append(tree.nodes, treeNode{rule, start, end, children})
	return id
}

// Pair is a read-only handle on one node of a Tree.
type Pair struct {
	tree *Tree
	id   int
}

func (pair Pair) node() *treeNode { return &pair.tree.nodes[pair.id] }

// Rule returns the node's rule tag.
func (pair Pair) Rule() Rule { return pair.node().rule }

// Span returns the node's start and end byte offsets.
func (pair Pair) Span() (start, end int) {
	n := pair.node()
	return n.start, n.end
}

// Text returns the exact source text spanned by the node.
func (pair Pair) Text() string {
	n := pair.node()
	return pair.tree.Text[n.start:n.end]
}

// Location returns where the node starts.
func (pair Pair) Location() fileinput.Location {
	return pair.tree.Locate(pair.node().start)
}

// Inner returns the node's children.
func (pair Pair) Inner() Pairs {
	return Pairs{pair.tree, pair.node().children}
}

func (pair Pair) String() string {
	start, end := pair.Span()
	return fmt.Sprintf("%v@%v..%v", pair.Rule(), start, end)
}

// Pairs is an ordered list of nodes from one Tree.
type Pairs struct {
	tree *Tree
	ids  []int
}

// Len returns how many pairs there are.
func (pairs Pairs) Len() int { return len(pairs.ids) }

// At returns the i-th pair.
func (pairs Pairs) At(i int) Pair { return Pair{pairs.tree, pairs.ids[i]} }

// Peek returns the first pair, if any.
func (pairs Pairs) Peek() (Pair, bool) {
	if len(pairs.ids) == 0 {
		return Pair{}, false
	}
	return pairs.At(0), true
}

// Text returns the source text from the start of the first pair to the end
// of the last one.
func (pairs Pairs) Text() string {
	if len(pairs.ids) == 0 {
		return ""
	}
	start, _ := pairs.At(0).Span()
	_, end := pairs.At(len(pairs.ids) - 1).Span()
	return pairs.tree.Text[start:end]
}
