package main

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jcorbin/gostack/internal/fileinput"
	"github.com/jcorbin/gostack/internal/runeio"
)

// Parse parses a whole script into its top-level pairs, which on success
// hold exactly one stack pair. Parsing has no side effects; parsing the same
// file twice yields identical trees.
func Parse(file *fileinput.File) (Pairs, error) {
	p := parser{tree: newTree(file)}
	root, err := p.parseStack()
	if err != nil {
		return Pairs{}, err
	}
	return Pairs{p.tree, []int{root}}, nil
}

// ParseString parses an in-memory script.
func ParseString(name, text string) (Pairs, error) {
	return Parse(fileinput.New(name, text))
}

type parser struct {
	tree *Tree
	pos  int
}

func (p *parser) parseStack() (int, error) {
	var children []int
	for {
		p.skipSpace()
		if p.pos >= len(p.tree.Text) {
			break
		}
		expr, err := p.parseExpression()
		if err != nil {
			return 0, err
		}
		children = append(children, expr)
	}
	children = append(children, p.tree.add(ruleEOI, p.pos, p.pos))
	return p.tree.add(ruleStack, 0, len(p.tree.Text), children...), nil
}

func (p *parser) parseExpression() (int, error) {
	start := p.pos
	switch word := p.scanWord(); word {
	case pushKeyword:
		lit, err := p.parseLiteral()
		if err != nil {
			return 0, err
		}
		return p.tree.add(rulePushExpr, start, p.pos, lit), nil
	case popKeyword:
		return p.tree.add(rulePopExpr, start, p.pos), nil
	default:
		p.pos = start
		return 0, p.errorf(start, "push or pop")
	}
}

func (p *parser) parseLiteral() (int, error) {
	p.skipSpace()
	src := p.tree.Text
	open := p.pos
	if open >= len(src) || src[open] != '"' {
		return 0, p.errorf(open, "literal")
	}
	n := strings.IndexByte(src[open+1:], '"')
	if n < 0 {
		return 0, p.errorf(len(src), `'"'`)
	}
	start, end := open+1, open+1+n
	p.pos = end + 1
	return p.tree.add(ruleLiteral, start, end), nil
}

func (p *parser) skipSpace() {
	src := p.tree.Text
	for p.pos < len(src) {
		switch src[p.pos] {
		case ' ', '\t', '\r', '\n':
			p.pos++
		case '#':
			if i := strings.IndexByte(src[p.pos:], '\n'); i >= 0 {
				p.pos += i + 1
			} else {
				p.pos = len(src)
			}
		default:
			return
		}
	}
}

func isWordStart(r rune) bool { return r == '_' || unicode.IsLetter(r) }
func isWordPart(r rune) bool  { return isWordStart(r) || unicode.IsDigit(r) }

// scanWord consumes a word at the current position, returning "" if there
// is none.
func (p *parser) scanWord() string {
	src := p.tree.Text
	start := p.pos
	for p.pos < len(src) {
		r, n := utf8.DecodeRuneInString(src[p.pos:])
		if p.pos == start && !isWordStart(r) || !isWordPart(r) {
			break
		}
		p.pos += n
	}
	return src[start:p.pos]
}

// found describes whatever token starts at offset.
func (p *parser) found(offset int) string {
	src := p.tree.Text
	if offset >= len(src) {
		return "end of input"
	}
	save := p.pos
	p.pos = offset
	word := p.scanWord()
	p.pos = save
	if word != "" {
		return strconv.Quote(word)
	}
	r, _ := utf8.DecodeRuneInString(src[offset:])
	return runeio.Describe(r)
}

func (p *parser) errorf(offset int, expected string) *SyntaxError {
	loc := p.tree.Locate(offset)
	return &SyntaxError{
		Location: loc,
		Expected: expected,
		Found:    p.found(offset),
		line:     p.tree.Line(loc.Line),
	}
}

// SyntaxError reports the first point at which a script stopped matching
// the grammar.
type SyntaxError struct {
	fileinput.Location
	Expected string
	Found    string

	line string
}

// Error renders the location, the offending source line with a caret under
// the column, and what was expected there.
func (err *SyntaxError) Error() string {
	num := strconv.Itoa(err.Line)
	pad := strings.Repeat(" ", len(num))

	var caret strings.Builder
	col := 1
	for _, r := range err.line {
		if col >= err.Column {
			break
		}
		if r == '\t' {
			caret.WriteRune('\t')
		} else {
			caret.WriteRune(' ')
		}
		col++
	}
	for ; col < err.Column; col++ {
		caret.WriteRune(' ')
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%v--> %v\n", pad, err.Location)
	fmt.Fprintf(&sb, "%v |\n", pad)
	fmt.Fprintf(&sb, "%v | %v\n", num, err.line)
	fmt.Fprintf(&sb, "%v | %v^---\n", pad, caret.String())
	fmt.Fprintf(&sb, "%v |\n", pad)
	fmt.Fprintf(&sb, "%v = expected %v, found %v", pad, err.Expected, err.Found)
	return sb.String()
}
