// Package fileinput loads named script sources and maps byte offsets within
// them back to human friendly locations.
package fileinput

import (
	"fmt"
	"os"
	"sort"
	"unicode/utf8"
)

// Location names a position within a File; Line and Column count from 1,
// Column counting runes rather than bytes.
type Location struct {
	Name   string
	Offset int
	Line   int
	Column int
}

func (loc Location) String() string {
	if loc.Name == "" {
		return fmt.Sprintf("%v:%v", loc.Line, loc.Column)
	}
	return fmt.Sprintf("%v:%v:%v", loc.Name, loc.Line, loc.Column)
}

// File is a named, fully loaded, source text.
type File struct {
	Name string
	Text string

	lines []int // offsets of line starts, computed lazily
}

// New returns a File around an in-memory text.
func New(name, text string) *File {
	return &File{Name: name, Text: text}
}

// Open reads the named file. Any error is the one from os.ReadFile, left
// unwrapped so that its rendering names the path and the cause.
func Open(name string) (*File, error) {
	b, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}
	return New(name, string(b)), nil
}

func (f *File) index() {
	if f.lines != nil {
		return
	}
	f.lines = append(f.lines, 0)
	for i := 0; i < len(f.Text); i++ {
		if f.Text[i] == '\n' {
			f.lines = append(f.lines, i+1)
		}
	}
}

// Locate converts a byte offset into a Location; offsets are clamped into
// [0, len(Text)].
func (f *File) Locate(offset int) Location {
	if offset < 0 {
		offset = 0
	} else if offset > len(f.Text) {
		offset = len(f.Text)
	}
	f.index()
	i := sort.Search(len(f.lines), func(i int) bool { return f.lines[i] > offset }) - 1
	start := f.lines[i]
	return Location{
		Name:   f.Name,
		Offset: offset,
		Line:   i + 1,
		Column: utf8.RuneCountInString(f.Text[start:offset]) + 1,
	}
}

// Line returns the text of the n-th line (counting from 1) without its line
// terminator, or "" if there is no such line.
func (f *File) Line(n int) string {
	f.index()
	if n < 1 || n > len(f.lines) {
		return ""
	}
	start, end := f.lines[n-1], len(f.Text)
	if n < len(f.lines) {
		end = f.lines[n] - 1
	}
	line := f.Text[start:end]
	if k := len(line) - 1; k >= 0 && line[k] == '\r' {
		line = line[:k]
	}
	return line
}
