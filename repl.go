package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/jcorbin/gostack/internal/logio"
)

const (
	promptMain  = "stack> "
	promptCont  = "...... "
	historyFile = ".gostack_history"
	entryName   = "<stdin>"
)

const replHelp = `push "text"   push a string
pop           print and remove the top string
:stack        show the stack
:reset        empty the stack
:help         show this help
:quit         leave (as does Ctrl-D)
`

var replWords = []string{
	pushKeyword + ` "`,
	popKeyword,
	":help",
	":quit",
	":reset",
	":stack",
}

// session is an interactive run: every entry is a separate program, but all
// of them share the machine's stack.
type session struct {
	m      *Machine
	out    io.Writer
	logger *logio.Logger
}

func runREPL(s *session) int {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)
	ln.SetCompleter(complete)

	var histPath string
	if home, err := os.UserHomeDir(); err == nil {
		histPath = filepath.Join(home, historyFile)
		if f, err := os.Open(histPath); err == nil {
			ln.ReadHistory(f)
			f.Close()
		}
	}

	for {
		entry, ok := readEntry(ln)
		if !ok {
			fmt.Fprintln(s.out)
			break
		}
		if strings.TrimSpace(entry) == "" {
			continue
		}
		ln.AppendHistory(entry)
		if s.eval(entry) {
			break
		}
	}

	if histPath != "" {
		if f, err := os.Create(histPath); err == nil {
			ln.WriteHistory(f)
			f.Close()
		}
	}
	return 0
}

// readEntry prompts for lines until they parse as a program, or fail to
// parse for a reason other than an unterminated literal. Returns false once
// input has ended.
func readEntry(ln *liner.State) (string, bool) {
	var b strings.Builder
	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := ln.Prompt(prompt)
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", true
		} else if err != nil {
			return "", false
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
		if _, err := ParseString(entryName, b.String()); !incomplete(err) {
			return b.String(), true
		}
	}
}

// incomplete returns true if err is a syntax error that more input could
// fix: a literal still waiting for its closing quote.
func incomplete(err error) bool {
	var se *SyntaxError
	return errors.As(err, &se) && se.Expected == `'"'`
}

// eval runs one entry, either a command or a program; it returns true if
// the session should end.
func (s *session) eval(entry string) (quit bool) {
	if cmd := strings.TrimSpace(entry); strings.HasPrefix(cmd, ":") {
		return s.command(cmd)
	}
	pairs, err := ParseString(entryName, entry)
	if err == nil {
		_, err = s.m.Resume(pairs)
	}
	if err != nil {
		s.logger.Errorf("%v", err)
	}
	return false
}

func (s *session) command(cmd string) (quit bool) {
	switch strings.ToLower(strings.Fields(cmd)[0]) {
	case ":help":
		io.WriteString(s.out, replHelp)
	case ":quit", ":exit":
		return true
	case ":reset":
		s.m.reset()
		fmt.Fprintln(s.out, "stack reset.")
	case ":stack":
		dumper{out: s.out}.dumpMachine(s.m)
	default:
		fmt.Fprintf(s.out, "unknown command %v; try :help\n", cmd)
	}
	return false
}

// complete offers completions for the last word of line.
func complete(line string) (cands []string) {
	i := strings.LastIndexAny(line, " \t")
	head, word := line[:i+1], line[i+1:]
	for _, cand := range replWords {
		if strings.HasPrefix(cand, word) {
			cands = append(cands, head+cand)
		}
	}
	return cands
}
