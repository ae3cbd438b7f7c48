package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"git.sr.ht/~sircmpwn/getopt"
	"github.com/fatih/color"

	"github.com/jcorbin/gostack/internal/fileinput"
	"github.com/jcorbin/gostack/internal/logio"
)

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}

const usageText = `usage: %v [-c] [-d] [-t] SCRIPT
       %v -i

Runs a stack script: push "literal" pushes a string, pop prints the top one.

  -c  always color error messages
  -d  dump the parse tree to stderr before running
  -i  interactive mode
  -t  trace execution to stderr
  -h  show this help
`

func usage(w io.Writer, prog string) {
	prog = filepath.Base(prog)
	fmt.Fprintf(w, usageText, prog, prog)
}

// run implements the command, returning its exit status. Errors, including
// a missing script argument, are printed as a single message on stdout.
func run(args []string, stdout, stderr io.Writer) int {
	prog := "gostack"
	if len(args) > 0 {
		prog = args[0]
	} else {
		args = []string{prog}
	}

	errColor := color.New(color.FgRed)
	var logger logio.Logger
	logger.SetOutput(stdout)
	logger.SetErrorColor(errColor)

	opts, optind, err := getopt.Getopts(args, "cdhit")
	if err != nil {
		fmt.Fprintf(stderr, "%v: %v\n", filepath.Base(prog), err)
		usage(stderr, prog)
		return 2
	}
	args = args[optind:]

	var dump, interactive, trace bool
	for _, opt := range opts {
		switch opt.Option {
		case 'c':
			errColor.EnableColor()
		case 'd':
			dump = true
		case 'h':
			usage(stderr, prog)
			return 0
		case 'i':
			interactive = true
		case 't':
			trace = true
		}
	}

	var mopts = []Option{
		WithOutput(stdout),
	}
	if trace {
		var tracer logio.Logger
		tracer.SetOutput(stderr)
		mopts = append(mopts, WithLogf(tracer.Leveledf("trace")))
	}
	m := New(mopts...)

	if interactive {
		return runREPL(&session{
			m:      m,
			out:    stdout,
			logger: &logger,
		})
	}

	var dumpTo io.Writer
	if dump {
		dumpTo = stderr
	}
	logger.ErrorIf(runScript(m, args, dumpTo))
	return logger.ExitCode()
}

// runScript reads, parses, and executes the script named by the first
// argument, stopping at the first error.
func runScript(m *Machine, args []string, dumpTo io.Writer) error {
	if len(args) == 0 {
		return errMissingInput
	}
	file, err := fileinput.Open(args[0])
	if err != nil {
		return err
	}
	pairs, err := Parse(file)
	if err != nil {
		return err
	}
	if dumpTo != nil {
		dumper{out: dumpTo}.dumpTree(pairs)
	}
	_, err = m.Run(pairs)
	return err
}
