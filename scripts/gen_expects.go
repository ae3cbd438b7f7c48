//go:build ignore
// +build ignore

// gen_expects reads the stackTestCase expect* builder methods declared in a
// test file, and writes expectRun* functions that return them as values, so
// that sets of expectations can be shared between test cases.
//
// Usage: go run scripts/gen_expects.go -- IN_FILE OUT_FILE
package main

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"regexp"
	"strings"
	"text/template"
	"time"

	"golang.org/x/net/context"
	"golang.org/x/sync/errgroup"
)

var expectMethod = regexp.MustCompile(`^func \(st stackTestCase\) expect(\w+)\((.*?)\) stackTestCase`)

type expectFunc struct {
	Name   string
	Params string
	Args   string
}

var outTemplate = template.Must(template.New("expects").Parse(`package main

// @generated from {{ .Source }}

//go:generate go run scripts/gen_expects.go -- {{ .Source }} {{ .Dest }}
{{ range .Funcs }}
func expectRun{{ .Name }}({{ .Params }}) func(stackTestCase) stackTestCase {
	return func(st stackTestCase) stackTestCase {
		return st.expect{{ .Name }}({{ .Args }})
	}
}
{{ end }}`))

func main() {
	log.SetFlags(0)
	log.SetPrefix("gen_expects: ")

	args := os.Args[1:]
	if len(args) > 0 && args[0] == "--" {
		args = args[1:]
	}
	if len(args) != 2 {
		log.Fatalln("usage: gen_expects.go -- IN_FILE OUT_FILE")
	}
	source, dest := args[0], args[1]

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := generate(ctx, source, dest); err != nil {
		log.Fatalln(err)
	}
}

func generate(ctx context.Context, source, dest string) error {
	in, err := os.Open(source)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer out.Close()

	eg, ctx := errgroup.WithContext(ctx)
	funcs := make(chan expectFunc)
	pr, pw := io.Pipe()

	// scan source for builder methods
	eg.Go(func() error {
		defer close(funcs)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			match := expectMethod.FindStringSubmatch(sc.Text())
			if match == nil {
				continue
			}
			select {
			case funcs <- expectFunc{match[1], match[2], callArgs(match[2])}:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return sc.Err()
	})

	// render them
	eg.Go(func() error {
		data := struct {
			Source, Dest string
			Funcs        []expectFunc
		}{Source: source, Dest: dest}
		for fn := range funcs {
			data.Funcs = append(data.Funcs, fn)
		}
		pw.CloseWithError(outTemplate.Execute(pw, data))
		return nil
	})

	// format the rendered code into dest
	eg.Go(func() error {
		defer pr.Close()
		cmd := exec.CommandContext(ctx, "goimports")
		cmd.Stdin = pr
		cmd.Stdout = out
		cmd.Stderr = os.Stderr
		if err := cmd.Run(); err != nil {
			return fmt.Errorf("goimports failed: %w", err)
		}
		return nil
	})

	return eg.Wait()
}

// callArgs turns a parameter list like "a, b int, c ...string" into the
// argument list "a, b, c...".
func callArgs(params string) string {
	var args []string
	for _, param := range strings.Split(params, ",") {
		fields := strings.Fields(param)
		if len(fields) == 0 {
			continue
		}
		arg := fields[0]
		if len(fields) > 1 && strings.HasPrefix(fields[1], "...") {
			arg += "..."
		}
		args = append(args, arg)
	}
	return strings.Join(args, ", ")
}
