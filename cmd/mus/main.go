/*
File    : mus/cmd/mus/main.go
*/

// Package main is the mus command-line launcher: an interactive REPL with
// no arguments, or file execution with one.
package main

import (
	"os"

	"github.com/fatih/color"

	"github.com/mus-lang/mus/eval"
	"github.com/mus-lang/mus/muserr"
	"github.com/mus-lang/mus/parser"
	"github.com/mus-lang/mus/repl"
)

const (
	exitOK          = 0
	exitUsageError  = 64
	exitSyntaxError = 65
	exitFileError   = 66
	exitRuntime     = 70
	exitInterrupted = 130
)

const version = "0.1.0"

const banner = `
              mus
 a small scripting language
`

var redColor = color.New(color.FgRed)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	switch len(args) {
	case 0:
		repl.New(banner, version, "mus> ").Start(os.Stdout)
		return exitOK
	case 1:
		return runFile(args[0])
	default:
		redColor.Fprintln(os.Stderr, "usage: mus [path]")
		return exitUsageError
	}
}

func runFile(path string) int {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			redColor.Fprintf(os.Stderr, "mus: %s: no such file\n", path)
			return exitFileError
		}
		redColor.Fprintf(os.Stderr, "mus: %s: %v\n", path, err)
		return exitFileError
	}

	p, err := parser.NewFromSource(string(content))
	if err != nil {
		redColor.Fprintf(os.Stderr, "%s\n", err)
		return exitSyntaxError
	}
	stmts := p.Parse()
	if len(p.Errors) > 0 {
		for _, perr := range p.Errors {
			redColor.Fprintf(os.Stderr, "%s\n", perr)
		}
		return exitSyntaxError
	}

	ev := eval.New(os.Stdout, os.Stderr)
	if err := ev.Run(stmts); err != nil {
		redColor.Fprintf(os.Stderr, "%s\n", err)
		return exitCodeFor(err)
	}
	return exitOK
}

// exitCodeFor maps an evaluator error to the process exit code it
// represents; lexer and parser errors never reach here since runFile
// handles them separately.
func exitCodeFor(err error) int {
	switch err.(type) {
	case *muserr.InterruptError:
		return exitInterrupted
	default:
		return exitRuntime
	}
}

func stripBOM(b []byte) string {
	const bom = "\xef\xbb\xbf"
	s := string(b)
	if len(s) >= len(bom) && s[:len(bom)] == bom {
		return s[len(bom):]
	}
	return s
}
