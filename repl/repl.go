/*
File    : mus/repl/repl.go
Package : repl
*/

// Package repl implements the interactive Read-Eval-Print Loop for the Mus
// interpreter: readline-backed line editing and history, with colored
// output for errors versus ordinary program output.
package repl

import (
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/mus-lang/mus/eval"
	"github.com/mus-lang/mus/parser"
)

var (
	blueColor   = color.New(color.FgBlue)
	greenColor  = color.New(color.FgGreen)
	redColor    = color.New(color.FgRed)
	cyanColor   = color.New(color.FgCyan)
	yellowColor = color.New(color.FgYellow)
)

// Repl is a configured interactive session: banner text, version, prompt,
// and separator line. The evaluator that persists across lines is created
// by Start.
type Repl struct {
	Banner  string
	Version string
	Prompt  string
	Line    string
}

// New builds a Repl with the given banner, version string, and prompt.
func New(banner, version, prompt string) *Repl {
	return &Repl{Banner: banner, Version: version, Prompt: prompt, Line: strings.Repeat("-", 64)}
}

func (r *Repl) printBanner(w io.Writer) {
	blueColor.Fprintf(w, "%s\n", r.Line)
	greenColor.Fprintf(w, "%s\n", r.Banner)
	blueColor.Fprintf(w, "%s\n", r.Line)
	yellowColor.Fprintf(w, "mus %s\n", r.Version)
	cyanColor.Fprintln(w, "Type an expression or statement and press enter. Ctrl-D to exit.")
	blueColor.Fprintf(w, "%s\n", r.Line)
}

// Start runs the REPL loop against w until EOF (Ctrl-D) or a readline
// error. A single Evaluator persists for the whole session, so variables,
// functions, and classes defined on one line are visible on the next.
func (r *Repl) Start(w io.Writer) {
	r.printBanner(w)

	rl, err := readline.New(r.Prompt)
	if err != nil {
		redColor.Fprintf(w, "readline: %v\n", err)
		return
	}
	defer rl.Close()

	ev := eval.New(w, w)

	for {
		line, err := rl.Readline()
		if err != nil {
			w.Write([]byte("\n"))
			return
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		rl.SaveHistory(line)
		r.evalLine(w, ev, line)
	}
}

func (r *Repl) evalLine(w io.Writer, ev *eval.Evaluator, line string) {
	p, err := parser.NewFromSource(line)
	if err != nil {
		redColor.Fprintf(w, "%s\n", err)
		return
	}
	stmts := p.Parse()
	for _, perr := range p.Errors {
		redColor.Fprintf(w, "%s\n", perr)
	}
	if len(p.Errors) > 0 {
		return
	}
	if err := ev.Run(stmts); err != nil {
		redColor.Fprintf(w, "%s\n", err)
	}
}
