/*
File    : mus/eval/evaluator.go
Package : eval
*/

// Package eval is the tree-walking evaluator: it drives the AST produced by
// package parser against a scope.Environment, producing values.Value
// results and side effects. `return` is modeled as an explicit result
// carrier rather than a Go error or a panic: statement evaluation returns
// (value, returning, err), where returning signals an in-flight return
// unwinding to the nearest enclosing call.
package eval

import (
	"io"

	"github.com/mus-lang/mus/parser"
	"github.com/mus-lang/mus/scope"
	"github.com/mus-lang/mus/std"
	"github.com/mus-lang/mus/values"
)

// Evaluator owns the global environment and the streams builtins write to.
type Evaluator struct {
	Global values.Environment
	Out    io.Writer
	ErrOut io.Writer
}

// New builds an Evaluator with a fresh global environment and the standard
// built-ins (out, length, error, warn) registered in it.
func New(out, errOut io.Writer) *Evaluator {
	global := scope.New()
	std.Register(global, out, errOut)
	return &Evaluator{Global: global, Out: out, ErrOut: errOut}
}

// Run executes a full program: the top-level statement list, in order,
// against the global environment. It returns the first error encountered;
// a bare top-level `return` is legal and simply stops execution early.
func (ev *Evaluator) Run(stmts []parser.Stmt) error {
	for _, stmt := range stmts {
		_, returning, err := ev.evalStmt(stmt, ev.Global)
		if err != nil {
			return err
		}
		if returning {
			return nil
		}
	}
	return nil
}
