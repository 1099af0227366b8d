package eval

import (
	"fmt"
	"strings"

	"github.com/mus-lang/mus/muserr"
	"github.com/mus-lang/mus/parser"
	"github.com/mus-lang/mus/values"
)

// evalStmt executes a single statement. The bool return signals an
// in-flight `return`: when true, value is the returned value and the
// caller must stop executing further statements and propagate both
// upward, unwinding to the nearest enclosing function call.
func (ev *Evaluator) evalStmt(node parser.Stmt, env values.Environment) (values.Value, bool, error) {
	switch n := node.(type) {
	case *parser.ExpressionStmt:
		v, err := ev.evalExpr(n.Expr, env)
		return v, false, err
	case *parser.VarDecl:
		return ev.evalVarDecl(n, env)
	case *parser.FunctionDecl:
		return ev.evalFunctionDecl(n, env)
	case *parser.ClassDecl:
		return ev.evalClassDecl(n, env)
	case *parser.Block:
		return ev.evalBlock(n, env)
	case *parser.If:
		return ev.evalIf(n, env)
	case *parser.While:
		return ev.evalWhile(n, env)
	case *parser.For:
		return ev.evalFor(n, env)
	case *parser.ForIn:
		return ev.evalForIn(n, env)
	case *parser.Return:
		return ev.evalReturn(n, env)
	default:
		return nil, false, &muserr.RuntimeError{Message: fmt.Sprintf("unhandled statement node %T", node)}
	}
}

// evalVarDecl evaluates the initializer (or null), checks it against the
// declared type, and binds it in the current scope. An array-literal
// initializer under an `array<T>` declaration adopts T as its element
// type.
func (ev *Evaluator) evalVarDecl(n *parser.VarDecl, env values.Environment) (values.Value, bool, error) {
	val := values.Value(values.NullValue)
	if n.Initializer != nil {
		v, err := ev.evalExpr(n.Initializer, env)
		if err != nil {
			return nil, false, err
		}
		val = v
	}
	if arr, ok := val.(*values.Array); ok && strings.HasPrefix(n.DeclaredType, "array<") && strings.HasSuffix(n.DeclaredType, ">") {
		arr.ElementType = n.DeclaredType[len("array<") : len(n.DeclaredType)-1]
	}
	if !ev.checkDeclaredType(n.DeclaredType, val, env) {
		return nil, false, &muserr.TypeError{Message: typeMismatchMessage(n.DeclaredType, val), Line: n.Tok.Line, Column: n.Tok.Column}
	}
	env.DefineVariable(n.Name, val)
	return values.NullValue, false, nil
}

func (ev *Evaluator) evalFunctionDecl(n *parser.FunctionDecl, env values.Environment) (values.Value, bool, error) {
	fn := &values.Function{Name: n.Name, Params: n.Params, Body: n.Body, Closure: env}
	env.DefineFunction(n.Name, fn)
	return values.NullValue, false, nil
}

// evalBlock runs every statement in a fresh child scope, released when the
// block exits on any path, including an early return.
func (ev *Evaluator) evalBlock(n *parser.Block, env values.Environment) (values.Value, bool, error) {
	child := env.Child()
	for _, stmt := range n.Stmts {
		v, returning, err := ev.evalStmt(stmt, child)
		if err != nil {
			return nil, false, err
		}
		if returning {
			return v, true, nil
		}
	}
	return values.NullValue, false, nil
}

func (ev *Evaluator) evalIf(n *parser.If, env values.Environment) (values.Value, bool, error) {
	cond, err := ev.evalExpr(n.Cond, env)
	if err != nil {
		return nil, false, err
	}
	if values.Truthy(cond) {
		return ev.evalStmt(n.Then, env)
	}
	if n.Else != nil {
		return ev.evalStmt(n.Else, env)
	}
	return values.NullValue, false, nil
}

func (ev *Evaluator) evalWhile(n *parser.While, env values.Environment) (values.Value, bool, error) {
	for {
		cond, err := ev.evalExpr(n.Cond, env)
		if err != nil {
			return nil, false, err
		}
		if !values.Truthy(cond) {
			return values.NullValue, false, nil
		}
		v, returning, err := ev.evalStmt(n.Body, env)
		if err != nil {
			return nil, false, err
		}
		if returning {
			return v, true, nil
		}
	}
}

// evalFor runs the C-style loop as `{ Init; while (Cond) { Body; Incr } }`:
// Init defines its loop variable in a scope that lives for the whole loop,
// while Body gets its own child scope each iteration if it is a block.
func (ev *Evaluator) evalFor(n *parser.For, env values.Environment) (values.Value, bool, error) {
	forEnv := env.Child()
	if n.Init != nil {
		if _, _, err := ev.evalStmt(n.Init, forEnv); err != nil {
			return nil, false, err
		}
	}
	for {
		if n.Cond != nil {
			cond, err := ev.evalExpr(n.Cond, forEnv)
			if err != nil {
				return nil, false, err
			}
			if !values.Truthy(cond) {
				return values.NullValue, false, nil
			}
		}
		v, returning, err := ev.evalStmt(n.Body, forEnv)
		if err != nil {
			return nil, false, err
		}
		if returning {
			return v, true, nil
		}
		if n.Incr != nil {
			if _, err := ev.evalExpr(n.Incr, forEnv); err != nil {
				return nil, false, err
			}
		}
	}
}

// evalForIn evaluates Iterable to an array and binds IterName to each
// element in turn, in a fresh scope per iteration.
func (ev *Evaluator) evalForIn(n *parser.ForIn, env values.Environment) (values.Value, bool, error) {
	iterVal, err := ev.evalExpr(n.Iterable, env)
	if err != nil {
		return nil, false, err
	}
	arr, ok := iterVal.(*values.Array)
	if !ok {
		return nil, false, &muserr.TypeError{Message: fmt.Sprintf("for-in requires an array, got %s", iterVal.Kind()), Line: n.Tok.Line, Column: n.Tok.Column}
	}
	for _, elem := range arr.Elements {
		iterEnv := env.Child()
		iterEnv.DefineVariable(n.IterName, elem)
		v, returning, err := ev.evalStmt(n.Body, iterEnv)
		if err != nil {
			return nil, false, err
		}
		if returning {
			return v, true, nil
		}
	}
	return values.NullValue, false, nil
}

func (ev *Evaluator) evalReturn(n *parser.Return, env values.Environment) (values.Value, bool, error) {
	if n.Value == nil {
		return values.NullValue, true, nil
	}
	v, err := ev.evalExpr(n.Value, env)
	if err != nil {
		return nil, false, err
	}
	return v, true, nil
}
