package eval

import (
	"fmt"
	"strings"

	"github.com/mus-lang/mus/muserr"
	"github.com/mus-lang/mus/parser"
	"github.com/mus-lang/mus/values"
)

// evalCall evaluates a Call expression: the callee, then arguments
// left-to-right, per the language's argument evaluation order. The
// callee must resolve to a function or a class; `new C(...)` and `C(...)`
// both parse to a Call on the class's Variable, so both paths meet here.
func (ev *Evaluator) evalCall(n *parser.Call, env values.Environment) (values.Value, error) {
	// arr.push(v) / arr.pop() are method-style calls on an array; the
	// general property-access rule for arrays only covers .length and
	// integer-literal indexing, so these two names are intercepted here,
	// evaluating the object expression exactly once, before falling back
	// to ordinary callee evaluation for everything else.
	if getNode, ok := n.Callee.(*parser.Get); ok && !getNode.IsIndex && (getNode.Name == "push" || getNode.Name == "pop") {
		objVal, err := ev.evalExpr(getNode.Object, env)
		if err != nil {
			return nil, err
		}
		if arr, ok := objVal.(*values.Array); ok {
			args, err := ev.evalArgs(n.Args, env)
			if err != nil {
				return nil, err
			}
			return ev.callArrayMethod(getNode.Name, arr, args, n, env)
		}
		callee, err := ev.resolveGetCallee(getNode, objVal, env)
		if err != nil {
			return nil, err
		}
		args, err := ev.evalArgs(n.Args, env)
		if err != nil {
			return nil, err
		}
		return ev.applyCallee(callee, args, n, env)
	}

	callee, err := ev.evalExpr(n.Callee, env)
	if err != nil {
		return nil, err
	}
	args, err := ev.evalArgs(n.Args, env)
	if err != nil {
		return nil, err
	}
	return ev.applyCallee(callee, args, n, env)
}

// resolveGetCallee resolves a non-array `object.name` callee given the
// already-evaluated object, without re-evaluating the object expression.
func (ev *Evaluator) resolveGetCallee(getNode *parser.Get, obj values.Value, env values.Environment) (values.Value, error) {
	switch o := obj.(type) {
	case *values.Instance:
		if v, ok := o.Fields[getNode.Name]; ok {
			return v, nil
		}
		if method, ok := o.Class.ResolveMethod(getNode.Name); ok {
			return method.Bind(o), nil
		}
		return nil, &muserr.NameError{Message: fmt.Sprintf("no field or method %q on %s", getNode.Name, o.Class.Name), Line: getNode.Tok.Line, Column: getNode.Tok.Column}
	default:
		return nil, &muserr.TypeError{Message: "only instances have properties", Line: getNode.Tok.Line, Column: getNode.Tok.Column}
	}
}

func (ev *Evaluator) applyCallee(callee values.Value, args []values.Value, n *parser.Call, env values.Environment) (values.Value, error) {
	switch c := callee.(type) {
	case *values.Function:
		return ev.callFunction(c, args, n)
	case *values.Class:
		return ev.callClass(c, args, n, env)
	default:
		return nil, &muserr.TypeError{Message: fmt.Sprintf("%s is not callable", callee.Kind()), Line: n.Tok.Line, Column: n.Tok.Column}
	}
}

func (ev *Evaluator) evalArgs(exprs []parser.Expr, env values.Environment) ([]values.Value, error) {
	args := make([]values.Value, len(exprs))
	for i, e := range exprs {
		v, err := ev.evalExpr(e, env)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	return args, nil
}

// callFunction invokes fn with args already evaluated. Native functions run
// directly; user-defined functions get a fresh activation environment
// parented to the function's closure, with one binding per parameter.
// Running off the end of the body yields null.
func (ev *Evaluator) callFunction(fn *values.Function, args []values.Value, n *parser.Call) (values.Value, error) {
	if fn.IsNative {
		return fn.Native(args)
	}
	if len(args) != len(fn.Params) {
		return nil, &muserr.RuntimeError{Message: fmt.Sprintf("%s expects %d argument(s), got %d", fn.Name, len(fn.Params), len(args)), Line: n.Tok.Line, Column: n.Tok.Column}
	}
	callEnv := fn.Closure.Child()
	for i, p := range fn.Params {
		callEnv.DefineVariable(p.Name, args[i])
	}
	for _, stmt := range fn.Body {
		v, returning, err := ev.evalStmt(stmt, callEnv)
		if err != nil {
			return nil, err
		}
		if returning {
			return v, nil
		}
	}
	return values.NullValue, nil
}

// callClass instantiates cls: allocate an Instance, initialize its fields
// (and its ancestors') in declaration order, then invoke `init` if present,
// discarding its return value. The instance itself is the call's result.
func (ev *Evaluator) callClass(cls *values.Class, args []values.Value, n *parser.Call, env values.Environment) (values.Value, error) {
	instance := values.NewInstance(cls)
	if err := ev.initFields(cls, instance); err != nil {
		return nil, err
	}
	if initFn, ok := cls.ResolveMethod("init"); ok {
		bound := initFn.Bind(instance)
		if _, err := ev.callFunction(bound, args, n); err != nil {
			return nil, err
		}
	}
	return instance, nil
}

// initFields walks the superclass chain base-first so a subclass's own
// field declarations take precedence over an inherited one of the same
// name. Initializers evaluate in each class's own declaring environment,
// not the caller's scope.
func (ev *Evaluator) initFields(cls *values.Class, instance *values.Instance) error {
	if cls.Superclass != nil {
		if err := ev.initFields(cls.Superclass, instance); err != nil {
			return err
		}
	}
	for _, decl := range cls.FieldDecls {
		val := values.Value(values.NullValue)
		if decl.Initializer != nil {
			v, err := ev.evalExpr(decl.Initializer, cls.DeclEnv)
			if err != nil {
				return err
			}
			val = v
		}
		if arr, ok := val.(*values.Array); ok && strings.HasPrefix(decl.DeclaredType, "array<") && strings.HasSuffix(decl.DeclaredType, ">") {
			arr.ElementType = decl.DeclaredType[len("array<") : len(decl.DeclaredType)-1]
		}
		if !ev.checkDeclaredType(decl.DeclaredType, val, cls.DeclEnv) {
			return &muserr.TypeError{Message: typeMismatchMessage(decl.DeclaredType, val), Line: decl.Tok.Line, Column: decl.Tok.Column}
		}
		instance.Fields[decl.Name] = val
	}
	return nil
}
