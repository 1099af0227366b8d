package eval

import (
	"fmt"

	"github.com/mus-lang/mus/muserr"
	"github.com/mus-lang/mus/parser"
	"github.com/mus-lang/mus/values"
)

// evalClassDecl resolves the optional superclass, builds each declared
// method into a class-owned (unbound) Function closing over the class's
// declaring environment, and binds the class itself in that environment.
func (ev *Evaluator) evalClassDecl(n *parser.ClassDecl, env values.Environment) (values.Value, bool, error) {
	var superclass *values.Class
	if n.SuperclassName != "" {
		sc, ok := env.GetClass(n.SuperclassName)
		if !ok {
			return nil, false, &muserr.NameError{Message: fmt.Sprintf("undefined superclass %q", n.SuperclassName), Line: n.Tok.Line, Column: n.Tok.Column}
		}
		superclass = sc
	}
	cls := &values.Class{
		Name:       n.Name,
		FieldDecls: n.Fields,
		Methods:    make(map[string]*values.Function, len(n.Methods)),
		Superclass: superclass,
		DeclEnv:    env,
	}
	for _, m := range n.Methods {
		cls.Methods[m.Name] = &values.Function{Name: m.Name, Params: m.Params, Body: m.Body, Closure: env}
	}
	env.DefineClass(n.Name, cls)
	return values.NullValue, false, nil
}

// evalGet resolves `object.name` or `object[index]`. Fields are checked
// before methods on an instance; arrays understand only `.length` and an
// integer-literal property name as an index.
func (ev *Evaluator) evalGet(n *parser.Get, env values.Environment) (values.Value, error) {
	obj, err := ev.evalExpr(n.Object, env)
	if err != nil {
		return nil, err
	}
	if n.IsIndex {
		idxVal, err := ev.evalExpr(n.Index, env)
		if err != nil {
			return nil, err
		}
		return ev.indexInto(obj, idxVal, n)
	}

	switch o := obj.(type) {
	case *values.Instance:
		if v, ok := o.Fields[n.Name]; ok {
			return v, nil
		}
		if method, ok := o.Class.ResolveMethod(n.Name); ok {
			return method.Bind(o), nil
		}
		return nil, &muserr.NameError{Message: fmt.Sprintf("no field or method %q on %s", n.Name, o.Class.Name), Line: n.Tok.Line, Column: n.Tok.Column}
	case *values.Array:
		return ev.arrayProperty(o, n)
	default:
		return nil, &muserr.TypeError{Message: "only instances have properties", Line: n.Tok.Line, Column: n.Tok.Column}
	}
}

// evalSet resolves an assignment target: a bare variable (Object nil), a
// property on an instance, or an array index.
func (ev *Evaluator) evalSet(n *parser.Set, env values.Environment) (values.Value, error) {
	val, err := ev.evalExpr(n.Value, env)
	if err != nil {
		return nil, err
	}

	if n.Object == nil {
		if !env.AssignVariable(n.Name, val) {
			return nil, &muserr.NameError{Message: fmt.Sprintf("undefined name %q", n.Name), Line: n.Tok.Line, Column: n.Tok.Column}
		}
		return val, nil
	}

	obj, err := ev.evalExpr(n.Object, env)
	if err != nil {
		return nil, err
	}

	if n.IsIndex {
		idxVal, err := ev.evalExpr(n.Index, env)
		if err != nil {
			return nil, err
		}
		return ev.setIndex(obj, idxVal, val, n)
	}

	inst, ok := obj.(*values.Instance)
	if !ok {
		return nil, &muserr.TypeError{Message: "only instances have assignable properties", Line: n.Tok.Line, Column: n.Tok.Column}
	}
	inst.Fields[n.Name] = val
	return val, nil
}
