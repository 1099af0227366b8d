package eval

import (
	"fmt"
	"strconv"

	"github.com/mus-lang/mus/muserr"
	"github.com/mus-lang/mus/parser"
	"github.com/mus-lang/mus/values"
)

// arrayProperty resolves a dotted property name on an array: `.length`, or
// an integer-literal name used as an index.
func (ev *Evaluator) arrayProperty(arr *values.Array, n *parser.Get) (values.Value, error) {
	if n.Name == "length" {
		return values.Integer(len(arr.Elements)), nil
	}
	if idx, err := strconv.ParseInt(n.Name, 10, 64); err == nil {
		return ev.boundsCheckedIndex(arr, idx, n.Tok.Line, n.Tok.Column)
	}
	return nil, &muserr.NameError{Message: fmt.Sprintf("unknown array property %q", n.Name), Line: n.Tok.Line, Column: n.Tok.Column}
}

// indexInto evaluates `obj[idxVal]`: obj must be an array and idxVal an
// integer within bounds.
func (ev *Evaluator) indexInto(obj, idxVal values.Value, n *parser.Get) (values.Value, error) {
	arr, ok := obj.(*values.Array)
	if !ok {
		return nil, &muserr.TypeError{Message: fmt.Sprintf("cannot index a %s", obj.Kind()), Line: n.Tok.Line, Column: n.Tok.Column}
	}
	idx, ok := idxVal.(values.Integer)
	if !ok {
		return nil, &muserr.TypeError{Message: fmt.Sprintf("array index must be an integer, got %s", idxVal.Kind()), Line: n.Tok.Line, Column: n.Tok.Column}
	}
	return ev.boundsCheckedIndex(arr, int64(idx), n.Tok.Line, n.Tok.Column)
}

func (ev *Evaluator) boundsCheckedIndex(arr *values.Array, idx int64, line, column int) (values.Value, error) {
	if idx < 0 || idx >= int64(len(arr.Elements)) {
		return nil, &muserr.RuntimeError{Message: fmt.Sprintf("array index %d out of bounds for length %d", idx, len(arr.Elements)), Line: line, Column: column}
	}
	return arr.Elements[idx], nil
}

// setIndex updates `obj[idxVal] = val` in place and returns val.
func (ev *Evaluator) setIndex(obj, idxVal, val values.Value, n *parser.Set) (values.Value, error) {
	arr, ok := obj.(*values.Array)
	if !ok {
		return nil, &muserr.TypeError{Message: fmt.Sprintf("cannot index a %s", obj.Kind()), Line: n.Tok.Line, Column: n.Tok.Column}
	}
	idx, ok := idxVal.(values.Integer)
	if !ok {
		return nil, &muserr.TypeError{Message: fmt.Sprintf("array index must be an integer, got %s", idxVal.Kind()), Line: n.Tok.Line, Column: n.Tok.Column}
	}
	if idx < 0 || int64(idx) >= int64(len(arr.Elements)) {
		return nil, &muserr.RuntimeError{Message: fmt.Sprintf("array index %d out of bounds for length %d", idx, len(arr.Elements)), Line: n.Tok.Line, Column: n.Tok.Column}
	}
	arr.Elements[idx] = val
	return val, nil
}

// callArrayMethod implements the array.push(v) / array.pop() method-call
// forms: push type-checks v against the array's declared element type (a
// type established at its VarDecl or field declaration); pop removes and
// returns the last element, erroring on an empty array.
func (ev *Evaluator) callArrayMethod(name string, arr *values.Array, args []values.Value, n *parser.Call, env values.Environment) (values.Value, error) {
	switch name {
	case "push":
		if len(args) != 1 {
			return nil, &muserr.RuntimeError{Message: fmt.Sprintf("push expects 1 argument, got %d", len(args)), Line: n.Tok.Line, Column: n.Tok.Column}
		}
		v := args[0]
		if arr.ElementType != "" && !ev.checkDeclaredType(arr.ElementType, v, env) {
			return nil, &muserr.TypeError{Message: typeMismatchMessage(arr.ElementType, v), Line: n.Tok.Line, Column: n.Tok.Column}
		}
		arr.Elements = append(arr.Elements, v)
		return values.NullValue, nil
	case "pop":
		if len(args) != 0 {
			return nil, &muserr.RuntimeError{Message: fmt.Sprintf("pop expects 0 arguments, got %d", len(args)), Line: n.Tok.Line, Column: n.Tok.Column}
		}
		if len(arr.Elements) == 0 {
			return nil, &muserr.RuntimeError{Message: "cannot pop from an empty array", Line: n.Tok.Line, Column: n.Tok.Column}
		}
		last := arr.Elements[len(arr.Elements)-1]
		arr.Elements = arr.Elements[:len(arr.Elements)-1]
		return last, nil
	default:
		return nil, &muserr.RuntimeError{Message: fmt.Sprintf("unknown array method %q", name), Line: n.Tok.Line, Column: n.Tok.Column}
	}
}
