/*
File    : mus/std/builtins.go
Package : std
*/

// Package std defines the Mus built-in functions: `out`,
// `length`, and the optional `error`/`warn` diagnostic writers. Builtins
// are registered as native values.Function values directly into the global
// environment, following a native-function registration pattern
// common in tree-walking interpreters.
package std

import (
	"fmt"
	"io"

	"github.com/mus-lang/mus/muserr"
	"github.com/mus-lang/mus/values"
)

// Register installs out, length, error, and warn as native functions in
// env. out and error/warn write to out/errOut respectively; length has no
// side effects.
func Register(env values.Environment, out io.Writer, errOut io.Writer) {
	env.DefineFunction("out", nativeFn("out", 1, func(args []values.Value) (values.Value, error) {
		fmt.Fprintln(out, args[0].String())
		return values.NullValue, nil
	}))

	env.DefineFunction("length", nativeFn("length", 1, func(args []values.Value) (values.Value, error) {
		arr, ok := args[0].(*values.Array)
		if !ok {
			return nil, &muserr.TypeError{Message: fmt.Sprintf("length expects an array, got %s", args[0].Kind())}
		}
		return values.Integer(len(arr.Elements)), nil
	}))

	env.DefineFunction("error", nativeFn("error", 1, func(args []values.Value) (values.Value, error) {
		fmt.Fprintln(errOut, args[0].String())
		return values.NullValue, nil
	}))

	env.DefineFunction("warn", nativeFn("warn", 1, func(args []values.Value) (values.Value, error) {
		fmt.Fprintln(errOut, "Warning: "+args[0].String())
		return values.NullValue, nil
	}))
}

// nativeFn wraps fn with an arity check shared by every builtin above.
func nativeFn(name string, arity int, fn values.NativeFunc) *values.Function {
	return &values.Function{
		Name:     name,
		IsNative: true,
		Native: func(args []values.Value) (values.Value, error) {
			if len(args) != arity {
				return nil, &muserr.RuntimeError{Message: fmt.Sprintf("%s expects %d argument(s), got %d", name, arity, len(args))}
			}
			return fn(args)
		},
	}
}
