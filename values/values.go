/*
File    : mus/values/values.go
Package : values
*/

// Package values implements the Mus tagged-variant value model: Integer,
// String, Boolean, Null, Array, Function, Class, and Instance, all
// satisfying the Value interface so the evaluator can dispatch on a
// single type.
package values

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mus-lang/mus/parser"
)

// Kind tags a Value with its runtime type, used for type checks and
// declared-type compatibility.
type Kind int

const (
	KindInt Kind = iota
	KindString
	KindBool
	KindNull
	KindArray
	KindFunction
	KindClass
	KindInstance
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "integer"
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindNull:
		return "null"
	case KindArray:
		return "array"
	case KindFunction:
		return "function"
	case KindClass:
		return "class"
	case KindInstance:
		return "instance"
	default:
		return "unknown"
	}
}

// Value is the interface every Mus runtime value implements.
type Value interface {
	Kind() Kind
	// String returns the value's canonical textual form, as printed by out.
	String() string
}

// Integer is a 64-bit signed integer value. There is no float tag:
// fractional literals are truncated at the lexer.
type Integer int64

func (Integer) Kind() Kind        { return KindInt }
func (i Integer) String() string  { return strconv.FormatInt(int64(i), 10) }

// String is a Mus string value.
type String string

func (String) Kind() Kind       { return KindString }
func (s String) String() string { return string(s) }

// Boolean is a Mus boolean value.
type Boolean bool

func (Boolean) Kind() Kind { return KindBool }
func (b Boolean) String() string {
	if b {
		return "true"
	}
	return "false"
}

// Null is the unique null value.
type Null struct{}

func (Null) Kind() Kind        { return KindNull }
func (Null) String() string    { return "null" }

// NullValue is the single shared Null instance.
var NullValue = Null{}

// Array is a mutable, heterogeneous-storage sequence with a declared
// element type used for diagnostics and the push type check.
type Array struct {
	Elements    []Value
	ElementType string
}

func (*Array) Kind() Kind { return KindArray }
func (a *Array) String() string {
	parts := make([]string, len(a.Elements))
	for i, e := range a.Elements {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Environment is the subset of scope.Environment that values needs to
// reference (closures, class declaring environments). Defined here as an
// interface, implemented by package scope, to avoid a values<->scope import
// cycle: scope stores Values, so it must import values, and values cannot
// import scope back.
type Environment interface {
	Child() Environment
	DefineVariable(name string, val Value)
	GetVariable(name string) (Value, bool)
	AssignVariable(name string, val Value) bool
	DefineFunction(name string, fn *Function)
	GetFunction(name string) (*Function, bool)
	DefineClass(name string, cls *Class)
	GetClass(name string) (*Class, bool)
}

// NativeFunc is the Go implementation behind a native (builtin) Function.
type NativeFunc func(args []Value) (Value, error)

// Function is a Mus function value: either user-defined (Params/Body/
// Closure set) or native (Native set, no AST body).
type Function struct {
	Name     string
	Params   []parser.Param
	Body     []parser.Stmt
	Closure  Environment
	Native   NativeFunc
	IsNative bool
}

func (*Function) Kind() Kind { return KindFunction }
func (f *Function) String() string {
	parts := make([]string, len(f.Params))
	for i, p := range f.Params {
		parts[i] = fmt.Sprintf("%s => %s", p.Name, p.Type)
	}
	return fmt.Sprintf("fun %s(%s)", f.Name, strings.Join(parts, ", "))
}

// Bind returns a fresh Function sharing Params/Body with f but with a new
// closure: a child of f's own closure with `this` (and `super`, when the
// instance's class has a superclass) pre-defined as ordinary variables.
// The class-owned Function f is never mutated.
func (f *Function) Bind(instance *Instance) *Function {
	env := f.Closure.Child()
	env.DefineVariable("this", instance)
	if instance.Class.Superclass != nil {
		env.DefineVariable("super", instance.Class.Superclass)
	}
	return &Function{Name: f.Name, Params: f.Params, Body: f.Body, Closure: env}
}

// Class is a Mus class value: a name, its declared fields (evaluated in
// declaration order at instantiation), its own methods, and an optional
// superclass for single inheritance.
type Class struct {
	Name       string
	FieldDecls []*parser.VarDecl
	Methods    map[string]*Function
	Superclass *Class
	// DeclEnv is the environment the class was declared in; field
	// initializers evaluate here, not in the caller's scope.
	DeclEnv Environment
}

func (*Class) Kind() Kind         { return KindClass }
func (c *Class) String() string   { return fmt.Sprintf("class %s", c.Name) }

// ResolveMethod looks up name in this class's own methods, then walks the
// superclass chain.
func (c *Class) ResolveMethod(name string) (*Function, bool) {
	if fn, ok := c.Methods[name]; ok {
		return fn, true
	}
	if c.Superclass != nil {
		return c.Superclass.ResolveMethod(name)
	}
	return nil, false
}

// InheritsFrom reports whether c is target or a (transitive) subclass of
// target. Used for the `class name C` declared-type compatibility check:
// an instance satisfies C if instance.Class.InheritsFrom(C).
func (c *Class) InheritsFrom(target *Class) bool {
	for cur := c; cur != nil; cur = cur.Superclass {
		if cur == target || cur.Name == target.Name {
			return true
		}
	}
	return false
}

// Instance is a single object created from a Class. Fields holds the union
// of the class's and its ancestors' declared field values, keyed by name.
type Instance struct {
	Class  *Class
	Fields map[string]Value
	id     uint64
}

func (*Instance) Kind() Kind { return KindInstance }
func (i *Instance) String() string {
	return fmt.Sprintf("%s@%d", i.Class.Name, i.id)
}

var instanceCounter uint64

// NewInstance allocates a zero-valued Instance for cls with a stable id
// for its string form.
func NewInstance(cls *Class) *Instance {
	instanceCounter++
	return &Instance{Class: cls, Fields: make(map[string]Value), id: instanceCounter}
}

// Truthy implements Mus truthiness: only null and false are false; every
// other value, including zero, empty strings, and empty arrays, is truthy.
func Truthy(v Value) bool {
	switch vv := v.(type) {
	case Null:
		return false
	case Boolean:
		return bool(vv)
	default:
		return true
	}
}
