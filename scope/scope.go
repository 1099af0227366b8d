/*
File    : mus/scope/scope.go
Package : scope
*/

// Package scope implements the Mus Environment: a name-to-value mapping
// with a parent link forming a scope chain, plus the parallel function and
// class namespaces.
package scope

import "github.com/mus-lang/mus/values"

// Environment is a single lexical scope: three disjoint namespaces
// (variables, functions, classes) and a pointer to the enclosing scope.
// Lookup walks parents until a binding is found or the chain is exhausted.
type Environment struct {
	variables map[string]values.Value
	functions map[string]*values.Function
	classes   map[string]*values.Class
	parent    *Environment
}

// New creates a root (global) Environment with no parent.
func New() *Environment {
	return &Environment{
		variables: make(map[string]values.Value),
		functions: make(map[string]*values.Function),
		classes:   make(map[string]*values.Class),
	}
}

// Child creates a nested Environment whose parent is e. Returned as the
// values.Environment interface so Function/Class values can hold a closure
// without scope and values importing each other.
func (e *Environment) Child() values.Environment {
	return &Environment{
		variables: make(map[string]values.Value),
		functions: make(map[string]*values.Function),
		classes:   make(map[string]*values.Class),
		parent:    e,
	}
}

// DefineVariable inserts name into the current scope, overwriting any
// existing binding with the same name in this scope. It always targets
// the current environment, never a parent.
func (e *Environment) DefineVariable(name string, val values.Value) {
	e.variables[name] = val
}

// GetVariable performs a nearest-enclosing lookup, walking parents until
// found or the chain is exhausted.
func (e *Environment) GetVariable(name string) (values.Value, bool) {
	for env := e; env != nil; env = env.parent {
		if v, ok := env.variables[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// AssignVariable updates the nearest enclosing binding for name. Shadowing
// is not retroactive: if name is not already bound anywhere in the chain,
// AssignVariable returns false and defines nothing.
func (e *Environment) AssignVariable(name string, val values.Value) bool {
	for env := e; env != nil; env = env.parent {
		if _, ok := env.variables[name]; ok {
			env.variables[name] = val
			return true
		}
	}
	return false
}

// DefineFunction inserts a function binding into the current scope.
func (e *Environment) DefineFunction(name string, fn *values.Function) {
	e.functions[name] = fn
}

// GetFunction performs a nearest-enclosing lookup in the function
// namespace.
func (e *Environment) GetFunction(name string) (*values.Function, bool) {
	for env := e; env != nil; env = env.parent {
		if fn, ok := env.functions[name]; ok {
			return fn, true
		}
	}
	return nil, false
}

// DefineClass inserts a class binding into the current scope.
func (e *Environment) DefineClass(name string, cls *values.Class) {
	e.classes[name] = cls
}

// GetClass performs a nearest-enclosing lookup in the class namespace.
func (e *Environment) GetClass(name string) (*values.Class, bool) {
	for env := e; env != nil; env = env.parent {
		if cls, ok := env.classes[name]; ok {
			return cls, true
		}
	}
	return nil, false
}

var _ values.Environment = (*Environment)(nil)
