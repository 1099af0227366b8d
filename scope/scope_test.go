package scope

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/mus-lang/mus/values"
)

func TestEnvironment_DefineAndLookup(t *testing.T) {
	env := New()
	env.DefineVariable("x", values.Integer(10))

	v, ok := env.GetVariable("x")
	assert.True(t, ok)
	assert.Equal(t, values.Integer(10), v)
}

func TestEnvironment_ChildSeesParent(t *testing.T) {
	parent := New()
	parent.DefineVariable("x", values.Integer(1))
	child := parent.Child()

	v, ok := child.GetVariable("x")
	assert.True(t, ok)
	assert.Equal(t, values.Integer(1), v)
}

func TestEnvironment_ShadowingIsNotRetroactive(t *testing.T) {
	parent := New()
	parent.DefineVariable("x", values.Integer(1))
	child := parent.Child()
	child.DefineVariable("x", values.Integer(2))

	childVal, _ := child.GetVariable("x")
	parentVal, _ := parent.GetVariable("x")
	assert.Equal(t, values.Integer(2), childVal)
	assert.Equal(t, values.Integer(1), parentVal)
}

func TestEnvironment_AssignUpdatesEnclosingBinding(t *testing.T) {
	parent := New()
	parent.DefineVariable("x", values.Integer(1))
	child := parent.Child()

	ok := child.AssignVariable("x", values.Integer(99))
	assert.True(t, ok)

	parentVal, _ := parent.GetVariable("x")
	assert.Equal(t, values.Integer(99), parentVal)
}

func TestEnvironment_AssignUndefinedFails(t *testing.T) {
	env := New()
	ok := env.AssignVariable("missing", values.Integer(1))
	assert.False(t, ok)
}

func TestEnvironment_VariablesFunctionsClassesAreSeparateNamespaces(t *testing.T) {
	env := New()
	env.DefineVariable("thing", values.Integer(1))
	env.DefineFunction("thing", &values.Function{Name: "thing"})
	env.DefineClass("thing", &values.Class{Name: "thing"})

	v, ok := env.GetVariable("thing")
	assert.True(t, ok)
	assert.Equal(t, values.Integer(1), v)

	fn, ok := env.GetFunction("thing")
	assert.True(t, ok)
	assert.Equal(t, "thing", fn.Name)

	cls, ok := env.GetClass("thing")
	assert.True(t, ok)
	assert.Equal(t, "thing", cls.Name)
}

func TestEnvironment_ScopeReleaseHidesVariables(t *testing.T) {
	// Simulates a block exit: the block's environment is simply dropped,
	// so subsequent lookups in the parent never see its bindings.
	parent := New()
	func() {
		block := parent.Child()
		block.DefineVariable("temp", values.Integer(1))
	}()
	_, ok := parent.GetVariable("temp")
	assert.False(t, ok)
}
