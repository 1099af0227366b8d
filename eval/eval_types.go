package eval

import (
	"fmt"
	"strings"

	"github.com/mus-lang/mus/values"
)

// checkDeclaredType reports whether val is compatible with declaredType,
// used by VarDecl evaluation and the array push type check:
//
//	integer          -> Integer
//	string           -> String
//	bool / boolean   -> Boolean
//	array<T>         -> Array whose ElementType is T, or an empty array (adopts T)
//	any              -> anything
//	class name C     -> Instance whose class is C or a subclass of C
func (ev *Evaluator) checkDeclaredType(declaredType string, val values.Value, env values.Environment) bool {
	switch declaredType {
	case "any":
		return true
	case "integer":
		_, ok := val.(values.Integer)
		return ok
	case "string":
		_, ok := val.(values.String)
		return ok
	case "bool", "boolean":
		_, ok := val.(values.Boolean)
		return ok
	}
	if strings.HasPrefix(declaredType, "array<") && strings.HasSuffix(declaredType, ">") {
		elemType := declaredType[len("array<") : len(declaredType)-1]
		arr, ok := val.(*values.Array)
		if !ok {
			return false
		}
		return len(arr.Elements) == 0 || arr.ElementType == elemType
	}
	// Otherwise declaredType names a class: the value must be an instance of
	// that class or one of its subclasses.
	inst, ok := val.(*values.Instance)
	if !ok {
		return false
	}
	cls, ok := env.GetClass(declaredType)
	if !ok {
		// Unknown class name at a use site: accept (matches the parser's
		// policy of accepting unrecognized type names and validating only
		// where it can).
		return true
	}
	return inst.Class.InheritsFrom(cls)
}

func typeMismatchMessage(declaredType string, val values.Value) string {
	return fmt.Sprintf("value of type %s is not compatible with declared type %q", val.Kind(), declaredType)
}
