/*
Package stdlib provides the standard Forthic runtime modules: core
stack and variable words, array, boolean, math, record, string,
datetime, JSON, and YAML operations.

Each module is an ordinary *forthic.Module whose words are exportable,
so hosts can import the whole set or pick individual modules:

	interp := forthic.NewInterpreter()
	stdlib.ImportAll(interp)
	interp.Run("[1 2 3] LENGTH")

Standard words are loosely typed: given an operand of an unexpected
type they prefer pushing null or an empty value over failing, matching
the language's use for quick data plumbing.
*/
package stdlib

import (
	"fmt"

	forthic "github.com/forthix/forthic-go"
)

// Modules returns fresh instances of every standard module.
func Modules() []*forthic.Module {
	return []*forthic.Module{
		NewCoreModule(),
		NewArrayModule(),
		NewBooleanModule(),
		NewMathModule(),
		NewRecordModule(),
		NewStringModule(),
		NewDateTimeModule(),
		NewJSONModule(),
		NewYAMLModule(),
	}
}

// ImportAll imports every standard module into interp without a
// prefix.
func ImportAll(interp *forthic.Interpreter) {
	interp.ImportModules(Modules()...)
}

// registerWords adds named native words to m as exportable entries.
func registerWords(m *forthic.Module, words []wordEntry) {
	for _, w := range words {
		m.AddExportableWord(forthic.NewModuleWord(w.name, w.fn))
	}
}

type wordEntry struct {
	name string
	fn   forthic.NativeFunc
}

// asInt coerces ints and floats to an int.
func asInt(v interface{}) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case float64:
		return int(n), true
	}
	return 0, false
}

// asFloat coerces ints and floats to a float64.
func asFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

// numberToValue narrows whole finite floats back to int, so arithmetic
// on ints stays in ints.
func numberToValue(f float64) interface{} {
	if f == float64(int(f)) {
		return int(f)
	}
	return f
}

// copyRecord returns a shallow copy of a record. Words that change a
// record copy it first so other references to the value are untouched.
func copyRecord(rec map[string]interface{}) map[string]interface{} {
	result := make(map[string]interface{}, len(rec)+1)
	for k, v := range rec {
		result[k] = v
	}
	return result
}

// valueToKey renders a value as a hashable identity string for the
// set-style words (UNIQUE, DIFFERENCE, INTERSECTION, UNION, IN).
func valueToKey(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case bool:
		return fmt.Sprintf("bool:%v", val)
	case int:
		return fmt.Sprintf("int:%d", val)
	case float64:
		return fmt.Sprintf("float:%v", val)
	case string:
		return "string:" + val
	default:
		return fmt.Sprintf("%#v", v)
	}
}

// isTruthy implements the language's truthiness: null, false, zero,
// the empty string, and the empty array are falsy; everything else is
// truthy.
func isTruthy(v interface{}) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case int:
		return val != 0
	case float64:
		return val != 0
	case string:
		return val != ""
	case []interface{}:
		return len(val) > 0
	}
	return true
}

// valuesEqual compares values for the equality words, coercing ints
// and floats and recursing into arrays.
func valuesEqual(a, b interface{}) bool {
	if fa, ok := asFloat(a); ok {
		if fb, ok := asFloat(b); ok {
			return fa == fb
		}
		return false
	}
	switch av := a.(type) {
	case nil:
		return b == nil
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case []interface{}:
		bv, ok := b.([]interface{})
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !valuesEqual(av[i], bv[i]) {
				return false
			}
		}
		return true
	case map[string]interface{}:
		bv, ok := b.(map[string]interface{})
		if !ok || len(av) != len(bv) {
			return false
		}
		for k, v := range av {
			bval, ok := bv[k]
			if !ok || !valuesEqual(v, bval) {
				return false
			}
		}
		return true
	}
	return a == b
}
