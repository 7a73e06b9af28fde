// Package testutils provides utilities for testing Forthic code in Go.
package testutils

import (
	"reflect"
	"sync"
	"testing"

	forthic "github.com/forthix/forthic-go"
	"github.com/forthix/forthic-go/stdlib"
)

// testInterp is the interpreter used for all tests.
var testInterp *forthic.Interpreter

var testInterpInit sync.Once

// TestingInterpreter returns an interpreter for testing Forthic. The
// interpreter is shared by all tests that use this package and has the
// standard modules imported.
func TestingInterpreter() *forthic.Interpreter {
	testInterpInit.Do(ResetTestingInterpreter)
	return testInterp
}

// ResetTestingInterpreter reinitializes the interpreter returned by
// TestingInterpreter. It is not safe to call this in parallel tests.
func ResetTestingInterpreter() {
	testInterp = forthic.NewInterpreter()
	stdlib.ImportAll(testInterp)
}

// A SourceTestCase is a test case containing Forthic source code and a
// predicate to check the result.
type SourceTestCase struct {
	// Source is the Forthic source code to execute.
	Source string
	// Pass is a predicate taking the data stack after executing Source
	// and the error Run returned. If Pass returns false, then the test
	// fails.
	Pass func(stack []interface{}, err error) bool
}

// TestFunc returns a test function for the test case. This uses
// TestingInterpreter to execute the code, clearing the stack first so
// cases do not see each other's leftovers.
func (c SourceTestCase) TestFunc(name string) func(*testing.T) {
	return func(t *testing.T) {
		interp := TestingInterpreter()
		interp.Reset()
		err := interp.Run(c.Source)
		stack := interp.GetStack().Items()
		if !c.Pass(stack, err) {
			if err != nil {
				t.Errorf("%q produced wrong result; an error occurred:\n%s", c.Source, forthic.FormatWithContext(err))
			} else {
				t.Errorf("%q produced wrong result; stack %v", c.Source, stack)
			}
		}
	}
}

// Equal compares Forthic values, treating ints and floats of the same
// magnitude as equal and recursing into arrays and records.
func Equal(a, b interface{}) bool {
	if fa, ok := asFloat(a); ok {
		fb, ok := asFloat(b)
		return ok && fa == fb
	}
	switch av := a.(type) {
	case []interface{}:
		bv, ok := b.([]interface{})
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !Equal(av[i], bv[i]) {
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
			if !ok || !Equal(v, bval) {
				return false
			}
		}
		return true
	}
	return reflect.DeepEqual(a, b)
}

func asFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

// PassTop returns a Pass function that predicates on the top of stack
// comparing Equal to want. An error or an empty stack fails.
func PassTop(want interface{}) func([]interface{}, error) bool {
	return func(stack []interface{}, err error) bool {
		if err != nil || len(stack) == 0 {
			return false
		}
		return Equal(stack[len(stack)-1], want)
	}
}

// PassStack returns a Pass function that predicates on the whole stack,
// bottom first, comparing Equal to want.
func PassStack(want ...interface{}) func([]interface{}, error) bool {
	return func(stack []interface{}, err error) bool {
		if err != nil || len(stack) != len(want) {
			return false
		}
		for i := range want {
			if !Equal(stack[i], want[i]) {
				return false
			}
		}
		return true
	}
}

// PassFailure returns a Pass function that returns true iff running
// the source produced an error.
func PassFailure() func([]interface{}, error) bool {
	return func(stack []interface{}, err error) bool {
		return err != nil
	}
}

// PassSuccess returns a Pass function that returns true iff running
// the source produced no error.
func PassSuccess() func([]interface{}, error) bool {
	return func(stack []interface{}, err error) bool {
		return err == nil
	}
}

// A RecordingHandler is a word error handler that records the errors it
// is offered and answers with a fixed response. A nil Response
// suppresses the error.
type RecordingHandler struct {
	Response error
	Errors   []error
	Words    []string
}

// Handle records the offered error and returns the configured
// response.
func (h *RecordingHandler) Handle(err error, wordName string, ctx forthic.Context) error {
	h.Errors = append(h.Errors, err)
	h.Words = append(h.Words, wordName)
	return h.Response
}
