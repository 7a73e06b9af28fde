package stdlib_test

import (
	"errors"
	"testing"

	forthic "github.com/forthix/forthic-go"
	"github.com/forthix/forthic-go/testutils"
)

func TestStackWords(t *testing.T) {
	cases := map[string]testutils.SourceTestCase{
		"pop":      {Source: "1 2 POP", Pass: testutils.PassStack(1)},
		"dup":      {Source: "7 DUP", Pass: testutils.PassStack(7, 7)},
		"swap":     {Source: "1 2 SWAP", Pass: testutils.PassStack(2, 1)},
		"popEmpty": {Source: "POP", Pass: testutils.PassFailure()},
	}
	for name, c := range cases {
		t.Run(name, c.TestFunc(name))
	}
}

func TestVariableWords(t *testing.T) {
	cases := map[string]testutils.SourceTestCase{
		// Each case uses its own variable name: the app module, and so
		// its variables, outlives the per-case stack reset.
		"declare":       {Source: "['dv'] VARIABLES dv", Pass: testutils.PassStack(nil)},
		"storeFetch":    {Source: "5 'sf' ! 'sf' @", Pass: testutils.PassStack(5)},
		"storeResolve":  {Source: "5 'sr' ! sr", Pass: testutils.PassStack(5)},
		"createOnRead":  {Source: "'unset' @", Pass: testutils.PassStack(nil)},
		"bangAt":        {Source: "9 'ba' !@", Pass: testutils.PassStack(9)},
		"overwrite":     {Source: "1 'ow' ! 2 'ow' ! ow", Pass: testutils.PassStack(2)},
		"reservedStore": {Source: "1 '__x' !", Pass: testutils.PassFailure()},
		"reservedDecl":  {Source: "['__x'] VARIABLES", Pass: testutils.PassFailure()},
	}
	for name, c := range cases {
		t.Run(name, c.TestFunc(name))
	}
}

func TestValueWords(t *testing.T) {
	cases := map[string]testutils.SourceTestCase{
		"null":           {Source: "NULL", Pass: testutils.PassStack(nil)},
		"identity":       {Source: "3 IDENTITY", Pass: testutils.PassStack(3)},
		"nop":            {Source: "3 NOP", Pass: testutils.PassStack(3)},
		"isArrayYes":     {Source: "[1 2] ARRAY?", Pass: testutils.PassStack(true)},
		"isArrayNo":      {Source: "'s' ARRAY?", Pass: testutils.PassStack(false)},
		"defaultForNull": {Source: "NULL 5 DEFAULT", Pass: testutils.PassStack(5)},
		"defaultEmpty":   {Source: "'' 'x' DEFAULT", Pass: testutils.PassStack("x")},
		"defaultKept":    {Source: "7 5 DEFAULT", Pass: testutils.PassStack(7)},
	}
	for name, c := range cases {
		t.Run(name, c.TestFunc(name))
	}
}

func TestUUIDWord(t *testing.T) {
	c := testutils.SourceTestCase{
		Source: "UUID",
		Pass: func(stack []interface{}, err error) bool {
			if err != nil || len(stack) != 1 {
				return false
			}
			s, ok := stack[0].(string)
			return ok && len(s) == 36
		},
	}
	t.Run("uuid", c.TestFunc("uuid"))
}

func TestWordErrorHandlerChain(t *testing.T) {
	interp := testutils.TestingInterpreter()
	interp.Reset()

	boom := errors.New("boom")
	word := forthic.NewModuleWord("BOOM", func(ctx forthic.Context) error { return boom })
	recorder := &testutils.RecordingHandler{}
	word.AddErrorHandler(recorder)
	interp.AppModule().AddWord(word)

	if err := interp.Run("BOOM"); err != nil {
		t.Fatalf("handler did not suppress the error: %v", err)
	}
	if len(recorder.Errors) != 1 || !errors.Is(recorder.Errors[0], boom) {
		t.Fatalf("recorded errors %v", recorder.Errors)
	}
	if len(recorder.Words) != 1 || recorder.Words[0] != "BOOM" {
		t.Fatalf("recorded words %v", recorder.Words)
	}

	// A handler that answers with an error leaves the failure in place.
	recorder.Response = boom
	if err := interp.Run("BOOM"); !errors.Is(err, boom) {
		t.Fatalf("want the original error, got %v", err)
	}
}

func TestToOptionsWord(t *testing.T) {
	cases := map[string]testutils.SourceTestCase{
		"oddLength": {Source: "[.depth] ~>", Pass: testutils.PassStack(nil)},
		"valid": {
			Source: "[.depth 1] ~>",
			Pass: func(stack []interface{}, err error) bool {
				return err == nil && len(stack) == 1 && stack[0] != nil
			},
		},
	}
	for name, c := range cases {
		t.Run(name, c.TestFunc(name))
	}
}
