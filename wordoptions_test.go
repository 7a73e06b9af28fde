package forthic

import (
	"strings"
	"testing"
)

func TestWordOptionsFromFlatArray(t *testing.T) {
	opts, err := WordOptionsFromFlatArray([]interface{}{"depth", 2, "strict", true})
	if err != nil {
		t.Fatal(err)
	}
	if opts.Len() != 2 {
		t.Errorf("Len() = %d, want 2", opts.Len())
	}
	if depth, ok := opts.GetInt("depth"); !ok || depth != 2 {
		t.Errorf("depth = %v %v, want 2", depth, ok)
	}
	if strict, ok := opts.GetBool("strict"); !ok || !strict {
		t.Errorf("strict = %v %v, want true", strict, ok)
	}
	if opts.Has("missing") {
		t.Error("Has reported a missing key")
	}
	if got := opts.GetOr("missing", "fallback"); got != "fallback" {
		t.Errorf("GetOr = %v, want fallback", got)
	}
}

func TestWordOptionsOddLength(t *testing.T) {
	_, err := WordOptionsFromFlatArray([]interface{}{"depth", 2, "dangling"})
	if err == nil {
		t.Fatal("odd-length array accepted")
	}
	if !strings.Contains(err.Error(), "even length") {
		t.Errorf("error %q does not mention even length", err)
	}
}

func TestWordOptionsNonStringKey(t *testing.T) {
	_, err := WordOptionsFromFlatArray([]interface{}{42, "value"})
	if err == nil {
		t.Fatal("non-string key accepted")
	}
	if !strings.Contains(err.Error(), "dot-symbol") {
		t.Errorf("error %q does not mention dot-symbol keys", err)
	}
}

func TestWordOptionsTypedGetters(t *testing.T) {
	opts, err := WordOptionsFromFlatArray([]interface{}{"n", 1, "f", 2.5, "s", "hi"})
	if err != nil {
		t.Fatal(err)
	}
	// A typed getter does not coerce.
	if _, ok := opts.GetInt("f"); ok {
		t.Error("GetInt accepted a float value")
	}
	if f, ok := opts.GetFloat("f"); !ok || f != 2.5 {
		t.Errorf("GetFloat = %v %v", f, ok)
	}
	if s, ok := opts.GetString("s"); !ok || s != "hi" {
		t.Errorf("GetString = %v %v", s, ok)
	}
}

func TestWordOptionsString(t *testing.T) {
	opts, err := WordOptionsFromFlatArray([]interface{}{"b", 2, "a", 1})
	if err != nil {
		t.Fatal(err)
	}
	// Keys render sorted so the output is stable.
	if got := opts.String(); got != "<WordOptions: .a 1 .b 2>" {
		t.Errorf("String() = %q", got)
	}
}

func TestWordOptionsLiteralSyntax(t *testing.T) {
	interp := NewInterpreter()
	interp.AppModule().AddWord(NewModuleWord("~>", func(ctx Context) error {
		v, err := ctx.StackPop()
		if err != nil {
			return err
		}
		flat, ok := v.([]interface{})
		if !ok {
			ctx.StackPush(nil)
			return nil
		}
		opts, err := WordOptionsFromFlatArray(flat)
		if err != nil {
			ctx.StackPush(nil)
			return nil
		}
		ctx.StackPush(opts)
		return nil
	}))

	stack := runStack(t, interp, "[ .depth 1 ] ~>")
	opts, ok := stack[0].(*WordOptions)
	if !ok {
		t.Fatalf("got %T, want *WordOptions", stack[0])
	}
	if depth, ok := opts.GetInt("depth"); !ok || depth != 1 {
		t.Errorf("depth = %v %v, want 1", depth, ok)
	}
}
