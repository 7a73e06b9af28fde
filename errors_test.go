package forthic

import (
	"errors"
	"strings"
	"testing"
)

func TestFormatWithContextUnknownWord(t *testing.T) {
	interp := NewInterpreter()
	err := interp.Run("1 2 GARBAGE")
	if err == nil {
		t.Fatal("expected an error")
	}

	out := FormatWithContext(err)
	if !strings.Contains(out, "Unknown word: GARBAGE") {
		t.Errorf("missing message:\n%s", out)
	}
	if !strings.Contains(out, "at line 1") {
		t.Errorf("missing line info:\n%s", out)
	}
	if !strings.Contains(out, "1 2 GARBAGE") {
		t.Errorf("missing quoted source:\n%s", out)
	}
	// Seven carets under the seven-character word, indented past "1 2 ".
	if !strings.Contains(out, "    ^^^^^^^") {
		t.Errorf("missing caret indicator:\n%s", out)
	}
}

func TestFormatWithContextMultiline(t *testing.T) {
	interp := NewInterpreter()
	err := interp.Run("1\n2\nGARBAGE")
	if err == nil {
		t.Fatal("expected an error")
	}
	out := FormatWithContext(err)
	if !strings.Contains(out, "at line 3") {
		t.Errorf("wrong line info:\n%s", out)
	}
}

func TestFormatWithContextSourceName(t *testing.T) {
	interp := NewInterpreter()
	err := interp.RunWithLocation("GARBAGE", NewCodeLocation(1, 1, 0).WithSource("main.forthic"))
	if err == nil {
		t.Fatal("expected an error")
	}
	out := FormatWithContext(err)
	if !strings.Contains(out, "in main.forthic") {
		t.Errorf("missing source name:\n%s", out)
	}
}

func TestFormatWithContextPlainError(t *testing.T) {
	err := errors.New("just an error")
	if got := FormatWithContext(err); got != "just an error" {
		t.Errorf("got %q", got)
	}
}

func TestFormatWithContextNoLocation(t *testing.T) {
	// A contextual error without source renders as its plain message.
	err := &StackUnderflowError{}
	if got := FormatWithContext(err); got != "Stack underflow" {
		t.Errorf("got %q", got)
	}
}

func TestFormatWordExecutionError(t *testing.T) {
	source := ": BROKEN FAILS ; BROKEN"
	interp := NewInterpreter()
	interp.AppModule().AddWord(NewModuleWord("FAILS", func(ctx Context) error {
		return errors.New("boom")
	}))
	err := interp.Run(source)
	if err == nil {
		t.Fatal("expected an error")
	}
	var wee *WordExecutionError
	if !errors.As(err, &wee) {
		t.Fatalf("got %T, want WordExecutionError", err)
	}

	wee.Forthic = source
	out := FormatWithContext(wee)
	if !strings.Contains(out, "Error executing BROKEN") {
		t.Errorf("missing message:\n%s", out)
	}
	if !strings.Contains(out, "at line 1") {
		t.Errorf("missing definition location:\n%s", out)
	}

	// With a call location attached, the report adds a second block.
	wee.CallLocation = NewCodeLocation(1, 25, 24).WithEndPos(30)
	out = FormatWithContext(wee)
	if !strings.Contains(out, "Called from line 1") {
		t.Errorf("missing call block:\n%s", out)
	}
}

func TestWordExecutionErrorWithoutSource(t *testing.T) {
	wee := &WordExecutionError{Message: "Error executing FOO"}
	if got := FormatWithContext(wee); got != "Error executing FOO" {
		t.Errorf("got %q", got)
	}
}

func TestIsIntentionalStop(t *testing.T) {
	stop := &IntentionalStopError{Message: "done"}
	if !IsIntentionalStop(stop) {
		t.Error("direct IntentionalStopError not detected")
	}
	wrapped := &WordExecutionError{Message: "wrap", InnerError: stop}
	if !IsIntentionalStop(wrapped) {
		t.Error("wrapped IntentionalStopError not detected")
	}
	if IsIntentionalStop(errors.New("other")) {
		t.Error("ordinary error detected as intentional stop")
	}
}

func TestErrorUnwrapChain(t *testing.T) {
	inner := errors.New("root cause")
	err := &ModuleError{ModuleName: "m", InnerMessage: inner.Error(), InnerError: inner}
	if !errors.Is(err, inner) {
		t.Error("ModuleError does not unwrap to its inner error")
	}
	if err.Error() != "Error in module m: root cause" {
		t.Errorf("message %q", err.Error())
	}
}
