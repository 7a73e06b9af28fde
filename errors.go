package forthic

import (
	"errors"
	"fmt"
	"strings"
)

// A CodeLocation identifies a span of Forthic source code. Line and
// Column are 1-indexed; StartPos and EndPos are 0-indexed character
// offsets. An EndPos of zero means the end of the span is unknown.
type CodeLocation struct {
	// Source optionally names where the code came from, e.g. a module
	// name or file path.
	Source   string
	Line     int
	Column   int
	StartPos int
	EndPos   int
}

// NewCodeLocation creates a location at the given line, column, and
// character offset.
func NewCodeLocation(line, column, startPos int) *CodeLocation {
	return &CodeLocation{Line: line, Column: column, StartPos: startPos}
}

// WithSource sets the location's source name and returns the location.
func (l *CodeLocation) WithSource(source string) *CodeLocation {
	l.Source = source
	return l
}

// WithEndPos sets the location's end offset and returns the location.
func (l *CodeLocation) WithEndPos(endPos int) *CodeLocation {
	l.EndPos = endPos
	return l
}

// contextualError is implemented by errors that carry the Forthic
// source they arose in, for rendering with FormatWithContext.
type contextualError interface {
	error
	errorContext() (forthic string, loc *CodeLocation)
}

// UnknownWordError indicates a word that could not be resolved against
// the module stack or any literal handler.
type UnknownWordError struct {
	Word     string
	Forthic  string
	Location *CodeLocation
	Cause    error
}

func (e *UnknownWordError) Error() string { return fmt.Sprintf("Unknown word: %s", e.Word) }

func (e *UnknownWordError) Unwrap() error { return e.Cause }

func (e *UnknownWordError) errorContext() (string, *CodeLocation) { return e.Forthic, e.Location }

// WordExecutionError wraps an error raised while executing the body of
// a definition. CallLocation is an extension point for embedding hosts;
// the interpreter itself only fills in DefinitionLocation.
type WordExecutionError struct {
	Message            string
	InnerError         error
	Forthic            string
	CallLocation       *CodeLocation
	DefinitionLocation *CodeLocation
}

func (e *WordExecutionError) Error() string { return e.Message }

func (e *WordExecutionError) Unwrap() error { return e.InnerError }

// MissingSemicolonError indicates a definition left open at end of
// input or at the start of another definition.
type MissingSemicolonError struct {
	Forthic  string
	Location *CodeLocation
	Cause    error
}

func (e *MissingSemicolonError) Error() string { return "Missing semicolon" }

func (e *MissingSemicolonError) Unwrap() error { return e.Cause }

func (e *MissingSemicolonError) errorContext() (string, *CodeLocation) { return e.Forthic, e.Location }

// ExtraSemicolonError indicates a semicolon outside of a definition.
type ExtraSemicolonError struct {
	Forthic  string
	Location *CodeLocation
	Cause    error
}

func (e *ExtraSemicolonError) Error() string { return "Extra semicolon" }

func (e *ExtraSemicolonError) Unwrap() error { return e.Cause }

func (e *ExtraSemicolonError) errorContext() (string, *CodeLocation) { return e.Forthic, e.Location }

// StackUnderflowError indicates a pop from an empty data stack or an
// attempt to pop the app module off the module stack.
type StackUnderflowError struct {
	Forthic  string
	Location *CodeLocation
	Cause    error
}

func (e *StackUnderflowError) Error() string { return "Stack underflow" }

func (e *StackUnderflowError) Unwrap() error { return e.Cause }

func (e *StackUnderflowError) errorContext() (string, *CodeLocation) { return e.Forthic, e.Location }

// InvalidVariableNameError indicates a variable name using the reserved
// "__" prefix.
type InvalidVariableNameError struct {
	VarName  string
	Forthic  string
	Location *CodeLocation
	Cause    error
}

func (e *InvalidVariableNameError) Error() string {
	return fmt.Sprintf("Invalid variable name: %s", e.VarName)
}

func (e *InvalidVariableNameError) Unwrap() error { return e.Cause }

func (e *InvalidVariableNameError) errorContext() (string, *CodeLocation) {
	return e.Forthic, e.Location
}

// UnknownModuleError indicates a module name that is not registered.
type UnknownModuleError struct {
	ModuleName string
	Forthic    string
	Location   *CodeLocation
	Cause      error
}

func (e *UnknownModuleError) Error() string {
	return fmt.Sprintf("Unknown module: %s", e.ModuleName)
}

func (e *UnknownModuleError) Unwrap() error { return e.Cause }

func (e *UnknownModuleError) errorContext() (string, *CodeLocation) { return e.Forthic, e.Location }

// InvalidInputPositionError indicates the tokenizer was asked to move
// its cursor before the start of the input.
type InvalidInputPositionError struct {
	Forthic  string
	Location *CodeLocation
	Cause    error
}

func (e *InvalidInputPositionError) Error() string { return "Invalid input position" }

func (e *InvalidInputPositionError) Unwrap() error { return e.Cause }

func (e *InvalidInputPositionError) errorContext() (string, *CodeLocation) {
	return e.Forthic, e.Location
}

// InvalidWordNameError indicates an unusable definition or memo name.
// Note carries the specific problem.
type InvalidWordNameError struct {
	Note     string
	Forthic  string
	Location *CodeLocation
	Cause    error
}

func (e *InvalidWordNameError) Error() string { return "Invalid word name" }

func (e *InvalidWordNameError) Unwrap() error { return e.Cause }

func (e *InvalidWordNameError) errorContext() (string, *CodeLocation) { return e.Forthic, e.Location }

// UnterminatedStringError indicates a string literal with no closing
// delimiter.
type UnterminatedStringError struct {
	Forthic  string
	Location *CodeLocation
	Cause    error
}

func (e *UnterminatedStringError) Error() string { return "Unterminated string" }

func (e *UnterminatedStringError) Unwrap() error { return e.Cause }

func (e *UnterminatedStringError) errorContext() (string, *CodeLocation) {
	return e.Forthic, e.Location
}

// UnknownTokenError indicates a token type the interpreter cannot
// dispatch on.
type UnknownTokenError struct {
	Token    string
	Forthic  string
	Location *CodeLocation
	Cause    error
}

func (e *UnknownTokenError) Error() string {
	return fmt.Sprintf("Unknown type of token: %s", e.Token)
}

func (e *UnknownTokenError) Unwrap() error { return e.Cause }

func (e *UnknownTokenError) errorContext() (string, *CodeLocation) { return e.Forthic, e.Location }

// ModuleError wraps an error raised while running a module's own
// Forthic code.
type ModuleError struct {
	ModuleName   string
	InnerMessage string
	InnerError   error
	Forthic      string
	Location     *CodeLocation
}

func (e *ModuleError) Error() string {
	return fmt.Sprintf("Error in module %s: %s", e.ModuleName, e.InnerMessage)
}

func (e *ModuleError) Unwrap() error { return e.InnerError }

func (e *ModuleError) errorContext() (string, *CodeLocation) { return e.Forthic, e.Location }

// TooManyAttemptsError indicates an error recovery loop exceeded its
// attempt budget.
type TooManyAttemptsError struct {
	NumAttempts int
	MaxAttempts int
	Forthic     string
	Location    *CodeLocation
	Cause       error
}

func (e *TooManyAttemptsError) Error() string {
	return fmt.Sprintf("Too many recovery attempts: %d of %d", e.NumAttempts, e.MaxAttempts)
}

func (e *TooManyAttemptsError) Unwrap() error { return e.Cause }

func (e *TooManyAttemptsError) errorContext() (string, *CodeLocation) { return e.Forthic, e.Location }

// IntentionalStopError is a control flow signal rather than a failure.
// It propagates out of word execution without being offered to any
// registered error handlers.
type IntentionalStopError struct {
	Message string
}

func (e *IntentionalStopError) Error() string {
	return fmt.Sprintf("Intentional stop: %s", e.Message)
}

// IsIntentionalStop reports whether err is an IntentionalStopError
// anywhere in its chain.
func IsIntentionalStop(err error) bool {
	var stop *IntentionalStopError
	return errors.As(err, &stop)
}

// FormatWithContext renders err with the source code it arose in,
// quoting the offending lines and underlining the error span with
// carets. Errors with no source attached render as their plain message.
func FormatWithContext(err error) string {
	if we, ok := err.(*WordExecutionError); ok {
		if we.Forthic == "" {
			return we.Error()
		}
		if we.DefinitionLocation != nil {
			return formatWordExecutionError(we)
		}
		if we.CallLocation == nil {
			return we.Error()
		}
		return formatStandardError(we.Error(), we.Forthic, we.CallLocation)
	}
	ce, ok := err.(contextualError)
	if !ok {
		return err.Error()
	}
	forthic, loc := ce.errorContext()
	if forthic == "" || loc == nil {
		return err.Error()
	}
	return formatStandardError(err.Error(), forthic, loc)
}

// contextBlock renders the source lines up to and including the error
// line, followed by a caret indicator under the error span.
func contextBlock(forthic string, loc *CodeLocation) string {
	lines := strings.Split(forthic, "\n")
	if loc.Line >= 1 && loc.Line < len(lines) {
		lines = lines[:loc.Line]
	}

	endPos := loc.EndPos
	if endPos == 0 {
		endPos = loc.StartPos + 1
	}
	width := endPos - loc.StartPos
	if width < 1 {
		width = 1
	}
	pad := loc.Column - 1
	if pad < 0 {
		pad = 0
	}
	indicator := strings.Repeat(" ", pad) + strings.Repeat("^", width)

	return fmt.Sprintf("```\n%s\n%s\n```", strings.Join(lines, "\n"), indicator)
}

func locationInfo(loc *CodeLocation) string {
	info := fmt.Sprintf("line %d", loc.Line)
	if loc.Source != "" {
		info += " in " + loc.Source
	}
	return info
}

func formatStandardError(message, forthic string, loc *CodeLocation) string {
	return fmt.Sprintf("%s at %s:\n%s", message, locationInfo(loc), contextBlock(forthic, loc))
}

func formatWordExecutionError(e *WordExecutionError) string {
	s := fmt.Sprintf("%s at %s:\n%s",
		e.Message, locationInfo(e.DefinitionLocation), contextBlock(e.Forthic, e.DefinitionLocation))
	if e.CallLocation != nil {
		s += fmt.Sprintf("\nCalled from %s:\n%s",
			locationInfo(e.CallLocation), contextBlock(e.Forthic, e.CallLocation))
	}
	return s
}
