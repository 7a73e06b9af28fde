package forthic

import (
	"fmt"
	"sync"
)

// Context is the interface words execute against. The Interpreter
// implements it; tests may substitute their own.
type Context interface {
	StackPush(v interface{})
	StackPop() (interface{}, error)
	StackPeek() (interface{}, error)
	CurModule() *Module
	AppModule() *Module
	ModuleStackPush(m *Module)
	ModuleStackPop() (*Module, error)
}

// A Word is an executable dictionary entry.
type Word interface {
	Name() string
	Execute(ctx Context) error
}

// locatedWord is implemented by words that track where in the source
// they were created.
type locatedWord interface {
	Location() *CodeLocation
	SetLocation(loc *CodeLocation)
}

// WordLocation returns where w was created, or nil if w does not track
// a location.
func WordLocation(w Word) *CodeLocation {
	if lw, ok := w.(locatedWord); ok {
		return lw.Location()
	}
	return nil
}

// A NativeFunc is the Go implementation behind a ModuleWord.
type NativeFunc func(ctx Context) error

// A WordErrorHandler is given errors raised by a ModuleWord's handler.
// Returning nil suppresses the error; returning any error leaves
// recovery to the next handler in the chain.
type WordErrorHandler interface {
	Handle(err error, wordName string, ctx Context) error
}

// WordErrorHandlerFunc adapts a function to the WordErrorHandler
// interface.
type WordErrorHandlerFunc func(err error, wordName string, ctx Context) error

func (f WordErrorHandlerFunc) Handle(err error, wordName string, ctx Context) error {
	return f(err, wordName, ctx)
}

// PushValueWord pushes a fixed value onto the stack. Literals and
// variable references compile to these.
type PushValueWord struct {
	name     string
	value    interface{}
	location *CodeLocation
}

// NewPushValueWord creates a PushValueWord.
func NewPushValueWord(name string, value interface{}) *PushValueWord {
	return &PushValueWord{name: name, value: value}
}

func (w *PushValueWord) Name() string { return w.name }

// Value returns the value the word pushes.
func (w *PushValueWord) Value() interface{} { return w.value }

func (w *PushValueWord) Location() *CodeLocation { return w.location }

func (w *PushValueWord) SetLocation(loc *CodeLocation) { w.location = loc }

func (w *PushValueWord) Execute(ctx Context) error {
	ctx.StackPush(w.value)
	return nil
}

// DefinitionWord is a user definition: a compiled sequence of words
// executed in order. An error from any inner word is wrapped in a
// WordExecutionError carrying the definition's location.
type DefinitionWord struct {
	name     string
	words    []Word
	location *CodeLocation
}

// NewDefinitionWord creates an empty definition.
func NewDefinitionWord(name string) *DefinitionWord {
	return &DefinitionWord{name: name}
}

func (w *DefinitionWord) Name() string { return w.name }

// AddWord appends a word to the definition body.
func (w *DefinitionWord) AddWord(word Word) {
	w.words = append(w.words, word)
}

// Words returns the compiled body.
func (w *DefinitionWord) Words() []Word { return w.words }

func (w *DefinitionWord) Location() *CodeLocation { return w.location }

func (w *DefinitionWord) SetLocation(loc *CodeLocation) { w.location = loc }

func (w *DefinitionWord) Execute(ctx Context) error {
	for _, inner := range w.words {
		if err := inner.Execute(ctx); err != nil {
			return &WordExecutionError{
				Message:            fmt.Sprintf("Error executing %s", w.name),
				InnerError:         err,
				DefinitionLocation: w.location,
			}
		}
	}
	return nil
}

// MemoWord caches the result of another word. The first execution runs
// the wrapped word and stores the top of stack; later executions push
// the cached value without running anything.
type MemoWord struct {
	name     string
	word     Word
	location *CodeLocation

	mu       sync.Mutex
	hasValue bool
	value    interface{}
}

// NewMemoWord creates a memo wrapping word.
func NewMemoWord(name string, word Word) *MemoWord {
	return &MemoWord{name: name, word: word}
}

func (w *MemoWord) Name() string { return w.name }

func (w *MemoWord) Location() *CodeLocation { return w.location }

func (w *MemoWord) SetLocation(loc *CodeLocation) { w.location = loc }

// Refresh recomputes the cached value by running the wrapped word and
// popping its result.
func (w *MemoWord) Refresh(ctx Context) error {
	if err := w.word.Execute(ctx); err != nil {
		return err
	}
	v, err := ctx.StackPop()
	if err != nil {
		return err
	}
	w.mu.Lock()
	w.value = v
	w.hasValue = true
	w.mu.Unlock()
	return nil
}

func (w *MemoWord) Execute(ctx Context) error {
	w.mu.Lock()
	has := w.hasValue
	w.mu.Unlock()
	if !has {
		if err := w.Refresh(ctx); err != nil {
			return err
		}
	}
	w.mu.Lock()
	v := w.value
	w.mu.Unlock()
	ctx.StackPush(v)
	return nil
}

// MemoBangWord forces a memo to recompute. It is registered as
// "NAME!".
type MemoBangWord struct {
	name string
	memo *MemoWord
}

// NewMemoBangWord creates the NAME! companion of memo.
func NewMemoBangWord(memo *MemoWord) *MemoBangWord {
	return &MemoBangWord{name: memo.Name() + "!", memo: memo}
}

func (w *MemoBangWord) Name() string { return w.name }

func (w *MemoBangWord) Execute(ctx Context) error {
	return w.memo.Refresh(ctx)
}

// MemoBangAtWord forces a memo to recompute and pushes the fresh value.
// It is registered as "NAME!@".
type MemoBangAtWord struct {
	name string
	memo *MemoWord
}

// NewMemoBangAtWord creates the NAME!@ companion of memo.
func NewMemoBangAtWord(memo *MemoWord) *MemoBangAtWord {
	return &MemoBangAtWord{name: memo.Name() + "!@", memo: memo}
}

func (w *MemoBangAtWord) Name() string { return w.name }

func (w *MemoBangAtWord) Execute(ctx Context) error {
	if err := w.memo.Refresh(ctx); err != nil {
		return err
	}
	w.memo.mu.Lock()
	v := w.memo.value
	w.memo.mu.Unlock()
	ctx.StackPush(v)
	return nil
}

// ExecuteWord delegates to another word under a different name. Module
// imports with a prefix compile to these.
type ExecuteWord struct {
	name   string
	target Word
}

// NewExecuteWord creates a word named name that runs target.
func NewExecuteWord(name string, target Word) *ExecuteWord {
	return &ExecuteWord{name: name, target: target}
}

func (w *ExecuteWord) Name() string { return w.name }

func (w *ExecuteWord) Execute(ctx Context) error {
	return w.target.Execute(ctx)
}

// ModuleWord is a native word backed by a Go function. Errors from the
// handler are offered to the word's error handlers in registration
// order; the first handler to return nil suppresses the error.
// IntentionalStopError is never offered to handlers.
type ModuleWord struct {
	name     string
	handler  NativeFunc
	location *CodeLocation

	mu            sync.Mutex
	errorHandlers []WordErrorHandler
}

// NewModuleWord creates a native word.
func NewModuleWord(name string, handler NativeFunc) *ModuleWord {
	return &ModuleWord{name: name, handler: handler}
}

func (w *ModuleWord) Name() string { return w.name }

func (w *ModuleWord) Location() *CodeLocation { return w.location }

func (w *ModuleWord) SetLocation(loc *CodeLocation) { w.location = loc }

// AddErrorHandler appends a handler to the recovery chain.
func (w *ModuleWord) AddErrorHandler(h WordErrorHandler) {
	w.mu.Lock()
	w.errorHandlers = append(w.errorHandlers, h)
	w.mu.Unlock()
}

// RemoveErrorHandler removes a previously added handler, compared by
// identity.
func (w *ModuleWord) RemoveErrorHandler(h WordErrorHandler) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for i, existing := range w.errorHandlers {
		if existing == h {
			w.errorHandlers = append(w.errorHandlers[:i], w.errorHandlers[i+1:]...)
			return
		}
	}
}

// ClearErrorHandlers removes all handlers.
func (w *ModuleWord) ClearErrorHandlers() {
	w.mu.Lock()
	w.errorHandlers = nil
	w.mu.Unlock()
}

// ErrorHandlers returns a snapshot of the handler chain.
func (w *ModuleWord) ErrorHandlers() []WordErrorHandler {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]WordErrorHandler(nil), w.errorHandlers...)
}

func (w *ModuleWord) Execute(ctx Context) error {
	err := w.handler(ctx)
	if err == nil {
		return nil
	}
	if IsIntentionalStop(err) {
		return err
	}
	for _, h := range w.ErrorHandlers() {
		if h.Handle(err, w.name, ctx) == nil {
			return nil
		}
	}
	return err
}
