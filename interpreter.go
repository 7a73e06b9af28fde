package forthic

import "time"

// startArrayMarker is the sentinel pushed by "[" and collected by "]".
type startArrayMarker struct{}

// IsStartArrayMarker reports whether v is the array-start sentinel.
func IsStartArrayMarker(v interface{}) bool {
	_, ok := v.(startArrayMarker)
	return ok
}

// StartModuleWord pushes a module onto the module stack, creating and
// registering it if necessary. An empty name refers to the app module.
// Pushed modules are duplicates, so definitions inside a "{ name ... }"
// block stay local to that frame.
type StartModuleWord struct {
	name string
}

// NewStartModuleWord creates the word for a "{name" token.
func NewStartModuleWord(name string) *StartModuleWord {
	return &StartModuleWord{name: name}
}

func (w *StartModuleWord) Name() string { return w.name }

func (w *StartModuleWord) Execute(ctx Context) error {
	// The app module is the only module with a blank name.
	if w.name == "" {
		ctx.ModuleStackPush(ctx.AppModule().Dup())
		return nil
	}

	if m := ctx.CurModule().FindModule(w.name); m != nil {
		ctx.ModuleStackPush(m.Dup())
		return nil
	}

	m := NewModule(w.name)
	ctx.CurModule().RegisterModule(w.name, w.name, m.Dup())
	ctx.ModuleStackPush(m)
	return nil
}

// EndModuleWord pops the current module off the module stack.
type EndModuleWord struct{}

// NewEndModuleWord creates the word for a "}" token.
func NewEndModuleWord() *EndModuleWord {
	return &EndModuleWord{}
}

func (w *EndModuleWord) Name() string { return "}" }

func (w *EndModuleWord) Execute(ctx Context) error {
	_, err := ctx.ModuleStackPop()
	return err
}

// EndArrayWord pops values down to the array-start marker and pushes
// them back as a single array in insertion order.
type EndArrayWord struct{}

// NewEndArrayWord creates the word for a "]" token.
func NewEndArrayWord() *EndArrayWord {
	return &EndArrayWord{}
}

func (w *EndArrayWord) Name() string { return "]" }

func (w *EndArrayWord) Execute(ctx Context) error {
	var items []interface{}
	for {
		item, err := ctx.StackPop()
		if err != nil {
			return err
		}
		if IsStartArrayMarker(item) {
			break
		}
		items = append(items, item)
	}
	for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
		items[i], items[j] = items[j], items[i]
	}
	if items == nil {
		items = []interface{}{}
	}
	ctx.StackPush(items)
	return nil
}

// Stack is the interpreter's data stack.
type Stack struct {
	items []interface{}
}

// NewStack creates an empty stack.
func NewStack() *Stack {
	return &Stack{}
}

// Push adds a value to the top of the stack.
func (s *Stack) Push(v interface{}) {
	s.items = append(s.items, v)
}

// Pop removes and returns the top value. Popping an empty stack fails
// with StackUnderflowError.
func (s *Stack) Pop() (interface{}, error) {
	if len(s.items) == 0 {
		return nil, &StackUnderflowError{}
	}
	v := s.items[len(s.items)-1]
	s.items = s.items[:len(s.items)-1]
	return v, nil
}

// Peek returns the top value without removing it.
func (s *Stack) Peek() (interface{}, error) {
	if len(s.items) == 0 {
		return nil, &StackUnderflowError{}
	}
	return s.items[len(s.items)-1], nil
}

// Len returns the number of values on the stack.
func (s *Stack) Len() int { return len(s.items) }

// IsEmpty reports whether the stack has no values.
func (s *Stack) IsEmpty() bool { return len(s.items) == 0 }

// Clear removes all values.
func (s *Stack) Clear() { s.items = s.items[:0] }

// Get returns the value at index i, where 0 is the bottom of the
// stack.
func (s *Stack) Get(i int) (interface{}, bool) {
	if i < 0 || i >= len(s.items) {
		return nil, false
	}
	return s.items[i], true
}

// Items returns the stack contents, bottom first.
func (s *Stack) Items() []interface{} {
	return s.items
}

// Interpreter is the Forthic execution engine. It owns the data stack,
// the module stack, a stack of tokenizers for nested execution, the
// compilation state, and the ordered list of literal recognizers.
//
// The bottom of the module stack is the app module itself, so words
// defined or imported at the top level persist across runs. Modules
// pushed above it are duplicates whose mutations stay local.
type Interpreter struct {
	stack          *Stack
	appModule      *Module
	moduleStack    []*Module
	tokenizerStack []*Tokenizer
	timezone       *time.Location

	isCompiling      bool
	isMemoDefinition bool
	curDefinition    *DefinitionWord

	literalHandlers []LiteralHandler
}

// NewInterpreter creates an interpreter using UTC for datetime
// literals.
func NewInterpreter() *Interpreter {
	return NewInterpreterWithTimezone(time.UTC)
}

// NewInterpreterWithTimezone creates an interpreter whose naive
// datetime and date literals resolve in loc.
func NewInterpreterWithTimezone(loc *time.Location) *Interpreter {
	appModule := NewModule("")
	interp := &Interpreter{
		stack:       NewStack(),
		appModule:   appModule,
		moduleStack: []*Module{appModule},
		timezone:    loc,
	}

	// Registration order matters: more specific recognizers first.
	interp.RegisterLiteralHandler(ToBool)
	interp.RegisterLiteralHandler(ToFloat)
	interp.RegisterLiteralHandler(ToZonedDateTime(loc))
	interp.RegisterLiteralHandler(ToLiteralDate(loc))
	interp.RegisterLiteralHandler(ToTime)
	interp.RegisterLiteralHandler(ToInt)
	return interp
}

// Timezone returns the zone used for datetime literals.
func (i *Interpreter) Timezone() *time.Location { return i.timezone }

// GetStack returns the data stack.
func (i *Interpreter) GetStack() *Stack { return i.stack }

// StackPush pushes a value onto the data stack.
func (i *Interpreter) StackPush(v interface{}) { i.stack.Push(v) }

// StackPop pops the top value off the data stack.
func (i *Interpreter) StackPop() (interface{}, error) { return i.stack.Pop() }

// StackPeek returns the top value without popping it.
func (i *Interpreter) StackPeek() (interface{}, error) { return i.stack.Peek() }

// CurModule returns the module on top of the module stack.
func (i *Interpreter) CurModule() *Module {
	return i.moduleStack[len(i.moduleStack)-1]
}

// AppModule returns the root module.
func (i *Interpreter) AppModule() *Module { return i.appModule }

// ModuleStackPush pushes a module frame.
func (i *Interpreter) ModuleStackPush(m *Module) {
	i.moduleStack = append(i.moduleStack, m)
}

// ModuleStackPop pops the top module frame. The app module at the
// bottom can never be popped.
func (i *Interpreter) ModuleStackPop() (*Module, error) {
	if len(i.moduleStack) <= 1 {
		return nil, &StackUnderflowError{Forthic: "Cannot pop app module"}
	}
	m := i.moduleStack[len(i.moduleStack)-1]
	i.moduleStack = i.moduleStack[:len(i.moduleStack)-1]
	return m, nil
}

// IsCompiling reports whether a definition is currently open.
func (i *Interpreter) IsCompiling() bool { return i.isCompiling }

// CurDefinition returns the definition being compiled, or nil.
func (i *Interpreter) CurDefinition() *DefinitionWord { return i.curDefinition }

// Reset clears the data stack, unwinds the module stack to the app
// module, and abandons any in-progress definition.
func (i *Interpreter) Reset() {
	i.stack.Clear()
	i.moduleStack = []*Module{i.appModule}
	i.isCompiling = false
	i.isMemoDefinition = false
	i.curDefinition = nil
}

// RegisterLiteralHandler appends a literal recognizer. Handlers are
// consulted in registration order after dictionary lookup fails, so
// more specific handlers should come first.
func (i *Interpreter) RegisterLiteralHandler(h LiteralHandler) {
	i.literalHandlers = append(i.literalHandlers, h)
}

// FindLiteralWord tries the literal recognizers against name,
// returning a word pushing the parsed value, or nil.
func (i *Interpreter) FindLiteralWord(name string) Word {
	for _, h := range i.literalHandlers {
		if v, ok := h(name); ok {
			return NewPushValueWord(name, v)
		}
	}
	return nil
}

// FindWord resolves a name against the module stack from the innermost
// frame down, checking each module's dictionary and then its
// variables, and finally the literal recognizers.
func (i *Interpreter) FindWord(name string) (Word, error) {
	for j := len(i.moduleStack) - 1; j >= 0; j-- {
		if w := i.moduleStack[j].FindWord(name); w != nil {
			return w, nil
		}
	}
	if w := i.FindLiteralWord(name); w != nil {
		return w, nil
	}
	return nil, &UnknownWordError{Word: name}
}

// Run tokenizes and executes code.
func (i *Interpreter) Run(code string) error {
	return i.RunWithLocation(code, nil)
}

// RunWithLocation tokenizes and executes code whose first character
// sits at refLocation within some larger source.
func (i *Interpreter) RunWithLocation(code string, refLocation *CodeLocation) error {
	i.tokenizerStack = append(i.tokenizerStack, NewTokenizer(code, refLocation))
	err := i.runWithTokenizer()
	i.tokenizerStack = i.tokenizerStack[:len(i.tokenizerStack)-1]
	return err
}

func (i *Interpreter) runWithTokenizer() error {
	for {
		tokenizer := i.tokenizerStack[len(i.tokenizerStack)-1]
		token, err := tokenizer.NextToken()
		if err != nil {
			return err
		}
		if err := i.handleToken(token); err != nil {
			return err
		}
		if token.Type == TokEOS {
			return nil
		}
	}
}

// TopInputString returns the source held by the outermost tokenizer,
// for attaching to errors.
func (i *Interpreter) TopInputString() string {
	if len(i.tokenizerStack) == 0 {
		return ""
	}
	return i.tokenizerStack[0].InputString()
}

func (i *Interpreter) handleToken(token *Token) error {
	switch token.Type {
	case TokString:
		return i.handleWord(NewPushValueWord("<string>", token.Text))
	case TokDotSymbol:
		return i.handleWord(NewPushValueWord("<dot-symbol>", token.Text))
	case TokComment:
		return nil
	case TokStartArray:
		return i.handleWord(NewPushValueWord("<start_array_token>", startArrayMarker{}))
	case TokEndArray:
		return i.handleWord(NewEndArrayWord())
	case TokStartModule:
		return i.handleImmediateWord(NewStartModuleWord(token.Text))
	case TokEndModule:
		return i.handleImmediateWord(NewEndModuleWord())
	case TokStartDef:
		return i.handleStartDefinition(token, false)
	case TokStartMemo:
		return i.handleStartDefinition(token, true)
	case TokEndDef:
		return i.handleEndDefinition(token)
	case TokWord:
		return i.handleWordToken(token)
	case TokEOS:
		if i.isCompiling {
			return &MissingSemicolonError{Forthic: i.TopInputString(), Location: token.Location}
		}
		return nil
	}
	return &UnknownTokenError{Token: token.Text, Forthic: i.TopInputString(), Location: token.Location}
}

// handleImmediateWord compiles the word into an open definition and
// executes it regardless: module entry and exit take effect during
// compilation too.
func (i *Interpreter) handleImmediateWord(w Word) error {
	if i.isCompiling && i.curDefinition != nil {
		i.curDefinition.AddWord(w)
	}
	return w.Execute(i)
}

func (i *Interpreter) handleStartDefinition(token *Token, isMemo bool) error {
	if i.isCompiling {
		return &MissingSemicolonError{Forthic: i.TopInputString(), Location: token.Location}
	}
	def := NewDefinitionWord(token.Text)
	def.SetLocation(token.Location)
	i.curDefinition = def
	i.isCompiling = true
	i.isMemoDefinition = isMemo
	return nil
}

func (i *Interpreter) handleEndDefinition(token *Token) error {
	if !i.isCompiling || i.curDefinition == nil {
		return &ExtraSemicolonError{Forthic: i.TopInputString(), Location: token.Location}
	}
	definition := i.curDefinition
	i.curDefinition = nil
	if i.isMemoDefinition {
		i.CurModule().AddMemoWords(definition)
	} else {
		i.CurModule().AddWord(definition)
	}
	i.isCompiling = false
	return nil
}

func (i *Interpreter) handleWordToken(token *Token) error {
	word, err := i.FindWord(token.Text)
	if err != nil {
		if unknown, ok := err.(*UnknownWordError); ok {
			unknown.Forthic = i.TopInputString()
			unknown.Location = token.Location
		}
		return err
	}
	return i.handleWord(word)
}

// handleWord compiles the word into an open definition, or executes it
// immediately.
func (i *Interpreter) handleWord(w Word) error {
	if i.isCompiling {
		if i.curDefinition != nil {
			i.curDefinition.AddWord(w)
		}
		return nil
	}
	return w.Execute(i)
}

// RegisterModule makes a module available by name for later lookup and
// import.
func (i *Interpreter) RegisterModule(m *Module) {
	i.appModule.RegisterModule(m.Name(), m.Name(), m)
}

// FindModule returns a registered module by name.
func (i *Interpreter) FindModule(name string) (*Module, error) {
	if m := i.appModule.FindModule(name); m != nil {
		return m, nil
	}
	return nil, &UnknownModuleError{ModuleName: name}
}

// ImportModule registers m and imports its exportable words into the
// app module under prefix. An empty prefix imports the words under
// their own names.
func (i *Interpreter) ImportModule(m *Module, prefix string) {
	i.RegisterModule(m)
	i.appModule.ImportModule(prefix, m)
}

// ImportModules imports several modules without prefixes.
func (i *Interpreter) ImportModules(modules ...*Module) {
	for _, m := range modules {
		i.ImportModule(m, "")
	}
}

// RunModuleCode executes a module's own Forthic source with the module
// on top of the module stack. The module is always popped, and any
// failure is wrapped in a ModuleError naming the module.
func (i *Interpreter) RunModuleCode(m *Module) error {
	i.ModuleStackPush(m)
	err := i.Run(m.ForthicCode())
	if _, popErr := i.ModuleStackPop(); popErr != nil {
		return popErr
	}
	if err != nil {
		return &ModuleError{
			ModuleName:   m.Name(),
			InnerMessage: err.Error(),
			InnerError:   err,
		}
	}
	return nil
}
