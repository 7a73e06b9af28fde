package forthic

// A Variable is a named mutable slot belonging to a module.
type Variable struct {
	name  string
	value interface{}
}

// NewVariable creates a variable holding value.
func NewVariable(name string, value interface{}) *Variable {
	return &Variable{name: name, value: value}
}

// Name returns the variable's name.
func (v *Variable) Name() string { return v.name }

// Value returns the current value.
func (v *Variable) Value() interface{} { return v.value }

// SetValue replaces the current value.
func (v *Variable) SetValue(value interface{}) { v.value = value }

// Dup returns a copy of the variable. The held value is shared.
func (v *Variable) Dup() *Variable {
	return &Variable{name: v.name, value: v.value}
}

// A Module is a dictionary of words plus variables, registered
// submodules, and optionally its own Forthic source. The word list is
// append-only: redefining a word appends a new entry that shadows the
// old one, so words compiled against the old entry keep working.
type Module struct {
	name           string
	words          []Word
	exportable     []string
	variables      map[string]*Variable
	modules        map[string]*Module
	modulePrefixes map[string][]string
	forthicCode    string
}

// NewModule creates an empty module.
func NewModule(name string) *Module {
	return &Module{
		name:           name,
		variables:      map[string]*Variable{},
		modules:        map[string]*Module{},
		modulePrefixes: map[string][]string{},
	}
}

// Name returns the module's name.
func (m *Module) Name() string { return m.name }

// SetName renames the module.
func (m *Module) SetName(name string) { m.name = name }

// ForthicCode returns the module's own Forthic source.
func (m *Module) ForthicCode() string { return m.forthicCode }

// SetForthicCode sets the module's own Forthic source, run by
// Interpreter.RunModuleCode.
func (m *Module) SetForthicCode(code string) { m.forthicCode = code }

// AddWord appends a word to the dictionary.
func (m *Module) AddWord(word Word) {
	m.words = append(m.words, word)
}

// AddMemoWords registers a memo word wrapping word, together with its
// NAME! and NAME!@ companions, and returns the memo.
func (m *Module) AddMemoWords(word Word) *MemoWord {
	memo := NewMemoWord(word.Name(), word)
	m.AddWord(memo)
	m.AddWord(NewMemoBangWord(memo))
	m.AddWord(NewMemoBangAtWord(memo))
	return memo
}

// AddExportable marks word names as importable by other modules.
func (m *Module) AddExportable(names ...string) {
	m.exportable = append(m.exportable, names...)
}

// AddExportableWord adds a word and marks it exportable.
func (m *Module) AddExportableWord(word Word) {
	m.AddWord(word)
	m.AddExportable(word.Name())
}

// Exportable returns the names marked exportable.
func (m *Module) Exportable() []string {
	return append([]string(nil), m.exportable...)
}

// ExportableWords returns the dictionary entries whose names are
// exportable.
func (m *Module) ExportableWords() []Word {
	exportable := map[string]bool{}
	for _, name := range m.exportable {
		exportable[name] = true
	}
	var words []Word
	for _, w := range m.words {
		if exportable[w.Name()] {
			words = append(words, w)
		}
	}
	return words
}

// FindWord looks up a word by name, first in the dictionary, then among
// the module's variables. It returns nil if nothing matches.
func (m *Module) FindWord(name string) Word {
	if w := m.findDictionaryWord(name); w != nil {
		return w
	}
	return m.findVariableWord(name)
}

// findDictionaryWord scans the dictionary newest first, so the most
// recent definition of a name wins.
func (m *Module) findDictionaryWord(name string) Word {
	for i := len(m.words) - 1; i >= 0; i-- {
		if m.words[i].Name() == name {
			return m.words[i]
		}
	}
	return nil
}

// findVariableWord resolves a variable reference to a word pushing its
// current value.
func (m *Module) findVariableWord(name string) Word {
	v, ok := m.variables[name]
	if !ok {
		return nil
	}
	return NewPushValueWord(name, v.Value())
}

// AddVariable creates a variable if it does not already exist. An
// existing variable keeps its value.
func (m *Module) AddVariable(name string, value interface{}) {
	if _, ok := m.variables[name]; !ok {
		m.variables[name] = NewVariable(name, value)
	}
}

// GetVariable returns the named variable, or nil.
func (m *Module) GetVariable(name string) *Variable {
	return m.variables[name]
}

// Variables returns the module's variable map.
func (m *Module) Variables() map[string]*Variable {
	return m.variables
}

// FindModule returns a registered submodule by name, or nil.
func (m *Module) FindModule(name string) *Module {
	return m.modules[name]
}

// RegisterModule records module under name with the given import
// prefix.
func (m *Module) RegisterModule(name, prefix string, module *Module) {
	m.modules[name] = module
	m.modulePrefixes[name] = append(m.modulePrefixes[name], prefix)
}

// ModulePrefixes returns the prefixes a module has been imported under.
func (m *Module) ModulePrefixes(name string) []string {
	return m.modulePrefixes[name]
}

// ImportModule makes source's exportable words available in m. With an
// empty prefix the words are added under their own names; otherwise
// each word NAME is reachable as "prefix.NAME". The source module is
// duplicated first so later changes to it do not leak in.
func (m *Module) ImportModule(prefix string, source *Module) {
	dup := source.Dup()
	for _, w := range dup.ExportableWords() {
		if prefix == "" {
			m.AddWord(w)
		} else {
			m.AddWord(NewExecuteWord(prefix+"."+w.Name(), w))
		}
	}
	m.RegisterModule(dup.Name(), prefix, dup)
}

// Dup returns a copy of the module. Words are shared, variables are
// copied so mutations stay local, and submodule registrations are
// carried over.
func (m *Module) Dup() *Module {
	dup := NewModule(m.name)
	dup.words = append([]Word(nil), m.words...)
	dup.exportable = append([]string(nil), m.exportable...)
	for name, v := range m.variables {
		dup.variables[name] = v.Dup()
	}
	for name, mod := range m.modules {
		dup.modules[name] = mod
	}
	for name, prefixes := range m.modulePrefixes {
		dup.modulePrefixes[name] = append([]string(nil), prefixes...)
	}
	dup.forthicCode = m.forthicCode
	return dup
}
