package forthic

import "testing"

func pushWord(name string, value interface{}) *ModuleWord {
	return NewModuleWord(name, func(ctx Context) error {
		ctx.StackPush(value)
		return nil
	})
}

func TestModuleFindWordShadowing(t *testing.T) {
	m := NewModule("m")
	m.AddWord(pushWord("X", 1))
	m.AddWord(pushWord("X", 2))

	interp := NewInterpreter()
	w := m.FindWord("X")
	if w == nil {
		t.Fatal("X not found")
	}
	if err := w.Execute(interp); err != nil {
		t.Fatal(err)
	}
	if top, _ := interp.StackPop(); top != 2 {
		t.Errorf("got %v, want the newest definition (2)", top)
	}
}

func TestModuleVariableWord(t *testing.T) {
	m := NewModule("m")
	m.AddVariable("count", 5)

	interp := NewInterpreter()
	w := m.FindWord("count")
	if w == nil {
		t.Fatal("variable not resolved as a word")
	}
	if err := w.Execute(interp); err != nil {
		t.Fatal(err)
	}
	if top, _ := interp.StackPop(); top != 5 {
		t.Errorf("got %v, want 5", top)
	}

	// Dictionary words take precedence over variables.
	m.AddWord(pushWord("count", "word"))
	w = m.FindWord("count")
	if err := w.Execute(interp); err != nil {
		t.Fatal(err)
	}
	if top, _ := interp.StackPop(); top != "word" {
		t.Errorf("got %v, want the dictionary word", top)
	}
}

func TestAddVariableKeepsExisting(t *testing.T) {
	m := NewModule("m")
	m.AddVariable("v", 1)
	m.AddVariable("v", 2)
	if got := m.GetVariable("v").Value(); got != 1 {
		t.Errorf("got %v, want the original value 1", got)
	}
}

func TestModuleDupCopiesVariables(t *testing.T) {
	m := NewModule("m")
	m.AddVariable("v", 1)

	dup := m.Dup()
	dup.GetVariable("v").SetValue(99)

	if got := m.GetVariable("v").Value(); got != 1 {
		t.Errorf("original variable changed to %v", got)
	}
	if got := dup.GetVariable("v").Value(); got != 99 {
		t.Errorf("dup variable is %v, want 99", got)
	}
}

func TestModuleDupSharesWords(t *testing.T) {
	m := NewModule("m")
	m.AddWord(pushWord("X", 1))
	dup := m.Dup()
	if dup.FindWord("X") == nil {
		t.Error("dup lost dictionary words")
	}
	// Words added to the dup do not appear in the original.
	dup.AddWord(pushWord("Y", 2))
	if m.FindWord("Y") != nil {
		t.Error("word added to dup leaked into the original")
	}
}

func TestExportableWords(t *testing.T) {
	m := NewModule("m")
	m.AddExportableWord(pushWord("PUB", 1))
	m.AddWord(pushWord("PRIV", 2))

	words := m.ExportableWords()
	if len(words) != 1 || words[0].Name() != "PUB" {
		t.Errorf("exportable words %v, want just PUB", words)
	}
}

func TestImportModuleUnprefixed(t *testing.T) {
	src := NewModule("src")
	src.AddExportableWord(pushWord("PUB", 1))

	dst := NewModule("dst")
	dst.ImportModule("", src)

	if dst.FindWord("PUB") == nil {
		t.Error("unprefixed import did not add PUB")
	}
	if dst.FindModule("src") == nil {
		t.Error("import did not register the source module")
	}
}

func TestImportModulePrefixed(t *testing.T) {
	src := NewModule("src")
	src.AddExportableWord(pushWord("PUB", 1))

	dst := NewModule("dst")
	dst.ImportModule("s", src)

	if dst.FindWord("s.PUB") == nil {
		t.Error("prefixed import did not add s.PUB")
	}
	if dst.FindWord("PUB") != nil {
		t.Error("prefixed import leaked the unprefixed name")
	}
	prefixes := dst.ModulePrefixes("src")
	if len(prefixes) != 1 || prefixes[0] != "s" {
		t.Errorf("prefixes %v, want [s]", prefixes)
	}
}

func TestImportModuleIsolation(t *testing.T) {
	// Words added to the source after import are not visible through
	// the importing module.
	src := NewModule("src")
	src.AddExportableWord(pushWord("A", 1))

	dst := NewModule("dst")
	dst.ImportModule("", src)

	src.AddExportableWord(pushWord("B", 2))
	if dst.FindWord("B") != nil {
		t.Error("later addition to the source leaked through the import")
	}
}

func TestAddMemoWords(t *testing.T) {
	m := NewModule("m")
	m.AddMemoWords(pushWord("CACHED", 42))

	for _, name := range []string{"CACHED", "CACHED!", "CACHED!@"} {
		if m.FindWord(name) == nil {
			t.Errorf("%s not registered", name)
		}
	}
}
