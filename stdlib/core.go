package stdlib

import (
	"strings"

	"github.com/google/uuid"

	forthic "github.com/forthix/forthic-go"
)

// NewCoreModule creates the core module: stack shuffling, variables,
// and a handful of fundamental values.
func NewCoreModule() *forthic.Module {
	m := forthic.NewModule("core")
	registerWords(m, []wordEntry{
		{"POP", wordPop},
		{"DUP", wordDup},
		{"SWAP", wordSwap},
		{"VARIABLES", wordVariables},
		{"!", wordStore},
		{"@", wordFetch},
		{"!@", wordStoreFetch},
		{"IDENTITY", wordIdentity},
		{"NOP", wordIdentity},
		{"NULL", wordNull},
		{"ARRAY?", wordIsArray},
		{"DEFAULT", wordDefault},
		{"~>", wordToOptions},
		{"UUID", wordUUID},
	})
	return m
}

func wordPop(ctx forthic.Context) error {
	_, err := ctx.StackPop()
	return err
}

func wordDup(ctx forthic.Context) error {
	v, err := ctx.StackPeek()
	if err != nil {
		return err
	}
	ctx.StackPush(v)
	return nil
}

func wordSwap(ctx forthic.Context) error {
	a, err := ctx.StackPop()
	if err != nil {
		return err
	}
	b, err := ctx.StackPop()
	if err != nil {
		return err
	}
	ctx.StackPush(a)
	ctx.StackPush(b)
	return nil
}

// checkVarName rejects the reserved "__" prefix.
func checkVarName(name string) error {
	if strings.HasPrefix(name, "__") {
		return &forthic.InvalidVariableNameError{VarName: name}
	}
	return nil
}

func wordVariables(ctx forthic.Context) error {
	v, err := ctx.StackPop()
	if err != nil {
		return err
	}
	names, ok := v.([]interface{})
	if !ok {
		return nil
	}
	for _, n := range names {
		name, ok := n.(string)
		if !ok {
			continue
		}
		if err := checkVarName(name); err != nil {
			return err
		}
		ctx.CurModule().AddVariable(name, nil)
	}
	return nil
}

func wordStore(ctx forthic.Context) error {
	nameVal, err := ctx.StackPop()
	if err != nil {
		return err
	}
	value, err := ctx.StackPop()
	if err != nil {
		return err
	}
	name, ok := nameVal.(string)
	if !ok {
		return nil
	}
	if err := checkVarName(name); err != nil {
		return err
	}
	cur := ctx.CurModule()
	cur.AddVariable(name, nil)
	cur.GetVariable(name).SetValue(value)
	return nil
}

func wordFetch(ctx forthic.Context) error {
	nameVal, err := ctx.StackPop()
	if err != nil {
		return err
	}
	name, ok := nameVal.(string)
	if !ok {
		ctx.StackPush(nil)
		return nil
	}
	if err := checkVarName(name); err != nil {
		return err
	}
	cur := ctx.CurModule()
	cur.AddVariable(name, nil)
	ctx.StackPush(cur.GetVariable(name).Value())
	return nil
}

func wordStoreFetch(ctx forthic.Context) error {
	nameVal, err := ctx.StackPop()
	if err != nil {
		return err
	}
	value, err := ctx.StackPop()
	if err != nil {
		return err
	}
	name, ok := nameVal.(string)
	if !ok {
		ctx.StackPush(value)
		return nil
	}
	if err := checkVarName(name); err != nil {
		return err
	}
	cur := ctx.CurModule()
	cur.AddVariable(name, nil)
	cur.GetVariable(name).SetValue(value)
	ctx.StackPush(value)
	return nil
}

func wordIdentity(ctx forthic.Context) error {
	return nil
}

func wordNull(ctx forthic.Context) error {
	ctx.StackPush(nil)
	return nil
}

func wordIsArray(ctx forthic.Context) error {
	v, err := ctx.StackPop()
	if err != nil {
		return err
	}
	_, ok := v.([]interface{})
	ctx.StackPush(ok)
	return nil
}

func wordDefault(ctx forthic.Context) error {
	def, err := ctx.StackPop()
	if err != nil {
		return err
	}
	v, err := ctx.StackPop()
	if err != nil {
		return err
	}
	if v == nil || v == "" {
		ctx.StackPush(def)
	} else {
		ctx.StackPush(v)
	}
	return nil
}

func wordToOptions(ctx forthic.Context) error {
	v, err := ctx.StackPop()
	if err != nil {
		return err
	}
	flat, ok := v.([]interface{})
	if !ok {
		ctx.StackPush(nil)
		return nil
	}
	opts, err := forthic.WordOptionsFromFlatArray(flat)
	if err != nil {
		ctx.StackPush(nil)
		return nil
	}
	ctx.StackPush(opts)
	return nil
}

func wordUUID(ctx forthic.Context) error {
	ctx.StackPush(uuid.NewString())
	return nil
}
