package stdlib

import (
	"strings"

	"gopkg.in/yaml.v3"

	forthic "github.com/forthix/forthic-go"
)

// NewYAMLModule creates the yaml module.
func NewYAMLModule() *forthic.Module {
	m := forthic.NewModule("yaml")
	registerWords(m, []wordEntry{
		{">YAML", wordToYAML},
		{"YAML>", wordFromYAML},
	})
	return m
}

func wordToYAML(ctx forthic.Context) error {
	v, err := ctx.StackPop()
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(marshalReady(v))
	if err != nil {
		ctx.StackPush(nil)
		return nil
	}
	ctx.StackPush(string(data))
	return nil
}

func wordFromYAML(ctx forthic.Context) error {
	v, err := ctx.StackPop()
	if err != nil {
		return err
	}
	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" {
		ctx.StackPush(nil)
		return nil
	}
	var parsed interface{}
	if err := yaml.Unmarshal([]byte(s), &parsed); err != nil {
		ctx.StackPush(nil)
		return nil
	}
	ctx.StackPush(parsed)
	return nil
}
