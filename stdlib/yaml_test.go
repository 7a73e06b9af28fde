package stdlib_test

import (
	"testing"

	"github.com/forthix/forthic-go/testutils"
)

func TestToYAML(t *testing.T) {
	cases := map[string]testutils.SourceTestCase{
		"record": {Source: "[['a' 1]] REC >YAML", Pass: testutils.PassStack("a: 1\n")},
		"array":  {Source: "[1 2] >YAML", Pass: testutils.PassStack("- 1\n- 2\n")},
	}
	for name, c := range cases {
		t.Run(name, c.TestFunc(name))
	}
}

func TestFromYAML(t *testing.T) {
	cases := map[string]testutils.SourceTestCase{
		"record": {
			Source: "'a: 1' YAML> 'a' REC@",
			Pass:   testutils.PassStack(1),
		},
		"array":   {Source: "'[1, 2]' YAML>", Pass: testutils.PassStack(arr(1, 2))},
		"empty":   {Source: "'' YAML>", Pass: testutils.PassStack(nil)},
		"invalid": {Source: "': : :' YAML>", Pass: testutils.PassStack(nil)},
	}
	for name, c := range cases {
		t.Run(name, c.TestFunc(name))
	}
}

func TestYAMLRoundTrip(t *testing.T) {
	c := testutils.SourceTestCase{
		Source: "[['a' [1 2]] ['b' 'x']] REC >YAML YAML>",
		Pass:   testutils.PassStack(rec("a", arr(1, 2), "b", "x")),
	}
	t.Run("roundTrip", c.TestFunc("roundTrip"))
}
