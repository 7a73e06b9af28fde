package stdlib_test

import (
	"testing"

	"github.com/forthix/forthic-go/testutils"
)

func TestToJSON(t *testing.T) {
	cases := map[string]testutils.SourceTestCase{
		"array":  {Source: "[1 2 3] >JSON", Pass: testutils.PassStack("[1,2,3]")},
		"record": {Source: "[['a' 1]] REC >JSON", Pass: testutils.PassStack(`{"a":1}`)},
		"string": {Source: "'hi' >JSON", Pass: testutils.PassStack(`"hi"`)},
		"null":   {Source: "NULL >JSON", Pass: testutils.PassStack("null")},
		"date":   {Source: "2024-05-06 >JSON", Pass: testutils.PassStack(`"2024-05-06"`)},
		"time":   {Source: "14:30 >JSON", Pass: testutils.PassStack(`"14:30:00"`)},
		"nested": {
			Source: "[['xs' [1 2]]] REC >JSON",
			Pass:   testutils.PassStack(`{"xs":[1,2]}`),
		},
	}
	for name, c := range cases {
		t.Run(name, c.TestFunc(name))
	}
}

func TestFromJSON(t *testing.T) {
	cases := map[string]testutils.SourceTestCase{
		"record": {
			Source: `'{"a": 1, "b": "x"}' JSON>`,
			Pass:   testutils.PassStack(rec("a", 1, "b", "x")),
		},
		"array":       {Source: "'[1, 2.5]' JSON>", Pass: testutils.PassStack(arr(1, 2.5))},
		"intsStayInt": {Source: "'[7]' JSON> 0 NTH", Pass: testutils.PassStack(7)},
		"empty":       {Source: "'' JSON>", Pass: testutils.PassStack(nil)},
		"invalid":     {Source: "'{nope' JSON>", Pass: testutils.PassStack(nil)},
		"nonString":   {Source: "42 JSON>", Pass: testutils.PassStack(nil)},
	}
	for name, c := range cases {
		t.Run(name, c.TestFunc(name))
	}
}

func TestJSONPrettify(t *testing.T) {
	cases := map[string]testutils.SourceTestCase{
		"basic": {
			Source: `'{"a":1}' JSON-PRETTIFY`,
			Pass:   testutils.PassStack("{\n  \"a\": 1\n}"),
		},
		"invalid": {Source: "'nope{' JSON-PRETTIFY", Pass: testutils.PassStack(nil)},
	}
	for name, c := range cases {
		t.Run(name, c.TestFunc(name))
	}
}

func TestJSONRoundTrip(t *testing.T) {
	c := testutils.SourceTestCase{
		Source: "[['a' [1 2]] ['b' 'x']] REC >JSON JSON>",
		Pass:   testutils.PassStack(rec("a", arr(1, 2), "b", "x")),
	}
	t.Run("roundTrip", c.TestFunc("roundTrip"))
}
