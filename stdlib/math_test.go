package stdlib_test

import (
	"testing"

	"github.com/forthix/forthic-go/testutils"
)

func TestArithmetic(t *testing.T) {
	cases := map[string]testutils.SourceTestCase{
		"add":         {Source: "1 2 +", Pass: testutils.PassStack(3)},
		"addFloats":   {Source: "1.5 2.25 +", Pass: testutils.PassStack(3.75)},
		"addNarrows":  {Source: "1.5 2.5 +", Pass: testutils.PassStack(4)},
		"sub":         {Source: "5 3 -", Pass: testutils.PassStack(2)},
		"mul":         {Source: "4 3 *", Pass: testutils.PassStack(12)},
		"div":         {Source: "10 4 /", Pass: testutils.PassStack(2.5)},
		"divWhole":    {Source: "10 2 /", Pass: testutils.PassStack(5)},
		"divByZero":   {Source: "10 0 /", Pass: testutils.PassStack(nil)},
		"mod":         {Source: "10 3 MOD", Pass: testutils.PassStack(1)},
		"modByZero":   {Source: "10 0 MOD", Pass: testutils.PassStack(nil)},
		"addNonNum":   {Source: "1 'x' +", Pass: testutils.PassStack(nil)},
	}
	for name, c := range cases {
		t.Run(name, c.TestFunc(name))
	}
}

func TestAggregates(t *testing.T) {
	cases := map[string]testutils.SourceTestCase{
		"sum":       {Source: "[1 2 3] SUM", Pass: testutils.PassStack(6)},
		"sumMixed":  {Source: "[1 'x' 2] SUM", Pass: testutils.PassStack(3)},
		"sumEmpty":  {Source: "[] SUM", Pass: testutils.PassStack(0)},
		"max":       {Source: "[3 1 4 1 5] MAX", Pass: testutils.PassStack(5)},
		"min":       {Source: "[3 1 4 1 5] MIN", Pass: testutils.PassStack(1)},
		"maxEmpty":  {Source: "[] MAX", Pass: testutils.PassStack(nil)},
		"mean":      {Source: "[1 2 3 4] MEAN", Pass: testutils.PassStack(2.5)},
		"meanEmpty": {Source: "[] MEAN", Pass: testutils.PassStack(0)},
	}
	for name, c := range cases {
		t.Run(name, c.TestFunc(name))
	}
}

func TestNumericConversions(t *testing.T) {
	cases := map[string]testutils.SourceTestCase{
		"intFromFloat":  {Source: "3.7 >INT", Pass: testutils.PassStack(3)},
		"intFromString": {Source: "'42' >INT", Pass: testutils.PassStack(42)},
		"intFromBool":   {Source: "TRUE >INT", Pass: testutils.PassStack(1)},
		"intBad":        {Source: "'abc' >INT", Pass: testutils.PassStack(nil)},
		"floatFromInt":  {Source: "3 >FLOAT", Pass: testutils.PassStack(3.0)},
		"floatString":   {Source: "'2.5' >FLOAT", Pass: testutils.PassStack(2.5)},
		"round":         {Source: "2.5 ROUND", Pass: testutils.PassStack(3)},
		"roundDown":     {Source: "2.4 ROUND", Pass: testutils.PassStack(2)},
		"abs":           {Source: "-3 ABS", Pass: testutils.PassStack(3)},
		"floor":         {Source: "2.9 FLOOR", Pass: testutils.PassStack(2)},
		"ceil":          {Source: "2.1 CEIL", Pass: testutils.PassStack(3)},
	}
	for name, c := range cases {
		t.Run(name, c.TestFunc(name))
	}
}
