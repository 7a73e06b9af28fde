package stdlib

import (
	"net/url"
	"strings"

	forthic "github.com/forthix/forthic-go"
)

// NewStringModule creates the string module.
func NewStringModule() *forthic.Module {
	m := forthic.NewModule("string")
	registerWords(m, []wordEntry{
		{">STR", wordToStr},
		{"URL-ENCODE", wordURLEncode},
		{"URL-DECODE", wordURLDecode},
		{"LOWERCASE", wordLowercase},
		{"UPPERCASE", wordUppercase},
		{"STRIP", wordStrip},
		{"ASCII", wordASCII},
		{"SPLIT", wordSplit},
		{"JOIN", wordJoin},
		{"CONCAT", wordConcat},
		{"REPLACE", wordReplace},
		{"/N", pushConstant("\n")},
		{"/R", pushConstant("\r")},
		{"/T", pushConstant("\t")},
	})
	return m
}

func pushConstant(value interface{}) forthic.NativeFunc {
	return func(ctx forthic.Context) error {
		ctx.StackPush(value)
		return nil
	}
}

func wordToStr(ctx forthic.Context) error {
	v, err := ctx.StackPop()
	if err != nil {
		return err
	}
	ctx.StackPush(forthic.FormatValue(v))
	return nil
}

// stringOperand coerces a value to a string operand, rendering
// non-strings the way >STR does.
func stringOperand(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return forthic.FormatValue(v)
}

func unaryStringWord(op func(s string) string) forthic.NativeFunc {
	return func(ctx forthic.Context) error {
		v, err := ctx.StackPop()
		if err != nil {
			return err
		}
		ctx.StackPush(op(stringOperand(v)))
		return nil
	}
}

var (
	wordURLEncode = unaryStringWord(url.QueryEscape)
	wordLowercase = unaryStringWord(strings.ToLower)
	wordUppercase = unaryStringWord(strings.ToUpper)
	wordStrip     = unaryStringWord(strings.TrimSpace)
)

func wordURLDecode(ctx forthic.Context) error {
	v, err := ctx.StackPop()
	if err != nil {
		return err
	}
	decoded, err := url.QueryUnescape(stringOperand(v))
	if err != nil {
		ctx.StackPush(nil)
		return nil
	}
	ctx.StackPush(decoded)
	return nil
}

// wordASCII strips runes outside the Latin-1 range.
func wordASCII(ctx forthic.Context) error {
	v, err := ctx.StackPop()
	if err != nil {
		return err
	}
	var b strings.Builder
	for _, r := range stringOperand(v) {
		if r < 256 {
			b.WriteRune(r)
		}
	}
	ctx.StackPush(b.String())
	return nil
}

func wordSplit(ctx forthic.Context) error {
	sepVal, err := ctx.StackPop()
	if err != nil {
		return err
	}
	sVal, err := ctx.StackPop()
	if err != nil {
		return err
	}
	sep, ok := sepVal.(string)
	if !ok {
		ctx.StackPush(sVal)
		return nil
	}
	parts := strings.Split(stringOperand(sVal), sep)
	result := make([]interface{}, len(parts))
	for i, p := range parts {
		result[i] = p
	}
	ctx.StackPush(result)
	return nil
}

// wordJoin joins the string elements of an array, skipping anything
// that is not a string.
func wordJoin(ctx forthic.Context) error {
	sepVal, err := ctx.StackPop()
	if err != nil {
		return err
	}
	arrVal, err := ctx.StackPop()
	if err != nil {
		return err
	}
	sep, _ := sepVal.(string)
	arr, ok := arrVal.([]interface{})
	if !ok {
		ctx.StackPush("")
		return nil
	}
	var parts []string
	for _, v := range arr {
		if s, ok := v.(string); ok {
			parts = append(parts, s)
		}
	}
	ctx.StackPush(strings.Join(parts, sep))
	return nil
}

// wordConcat concatenates arrays or strings. Two arrays (or null and
// an array) on the stack concatenate as arrays; a single array joins
// its elements as strings; anything else concatenates two values as
// strings. Registered by both the array and string modules.
func wordConcat(ctx forthic.Context) error {
	top, err := ctx.StackPop()
	if err != nil {
		return err
	}
	if r, ok := top.([]interface{}); ok {
		if prev, perr := ctx.StackPeek(); perr == nil {
			if l, ok := prev.([]interface{}); ok {
				ctx.StackPop()
				ctx.StackPush(append(append([]interface{}{}, l...), r...))
				return nil
			}
			if prev == nil {
				ctx.StackPop()
				ctx.StackPush(r)
				return nil
			}
		}
		var b strings.Builder
		for _, v := range r {
			b.WriteString(stringOperand(v))
		}
		ctx.StackPush(b.String())
		return nil
	}
	other, err := ctx.StackPop()
	if err != nil {
		return err
	}
	if l, ok := other.([]interface{}); ok && top == nil {
		ctx.StackPush(l)
		return nil
	}
	ctx.StackPush(stringOperand(other) + stringOperand(top))
	return nil
}

func wordReplace(ctx forthic.Context) error {
	replVal, err := ctx.StackPop()
	if err != nil {
		return err
	}
	textVal, err := ctx.StackPop()
	if err != nil {
		return err
	}
	sVal, err := ctx.StackPop()
	if err != nil {
		return err
	}
	s := stringOperand(sVal)
	text, tok := textVal.(string)
	repl, rok := replVal.(string)
	if !tok || !rok {
		ctx.StackPush(s)
		return nil
	}
	ctx.StackPush(strings.ReplaceAll(s, text, repl))
	return nil
}
