package stdlib

import (
	forthic "github.com/forthix/forthic-go"
)

// NewBooleanModule creates the boolean module: comparisons, logical
// connectives, and membership tests.
func NewBooleanModule() *forthic.Module {
	m := forthic.NewModule("boolean")
	registerWords(m, []wordEntry{
		{"==", wordEqual},
		{"!=", wordNotEqual},
		{"<", wordLess},
		{"<=", wordLessEqual},
		{">", wordGreater},
		{">=", wordGreaterEqual},
		{"OR", wordOr},
		{"AND", wordAnd},
		{"NOT", wordNot},
		{"XOR", wordXor},
		{"NAND", wordNand},
		{"IN", wordIn},
		{"ANY", wordAny},
		{"ALL", wordAll},
		{">BOOL", wordToBool},
	})
	return m
}

func wordEqual(ctx forthic.Context) error {
	b, err := ctx.StackPop()
	if err != nil {
		return err
	}
	a, err := ctx.StackPop()
	if err != nil {
		return err
	}
	ctx.StackPush(valuesEqual(a, b))
	return nil
}

func wordNotEqual(ctx forthic.Context) error {
	b, err := ctx.StackPop()
	if err != nil {
		return err
	}
	a, err := ctx.StackPop()
	if err != nil {
		return err
	}
	ctx.StackPush(!valuesEqual(a, b))
	return nil
}

// compareValues orders two values. Numbers compare numerically across
// int and float, strings lexically. Anything else is unordered.
func compareValues(a, b interface{}) (int, bool) {
	if fa, ok := asFloat(a); ok {
		fb, ok := asFloat(b)
		if !ok {
			return 0, false
		}
		switch {
		case fa < fb:
			return -1, true
		case fa > fb:
			return 1, true
		}
		return 0, true
	}
	if sa, ok := a.(string); ok {
		sb, ok := b.(string)
		if !ok {
			return 0, false
		}
		switch {
		case sa < sb:
			return -1, true
		case sa > sb:
			return 1, true
		}
		return 0, true
	}
	return 0, false
}

func comparisonWord(accept func(c int) bool) forthic.NativeFunc {
	return func(ctx forthic.Context) error {
		b, err := ctx.StackPop()
		if err != nil {
			return err
		}
		a, err := ctx.StackPop()
		if err != nil {
			return err
		}
		c, ok := compareValues(a, b)
		ctx.StackPush(ok && accept(c))
		return nil
	}
}

var (
	wordLess         = comparisonWord(func(c int) bool { return c < 0 })
	wordLessEqual    = comparisonWord(func(c int) bool { return c <= 0 })
	wordGreater      = comparisonWord(func(c int) bool { return c > 0 })
	wordGreaterEqual = comparisonWord(func(c int) bool { return c >= 0 })
)

// wordOr takes either an array of values or two values.
func wordOr(ctx forthic.Context) error {
	top, err := ctx.StackPop()
	if err != nil {
		return err
	}
	if arr, ok := top.([]interface{}); ok {
		result := false
		for _, v := range arr {
			if isTruthy(v) {
				result = true
				break
			}
		}
		ctx.StackPush(result)
		return nil
	}
	other, err := ctx.StackPop()
	if err != nil {
		return err
	}
	ctx.StackPush(isTruthy(other) || isTruthy(top))
	return nil
}

// wordAnd takes either an array of values or two values.
func wordAnd(ctx forthic.Context) error {
	top, err := ctx.StackPop()
	if err != nil {
		return err
	}
	if arr, ok := top.([]interface{}); ok {
		result := true
		for _, v := range arr {
			if !isTruthy(v) {
				result = false
				break
			}
		}
		ctx.StackPush(result)
		return nil
	}
	other, err := ctx.StackPop()
	if err != nil {
		return err
	}
	ctx.StackPush(isTruthy(other) && isTruthy(top))
	return nil
}

func wordNot(ctx forthic.Context) error {
	v, err := ctx.StackPop()
	if err != nil {
		return err
	}
	ctx.StackPush(!isTruthy(v))
	return nil
}

func wordXor(ctx forthic.Context) error {
	b, err := ctx.StackPop()
	if err != nil {
		return err
	}
	a, err := ctx.StackPop()
	if err != nil {
		return err
	}
	ctx.StackPush(isTruthy(a) != isTruthy(b))
	return nil
}

func wordNand(ctx forthic.Context) error {
	b, err := ctx.StackPop()
	if err != nil {
		return err
	}
	a, err := ctx.StackPop()
	if err != nil {
		return err
	}
	ctx.StackPush(!(isTruthy(a) && isTruthy(b)))
	return nil
}

func wordIn(ctx forthic.Context) error {
	container, err := ctx.StackPop()
	if err != nil {
		return err
	}
	item, err := ctx.StackPop()
	if err != nil {
		return err
	}
	arr, ok := container.([]interface{})
	if !ok {
		ctx.StackPush(false)
		return nil
	}
	key := valueToKey(item)
	found := false
	for _, v := range arr {
		if valueToKey(v) == key {
			found = true
			break
		}
	}
	ctx.StackPush(found)
	return nil
}

// wordAny pushes true if any required item appears in the values
// array. An empty required array is vacuously satisfied.
func wordAny(ctx forthic.Context) error {
	requiredVal, err := ctx.StackPop()
	if err != nil {
		return err
	}
	valuesVal, err := ctx.StackPop()
	if err != nil {
		return err
	}
	required, rok := requiredVal.([]interface{})
	values, vok := valuesVal.([]interface{})
	if !rok || !vok {
		ctx.StackPush(false)
		return nil
	}
	if len(required) == 0 {
		ctx.StackPush(true)
		return nil
	}
	keys := map[string]bool{}
	for _, v := range values {
		keys[valueToKey(v)] = true
	}
	result := false
	for _, r := range required {
		if keys[valueToKey(r)] {
			result = true
			break
		}
	}
	ctx.StackPush(result)
	return nil
}

// wordAll pushes true if every required item appears in the values
// array.
func wordAll(ctx forthic.Context) error {
	requiredVal, err := ctx.StackPop()
	if err != nil {
		return err
	}
	valuesVal, err := ctx.StackPop()
	if err != nil {
		return err
	}
	required, rok := requiredVal.([]interface{})
	values, vok := valuesVal.([]interface{})
	if !rok || !vok {
		ctx.StackPush(false)
		return nil
	}
	keys := map[string]bool{}
	for _, v := range values {
		keys[valueToKey(v)] = true
	}
	result := true
	for _, r := range required {
		if !keys[valueToKey(r)] {
			result = false
			break
		}
	}
	ctx.StackPush(result)
	return nil
}

func wordToBool(ctx forthic.Context) error {
	v, err := ctx.StackPop()
	if err != nil {
		return err
	}
	ctx.StackPush(isTruthy(v))
	return nil
}
