package stdlib

import (
	"math"
	"strconv"
	"strings"

	forthic "github.com/forthix/forthic-go"
)

// NewMathModule creates the math module: arithmetic, aggregates, and
// numeric conversions. Results that come out whole are narrowed back
// to int.
func NewMathModule() *forthic.Module {
	m := forthic.NewModule("math")
	registerWords(m, []wordEntry{
		{"+", wordAdd},
		{"-", wordSubtract},
		{"*", wordMultiply},
		{"/", wordDivide},
		{"MOD", wordMod},
		{"SUM", wordSum},
		{"MAX", wordMax},
		{"MIN", wordMin},
		{"MEAN", wordMean},
		{">INT", wordToInt},
		{">FLOAT", wordToFloat},
		{"ROUND", wordRound},
		{"ABS", wordAbs},
		{"FLOOR", wordFloor},
		{"CEIL", wordCeil},
	})
	return m
}

func binaryMathWord(op func(a, b float64) (float64, bool)) forthic.NativeFunc {
	return func(ctx forthic.Context) error {
		bVal, err := ctx.StackPop()
		if err != nil {
			return err
		}
		aVal, err := ctx.StackPop()
		if err != nil {
			return err
		}
		a, aok := asFloat(aVal)
		b, bok := asFloat(bVal)
		if !aok || !bok {
			ctx.StackPush(nil)
			return nil
		}
		result, ok := op(a, b)
		if !ok {
			ctx.StackPush(nil)
			return nil
		}
		ctx.StackPush(numberToValue(result))
		return nil
	}
}

var (
	wordAdd      = binaryMathWord(func(a, b float64) (float64, bool) { return a + b, true })
	wordSubtract = binaryMathWord(func(a, b float64) (float64, bool) { return a - b, true })
	wordMultiply = binaryMathWord(func(a, b float64) (float64, bool) { return a * b, true })

	wordDivide = binaryMathWord(func(a, b float64) (float64, bool) {
		if b == 0 {
			return 0, false
		}
		return a / b, true
	})

	wordMod = binaryMathWord(func(a, b float64) (float64, bool) {
		if b == 0 {
			return 0, false
		}
		return math.Mod(a, b), true
	})
)

// numericItems extracts the numeric elements of an array.
func numericItems(v interface{}) []float64 {
	arr, ok := v.([]interface{})
	if !ok {
		return nil
	}
	var nums []float64
	for _, item := range arr {
		if f, ok := asFloat(item); ok {
			nums = append(nums, f)
		}
	}
	return nums
}

func wordSum(ctx forthic.Context) error {
	v, err := ctx.StackPop()
	if err != nil {
		return err
	}
	sum := 0.0
	for _, f := range numericItems(v) {
		sum += f
	}
	ctx.StackPush(numberToValue(sum))
	return nil
}

func wordMax(ctx forthic.Context) error {
	v, err := ctx.StackPop()
	if err != nil {
		return err
	}
	nums := numericItems(v)
	if len(nums) == 0 {
		ctx.StackPush(nil)
		return nil
	}
	max := nums[0]
	for _, f := range nums[1:] {
		if f > max {
			max = f
		}
	}
	ctx.StackPush(numberToValue(max))
	return nil
}

func wordMin(ctx forthic.Context) error {
	v, err := ctx.StackPop()
	if err != nil {
		return err
	}
	nums := numericItems(v)
	if len(nums) == 0 {
		ctx.StackPush(nil)
		return nil
	}
	min := nums[0]
	for _, f := range nums[1:] {
		if f < min {
			min = f
		}
	}
	ctx.StackPush(numberToValue(min))
	return nil
}

func wordMean(ctx forthic.Context) error {
	v, err := ctx.StackPop()
	if err != nil {
		return err
	}
	nums := numericItems(v)
	if len(nums) == 0 {
		ctx.StackPush(0)
		return nil
	}
	sum := 0.0
	for _, f := range nums {
		sum += f
	}
	ctx.StackPush(numberToValue(sum / float64(len(nums))))
	return nil
}

func wordToInt(ctx forthic.Context) error {
	v, err := ctx.StackPop()
	if err != nil {
		return err
	}
	switch val := v.(type) {
	case int:
		ctx.StackPush(val)
	case float64:
		ctx.StackPush(int(val))
	case bool:
		if val {
			ctx.StackPush(1)
		} else {
			ctx.StackPush(0)
		}
	case string:
		s := strings.TrimSpace(val)
		if n, err := strconv.Atoi(s); err == nil {
			ctx.StackPush(n)
		} else if f, err := strconv.ParseFloat(s, 64); err == nil {
			ctx.StackPush(int(f))
		} else {
			ctx.StackPush(nil)
		}
	default:
		ctx.StackPush(nil)
	}
	return nil
}

func wordToFloat(ctx forthic.Context) error {
	v, err := ctx.StackPop()
	if err != nil {
		return err
	}
	switch val := v.(type) {
	case int:
		ctx.StackPush(float64(val))
	case float64:
		ctx.StackPush(val)
	case bool:
		if val {
			ctx.StackPush(1.0)
		} else {
			ctx.StackPush(0.0)
		}
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(val), 64); err == nil {
			ctx.StackPush(f)
		} else {
			ctx.StackPush(nil)
		}
	default:
		ctx.StackPush(nil)
	}
	return nil
}

func unaryMathWord(op func(f float64) float64) forthic.NativeFunc {
	return func(ctx forthic.Context) error {
		v, err := ctx.StackPop()
		if err != nil {
			return err
		}
		f, ok := asFloat(v)
		if !ok {
			ctx.StackPush(nil)
			return nil
		}
		ctx.StackPush(numberToValue(op(f)))
		return nil
	}
}

var (
	wordRound = unaryMathWord(math.Round)
	wordAbs   = unaryMathWord(math.Abs)
	wordFloor = unaryMathWord(math.Floor)
	wordCeil  = unaryMathWord(math.Ceil)
)
