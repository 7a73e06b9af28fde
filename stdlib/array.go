package stdlib

import (
	"sort"

	forthic "github.com/forthix/forthic-go"
)

// NewArrayModule creates the array module: access, transform, combine,
// set, and utility operations over arrays and records.
func NewArrayModule() *forthic.Module {
	m := forthic.NewModule("array")
	registerWords(m, []wordEntry{
		{"LENGTH", wordLength},
		{"NTH", wordNth},
		{"LAST", wordLast},
		{"SLICE", wordSlice},
		{"TAKE", wordTake},
		{"DROP", wordDrop},
		{"REVERSE", wordReverse},
		{"APPEND", wordAppend},
		{"CONCAT", wordConcat},
		{"ZIP", wordZip},
		{"UNIQUE", wordUnique},
		{"DIFFERENCE", wordDifference},
		{"INTERSECTION", wordIntersection},
		{"UNION", wordUnion},
		{"FLATTEN", wordFlatten},
		{"RANGE", wordRange},
		{"UNPACK", wordUnpack},
	})
	return m
}

// sortedKeys returns a record's keys in sorted order, the order used
// whenever a record is treated positionally.
func sortedKeys(rec map[string]interface{}) []string {
	keys := make([]string, 0, len(rec))
	for k := range rec {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func wordLength(ctx forthic.Context) error {
	v, err := ctx.StackPop()
	if err != nil {
		return err
	}
	length := 0
	switch val := v.(type) {
	case []interface{}:
		length = len(val)
	case map[string]interface{}:
		length = len(val)
	case string:
		length = len(val)
	}
	ctx.StackPush(length)
	return nil
}

func wordNth(ctx forthic.Context) error {
	nVal, err := ctx.StackPop()
	if err != nil {
		return err
	}
	container, err := ctx.StackPop()
	if err != nil {
		return err
	}
	n, ok := nVal.(int)
	if !ok {
		ctx.StackPush(nil)
		return nil
	}
	switch c := container.(type) {
	case []interface{}:
		if n < 0 || n >= len(c) {
			ctx.StackPush(nil)
		} else {
			ctx.StackPush(c[n])
		}
	case map[string]interface{}:
		keys := sortedKeys(c)
		if n < 0 || n >= len(keys) {
			ctx.StackPush(nil)
		} else {
			ctx.StackPush(c[keys[n]])
		}
	default:
		ctx.StackPush(nil)
	}
	return nil
}

func wordLast(ctx forthic.Context) error {
	container, err := ctx.StackPop()
	if err != nil {
		return err
	}
	switch c := container.(type) {
	case []interface{}:
		if len(c) == 0 {
			ctx.StackPush(nil)
		} else {
			ctx.StackPush(c[len(c)-1])
		}
	case map[string]interface{}:
		keys := sortedKeys(c)
		if len(keys) == 0 {
			ctx.StackPush(nil)
		} else {
			ctx.StackPush(c[keys[len(keys)-1]])
		}
	default:
		ctx.StackPush(nil)
	}
	return nil
}

// wordSlice implements SLICE with Python-style negative indices. A
// start past either end yields an empty array; a start greater than
// the end walks backwards; positions that fall outside the array
// contribute nulls.
func wordSlice(ctx forthic.Context) error {
	endVal, err := ctx.StackPop()
	if err != nil {
		return err
	}
	startVal, err := ctx.StackPop()
	if err != nil {
		return err
	}
	container, err := ctx.StackPop()
	if err != nil {
		return err
	}

	start, _ := asInt(startVal)
	end, _ := asInt(endVal)

	switch c := container.(type) {
	case []interface{}:
		length := len(c)
		if start < 0 {
			start += length
		}
		if end < 0 {
			end += length
		}
		if start < 0 || start >= length {
			ctx.StackPush([]interface{}{})
			return nil
		}
		step := 1
		if start > end {
			step = -1
		}
		result := []interface{}{}
		for i := start; ; i += step {
			if i < 0 || i >= length {
				result = append(result, nil)
			} else {
				result = append(result, c[i])
			}
			if i == end {
				break
			}
		}
		ctx.StackPush(result)
	case nil:
		ctx.StackPush([]interface{}{})
	default:
		ctx.StackPush(container)
	}
	return nil
}

func wordTake(ctx forthic.Context) error {
	nVal, err := ctx.StackPop()
	if err != nil {
		return err
	}
	container, err := ctx.StackPop()
	if err != nil {
		return err
	}
	n, _ := asInt(nVal)
	if n < 0 {
		n = 0
	}
	switch c := container.(type) {
	case []interface{}:
		if n > len(c) {
			n = len(c)
		}
		ctx.StackPush(append([]interface{}{}, c[:n]...))
	case nil:
		ctx.StackPush([]interface{}{})
	default:
		ctx.StackPush(container)
	}
	return nil
}

func wordDrop(ctx forthic.Context) error {
	nVal, err := ctx.StackPop()
	if err != nil {
		return err
	}
	container, err := ctx.StackPop()
	if err != nil {
		return err
	}
	n, _ := asInt(nVal)
	if n < 0 {
		n = 0
	}
	switch c := container.(type) {
	case []interface{}:
		if n > len(c) {
			n = len(c)
		}
		ctx.StackPush(append([]interface{}{}, c[n:]...))
	case nil:
		ctx.StackPush([]interface{}{})
	default:
		ctx.StackPush(container)
	}
	return nil
}

func wordReverse(ctx forthic.Context) error {
	container, err := ctx.StackPop()
	if err != nil {
		return err
	}
	arr, ok := container.([]interface{})
	if !ok {
		ctx.StackPush(container)
		return nil
	}
	result := make([]interface{}, len(arr))
	for i, v := range arr {
		result[len(arr)-1-i] = v
	}
	ctx.StackPush(result)
	return nil
}

func wordAppend(ctx forthic.Context) error {
	item, err := ctx.StackPop()
	if err != nil {
		return err
	}
	container, err := ctx.StackPop()
	if err != nil {
		return err
	}
	switch c := container.(type) {
	case []interface{}:
		result := make([]interface{}, 0, len(c)+1)
		result = append(result, c...)
		ctx.StackPush(append(result, item))
	case map[string]interface{}:
		// The item is a [key, value] pair.
		if kv, ok := item.([]interface{}); ok && len(kv) >= 2 {
			if key, ok := kv[0].(string); ok {
				result := copyRecord(c)
				result[key] = kv[1]
				ctx.StackPush(result)
				return nil
			}
		}
		ctx.StackPush(c)
	case nil:
		ctx.StackPush([]interface{}{item})
	default:
		ctx.StackPush(container)
	}
	return nil
}

func wordZip(ctx forthic.Context) error {
	right, err := ctx.StackPop()
	if err != nil {
		return err
	}
	left, err := ctx.StackPop()
	if err != nil {
		return err
	}
	l, lok := left.([]interface{})
	r, rok := right.([]interface{})
	if !lok || !rok {
		ctx.StackPush([]interface{}{})
		return nil
	}
	n := len(l)
	if len(r) < n {
		n = len(r)
	}
	result := make([]interface{}, n)
	for i := 0; i < n; i++ {
		result[i] = []interface{}{l[i], r[i]}
	}
	ctx.StackPush(result)
	return nil
}

func wordUnique(ctx forthic.Context) error {
	container, err := ctx.StackPop()
	if err != nil {
		return err
	}
	arr, ok := container.([]interface{})
	if !ok {
		ctx.StackPush(container)
		return nil
	}
	seen := map[string]bool{}
	result := []interface{}{}
	for _, item := range arr {
		key := valueToKey(item)
		if !seen[key] {
			seen[key] = true
			result = append(result, item)
		}
	}
	ctx.StackPush(result)
	return nil
}

func wordDifference(ctx forthic.Context) error {
	right, err := ctx.StackPop()
	if err != nil {
		return err
	}
	left, err := ctx.StackPop()
	if err != nil {
		return err
	}
	l, lok := left.([]interface{})
	r, rok := right.([]interface{})
	if !lok || !rok {
		ctx.StackPush([]interface{}{})
		return nil
	}
	rKeys := map[string]bool{}
	for _, item := range r {
		rKeys[valueToKey(item)] = true
	}
	result := []interface{}{}
	for _, item := range l {
		if !rKeys[valueToKey(item)] {
			result = append(result, item)
		}
	}
	ctx.StackPush(result)
	return nil
}

func wordIntersection(ctx forthic.Context) error {
	right, err := ctx.StackPop()
	if err != nil {
		return err
	}
	left, err := ctx.StackPop()
	if err != nil {
		return err
	}
	l, lok := left.([]interface{})
	r, rok := right.([]interface{})
	if !lok || !rok {
		ctx.StackPush([]interface{}{})
		return nil
	}
	rKeys := map[string]bool{}
	for _, item := range r {
		rKeys[valueToKey(item)] = true
	}
	result := []interface{}{}
	for _, item := range l {
		if rKeys[valueToKey(item)] {
			result = append(result, item)
		}
	}
	ctx.StackPush(result)
	return nil
}

func wordUnion(ctx forthic.Context) error {
	right, err := ctx.StackPop()
	if err != nil {
		return err
	}
	left, err := ctx.StackPop()
	if err != nil {
		return err
	}
	l, lok := left.([]interface{})
	r, rok := right.([]interface{})
	if !lok || !rok {
		ctx.StackPush([]interface{}{})
		return nil
	}
	seen := map[string]bool{}
	result := []interface{}{}
	for _, item := range append(append([]interface{}{}, l...), r...) {
		key := valueToKey(item)
		if !seen[key] {
			seen[key] = true
			result = append(result, item)
		}
	}
	ctx.StackPush(result)
	return nil
}

func flattenOnce(arr []interface{}, depth int) []interface{} {
	if depth <= 0 {
		return arr
	}
	result := []interface{}{}
	for _, item := range arr {
		if inner, ok := item.([]interface{}); ok {
			result = append(result, flattenOnce(inner, depth-1)...)
		} else {
			result = append(result, item)
		}
	}
	return result
}

func wordFlatten(ctx forthic.Context) error {
	container, err := ctx.StackPop()
	if err != nil {
		return err
	}
	arr, ok := container.([]interface{})
	if !ok {
		ctx.StackPush(container)
		return nil
	}
	ctx.StackPush(flattenOnce(arr, 1))
	return nil
}

// wordRange pushes the integers from start through end inclusive,
// counting down when start exceeds end.
func wordRange(ctx forthic.Context) error {
	endVal, err := ctx.StackPop()
	if err != nil {
		return err
	}
	startVal, err := ctx.StackPop()
	if err != nil {
		return err
	}
	start, _ := asInt(startVal)
	end, _ := asInt(endVal)

	result := []interface{}{}
	if start <= end {
		for i := start; i <= end; i++ {
			result = append(result, i)
		}
	} else {
		for i := start; i >= end; i-- {
			result = append(result, i)
		}
	}
	ctx.StackPush(result)
	return nil
}

func wordUnpack(ctx forthic.Context) error {
	container, err := ctx.StackPop()
	if err != nil {
		return err
	}
	arr, ok := container.([]interface{})
	if !ok {
		ctx.StackPush(container)
		return nil
	}
	for _, item := range arr {
		ctx.StackPush(item)
	}
	return nil
}
