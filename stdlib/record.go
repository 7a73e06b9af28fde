package stdlib

import (
	forthic "github.com/forthix/forthic-go"
)

// NewRecordModule creates the record module: construction, field
// access with path drilling, and key manipulation.
func NewRecordModule() *forthic.Module {
	m := forthic.NewModule("record")
	registerWords(m, []wordEntry{
		{"REC", wordRec},
		{"REC@", wordRecAt},
		{"<REC!", wordRecStore},
		{"RELABEL", wordRelabel},
		{"INVERT-KEYS", wordInvertKeys},
		{"REC-DEFAULTS", wordRecDefaults},
		{"<DEL", wordDel},
		{"KEYS", wordKeys},
		{"VALUES", wordValues},
	})
	return m
}

// wordRec builds a record from an array of [key, value] pairs.
func wordRec(ctx forthic.Context) error {
	v, err := ctx.StackPop()
	if err != nil {
		return err
	}
	rec := map[string]interface{}{}
	pairs, ok := v.([]interface{})
	if !ok {
		ctx.StackPush(rec)
		return nil
	}
	for _, p := range pairs {
		pair, ok := p.([]interface{})
		if !ok || len(pair) < 2 {
			continue
		}
		key, ok := pair[0].(string)
		if !ok {
			continue
		}
		rec[key] = pair[1]
	}
	ctx.StackPush(rec)
	return nil
}

// fieldPath normalizes a field selector to a path. A string is a
// single-element path; an array is used as-is.
func fieldPath(field interface{}) []interface{} {
	if path, ok := field.([]interface{}); ok {
		return path
	}
	return []interface{}{field}
}

// drill follows a path through nested records and arrays, returning
// nil at the first step that does not resolve.
func drill(container interface{}, path []interface{}) interface{} {
	cur := container
	for _, step := range path {
		switch c := cur.(type) {
		case map[string]interface{}:
			key, ok := step.(string)
			if !ok {
				return nil
			}
			cur = c[key]
		case []interface{}:
			idx, ok := asInt(step)
			if !ok || idx < 0 || idx >= len(c) {
				return nil
			}
			cur = c[idx]
		default:
			return nil
		}
	}
	return cur
}

// wordRecAt fetches a field from a record, drilling through a path
// given as an array of keys and indices.
func wordRecAt(ctx forthic.Context) error {
	field, err := ctx.StackPop()
	if err != nil {
		return err
	}
	container, err := ctx.StackPop()
	if err != nil {
		return err
	}
	ctx.StackPush(drill(container, fieldPath(field)))
	return nil
}

// wordRecStore sets a field in a record, creating intermediate
// records along the path as needed. The record and every record along
// the path are copied before the write.
func wordRecStore(ctx forthic.Context) error {
	field, err := ctx.StackPop()
	if err != nil {
		return err
	}
	value, err := ctx.StackPop()
	if err != nil {
		return err
	}
	container, err := ctx.StackPop()
	if err != nil {
		return err
	}
	rec, ok := container.(map[string]interface{})
	if !ok {
		rec = map[string]interface{}{}
	} else {
		rec = copyRecord(rec)
	}
	path := fieldPath(field)
	if len(path) == 0 {
		ctx.StackPush(rec)
		return nil
	}
	cur := rec
	for _, step := range path[:len(path)-1] {
		key, ok := step.(string)
		if !ok {
			ctx.StackPush(rec)
			return nil
		}
		next, ok := cur[key].(map[string]interface{})
		if ok {
			next = copyRecord(next)
		} else {
			next = map[string]interface{}{}
		}
		cur[key] = next
		cur = next
	}
	if key, ok := path[len(path)-1].(string); ok {
		cur[key] = value
	}
	ctx.StackPush(rec)
	return nil
}

// wordRelabel maps old keys to new keys in a record, or old indices
// to new indices in an array.
func wordRelabel(ctx forthic.Context) error {
	newKeysVal, err := ctx.StackPop()
	if err != nil {
		return err
	}
	oldKeysVal, err := ctx.StackPop()
	if err != nil {
		return err
	}
	container, err := ctx.StackPop()
	if err != nil {
		return err
	}
	newKeys, nok := newKeysVal.([]interface{})
	oldKeys, ook := oldKeysVal.([]interface{})
	if !nok || !ook || len(newKeys) != len(oldKeys) {
		ctx.StackPush(container)
		return nil
	}
	switch c := container.(type) {
	case map[string]interface{}:
		result := map[string]interface{}{}
		for i, old := range oldKeys {
			oldKey, ook := old.(string)
			newKey, nok := newKeys[i].(string)
			if !ook || !nok {
				continue
			}
			if v, ok := c[oldKey]; ok {
				result[newKey] = v
			}
		}
		ctx.StackPush(result)
	case []interface{}:
		type move struct {
			newIdx int
			value  interface{}
		}
		var moves []move
		for i, old := range oldKeys {
			oldIdx, ook := asInt(old)
			newIdx, nok := asInt(newKeys[i])
			if !ook || !nok || oldIdx < 0 || oldIdx >= len(c) {
				continue
			}
			moves = append(moves, move{newIdx, c[oldIdx]})
		}
		for i := 0; i < len(moves); i++ {
			for j := i + 1; j < len(moves); j++ {
				if moves[j].newIdx < moves[i].newIdx {
					moves[i], moves[j] = moves[j], moves[i]
				}
			}
		}
		result := make([]interface{}, 0, len(moves))
		for _, mv := range moves {
			result = append(result, mv.value)
		}
		ctx.StackPush(result)
	default:
		ctx.StackPush(container)
	}
	return nil
}

// wordInvertKeys swaps the outer and inner keys of a record of
// records.
func wordInvertKeys(ctx forthic.Context) error {
	v, err := ctx.StackPop()
	if err != nil {
		return err
	}
	rec, ok := v.(map[string]interface{})
	if !ok {
		ctx.StackPush(map[string]interface{}{})
		return nil
	}
	result := map[string]interface{}{}
	for outer, innerVal := range rec {
		inner, ok := innerVal.(map[string]interface{})
		if !ok {
			continue
		}
		for innerKey, value := range inner {
			slot, ok := result[innerKey].(map[string]interface{})
			if !ok {
				slot = map[string]interface{}{}
				result[innerKey] = slot
			}
			slot[outer] = value
		}
	}
	ctx.StackPush(result)
	return nil
}

// wordRecDefaults fills missing or null fields from a defaults
// record.
func wordRecDefaults(ctx forthic.Context) error {
	defaultsVal, err := ctx.StackPop()
	if err != nil {
		return err
	}
	recVal, err := ctx.StackPop()
	if err != nil {
		return err
	}
	rec, ok := recVal.(map[string]interface{})
	if !ok {
		rec = map[string]interface{}{}
	} else {
		rec = copyRecord(rec)
	}
	defaults, ok := defaultsVal.(map[string]interface{})
	if !ok {
		ctx.StackPush(rec)
		return nil
	}
	for k, v := range defaults {
		if cur, ok := rec[k]; !ok || cur == nil {
			rec[k] = v
		}
	}
	ctx.StackPush(rec)
	return nil
}

// wordDel removes a key from a record or an index from an array.
func wordDel(ctx forthic.Context) error {
	keyVal, err := ctx.StackPop()
	if err != nil {
		return err
	}
	container, err := ctx.StackPop()
	if err != nil {
		return err
	}
	switch c := container.(type) {
	case map[string]interface{}:
		key, ok := keyVal.(string)
		if !ok {
			ctx.StackPush(c)
			return nil
		}
		result := copyRecord(c)
		delete(result, key)
		ctx.StackPush(result)
	case []interface{}:
		idx, ok := asInt(keyVal)
		if !ok || idx < 0 || idx >= len(c) {
			ctx.StackPush(c)
			return nil
		}
		result := append([]interface{}{}, c[:idx]...)
		result = append(result, c[idx+1:]...)
		ctx.StackPush(result)
	default:
		ctx.StackPush(container)
	}
	return nil
}

// wordKeys pushes a record's keys in sorted order, or an array's
// indices.
func wordKeys(ctx forthic.Context) error {
	v, err := ctx.StackPop()
	if err != nil {
		return err
	}
	switch c := v.(type) {
	case map[string]interface{}:
		keys := sortedKeys(c)
		result := make([]interface{}, len(keys))
		for i, k := range keys {
			result[i] = k
		}
		ctx.StackPush(result)
	case []interface{}:
		result := make([]interface{}, len(c))
		for i := range c {
			result[i] = i
		}
		ctx.StackPush(result)
	default:
		ctx.StackPush([]interface{}{})
	}
	return nil
}

// wordValues pushes a record's values in sorted key order; an array
// passes through unchanged.
func wordValues(ctx forthic.Context) error {
	v, err := ctx.StackPop()
	if err != nil {
		return err
	}
	switch c := v.(type) {
	case map[string]interface{}:
		keys := sortedKeys(c)
		result := make([]interface{}, len(keys))
		for i, k := range keys {
			result[i] = c[k]
		}
		ctx.StackPush(result)
	case []interface{}:
		ctx.StackPush(c)
	default:
		ctx.StackPush([]interface{}{})
	}
	return nil
}
