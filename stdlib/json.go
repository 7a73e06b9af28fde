package stdlib

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	forthic "github.com/forthix/forthic-go"
)

// NewJSONModule creates the json module.
func NewJSONModule() *forthic.Module {
	m := forthic.NewModule("json")
	registerWords(m, []wordEntry{
		{">JSON", wordToJSON},
		{"JSON>", wordFromJSON},
		{"JSON-PRETTIFY", wordJSONPrettify},
	})
	return m
}

// marshalReady converts a value tree into plain JSON-friendly values.
// Dates render as "YYYY-MM-DD", times of day as "HH:MM:SS", and full
// datetimes in RFC 3339.
func marshalReady(v interface{}) interface{} {
	switch val := v.(type) {
	case forthic.Date:
		return val.String()
	case forthic.TimeOfDay:
		return val.String()
	case time.Time:
		return val.Format(time.RFC3339)
	case []interface{}:
		result := make([]interface{}, len(val))
		for i, item := range val {
			result[i] = marshalReady(item)
		}
		return result
	case map[string]interface{}:
		result := make(map[string]interface{}, len(val))
		for k, item := range val {
			result[k] = marshalReady(item)
		}
		return result
	}
	return v
}

// normalizeNumbers rewrites json.Number values as int where they are
// whole and float64 otherwise.
func normalizeNumbers(v interface{}) interface{} {
	switch val := v.(type) {
	case json.Number:
		if n, err := val.Int64(); err == nil {
			return int(n)
		}
		f, _ := val.Float64()
		return f
	case []interface{}:
		for i, item := range val {
			val[i] = normalizeNumbers(item)
		}
		return val
	case map[string]interface{}:
		for k, item := range val {
			val[k] = normalizeNumbers(item)
		}
		return val
	}
	return v
}

func wordToJSON(ctx forthic.Context) error {
	v, err := ctx.StackPop()
	if err != nil {
		return err
	}
	data, err := json.Marshal(marshalReady(v))
	if err != nil {
		ctx.StackPush(nil)
		return nil
	}
	ctx.StackPush(string(data))
	return nil
}

func wordFromJSON(ctx forthic.Context) error {
	v, err := ctx.StackPop()
	if err != nil {
		return err
	}
	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" {
		ctx.StackPush(nil)
		return nil
	}
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()
	var parsed interface{}
	if err := dec.Decode(&parsed); err != nil {
		ctx.StackPush(nil)
		return nil
	}
	ctx.StackPush(normalizeNumbers(parsed))
	return nil
}

func wordJSONPrettify(ctx forthic.Context) error {
	v, err := ctx.StackPop()
	if err != nil {
		return err
	}
	s, ok := v.(string)
	if !ok {
		ctx.StackPush(nil)
		return nil
	}
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, []byte(s), "", "  "); err != nil {
		ctx.StackPush(nil)
		return nil
	}
	ctx.StackPush(pretty.String())
	return nil
}
