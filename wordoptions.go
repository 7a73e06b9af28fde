package forthic

import (
	"fmt"
	"sort"
	"strings"
)

// WordOptions is a container for optional word parameters, built from a
// flat array of dot-symbol keys and values:
//
//	[.depth 1] ~> FLATTEN
//
// Keys are strings with the leading dot already stripped by the
// tokenizer. Words that support options pop a *WordOptions from the
// stack and read what they understand.
type WordOptions struct {
	options map[string]interface{}
}

// NewWordOptions creates an empty WordOptions.
func NewWordOptions() *WordOptions {
	return &WordOptions{options: map[string]interface{}{}}
}

// WordOptionsFromFlatArray builds WordOptions from alternating keys and
// values. The array must have even length and every key must be a
// string.
func WordOptionsFromFlatArray(flat []interface{}) (*WordOptions, error) {
	if len(flat)%2 != 0 {
		return nil, fmt.Errorf("Options must be key-value pairs (even length). Got %d elements", len(flat))
	}
	opts := NewWordOptions()
	for i := 0; i < len(flat); i += 2 {
		key, ok := flat[i].(string)
		if !ok {
			return nil, fmt.Errorf("Option key must be a string (dot-symbol). Got: %v", flat[i])
		}
		opts.options[key] = flat[i+1]
	}
	return opts, nil
}

// Get returns the value for key, with ok reporting whether it exists.
func (o *WordOptions) Get(key string) (interface{}, bool) {
	v, ok := o.options[key]
	return v, ok
}

// GetOr returns the value for key, or def if the key is absent.
func (o *WordOptions) GetOr(key string, def interface{}) interface{} {
	if v, ok := o.options[key]; ok {
		return v
	}
	return def
}

// Has reports whether key is set.
func (o *WordOptions) Has(key string) bool {
	_, ok := o.options[key]
	return ok
}

// GetInt returns the int value for key, with ok false if the key is
// absent or the value has another type.
func (o *WordOptions) GetInt(key string) (int, bool) {
	v, ok := o.options[key].(int)
	return v, ok
}

// GetFloat returns the float64 value for key.
func (o *WordOptions) GetFloat(key string) (float64, bool) {
	v, ok := o.options[key].(float64)
	return v, ok
}

// GetBool returns the bool value for key.
func (o *WordOptions) GetBool(key string) (bool, bool) {
	v, ok := o.options[key].(bool)
	return v, ok
}

// GetString returns the string value for key.
func (o *WordOptions) GetString(key string) (string, bool) {
	v, ok := o.options[key].(string)
	return v, ok
}

// Keys returns the option keys in unspecified order.
func (o *WordOptions) Keys() []string {
	keys := make([]string, 0, len(o.options))
	for k := range o.options {
		keys = append(keys, k)
	}
	return keys
}

// Len returns the number of options.
func (o *WordOptions) Len() int {
	return len(o.options)
}

// IsEmpty reports whether there are no options.
func (o *WordOptions) IsEmpty() bool {
	return len(o.options) == 0
}

// Map returns the underlying option map.
func (o *WordOptions) Map() map[string]interface{} {
	return o.options
}

func (o *WordOptions) String() string {
	pairs := make([]string, 0, len(o.options))
	for k, v := range o.options {
		pairs = append(pairs, "."+k+" "+FormatValue(v))
	}
	sort.Strings(pairs)
	return "<WordOptions: " + strings.Join(pairs, " ") + ">"
}
