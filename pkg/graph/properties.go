package graph

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Well-known property keys read by the store.
const (
	PropID     = "id"
	PropSource = "source"
	PropTarget = "target"
)

// Properties is an insertion-ordered mapping of string keys to arbitrary values.
// The zero value is an empty map ready to use.
type Properties struct {
	m *orderedmap.OrderedMap[string, any]
}

// NewProperties builds Properties from alternating key/value arguments.
// Non-string keys are formatted with fmt.Sprint; a trailing key without a
// value is ignored.
func NewProperties(kv ...any) *Properties {
	p := &Properties{m: orderedmap.New[string, any]()}
	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			key = fmt.Sprint(kv[i])
		}
		p.m.Set(key, kv[i+1])
	}
	return p
}

func (p *Properties) init() {
	if p.m == nil {
		p.m = orderedmap.New[string, any]()
	}
}

// Get returns the raw value stored under key.
func (p *Properties) Get(key string) (any, bool) {
	if p == nil || p.m == nil {
		return nil, false
	}
	return p.m.Get(key)
}

// String returns the value under key formatted as a string, or "" when absent.
// Whole floats (as produced by JSON decoding) are formatted without a fraction.
func (p *Properties) String(key string) string {
	v, ok := p.Get(key)
	if !ok || v == nil {
		return ""
	}
	return FormatValue(v)
}

// Has reports whether key is present.
func (p *Properties) Has(key string) bool {
	_, ok := p.Get(key)
	return ok
}

// Truthy reports whether the value under key counts as set: true booleans,
// non-zero numbers and strings other than "", "0" and "false".
func (p *Properties) Truthy(key string) bool {
	v, ok := p.Get(key)
	if !ok {
		return false
	}
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case float64:
		return x != 0
	case int:
		return x != 0
	case int64:
		return x != 0
	case string:
		s := strings.TrimSpace(strings.ToLower(x))
		return s != "" && s != "0" && s != "false"
	default:
		return true
	}
}

// Set stores value under key, keeping the original position of existing keys.
func (p *Properties) Set(key string, value any) {
	p.init()
	p.m.Set(key, value)
}

// Delete removes key.
func (p *Properties) Delete(key string) {
	if p == nil || p.m == nil {
		return
	}
	p.m.Delete(key)
}

// Len returns the number of keys.
func (p *Properties) Len() int {
	if p == nil || p.m == nil {
		return 0
	}
	return p.m.Len()
}

// Keys returns the keys in insertion order.
func (p *Properties) Keys() []string {
	if p == nil || p.m == nil {
		return nil
	}
	keys := make([]string, 0, p.m.Len())
	for pair := p.m.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// Range calls fn for each key/value pair in insertion order until fn returns false.
func (p *Properties) Range(fn func(key string, value any) bool) {
	if p == nil || p.m == nil {
		return
	}
	for pair := p.m.Oldest(); pair != nil; pair = pair.Next() {
		if !fn(pair.Key, pair.Value) {
			return
		}
	}
}

// Clone returns a shallow copy.
func (p *Properties) Clone() *Properties {
	out := &Properties{m: orderedmap.New[string, any]()}
	p.Range(func(k string, v any) bool {
		out.m.Set(k, v)
		return true
	})
	return out
}

// MarshalJSON encodes the properties as a JSON object in insertion order.
func (p *Properties) MarshalJSON() ([]byte, error) {
	if p == nil || p.m == nil {
		return []byte("{}"), nil
	}
	return p.m.MarshalJSON()
}

// UnmarshalJSON decodes a JSON object, preserving key order.
func (p *Properties) UnmarshalJSON(data []byte) error {
	m := orderedmap.New[string, any]()
	if err := m.UnmarshalJSON(data); err != nil {
		return err
	}
	p.m = m
	return nil
}

// FormatValue renders a property value as a string key. JSON numbers with no
// fractional part print as integers so that 1 and 1.0 map to "1".
func FormatValue(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case json.Number:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}
