package node

import (
	"math"

	"github.com/goccy/go-json"

	"github.com/mcncl/jun/internal/models"
)

// FieldKind is the JSON type a field accepts.
type FieldKind string

const (
	KindString  FieldKind = "string"
	KindNumber  FieldKind = "number"
	KindInteger FieldKind = "integer"
	KindBoolean FieldKind = "boolean"
)

// Field declares one payload field: its current name, the legacy names it
// was known by (tried in order after Name), and the JSON type it accepts.
type Field struct {
	Name    string
	Aliases []string
	Kind    FieldKind
}

// Keys returns the current name followed by the aliases.
func (f Field) Keys() []string {
	keys := make([]string, 0, 1+len(f.Aliases))
	keys = append(keys, f.Name)
	return append(keys, f.Aliases...)
}

// Properties is the read-only view of a node's "properties" object shared by
// the payload and common decoders. Every accessor tries the field's keys in
// order and returns the first value of the right JSON type; a present value
// of the wrong type is skipped as if absent.
type Properties struct {
	obj models.JSONObject
}

// NewProperties wraps obj. A nil obj behaves as an empty object.
func NewProperties(obj models.JSONObject) Properties {
	return Properties{obj: obj}
}

// Raw returns the value stored under key exactly as decoded.
func (p Properties) Raw(key string) (models.JSONValue, bool) {
	v, ok := p.obj[key]
	return v, ok
}

func (p Properties) String(f Field) Optional[string] {
	return lookup(p, f, asString)
}

func (p Properties) Float(f Field) Optional[float64] {
	return lookup(p, f, asFloat)
}

func (p Properties) Int(f Field) Optional[int] {
	return lookup(p, f, asInt)
}

func (p Properties) Bool(f Field) Optional[bool] {
	return lookup(p, f, asBool)
}

func lookup[T any](p Properties, f Field, conv func(models.JSONValue) (T, bool)) Optional[T] {
	for _, key := range f.Keys() {
		raw, ok := p.obj[key]
		if !ok {
			continue
		}
		if v, ok := conv(raw); ok {
			return Some(v)
		}
	}
	return None[T]()
}

func asString(v models.JSONValue) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

func asBool(v models.JSONValue) (bool, bool) {
	b, ok := v.(bool)
	return b, ok
}

func asFloat(v models.JSONValue) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case int32:
		f = float64(n)
	case uint64:
		f = float64(n)
	case uint:
		f = float64(n)
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func asInt(v models.JSONValue) (int, bool) {
	if n, ok := v.(json.Number); ok {
		if i, err := n.Int64(); err == nil {
			return int(i), true
		}
	}
	f, ok := asFloat(v)
	if !ok || f != math.Trunc(f) || f > math.MaxInt32 || f < math.MinInt32 {
		return 0, false
	}
	return int(f), true
}
