package models

// JSONValue is a generic type to represent any JSON value.
// This can be a string, number, boolean, null, object, or array.
type JSONValue interface{}

// JSONObject represents a JSON object, which is a map of strings to JSONValues.
type JSONObject map[string]JSONValue

// JSONArray represents a JSON array, which is a slice of JSONValues.
type JSONArray []JSONValue

// Document holds a parsed input document. Root is the normalized value tree
// and Raw is the JSON text it was parsed from (re-encoded for YAML input).
type Document struct {
	Root JSONValue
	Raw  []byte
}

// AsObject reports whether v is a JSON object, accepting both the normalized
// JSONObject and a plain map built by hand.
func AsObject(v JSONValue) (JSONObject, bool) {
	switch t := v.(type) {
	case JSONObject:
		return t, true
	case map[string]interface{}:
		obj := make(JSONObject, len(t))
		for k, x := range t {
			obj[k] = x
		}
		return obj, true
	default:
		return nil, false
	}
}

// AsArray reports whether v is a JSON array.
func AsArray(v JSONValue) (JSONArray, bool) {
	switch t := v.(type) {
	case JSONArray:
		return t, true
	case []interface{}:
		arr := make(JSONArray, len(t))
		for i, x := range t {
			arr[i] = x
		}
		return arr, true
	default:
		return nil, false
	}
}

// TreeStats summarizes a decoded tree.
type TreeStats struct {
	Nodes         int `json:"nodes"`
	MaxDepth      int `json:"maxDepth"`
	Leaves        int `json:"leaves"`
	EmptyChildren int `json:"emptyChildren"`
	// Variants counts nodes per variant tag.
	Variants map[string]int `json:"variants"`
	// CommonKeys counts nodes per set common property.
	CommonKeys map[string]int `json:"commonKeys"`
	// LegacyFields counts legacy field names in the source, keyed by
	// "<type>.<field>".
	LegacyFields map[string]int `json:"legacyFields,omitempty"`
	// UnknownTypes counts source types the dialect did not recognize.
	UnknownTypes map[string]int `json:"unknownTypes,omitempty"`
}
