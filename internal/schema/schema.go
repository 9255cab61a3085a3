// Package schema describes the JUN wire format of a dialect as a JSON Schema
package schema

import (
	"fmt"

	"github.com/goccy/go-json"

	"github.com/mcncl/jun/internal/node"
)

// Draft is the JSON Schema dialect of exported documents
const Draft = "https://json-schema.org/draft/2020-12/schema"

// SchemaType handles JSON Schema type field which can be string or array of strings
type SchemaType struct {
	Types []string
}

// MarshalJSON writes a single type as a string and several as an array
func (st SchemaType) MarshalJSON() ([]byte, error) {
	if len(st.Types) == 1 {
		return json.Marshal(st.Types[0])
	}
	return json.Marshal(st.Types)
}

// AdditionalProperties handles JSON Schema additionalProperties which can be bool or Schema
type AdditionalProperties struct {
	Allowed bool    // If true, any additional properties allowed; if false, none allowed
	Schema  *Schema // If set, additional properties must match this schema
}

// MarshalJSON writes the schema form when there is one, otherwise the boolean
func (ap AdditionalProperties) MarshalJSON() ([]byte, error) {
	if ap.Schema != nil {
		return json.Marshal(ap.Schema)
	}
	return json.Marshal(ap.Allowed)
}

// Schema represents a JSON Schema document
type Schema struct {
	// Meta
	Schema      string `json:"$schema,omitempty"`
	Ref         string `json:"$ref,omitempty"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Deprecated  bool   `json:"deprecated,omitempty"`

	// Type - can be string or array of strings in JSON Schema
	Type *SchemaType `json:"type,omitempty"`

	// Object properties
	Properties           map[string]*Schema    `json:"properties,omitempty"`
	Required             []string              `json:"required,omitempty"`
	AdditionalProperties *AdditionalProperties `json:"additionalProperties,omitempty"`

	// Array items
	Items *Schema `json:"items,omitempty"`

	// String constraints
	Format string `json:"format,omitempty"`

	// Numeric constraints
	Minimum *float64 `json:"minimum,omitempty"`

	// Enum
	Enum []interface{} `json:"enum,omitempty"`

	// Composition
	AnyOf []*Schema `json:"anyOf,omitempty"`
	OneOf []*Schema `json:"oneOf,omitempty"`

	// Definitions for $ref resolution
	Defs map[string]*Schema `json:"$defs,omitempty"`

	// Default value
	Default interface{} `json:"default,omitempty"`
}

func typeOf(types ...string) *SchemaType {
	return &SchemaType{Types: types}
}

func ref(name string) *Schema {
	return &Schema{Ref: "#/$defs/" + name}
}

func minimum(v float64) *float64 {
	return &v
}

// ForDialect describes every node of dialect d. Strict dialects accept only
// the registered variants; lenient ones also accept any other type string.
func ForDialect(d *node.Dialect) *Schema {
	defs := map[string]*Schema{
		"node": nodeSchema(),
	}

	var branches []*Schema
	for _, codec := range d.Registry().Codecs() {
		defs[codec.Canonical()] = variantSchema(codec, d)
		branches = append(branches, ref(codec.Canonical()))
	}

	if d.Strict() {
		defs["node"].OneOf = branches
	} else {
		defs["unknown"] = &Schema{
			Description: "Any other type decodes to a text node reading \"" + node.UnknownComponentPrefix + "<type>\"",
			Properties: map[string]*Schema{
				"properties": commonSchema(d),
			},
		}
		defs["node"].AnyOf = append(branches, ref("unknown"))
	}

	return &Schema{
		Schema:      Draft,
		Title:       fmt.Sprintf("JUN node (%s)", d.Name()),
		Description: "Type names are matched case-insensitively.",
		Ref:         "#/$defs/node",
		Defs:        defs,
	}
}

func nodeSchema() *Schema {
	return &Schema{
		Type:     typeOf("object"),
		Required: []string{"type"},
		Properties: map[string]*Schema{
			"id": {
				Type:        typeOf("string"),
				Format:      "uuid",
				Description: "Generated when missing or not a UUID",
			},
			"type": {Type: typeOf("string")},
			"properties": {
				Type: typeOf("object"),
			},
			"children": {
				Type:  typeOf("array"),
				Items: ref("node"),
			},
		},
	}
}

func variantSchema(codec *node.Codec, d *node.Dialect) *Schema {
	names := make([]interface{}, len(codec.Names))
	for i, name := range codec.Names {
		names[i] = name
	}

	props := commonSchema(d)
	for _, field := range codec.Fields {
		props.Properties[field.Name] = fieldSchema(field)
		for _, alias := range field.Aliases {
			legacy := fieldSchema(field)
			legacy.Deprecated = true
			legacy.Default = nil
			legacy.Description = "Legacy name for " + field.Name
			props.Properties[alias] = legacy
		}
	}

	return &Schema{
		Title: codec.Variant.String(),
		Properties: map[string]*Schema{
			"type":       {Type: typeOf("string"), Enum: names},
			"properties": props,
		},
	}
}

func fieldSchema(f node.Field) *Schema {
	s := &Schema{Type: typeOf(string(f.Kind))}
	switch f.Name {
	case node.FieldContent.Name, node.FieldLabel.Name, node.FieldURL.Name, node.FieldSystemName.Name:
		s.Default = ""
	case node.FieldAxis.Name:
		s.Enum = []interface{}{string(node.AxisVertical), string(node.AxisHorizontal)}
		s.Default = string(node.AxisVertical)
	}
	return s
}

func commonSchema(d *node.Dialect) *Schema {
	props := make(map[string]*Schema)
	for _, key := range d.CommonKeys() {
		props[key] = commonKeySchema(key)
	}
	return &Schema{
		Type:                 typeOf("object"),
		Properties:           props,
		AdditionalProperties: &AdditionalProperties{Allowed: true},
	}
}

func commonKeySchema(key string) *Schema {
	switch key {
	case node.KeyPadding:
		edge := func() *Schema { return &Schema{Type: typeOf("number")} }
		return &Schema{OneOf: []*Schema{
			{Type: typeOf("number")},
			{
				Type: typeOf("object"),
				Properties: map[string]*Schema{
					"top": edge(), "leading": edge(), "bottom": edge(), "trailing": edge(),
				},
			},
		}}
	case node.KeyWidth, node.KeyHeight, node.KeyMaxWidth, node.KeyMaxHeight:
		return &Schema{OneOf: []*Schema{
			{Type: typeOf("number"), Minimum: minimum(0)},
			{Type: typeOf("string"), Enum: []interface{}{"infinity", "inf"}},
		}}
	case node.KeyClipped:
		return &Schema{Type: typeOf("boolean")}
	case node.KeyCornerRadius, node.KeyAspectRatio:
		return &Schema{Type: typeOf("number")}
	case node.KeyContentMode:
		return &Schema{Type: typeOf("string"), Enum: []interface{}{string(node.ContentFit), string(node.ContentFill)}}
	default:
		return &Schema{Type: typeOf("string")}
	}
}
