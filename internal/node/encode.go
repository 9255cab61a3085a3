package node

import (
	"strconv"

	"github.com/goccy/go-json"

	"github.com/mcncl/jun/internal/errors"
	"github.com/mcncl/jun/internal/models"
)

// wireNode is an encoded node before it is rendered.
type wireNode struct {
	ID         string
	Type       string
	Properties models.JSONObject
	Children   *[]wireNode
}

// flatWire fixes the key order of a marshaled node. Children are marshaled
// first and carried as raw bytes, so the encoder never sees a recursive type.
type flatWire struct {
	ID         string             `json:"id"`
	Type       string             `json:"type"`
	Properties models.JSONObject  `json:"properties,omitempty"`
	Children   *[]json.RawMessage `json:"children,omitempty"`
}

// Encode flattens n back into the single-level wire shape of the selected
// dialect: the canonical type name, payload and common fields merged into
// "properties" under their current names, and "children" only when n has a
// children field. The id is always written.
//
// Common properties the dialect does not read are left out. Encode fails
// with ErrUnknownVariant when the dialect has no codec for a node's variant,
// for example a shape encoded as POC, and with ErrIncompatiblePayload when
// the codec cannot write the payload, for example a URL image encoded as POC.
func Encode(n Node, opts ...Option) (models.JSONObject, error) {
	o := newOptions(opts)
	w, err := toWire(n, o.dialect, "")
	if err != nil {
		return nil, err
	}
	return w.object(), nil
}

// Marshal encodes n and renders it as compact JSON with the keys of every
// node in the order id, type, properties, children.
func Marshal(n Node, opts ...Option) ([]byte, error) {
	o := newOptions(opts)
	w, err := toWire(n, o.dialect, "")
	if err != nil {
		return nil, err
	}
	return w.marshal()
}

func toWire(n Node, d *Dialect, path string) (wireNode, error) {
	codec, ok := d.registry.ForVariant(n.variant)
	if !ok {
		return wireNode{}, errors.NewNodeError(errors.ErrUnknownVariant, path, string(n.variant))
	}

	if codec.accepts != nil && !codec.accepts(n.payload) {
		return wireNode{}, errors.NewNodeError(errors.ErrIncompatiblePayload, path, string(n.variant))
	}
	props := models.JSONObject{}
	if !codec.encode(n.payload, props) {
		return wireNode{}, errors.NewNodeError(errors.ErrUnknownVariant, path, string(n.variant))
	}
	common := models.JSONObject{}
	encodeCommon(n.common, common)
	for key, v := range common {
		if d.HasCommonKey(key) {
			props[key] = v
		}
	}
	if len(props) == 0 {
		props = nil
	}

	w := wireNode{ID: n.id, Type: codec.Canonical(), Properties: props}
	if n.hasChildren {
		children := make([]wireNode, 0, len(n.children))
		for i, c := range n.children {
			cw, err := toWire(c, d, path+"/children/"+strconv.Itoa(i))
			if err != nil {
				return wireNode{}, err
			}
			children = append(children, cw)
		}
		w.Children = &children
	}
	return w, nil
}

func (w wireNode) object() models.JSONObject {
	obj := models.JSONObject{
		"id":   w.ID,
		"type": w.Type,
	}
	if w.Properties != nil {
		obj["properties"] = w.Properties
	}
	if w.Children != nil {
		children := make(models.JSONArray, len(*w.Children))
		for i, c := range *w.Children {
			children[i] = c.object()
		}
		obj["children"] = children
	}
	return obj
}

func (w wireNode) marshal() ([]byte, error) {
	flat := flatWire{ID: w.ID, Type: w.Type, Properties: w.Properties}
	if w.Children != nil {
		children := make([]json.RawMessage, len(*w.Children))
		for i, c := range *w.Children {
			data, err := c.marshal()
			if err != nil {
				return nil, err
			}
			children[i] = data
		}
		flat.Children = &children
	}
	return json.Marshal(flat)
}
