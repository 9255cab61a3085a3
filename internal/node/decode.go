package node

import (
	"strconv"

	"github.com/google/uuid"

	"github.com/mcncl/jun/internal/errors"
	"github.com/mcncl/jun/internal/models"
	"github.com/mcncl/jun/internal/parser"
)

// DefaultMaxDepth is the deepest node nesting Decode accepts. The root node
// is at depth 1.
const DefaultMaxDepth = 500

// Option configures Decode, Encode and Marshal.
type Option func(*options)

type options struct {
	dialect  *Dialect
	maxDepth int
	newID    func() string
}

// WithDialect selects the dialect. The default is DefaultDialect.
func WithDialect(d *Dialect) Option {
	return func(o *options) {
		if d != nil {
			o.dialect = d
		}
	}
}

// MaxSupportedDepth is the deepest limit WithMaxDepth accepts. The raw
// nesting it needs is exactly parser.DefaultMaxNesting.
const MaxSupportedDepth = (parser.DefaultMaxNesting - 64) / 2

// WithMaxDepth sets the maximum node depth. Values <= 0 are ignored and
// values above MaxSupportedDepth are lowered to it.
func WithMaxDepth(n int) Option {
	return func(o *options) {
		switch {
		case n > MaxSupportedDepth:
			o.maxDepth = MaxSupportedDepth
		case n > 0:
			o.maxDepth = n
		}
	}
}

// WithIDGenerator replaces the generator used for nodes without a valid id.
func WithIDGenerator(fn func() string) Option {
	return func(o *options) {
		if fn != nil {
			o.newID = fn
		}
	}
}

func newOptions(opts []Option) options {
	o := options{
		dialect:  DefaultDialect,
		maxDepth: DefaultMaxDepth,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// NestingLimit is the raw JSON nesting that a tree of maxDepth nodes needs:
// each level is a node object inside a children array, plus room for the
// properties object and values nested inside it.
func NestingLimit(maxDepth int) int {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return 2*maxDepth + 64
}

// DecodeBytes parses data as one JSON document and decodes its root node.
// Parse failures wrap errors.ErrInvalidJSON (or ErrMaxDepthExceeded when the
// raw nesting alone is too deep) and are distinct from decode failures.
func DecodeBytes(data []byte, opts ...Option) (Node, error) {
	o := newOptions(opts)
	doc, err := parser.ParseBytes(data, parser.WithMaxNesting(NestingLimit(o.maxDepth)))
	if err != nil {
		return Node{}, err
	}
	return Decode(doc.Root, opts...)
}

// Decode builds a tree from one decoded JSON object.
//
// The node's variant is chosen by its "type" string, ignoring case. The
// "properties" object, or an empty one when absent, is read by both the
// variant's payload codec and the common property resolver. Children are
// decoded in order; any failure fails the whole tree. A missing or invalid
// "id" is replaced by a generated UUID.
//
// Structural errors are *errors.NodeError values wrapping
// ErrMissingDiscriminator, ErrUnknownVariant (strict dialects only),
// ErrMalformedProperties, ErrMalformedChildren, ErrMalformedNode or
// ErrMaxDepthExceeded.
func Decode(v models.JSONValue, opts ...Option) (Node, error) {
	d := decoder{options: newOptions(opts)}
	return d.decodeNode(v, "", 1)
}

type decoder struct {
	options
}

func (d *decoder) decodeNode(v models.JSONValue, path string, depth int) (Node, error) {
	if depth > d.maxDepth {
		return Node{}, errors.NewNodeError(errors.ErrMaxDepthExceeded, path, "")
	}

	obj, ok := models.AsObject(v)
	if !ok {
		return Node{}, errors.NewNodeError(errors.ErrMalformedNode, path, "")
	}

	typ, ok := obj["type"].(string)
	if !ok || typ == "" {
		return Node{}, errors.NewNodeError(errors.ErrMissingDiscriminator, path, "")
	}

	var props models.JSONObject
	if raw, present := obj["properties"]; present {
		props, ok = models.AsObject(raw)
		if !ok {
			return Node{}, errors.NewNodeError(errors.ErrMalformedProperties, path, typ)
		}
	}
	view := NewProperties(props)

	n := Node{id: d.resolveID(obj["id"])}
	var claimed map[string]struct{}
	if codec, ok := d.dialect.registry.Lookup(typ); ok {
		n.variant = codec.Variant
		n.payload = codec.decode(view)
		claimed = d.dialect.registry.claimedBy(codec.Variant)
	} else {
		if d.dialect.strict {
			return Node{}, errors.NewNodeError(errors.ErrUnknownVariant, path, typ)
		}
		n.variant, n.payload = d.dialect.fallback(typ)
		claimed = d.dialect.registry.claimedBy(n.variant)
	}
	n.common = decodeCommon(view, d.dialect, claimed)

	children, present, err := d.decodeChildren(obj, path, depth)
	if err != nil {
		return Node{}, err
	}
	n.children = children
	n.hasChildren = present
	return n, nil
}

// decodeChildren distinguishes an absent children field (present=false) from
// an empty array.
func (d *decoder) decodeChildren(obj models.JSONObject, path string, depth int) ([]Node, bool, error) {
	raw, present := obj["children"]
	if !present {
		return nil, false, nil
	}
	arr, ok := models.AsArray(raw)
	if !ok {
		return nil, true, errors.NewNodeError(errors.ErrMalformedChildren, path, "")
	}

	children := make([]Node, 0, len(arr))
	for i, item := range arr {
		child, err := d.decodeNode(item, path+"/children/"+strconv.Itoa(i), depth+1)
		if err != nil {
			return nil, true, err
		}
		children = append(children, child)
	}
	return children, true, nil
}

// resolveID keeps a valid UUID in canonical form and generates one otherwise.
func (d *decoder) resolveID(raw models.JSONValue) string {
	if s, ok := raw.(string); ok {
		if id, err := uuid.Parse(s); err == nil {
			return id.String()
		}
	}
	return d.newID()
}
