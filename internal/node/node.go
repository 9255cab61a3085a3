package node

import (
	"github.com/google/uuid"

	"github.com/mcncl/jun/internal/errors"
)

// Node is one element of a UI tree. It is immutable: fields are read through
// accessors and children are copied in and out.
type Node struct {
	id          string
	variant     Variant
	payload     Payload
	common      CommonProperties
	children    []Node
	hasChildren bool
}

// NodeOption configures a node built with New.
type NodeOption func(*Node)

// WithID sets the node identifier.
func WithID(id string) NodeOption {
	return func(n *Node) {
		n.id = id
	}
}

// WithCommon sets the common properties.
func WithCommon(c CommonProperties) NodeOption {
	return func(n *Node) {
		n.common = c
	}
}

// WithChildren sets the children, marking the children field present even
// when none are given. The nodes are deep-copied.
func WithChildren(children ...Node) NodeOption {
	return func(n *Node) {
		n.children = cloneNodes(children)
		n.hasChildren = true
	}
}

// New builds a node programmatically. It fails with ErrUnknownVariant when
// payload is not the shape of variant. When no ID is given a new UUID is
// generated, as on decode.
func New(variant Variant, payload Payload, opts ...NodeOption) (Node, error) {
	if payload == nil || !payload.serves(variant) {
		return Node{}, errors.NewNodeError(errors.ErrUnknownVariant, "", string(variant))
	}
	n := Node{variant: variant, payload: payload}
	for _, opt := range opts {
		opt(&n)
	}
	if n.id == "" {
		n.id = uuid.NewString()
	}
	return n, nil
}

// MustNew is New that panics on a payload mismatch.
func MustNew(variant Variant, payload Payload, opts ...NodeOption) Node {
	n, err := New(variant, payload, opts...)
	if err != nil {
		panic(err)
	}
	return n
}

func (n Node) ID() string { return n.id }

func (n Node) Variant() Variant { return n.variant }

func (n Node) Payload() Payload { return n.payload }

func (n Node) Common() CommonProperties { return n.common }

// Children returns a copy of the child nodes in order.
func (n Node) Children() []Node {
	if !n.hasChildren {
		return nil
	}
	out := make([]Node, len(n.children))
	copy(out, n.children)
	return out
}

// HasChildren reports whether the node has a children field, which may be
// empty. A node decoded without one reports false.
func (n Node) HasChildren() bool { return n.hasChildren }

// ChildCount returns the number of children.
func (n Node) ChildCount() int { return len(n.children) }

// Child returns the i-th child.
func (n Node) Child(i int) Node { return n.children[i] }

// Walk calls fn for n and every descendant in depth-first pre-order. depth is
// 1 for n. Returning false from fn skips that node's children.
func (n Node) Walk(fn func(node Node, depth int) bool) {
	n.walk(fn, 1)
}

func (n Node) walk(fn func(Node, int) bool, depth int) {
	if !fn(n, depth) {
		return
	}
	for _, c := range n.children {
		c.walk(fn, depth+1)
	}
}

func cloneNodes(nodes []Node) []Node {
	out := make([]Node, len(nodes))
	for i, c := range nodes {
		out[i] = c
		if c.hasChildren {
			out[i].children = cloneNodes(c.children)
		}
	}
	return out
}
