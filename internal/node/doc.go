// Package node implements the JUN (JSON UI Notation) node model.
//
// A document is a tree of nodes. On the wire every node is one flat object:
//
//	{"id": "...", "type": "vstack", "properties": {...}, "children": [...]}
//
// The "type" string picks the variant, and with it the payload shape that is
// read from "properties". The same "properties" object also carries the
// common styling fields every variant shares. Decode splits the flat object
// into a typed Node and Encode merges it back.
//
// Three dialects are built in. POC is the strict proof-of-concept schema and
// JUN10 and JUN11 are the lenient JUN schemas that accept legacy field names
// and turn unknown component types into a visible text node.
package node
