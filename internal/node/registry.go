package node

import (
	"fmt"
	"strings"

	"github.com/mcncl/jun/internal/models"
)

// Codec decodes and encodes the payload of one variant.
type Codec struct {
	Variant Variant
	// Names are the accepted "type" strings, matched case-insensitively.
	// Names[0] is the canonical name written on encode.
	Names []string
	// Fields lists the payload fields in declaration order. Their names and
	// aliases are claimed by the payload; the common decoder never reads them.
	Fields []Field

	decode  func(Properties) Payload
	encode  func(Payload, models.JSONObject) bool
	accepts func(Payload) bool
}

// NewCodec builds a codec for payload type P.
func NewCodec[P Payload](v Variant, names []string, fields []Field, dec func(Properties) P, enc func(P, models.JSONObject)) Codec {
	return Codec{
		Variant: v,
		Names:   names,
		Fields:  fields,
		decode: func(p Properties) Payload {
			return dec(p)
		},
		encode: func(payload Payload, out models.JSONObject) bool {
			typed, ok := payload.(P)
			if !ok {
				return false
			}
			enc(typed, out)
			return true
		},
	}
}

// guarded restricts c to payloads for which ok holds. Encode fails with
// ErrIncompatiblePayload for the rest.
func guarded[P Payload](c Codec, ok func(P) bool) Codec {
	c.accepts = func(payload Payload) bool {
		typed, isP := payload.(P)
		return !isP || ok(typed)
	}
	return c
}

// Canonical returns the name written to the wire.
func (c *Codec) Canonical() string {
	return c.Names[0]
}

func (c *Codec) claims() map[string]struct{} {
	claimed := make(map[string]struct{})
	for _, f := range c.Fields {
		for _, key := range f.Keys() {
			claimed[key] = struct{}{}
		}
	}
	return claimed
}

// Registry is a dispatch table from "type" strings to codecs.
type Registry struct {
	commonKeys map[string]struct{}
	byName     map[string]*Codec
	byVariant  map[Variant]*Codec
	order      []*Codec
	claimed    map[Variant]map[string]struct{}
}

// NewRegistry creates an empty registry. Payload fields registered later may
// not reuse any of commonKeys.
func NewRegistry(commonKeys []string) *Registry {
	keys := make(map[string]struct{}, len(commonKeys))
	for _, k := range commonKeys {
		keys[k] = struct{}{}
	}
	return &Registry{
		commonKeys: keys,
		byName:     make(map[string]*Codec),
		byVariant:  make(map[Variant]*Codec),
		claimed:    make(map[Variant]map[string]struct{}),
	}
}

// Register adds c. It fails when a name or variant is already registered or
// when a payload field or alias collides with a common key.
func (r *Registry) Register(c Codec) error {
	if len(c.Names) == 0 {
		return fmt.Errorf("codec for %s has no names", c.Variant)
	}
	if c.decode == nil || c.encode == nil {
		return fmt.Errorf("codec for %s was not built with NewCodec", c.Variant)
	}
	if _, ok := r.byVariant[c.Variant]; ok {
		return fmt.Errorf("variant %s already registered", c.Variant)
	}
	for _, name := range c.Names {
		if _, ok := r.byName[strings.ToLower(name)]; ok {
			return fmt.Errorf("type name %q already registered", name)
		}
	}
	claimed := c.claims()
	for key := range claimed {
		if _, ok := r.commonKeys[key]; ok {
			return fmt.Errorf("field %q of %s collides with a common property", key, c.Variant)
		}
	}

	codec := c
	for _, name := range c.Names {
		r.byName[strings.ToLower(name)] = &codec
	}
	r.byVariant[c.Variant] = &codec
	r.claimed[c.Variant] = claimed
	r.order = append(r.order, &codec)
	return nil
}

// MustRegister is Register that panics on error. It is meant for
// package-level dialect tables.
func (r *Registry) MustRegister(c Codec) {
	if err := r.Register(c); err != nil {
		panic(err)
	}
}

// Lookup finds the codec for a "type" string, ignoring case.
func (r *Registry) Lookup(typ string) (*Codec, bool) {
	c, ok := r.byName[strings.ToLower(typ)]
	return c, ok
}

// ForVariant finds the codec registered for v.
func (r *Registry) ForVariant(v Variant) (*Codec, bool) {
	c, ok := r.byVariant[v]
	return c, ok
}

// Codecs returns the registered codecs in registration order.
func (r *Registry) Codecs() []*Codec {
	out := make([]*Codec, len(r.order))
	copy(out, r.order)
	return out
}

func (r *Registry) claimedBy(v Variant) map[string]struct{} {
	return r.claimed[v]
}
