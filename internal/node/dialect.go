package node

import (
	"fmt"
	"strings"

	"github.com/mcncl/jun/internal/errors"
)

// UnknownComponentPrefix starts the content of the text node a lenient
// dialect substitutes for an unrecognized type.
const UnknownComponentPrefix = "Unknown component: "

// Dialect is one of the schema versions this repository reads and writes.
// The dialects differ in their variant tables, accepted common keys and in
// whether an unknown type is an error.
type Dialect struct {
	name       string
	strict     bool
	commonKeys []string
	commonSet  map[string]struct{}
	registry   *Registry
}

func newDialect(name string, strict bool, commonKeys []string, codecs ...Codec) *Dialect {
	d := &Dialect{
		name:       name,
		strict:     strict,
		commonKeys: commonKeys,
		commonSet:  make(map[string]struct{}, len(commonKeys)),
		registry:   NewRegistry(commonKeys),
	}
	for _, k := range commonKeys {
		d.commonSet[k] = struct{}{}
	}
	for _, c := range codecs {
		d.registry.MustRegister(c)
	}
	return d
}

func (d *Dialect) Name() string { return d.name }

// Strict reports whether an unknown type fails the decode.
func (d *Dialect) Strict() bool { return d.strict }

// CommonKeys returns the common property keys the dialect reads.
func (d *Dialect) CommonKeys() []string {
	out := make([]string, len(d.commonKeys))
	copy(out, d.commonKeys)
	return out
}

// HasCommonKey reports whether key is a common property in this dialect.
func (d *Dialect) HasCommonKey(key string) bool {
	_, ok := d.commonSet[key]
	return ok
}

func (d *Dialect) Registry() *Registry { return d.registry }

func (d *Dialect) String() string { return d.name }

// fallback is what a lenient dialect decodes an unknown type to: a text node
// naming the type, so the problem stays visible in the rendered tree.
func (d *Dialect) fallback(typ string) (Variant, Payload) {
	return Text, TextPayload{Content: UnknownComponentPrefix + typ}
}

var (
	commonKeysPOC = []string{
		KeyPadding, KeyWidth, KeyHeight,
		KeyForegroundColor, KeyBackgroundColor, KeyCornerRadius,
	}
	commonKeysV10 = []string{
		KeyPadding, KeyWidth, KeyHeight, KeyMaxWidth, KeyMaxHeight,
		KeyForegroundColor, KeyBackgroundColor, KeyCornerRadius,
		KeyClipped, KeyAspectRatio, KeyContentMode,
	}
	commonKeysV11 = append(append([]string{}, commonKeysV10...), KeyFont)
)

// Built-in dialects.
var (
	// POC is the proof-of-concept schema: strict, symbol-name images, no
	// legacy aliases.
	POC = newDialect("poc", true, commonKeysPOC,
		stackCodec(VStack, "vstack"),
		stackCodec(HStack, "hstack"),
		stackCodec(ZStack, "zstack"),
		textCodec(current(FieldContent)),
		symbolImageCodec(),
		buttonCodec(current(FieldLabel)),
		spacerCodec(),
		dividerCodec(),
	)

	// JUN10 is JUN v1.0.
	JUN10 = newJUN("jun-1.0", commonKeysV10)

	// JUN11 is JUN v1.1, which adds the font common property.
	JUN11 = newJUN("jun-1.1", commonKeysV11)

	// DefaultDialect is used when no dialect is selected.
	DefaultDialect = JUN11
)

func newJUN(name string, commonKeys []string) *Dialect {
	return newDialect(name, false, commonKeys,
		stackCodec(VStack, "vstack", "layout/vstack"),
		stackCodec(HStack, "hstack", "layout/hstack"),
		stackCodec(ZStack, "zstack", "layout/zstack"),
		textCodec(FieldContent),
		urlImageCodec(),
		buttonCodec(FieldLabel),
		shapeCodec(Rectangle, "rectangle", "shape/rectangle"),
		shapeCodec(Circle, "circle", "shape/circle"),
		scrollViewCodec(FieldAxis),
		spacerCodec(),
		dividerCodec(),
	)
}

// Dialects returns the built-in dialects.
func Dialects() []*Dialect {
	return []*Dialect{POC, JUN10, JUN11}
}

// DialectByName resolves a dialect name, ignoring case. "jun" is JUN v1.1.
func DialectByName(name string) (*Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "poc":
		return POC, nil
	case "jun-1.0", "jun1.0", "1.0":
		return JUN10, nil
	case "jun", "jun-1.1", "jun1.1", "1.1":
		return JUN11, nil
	}
	return nil, fmt.Errorf("%w %q (want poc, jun-1.0 or jun-1.1)", errors.ErrUnknownDialect, name)
}
