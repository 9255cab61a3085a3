package node

import (
	"strings"

	"github.com/mcncl/jun/internal/models"
)

// Common property keys, in the order they are resolved and reported.
const (
	KeyPadding         = "padding"
	KeyWidth           = "width"
	KeyHeight          = "height"
	KeyMaxWidth        = "maxWidth"
	KeyMaxHeight       = "maxHeight"
	KeyForegroundColor = "foregroundColor"
	KeyBackgroundColor = "backgroundColor"
	KeyCornerRadius    = "cornerRadius"
	KeyClipped         = "clipped"
	KeyAspectRatio     = "aspectRatio"
	KeyContentMode     = "contentMode"
	KeyFont            = "font"
)

// Padding insets. A document either gives one number for every edge (All)
// or an object with any of the four edges.
type Padding struct {
	All      Optional[float64]
	Top      Optional[float64]
	Leading  Optional[float64]
	Bottom   Optional[float64]
	Trailing Optional[float64]
}

// UniformPadding returns padding of v on every edge.
func UniformPadding(v float64) Padding {
	return Padding{All: Some(v)}
}

// Dimension is a length in points or "infinity" (fill the available space).
type Dimension struct {
	points   float64
	infinite bool
}

// Points returns a fixed dimension.
func Points(v float64) Dimension {
	return Dimension{points: v}
}

// Infinity returns the fill-available-space dimension.
func Infinity() Dimension {
	return Dimension{infinite: true}
}

func (d Dimension) IsInfinite() bool { return d.infinite }

// Points returns the fixed length; it is 0 for an infinite dimension.
func (d Dimension) Points() float64 { return d.points }

// ContentMode controls how content is scaled into its frame.
type ContentMode string

const (
	ContentFit  ContentMode = "fit"
	ContentFill ContentMode = "fill"
)

// CommonProperties is the styling bag every variant carries. Each field is
// independently set or not set.
type CommonProperties struct {
	Padding         Optional[Padding]
	Width           Optional[Dimension]
	Height          Optional[Dimension]
	MaxWidth        Optional[Dimension]
	MaxHeight       Optional[Dimension]
	ForegroundColor Optional[string]
	BackgroundColor Optional[string]
	CornerRadius    Optional[float64]
	Clipped         Optional[bool]
	AspectRatio     Optional[float64]
	ContentMode     Optional[ContentMode]
	Font            Optional[string]
}

// SetKeys returns the wire keys of the fields that are set.
func (c CommonProperties) SetKeys() []string {
	var keys []string
	add := func(set bool, key string) {
		if set {
			keys = append(keys, key)
		}
	}
	add(c.Padding.IsSet(), KeyPadding)
	add(c.Width.IsSet(), KeyWidth)
	add(c.Height.IsSet(), KeyHeight)
	add(c.MaxWidth.IsSet(), KeyMaxWidth)
	add(c.MaxHeight.IsSet(), KeyMaxHeight)
	add(c.ForegroundColor.IsSet(), KeyForegroundColor)
	add(c.BackgroundColor.IsSet(), KeyBackgroundColor)
	add(c.CornerRadius.IsSet(), KeyCornerRadius)
	add(c.Clipped.IsSet(), KeyClipped)
	add(c.AspectRatio.IsSet(), KeyAspectRatio)
	add(c.ContentMode.IsSet(), KeyContentMode)
	add(c.Font.IsSet(), KeyFont)
	return keys
}

// IsEmpty reports whether no field is set.
func (c CommonProperties) IsEmpty() bool {
	return len(c.SetKeys()) == 0
}

// DecodeCommon resolves the common properties of dialect d from a node's
// properties object. It never fails: a missing key or a value of the wrong
// type leaves that field not set.
func DecodeCommon(obj models.JSONObject, d *Dialect) CommonProperties {
	return decodeCommon(NewProperties(obj), d, nil)
}

// decodeCommon skips keys claimed by the payload codec of the node.
func decodeCommon(p Properties, d *Dialect, claimed map[string]struct{}) CommonProperties {
	var c CommonProperties
	allowed := func(key string) bool {
		if _, ok := claimed[key]; ok {
			return false
		}
		return d.HasCommonKey(key)
	}

	if allowed(KeyPadding) {
		c.Padding = decodePadding(p)
	}
	if allowed(KeyWidth) {
		c.Width = decodeDimension(p, KeyWidth)
	}
	if allowed(KeyHeight) {
		c.Height = decodeDimension(p, KeyHeight)
	}
	if allowed(KeyMaxWidth) {
		c.MaxWidth = decodeDimension(p, KeyMaxWidth)
	}
	if allowed(KeyMaxHeight) {
		c.MaxHeight = decodeDimension(p, KeyMaxHeight)
	}
	if allowed(KeyForegroundColor) {
		c.ForegroundColor = p.String(Field{Name: KeyForegroundColor})
	}
	if allowed(KeyBackgroundColor) {
		c.BackgroundColor = p.String(Field{Name: KeyBackgroundColor})
	}
	if allowed(KeyCornerRadius) {
		c.CornerRadius = p.Float(Field{Name: KeyCornerRadius})
	}
	if allowed(KeyClipped) {
		c.Clipped = p.Bool(Field{Name: KeyClipped})
	}
	if allowed(KeyAspectRatio) {
		c.AspectRatio = p.Float(Field{Name: KeyAspectRatio})
	}
	if allowed(KeyContentMode) {
		c.ContentMode = decodeContentMode(p)
	}
	if allowed(KeyFont) {
		c.Font = p.String(Field{Name: KeyFont})
	}
	return c
}

func decodePadding(p Properties) Optional[Padding] {
	raw, ok := p.Raw(KeyPadding)
	if !ok {
		return None[Padding]()
	}
	if v, ok := asFloat(raw); ok {
		return Some(UniformPadding(v))
	}
	obj, ok := models.AsObject(raw)
	if !ok {
		return None[Padding]()
	}
	edges := NewProperties(obj)
	return Some(Padding{
		Top:      edges.Float(Field{Name: "top"}),
		Leading:  edges.Float(Field{Name: "leading"}),
		Bottom:   edges.Float(Field{Name: "bottom"}),
		Trailing: edges.Float(Field{Name: "trailing"}),
	})
}

func decodeDimension(p Properties, key string) Optional[Dimension] {
	raw, ok := p.Raw(key)
	if !ok {
		return None[Dimension]()
	}
	if v, ok := asFloat(raw); ok {
		if v < 0 {
			return None[Dimension]()
		}
		return Some(Points(v))
	}
	if s, ok := raw.(string); ok {
		switch strings.ToLower(s) {
		case "infinity", "inf", ".infinity":
			return Some(Infinity())
		}
	}
	return None[Dimension]()
}

func decodeContentMode(p Properties) Optional[ContentMode] {
	s, ok := p.String(Field{Name: KeyContentMode}).Get()
	if !ok {
		return None[ContentMode]()
	}
	switch mode := ContentMode(strings.ToLower(s)); mode {
	case ContentFit, ContentFill:
		return Some(mode)
	}
	return None[ContentMode]()
}

// encodeCommon writes every set field of c into out.
func encodeCommon(c CommonProperties, out models.JSONObject) {
	if pad, ok := c.Padding.Get(); ok {
		out[KeyPadding] = encodePadding(pad)
	}
	putDimension(out, KeyWidth, c.Width)
	putDimension(out, KeyHeight, c.Height)
	putDimension(out, KeyMaxWidth, c.MaxWidth)
	putDimension(out, KeyMaxHeight, c.MaxHeight)
	putOptional(out, KeyForegroundColor, c.ForegroundColor)
	putOptional(out, KeyBackgroundColor, c.BackgroundColor)
	putOptional(out, KeyCornerRadius, c.CornerRadius)
	putOptional(out, KeyClipped, c.Clipped)
	putOptional(out, KeyAspectRatio, c.AspectRatio)
	if mode, ok := c.ContentMode.Get(); ok {
		out[KeyContentMode] = string(mode)
	}
	putOptional(out, KeyFont, c.Font)
}

func encodePadding(pad Padding) models.JSONValue {
	if all, ok := pad.All.Get(); ok {
		return all
	}
	edges := models.JSONObject{}
	putOptional(edges, "top", pad.Top)
	putOptional(edges, "leading", pad.Leading)
	putOptional(edges, "bottom", pad.Bottom)
	putOptional(edges, "trailing", pad.Trailing)
	return edges
}

func putDimension(out models.JSONObject, key string, o Optional[Dimension]) {
	d, ok := o.Get()
	if !ok {
		return
	}
	if d.IsInfinite() {
		out[key] = "infinity"
		return
	}
	out[key] = d.Points()
}

func putOptional[T any](out models.JSONObject, key string, o Optional[T]) {
	if v, ok := o.Get(); ok {
		out[key] = v
	}
}
