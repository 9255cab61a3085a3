package node

import (
	"strings"

	"github.com/mcncl/jun/internal/models"
)

// Payload fields. Aliases are the closed, ordered list of legacy names each
// field is still read from; encode only ever writes Name.
var (
	FieldAlignment       = Field{Name: "alignment", Kind: KindString}
	FieldSpacing         = Field{Name: "spacing", Kind: KindNumber}
	FieldContent         = Field{Name: "content", Aliases: []string{"text"}, Kind: KindString}
	FieldFontSize        = Field{Name: "fontSize", Kind: KindNumber}
	FieldFontWeight      = Field{Name: "fontWeight", Kind: KindString}
	FieldLineLimit       = Field{Name: "lineLimit", Kind: KindInteger}
	FieldURL             = Field{Name: "url", Aliases: []string{"src"}, Kind: KindString}
	FieldSystemName      = Field{Name: "systemName", Kind: KindString}
	FieldResizable       = Field{Name: "resizable", Kind: KindBoolean}
	FieldLabel           = Field{Name: "label", Aliases: []string{"buttonLabel", "title"}, Kind: KindString}
	FieldAction          = Field{Name: "action", Kind: KindString}
	FieldFill            = Field{Name: "fill", Kind: KindString}
	FieldStrokeColor     = Field{Name: "strokeColor", Kind: KindString}
	FieldStrokeWidth     = Field{Name: "strokeWidth", Kind: KindNumber}
	FieldAxis            = Field{Name: "axis", Aliases: []string{"scrollAxis"}, Kind: KindString}
	FieldShowsIndicators = Field{Name: "showsIndicators", Kind: KindBoolean}
	FieldMinLength       = Field{Name: "minLength", Kind: KindNumber}
)

// current drops the legacy aliases of f.
func current(f Field) Field {
	return Field{Name: f.Name, Kind: f.Kind}
}

func stackCodec(v Variant, names ...string) Codec {
	return NewCodec(v, names, []Field{FieldAlignment, FieldSpacing},
		func(p Properties) StackPayload {
			return StackPayload{
				Alignment: p.String(FieldAlignment),
				Spacing:   p.Float(FieldSpacing),
			}
		},
		func(s StackPayload, out models.JSONObject) {
			putOptional(out, FieldAlignment.Name, s.Alignment)
			putOptional(out, FieldSpacing.Name, s.Spacing)
		},
	)
}

func textCodec(content Field) Codec {
	return NewCodec(Text, []string{"text"}, []Field{content, FieldFontSize, FieldFontWeight, FieldLineLimit},
		func(p Properties) TextPayload {
			return TextPayload{
				Content:    p.String(content).OrElse(""),
				FontSize:   p.Float(FieldFontSize),
				FontWeight: p.String(FieldFontWeight),
				LineLimit:  p.Int(FieldLineLimit),
			}
		},
		func(t TextPayload, out models.JSONObject) {
			out[content.Name] = t.Content
			putOptional(out, FieldFontSize.Name, t.FontSize)
			putOptional(out, FieldFontWeight.Name, t.FontWeight)
			putOptional(out, FieldLineLimit.Name, t.LineLimit)
		},
	)
}

// urlImageCodec addresses images by URL only.
func urlImageCodec() Codec {
	return guarded(NewCodec(Image, []string{"image"}, []Field{FieldURL, FieldResizable},
		func(p Properties) ImagePayload {
			return ImagePayload{
				URL:       p.String(FieldURL).OrElse(""),
				Resizable: p.Bool(FieldResizable),
			}
		},
		func(i ImagePayload, out models.JSONObject) {
			out[FieldURL.Name] = i.URL
			putOptional(out, FieldResizable.Name, i.Resizable)
		},
	), func(i ImagePayload) bool { return i.URL != "" || i.SystemName == "" })
}

// symbolImageCodec addresses images by platform symbol name only.
func symbolImageCodec() Codec {
	return guarded(NewCodec(Image, []string{"image"}, []Field{FieldSystemName, FieldResizable},
		func(p Properties) ImagePayload {
			return ImagePayload{
				SystemName: p.String(FieldSystemName).OrElse(""),
				Resizable:  p.Bool(FieldResizable),
			}
		},
		func(i ImagePayload, out models.JSONObject) {
			out[FieldSystemName.Name] = i.SystemName
			putOptional(out, FieldResizable.Name, i.Resizable)
		},
	), func(i ImagePayload) bool { return i.SystemName != "" || i.URL == "" })
}

func buttonCodec(label Field) Codec {
	return NewCodec(Button, []string{"button"}, []Field{label, FieldAction},
		func(p Properties) ButtonPayload {
			return ButtonPayload{
				Label:  p.String(label).OrElse(""),
				Action: p.String(FieldAction),
			}
		},
		func(b ButtonPayload, out models.JSONObject) {
			out[label.Name] = b.Label
			putOptional(out, FieldAction.Name, b.Action)
		},
	)
}

func shapeCodec(v Variant, names ...string) Codec {
	return NewCodec(v, names, []Field{FieldFill, FieldStrokeColor, FieldStrokeWidth},
		func(p Properties) ShapePayload {
			return ShapePayload{
				Fill:        p.String(FieldFill),
				StrokeColor: p.String(FieldStrokeColor),
				StrokeWidth: p.Float(FieldStrokeWidth),
			}
		},
		func(s ShapePayload, out models.JSONObject) {
			putOptional(out, FieldFill.Name, s.Fill)
			putOptional(out, FieldStrokeColor.Name, s.StrokeColor)
			putOptional(out, FieldStrokeWidth.Name, s.StrokeWidth)
		},
	)
}

func scrollViewCodec(axis Field) Codec {
	return NewCodec(ScrollView, []string{"scrollView"}, []Field{axis, FieldShowsIndicators},
		func(p Properties) ScrollViewPayload {
			return ScrollViewPayload{
				Axis:            parseAxis(p.String(axis)),
				ShowsIndicators: p.Bool(FieldShowsIndicators),
			}
		},
		func(s ScrollViewPayload, out models.JSONObject) {
			a := s.Axis
			if a == "" {
				a = AxisVertical
			}
			out[axis.Name] = string(a)
			putOptional(out, FieldShowsIndicators.Name, s.ShowsIndicators)
		},
	)
}

// parseAxis falls back to vertical for a missing or unrecognized axis.
func parseAxis(o Optional[string]) Axis {
	s, _ := o.Get()
	if Axis(strings.ToLower(s)) == AxisHorizontal {
		return AxisHorizontal
	}
	return AxisVertical
}

func spacerCodec() Codec {
	return NewCodec(Spacer, []string{"spacer"}, []Field{FieldMinLength},
		func(p Properties) SpacerPayload {
			return SpacerPayload{MinLength: p.Float(FieldMinLength)}
		},
		func(s SpacerPayload, out models.JSONObject) {
			putOptional(out, FieldMinLength.Name, s.MinLength)
		},
	)
}

func dividerCodec() Codec {
	return NewCodec(Divider, []string{"divider"}, nil,
		func(Properties) DividerPayload { return DividerPayload{} },
		func(DividerPayload, models.JSONObject) {},
	)
}
