package generator

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/iancoleman/strcase"

	"github.com/mcncl/jun/internal/config"
	"github.com/mcncl/jun/internal/node"
)

var hexColorRegex = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

var namedColors = map[string]bool{
	"black": true, "blue": true, "brown": true, "clear": true, "cyan": true,
	"gray": true, "green": true, "indigo": true, "mint": true, "orange": true,
	"pink": true, "purple": true, "red": true, "teal": true, "white": true,
	"yellow": true, "primary": true, "secondary": true, "accentColor": true,
}

var textStyles = map[string]bool{
	"largeTitle": true, "title": true, "title2": true, "title3": true,
	"headline": true, "subheadline": true, "body": true, "callout": true,
	"footnote": true, "caption": true, "caption2": true,
}

var fontWeights = map[string]bool{
	"ultraLight": true, "thin": true, "light": true, "regular": true,
	"medium": true, "semibold": true, "bold": true, "heavy": true, "black": true,
}

const hexColorExtension = `extension Color {
	init(hex: String) {
		let value = UInt64(hex.trimmingCharacters(in: CharacterSet(charactersIn: "#")), radix: 16) ?? 0
		self.init(
			red: Double((value >> 16) & 0xFF) / 255,
			green: Double((value >> 8) & 0xFF) / 255,
			blue: Double(value & 0xFF) / 255
		)
	}
}
`

// Generator renders decoded trees as SwiftUI source
type Generator struct {
	viewName string
	indent   string
}

// NewGenerator creates a new Generator instance
func NewGenerator() *Generator {
	return NewGeneratorWithConfig(config.NewConfig())
}

// NewGeneratorWithConfig creates a Generator using the swift settings of cfg
func NewGeneratorWithConfig(cfg *config.Config) *Generator {
	width := cfg.Swift.Indent
	if width < 1 {
		width = 4
	}
	return &Generator{
		viewName: cfg.ViewName(),
		indent:   strings.Repeat(" ", width),
	}
}

// emitter holds the state of one GenerateSwiftUI call
type emitter struct {
	indent     string
	buf        bytes.Buffer
	usesHex    bool
	usesAction bool
	// closed is set when the last line written was a closing brace
	closed bool
}

// GenerateSwiftUI renders root as the body of a SwiftUI view struct
func (g *Generator) GenerateSwiftUI(root node.Node) (string, error) {
	e := &emitter{indent: g.indent}
	e.writeNode(root, 2)
	body := e.buf.String()

	var buf bytes.Buffer
	buf.WriteString("import SwiftUI\n\n")
	buf.WriteString(fmt.Sprintf("struct %s: View {\n", g.viewName))
	if e.usesAction {
		buf.WriteString(g.indent + "var onAction: (String) -> Void = { _ in }\n\n")
	}
	buf.WriteString(g.indent + "var body: some View {\n")
	buf.WriteString(body)
	buf.WriteString(g.indent + "}\n")
	buf.WriteString("}\n")

	if e.usesHex {
		buf.WriteString("\n")
		buf.WriteString(strings.ReplaceAll(hexColorExtension, "\t", g.indent))
	}

	return buf.String(), nil
}

func (e *emitter) line(level int, s string) {
	e.buf.WriteString(strings.Repeat(e.indent, level))
	e.buf.WriteString(s)
	e.buf.WriteString("\n")
	e.closed = s == "}"
}

func (e *emitter) writeNode(n node.Node, level int) {
	if n.ChildCount() > 0 && !n.Variant().IsContainer() {
		e.writeWrapped(n, level)
		return
	}
	e.writeView(n, level)
	e.modifiers(n.Common(), level)
}

func (e *emitter) writeView(n node.Node, level int) {
	switch p := n.Payload().(type) {
	case node.StackPayload:
		e.writeContainer(n, level, stackHeader(n.Variant(), p))
	case node.ScrollViewPayload:
		e.writeContainer(n, level, scrollHeader(p))
	case node.TextPayload:
		e.writeText(p, level)
	case node.ImagePayload:
		e.writeImage(p, level)
	case node.ButtonPayload:
		e.writeButton(p, level)
	case node.ShapePayload:
		e.writeShape(n.Variant(), p, level)
	case node.SpacerPayload:
		if v, ok := p.MinLength.Get(); ok {
			e.line(level, fmt.Sprintf("Spacer(minLength: %s)", number(v)))
		} else {
			e.line(level, "Spacer()")
		}
	case node.DividerPayload:
		e.line(level, "Divider()")
	}
}

// modifiers attaches common modifiers to the view just written. They line up
// with a closing brace and sit one level under a single-line view.
func (e *emitter) modifiers(c node.CommonProperties, level int) {
	if e.closed {
		e.commonModifiers(c, level)
		return
	}
	e.commonModifiers(c, level+1)
}

// writeWrapped renders a leaf that still carries children, such as the text
// a lenient dialect substitutes for an unknown type, as a VStack holding the
// leaf followed by its children.
func (e *emitter) writeWrapped(n node.Node, level int) {
	e.line(level, "VStack {")
	e.writeView(n, level+1)
	for _, child := range n.Children() {
		e.writeNode(child, level+1)
	}
	e.line(level, "}")
	e.modifiers(n.Common(), level)
}

func (e *emitter) writeText(p node.TextPayload, level int) {
	e.line(level, fmt.Sprintf("Text(%s)", swiftString(p.Content)))
	e.textModifiers(p, level+1)
}

func (e *emitter) writeContainer(n node.Node, level int, header string) {
	if n.ChildCount() == 0 {
		e.line(level, header+" {}")
		return
	}
	e.line(level, header+" {")
	for _, child := range n.Children() {
		e.writeNode(child, level+1)
	}
	e.line(level, "}")
}

func stackHeader(v node.Variant, p node.StackPayload) string {
	name := map[node.Variant]string{
		node.VStack: "VStack",
		node.HStack: "HStack",
		node.ZStack: "ZStack",
	}[v]

	var args []string
	if a, ok := p.Alignment.Get(); ok && a != "" {
		args = append(args, "alignment: ."+strcase.ToLowerCamel(a))
	}
	if s, ok := p.Spacing.Get(); ok && v != node.ZStack {
		args = append(args, "spacing: "+number(s))
	}
	if len(args) == 0 {
		return name
	}
	return fmt.Sprintf("%s(%s)", name, strings.Join(args, ", "))
}

func scrollHeader(p node.ScrollViewPayload) string {
	show, set := p.ShowsIndicators.Get()
	if p.Axis != node.AxisHorizontal && !set {
		return "ScrollView"
	}
	axis := node.AxisVertical
	if p.Axis == node.AxisHorizontal {
		axis = node.AxisHorizontal
	}
	if !set {
		return fmt.Sprintf("ScrollView(.%s)", axis)
	}
	return fmt.Sprintf("ScrollView(.%s, showsIndicators: %t)", axis, show)
}

func (e *emitter) textModifiers(p node.TextPayload, level int) {
	if size, ok := p.FontSize.Get(); ok {
		e.line(level, fmt.Sprintf(".font(.system(size: %s))", number(size)))
	}
	if w, ok := p.FontWeight.Get(); ok {
		if weight := strcase.ToLowerCamel(w); fontWeights[weight] {
			e.line(level, ".fontWeight(."+weight+")")
		}
	}
	if limit, ok := p.LineLimit.Get(); ok {
		e.line(level, fmt.Sprintf(".lineLimit(%d)", limit))
	}
}

func (e *emitter) writeImage(p node.ImagePayload, level int) {
	resizable := p.Resizable.OrElse(false)
	if p.SystemName != "" {
		e.line(level, fmt.Sprintf("Image(systemName: %s)", swiftString(p.SystemName)))
		if resizable {
			e.line(level+1, ".resizable()")
		}
		return
	}

	src := fmt.Sprintf("AsyncImage(url: URL(string: %s))", swiftString(p.URL))
	if !resizable {
		e.line(level, src)
		return
	}
	e.line(level, src+" { image in")
	e.line(level+1, "image.resizable()")
	e.line(level, "} placeholder: {")
	e.line(level+1, "ProgressView()")
	e.line(level, "}")
}

func (e *emitter) writeButton(p node.ButtonPayload, level int) {
	label := swiftString(p.Label)
	action, ok := p.Action.Get()
	if !ok {
		e.line(level, fmt.Sprintf("Button(%s) {}", label))
		return
	}
	e.usesAction = true
	e.line(level, fmt.Sprintf("Button(%s) {", label))
	e.line(level+1, fmt.Sprintf("onAction(%s)", swiftString(action)))
	e.line(level, "}")
}

func (e *emitter) writeShape(v node.Variant, p node.ShapePayload, level int) {
	name := "Rectangle()"
	if v == node.Circle {
		name = "Circle()"
	}
	e.line(level, name)

	stroke := ""
	if c, ok := p.StrokeColor.Get(); ok {
		stroke = fmt.Sprintf("%s, lineWidth: %s", e.color(c), number(p.StrokeWidth.OrElse(1)))
	}
	fill, hasFill := p.Fill.Get()
	switch {
	case hasFill && stroke != "":
		e.line(level+1, fmt.Sprintf(".fill(%s)", e.color(fill)))
		e.line(level+1, fmt.Sprintf(".overlay(%s.stroke(%s))", name, stroke))
	case hasFill:
		e.line(level+1, fmt.Sprintf(".fill(%s)", e.color(fill)))
	case stroke != "":
		e.line(level+1, fmt.Sprintf(".stroke(%s)", stroke))
	}
}

// commonModifiers writes the common properties in a fixed order: layout,
// then content styling, then background and clipping.
func (e *emitter) commonModifiers(c node.CommonProperties, level int) {
	if pad, ok := c.Padding.Get(); ok {
		e.padding(pad, level)
	}

	var fixed []string
	maxWidth, maxHeight := "", ""
	if d, ok := c.Width.Get(); ok {
		if d.IsInfinite() {
			maxWidth = ".infinity"
		} else {
			fixed = append(fixed, "width: "+number(d.Points()))
		}
	}
	if d, ok := c.Height.Get(); ok {
		if d.IsInfinite() {
			maxHeight = ".infinity"
		} else {
			fixed = append(fixed, "height: "+number(d.Points()))
		}
	}
	if d, ok := c.MaxWidth.Get(); ok && maxWidth == "" {
		maxWidth = dimension(d)
	}
	if d, ok := c.MaxHeight.Get(); ok && maxHeight == "" {
		maxHeight = dimension(d)
	}

	var flexible []string
	if maxWidth != "" {
		flexible = append(flexible, "maxWidth: "+maxWidth)
	}
	if maxHeight != "" {
		flexible = append(flexible, "maxHeight: "+maxHeight)
	}
	if len(fixed) > 0 {
		e.line(level, ".frame("+strings.Join(fixed, ", ")+")")
	}
	if len(flexible) > 0 {
		e.line(level, ".frame("+strings.Join(flexible, ", ")+")")
	}

	ratio, hasRatio := c.AspectRatio.Get()
	mode, hasMode := c.ContentMode.Get()
	switch {
	case hasRatio && hasMode:
		e.line(level, fmt.Sprintf(".aspectRatio(%s, contentMode: .%s)", number(ratio), mode))
	case hasRatio:
		e.line(level, fmt.Sprintf(".aspectRatio(%s, contentMode: .fit)", number(ratio)))
	case hasMode:
		e.line(level, fmt.Sprintf(".aspectRatio(contentMode: .%s)", mode))
	}

	if f, ok := c.Font.Get(); ok {
		if style := strcase.ToLowerCamel(f); textStyles[style] {
			e.line(level, ".font(."+style+")")
		} else {
			e.line(level, fmt.Sprintf(".font(.custom(%s, size: 17))", swiftString(f)))
		}
	}
	if fg, ok := c.ForegroundColor.Get(); ok {
		e.line(level, fmt.Sprintf(".foregroundColor(%s)", e.color(fg)))
	}
	if bg, ok := c.BackgroundColor.Get(); ok {
		e.line(level, fmt.Sprintf(".background(%s)", e.color(bg)))
	}
	if r, ok := c.CornerRadius.Get(); ok {
		e.line(level, fmt.Sprintf(".cornerRadius(%s)", number(r)))
	}
	if c.Clipped.OrElse(false) {
		e.line(level, ".clipped()")
	}
}

func dimension(d node.Dimension) string {
	if d.IsInfinite() {
		return ".infinity"
	}
	return number(d.Points())
}

func (e *emitter) padding(p node.Padding, level int) {
	if all, ok := p.All.Get(); ok {
		e.line(level, fmt.Sprintf(".padding(%s)", number(all)))
		return
	}
	edges := []struct {
		name  string
		value node.Optional[float64]
	}{
		{"top", p.Top},
		{"leading", p.Leading},
		{"bottom", p.Bottom},
		{"trailing", p.Trailing},
	}
	for _, edge := range edges {
		if v, ok := edge.value.Get(); ok {
			e.line(level, fmt.Sprintf(".padding(.%s, %s)", edge.name, number(v)))
		}
	}
}

// color maps a color string to a SwiftUI expression: a system color, a hex
// literal through the Color(hex:) extension, or an asset catalog name.
func (e *emitter) color(s string) string {
	if hexColorRegex.MatchString(s) {
		e.usesHex = true
		return fmt.Sprintf("Color(hex: %s)", swiftString(s))
	}
	if name := strcase.ToLowerCamel(s); namedColors[name] {
		return "Color." + name
	}
	return fmt.Sprintf("Color(%s)", swiftString(s))
}

func number(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func swiftString(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if r < 0x20 {
				fmt.Fprintf(&b, `\u{%X}`, r)
			} else {
				b.WriteRune(r)
			}
		}
	}
	b.WriteByte('"')
	return b.String()
}
