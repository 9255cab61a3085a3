package node

// Payload is the type-specific part of a node. The set of payload types is
// closed: each type lists the variants it is the shape for.
type Payload interface {
	serves(v Variant) bool
}

// Axis is the scroll direction of a ScrollView.
type Axis string

const (
	AxisVertical   Axis = "vertical"
	AxisHorizontal Axis = "horizontal"
)

// StackPayload is shared by the three stack variants.
type StackPayload struct {
	Alignment Optional[string]
	Spacing   Optional[float64]
}

func (StackPayload) serves(v Variant) bool {
	return v == VStack || v == HStack || v == ZStack
}

// TextPayload holds a text node's content and typography.
type TextPayload struct {
	Content    string
	FontSize   Optional[float64]
	FontWeight Optional[string]
	LineLimit  Optional[int]
}

func (TextPayload) serves(v Variant) bool { return v == Text }

// ImagePayload addresses an image either by URL (JUN dialects) or by symbol
// name (POC dialect). Which one is read and written depends on the dialect.
type ImagePayload struct {
	URL        string
	SystemName string
	Resizable  Optional[bool]
}

func (ImagePayload) serves(v Variant) bool { return v == Image }

// ButtonPayload holds a button's label and the identifier of its action.
type ButtonPayload struct {
	Label  string
	Action Optional[string]
}

func (ButtonPayload) serves(v Variant) bool { return v == Button }

// ShapePayload is shared by rectangle and circle.
type ShapePayload struct {
	Fill        Optional[string]
	StrokeColor Optional[string]
	StrokeWidth Optional[float64]
}

func (ShapePayload) serves(v Variant) bool {
	return v == Rectangle || v == Circle
}

type ScrollViewPayload struct {
	Axis            Axis
	ShowsIndicators Optional[bool]
}

func (ScrollViewPayload) serves(v Variant) bool { return v == ScrollView }

type SpacerPayload struct {
	MinLength Optional[float64]
}

func (SpacerPayload) serves(v Variant) bool { return v == Spacer }

type DividerPayload struct{}

func (DividerPayload) serves(v Variant) bool { return v == Divider }
