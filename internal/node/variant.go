package node

// Variant selects the payload shape of a node.
type Variant string

// Known variants. The values are the qualified tags; the names written to
// the wire are registered per dialect.
const (
	VStack     Variant = "layout/vstack"
	HStack     Variant = "layout/hstack"
	ZStack     Variant = "layout/zstack"
	Text       Variant = "text"
	Image      Variant = "image"
	Button     Variant = "button"
	Rectangle  Variant = "shape/rectangle"
	Circle     Variant = "shape/circle"
	ScrollView Variant = "scrollView"
	Spacer     Variant = "spacer"
	Divider    Variant = "divider"
)

func (v Variant) String() string {
	return string(v)
}

// IsContainer reports whether nodes of this variant lay out their children.
func (v Variant) IsContainer() bool {
	switch v {
	case VStack, HStack, ZStack, ScrollView:
		return true
	}
	return false
}
