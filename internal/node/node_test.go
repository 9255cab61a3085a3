package node

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcncl/jun/internal/errors"
)

func TestNew(t *testing.T) {
	n, err := New(Button, ButtonPayload{Label: "OK"}, WithCommon(CommonProperties{CornerRadius: Some(4.0)}))
	require.NoError(t, err)

	assert.Equal(t, Button, n.Variant())
	assert.Equal(t, ButtonPayload{Label: "OK"}, n.Payload())
	assert.Equal(t, Some(4.0), n.Common().CornerRadius)
	assert.False(t, n.HasChildren())
	_, err = uuid.Parse(n.ID())
	assert.NoError(t, err)
}

func TestNew_RejectsMismatchedPayload(t *testing.T) {
	tests := []struct {
		name    string
		variant Variant
		payload Payload
	}{
		{"text payload on button", Button, TextPayload{Content: "x"}},
		{"stack payload on scroll view", ScrollView, StackPayload{}},
		{"shape payload on stack", VStack, ShapePayload{}},
		{"nil payload", Text, nil},
		{"unknown variant", Variant("carousel"), TextPayload{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.variant, tt.payload)
			assert.ErrorIs(t, err, errors.ErrUnknownVariant)
		})
	}

	assert.Panics(t, func() { MustNew(Divider, SpacerPayload{}) })
}

func TestNode_ChildrenAreCopied(t *testing.T) {
	leaf := MustNew(Text, TextPayload{Content: "a"}, WithID(testID))
	inner := MustNew(HStack, StackPayload{}, WithChildren(leaf))
	kids := []Node{inner}
	root := MustNew(VStack, StackPayload{}, WithChildren(kids...))

	kids[0] = MustNew(Divider, DividerPayload{})
	assert.Equal(t, HStack, root.Child(0).Variant())

	got := root.Children()
	got[0] = MustNew(Divider, DividerPayload{})
	assert.Equal(t, HStack, root.Child(0).Variant())

	assert.Equal(t, "a", root.Child(0).Child(0).Payload().(TextPayload).Content)
}

func TestNode_Walk(t *testing.T) {
	root := MustNew(VStack, StackPayload{}, WithChildren(
		MustNew(Text, TextPayload{Content: "a"}),
		MustNew(HStack, StackPayload{}, WithChildren(
			MustNew(Spacer, SpacerPayload{}),
		)),
		MustNew(Divider, DividerPayload{}),
	))

	var visited []Variant
	var depths []int
	root.Walk(func(n Node, depth int) bool {
		visited = append(visited, n.Variant())
		depths = append(depths, depth)
		return true
	})
	assert.Equal(t, []Variant{VStack, Text, HStack, Spacer, Divider}, visited)
	assert.Equal(t, []int{1, 2, 2, 3, 2}, depths)

	visited = nil
	root.Walk(func(n Node, _ int) bool {
		visited = append(visited, n.Variant())
		return n.Variant() != HStack
	})
	assert.NotContains(t, visited, Spacer)
}

func TestVariant_IsContainer(t *testing.T) {
	assert.True(t, VStack.IsContainer())
	assert.True(t, ScrollView.IsContainer())
	assert.False(t, Text.IsContainer())
	assert.False(t, Circle.IsContainer())
	assert.Equal(t, "shape/circle", Circle.String())
}
