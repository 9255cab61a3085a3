package formatter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcncl/jun/internal/config"
	"github.com/mcncl/jun/internal/errors"
	"github.com/mcncl/jun/internal/node"
)

func TestFormat_Indent(t *testing.T) {
	input := `{"id":"x","type":"vstack","properties":{"spacing":8},"children":[{"type":"divider"}]}`

	formatted, err := NewFormatter().Format([]byte(input))
	require.NoError(t, err)

	expectedOutput := `{
  "id": "x",
  "type": "vstack",
  "properties": {
    "spacing": 8
  },
  "children": [
    {
      "type": "divider"
    }
  ]
}
`
	assert.Equal(t, expectedOutput, string(formatted))
}

func TestFormat_Compact(t *testing.T) {
	input := `{
		"type": "text",
		"properties": {"content": "a b"}
	}`

	cfg := config.NewConfig()
	cfg.Output.Compact = true
	f := NewFormatterWithConfig(cfg)
	assert.True(t, f.Compact())

	formatted, err := f.Format([]byte(input))
	require.NoError(t, err)
	assert.Equal(t, "{\"type\":\"text\",\"properties\":{\"content\":\"a b\"}}\n", string(formatted))
}

func TestFormat_ConfiguredIndent(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Output.Indent = 4

	formatted, err := NewFormatterWithConfig(cfg).Format([]byte(`{"children":[]}`))
	require.NoError(t, err)
	assert.Equal(t, "{\n    \"children\": []\n}\n", string(formatted))
}

func TestFormat_EmptyInput(t *testing.T) {
	formatted, err := NewFormatter().Format([]byte("  \n"))
	require.NoError(t, err)
	assert.Empty(t, formatted)
}

func TestFormat_InvalidInput(t *testing.T) {
	_, err := NewFormatter().Format([]byte(`{"type": }`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to format JSON")
}

func TestFormatNode(t *testing.T) {
	n := node.MustNew(node.Button, node.ButtonPayload{Label: "OK"},
		node.WithID("00000000-0000-4000-8000-000000000001"))

	formatted, err := NewFormatter().FormatNode(n, node.JUN11)
	require.NoError(t, err)

	expectedOutput := `{
  "id": "00000000-0000-4000-8000-000000000001",
  "type": "button",
  "properties": {
    "label": "OK"
  }
}
`
	assert.Equal(t, expectedOutput, string(formatted))

	_, err = NewFormatter().FormatNode(node.MustNew(node.Circle, node.ShapePayload{}), node.POC)
	assert.ErrorIs(t, err, errors.ErrUnknownVariant)
}

func TestFormatValue(t *testing.T) {
	formatted, err := NewFormatter().FormatValue(map[string]int{"b": 2, "a": 1})
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"a\": 1,\n  \"b\": 2\n}\n", string(formatted))

	_, err = NewFormatter().FormatValue(func() {})
	assert.Error(t, err)
}
