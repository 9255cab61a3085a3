package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcncl/jun/internal/config"
	"github.com/mcncl/jun/internal/errors"
	"github.com/mcncl/jun/internal/parser"
)

const sampleDocument = `{
	"type": "vstack",
	"properties": {"spacing": 8, "padding": 16},
	"children": [
		{"type": "text", "properties": {"text": "Welcome", "font": "title"}},
		{"type": "hstack", "children": [
			{"type": "image", "properties": {"src": "a.png", "width": 40, "height": 40}},
			{"type": "button", "properties": {"title": "Open", "backgroundColor": "blue", "padding": 4}}
		]},
		{"type": "scrollView", "properties": {"scrollAxis": "horizontal"}, "children": []},
		{"type": "carousel", "children": [{"type": "divider"}]}
	]
}`

func TestAnalyze_Tree(t *testing.T) {
	doc, err := parser.ParseString(sampleDocument)
	require.NoError(t, err)

	stats, err := NewAnalyzer().AnalyzeDocument(doc.Root)
	require.NoError(t, err)

	assert.Equal(t, 8, stats.Nodes)
	assert.Equal(t, 3, stats.MaxDepth)
	assert.Equal(t, 5, stats.Leaves)
	assert.Equal(t, 1, stats.EmptyChildren)

	assert.Equal(t, map[string]int{
		"layout/vstack": 1,
		"layout/hstack": 1,
		"text":          2,
		"image":         1,
		"button":        1,
		"scrollView":    1,
		"divider":       1,
	}, stats.Variants)

	assert.Equal(t, map[string]int{
		"padding":         2,
		"font":            1,
		"width":           1,
		"height":          1,
		"backgroundColor": 1,
	}, stats.CommonKeys)
}

func TestAnalyze_SourceOnlyFindings(t *testing.T) {
	doc, err := parser.ParseString(sampleDocument)
	require.NoError(t, err)

	stats, err := NewAnalyzer().AnalyzeDocument(doc.Root)
	require.NoError(t, err)

	assert.Equal(t, map[string]int{
		"text.text":             1,
		"image.src":             1,
		"button.title":          1,
		"scrollView.scrollAxis": 1,
	}, stats.LegacyFields)
	assert.Equal(t, map[string]int{"carousel": 1}, stats.UnknownTypes)
}

func TestAnalyze_WithConfig(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Dialect = "jun-1.0"

	doc, err := parser.ParseString(sampleDocument)
	require.NoError(t, err)

	stats, err := NewAnalyzerWithConfig(cfg).AnalyzeDocument(doc.Root)
	require.NoError(t, err)
	assert.NotContains(t, stats.CommonKeys, "font", "font is not a jun-1.0 property")

	cfg.Dialect = "poc"
	_, err = NewAnalyzerWithConfig(cfg).AnalyzeDocument(doc.Root)
	assert.ErrorIs(t, err, errors.ErrUnknownVariant)

	cfg = config.NewConfig()
	cfg.MaxDepth = 2
	_, err = NewAnalyzerWithConfig(cfg).AnalyzeDocument(doc.Root)
	assert.ErrorIs(t, err, errors.ErrMaxDepthExceeded)
}

func TestAnalyze_SingleNode(t *testing.T) {
	doc, err := parser.ParseString(`{"type": "spacer"}`)
	require.NoError(t, err)

	stats, err := NewAnalyzer().AnalyzeDocument(doc.Root)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Nodes)
	assert.Equal(t, 1, stats.MaxDepth)
	assert.Equal(t, 1, stats.Leaves)
	assert.Equal(t, 0, stats.EmptyChildren)
	assert.Empty(t, stats.CommonKeys)
	assert.Empty(t, stats.LegacyFields)
}

func TestSortedKeys(t *testing.T) {
	keys := SortedKeys(map[string]int{"b": 2, "a": 2, "c": 5, "d": 1})
	assert.Equal(t, []string{"c", "a", "b", "d"}, keys)
	assert.Empty(t, SortedKeys(nil))
}
