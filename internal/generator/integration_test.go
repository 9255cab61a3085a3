package generator

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcncl/jun/internal/node"
	"github.com/mcncl/jun/internal/parser"
)

func TestIntegration_ParserDecoderGenerator(t *testing.T) {
	// Test the full pipeline: Parser -> Decoder -> Generator
	jsonInput := `{
		"type": "vstack",
		"properties": {"alignment": "leading", "spacing": 8, "backgroundColor": "#FF0000"},
		"children": [
			{"type": "text", "properties": {"text": "Title", "font": "title"}},
			{"type": "button", "properties": {"buttonLabel": "Go", "action": "go"}},
			{"type": "spacer"}
		]
	}`

	// Parse the JSON
	doc, err := parser.ParseString(jsonInput)
	require.NoError(t, err)

	// Decode the tree
	root, err := node.Decode(doc.Root)
	require.NoError(t, err)

	// Generate SwiftUI
	generatedCode, err := NewGenerator().GenerateSwiftUI(root)
	require.NoError(t, err)

	expectedCode := `import SwiftUI

struct ContentView: View {
    var onAction: (String) -> Void = { _ in }

    var body: some View {
        VStack(alignment: .leading, spacing: 8) {
            Text("Title")
                .font(.title)
            Button("Go") {
                onAction("go")
            }
            Spacer()
        }
        .background(Color(hex: "#FF0000"))
    }
}

extension Color {
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
	assert.Equal(t, expectedCode, generatedCode)
}

func TestIntegration_POCDocument(t *testing.T) {
	jsonInput := `{
		"type": "hstack",
		"children": [
			{"type": "image", "properties": {"systemName": "heart", "foregroundColor": "pink"}},
			{"type": "text", "properties": {"content": "Liked"}}
		]
	}`

	doc, err := parser.ParseString(jsonInput)
	require.NoError(t, err)
	root, err := node.Decode(doc.Root, node.WithDialect(node.POC))
	require.NoError(t, err)

	generatedCode, err := NewGenerator().GenerateSwiftUI(root)
	require.NoError(t, err)

	assert.Contains(t, generatedCode, "        HStack {\n            Image(systemName: \"heart\")\n                .foregroundColor(Color.pink)\n            Text(\"Liked\")\n        }\n")
	assert.NotContains(t, generatedCode, "extension Color")
}

func TestIntegration_SampleFiles(t *testing.T) {
	files, err := filepath.Glob("../../testdata/samples/*.json")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, file := range files {
		t.Run(filepath.Base(file), func(t *testing.T) {
			data, err := os.ReadFile(file)
			require.NoError(t, err)

			dialect := node.DefaultDialect
			if filepath.Base(file) == "poc.json" {
				dialect = node.POC
			}
			root, err := node.DecodeBytes(data, node.WithDialect(dialect))
			require.NoError(t, err)

			generatedCode, err := NewGenerator().GenerateSwiftUI(root)
			require.NoError(t, err)
			assert.Contains(t, generatedCode, "struct ContentView: View {")
		})
	}
}
