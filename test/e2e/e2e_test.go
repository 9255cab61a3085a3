package e2e_test

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// junBinary is built once by TestMain
var junBinary string

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "jun-e2e")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create temp dir: %v\n", err)
		os.Exit(1)
	}

	junBinary = filepath.Join(dir, "jun")
	build := exec.Command("go", "build", "-o", junBinary, "../..")
	if out, err := build.CombinedOutput(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to build jun: %v\n%s", err, out)
		_ = os.RemoveAll(dir)
		os.Exit(1)
	}

	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

// runJun runs the binary with stdin and returns stdout, stderr and the run error
func runJun(t testing.TB, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := exec.Command(junBinary, args...)
	cmd.Stdin = strings.NewReader(stdin)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

// TestEndToEnd_ProfileScreen runs a realistic screen through every command
func TestEndToEnd_ProfileScreen(t *testing.T) {
	input := filepath.Join("..", "..", "testdata", "samples", "profile.json")

	stdout, stderr, err := runJun(t, "", "check", "-i", input)
	require.NoError(t, err, stderr)
	assert.Contains(t, stdout, "valid jun-1.1 document")

	outputFile := filepath.Join(t.TempDir(), "profile.json")
	_, stderr, err = runJun(t, "", "fmt", "-i", input, "-o", outputFile)
	require.NoError(t, err, stderr)

	formatted, err := os.ReadFile(outputFile)
	require.NoError(t, err)

	// The canonical output decodes again to the same document
	stdout, stderr, err = runJun(t, "", "fmt", "-i", outputFile)
	require.NoError(t, err, stderr)
	assert.Equal(t, string(formatted), stdout)

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(formatted, &doc))
	assert.Equal(t, "vstack", doc["type"])

	stdout, stderr, err = runJun(t, "", "swift", "-i", input, "--view-name", "profile_screen")
	require.NoError(t, err, stderr)
	assert.Contains(t, stdout, "struct ProfileScreen: View {")
	assert.Contains(t, stdout, "VStack(")
	assert.Contains(t, stdout, "Button(")

	stdout, stderr, err = runJun(t, "", "stats", "--json", "-i", input)
	require.NoError(t, err, stderr)
	var stats map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(stdout), &stats))
	assert.Greater(t, stats["nodes"], float64(5))
}

// TestEndToEnd_LegacyUpgrade checks that legacy field names come back canonical
func TestEndToEnd_LegacyUpgrade(t *testing.T) {
	input := `{
		"id": "9b2c1a4e-7f3d-4c8a-b5e6-1d2f3a4b5c6d",
		"type": "layout/hstack",
		"properties": {"spacing": 4},
		"children": [
			{"id": "9b2c1a4e-7f3d-4c8a-b5e6-1d2f3a4b5c6e", "type": "Button", "properties": {"buttonLabel": "Old", "title": "Older"}},
			{"id": "9b2c1a4e-7f3d-4c8a-b5e6-1d2f3a4b5c6f", "type": "IMAGE", "properties": {"src": "https://example.com/a.png"}}
		]
	}`

	stdout, stderr, err := runJun(t, input, "fmt", "--compact")
	require.NoError(t, err, stderr)

	expected := `{"id":"9b2c1a4e-7f3d-4c8a-b5e6-1d2f3a4b5c6d","type":"hstack","properties":{"spacing":4},"children":[` +
		`{"id":"9b2c1a4e-7f3d-4c8a-b5e6-1d2f3a4b5c6e","type":"button","properties":{"label":"Old"}},` +
		`{"id":"9b2c1a4e-7f3d-4c8a-b5e6-1d2f3a4b5c6f","type":"image","properties":{"url":"https://example.com/a.png"}}]}` + "\n"
	assert.Equal(t, expected, stdout)
}

// TestEndToEnd_Dialects decodes the same inputs under each dialect
func TestEndToEnd_Dialects(t *testing.T) {
	testCases := []struct {
		name    string
		json    string
		dialect string
		isError bool
	}{
		{"UnknownTypeLenient", `{"type": "carousel", "children": [{"type": "text"}]}`, "jun-1.1", false},
		{"UnknownTypeStrict", `{"type": "carousel"}`, "poc", true},
		{"ShapeInPOC", `{"type": "rectangle"}`, "poc", true},
		{"ShapeInJUN10", `{"type": "rectangle"}`, "jun-1.0", false},
		{"QualifiedName", `{"type": "shape/circle"}`, "jun", false},
		{"SymbolImagePOC", `{"type": "image", "properties": {"systemName": "star"}}`, "poc", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, stderr, err := runJun(t, tc.json, "check", "--dialect", tc.dialect)
			if tc.isError {
				assert.Error(t, err)
				assert.Contains(t, stderr, "unknown component type")
			} else {
				assert.NoError(t, err, stderr)
			}
		})
	}
}

// TestEndToEnd_YAMLInput reads a YAML authored document
func TestEndToEnd_YAMLInput(t *testing.T) {
	input := filepath.Join("..", "..", "testdata", "samples", "card.yaml")

	stdout, stderr, err := runJun(t, "", "get", "-i", input, "children.1.children.#.type")
	require.NoError(t, err, stderr)
	assert.Contains(t, stdout, `"text"`)

	stdout, stderr, err = runJun(t, "", "fmt", "-i", input)
	require.NoError(t, err, stderr)
	assert.Contains(t, stdout, `"type": "zstack"`)
}

// TestEndToEnd_DeepTrees exercises the depth guard through the binary
func TestEndToEnd_DeepTrees(t *testing.T) {
	chain := func(depth int) string {
		var b strings.Builder
		for i := 1; i < depth; i++ {
			b.WriteString(`{"type":"vstack","children":[`)
		}
		b.WriteString(`{"type":"text"}`)
		for i := 1; i < depth; i++ {
			b.WriteString(`]}`)
		}
		return b.String()
	}

	_, stderr, err := runJun(t, chain(500), "check")
	assert.NoError(t, err, stderr)

	_, stderr, err = runJun(t, chain(501), "check")
	assert.Error(t, err)
	assert.Contains(t, stderr, "maximum nesting depth exceeded")

	// Far too deep input is rejected by the parser before any node is built
	_, stderr, err = runJun(t, chain(10000), "check")
	assert.Error(t, err)
	assert.Contains(t, stderr, "document nesting exceeds")

	_, stderr, err = runJun(t, chain(600), "check", "--max-depth", "600")
	assert.NoError(t, err, stderr)
}

// TestEndToEnd_EdgeCases tests various edge cases
func TestEndToEnd_EdgeCases(t *testing.T) {
	testCases := []struct {
		name     string
		json     string
		expected string
		isError  bool
	}{
		{
			name:     "EmptyChildrenKept",
			json:     `{"type": "vstack", "children": []}`,
			expected: `"children": []`,
		},
		{
			name:     "AbsentChildrenOmitted",
			json:     `{"type": "divider"}`,
			expected: `"type": "divider"`,
		},
		{
			name:     "MixedCaseType",
			json:     `{"type": "sCrOlLvIeW"}`,
			expected: `"axis": "vertical"`,
		},
		{
			name:     "UnknownTypeFallback",
			json:     `{"type": "carousel"}`,
			expected: `"content": "Unknown component: carousel"`,
		},
		{
			name:    "MissingType",
			json:    `{"properties": {}}`,
			isError: true,
		},
		{
			name:    "PropertiesNotObject",
			json:    `{"type": "text", "properties": [1]}`,
			isError: true,
		},
		{
			name:    "ChildNotObject",
			json:    `{"type": "vstack", "children": [42]}`,
			isError: true,
		},
		{
			name:    "RootArray",
			json:    `[]`,
			isError: true,
		},
		{
			name:    "InvalidJSON",
			json:    `{"type": "text",}`,
			isError: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			stdout, stderr, err := runJun(t, tc.json, "fmt")

			if tc.isError {
				assert.Error(t, err, "Expected an error for %s", tc.name)
				assert.Contains(t, stderr, "For help, run: jun --help")
			} else {
				assert.NoError(t, err, "Unexpected error for %s: %s", tc.name, stderr)
				assert.Contains(t, stdout, tc.expected, "Expected output not found for %s", tc.name)
			}
		})
	}

	stdout, _, err := runJun(t, `{"type": "divider"}`, "fmt")
	require.NoError(t, err)
	assert.NotContains(t, stdout, "children")
}
