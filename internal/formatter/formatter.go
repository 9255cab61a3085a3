package formatter

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/goccy/go-json"

	"github.com/mcncl/jun/internal/config"
	"github.com/mcncl/jun/internal/node"
)

// Formatter lays out JSON documents for output
type Formatter struct {
	indent string
}

// NewFormatter creates a new Formatter instance with two space indentation
func NewFormatter() *Formatter {
	return &Formatter{indent: "  "}
}

// NewFormatterWithConfig creates a Formatter from the output settings of cfg
func NewFormatterWithConfig(cfg *config.Config) *Formatter {
	return &Formatter{indent: cfg.IndentString()}
}

// Compact reports whether output is written on a single line
func (f *Formatter) Compact() bool {
	return f.indent == ""
}

// Format takes one JSON document and returns it indented (or compacted) with
// a trailing newline. Key order is preserved.
func (f *Formatter) Format(data []byte) ([]byte, error) {
	// Handle empty input
	if strings.TrimSpace(string(data)) == "" {
		return nil, nil
	}

	if !json.Valid(data) {
		return nil, fmt.Errorf("failed to format JSON: invalid document")
	}

	var buf bytes.Buffer
	var err error
	if f.Compact() {
		err = json.Compact(&buf, data)
	} else {
		err = json.Indent(&buf, data, "", f.indent)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to format JSON: %w", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// FormatNode encodes n in the given dialect and formats the result
func (f *Formatter) FormatNode(n node.Node, d *node.Dialect) ([]byte, error) {
	data, err := node.Marshal(n, node.WithDialect(d))
	if err != nil {
		return nil, err
	}
	return f.Format(data)
}

// FormatValue marshals an arbitrary value, such as a schema or statistics,
// and formats the result
func (f *Formatter) FormatValue(v interface{}) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal output: %w", err)
	}
	return f.Format(data)
}
