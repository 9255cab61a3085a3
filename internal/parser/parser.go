package parser

import (
	"bytes"
	stderrors "errors" // Standard errors package
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/mcncl/jun/internal/errors" // Custom errors package
	"github.com/mcncl/jun/internal/models"
)

// DefaultMaxNesting bounds the bracket nesting of a raw document. It stays
// below the JSON decoder's own recursion limit so deep input is reported as
// ErrMaxDepthExceeded instead of a syntax error.
const DefaultMaxNesting = 9000

// Option configures parsing.
type Option func(*options)

type options struct {
	maxNesting int
}

// WithMaxNesting sets the maximum object/array nesting accepted in a raw
// document. Values <= 0 or above DefaultMaxNesting fall back to DefaultMaxNesting.
func WithMaxNesting(n int) Option {
	return func(o *options) {
		if n > 0 && n <= DefaultMaxNesting {
			o.maxNesting = n
		}
	}
}

func newOptions(opts []Option) options {
	o := options{maxNesting: DefaultMaxNesting}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Parse reads a single JSON value from reader
func Parse(reader io.Reader, opts ...Option) (models.Document, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return models.Document{}, errors.NewInputError("failed to read input", err)
	}
	return ParseBytes(data, opts...)
}

// ParseBytes parses exactly one JSON value from data
func ParseBytes(data []byte, opts ...Option) (models.Document, error) {
	o := newOptions(opts)

	if len(bytes.TrimSpace(data)) == 0 {
		return models.Document{}, errors.NewParsingError("input is empty or contains only whitespace", errors.ErrEmptyInput)
	}

	if err := checkNesting(data, o.maxNesting); err != nil {
		return models.Document{}, err
	}

	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber() // Ensure numbers are read as json.Number

	var rootValue models.JSONValue
	if err := decoder.Decode(&rootValue); err != nil {
		var syntaxError *json.SyntaxError
		if stderrors.As(err, &syntaxError) {
			return models.Document{}, errors.NewParsingError(
				fmt.Sprintf("JSON syntax error at offset %d", syntaxError.Offset),
				errors.ErrInvalidJSON,
			)
		}
		if stderrors.Is(err, io.EOF) || stderrors.Is(err, io.ErrUnexpectedEOF) {
			return models.Document{}, errors.NewParsingError("unexpected end of JSON input", errors.ErrInvalidJSON)
		}
		return models.Document{}, errors.NewParsingError("failed to decode JSON", stderrors.Join(errors.ErrInvalidJSON, err))
	}

	// Only whitespace may follow the root value.
	if decoder.More() {
		var trailingValue interface{}
		if err := decoder.Decode(&trailingValue); err != nil {
			if !stderrors.Is(err, io.EOF) {
				return models.Document{}, errors.NewParsingError("invalid trailing data after first JSON value", errors.ErrInvalidJSON)
			}
		} else {
			return models.Document{}, errors.NewParsingError("multiple JSON values found at the root", errors.ErrMultipleJSON)
		}
	}

	return models.Document{
		Root: normalizeJSONValue(rootValue),
		Raw:  data,
	}, nil
}

// ParseString parses JSON from a string
func ParseString(jsonString string, opts ...Option) (models.Document, error) {
	if strings.TrimSpace(jsonString) == "" {
		return models.Document{}, errors.NewInputError("input string is empty", errors.ErrEmptyInput)
	}
	return ParseBytes([]byte(jsonString), opts...)
}

// ParseYAML parses a YAML authored document. The result is normalized to the
// same JSON value model and Raw holds its JSON encoding.
func ParseYAML(data []byte) (models.Document, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return models.Document{}, errors.NewParsingError("input is empty or contains only whitespace", errors.ErrEmptyInput)
	}

	var rootValue interface{}
	if err := yaml.Unmarshal(data, &rootValue); err != nil {
		return models.Document{}, errors.NewParsingError("YAML syntax error", stderrors.Join(errors.ErrInvalidYAML, err))
	}

	root := normalizeJSONValue(rootValue)
	raw, err := json.Marshal(root)
	if err != nil {
		return models.Document{}, errors.NewParsingError("YAML document has no JSON representation", stderrors.Join(errors.ErrInvalidYAML, err))
	}
	return models.Document{Root: root, Raw: raw}, nil
}

// ParseFile parses a document from a file path. Files ending in .yaml or
// .yml are read as YAML, everything else as JSON.
func ParseFile(filePath string, opts ...Option) (models.Document, error) {
	if strings.TrimSpace(filePath) == "" {
		return models.Document{}, errors.NewInputError("file path is empty", errors.ErrInvalidFilePath)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return models.Document{}, errors.NewInputError(
				fmt.Sprintf("file '%s' not found", filePath),
				errors.ErrFileNotFound,
			)
		}
		return models.Document{}, errors.NewInputError(
			fmt.Sprintf("failed to open file '%s'", filePath),
			err,
		)
	}
	if len(data) == 0 {
		return models.Document{}, errors.NewInputError(
			fmt.Sprintf("input file '%s' is empty", filePath),
			errors.ErrFileEmpty,
		)
	}

	if IsYAMLPath(filePath) {
		return ParseYAML(data)
	}
	return ParseBytes(data, opts...)
}

// IsYAMLPath reports whether path names a YAML file by extension.
func IsYAMLPath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// checkNesting scans data for bracket nesting deeper than limit, skipping
// string contents. Unbalanced input is left for the decoder to reject.
func checkNesting(data []byte, limit int) error {
	depth := 0
	inString := false
	escaped := false
	for i, c := range data {
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{', '[':
			depth++
			if depth > limit {
				return errors.NewParsingError(
					fmt.Sprintf("document nesting exceeds %d levels at offset %d", limit, i),
					errors.ErrMaxDepthExceeded,
				)
			}
		case '}', ']':
			if depth > 0 {
				depth--
			}
		}
	}
	return nil
}

// normalizeJSONValue converts raw decoded types into our model types
func normalizeJSONValue(val interface{}) models.JSONValue {
	switch v := val.(type) {
	case map[string]interface{}:
		obj := make(models.JSONObject, len(v))
		for key, value := range v {
			obj[key] = normalizeJSONValue(value)
		}
		return obj
	case map[interface{}]interface{}:
		obj := make(models.JSONObject, len(v))
		for key, value := range v {
			obj[fmt.Sprint(key)] = normalizeJSONValue(value)
		}
		return obj
	case []interface{}:
		arr := make(models.JSONArray, len(v))
		for i, value := range v {
			arr[i] = normalizeJSONValue(value)
		}
		return arr
	default:
		return v // Primitives (string, json.Number, bool, nil) are returned as is
	}
}
