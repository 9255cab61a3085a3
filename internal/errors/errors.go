package errors

import (
	"errors"
	"fmt"
)

// Standard application errors
var (
	ErrEmptyInput      = errors.New("input is empty or contains only whitespace")
	ErrInvalidJSON     = errors.New("invalid JSON format")
	ErrInvalidYAML     = errors.New("invalid YAML format")
	ErrMultipleJSON    = errors.New("multiple JSON values found at the root, only one is allowed")
	ErrFileNotFound    = errors.New("file not found")
	ErrFileEmpty       = errors.New("file is empty")
	ErrNoInput         = errors.New("no input provided: please specify a file with -i or pipe a document to stdin")
	ErrInvalidFilePath = errors.New("invalid file path")
	ErrUnknownDialect  = errors.New("unknown dialect")
	ErrPathNotFound    = errors.New("path not found")
)

// Decode contract errors. Field-level problems never produce these; only
// structural problems do.
var (
	ErrMissingDiscriminator = errors.New("missing \"type\" discriminator")
	ErrUnknownVariant       = errors.New("unknown component type")
	ErrMalformedProperties  = errors.New("\"properties\" is not a JSON object")
	ErrMalformedChildren    = errors.New("\"children\" is not a JSON array")
	ErrMalformedNode        = errors.New("node is not a JSON object")
	ErrMaxDepthExceeded     = errors.New("maximum nesting depth exceeded")
)

// ErrIncompatiblePayload is returned on encode when the target dialect cannot
// write a node's payload, such as a URL image in POC.
var ErrIncompatiblePayload = errors.New("payload not expressible in the target dialect for")

// ErrorType categorizes errors
type ErrorType string

const (
	ErrorTypeInput   ErrorType = "input"
	ErrorTypeParsing ErrorType = "parsing"
	ErrorTypeDecode  ErrorType = "decode"
	ErrorTypeEncode  ErrorType = "encode"
	ErrorTypeConfig  ErrorType = "config"
	ErrorTypeOutput  ErrorType = "output"
	ErrorTypeUnknown ErrorType = "unknown"
)

// AppError is an application-specific error with context
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

// Error implements error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns wrapped error
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for comparison
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

// NodeError reports a structural decode or encode failure at a position in
// the tree. Kind is one of the decode contract sentinels above.
type NodeError struct {
	Kind error
	// Path locates the failing node, e.g. /children/2/children/0.
	// The root node has an empty path.
	Path string
	// Type is the offending discriminator, when there is one.
	Type string
}

// Error implements error interface
func (e *NodeError) Error() string {
	where := e.Path
	if where == "" {
		where = "root"
	}
	if e.Type != "" {
		return fmt.Sprintf("%v %q at %s", e.Kind, e.Type, where)
	}
	return fmt.Sprintf("%v at %s", e.Kind, where)
}

// Unwrap returns the sentinel kind so errors.Is matches the taxonomy.
func (e *NodeError) Unwrap() error {
	return e.Kind
}

// NewNodeError creates a structural error for the node at path
func NewNodeError(kind error, path, typ string) *NodeError {
	return &NodeError{Kind: kind, Path: path, Type: typ}
}

// NewInputError creates a new error related to input processing
func NewInputError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeInput,
		Message: message,
		Err:     err,
	}
}

// NewParsingError creates a new error related to JSON parsing
func NewParsingError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeParsing,
		Message: message,
		Err:     err,
	}
}

// NewDecodeError creates a new error related to decoding a node tree
func NewDecodeError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeDecode,
		Message: message,
		Err:     err,
	}
}

// NewEncodeError creates a new error related to encoding a node tree
func NewEncodeError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeEncode,
		Message: message,
		Err:     err,
	}
}

// NewConfigError creates a new error related to configuration
func NewConfigError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeConfig,
		Message: message,
		Err:     err,
	}
}

// NewOutputError creates a new error related to output processing
func NewOutputError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeOutput,
		Message: message,
		Err:     err,
	}
}

// UserFriendlyError returns a user-friendly error message
func UserFriendlyError(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		switch appErr.Type {
		case ErrorTypeInput:
			return fmt.Sprintf("Input error: %s", appErr.Message)
		case ErrorTypeParsing:
			return fmt.Sprintf("Document parsing error: %s", appErr.Message)
		case ErrorTypeDecode:
			var nodeErr *NodeError
			if errors.As(appErr.Err, &nodeErr) {
				return fmt.Sprintf("Decode error: %s: %s", appErr.Message, nodeErr.Error())
			}
			return fmt.Sprintf("Decode error: %s", appErr.Message)
		case ErrorTypeEncode:
			var nodeErr *NodeError
			if errors.As(appErr.Err, &nodeErr) {
				return fmt.Sprintf("Encode error: %s: %s", appErr.Message, nodeErr.Error())
			}
			return fmt.Sprintf("Encode error: %s", appErr.Message)
		case ErrorTypeConfig:
			return fmt.Sprintf("Configuration error: %s", appErr.Message)
		case ErrorTypeOutput:
			return fmt.Sprintf("Output error: %s", appErr.Message)
		default:
			return fmt.Sprintf("Error: %s", appErr.Message)
		}
	}

	var nodeErr *NodeError
	if errors.As(err, &nodeErr) {
		return fmt.Sprintf("Decode error: %s", nodeErr.Error())
	}

	// Handle standard errors
	if errors.Is(err, ErrEmptyInput) {
		return "Error: The input is empty. Please provide a JUN document."
	}
	if errors.Is(err, ErrInvalidJSON) {
		return "Error: The input contains invalid JSON. Please check your JSON syntax."
	}
	if errors.Is(err, ErrMultipleJSON) {
		return "Error: Multiple JSON values found. A document is exactly one root node object."
	}
	if errors.Is(err, ErrFileNotFound) {
		return "Error: The specified file could not be found. Please check the file path."
	}
	if errors.Is(err, ErrFileEmpty) {
		return "Error: The specified file is empty. Please provide a file with a JUN document."
	}
	if errors.Is(err, ErrNoInput) {
		return "Error: No input provided. Please specify a file with -i or pipe a document to stdin."
	}
	if errors.Is(err, ErrInvalidFilePath) {
		return "Error: Invalid file path. Please provide a valid file path."
	}

	// Generic error message for unknown errors
	return fmt.Sprintf("Error: %v", err)
}
