package rsxgen

import (
	"fmt"
	"strings"
)

// Kind classifies a compilation error.
type Kind int

const (
	// SyntaxError means the input is not well-formed.
	SyntaxError Kind = iota
	// SemanticError means the input is well-formed but inconsistent,
	// e.g. a closing tag that does not match its opening tag.
	SemanticError
	// ConfigurationError means the compiler's environment is broken,
	// e.g. the property metadata could not be loaded.
	ConfigurationError
)

// String returns the kind as it appears in diagnostics.
func (k Kind) String() string {
	switch k {
	case SyntaxError:
		return "syntax error"
	case SemanticError:
		return "semantic error"
	case ConfigurationError:
		return "configuration error"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Error represents a compilation error with source location and optional hint.
type Error struct {
	Kind    Kind
	Span    Span
	Message string
	Hint    string // optional suggestion for fixing the error
}

// Error implements the error interface.
func (e *Error) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Span.Start.String())
	sb.WriteString(": ")
	sb.WriteString(e.Kind.String())
	sb.WriteString(": ")
	sb.WriteString(e.Message)
	if e.Hint != "" {
		sb.WriteString(" (")
		sb.WriteString(e.Hint)
		sb.WriteString(")")
	}
	return sb.String()
}

// Pos returns the start of the error's span.
func (e *Error) Pos() Position {
	return e.Span.Start
}

// NewError creates a new Error with the given kind, span and message.
func NewError(kind Kind, span Span, message string) *Error {
	return &Error{Kind: kind, Span: span, Message: message}
}

// NewErrorf creates a new Error with a formatted message.
func NewErrorf(kind Kind, span Span, format string, args ...any) *Error {
	return &Error{Kind: kind, Span: span, Message: fmt.Sprintf(format, args...)}
}

// NewErrorWithHint creates a new Error with a hint for fixing the error.
func NewErrorWithHint(kind Kind, span Span, message, hint string) *Error {
	return &Error{Kind: kind, Span: span, Message: message, Hint: hint}
}

// ErrorList collects multiple errors during compilation.
type ErrorList struct {
	errors []*Error
}

// NewErrorList creates an empty error list.
func NewErrorList() *ErrorList {
	return &ErrorList{}
}

// Add appends an error to the list.
func (el *ErrorList) Add(err *Error) {
	el.errors = append(el.errors, err)
}

// AddError creates and adds an error with the given position and message.
func (el *ErrorList) AddError(kind Kind, pos Position, message string) {
	el.errors = append(el.errors, NewError(kind, pointSpan(pos), message))
}

// AddErrorf creates and adds an error with a formatted message.
func (el *ErrorList) AddErrorf(kind Kind, pos Position, format string, args ...any) {
	el.errors = append(el.errors, NewErrorf(kind, pointSpan(pos), format, args...))
}

// Len returns the number of errors.
func (el *ErrorList) Len() int {
	return len(el.errors)
}

// HasErrors returns true if there are any errors.
func (el *ErrorList) HasErrors() bool {
	return len(el.errors) > 0
}

// Errors returns a copy of the error slice.
func (el *ErrorList) Errors() []*Error {
	result := make([]*Error, len(el.errors))
	copy(result, el.errors)
	return result
}

// Error implements the error interface, returning all errors joined by newlines.
func (el *ErrorList) Error() string {
	if len(el.errors) == 0 {
		return ""
	}
	if len(el.errors) == 1 {
		return el.errors[0].Error()
	}

	var sb strings.Builder
	for i, err := range el.errors {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(err.Error())
	}
	return sb.String()
}

// Unwrap exposes the individual errors to errors.Is and errors.As.
func (el *ErrorList) Unwrap() []error {
	errs := make([]error, len(el.errors))
	for i, err := range el.errors {
		errs[i] = err
	}
	return errs
}

// Err returns nil if there are no errors, otherwise returns the ErrorList as an error.
func (el *ErrorList) Err() error {
	if len(el.errors) == 0 {
		return nil
	}
	return el
}
