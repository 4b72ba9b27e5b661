package parser

import (
	"fmt"

	"github.com/lukedodd/JitCalc/internal/token"
)

// ParseError represents a structural error encountered while reading an
// s-expression: unbalanced parentheses, empty input, malformed literals.
// It implements the error interface and includes source position information.
type ParseError struct {
	Pos     token.Position // Position where the error occurred
	Message string         // Human-readable error message
}

// Error returns a formatted error message with position information.
func (e *ParseError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s: %s", e.Pos, e.Message)
	}
	return e.Message
}

// ShapeError reports a well-nested s-expression that does not have the
// required top-level function shape ((name1 ... nameK) expr).
type ShapeError struct {
	Pos     token.Position // Position of the offending element
	Message string         // Human-readable error message
}

// Error returns a formatted error message with position information.
func (e *ShapeError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s: %s", e.Pos, e.Message)
	}
	return e.Message
}

// errorf creates a ParseError at the given position with a formatted message.
func errorf(pos token.Position, format string, args ...any) *ParseError {
	return &ParseError{
		Pos:     pos,
		Message: fmt.Sprintf(format, args...),
	}
}

// shapeErrorf creates a ShapeError at the given position with a formatted message.
func shapeErrorf(pos token.Position, format string, args ...any) *ShapeError {
	return &ShapeError{
		Pos:     pos,
		Message: fmt.Sprintf(format, args...),
	}
}
