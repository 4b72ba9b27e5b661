package jitcalc

import (
	"errors"
	"fmt"

	"github.com/lukedodd/JitCalc/internal/parser"
)

// ParseError represents a syntax error in expression source code.
type ParseError struct {
	Line    int    // 1-based line number
	Column  int    // 1-based column number
	Message string // Error description
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at %d:%d: %s", e.Line, e.Column, e.Message)
}

// ShapeError represents a structurally valid s-expression that is not a
// well-formed function definition: wrong top-level arity, a parameter list
// containing something other than bare names, or a bare literal body.
type ShapeError struct {
	Line    int    // 1-based line number
	Column  int    // 1-based column number
	Message string // Error description
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("malformed function at %d:%d: %s", e.Line, e.Column, e.Message)
}

// CompileError represents a failure to generate native code for a parsed
// function: an unknown operator, an unbound name, a spill budget overrun,
// or an unsupported platform.
type CompileError struct {
	Message string // Error description
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("compile error: %s", e.Message)
}

// EvalError represents an error during interpreted evaluation: an unknown
// operator, an unbound name, or an argument count mismatch.
type EvalError struct {
	Message string // Error description
}

func (e *EvalError) Error() string {
	return fmt.Sprintf("eval error: %s", e.Message)
}

// convertParseErr maps internal parser errors to the public error types.
func convertParseErr(err error) error {
	var se *parser.ShapeError
	if errors.As(err, &se) {
		return &ShapeError{
			Line:    se.Pos.Line,
			Column:  se.Pos.Column,
			Message: se.Message,
		}
	}
	var pe *parser.ParseError
	if errors.As(err, &pe) {
		return &ParseError{
			Line:    pe.Pos.Line,
			Column:  pe.Pos.Column,
			Message: pe.Message,
		}
	}
	return &ParseError{Message: err.Error()}
}
