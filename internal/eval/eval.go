// Package eval implements the generic tree-evaluation protocol shared by the
// interpreter and the native code generator.
//
// An Evaluator is parameterized by an abstract value type V and configured
// with three hooks: a literal handler (text -> V), an optional name handler
// (identifier -> V), and an operation table (identifier -> n-ary function
// over V). The interpreter instantiates V as float64; the code generator
// instantiates V as a compile-time value handle and emits instructions from
// its hooks, which is why operand evaluation order is part of the contract:
// operands are always evaluated left to right, in textual order.
package eval

import (
	"fmt"

	"github.com/lukedodd/JitCalc/internal/ast"
)

// Op is an n-ary operation over evaluated operand values. Each operation is
// responsible for consuming exactly the operands it expects; the protocol
// itself performs no arity checking.
type Op[V any] func(args []V) (V, error)

// Evaluator is a configured instance of the evaluation protocol.
type Evaluator[V any] struct {
	// Literal converts a literal's source text into a value.
	Literal func(text string) (V, error)

	// Name resolves a bare name in value position. If nil, evaluating a
	// Name node fails with an UnboundNameError.
	Name func(ident string) (V, error)

	// Ops maps operator identifiers to their implementations.
	Ops map[string]Op[V]
}

// Eval evaluates an expression tree:
//
//   - a Literal is passed to the literal handler;
//   - a Name in value position is passed to the name handler;
//   - an Application evaluates its operands left to right, then applies the
//     operation named by its first child. The operator position is looked up
//     by its literal name, never evaluated as a value.
func (e *Evaluator[V]) Eval(node ast.Node) (V, error) {
	var zero V

	switch n := node.(type) {
	case *ast.Literal:
		return e.Literal(n.Text)

	case *ast.Name:
		if e.Name == nil {
			return zero, &UnboundNameError{Name: n.Ident}
		}
		return e.Name(n.Ident)

	case *ast.Application:
		opName, ok := n.Operator()
		if !ok {
			if len(n.Children) == 0 {
				return zero, &ProtocolError{Message: "cannot evaluate an empty application"}
			}
			return zero, &ProtocolError{
				Message: fmt.Sprintf("operator position must be a name, got %s", ast.Format(n.Children[0])),
			}
		}

		operands := n.Operands()
		args := make([]V, len(operands))
		for i, operand := range operands {
			v, err := e.Eval(operand)
			if err != nil {
				return zero, err
			}
			args[i] = v
		}

		op, ok := e.Ops[opName]
		if !ok {
			return zero, &UnknownProcedureError{Name: opName}
		}
		return op(args)

	default:
		return zero, &ProtocolError{Message: fmt.Sprintf("cannot evaluate node of type %T", node)}
	}
}

// UnknownProcedureError reports an application whose operator identifier is
// absent from the operation table.
type UnknownProcedureError struct {
	Name string // The unresolved operator identifier
}

func (e *UnknownProcedureError) Error() string {
	return fmt.Sprintf("could not handle procedure: %s", e.Name)
}

// UnboundNameError reports a name evaluated as a value that has no entry in
// the parameter binding and no operator meaning.
type UnboundNameError struct {
	Name string // The unresolved identifier
}

func (e *UnboundNameError) Error() string {
	return fmt.Sprintf("cannot resolve symbol: %s", e.Name)
}

// ArityError reports an operation applied to the wrong number of operands.
type ArityError struct {
	Op   string // Operator identifier
	Want int    // Expected operand count
	Got  int    // Actual operand count
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("operator %q expects %d operands, got %d", e.Op, e.Want, e.Got)
}

// BadLiteralError reports literal text that could not be parsed as a number.
// The scanner rejects malformed numeric literals before a tree exists, so
// this error guards the literal handlers against trees constructed by hand.
type BadLiteralError struct {
	Text string
}

func (e *BadLiteralError) Error() string {
	return fmt.Sprintf("invalid numeric literal: %q", e.Text)
}

// ProtocolError reports a tree that violates the evaluation protocol's
// structural requirements (empty application, non-name operator position).
type ProtocolError struct {
	Message string
}

func (e *ProtocolError) Error() string {
	return e.Message
}
