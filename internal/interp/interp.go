// Package interp implements the interpreted backend: an instance of the
// generic evaluation protocol with V = float64.
package interp

import (
	"strconv"

	"github.com/lukedodd/JitCalc/internal/ast"
	"github.com/lukedodd/JitCalc/internal/eval"
)

// Function is an interpreted function: an expression tree bound to an
// ordered parameter list. The tree and parameter binding are built once and
// reused across calls; the argument sequence is supplied per call.
//
// Evaluation is a pure function of (tree, binding, arguments): a Function is
// safe for concurrent use and remains usable after a failed call.
type Function struct {
	body    ast.Node
	binding *eval.Binding
}

// New constructs an interpreted function from a declared parameter list and
// an expression body. Duplicate parameter names fail construction; a bad
// operator or unbound name inside the body is reported per call, at the
// point of use.
func New(params []string, body ast.Node) (*Function, error) {
	binding, err := eval.NewBinding(params)
	if err != nil {
		return nil, err
	}
	return &Function{body: body, binding: binding}, nil
}

// ParamCount returns the number of declared parameters.
func (f *Function) ParamCount() int {
	return f.binding.Len()
}

// Eval evaluates the function body against one argument sequence.
// The argument count must match the declared parameter count.
func (f *Function) Eval(args []float64) (float64, error) {
	if len(args) != f.binding.Len() {
		return 0, &eval.ArityError{Op: "call", Want: f.binding.Len(), Got: len(args)}
	}

	// The name handler closes over this call's argument sequence, so the
	// binding is re-established per call while tree and binding are shared.
	e := eval.Evaluator[float64]{
		Literal: parseLiteral,
		Name: func(ident string) (float64, error) {
			i, ok := f.binding.Index(ident)
			if !ok {
				return 0, &eval.UnboundNameError{Name: ident}
			}
			return args[i], nil
		},
		Ops: arithmetic,
	}
	return e.Eval(f.body)
}

// parseLiteral converts literal source text to a float64. Malformed text is
// rejected by the scanner long before evaluation; this guard covers trees
// constructed programmatically.
func parseLiteral(text string) (float64, error) {
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, &eval.BadLiteralError{Text: text}
	}
	return v, nil
}

// arithmetic is the interpreter's operation table: the four binary operators
// with IEEE-754 double-precision semantics. Division by zero follows IEEE
// rules (infinity or NaN), it is not an error.
var arithmetic = map[string]eval.Op[float64]{
	"+": binary("+", func(a, b float64) float64 { return a + b }),
	"-": binary("-", func(a, b float64) float64 { return a - b }),
	"*": binary("*", func(a, b float64) float64 { return a * b }),
	"/": binary("/", func(a, b float64) float64 { return a / b }),
}

func binary(op string, fn func(a, b float64) float64) eval.Op[float64] {
	return func(args []float64) (float64, error) {
		if len(args) != 2 {
			return 0, &eval.ArityError{Op: op, Want: 2, Got: len(args)}
		}
		return fn(args[0], args[1]), nil
	}
}
