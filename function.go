package jitcalc

import (
	"strings"

	"github.com/lukedodd/JitCalc/internal/ast"
	"github.com/lukedodd/JitCalc/internal/interp"
	"github.com/lukedodd/JitCalc/internal/jit"
)

// Function represents a parsed function form ready for evaluation or
// compilation. It is safe for concurrent use; evaluation is a pure
// function of the tree and the per-call arguments, and each call to
// Compile produces an independent native function.
type Function struct {
	params []string
	body   ast.Node
	interp *interp.Function
	source string
	config Config
}

// Eval evaluates the function over args with the interpreted backend.
// The argument count must match the declared parameter count. A failed
// call leaves the function reusable.
func (f *Function) Eval(args []float64) (float64, error) {
	v, err := f.interp.Eval(args)
	if err != nil {
		return 0, &EvalError{Message: err.Error()}
	}
	return v, nil
}

// Compile generates native machine code for the function. The returned
// Compiled is independent of this Function and owns executable memory;
// release it with Compiled.Close.
//
// On platforms without native code generation, Compile fails with
// ErrUnsupported and no memory is retained.
func (f *Function) Compile() (*Compiled, error) {
	fn, err := jit.CompileWithLimit(f.params, f.body, f.config.MaxSpillSlots)
	if err != nil {
		return nil, convertCompileErr(err)
	}
	return &Compiled{fn: fn}, nil
}

// ParamCount returns the number of declared parameters.
func (f *Function) ParamCount() int {
	return len(f.params)
}

// Params returns the declared parameter names in order.
// The returned slice must not be modified.
func (f *Function) Params() []string {
	return f.params
}

// Source returns the original expression source code.
func (f *Function) Source() string {
	return f.source
}

// DebugAST returns an indented representation of the expression tree.
// Useful for debugging and understanding how source text parses.
func (f *Function) DebugAST() string {
	var sb strings.Builder
	p := ast.NewPrinter(&sb)
	p.PrintFunction(&ast.Function{Params: f.params, Body: f.body})
	return sb.String()
}
