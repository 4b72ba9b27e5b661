package jitcalc

import (
	"errors"

	"github.com/lukedodd/JitCalc/internal/exec"
	"github.com/lukedodd/JitCalc/internal/jit"
)

// ErrUnsupported is returned by Function.Compile on platforms without
// native code generation. The interpreted backend works everywhere.
var ErrUnsupported = exec.ErrUnsupported

// ErrClosed is returned by Compiled.Call after Close has released the
// function's executable memory.
var ErrClosed = exec.ErrClosed

// Compiled represents a function compiled to native machine code. Calls
// enter the generated code directly; there is no per-call interpretation.
//
// A Compiled owns executable memory outside the garbage collector's view.
// Release it with Close when done. Calls and Close must not race; callers
// that share a Compiled across goroutines must provide their own
// synchronization around Close.
type Compiled struct {
	fn *jit.Func
}

// Call runs the compiled code over args. The argument count is checked
// before entering native code; the generated code itself performs no
// checking.
func (c *Compiled) Call(args []float64) (float64, error) {
	v, err := c.fn.Call(args)
	if err != nil {
		if errors.Is(err, exec.ErrClosed) {
			return 0, ErrClosed
		}
		return 0, &EvalError{Message: err.Error()}
	}
	return v, nil
}

// Close releases the function's executable memory. Further calls fail
// with ErrClosed. Close is idempotent; the memory is unmapped exactly
// once.
func (c *Compiled) Close() error {
	return c.fn.Close()
}

// ParamCount returns the number of arguments the compiled code expects.
func (c *Compiled) ParamCount() int {
	return c.fn.ParamCount()
}

// Size returns the generated machine code size in bytes.
func (c *Compiled) Size() int {
	return c.fn.Size()
}

// Disassemble returns a human-readable listing of the generated
// instructions. Useful for debugging and understanding code generation.
func (c *Compiled) Disassemble() string {
	return c.fn.Disassemble()
}

// convertCompileErr maps internal compilation errors to the public error
// types. ErrUnsupported passes through unwrapped so callers can detect it
// with errors.Is and fall back to the interpreter.
func convertCompileErr(err error) error {
	if errors.Is(err, exec.ErrUnsupported) {
		return ErrUnsupported
	}
	return &CompileError{Message: err.Error()}
}
