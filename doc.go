// Package jitcalc evaluates arithmetic expressions written in a small
// Lisp-style language, either by walking the tree or by compiling it to
// native machine code.
//
// A program is a single function form: a parameter list followed by an
// expression body, for example ((x y) (+ x (* y 2))). All values are IEEE
// 754 double-precision floats; the operators are +, -, *, and / with two
// operands each.
//
// # Quick Start
//
// For one-off interpreted evaluation:
//
//	result, err := jitcalc.Run("((x) (+ x 10))", 5)
//	// result: 15
//
// # Compiled Functions
//
// For repeated evaluation, parse once and compile to native code:
//
//	fn, err := jitcalc.Parse("((x y) (+ x (* y 2)))", nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	compiled, err := fn.Compile()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer compiled.Close()
//
//	result, err := compiled.Call([]float64{2, 2.5})
//	// result: 7
//
// Both backends instantiate the same evaluation protocol over the same
// tree, so for identical inputs they produce bit-identical results.
//
// Native code generation is available on amd64 Unix-like systems; on
// other platforms Compile fails with [ErrUnsupported] and the interpreted
// backend remains fully functional.
//
// # Error Handling
//
// Errors are returned as specific types for detailed handling:
//   - [ParseError]: syntax errors in expression source
//   - [ShapeError]: well-formed s-expressions that are not function forms
//   - [CompileError]: native code generation failures
//   - [EvalError]: errors during evaluation or a compiled call
//
// # Resource Management
//
// A [Compiled] function owns executable memory that the garbage collector
// does not track. Call [Compiled.Close] when done; Close is idempotent
// and the memory is released exactly once.
package jitcalc
