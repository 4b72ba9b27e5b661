// Package jit compiles expression trees to callable native machine code.
//
// Compilation instantiates the shared evaluation protocol over compile-time
// value handles: walking the tree emits x86-64 SSE2 instructions instead of
// computing numbers, with per-node register allocation and spilling to a
// stack frame when the expression's live values exceed the register file.
// The finished code is installed in an executable buffer and entered
// directly through a Go function value.
//
// Native code generation is implemented for amd64 on Unix-like systems;
// elsewhere Compile returns exec.ErrUnsupported.
package jit

import (
	"strings"

	"github.com/lukedodd/JitCalc/internal/ast"
	"github.com/lukedodd/JitCalc/internal/eval"
	"github.com/lukedodd/JitCalc/internal/exec"
)

// DefaultMaxSpillSlots bounds the stack frame a compiled expression may
// claim for spilled intermediate values. Each slot holds one float64; an
// expression deep enough to exceed the bound fails to compile rather than
// claiming unbounded stack.
const DefaultMaxSpillSlots = 64

// Func is a compiled expression: native machine code in an executable
// buffer, plus the metadata needed to call it safely from Go.
type Func struct {
	buf    *exec.Buffer
	params int
	text   []string
}

// Compile generates native code for an expression body over the given
// parameter list. Unknown operators, unbound names, and malformed trees
// are reported here, at compile time; a successfully compiled Func cannot
// fail at call time. On error no executable memory is retained.
func Compile(params []string, body ast.Node) (*Func, error) {
	return CompileWithLimit(params, body, DefaultMaxSpillSlots)
}

// CompileWithLimit is Compile with an explicit spill slot bound.
func CompileWithLimit(params []string, body ast.Node, maxSpillSlots int) (*Func, error) {
	if maxSpillSlots <= 0 {
		maxSpillSlots = DefaultMaxSpillSlots
	}
	binding, err := eval.NewBinding(params)
	if err != nil {
		return nil, err
	}
	code, text, err := compile(binding, body, maxSpillSlots)
	if err != nil {
		return nil, err
	}
	buf, err := exec.New(code)
	if err != nil {
		return nil, err
	}
	return &Func{buf: buf, params: binding.Len(), text: text}, nil
}

// ParamCount returns the number of arguments the compiled code expects.
func (f *Func) ParamCount() int {
	return f.params
}

// Call runs the compiled code over args. The argument count is checked
// here, in the Go wrapper; the generated code itself reads exactly the
// slots its parameters name and performs no checking of its own.
func (f *Func) Call(args []float64) (float64, error) {
	fn := f.buf.Func()
	if fn == nil {
		return 0, exec.ErrClosed
	}
	if len(args) != f.params {
		return 0, &eval.ArityError{Op: "call", Want: f.params, Got: len(args)}
	}
	if len(args) == 0 {
		var dummy float64
		return fn(&dummy), nil
	}
	return fn(&args[0]), nil
}

// Close releases the executable buffer. Further calls fail with
// exec.ErrClosed. Close is idempotent; the memory is unmapped exactly once.
func (f *Func) Close() error {
	return f.buf.Close()
}

// Size returns the generated code size in bytes.
func (f *Func) Size() int {
	return f.buf.Size()
}

// Disassemble returns the mnemonic listing recorded during code
// generation, one instruction per line.
func (f *Func) Disassemble() string {
	var sb strings.Builder
	for _, line := range f.text {
		sb.WriteString("\t")
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	return sb.String()
}
