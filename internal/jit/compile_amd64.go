package jit

import (
	"math"
	"strconv"

	"github.com/lukedodd/JitCalc/internal/ast"
	"github.com/lukedodd/JitCalc/internal/eval"
)

// numFPRegs is the number of allocatable floating-point registers:
// xmm0 through xmm14. xmm15 is the Go internal ABI's fixed zero register
// and must not be written.
const numFPRegs = 15

// codegen instantiates the evaluation protocol over compile-time value
// handles. Evaluating the expression tree does not compute a number; it
// emits the instruction sequence that will, with each protocol hook
// appending code to the body and returning the Value that names the
// register holding its result.
//
// The generated code follows the Go internal ABI for an indirect call:
// the argument-vector pointer arrives in RAX, the float64 result is
// returned in xmm0. RCX is scratch for literal bit patterns. R14 (the
// goroutine pointer) and xmm15 (the zero register) are never touched, so
// the code is safe to enter directly from Go.
type codegen struct {
	asm     assembler
	ra      *allocator
	binding *eval.Binding
}

func (cg *codegen) emitSpill(reg, slot int) {
	cg.asm.movsdStoreSlot(slot, reg)
}

func (cg *codegen) emitReload(reg, slot int) {
	cg.asm.movsdLoadSlot(reg, slot)
}

// literal materializes a numeric constant: its IEEE 754 bit pattern is
// loaded into RCX with a 64-bit immediate move, then bit-moved into the
// destination register with movq. No rounding beyond the text-to-float64
// conversion itself is introduced.
func (cg *codegen) literal(text string) (Value, error) {
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return Value{}, &eval.BadLiteralError{Text: text}
	}
	v, reg, err := cg.ra.alloc()
	if err != nil {
		return Value{}, err
	}
	cg.asm.movRCXImm64(math.Float64bits(f), text)
	cg.asm.movqXmmRCX(reg)
	return v, nil
}

// name emits a load of the i-th argument, movsd xmm, [rax+8*i], where i is
// the parameter's declared position.
func (cg *codegen) name(ident string) (Value, error) {
	i, ok := cg.binding.Index(ident)
	if !ok {
		return Value{}, &eval.UnboundNameError{Name: ident}
	}
	v, reg, err := cg.ra.alloc()
	if err != nil {
		return Value{}, err
	}
	cg.asm.movsdLoadArg(reg, int32(i*8))
	return v, nil
}

// binOp builds the code-generating operation for one arithmetic operator.
// The emitted instruction is destructive: the first operand's register
// receives the result and becomes the operation's Value; the second
// operand's register is freed for reuse.
func (cg *codegen) binOp(name string, op byte) eval.Op[Value] {
	return func(args []Value) (Value, error) {
		if len(args) != 2 {
			return Value{}, &eval.ArityError{Op: name, Want: 2, Got: len(args)}
		}
		dst, err := cg.ra.ensure(args[0], Value{id: -1})
		if err != nil {
			return Value{}, err
		}
		src, err := cg.ra.ensure(args[1], args[0])
		if err != nil {
			return Value{}, err
		}
		cg.asm.arith(op, dst, src)
		cg.ra.free(args[1])
		return args[0], nil
	}
}

// compile emits native code for the expression body and returns the raw
// machine code plus its mnemonic listing. The body is emitted first; the
// prologue is prepended afterwards, once the spill high-water mark fixes
// the frame size. Generated code makes no calls and touches no Go runtime
// state, so no frame is needed at all when nothing spills.
func compile(binding *eval.Binding, body ast.Node, maxSpillSlots int) ([]byte, []string, error) {
	cg := &codegen{binding: binding}
	cg.ra = newAllocator(numFPRegs, maxSpillSlots, cg)

	e := eval.Evaluator[Value]{
		Literal: cg.literal,
		Name:    cg.name,
		Ops: map[string]eval.Op[Value]{
			"+": cg.binOp("+", opAddsd),
			"-": cg.binOp("-", opSubsd),
			"*": cg.binOp("*", opMulsd),
			"/": cg.binOp("/", opDivsd),
		},
	}

	result, err := e.Eval(body)
	if err != nil {
		return nil, nil, err
	}

	reg, err := cg.ra.ensure(result, Value{id: -1})
	if err != nil {
		return nil, nil, err
	}
	if reg != 0 {
		cg.asm.movsdRR(0, reg)
	}

	frame := int32(cg.ra.frameSlots() * 8)
	if frame > 0 {
		cg.asm.addRSP(frame)
	}
	cg.asm.ret()

	if frame == 0 {
		return cg.asm.code, cg.asm.text, nil
	}

	var pro assembler
	pro.subRSP(frame)
	code := append(pro.code, cg.asm.code...)
	text := append(pro.text, cg.asm.text...)
	return code, text, nil
}
