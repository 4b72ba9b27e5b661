package jit

import (
	"encoding/binary"
	"fmt"
)

// SSE2 arithmetic opcodes (final byte of the F2 0F xx /r encoding).
const (
	opAddsd byte = 0x58
	opMulsd byte = 0x59
	opSubsd byte = 0x5C
	opDivsd byte = 0x5E
)

// assembler emits raw x86-64 machine code alongside a textual mnemonic
// listing. Only the handful of instructions the expression compiler needs
// are implemented: SSE2 scalar double moves and arithmetic, 64-bit
// immediate materialization, and stack frame adjustment.
type assembler struct {
	code []byte
	text []string
}

func (a *assembler) emit(bs ...byte) {
	a.code = append(a.code, bs...)
}

func (a *assembler) note(format string, args ...any) {
	a.text = append(a.text, fmt.Sprintf(format, args...))
}

func modrm(mod, reg, rm byte) byte {
	return mod<<6 | (reg&7)<<3 | (rm & 7)
}

// rex returns the REX prefix for the given W/R/B bits, or 0 when no prefix
// is needed. The X bit is never required here (no scaled index registers).
func rex(w bool, reg, rm int) byte {
	var b byte
	if w {
		b |= 0x08
	}
	if reg >= 8 {
		b |= 0x04
	}
	if rm >= 8 {
		b |= 0x01
	}
	if b == 0 {
		return 0
	}
	return 0x40 | b
}

// movsdLoadArg emits movsd xmmDst, [rax+disp]: a scalar double load from
// the argument vector, whose base pointer arrives in RAX.
func (a *assembler) movsdLoadArg(dst int, disp int32) {
	a.emit(0xF2)
	if r := rex(false, dst, 0); r != 0 {
		a.emit(r)
	}
	a.emit(0x0F, 0x10)
	a.emitMem(byte(dst), 0, disp, false)
	if disp == 0 {
		a.note("movsd  xmm%d, [rax]", dst)
	} else {
		a.note("movsd  xmm%d, [rax+%d]", dst, disp)
	}
}

// movsdRR emits movsd xmmDst, xmmSrc.
func (a *assembler) movsdRR(dst, src int) {
	a.emit(0xF2)
	if r := rex(false, dst, src); r != 0 {
		a.emit(r)
	}
	a.emit(0x0F, 0x10, modrm(3, byte(dst), byte(src)))
	a.note("movsd  xmm%d, xmm%d", dst, src)
}

// movsdStoreSlot emits movsd [rsp+8*slot], xmmSrc (a spill).
func (a *assembler) movsdStoreSlot(slot, src int) {
	disp := int32(slot * 8)
	a.emit(0xF2)
	if r := rex(false, src, 0); r != 0 {
		a.emit(r)
	}
	a.emit(0x0F, 0x11)
	a.emitMem(byte(src), 4, disp, true)
	a.note("movsd  [rsp+%d], xmm%d", disp, src)
}

// movsdLoadSlot emits movsd xmmDst, [rsp+8*slot] (a reload).
func (a *assembler) movsdLoadSlot(dst, slot int) {
	disp := int32(slot * 8)
	a.emit(0xF2)
	if r := rex(false, dst, 0); r != 0 {
		a.emit(r)
	}
	a.emit(0x0F, 0x10)
	a.emitMem(byte(dst), 4, disp, true)
	a.note("movsd  xmm%d, [rsp+%d]", dst, disp)
}

// emitMem emits the ModRM byte (plus SIB and displacement) for a memory
// operand [base+disp]. RSP as the base requires a SIB byte.
func (a *assembler) emitMem(reg, base byte, disp int32, sib bool) {
	var mod byte
	switch {
	case disp == 0:
		mod = 0
	case disp >= -128 && disp <= 127:
		mod = 1
	default:
		mod = 2
	}
	a.emit(modrm(mod, reg, base))
	if sib {
		a.emit(0x24) // scale 1, no index, base RSP
	}
	switch mod {
	case 1:
		a.emit(byte(disp))
	case 2:
		var buf [4]byte
		binary.LittleEndian.PutUint32(buf[:], uint32(disp))
		a.emit(buf[:]...)
	}
}

// movRCXImm64 emits mov rcx, imm64, materializing a raw 64-bit bit
// pattern in a general-purpose register.
func (a *assembler) movRCXImm64(v uint64, comment string) {
	a.emit(0x48, 0xB9)
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	a.emit(buf[:]...)
	a.note("mov    rcx, 0x%016x     ; %s", v, comment)
}

// movqXmmRCX emits movq xmmDst, rcx, moving the bit pattern into a
// floating-point register without conversion.
func (a *assembler) movqXmmRCX(dst int) {
	a.emit(0x66)
	a.emit(rex(true, dst, 1))
	a.emit(0x0F, 0x6E, modrm(3, byte(dst), 1))
	a.note("movq   xmm%d, rcx", dst)
}

// arith emits one of addsd/subsd/mulsd/divsd xmmDst, xmmSrc. The result
// lands in dst, overwriting its previous value.
func (a *assembler) arith(op byte, dst, src int) {
	a.emit(0xF2)
	if r := rex(false, dst, src); r != 0 {
		a.emit(r)
	}
	a.emit(0x0F, op, modrm(3, byte(dst), byte(src)))
	a.note("%s  xmm%d, xmm%d", arithName(op), dst, src)
}

func arithName(op byte) string {
	switch op {
	case opAddsd:
		return "addsd"
	case opSubsd:
		return "subsd"
	case opMulsd:
		return "mulsd"
	case opDivsd:
		return "divsd"
	}
	return fmt.Sprintf("op%02x", op)
}

// subRSP emits sub rsp, n (frame allocation).
func (a *assembler) subRSP(n int32) {
	if n >= -128 && n <= 127 {
		a.emit(0x48, 0x83, 0xEC, byte(n))
	} else {
		a.emit(0x48, 0x81, 0xEC)
		var buf [4]byte
		binary.LittleEndian.PutUint32(buf[:], uint32(n))
		a.emit(buf[:]...)
	}
	a.note("sub    rsp, %d", n)
}

// addRSP emits add rsp, n (frame release).
func (a *assembler) addRSP(n int32) {
	if n >= -128 && n <= 127 {
		a.emit(0x48, 0x83, 0xC4, byte(n))
	} else {
		a.emit(0x48, 0x81, 0xC4)
		var buf [4]byte
		binary.LittleEndian.PutUint32(buf[:], uint32(n))
		a.emit(buf[:]...)
	}
	a.note("add    rsp, %d", n)
}

func (a *assembler) ret() {
	a.emit(0xC3)
	a.note("ret")
}
