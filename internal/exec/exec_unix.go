//go:build unix

package exec

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"
)

// Buffer is one finalized block of executable memory.
type Buffer struct {
	mem []byte // mmap'd region, read+execute after New returns

	// entry holds the address of mem[0] and serves as the funcval for fn:
	// a Go func value is a pointer to a funcval whose first word is the
	// code address, so fn carries &entry and a call loads mem[0]'s address
	// through it. The field keeps that word alive for as long as the
	// Buffer itself.
	entry unsafe.Pointer
	fn    Entry
}

// New maps a fresh region, copies the finalized machine code into it and
// remaps it read+execute. The returned Buffer is immutable: the code is
// never patched after this point.
func New(code []byte) (*Buffer, error) {
	if len(code) == 0 {
		return nil, fmt.Errorf("exec: empty code buffer")
	}

	mem, err := unix.Mmap(-1, 0, len(code),
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return nil, fmt.Errorf("exec: mmap %d bytes: %w", len(code), err)
	}
	copy(mem, code)

	if err := unix.Mprotect(mem, unix.PROT_READ|unix.PROT_EXEC); err != nil {
		// Construction must not leak the mapping on the error path.
		_ = unix.Munmap(mem)
		return nil, fmt.Errorf("exec: mprotect: %w", err)
	}

	b := &Buffer{mem: mem}
	b.entry = unsafe.Pointer(&b.mem[0])
	// The func value itself must hold &entry, one level above the code
	// address, so the call sequence finds mem[0] through the funcval word.
	fv := unsafe.Pointer(&b.entry)
	b.fn = *(*Entry)(unsafe.Pointer(&fv))
	return b, nil
}

// Func returns the callable entry point, or nil after Close.
// The entry point must not be retained beyond the Buffer's lifetime.
func (b *Buffer) Func() Entry {
	return b.fn
}

// Size returns the size of the mapped region in bytes.
func (b *Buffer) Size() int {
	return len(b.mem)
}

// Close unmaps the buffer. The entry point becomes nil and must not be
// called again. Closing an already-closed buffer is a no-op.
func (b *Buffer) Close() error {
	if b.mem == nil {
		return nil
	}
	mem := b.mem
	b.mem = nil
	b.fn = nil
	b.entry = nil
	if err := unix.Munmap(mem); err != nil {
		return fmt.Errorf("exec: munmap: %w", err)
	}
	return nil
}
