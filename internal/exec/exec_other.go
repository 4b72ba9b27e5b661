//go:build !unix

package exec

// Buffer is a placeholder on platforms without executable-memory support.
type Buffer struct{}

// New always fails with ErrUnsupported on this platform.
func New(code []byte) (*Buffer, error) {
	return nil, ErrUnsupported
}

// Func returns nil; no entry point exists on this platform.
func (b *Buffer) Func() Entry { return nil }

// Size returns 0; no region is mapped on this platform.
func (b *Buffer) Size() int { return 0 }

// Close is a no-op on this platform.
func (b *Buffer) Close() error { return nil }
