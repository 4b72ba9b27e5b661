// Package exec manages executable memory for generated code.
//
// A Buffer owns one block of process memory holding finalized machine
// instructions. The block is mapped writable, filled exactly once, then
// switched to read+execute (never writable and executable at the same time).
// The buffer is released back to the operating system by Close, exactly
// once; the callable entry point never outlives its owning Buffer.
package exec

import "errors"

// ErrUnsupported is returned by New on platforms without a native backend.
var ErrUnsupported = errors.New("exec: executable buffers not supported on this platform")

// ErrClosed is returned when a released buffer is used.
var ErrClosed = errors.New("exec: buffer already released")

// Entry is the call contract of a finalized buffer: one pointer to a
// contiguous sequence of float64 arguments in, one float64 result out.
// The generated code performs no bounds check on the argument pointer.
type Entry func(argv *float64) float64
