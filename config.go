package jitcalc

import (
	"github.com/lukedodd/JitCalc/internal/jit"
	"github.com/lukedodd/JitCalc/internal/parser"
)

// Config holds configuration options for parsing and compilation.
type Config struct {
	// MaxDepth bounds expression nesting during parsing (default: 1000).
	// Deeper input fails with a ParseError rather than exhausting the
	// parser's stack.
	MaxDepth int

	// MaxSpillSlots bounds the stack frame a compiled function may claim
	// for spilled intermediate values (default: 64). Each slot holds one
	// float64; expressions whose live values exceed the register file by
	// more than this fail to compile.
	MaxSpillSlots int
}

// applyDefaults fills in default values for unset Config fields.
func (c *Config) applyDefaults() {
	if c.MaxDepth <= 0 {
		c.MaxDepth = parser.DefaultMaxDepth
	}
	if c.MaxSpillSlots <= 0 {
		c.MaxSpillSlots = jit.DefaultMaxSpillSlots
	}
}
