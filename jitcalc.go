package jitcalc

import (
	"github.com/lukedodd/JitCalc/internal/interp"
	"github.com/lukedodd/JitCalc/internal/parser"
)

// Version is the jitcalc version string.
const Version = "0.1.0"

// Run parses src as a function form and evaluates it over args with the
// interpreted backend. This is a convenience function for one-off
// evaluation; for repeated calls, use Parse followed by Function.Eval or
// Function.Compile.
//
// Example:
//
//	result, err := jitcalc.Run("((x) (+ x 10))", 5)
//	// result: 15
func Run(src string, args ...float64) (float64, error) {
	fn, err := Parse(src, nil)
	if err != nil {
		return 0, err
	}
	return fn.Eval(args)
}

// Parse parses src as a function form: a parameter list followed by an
// expression body, for example ((x y) (+ x y)). The returned Function can
// be evaluated directly or compiled to native code, any number of times.
//
// If config is nil, default configuration is used.
func Parse(src string, config *Config) (*Function, error) {
	var cfg Config
	if config != nil {
		cfg = *config
	}
	cfg.applyDefaults()

	fn, err := parser.ParseWithLimit(src, cfg.MaxDepth)
	if err != nil {
		return nil, convertParseErr(err)
	}

	// Building the interpreted form also validates the parameter list.
	ifn, err := interp.New(fn.Params, fn.Body)
	if err != nil {
		return nil, &ShapeError{
			Line:    fn.StartPos.Line,
			Column:  fn.StartPos.Column,
			Message: err.Error(),
		}
	}

	return &Function{
		params: fn.Params,
		body:   fn.Body,
		interp: ifn,
		source: src,
		config: cfg,
	}, nil
}

// Compile parses src and generates native machine code for it in one
// step. The returned Compiled owns executable memory; release it with
// Compiled.Close. For access to both backends, use Parse and keep the
// Function.
func Compile(src string, config *Config) (*Compiled, error) {
	fn, err := Parse(src, config)
	if err != nil {
		return nil, err
	}
	return fn.Compile()
}

// MustCompile is like Compile but panics if the source cannot be parsed
// or compiled. It simplifies initialization of global function variables
// on platforms known to support native code generation.
func MustCompile(src string, config *Config) *Compiled {
	fn, err := Compile(src, config)
	if err != nil {
		panic(err)
	}
	return fn
}

// MustParse is like Parse but panics if the source cannot be parsed.
// It simplifies initialization of global function variables.
//
// Example:
//
//	var scale = jitcalc.MustParse("((x) (* x 2.5))", nil)
func MustParse(src string, config *Config) *Function {
	fn, err := Parse(src, config)
	if err != nil {
		panic(err)
	}
	return fn
}
