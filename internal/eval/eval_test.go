package eval

import (
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/lukedodd/JitCalc/internal/ast"
)

func lit(text string) *ast.Literal { return &ast.Literal{Text: text} }
func name(id string) *ast.Name     { return &ast.Name{Ident: id} }
func app(children ...ast.Node) *ast.Application {
	return &ast.Application{Children: children}
}

// stringEval builds an Evaluator over strings that records the order in
// which operands reach the operation table. Left-to-right operand order is
// an observable contract of the protocol (the code generator relies on it
// for deterministic instruction order).
func stringEval(trace *[]string) *Evaluator[string] {
	return &Evaluator[string]{
		Literal: func(text string) (string, error) {
			*trace = append(*trace, "lit:"+text)
			return text, nil
		},
		Name: func(ident string) (string, error) {
			*trace = append(*trace, "name:"+ident)
			return ident, nil
		},
		Ops: map[string]Op[string]{
			"cat": func(args []string) (string, error) {
				return strings.Join(args, ","), nil
			},
		},
	}
}

func TestEvalOperandOrder(t *testing.T) {
	var trace []string
	e := stringEval(&trace)

	tree := app(name("cat"), lit("1"), name("x"), app(name("cat"), lit("2"), lit("3")))
	got, err := e.Eval(tree)
	if err != nil {
		t.Fatal(err)
	}
	if got != "1,x,2,3" {
		t.Errorf("Eval = %q, want %q", got, "1,x,2,3")
	}

	want := []string{"lit:1", "name:x", "lit:2", "lit:3"}
	if len(trace) != len(want) {
		t.Fatalf("trace = %v, want %v", trace, want)
	}
	for i := range want {
		if trace[i] != want[i] {
			t.Fatalf("operand evaluation order: trace = %v, want %v", trace, want)
		}
	}
}

func TestEvalNumeric(t *testing.T) {
	e := &Evaluator[float64]{
		Literal: func(text string) (float64, error) {
			return strconv.ParseFloat(text, 64)
		},
		Ops: map[string]Op[float64]{
			"+": func(args []float64) (float64, error) { return args[0] + args[1], nil },
			"*": func(args []float64) (float64, error) { return args[0] * args[1], nil },
		},
	}

	tree := app(name("+"), lit("2"), app(name("*"), lit("3"), lit("4")))
	got, err := e.Eval(tree)
	if err != nil {
		t.Fatal(err)
	}
	if got != 14 {
		t.Errorf("Eval = %v, want 14", got)
	}
}

func TestEvalErrors(t *testing.T) {
	e := &Evaluator[float64]{
		Literal: func(text string) (float64, error) {
			return strconv.ParseFloat(text, 64)
		},
		Ops: map[string]Op[float64]{
			"+": func(args []float64) (float64, error) { return args[0] + args[1], nil },
		},
	}

	t.Run("unknown procedure", func(t *testing.T) {
		_, err := e.Eval(app(name("frobnicate"), lit("1")))
		var upe *UnknownProcedureError
		if !errors.As(err, &upe) {
			t.Fatalf("expected *UnknownProcedureError, got %T: %v", err, err)
		}
		if upe.Name != "frobnicate" {
			t.Errorf("error carries name %q, want frobnicate", upe.Name)
		}
	})

	t.Run("unbound name without handler", func(t *testing.T) {
		_, err := e.Eval(name("x"))
		var une *UnboundNameError
		if !errors.As(err, &une) {
			t.Fatalf("expected *UnboundNameError, got %T: %v", err, err)
		}
	})

	t.Run("empty application", func(t *testing.T) {
		_, err := e.Eval(app())
		var pe *ProtocolError
		if !errors.As(err, &pe) {
			t.Fatalf("expected *ProtocolError, got %T: %v", err, err)
		}
	})

	t.Run("non-name operator position", func(t *testing.T) {
		_, err := e.Eval(app(lit("1"), lit("2")))
		var pe *ProtocolError
		if !errors.As(err, &pe) {
			t.Fatalf("expected *ProtocolError, got %T: %v", err, err)
		}
	})

	t.Run("operand error propagates", func(t *testing.T) {
		_, err := e.Eval(app(name("+"), app(name("nope")), lit("1")))
		var upe *UnknownProcedureError
		if !errors.As(err, &upe) {
			t.Fatalf("expected *UnknownProcedureError, got %T: %v", err, err)
		}
	})
}

func TestNewBinding(t *testing.T) {
	b, err := NewBinding([]string{"x", "y", "z"})
	if err != nil {
		t.Fatal(err)
	}
	if b.Len() != 3 {
		t.Errorf("Len = %d, want 3", b.Len())
	}
	for i, name := range []string{"x", "y", "z"} {
		got, ok := b.Index(name)
		if !ok || got != i {
			t.Errorf("Index(%q) = (%d, %v), want (%d, true)", name, got, ok, i)
		}
	}
	if _, ok := b.Index("w"); ok {
		t.Error("Index of undeclared name should report false")
	}
}

func TestNewBindingDuplicate(t *testing.T) {
	_, err := NewBinding([]string{"x", "y", "x"})
	var dpe *DuplicateParamError
	if !errors.As(err, &dpe) {
		t.Fatalf("expected *DuplicateParamError, got %T: %v", err, err)
	}
	if dpe.Name != "x" {
		t.Errorf("error carries name %q, want x", dpe.Name)
	}
}

func TestNewBindingEmpty(t *testing.T) {
	b, err := NewBinding(nil)
	if err != nil {
		t.Fatal(err)
	}
	if b.Len() != 0 {
		t.Errorf("Len = %d, want 0", b.Len())
	}
}
