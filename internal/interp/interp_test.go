package interp

import (
	"errors"
	"math"
	"testing"

	"github.com/lukedodd/JitCalc/internal/eval"
	"github.com/lukedodd/JitCalc/internal/parser"
)

// mustEval parses a full function form, builds an interpreted function and
// evaluates it with the given arguments.
func mustEval(t *testing.T, src string, args []float64) float64 {
	t.Helper()
	fn, err := parser.Parse(src)
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	f, err := New(fn.Params, fn.Body)
	if err != nil {
		t.Fatalf("construct %q: %v", src, err)
	}
	got, err := f.Eval(args)
	if err != nil {
		t.Fatalf("eval %q: %v", src, err)
	}
	return got
}

func TestEval(t *testing.T) {
	tests := []struct {
		src  string
		args []float64
		want float64
	}{
		{"((x) (+ x 10))", []float64{5}, 15},
		{"((x y) (+ x y))", []float64{100, 1}, 101},
		{"((x y) (+ x (* y 2)))", []float64{2, 2.5}, 7},
		{"((x y) (- x y))", []float64{3, 5}, -2},
		{"((x y) (/ x y))", []float64{1, 4}, 0.25},
		{"((x) x)", []float64{42}, 42},
		{"(() (+ 1 2))", nil, 3},
		{"((x) (+ x -10))", []float64{5}, -5},
		{"((x) (+ x 0.5))", []float64{1.25}, 1.75},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			if got := mustEval(t, tt.src, tt.args); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEvalNested(t *testing.T) {
	// (+ (* (+ x 20) y) (/ x (+ y 1))) with x=1, y=10.
	got := mustEval(t, "((x y) (+ (* (+ x 20) y) (/ x (+ y 1))))", []float64{1, 10})
	want := (1.0+20)*10 + 1.0/(10+1)
	if got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestEvalIEEE(t *testing.T) {
	t.Run("division by zero", func(t *testing.T) {
		got := mustEval(t, "((x) (/ x 0))", []float64{1})
		if !math.IsInf(got, 1) {
			t.Errorf("1/0 = %v, want +Inf", got)
		}
	})

	t.Run("zero by zero", func(t *testing.T) {
		got := mustEval(t, "((x) (/ x 0))", []float64{0})
		if !math.IsNaN(got) {
			t.Errorf("0/0 = %v, want NaN", got)
		}
	})

	t.Run("negative infinity", func(t *testing.T) {
		got := mustEval(t, "((x) (/ -1 x))", []float64{0})
		if !math.IsInf(got, -1) {
			t.Errorf("-1/0 = %v, want -Inf", got)
		}
	})
}

func TestEvalArityMismatch(t *testing.T) {
	fn, err := parser.Parse("((x y) (+ x y))")
	if err != nil {
		t.Fatal(err)
	}
	f, err := New(fn.Params, fn.Body)
	if err != nil {
		t.Fatal(err)
	}

	_, err = f.Eval([]float64{1})
	var ae *eval.ArityError
	if !errors.As(err, &ae) {
		t.Fatalf("expected *eval.ArityError, got %T: %v", err, err)
	}
}

func TestEvalOperatorArity(t *testing.T) {
	fn, err := parser.Parse("((x) (+ x 1 2))")
	if err != nil {
		t.Fatal(err)
	}
	f, err := New(fn.Params, fn.Body)
	if err != nil {
		t.Fatal(err)
	}

	_, err = f.Eval([]float64{1})
	var ae *eval.ArityError
	if !errors.As(err, &ae) {
		t.Fatalf("expected *eval.ArityError, got %T: %v", err, err)
	}
	if ae.Op != "+" || ae.Want != 2 || ae.Got != 3 {
		t.Errorf("unexpected arity error: %v", ae)
	}
}

func TestEvalUnknownProcedure(t *testing.T) {
	fn, err := parser.Parse("((x) (pow x 2))")
	if err != nil {
		t.Fatal(err)
	}
	f, err := New(fn.Params, fn.Body)
	if err != nil {
		t.Fatal(err)
	}

	// The bad operator is reported per call, at the point of use.
	_, err = f.Eval([]float64{2})
	var upe *eval.UnknownProcedureError
	if !errors.As(err, &upe) {
		t.Fatalf("expected *eval.UnknownProcedureError, got %T: %v", err, err)
	}

	// A failed call leaves the function reusable.
	if _, err := f.Eval([]float64{3}); err == nil {
		t.Error("second call should fail the same way")
	}
}

func TestEvalUnboundName(t *testing.T) {
	fn, err := parser.Parse("((x) (+ x z))")
	if err != nil {
		t.Fatal(err)
	}
	f, err := New(fn.Params, fn.Body)
	if err != nil {
		t.Fatal(err)
	}

	_, err = f.Eval([]float64{1})
	var une *eval.UnboundNameError
	if !errors.As(err, &une) {
		t.Fatalf("expected *eval.UnboundNameError, got %T: %v", err, err)
	}
	if une.Name != "z" {
		t.Errorf("error carries name %q, want z", une.Name)
	}
}

func TestNewDuplicateParams(t *testing.T) {
	fn, err := parser.Parse("((x x) (+ x x))")
	if err != nil {
		t.Fatal(err)
	}
	_, err = New(fn.Params, fn.Body)
	var dpe *eval.DuplicateParamError
	if !errors.As(err, &dpe) {
		t.Fatalf("expected *eval.DuplicateParamError, got %T: %v", err, err)
	}
}

func TestEvalDeterministic(t *testing.T) {
	fn, err := parser.Parse("((x y) (+ (* (+ x 20) y) (/ x (+ y 1))))")
	if err != nil {
		t.Fatal(err)
	}
	f, err := New(fn.Params, fn.Body)
	if err != nil {
		t.Fatal(err)
	}

	args := []float64{1, 10}
	first, err := f.Eval(args)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 100; i++ {
		got, err := f.Eval(args)
		if err != nil {
			t.Fatal(err)
		}
		if math.Float64bits(got) != math.Float64bits(first) {
			t.Fatalf("call %d: %v != %v (not bit-identical)", i, got, first)
		}
	}
}

func BenchmarkEval(b *testing.B) {
	fn, _ := parser.Parse("((x y) (+ (* (+ x 20) y) (/ x (+ y 1))))")
	f, _ := New(fn.Params, fn.Body)
	args := []float64{1, 10}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := f.Eval(args); err != nil {
			b.Fatal(err)
		}
	}
}
