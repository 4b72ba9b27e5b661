package jitcalc_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/lukedodd/JitCalc"
)

func TestRun(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		args    []float64
		want    float64
		wantErr bool
	}{
		{
			name: "add constant",
			src:  "((x) (+ x 10))",
			args: []float64{5},
			want: 15,
		},
		{
			name: "two parameters",
			src:  "((x y) (+ x y))",
			args: []float64{100, 1},
			want: 101,
		},
		{
			name: "nested operations",
			src:  "((x y) (+ x (* y 2)))",
			args: []float64{2, 2.5},
			want: 7,
		},
		{
			name: "no parameters",
			src:  "(() (* 6 7))",
			args: nil,
			want: 42,
		},
		{
			name: "bare name body",
			src:  "((x) x)",
			args: []float64{42},
			want: 42,
		},
		{
			name:    "unbalanced parens",
			src:     "((x) (+ x 10)",
			wantErr: true,
		},
		{
			name:    "unknown operator",
			src:     "((x) (pow x 2))",
			args:    []float64{2},
			wantErr: true,
		},
		{
			name:    "argument count mismatch",
			src:     "((x y) (+ x y))",
			args:    []float64{1},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := jitcalc.Run(tt.src, tt.args...)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseError(t *testing.T) {
	_, err := jitcalc.Parse("((x) (+ x 1.2.3))", nil)
	var pe *jitcalc.ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *jitcalc.ParseError, got %T: %v", err, err)
	}
	if pe.Line != 1 || pe.Column <= 1 {
		t.Errorf("error position %d:%d, want somewhere on line 1", pe.Line, pe.Column)
	}
}

func TestShapeError(t *testing.T) {
	tests := []string{
		"((x) (+ x 1) extra)", // three top-level elements
		"((1 2) (+ 1 2))",     // parameter list with non-names
		"((x) 5)",             // bare literal body
		"(x)",                 // missing body
		"((x x) (+ x x))",     // duplicate parameter names
	}
	for _, src := range tests {
		t.Run(src, func(t *testing.T) {
			_, err := jitcalc.Parse(src, nil)
			var se *jitcalc.ShapeError
			if !errors.As(err, &se) {
				t.Fatalf("expected *jitcalc.ShapeError, got %T: %v", err, err)
			}
		})
	}
}

func TestEvalError(t *testing.T) {
	fn, err := jitcalc.Parse("((x) (+ x z))", nil)
	if err != nil {
		t.Fatal(err)
	}
	_, err = fn.Eval([]float64{1})
	var ee *jitcalc.EvalError
	if !errors.As(err, &ee) {
		t.Fatalf("expected *jitcalc.EvalError, got %T: %v", err, err)
	}
	if !strings.Contains(ee.Message, "z") {
		t.Errorf("error does not name the unbound symbol: %v", ee)
	}
}

func TestMustParse(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for invalid source")
		}
	}()
	jitcalc.MustParse("((x) (+ x", nil)
}

func TestMustParseValid(t *testing.T) {
	fn := jitcalc.MustParse("((x) (* x 2))", nil)
	if got, err := fn.Eval([]float64{21}); err != nil || got != 42 {
		t.Errorf("Eval = %v, %v", got, err)
	}
}

func TestFunctionAccessors(t *testing.T) {
	src := "((x y) (+ x y))"
	fn := jitcalc.MustParse(src, nil)

	if got := fn.ParamCount(); got != 2 {
		t.Errorf("ParamCount = %d, want 2", got)
	}
	if got := fn.Params(); len(got) != 2 || got[0] != "x" || got[1] != "y" {
		t.Errorf("Params = %v, want [x y]", got)
	}
	if got := fn.Source(); got != src {
		t.Errorf("Source = %q, want %q", got, src)
	}
}

func TestDebugAST(t *testing.T) {
	fn := jitcalc.MustParse("((x) (+ x 10))", nil)
	got := fn.DebugAST()
	for _, want := range []string{"Function(x)", "Application", "Name(+)", "Name(x)", "Literal(10)"} {
		if !strings.Contains(got, want) {
			t.Errorf("DebugAST missing %q:\n%s", want, got)
		}
	}
}

func TestConfigMaxDepth(t *testing.T) {
	deep := "((x) " + strings.Repeat("(+ x ", 50) + "x" + strings.Repeat(")", 50) + ")"

	if _, err := jitcalc.Parse(deep, nil); err != nil {
		t.Errorf("default depth limit rejected moderate nesting: %v", err)
	}

	_, err := jitcalc.Parse(deep, &jitcalc.Config{MaxDepth: 10})
	var pe *jitcalc.ParseError
	if !errors.As(err, &pe) {
		t.Errorf("expected *jitcalc.ParseError for exceeded depth, got %T: %v", err, err)
	}
}

func ExampleRun() {
	result, err := jitcalc.Run("((x y) (+ x (* y 2)))", 2, 2.5)
	if err != nil {
		panic(err)
	}
	fmt.Println(result)
	// Output: 7
}

func ExampleParse() {
	fn, err := jitcalc.Parse("((x) (+ x 10))", nil)
	if err != nil {
		panic(err)
	}
	for _, x := range []float64{1, 2, 3} {
		v, _ := fn.Eval([]float64{x})
		fmt.Println(v)
	}
	// Output:
	// 11
	// 12
	// 13
}
