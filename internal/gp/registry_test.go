package gp

import (
	"math"
	"testing"
)

func TestProtectedDivision(t *testing.T) {
	cases := []struct {
		name string
		a, b float64
		want float64
	}{
		{"exact quotient", 10, 4, 2.5},
		{"negative quotient", -9, 3, -3},
		{"zero numerator", 0, 5, 0},
		{"zero divisor", 7, 0, 1},
		{"zero over zero", 0, 0, 1},
		{"negative over zero", -3, 0, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := protectedDiv([]float64{tc.a, tc.b})
			if got != tc.want {
				t.Fatalf("div(%v, %v): got=%v want=%v", tc.a, tc.b, got, tc.want)
			}
		})
	}
}

func TestCoreSetContents(t *testing.T) {
	r := NewRegistry([]string{"x"}, SetOptions{})

	for _, name := range []string{"add", "sub", "mul", "neg", "max", "min", "div"} {
		if _, ok := r.Lookup(name); !ok {
			t.Fatalf("core primitive missing: %s", name)
		}
	}
	if r.FunctionCount() != 7 {
		t.Fatalf("core function count: got=%d want=7", r.FunctionCount())
	}
	// one input plus the two core ephemerals
	if r.TerminalCount() != 3 {
		t.Fatalf("terminal count: got=%d want=3", r.TerminalCount())
	}
}

func TestOptionalSetsAreGated(t *testing.T) {
	cases := []struct {
		name    string
		opts    SetOptions
		present []string
		absent  []string
	}{
		{"none", SetOptions{}, nil, []string{"if_then_else", "gt", "lt", "sin", "cos"}},
		{"ifelse", SetOptions{IfElse: true}, []string{"if_then_else"}, []string{"gt", "sin"}},
		{"relational", SetOptions{Relational: true}, []string{"gt", "lt"}, []string{"if_then_else", "cos"}},
		{"trig", SetOptions{Trig: true}, []string{"sin", "cos"}, []string{"if_then_else", "gt"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := NewRegistry(nil, tc.opts)
			for _, name := range tc.present {
				if _, ok := r.Lookup(name); !ok {
					t.Fatalf("expected primitive %s with opts %+v", name, tc.opts)
				}
			}
			for _, name := range tc.absent {
				if _, ok := r.Lookup(name); ok {
					t.Fatalf("unexpected primitive %s with opts %+v", name, tc.opts)
				}
			}
		})
	}
}

func TestIfThenElseTruthiness(t *testing.T) {
	r := NewRegistry(nil, SetOptions{IfElse: true})
	prim, ok := r.Lookup("if_then_else")
	if !ok {
		t.Fatal("if_then_else not registered")
	}
	if prim.Arity != 3 {
		t.Fatalf("if_then_else arity: got=%d want=3", prim.Arity)
	}
	if got := prim.Fn([]float64{1, 10, 20}); got != 10 {
		t.Fatalf("truthy branch: got=%v want=10", got)
	}
	if got := prim.Fn([]float64{-0.5, 10, 20}); got != 10 {
		t.Fatalf("negative is truthy: got=%v want=10", got)
	}
	if got := prim.Fn([]float64{0, 10, 20}); got != 20 {
		t.Fatalf("falsy branch: got=%v want=20", got)
	}
}

func TestRelationalReturnsUnitValues(t *testing.T) {
	r := NewRegistry(nil, SetOptions{Relational: true})
	gt, _ := r.Lookup("gt")
	lt, _ := r.Lookup("lt")

	if got := gt.Fn([]float64{2, 1}); got != 1.0 {
		t.Fatalf("gt(2,1): got=%v want=1", got)
	}
	if got := gt.Fn([]float64{1, 2}); got != 0.0 {
		t.Fatalf("gt(1,2): got=%v want=0", got)
	}
	if got := lt.Fn([]float64{1, 2}); got != 1.0 {
		t.Fatalf("lt(1,2): got=%v want=1", got)
	}
	if got := lt.Fn([]float64{2, 2}); got != 0.0 {
		t.Fatalf("lt(2,2): got=%v want=0", got)
	}
}

func TestRegisterValidation(t *testing.T) {
	r := NewRegistry([]string{"x"}, SetOptions{})

	if err := r.RegisterFunction("", 2, func(a []float64) float64 { return 0 }); err == nil {
		t.Fatal("expected error for empty name")
	}
	if err := r.RegisterFunction("sq", 0, func(a []float64) float64 { return 0 }); err == nil {
		t.Fatal("expected error for zero arity")
	}
	if err := r.RegisterFunction("add", 2, func(a []float64) float64 { return 0 }); err == nil {
		t.Fatal("expected error for duplicate name")
	}
	if err := r.RegisterInput("x"); err == nil {
		t.Fatal("expected error for duplicate input")
	}
	if err := r.RegisterEphemeral("rand_int", nil); err == nil {
		t.Fatal("expected error for nil sampler")
	}
	if err := r.RegisterFunction("abs", 1, func(a []float64) float64 { return math.Abs(a[0]) }); err != nil {
		t.Fatalf("register abs: %v", err)
	}
	if _, ok := r.Lookup("abs"); !ok {
		t.Fatal("abs not registered")
	}
}
