package formula

import (
	"errors"
	"math"
	"testing"
)

func TestExtractVariables(t *testing.T) {
	cases := []struct {
		formula string
		want    string
	}{
		{"A-B", "AB"},
		{"2*B-A-C", "ABC"},
		{"A-2.5*B", "AB"},
		{"A+A*A", "A"},
		{"1+2", ""},
		{"a+b", ""},
	}
	for _, c := range cases {
		got := string(ExtractVariables(c.formula))
		if got != c.want {
			t.Errorf("ExtractVariables(%q) = %q, want %q", c.formula, got, c.want)
		}
	}
}

func TestEvaluate(t *testing.T) {
	cases := []struct {
		formula string
		vars    map[rune][]float64
		want    []float64
	}{
		{"A-B", map[rune][]float64{'A': {1, 2, 3}, 'B': {4, 5, 6}}, []float64{-3, -3, -3}},
		{"2*A", map[rune][]float64{'A': {2}}, []float64{4}},
		{"A-2.5*B", map[rune][]float64{'A': {10, 10}, 'B': {2, 4}}, []float64{5, 0}},
		{"2*B-A-C", map[rune][]float64{'A': {1}, 'B': {3}, 'C': {2}}, []float64{3}},
		{"(A+B)/2", map[rune][]float64{'A': {1, 3}, 'B': {3, 5}}, []float64{2, 4}},
		{"-A+B", map[rune][]float64{'A': {1}, 'B': {3}}, []float64{2}},
		{"A*B/31.1035", map[rune][]float64{'A': {31.1035}, 'B': {2}}, []float64{2}},
	}
	for _, c := range cases {
		got, err := Evaluate(c.vars, c.formula)
		if err != nil {
			t.Fatalf("Evaluate(%q) failed: %v", c.formula, err)
		}
		if len(got) != len(c.want) {
			t.Fatalf("Evaluate(%q) returned %d values, want %d", c.formula, len(got), len(c.want))
		}
		for i := range got {
			if math.Abs(got[i]-c.want[i]) > 1e-9 {
				t.Errorf("Evaluate(%q)[%d] = %v, want %v", c.formula, i, got[i], c.want[i])
			}
		}
	}
}

func TestEvaluatePrecedence(t *testing.T) {
	got, err := Evaluate(map[rune][]float64{'A': {2}, 'B': {3}, 'C': {4}}, "A+B*C")
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if got[0] != 14 {
		t.Errorf("A+B*C = %v, want 14", got[0])
	}
}

func TestEvaluateNaNPropagates(t *testing.T) {
	got, err := Evaluate(map[rune][]float64{'A': {math.NaN(), 1}, 'B': {1, 1}}, "A-B")
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if !math.IsNaN(got[0]) {
		t.Errorf("got[0] = %v, want NaN", got[0])
	}
	if got[1] != 0 {
		t.Errorf("got[1] = %v, want 0", got[1])
	}
}

func TestEvaluateLengthMismatch(t *testing.T) {
	_, err := Evaluate(map[rune][]float64{'A': {1, 2, 3}, 'B': {4, 5}}, "A-B")
	if !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("err = %v, want ErrLengthMismatch", err)
	}
}

func TestEvaluateUndefinedVariable(t *testing.T) {
	_, err := Evaluate(map[rune][]float64{'A': {1}}, "A-B")
	if !errors.Is(err, ErrUndefinedVariable) {
		t.Errorf("err = %v, want ErrUndefinedVariable", err)
	}
}

func TestEvaluateNoVariables(t *testing.T) {
	_, err := Evaluate(nil, "1+2")
	if !errors.Is(err, ErrNoVariables) {
		t.Errorf("err = %v, want ErrNoVariables", err)
	}
}

func TestEvaluateSyntaxErrors(t *testing.T) {
	vars := map[rune][]float64{'A': {1}, 'B': {2}}
	for _, bad := range []string{"A+", "(A", "A B", "A$B", "A..2", "", "A+b"} {
		if _, err := Evaluate(vars, bad); !errors.Is(err, ErrSyntax) {
			t.Errorf("Evaluate(%q) err = %v, want ErrSyntax", bad, err)
		}
	}
}
