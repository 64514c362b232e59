package breakeven

import (
	"errors"
	"strings"
	"testing"

	"github.com/rgehrsitz/itax/internal/domain"
	"github.com/shopspring/decimal"
)

func TestDefaultSolverOptions(t *testing.T) {
	opts := DefaultSolverOptions()

	if !opts.Tolerance.Equal(decimal.NewFromInt(1)) {
		t.Errorf("Expected tolerance 1, got %s", opts.Tolerance)
	}
	if opts.MaxIterations != 64 {
		t.Errorf("Expected 64 iterations, got %d", opts.MaxIterations)
	}
}

func TestRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     Request
		wantErr bool
	}{
		{"valid", Request{GrossIncome: decimal.NewFromInt(1000000)}, false},
		{"zero income", Request{}, true},
		{"negative NPS", Request{GrossIncome: decimal.NewFromInt(1000000), EmployerNPS: decimal.NewFromInt(-1)}, true},
		{"bad age category", Request{GrossIncome: decimal.NewFromInt(1000000), AgeCategory: domain.AgeCategory(9)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestBreakEvenError(t *testing.T) {
	cause := errors.New("boom")
	err := &BreakEvenError{Operation: "solve", Message: "failed", Cause: cause}

	if err.Error() != "solve: failed: boom" {
		t.Errorf("Unexpected message %q", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("Expected Unwrap to expose the cause")
	}

	bare := &BreakEvenError{Operation: "sweep", Message: "empty"}
	if bare.Error() != "sweep: empty" {
		t.Errorf("Unexpected message %q", bare.Error())
	}
}

func TestCommonLimit(t *testing.T) {
	if !commonLimit(domain.AgeBelow60).Equal(decimal.NewFromInt(225000)) {
		t.Errorf("Expected 225000 below 60, got %s", commonLimit(domain.AgeBelow60))
	}
	if !commonLimit(domain.AgeSenior).Equal(decimal.NewFromInt(250000)) {
		t.Errorf("Expected 250000 for seniors, got %s", commonLimit(domain.AgeSenior))
	}
}

func TestIncomeRange(t *testing.T) {
	incomes, err := IncomeRange(decimal.NewFromInt(500000), decimal.NewFromInt(1500000), decimal.NewFromInt(500000))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(incomes) != 3 || !incomes[2].Equal(decimal.NewFromInt(1500000)) {
		t.Errorf("Unexpected range %v", incomes)
	}

	if _, err := IncomeRange(decimal.NewFromInt(10), decimal.NewFromInt(5), decimal.NewFromInt(1)); err == nil {
		t.Error("Expected error for inverted range")
	}
	if _, err := IncomeRange(decimal.NewFromInt(1), decimal.NewFromInt(1000000), decimal.NewFromInt(1)); err == nil {
		t.Error("Expected error for oversized range")
	}
}

func TestTableFormatter(t *testing.T) {
	result := &Result{
		Request:             Request{GrossIncome: decimal.NewFromInt(1000000)},
		Success:             true,
		Iterations:          20,
		BreakEvenDeductions: decimal.NewFromInt(268748),
		NewRegimeTax:        decimal.NewFromInt(50700),
		OldRegimeTax:        decimal.NewFromInt(50700),
		OldRegimeTaxNoDed:   decimal.NewFromInt(106600),
	}

	tf := &TableFormatter{}
	out := tf.Format(result)
	for _, want := range []string{"BREAK-EVEN POINT", "₹268748", "✓ Converged", "beyond 80C"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q", want)
		}
	}

	sweep := tf.FormatSweep(&SweepResult{Results: []Result{*result}, Recommendations: []string{"x"}})
	if !strings.Contains(sweep, "₹10.00L") || !strings.Contains(sweep, "₹2.69L") {
		t.Errorf("Expected lakh abbreviations, got:\n%s", sweep)
	}

	jf := &JSONFormatter{}
	js, err := jf.Format(result)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !strings.Contains(js, `"breakEvenDeductions":"268748"`) {
		t.Errorf("Unexpected JSON %s", js)
	}
}
