package breakeven

import (
	"fmt"

	"github.com/rgehrsitz/itax/internal/domain"
	"github.com/shopspring/decimal"
)

// Request asks for the old-regime deductions at which the old regime stops costing more
type Request struct {
	GrossIncome decimal.Decimal    `json:"grossIncome" yaml:"gross_income"`
	AgeCategory domain.AgeCategory `json:"ageCategory" yaml:"age_category"`
	EmployerNPS decimal.Decimal    `json:"employerNPS" yaml:"employer_nps"` // 80CCD(2), claimable in both regimes
}

// Validate checks the request before any tax is computed
func (r Request) Validate() error {
	if !r.GrossIncome.IsPositive() {
		return &BreakEvenError{
			Operation: "validate_request",
			Message:   fmt.Sprintf("gross income must be positive, got %s", r.GrossIncome),
		}
	}
	if r.EmployerNPS.IsNegative() {
		return &BreakEvenError{
			Operation: "validate_request",
			Message:   "employer NPS cannot be negative",
		}
	}
	if !r.AgeCategory.Valid() {
		return &BreakEvenError{
			Operation: "validate_request",
			Message:   fmt.Sprintf("unknown age category %d", int(r.AgeCategory)),
		}
	}
	return nil
}

// Result is the break-even point for one income
type Result struct {
	Request         Request `json:"request"`
	Success         bool    `json:"success"`
	Iterations      int     `json:"iterations"`
	ConvergenceInfo string  `json:"convergenceInfo"`

	// Deductions beyond the standard deduction that bring the old regime level with the new
	BreakEvenDeductions decimal.Decimal `json:"breakEvenDeductions"`
	NewRegimeTax        decimal.Decimal `json:"newRegimeTax"`
	OldRegimeTax        decimal.Decimal `json:"oldRegimeTaxAtBreakEven"`
	OldRegimeTaxNoDed   decimal.Decimal `json:"oldRegimeTaxWithoutDeductions"`

	// True when 80C, self 80D and 80CCD(1B) alone can reach the break-even point
	WithinCommonLimits bool `json:"withinCommonLimits"`
}

// SweepResult holds break-even points across a range of incomes
type SweepResult struct {
	Results         []Result `json:"results"`
	Recommendations []string `json:"recommendations"`
}

// SolverOptions configures the bisection
type SolverOptions struct {
	Tolerance     decimal.Decimal // stop once the bracket is this narrow, in rupees
	MaxIterations int
}

// DefaultSolverOptions returns default solver configuration
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		Tolerance:     decimal.NewFromInt(1),
		MaxIterations: 64,
	}
}

// BreakEvenError represents errors from break-even solver
type BreakEvenError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *BreakEvenError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *BreakEvenError) Unwrap() error {
	return e.Cause
}

// commonLimit is the sum of the deductions most salaried taxpayers can actually claim
func commonLimit(category domain.AgeCategory) decimal.Decimal {
	self := int64(domain.Section80DSelfLimit)
	if category != domain.AgeBelow60 {
		self = domain.Section80DSelfSeniorLimit
	}
	return decimal.NewFromInt(domain.Section80CLimit + domain.Section80CCD1BLimit + self)
}
