package breakeven

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/itax/internal/calculation"
	"github.com/rgehrsitz/itax/internal/domain"
	"github.com/shopspring/decimal"
)

// Solver finds the old-regime deduction total that matches new-regime tax
type Solver struct {
	TaxCalc *calculation.IncomeTaxCalculator
	Options SolverOptions
}

// NewSolver creates a new break-even solver
func NewSolver(taxCalc *calculation.IncomeTaxCalculator, options SolverOptions) *Solver {
	return &Solver{
		TaxCalc: taxCalc,
		Options: options,
	}
}

// NewDefaultSolver creates a solver with default options and FY 2024-25 rules
func NewDefaultSolver() *Solver {
	return NewSolver(calculation.NewIncomeTaxCalculatorFY2025(), DefaultSolverOptions())
}

// Solve bisects on the old-regime deduction total. Old-regime tax never rises as
// deductions grow, so the smallest total with old tax <= new tax is well defined.
func (s *Solver) Solve(ctx context.Context, req Request) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	maxIterations := s.Options.MaxIterations
	if maxIterations <= 0 {
		maxIterations = DefaultSolverOptions().MaxIterations
	}
	tolerance := s.Options.Tolerance
	if !tolerance.IsPositive() {
		tolerance = DefaultSolverOptions().Tolerance
	}

	newResult, err := s.TaxCalc.Calculate(domain.TaxInput{
		AnnualGrossIncome: req.GrossIncome,
		Regime:            domain.RegimeNew,
		AgeCategory:       req.AgeCategory,
		Deductions:        domain.TaxDeductions{EmployerNPS: req.EmployerNPS},
	})
	if err != nil {
		return nil, &BreakEvenError{Operation: "solve", Message: "failed to calculate new regime tax", Cause: err}
	}
	target := newResult.FinalTaxPayable

	result := &Result{Request: req, NewRegimeTax: target}

	oldTax := func(deductions decimal.Decimal) (decimal.Decimal, error) {
		r, err := s.TaxCalc.Calculate(domain.TaxInput{
			AnnualGrossIncome: req.GrossIncome,
			Regime:            domain.RegimeOld,
			AgeCategory:       req.AgeCategory,
			Deductions:        domain.TaxDeductions{OtherDeductions: deductions.Add(req.EmployerNPS)},
		})
		if err != nil {
			return decimal.Zero, &BreakEvenError{Operation: "solve", Message: "failed to calculate old regime tax", Cause: err}
		}
		return r.FinalTaxPayable, nil
	}

	noDed, err := oldTax(decimal.Zero)
	if err != nil {
		return nil, err
	}
	result.OldRegimeTaxNoDed = noDed

	if noDed.LessThanOrEqual(target) {
		result.Success = true
		result.OldRegimeTax = noDed
		result.WithinCommonLimits = true
		result.ConvergenceInfo = "old regime already matches the new regime without further deductions"
		return result, nil
	}

	// lo always fails (old tax > new tax), hi always passes
	lo := decimal.Zero
	hi := req.GrossIncome
	hiTax := decimal.Zero
	two := decimal.NewFromInt(2)

	for result.Iterations < maxIterations && hi.Sub(lo).GreaterThan(tolerance) {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		result.Iterations++

		mid := lo.Add(hi).Div(two).Floor()
		tax, err := oldTax(mid)
		if err != nil {
			return nil, err
		}
		if tax.LessThanOrEqual(target) {
			hi, hiTax = mid, tax
		} else {
			lo = mid
		}
	}

	result.BreakEvenDeductions = hi
	result.OldRegimeTax = hiTax
	result.Success = hi.Sub(lo).LessThanOrEqual(tolerance)
	result.WithinCommonLimits = hi.LessThanOrEqual(commonLimit(req.AgeCategory))
	if result.Success {
		result.ConvergenceInfo = fmt.Sprintf("converged within ₹%s after %d iterations", tolerance.StringFixed(0), result.Iterations)
	} else {
		result.ConvergenceInfo = fmt.Sprintf("stopped after %d iterations with a ₹%s bracket", result.Iterations, hi.Sub(lo).StringFixed(0))
	}
	return result, nil
}
