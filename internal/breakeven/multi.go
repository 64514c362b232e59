package breakeven

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/itax/internal/domain"
	"github.com/shopspring/decimal"
)

// Sweep solves the break-even point for each gross income in incomes and summarises the trend
func (s *Solver) Sweep(
	ctx context.Context,
	incomes []decimal.Decimal,
	category domain.AgeCategory,
	employerNPS decimal.Decimal,
) (*SweepResult, error) {
	if len(incomes) == 0 {
		return nil, &BreakEvenError{
			Operation: "sweep",
			Message:   "no incomes to solve",
		}
	}

	sweep := &SweepResult{}
	for _, income := range incomes {
		result, err := s.Solve(ctx, Request{
			GrossIncome: income,
			AgeCategory: category,
			EmployerNPS: employerNPS,
		})
		if err != nil {
			return nil, &BreakEvenError{
				Operation: "sweep",
				Message:   fmt.Sprintf("income %s", income.StringFixed(0)),
				Cause:     err,
			}
		}
		sweep.Results = append(sweep.Results, *result)
	}

	sweep.Recommendations = recommend(sweep.Results)
	return sweep, nil
}

// IncomeRange returns from, from+step, ... up to and including to
func IncomeRange(from, to, step decimal.Decimal) ([]decimal.Decimal, error) {
	if !from.IsPositive() || !step.IsPositive() || to.LessThan(from) {
		return nil, &BreakEvenError{
			Operation: "income_range",
			Message:   fmt.Sprintf("invalid range %s..%s step %s", from, to, step),
		}
	}
	var incomes []decimal.Decimal
	for v := from; v.LessThanOrEqual(to); v = v.Add(step) {
		incomes = append(incomes, v)
		if len(incomes) > 1000 {
			return nil, &BreakEvenError{Operation: "income_range", Message: "range produces more than 1000 incomes"}
		}
	}
	return incomes, nil
}

func recommend(results []Result) []string {
	var recs []string

	var firstOutOfReach *Result
	reachable := 0
	for i := range results {
		if results[i].WithinCommonLimits {
			reachable++
		} else if firstOutOfReach == nil {
			firstOutOfReach = &results[i]
		}
	}

	switch {
	case reachable == len(results):
		recs = append(recs, "Common deductions (80C, 80D, 80CCD(1B)) are enough to make the old regime competitive at every income tested.")
	case reachable == 0:
		recs = append(recs, "The new regime wins at every income tested unless deductions beyond 80C, 80D and 80CCD(1B) are available (HRA, home loan interest).")
	default:
		recs = append(recs, fmt.Sprintf("From a gross income of %s the old regime needs more than the common deductions to break even.",
			firstOutOfReach.Request.GrossIncome.StringFixed(0)))
	}
	return recs
}
