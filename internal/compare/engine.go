package compare

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/itax/internal/calculation"
	"github.com/rgehrsitz/itax/internal/domain"
	"github.com/shopspring/decimal"
)

// CompareEngine runs the tax engine under both regimes for the same profile
type CompareEngine struct {
	TaxCalc *calculation.IncomeTaxCalculator
	Logger  calculation.Logger
}

// NewCompareEngine creates a new comparison engine
func NewCompareEngine(taxCalc *calculation.IncomeTaxCalculator) *CompareEngine {
	if taxCalc == nil {
		taxCalc = calculation.NewIncomeTaxCalculatorFY2025()
	}
	return &CompareEngine{TaxCalc: taxCalc, Logger: calculation.NopLogger{}}
}

// SetLogger sets the logger; nil restores the no-op logger
func (ce *CompareEngine) SetLogger(l calculation.Logger) {
	if l == nil {
		l = calculation.NopLogger{}
	}
	ce.Logger = l
}

// NamedInput pairs a profile name with its tax input
type NamedInput struct {
	Name  string
	Input domain.TaxInput
}

// Compare computes input under both regimes. The regime field of input is ignored.
// Ties recommend the new regime, the default one.
func (ce *CompareEngine) Compare(ctx context.Context, name string, input domain.TaxInput) (*RegimeComparison, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	oldInput := input
	oldInput.Regime = domain.RegimeOld
	old, err := ce.TaxCalc.Calculate(oldInput)
	if err != nil {
		return nil, fmt.Errorf("old regime: %w", err)
	}

	newInput := input
	newInput.Regime = domain.RegimeNew
	nw, err := ce.TaxCalc.Calculate(newInput)
	if err != nil {
		return nil, fmt.Errorf("new regime: %w", err)
	}

	rc := &RegimeComparison{
		ProfileName: name,
		Input:       input,
		Old:         old,
		New:         nw,
		Recommended: domain.RegimeNew,
		Savings:     old.FinalTaxPayable.Sub(nw.FinalTaxPayable).Abs(),
		Lines:       buildLines(old, nw),
	}
	if old.FinalTaxPayable.LessThan(nw.FinalTaxPayable) {
		rc.Recommended = domain.RegimeOld
	}

	limit80C := decimal.NewFromInt(domain.Section80CLimit)
	if input.Deductions.Section80C.LessThan(limit80C) {
		full := oldInput
		full.Deductions.Section80C = limit80C
		res, err := ce.TaxCalc.Calculate(full)
		if err != nil {
			return nil, fmt.Errorf("old regime at full 80C: %w", err)
		}
		rc.OldTaxAtFull80C = &res.FinalTaxPayable
	}

	rc.Recommendations = GenerateRecommendations(rc)
	ce.Logger.Debugf("compared %q: old=%s new=%s recommended=%s", name,
		old.FinalTaxPayable.String(), nw.FinalTaxPayable.String(), rc.Recommended)
	return rc, nil
}

// CompareProfiles compares every profile, stopping at the first failure
func (ce *CompareEngine) CompareProfiles(ctx context.Context, profiles []NamedInput) (*ComparisonSet, error) {
	set := &ComparisonSet{Comparisons: make([]RegimeComparison, 0, len(profiles))}
	for _, p := range profiles {
		rc, err := ce.Compare(ctx, p.Name, p.Input)
		if err != nil {
			return nil, fmt.Errorf("profile %s: %w", p.Name, err)
		}
		set.Comparisons = append(set.Comparisons, *rc)
	}
	return set, nil
}

// GenerateRecommendations explains the recommendation and points at levers the taxpayer still has
func GenerateRecommendations(rc *RegimeComparison) []string {
	recommendations := []string{}

	switch {
	case rc.Savings.IsZero():
		recommendations = append(recommendations,
			"Both regimes give the same tax; the new regime is the default and needs no proofs")
	default:
		recommendations = append(recommendations, fmt.Sprintf(
			"%s regime saves ₹%s a year (₹%s a month)", rc.Recommended,
			rc.Savings.StringFixed(0), rc.Savings.Div(decimal.NewFromInt(12)).Round(0).StringFixed(0)))
	}

	if rc.New.HasMarginalRelief() {
		recommendations = append(recommendations, fmt.Sprintf(
			"New regime tax is capped by marginal relief (₹%s) just above the ₹7L rebate threshold",
			rc.New.MarginalRelief.StringFixed(0)))
	}
	if rc.New.RebateAmount.IsPositive() && rc.New.FinalTaxPayable.IsZero() {
		recommendations = append(recommendations, "Section 87A rebate brings new regime tax to zero")
	}
	if rc.Old.RebateAmount.IsPositive() && rc.Old.FinalTaxPayable.IsZero() {
		recommendations = append(recommendations, "Section 87A rebate brings old regime tax to zero")
	}

	if rc.OldTaxAtFull80C != nil {
		saving := rc.Old.FinalTaxPayable.Sub(*rc.OldTaxAtFull80C)
		if saving.IsPositive() {
			headroom := decimal.NewFromInt(domain.Section80CLimit).Sub(rc.Input.Deductions.Section80C)
			msg := fmt.Sprintf("Investing the remaining ₹%s of 80C headroom lowers old regime tax by ₹%s",
				headroom.StringFixed(0), saving.StringFixed(0))
			if rc.Recommended == domain.RegimeNew && rc.OldTaxAtFull80C.LessThan(rc.New.FinalTaxPayable) {
				msg += " and would make the old regime the better choice"
			}
			recommendations = append(recommendations, msg)
		}
	}

	return recommendations
}
