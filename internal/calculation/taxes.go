package calculation

import (
	"errors"
	"fmt"

	"github.com/rgehrsitz/itax/internal/domain"
	"github.com/shopspring/decimal"
)

// INCOME TAX ASSUMPTIONS (FY 2024-25):
//
// 1. Each slab's tax is rounded to whole rupees; tax before rebate is the sum
//    of the rounded slab amounts.
// 2. Section 87A rebate wipes out the whole tax at or below the regime threshold.
//    Only the new regime smooths the cliff above the threshold (marginal relief).
// 3. Surcharge tiers are selected on gross income and applied to the whole tax.
//    Surcharge marginal relief at the tier boundaries is not modeled.
// 4. Cess is 4% of tax plus surcharge.
//
// Preconditions the engine does not check: deduction amounts are non-negative,
// 80D is already capped for the age category, HRA is already the exempt amount.

// ErrInvalidInput is returned (wrapped) for inputs the calculators cannot accept
var ErrInvalidInput = errors.New("invalid input")

var hundred = decimal.NewFromInt(100)

// IncomeTaxCalculator computes Indian income tax for one tax year
type IncomeTaxCalculator struct {
	Year string
}

// NewIncomeTaxCalculatorFY2025 creates a calculator for FY 2024-25 rules
func NewIncomeTaxCalculatorFY2025() *IncomeTaxCalculator {
	return &IncomeTaxCalculator{Year: domain.TaxYear}
}

// CalculateIncomeTax computes the itemized tax for input under FY 2024-25 rules
func CalculateIncomeTax(input domain.TaxInput) (*domain.TaxResult, error) {
	return NewIncomeTaxCalculatorFY2025().Calculate(input)
}

// Calculate computes the itemized tax breakdown for input.
// It fails only when gross income is negative or the regime/age category is unknown.
func (itc *IncomeTaxCalculator) Calculate(input domain.TaxInput) (*domain.TaxResult, error) {
	if input.AnnualGrossIncome.IsNegative() {
		return nil, fmt.Errorf("%w: annual gross income cannot be negative (got %s)", ErrInvalidInput, input.AnnualGrossIncome.String())
	}
	if !input.AgeCategory.Valid() {
		return nil, fmt.Errorf("%w: unknown age category %d", ErrInvalidInput, int(input.AgeCategory))
	}

	standardDed, ok := domain.StandardDeduction(input.Regime)
	if !ok {
		return nil, fmt.Errorf("%w: unknown tax regime %d", ErrInvalidInput, int(input.Regime))
	}
	threshold, _ := domain.RebateThreshold(input.Regime)

	if input.Regime == domain.RegimeNew {
		return itc.calculateNewRegime(input, standardDed, threshold), nil
	}
	return itc.calculateOldRegime(input, standardDed, threshold)
}

// calculateNewRegime applies the new-regime steps in order:
// deductions, slabs, rebate, marginal relief, surcharge, cess
func (itc *IncomeTaxCalculator) calculateNewRegime(input domain.TaxInput, standardDed, threshold decimal.Decimal) *domain.TaxResult {
	// Only the standard deduction and employer NPS (80CCD(2)) are honored
	totalDeductions := standardDed.Add(input.Deductions.EmployerNPS)
	taxableIncome := floorZero(input.AnnualGrossIncome.Sub(totalDeductions))

	slabs, taxBeforeRebate := calculateSlabTax(taxableIncome, domain.NewRegimeSlabs())

	result := &domain.TaxResult{
		Regime:            domain.RegimeNew,
		AgeCategory:       input.AgeCategory,
		GrossIncome:       input.AnnualGrossIncome,
		StandardDeduction: standardDed,
		TotalDeductions:   totalDeductions,
		TaxableIncome:     taxableIncome,
		Slabs:             slabs,
		TaxBeforeRebate:   taxBeforeRebate,
	}

	result.RebateAmount, result.TaxAfterRebate = applyRebate(taxBeforeRebate, taxableIncome, threshold)

	// Marginal relief: tax cannot exceed the income earned above the rebate cliff
	if taxableIncome.GreaterThan(threshold) && result.TaxAfterRebate.IsPositive() {
		capped, relief := applyMarginalRelief(result.TaxAfterRebate, taxableIncome, threshold)
		if relief.IsPositive() {
			result.TaxAfterRebate = capped
			result.MarginalRelief = &relief
		}
	}

	itc.finish(result)
	return result
}

// calculateOldRegime applies the old-regime steps: deductions, age-based slabs, rebate, surcharge, cess
func (itc *IncomeTaxCalculator) calculateOldRegime(input domain.TaxInput, standardDed, threshold decimal.Decimal) (*domain.TaxResult, error) {
	brackets, ok := domain.OldRegimeSlabs(input.AgeCategory)
	if !ok {
		return nil, fmt.Errorf("%w: no old-regime slabs for age category %s", ErrInvalidInput, input.AgeCategory)
	}

	ded := input.Deductions
	section80C := decimal.Min(ded.Section80C, decimal.NewFromInt(domain.Section80CLimit))

	totalDeductions := standardDed.
		Add(section80C).
		Add(ded.Section80D).
		Add(ded.HRA).
		Add(ded.LTA).
		Add(ded.OtherDeductions)
	taxableIncome := floorZero(input.AnnualGrossIncome.Sub(totalDeductions))

	slabs, taxBeforeRebate := calculateSlabTax(taxableIncome, brackets)

	result := &domain.TaxResult{
		Regime:            domain.RegimeOld,
		AgeCategory:       input.AgeCategory,
		GrossIncome:       input.AnnualGrossIncome,
		StandardDeduction: standardDed,
		TotalDeductions:   totalDeductions,
		TaxableIncome:     taxableIncome,
		Slabs:             slabs,
		TaxBeforeRebate:   taxBeforeRebate,
	}

	// No marginal relief in the old regime; the 87A cliff is not smoothed
	result.RebateAmount, result.TaxAfterRebate = applyRebate(taxBeforeRebate, taxableIncome, threshold)

	itc.finish(result)
	return result, nil
}

// finish adds surcharge, cess, the final amount and the effective rate
func (itc *IncomeTaxCalculator) finish(result *domain.TaxResult) {
	result.SurchargeRate, result.Surcharge = calculateSurcharge(result.TaxAfterRebate, result.GrossIncome, result.Regime)

	taxPlusSurcharge := result.TaxAfterRebate.Add(result.Surcharge)
	result.Cess = taxPlusSurcharge.Mul(domain.CessRate()).Round(0)
	result.FinalTaxPayable = taxPlusSurcharge.Add(result.Cess).Round(0)

	if result.GrossIncome.IsPositive() {
		result.EffectiveRate = result.FinalTaxPayable.Div(result.GrossIncome).Mul(hundred).Round(2)
	}
}

// calculateSlabTax runs the progressive slab accumulator over ascending brackets.
// The amount taxed in a bracket is min(To, income) - From + 1; a bracket whose
// lower bound is at or above income contributes nothing and ends the walk.
func calculateSlabTax(income decimal.Decimal, brackets []domain.SlabBracket) ([]domain.TaxSlab, decimal.Decimal) {
	slabs := []domain.TaxSlab{}
	total := decimal.Zero

	if !income.IsPositive() {
		return slabs, total
	}

	for _, bracket := range brackets {
		if bracket.From.GreaterThanOrEqual(income) {
			break
		}

		upper := decimal.Min(bracket.To, income)
		amountInBracket := upper.Sub(bracket.From).Add(decimal.NewFromInt(1))
		bracketTax := amountInBracket.Mul(bracket.Rate).Round(0)

		slabs = append(slabs, domain.TaxSlab{
			From:        bracket.From,
			To:          upper,
			RatePercent: bracket.Rate.Mul(hundred),
			Tax:         bracketTax,
		})
		total = total.Add(bracketTax)

		if income.LessThanOrEqual(bracket.To) {
			break
		}
	}

	return slabs, total
}

// applyRebate returns (rebate, tax after rebate) for the Section 87A rebate
func applyRebate(taxBeforeRebate, taxableIncome, threshold decimal.Decimal) (decimal.Decimal, decimal.Decimal) {
	if taxableIncome.LessThanOrEqual(threshold) {
		return taxBeforeRebate, decimal.Zero
	}
	return decimal.Zero, taxBeforeRebate
}

// applyMarginalRelief caps tax at the income above the rebate threshold.
// Returns the capped tax and the relief granted (zero when the cap does not bind).
func applyMarginalRelief(tax, taxableIncome, threshold decimal.Decimal) (decimal.Decimal, decimal.Decimal) {
	excessIncome := taxableIncome.Sub(threshold)
	if tax.GreaterThan(excessIncome) {
		return excessIncome, tax.Sub(excessIncome)
	}
	return tax, decimal.Zero
}

// calculateSurcharge picks the tier from gross income and applies its rate to the whole tax
func calculateSurcharge(taxAfterRebate, grossIncome decimal.Decimal, regime domain.TaxRegime) (decimal.Decimal, decimal.Decimal) {
	tiers, ok := domain.SurchargeTiers(regime)
	if !ok || !taxAfterRebate.IsPositive() {
		return decimal.Zero, decimal.Zero
	}

	for _, tier := range tiers {
		if grossIncome.GreaterThan(tier.Above) {
			return tier.Rate, taxAfterRebate.Mul(tier.Rate).Round(0)
		}
	}
	return decimal.Zero, decimal.Zero
}

func floorZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
