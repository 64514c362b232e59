package domain

import (
	"github.com/shopspring/decimal"
)

// FY 2024-25 (AY 2025-26) statutory values. These are facts of the tax year,
// not tunables; nothing in the program mutates them.
const (
	TaxYear = "FY 2024-25"

	StandardDeductionOld = 50000
	StandardDeductionNew = 75000

	Section80CLimit = 150000

	RebateThresholdOld = 500000 // Section 87A, old regime
	RebateThresholdNew = 700000 // Section 87A, new regime

	// Section 80D health insurance caps
	Section80DSelfLimit          = 25000
	Section80DSelfSeniorLimit    = 50000
	Section80DParentsLimit       = 25000
	Section80DParentsSeniorLimit = 50000

	// Section 80CCD(1B) additional NPS deduction (old regime)
	Section80CCD1BLimit = 50000

	// Employer NPS contribution ceiling under 80CCD(2), as a fraction of basic
	EmployerNPSLimitPercentNew = 14
	EmployerNPSLimitPercentOld = 10

	GratuityExemptionLimit = 2000000
	ProfessionalTaxAnnual  = 2500

	// EPFO wage ceiling for EPS contributions (monthly)
	EPFWageCeiling = 15000
)

// OpenEnded marks the upper bound of the top slab
const OpenEnded = 999999999999

// Rates expressed in percent
const (
	CessPercent = 4 // health and education cess on tax plus surcharge

	EPFContributionPercent = 12
	EPSContributionPercent = 8.33
	EPFInterestPercent     = 8.25

	GratuityProvisionPercent = 4.81 // of basic, as budgeted in CTC
)

// Percent converts a percentage constant to a decimal fraction
func Percent(p float64) decimal.Decimal {
	return decimal.NewFromFloat(p).Div(decimal.NewFromInt(100))
}

// CessRate returns the cess as a fraction (0.04)
func CessRate() decimal.Decimal {
	return Percent(CessPercent)
}

// SlabBracket is one row of a slab table; Rate is a fraction (0.05, not 5)
type SlabBracket struct {
	From decimal.Decimal
	To   decimal.Decimal
	Rate decimal.Decimal
}

// SurchargeTier applies Rate to the whole tax when gross income exceeds Above
type SurchargeTier struct {
	Above decimal.Decimal
	Rate  decimal.Decimal
}

type bracketRow struct {
	from, to int64
	rate     string
}

var (
	oldBelow60Rows = []bracketRow{
		{0, 250000, "0"},
		{250001, 500000, "0.05"},
		{500001, 1000000, "0.20"},
		{1000001, OpenEnded, "0.30"},
	}
	oldSeniorRows = []bracketRow{
		{0, 300000, "0"},
		{300001, 500000, "0.05"},
		{500001, 1000000, "0.20"},
		{1000001, OpenEnded, "0.30"},
	}
	oldSuperSeniorRows = []bracketRow{
		{0, 500000, "0"},
		{500001, 1000000, "0.20"},
		{1000001, OpenEnded, "0.30"},
	}
	newRegimeRows = []bracketRow{
		{0, 300000, "0"},
		{300001, 600000, "0.05"},
		{600001, 900000, "0.10"},
		{900001, 1200000, "0.15"},
		{1200001, 1500000, "0.20"},
		{1500001, OpenEnded, "0.30"},
	}
)

func buildBrackets(rows []bracketRow) []SlabBracket {
	brackets := make([]SlabBracket, len(rows))
	for i, r := range rows {
		brackets[i] = SlabBracket{
			From: decimal.NewFromInt(r.from),
			To:   decimal.NewFromInt(r.to),
			Rate: decimal.RequireFromString(r.rate),
		}
	}
	return brackets
}

// OldRegimeSlabs returns a fresh copy of the old-regime slab table for an age category.
// The boolean is false for an unknown category.
func OldRegimeSlabs(category AgeCategory) ([]SlabBracket, bool) {
	switch category {
	case AgeBelow60:
		return buildBrackets(oldBelow60Rows), true
	case AgeSenior:
		return buildBrackets(oldSeniorRows), true
	case AgeSuperSenior:
		return buildBrackets(oldSuperSeniorRows), true
	}
	return nil, false
}

// NewRegimeSlabs returns a fresh copy of the new-regime slab table (same for all ages)
func NewRegimeSlabs() []SlabBracket {
	return buildBrackets(newRegimeRows)
}

// SurchargeTiers returns the surcharge tiers for a regime in descending order of threshold.
// The new regime caps the top tier at 25%.
func SurchargeTiers(regime TaxRegime) ([]SurchargeTier, bool) {
	var top string
	switch regime {
	case RegimeOld:
		top = "0.37"
	case RegimeNew:
		top = "0.25"
	default:
		return nil, false
	}
	return []SurchargeTier{
		{Above: decimal.NewFromInt(50000000), Rate: decimal.RequireFromString(top)},
		{Above: decimal.NewFromInt(20000000), Rate: decimal.RequireFromString("0.25")},
		{Above: decimal.NewFromInt(10000000), Rate: decimal.RequireFromString("0.15")},
		{Above: decimal.NewFromInt(5000000), Rate: decimal.RequireFromString("0.10")},
	}, true
}

// StandardDeduction returns the salaried standard deduction for a regime
func StandardDeduction(regime TaxRegime) (decimal.Decimal, bool) {
	switch regime {
	case RegimeOld:
		return decimal.NewFromInt(StandardDeductionOld), true
	case RegimeNew:
		return decimal.NewFromInt(StandardDeductionNew), true
	}
	return decimal.Zero, false
}

// RebateThreshold returns the Section 87A taxable-income ceiling for a regime
func RebateThreshold(regime TaxRegime) (decimal.Decimal, bool) {
	switch regime {
	case RegimeOld:
		return decimal.NewFromInt(RebateThresholdOld), true
	case RegimeNew:
		return decimal.NewFromInt(RebateThresholdNew), true
	}
	return decimal.Zero, false
}

// Section80DLimit returns the combined 80D cap for self/family plus parents
func Section80DLimit(category AgeCategory, parentsSenior bool) decimal.Decimal {
	self := int64(Section80DSelfLimit)
	if category == AgeSenior || category == AgeSuperSenior {
		self = Section80DSelfSeniorLimit
	}
	parents := int64(Section80DParentsLimit)
	if parentsSenior {
		parents = Section80DParentsSeniorLimit
	}
	return decimal.NewFromInt(self + parents)
}
