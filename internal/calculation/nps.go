package calculation

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// NPS exit rules
const (
	NPSRetirementAge      = 60
	NPSMinAnnuityPercent  = 40
	NPSDefaultAnnuityRate = 6
	npsMinEntryAge        = 18
)

// NPSInput describes contributions to the National Pension System
type NPSInput struct {
	CurrentAge          int             `json:"currentAge" yaml:"current_age"`
	MonthlyContribution decimal.Decimal `json:"monthlyContribution" yaml:"monthly_contribution"`
	CurrentCorpus       decimal.Decimal `json:"currentCorpus" yaml:"current_corpus"`
	ExpectedReturn      decimal.Decimal `json:"expectedReturn" yaml:"expected_return"` // percent
	AnnuityPercent      decimal.Decimal `json:"annuityPercent" yaml:"annuity_percent"` // zero means 40
	AnnuityRate         decimal.Decimal `json:"annuityRate" yaml:"annuity_rate"`       // percent, zero means 6
}

// NPSResult is the corpus at 60 and how it is paid out
type NPSResult struct {
	YearsToRetirement int             `json:"yearsToRetirement"`
	TotalContribution decimal.Decimal `json:"totalContribution"`
	Corpus            decimal.Decimal `json:"corpus"`
	AnnuityCorpus     decimal.Decimal `json:"annuityCorpus"`
	LumpSum           decimal.Decimal `json:"lumpSum"`
	MonthlyPension    decimal.Decimal `json:"monthlyPension"`
}

// CalculateNPS grows monthly contributions to age 60 like a SIP, then splits the corpus
// into the mandatory annuity purchase and a tax-free lump sum.
func CalculateNPS(in NPSInput) (*NPSResult, error) {
	if in.CurrentAge < npsMinEntryAge || in.CurrentAge >= NPSRetirementAge {
		return nil, fmt.Errorf("%w: current age must be between %d and %d, got %d",
			ErrInvalidInput, npsMinEntryAge, NPSRetirementAge-1, in.CurrentAge)
	}
	if in.MonthlyContribution.IsNegative() || in.CurrentCorpus.IsNegative() ||
		in.ExpectedReturn.IsNegative() || in.AnnuityRate.IsNegative() {
		return nil, fmt.Errorf("%w: NPS inputs cannot be negative", ErrInvalidInput)
	}

	annuityPct := in.AnnuityPercent
	if annuityPct.IsZero() {
		annuityPct = decimal.NewFromInt(NPSMinAnnuityPercent)
	}
	if annuityPct.LessThan(decimal.NewFromInt(NPSMinAnnuityPercent)) || annuityPct.GreaterThan(hundred) {
		return nil, fmt.Errorf("%w: annuity share must be between %d%% and 100%%, got %s%%",
			ErrInvalidInput, NPSMinAnnuityPercent, annuityPct)
	}
	annuityRate := in.AnnuityRate
	if annuityRate.IsZero() {
		annuityRate = decimal.NewFromInt(NPSDefaultAnnuityRate)
	}

	years := NPSRetirementAge - in.CurrentAge
	months := years * 12
	monthlyRate := in.ExpectedReturn.Div(hundred).Div(twelve)

	corpus := sipFutureValue(in.MonthlyContribution, monthlyRate, months)
	if in.CurrentCorpus.IsPositive() {
		growth := decimal.NewFromInt(1).Add(monthlyRate).Pow(decimal.NewFromInt(int64(months)))
		corpus = corpus.Add(in.CurrentCorpus.Mul(growth))
	}
	corpus = corpus.Round(2)

	annuity := corpus.Mul(annuityPct).Div(hundred).Round(2)
	return &NPSResult{
		YearsToRetirement: years,
		TotalContribution: in.MonthlyContribution.Mul(decimal.NewFromInt(int64(months))),
		Corpus:            corpus,
		AnnuityCorpus:     annuity,
		LumpSum:           corpus.Sub(annuity),
		MonthlyPension:    annuity.Mul(annuityRate).Div(hundred).Div(twelve).Round(2),
	}, nil
}
