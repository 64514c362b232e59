package compare

import (
	"github.com/rgehrsitz/itax/internal/domain"
	"github.com/shopspring/decimal"
)

// LineItem is one row of the side-by-side comparison
type LineItem struct {
	Label      string          `json:"label"`
	Old        decimal.Decimal `json:"old"`
	New        decimal.Decimal `json:"new"`
	Difference decimal.Decimal `json:"difference"` // Old - New
}

// RegimeComparison is one profile computed under both regimes
type RegimeComparison struct {
	ProfileName     string            `json:"profileName"`
	Input           domain.TaxInput   `json:"input"`
	Old             *domain.TaxResult `json:"old"`
	New             *domain.TaxResult `json:"new"`
	Recommended     domain.TaxRegime  `json:"recommended"`
	Savings         decimal.Decimal   `json:"savings"` // absolute difference in final tax
	Lines           []LineItem        `json:"lines"`
	Recommendations []string          `json:"recommendations"`

	// Old-regime tax if 80C were claimed up to its limit; nil when 80C is already full
	OldTaxAtFull80C *decimal.Decimal `json:"oldTaxAtFull80C,omitempty"`
}

// ComparisonSet holds the comparisons for every profile in a file
type ComparisonSet struct {
	ConfigPath  string             `json:"configPath"`
	Comparisons []RegimeComparison `json:"comparisons"`
}

// RecommendedResult returns the result for the recommended regime
func (rc *RegimeComparison) RecommendedResult() *domain.TaxResult {
	if rc.Recommended == domain.RegimeOld {
		return rc.Old
	}
	return rc.New
}

// ToTaxReport converts a RegimeComparison to a domain.TaxReport for the output formatters
func (rc *RegimeComparison) ToTaxReport() *domain.TaxReport {
	rec := rc.Recommended
	return &domain.TaxReport{
		ProfileName: rc.ProfileName,
		TaxYear:     domain.TaxYear,
		Input:       rc.Input,
		Results:     []*domain.TaxResult{rc.Old, rc.New},
		Recommended: &rec,
		Savings:     rc.Savings,
		Notes:       rc.Recommendations,
	}
}

// buildLines lays out the itemized rows shared by every comparison formatter
func buildLines(old, new *domain.TaxResult) []LineItem {
	row := func(label string, o, n decimal.Decimal) LineItem {
		return LineItem{Label: label, Old: o, New: n, Difference: o.Sub(n)}
	}
	return []LineItem{
		row("Gross Income", old.GrossIncome, new.GrossIncome),
		row("Standard Deduction", old.StandardDeduction, new.StandardDeduction),
		row("Total Deductions", old.TotalDeductions, new.TotalDeductions),
		row("Taxable Income", old.TaxableIncome, new.TaxableIncome),
		row("Tax Before Rebate", old.TaxBeforeRebate, new.TaxBeforeRebate),
		row("Rebate u/s 87A", old.RebateAmount, new.RebateAmount),
		row("Tax After Rebate", old.TaxAfterRebate, new.TaxAfterRebate),
		row("Surcharge", old.Surcharge, new.Surcharge),
		row("Cess", old.Cess, new.Cess),
		row("Final Tax Payable", old.FinalTaxPayable, new.FinalTaxPayable),
	}
}
