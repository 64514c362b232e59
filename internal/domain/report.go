package domain

import "github.com/shopspring/decimal"

// TaxReport is what the output formatters render: one profile computed under
// one or both regimes
type TaxReport struct {
	ProfileName string          `yaml:"profile_name" json:"profileName"`
	TaxYear     string          `yaml:"tax_year" json:"taxYear"`
	Input       TaxInput        `yaml:"input" json:"input"`
	Results     []*TaxResult    `yaml:"results" json:"results"`
	Recommended *TaxRegime      `yaml:"recommended,omitempty" json:"recommended,omitempty"`
	Savings     decimal.Decimal `yaml:"savings" json:"savings"`
	Notes       []string        `yaml:"notes,omitempty" json:"notes,omitempty"`
}

// ResultFor returns the result computed under regime, or nil
func (r *TaxReport) ResultFor(regime TaxRegime) *TaxResult {
	for _, res := range r.Results {
		if res != nil && res.Regime == regime {
			return res
		}
	}
	return nil
}

// IsComparison reports whether both regimes were computed
func (r *TaxReport) IsComparison() bool {
	return r.ResultFor(RegimeOld) != nil && r.ResultFor(RegimeNew) != nil
}
