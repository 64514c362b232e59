package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// TaxRegime selects between the old (deduction-heavy) and new (concessional) regimes
type TaxRegime int

const (
	RegimeNew TaxRegime = iota
	RegimeOld
)

// String returns the canonical name of the regime
func (r TaxRegime) String() string {
	switch r {
	case RegimeNew:
		return "NEW"
	case RegimeOld:
		return "OLD"
	}
	return fmt.Sprintf("TaxRegime(%d)", int(r))
}

// Valid reports whether r is one of the known regimes
func (r TaxRegime) Valid() bool {
	switch r {
	case RegimeNew, RegimeOld:
		return true
	}
	return false
}

// MarshalText implements encoding.TextMarshaler
func (r TaxRegime) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("unknown tax regime %d", int(r))
	}
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (r *TaxRegime) UnmarshalText(text []byte) error {
	parsed, err := ParseTaxRegime(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// ParseTaxRegime converts "old"/"new" (any case) to a TaxRegime
func ParseTaxRegime(s string) (TaxRegime, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "NEW":
		return RegimeNew, nil
	case "OLD":
		return RegimeOld, nil
	}
	return RegimeNew, fmt.Errorf("unknown tax regime %q (expected OLD or NEW)", s)
}

// AgeCategory groups taxpayers by age for slab and deduction purposes
type AgeCategory int

const (
	AgeBelow60 AgeCategory = iota
	AgeSenior
	AgeSuperSenior
)

// GetAgeCategory maps a raw age to its category: 80+ super senior, 60-79 senior, else below 60
func GetAgeCategory(age int) AgeCategory {
	if age >= 80 {
		return AgeSuperSenior
	}
	if age >= 60 {
		return AgeSenior
	}
	return AgeBelow60
}

func (a AgeCategory) String() string {
	switch a {
	case AgeBelow60:
		return "below60"
	case AgeSenior:
		return "senior"
	case AgeSuperSenior:
		return "superSenior"
	}
	return fmt.Sprintf("AgeCategory(%d)", int(a))
}

// Valid reports whether a is one of the known categories
func (a AgeCategory) Valid() bool {
	switch a {
	case AgeBelow60, AgeSenior, AgeSuperSenior:
		return true
	}
	return false
}

// MarshalText implements encoding.TextMarshaler
func (a AgeCategory) MarshalText() ([]byte, error) {
	if !a.Valid() {
		return nil, fmt.Errorf("unknown age category %d", int(a))
	}
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (a *AgeCategory) UnmarshalText(text []byte) error {
	parsed, err := ParseAgeCategory(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// ParseAgeCategory accepts the canonical names as well as snake/kebab spellings
func ParseAgeCategory(s string) (AgeCategory, error) {
	key := strings.ToLower(strings.NewReplacer("_", "", "-", "", " ", "").Replace(s))
	switch key {
	case "below60", "":
		return AgeBelow60, nil
	case "senior":
		return AgeSenior, nil
	case "supersenior":
		return AgeSuperSenior, nil
	}
	return AgeBelow60, fmt.Errorf("unknown age category %q", s)
}

// TaxDeductions holds the deduction amounts claimed by the taxpayer.
// Amounts must be non-negative; age-dependent caps (80D) and the HRA formula
// are applied by the caller. Only Section80C is clamped by the tax engine.
type TaxDeductions struct {
	Section80C      decimal.Decimal `yaml:"section_80c" json:"section80C"`
	Section80D      decimal.Decimal `yaml:"section_80d" json:"section80D"`
	HRA             decimal.Decimal `yaml:"hra" json:"hra"`
	LTA             decimal.Decimal `yaml:"lta" json:"lta"`
	OtherDeductions decimal.Decimal `yaml:"other_deductions" json:"otherDeductions"`
	EmployerNPS     decimal.Decimal `yaml:"employer_nps" json:"employerNPS"` // Section 80CCD(2); read by the new regime only
}

// TaxInput is everything the engine needs for one calculation
type TaxInput struct {
	AnnualGrossIncome decimal.Decimal `yaml:"annual_gross_income" json:"annualGrossIncome"`
	Regime            TaxRegime       `yaml:"regime" json:"regime"`
	AgeCategory       AgeCategory     `yaml:"age_category" json:"ageCategory"`
	Deductions        TaxDeductions   `yaml:"deductions" json:"deductions"`
}

// TaxSlab is the portion of taxable income falling in one bracket
type TaxSlab struct {
	From        decimal.Decimal `yaml:"from" json:"from"`
	To          decimal.Decimal `yaml:"to" json:"to"`
	RatePercent decimal.Decimal `yaml:"rate_percent" json:"ratePercent"`
	Tax         decimal.Decimal `yaml:"tax" json:"tax"`
}

// TaxResult is the itemized output of one income tax calculation
type TaxResult struct {
	Regime            TaxRegime        `yaml:"regime" json:"regime"`
	AgeCategory       AgeCategory      `yaml:"age_category" json:"ageCategory"`
	GrossIncome       decimal.Decimal  `yaml:"gross_income" json:"grossIncome"`
	StandardDeduction decimal.Decimal  `yaml:"standard_deduction" json:"standardDeduction"`
	TotalDeductions   decimal.Decimal  `yaml:"total_deductions" json:"totalDeductions"`
	TaxableIncome     decimal.Decimal  `yaml:"taxable_income" json:"taxableIncome"`
	Slabs             []TaxSlab        `yaml:"slabs" json:"slabs"`
	TaxBeforeRebate   decimal.Decimal  `yaml:"tax_before_rebate" json:"taxBeforeRebate"`
	RebateAmount      decimal.Decimal  `yaml:"rebate_amount" json:"rebateAmount"`
	MarginalRelief    *decimal.Decimal `yaml:"marginal_relief,omitempty" json:"marginalRelief,omitempty"`
	TaxAfterRebate    decimal.Decimal  `yaml:"tax_after_rebate" json:"taxAfterRebate"`
	SurchargeRate     decimal.Decimal  `yaml:"surcharge_rate" json:"surchargeRate"`
	Surcharge         decimal.Decimal  `yaml:"surcharge" json:"surcharge"`
	Cess              decimal.Decimal  `yaml:"cess" json:"cess"`
	FinalTaxPayable   decimal.Decimal  `yaml:"final_tax_payable" json:"finalTaxPayable"`
	EffectiveRate     decimal.Decimal  `yaml:"effective_rate" json:"effectiveRate"` // percent of gross income
}

// HasMarginalRelief reports whether marginal relief reduced the tax
func (r *TaxResult) HasMarginalRelief() bool {
	return r.MarginalRelief != nil && r.MarginalRelief.GreaterThan(decimal.Zero)
}

// MonthlyTax returns the final tax spread over twelve months
func (r *TaxResult) MonthlyTax() decimal.Decimal {
	return r.FinalTaxPayable.Div(decimal.NewFromInt(12)).Round(0)
}
