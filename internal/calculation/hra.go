package calculation

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// HRAInput holds the annual figures needed for the Section 10(13A) exemption
type HRAInput struct {
	BasicSalary decimal.Decimal `json:"basicSalary" yaml:"basic_salary"` // basic + DA, annual
	HRAReceived decimal.Decimal `json:"hraReceived" yaml:"hra_received"`
	RentPaid    decimal.Decimal `json:"rentPaid" yaml:"rent_paid"`
	IsMetro     bool            `json:"isMetro" yaml:"is_metro"`
}

// HRAExemption shows the three limbs of the exemption and the result
type HRAExemption struct {
	ActualHRA      decimal.Decimal `json:"actualHRA"`
	RentOverTenPct decimal.Decimal `json:"rentOverTenPercentBasic"`
	PercentOfBasic decimal.Decimal `json:"percentOfBasic"`
	ExemptAmount   decimal.Decimal `json:"exemptAmount"`
	TaxableHRA     decimal.Decimal `json:"taxableHRA"`
}

// CalculateHRAExemption returns the least of actual HRA, rent paid less 10% of basic,
// and 50% (metro) or 40% (non-metro) of basic
func CalculateHRAExemption(in HRAInput) (*HRAExemption, error) {
	if in.BasicSalary.IsNegative() || in.HRAReceived.IsNegative() || in.RentPaid.IsNegative() {
		return nil, fmt.Errorf("%w: HRA inputs cannot be negative", ErrInvalidInput)
	}

	tenPercent := in.BasicSalary.Mul(decimal.NewFromFloat(0.10))
	rentOver := floorZero(in.RentPaid.Sub(tenPercent))

	share := decimal.NewFromFloat(0.40)
	if in.IsMetro {
		share = decimal.NewFromFloat(0.50)
	}
	percentOfBasic := in.BasicSalary.Mul(share)

	exempt := decimal.Min(in.HRAReceived, rentOver, percentOfBasic).Round(0)

	return &HRAExemption{
		ActualHRA:      in.HRAReceived,
		RentOverTenPct: rentOver,
		PercentOfBasic: percentOfBasic,
		ExemptAmount:   exempt,
		TaxableHRA:     in.HRAReceived.Sub(exempt),
	}, nil
}
