package calculation

import (
	"fmt"

	"github.com/rgehrsitz/itax/internal/domain"
	"github.com/shopspring/decimal"
)

// GratuityMinServiceYears is the continuous service needed before gratuity is payable
const GratuityMinServiceYears = 5

// GratuityInput describes an employee leaving after a period of service
type GratuityInput struct {
	LastDrawnSalary decimal.Decimal `json:"lastDrawnSalary" yaml:"last_drawn_salary"` // monthly basic + DA
	ServiceYears    int             `json:"serviceYears" yaml:"service_years"`
	ServiceMonths   int             `json:"serviceMonths" yaml:"service_months"` // 0-11
	CoveredByAct    bool            `json:"coveredByAct" yaml:"covered_by_act"`
}

// GratuityResult is the gratuity payable and its tax treatment
type GratuityResult struct {
	Eligible      bool            `json:"eligible"`
	CountedYears  int             `json:"countedYears"`
	Gratuity      decimal.Decimal `json:"gratuity"`
	ExemptAmount  decimal.Decimal `json:"exemptAmount"`
	TaxableAmount decimal.Decimal `json:"taxableAmount"`
}

// CalculateGratuity applies the Payment of Gratuity Act formula. Employers covered
// by the Act pay 15/26 of monthly salary per year with a part-year over six months
// counted as a full year; others pay 15/30 per completed year.
func CalculateGratuity(in GratuityInput) (*GratuityResult, error) {
	if !in.LastDrawnSalary.IsPositive() {
		return nil, fmt.Errorf("%w: last drawn salary must be positive", ErrInvalidInput)
	}
	if in.ServiceYears < 0 || in.ServiceYears > 60 || in.ServiceMonths < 0 || in.ServiceMonths > 11 {
		return nil, fmt.Errorf("%w: service must be 0-60 years and 0-11 months", ErrInvalidInput)
	}

	result := &GratuityResult{}
	if in.ServiceYears < GratuityMinServiceYears {
		return result, nil
	}
	result.Eligible = true

	years := in.ServiceYears
	divisor := decimal.NewFromInt(30)
	if in.CoveredByAct {
		divisor = decimal.NewFromInt(26)
		if in.ServiceMonths > 6 {
			years++
		}
	}
	result.CountedYears = years

	result.Gratuity = in.LastDrawnSalary.
		Mul(decimal.NewFromInt(15)).
		Mul(decimal.NewFromInt(int64(years))).
		Div(divisor).
		Round(0)
	result.ExemptAmount = decimal.Min(result.Gratuity, decimal.NewFromInt(domain.GratuityExemptionLimit))
	result.TaxableAmount = result.Gratuity.Sub(result.ExemptAmount)
	return result, nil
}
