package calculation

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var twelve = decimal.NewFromInt(12)

// SIPInput describes a monthly systematic investment plan
type SIPInput struct {
	MonthlyInvestment decimal.Decimal `json:"monthlyInvestment" yaml:"monthly_investment"`
	AnnualReturnRate  decimal.Decimal `json:"annualReturnRate" yaml:"annual_return_rate"` // percent
	Years             int             `json:"years" yaml:"years"`
	AnnualStepUp      decimal.Decimal `json:"annualStepUp" yaml:"annual_step_up"` // percent increase in the installment each year
}

// SIPYear is the position at the end of one year of the plan
type SIPYear struct {
	Year         int             `json:"year"`
	Installment  decimal.Decimal `json:"installment"`
	Invested     decimal.Decimal `json:"invested"`
	ClosingValue decimal.Decimal `json:"closingValue"`
}

// SIPResult summarises the plan at maturity
type SIPResult struct {
	TotalInvested    decimal.Decimal `json:"totalInvested"`
	EstimatedReturns decimal.Decimal `json:"estimatedReturns"`
	FutureValue      decimal.Decimal `json:"futureValue"`
	Yearly           []SIPYear       `json:"yearly"`
}

// CalculateSIP projects a SIP with contributions at the start of each month:
// FV = P x ((1+i)^n - 1) / i x (1+i), where i is the monthly rate.
// With a step-up the installment grows once a year and the projection is simulated month by month.
func CalculateSIP(in SIPInput) (*SIPResult, error) {
	if !in.MonthlyInvestment.IsPositive() {
		return nil, fmt.Errorf("%w: monthly investment must be positive", ErrInvalidInput)
	}
	if in.Years <= 0 || in.Years > 60 {
		return nil, fmt.Errorf("%w: years must be between 1 and 60, got %d", ErrInvalidInput, in.Years)
	}
	if in.AnnualReturnRate.IsNegative() || in.AnnualStepUp.IsNegative() {
		return nil, fmt.Errorf("%w: rates cannot be negative", ErrInvalidInput)
	}

	monthlyRate := in.AnnualReturnRate.Div(hundred).Div(twelve)
	growth := decimal.NewFromInt(1).Add(monthlyRate)
	stepUp := decimal.NewFromInt(1).Add(in.AnnualStepUp.Div(hundred))

	result := &SIPResult{}
	balance := decimal.Zero
	installment := in.MonthlyInvestment
	invested := decimal.Zero

	for year := 1; year <= in.Years; year++ {
		if year > 1 {
			installment = installment.Mul(stepUp)
		}
		for month := 0; month < 12; month++ {
			balance = balance.Add(installment).Mul(growth)
			invested = invested.Add(installment)
		}
		result.Yearly = append(result.Yearly, SIPYear{
			Year:         year,
			Installment:  installment.Round(2),
			Invested:     invested.Round(2),
			ClosingValue: balance.Round(2),
		})
	}

	// Closed form when there is no step-up keeps the headline number exact
	if in.AnnualStepUp.IsZero() {
		balance = sipFutureValue(in.MonthlyInvestment, monthlyRate, in.Years*12)
	}

	result.TotalInvested = invested.Round(2)
	result.FutureValue = balance.Round(2)
	result.EstimatedReturns = result.FutureValue.Sub(result.TotalInvested)
	return result, nil
}

// sipFutureValue is the annuity-due future value of n equal monthly payments
func sipFutureValue(payment, monthlyRate decimal.Decimal, months int) decimal.Decimal {
	if monthlyRate.IsZero() {
		return payment.Mul(decimal.NewFromInt(int64(months)))
	}
	one := decimal.NewFromInt(1)
	factor := one.Add(monthlyRate).Pow(decimal.NewFromInt(int64(months))).Sub(one).Div(monthlyRate)
	return payment.Mul(factor).Mul(one.Add(monthlyRate))
}

// Compounding is the number of interest periods per year
type Compounding int

const (
	CompoundMonthly    Compounding = 12
	CompoundQuarterly  Compounding = 4
	CompoundHalfYearly Compounding = 2
	CompoundYearly     Compounding = 1
)

// ParseCompounding accepts monthly, quarterly, half-yearly and yearly
func ParseCompounding(s string) (Compounding, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "monthly":
		return CompoundMonthly, nil
	case "quarterly", "":
		return CompoundQuarterly, nil
	case "half-yearly", "half_yearly", "halfyearly", "semiannual":
		return CompoundHalfYearly, nil
	case "yearly", "annual", "annually":
		return CompoundYearly, nil
	}
	return 0, fmt.Errorf("%w: unknown compounding %q", ErrInvalidInput, s)
}

func (c Compounding) String() string {
	switch c {
	case CompoundMonthly:
		return "monthly"
	case CompoundQuarterly:
		return "quarterly"
	case CompoundHalfYearly:
		return "half-yearly"
	case CompoundYearly:
		return "yearly"
	}
	return fmt.Sprintf("Compounding(%d)", int(c))
}

// MarshalText implements encoding.TextMarshaler
func (c Compounding) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (c *Compounding) UnmarshalText(text []byte) error {
	parsed, err := ParseCompounding(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// FDInput describes a fixed deposit
type FDInput struct {
	Principal    decimal.Decimal `json:"principal" yaml:"principal"`
	AnnualRate   decimal.Decimal `json:"annualRate" yaml:"annual_rate"` // percent
	TenureMonths int             `json:"tenureMonths" yaml:"tenure_months"`
	Compounding  Compounding     `json:"compounding" yaml:"compounding"`
}

// FDResult is the maturity position of a fixed deposit
type FDResult struct {
	Principal      decimal.Decimal `json:"principal"`
	MaturityAmount decimal.Decimal `json:"maturityAmount"`
	InterestEarned decimal.Decimal `json:"interestEarned"`
	EffectiveYield decimal.Decimal `json:"effectiveAnnualYield"` // percent
}

// CalculateFD computes A = P(1 + r/k)^(k*t) over whole compounding periods;
// a leftover part-period earns simple interest on the compounded amount.
func CalculateFD(in FDInput) (*FDResult, error) {
	if !in.Principal.IsPositive() {
		return nil, fmt.Errorf("%w: principal must be positive", ErrInvalidInput)
	}
	if in.TenureMonths <= 0 || in.TenureMonths > 120*12 {
		return nil, fmt.Errorf("%w: tenure must be between 1 month and 120 years", ErrInvalidInput)
	}
	if in.AnnualRate.IsNegative() {
		return nil, fmt.Errorf("%w: rate cannot be negative", ErrInvalidInput)
	}

	k := in.Compounding
	switch k {
	case CompoundMonthly, CompoundQuarterly, CompoundHalfYearly, CompoundYearly:
	case 0:
		k = CompoundQuarterly
	default:
		return nil, fmt.Errorf("%w: unsupported compounding frequency %d", ErrInvalidInput, int(k))
	}

	one := decimal.NewFromInt(1)
	rate := in.AnnualRate.Div(hundred)
	periodRate := rate.Div(decimal.NewFromInt(int64(k)))

	monthsPerPeriod := 12 / int(k)
	periods := in.TenureMonths / monthsPerPeriod
	leftoverMonths := in.TenureMonths % monthsPerPeriod

	amount := in.Principal.Mul(one.Add(periodRate).Pow(decimal.NewFromInt(int64(periods))))
	if leftoverMonths > 0 {
		simple := amount.Mul(rate).Mul(decimal.NewFromInt(int64(leftoverMonths))).Div(twelve)
		amount = amount.Add(simple)
	}

	result := &FDResult{
		Principal:      in.Principal,
		MaturityAmount: amount.Round(2),
	}
	result.InterestEarned = result.MaturityAmount.Sub(in.Principal)
	result.EffectiveYield = one.Add(periodRate).Pow(decimal.NewFromInt(int64(k))).Sub(one).Mul(hundred).Round(2)
	return result, nil
}
