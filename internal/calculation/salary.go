package calculation

import (
	"fmt"

	"github.com/rgehrsitz/itax/internal/domain"
	"github.com/shopspring/decimal"
)

// SalaryInput describes a CTC offer and the employee's tax-relevant spends
type SalaryInput struct {
	CTC                decimal.Decimal    `json:"ctc" yaml:"ctc"`
	BasicPercent       decimal.Decimal    `json:"basicPercent" yaml:"basic_percent"` // of CTC, zero means 50
	IsMetro            bool               `json:"isMetro" yaml:"is_metro"`
	MonthlyRent        decimal.Decimal    `json:"monthlyRent" yaml:"monthly_rent"`
	Additional80C      decimal.Decimal    `json:"additional80C" yaml:"additional_80c"` // over and above employee PF
	Section80D         decimal.Decimal    `json:"section80D" yaml:"section_80d"`
	EmployerNPSPercent decimal.Decimal    `json:"employerNPSPercent" yaml:"employer_nps_percent"` // of basic
	AgeCategory        domain.AgeCategory `json:"ageCategory" yaml:"age_category"`
}

// SalaryComponents is the annual CTC split
type SalaryComponents struct {
	Basic            decimal.Decimal `json:"basic"`
	HRA              decimal.Decimal `json:"hra"`
	SpecialAllowance decimal.Decimal `json:"specialAllowance"`
	EmployerPF       decimal.Decimal `json:"employerPF"`
	EmployerNPS      decimal.Decimal `json:"employerNPS"`
	Gratuity         decimal.Decimal `json:"gratuity"`
	GrossSalary      decimal.Decimal `json:"grossSalary"`
	EmployeePF       decimal.Decimal `json:"employeePF"`
	ProfessionalTax  decimal.Decimal `json:"professionalTax"`
}

// RegimeTakeHome is the in-hand salary under one regime
type RegimeTakeHome struct {
	Tax           *domain.TaxResult `json:"tax"`
	AnnualInHand  decimal.Decimal   `json:"annualInHand"`
	MonthlyInHand decimal.Decimal   `json:"monthlyInHand"`
}

// SalaryBreakdown is the full CTC to in-hand picture
type SalaryBreakdown struct {
	CTC          decimal.Decimal  `json:"ctc"`
	Components   SalaryComponents `json:"components"`
	HRAExemption *HRAExemption    `json:"hraExemption"`
	OldRegime    RegimeTakeHome   `json:"oldRegime"`
	NewRegime    RegimeTakeHome   `json:"newRegime"`
	BetterRegime domain.TaxRegime `json:"betterRegime"`
	TaxSavings   decimal.Decimal  `json:"taxSavings"`
}

// Best returns the take-home under the better regime
func (sb *SalaryBreakdown) Best() RegimeTakeHome {
	if sb.BetterRegime == domain.RegimeOld {
		return sb.OldRegime
	}
	return sb.NewRegime
}

// SalaryCalculator turns a CTC into components and in-hand pay under both regimes
type SalaryCalculator struct {
	TaxCalc *IncomeTaxCalculator
	Logger  Logger
}

// NewSalaryCalculator creates a salary calculator with FY 2024-25 tax rules
func NewSalaryCalculator() *SalaryCalculator {
	return &SalaryCalculator{
		TaxCalc: NewIncomeTaxCalculatorFY2025(),
		Logger:  NopLogger{},
	}
}

// SetLogger sets the logger used for debug traces
func (sc *SalaryCalculator) SetLogger(l Logger) {
	if l == nil {
		sc.Logger = NopLogger{}
		return
	}
	sc.Logger = l
}

// Split divides CTC into its components. The special allowance absorbs whatever is left
// after basic, HRA and the employer-side costs; a CTC too small to cover them is an error.
func (sc *SalaryCalculator) Split(in SalaryInput) (SalaryComponents, error) {
	var c SalaryComponents
	if !in.CTC.IsPositive() {
		return c, fmt.Errorf("%w: CTC must be positive", ErrInvalidInput)
	}
	if in.MonthlyRent.IsNegative() || in.Additional80C.IsNegative() || in.Section80D.IsNegative() {
		return c, fmt.Errorf("%w: rent and deductions cannot be negative", ErrInvalidInput)
	}

	basicPct := in.BasicPercent
	if basicPct.IsZero() {
		basicPct = decimal.NewFromInt(50)
	}
	if !basicPct.IsPositive() || basicPct.GreaterThan(hundred) {
		return c, fmt.Errorf("%w: basic percent must be between 0 and 100, got %s", ErrInvalidInput, basicPct)
	}
	npsLimit := decimal.NewFromInt(domain.EmployerNPSLimitPercentNew)
	if in.EmployerNPSPercent.IsNegative() || in.EmployerNPSPercent.GreaterThan(npsLimit) {
		return c, fmt.Errorf("%w: employer NPS must be between 0%% and %s%% of basic", ErrInvalidInput, npsLimit)
	}

	c.Basic = in.CTC.Mul(basicPct).Div(hundred).Round(0)
	hraShare := decimal.NewFromInt(40)
	if in.IsMetro {
		hraShare = decimal.NewFromInt(50)
	}
	c.HRA = c.Basic.Mul(hraShare).Div(hundred).Round(0)
	c.EmployerPF = c.Basic.Mul(domain.Percent(domain.EPFContributionPercent)).Round(0)
	c.Gratuity = c.Basic.Mul(domain.Percent(domain.GratuityProvisionPercent)).Round(0)
	c.EmployerNPS = c.Basic.Mul(in.EmployerNPSPercent).Div(hundred).Round(0)

	c.SpecialAllowance = in.CTC.Sub(c.Basic).Sub(c.HRA).Sub(c.EmployerPF).Sub(c.Gratuity).Sub(c.EmployerNPS)
	if c.SpecialAllowance.IsNegative() {
		return c, fmt.Errorf("%w: CTC %s is too small for the fixed components (short by %s)",
			ErrInvalidInput, in.CTC, c.SpecialAllowance.Neg())
	}

	c.GrossSalary = c.Basic.Add(c.HRA).Add(c.SpecialAllowance)
	c.EmployeePF = c.EmployerPF
	c.ProfessionalTax = decimal.NewFromInt(domain.ProfessionalTaxAnnual)
	return c, nil
}

// Calculate splits the CTC, computes tax under both regimes and reports the in-hand pay
func (sc *SalaryCalculator) Calculate(in SalaryInput) (*SalaryBreakdown, error) {
	c, err := sc.Split(in)
	if err != nil {
		return nil, err
	}
	sc.Logger.Debugf("salary split: ctc=%s basic=%s hra=%s special=%s gross=%s",
		in.CTC, c.Basic, c.HRA, c.SpecialAllowance, c.GrossSalary)

	hra, err := CalculateHRAExemption(HRAInput{
		BasicSalary: c.Basic,
		HRAReceived: c.HRA,
		RentPaid:    in.MonthlyRent.Mul(twelve),
		IsMetro:     in.IsMetro,
	})
	if err != nil {
		return nil, err
	}

	// Employer NPS is taxable salary before 80CCD(2) takes it back out, up to
	// 14% of basic in the new regime and 10% in the old
	taxableSalary := c.GrossSalary.Add(c.EmployerNPS)
	oldNPS := decimal.Min(c.EmployerNPS, c.Basic.Mul(decimal.NewFromInt(domain.EmployerNPSLimitPercentOld)).Div(hundred).Round(0))

	oldInput := domain.TaxInput{
		AnnualGrossIncome: taxableSalary,
		Regime:            domain.RegimeOld,
		AgeCategory:       in.AgeCategory,
		Deductions: domain.TaxDeductions{
			Section80C:      c.EmployeePF.Add(in.Additional80C),
			Section80D:      in.Section80D,
			HRA:             hra.ExemptAmount,
			OtherDeductions: c.ProfessionalTax.Add(oldNPS),
		},
	}
	newInput := domain.TaxInput{
		AnnualGrossIncome: taxableSalary,
		Regime:            domain.RegimeNew,
		AgeCategory:       in.AgeCategory,
		Deductions:        domain.TaxDeductions{EmployerNPS: c.EmployerNPS},
	}

	oldTax, err := sc.TaxCalc.Calculate(oldInput)
	if err != nil {
		return nil, fmt.Errorf("old regime: %w", err)
	}
	newTax, err := sc.TaxCalc.Calculate(newInput)
	if err != nil {
		return nil, fmt.Errorf("new regime: %w", err)
	}

	breakdown := &SalaryBreakdown{
		CTC:          in.CTC,
		Components:   c,
		HRAExemption: hra,
		OldRegime:    takeHome(c, oldTax),
		NewRegime:    takeHome(c, newTax),
		BetterRegime: domain.RegimeNew,
	}
	if oldTax.FinalTaxPayable.LessThan(newTax.FinalTaxPayable) {
		breakdown.BetterRegime = domain.RegimeOld
	}
	breakdown.TaxSavings = oldTax.FinalTaxPayable.Sub(newTax.FinalTaxPayable).Abs()

	sc.Logger.Debugf("salary tax: old=%s new=%s better=%s", oldTax.FinalTaxPayable, newTax.FinalTaxPayable, breakdown.BetterRegime)
	return breakdown, nil
}

func takeHome(c SalaryComponents, tax *domain.TaxResult) RegimeTakeHome {
	annual := c.GrossSalary.Sub(c.EmployeePF).Sub(c.ProfessionalTax).Sub(tax.FinalTaxPayable)
	return RegimeTakeHome{
		Tax:           tax,
		AnnualInHand:  annual,
		MonthlyInHand: annual.Div(twelve).Round(0),
	}
}

// OfferComparison sets an offered CTC against the current one, each under its better regime
type OfferComparison struct {
	Current           *SalaryBreakdown `json:"current"`
	Offer             *SalaryBreakdown `json:"offer"`
	CTCHikePercent    decimal.Decimal  `json:"ctcHikePercent"`
	InHandDifference  decimal.Decimal  `json:"annualInHandDifference"`
	InHandHikePercent decimal.Decimal  `json:"inHandHikePercent"`
	MonthlyDifference decimal.Decimal  `json:"monthlyInHandDifference"`
}

// CompareOffers computes the salary breakdown for both packages and the hike in CTC and in-hand pay
func (sc *SalaryCalculator) CompareOffers(current, offer SalaryInput) (*OfferComparison, error) {
	cur, err := sc.Calculate(current)
	if err != nil {
		return nil, fmt.Errorf("current package: %w", err)
	}
	off, err := sc.Calculate(offer)
	if err != nil {
		return nil, fmt.Errorf("offered package: %w", err)
	}

	curBest, offBest := cur.Best(), off.Best()
	cmp := &OfferComparison{
		Current:           cur,
		Offer:             off,
		CTCHikePercent:    offer.CTC.Sub(current.CTC).Div(current.CTC).Mul(hundred).Round(2),
		InHandDifference:  offBest.AnnualInHand.Sub(curBest.AnnualInHand),
		MonthlyDifference: offBest.MonthlyInHand.Sub(curBest.MonthlyInHand),
	}
	if curBest.AnnualInHand.IsPositive() {
		cmp.InHandHikePercent = cmp.InHandDifference.Div(curBest.AnnualInHand).Mul(hundred).Round(2)
	}
	return cmp, nil
}
