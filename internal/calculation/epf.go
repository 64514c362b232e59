package calculation

import (
	"fmt"

	"github.com/rgehrsitz/itax/internal/domain"
	"github.com/shopspring/decimal"
)

// EPFInput describes an employee's provident fund position
type EPFInput struct {
	MonthlyBasic         decimal.Decimal `json:"monthlyBasic" yaml:"monthly_basic"` // basic + DA
	CurrentBalance       decimal.Decimal `json:"currentBalance" yaml:"current_balance"`
	AnnualSalaryIncrease decimal.Decimal `json:"annualSalaryIncrease" yaml:"annual_salary_increase"` // percent
	InterestRate         decimal.Decimal `json:"interestRate" yaml:"interest_rate"`                  // percent, zero means the notified rate
	Years                int             `json:"years" yaml:"years"`
}

// EPFYear is one row of the EPF projection
type EPFYear struct {
	Year                 int             `json:"year"`
	MonthlyBasic         decimal.Decimal `json:"monthlyBasic"`
	EmployeeContribution decimal.Decimal `json:"employeeContribution"`
	EmployerContribution decimal.Decimal `json:"employerContribution"` // EPF share only
	EPSContribution      decimal.Decimal `json:"epsContribution"`
	Interest             decimal.Decimal `json:"interest"`
	ClosingBalance       decimal.Decimal `json:"closingBalance"`
}

// EPFResult is the projected EPF corpus
type EPFResult struct {
	InterestRate   decimal.Decimal `json:"interestRate"`
	TotalEmployee  decimal.Decimal `json:"totalEmployeeContribution"`
	TotalEmployer  decimal.Decimal `json:"totalEmployerContribution"`
	TotalEPS       decimal.Decimal `json:"totalEPSContribution"`
	TotalInterest  decimal.Decimal `json:"totalInterest"`
	MaturityAmount decimal.Decimal `json:"maturityAmount"`
	Yearly         []EPFYear       `json:"yearly"`
}

// EPFMonthlySplit is how one month's 24% of basic is divided
type EPFMonthlySplit struct {
	Employee    decimal.Decimal
	EmployerEPF decimal.Decimal
	EPS         decimal.Decimal
}

// SplitEPFContribution divides a month's contributions. The employee and employer each
// put in 12% of basic; 8.33% of basic capped at the wage ceiling goes to EPS and the
// rest of the employer share stays in EPF.
func SplitEPFContribution(monthlyBasic decimal.Decimal) EPFMonthlySplit {
	employee := monthlyBasic.Mul(domain.Percent(domain.EPFContributionPercent)).Round(0)
	employer := employee

	pensionable := decimal.Min(monthlyBasic, decimal.NewFromInt(domain.EPFWageCeiling))
	eps := pensionable.Mul(domain.Percent(domain.EPSContributionPercent)).Round(0)
	if eps.GreaterThan(employer) {
		eps = employer
	}

	return EPFMonthlySplit{Employee: employee, EmployerEPF: employer.Sub(eps), EPS: eps}
}

// CalculateEPF projects the EPF balance year by year. Interest accrues on the
// running monthly balance and is credited at the end of each year.
func CalculateEPF(in EPFInput) (*EPFResult, error) {
	if !in.MonthlyBasic.IsPositive() {
		return nil, fmt.Errorf("%w: monthly basic must be positive", ErrInvalidInput)
	}
	if in.Years <= 0 || in.Years > 60 {
		return nil, fmt.Errorf("%w: years must be between 1 and 60, got %d", ErrInvalidInput, in.Years)
	}
	if in.CurrentBalance.IsNegative() || in.AnnualSalaryIncrease.IsNegative() || in.InterestRate.IsNegative() {
		return nil, fmt.Errorf("%w: EPF inputs cannot be negative", ErrInvalidInput)
	}

	rate := in.InterestRate
	if rate.IsZero() {
		rate = decimal.NewFromFloat(domain.EPFInterestPercent)
	}
	monthlyRate := rate.Div(hundred).Div(twelve)
	increase := decimal.NewFromInt(1).Add(in.AnnualSalaryIncrease.Div(hundred))

	result := &EPFResult{InterestRate: rate}
	balance := in.CurrentBalance
	basic := in.MonthlyBasic

	for year := 1; year <= in.Years; year++ {
		if year > 1 {
			basic = basic.Mul(increase).Round(2)
		}
		split := SplitEPFContribution(basic)

		row := EPFYear{Year: year, MonthlyBasic: basic}
		accrued := decimal.Zero
		for month := 0; month < 12; month++ {
			balance = balance.Add(split.Employee).Add(split.EmployerEPF)
			accrued = accrued.Add(balance.Mul(monthlyRate))
			row.EmployeeContribution = row.EmployeeContribution.Add(split.Employee)
			row.EmployerContribution = row.EmployerContribution.Add(split.EmployerEPF)
			row.EPSContribution = row.EPSContribution.Add(split.EPS)
		}
		row.Interest = accrued.Round(0)
		balance = balance.Add(row.Interest)
		row.ClosingBalance = balance

		result.TotalEmployee = result.TotalEmployee.Add(row.EmployeeContribution)
		result.TotalEmployer = result.TotalEmployer.Add(row.EmployerContribution)
		result.TotalEPS = result.TotalEPS.Add(row.EPSContribution)
		result.TotalInterest = result.TotalInterest.Add(row.Interest)
		result.Yearly = append(result.Yearly, row)
	}

	result.MaturityAmount = balance
	return result, nil
}

// EPS pension rules
const (
	EPSMinServiceYears    = 10
	EPSBonusServiceYears  = 20
	EPSBonusYears         = 2
	EPSMaxServiceYears    = 35
	EPSPensionDivisor     = 70
	EPSMinimumPension     = 1000
	EPSNormalPensionAge   = 58
	EPSEarliestPensionAge = 50
	EPSMaxDeferralAge     = 60
	EPSAgeAdjustPercent   = 4
)

// EPSInput describes an employee's pension scheme membership
type EPSInput struct {
	PensionableSalary decimal.Decimal `json:"pensionableSalary" yaml:"pensionable_salary"` // average monthly basic of the last 60 months
	ServiceYears      int             `json:"serviceYears" yaml:"service_years"`
	PensionAge        int             `json:"pensionAge,omitempty" yaml:"pension_age,omitempty"` // zero means 58
}

// EPSResult is the monthly pension under the Employees' Pension Scheme
type EPSResult struct {
	Eligible          bool            `json:"eligible"`
	Reason            string          `json:"reason,omitempty"`
	PensionableSalary decimal.Decimal `json:"pensionableSalary"`
	PensionableYears  int             `json:"pensionableService"`
	AgeAdjustment     decimal.Decimal `json:"ageAdjustmentPercent"` // negative for early pension
	MonthlyPension    decimal.Decimal `json:"monthlyPension"`
	AnnualPension     decimal.Decimal `json:"annualPension"`
}

// CalculateEPS computes pension = pensionable salary x pensionable service / 70.
// Salary is capped at the wage ceiling, 20+ years of service earn a 2 year bonus,
// and service counts up to 35 years. Pension drawn before 58 is reduced 4% per year.
func CalculateEPS(in EPSInput) (*EPSResult, error) {
	if !in.PensionableSalary.IsPositive() {
		return nil, fmt.Errorf("%w: pensionable salary must be positive", ErrInvalidInput)
	}
	if in.ServiceYears < 0 || in.ServiceYears > 60 {
		return nil, fmt.Errorf("%w: service years must be between 0 and 60, got %d", ErrInvalidInput, in.ServiceYears)
	}
	age := in.PensionAge
	if age == 0 {
		age = EPSNormalPensionAge
	}

	salary := decimal.Min(in.PensionableSalary, decimal.NewFromInt(domain.EPFWageCeiling))
	result := &EPSResult{PensionableSalary: salary}

	if in.ServiceYears < EPSMinServiceYears {
		result.Reason = fmt.Sprintf("pension needs at least %d years of service", EPSMinServiceYears)
		return result, nil
	}
	if age < EPSEarliestPensionAge {
		result.Reason = fmt.Sprintf("pension cannot start before age %d", EPSEarliestPensionAge)
		return result, nil
	}

	service := in.ServiceYears
	if service >= EPSBonusServiceYears {
		service += EPSBonusYears
	}
	if service > EPSMaxServiceYears {
		service = EPSMaxServiceYears
	}
	result.Eligible = true
	result.PensionableYears = service

	pension := salary.Mul(decimal.NewFromInt(int64(service))).Div(decimal.NewFromInt(EPSPensionDivisor))

	adjustYears := 0
	switch {
	case age < EPSNormalPensionAge:
		adjustYears = age - EPSNormalPensionAge
	case age > EPSNormalPensionAge:
		adjustYears = min(age, EPSMaxDeferralAge) - EPSNormalPensionAge
	}
	if adjustYears != 0 {
		result.AgeAdjustment = decimal.NewFromInt(int64(adjustYears * EPSAgeAdjustPercent))
		pension = pension.Mul(decimal.NewFromInt(1).Add(result.AgeAdjustment.Div(hundred)))
	}

	result.MonthlyPension = decimal.Max(pension.Round(0), decimal.NewFromInt(EPSMinimumPension))
	result.AnnualPension = result.MonthlyPension.Mul(twelve)
	return result, nil
}
