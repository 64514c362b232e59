package calculation

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// RetirementInput describes a retirement corpus goal
type RetirementInput struct {
	CurrentAge           int             `json:"currentAge" yaml:"current_age"`
	RetirementAge        int             `json:"retirementAge" yaml:"retirement_age"`
	LifeExpectancy       int             `json:"lifeExpectancy" yaml:"life_expectancy"`
	MonthlyExpenses      decimal.Decimal `json:"monthlyExpenses" yaml:"monthly_expenses"` // today's rupees
	CurrentSavings       decimal.Decimal `json:"currentSavings" yaml:"current_savings"`
	InflationRate        decimal.Decimal `json:"inflationRate" yaml:"inflation_rate"`
	PreRetirementReturn  decimal.Decimal `json:"preRetirementReturn" yaml:"pre_retirement_return"`
	PostRetirementReturn decimal.Decimal `json:"postRetirementReturn" yaml:"post_retirement_return"`
}

// RetirementResult is the corpus needed and the saving rate that reaches it
type RetirementResult struct {
	YearsToRetirement      int             `json:"yearsToRetirement"`
	YearsInRetirement      int             `json:"yearsInRetirement"`
	MonthlyExpensesAtStart decimal.Decimal `json:"monthlyExpensesAtRetirement"`
	RealReturn             decimal.Decimal `json:"realReturnPercent"`
	CorpusRequired         decimal.Decimal `json:"corpusRequired"`
	SavingsAtRetirement    decimal.Decimal `json:"savingsAtRetirement"`
	Shortfall              decimal.Decimal `json:"shortfall"`
	RequiredMonthlySIP     decimal.Decimal `json:"requiredMonthlySIP"`
}

// CalculateRetirementCorpus sizes the corpus as the present value at retirement of
// inflation-indexed annual expenses drawn at the start of each year, discounted at the
// real post-retirement return.
func CalculateRetirementCorpus(in RetirementInput) (*RetirementResult, error) {
	if in.CurrentAge < 0 || in.RetirementAge <= in.CurrentAge || in.LifeExpectancy <= in.RetirementAge {
		return nil, fmt.Errorf("%w: need current age < retirement age < life expectancy (got %d, %d, %d)",
			ErrInvalidInput, in.CurrentAge, in.RetirementAge, in.LifeExpectancy)
	}
	if in.LifeExpectancy > 120 {
		return nil, fmt.Errorf("%w: life expectancy cannot exceed 120", ErrInvalidInput)
	}
	if !in.MonthlyExpenses.IsPositive() {
		return nil, fmt.Errorf("%w: monthly expenses must be positive", ErrInvalidInput)
	}
	if in.CurrentSavings.IsNegative() || in.InflationRate.IsNegative() ||
		in.PreRetirementReturn.IsNegative() || in.PostRetirementReturn.IsNegative() {
		return nil, fmt.Errorf("%w: savings and rates cannot be negative", ErrInvalidInput)
	}

	one := decimal.NewFromInt(1)
	toRetire := in.RetirementAge - in.CurrentAge
	inRetirement := in.LifeExpectancy - in.RetirementAge

	inflation := in.InflationRate.Div(hundred)
	annualAtRetirement := in.MonthlyExpenses.Mul(twelve).
		Mul(one.Add(inflation).Pow(decimal.NewFromInt(int64(toRetire))))

	realRate := one.Add(in.PostRetirementReturn.Div(hundred)).Div(one.Add(inflation)).Sub(one)

	var corpus decimal.Decimal
	if realRate.IsZero() {
		corpus = annualAtRetirement.Mul(decimal.NewFromInt(int64(inRetirement)))
	} else {
		discount := one.Div(one.Add(realRate).Pow(decimal.NewFromInt(int64(inRetirement))))
		corpus = annualAtRetirement.Mul(one.Sub(discount)).Div(realRate).Mul(one.Add(realRate))
	}

	months := toRetire * 12
	monthlyRate := in.PreRetirementReturn.Div(hundred).Div(twelve)
	savings := in.CurrentSavings.Mul(one.Add(monthlyRate).Pow(decimal.NewFromInt(int64(months))))

	result := &RetirementResult{
		YearsToRetirement:      toRetire,
		YearsInRetirement:      inRetirement,
		MonthlyExpensesAtStart: annualAtRetirement.Div(twelve).Round(2),
		RealReturn:             realRate.Mul(hundred).Round(2),
		CorpusRequired:         corpus.Round(2),
		SavingsAtRetirement:    savings.Round(2),
	}
	result.Shortfall = floorZero(result.CorpusRequired.Sub(result.SavingsAtRetirement))

	if result.Shortfall.IsPositive() {
		perRupee := sipFutureValue(one, monthlyRate, months)
		result.RequiredMonthlySIP = result.Shortfall.Div(perRupee).Round(2)
	}
	return result, nil
}
