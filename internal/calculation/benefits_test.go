package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitEPFContribution(t *testing.T) {
	tests := []struct {
		name        string
		basic       int64
		employee    int64
		employerEPF int64
		eps         int64
	}{
		{"at wage ceiling", 15000, 1800, 550, 1250},
		{"above wage ceiling EPS stays capped", 50000, 6000, 4750, 1250},
		{"below wage ceiling", 10000, 1200, 367, 833},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			split := SplitEPFContribution(d(tt.basic))
			assertDecimal(t, d(tt.employee), split.Employee, "employee")
			assertDecimal(t, d(tt.employerEPF), split.EmployerEPF, "employer EPF")
			assertDecimal(t, d(tt.eps), split.EPS, "EPS")
			assertDecimal(t, split.Employee, split.EmployerEPF.Add(split.EPS), "employer total")
		})
	}
}

func TestCalculateEPF(t *testing.T) {
	t.Run("one year at the wage ceiling", func(t *testing.T) {
		result, err := CalculateEPF(EPFInput{MonthlyBasic: d(15000), Years: 1})
		require.NoError(t, err)
		assertDecimal(t, decimal.RequireFromString("8.25"), result.InterestRate, "rate")
		assertDecimal(t, d(21600), result.TotalEmployee, "employee")
		assertDecimal(t, d(6600), result.TotalEmployer, "employer")
		assertDecimal(t, d(15000), result.TotalEPS, "EPS")
		assertDecimal(t, d(1260), result.TotalInterest, "interest")
		assertDecimal(t, d(29460), result.MaturityAmount, "maturity")
	})

	t.Run("salary increase applies from the second year", func(t *testing.T) {
		result, err := CalculateEPF(EPFInput{MonthlyBasic: d(15000), AnnualSalaryIncrease: d(10), Years: 2})
		require.NoError(t, err)
		require.Len(t, result.Yearly, 2)
		assertDecimal(t, d(16500), result.Yearly[1].MonthlyBasic, "year 2 basic")
		assertDecimal(t, d(1980*12), result.Yearly[1].EmployeeContribution, "year 2 employee")
		assertDecimal(t, d(730*12), result.Yearly[1].EmployerContribution, "year 2 employer")
		assertDecimal(t, result.MaturityAmount, result.Yearly[1].ClosingBalance, "closing")
	})

	t.Run("opening balance earns interest", func(t *testing.T) {
		withBalance, err := CalculateEPF(EPFInput{MonthlyBasic: d(15000), CurrentBalance: d(100000), Years: 1})
		require.NoError(t, err)
		// 100000 x 8.25% for the year on top of the contribution interest
		assertDecimal(t, d(1260+8250), withBalance.TotalInterest, "interest")
	})

	_, err := CalculateEPF(EPFInput{MonthlyBasic: d(15000)})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCalculateEPS(t *testing.T) {
	tests := []struct {
		name          string
		input         EPSInput
		eligible      bool
		years         int
		monthly       int64
		ageAdjustment int64
	}{
		{"25 years earns the bonus", EPSInput{PensionableSalary: d(15000), ServiceYears: 25}, true, 27, 5786, 0},
		{"service capped at 35", EPSInput{PensionableSalary: d(15000), ServiceYears: 35}, true, 35, 7500, 0},
		{"salary capped at ceiling", EPSInput{PensionableSalary: d(40000), ServiceYears: 14}, true, 14, 3000, 0},
		{"minimum pension", EPSInput{PensionableSalary: d(3000), ServiceYears: 10}, true, 10, 1000, 0},
		{"early pension at 55", EPSInput{PensionableSalary: d(15000), ServiceYears: 25, PensionAge: 55}, true, 27, 5091, -12},
		{"deferred to 60", EPSInput{PensionableSalary: d(15000), ServiceYears: 25, PensionAge: 60}, true, 27, 6249, 8},
		{"under 10 years", EPSInput{PensionableSalary: d(15000), ServiceYears: 9}, false, 0, 0, 0},
		{"before 50", EPSInput{PensionableSalary: d(15000), ServiceYears: 20, PensionAge: 45}, false, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := CalculateEPS(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.eligible, result.Eligible)
			assert.Equal(t, tt.years, result.PensionableYears)
			assertDecimal(t, d(tt.monthly), result.MonthlyPension, "monthly pension")
			assertDecimal(t, d(tt.ageAdjustment), result.AgeAdjustment, "age adjustment")
			if !tt.eligible {
				assert.NotEmpty(t, result.Reason)
			}
		})
	}

	_, err := CalculateEPS(EPSInput{PensionableSalary: decimal.Zero, ServiceYears: 10})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCalculateNPS(t *testing.T) {
	t.Run("default annuity share and rate", func(t *testing.T) {
		result, err := CalculateNPS(NPSInput{CurrentAge: 59, MonthlyContribution: d(1000), ExpectedReturn: d(12)})
		require.NoError(t, err)
		assert.Equal(t, 1, result.YearsToRetirement)
		assertDecimal(t, d(12000), result.TotalContribution, "contribution")
		assertDecimal(t, decimal.RequireFromString("12809.33"), result.Corpus, "corpus")
		assertDecimal(t, decimal.RequireFromString("5123.73"), result.AnnuityCorpus, "annuity")
		assertDecimal(t, decimal.RequireFromString("7685.6"), result.LumpSum, "lump sum")
		assertDecimal(t, decimal.RequireFromString("25.62"), result.MonthlyPension, "pension")
	})

	t.Run("full annuitisation", func(t *testing.T) {
		result, err := CalculateNPS(NPSInput{
			CurrentAge: 50, MonthlyContribution: d(1000), AnnuityPercent: d(100), AnnuityRate: d(7),
		})
		require.NoError(t, err)
		assertDecimal(t, d(120000), result.Corpus, "corpus")
		assertDecimal(t, decimal.Zero, result.LumpSum, "lump sum")
		assertDecimal(t, d(700), result.MonthlyPension, "pension")
	})

	t.Run("rejects annuity below 40 percent", func(t *testing.T) {
		_, err := CalculateNPS(NPSInput{CurrentAge: 30, MonthlyContribution: d(1000), AnnuityPercent: d(30)})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("rejects age 60", func(t *testing.T) {
		_, err := CalculateNPS(NPSInput{CurrentAge: 60, MonthlyContribution: d(1000)})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestCalculateGratuity(t *testing.T) {
	tests := []struct {
		name     string
		input    GratuityInput
		eligible bool
		gratuity int64
		taxable  int64
	}{
		{
			name:     "covered rounds up a part year over six months",
			input:    GratuityInput{LastDrawnSalary: d(50000), ServiceYears: 10, ServiceMonths: 7, CoveredByAct: true},
			eligible: true,
			gratuity: 317308,
		},
		{
			name:     "covered with six months does not round up",
			input:    GratuityInput{LastDrawnSalary: d(52000), ServiceYears: 10, ServiceMonths: 6, CoveredByAct: true},
			eligible: true,
			gratuity: 300000,
		},
		{
			name:     "not covered uses completed years over 30",
			input:    GratuityInput{LastDrawnSalary: d(50000), ServiceYears: 10, ServiceMonths: 7},
			eligible: true,
			gratuity: 250000,
		},
		{
			name:     "exemption capped at 20 lakh",
			input:    GratuityInput{LastDrawnSalary: d(260000), ServiceYears: 20, CoveredByAct: true},
			eligible: true,
			gratuity: 3000000,
			taxable:  1000000,
		},
		{
			name:  "under five years",
			input: GratuityInput{LastDrawnSalary: d(50000), ServiceYears: 4, ServiceMonths: 11, CoveredByAct: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := CalculateGratuity(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.eligible, result.Eligible)
			assertDecimal(t, d(tt.gratuity), result.Gratuity, "gratuity")
			assertDecimal(t, d(tt.taxable), result.TaxableAmount, "taxable")
			assertDecimal(t, result.Gratuity, result.ExemptAmount.Add(result.TaxableAmount), "exempt + taxable")
		})
	}

	_, err := CalculateGratuity(GratuityInput{LastDrawnSalary: d(1000), ServiceYears: 5, ServiceMonths: 12})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCalculateRetirementCorpus(t *testing.T) {
	base := RetirementInput{
		CurrentAge:           59,
		RetirementAge:        60,
		LifeExpectancy:       70,
		MonthlyExpenses:      d(10000),
		InflationRate:        d(6),
		PostRetirementReturn: d(6),
	}

	t.Run("zero real return needs expenses times years", func(t *testing.T) {
		result, err := CalculateRetirementCorpus(base)
		require.NoError(t, err)
		assertDecimal(t, d(10600), result.MonthlyExpensesAtStart, "expenses at retirement")
		assertDecimal(t, decimal.Zero, result.RealReturn, "real return")
		assertDecimal(t, d(1272000), result.CorpusRequired, "corpus")
		assertDecimal(t, d(1272000), result.Shortfall, "shortfall")
		assertDecimal(t, d(106000), result.RequiredMonthlySIP, "monthly SIP")
	})

	t.Run("existing savings cover the goal", func(t *testing.T) {
		in := base
		in.CurrentSavings = d(1500000)
		result, err := CalculateRetirementCorpus(in)
		require.NoError(t, err)
		assertDecimal(t, decimal.Zero, result.Shortfall, "shortfall")
		assertDecimal(t, decimal.Zero, result.RequiredMonthlySIP, "monthly SIP")
	})

	t.Run("positive real return needs less than the undiscounted total", func(t *testing.T) {
		in := base
		in.PostRetirementReturn = d(9)
		in.PreRetirementReturn = d(12)
		result, err := CalculateRetirementCorpus(in)
		require.NoError(t, err)
		assert.True(t, result.RealReturn.IsPositive())
		assert.True(t, result.CorpusRequired.LessThan(d(1272000)))
		assert.True(t, result.CorpusRequired.GreaterThan(d(127200)))
		reached := sipFutureValue(result.RequiredMonthlySIP, decimal.RequireFromString("0.01"), 12)
		assert.True(t, reached.Sub(result.Shortfall).Abs().LessThan(d(1)), "SIP reaches %s, need %s", reached, result.Shortfall)
	})

	t.Run("rejects inverted ages", func(t *testing.T) {
		in := base
		in.RetirementAge = 58
		_, err := CalculateRetirementCorpus(in)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
