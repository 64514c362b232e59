package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateHRAExemption(t *testing.T) {
	tests := []struct {
		name       string
		input      HRAInput
		wantExempt decimal.Decimal
		wantTax    decimal.Decimal
	}{
		{
			name:       "metro limited by rent over 10% of basic",
			input:      HRAInput{BasicSalary: d(600000), HRAReceived: d(300000), RentPaid: d(240000), IsMetro: true},
			wantExempt: d(180000),
			wantTax:    d(120000),
		},
		{
			name:       "non-metro limited by 40% of basic",
			input:      HRAInput{BasicSalary: d(600000), HRAReceived: d(300000), RentPaid: d(360000)},
			wantExempt: d(240000),
			wantTax:    d(60000),
		},
		{
			name:       "limited by actual HRA",
			input:      HRAInput{BasicSalary: d(600000), HRAReceived: d(100000), RentPaid: d(500000), IsMetro: true},
			wantExempt: d(100000),
			wantTax:    decimal.Zero,
		},
		{
			name:       "no rent means no exemption",
			input:      HRAInput{BasicSalary: d(600000), HRAReceived: d(240000)},
			wantExempt: decimal.Zero,
			wantTax:    d(240000),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := CalculateHRAExemption(tt.input)
			require.NoError(t, err)
			assertDecimal(t, tt.wantExempt, result.ExemptAmount, "exempt")
			assertDecimal(t, tt.wantTax, result.TaxableHRA, "taxable HRA")
		})
	}

	_, err := CalculateHRAExemption(HRAInput{BasicSalary: d(-1)})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCalculateSIP(t *testing.T) {
	t.Run("one year at 12 percent", func(t *testing.T) {
		result, err := CalculateSIP(SIPInput{MonthlyInvestment: d(1000), AnnualReturnRate: d(12), Years: 1})
		require.NoError(t, err)
		assertDecimal(t, d(12000), result.TotalInvested, "invested")
		assertDecimal(t, decimal.RequireFromString("12809.33"), result.FutureValue, "future value")
		assertDecimal(t, decimal.RequireFromString("809.33"), result.EstimatedReturns, "returns")
		require.Len(t, result.Yearly, 1)
		assertDecimal(t, result.FutureValue, result.Yearly[0].ClosingValue, "closing value")
	})

	t.Run("zero return equals contributions", func(t *testing.T) {
		result, err := CalculateSIP(SIPInput{MonthlyInvestment: d(5000), Years: 3})
		require.NoError(t, err)
		assertDecimal(t, d(180000), result.FutureValue, "future value")
		assertDecimal(t, decimal.Zero, result.EstimatedReturns, "returns")
	})

	t.Run("annual step-up raises the installment", func(t *testing.T) {
		result, err := CalculateSIP(SIPInput{MonthlyInvestment: d(1000), Years: 2, AnnualStepUp: d(10)})
		require.NoError(t, err)
		assertDecimal(t, d(25200), result.TotalInvested, "invested")
		assertDecimal(t, d(1100), result.Yearly[1].Installment, "year 2 installment")
		assertDecimal(t, d(25200), result.FutureValue, "future value")
	})

	t.Run("rejects bad input", func(t *testing.T) {
		for _, in := range []SIPInput{
			{MonthlyInvestment: decimal.Zero, Years: 1},
			{MonthlyInvestment: d(100), Years: 0},
			{MonthlyInvestment: d(100), Years: 1, AnnualReturnRate: d(-1)},
		} {
			_, err := CalculateSIP(in)
			assert.ErrorIs(t, err, ErrInvalidInput)
		}
	})
}

func TestCalculateFD(t *testing.T) {
	tests := []struct {
		name         string
		input        FDInput
		wantMaturity string
		wantYield    string
	}{
		{
			name:         "quarterly for one year",
			input:        FDInput{Principal: d(100000), AnnualRate: d(7), TenureMonths: 12, Compounding: CompoundQuarterly},
			wantMaturity: "107185.9",
			wantYield:    "7.19",
		},
		{
			name:         "default compounding is quarterly",
			input:        FDInput{Principal: d(100000), AnnualRate: d(7), TenureMonths: 12},
			wantMaturity: "107185.9",
			wantYield:    "7.19",
		},
		{
			name:         "yearly with a leftover half year",
			input:        FDInput{Principal: d(100000), AnnualRate: d(12), TenureMonths: 18, Compounding: CompoundYearly},
			wantMaturity: "118720",
			wantYield:    "12",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := CalculateFD(tt.input)
			require.NoError(t, err)
			assertDecimal(t, decimal.RequireFromString(tt.wantMaturity), result.MaturityAmount, "maturity")
			assertDecimal(t, decimal.RequireFromString(tt.wantYield), result.EffectiveYield, "yield")
			assertDecimal(t, result.MaturityAmount.Sub(tt.input.Principal), result.InterestEarned, "interest")
		})
	}

	_, err := CalculateFD(FDInput{Principal: d(1000), AnnualRate: d(5), TenureMonths: 12, Compounding: 3})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestParseCompounding(t *testing.T) {
	c, err := ParseCompounding("Monthly")
	require.NoError(t, err)
	assert.Equal(t, CompoundMonthly, c)

	c, err = ParseCompounding("half-yearly")
	require.NoError(t, err)
	assert.Equal(t, CompoundHalfYearly, c)

	_, err = ParseCompounding("weekly")
	assert.ErrorIs(t, err, ErrInvalidInput)
}
