package calculation

import (
	"fmt"
	"testing"

	"github.com/rgehrsitz/itax/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingLogger struct {
	NopLogger
	debug []string
}

func (r *recordingLogger) Debugf(format string, args ...interface{}) {
	r.debug = append(r.debug, fmt.Sprintf(format, args...))
}

func TestSalaryCalculator_Split(t *testing.T) {
	sc := NewSalaryCalculator()

	c, err := sc.Split(SalaryInput{CTC: d(1200000), IsMetro: true})
	require.NoError(t, err)
	assertDecimal(t, d(600000), c.Basic, "basic")
	assertDecimal(t, d(300000), c.HRA, "HRA")
	assertDecimal(t, d(72000), c.EmployerPF, "employer PF")
	assertDecimal(t, d(28860), c.Gratuity, "gratuity")
	assertDecimal(t, d(199140), c.SpecialAllowance, "special allowance")
	assertDecimal(t, d(1099140), c.GrossSalary, "gross")
	assertDecimal(t, d(72000), c.EmployeePF, "employee PF")
	assertDecimal(t, d(2500), c.ProfessionalTax, "professional tax")

	t.Run("non-metro HRA is 40 percent of basic", func(t *testing.T) {
		c, err := sc.Split(SalaryInput{CTC: d(1200000)})
		require.NoError(t, err)
		assertDecimal(t, d(240000), c.HRA, "HRA")
	})

	t.Run("employer NPS comes out of the special allowance", func(t *testing.T) {
		c, err := sc.Split(SalaryInput{CTC: d(1200000), IsMetro: true, EmployerNPSPercent: d(10)})
		require.NoError(t, err)
		assertDecimal(t, d(60000), c.EmployerNPS, "employer NPS")
		assertDecimal(t, d(139140), c.SpecialAllowance, "special allowance")
	})

	t.Run("errors", func(t *testing.T) {
		for name, in := range map[string]SalaryInput{
			"zero CTC":             {CTC: d(0)},
			"all basic":            {CTC: d(1000000), BasicPercent: d(100), IsMetro: true},
			"employer NPS too big": {CTC: d(1000000), EmployerNPSPercent: d(15)},
			"negative rent":        {CTC: d(1000000), MonthlyRent: d(-1)},
		} {
			_, err := sc.Split(in)
			assert.ErrorIs(t, err, ErrInvalidInput, name)
		}
	})
}

func TestSalaryCalculator_Calculate(t *testing.T) {
	sc := NewSalaryCalculator()
	logger := &recordingLogger{}
	sc.SetLogger(logger)

	t.Run("12 lakh metro without rent favours the new regime", func(t *testing.T) {
		result, err := sc.Calculate(SalaryInput{CTC: d(1200000), IsMetro: true})
		require.NoError(t, err)

		assertDecimal(t, d(66166), result.NewRegime.Tax.FinalTaxPayable, "new tax")
		assertDecimal(t, d(111725), result.OldRegime.Tax.FinalTaxPayable, "old tax")
		assertDecimal(t, d(958474), result.NewRegime.AnnualInHand, "new in-hand")
		assertDecimal(t, d(79873), result.NewRegime.MonthlyInHand, "new monthly")
		assertDecimal(t, d(912915), result.OldRegime.AnnualInHand, "old in-hand")
		assert.Equal(t, domain.RegimeNew, result.BetterRegime)
		assertDecimal(t, d(45559), result.TaxSavings, "savings")
		assert.Equal(t, result.NewRegime, result.Best())
	})

	t.Run("rent makes the old regime cheaper", func(t *testing.T) {
		result, err := sc.Calculate(SalaryInput{CTC: d(1200000), IsMetro: true, MonthlyRent: d(30000)})
		require.NoError(t, err)

		assertDecimal(t, d(300000), result.HRAExemption.ExemptAmount, "HRA exemption")
		assertDecimal(t, d(674640), result.OldRegime.Tax.TaxableIncome, "old taxable")
		assertDecimal(t, d(49325), result.OldRegime.Tax.FinalTaxPayable, "old tax")
		assert.Equal(t, domain.RegimeOld, result.BetterRegime)
		assertDecimal(t, d(16841), result.TaxSavings, "savings")
	})

	t.Run("employer NPS is taxed as salary and deducted once", func(t *testing.T) {
		tests := []struct {
			name       string
			npsPercent int64
			gross      int64
			newTaxable int64
			newTax     int64
			oldTaxable int64
			oldTax     int64
		}{
			// basic 10L: NPS 1L is inside both caps
			{"10 percent of basic", 10, 1731900, 1656900, 194553, 1559400, 291533},
			// NPS 1.4L: the old regime stops at 10% of basic
			{"14 percent of basic", 14, 1691900, 1616900, 182073, 1559400, 291533},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				result, err := sc.Calculate(SalaryInput{CTC: d(2000000), IsMetro: true, EmployerNPSPercent: d(tt.npsPercent)})
				require.NoError(t, err)

				assertDecimal(t, d(tt.gross), result.Components.GrossSalary, "gross")
				assertDecimal(t, d(1831900), result.NewRegime.Tax.GrossIncome, "taxable salary")
				assertDecimal(t, d(tt.newTaxable), result.NewRegime.Tax.TaxableIncome, "new taxable")
				assertDecimal(t, d(tt.newTax), result.NewRegime.Tax.FinalTaxPayable, "new tax")
				assertDecimal(t, d(tt.oldTaxable), result.OldRegime.Tax.TaxableIncome, "old taxable")
				assertDecimal(t, d(tt.oldTax), result.OldRegime.Tax.FinalTaxPayable, "old tax")
				// NPS goes to the pension account, not the bank
				assertDecimal(t, d(tt.gross-120000-2500-tt.newTax), result.NewRegime.AnnualInHand, "new in-hand")
			})
		}
	})

	assert.NotEmpty(t, logger.debug)

	sc.SetLogger(nil)
	assert.IsType(t, NopLogger{}, sc.Logger)
}

func TestSalaryCalculator_CompareOffers(t *testing.T) {
	sc := NewSalaryCalculator()

	cmp, err := sc.CompareOffers(
		SalaryInput{CTC: d(1200000), IsMetro: true},
		SalaryInput{CTC: d(1500000), IsMetro: true},
	)
	require.NoError(t, err)

	assertDecimal(t, d(25), cmp.CTCHikePercent, "CTC hike")
	assert.True(t, cmp.InHandDifference.IsPositive())
	assertDecimal(t, cmp.Offer.Best().AnnualInHand.Sub(cmp.Current.Best().AnnualInHand), cmp.InHandDifference, "difference")
	// Progressive tax means in-hand grows slower than CTC
	assert.True(t, cmp.InHandHikePercent.LessThan(cmp.CTCHikePercent))

	_, err = sc.CompareOffers(SalaryInput{CTC: d(1200000)}, SalaryInput{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
