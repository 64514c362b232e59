package compare

import (
	"context"
	"errors"
	"testing"

	"github.com/rgehrsitz/itax/internal/calculation"
	"github.com/rgehrsitz/itax/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func assertDecimal(t *testing.T, expected, actual decimal.Decimal, field string) {
	t.Helper()
	assert.True(t, expected.Equal(actual), "%s: expected %s, got %s", field, expected.String(), actual.String())
}

func salaried(gross int64, ded domain.TaxDeductions) domain.TaxInput {
	return domain.TaxInput{
		AnnualGrossIncome: d(gross),
		AgeCategory:       domain.AgeBelow60,
		Deductions:        ded,
	}
}

func TestCompareEngine_Compare(t *testing.T) {
	tests := []struct {
		name        string
		input       domain.TaxInput
		oldTax      int64
		newTax      int64
		recommended domain.TaxRegime
		savings     int64
	}{
		{
			name:        "new regime wins with full 80C",
			input:       salaried(1000000, domain.TaxDeductions{Section80C: d(150000), Section80D: d(25000)}),
			oldTax:      70200,
			newTax:      50700,
			recommended: domain.RegimeNew,
			savings:     19500,
		},
		{
			name:        "old regime wins with large HRA",
			input:       salaried(1000000, domain.TaxDeductions{Section80C: d(150000), Section80D: d(25000), HRA: d(300000)}),
			oldTax:      0,
			newTax:      50700,
			recommended: domain.RegimeOld,
			savings:     50700,
		},
		{
			name:        "tie goes to new regime",
			input:       salaried(500000, domain.TaxDeductions{}),
			oldTax:      0,
			newTax:      0,
			recommended: domain.RegimeNew,
			savings:     0,
		},
	}

	engine := NewCompareEngine(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rc, err := engine.Compare(context.Background(), tt.name, tt.input)
			require.NoError(t, err)

			assertDecimal(t, d(tt.oldTax), rc.Old.FinalTaxPayable, "old tax")
			assertDecimal(t, d(tt.newTax), rc.New.FinalTaxPayable, "new tax")
			assert.Equal(t, tt.recommended, rc.Recommended)
			assertDecimal(t, d(tt.savings), rc.Savings, "savings")
			assert.Equal(t, domain.RegimeOld, rc.Old.Regime)
			assert.Equal(t, domain.RegimeNew, rc.New.Regime)
			assert.NotEmpty(t, rc.Recommendations)
			assert.Len(t, rc.Lines, 10)
		})
	}
}

func TestCompareEngine_IgnoresInputRegime(t *testing.T) {
	engine := NewCompareEngine(nil)
	input := salaried(1000000, domain.TaxDeductions{Section80C: d(150000)})
	input.Regime = domain.RegimeOld

	a, err := engine.Compare(context.Background(), "a", input)
	require.NoError(t, err)
	input.Regime = domain.RegimeNew
	b, err := engine.Compare(context.Background(), "b", input)
	require.NoError(t, err)

	assertDecimal(t, a.Old.FinalTaxPayable, b.Old.FinalTaxPayable, "old tax")
	assertDecimal(t, a.New.FinalTaxPayable, b.New.FinalTaxPayable, "new tax")
}

func TestCompareEngine_80CHeadroom(t *testing.T) {
	engine := NewCompareEngine(nil)

	rc, err := engine.Compare(context.Background(), "no80c", salaried(1000000, domain.TaxDeductions{}))
	require.NoError(t, err)
	assertDecimal(t, d(106600), rc.Old.FinalTaxPayable, "old tax")
	require.NotNil(t, rc.OldTaxAtFull80C)
	assertDecimal(t, d(75400), *rc.OldTaxAtFull80C, "old tax at full 80C")
	assert.Contains(t, rc.Recommendations, "Investing the remaining ₹150000 of 80C headroom lowers old regime tax by ₹31200")

	full, err := engine.Compare(context.Background(), "full", salaried(1000000, domain.TaxDeductions{Section80C: d(200000)}))
	require.NoError(t, err)
	assert.Nil(t, full.OldTaxAtFull80C)
}

func TestCompareEngine_MarginalReliefNote(t *testing.T) {
	engine := NewCompareEngine(nil)

	rc, err := engine.Compare(context.Background(), "relief", salaried(780000, domain.TaxDeductions{}))
	require.NoError(t, err)
	assertDecimal(t, d(5200), rc.New.FinalTaxPayable, "new tax")
	assertDecimal(t, d(60840), rc.Old.FinalTaxPayable, "old tax")
	assert.Contains(t, rc.Recommendations,
		"New regime tax is capped by marginal relief (₹20500) just above the ₹7L rebate threshold")
}

func TestCompareEngine_Errors(t *testing.T) {
	engine := NewCompareEngine(nil)

	_, err := engine.Compare(context.Background(), "neg", salaried(-1, domain.TaxDeductions{}))
	assert.True(t, errors.Is(err, calculation.ErrInvalidInput))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = engine.Compare(ctx, "cancelled", salaried(1000000, domain.TaxDeductions{}))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCompareEngine_CompareProfiles(t *testing.T) {
	engine := NewCompareEngine(calculation.NewIncomeTaxCalculatorFY2025())
	engine.SetLogger(nil)

	set, err := engine.CompareProfiles(context.Background(), []NamedInput{
		{Name: "alice", Input: salaried(1000000, domain.TaxDeductions{Section80C: d(150000)})},
		{Name: "bob", Input: salaried(500000, domain.TaxDeductions{})},
	})
	require.NoError(t, err)
	require.Len(t, set.Comparisons, 2)
	assert.Equal(t, "alice", set.Comparisons[0].ProfileName)
	assert.Equal(t, "bob", set.Comparisons[1].ProfileName)

	_, err = engine.CompareProfiles(context.Background(), []NamedInput{
		{Name: "broken", Input: salaried(-5, domain.TaxDeductions{})},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "profile broken")
}

func TestRegimeComparison_ToTaxReport(t *testing.T) {
	engine := NewCompareEngine(nil)
	rc, err := engine.Compare(context.Background(), "report", salaried(1000000, domain.TaxDeductions{}))
	require.NoError(t, err)

	report := rc.ToTaxReport()
	assert.Equal(t, "report", report.ProfileName)
	assert.Equal(t, domain.TaxYear, report.TaxYear)
	assert.True(t, report.IsComparison())
	require.NotNil(t, report.Recommended)
	assert.Equal(t, rc.Recommended, *report.Recommended)
	assert.Same(t, rc.RecommendedResult(), report.ResultFor(rc.Recommended))
	assert.Equal(t, rc.Recommendations, report.Notes)
}
