package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rgehrsitz/itax/internal/calculation"
	"github.com/rgehrsitz/itax/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validYAML = `
profiles:
  - name: "Asha"
    age: 34
    annual_gross_income: 1800000
    deductions:
      section_80c: 150000
      section_80d: 25000
      employer_nps: 60000
  - name: "Ravi"
    age: 67
    annual_gross_income: 900000
    regime: old
    parents_senior: true
    deductions:
      section_80c: 100000
      section_80d: 100000
    hra_details:
      basic_salary: 400000
      hra_received: 160000
      rent_paid: 180000
      is_metro: false
`

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "profiles.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestNewInputParser(t *testing.T) {
	parser := NewInputParser()
	assert.NotNil(t, parser, "Should create input parser")
}

func TestInputParser_LoadFromFile_FileNotFound(t *testing.T) {
	parser := NewInputParser()

	file, err := parser.LoadFromFile("nonexistent.yaml")

	assert.Error(t, err, "Should error for nonexistent file")
	assert.Nil(t, file, "Should return nil file")
	assert.Contains(t, err.Error(), "failed to read file", "Should have specific error message")
}

func TestInputParser_LoadFromFile_InvalidYAML(t *testing.T) {
	parser := NewInputParser()
	file, err := parser.LoadFromFile(writeTemp(t, "invalid: yaml: content: [unclosed"))

	assert.Error(t, err, "Should error for invalid YAML")
	assert.Nil(t, file, "Should return nil file")
	assert.Contains(t, err.Error(), "failed to parse YAML", "Should have specific error message")
}

func TestInputParser_LoadFromFile_ValidYAML(t *testing.T) {
	parser := NewInputParser()
	file, err := parser.LoadFromFile(writeTemp(t, validYAML))

	require.NoError(t, err, "Should not error for valid YAML")
	require.Len(t, file.Profiles, 2, "Should parse profiles")

	asha := file.Profiles[0]
	assert.Equal(t, "Asha", asha.Name)
	assert.Nil(t, asha.Regime, "No regime means compare both")
	assert.True(t, decimal.NewFromInt(1800000).Equal(asha.AnnualGrossIncome))
	assert.True(t, decimal.NewFromInt(60000).Equal(asha.Deductions.EmployerNPS))
	assert.Equal(t, domain.AgeBelow60, asha.AgeCategory())

	ravi := file.Profiles[1]
	require.NotNil(t, ravi.Regime)
	assert.Equal(t, domain.RegimeOld, *ravi.Regime)
	assert.Equal(t, domain.AgeSenior, ravi.AgeCategory())
	require.NotNil(t, ravi.HRADetails)
	assert.False(t, ravi.HRADetails.IsMetro)
}

func TestInputParser_LoadFromBytes_UnknownRegime(t *testing.T) {
	parser := NewInputParser()
	_, err := parser.LoadFromBytes([]byte(`
profiles:
  - name: x
    age: 30
    annual_gross_income: 100
    regime: middle
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown tax regime")
}

func TestInputParser_ValidateProfiles(t *testing.T) {
	parser := NewInputParser()

	assert.EqualError(t, parser.ValidateProfiles(&ProfileFile{}), "no profiles provided")

	dup := &ProfileFile{Profiles: []Profile{
		{Name: "a", Age: 30},
		{Name: "a", Age: 40},
	}}
	err := parser.ValidateProfiles(dup)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate name")
}

func TestInputParser_ValidateProfile(t *testing.T) {
	parser := NewInputParser()
	neg := decimal.NewFromInt(-1)
	bad := domain.TaxRegime(9)

	tests := []struct {
		name    string
		profile Profile
		errMsg  string
	}{
		{"valid", Profile{Name: "ok", Age: 30, AnnualGrossIncome: decimal.NewFromInt(1000000)}, ""},
		{"missing name", Profile{Age: 30}, "name is required"},
		{"age too high", Profile{Name: "x", Age: 121}, "age must be between 0 and 120"},
		{"negative age", Profile{Name: "x", Age: -1}, "age must be between 0 and 120"},
		{"negative income", Profile{Name: "x", Age: 30, AnnualGrossIncome: neg}, "annual gross income cannot be negative"},
		{"unknown regime", Profile{Name: "x", Age: 30, Regime: &bad}, "unknown regime 9"},
		{"negative 80C", Profile{Name: "x", Age: 30, Deductions: domain.TaxDeductions{Section80C: neg}}, "deductions.section_80c cannot be negative"},
		{"negative employer NPS", Profile{Name: "x", Age: 30, Deductions: domain.TaxDeductions{EmployerNPS: neg}}, "deductions.employer_nps cannot be negative"},
		{"80D over self limit", Profile{Name: "x", Age: 30, Deductions: domain.TaxDeductions{Section80D: decimal.NewFromInt(50001)}}, "exceeds the limit of 50000"},
		{"80D senior with senior parents", Profile{Name: "x", Age: 65, ParentsSenior: true, Deductions: domain.TaxDeductions{Section80D: decimal.NewFromInt(100000)}}, ""},
		{"HRA given twice", Profile{Name: "x", Age: 30, Deductions: domain.TaxDeductions{HRA: decimal.NewFromInt(1)}, HRADetails: &calculation.HRAInput{}}, "not both"},
		{"negative HRA details", Profile{Name: "x", Age: 30, HRADetails: &calculation.HRAInput{RentPaid: neg}}, "hra_details"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := parser.ValidateProfile(&tt.profile)
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestInputParser_ToTaxInput(t *testing.T) {
	parser := NewInputParser()
	file, err := parser.LoadFromBytes([]byte(validYAML))
	require.NoError(t, err)

	asha, err := parser.ToTaxInput(&file.Profiles[0])
	require.NoError(t, err)
	assert.Equal(t, domain.RegimeNew, asha.Regime)
	assert.Equal(t, domain.AgeBelow60, asha.AgeCategory)

	// least of 160000, 180000 - 40000, 40% of 400000
	ravi, err := parser.ToTaxInput(&file.Profiles[1])
	require.NoError(t, err)
	assert.Equal(t, domain.RegimeOld, ravi.Regime)
	assert.Equal(t, domain.AgeSenior, ravi.AgeCategory)
	assert.True(t, decimal.NewFromInt(140000).Equal(ravi.Deductions.HRA), "got %s", ravi.Deductions.HRA)

	_, err = calculation.CalculateIncomeTax(ravi)
	assert.NoError(t, err)
}

func TestProfileFile_FindProfile(t *testing.T) {
	file := &ProfileFile{Profiles: []Profile{{Name: "a"}, {Name: "b"}}}

	p, err := file.FindProfile("b")
	require.NoError(t, err)
	assert.Equal(t, "b", p.Name)

	_, err = file.FindProfile("")
	assert.ErrorContains(t, err, "choose one with --profile")

	_, err = file.FindProfile("zzz")
	assert.ErrorContains(t, err, "profile zzz not found")

	single := &ProfileFile{Profiles: []Profile{{Name: "only"}}}
	p, err = single.FindProfile("")
	require.NoError(t, err)
	assert.Equal(t, "only", p.Name)
}
