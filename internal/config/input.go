package config

import (
	"fmt"
	"os"

	"github.com/rgehrsitz/itax/internal/calculation"
	"github.com/rgehrsitz/itax/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// ProfileFile is the top-level shape of a taxpayer profile file
type ProfileFile struct {
	Profiles []Profile `yaml:"profiles" json:"profiles"`
}

// Profile describes one taxpayer for one financial year
type Profile struct {
	Name              string                `yaml:"name" json:"name"`
	Age               int                   `yaml:"age" json:"age"`
	AnnualGrossIncome decimal.Decimal       `yaml:"annual_gross_income" json:"annualGrossIncome"`
	Regime            *domain.TaxRegime     `yaml:"regime,omitempty" json:"regime,omitempty"` // nil compares both
	ParentsSenior     bool                  `yaml:"parents_senior" json:"parentsSenior"`
	Deductions        domain.TaxDeductions  `yaml:"deductions" json:"deductions"`
	HRADetails        *calculation.HRAInput `yaml:"hra_details,omitempty" json:"hraDetails,omitempty"` // derives deductions.hra when set
}

// AgeCategory derives the slab category from the profile age
func (p *Profile) AgeCategory() domain.AgeCategory {
	return domain.GetAgeCategory(p.Age)
}

// InputParser handles parsing of taxpayer profile files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads profiles from a YAML or JSON file
func (ip *InputParser) LoadFromFile(filename string) (*ProfileFile, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.LoadFromBytes(data)
}

// LoadFromBytes parses and validates profile data
func (ip *InputParser) LoadFromBytes(data []byte) (*ProfileFile, error) {
	var file ProfileFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateProfiles(&file); err != nil {
		return nil, fmt.Errorf("profile validation failed: %w", err)
	}

	return &file, nil
}

// ValidateProfiles validates every profile and rejects duplicate names
func (ip *InputParser) ValidateProfiles(file *ProfileFile) error {
	if len(file.Profiles) == 0 {
		return fmt.Errorf("no profiles provided")
	}

	seen := make(map[string]bool, len(file.Profiles))
	for i := range file.Profiles {
		p := &file.Profiles[i]
		if err := ip.ValidateProfile(p); err != nil {
			return fmt.Errorf("profile %d (%s): %w", i, p.Name, err)
		}
		if seen[p.Name] {
			return fmt.Errorf("profile %d: duplicate name %q", i, p.Name)
		}
		seen[p.Name] = true
	}
	return nil
}

// ValidateProfile checks the caller-side preconditions the tax engine relies on
func (ip *InputParser) ValidateProfile(p *Profile) error {
	if p.Name == "" {
		return fmt.Errorf("name is required")
	}
	if p.Age < 0 || p.Age > 120 {
		return fmt.Errorf("age must be between 0 and 120, got %d", p.Age)
	}
	if p.AnnualGrossIncome.IsNegative() {
		return fmt.Errorf("annual gross income cannot be negative")
	}
	if p.Regime != nil && !p.Regime.Valid() {
		return fmt.Errorf("unknown regime %d", int(*p.Regime))
	}

	d := p.Deductions
	amounts := []struct {
		field string
		value decimal.Decimal
	}{
		{"section_80c", d.Section80C},
		{"section_80d", d.Section80D},
		{"hra", d.HRA},
		{"lta", d.LTA},
		{"other_deductions", d.OtherDeductions},
		{"employer_nps", d.EmployerNPS},
	}
	for _, a := range amounts {
		if a.value.IsNegative() {
			return fmt.Errorf("deductions.%s cannot be negative", a.field)
		}
	}

	limit := domain.Section80DLimit(p.AgeCategory(), p.ParentsSenior)
	if d.Section80D.GreaterThan(limit) {
		return fmt.Errorf("deductions.section_80d %s exceeds the limit of %s", d.Section80D.String(), limit.String())
	}

	if p.HRADetails != nil {
		if !d.HRA.IsZero() {
			return fmt.Errorf("set either deductions.hra or hra_details, not both")
		}
		if _, err := calculation.CalculateHRAExemption(*p.HRADetails); err != nil {
			return fmt.Errorf("hra_details: %w", err)
		}
	}

	return nil
}

// ToTaxInput converts a validated profile into engine input. When the profile
// has no regime the new regime is used; callers comparing both override it.
func (ip *InputParser) ToTaxInput(p *Profile) (domain.TaxInput, error) {
	input := domain.TaxInput{
		AnnualGrossIncome: p.AnnualGrossIncome,
		Regime:            domain.RegimeNew,
		AgeCategory:       p.AgeCategory(),
		Deductions:        p.Deductions,
	}
	if p.Regime != nil {
		input.Regime = *p.Regime
	}
	if p.HRADetails != nil {
		hra, err := calculation.CalculateHRAExemption(*p.HRADetails)
		if err != nil {
			return domain.TaxInput{}, fmt.Errorf("hra_details: %w", err)
		}
		input.Deductions.HRA = hra.ExemptAmount
	}
	return input, nil
}

// FindProfile returns the named profile, or the only profile when name is empty
func (f *ProfileFile) FindProfile(name string) (*Profile, error) {
	if name == "" {
		if len(f.Profiles) == 1 {
			return &f.Profiles[0], nil
		}
		return nil, fmt.Errorf("file has %d profiles; choose one with --profile", len(f.Profiles))
	}
	for i := range f.Profiles {
		if f.Profiles[i].Name == name {
			return &f.Profiles[i], nil
		}
	}
	return nil, fmt.Errorf("profile %s not found", name)
}
