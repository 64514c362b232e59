package output

import (
	"fmt"
	"io"
	"os"

	"github.com/rgehrsitz/itax/internal/domain"
	"gopkg.in/yaml.v3"
)

// ReportGenerator handles report generation in various formats
type ReportGenerator struct {
	Out io.Writer
}

// NewReportGenerator creates a report generator writing to out (stdout when nil)
func NewReportGenerator(out io.Writer) *ReportGenerator {
	if out == nil {
		out = os.Stdout
	}
	return &ReportGenerator{Out: out}
}

// GenerateReport renders report with the named formatter (aliases allowed) to w
func GenerateReport(w io.Writer, report *domain.TaxReport, format string) error {
	return NewReportGenerator(w).Generate(report, format)
}

// Generate renders report in the given format
func (rg *ReportGenerator) Generate(report *domain.TaxReport, format string) error {
	if report == nil {
		return fmt.Errorf("no report to render")
	}
	f := GetFormatterByName(format)
	if f == nil {
		return fmt.Errorf("unsupported format: %s", format)
	}
	data, err := f.Format(report)
	if err != nil {
		return fmt.Errorf("%s formatter: %w", f.Name(), err)
	}
	_, err = rg.Out.Write(data)
	return err
}

// NewSingleReport wraps one calculation in a report
func NewSingleReport(profile string, input domain.TaxInput, result *domain.TaxResult) *domain.TaxReport {
	return &domain.TaxReport{
		ProfileName: profile,
		TaxYear:     domain.TaxYear,
		Input:       input,
		Results:     []*domain.TaxResult{result},
	}
}

// SaveInput writes a tax input back out as YAML
func SaveInput(input domain.TaxInput, filename string) error {
	data, err := yaml.Marshal(input)
	if err != nil {
		return err
	}

	return os.WriteFile(filename, data, 0644)
}
