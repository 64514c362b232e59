package compare

import (
	"encoding/csv"
	"strings"
)

// CSVFormatter formats comparison results as CSV, one row per profile
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(set *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Profile",
		"Age Category",
		"Gross Income",
		"Old Taxable Income",
		"New Taxable Income",
		"Old Tax",
		"New Tax",
		"Recommended",
		"Savings",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	for i := range set.Comparisons {
		if err := writer.Write(cf.formatRow(&set.Comparisons[i])); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// formatRow formats a comparison as a CSV row
func (cf *CSVFormatter) formatRow(rc *RegimeComparison) []string {
	return []string{
		rc.ProfileName,
		rc.Input.AgeCategory.String(),
		rc.Input.AnnualGrossIncome.StringFixed(2),
		rc.Old.TaxableIncome.StringFixed(2),
		rc.New.TaxableIncome.StringFixed(2),
		rc.Old.FinalTaxPayable.StringFixed(2),
		rc.New.FinalTaxPayable.StringFixed(2),
		rc.Recommended.String(),
		rc.Savings.StringFixed(2),
	}
}
