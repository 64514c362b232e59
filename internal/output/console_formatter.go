package output

import (
	"bytes"
	"fmt"

	"github.com/rgehrsitz/itax/internal/domain"
)

// ConsoleFormatter provides a concise console style summary via the formatter interface.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console-lite" }

func (c ConsoleFormatter) Format(report *domain.TaxReport) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "INCOME TAX SUMMARY")
	fmt.Fprintln(&buf, "================================")
	fmt.Fprintf(&buf, "Gross Income: %s\n", FormatRupees(report.Input.AnnualGrossIncome))
	fmt.Fprintln(&buf)
	for _, res := range report.Results {
		fmt.Fprintf(&buf, "%s: Taxable=%s Tax=%s Monthly=%s Effective=%s\n",
			res.Regime,
			FormatRupees(res.TaxableIncome),
			FormatRupees(res.FinalTaxPayable),
			FormatRupees(res.MonthlyTax()),
			FormatPercentage(res.EffectiveRate),
		)
	}
	if report.Recommended != nil {
		fmt.Fprintln(&buf)
		fmt.Fprintf(&buf, "Recommended: %s (saves %s)\n", *report.Recommended, FormatRupees(report.Savings))
	}
	return buf.Bytes(), nil
}
