package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rgehrsitz/itax/internal/domain"
	"github.com/shopspring/decimal"
)

// ConsoleVerboseFormatter renders the detailed step-by-step console report.
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string { return "console" }

func (c ConsoleVerboseFormatter) Format(report *domain.TaxReport) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, strings.Repeat("=", 80))
	fmt.Fprintf(&buf, "INCOME TAX COMPUTATION %s\n", report.TaxYear)
	fmt.Fprintln(&buf, strings.Repeat("=", 80))
	if report.ProfileName != "" {
		fmt.Fprintf(&buf, "Profile:        %s\n", report.ProfileName)
	}
	fmt.Fprintf(&buf, "Gross Income:   %s\n", FormatRupees(report.Input.AnnualGrossIncome))
	fmt.Fprintf(&buf, "Age Category:   %s\n", report.Input.AgeCategory)
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "KEY ASSUMPTIONS:")
	for _, a := range DefaultAssumptions {
		fmt.Fprintf(&buf, "• %s\n", a)
	}
	fmt.Fprintln(&buf)

	if report.IsComparison() {
		writeSideBySide(&buf, report.ResultFor(domain.RegimeOld), report.ResultFor(domain.RegimeNew))
	}

	for _, res := range report.Results {
		writeItemized(&buf, res)
	}

	if report.Recommended != nil {
		fmt.Fprintln(&buf, "RECOMMENDATION")
		fmt.Fprintln(&buf, strings.Repeat("-", 50))
		if report.Savings.IsZero() {
			fmt.Fprintf(&buf, "Both regimes give the same tax; %s regime recommended\n", *report.Recommended)
		} else {
			fmt.Fprintf(&buf, "%s regime saves %s a year (%s a month)\n", *report.Recommended,
				FormatRupees(report.Savings), FormatRupees(report.Savings.Div(decimal.NewFromInt(12))))
		}
		fmt.Fprintln(&buf)
	}

	for _, note := range report.Notes {
		fmt.Fprintf(&buf, "Note: %s\n", note)
	}

	return buf.Bytes(), nil
}

func writeItemized(buf *bytes.Buffer, res *domain.TaxResult) {
	if res == nil {
		return
	}
	fmt.Fprintf(buf, "%s REGIME\n", res.Regime)
	fmt.Fprintln(buf, strings.Repeat("=", 50))
	cmpLine(buf, "Gross Income", res.GrossIncome)
	cmpLine(buf, "Standard Deduction", res.StandardDeduction)
	cmpLine(buf, "Total Deductions", res.TotalDeductions)
	cmpLine(buf, "Taxable Income", res.TaxableIncome)
	fmt.Fprintln(buf)

	if len(res.Slabs) > 0 {
		fmt.Fprintf(buf, "  %-28s %6s %14s\n", "Slab", "Rate", "Tax")
		for _, s := range res.Slabs {
			span := fmt.Sprintf("%s - %s", FormatRupees(s.From), FormatRupees(s.To))
			fmt.Fprintf(buf, "  %-28s %5s%% %14s\n", span, s.RatePercent.StringFixed(0), FormatRupees(s.Tax))
		}
		fmt.Fprintln(buf)
	}

	cmpLine(buf, "Tax Before Rebate", res.TaxBeforeRebate)
	if res.RebateAmount.IsPositive() {
		cmpLine(buf, "Rebate u/s 87A", res.RebateAmount)
	}
	if res.HasMarginalRelief() {
		cmpLine(buf, "Marginal Relief", *res.MarginalRelief)
	}
	cmpLine(buf, "Tax After Rebate", res.TaxAfterRebate)
	if res.Surcharge.IsPositive() {
		cmpLine(buf, fmt.Sprintf("Surcharge @ %s%%", res.SurchargeRate.Mul(decimal.NewFromInt(100)).StringFixed(0)), res.Surcharge)
	}
	cmpLine(buf, "Health & Education Cess", res.Cess)
	fmt.Fprintln(buf, "  "+strings.Repeat("-", 46))
	cmpLine(buf, "TOTAL TAX PAYABLE", res.FinalTaxPayable)
	cmpLine(buf, "Monthly (TDS)", res.MonthlyTax())
	fmt.Fprintf(buf, "  %-28s %16s\n", "Effective Rate", FormatPercentage(res.EffectiveRate))
	fmt.Fprintln(buf)
}

func writeSideBySide(buf *bytes.Buffer, old, new *domain.TaxResult) {
	fmt.Fprintln(buf, "OLD VS NEW REGIME")
	fmt.Fprintln(buf, strings.Repeat("=", 80))
	fmt.Fprintf(buf, "%-28s %16s %16s %16s\n", "", "Old Regime", "New Regime", "Difference")
	row := func(label string, o, n decimal.Decimal) {
		fmt.Fprintf(buf, "%-28s %16s %16s %16s\n", label, FormatRupees(o), FormatRupees(n), FormatRupees(o.Sub(n)))
	}
	row("Total Deductions", old.TotalDeductions, new.TotalDeductions)
	row("Taxable Income", old.TaxableIncome, new.TaxableIncome)
	row("Tax Before Rebate", old.TaxBeforeRebate, new.TaxBeforeRebate)
	row("Tax After Rebate", old.TaxAfterRebate, new.TaxAfterRebate)
	row("Surcharge", old.Surcharge, new.Surcharge)
	row("Cess", old.Cess, new.Cess)
	row("Final Tax Payable", old.FinalTaxPayable, new.FinalTaxPayable)
	fmt.Fprintln(buf)
}

func cmpLine(buf *bytes.Buffer, label string, amount decimal.Decimal) {
	fmt.Fprintf(buf, "  %-28s %16s\n", label, FormatRupees(amount))
}
