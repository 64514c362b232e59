package breakeven

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// TableFormatter formats break-even results as a console table
type TableFormatter struct{}

// Format generates a formatted table for a single break-even result
func (tf *TableFormatter) Format(result *Result) string {
	var sb strings.Builder

	sb.WriteString("OLD VS NEW REGIME BREAK-EVEN\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Gross Income:        ₹%s\n", tf.formatCurrency(result.Request.GrossIncome)))
	sb.WriteString(fmt.Sprintf("Age Category:        %s\n", result.Request.AgeCategory))
	if result.Request.EmployerNPS.IsPositive() {
		sb.WriteString(fmt.Sprintf("Employer NPS:        ₹%s\n", tf.formatCurrency(result.Request.EmployerNPS)))
	}
	sb.WriteString(fmt.Sprintf("Status:              %s\n", tf.formatStatus(result.Success)))
	sb.WriteString(fmt.Sprintf("Iterations:          %d\n", result.Iterations))
	if result.ConvergenceInfo != "" {
		sb.WriteString(fmt.Sprintf("Convergence:         %s\n", result.ConvergenceInfo))
	}
	sb.WriteString("\n")

	sb.WriteString("BREAK-EVEN POINT\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	sb.WriteString(fmt.Sprintf("New Regime Tax:                 ₹%s\n", tf.formatCurrency(result.NewRegimeTax)))
	sb.WriteString(fmt.Sprintf("Old Regime Tax (no deductions): ₹%s\n", tf.formatCurrency(result.OldRegimeTaxNoDed)))
	sb.WriteString(fmt.Sprintf("Deductions Needed:              ₹%s\n", tf.formatCurrency(result.BreakEvenDeductions)))
	sb.WriteString(fmt.Sprintf("Old Regime Tax at Break-even:   ₹%s\n", tf.formatCurrency(result.OldRegimeTax)))
	if result.WithinCommonLimits {
		sb.WriteString("Reachable with 80C, 80D and 80CCD(1B) alone\n")
	} else {
		sb.WriteString("Needs deductions beyond 80C, 80D and 80CCD(1B)\n")
	}
	sb.WriteString("\n")

	return sb.String()
}

// FormatSweep formats break-even points across incomes
func (tf *TableFormatter) FormatSweep(result *SweepResult) string {
	var sb strings.Builder

	sb.WriteString("BREAK-EVEN DEDUCTIONS BY INCOME\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("%-14s %14s %14s %14s %12s\n",
		"Gross Income", "New Tax", "Old Tax", "Break-even", "Reachable"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")

	for _, res := range result.Results {
		reachable := "no"
		if res.WithinCommonLimits {
			reachable = "yes"
		}
		sb.WriteString(fmt.Sprintf("%-14s %14s %14s %14s %12s\n",
			"₹"+tf.formatShort(res.Request.GrossIncome),
			"₹"+tf.formatShort(res.NewRegimeTax),
			"₹"+tf.formatShort(res.OldRegimeTaxNoDed),
			"₹"+tf.formatShort(res.BreakEvenDeductions),
			reachable))
	}
	sb.WriteString("\n")

	if len(result.Recommendations) > 0 {
		sb.WriteString("RECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, rec := range result.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// JSONFormatter formats results as JSON
type JSONFormatter struct {
	Pretty bool
}

// Format generates JSON output
func (jf *JSONFormatter) Format(result *Result) (string, error) {
	return jf.marshal(result)
}

// FormatSweep formats a sweep as JSON
func (jf *JSONFormatter) FormatSweep(result *SweepResult) (string, error) {
	return jf.marshal(result)
}

func (jf *JSONFormatter) marshal(v interface{}) (string, error) {
	var data []byte
	var err error

	if jf.Pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}

	if err != nil {
		return "", err
	}

	return string(data), nil
}

// Helper methods

func (tf *TableFormatter) formatStatus(success bool) string {
	if success {
		return "✓ Converged"
	}
	return "⚠ Did not converge"
}

func (tf *TableFormatter) formatCurrency(d decimal.Decimal) string {
	return d.StringFixed(0)
}

// formatShort abbreviates to lakhs and crores
func (tf *TableFormatter) formatShort(d decimal.Decimal) string {
	crore := decimal.NewFromInt(10000000)
	lakh := decimal.NewFromInt(100000)
	if d.Abs().GreaterThanOrEqual(crore) {
		return d.Div(crore).StringFixed(2) + "Cr"
	} else if d.Abs().GreaterThanOrEqual(lakh) {
		return d.Div(lakh).StringFixed(2) + "L"
	}
	return d.StringFixed(0)
}
