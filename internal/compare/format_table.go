package compare

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/itax/internal/output"
	"github.com/shopspring/decimal"
)

// TableFormatter formats regime comparisons as a console table
type TableFormatter struct{}

// Format generates a side-by-side table for one profile
func (tf *TableFormatter) Format(rc *RegimeComparison) string {
	var sb strings.Builder

	sb.WriteString("OLD VS NEW REGIME COMPARISON\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	if rc.ProfileName != "" {
		sb.WriteString(fmt.Sprintf("Profile: %s\n", rc.ProfileName))
	}
	sb.WriteString(fmt.Sprintf("Gross Income: %s   Age Category: %s\n",
		output.FormatRupees(rc.Input.AnnualGrossIncome), rc.Input.AgeCategory))
	sb.WriteString("\n")

	labelWidth := 26
	numWidth := 16

	sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s\n",
		labelWidth, "",
		numWidth, "Old Regime",
		numWidth, "New Regime",
		numWidth, "Difference"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	for _, line := range rc.Lines {
		sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s\n",
			labelWidth, line.Label,
			numWidth, output.FormatRupees(line.Old),
			numWidth, output.FormatRupees(line.New),
			numWidth, tf.deltaSymbol(line.Difference)+output.FormatRupees(line.Difference.Abs())))
	}
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Recommended: %s regime (saves %s)\n", rc.Recommended, output.FormatRupees(rc.Savings)))

	if len(rc.Recommendations) > 0 {
		sb.WriteString("\nRECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, rec := range rc.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
	}
	sb.WriteString("\n")

	return sb.String()
}

// FormatSet renders every profile followed by a one-line-per-profile summary
func (tf *TableFormatter) FormatSet(set *ComparisonSet) string {
	var sb strings.Builder
	if set.ConfigPath != "" {
		sb.WriteString(fmt.Sprintf("Configuration: %s\n\n", set.ConfigPath))
	}
	for i := range set.Comparisons {
		sb.WriteString(tf.Format(&set.Comparisons[i]))
	}
	if len(set.Comparisons) > 1 {
		sb.WriteString("SUMMARY\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		sb.WriteString(tf.FormatCompact(set))
		sb.WriteString("\n")
	}
	return sb.String()
}

// deltaSymbol returns a sign for deltas; positive means the old regime is higher
func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+"
	} else if delta.IsNegative() {
		return "-"
	}
	return ""
}

// truncate truncates a string to maxLen
func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// FormatCompact creates a compact single-line summary for each profile
func (tf *TableFormatter) FormatCompact(set *ComparisonSet) string {
	var sb strings.Builder
	for _, rc := range set.Comparisons {
		sb.WriteString(fmt.Sprintf("%-20s old=%s new=%s -> %s (saves %s)\n",
			tf.truncate(rc.ProfileName, 20),
			output.FormatRupees(rc.Old.FinalTaxPayable),
			output.FormatRupees(rc.New.FinalTaxPayable),
			rc.Recommended,
			output.FormatRupees(rc.Savings)))
	}
	return sb.String()
}
