package output

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// FormatINR formats an amount in rupees with Indian digit grouping (₹12,34,567.00).
// Kept here so it can be reused by multiple formatters and unit tested in isolation.
func FormatINR(amount decimal.Decimal) string {
	return DefaultCurrency.Format(amount)
}

// FormatRupees is FormatINR without paise, for whole-rupee tax figures
func FormatRupees(amount decimal.Decimal) string {
	return DefaultCurrency.format(amount, 0)
}

// FormatPercentage formats a decimal as a percentage with 2 decimals.
func FormatPercentage(amount decimal.Decimal) string { return amount.StringFixed(2) + "%" }

// Currency formats amounts for a display locale. en-IN and the other Indian
// locales group in lakhs and crores; the rest use their own CLDR pattern.
type Currency struct {
	Tag    language.Tag
	Symbol string
}

// DefaultCurrency is rupees with Indian grouping
var DefaultCurrency = Currency{Tag: language.MustParse("en-IN"), Symbol: "₹"}

// NewCurrency parses a BCP 47 locale such as "en-IN" or "en-US"
func NewCurrency(locale string) (Currency, error) {
	if locale == "" {
		return DefaultCurrency, nil
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return Currency{}, err
	}
	return Currency{Tag: tag, Symbol: "₹"}, nil
}

// Format renders amount with two decimals
func (c Currency) Format(amount decimal.Decimal) string {
	return c.format(amount, 2)
}

// format rounds to places and prints the rupee part as an exact integer, so
// amounts beyond float64 precision keep every digit. The paise are at most two
// digits and survive the float conversion.
func (c Currency) format(amount decimal.Decimal, places int32) string {
	p := message.NewPrinter(c.Tag)
	a := amount.Round(places)
	sign := ""
	if a.IsNegative() {
		sign, a = "-", a.Neg()
	}
	whole := a.Truncate(0)
	s := c.Symbol + sign + p.Sprint(number.Decimal(whole.IntPart()))
	if places > 0 {
		frac, _ := a.Sub(whole).Float64()
		// "0.25" in the locale's own separator; keep everything after the 0
		s += p.Sprint(number.Decimal(frac, number.Scale(int(places))))[1:]
	}
	return s
}
