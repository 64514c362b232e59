package output

import (
	"bytes"
	_ "embed"
	"html/template"

	"github.com/rgehrsitz/itax/internal/domain"
	"github.com/shopspring/decimal"
)

// HTMLFormatter produces a standalone HTML report.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr":  FormatINR,
	"pct":   FormatPercentage,
	"deref": derefDecimal,
}).Parse(htmlTemplateSource))

func derefDecimal(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}

func (h HTMLFormatter) Format(report *domain.TaxReport) ([]byte, error) {
	var buf bytes.Buffer
	data := struct {
		*domain.TaxReport
		Assumptions []string
	}{report, DefaultAssumptions}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
