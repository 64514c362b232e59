package output

import (
	"bytes"
	"encoding/csv"

	"github.com/rgehrsitz/itax/internal/domain"
)

// CSVSummarizer implements the summary CSV output (one row per regime).
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(report *domain.TaxReport) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{
		"Profile", "Regime", "AgeCategory", "GrossIncome", "TotalDeductions", "TaxableIncome",
		"TaxBeforeRebate", "Rebate", "MarginalRelief", "TaxAfterRebate", "SurchargeRate",
		"Surcharge", "Cess", "FinalTaxPayable", "EffectiveRate", "Recommended",
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, res := range report.Results {
		relief := "0"
		if res.MarginalRelief != nil {
			relief = res.MarginalRelief.StringFixed(2)
		}
		recommended := "false"
		if report.Recommended != nil && *report.Recommended == res.Regime {
			recommended = "true"
		}
		row := []string{
			report.ProfileName,
			res.Regime.String(),
			res.AgeCategory.String(),
			res.GrossIncome.StringFixed(2),
			res.TotalDeductions.StringFixed(2),
			res.TaxableIncome.StringFixed(2),
			res.TaxBeforeRebate.StringFixed(2),
			res.RebateAmount.StringFixed(2),
			relief,
			res.TaxAfterRebate.StringFixed(2),
			res.SurchargeRate.StringFixed(2),
			res.Surcharge.StringFixed(2),
			res.Cess.StringFixed(2),
			res.FinalTaxPayable.StringFixed(2),
			res.EffectiveRate.StringFixed(2),
			recommended,
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
