package compare

import (
	"encoding/json"

	"github.com/rgehrsitz/itax/internal/domain"
	"github.com/shopspring/decimal"
)

// JSONFormatter formats comparison results as JSON
type JSONFormatter struct {
	Pretty bool // If true, format with indentation
}

// profileSummary is the one-line verdict per profile, ahead of the full breakdown
type profileSummary struct {
	Profile     string           `json:"profile"`
	OldTax      decimal.Decimal  `json:"oldTax"`
	NewTax      decimal.Decimal  `json:"newTax"`
	Recommended domain.TaxRegime `json:"recommended"`
	Savings     decimal.Decimal  `json:"savings"`
}

type jsonDocument struct {
	TaxYear string `json:"taxYear"`
	*ComparisonSet
	Summary []profileSummary `json:"summary"`
}

// Format generates JSON output for comparison results
func (jf *JSONFormatter) Format(set *ComparisonSet) (string, error) {
	doc := jsonDocument{
		TaxYear:       domain.TaxYear,
		ComparisonSet: set,
		Summary:       make([]profileSummary, 0, len(set.Comparisons)),
	}
	for _, rc := range set.Comparisons {
		doc.Summary = append(doc.Summary, profileSummary{
			Profile:     rc.ProfileName,
			OldTax:      rc.Old.FinalTaxPayable,
			NewTax:      rc.New.FinalTaxPayable,
			Recommended: rc.Recommended,
			Savings:     rc.Savings,
		})
	}

	var data []byte
	var err error
	if jf.Pretty {
		data, err = json.MarshalIndent(doc, "", "  ")
	} else {
		data, err = json.Marshal(doc)
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}
