package main

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/pflag"
)

// decimalValue lets cobra flags write straight into decimal fields.
// Commas are accepted so "12,00,000" works.
type decimalValue struct {
	d *decimal.Decimal
}

func decimalVar(fs *pflag.FlagSet, p *decimal.Decimal, name string, def decimal.Decimal, usage string) {
	*p = def
	fs.Var(&decimalValue{d: p}, name, usage)
}

func (v *decimalValue) String() string {
	if v.d == nil {
		return "0"
	}
	return v.d.String()
}

func (v *decimalValue) Set(s string) error {
	d, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(s), ",", ""))
	if err != nil {
		return err
	}
	*v.d = d
	return nil
}

func (v *decimalValue) Type() string { return "decimal" }
