package models

import "fmt"

// TaxData holds the per-country dividend withholding tax table.
type TaxData struct {
	WithholdingTax map[string]float64 `json:"withholding-tax"`
}

// Validate checks that every rate is a fraction in [0, 1] keyed by a
// 2-letter country code.
func (t *TaxData) Validate() error {
	for cc, rate := range t.WithholdingTax {
		if len(cc) != 2 {
			return fmt.Errorf("invalid country code %q in withholding-tax table", cc)
		}
		if rate < 0 || rate > 1 {
			return fmt.Errorf("withholding-tax rate for %s out of range: %v", cc, rate)
		}
	}
	return nil
}

// Rate returns the withholding tax rate for a country code.
func (t *TaxData) Rate(countryCode string) (float64, bool) {
	if t == nil {
		return 0, false
	}
	rate, ok := t.WithholdingTax[countryCode]
	return rate, ok
}
