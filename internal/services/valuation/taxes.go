package valuation

import "github.com/csfin/portfolio/internal/common"

// German capital gains tax on top of the foreign withholding: 25% base
// rate minus the 15% creditable withholding, plus 5.5% solidarity
// surcharge on that difference.
const domesticDividendTaxRate = (0.25 - 0.15) * (1 + 0.055)

// EffectiveDividendTax estimates the total tax withheld on a gross
// dividend payout. A zero withholding rate means the source country is
// unknown and no estimate is made.
func EffectiveDividendTax(withholdingRate, dividendPerShare, shares, exchangeRate float64) float64 {
	if withholdingRate == 0 {
		return 0
	}
	if exchangeRate == 0 {
		exchangeRate = 1
	}

	gross := dividendPerShare * shares / exchangeRate
	return common.RoundCurrency(gross * (withholdingRate + domesticDividendTaxRate))
}
