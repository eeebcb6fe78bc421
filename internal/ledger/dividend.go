package ledger

import (
	"fmt"
	"time"

	"github.com/csfin/portfolio/internal/common"
	"github.com/csfin/portfolio/internal/models"
)

// Dividend books a per-share payout for the shares held on the payment
// date. Foreign payouts are converted through the exchange rate.
type Dividend struct {
	date             time.Time
	dividendPerShare float64
	applicableShares float64
	taxes            float64
	exchangeRate     float64
	checksum         string
}

// NewDividend constructs a dividend operation. The applicable share
// count is the position size on the payment date and must be positive;
// an exchange rate of zero defaults to 1.
func NewDividend(date time.Time, dividendPerShare, applicableShares, taxes, exchangeRate float64) (*Dividend, error) {
	if dividendPerShare < 0 || taxes < 0 || exchangeRate < 0 {
		return nil, fmt.Errorf("dividend on %s: %w", common.FormatNormalizedDate(date), ErrNegativeValue)
	}
	if applicableShares <= 0 {
		return nil, fmt.Errorf("dividend on %s: applicable shares must be positive, got %v",
			common.FormatNormalizedDate(date), applicableShares)
	}
	if exchangeRate == 0 {
		exchangeRate = 1
	}
	d := &Dividend{
		date:             common.NormalizeDate(date),
		dividendPerShare: dividendPerShare,
		applicableShares: applicableShares,
		taxes:            taxes,
		exchangeRate:     exchangeRate,
	}
	d.checksum = common.GenericChecksum(
		common.ChecksumDate(d.date),
		common.ChecksumNumber(d.applicableShares),
		common.ChecksumNumber(d.dividendPerShare),
	)
	return d, nil
}

func (d *Dividend) Date() time.Time            { return d.date }
func (d *Dividend) Checksum() string           { return d.checksum }
func (d *Dividend) Kind() models.OperationKind { return models.OpDividend }
func (d *Dividend) DividendPerShare() float64  { return d.dividendPerShare }
func (d *Dividend) ApplicableShares() float64  { return d.applicableShares }
func (d *Dividend) Taxes() float64             { return d.taxes }
func (d *Dividend) ExchangeRate() float64      { return d.exchangeRate }

// Apply accrues the converted payout and its withholding taxes.
func (d *Dividend) Apply(h *Holding) error {
	h.Dividends += d.dividendPerShare * d.applicableShares / d.exchangeRate
	h.DividendTaxes += d.taxes
	return nil
}

func (d *Dividend) Clone() Operation {
	dup := *d
	return &dup
}
