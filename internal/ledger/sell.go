package ledger

import (
	"fmt"
	"time"

	"github.com/csfin/portfolio/internal/common"
	"github.com/csfin/portfolio/internal/models"
)

// Sell consumes open lots oldest-first and books the realized gain
// against the lot purchase prices.
type Sell struct {
	date     time.Time
	shares   float64
	price    float64
	fees     float64
	taxes    float64
	checksum string
}

// NewSell constructs a sell operation.
func NewSell(date time.Time, shares, price, fees, taxes float64) (*Sell, error) {
	if shares < 0 || price < 0 || fees < 0 || taxes < 0 {
		return nil, fmt.Errorf("sell on %s: %w", common.FormatNormalizedDate(date), ErrNegativeValue)
	}
	s := &Sell{
		date:   common.NormalizeDate(date),
		shares: shares,
		price:  price,
		fees:   fees,
		taxes:  taxes,
	}
	s.checksum = common.GenericChecksum(
		common.ChecksumDate(s.date),
		common.ChecksumNumber(s.shares),
		common.ChecksumNumber(s.price),
		common.ChecksumNumber(s.fees),
		common.ChecksumNumber(s.taxes),
	)
	return s, nil
}

func (s *Sell) Date() time.Time            { return s.date }
func (s *Sell) Checksum() string           { return s.checksum }
func (s *Sell) Kind() models.OperationKind { return models.OpSell }
func (s *Sell) Shares() float64            { return s.shares }
func (s *Sell) Price() float64             { return s.price }
func (s *Sell) Fees() float64              { return s.fees }
func (s *Sell) Taxes() float64             { return s.taxes }

// Apply walks the lot queue front to back. Partially consumed lots stay
// open with the remainder; fully consumed lots are dropped. Sell fees
// and taxes accrue on the holding and are folded into the realized
// gains only when the position closes out completely.
func (s *Sell) Apply(h *Holding) error {
	if s.shares-h.Shares > common.FloatTolerance {
		return fmt.Errorf("%s: cannot sell %v shares from a holding of %v: %w",
			h.ISIN, s.shares, h.Shares, ErrInsufficientShares)
	}

	remaining := s.shares
	for remaining > common.FloatTolerance && len(h.Lots) > 0 {
		lot := &h.Lots[0]
		if lot.Shares >= remaining {
			lot.Shares -= remaining
			h.RealizedGains += (s.price - lot.Price) * remaining
			h.Fees += s.fees
			h.SalesTaxes += s.taxes
			remaining = 0
		} else {
			h.RealizedGains += (s.price - lot.Price) * lot.Shares
			remaining -= lot.Shares
			lot.Shares = 0
		}
		if common.IsEffectivelyZero(h.Lots[0].Shares) {
			h.Lots = h.Lots[1:]
		}
	}

	h.Shares -= s.shares
	if common.IsEffectivelyZero(h.Shares) {
		h.Shares = 0
		h.RealizedGains -= h.Fees + h.SalesTaxes
		h.Fees = 0
		h.SalesTaxes = 0
	}
	return nil
}

func (s *Sell) Clone() Operation {
	dup := *s
	return &dup
}
