package ledger

import (
	"fmt"
	"time"

	"github.com/csfin/portfolio/internal/common"
	"github.com/csfin/portfolio/internal/models"
)

// Buy opens a new lot on the holding.
type Buy struct {
	date     time.Time
	shares   float64
	price    float64
	fees     float64
	checksum string
}

// NewBuy constructs a buy operation. The date is normalized to
// midnight UTC; the checksum is derived from the operation fields.
func NewBuy(date time.Time, shares, price, fees float64) (*Buy, error) {
	if shares < 0 || price < 0 || fees < 0 {
		return nil, fmt.Errorf("buy on %s: %w", common.FormatNormalizedDate(date), ErrNegativeValue)
	}
	b := &Buy{
		date:   common.NormalizeDate(date),
		shares: shares,
		price:  price,
		fees:   fees,
	}
	b.checksum = common.GenericChecksum(
		common.ChecksumDate(b.date),
		common.ChecksumNumber(b.shares),
		common.ChecksumNumber(b.price),
		common.ChecksumNumber(b.fees),
	)
	return b, nil
}

func (b *Buy) Date() time.Time            { return b.date }
func (b *Buy) Checksum() string           { return b.checksum }
func (b *Buy) Kind() models.OperationKind { return models.OpBuy }
func (b *Buy) Shares() float64            { return b.shares }
func (b *Buy) Price() float64             { return b.price }
func (b *Buy) Fees() float64              { return b.fees }

// Apply appends a fresh lot and accrues the share count and buy fees.
func (b *Buy) Apply(h *Holding) error {
	h.Lots = append(h.Lots, Lot{Shares: b.shares, Price: b.price})
	h.Shares += b.shares
	h.Fees += b.fees
	return nil
}

func (b *Buy) Clone() Operation {
	dup := *b
	return &dup
}
