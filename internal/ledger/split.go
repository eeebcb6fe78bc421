package ledger

import (
	"fmt"
	"time"

	"github.com/csfin/portfolio/internal/common"
	"github.com/csfin/portfolio/internal/models"
)

// StockSplit rescales every open lot by the split ratio. The nominal
// purchase price of each lot is unchanged since shares and price move
// inversely.
type StockSplit struct {
	date     time.Time
	ratio    float64
	checksum string
}

// NewStockSplit constructs a split operation. The ratio is the
// new-shares-per-old-share factor and must be positive.
func NewStockSplit(date time.Time, ratio float64) (*StockSplit, error) {
	if ratio <= 0 {
		return nil, fmt.Errorf("split on %s: ratio must be positive, got %v",
			common.FormatNormalizedDate(date), ratio)
	}
	s := &StockSplit{
		date:  common.NormalizeDate(date),
		ratio: ratio,
	}
	s.checksum = common.GenericChecksum(
		common.ChecksumDate(s.date),
		common.ChecksumNumber(s.ratio),
	)
	return s, nil
}

func (s *StockSplit) Date() time.Time            { return s.date }
func (s *StockSplit) Checksum() string           { return s.checksum }
func (s *StockSplit) Kind() models.OperationKind { return models.OpSplit }
func (s *StockSplit) Ratio() float64             { return s.ratio }

func (s *StockSplit) Apply(h *Holding) error {
	for i := range h.Lots {
		h.Lots[i].Shares *= s.ratio
		h.Lots[i].Price /= s.ratio
	}
	h.Shares *= s.ratio
	return nil
}

func (s *StockSplit) Clone() Operation {
	dup := *s
	return &dup
}
