package ledger

import "github.com/csfin/portfolio/internal/common"

// Lot is an open purchase parcel. Sells consume lots oldest-first;
// stock splits rescale shares and price in place.
type Lot struct {
	Shares float64
	Price  float64
}

// Holding is the replayed state of a single security position. All
// fields are mutated exclusively through Operation.Apply.
type Holding struct {
	ISIN          string
	Shares        float64
	Lots          []Lot
	Fees          float64
	SalesTaxes    float64
	Dividends     float64
	DividendTaxes float64
	RealizedGains float64
}

// NewHolding returns an empty holding for the given security.
func NewHolding(isin string) *Holding {
	return &Holding{ISIN: isin}
}

// NominalPurchasePrice is the sum of shares times price over all open
// lots, before fees.
func (h *Holding) NominalPurchasePrice() float64 {
	var total float64
	for _, lot := range h.Lots {
		total += lot.Shares * lot.Price
	}
	return total
}

// TotalCostBasis is the nominal purchase price plus accumulated buy
// fees. A closed-out holding has no cost basis.
func (h *Holding) TotalCostBasis() float64 {
	if h.Shares == 0 {
		return 0
	}
	return h.NominalPurchasePrice() + h.Fees
}

// AveragePricePerShare divides the total cost basis by the share count.
// Zero for an empty holding.
func (h *Holding) AveragePricePerShare() float64 {
	if common.IsEffectivelyZero(h.Shares) {
		return 0
	}
	return h.TotalCostBasis() / h.Shares
}

// IsClosed reports whether the position has been fully sold.
func (h *Holding) IsClosed() bool {
	return h.Shares == 0 && len(h.Lots) == 0
}

// Clone returns a deep copy of the holding.
func (h *Holding) Clone() *Holding {
	dup := *h
	dup.Lots = make([]Lot, len(h.Lots))
	copy(dup.Lots, h.Lots)
	return &dup
}
