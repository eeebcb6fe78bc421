package ledger

import (
	"fmt"
	"sort"

	"github.com/csfin/portfolio/internal/common"
	"github.com/csfin/portfolio/internal/models"
)

// Portfolio is the replayed state of every known holding.
type Portfolio struct {
	holdings map[string]*Holding
	log      *common.Logger
}

// ReconstructPortfolio replays each security's operation history into a
// holding. Histories for ISINs missing from the security repository are
// skipped with a warning rather than failing the whole rebuild; an
// operation that cannot be applied aborts with an error.
func ReconstructPortfolio(securities *models.SecurityRepository, ops *OperationRepository, log *common.Logger) (*Portfolio, error) {
	if log == nil {
		log = common.NewSilentLogger()
	}

	p := &Portfolio{
		holdings: make(map[string]*Holding),
		log:      log,
	}

	for _, isin := range ops.ISINs() {
		if !securities.HasISIN(isin) {
			log.Warn().Str("isin", isin).Msg("skipping operations for unknown security")
			continue
		}

		holding := NewHolding(isin)
		for _, op := range ops.Operations(isin) {
			if err := op.Apply(holding); err != nil {
				return nil, fmt.Errorf("reconstructing %s: %w", isin, err)
			}
		}
		p.holdings[isin] = holding
	}

	return p, nil
}

// Holding returns the replayed holding for a security.
func (p *Portfolio) Holding(isin string) (*Holding, bool) {
	h, ok := p.holdings[isin]
	return h, ok
}

// Holdings returns every holding sorted by ISIN.
func (p *Portfolio) Holdings() []*Holding {
	isins := make([]string, 0, len(p.holdings))
	for isin := range p.holdings {
		isins = append(isins, isin)
	}
	sort.Strings(isins)

	out := make([]*Holding, 0, len(isins))
	for _, isin := range isins {
		out = append(out, p.holdings[isin])
	}
	return out
}

// OpenHoldings returns the holdings that still carry shares.
func (p *Portfolio) OpenHoldings() []*Holding {
	var out []*Holding
	for _, h := range p.Holdings() {
		if h.Shares > 0 {
			out = append(out, h)
		}
	}
	return out
}

func (p *Portfolio) Len() int {
	return len(p.holdings)
}

// TotalCostBasis sums the cost basis of all open holdings.
func (p *Portfolio) TotalCostBasis() float64 {
	var total float64
	for _, h := range p.holdings {
		total += h.TotalCostBasis()
	}
	return total
}

// TotalRealizedGains sums realized gains across all holdings.
func (p *Portfolio) TotalRealizedGains() float64 {
	var total float64
	for _, h := range p.holdings {
		total += h.RealizedGains
	}
	return total
}

// TotalDividends sums accrued dividends across all holdings.
func (p *Portfolio) TotalDividends() float64 {
	var total float64
	for _, h := range p.holdings {
		total += h.Dividends
	}
	return total
}

// TotalDividendTaxes sums withheld dividend taxes across all holdings.
func (p *Portfolio) TotalDividendTaxes() float64 {
	var total float64
	for _, h := range p.holdings {
		total += h.DividendTaxes
	}
	return total
}

// TotalFees sums the open fee accruals across all holdings.
func (p *Portfolio) TotalFees() float64 {
	var total float64
	for _, h := range p.holdings {
		total += h.Fees
	}
	return total
}

// CurrentValue prices every open holding at its latest quote. Holdings
// without any quote are skipped with a warning so a sparse quote file
// degrades the valuation instead of failing it.
func (p *Portfolio) CurrentValue(quotes *models.QuoteRepository) float64 {
	var total float64
	for _, h := range p.Holdings() {
		if h.Shares <= 0 {
			continue
		}
		quote, ok := quotes.LatestQuote(h.ISIN)
		if !ok {
			p.log.Warn().Str("isin", h.ISIN).Msg("no quote available, holding excluded from current value")
			continue
		}
		total += h.Shares * quote.Price
	}
	return total
}
