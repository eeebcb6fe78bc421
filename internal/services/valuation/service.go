// Package valuation evaluates replayed holdings: annualized returns
// via XIRR, current values, and printable reports.
package valuation

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/csfin/portfolio/internal/common"
	"github.com/csfin/portfolio/internal/ledger"
	"github.com/csfin/portfolio/internal/models"
)

// Service evaluates a reconstructed portfolio against its quotes.
type Service struct {
	logger *common.Logger
}

// NewService creates a new valuation service
func NewService(logger *common.Logger) *Service {
	if logger == nil {
		logger = common.NewSilentLogger()
	}
	return &Service{logger: logger}
}

// HoldingReport is the evaluated state of a single holding.
type HoldingReport struct {
	ISIN                 string            `json:"isin"`
	Name                 string            `json:"name"`
	Shares               float64           `json:"shares"`
	TotalCostBasis       float64           `json:"totalCostBasis"`
	AveragePricePerShare float64           `json:"averagePricePerShare"`
	RealizedGains        float64           `json:"realizedGains"`
	Dividends            float64           `json:"dividends"`
	DividendTaxes        float64           `json:"dividendTaxes"`
	LatestQuote          *models.QuoteItem `json:"latestQuote,omitempty"`
	CurrentValue         float64           `json:"currentValue"`
	XIRRGross            float64           `json:"xirrGross"`
	XIRRNet              float64           `json:"xirrNet"`
}

// PortfolioReport aggregates the holding reports with portfolio-wide
// figures.
type PortfolioReport struct {
	GeneratedAt        time.Time       `json:"generatedAt"`
	Holdings           []HoldingReport `json:"holdings"`
	TotalCostBasis     float64         `json:"totalCostBasis"`
	TotalRealizedGains float64         `json:"totalRealizedGains"`
	TotalDividends     float64         `json:"totalDividends"`
	CurrentValue       float64         `json:"currentValue"`
	XIRRGross          float64         `json:"xirrGross"`
	XIRRNet            float64         `json:"xirrNet"`
}

// EvaluateHolding computes returns and value for a single security.
func (s *Service) EvaluateHolding(security models.Security, holding *ledger.Holding, ops []ledger.Operation, quotes *models.QuoteRepository) (*HoldingReport, error) {
	if len(ops) == 0 {
		return nil, fmt.Errorf("%s: %w", security.ISIN, ErrNoOperations)
	}

	report := &HoldingReport{
		ISIN:                 security.ISIN,
		Name:                 security.Name,
		Shares:               holding.Shares,
		TotalCostBasis:       holding.TotalCostBasis(),
		AveragePricePerShare: holding.AveragePricePerShare(),
		RealizedGains:        holding.RealizedGains,
		Dividends:            holding.Dividends,
		DividendTaxes:        holding.DividendTaxes,
	}

	var quote *models.QuoteItem
	if latest, ok := quotes.LatestQuote(security.ISIN); ok {
		quote = &latest
		report.LatestQuote = &latest
		report.CurrentValue = holding.Shares * latest.Price
	}

	report.XIRRGross = s.annualizedReturn(ops, EvalGross, quote)
	report.XIRRNet = s.annualizedReturn(ops, EvalNet, quote)
	return report, nil
}

// EvaluatePortfolio evaluates every holding and the portfolio itself.
// Holdings that cannot be evaluated are skipped with a warning.
func (s *Service) EvaluatePortfolio(securities *models.SecurityRepository, p *ledger.Portfolio, ops *ledger.OperationRepository, quotes *models.QuoteRepository, now time.Time) *PortfolioReport {
	report := &PortfolioReport{
		GeneratedAt:        common.NormalizeDate(now),
		TotalCostBasis:     p.TotalCostBasis(),
		TotalRealizedGains: p.TotalRealizedGains(),
		TotalDividends:     p.TotalDividends(),
		CurrentValue:       p.CurrentValue(quotes),
	}

	for _, holding := range p.Holdings() {
		security, ok := securities.GetByISIN(holding.ISIN)
		if !ok {
			s.logger.Warn().Str("isin", holding.ISIN).Msg("holding without security metadata, skipping")
			continue
		}

		hr, err := s.EvaluateHolding(security, holding, ops.Operations(holding.ISIN), quotes)
		if err != nil {
			s.logger.Warn().Err(err).Str("isin", holding.ISIN).Msg("holding evaluation failed, skipping")
			continue
		}
		report.Holdings = append(report.Holdings, *hr)
	}

	sort.Slice(report.Holdings, func(i, j int) bool {
		return report.Holdings[i].Name < report.Holdings[j].Name
	})

	report.XIRRGross = s.portfolioReturn(ops, EvalGross, report.CurrentValue, report.GeneratedAt)
	report.XIRRNet = s.portfolioReturn(ops, EvalNet, report.CurrentValue, report.GeneratedAt)
	return report
}

func (s *Service) annualizedReturn(ops []ledger.Operation, evalType EvalType, quote *models.QuoteItem) float64 {
	flows, err := CashFlowsForHolding(ops, evalType, quote)
	if err != nil {
		s.logger.Warn().Err(err).Str("type", string(evalType)).Msg("cash-flow projection failed")
		return math.NaN()
	}
	return SolveXIRR(flows, s.logger)
}

func (s *Service) portfolioReturn(ops *ledger.OperationRepository, evalType EvalType, currentValue float64, now time.Time) float64 {
	flows, err := CashFlowsForPortfolio(ops, evalType, currentValue, now)
	if err != nil {
		s.logger.Warn().Err(err).Str("type", string(evalType)).Msg("portfolio cash-flow projection failed")
		return math.NaN()
	}
	return SolveXIRR(flows, s.logger)
}

// String renders the report as the plain-text block printed at the end
// of a batch run.
func (r *PortfolioReport) String() string {
	var b strings.Builder

	for _, h := range r.Holdings {
		fmt.Fprintf(&b, "%s (%s)\n", h.Name, h.ISIN)
		fmt.Fprintf(&b, "   shares: %.4f, cost basis: %s, avg price: %s\n",
			h.Shares, FormatCurrency(h.TotalCostBasis), FormatCurrency(h.AveragePricePerShare))
		if h.LatestQuote != nil {
			fmt.Fprintf(&b, "   latest quote: %s @ %s\n",
				FormatCurrency(h.LatestQuote.Price), common.FormatNormalizedDate(h.LatestQuote.Date))
		}
		fmt.Fprintf(&b, "   realized gains: %s, dividends: %s\n",
			FormatCurrency(h.RealizedGains), FormatCurrency(h.Dividends))
		fmt.Fprintf(&b, "   XIRR: %s (gross), %s (net)\n\n",
			FormatPercent(h.XIRRGross), FormatPercent(h.XIRRNet))
	}

	fmt.Fprintf(&b, "portfolio value: %s, cost basis: %s\n",
		FormatCurrency(r.CurrentValue), FormatCurrency(r.TotalCostBasis))
	fmt.Fprintf(&b, "realized gains: %s, dividends: %s\n",
		FormatCurrency(r.TotalRealizedGains), FormatCurrency(r.TotalDividends))
	fmt.Fprintf(&b, "XIRR: %s (gross), %s (net)\n",
		FormatPercent(r.XIRRGross), FormatPercent(r.XIRRNet))

	return b.String()
}

// FormatCurrency renders an amount with two decimals and a EUR suffix.
func FormatCurrency(v float64) string {
	return fmt.Sprintf("%.2f EUR", v)
}

// FormatPercent renders a rate as a percentage; NaN renders as "n/a".
func FormatPercent(rate float64) string {
	if math.IsNaN(rate) {
		return "n/a"
	}
	return fmt.Sprintf("%.2f%%", rate*100)
}
