package valuation

import (
	"errors"
	"fmt"
	"time"

	"github.com/csfin/portfolio/internal/common"
	"github.com/csfin/portfolio/internal/ledger"
	"github.com/csfin/portfolio/internal/models"
	"github.com/csfin/portfolio/internal/sortedlist"
)

// EvalType selects whether fees and taxes reduce the projected cash
// flows (net) or are ignored (gross).
type EvalType string

const (
	EvalNet   EvalType = "net"
	EvalGross EvalType = "gross"
)

var (
	// ErrNoOperations is returned when a cash-flow projection is asked
	// for an empty operation history.
	ErrNoOperations = errors.New("operation list is empty")

	// ErrMissingQuote is returned when an open position has no quote to
	// price its terminal cash flow with.
	ErrMissingQuote = errors.New("no quote for open position")
)

// CashFlow is a dated amount: negative for money invested, positive
// for money received.
type CashFlow struct {
	Date   time.Time
	Amount float64
}

// CashFlowsForHolding projects a single security's operation history
// into dated cash flows. An open position contributes a terminal flow
// of shares times the quote price at the quote date; a quote is then
// mandatory.
func CashFlowsForHolding(ops []ledger.Operation, evalType EvalType, quote *models.QuoteItem) ([]CashFlow, error) {
	if len(ops) == 0 {
		return nil, ErrNoOperations
	}

	shares, err := finalShareCount(ops)
	if err != nil {
		return nil, err
	}

	flows := convertOperations(ops, evalType)
	if shares > common.FloatTolerance {
		if quote == nil {
			return nil, ErrMissingQuote
		}
		flows = append(flows, CashFlow{Date: quote.Date, Amount: shares * quote.Price})
	}

	return sortCashFlows(flows), nil
}

// CashFlowsForPortfolio merges the cash flows of every security and
// appends the portfolio's current value as a single terminal flow.
func CashFlowsForPortfolio(repo *ledger.OperationRepository, evalType EvalType, currentValue float64, currentDate time.Time) ([]CashFlow, error) {
	var flows []CashFlow
	for _, isin := range repo.ISINs() {
		flows = append(flows, convertOperations(repo.Operations(isin), evalType)...)
	}
	if len(flows) == 0 {
		return nil, ErrNoOperations
	}

	flows = append(flows, CashFlow{Date: currentDate, Amount: currentValue})
	return sortCashFlows(flows), nil
}

// finalShareCount replays only the share arithmetic of the history.
func finalShareCount(ops []ledger.Operation) (float64, error) {
	var total float64
	for _, op := range ops {
		switch v := op.(type) {
		case *ledger.Buy:
			total += v.Shares()
		case *ledger.Sell:
			if v.Shares()-total > common.FloatTolerance {
				return 0, fmt.Errorf("on %s: %w", common.FormatNormalizedDate(v.Date()), ledger.ErrInsufficientShares)
			}
			total -= v.Shares()
		case *ledger.StockSplit:
			total *= v.Ratio()
		}
	}
	return total, nil
}

func convertOperations(ops []ledger.Operation, evalType EvalType) []CashFlow {
	var flows []CashFlow
	for _, op := range ops {
		var amount float64
		switch v := op.(type) {
		case *ledger.Buy:
			amount = -v.Shares() * v.Price()
			if evalType == EvalNet {
				amount -= v.Fees()
			}
		case *ledger.Sell:
			amount = v.Shares() * v.Price()
			if evalType == EvalNet {
				amount -= v.Fees() + v.Taxes()
			}
		case *ledger.Dividend:
			amount = v.DividendPerShare() * v.ApplicableShares() / v.ExchangeRate()
			if evalType == EvalNet {
				amount -= v.Taxes()
			}
		default:
			// splits move no money
			continue
		}
		flows = append(flows, CashFlow{Date: op.Date(), Amount: amount})
	}
	return flows
}

// sortCashFlows orders flows by date. Same-day flows keep their
// insertion order, so a terminal flow stays after the operations that
// produced it.
func sortCashFlows(flows []CashFlow) []CashFlow {
	sorted, _ := sortedlist.FromSlice(flows, func(a, b CashFlow) int {
		return a.Date.Compare(b.Date)
	}, nil)
	return sorted.Items()
}
