package comdirect

import (
	"fmt"
	"math"

	"github.com/csfin/portfolio/internal/common"
	"github.com/csfin/portfolio/internal/ledger"
	"github.com/csfin/portfolio/internal/models"
)

// ToOperation converts a raw transaction row into a buy or sell
// operation. Share and fee figures are exported with signs reflecting
// the cash direction, so their absolute values are used. Taxes are not
// listed in the export.
func ToOperation(tx RawTransaction) (ledger.Operation, error) {
	date, err := common.ParseDate(tx.ExecutionDate)
	if err != nil {
		return nil, fmt.Errorf("transaction %s: %w", tx.ComdirectID, err)
	}

	shares, err := common.ParseLocaleNumber(tx.Shares)
	if err != nil {
		return nil, fmt.Errorf("transaction %s: shares: %w", tx.ComdirectID, err)
	}
	price, err := common.ParseLocaleNumber(tx.Price)
	if err != nil {
		return nil, fmt.Errorf("transaction %s: price: %w", tx.ComdirectID, err)
	}
	fees, err := common.ParseLocaleNumber(tx.TotalFees)
	if err != nil {
		return nil, fmt.Errorf("transaction %s: fees: %w", tx.ComdirectID, err)
	}

	switch tx.Type {
	case "Kauf":
		return ledger.NewBuy(date, math.Abs(shares), price, math.Abs(fees))
	case "Verkauf":
		return ledger.NewSell(date, math.Abs(shares), price, math.Abs(fees), 0)
	default:
		return nil, fmt.Errorf("transaction %s: unsupported type %q", tx.ComdirectID, tx.Type)
	}
}

// ToQuoteItems converts the rows of a quote export into quote items.
func ToQuoteItems(data *RawQuoteData) ([]models.QuoteItem, error) {
	items := make([]models.QuoteItem, 0, len(data.Items))
	for _, raw := range data.Items {
		date, err := common.ParseDate(raw.Date)
		if err != nil {
			return nil, fmt.Errorf("quote for %s: %w", data.NSIN, err)
		}
		price, err := common.ParseLocaleNumber(raw.Price)
		if err != nil {
			return nil, fmt.Errorf("quote for %s on %s: %w", data.NSIN, raw.Date, err)
		}
		items = append(items, models.NewQuoteItem(date, price))
	}
	return items, nil
}
