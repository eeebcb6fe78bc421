package ledger

import (
	"fmt"

	"github.com/csfin/portfolio/internal/common"
	"github.com/csfin/portfolio/internal/models"
)

// OperationFromRecord rebuilds a ledger operation from its persisted
// record. The record is validated first so malformed snapshot entries
// surface before they reach a holding.
func OperationFromRecord(rec models.OperationRecord) (Operation, error) {
	if err := rec.Validate(); err != nil {
		return nil, fmt.Errorf("operation record: %w", err)
	}

	date, err := common.ParseDate(rec.Date)
	if err != nil {
		return nil, fmt.Errorf("operation record: %w", err)
	}

	var op Operation
	switch rec.OperationType {
	case models.OpBuy:
		op, err = NewBuy(date, rec.Shares, rec.PricePerShare, rec.Fees)
	case models.OpSell:
		op, err = NewSell(date, rec.Shares, rec.PricePerShare, rec.Fees, rec.Taxes)
	case models.OpDividend:
		op, err = NewDividend(date, rec.DividendPerShare, rec.ApplicableShares, rec.Taxes, rec.ExchangeRate)
	case models.OpSplit:
		op, err = NewStockSplit(date, rec.SplitRatio)
	default:
		return nil, fmt.Errorf("operation record: unknown operation type %q", rec.OperationType)
	}
	if err != nil {
		return nil, err
	}

	if rec.Checksum != "" && rec.Checksum != op.Checksum() {
		return nil, fmt.Errorf("operation record on %s: checksum mismatch: stored %s, computed %s",
			rec.Date, rec.Checksum, op.Checksum())
	}
	return op, nil
}

// RecordFromOperation flattens an operation into its persisted form.
func RecordFromOperation(op Operation) models.OperationRecord {
	rec := models.OperationRecord{
		OperationType: op.Kind(),
		Date:          common.FormatNormalizedDate(op.Date()),
		Checksum:      op.Checksum(),
	}

	switch v := op.(type) {
	case *Buy:
		rec.Shares = v.Shares()
		rec.PricePerShare = v.Price()
		rec.Fees = v.Fees()
	case *Sell:
		rec.Shares = v.Shares()
		rec.PricePerShare = v.Price()
		rec.Fees = v.Fees()
		rec.Taxes = v.Taxes()
	case *Dividend:
		rec.DividendPerShare = v.DividendPerShare()
		rec.ApplicableShares = v.ApplicableShares()
		rec.ExchangeRate = v.ExchangeRate()
		rec.Taxes = v.Taxes()
	case *StockSplit:
		rec.SplitRatio = v.Ratio()
	}
	return rec
}
