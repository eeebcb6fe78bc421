package models

// Raw ingest feed shapes. These mirror the JSON documents dropped next to
// the snapshot by external tooling; validation happens when they are
// converted into ledger operations.

// RawDividendEntry is one dividend payment in a dividend feed.
type RawDividendEntry struct {
	Date             string  `json:"date"`
	DividendPerShare float64 `json:"dividendPerShare"`
	Shares           float64 `json:"shares"`
	ExchangeRate     float64 `json:"exchangeRate,omitempty"`
}

// RawDividendRecord groups the dividend payments of one security.
type RawDividendRecord struct {
	ISIN      string             `json:"isin"`
	Dividends []RawDividendEntry `json:"dividends"`
}

// RawSplitEntry is one stock split in a split feed, keyed by ISIN in
// RawStockSplits.
type RawSplitEntry struct {
	SplitDate  string  `json:"splitDate"`
	SplitRatio float64 `json:"splitRatio"`
}

// RawStockSplits maps ISIN to that security's splits.
type RawStockSplits map[string][]RawSplitEntry
