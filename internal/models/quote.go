package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/csfin/portfolio/internal/common"
)

// QuoteItem is a single end-of-day price point.
type QuoteItem struct {
	Date  time.Time
	Price float64
}

// NewQuoteItem creates a quote with a normalized date.
func NewQuoteItem(date time.Time, price float64) QuoteItem {
	return QuoteItem{Date: common.NormalizeDate(date), Price: price}
}

type quoteItemJSON struct {
	Date  string  `json:"date"`
	Price float64 `json:"price"`
}

// MarshalJSON renders the quote with its date as YYYY-MM-DD.
func (q QuoteItem) MarshalJSON() ([]byte, error) {
	return json.Marshal(quoteItemJSON{
		Date:  common.FormatNormalizedDate(q.Date),
		Price: q.Price,
	})
}

// UnmarshalJSON parses the persisted quote form.
func (q *QuoteItem) UnmarshalJSON(data []byte) error {
	var raw quoteItemJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	date, err := common.ParseDate(raw.Date)
	if err != nil {
		return fmt.Errorf("invalid quote date: %w", err)
	}
	q.Date = date
	q.Price = raw.Price
	return nil
}

// QuoteRepository stores per-ISIN quote series, each kept ascending by
// normalized date with at most one entry per day. Unlike the operation
// ledger, a same-day quote replaces the stored one instead of being
// rejected; later ingestion wins.
type QuoteRepository struct {
	quotes map[string][]QuoteItem
}

// NewQuoteRepository creates an empty quote repository.
func NewQuoteRepository() *QuoteRepository {
	return &QuoteRepository{quotes: make(map[string][]QuoteItem)}
}

// Add inserts a quote into the series for isin at its date position,
// replacing any quote already stored for that day.
func (r *QuoteRepository) Add(isin string, quote QuoteItem) {
	quote.Date = common.NormalizeDate(quote.Date)

	series, ok := r.quotes[isin]
	if !ok {
		r.quotes[isin] = []QuoteItem{quote}
		return
	}

	low, high := 0, len(series)-1
	for low <= high {
		mid := (low + high) / 2
		cmp := common.CompareNormalizedDates(quote.Date, series[mid].Date)
		if cmp == 0 {
			series[mid] = quote
			return
		}
		if cmp < 0 {
			high = mid - 1
		} else {
			low = mid + 1
		}
	}

	series = append(series, QuoteItem{})
	copy(series[low+1:], series[low:])
	series[low] = quote
	r.quotes[isin] = series
}

// AddAll inserts a batch of quotes for isin.
func (r *QuoteRepository) AddAll(isin string, quotes []QuoteItem) {
	for _, q := range quotes {
		r.Add(isin, q)
	}
}

// Series returns a copy of the stored quote series for isin, ascending.
func (r *QuoteRepository) Series(isin string) []QuoteItem {
	series := r.quotes[isin]
	out := make([]QuoteItem, len(series))
	copy(out, series)
	return out
}

// LatestQuote returns the most recent quote for isin.
func (r *QuoteRepository) LatestQuote(isin string) (QuoteItem, bool) {
	series, ok := r.quotes[isin]
	if !ok || len(series) == 0 {
		return QuoteItem{}, false
	}
	return series[len(series)-1], true
}

// AllLatestQuotes returns the most recent quote per stored ISIN.
func (r *QuoteRepository) AllLatestQuotes() map[string]QuoteItem {
	out := make(map[string]QuoteItem, len(r.quotes))
	for isin := range r.quotes {
		if q, ok := r.LatestQuote(isin); ok {
			out[isin] = q
		}
	}
	return out
}

// ISINs returns the ISINs with at least one stored quote.
func (r *QuoteRepository) ISINs() []string {
	out := make([]string, 0, len(r.quotes))
	for isin := range r.quotes {
		out = append(out, isin)
	}
	return out
}

// ToMap exports the repository as the persisted snapshot shape.
func (r *QuoteRepository) ToMap() map[string][]QuoteItem {
	out := make(map[string][]QuoteItem, len(r.quotes))
	for isin := range r.quotes {
		out[isin] = r.Series(isin)
	}
	return out
}

// QuoteRepositoryFromMap rebuilds a repository from the persisted shape.
func QuoteRepositoryFromMap(data map[string][]QuoteItem) *QuoteRepository {
	repo := NewQuoteRepository()
	for isin, series := range data {
		repo.AddAll(isin, series)
	}
	return repo
}
