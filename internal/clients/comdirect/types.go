// Package comdirect parses transaction and quote CSV exports from the
// comdirect online brokerage and adapts them to ledger operations.
package comdirect

// RawTransaction is one row of a comdirect transaction export, all
// fields still in their source string form (German or English number
// locale, dd.mm.yyyy dates).
type RawTransaction struct {
	ExecutionDate string
	NSIN          string
	ISIN          string
	Name          string
	Type          string
	Shares        string
	Price         string
	Currency      string
	TotalFees     string
	ComdirectID   string
	ExchangeRate  string
}

// RawTransactionRepository groups raw transactions by ISIN in file
// order.
type RawTransactionRepository struct {
	data map[string][]RawTransaction
}

func NewRawTransactionRepository() *RawTransactionRepository {
	return &RawTransactionRepository{data: make(map[string][]RawTransaction)}
}

func (r *RawTransactionRepository) Add(tx RawTransaction) {
	r.data[tx.ISIN] = append(r.data[tx.ISIN], tx)
}

func (r *RawTransactionRepository) AddAll(txs []RawTransaction) {
	for _, tx := range txs {
		r.Add(tx)
	}
}

func (r *RawTransactionRepository) Transactions(isin string) []RawTransaction {
	return r.data[isin]
}

// ISINs returns the keys present in the repository, unordered.
func (r *RawTransactionRepository) ISINs() []string {
	isins := make([]string, 0, len(r.data))
	for isin := range r.data {
		isins = append(isins, isin)
	}
	return isins
}

// RawQuoteItem is one row of a comdirect quote export.
type RawQuoteItem struct {
	Date  string
	Price string
}

// RawQuoteData is a parsed quote export: the security metadata from
// the file header plus the price rows.
type RawQuoteData struct {
	Name     string
	NSIN     string
	Exchange string
	Items    []RawQuoteItem
}
