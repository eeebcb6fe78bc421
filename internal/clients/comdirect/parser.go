package comdirect

import (
	"encoding/csv"
	"fmt"
	"regexp"
	"strings"
)

// Column positions in a comdirect transaction export. The files carry
// close to thirty columns; only these are of interest.
const (
	txColExecutionDate = 1
	txColNSIN          = 2
	txColISIN          = 3
	txColName          = 4
	txColType          = 5
	txColShares        = 6
	txColPrice         = 7
	txColCurrency      = 8
	txColTotalFees     = 11
	txColComdirectID   = 26
	txColExchangeRate  = 27
)

// Quote exports put the date in the first column and the closing price
// in the fifth.
const (
	quoteColDate  = 0
	quoteColPrice = 4
)

// Quote export header, e.g. `Apple Inc. (WKN: 865985 Börse: XETRA)`.
// The exchange label is not always cleanly encoded, hence the loose
// match on "Börse".
var quoteMetaPattern = regexp.MustCompile(`^"?(.*?)\s*\(WKN:\s*([A-Z0-9]{6})\s*B.rse:\s*(.*)\)"?$`)

// ParseTransactionData parses a comma-delimited transaction export.
// The first row is the header and is skipped; short rows are ignored.
func ParseTransactionData(file string) ([]RawTransaction, error) {
	rows, err := readRows(file, ',', 1)
	if err != nil {
		return nil, fmt.Errorf("parsing transaction data: %w", err)
	}

	var txs []RawTransaction
	for _, row := range rows {
		if len(row) <= txColExchangeRate {
			continue
		}
		txs = append(txs, RawTransaction{
			ExecutionDate: row[txColExecutionDate],
			NSIN:          row[txColNSIN],
			ISIN:          row[txColISIN],
			Name:          row[txColName],
			Type:          row[txColType],
			Shares:        row[txColShares],
			Price:         row[txColPrice],
			Currency:      row[txColCurrency],
			TotalFees:     row[txColTotalFees],
			ComdirectID:   row[txColComdirectID],
			ExchangeRate:  row[txColExchangeRate],
		})
	}
	return txs, nil
}

// ParseQuoteData parses a semicolon-delimited quote export. The first
// line holds the security metadata, the second is blank and the third
// is the column header.
func ParseQuoteData(file string) (*RawQuoteData, error) {
	firstLine := file
	if idx := strings.IndexByte(file, '\n'); idx >= 0 {
		firstLine = file[:idx]
	}
	firstLine = strings.TrimRight(firstLine, "\r")

	matches := quoteMetaPattern.FindStringSubmatch(firstLine)
	if matches == nil {
		return nil, fmt.Errorf("invalid quote metadata line %q", firstLine)
	}

	data := &RawQuoteData{
		Name:     strings.TrimSpace(matches[1]),
		NSIN:     strings.TrimSpace(matches[2]),
		Exchange: strings.TrimSpace(matches[3]),
	}

	rows, err := readRows(file, ';', 3)
	if err != nil {
		return nil, fmt.Errorf("parsing quote data for %s: %w", data.NSIN, err)
	}

	for _, row := range rows {
		if len(row) <= quoteColPrice {
			continue
		}
		data.Items = append(data.Items, RawQuoteItem{
			Date:  row[quoteColDate],
			Price: row[quoteColPrice],
		})
	}
	return data, nil
}

// readRows reads the CSV body after dropping the first skip lines.
func readRows(file string, comma rune, skip int) ([][]string, error) {
	lines := strings.Split(strings.ReplaceAll(file, "\r\n", "\n"), "\n")
	kept := make([]string, 0, len(lines))
	for i, line := range lines {
		if i < skip || strings.TrimSpace(line) == "" {
			continue
		}
		kept = append(kept, line)
	}

	reader := csv.NewReader(strings.NewReader(strings.Join(kept, "\n")))
	reader.Comma = comma
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	return reader.ReadAll()
}
