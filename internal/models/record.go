package models

import (
	"encoding/json"
	"fmt"
	"regexp"
)

// OperationKind discriminates the persisted operation variants.
type OperationKind string

const (
	OpBuy      OperationKind = "BUY"
	OpSell     OperationKind = "SELL"
	OpSplit    OperationKind = "SPLIT"
	OpDividend OperationKind = "DIVIDEND"
)

var (
	checksumPattern = regexp.MustCompile(`^[0-9a-f]{8}$`)
	datePattern     = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])-(0[1-9]|[12]\d|3[01])$`)
)

// OperationRecord is the persisted form of a ledger operation: a flat tagged
// union discriminated by OperationType. Only the fields belonging to the
// record's kind are serialized.
type OperationRecord struct {
	OperationType OperationKind
	Date          string // YYYY-MM-DD
	Checksum      string

	// BUY / SELL
	Shares        float64
	PricePerShare float64
	Fees          float64
	Taxes         float64 // SELL and DIVIDEND

	// DIVIDEND
	DividendPerShare float64
	ApplicableShares float64
	ExchangeRate     float64

	// SPLIT
	SplitRatio float64
}

type baseRecordJSON struct {
	OperationType OperationKind `json:"operationType"`
	Date          string        `json:"date"`
	Checksum      string        `json:"checksum"`
}

type transactionRecordJSON struct {
	baseRecordJSON
	Shares        float64 `json:"shares"`
	PricePerShare float64 `json:"pricePerShare"`
	Fees          float64 `json:"fees"`
}

type sellRecordJSON struct {
	transactionRecordJSON
	Taxes float64 `json:"taxes"`
}

type dividendRecordJSON struct {
	baseRecordJSON
	DividendPerShare float64 `json:"dividendPerShare"`
	ApplicableShares float64 `json:"applicableShares"`
	ExchangeRate     float64 `json:"exchangeRate"`
	Taxes            float64 `json:"taxes"`
}

type splitRecordJSON struct {
	baseRecordJSON
	SplitRatio float64 `json:"splitRatio"`
}

// MarshalJSON serializes only the fields of the record's kind.
func (r OperationRecord) MarshalJSON() ([]byte, error) {
	base := baseRecordJSON{OperationType: r.OperationType, Date: r.Date, Checksum: r.Checksum}

	switch r.OperationType {
	case OpBuy:
		return json.Marshal(transactionRecordJSON{base, r.Shares, r.PricePerShare, r.Fees})
	case OpSell:
		return json.Marshal(sellRecordJSON{transactionRecordJSON{base, r.Shares, r.PricePerShare, r.Fees}, r.Taxes})
	case OpDividend:
		return json.Marshal(dividendRecordJSON{base, r.DividendPerShare, r.ApplicableShares, r.ExchangeRate, r.Taxes})
	case OpSplit:
		return json.Marshal(splitRecordJSON{base, r.SplitRatio})
	default:
		return nil, fmt.Errorf("unknown operation type %q", r.OperationType)
	}
}

// operationRecordJSON mirrors every possible field; optional ones use
// pointers so defaults can be applied when they are absent.
type operationRecordJSON struct {
	OperationType    OperationKind `json:"operationType"`
	Date             string        `json:"date"`
	Checksum         string        `json:"checksum"`
	Shares           float64       `json:"shares"`
	PricePerShare    float64       `json:"pricePerShare"`
	Fees             float64       `json:"fees"`
	Taxes            *float64      `json:"taxes"`
	DividendPerShare float64       `json:"dividendPerShare"`
	ApplicableShares float64       `json:"applicableShares"`
	ExchangeRate     *float64      `json:"exchangeRate"`
	SplitRatio       float64       `json:"splitRatio"`
}

// UnmarshalJSON parses a persisted record, applying the documented defaults
// (exchangeRate 1, taxes 0 where optional).
func (r *OperationRecord) UnmarshalJSON(data []byte) error {
	var raw operationRecordJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*r = OperationRecord{
		OperationType:    raw.OperationType,
		Date:             raw.Date,
		Checksum:         raw.Checksum,
		Shares:           raw.Shares,
		PricePerShare:    raw.PricePerShare,
		Fees:             raw.Fees,
		DividendPerShare: raw.DividendPerShare,
		ApplicableShares: raw.ApplicableShares,
		SplitRatio:       raw.SplitRatio,
		ExchangeRate:     1,
	}
	if raw.Taxes != nil {
		r.Taxes = *raw.Taxes
	}
	if raw.ExchangeRate != nil {
		r.ExchangeRate = *raw.ExchangeRate
	}
	return nil
}

// Validate checks the persisted record against its kind's range rules.
func (r OperationRecord) Validate() error {
	if !datePattern.MatchString(r.Date) {
		return fmt.Errorf("invalid date format %q: expected YYYY-MM-DD", r.Date)
	}
	if r.Checksum != "" && !checksumPattern.MatchString(r.Checksum) {
		return fmt.Errorf("invalid checksum format %q: expected 8 hex characters", r.Checksum)
	}

	switch r.OperationType {
	case OpBuy, OpSell:
		if r.Shares <= 0 {
			return fmt.Errorf("%s record: shares must be greater than zero", r.OperationType)
		}
		if r.PricePerShare < 0 {
			return fmt.Errorf("%s record: price per share cannot be negative", r.OperationType)
		}
		if r.Fees < 0 {
			return fmt.Errorf("%s record: fees cannot be negative", r.OperationType)
		}
		if r.OperationType == OpSell && r.Taxes < 0 {
			return fmt.Errorf("SELL record: taxes cannot be negative")
		}
	case OpDividend:
		if r.DividendPerShare <= 0 {
			return fmt.Errorf("DIVIDEND record: dividend per share must be greater than zero")
		}
		if r.ApplicableShares <= 0 {
			return fmt.Errorf("DIVIDEND record: applicable shares must be greater than zero")
		}
		if r.ExchangeRate <= 0 {
			return fmt.Errorf("DIVIDEND record: exchange rate must be greater than zero")
		}
		if r.Taxes < 0 {
			return fmt.Errorf("DIVIDEND record: taxes cannot be negative")
		}
	case OpSplit:
		if r.SplitRatio <= 0 {
			return fmt.Errorf("SPLIT record: split ratio must be greater than zero")
		}
	default:
		return fmt.Errorf("unknown operation type %q", r.OperationType)
	}
	return nil
}
