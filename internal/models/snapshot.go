package models

import "fmt"

// Snapshot is the application snapshot, the unit of persistence: the full
// security master, quote series, operation ledger, and optional tax table,
// read and written wholesale as a single JSON document.
type Snapshot struct {
	Securities []Security                   `json:"securities"`
	Quotes     map[string][]QuoteItem       `json:"quotes"`
	Operations map[string][]OperationRecord `json:"operations"`
	TaxData    *TaxData                     `json:"taxdata,omitempty"`
}

// NewSnapshot returns an empty snapshot with allocated maps.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		Quotes:     make(map[string][]QuoteItem),
		Operations: make(map[string][]OperationRecord),
	}
}

// Validate checks every embedded record. The snapshot is rejected as a whole
// on the first invalid entry; a partially valid document is never accepted.
func (s *Snapshot) Validate() error {
	for _, sec := range s.Securities {
		if err := sec.Validate(); err != nil {
			return err
		}
	}
	for isin, records := range s.Operations {
		for _, rec := range records {
			if err := rec.Validate(); err != nil {
				return fmt.Errorf("operations[%s]: %w", isin, err)
			}
		}
	}
	if s.TaxData != nil {
		if err := s.TaxData.Validate(); err != nil {
			return err
		}
	}
	return nil
}
