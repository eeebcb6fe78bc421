package ledger

import (
	"sort"

	"github.com/csfin/portfolio/internal/models"
	"github.com/csfin/portfolio/internal/sortedlist"
)

// OperationRepository holds per-security operation histories, ordered
// by date and deduplicated on operation checksum. Re-ingesting the
// same source data is a no-op.
type OperationRepository struct {
	series map[string]*sortedlist.List[Operation]
}

func NewOperationRepository() *OperationRepository {
	return &OperationRepository{series: make(map[string]*sortedlist.List[Operation])}
}

// Add inserts an operation into the security's history. It returns
// false when an operation with the same checksum is already present.
func (r *OperationRepository) Add(isin string, op Operation) bool {
	list, ok := r.series[isin]
	if !ok {
		list, _ = sortedlist.NewWithKey(CompareByDate, Operation.Checksum)
		r.series[isin] = list
	}
	return list.Add(op)
}

// Operations returns the ordered history for a security.
func (r *OperationRepository) Operations(isin string) []Operation {
	list, ok := r.series[isin]
	if !ok {
		return nil
	}
	return list.Items()
}

// Has reports whether the security has any recorded operations.
func (r *OperationRepository) Has(isin string) bool {
	list, ok := r.series[isin]
	return ok && list.Len() > 0
}

// ISINs returns the securities with recorded operations, sorted.
func (r *OperationRepository) ISINs() []string {
	isins := make([]string, 0, len(r.series))
	for isin := range r.series {
		isins = append(isins, isin)
	}
	sort.Strings(isins)
	return isins
}

// ToRecords flattens every history into its persisted form, keyed by
// ISIN.
func (r *OperationRepository) ToRecords() map[string][]models.OperationRecord {
	out := make(map[string][]models.OperationRecord, len(r.series))
	for isin, list := range r.series {
		ops := list.Items()
		records := make([]models.OperationRecord, 0, len(ops))
		for _, op := range ops {
			records = append(records, RecordFromOperation(op))
		}
		out[isin] = records
	}
	return out
}

// RepositoryFromRecords rebuilds a repository from persisted records.
// Histories are replayed in stored order so same-day operations keep
// their original sequence.
func RepositoryFromRecords(records map[string][]models.OperationRecord) (*OperationRepository, error) {
	repo := NewOperationRepository()
	for isin, recs := range records {
		for _, rec := range recs {
			op, err := OperationFromRecord(rec)
			if err != nil {
				return nil, err
			}
			repo.Add(isin, op)
		}
	}
	return repo, nil
}
