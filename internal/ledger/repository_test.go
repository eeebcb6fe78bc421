package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csfin/portfolio/internal/models"
)

func TestOperationRepository_IdempotentIngestion(t *testing.T) {
	repo := NewOperationRepository()

	buy := mustBuy(t, day(2025, 1, 2), 10, 100, 5)
	assert.True(t, repo.Add("US0378331005", buy))
	assert.False(t, repo.Add("US0378331005", buy))

	// A fresh operation with identical content dedups too.
	again := mustBuy(t, day(2025, 1, 2), 10, 100, 5)
	assert.False(t, repo.Add("US0378331005", again))

	assert.Len(t, repo.Operations("US0378331005"), 1)
}

func TestOperationRepository_OrdersByDate(t *testing.T) {
	repo := NewOperationRepository()
	repo.Add("US0378331005", mustSell(t, day(2025, 3, 4), 5, 150, 0, 0))
	repo.Add("US0378331005", mustBuy(t, day(2025, 1, 2), 10, 100, 0))
	repo.Add("US0378331005", mustBuy(t, day(2025, 2, 3), 10, 120, 0))

	ops := repo.Operations("US0378331005")
	require.Len(t, ops, 3)
	assert.Equal(t, models.OpBuy, ops[0].Kind())
	assert.True(t, ops[0].Date().Before(ops[1].Date()))
	assert.Equal(t, models.OpSell, ops[2].Kind())
}

func TestOperationRepository_SameDayKeepsInsertionOrder(t *testing.T) {
	repo := NewOperationRepository()
	repo.Add("US0378331005", mustBuy(t, day(2025, 1, 2), 10, 100, 0))
	repo.Add("US0378331005", mustSell(t, day(2025, 1, 2), 10, 150, 0, 0))

	ops := repo.Operations("US0378331005")
	require.Len(t, ops, 2)
	assert.Equal(t, models.OpBuy, ops[0].Kind())
	assert.Equal(t, models.OpSell, ops[1].Kind())
}

func TestRecordRoundTrip(t *testing.T) {
	repo := NewOperationRepository()
	repo.Add("US0378331005", mustBuy(t, day(2025, 1, 2), 10, 100, 5))
	repo.Add("US0378331005", mustSell(t, day(2025, 3, 4), 5, 150, 10, 20))

	div, err := NewDividend(day(2025, 4, 1), 0.26, 100, 3.9, 1.04)
	require.NoError(t, err)
	repo.Add("US0378331005", div)

	split, err := NewStockSplit(day(2025, 5, 1), 4)
	require.NoError(t, err)
	repo.Add("US0378331005", split)

	restored, err := RepositoryFromRecords(repo.ToRecords())
	require.NoError(t, err)

	orig := repo.Operations("US0378331005")
	got := restored.Operations("US0378331005")
	require.Len(t, got, len(orig))
	for i := range orig {
		assert.Equal(t, orig[i].Checksum(), got[i].Checksum())
		assert.Equal(t, orig[i].Kind(), got[i].Kind())
	}
}

func TestOperationFromRecord_RejectsChecksumMismatch(t *testing.T) {
	rec := RecordFromOperation(mustBuy(t, day(2025, 1, 2), 10, 100, 5))
	rec.Checksum = "00000000"

	_, err := OperationFromRecord(rec)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "checksum mismatch")
}

func TestOperationFromRecord_RejectsInvalidRecord(t *testing.T) {
	rec := models.OperationRecord{OperationType: models.OpBuy, Date: "2025-01-02", Shares: 0, PricePerShare: 100}
	_, err := OperationFromRecord(rec)
	assert.Error(t, err)
}
