package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csfin/portfolio/internal/common"
	"github.com/csfin/portfolio/internal/models"
)

func testSecurities(t *testing.T) *models.SecurityRepository {
	t.Helper()
	repo := models.NewSecurityRepository()
	require.NoError(t, repo.Add(models.Security{
		ISIN: "US0378331005", NSIN: "865985", Name: "Apple Inc.",
		Country: "United States", CountryCode: "US", Currency: "USD",
	}))
	require.NoError(t, repo.Add(models.Security{
		ISIN: "DE0007164600", NSIN: "716460", Name: "SAP SE",
		Country: "Germany", CountryCode: "DE", Currency: "EUR",
	}))
	return repo
}

func TestReconstructPortfolio(t *testing.T) {
	ops := NewOperationRepository()
	ops.Add("US0378331005", mustBuy(t, day(2025, 1, 2), 10, 100, 5))
	ops.Add("US0378331005", mustSell(t, day(2025, 2, 3), 4, 150, 2, 0))
	ops.Add("DE0007164600", mustBuy(t, day(2025, 1, 10), 20, 200, 10))

	p, err := ReconstructPortfolio(testSecurities(t), ops, common.NewSilentLogger())
	require.NoError(t, err)
	assert.Equal(t, 2, p.Len())

	apple, ok := p.Holding("US0378331005")
	require.True(t, ok)
	assert.InDelta(t, 6, apple.Shares, 1e-9)
	assert.InDelta(t, 200, apple.RealizedGains, 1e-9)

	assert.InDelta(t, 200, p.TotalRealizedGains(), 1e-9)
	assert.InDelta(t, 7+10, p.TotalFees(), 1e-9)
}

func TestReconstructPortfolio_SkipsUnknownSecurity(t *testing.T) {
	ops := NewOperationRepository()
	ops.Add("US0378331005", mustBuy(t, day(2025, 1, 2), 10, 100, 0))
	ops.Add("XX0000000000", mustBuy(t, day(2025, 1, 2), 1, 1, 0))

	p, err := ReconstructPortfolio(testSecurities(t), ops, common.NewSilentLogger())
	require.NoError(t, err)
	assert.Equal(t, 1, p.Len())

	_, ok := p.Holding("XX0000000000")
	assert.False(t, ok)
}

func TestReconstructPortfolio_AbortsOnInvariantViolation(t *testing.T) {
	ops := NewOperationRepository()
	ops.Add("US0378331005", mustBuy(t, day(2025, 1, 2), 5, 100, 0))
	ops.Add("US0378331005", mustSell(t, day(2025, 2, 3), 10, 150, 0, 0))

	_, err := ReconstructPortfolio(testSecurities(t), ops, common.NewSilentLogger())
	require.ErrorIs(t, err, ErrInsufficientShares)
}

func TestPortfolio_CurrentValueSkipsUnquotedHoldings(t *testing.T) {
	ops := NewOperationRepository()
	ops.Add("US0378331005", mustBuy(t, day(2025, 1, 2), 10, 100, 0))
	ops.Add("DE0007164600", mustBuy(t, day(2025, 1, 2), 20, 200, 0))

	p, err := ReconstructPortfolio(testSecurities(t), ops, common.NewSilentLogger())
	require.NoError(t, err)

	quotes := models.NewQuoteRepository()
	quotes.Add("US0378331005", models.NewQuoteItem(day(2025, 6, 1), 130))

	assert.InDelta(t, 1300, p.CurrentValue(quotes), 1e-9)
}

func TestPortfolio_OpenHoldings(t *testing.T) {
	ops := NewOperationRepository()
	ops.Add("US0378331005", mustBuy(t, day(2025, 1, 2), 10, 100, 0))
	ops.Add("US0378331005", mustSell(t, day(2025, 2, 3), 10, 150, 0, 0))
	ops.Add("DE0007164600", mustBuy(t, day(2025, 1, 2), 20, 200, 0))

	p, err := ReconstructPortfolio(testSecurities(t), ops, common.NewSilentLogger())
	require.NoError(t, err)

	open := p.OpenHoldings()
	require.Len(t, open, 1)
	assert.Equal(t, "DE0007164600", open[0].ISIN)
}
