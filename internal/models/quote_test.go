package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestQuoteRepository_KeepsSeriesSorted(t *testing.T) {
	repo := NewQuoteRepository()
	repo.Add("US0378331005", NewQuoteItem(day(2025, 3, 3), 101))
	repo.Add("US0378331005", NewQuoteItem(day(2025, 3, 1), 99))
	repo.Add("US0378331005", NewQuoteItem(day(2025, 3, 2), 100))

	series := repo.Series("US0378331005")
	require.Len(t, series, 3)
	assert.Equal(t, 99.0, series[0].Price)
	assert.Equal(t, 100.0, series[1].Price)
	assert.Equal(t, 101.0, series[2].Price)
}

func TestQuoteRepository_SameDayReplaces(t *testing.T) {
	repo := NewQuoteRepository()
	repo.Add("US0378331005", NewQuoteItem(day(2025, 3, 1), 99))
	repo.Add("US0378331005", NewQuoteItem(time.Date(2025, 3, 1, 17, 30, 0, 0, time.UTC), 102.5))

	series := repo.Series("US0378331005")
	require.Len(t, series, 1)
	assert.Equal(t, 102.5, series[0].Price)
}

func TestQuoteRepository_LatestQuote(t *testing.T) {
	repo := NewQuoteRepository()
	_, ok := repo.LatestQuote("US0378331005")
	assert.False(t, ok)

	repo.Add("US0378331005", NewQuoteItem(day(2025, 3, 1), 99))
	repo.Add("US0378331005", NewQuoteItem(day(2025, 3, 5), 104))
	repo.Add("US0378331005", NewQuoteItem(day(2025, 3, 3), 101))

	latest, ok := repo.LatestQuote("US0378331005")
	require.True(t, ok)
	assert.Equal(t, 104.0, latest.Price)
	assert.True(t, latest.Date.Equal(day(2025, 3, 5)))
}

func TestQuoteRepository_RoundTripMap(t *testing.T) {
	repo := NewQuoteRepository()
	repo.Add("US0378331005", NewQuoteItem(day(2025, 3, 1), 99))
	repo.Add("DE0007164600", NewQuoteItem(day(2025, 3, 2), 240))

	restored := QuoteRepositoryFromMap(repo.ToMap())
	assert.ElementsMatch(t, []string{"US0378331005", "DE0007164600"}, restored.ISINs())

	latest, ok := restored.LatestQuote("DE0007164600")
	require.True(t, ok)
	assert.Equal(t, 240.0, latest.Price)
}

func TestQuoteItem_JSON(t *testing.T) {
	item := NewQuoteItem(time.Date(2025, 3, 1, 14, 0, 0, 0, time.UTC), 99.5)
	data, err := item.MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `{"date":"2025-03-01","price":99.5}`, string(data))

	var parsed QuoteItem
	require.NoError(t, parsed.UnmarshalJSON(data))
	assert.True(t, parsed.Date.Equal(day(2025, 3, 1)))
	assert.Equal(t, 99.5, parsed.Price)
}
