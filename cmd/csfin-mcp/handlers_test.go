package main

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csfin/portfolio/internal/app"
	"github.com/csfin/portfolio/internal/common"
	"github.com/csfin/portfolio/internal/models"
	"github.com/csfin/portfolio/internal/services/valuation"
	"github.com/csfin/portfolio/internal/storage/appfs"
)

func testApp(t *testing.T) *app.App {
	t.Helper()

	config := common.NewDefaultConfig()
	config.Data.Directory = t.TempDir()
	logger := common.NewSilentLogger()

	store, err := appfs.NewStore(logger, config.Data)
	require.NoError(t, err)

	a := &app.App{
		Config:    config,
		Logger:    logger,
		Store:     store,
		Valuation: valuation.NewService(logger),
		Out:       io.Discard,
	}

	snapshot := models.NewSnapshot()
	snapshot.Securities = append(snapshot.Securities, models.Security{
		ISIN: "US0378331005", NSIN: "865985", Name: "Apple Inc.",
		Country: "United States", CountryCode: "US", Currency: "USD",
	})
	snapshot.Operations["US0378331005"] = []models.OperationRecord{
		{OperationType: models.OpBuy, Date: "2025-01-02", Shares: 10, PricePerShare: 170.5, Fees: 12.9},
	}
	snapshot.Quotes["US0378331005"] = []models.QuoteItem{}
	require.NoError(t, store.SaveSnapshot(snapshot))

	return a
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, result.Content)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestHandleGetVersion(t *testing.T) {
	handler := handleGetVersion()

	result, err := handler(context.Background(), mcp.CallToolRequest{})
	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Contains(t, resultText(t, result), "csfin MCP Server")
}

func TestHandleEvaluatePortfolio(t *testing.T) {
	handler := handleEvaluatePortfolio(testApp(t))

	result, err := handler(context.Background(), mcp.CallToolRequest{})
	require.NoError(t, err)
	assert.False(t, result.IsError)

	text := resultText(t, result)
	assert.Contains(t, text, "Apple Inc.")
	assert.Contains(t, text, "XIRR")
}

func TestHandleGetHolding(t *testing.T) {
	handler := handleGetHolding(testApp(t))

	request := mcp.CallToolRequest{}
	request.Params.Arguments = map[string]interface{}{
		"isin": "US0378331005",
	}

	result, err := handler(context.Background(), request)
	require.NoError(t, err)
	assert.False(t, result.IsError)

	text := resultText(t, result)
	assert.Contains(t, text, "Shares: 10.0000")
	assert.True(t, strings.Contains(text, "Cost basis"))
}

func TestHandleGetHolding_UnknownISIN(t *testing.T) {
	handler := handleGetHolding(testApp(t))

	request := mcp.CallToolRequest{}
	request.Params.Arguments = map[string]interface{}{
		"isin": "DE0007164600",
	}

	result, err := handler(context.Background(), request)
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestHandleGetHolding_MissingParameter(t *testing.T) {
	handler := handleGetHolding(testApp(t))

	result, err := handler(context.Background(), mcp.CallToolRequest{})
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestHandleListSecurities(t *testing.T) {
	handler := handleListSecurities(testApp(t))

	result, err := handler(context.Background(), mcp.CallToolRequest{})
	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Contains(t, resultText(t, result), "US0378331005")
}
