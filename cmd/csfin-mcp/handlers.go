package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/csfin/portfolio/internal/app"
	"github.com/csfin/portfolio/internal/common"
	"github.com/csfin/portfolio/internal/ledger"
	"github.com/csfin/portfolio/internal/services/valuation"
)

// handleGetVersion implements the get_version tool
func handleGetVersion() server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result := fmt.Sprintf("csfin MCP Server\nVersion: %s\nBuild: %s\nCommit: %s\nStatus: OK",
			common.GetVersion(), common.GetBuild(), common.GetGitCommit())
		return textResult(result), nil
	}
}

// handleEvaluatePortfolio implements the evaluate_portfolio tool
func handleEvaluatePortfolio(a *app.App) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		state, err := a.LoadState()
		if err != nil {
			a.Logger.Error().Err(err).Msg("loading state failed")
			return errorResult(fmt.Sprintf("Error loading application data: %v", err)), nil
		}

		report, err := a.Evaluate(state, time.Now())
		if err != nil {
			a.Logger.Error().Err(err).Msg("portfolio evaluation failed")
			return errorResult(fmt.Sprintf("Evaluation error: %v", err)), nil
		}

		return textResult(report.String()), nil
	}
}

// handleGetHolding implements the get_holding tool
func handleGetHolding(a *app.App) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		isin, err := request.RequireString("isin")
		if err != nil || isin == "" {
			return errorResult("Error: isin parameter is required"), nil
		}

		state, err := a.LoadState()
		if err != nil {
			return errorResult(fmt.Sprintf("Error loading application data: %v", err)), nil
		}

		security, ok := state.Securities.GetByISIN(isin)
		if !ok {
			return errorResult(fmt.Sprintf("Unknown security: %s", isin)), nil
		}

		portfolio, err := ledger.ReconstructPortfolio(state.Securities, state.Operations, a.Logger)
		if err != nil {
			return errorResult(fmt.Sprintf("Reconstruction error: %v", err)), nil
		}

		holding, ok := portfolio.Holding(isin)
		if !ok {
			return errorResult(fmt.Sprintf("No operations recorded for %s", isin)), nil
		}

		report, err := a.Valuation.EvaluateHolding(security, holding, state.Operations.Operations(isin), state.Quotes)
		if err != nil {
			return errorResult(fmt.Sprintf("Evaluation error: %v", err)), nil
		}

		return textResult(formatHoldingReport(report)), nil
	}
}

// handleListSecurities implements the list_securities tool
func handleListSecurities(a *app.App) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		state, err := a.LoadState()
		if err != nil {
			return errorResult(fmt.Sprintf("Error loading application data: %v", err)), nil
		}

		securities := state.Securities.All()
		if len(securities) == 0 {
			return textResult("No securities stored."), nil
		}

		var sb strings.Builder
		for _, s := range securities {
			fmt.Fprintf(&sb, "- %s (ISIN: %s, NSIN: %s, %s)\n", s.Name, s.ISIN, s.NSIN, s.CountryCode)
		}
		return textResult(sb.String()), nil
	}
}

func formatHoldingReport(report *valuation.HoldingReport) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%s (%s)\n", report.Name, report.ISIN)
	fmt.Fprintf(&sb, "Shares: %.4f\n", report.Shares)
	fmt.Fprintf(&sb, "Cost basis: %s (avg %s per share)\n",
		valuation.FormatCurrency(report.TotalCostBasis), valuation.FormatCurrency(report.AveragePricePerShare))
	fmt.Fprintf(&sb, "Realized gains: %s\n", valuation.FormatCurrency(report.RealizedGains))
	fmt.Fprintf(&sb, "Dividends: %s (taxes %s)\n",
		valuation.FormatCurrency(report.Dividends), valuation.FormatCurrency(report.DividendTaxes))
	if report.LatestQuote != nil {
		fmt.Fprintf(&sb, "Latest quote: %s @ %s\n",
			valuation.FormatCurrency(report.LatestQuote.Price), common.FormatNormalizedDate(report.LatestQuote.Date))
		fmt.Fprintf(&sb, "Current value: %s\n", valuation.FormatCurrency(report.CurrentValue))
	}
	fmt.Fprintf(&sb, "XIRR: %s (gross), %s (net)\n",
		valuation.FormatPercent(report.XIRRGross), valuation.FormatPercent(report.XIRRNet))

	return sb.String()
}

// Helper functions

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(text),
		},
	}
}

func errorResult(message string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(message),
		},
		IsError: true,
	}
}
