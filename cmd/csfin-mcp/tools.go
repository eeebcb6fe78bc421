package main

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// createGetVersionTool returns the get_version tool definition
func createGetVersionTool() mcp.Tool {
	return mcp.NewTool("get_version",
		mcp.WithDescription("Get the csfin MCP server version and status. Use this to verify connectivity."),
	)
}

// createEvaluatePortfolioTool returns the evaluate_portfolio tool definition
func createEvaluatePortfolioTool() mcp.Tool {
	return mcp.NewTool("evaluate_portfolio",
		mcp.WithDescription("Evaluate the full portfolio: per-holding cost basis, realized gains, dividends, current value, and annualized returns (XIRR, gross and net)."),
	)
}

// createGetHoldingTool returns the get_holding tool definition
func createGetHoldingTool() mcp.Tool {
	return mcp.NewTool("get_holding",
		mcp.WithDescription("Get the replayed state and annualized returns of a single holding."),
		mcp.WithString("isin",
			mcp.Required(),
			mcp.Description("ISIN of the security (e.g., 'US0378331005')"),
		),
	)
}

// createListSecuritiesTool returns the list_securities tool definition
func createListSecuritiesTool() mcp.Tool {
	return mcp.NewTool("list_securities",
		mcp.WithDescription("List the securities in the security master with their identifiers."),
	)
}
