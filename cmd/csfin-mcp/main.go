package main

import (
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/csfin/portfolio/internal/app"
	"github.com/csfin/portfolio/internal/common"
)

func main() {
	common.LoadVersionFromFile()

	var paths []string
	if configPath := os.Getenv("CSFIN_CONFIG"); configPath != "" {
		paths = append(paths, configPath)
	}

	config, err := common.LoadConfig(paths...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	a, err := app.NewApp(config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize app: %v\n", err)
		os.Exit(1)
	}

	mcpServer := server.NewMCPServer(
		"csfin",
		common.GetVersion(),
		server.WithToolCapabilities(true),
	)
	registerTools(mcpServer, a)

	a.Logger.Info().Str("version", common.GetVersion()).Msg("MCP server listening on stdio")

	if err := server.ServeStdio(mcpServer); err != nil {
		a.Logger.Error().Err(err).Msg("MCP server stopped")
		os.Exit(1)
	}
}

// registerTools adds every tool definition with its handler.
func registerTools(s *server.MCPServer, a *app.App) {
	s.AddTool(createGetVersionTool(), handleGetVersion())
	s.AddTool(createEvaluatePortfolioTool(), handleEvaluatePortfolio(a))
	s.AddTool(createGetHoldingTool(), handleGetHolding(a))
	s.AddTool(createListSecuritiesTool(), handleListSecurities(a))
}
