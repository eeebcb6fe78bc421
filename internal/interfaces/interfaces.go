// Package interfaces defines the service contracts used across the
// application and the MCP server.
package interfaces

import (
	"github.com/csfin/portfolio/internal/models"
)

// SnapshotStore persists the application snapshot and exposes the raw
// data feeds next to it.
type SnapshotStore interface {
	DataPath() string
	LoadSnapshot() (*models.Snapshot, error)
	SaveSnapshot(*models.Snapshot) error

	SecuritiesFeed() ([]models.Security, error)
	DividendsFeed() ([]models.RawDividendRecord, error)
	SplitsFeed() (models.RawStockSplits, error)
	TaxFeed() (*models.TaxData, error)

	TransactionExports() ([]string, error)
	QuoteExports() ([]string, error)

	WriteChart(name string, data []byte) error
}
