// Package app wires the stores and services together and drives the
// batch update-evaluate-save pipeline.
package app

import (
	"fmt"
	"io"
	"os"

	"github.com/csfin/portfolio/internal/common"
	"github.com/csfin/portfolio/internal/interfaces"
	"github.com/csfin/portfolio/internal/ledger"
	"github.com/csfin/portfolio/internal/models"
	"github.com/csfin/portfolio/internal/services/valuation"
	"github.com/csfin/portfolio/internal/storage/appfs"
)

// App holds the wired components of one application instance.
type App struct {
	Config    *common.Config
	Logger    *common.Logger
	Store     interfaces.SnapshotStore
	Valuation *valuation.Service

	// Out receives the printed evaluation report.
	Out io.Writer
}

// NewApp builds an application from its configuration.
func NewApp(config *common.Config) (*App, error) {
	logger := common.NewLogger(config.Logging.Level)

	store, err := appfs.NewStore(logger, config.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to open application store: %w", err)
	}

	return &App{
		Config:    config,
		Logger:    logger,
		Store:     store,
		Valuation: valuation.NewService(logger),
		Out:       os.Stdout,
	}, nil
}

// State is the in-memory form of the persisted snapshot.
type State struct {
	Securities *models.SecurityRepository
	Operations *ledger.OperationRepository
	Quotes     *models.QuoteRepository
	Taxes      *models.TaxData
}

// LoadState reads the snapshot and rebuilds the repositories from it.
func (a *App) LoadState() (*State, error) {
	snapshot, err := a.Store.LoadSnapshot()
	if err != nil {
		return nil, err
	}
	return a.stateFromSnapshot(snapshot)
}

func (a *App) stateFromSnapshot(snapshot *models.Snapshot) (*State, error) {
	securities := models.NewSecurityRepository()
	for _, security := range snapshot.Securities {
		if err := securities.Add(security); err != nil {
			return nil, fmt.Errorf("snapshot security %s: %w", security.ISIN, err)
		}
	}

	operations, err := ledger.RepositoryFromRecords(snapshot.Operations)
	if err != nil {
		return nil, err
	}

	return &State{
		Securities: securities,
		Operations: operations,
		Quotes:     models.QuoteRepositoryFromMap(snapshot.Quotes),
		Taxes:      snapshot.TaxData,
	}, nil
}

// Snapshot flattens the state back into its persisted form.
func (s *State) Snapshot() *models.Snapshot {
	snapshot := models.NewSnapshot()
	snapshot.Securities = s.Securities.All()
	snapshot.Operations = s.Operations.ToRecords()
	snapshot.Quotes = s.Quotes.ToMap()
	snapshot.TaxData = s.Taxes
	return snapshot
}
