package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/csfin/portfolio/internal/clients/comdirect"
	"github.com/csfin/portfolio/internal/common"
	"github.com/csfin/portfolio/internal/ledger"
	"github.com/csfin/portfolio/internal/services/valuation"
)

// Run executes one batch pass: load the snapshot, fold in the raw data
// feeds, evaluate and print the portfolio, render charts, and save the
// updated snapshot.
func (a *App) Run(ctx context.Context) error {
	runID := uuid.NewString()
	log := a.Logger.With().Str("run", runID).Logger()

	log.Info().Str("data", a.Store.DataPath()).Msg("starting batch run")

	state, err := a.LoadState()
	if err != nil {
		return fmt.Errorf("loading application data: %w", err)
	}

	if err := a.applyUpdates(state); err != nil {
		return fmt.Errorf("applying raw data updates: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	report, err := a.Evaluate(state, time.Now())
	if err != nil {
		return fmt.Errorf("evaluating portfolio: %w", err)
	}
	fmt.Fprintln(a.Out, report.String())

	a.renderCharts(state)

	if err := a.Store.SaveSnapshot(state.Snapshot()); err != nil {
		return fmt.Errorf("saving application data: %w", err)
	}

	log.Info().Msg("batch run finished")
	return nil
}

// Evaluate reconstructs the portfolio from the state and produces the
// full report.
func (a *App) Evaluate(state *State, now time.Time) (*valuation.PortfolioReport, error) {
	portfolio, err := ledger.ReconstructPortfolio(state.Securities, state.Operations, a.Logger)
	if err != nil {
		return nil, err
	}
	return a.Valuation.EvaluatePortfolio(state.Securities, portfolio, state.Operations, state.Quotes, now), nil
}

func (a *App) applyUpdates(state *State) error {
	if err := a.applySecurities(state); err != nil {
		return err
	}
	if err := a.applyTransactions(state); err != nil {
		return err
	}
	if err := a.applyTaxes(state); err != nil {
		return err
	}
	if err := a.applyDividends(state); err != nil {
		return err
	}
	if err := a.applySplits(state); err != nil {
		return err
	}
	return a.applyQuotes(state)
}

func (a *App) applySecurities(state *State) error {
	securities, err := a.Store.SecuritiesFeed()
	if errors.Is(err, os.ErrNotExist) {
		a.Logger.Debug().Msg("no stock metadata feed, skipping")
		return nil
	}
	if err != nil {
		return err
	}

	for _, security := range securities {
		if err := state.Securities.Add(security); err != nil {
			return fmt.Errorf("stock metadata feed: %w", err)
		}
	}
	return nil
}

func (a *App) applyTransactions(state *State) error {
	exports, err := a.Store.TransactionExports()
	if err != nil {
		return err
	}

	raw := comdirect.NewRawTransactionRepository()
	for _, export := range exports {
		txs, err := comdirect.ParseTransactionData(export)
		if err != nil {
			return err
		}
		raw.AddAll(txs)
	}

	var added int
	for _, isin := range raw.ISINs() {
		if !state.Securities.HasISIN(isin) {
			// transactions for untracked securities are left alone
			continue
		}
		for _, tx := range raw.Transactions(isin) {
			op, err := comdirect.ToOperation(tx)
			if err != nil {
				return err
			}
			if state.Operations.Add(isin, op) {
				added++
			}
		}
	}

	if added > 0 {
		a.Logger.Info().Int("count", added).Msg("added transactions from raw exports")
	}
	return nil
}

func (a *App) applyTaxes(state *State) error {
	taxes, err := a.Store.TaxFeed()
	if errors.Is(err, os.ErrNotExist) {
		a.Logger.Debug().Msg("no tax data feed, skipping")
		return nil
	}
	if err != nil {
		return err
	}
	state.Taxes = taxes
	return nil
}

func (a *App) applyDividends(state *State) error {
	records, err := a.Store.DividendsFeed()
	if errors.Is(err, os.ErrNotExist) {
		a.Logger.Debug().Msg("no dividend feed, skipping")
		return nil
	}
	if err != nil {
		return err
	}

	for _, record := range records {
		security, ok := state.Securities.GetByISIN(record.ISIN)
		if !ok {
			a.Logger.Warn().Str("isin", record.ISIN).Msg("dividend feed references unknown security, skipping")
			continue
		}

		rate, _ := state.Taxes.Rate(security.CountryCode)
		for _, entry := range record.Dividends {
			date, err := common.ParseDate(entry.Date)
			if err != nil {
				return fmt.Errorf("dividend feed for %s: %w", record.ISIN, err)
			}

			taxes := valuation.EffectiveDividendTax(rate, entry.DividendPerShare, entry.Shares, entry.ExchangeRate)
			op, err := ledger.NewDividend(date, entry.DividendPerShare, entry.Shares, taxes, entry.ExchangeRate)
			if err != nil {
				return fmt.Errorf("dividend feed for %s: %w", record.ISIN, err)
			}
			state.Operations.Add(record.ISIN, op)
		}
	}
	return nil
}

func (a *App) applySplits(state *State) error {
	splits, err := a.Store.SplitsFeed()
	if errors.Is(err, os.ErrNotExist) {
		a.Logger.Debug().Msg("no stock split feed, skipping")
		return nil
	}
	if err != nil {
		return err
	}

	for isin, entries := range splits {
		for _, entry := range entries {
			date, err := common.ParseDate(entry.SplitDate)
			if err != nil {
				return fmt.Errorf("split feed for %s: %w", isin, err)
			}
			op, err := ledger.NewStockSplit(date, entry.SplitRatio)
			if err != nil {
				return fmt.Errorf("split feed for %s: %w", isin, err)
			}
			state.Operations.Add(isin, op)
		}
	}
	return nil
}

func (a *App) applyQuotes(state *State) error {
	exports, err := a.Store.QuoteExports()
	if err != nil {
		return err
	}

	for _, export := range exports {
		data, err := comdirect.ParseQuoteData(export)
		if err != nil {
			return err
		}

		security, ok := state.Securities.GetByNSIN(data.NSIN)
		if !ok {
			a.Logger.Warn().Str("nsin", data.NSIN).Msg("quote export for unknown security, skipping")
			continue
		}

		items, err := comdirect.ToQuoteItems(data)
		if err != nil {
			return err
		}
		state.Quotes.AddAll(security.ISIN, items)
	}
	return nil
}

// renderCharts writes a price chart per open holding with enough quote
// history. Chart failures are reported but never fail the run.
func (a *App) renderCharts(state *State) {
	portfolio, err := ledger.ReconstructPortfolio(state.Securities, state.Operations, a.Logger)
	if err != nil {
		a.Logger.Warn().Err(err).Msg("skipping charts, portfolio reconstruction failed")
		return
	}

	for _, holding := range portfolio.OpenHoldings() {
		series := state.Quotes.Series(holding.ISIN)
		if len(series) < 2 {
			continue
		}

		security, _ := state.Securities.GetByISIN(holding.ISIN)
		png, err := valuation.RenderQuoteChart(security.Name, series, holding.AveragePricePerShare())
		if err != nil {
			a.Logger.Warn().Err(err).Str("isin", holding.ISIN).Msg("chart rendering failed")
			continue
		}
		if err := a.Store.WriteChart(holding.ISIN, png); err != nil {
			a.Logger.Warn().Err(err).Str("isin", holding.ISIN).Msg("chart write failed")
		}
	}
}
