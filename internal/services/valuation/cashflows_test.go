package valuation

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/csfin/portfolio/internal/ledger"
	"github.com/csfin/portfolio/internal/models"
)

func buyOp(t *testing.T, y, m, d int, shares, price, fees float64) ledger.Operation {
	t.Helper()
	op, err := ledger.NewBuy(date(y, time.Month(m), d), shares, price, fees)
	if err != nil {
		t.Fatal(err)
	}
	return op
}

func sellOp(t *testing.T, y, m, d int, shares, price, fees, taxes float64) ledger.Operation {
	t.Helper()
	op, err := ledger.NewSell(date(y, time.Month(m), d), shares, price, fees, taxes)
	if err != nil {
		t.Fatal(err)
	}
	return op
}

func TestCashFlowsForHolding_GrossVersusNet(t *testing.T) {
	ops := []ledger.Operation{
		buyOp(t, 2024, 1, 1, 10, 100, 5),
		sellOp(t, 2024, 6, 1, 10, 120, 8, 12),
	}

	gross, err := CashFlowsForHolding(ops, EvalGross, nil)
	if err != nil {
		t.Fatal(err)
	}
	if gross[0].Amount != -1000 || gross[1].Amount != 1200 {
		t.Errorf("gross flows = %v, want [-1000, 1200]", gross)
	}

	net, err := CashFlowsForHolding(ops, EvalNet, nil)
	if err != nil {
		t.Fatal(err)
	}
	if net[0].Amount != -1005 || net[1].Amount != 1180 {
		t.Errorf("net flows = %v, want [-1005, 1180]", net)
	}
}

func TestCashFlowsForHolding_OpenPositionNeedsQuote(t *testing.T) {
	ops := []ledger.Operation{
		buyOp(t, 2024, 1, 1, 10, 100, 0),
	}

	_, err := CashFlowsForHolding(ops, EvalGross, nil)
	if !errors.Is(err, ErrMissingQuote) {
		t.Errorf("err = %v, want ErrMissingQuote", err)
	}

	quote := models.NewQuoteItem(date(2024, 12, 31), 130)
	flows, err := CashFlowsForHolding(ops, EvalGross, &quote)
	if err != nil {
		t.Fatal(err)
	}
	last := flows[len(flows)-1]
	if last.Amount != 1300 || !last.Date.Equal(quote.Date) {
		t.Errorf("terminal flow = %+v, want 1300 at quote date", last)
	}
}

func TestCashFlowsForHolding_SplitScalesTerminalShares(t *testing.T) {
	split, err := ledger.NewStockSplit(date(2024, 3, 1), 2)
	if err != nil {
		t.Fatal(err)
	}
	ops := []ledger.Operation{
		buyOp(t, 2024, 1, 1, 10, 100, 0),
		split,
	}

	quote := models.NewQuoteItem(date(2024, 12, 31), 60)
	flows, err := CashFlowsForHolding(ops, EvalGross, &quote)
	if err != nil {
		t.Fatal(err)
	}

	// Splits move no cash themselves: one buy flow plus the terminal
	// flow over the doubled share count.
	if len(flows) != 2 {
		t.Fatalf("len(flows) = %d, want 2", len(flows))
	}
	if flows[1].Amount != 1200 {
		t.Errorf("terminal flow = %v, want 20 shares * 60", flows[1].Amount)
	}
}

func TestCashFlowsForHolding_DividendConversion(t *testing.T) {
	div, err := ledger.NewDividend(date(2024, 1, 20), 0.26, 100, 3.9, 1.04)
	if err != nil {
		t.Fatal(err)
	}
	ops := []ledger.Operation{
		buyOp(t, 2024, 1, 1, 100, 50, 0),
		sellOp(t, 2024, 2, 1, 100, 55, 0, 0),
		div,
	}

	net, err := CashFlowsForHolding(ops, EvalNet, nil)
	if err != nil {
		t.Fatal(err)
	}

	// Sorted by date, the dividend flow sits in the middle.
	if math.Abs(net[1].Amount-(25-3.9)) > 1e-9 {
		t.Errorf("dividend flow = %v, want 21.1", net[1].Amount)
	}
}

func TestCashFlowsForHolding_EmptyOps(t *testing.T) {
	_, err := CashFlowsForHolding(nil, EvalGross, nil)
	if !errors.Is(err, ErrNoOperations) {
		t.Errorf("err = %v, want ErrNoOperations", err)
	}
}

func TestCashFlowsForPortfolio_AppendsTerminalValue(t *testing.T) {
	repo := ledger.NewOperationRepository()
	repo.Add("US0378331005", buyOp(t, 2024, 1, 1, 10, 100, 0))
	repo.Add("DE0007164600", buyOp(t, 2024, 2, 1, 5, 200, 0))

	now := date(2024, 12, 31)
	flows, err := CashFlowsForPortfolio(repo, EvalGross, 2500, now)
	if err != nil {
		t.Fatal(err)
	}

	if len(flows) != 3 {
		t.Fatalf("len(flows) = %d, want 3", len(flows))
	}
	last := flows[len(flows)-1]
	if last.Amount != 2500 || !last.Date.Equal(now) {
		t.Errorf("terminal flow = %+v, want 2500 at %v", last, now)
	}
}

func TestEffectiveDividendTax(t *testing.T) {
	// 15% withholding plus the domestic top-up on a 100 gross payout.
	got := EffectiveDividendTax(0.15, 1, 100, 1)
	if math.Abs(got-25.55) > 1e-9 {
		t.Errorf("tax = %v, want 25.55", got)
	}

	if got := EffectiveDividendTax(0, 1, 100, 1); got != 0 {
		t.Errorf("tax = %v, want 0 without a withholding rate", got)
	}
}
