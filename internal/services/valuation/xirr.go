package valuation

import (
	"math"

	"github.com/csfin/portfolio/internal/common"
)

const (
	secondsPerYear = 365 * 24 * 3600
	maxIterations  = 100
)

// SolveXIRR finds the annualized rate at which the net present value
// of the cash flows is zero, by bisection over an expanding bracket.
// Returns NaN when no sign change can be bracketed; when the iteration
// budget runs out the last midpoint is returned as a best effort. Both
// conditions are logged as warnings, never raised as errors.
func SolveXIRR(flows []CashFlow, log *common.Logger) float64 {
	if log == nil {
		log = common.NewSilentLogger()
	}
	if len(flows) == 0 {
		return math.NaN()
	}

	start := flows[0].Date

	npv := func(rate float64) float64 {
		var total float64
		for _, f := range flows {
			years := f.Date.Sub(start).Seconds() / secondsPerYear
			total += f.Amount / math.Pow(1+rate, years)
		}
		return total
	}

	low := -0.999999
	high := 10.0

	if npv(low)*npv(high) > 0 {
		found := false

		tempLow := low
		for i := 0; i < 50 && !found; i++ {
			tempLow *= 2
			if npv(tempLow)*npv(high) <= 0 {
				low = tempLow
				found = true
			}
		}

		if !found {
			tempHigh := high
			for i := 0; i < 50 && !found; i++ {
				tempHigh *= 2
				if npv(low)*npv(tempHigh) <= 0 {
					high = tempHigh
					found = true
				}
			}
		}

		if !found {
			log.Warn().Msg("could not bracket an XIRR root, result is NaN")
			return math.NaN()
		}
	}

	var rate float64
	for i := 0; i < maxIterations; i++ {
		rate = (low + high) / 2
		value := npv(rate)

		if common.IsEffectivelyZero(value) {
			return rate
		}

		if value > 0 {
			low = rate
		} else {
			high = rate
		}
	}

	log.Warn().Float64("rate", rate).Msg("XIRR did not converge within the iteration budget")
	return rate
}
