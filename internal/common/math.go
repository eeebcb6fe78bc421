package common

import "math"

// FloatTolerance is the global threshold for floating-point comparison.
// It is threaded through every numeric-equality decision in the ledger so
// the policy stays auditable in one place.
const FloatTolerance = 1e-6

// IsEffectivelyZero reports whether num is zero within FloatTolerance.
func IsEffectivelyZero(num float64) bool {
	return math.Abs(num) < FloatTolerance
}

// AreEffectivelyEqual reports whether a and b differ by less than
// FloatTolerance.
func AreEffectivelyEqual(a, b float64) bool {
	return IsEffectivelyZero(a - b)
}

// RoundCurrency rounds a monetary amount to two decimal places.
func RoundCurrency(amount float64) float64 {
	return math.Round(amount*100) / 100
}
