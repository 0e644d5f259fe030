package utils

import "math"

// RoundCurrency rounds a monetary amount half-up to cents, matching
// the settlement side of the platform.
func RoundCurrency(amount float64) float64 {
	return math.Round(amount*100) / 100
}

// CalculateTip returns the tip for a percentage of the amount, rounded
// to cents.
func CalculateTip(amount float64, tipPercentage float64) float64 {
	return RoundCurrency(amount * (tipPercentage / 100))
}
