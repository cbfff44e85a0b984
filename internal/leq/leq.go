// Package leq computes equivalent continuous sound levels over fixed
// 900-second blocks of 1-second decibel samples.
//
// Sound levels in dB must be converted to power, averaged, then converted
// back; an arithmetic mean of the dB values themselves would understate
// loud periods.
package leq

import (
	"math"
)

// SecondsPerBlock is the fixed aggregation window: 900 s, "Leq15".
const SecondsPerBlock = 900

// Leq returns the equivalent continuous level for a list of sound pressure
// levels (dBA, dBC, etc.).
//
// Degenerate cases: an empty list yields NaN. A linear energy sum of exactly
// zero yields -Inf when some input level was -Inf, otherwise NaN; finite
// levels small enough to underflow to zero energy are indistinguishable from
// an empty signal here, and the NaN is kept rather than guessed into -Inf.
// Levels large enough to overflow the exponentiation yield +Inf.
func Leq(levels []float64) float64 {
	if len(levels) == 0 {
		return math.NaN()
	}

	var linearSum float64
	for _, level := range levels {
		// Convert dB to power: power = 10^(dB/10)
		linearSum += math.Pow(10, level/10.0)
	}

	if linearSum == 0 {
		for _, level := range levels {
			if math.IsInf(level, -1) {
				return math.Inf(-1)
			}
		}
		return math.NaN()
	}

	meanLinear := linearSum / float64(len(levels))

	// Convert back to dB: dB = 10 * log10(power)
	return 10 * math.Log10(meanLinear)
}

// RoundToDecimalPlaces rounds a float64 to the specified number of decimal
// places. NaN and infinities pass through unchanged.
func RoundToDecimalPlaces(value float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Round(value*factor) / factor
}
