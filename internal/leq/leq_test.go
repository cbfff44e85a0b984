package leq

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLeqConstantSignal(t *testing.T) {
	tests := []struct {
		name  string
		level float64
		count int
	}{
		{name: "quiet", level: 35.0, count: 10},
		{name: "moderate", level: 60.0, count: 900},
		{name: "loud", level: 95.5, count: 3},
		{name: "negative", level: -12.25, count: 100},
		{name: "single sample", level: 52.3, count: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			levels := make([]float64, tt.count)
			for i := range levels {
				levels[i] = tt.level
			}
			assert.InDelta(t, tt.level, Leq(levels), 1e-9,
				"Leq of a constant signal should equal the constant")
		})
	}
}

func TestLeqEmptyInput(t *testing.T) {
	assert.True(t, math.IsNaN(Leq(nil)))
	assert.True(t, math.IsNaN(Leq([]float64{})))
}

func TestLeqDominatedByLoudest(t *testing.T) {
	// Energy averaging: one loud second outweighs many quiet ones.
	levels := []float64{90}
	for i := 0; i < 99; i++ {
		levels = append(levels, 40)
	}
	got := Leq(levels)
	assert.Greater(t, got, 69.0)
	assert.Less(t, got, 90.0)

	// Reference value: 10*log10((10^9 + 99*10^4)/100)
	want := 10 * math.Log10((math.Pow(10, 9)+99*math.Pow(10, 4))/100)
	assert.InDelta(t, want, got, 1e-9)
}

func TestLeqMonotonic(t *testing.T) {
	a := []float64{50, 60, 70, 80}
	b := []float64{45, 60, 65, 80}
	assert.GreaterOrEqual(t, Leq(a), Leq(b))
}

func TestLeqNegativeInfinity(t *testing.T) {
	negInf := math.Inf(-1)

	// All -Inf levels carry zero energy; result is -Inf, not NaN.
	assert.True(t, math.IsInf(Leq([]float64{negInf, negInf}), -1))

	// A -Inf level mixed with finite levels contributes zero energy but
	// still counts toward the averaging denominator.
	want := 10 * math.Log10(2*math.Pow(10, 6)/3)
	assert.InDelta(t, want, Leq([]float64{60, negInf, 60}), 1e-9)
}

func TestLeqUnderflowToZeroEnergyIsNaN(t *testing.T) {
	// Finite but absurdly small levels underflow to zero linear energy.
	// The result stays NaN; it is not promoted to -Inf.
	levels := []float64{-100000, -100000}
	assert.True(t, math.IsNaN(Leq(levels)))
}

func TestLeqOverflowIsPositiveInfinity(t *testing.T) {
	levels := []float64{1e300, 50}
	assert.True(t, math.IsInf(Leq(levels), 1))
}

func TestRoundToDecimalPlaces(t *testing.T) {
	tests := []struct {
		name   string
		value  float64
		places int
		want   float64
	}{
		{name: "round down", value: 52.3041, places: 2, want: 52.30},
		{name: "round up", value: 52.305, places: 2, want: 52.31},
		{name: "negative", value: -3.14159, places: 2, want: -3.14},
		{name: "zero places", value: 59.7, places: 0, want: 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, RoundToDecimalPlaces(tt.value, tt.places), 1e-9)
		})
	}

	assert.True(t, math.IsNaN(RoundToDecimalPlaces(math.NaN(), 2)))
	assert.True(t, math.IsInf(RoundToDecimalPlaces(math.Inf(1), 2), 1))
}
