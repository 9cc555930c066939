// Package average accumulates weighted samples and reports their
// weight-normalized mean.
package average

import "github.com/shopspring/decimal"

// WeightedAverage accumulates (value, weight) samples. The zero value is
// ready to use.
type WeightedAverage struct {
	weightedSum decimal.Decimal
	totalWeight decimal.Decimal
	samples     int
}

// Add appends a sample. Zero-weight samples are accepted: they contribute
// nothing to the mean but are still counted.
func (w *WeightedAverage) Add(value, weight decimal.Decimal) {
	w.weightedSum = w.weightedSum.Add(value.Mul(weight))
	w.totalWeight = w.totalWeight.Add(weight)
	w.samples++
}

// Average returns the weighted mean of the added samples. The second return
// is false when there is no data: no samples were added, or the total
// weight is zero.
func (w *WeightedAverage) Average() (decimal.Decimal, bool) {
	if w.samples == 0 || w.totalWeight.IsZero() {
		return decimal.Zero, false
	}
	return w.weightedSum.Div(w.totalWeight), true
}
