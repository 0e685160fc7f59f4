package sim

import (
	"sort"

	"craps-sim-backend/internal/models"
)

// Quantile picks the nearest-rank order statistic: index floor(q*(n-1))
// into the sorted values. No interpolation; for 10 values q=0.5 lands
// on the 5th smallest.
func Quantile(sorted []int, q float64) int {
	if len(sorted) == 0 {
		panic("quantile of an empty sample")
	}
	idx := int(q * float64(len(sorted)-1))
	return sorted[idx]
}

// QuantileTable sorts a copy of values and evaluates every requested
// quantile against it.
func QuantileTable(values []int, qs []float64) []models.QuantileValue {
	sorted := append([]int(nil), values...)
	sort.Ints(sorted)

	rows := make([]models.QuantileValue, 0, len(qs))
	for _, q := range qs {
		rows = append(rows, models.QuantileValue{Q: q, Value: Quantile(sorted, q)})
	}
	return rows
}
