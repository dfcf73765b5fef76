package aggregator

import (
	"sort"

	"hydromap/internal/types"
)

// TopN returns a copy of items sorted by descending key, cut to n. Ties keep
// their input order. n <= 0 gives an empty slice.
func TopN[T any](items []T, key func(T) float64, n int) []T {
	if n <= 0 {
		return []T{}
	}
	sorted := make([]T, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return types.Finite(key(sorted[i])) > types.Finite(key(sorted[j]))
	})
	if n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}

// ByCapacity and ByEfficiency are ranking keys for TopN.
func ByCapacity(a types.InfrastructureAsset) float64 { return a.Capacity }

func ByEfficiency(a types.InfrastructureAsset) float64 { return a.EfficiencyOrZero() }

func ByFundingGap(inv types.Investment) float64 { return FundingGap(inv) }
