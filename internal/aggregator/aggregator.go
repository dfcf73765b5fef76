// Package aggregator turns raw infrastructure, investment and performance
// records into totals, averages, groupings and rankings.
//
// Every function is total: empty input, missing optional fields and unknown
// enum values produce zero values or an "other" bucket, never a panic, NaN
// or Inf. Inputs are never mutated.
package aggregator

import (
	"sort"

	"hydromap/internal/types"
)

func FilterOperational(assets []types.InfrastructureAsset) []types.InfrastructureAsset {
	out := make([]types.InfrastructureAsset, 0, len(assets))
	for _, a := range assets {
		if a.IsOperational() {
			out = append(out, a)
		}
	}
	return out
}

// TotalCapacity sums capacity (tonnes/day) over operational assets.
func TotalCapacity(assets []types.InfrastructureAsset) float64 {
	total := 0.0
	for _, a := range assets {
		if a.IsOperational() {
			total += types.Finite(a.Capacity)
		}
	}
	return total
}

// AverageEfficiency is the mean efficiency of operational assets, with a
// missing efficiency counted as 0. No operational assets means 0.
func AverageEfficiency(assets []types.InfrastructureAsset) float64 {
	sum, n := 0.0, 0
	for _, a := range assets {
		if !a.IsOperational() {
			continue
		}
		sum += a.EfficiencyOrZero()
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// GroupByEnergySource counts assets per energy source. The map is sparse:
// sources with no assets are absent. Unknown sources count under "other".
func GroupByEnergySource(assets []types.InfrastructureAsset) map[string]int {
	counts := map[string]int{}
	for _, a := range assets {
		counts[a.EnergySource.Bucket()]++
	}
	return counts
}

// StatusBreakdown counts assets per status, sparse like GroupByEnergySource.
func StatusBreakdown(assets []types.InfrastructureAsset) map[string]int {
	counts := map[string]int{}
	for _, a := range assets {
		counts[a.Status.Bucket()]++
	}
	return counts
}

type SourceShare struct {
	Source  string  `json:"source"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// sourceOrder fixes the listing order of the energy mix.
var sourceOrder = []string{
	string(types.SourceSolar),
	string(types.SourceWind),
	string(types.SourceTidal),
	string(types.SourceMixed),
	types.Other,
}

// EnergySourceMix lists the non-zero buckets of GroupByEnergySource with their
// share of all assets, in a fixed source order.
func EnergySourceMix(assets []types.InfrastructureAsset) []SourceShare {
	counts := GroupByEnergySource(assets)
	out := make([]SourceShare, 0, len(counts))
	for _, src := range sourceOrder {
		c, ok := counts[src]
		if !ok {
			continue
		}
		out = append(out, SourceShare{
			Source:  src,
			Count:   c,
			Percent: percentOf(float64(c), float64(len(assets))),
		})
	}
	return out
}

type RegionSummary struct {
	Region          string  `json:"region"`
	PlantCount      int     `json:"plantCount"`
	TotalCapacity   float64 `json:"totalCapacity"`
	TotalInvestment float64 `json:"totalInvestment"`
}

// GroupByRegion groups assets and investments by location.state ("Unknown"
// when absent). Every asset counts regardless of status. Regions are listed by
// descending total capacity; equal capacities keep first-appearance order,
// assets before investments.
func GroupByRegion(assets []types.InfrastructureAsset, investments []types.Investment) []RegionSummary {
	index := map[string]int{}
	var out []RegionSummary
	region := func(name string) *RegionSummary {
		i, ok := index[name]
		if !ok {
			i = len(out)
			index[name] = i
			out = append(out, RegionSummary{Region: name})
		}
		return &out[i]
	}

	for _, a := range assets {
		r := region(a.Location.Region())
		r.PlantCount++
		r.TotalCapacity += types.Finite(a.Capacity)
	}
	for _, inv := range investments {
		r := region(inv.Location.Region())
		r.TotalInvestment += types.Finite(inv.AmountRequired)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TotalCapacity > out[j].TotalCapacity
	})
	if out == nil {
		return []RegionSummary{}
	}
	return out
}

type MapPoint struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Type      types.AssetType   `json:"type"`
	Status    types.AssetStatus `json:"status"`
	Latitude  float64           `json:"latitude"`
	Longitude float64           `json:"longitude"`
	City      string            `json:"city,omitempty"`
	Capacity  float64           `json:"capacity"`
}

// SpatialPoints returns map markers for assets with usable coordinates.
func SpatialPoints(assets []types.InfrastructureAsset) []MapPoint {
	out := make([]MapPoint, 0, len(assets))
	for _, a := range assets {
		if !a.Location.HasCoordinates() {
			continue
		}
		out = append(out, MapPoint{
			ID:        a.ID,
			Name:      a.Name,
			Type:      a.Type,
			Status:    a.Status,
			Latitude:  *a.Location.Latitude,
			Longitude: *a.Location.Longitude,
			City:      a.Location.City,
			Capacity:  types.Finite(a.Capacity),
		})
	}
	return out
}

func percentOf(part, whole float64) float64 {
	if whole == 0 {
		return 0
	}
	return types.Finite(100 * part / whole)
}
