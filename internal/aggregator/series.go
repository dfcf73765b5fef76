package aggregator

import (
	"sort"
	"time"

	"hydromap/internal/types"
)

type SeriesPoint struct {
	Index          int       `json:"index"`
	Efficiency     float64   `json:"efficiency"`
	ProductionRate float64   `json:"productionRate"`
	Timestamp      time.Time `json:"timestamp"`
}

// WindowedSeries keeps the windowSize most recent samples and returns them
// oldest first, indexed from 1. Input order does not matter.
func WindowedSeries(samples []types.PlantPerformanceSample, windowSize int) []SeriesPoint {
	if windowSize <= 0 || len(samples) == 0 {
		return []SeriesPoint{}
	}
	recent := make([]types.PlantPerformanceSample, len(samples))
	copy(recent, samples)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].Timestamp.After(recent[j].Timestamp)
	})
	if windowSize < len(recent) {
		recent = recent[:windowSize]
	}

	out := make([]SeriesPoint, len(recent))
	for i := range recent {
		s := recent[len(recent)-1-i]
		out[i] = SeriesPoint{
			Index:          i + 1,
			Efficiency:     types.Finite(s.Efficiency),
			ProductionRate: types.Finite(s.ProductionRate),
			Timestamp:      s.Timestamp,
		}
	}
	return out
}

// AverageSampleEfficiency is the mean sample efficiency, 0 for no samples.
func AverageSampleEfficiency(samples []types.PlantPerformanceSample) float64 {
	if len(samples) == 0 {
		return 0
	}
	sum := 0.0
	for _, s := range samples {
		sum += types.Finite(s.Efficiency)
	}
	return sum / float64(len(samples))
}

type PlantPerformance struct {
	PlantID                string  `json:"plantId"`
	PlantName              string  `json:"plantName"`
	Samples                int     `json:"samples"`
	AverageEfficiency      float64 `json:"averageEfficiency"`
	TotalProduction        float64 `json:"totalProduction"`
	TotalEnergyConsumption float64 `json:"totalEnergyConsumption"`
}

// PerformanceByPlant rolls samples up per plant id, in order of first sample.
// Plant names are looked up in assets; ids with no asset are named "Unknown".
func PerformanceByPlant(samples []types.PlantPerformanceSample, assets []types.InfrastructureAsset) []PlantPerformance {
	names := make(map[string]string, len(assets))
	for _, a := range assets {
		names[a.ID] = a.Name
	}

	index := map[string]int{}
	out := []PlantPerformance{}
	for _, s := range samples {
		i, ok := index[s.PlantID]
		if !ok {
			name, found := names[s.PlantID]
			if !found {
				name = types.Unknown
			}
			i = len(out)
			index[s.PlantID] = i
			out = append(out, PlantPerformance{PlantID: s.PlantID, PlantName: name})
		}
		p := &out[i]
		p.Samples++
		p.AverageEfficiency += types.Finite(s.Efficiency)
		p.TotalProduction += types.Finite(s.ProductionRate)
		p.TotalEnergyConsumption += types.Finite(s.EnergyConsumption)
	}
	for i := range out {
		out[i].AverageEfficiency /= float64(out[i].Samples)
	}
	return out
}
