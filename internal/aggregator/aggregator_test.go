package aggregator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hydromap/internal/types"
)

func asset(id string, status types.AssetStatus, eff *float64, capacity float64) types.InfrastructureAsset {
	return types.InfrastructureAsset{
		ID:           id,
		Name:         "Plant " + id,
		Type:         types.AssetPlant,
		Status:       status,
		Capacity:     capacity,
		Efficiency:   eff,
		EnergySource: types.SourceSolar,
	}
}

func inState(a types.InfrastructureAsset, state string) types.InfrastructureAsset {
	a.Location.State = state
	return a
}

func scenarioAssets() []types.InfrastructureAsset {
	return []types.InfrastructureAsset{
		asset("1", types.StatusOperational, types.Float(85), 150),
		asset("2", types.StatusOperational, types.Float(95), 50),
		asset("3", types.StatusPlanned, types.Float(99), 1000),
	}
}

func TestOperationalTotals(t *testing.T) {
	assets := scenarioAssets()

	assert.Len(t, FilterOperational(assets), 2)
	assert.Equal(t, 200.0, TotalCapacity(assets))
	assert.Equal(t, 90.0, AverageEfficiency(assets))
}

func TestEmptyInputsAreZero(t *testing.T) {
	assert.Empty(t, FilterOperational(nil))
	assert.Equal(t, 0.0, TotalCapacity(nil))
	assert.Equal(t, 0.0, AverageEfficiency(nil))
	assert.Empty(t, GroupByEnergySource(nil))
	assert.Empty(t, EnergySourceMix(nil))
	assert.NotNil(t, GroupByRegion(nil, nil))
	assert.Empty(t, GroupByRegion(nil, nil))
	assert.Empty(t, SpatialPoints(nil))
}

func TestAverageEfficiency(t *testing.T) {
	t.Run("no operational assets", func(t *testing.T) {
		assets := []types.InfrastructureAsset{
			asset("1", types.StatusPlanned, types.Float(80), 10),
			asset("2", types.StatusMaintenance, types.Float(70), 10),
		}
		avg := AverageEfficiency(assets)
		assert.Equal(t, 0.0, avg)
		assert.False(t, math.IsNaN(avg))
	})

	t.Run("missing efficiency counts as zero", func(t *testing.T) {
		assets := []types.InfrastructureAsset{
			asset("1", types.StatusOperational, types.Float(80), 10),
			asset("2", types.StatusOperational, nil, 10),
		}
		assert.Equal(t, 40.0, AverageEfficiency(assets))
	})

	t.Run("non-operational assets are ignored", func(t *testing.T) {
		assets := []types.InfrastructureAsset{
			asset("1", types.StatusOperational, types.Float(60), 10),
			asset("2", types.StatusMaintenance, types.Float(0), 10),
			asset("3", types.StatusUnderConstruction, nil, 10),
		}
		assert.Equal(t, 60.0, AverageEfficiency(assets))
	})
}

func TestTotalCapacityIsOrderIndependent(t *testing.T) {
	assets := []types.InfrastructureAsset{
		asset("1", types.StatusOperational, nil, 12.5),
		asset("2", types.StatusOperational, nil, 300),
		asset("3", types.StatusOperational, nil, 0.25),
		asset("4", types.StatusPlanned, nil, 999),
	}
	reversed := []types.InfrastructureAsset{assets[3], assets[2], assets[1], assets[0]}
	rotated := []types.InfrastructureAsset{assets[2], assets[0], assets[3], assets[1]}

	want := TotalCapacity(assets)
	assert.Equal(t, 312.75, want)
	assert.Equal(t, want, TotalCapacity(reversed))
	assert.Equal(t, want, TotalCapacity(rotated))
}

func TestNonFiniteValuesDoNotLeak(t *testing.T) {
	assets := []types.InfrastructureAsset{
		asset("1", types.StatusOperational, types.Float(math.NaN()), math.Inf(1)),
		asset("2", types.StatusOperational, types.Float(80), 10),
	}
	assert.Equal(t, 10.0, TotalCapacity(assets))
	assert.Equal(t, 40.0, AverageEfficiency(assets))
}

func TestGroupByEnergySource(t *testing.T) {
	assets := []types.InfrastructureAsset{
		{EnergySource: types.SourceSolar},
		{EnergySource: types.SourceWind},
		{EnergySource: types.SourceSolar},
		{EnergySource: "geothermal"},
		{},
	}
	got := GroupByEnergySource(assets)

	assert.Equal(t, map[string]int{"solar": 2, "wind": 1, "other": 2}, got)
	_, hasTidal := got["tidal"]
	assert.False(t, hasTidal, "zero-count sources are omitted")
}

func TestEnergySourceMix(t *testing.T) {
	assets := []types.InfrastructureAsset{
		{EnergySource: types.SourceWind},
		{EnergySource: types.SourceSolar},
		{EnergySource: types.SourceSolar},
		{EnergySource: types.SourceMixed},
	}
	mix := EnergySourceMix(assets)

	require.Len(t, mix, 3)
	assert.Equal(t, SourceShare{Source: "solar", Count: 2, Percent: 50}, mix[0])
	assert.Equal(t, SourceShare{Source: "wind", Count: 1, Percent: 25}, mix[1])
	assert.Equal(t, SourceShare{Source: "mixed", Count: 1, Percent: 25}, mix[2])
}

func TestStatusBreakdown(t *testing.T) {
	assets := []types.InfrastructureAsset{
		{Status: types.StatusOperational},
		{Status: types.StatusOperational},
		{Status: "retired"},
	}
	assert.Equal(t, map[string]int{"operational": 2, "other": 1}, StatusBreakdown(assets))
}

func TestGroupByRegion(t *testing.T) {
	t.Run("sorted by capacity with stable ties", func(t *testing.T) {
		assets := []types.InfrastructureAsset{
			inState(asset("1", types.StatusOperational, nil, 150), "Gujarat"),
			inState(asset("2", types.StatusOperational, nil, 200), "Rajasthan"),
			inState(asset("3", types.StatusPlanned, nil, 50), "Gujarat"),
		}
		got := GroupByRegion(assets, nil)

		require.Len(t, got, 2)
		assert.Equal(t, RegionSummary{Region: "Gujarat", PlantCount: 2, TotalCapacity: 200}, got[0])
		assert.Equal(t, RegionSummary{Region: "Rajasthan", PlantCount: 1, TotalCapacity: 200}, got[1])
	})

	t.Run("descending order", func(t *testing.T) {
		assets := []types.InfrastructureAsset{
			inState(asset("1", types.StatusOperational, nil, 10), "Kerala"),
			inState(asset("2", types.StatusOperational, nil, 500), "Tamil Nadu"),
			inState(asset("3", types.StatusOperational, nil, 90), "Gujarat"),
		}
		got := GroupByRegion(assets, nil)

		require.Len(t, got, 3)
		assert.Equal(t, []string{"Tamil Nadu", "Gujarat", "Kerala"},
			[]string{got[0].Region, got[1].Region, got[2].Region})
		for i := 1; i < len(got); i++ {
			assert.GreaterOrEqual(t, got[i-1].TotalCapacity, got[i].TotalCapacity)
		}
	})

	t.Run("investments and unknown state", func(t *testing.T) {
		assets := []types.InfrastructureAsset{
			inState(asset("1", types.StatusOperational, nil, 100), "Gujarat"),
			asset("2", types.StatusOperational, nil, 40),
		}
		investments := []types.Investment{
			{AmountRequired: 5e8, Location: types.Location{State: "Gujarat"}},
			{AmountRequired: 2e8, Location: types.Location{State: "Odisha"}},
			{AmountRequired: 1e8, Location: types.Location{State: "Gujarat"}},
		}
		got := GroupByRegion(assets, investments)

		require.Len(t, got, 3)
		assert.Equal(t, RegionSummary{Region: "Gujarat", PlantCount: 1, TotalCapacity: 100, TotalInvestment: 6e8}, got[0])
		assert.Equal(t, RegionSummary{Region: types.UnknownRegion, PlantCount: 1, TotalCapacity: 40}, got[1])
		assert.Equal(t, RegionSummary{Region: "Odisha", TotalInvestment: 2e8}, got[2])
	})
}

func TestSpatialPointsSkipsMissingCoordinates(t *testing.T) {
	withCoords := asset("1", types.StatusOperational, nil, 10)
	withCoords.Location = types.Location{Latitude: types.Float(22.3), Longitude: types.Float(70.8), City: "Rajkot"}
	latOnly := asset("2", types.StatusOperational, nil, 10)
	latOnly.Location = types.Location{Latitude: types.Float(22.3)}
	outOfRange := asset("3", types.StatusOperational, nil, 10)
	outOfRange.Location = types.Location{Latitude: types.Float(22.3), Longitude: types.Float(200)}

	got := SpatialPoints([]types.InfrastructureAsset{withCoords, latOnly, outOfRange})

	require.Len(t, got, 1)
	assert.Equal(t, "1", got[0].ID)
	assert.Equal(t, 22.3, got[0].Latitude)
	assert.Equal(t, "Rajkot", got[0].City)
}
