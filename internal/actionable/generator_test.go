package actionable

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"hydromap/internal/aggregator"
	"hydromap/internal/types"
)

func TestGenerate(t *testing.T) {
	t.Run("funding gap first", func(t *testing.T) {
		card := Generate(aggregator.Highlights{
			LargestGapProject:  "Kutch Green H2 Hub",
			LargestGapProgress: 20,
			AverageEfficiency:  60,
		})
		assert.Equal(t, "Kutch Green H2 Hub is only 20% funded", card.Insight)
	})

	t.Run("low efficiency", func(t *testing.T) {
		card := Generate(aggregator.Highlights{AverageEfficiency: 70.24, LargestGapProject: "x", LargestGapProgress: 90})
		assert.Equal(t, "Fleet efficiency averages 70.2%", card.Insight)
	})

	t.Run("maintenance", func(t *testing.T) {
		card := Generate(aggregator.Highlights{AverageEfficiency: 88, MaintenanceCount: 2, TopRegion: "Gujarat"})
		assert.Equal(t, "2 assets are in maintenance", card.Insight)
		assert.Contains(t, card.Action, "Gujarat")
	})

	t.Run("quiet", func(t *testing.T) {
		assert.Equal(t, "No pressing issue detected", Generate(aggregator.Highlights{}).Insight)
	})
}

func TestGenerateFromSnapshot(t *testing.T) {
	snap := types.Snapshot{
		Infrastructure: []types.InfrastructureAsset{
			{Status: types.StatusOperational, Efficiency: types.Float(90), Capacity: 100, Location: types.Location{State: "Gujarat"}},
		},
		Investments: []types.Investment{
			{ProjectName: "Done", Status: types.InvestmentCompleted, AmountRequired: 1e9},
			{ProjectName: "Small", Status: types.InvestmentSeeking, AmountRequired: 100, AmountCommitted: 10},
			{ProjectName: "Big", Status: types.InvestmentActive, AmountRequired: 1000, AmountCommitted: 100},
		},
	}
	h := aggregator.Highlight(snap)

	assert.Equal(t, "Big", h.LargestGapProject)
	assert.Equal(t, 900.0, h.LargestGap)
	assert.Equal(t, "Gujarat", h.TopRegion)
	assert.Equal(t, "Big is only 10% funded", Generate(h).Insight)
}
