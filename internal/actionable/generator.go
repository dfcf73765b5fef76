package actionable

import (
	"fmt"

	"hydromap/internal/aggregator"
)

type ActionCard struct {
	Insight string `json:"insight"`
	Action  string `json:"action"`
	Impact  string `json:"impact"`
}

const (
	weakFunding    = 50.0
	weakEfficiency = 75.0
)

// Generate picks the single most pressing recommendation: an underfunded
// project first, then fleet efficiency, then maintenance backlog.
func Generate(h aggregator.Highlights) ActionCard {
	if h.LargestGapProject != "" && h.LargestGapProgress < weakFunding {
		return ActionCard{
			Insight: fmt.Sprintf("%s is only %.0f%% funded", h.LargestGapProject, h.LargestGapProgress),
			Action:  "Prioritise investor outreach for the largest open funding gap",
			Impact:  "Unblocks construction of new production capacity",
		}
	}
	if h.AverageEfficiency > 0 && h.AverageEfficiency < weakEfficiency {
		return ActionCard{
			Insight: fmt.Sprintf("Fleet efficiency averages %.1f%%", h.AverageEfficiency),
			Action:  "Schedule electrolyser stack inspections at operational plants",
			Impact:  "Lower energy consumption per tonne of hydrogen",
		}
	}
	if h.MaintenanceCount > 0 {
		where := ""
		if h.TopRegion != "" {
			where = " starting with " + h.TopRegion
		}
		return ActionCard{
			Insight: fmt.Sprintf("%d assets are in maintenance", h.MaintenanceCount),
			Action:  "Review maintenance windows" + where,
			Impact:  "Restore daily capacity sooner",
		}
	}
	return ActionCard{
		Insight: "No pressing issue detected",
		Action:  "Monitor and collect more data",
		Impact:  "Low immediate intervention",
	}
}
