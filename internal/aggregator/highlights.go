package aggregator

import "hydromap/internal/types"

// Highlights gathers the few numbers the action card reasons about.
type Highlights struct {
	AverageEfficiency float64
	MaintenanceCount  int
	TopRegion         string

	// LargestGap is the open investment with the biggest unfunded amount.
	LargestGapProject  string
	LargestGap         float64
	LargestGapProgress float64
}

func Highlight(snap types.Snapshot) Highlights {
	h := Highlights{
		AverageEfficiency: AverageEfficiency(snap.Infrastructure),
		MaintenanceCount:  StatusBreakdown(snap.Infrastructure)[string(types.StatusMaintenance)],
	}
	if regions := GroupByRegion(snap.Infrastructure, nil); len(regions) > 0 {
		h.TopRegion = regions[0].Region
	}

	var open []types.Investment
	for _, inv := range snap.Investments {
		switch inv.Status {
		case types.InvestmentSeeking, types.InvestmentUnderReview, types.InvestmentActive:
			open = append(open, inv)
		}
	}
	if top := TopN(open, ByFundingGap, 1); len(top) == 1 && FundingGap(top[0]) > 0 {
		h.LargestGapProject = top[0].ProjectName
		h.LargestGap = FundingGap(top[0])
		h.LargestGapProgress = FundingProgressPercent(top[0])
	}
	return h
}
