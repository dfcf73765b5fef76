package aggregator

import "hydromap/internal/types"

func TotalInvestmentRequired(investments []types.Investment) float64 {
	total := 0.0
	for _, inv := range investments {
		total += types.Finite(inv.AmountRequired)
	}
	return total
}

func TotalFundingCommitted(investments []types.Investment) float64 {
	total := 0.0
	for _, inv := range investments {
		total += types.Finite(inv.AmountCommitted)
	}
	return total
}

// FundingGap is required minus committed. Over-committed investments give a
// negative gap; it is reported as is.
func FundingGap(inv types.Investment) float64 {
	return types.Finite(inv.AmountRequired) - types.Finite(inv.AmountCommitted)
}

// FundingProgressPercent is 100*committed/required, or 0 when nothing is
// required. Over-commitment yields values above 100.
func FundingProgressPercent(inv types.Investment) float64 {
	required := types.Finite(inv.AmountRequired)
	if required <= 0 {
		return 0
	}
	return percentOf(types.Finite(inv.AmountCommitted), required)
}

type FundingSummary struct {
	TotalRequired   float64        `json:"totalRequired"`
	TotalCommitted  float64        `json:"totalCommitted"`
	Gap             float64        `json:"gap"`
	ProgressPercent float64        `json:"progressPercent"`
	ByStatus        map[string]int `json:"byStatus"`
}

func SummarizeFunding(investments []types.Investment) FundingSummary {
	required := TotalInvestmentRequired(investments)
	committed := TotalFundingCommitted(investments)
	byStatus := map[string]int{}
	for _, inv := range investments {
		byStatus[inv.Status.Bucket()]++
	}
	s := FundingSummary{
		TotalRequired:  required,
		TotalCommitted: committed,
		Gap:            required - committed,
		ByStatus:       byStatus,
	}
	if required > 0 {
		s.ProgressPercent = percentOf(committed, required)
	}
	return s
}

type ProjectTypeTotal struct {
	ProjectType    string  `json:"projectType"`
	Count          int     `json:"count"`
	AmountRequired float64 `json:"amountRequired"`
}

// GroupByProjectType sums amountRequired per project type in first-appearance
// order; unknown types fall into "other".
func GroupByProjectType(investments []types.Investment) []ProjectTypeTotal {
	index := map[string]int{}
	out := []ProjectTypeTotal{}
	for _, inv := range investments {
		key := inv.ProjectType.Bucket()
		i, ok := index[key]
		if !ok {
			i = len(out)
			index[key] = i
			out = append(out, ProjectTypeTotal{ProjectType: key})
		}
		out[i].Count++
		out[i].AmountRequired += types.Finite(inv.AmountRequired)
	}
	return out
}
