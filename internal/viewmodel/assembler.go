// Package viewmodel shapes aggregator output into render-ready structures.
// It formats numbers (money scaled to millions or billions, one-decimal
// percentages) and never recomputes a metric the aggregator owns.
package viewmodel

import (
	"time"

	"hydromap/internal/actionable"
	"hydromap/internal/aggregator"
	"hydromap/internal/config"
	"hydromap/internal/types"
)

const topPlants = 5

type DashboardSummary struct {
	PlantCount        int     `json:"plantCount"`
	DailyCapacity     float64 `json:"dailyCapacity"` // tonnes/day, operational only
	TotalInvestment   Money   `json:"totalInvestment"`
	AverageEfficiency float64 `json:"averageEfficiency"`
}

type RegionRow struct {
	Region          string  `json:"region"`
	PlantCount      int     `json:"plantCount"`
	TotalCapacity   float64 `json:"totalCapacity"`
	TotalInvestment Money   `json:"totalInvestment"`
}

type DistributionSlice struct {
	ProjectType    string  `json:"projectType"`
	Count          int     `json:"count"`
	AmountMillions float64 `json:"amountMillions"`
}

type EnergySlice struct {
	Source  string  `json:"source"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

type FundingRow struct {
	ID              string  `json:"id"`
	ProjectName     string  `json:"projectName"`
	InvestorName    string  `json:"investorName"`
	Status          string  `json:"status"`
	Required        Money   `json:"required"`
	Committed       Money   `json:"committed"`
	Gap             Money   `json:"gap"`
	ProgressPercent float64 `json:"progressPercent"`
}

type PlantRow struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	State      string  `json:"state"`
	Capacity   float64 `json:"capacity"`
	Efficiency float64 `json:"efficiency"`
}

type Dashboard struct {
	Display     config.Display                `json:"display"`
	GeneratedAt time.Time                     `json:"generatedAt"`
	Summary     DashboardSummary              `json:"summary"`
	Regions     []RegionRow                   `json:"regions"`
	Investments []DistributionSlice           `json:"investmentDistribution"`
	EnergyMix   []EnergySlice                 `json:"energyMix"`
	Funding     []FundingRow                  `json:"funding"`
	TopPlants   []PlantRow                    `json:"topPlants"`
	Trend       []aggregator.SeriesPoint      `json:"performanceTrend"`
	Markers     []aggregator.MapPoint         `json:"markers"`
	Alerts      []types.Alert                 `json:"alerts"`
	ActionCard  actionable.ActionCard         `json:"actionCard"`
	Plants      []aggregator.PlantPerformance `json:"plantPerformance"`
}

// Assembler carries the display settings explicitly instead of reading
// any global state.
type Assembler struct {
	display     config.Display
	trendWindow int
	now         func() time.Time
}

func New(display config.Display, trendWindow int) *Assembler {
	if trendWindow <= 0 {
		trendWindow = 10
	}
	return &Assembler{display: display, trendWindow: trendWindow, now: time.Now}
}

func (a *Assembler) Summary(snap types.Snapshot) DashboardSummary {
	return DashboardSummary{
		PlantCount:        len(snap.Infrastructure),
		DailyCapacity:     Round1(aggregator.TotalCapacity(snap.Infrastructure)),
		TotalInvestment:   FormatMoney(aggregator.TotalInvestmentRequired(snap.Investments), a.display.Currency),
		AverageEfficiency: Round1(aggregator.AverageEfficiency(snap.Infrastructure)),
	}
}

func (a *Assembler) RegionalBreakdown(snap types.Snapshot) []RegionRow {
	regions := aggregator.GroupByRegion(snap.Infrastructure, snap.Investments)
	out := make([]RegionRow, len(regions))
	for i, r := range regions {
		out[i] = RegionRow{
			Region:          r.Region,
			PlantCount:      r.PlantCount,
			TotalCapacity:   Round1(r.TotalCapacity),
			TotalInvestment: FormatMoney(r.TotalInvestment, a.display.Currency),
		}
	}
	return out
}

func (a *Assembler) InvestmentDistribution(snap types.Snapshot) []DistributionSlice {
	groups := aggregator.GroupByProjectType(snap.Investments)
	out := make([]DistributionSlice, len(groups))
	for i, g := range groups {
		out[i] = DistributionSlice{
			ProjectType:    g.ProjectType,
			Count:          g.Count,
			AmountMillions: Millions(g.AmountRequired),
		}
	}
	return out
}

func (a *Assembler) EnergyMix(snap types.Snapshot) []EnergySlice {
	mix := aggregator.EnergySourceMix(snap.Infrastructure)
	out := make([]EnergySlice, len(mix))
	for i, m := range mix {
		out[i] = EnergySlice{Source: m.Source, Count: m.Count, Percent: Round1(m.Percent)}
	}
	return out
}

func (a *Assembler) Funding(snap types.Snapshot) []FundingRow {
	out := make([]FundingRow, len(snap.Investments))
	for i, inv := range snap.Investments {
		out[i] = FundingRow{
			ID:              inv.ID,
			ProjectName:     inv.ProjectName,
			InvestorName:    inv.InvestorName,
			Status:          inv.Status.Bucket(),
			Required:        FormatMoney(inv.AmountRequired, a.display.Currency),
			Committed:       FormatMoney(inv.AmountCommitted, a.display.Currency),
			Gap:             FormatMoney(aggregator.FundingGap(inv), a.display.Currency),
			ProgressPercent: Round1(aggregator.FundingProgressPercent(inv)),
		}
	}
	return out
}

func (a *Assembler) TopPlants(snap types.Snapshot) []PlantRow {
	top := aggregator.TopN(snap.Infrastructure, aggregator.ByCapacity, topPlants)
	out := make([]PlantRow, len(top))
	for i, p := range top {
		out[i] = PlantRow{
			ID:         p.ID,
			Name:       p.Name,
			State:      p.Location.Region(),
			Capacity:   Round1(p.Capacity),
			Efficiency: Round1(p.EfficiencyOrZero()),
		}
	}
	return out
}

func (a *Assembler) Trend(snap types.Snapshot) []aggregator.SeriesPoint {
	series := aggregator.WindowedSeries(snap.Performance, a.trendWindow)
	for i := range series {
		series[i].Efficiency = Round1(series[i].Efficiency)
		series[i].ProductionRate = Round1(series[i].ProductionRate)
	}
	return series
}

// Dashboard assembles every panel from one snapshot.
func (a *Assembler) Dashboard(snap types.Snapshot) Dashboard {
	plants := aggregator.PerformanceByPlant(snap.Performance, snap.Infrastructure)
	for i := range plants {
		plants[i].AverageEfficiency = Round1(plants[i].AverageEfficiency)
	}
	return Dashboard{
		Display:     a.display,
		GeneratedAt: a.now().UTC(),
		Summary:     a.Summary(snap),
		Regions:     a.RegionalBreakdown(snap),
		Investments: a.InvestmentDistribution(snap),
		EnergyMix:   a.EnergyMix(snap),
		Funding:     a.Funding(snap),
		TopPlants:   a.TopPlants(snap),
		Trend:       a.Trend(snap),
		Markers:     aggregator.SpatialPoints(snap.Infrastructure),
		Alerts:      aggregator.DeriveAlerts(snap.Infrastructure),
		ActionCard:  actionable.Generate(aggregator.Highlight(snap)),
		Plants:      plants,
	}
}
