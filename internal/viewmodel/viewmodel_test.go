package viewmodel

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hydromap/internal/config"
	"hydromap/internal/types"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		in       float64
		currency string
		want     Money
	}{
		{500000000, "INR", Money{Amount: 5e8, Scaled: 500, Unit: "M", Display: "₹500.0M"}},
		{1250000000, "USD", Money{Amount: 1.25e9, Scaled: 1.3, Unit: "B", Display: "$1.3B"}},
		{999949999, "EUR", Money{Amount: 999949999, Scaled: 999.9, Unit: "M", Display: "€999.9M"}},
		{0, "GBP", Money{Amount: 0, Scaled: 0, Unit: "M", Display: "£0.0M"}},
		{-200000000, "INR", Money{Amount: -2e8, Scaled: -200, Unit: "M", Display: "-₹200.0M"}},
		{3500000, "CHF", Money{Amount: 3.5e6, Scaled: 3.5, Unit: "M", Display: "CHF 3.5M"}},
	}
	for _, tt := range tests {
		t.Run(tt.want.Display, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatMoney(tt.in, tt.currency))
		})
	}
}

func TestRound1(t *testing.T) {
	assert.Equal(t, 85.0, Round1(84.95))
	assert.Equal(t, 33.3, Round1(100.0/3))
	assert.Equal(t, -2.5, Round1(-2.45))
	assert.Equal(t, 0.0, Round1(0))
	assert.Equal(t, 1.2, Millions(1234567))
}

func fixture() types.Snapshot {
	return types.Snapshot{
		Infrastructure: []types.InfrastructureAsset{
			{ID: "a1", Name: "Kutch Solar H2", Status: types.StatusOperational, Capacity: 150, Efficiency: types.Float(85),
				EnergySource: types.SourceSolar, Location: types.Location{State: "Gujarat", Latitude: types.Float(23.7), Longitude: types.Float(69.8)}},
			{ID: "a2", Name: "Jaisalmer Wind H2", Status: types.StatusOperational, Capacity: 50, Efficiency: types.Float(95),
				EnergySource: types.SourceWind, Location: types.Location{State: "Rajasthan"}},
			{ID: "a3", Name: "Thoothukudi Hub", Status: types.StatusPlanned, Capacity: 1000, Efficiency: types.Float(99),
				EnergySource: types.SourceMixed, Location: types.Location{State: "Tamil Nadu"}},
		},
		Investments: []types.Investment{
			{ID: "i1", ProjectName: "Kutch Expansion", ProjectType: types.ProjectProduction, Status: types.InvestmentActive,
				AmountRequired: 500000000, AmountCommitted: 300000000, Location: types.Location{State: "Gujarat"}},
			{ID: "i2", ProjectName: "Salt Cavern Storage", ProjectType: types.ProjectStorage, Status: types.InvestmentSeeking,
				AmountRequired: 1200000000, Location: types.Location{State: "Rajasthan"}},
			{ID: "i3", ProjectName: "Electrolyser R&D", ProjectType: types.ProjectResearch, Status: types.InvestmentFunded,
				AmountRequired: 0, Location: types.Location{State: "Gujarat"}},
		},
		Performance: []types.PlantPerformanceSample{
			{PlantID: "a1", Efficiency: 84.04, ProductionRate: 140, Timestamp: time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)},
			{PlantID: "a1", Efficiency: 86, ProductionRate: 150, Timestamp: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
		},
	}
}

func TestSummary(t *testing.T) {
	a := New(config.Display{Currency: "INR"}, 10)
	s := a.Summary(fixture())

	assert.Equal(t, 3, s.PlantCount)
	assert.Equal(t, 200.0, s.DailyCapacity)
	assert.Equal(t, 90.0, s.AverageEfficiency)
	assert.Equal(t, "₹1.7B", s.TotalInvestment.Display)
}

func TestSummaryEmptySnapshot(t *testing.T) {
	a := New(config.Display{Currency: "USD"}, 10)
	d := a.Dashboard(types.Snapshot{})

	assert.Equal(t, DashboardSummary{TotalInvestment: Money{Unit: "M", Display: "$0.0M"}}, d.Summary)
	assert.Empty(t, d.Regions)
	assert.Empty(t, d.Trend)
	assert.Empty(t, d.Alerts)
	assert.Equal(t, "No pressing issue detected", d.ActionCard.Insight)
}

func TestRegionalBreakdown(t *testing.T) {
	rows := New(config.Display{Currency: "INR"}, 10).RegionalBreakdown(fixture())

	require.Len(t, rows, 3)
	assert.Equal(t, "Tamil Nadu", rows[0].Region)
	assert.Equal(t, "Gujarat", rows[1].Region)
	assert.Equal(t, "₹500.0M", rows[1].TotalInvestment.Display)
	assert.Equal(t, "Rajasthan", rows[2].Region)
	assert.Equal(t, "₹1.2B", rows[2].TotalInvestment.Display)
}

func TestInvestmentDistribution(t *testing.T) {
	got := New(config.Display{Currency: "INR"}, 10).InvestmentDistribution(fixture())

	assert.Equal(t, []DistributionSlice{
		{ProjectType: "production", Count: 1, AmountMillions: 500},
		{ProjectType: "storage", Count: 1, AmountMillions: 1200},
		{ProjectType: "research", Count: 1, AmountMillions: 0},
	}, got)
}

func TestDashboard(t *testing.T) {
	a := New(config.Display{Currency: "INR", Locale: "en-IN", Theme: "dark"}, 10)
	a.now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }
	d := a.Dashboard(fixture())

	assert.Equal(t, "dark", d.Display.Theme)
	assert.Equal(t, 2025, d.GeneratedAt.Year())

	require.Len(t, d.Funding, 3)
	assert.Equal(t, 60.0, d.Funding[0].ProgressPercent)
	assert.Equal(t, "₹200.0M", d.Funding[0].Gap.Display)
	assert.Equal(t, 0.0, d.Funding[2].ProgressPercent)

	require.Len(t, d.TopPlants, 3)
	assert.Equal(t, "a3", d.TopPlants[0].ID)

	require.Len(t, d.Trend, 2)
	assert.Equal(t, 86.0, d.Trend[0].Efficiency)
	assert.Equal(t, 84.0, d.Trend[1].Efficiency)

	require.Len(t, d.Markers, 1)
	assert.Equal(t, "a1", d.Markers[0].ID)

	require.Len(t, d.EnergyMix, 3)
	assert.Equal(t, 33.3, d.EnergyMix[0].Percent)

	require.Len(t, d.Alerts, 1)
	assert.Equal(t, types.AlertSuccess, d.Alerts[0].Type)

	require.Len(t, d.Plants, 1)
	assert.Equal(t, 85.0, d.Plants[0].AverageEfficiency)

	assert.Equal(t, "Salt Cavern Storage is only 0% funded", d.ActionCard.Insight)
}
