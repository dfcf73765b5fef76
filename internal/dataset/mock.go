package dataset

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"hydromap/internal/types"
)

var idSpace = uuid.MustParse("6f1c2b7e-4d1a-4c8e-9a53-2f0d1e7b8c90")

// stableID derives a deterministic id so fixtures keep their ids across
// refreshes.
func stableID(kind, name string) string {
	return uuid.NewSHA1(idSpace, []byte(kind+"/"+name)).String()
}

type plantSeed struct {
	name       string
	kind       types.AssetType
	status     types.AssetStatus
	capacity   float64
	efficiency float64 // 0 means not reported
	source     types.EnergySource
	city       string
	state      string
	lat, lng   float64
	ageDays    int
}

var plantSeeds = []plantSeed{
	{"Kutch Solar Hydrogen Plant", types.AssetPlant, types.StatusOperational, 150, 87.5, types.SourceSolar, "Bhuj", "Gujarat", 23.24, 69.67, 540},
	{"Jaisalmer Wind Electrolysis", types.AssetPlant, types.StatusOperational, 200, 91.2, types.SourceWind, "Jaisalmer", "Rajasthan", 26.91, 70.92, 420},
	{"Mundra Storage Terminal", types.AssetStorage, types.StatusOperational, 500, 0, types.SourceMixed, "Mundra", "Gujarat", 22.84, 69.72, 380},
	{"Thoothukudi Green Ammonia", types.AssetPlant, types.StatusUnderConstruction, 300, 0, types.SourceWind, "Thoothukudi", "Tamil Nadu", 8.76, 78.13, 200},
	{"Paradip Distribution Hub", types.AssetDistributionHub, types.StatusMaintenance, 120, 72.4, types.SourceMixed, "Paradip", "Odisha", 20.26, 86.67, 610},
	{"Kochi Tidal Pilot", types.AssetPlant, types.StatusPlanned, 40, 0, types.SourceTidal, "Kochi", "Kerala", 9.93, 76.27, 90},
	{"Anantapur Solar Array", types.AssetPlant, types.StatusOperational, 180, 68.9, types.SourceSolar, "Anantapur", "Andhra Pradesh", 14.68, 77.6, 300},
	{"Kandla Pipeline Link", types.AssetPipeline, types.StatusOperational, 250, 94.1, types.SourceMixed, "Kandla", "Gujarat", 23.03, 70.22, 700},
}

type investmentSeed struct {
	project   string
	investor  string
	kind      types.ProjectType
	status    types.InvestmentStatus
	required  float64
	committed float64
	state     string
	ageDays   int
}

var investmentSeeds = []investmentSeed{
	{"Kutch Electrolyser Expansion", "Western Green Ventures", types.ProjectProduction, types.InvestmentActive, 500000000, 300000000, "Gujarat", 150},
	{"Rajasthan Salt Cavern Storage", "Sovereign Infra Fund", types.ProjectStorage, types.InvestmentSeeking, 1200000000, 150000000, "Rajasthan", 60},
	{"Southern Ammonia Corridor", "Tamil Nadu Industrial Corp", types.ProjectDistribution, types.InvestmentUnderReview, 800000000, 0, "Tamil Nadu", 30},
	{"PEM Stack Durability Lab", "IIT Consortium", types.ProjectResearch, types.InvestmentFunded, 45000000, 45000000, "Kerala", 400},
	{"Paradip Export Jetty", "Eastern Ports Trust", types.ProjectDistribution, types.InvestmentCompleted, 300000000, 300000000, "Odisha", 720},
	{"Anantapur Solar-to-H2 Phase II", "Green Bond Pool", types.ProjectProduction, types.InvestmentSeeking, 650000000, 120000000, "Andhra Pradesh", 45},
}

// MockSource serves built-in Indian green-hydrogen fixtures after an
// artificial delay. Performance samples are jittered on every call.
type MockSource struct {
	latency time.Duration
	now     func() time.Time

	mu  sync.Mutex
	rng *rand.Rand
}

func NewMockSource(latency time.Duration, seed int64) *MockSource {
	return &MockSource{
		latency: latency,
		now:     time.Now,
		rng:     rand.New(rand.NewSource(seed)),
	}
}

func (m *MockSource) wait(ctx context.Context) error {
	if m.latency <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(m.latency)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (m *MockSource) ListInfrastructure(ctx context.Context, opts ListOptions) ([]types.InfrastructureAsset, error) {
	if err := m.wait(ctx); err != nil {
		return nil, err
	}
	return applyAssets(m.assets(), opts), nil
}

func (m *MockSource) ListInvestments(ctx context.Context, opts ListOptions) ([]types.Investment, error) {
	if err := m.wait(ctx); err != nil {
		return nil, err
	}
	now := m.now().UTC()
	out := make([]types.Investment, len(investmentSeeds))
	for i, s := range investmentSeeds {
		out[i] = types.Investment{
			ID:              stableID(EntityInvestments, s.project),
			ProjectName:     s.project,
			InvestorName:    s.investor,
			ProjectType:     s.kind,
			Status:          s.status,
			AmountRequired:  s.required,
			AmountCommitted: s.committed,
			Location:        types.Location{State: s.state},
			CreatedDate:     now.AddDate(0, 0, -s.ageDays),
		}
	}
	return applyInvestments(out, opts), nil
}

// samplesPerPlant hourly readings are generated for each operational plant.
const samplesPerPlant = 24

func (m *MockSource) ListPerformance(ctx context.Context, opts ListOptions) ([]types.PlantPerformanceSample, error) {
	if err := m.wait(ctx); err != nil {
		return nil, err
	}
	now := m.now().UTC().Truncate(time.Hour)

	m.mu.Lock()
	defer m.mu.Unlock()
	var out []types.PlantPerformanceSample
	for _, a := range m.assets() {
		if !a.IsOperational() {
			continue
		}
		base := a.EfficiencyOrZero()
		if base == 0 {
			base = 80
		}
		for h := samplesPerPlant - 1; h >= 0; h-- {
			eff := clamp(base+m.rng.Float64()*6-3, 0, 100)
			rate := a.Capacity / 24 * (0.85 + m.rng.Float64()*0.3)
			out = append(out, types.PlantPerformanceSample{
				ID:                uuid.NewString(),
				PlantID:           a.ID,
				Efficiency:        eff,
				ProductionRate:    rate,
				EnergyConsumption: rate * 1000 * 55 / eff,
				Timestamp:         now.Add(-time.Duration(h) * time.Hour),
			})
		}
	}
	return applySamples(out, opts), nil
}

func (m *MockSource) assets() []types.InfrastructureAsset {
	now := m.now().UTC()
	out := make([]types.InfrastructureAsset, len(plantSeeds))
	for i, s := range plantSeeds {
		a := types.InfrastructureAsset{
			ID:           stableID(EntityInfrastructure, s.name),
			Name:         s.name,
			Type:         s.kind,
			Status:       s.status,
			Capacity:     s.capacity,
			EnergySource: s.source,
			Location: types.Location{
				Latitude:  types.Float(s.lat),
				Longitude: types.Float(s.lng),
				City:      s.city,
				State:     s.state,
			},
			CreatedDate: now.AddDate(0, 0, -s.ageDays),
		}
		if s.efficiency > 0 {
			a.Efficiency = types.Float(s.efficiency)
		}
		out[i] = a
	}
	return out
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
