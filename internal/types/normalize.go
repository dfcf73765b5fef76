package types

import (
	"math"
	"strings"
)

// Finite maps NaN and ±Inf to 0 so sums and means stay finite.
func Finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// Float returns a pointer to v; handy for optional fields in fixtures.
func Float(v float64) *float64 {
	return &v
}

func (s EnergySource) Known() bool {
	switch s {
	case SourceSolar, SourceWind, SourceTidal, SourceMixed:
		return true
	}
	return false
}

// Bucket returns the grouping key for s, folding unknown values into Other.
func (s EnergySource) Bucket() string {
	if s.Known() {
		return string(s)
	}
	return Other
}

func (s AssetStatus) Known() bool {
	switch s {
	case StatusOperational, StatusPlanned, StatusUnderConstruction, StatusMaintenance:
		return true
	}
	return false
}

func (s AssetStatus) Bucket() string {
	if s.Known() {
		return string(s)
	}
	return Other
}

func (t ProjectType) Bucket() string {
	switch t {
	case ProjectProduction, ProjectStorage, ProjectDistribution, ProjectResearch:
		return string(t)
	}
	return Other
}

func (s InvestmentStatus) Bucket() string {
	switch s {
	case InvestmentSeeking, InvestmentFunded, InvestmentUnderReview, InvestmentCompleted, InvestmentActive:
		return string(s)
	}
	return Other
}

// ParseAssetType and friends lower-case and trim raw spreadsheet or JSON
// values; spaces and dashes become underscores ("Under Construction").
func ParseAssetType(raw string) AssetType { return AssetType(canonical(raw)) }

func ParseAssetStatus(raw string) AssetStatus { return AssetStatus(canonical(raw)) }

func ParseEnergySource(raw string) EnergySource { return EnergySource(canonical(raw)) }

func ParseProjectType(raw string) ProjectType { return ProjectType(canonical(raw)) }

func ParseInvestmentStatus(raw string) InvestmentStatus { return InvestmentStatus(canonical(raw)) }

func canonical(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	return strings.NewReplacer(" ", "_", "-", "_").Replace(s)
}
