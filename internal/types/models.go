package types

import "time"

type AssetType string

const (
	AssetPlant           AssetType = "plant"
	AssetStorage         AssetType = "storage"
	AssetPipeline        AssetType = "pipeline"
	AssetDistributionHub AssetType = "distribution_hub"
)

type AssetStatus string

const (
	StatusOperational       AssetStatus = "operational"
	StatusPlanned           AssetStatus = "planned"
	StatusUnderConstruction AssetStatus = "under_construction"
	StatusMaintenance       AssetStatus = "maintenance"
)

type EnergySource string

const (
	SourceSolar EnergySource = "solar"
	SourceWind  EnergySource = "wind"
	SourceTidal EnergySource = "tidal"
	SourceMixed EnergySource = "mixed"
)

type ProjectType string

const (
	ProjectProduction   ProjectType = "production"
	ProjectStorage      ProjectType = "storage"
	ProjectDistribution ProjectType = "distribution"
	ProjectResearch     ProjectType = "research"
)

type InvestmentStatus string

const (
	InvestmentSeeking     InvestmentStatus = "seeking_investors"
	InvestmentFunded      InvestmentStatus = "funded"
	InvestmentUnderReview InvestmentStatus = "under_review"
	InvestmentCompleted   InvestmentStatus = "completed"
	InvestmentActive      InvestmentStatus = "active"
)

// Other is the bucket label for unknown or missing categorical values.
const Other = "other"

// Unknown labels missing display values; UnknownRegion groups records
// without a state.
const (
	Unknown       = "Unknown"
	UnknownRegion = Unknown
)

// Location pins a record on the map. Latitude and Longitude are optional;
// records without both are left out of spatial aggregation.
type Location struct {
	Latitude  *float64 `json:"latitude,omitempty" yaml:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty" yaml:"longitude,omitempty"`
	City      string   `json:"city,omitempty" yaml:"city,omitempty"`
	State     string   `json:"state,omitempty" yaml:"state,omitempty"`
}

// HasCoordinates reports whether both coordinates are present and in range.
func (l Location) HasCoordinates() bool {
	if l.Latitude == nil || l.Longitude == nil {
		return false
	}
	lat, lng := *l.Latitude, *l.Longitude
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}

// Region returns the state used for regional grouping.
func (l Location) Region() string {
	if l.State == "" {
		return UnknownRegion
	}
	return l.State
}

type InfrastructureAsset struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Type         AssetType    `json:"type"`
	Status       AssetStatus  `json:"status"`
	Capacity     float64      `json:"capacity"`             // tonnes/day
	Efficiency   *float64     `json:"efficiency,omitempty"` // percent
	EnergySource EnergySource `json:"energySource"`
	Location     Location     `json:"location"`
	CreatedDate  time.Time    `json:"createdDate"`
}

// EfficiencyOrZero treats a missing efficiency as 0.
func (a InfrastructureAsset) EfficiencyOrZero() float64 {
	if a.Efficiency == nil {
		return 0
	}
	return Finite(*a.Efficiency)
}

func (a InfrastructureAsset) IsOperational() bool {
	return a.Status == StatusOperational
}

type Investment struct {
	ID              string           `json:"id"`
	ProjectName     string           `json:"projectName"`
	InvestorName    string           `json:"investorName"`
	ProjectType     ProjectType      `json:"projectType"`
	Status          InvestmentStatus `json:"status"`
	AmountRequired  float64          `json:"amountRequired"`
	AmountCommitted float64          `json:"amountCommitted"`
	Location        Location         `json:"location"`
	CreatedDate     time.Time        `json:"createdDate"`
}

// PlantPerformanceSample is one reading for a plant. PlantID is a lookup key
// into InfrastructureAsset.ID only.
type PlantPerformanceSample struct {
	ID                string    `json:"id"`
	PlantID           string    `json:"plantId"`
	Efficiency        float64   `json:"efficiency"`
	ProductionRate    float64   `json:"productionRate"`
	EnergyConsumption float64   `json:"energyConsumption"`
	Timestamp         time.Time `json:"timestamp"`
}

type AlertType string

const (
	AlertWarning AlertType = "warning"
	AlertInfo    AlertType = "info"
	AlertSuccess AlertType = "success"
)

type Alert struct {
	Type      AlertType `json:"type"`
	AssetID   string    `json:"assetId"`
	AssetName string    `json:"assetName"`
	Message   string    `json:"message"`
}
