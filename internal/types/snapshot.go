package types

import "time"

// Snapshot is one complete fetch of every record collection. A refresh
// replaces the whole snapshot.
type Snapshot struct {
	Infrastructure []InfrastructureAsset    `json:"infrastructure"`
	Investments    []Investment             `json:"investments"`
	Performance    []PlantPerformanceSample `json:"performance"`
	FetchedAt      time.Time                `json:"fetchedAt"`
}
