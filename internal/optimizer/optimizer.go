// Package optimizer serves the site-selection screen. Scores are a fixed
// table precomputed per objective; nothing is solved at request time.
package optimizer

import (
	"errors"
	"fmt"
	"sort"

	"hydromap/internal/aggregator"
)

var ErrUnknownScenario = errors.New("unknown scenario")

type SiteScore struct {
	Site        string  `json:"site"`
	State       string  `json:"state"`
	Score       float64 `json:"score"`
	LCOH        float64 `json:"lcoh"` // levelised cost, currency units per kg
	CapacityTPD float64 `json:"capacityTpd"`
}

type Scenario struct {
	Key         string      `json:"key"`
	Label       string      `json:"label"`
	Description string      `json:"description"`
	Sites       []SiteScore `json:"sites,omitempty"`
}

var scenarios = map[string]Scenario{
	"cost": {
		Key:         "cost",
		Label:       "Lowest cost",
		Description: "Minimise levelised cost of hydrogen",
		Sites: []SiteScore{
			{"Kutch", "Gujarat", 92.4, 310, 180},
			{"Jaisalmer", "Rajasthan", 89.1, 322, 220},
			{"Anantapur", "Andhra Pradesh", 81.7, 345, 150},
			{"Thoothukudi", "Tamil Nadu", 78.3, 352, 200},
			{"Paradip", "Odisha", 70.2, 371, 120},
		},
	},
	"renewables": {
		Key:         "renewables",
		Label:       "Renewable availability",
		Description: "Maximise solar and wind capacity factor",
		Sites: []SiteScore{
			{"Jaisalmer", "Rajasthan", 95.0, 322, 220},
			{"Kutch", "Gujarat", 93.6, 310, 180},
			{"Thoothukudi", "Tamil Nadu", 88.8, 352, 200},
			{"Anantapur", "Andhra Pradesh", 84.5, 345, 150},
			{"Kochi", "Kerala", 61.9, 398, 40},
		},
	},
	"export": {
		Key:         "export",
		Label:       "Export logistics",
		Description: "Proximity to deep-water ports and pipelines",
		Sites: []SiteScore{
			{"Paradip", "Odisha", 94.2, 371, 120},
			{"Kandla", "Gujarat", 93.9, 315, 250},
			{"Thoothukudi", "Tamil Nadu", 90.4, 352, 200},
			{"Kochi", "Kerala", 82.0, 398, 40},
			{"Jaisalmer", "Rajasthan", 55.3, 322, 220},
		},
	},
}

// Scenarios lists the available objectives without their site tables.
func Scenarios() []Scenario {
	out := make([]Scenario, 0, len(scenarios))
	for _, s := range scenarios {
		out = append(out, Scenario{Key: s.Key, Label: s.Label, Description: s.Description})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// Lookup returns a scenario with its top n sites by score (all when n <= 0).
func Lookup(key string, n int) (Scenario, error) {
	s, ok := scenarios[key]
	if !ok {
		return Scenario{}, fmt.Errorf("%w: %q", ErrUnknownScenario, key)
	}
	if n <= 0 {
		n = len(s.Sites)
	}
	s.Sites = aggregator.TopN(s.Sites, func(site SiteScore) float64 { return site.Score }, n)
	return s, nil
}
