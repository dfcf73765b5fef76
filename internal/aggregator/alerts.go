package aggregator

import (
	"fmt"

	"hydromap/internal/types"
)

const (
	MaxAlerts = 5

	lowEfficiency  = 75.0
	highEfficiency = 90.0
)

// DeriveAlerts walks assets in order and applies three independent rules:
// efficiency below 75 warns, maintenance informs, operational at 90 or more
// succeeds. One asset can raise several alerts. The result is the first
// MaxAlerts alerts in that order.
func DeriveAlerts(assets []types.InfrastructureAsset) []types.Alert {
	out := make([]types.Alert, 0, MaxAlerts)
	emit := func(a types.InfrastructureAsset, kind types.AlertType, msg string) bool {
		if len(out) == MaxAlerts {
			return false
		}
		out = append(out, types.Alert{Type: kind, AssetID: a.ID, AssetName: a.Name, Message: msg})
		return true
	}

	for _, a := range assets {
		if a.Efficiency != nil && *a.Efficiency < lowEfficiency {
			if !emit(a, types.AlertWarning, fmt.Sprintf("%s efficiency dropped to %.1f%%", a.Name, *a.Efficiency)) {
				break
			}
		}
		if a.Status == types.StatusMaintenance {
			if !emit(a, types.AlertInfo, fmt.Sprintf("%s is under scheduled maintenance", a.Name)) {
				break
			}
		}
		if a.IsOperational() && a.Efficiency != nil && *a.Efficiency >= highEfficiency {
			if !emit(a, types.AlertSuccess, fmt.Sprintf("%s is running at %.1f%% efficiency", a.Name, *a.Efficiency)) {
				break
			}
		}
	}
	return out
}
