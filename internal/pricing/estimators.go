package pricing

import (
	"math"

	"electroplan/pkg/domain"
)

// Photovoltaic sizing and cost constants (RON). Production assumes the
// national average of peak sun hours.
const (
	peakSunHoursPerDay = 3.2
	energyPricePerKWh  = 1.10

	pvBaseCost          = 3500
	pvCostPerPanel      = 1450
	pvInverterCostPerKW = 900
	pvBatteryCostPerKWh = 2200
)

// Grid connection (bransament) cost constants (RON).
const (
	gridBaseFee           = 1200
	gridCostPerMeter      = 95
	gridCostPerKW         = 150
	gridThreePhaseSurplus = 850
)

// CostComponent is one labeled line of an itemized estimate.
type CostComponent struct {
	Label  string `json:"label"`
	Amount int64  `json:"amount"`
}

// PhotovoltaicEstimate is the derived sizing, production, and cost of a
// photovoltaic configuration.
type PhotovoltaicEstimate struct {
	SystemPowerKW       float64         `json:"system_power_kw"`
	YearlyProductionKWh float64         `json:"yearly_production_kwh"`
	Components          []CostComponent `json:"components"`
	TotalCost           int64           `json:"total_cost"`
	PaybackYears        float64         `json:"payback_years"`
}

// EstimatePhotovoltaic computes system power, yearly production, itemized
// cost, and payback from the user-entered panel configuration. Linear
// formulas over fixed constants; no randomness.
func EstimatePhotovoltaic(meta domain.PhotovoltaicMetadata) PhotovoltaicEstimate {
	systemKW := float64(meta.PanelCount) * float64(meta.PanelPowerW) / 1000.0
	yearlyKWh := systemKW * peakSunHoursPerDay * 365

	components := []CostComponent{
		{Label: "installation_base", Amount: pvBaseCost},
		{Label: "panels", Amount: int64(meta.PanelCount) * pvCostPerPanel},
		{Label: "inverter", Amount: roundRON(systemKW * pvInverterCostPerKW)},
	}
	if meta.BatteryKWh > 0 {
		components = append(components, CostComponent{
			Label:  "battery",
			Amount: roundRON(meta.BatteryKWh * pvBatteryCostPerKWh),
		})
	}

	var total int64
	for _, c := range components {
		total += c.Amount
	}

	var payback float64
	if yearlyKWh > 0 {
		payback = float64(total) / (yearlyKWh * energyPricePerKWh)
	}

	return PhotovoltaicEstimate{
		SystemPowerKW:       systemKW,
		YearlyProductionKWh: yearlyKWh,
		Components:          components,
		TotalCost:           total,
		PaybackYears:        payback,
	}
}

// GridConnectionEstimate is the itemized cost of a grid-connection request.
type GridConnectionEstimate struct {
	Components []CostComponent `json:"components"`
	TotalCost  int64           `json:"total_cost"`
}

// EstimateGridConnection computes the itemized connection cost from requested
// power, line distance, and phase.
func EstimateGridConnection(meta domain.GridConnectionMetadata) GridConnectionEstimate {
	components := []CostComponent{
		{Label: "base_fee", Amount: gridBaseFee},
		{Label: "line_distance", Amount: roundRON(meta.DistanceM * gridCostPerMeter)},
		{Label: "requested_power", Amount: roundRON(meta.RequestedPowerKW * gridCostPerKW)},
	}
	if meta.Phase == domain.PhaseThree {
		components = append(components, CostComponent{Label: "three_phase", Amount: gridThreePhaseSurplus})
	}

	var total int64
	for _, c := range components {
		total += c.Amount
	}
	return GridConnectionEstimate{Components: components, TotalCost: total}
}

func roundRON(v float64) int64 {
	return int64(math.Round(v))
}
