package pricing

import (
	"math"
	"reflect"
	"testing"

	"electroplan/pkg/domain"
)

func TestEstimatePhotovoltaic(t *testing.T) {
	meta := domain.PhotovoltaicMetadata{
		PanelCount:  10,
		PanelPowerW: 410,
		BatteryKWh:  10,
	}
	got := EstimatePhotovoltaic(meta)

	if math.Abs(got.SystemPowerKW-4.1) > 1e-9 {
		t.Fatalf("SystemPowerKW = %v, want 4.1", got.SystemPowerKW)
	}
	wantYearly := 4.1 * peakSunHoursPerDay * 365
	if math.Abs(got.YearlyProductionKWh-wantYearly) > 1e-9 {
		t.Fatalf("YearlyProductionKWh = %v, want %v", got.YearlyProductionKWh, wantYearly)
	}

	wantComponents := []CostComponent{
		{Label: "installation_base", Amount: 3500},
		{Label: "panels", Amount: 14500},
		{Label: "inverter", Amount: 3690},
		{Label: "battery", Amount: 22000},
	}
	if !reflect.DeepEqual(got.Components, wantComponents) {
		t.Fatalf("Components = %+v, want %+v", got.Components, wantComponents)
	}
	if got.TotalCost != 43690 {
		t.Fatalf("TotalCost = %d, want 43690", got.TotalCost)
	}
	if math.Abs(got.PaybackYears-8.294) > 1e-3 {
		t.Fatalf("PaybackYears = %v, want ~8.294", got.PaybackYears)
	}
}

func TestEstimatePhotovoltaicWithoutBattery(t *testing.T) {
	got := EstimatePhotovoltaic(domain.PhotovoltaicMetadata{PanelCount: 6, PanelPowerW: 500})
	if len(got.Components) != 3 {
		t.Fatalf("expected 3 components without battery, got %d", len(got.Components))
	}
	for _, c := range got.Components {
		if c.Label == "battery" {
			t.Fatalf("unexpected battery component")
		}
	}
}

func TestEstimatePhotovoltaicZeroPanels(t *testing.T) {
	got := EstimatePhotovoltaic(domain.PhotovoltaicMetadata{})
	if got.SystemPowerKW != 0 || got.YearlyProductionKWh != 0 {
		t.Fatalf("zero-panel sizing = %+v", got)
	}
	if got.PaybackYears != 0 {
		t.Fatalf("PaybackYears = %v, want 0 when nothing is produced", got.PaybackYears)
	}
	if got.TotalCost != pvBaseCost {
		t.Fatalf("TotalCost = %d, want base cost only", got.TotalCost)
	}
}

func TestEstimateGridConnection(t *testing.T) {
	meta := domain.GridConnectionMetadata{
		RequestedPowerKW: 10,
		DistanceM:        80,
		Phase:            domain.PhaseThree,
	}
	got := EstimateGridConnection(meta)

	wantComponents := []CostComponent{
		{Label: "base_fee", Amount: 1200},
		{Label: "line_distance", Amount: 7600},
		{Label: "requested_power", Amount: 1500},
		{Label: "three_phase", Amount: 850},
	}
	if !reflect.DeepEqual(got.Components, wantComponents) {
		t.Fatalf("Components = %+v, want %+v", got.Components, wantComponents)
	}
	if got.TotalCost != 11150 {
		t.Fatalf("TotalCost = %d, want 11150", got.TotalCost)
	}
}

func TestEstimateGridConnectionSinglePhase(t *testing.T) {
	got := EstimateGridConnection(domain.GridConnectionMetadata{
		RequestedPowerKW: 5.5,
		DistanceM:        12.4,
		Phase:            domain.PhaseSingle,
	})
	if len(got.Components) != 3 {
		t.Fatalf("expected 3 components for single phase, got %d", len(got.Components))
	}
	// 1200 + round(12.4*95=1178) + round(5.5*150=825)
	if got.TotalCost != 1200+1178+825 {
		t.Fatalf("TotalCost = %d", got.TotalCost)
	}
}

func TestEstimatorsAreIdempotent(t *testing.T) {
	pv := domain.PhotovoltaicMetadata{PanelCount: 8, PanelPowerW: 450, BatteryKWh: 5}
	if !reflect.DeepEqual(EstimatePhotovoltaic(pv), EstimatePhotovoltaic(pv)) {
		t.Fatalf("photovoltaic estimate not deterministic")
	}
	grid := domain.GridConnectionMetadata{RequestedPowerKW: 7, DistanceM: 33, Phase: domain.PhaseThree}
	if !reflect.DeepEqual(EstimateGridConnection(grid), EstimateGridConnection(grid)) {
		t.Fatalf("grid estimate not deterministic")
	}
}
