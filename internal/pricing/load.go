package pricing

import "electroplan/pkg/domain"

// Electrical load model constants. The diversity factor derates total outlet
// load: not all outlets draw rated power simultaneously.
const (
	outletRatedWatts = 2000.0
	diversityFactor  = 0.7
	supplyVoltage    = 230.0
	// defaultLightWatts applies to lighting fixtures absent from the wattage
	// table.
	defaultLightWatts = 20.0
)

// lightWattsByItem fixes the per-fixture wattage of known lighting items.
var lightWattsByItem = map[string]float64{
	"light_ceiling":  24,
	"light_spot":     7,
	"light_wall":     12,
	"light_exterior": 15,
}

// breakerSteps maps an estimated current ceiling to the recommended breaker
// rating. Evaluated in order; the first step whose MaxAmps is not exceeded
// wins. Currents above the last step fall through to the fallback rating.
var breakerSteps = []struct {
	MaxAmps     float64
	BreakerAmps int
}{
	{12, 16},
	{16, 20},
	{20, 25},
	{25, 32},
	{32, 40},
	{40, 50},
}

// fallbackBreakerAmps covers estimated currents above every step.
const fallbackBreakerAmps = 63

// cableGaugeByBreaker maps a breaker rating to the matching conductor
// cross-section in mm².
var cableGaugeByBreaker = map[int]float64{
	16: 1.5,
	20: 2.5,
	25: 4,
	32: 6,
	40: 10,
	50: 10,
	63: 16,
}

// LoadEstimate is the derived electrical sizing of a project.
type LoadEstimate struct {
	TotalWatts             float64 `json:"total_watts"`
	CurrentAmps            float64 `json:"current_amps"`
	RecommendedBreakerAmps int     `json:"recommended_breaker_amps"`
	RecommendedCableGauge  float64 `json:"recommended_cable_gauge_mm2"`
}

// EstimateLoad derives total wattage, current, and breaker/cable sizing from
// the project's outlet and lighting items. Outlet load is derated by the
// diversity factor; lighting uses the fixed per-fixture wattage table.
// Dangling catalog references are skipped.
func EstimateLoad(project domain.Project, lookup PriceLookup) LoadEstimate {
	var outletCount int
	var lightWatts float64
	for _, room := range project.Rooms {
		for _, item := range room.Items {
			def, ok := lookup.FindByID(item.CatalogItemID)
			if !ok {
				continue
			}
			switch def.Category {
			case domain.CategoryOutlet:
				outletCount += item.Quantity
			case domain.CategoryLight:
				perFixture, ok := lightWattsByItem[def.ID]
				if !ok {
					perFixture = defaultLightWatts
				}
				lightWatts += perFixture * float64(item.Quantity)
			}
		}
	}

	totalWatts := float64(outletCount)*outletRatedWatts*diversityFactor + lightWatts
	currentAmps := totalWatts / supplyVoltage
	breaker := recommendBreaker(currentAmps)

	return LoadEstimate{
		TotalWatts:             totalWatts,
		CurrentAmps:            currentAmps,
		RecommendedBreakerAmps: breaker,
		RecommendedCableGauge:  cableGaugeByBreaker[breaker],
	}
}

func recommendBreaker(currentAmps float64) int {
	for _, step := range breakerSteps {
		if currentAmps <= step.MaxAmps {
			return step.BreakerAmps
		}
	}
	return fallbackBreakerAmps
}
