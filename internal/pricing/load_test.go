package pricing

import (
	"math"
	"testing"

	"electroplan/pkg/domain"
)

type lookupFixture map[string]domain.CatalogItem

func (f lookupFixture) FindByID(id string) (domain.CatalogItem, bool) {
	item, ok := f[id]
	return item, ok
}

func TestEstimateLoad(t *testing.T) {
	lookup := lookupFixture{
		"outlet_double": {ID: "outlet_double", Category: domain.CategoryOutlet, Price: 55},
		"light_spot":    {ID: "light_spot", Category: domain.CategoryLight, Price: 65},
		"switch_simple": {ID: "switch_simple", Category: domain.CategorySwitch, Price: 40},
	}
	project := domain.Project{
		Base: domain.Base{ID: "p1"},
		Type: domain.TypeResidential,
		Rooms: []domain.Room{
			{ID: "r1", Items: []domain.RoomItem{
				{ID: "i1", CatalogItemID: "outlet_double", Quantity: 2},
				{ID: "i2", CatalogItemID: "light_spot", Quantity: 10},
				{ID: "i3", CatalogItemID: "switch_simple", Quantity: 4},
				{ID: "i4", CatalogItemID: "ghost", Quantity: 9},
			}},
		},
	}

	got := EstimateLoad(project, lookup)
	// 2 outlets * 2000W * 0.7 + 10 spots * 7W = 2870W
	if got.TotalWatts != 2870 {
		t.Fatalf("TotalWatts = %v, want 2870", got.TotalWatts)
	}
	wantAmps := 2870.0 / 230.0
	if math.Abs(got.CurrentAmps-wantAmps) > 1e-9 {
		t.Fatalf("CurrentAmps = %v, want %v", got.CurrentAmps, wantAmps)
	}
	if got.RecommendedBreakerAmps != 20 {
		t.Fatalf("RecommendedBreakerAmps = %d, want 20", got.RecommendedBreakerAmps)
	}
	if got.RecommendedCableGauge != 2.5 {
		t.Fatalf("RecommendedCableGauge = %v, want 2.5", got.RecommendedCableGauge)
	}
}

func TestEstimateLoadUnknownLightUsesDefaultWattage(t *testing.T) {
	lookup := lookupFixture{
		"outlet_simple": {ID: "outlet_simple", Category: domain.CategoryOutlet, Price: 35},
		"light_strip":   {ID: "light_strip", Category: domain.CategoryLight, Price: 30},
	}
	// 1 outlet * 1400W + 68 strips * 20W = 2760W, exactly 12A at 230V.
	project := domain.Project{
		Base: domain.Base{ID: "p1"},
		Rooms: []domain.Room{
			{ID: "r1", Items: []domain.RoomItem{
				{ID: "i1", CatalogItemID: "outlet_simple", Quantity: 1},
				{ID: "i2", CatalogItemID: "light_strip", Quantity: 68},
			}},
		},
	}

	got := EstimateLoad(project, lookup)
	if got.TotalWatts != 2760 {
		t.Fatalf("TotalWatts = %v, want 2760", got.TotalWatts)
	}
	if got.CurrentAmps != 12 {
		t.Fatalf("CurrentAmps = %v, want 12", got.CurrentAmps)
	}
	if got.RecommendedBreakerAmps != 16 {
		t.Fatalf("RecommendedBreakerAmps = %d, want 16", got.RecommendedBreakerAmps)
	}
	if got.RecommendedCableGauge != 1.5 {
		t.Fatalf("RecommendedCableGauge = %v, want 1.5", got.RecommendedCableGauge)
	}
}

func TestEstimateLoadEmptyProject(t *testing.T) {
	got := EstimateLoad(domain.Project{Base: domain.Base{ID: "p1"}}, lookupFixture{})
	if got.TotalWatts != 0 || got.CurrentAmps != 0 {
		t.Fatalf("empty project load = %+v", got)
	}
	if got.RecommendedBreakerAmps != 16 {
		t.Fatalf("RecommendedBreakerAmps = %d, want smallest rating 16", got.RecommendedBreakerAmps)
	}
}

func TestRecommendBreakerThresholds(t *testing.T) {
	cases := []struct {
		amps float64
		want int
	}{
		{0, 16},
		{11.99, 16},
		{12, 16},
		{12.01, 20},
		{16, 20},
		{16.01, 25},
		{20, 25},
		{20.01, 32},
		{25, 32},
		{25.01, 40},
		{32, 40},
		{32.01, 50},
		{40, 50},
		{40.01, 63},
		{95, 63},
	}
	for _, tc := range cases {
		if got := recommendBreaker(tc.amps); got != tc.want {
			t.Errorf("recommendBreaker(%v) = %d, want %d", tc.amps, got, tc.want)
		}
	}
}

func TestCableGaugeCoversEveryBreakerRating(t *testing.T) {
	ratings := []int{fallbackBreakerAmps}
	for _, step := range breakerSteps {
		ratings = append(ratings, step.BreakerAmps)
	}
	for _, amps := range ratings {
		if _, ok := cableGaugeByBreaker[amps]; !ok {
			t.Errorf("no cable gauge for %dA breaker", amps)
		}
	}
}
