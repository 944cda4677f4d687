package rating

import (
	"math"
	"testing"
)

var towingTariff = Tariff{
	ServiceKey: "CR_towing_standard",
	BaseCost:   15000,
	IncludedKm: 10,
	CostPerKm:  800,
}

func TestDistanceCostZeroAndNegative(t *testing.T) {
	if got := DistanceCost(0, towingTariff); got != 0 {
		t.Fatalf("expected 0 for zero distance, got %v", got)
	}
	if got := DistanceCost(-5, towingTariff); got != 0 {
		t.Fatalf("expected 0 for negative distance, got %v", got)
	}
	if got := DistanceCost(math.NaN(), towingTariff); got != 0 {
		t.Fatalf("expected 0 for NaN distance, got %v", got)
	}
}

func TestDistanceCostFlatWithinIncluded(t *testing.T) {
	// Entering the tier at all charges the full base cost.
	for _, km := range []float64{0.5, 1, 5, 9.9, 10} {
		if got := DistanceCost(km, towingTariff); got != 15000 {
			t.Fatalf("expected flat base for %v km, got %v", km, got)
		}
	}
}

func TestDistanceCostOverage(t *testing.T) {
	got := DistanceCost(25, towingTariff)
	want := 15000 + 15*800.0
	if got != want {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestDistanceCostMonotonic(t *testing.T) {
	prev := 0.0
	for km := 0.0; km <= 60; km += 0.5 {
		cost := DistanceCost(km, towingTariff)
		if cost < prev {
			t.Fatalf("cost decreased at %v km: %v < %v", km, cost, prev)
		}
		prev = cost
	}
}
