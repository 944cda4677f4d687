package rating

import "math"

// DistanceCost converts a chargeable distance into a cost using the two-tier
// schedule: zero below or at 0 km, the flat base cost up to the included
// distance, base plus per-km overage beyond it. Monotonically non-decreasing
// in km.
func DistanceCost(km float64, t Tariff) float64 {
	km = sanitize(km)
	if km <= 0 {
		return 0
	}
	if km <= t.IncludedKm {
		return t.BaseCost
	}
	return t.BaseCost + (km-t.IncludedKm)*t.CostPerKm
}

// sanitize coerces invalid numeric input (negative, NaN, infinite) to zero
// rather than rejecting it.
func sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
