package rates

import (
	"strings"

	"github.com/rodasol/cotizador-api/internal/rating"
)

// Coverage type discriminators as stored in the benefits table.
const (
	CoverageDistanceCap = "distance_cap"
	CoverageMonetaryCap = "monetary_cap"
	CoverageFuelLiters  = "fuel_liters"
)

// BenefitRecord is the flat, cache-friendly shape of a benefit row. The
// coverage policy is discriminated by CoverageType; Benefit() folds it back
// into the engine's sum type.
type BenefitRecord struct {
	ID              string   `json:"id"`
	PartnerName     string   `json:"partnerName"`
	PlanName        string   `json:"planName"`
	ServiceCategory string   `json:"serviceCategory"`
	CoverageType    string   `json:"coverageType"`
	LimitKm         float64  `json:"limitKm,omitempty"`
	LimitAmount     float64  `json:"limitAmount,omitempty"`
	LimitCurrency   string   `json:"limitCurrency,omitempty"`
	FuelSuper       float64  `json:"fuelSuper,omitempty"`
	FuelRegular     float64  `json:"fuelRegular,omitempty"`
	FuelDiesel      float64  `json:"fuelDiesel,omitempty"`
	ApplyAirportFee *bool    `json:"applyAirportFee,omitempty"`
	ApplyFixedFee   bool     `json:"applyFixedFee,omitempty"`
}

// Benefit converts the record into the engine type. Unknown coverage types
// yield a benefit with no coverage, which the engine treats as no benefit.
func (r BenefitRecord) Benefit() rating.Benefit {
	b := rating.Benefit{
		ID:              r.ID,
		PartnerName:     r.PartnerName,
		PlanName:        r.PlanName,
		ServiceCategory: r.ServiceCategory,
		ApplyAirportFee: r.ApplyAirportFee,
		ApplyFixedFee:   r.ApplyFixedFee,
	}
	switch strings.ToLower(strings.TrimSpace(r.CoverageType)) {
	case CoverageDistanceCap:
		b.Coverage = rating.DistanceCap{LimitKm: r.LimitKm}
	case CoverageMonetaryCap:
		b.Coverage = rating.MonetaryCap{Limit: r.LimitAmount, Currency: r.LimitCurrency}
	case CoverageFuelLiters:
		b.Coverage = rating.FuelLiters{Limits: rating.FuelLimits{
			Super:   r.FuelSuper,
			Regular: r.FuelRegular,
			Diesel:  r.FuelDiesel,
		}}
	}
	return b
}
