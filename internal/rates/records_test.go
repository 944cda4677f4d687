package rates

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rodasol/cotizador-api/internal/rating"
)

func TestBenefitRecordDistanceCap(t *testing.T) {
	r := BenefitRecord{
		ID:              "b-1",
		PartnerName:     "ASSA",
		PlanName:        "Full Cobertura",
		ServiceCategory: "towing",
		CoverageType:    "distance_cap",
		LimitKm:         60,
	}
	b := r.Benefit()
	require.Equal(t, "ASSA", b.PartnerName)
	cov, ok := b.Coverage.(rating.DistanceCap)
	require.True(t, ok)
	require.InDelta(t, 60, cov.LimitKm, 1e-9)
}

func TestBenefitRecordMonetaryCapUSD(t *testing.T) {
	r := BenefitRecord{
		CoverageType:  "monetary_cap",
		LimitAmount:   100,
		LimitCurrency: "USD",
	}
	cov, ok := r.Benefit().Coverage.(rating.MonetaryCap)
	require.True(t, ok)
	require.InDelta(t, 100, cov.Limit, 1e-9)
	require.Equal(t, "USD", cov.Currency)
}

func TestBenefitRecordFuelLiters(t *testing.T) {
	r := BenefitRecord{
		CoverageType: "fuel_liters",
		FuelSuper:    10,
		FuelRegular:  15,
		FuelDiesel:   20,
	}
	cov, ok := r.Benefit().Coverage.(rating.FuelLiters)
	require.True(t, ok)
	require.InDelta(t, 10, cov.Limits.Super, 1e-9)
	require.InDelta(t, 15, cov.Limits.Regular, 1e-9)
	require.InDelta(t, 20, cov.Limits.Diesel, 1e-9)
}

func TestBenefitRecordUnknownCoverage(t *testing.T) {
	r := BenefitRecord{CoverageType: "percentage"}
	require.Nil(t, r.Benefit().Coverage)
}

func TestBenefitRecordCoverageTypeNormalized(t *testing.T) {
	r := BenefitRecord{CoverageType: "  Distance_Cap ", LimitKm: 25}
	_, ok := r.Benefit().Coverage.(rating.DistanceCap)
	require.True(t, ok)
}

func TestBenefitRecordCarriesFlags(t *testing.T) {
	noFee := false
	r := BenefitRecord{
		CoverageType:    "monetary_cap",
		LimitAmount:     50000,
		ApplyAirportFee: &noFee,
		ApplyFixedFee:   true,
	}
	b := r.Benefit()
	require.NotNil(t, b.ApplyAirportFee)
	require.False(t, *b.ApplyAirportFee)
	require.True(t, b.ApplyFixedFee)
}
