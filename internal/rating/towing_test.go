package rating_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rodasol/cotizador-api/internal/rating"
)

func towingSnapshot() rating.Snapshot {
	return rating.Snapshot{
		Tariff: &rating.Tariff{
			ServiceKey: "CR_towing_standard",
			BaseCost:   15000,
			IncludedKm: 10,
			CostPerKm:  800,
		},
		Tax:          &rating.TaxRule{Rate: 0.13, Type: rating.TaxTypeExcessOnly},
		ExchangeRate: 500,
	}
}

func requireQuoteInvariants(t *testing.T, q rating.QuoteResult) {
	t.Helper()
	require.InDelta(t, q.ClientExcedente+q.TaxAmount, q.FinalTotal, 1e-9)
	require.LessOrEqual(t, q.BenefitCovered, q.ServiceSubtotal+1e-9)
	require.GreaterOrEqual(t, q.ClientExcedente, 0.0)
}

func TestQuoteTowingNoBenefit(t *testing.T) {
	q := rating.QuoteTowing(rating.TowingInput{SDKm: 25, Maneuver: 5000}, towingSnapshot())

	require.True(t, q.RulesLoaded)
	require.InDelta(t, 32000, q.ServiceSubtotal, 1e-9)
	require.InDelta(t, 0, q.BenefitCovered, 1e-9)
	require.InDelta(t, 32000, q.ClientExcedente, 1e-9)
	require.InDelta(t, 4160, q.TaxAmount, 1e-9)
	require.InDelta(t, 36160, q.FinalTotal, 1e-9)
	requireQuoteInvariants(t, q)
}

func TestQuoteTowingDistanceCap(t *testing.T) {
	benefit := &rating.Benefit{
		PartnerName: "INS",
		PlanName:    "Hogar Plus",
		Coverage:    rating.DistanceCap{LimitKm: 20},
	}
	q := rating.QuoteTowing(rating.TowingInput{SDKm: 25, Maneuver: 5000, Benefit: benefit}, towingSnapshot())

	require.InDelta(t, 4000, q.ClientExcedente, 1e-9)
	require.InDelta(t, 520, q.TaxAmount, 1e-9)
	require.InDelta(t, 4520, q.FinalTotal, 1e-9)
	require.InDelta(t, 28000, q.BenefitCovered, 1e-9)
	requireQuoteInvariants(t, q)
}

func TestQuoteTowingDistanceCapFullCoverage(t *testing.T) {
	benefit := &rating.Benefit{Coverage: rating.DistanceCap{LimitKm: 30}}
	q := rating.QuoteTowing(rating.TowingInput{SDKm: 25, Maneuver: 5000, Benefit: benefit}, towingSnapshot())

	require.InDelta(t, 32000, q.BenefitCovered, 1e-9)
	require.Zero(t, q.ClientExcedente)
	require.Zero(t, q.TaxAmount)
	require.Zero(t, q.FinalTotal)
	requireQuoteInvariants(t, q)
}

func TestQuoteTowingMonetaryCapUSD(t *testing.T) {
	snap := towingSnapshot()
	snap.ExchangeRate = 520
	benefit := &rating.Benefit{Coverage: rating.MonetaryCap{Limit: 50, Currency: rating.CurrencyUSD}}
	q := rating.QuoteTowing(rating.TowingInput{SDKm: 25, Maneuver: 5000, Benefit: benefit}, snap)

	require.InDelta(t, 26000, q.BenefitCovered, 1e-9)
	require.InDelta(t, 6000, q.ClientExcedente, 1e-9)
	require.InDelta(t, 780, q.TaxAmount, 1e-9)
	require.InDelta(t, 6780, q.FinalTotal, 1e-9)
	require.NotNil(t, q.ExchangeRateUsed)
	require.InDelta(t, 520, *q.ExchangeRateUsed, 1e-9)
	requireQuoteInvariants(t, q)
}

func TestQuoteTowingTolls(t *testing.T) {
	snap := towingSnapshot()
	snap.Tolls = []rating.Toll{
		{ID: "t1", Name: "Naranjo", Prices: rating.TollPrices{Tow: 650}},
		{ID: "t2", Name: "Zurquí", Prices: rating.TollPrices{Tow: 800}},
	}
	q := rating.QuoteTowing(rating.TowingInput{SDKm: 5, TollIDs: []string{"t1", "t2"}}, snap)

	require.InDelta(t, 15000+650+800, q.ServiceSubtotal, 1e-9)
	requireQuoteInvariants(t, q)
}

func TestQuoteTowingUnknownTollContributesZero(t *testing.T) {
	snap := towingSnapshot()
	snap.Tolls = []rating.Toll{{ID: "t1", Name: "Naranjo", Prices: rating.TollPrices{Tow: 650}}}
	q := rating.QuoteTowing(rating.TowingInput{SDKm: 5, TollIDs: []string{"t1", "missing"}}, snap)

	require.InDelta(t, 15650, q.ServiceSubtotal, 1e-9)
	require.Contains(t, q.Breakdown, "Peaje omitido: missing")
}

func TestQuoteTowingFixedFeeJoinsCoverageBase(t *testing.T) {
	snap := towingSnapshot()
	snap.Tariff.FixedFee = 2000
	benefit := &rating.Benefit{
		Coverage:      rating.MonetaryCap{Limit: 40000, Currency: "CRC"},
		ApplyFixedFee: true,
	}
	q := rating.QuoteTowing(rating.TowingInput{SDKm: 25, Maneuver: 5000, Benefit: benefit}, snap)

	// 32000 + 2000 fixed fee, fully inside the monetary cap.
	require.InDelta(t, 34000, q.ServiceSubtotal, 1e-9)
	require.InDelta(t, 34000, q.BenefitCovered, 1e-9)
	require.Zero(t, q.FinalTotal)
}

func TestQuoteTowingMissingRulesIsPending(t *testing.T) {
	q := rating.QuoteTowing(rating.TowingInput{SDKm: 25}, rating.Snapshot{Tax: &rating.TaxRule{Rate: 0.13}})
	require.False(t, q.RulesLoaded)
	require.Zero(t, q.FinalTotal)

	q = rating.QuoteTowing(rating.TowingInput{SDKm: 25}, rating.Snapshot{Tariff: &rating.Tariff{BaseCost: 1}})
	require.False(t, q.RulesLoaded)
	require.Zero(t, q.FinalTotal)
}

func TestQuoteTowingNegativeInputsCoerced(t *testing.T) {
	q := rating.QuoteTowing(rating.TowingInput{SDKm: -10, Maneuver: -500}, towingSnapshot())
	require.True(t, q.RulesLoaded)
	require.Zero(t, q.ServiceSubtotal)
	require.Zero(t, q.FinalTotal)
}
