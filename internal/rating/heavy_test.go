package rating_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rodasol/cotizador-api/internal/rating"
)

func heavySnapshot(chargePS, chargeSD bool) rating.Snapshot {
	return rating.Snapshot{
		Tariff: &rating.Tariff{
			ServiceKey: "CR_heavy_towing",
			BaseCost:   45000,
			IncludedKm: 10,
			CostPerKm:  1500,
			ChargePS:   chargePS,
			ChargeSD:   chargeSD,
		},
		Tax:          &rating.TaxRule{Rate: 0.13, Type: rating.TaxTypeExcessOnly},
		ExchangeRate: 500,
	}
}

func TestQuoteHeavyBillsOnlyFlaggedLegs(t *testing.T) {
	in := rating.HeavyInput{PSKm: 8, SDKm: 12, Maneuver: 0}

	// Both legs billable: 20 km chargeable, 10 km over.
	q := rating.QuoteHeavy(in, heavySnapshot(true, true))
	require.InDelta(t, 45000+10*1500, q.ServiceSubtotal, 1e-9)

	// Only the SD leg billable: 12 km chargeable, 2 km over.
	q = rating.QuoteHeavy(in, heavySnapshot(false, true))
	require.InDelta(t, 45000+2*1500, q.ServiceSubtotal, 1e-9)

	// No leg billable: nothing to charge.
	q = rating.QuoteHeavy(in, heavySnapshot(false, false))
	require.Zero(t, q.ServiceSubtotal)
	requireQuoteInvariants(t, q)
}

func TestQuoteHeavyTollClassFallback(t *testing.T) {
	snap := heavySnapshot(true, true)
	snap.Tolls = []rating.Toll{
		{ID: "t1", Name: "Naranjo", Prices: rating.TollPrices{Tow: 650, Heavy: 1200}},
		{ID: "t2", Name: "Zurquí", Prices: rating.TollPrices{Tow: 800}},
	}
	q := rating.QuoteHeavy(rating.HeavyInput{SDKm: 5, TollIDs: []string{"t1", "t2"}}, snap)

	// t1 resolves to the heavy price, t2 falls back to tow.
	require.InDelta(t, 45000+1200+800, q.ServiceSubtotal, 1e-9)
}

func TestQuoteHeavyMonetaryCapTaxesFullExcess(t *testing.T) {
	snap := heavySnapshot(true, true)
	snap.Tolls = []rating.Toll{{ID: "t1", Name: "Naranjo", Prices: rating.TollPrices{Heavy: 1000}}}
	benefit := &rating.Benefit{Coverage: rating.MonetaryCap{Limit: 40000, Currency: "CRC"}}
	q := rating.QuoteHeavy(rating.HeavyInput{PSKm: 5, SDKm: 5, Maneuver: 2000, TollIDs: []string{"t1"}, Benefit: benefit}, snap)

	// Subtotal 45000+2000+1000 = 48000; covered 40000; the whole 8000
	// excess is taxable, tolls included.
	require.InDelta(t, 48000, q.ServiceSubtotal, 1e-9)
	require.InDelta(t, 40000, q.BenefitCovered, 1e-9)
	require.InDelta(t, 8000, q.ClientExcedente, 1e-9)
	require.InDelta(t, 8000*0.13, q.TaxAmount, 1e-9)
	requireQuoteInvariants(t, q)
}

func TestQuoteHeavyNoBenefitTaxesTollsToo(t *testing.T) {
	snap := heavySnapshot(true, true)
	snap.Tolls = []rating.Toll{{ID: "t1", Name: "Naranjo", Prices: rating.TollPrices{Heavy: 1000}}}
	q := rating.QuoteHeavy(rating.HeavyInput{SDKm: 5, TollIDs: []string{"t1"}}, snap)

	require.InDelta(t, 46000, q.ClientExcedente, 1e-9)
	require.InDelta(t, 46000*0.13, q.TaxAmount, 1e-9)
	requireQuoteInvariants(t, q)
}

func TestQuoteHeavyMissingTariffIsPending(t *testing.T) {
	q := rating.QuoteHeavy(rating.HeavyInput{SDKm: 5}, rating.Snapshot{Tax: &rating.TaxRule{Rate: 0.13}})
	require.False(t, q.RulesLoaded)
	require.Zero(t, q.FinalTotal)
}
