package rating

import "fmt"

// DistanceContext carries the distance-derived figures a distance-capped
// benefit needs to price the overage.
type DistanceContext struct {
	ChargeableKm float64
	CostPerKm    float64
	TollsCost    float64
}

// Resolution splits a total service cost into the covered portion and what the
// customer pays. ClientService and ClientTolls are kept apart because the
// service orchestrators tax them differently.
type Resolution struct {
	Covered       float64
	ClientService float64
	ClientTolls   float64
	// RateUsed is set when a USD limit was normalized, for UI disclosure.
	RateUsed *float64
	Lines    []string
}

// ClientPays is the full uncovered amount.
func (r Resolution) ClientPays() float64 {
	return r.ClientService + r.ClientTolls
}

// Resolve applies the selected benefit's coverage policy to the total service
// cost. With no benefit the customer pays everything, with tolls split out so
// the caller can keep them outside the taxable base where the service demands
// it.
func Resolve(total float64, b *Benefit, dctx DistanceContext, exchangeRate float64) Resolution {
	if b == nil {
		return Resolution{
			ClientService: total - dctx.TollsCost,
			ClientTolls:   dctx.TollsCost,
		}
	}

	switch cov := b.Coverage.(type) {
	case DistanceCap:
		if dctx.ChargeableKm <= cov.LimitKm {
			return Resolution{
				Covered: total,
				Lines:   []string{fmt.Sprintf("Cubierto por plan de %s KM", num(cov.LimitKm))},
			}
		}
		excessKm := dctx.ChargeableKm - cov.LimitKm
		clientService := excessKm * dctx.CostPerKm
		return Resolution{
			Covered:       total - (clientService + dctx.TollsCost),
			ClientService: clientService,
			ClientTolls:   dctx.TollsCost,
			Lines:         []string{fmt.Sprintf("Excede por %s KM", num(excessKm))},
		}
	case MonetaryCap:
		limit, converted := NormalizeLimit(cov.Limit, cov.Currency, exchangeRate)
		res := Resolution{}
		if converted {
			rate := exchangeRate
			res.RateUsed = &rate
		}
		if total <= limit {
			res.Covered = total
			return res
		}
		res.Covered = limit
		res.ClientService = total - limit
		return res
	case FuelLiters:
		// Fuel benefits never offset a distance-based quote; the liter limits
		// are priced per grade by FuelEquivalents for the fuel workflow.
		return Resolution{
			ClientService: total - dctx.TollsCost,
			ClientTolls:   dctx.TollsCost,
		}
	default:
		return Resolution{
			ClientService: total - dctx.TollsCost,
			ClientTolls:   dctx.TollsCost,
		}
	}
}

// FuelEquivalents converts per-grade liter limits into monetary equivalents at
// the current pump prices. Each grade is computed independently; allowances
// are never pooled across grades.
func FuelEquivalents(limits FuelLimits, prices FuelPrices) map[string]float64 {
	return map[string]float64{
		"super":   limits.Super * prices.Super,
		"regular": limits.Regular * prices.Regular,
		"diesel":  limits.Diesel * prices.Diesel,
	}
}
