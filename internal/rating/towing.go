package rating

import "fmt"

// TowingInput holds the operator-entered fields for a standard towing quote.
// Only the pickup-to-destination (SD) leg is chargeable.
type TowingInput struct {
	SDKm     float64
	Maneuver float64
	TollIDs  []string
	Benefit  *Benefit
}

// QuoteTowing computes a standard towing quote. Tolls resolve against the tow
// vehicle class and the maneuver fee is a coverable pass-through addend. With
// a missing tariff or tax rule the result is a zero-valued pending state.
func QuoteTowing(in TowingInput, snap Snapshot) QuoteResult {
	if snap.Tariff == nil || snap.Tax == nil {
		return QuoteResult{Breakdown: []string{}}
	}
	t := *snap.Tariff
	sd := sanitize(in.SDKm)
	maneuver := sanitize(in.Maneuver)

	lines := []string{}
	distanceCost := DistanceCost(sd, t)
	appendDistanceLines(&lines, sd, t, "Tarifa base")

	tollsCost := tollTotal(in.TollIDs, snap.Tolls, ClassTow, &lines)
	total := distanceCost + maneuver + tollsCost
	total += applyFixedFee(&lines, in.Benefit, t)

	res := Resolve(total, in.Benefit, DistanceContext{
		ChargeableKm: sd,
		CostPerKm:    t.CostPerKm,
		TollsCost:    tollsCost,
	}, snap.ExchangeRate)
	lines = append(lines, res.Lines...)

	// Standard towing taxes only the uncovered service portion; the tolls the
	// customer pays stay outside the taxable base.
	tax := ExcessTax(res.ClientService, *snap.Tax)
	if tax > 0 {
		lines = append(lines, fmt.Sprintf("IVA (%s%% sobre %s): %s",
			num(snap.Tax.Rate*100), crc(res.ClientService), crc(tax)))
	}

	excedente := res.ClientPays()
	return QuoteResult{
		ServiceSubtotal:  total,
		BenefitCovered:   res.Covered,
		ClientExcedente:  excedente,
		TaxAmount:        tax,
		FinalTotal:       excedente + tax,
		Breakdown:        lines,
		ExchangeRateUsed: res.RateUsed,
		RulesLoaded:      true,
	}
}

func appendDistanceLines(lines *[]string, km float64, t Tariff, baseLabel string) {
	if km <= 0 {
		return
	}
	if km <= t.IncludedKm {
		*lines = append(*lines, fmt.Sprintf("%s (%skm): %s", baseLabel, num(t.IncludedKm), crc(t.BaseCost)))
		return
	}
	extraKm := km - t.IncludedKm
	*lines = append(*lines, fmt.Sprintf("Base (%skm): %s + Extra (%skm): %s",
		num(t.IncludedKm), crc(t.BaseCost), num(extraKm), crc(extraKm*t.CostPerKm)))
}

// applyFixedFee returns the administrative fixed fee when the selected benefit
// demands it. The fee joins the total before coverage resolution, so it can be
// covered or billed like any other cost component.
func applyFixedFee(lines *[]string, b *Benefit, t Tariff) float64 {
	if b == nil || !b.ApplyFixedFee || t.FixedFee <= 0 {
		return 0
	}
	*lines = append(*lines, "Cargo administrativo: "+crc(t.FixedFee))
	return t.FixedFee
}
