package rating

import "fmt"

// HeavyInput holds the operator-entered fields for a heavy towing quote. Both
// legs are entered; the tariff billing rules decide which ones are billable.
type HeavyInput struct {
	PSKm     float64
	SDKm     float64
	Maneuver float64
	TollIDs  []string
	Benefit  *Benefit
}

// QuoteHeavy computes a heavy towing quote. Each distance leg contributes only
// when its billing flag is set, tolls resolve against the heavy vehicle class
// (falling back to the tow price), and the whole uncovered amount is taxable.
func QuoteHeavy(in HeavyInput, snap Snapshot) QuoteResult {
	if snap.Tariff == nil || snap.Tax == nil {
		return QuoteResult{Breakdown: []string{}}
	}
	t := *snap.Tariff

	var chargeableKm float64
	if t.ChargePS {
		chargeableKm += sanitize(in.PSKm)
	}
	if t.ChargeSD {
		chargeableKm += sanitize(in.SDKm)
	}
	maneuver := sanitize(in.Maneuver)

	lines := []string{}
	distanceCost := DistanceCost(chargeableKm, t)
	appendDistanceLines(&lines, chargeableKm, t, "Tarifa base pesada")

	tollsCost := tollTotal(in.TollIDs, snap.Tolls, ClassHeavy, &lines)
	total := distanceCost + maneuver + tollsCost
	total += applyFixedFee(&lines, in.Benefit, t)

	res := Resolve(total, in.Benefit, DistanceContext{
		ChargeableKm: chargeableKm,
		CostPerKm:    t.CostPerKm,
		TollsCost:    tollsCost,
	}, snap.ExchangeRate)
	lines = append(lines, res.Lines...)

	// Heavy towing taxes everything the customer pays, tolls included.
	clientPays := res.ClientPays()
	tax := ExcessTax(clientPays, *snap.Tax)
	if tax > 0 {
		lines = append(lines, fmt.Sprintf("IVA (%s%% sobre %s): %s",
			num(snap.Tax.Rate*100), crc(clientPays), crc(tax)))
	}

	return QuoteResult{
		ServiceSubtotal:  total,
		BenefitCovered:   res.Covered,
		ClientExcedente:  clientPays,
		TaxAmount:        tax,
		FinalTotal:       clientPays + tax,
		Breakdown:        lines,
		ExchangeRateUsed: res.RateUsed,
		RulesLoaded:      true,
	}
}
