package rating

import "fmt"

// AirportInput holds the selection for an airport taxi quote. The route is
// resolved externally by exact province/canton/district match.
type AirportInput struct {
	Route     *AirportRoute
	Benefit   *Benefit
	RoundTrip bool
}

// AirportDetail exposes the per-leg figures the airport CRM note discloses in
// addition to the aggregate QuoteResult.
type AirportDetail struct {
	ProviderCost   float64  `json:"providerCost"`
	ClientCostBase float64  `json:"clientCostBase"`
	BenefitApplied float64  `json:"benefitApplied"`
	ExcedentPerLeg float64  `json:"excedentPerLeg"`
	TaxPerLeg      float64  `json:"taxPerLeg"`
	TotalOneWay    float64  `json:"totalOneWay"`
	GrandTotal     float64  `json:"grandTotal"`
	FeeApplied     bool     `json:"feeApplied"`
	Multiplier     float64  `json:"multiplier"`
	Parking        float64  `json:"parking"`
	RoundTrip      bool     `json:"roundTrip"`
	RateUsed       *float64 `json:"exchangeRateUsed,omitempty"`
}

// QuoteAirport computes an airport taxi quote. The base fare is a flat route
// lookup; the fee multiplier applies unless the benefit opts out, the parking
// surcharge is added after the multiplier, and coverage resolves against the
// one-way subtotal under monetary caps only. A round trip doubles the one-way
// net result; the coverage limit is consumed once per direction, never pooled
// across both legs.
func QuoteAirport(in AirportInput, snap AirportSnapshot) (QuoteResult, AirportDetail) {
	if in.Route == nil || snap.Tax == nil {
		return QuoteResult{Breakdown: []string{}}, AirportDetail{}
	}

	cfg := AirportConfig{FeeMultiplier: DefaultAirportFeeMultiplier, ParkingCost: DefaultParkingCost}
	if snap.Config != nil {
		if snap.Config.FeeMultiplier > 0 {
			cfg.FeeMultiplier = snap.Config.FeeMultiplier
		}
		if snap.Config.ParkingCost > 0 {
			cfg.ParkingCost = snap.Config.ParkingCost
		}
	}

	base := in.Route.Price
	appliesFee := true
	if in.Benefit != nil && in.Benefit.ApplyAirportFee != nil {
		appliesFee = *in.Benefit.ApplyAirportFee
	}
	costWithFee := base
	lines := []string{fmt.Sprintf("Tarifa proveedor %s: %s", in.Route.AirportID, crc(base))}
	if appliesFee {
		costWithFee = base * cfg.FeeMultiplier
		lines = append(lines, fmt.Sprintf("Fee aeropuerto (x%s): %s", num(cfg.FeeMultiplier), crc(costWithFee)))
	} else {
		lines = append(lines, "Sin fee de aeropuerto")
	}
	subtotal := costWithFee + cfg.ParkingCost
	lines = append(lines, "Parqueo: "+crc(cfg.ParkingCost))

	var benefitAmount float64
	var rateUsed *float64
	if in.Benefit != nil {
		if cov, ok := in.Benefit.Coverage.(MonetaryCap); ok {
			value, converted := NormalizeLimit(cov.Limit, cov.Currency, snap.ExchangeRate)
			benefitAmount = value
			if converted {
				rate := snap.ExchangeRate
				rateUsed = &rate
			}
			lines = append(lines, "Beneficio aplicado: "+crc(benefitAmount))
		}
	}

	excedent := subtotal - benefitAmount
	if excedent < 0 {
		excedent = 0
	}
	tax := ExcessTax(excedent, *snap.Tax)
	if tax > 0 {
		lines = append(lines, fmt.Sprintf("IVA (%s%% sobre %s): %s",
			num(snap.Tax.Rate*100), crc(excedent), crc(tax)))
	}
	oneWay := excedent + tax

	legs := 1.0
	if in.RoundTrip {
		legs = 2
		lines = append(lines, "Ida y vuelta: total por trayecto x2")
	}
	covered := min(subtotal, benefitAmount)

	detail := AirportDetail{
		ProviderCost:   base,
		ClientCostBase: subtotal,
		BenefitApplied: benefitAmount,
		ExcedentPerLeg: excedent,
		TaxPerLeg:      tax,
		TotalOneWay:    oneWay,
		GrandTotal:     oneWay * legs,
		FeeApplied:     appliesFee,
		Multiplier:     cfg.FeeMultiplier,
		Parking:        cfg.ParkingCost,
		RoundTrip:      in.RoundTrip,
		RateUsed:       rateUsed,
	}
	result := QuoteResult{
		ServiceSubtotal:  subtotal * legs,
		BenefitCovered:   covered * legs,
		ClientExcedente:  excedent * legs,
		TaxAmount:        tax * legs,
		FinalTotal:       oneWay * legs,
		Breakdown:        lines,
		ExchangeRateUsed: rateUsed,
		RulesLoaded:      true,
	}
	return result, detail
}
