package rating

import "testing"

func TestNormalizeLimitUSD(t *testing.T) {
	value, converted := NormalizeLimit(50, CurrencyUSD, 520)
	if !converted {
		t.Fatal("expected conversion for USD limit")
	}
	if value != 26000 {
		t.Fatalf("expected 26000, got %v", value)
	}
}

func TestNormalizeLimitCRCPassThrough(t *testing.T) {
	value, converted := NormalizeLimit(30000, "CRC", 520)
	if converted {
		t.Fatal("expected no conversion for CRC limit")
	}
	if value != 30000 {
		t.Fatalf("expected 30000, got %v", value)
	}
}

func TestResolveNoBenefit(t *testing.T) {
	res := Resolve(32000, nil, DistanceContext{ChargeableKm: 25, CostPerKm: 800, TollsCost: 1000}, 500)
	if res.Covered != 0 {
		t.Fatalf("expected no coverage, got %v", res.Covered)
	}
	if res.ClientService != 31000 || res.ClientTolls != 1000 {
		t.Fatalf("unexpected split: service %v tolls %v", res.ClientService, res.ClientTolls)
	}
}

func TestResolveDistanceCapWithinLimit(t *testing.T) {
	b := &Benefit{Coverage: DistanceCap{LimitKm: 30}}
	res := Resolve(32000, b, DistanceContext{ChargeableKm: 25, CostPerKm: 800, TollsCost: 1000}, 500)
	if res.Covered != 32000 {
		t.Fatalf("expected full coverage, got %v", res.Covered)
	}
	if res.ClientPays() != 0 {
		t.Fatalf("expected zero client pays, got %v", res.ClientPays())
	}
}

func TestResolveDistanceCapExceeded(t *testing.T) {
	b := &Benefit{Coverage: DistanceCap{LimitKm: 20}}
	res := Resolve(33000, b, DistanceContext{ChargeableKm: 25, CostPerKm: 800, TollsCost: 1000}, 500)
	if res.ClientService != 4000 {
		t.Fatalf("expected 5 excess km at 800, got %v", res.ClientService)
	}
	if res.ClientTolls != 1000 {
		t.Fatalf("expected tolls billed to client, got %v", res.ClientTolls)
	}
	if res.Covered != 33000-5000 {
		t.Fatalf("unexpected covered %v", res.Covered)
	}
}

func TestResolveMonetaryCapUSD(t *testing.T) {
	b := &Benefit{Coverage: MonetaryCap{Limit: 50, Currency: CurrencyUSD}}
	res := Resolve(32000, b, DistanceContext{}, 520)
	if res.Covered != 26000 {
		t.Fatalf("expected covered 26000, got %v", res.Covered)
	}
	if res.ClientService != 6000 || res.ClientTolls != 0 {
		t.Fatalf("unexpected split: service %v tolls %v", res.ClientService, res.ClientTolls)
	}
	if res.RateUsed == nil || *res.RateUsed != 520 {
		t.Fatalf("expected rate disclosure of 520, got %v", res.RateUsed)
	}
}

func TestResolveMonetaryCapCoversFully(t *testing.T) {
	b := &Benefit{Coverage: MonetaryCap{Limit: 40000, Currency: "CRC"}}
	res := Resolve(32000, b, DistanceContext{}, 500)
	if res.Covered != 32000 || res.ClientPays() != 0 {
		t.Fatalf("expected full coverage, got covered %v pays %v", res.Covered, res.ClientPays())
	}
}

// Increasing the exchange rate never decreases coverage of a USD cap.
func TestMonetaryCapMonotonicInExchangeRate(t *testing.T) {
	b := &Benefit{Coverage: MonetaryCap{Limit: 50, Currency: CurrencyUSD}}
	prev := -1.0
	for rate := 400.0; rate <= 700; rate += 10 {
		res := Resolve(32000, b, DistanceContext{}, rate)
		if res.Covered < prev {
			t.Fatalf("coverage decreased at rate %v: %v < %v", rate, res.Covered, prev)
		}
		prev = res.Covered
	}
}

func TestFuelEquivalentsPerGrade(t *testing.T) {
	limits := FuelLimits{Super: 20, Regular: 25, Diesel: 30}
	prices := FuelPrices{Super: 700, Regular: 680, Diesel: 620}
	eq := FuelEquivalents(limits, prices)
	if eq["super"] != 14000 || eq["regular"] != 17000 || eq["diesel"] != 18600 {
		t.Fatalf("unexpected equivalents: %#v", eq)
	}
}

func TestExcessTax(t *testing.T) {
	rule := TaxRule{Rate: 0.13, Type: TaxTypeExcessOnly}
	if got := ExcessTax(0, rule); got != 0 {
		t.Fatalf("expected zero tax on zero excess, got %v", got)
	}
	if got := ExcessTax(-100, rule); got != 0 {
		t.Fatalf("expected zero tax on negative excess, got %v", got)
	}
	if got := ExcessTax(4000, rule); got != 520 {
		t.Fatalf("expected 520, got %v", got)
	}
	// A rule that is not excess-only never taxes the quote.
	if got := ExcessTax(4000, TaxRule{Rate: 0.13, Type: "gross"}); got != 0 {
		t.Fatalf("expected zero tax for non excess rule, got %v", got)
	}
	// The legacy flag is honored.
	if got := ExcessTax(4000, TaxRule{Rate: 0.13, ApplyToExcess: true}); got != 520 {
		t.Fatalf("expected 520 under legacy flag, got %v", got)
	}
}
