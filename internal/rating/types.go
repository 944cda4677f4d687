package rating

// Tariff is the tiered pricing schedule for one service category. Entering the
// base tier at all charges the full base cost, regardless of how far under the
// included distance the trip stays.
type Tariff struct {
	ServiceKey string
	BaseCost   float64
	IncludedKm float64
	CostPerKm  float64
	// ChargePS and ChargeSD gate which distance legs are billable. Only the
	// heavy towing tariff carries billing rules; the standard towing tariff
	// bills the SD leg unconditionally.
	ChargePS bool
	ChargeSD bool
	// FixedFee is the administrative fee added before coverage resolution when
	// the selected benefit carries apply_fixed_fee.
	FixedFee float64
}

// AirportConfig holds the airport taxi surcharges.
type AirportConfig struct {
	FeeMultiplier float64
	ParkingCost   float64
}

// Defaults used when the airport tariff document has not been configured.
const (
	DefaultAirportFeeMultiplier = 1.34
	DefaultParkingCost          = 750
)

// TaxRule describes how tax applies to a quote. Only excess-only rules are
// meaningful: tax is charged on what the customer pays, never on the covered
// portion. ApplyToExcess is a legacy flag equivalent to Type == "excess_only".
type TaxRule struct {
	Rate          float64
	Type          string
	ApplyToExcess bool
}

// TaxTypeExcessOnly is the only tax rule type the engine acts on.
const TaxTypeExcessOnly = "excess_only"

// ExcessOnly reports whether the rule taxes the uncovered amount.
func (r TaxRule) ExcessOnly() bool {
	return r.Type == TaxTypeExcessOnly || r.ApplyToExcess
}

// TollPrices lists the toll fare per vehicle class.
type TollPrices struct {
	Light    float64 `json:"light"`
	Microbus float64 `json:"microbus"`
	Tow      float64 `json:"tow"`
	Heavy    float64 `json:"heavy"`
}

// Toll is a single toll booth with per-class pricing.
type Toll struct {
	ID     string     `json:"id"`
	Name   string     `json:"name"`
	Route  string     `json:"route"`
	Prices TollPrices `json:"prices"`
}

// VehicleClass selects which toll price applies to a service.
type VehicleClass int

const (
	ClassLight VehicleClass = iota
	ClassMicrobus
	ClassTow
	ClassHeavy
)

// PriceFor resolves the toll price for the requested class, falling back to
// the tow price when the class has no fare configured.
func (t Toll) PriceFor(class VehicleClass) float64 {
	var price float64
	switch class {
	case ClassLight:
		price = t.Prices.Light
	case ClassMicrobus:
		price = t.Prices.Microbus
	case ClassTow:
		price = t.Prices.Tow
	case ClassHeavy:
		price = t.Prices.Heavy
	}
	if price == 0 {
		return t.Prices.Tow
	}
	return price
}

// FuelLimits holds per-grade liter allowances for fuel-delivery benefits.
// Grades are never pooled.
type FuelLimits struct {
	Super   float64
	Regular float64
	Diesel  float64
}

// FuelPrices holds the current pump price per liter for each grade.
type FuelPrices struct {
	Super   float64
	Regular float64
	Diesel  float64
}

// Coverage is the policy attached to a benefit. Exactly one concrete policy
// applies per benefit; orchestrators dispatch on the concrete type.
type Coverage interface {
	isCoverage()
}

// DistanceCap covers the service in full while the chargeable distance stays
// within LimitKm; beyond it the customer pays the overage per kilometer.
type DistanceCap struct {
	LimitKm float64
}

// MonetaryCap covers the service cost up to a monetary limit, optionally
// denominated in USD.
type MonetaryCap struct {
	Limit    float64
	Currency string
}

// FuelLiters covers fuel delivery per grade. It never participates in the
// distance-based engines.
type FuelLiters struct {
	Limits FuelLimits
}

func (DistanceCap) isCoverage() {}
func (MonetaryCap) isCoverage() {}
func (FuelLiters) isCoverage()  {}

// Benefit is one insurance partner's coverage plan for one service category.
// At most one benefit is active per quote.
type Benefit struct {
	ID              string
	PartnerName     string
	PlanName        string
	ServiceCategory string
	Coverage        Coverage
	// ApplyAirportFee disables the airport fee multiplier when explicitly
	// false. Nil means the fee applies.
	ApplyAirportFee *bool
	ApplyFixedFee   bool
}

// Location identifies an airport taxi destination.
type Location struct {
	Province string `json:"province"`
	Canton   string `json:"canton"`
	District string `json:"district"`
}

// AirportRoute is a flat fare for one destination, not tiered.
type AirportRoute struct {
	ID        string   `json:"id"`
	AirportID string   `json:"airportId"`
	Location  Location `json:"location"`
	Price     float64  `json:"price"`
}

// QuoteResult is the auditable outcome of one engine invocation. It is created
// fresh per computation and never persisted.
//
// Invariants: FinalTotal == ClientExcedente + TaxAmount, BenefitCovered <=
// ServiceSubtotal, ClientExcedente >= 0.
type QuoteResult struct {
	ServiceSubtotal  float64  `json:"serviceSubtotal"`
	BenefitCovered   float64  `json:"benefitCovered"`
	ClientExcedente  float64  `json:"clientExcedente"`
	TaxAmount        float64  `json:"taxAmount"`
	FinalTotal       float64  `json:"finalTotal"`
	Breakdown        []string `json:"breakdown"`
	ExchangeRateUsed *float64 `json:"exchangeRateUsed,omitempty"`
	// RulesLoaded is false when a required rate table was absent; the rest of
	// the result is then a conservative zero state.
	RulesLoaded bool `json:"rulesLoaded"`
}

// Snapshot bundles the immutable rate tables one towing or heavy invocation
// consumes. The engine never fetches or caches these itself.
type Snapshot struct {
	Tariff       *Tariff
	Tax          *TaxRule
	Tolls        []Toll
	ExchangeRate float64
}

// AirportSnapshot bundles the inputs of one airport taxi invocation.
type AirportSnapshot struct {
	Config       *AirportConfig
	Tax          *TaxRule
	ExchangeRate float64
}
