package rates

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/rodasol/cotizador-api/internal/obs"
	"github.com/rodasol/cotizador-api/internal/rating"
)

type dbtx interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store serves the rate tables the quote engines consume: tariffs, tolls,
// benefits, airport routes, fuel prices, and tax rules. Reads go through a
// Redis cache; a cache miss or error falls through to Postgres. Missing rows
// are not errors — the engines render a pending quote for absent tables.
type Store struct {
	db     dbtx
	cache  *Cache
	logger zerolog.Logger
}

// NewStore constructs a Store. The cache may be nil.
func NewStore(db dbtx, cache *Cache, logger zerolog.Logger) (*Store, error) {
	if db == nil {
		return nil, errors.New("rates: db is required")
	}
	return &Store{db: db, cache: cache, logger: logger}, nil
}

// TariffByKey returns the tariff for one service category, or nil when the
// category has no tariff configured.
func (s *Store) TariffByKey(ctx context.Context, serviceKey string) (*rating.Tariff, error) {
	serviceKey = strings.TrimSpace(serviceKey)
	if serviceKey == "" {
		return nil, nil
	}
	key := "rates:tariff:" + serviceKey
	if s.cache != nil {
		var cached rating.Tariff
		if ok, err := s.cache.GetJSON(ctx, key, &cached); err == nil && ok {
			return &cached, nil
		}
	}
	defer s.observe("service_tariffs", time.Now())

	var t rating.Tariff
	err := s.db.QueryRow(ctx, `
		SELECT service_key, base_cost, included_km, cost_per_km, charge_ps, charge_sd, fixed_fee
		FROM service_tariffs
		WHERE service_key = $1
	`, serviceKey).Scan(&t.ServiceKey, &t.BaseCost, &t.IncludedKm, &t.CostPerKm, &t.ChargePS, &t.ChargeSD, &t.FixedFee)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("tariff by key: %w", err)
	}
	s.cacheSet(ctx, key, t)
	return &t, nil
}

// Tolls returns every toll booth ordered by name.
func (s *Store) Tolls(ctx context.Context) ([]rating.Toll, error) {
	const key = "rates:tolls"
	if s.cache != nil {
		var cached []rating.Toll
		if ok, err := s.cache.GetJSON(ctx, key, &cached); err == nil && ok {
			return cached, nil
		}
	}
	defer s.observe("tolls", time.Now())

	rows, err := s.db.Query(ctx, `
		SELECT id, name, route, price_light, price_microbus, price_tow, price_heavy
		FROM tolls
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("list tolls: %w", err)
	}
	defer rows.Close()

	tolls := make([]rating.Toll, 0, 16)
	for rows.Next() {
		var t rating.Toll
		if err := rows.Scan(&t.ID, &t.Name, &t.Route, &t.Prices.Light, &t.Prices.Microbus, &t.Prices.Tow, &t.Prices.Heavy); err != nil {
			return nil, fmt.Errorf("scan toll: %w", err)
		}
		tolls = append(tolls, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list tolls: %w", err)
	}
	s.cacheSet(ctx, key, tolls)
	return tolls, nil
}

// BenefitsByCategory returns the benefits offered for one service category.
func (s *Store) BenefitsByCategory(ctx context.Context, category string) ([]BenefitRecord, error) {
	category = strings.TrimSpace(category)
	key := "rates:benefits:" + category
	if s.cache != nil {
		var cached []BenefitRecord
		if ok, err := s.cache.GetJSON(ctx, key, &cached); err == nil && ok {
			return cached, nil
		}
	}
	defer s.observe("benefits", time.Now())

	rows, err := s.db.Query(ctx, `
		SELECT id, partner_name, plan_name, service_category, coverage_type,
		       limit_km, limit_amount, limit_currency,
		       fuel_super, fuel_regular, fuel_diesel,
		       apply_airport_fee, apply_fixed_fee
		FROM benefits
		WHERE service_category = $1
		ORDER BY partner_name, plan_name
	`, category)
	if err != nil {
		return nil, fmt.Errorf("list benefits: %w", err)
	}
	defer rows.Close()

	records, err := scanBenefits(rows)
	if err != nil {
		return nil, err
	}
	s.cacheSet(ctx, key, records)
	return records, nil
}

// BenefitByID returns one benefit, or nil when it does not exist.
func (s *Store) BenefitByID(ctx context.Context, id string) (*BenefitRecord, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, nil
	}
	defer s.observe("benefits", time.Now())

	rows, err := s.db.Query(ctx, `
		SELECT id, partner_name, plan_name, service_category, coverage_type,
		       limit_km, limit_amount, limit_currency,
		       fuel_super, fuel_regular, fuel_diesel,
		       apply_airport_fee, apply_fixed_fee
		FROM benefits
		WHERE id = $1
	`, id)
	if err != nil {
		return nil, fmt.Errorf("benefit by id: %w", err)
	}
	defer rows.Close()

	records, err := scanBenefits(rows)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return &records[0], nil
}

func scanBenefits(rows pgx.Rows) ([]BenefitRecord, error) {
	records := make([]BenefitRecord, 0, 8)
	for rows.Next() {
		var r BenefitRecord
		if err := rows.Scan(
			&r.ID, &r.PartnerName, &r.PlanName, &r.ServiceCategory, &r.CoverageType,
			&r.LimitKm, &r.LimitAmount, &r.LimitCurrency,
			&r.FuelSuper, &r.FuelRegular, &r.FuelDiesel,
			&r.ApplyAirportFee, &r.ApplyFixedFee,
		); err != nil {
			return nil, fmt.Errorf("scan benefit: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list benefits: %w", err)
	}
	return records, nil
}

// AirportRoutes returns every airport taxi route ordered by destination.
func (s *Store) AirportRoutes(ctx context.Context) ([]rating.AirportRoute, error) {
	const key = "rates:airport:routes"
	if s.cache != nil {
		var cached []rating.AirportRoute
		if ok, err := s.cache.GetJSON(ctx, key, &cached); err == nil && ok {
			return cached, nil
		}
	}
	defer s.observe("airport_routes", time.Now())

	rows, err := s.db.Query(ctx, `
		SELECT id, airport_id, province, canton, district, price
		FROM airport_routes
		ORDER BY province, canton, district
	`)
	if err != nil {
		return nil, fmt.Errorf("list airport routes: %w", err)
	}
	defer rows.Close()

	routes := make([]rating.AirportRoute, 0, 32)
	for rows.Next() {
		var r rating.AirportRoute
		if err := rows.Scan(&r.ID, &r.AirportID, &r.Location.Province, &r.Location.Canton, &r.Location.District, &r.Price); err != nil {
			return nil, fmt.Errorf("scan airport route: %w", err)
		}
		routes = append(routes, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list airport routes: %w", err)
	}
	s.cacheSet(ctx, key, routes)
	return routes, nil
}

// AirportRouteByLocation resolves the flat fare for one destination, or nil
// when no route covers it. Matching is case-insensitive on all three fields.
func (s *Store) AirportRouteByLocation(ctx context.Context, airportID string, loc rating.Location) (*rating.AirportRoute, error) {
	defer s.observe("airport_routes", time.Now())

	var r rating.AirportRoute
	err := s.db.QueryRow(ctx, `
		SELECT id, airport_id, province, canton, district, price
		FROM airport_routes
		WHERE airport_id = $1
		  AND lower(province) = lower($2)
		  AND lower(canton) = lower($3)
		  AND lower(district) = lower($4)
	`, strings.TrimSpace(airportID), strings.TrimSpace(loc.Province), strings.TrimSpace(loc.Canton), strings.TrimSpace(loc.District)).
		Scan(&r.ID, &r.AirportID, &r.Location.Province, &r.Location.Canton, &r.Location.District, &r.Price)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("airport route by location: %w", err)
	}
	return &r, nil
}

// AirportConfig returns the surcharge configuration for one airport, or nil
// when it has not been configured. The engine falls back to its defaults.
func (s *Store) AirportConfig(ctx context.Context, airportID string) (*rating.AirportConfig, error) {
	airportID = strings.TrimSpace(airportID)
	key := "rates:airport:config:" + airportID
	if s.cache != nil {
		var cached rating.AirportConfig
		if ok, err := s.cache.GetJSON(ctx, key, &cached); err == nil && ok {
			return &cached, nil
		}
	}
	defer s.observe("airport_configs", time.Now())

	var cfg rating.AirportConfig
	err := s.db.QueryRow(ctx, `
		SELECT fee_multiplier, parking_cost
		FROM airport_configs
		WHERE airport_id = $1
	`, airportID).Scan(&cfg.FeeMultiplier, &cfg.ParkingCost)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("airport config: %w", err)
	}
	s.cacheSet(ctx, key, cfg)
	return &cfg, nil
}

// FuelPrices returns the current pump price per liter for each grade. Grades
// without a row stay at zero.
func (s *Store) FuelPrices(ctx context.Context) (rating.FuelPrices, error) {
	const key = "rates:fuel"
	if s.cache != nil {
		var cached rating.FuelPrices
		if ok, err := s.cache.GetJSON(ctx, key, &cached); err == nil && ok {
			return cached, nil
		}
	}
	defer s.observe("fuel_prices", time.Now())

	rows, err := s.db.Query(ctx, `SELECT grade, price_per_liter FROM fuel_prices`)
	if err != nil {
		return rating.FuelPrices{}, fmt.Errorf("list fuel prices: %w", err)
	}
	defer rows.Close()

	var prices rating.FuelPrices
	for rows.Next() {
		var grade string
		var price float64
		if err := rows.Scan(&grade, &price); err != nil {
			return rating.FuelPrices{}, fmt.Errorf("scan fuel price: %w", err)
		}
		switch strings.ToLower(strings.TrimSpace(grade)) {
		case "super":
			prices.Super = price
		case "regular":
			prices.Regular = price
		case "diesel":
			prices.Diesel = price
		}
	}
	if err := rows.Err(); err != nil {
		return rating.FuelPrices{}, fmt.Errorf("list fuel prices: %w", err)
	}
	s.cacheSet(ctx, key, prices)
	return prices, nil
}

// TaxRuleByKey returns one tax rule, or nil when it is not configured.
func (s *Store) TaxRuleByKey(ctx context.Context, ruleKey string) (*rating.TaxRule, error) {
	ruleKey = strings.TrimSpace(ruleKey)
	if ruleKey == "" {
		return nil, nil
	}
	key := "rates:tax:" + ruleKey
	if s.cache != nil {
		var cached rating.TaxRule
		if ok, err := s.cache.GetJSON(ctx, key, &cached); err == nil && ok {
			return &cached, nil
		}
	}
	defer s.observe("tax_rules", time.Now())

	var rule rating.TaxRule
	err := s.db.QueryRow(ctx, `
		SELECT rate, rule_type, apply_to_excess
		FROM tax_rules
		WHERE rule_key = $1
	`, ruleKey).Scan(&rule.Rate, &rule.Type, &rule.ApplyToExcess)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("tax rule by key: %w", err)
	}
	s.cacheSet(ctx, key, rule)
	return &rule, nil
}

// Snapshot bundles the tariff, tax rule, and toll list one towing or heavy
// quote consumes. Absent tariff or tax leave the corresponding field nil; the
// caller supplies the exchange rate.
func (s *Store) Snapshot(ctx context.Context, serviceKey, taxKey string) (rating.Snapshot, error) {
	tariff, err := s.TariffByKey(ctx, serviceKey)
	if err != nil {
		return rating.Snapshot{}, err
	}
	tax, err := s.TaxRuleByKey(ctx, taxKey)
	if err != nil {
		return rating.Snapshot{}, err
	}
	tolls, err := s.Tolls(ctx)
	if err != nil {
		return rating.Snapshot{}, err
	}
	return rating.Snapshot{Tariff: tariff, Tax: tax, Tolls: tolls}, nil
}

// AirportSnapshot bundles the surcharge config and tax rule one airport quote
// consumes. The caller supplies the exchange rate.
func (s *Store) AirportSnapshot(ctx context.Context, airportID, taxKey string) (rating.AirportSnapshot, error) {
	cfg, err := s.AirportConfig(ctx, airportID)
	if err != nil {
		return rating.AirportSnapshot{}, err
	}
	tax, err := s.TaxRuleByKey(ctx, taxKey)
	if err != nil {
		return rating.AirportSnapshot{}, err
	}
	return rating.AirportSnapshot{Config: cfg, Tax: tax}, nil
}

func (s *Store) cacheSet(ctx context.Context, key string, v any) {
	if s.cache == nil {
		return
	}
	if err := s.cache.SetJSON(ctx, key, v); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("rates cache set failed")
	}
}

func (s *Store) observe(table string, start time.Time) {
	if obs.RateSnapshotLatency == nil {
		return
	}
	obs.RateSnapshotLatency.WithLabelValues(table).Observe(float64(time.Since(start).Milliseconds()))
}
