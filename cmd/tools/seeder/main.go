package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		log.Fatalf("Failed to ping DB: %v", err)
	}

	seedTaxRules(ctx, pool)
	seedTariffs(ctx, pool)
	seedTolls(ctx, pool)
	seedBenefits(ctx, pool)
	seedAirport(ctx, pool)
	seedFuelPrices(ctx, pool)

	log.Println("Seeding completed successfully!")
}

func seedTaxRules(ctx context.Context, pool *pgxpool.Pool) {
	fmt.Println("Seeding Tax Rules...")
	_, err := pool.Exec(ctx, `
		INSERT INTO tax_rules (rule_key, rate, rule_type, apply_to_excess)
		VALUES ('iva', 0.13, 'excess_only', true)
		ON CONFLICT (rule_key) DO UPDATE SET rate = EXCLUDED.rate, rule_type = EXCLUDED.rule_type;
	`)
	if err != nil {
		log.Printf("Failed to seed tax rule iva: %v", err)
	}
}

func seedTariffs(ctx context.Context, pool *pgxpool.Pool) {
	tariffs := []struct {
		Key        string
		BaseCost   float64
		IncludedKm float64
		CostPerKm  float64
		ChargePS   bool
		ChargeSD   bool
		FixedFee   float64
	}{
		{"towing", 15000, 10, 800, false, true, 3500},
		{"heavy_towing", 45000, 10, 1500, true, true, 5000},
	}

	fmt.Println("Seeding Tariffs...")
	for _, t := range tariffs {
		_, err := pool.Exec(ctx, `
			INSERT INTO service_tariffs (service_key, base_cost, included_km, cost_per_km, charge_ps, charge_sd, fixed_fee)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (service_key) DO UPDATE SET
				base_cost = EXCLUDED.base_cost,
				included_km = EXCLUDED.included_km,
				cost_per_km = EXCLUDED.cost_per_km,
				charge_ps = EXCLUDED.charge_ps,
				charge_sd = EXCLUDED.charge_sd,
				fixed_fee = EXCLUDED.fixed_fee;
		`, t.Key, t.BaseCost, t.IncludedKm, t.CostPerKm, t.ChargePS, t.ChargeSD, t.FixedFee)
		if err != nil {
			log.Printf("Failed to seed tariff %s: %v", t.Key, err)
		}
	}
}

func seedTolls(ctx context.Context, pool *pgxpool.Pool) {
	tolls := []struct {
		ID       string
		Name     string
		Route    string
		Light    float64
		Microbus float64
		Tow      float64
		Heavy    float64
	}{
		{"r27-escazu", "Peaje Escazú", "Ruta 27", 400, 740, 1130, 2260},
		{"r27-atenas", "Peaje Atenas", "Ruta 27", 820, 1490, 2270, 4540},
		{"r27-pozon", "Peaje Pozón", "Ruta 27", 840, 1520, 2330, 4660},
		{"r32-zurqui", "Peaje Zurquí", "Ruta 32", 200, 350, 550, 0},
		{"r1-naranjo", "Peaje Naranjo", "Ruta 1", 75, 150, 300, 600},
	}

	fmt.Println("Seeding Tolls...")
	for _, t := range tolls {
		_, err := pool.Exec(ctx, `
			INSERT INTO tolls (id, name, route, price_light, price_microbus, price_tow, price_heavy)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (id) DO UPDATE SET
				name = EXCLUDED.name,
				route = EXCLUDED.route,
				price_light = EXCLUDED.price_light,
				price_microbus = EXCLUDED.price_microbus,
				price_tow = EXCLUDED.price_tow,
				price_heavy = EXCLUDED.price_heavy;
		`, t.ID, t.Name, t.Route, t.Light, t.Microbus, t.Tow, t.Heavy)
		if err != nil {
			log.Printf("Failed to seed toll %s: %v", t.Name, err)
		}
	}
}

func seedBenefits(ctx context.Context, pool *pgxpool.Pool) {
	type benefit struct {
		ID           string
		Partner      string
		Plan         string
		Category     string
		CoverageType string
		LimitKm      float64
		LimitAmount  float64
		Currency     string
		FuelSuper    float64
		FuelRegular  float64
		FuelDiesel   float64
		AirportFee   *bool
		FixedFee     bool
	}
	noFee := false
	benefits := []benefit{
		{ID: "assa-full-towing", Partner: "ASSA", Plan: "Full Cobertura", Category: "towing", CoverageType: "distance_cap", LimitKm: 60},
		{ID: "ins-hogar-towing", Partner: "INS", Plan: "Hogar Seguro", Category: "towing", CoverageType: "monetary_cap", LimitAmount: 50000, Currency: "CRC", FixedFee: true},
		{ID: "qualitas-towing", Partner: "QUALITAS", Plan: "Auto Plus", Category: "towing", CoverageType: "monetary_cap", LimitAmount: 120, Currency: "USD"},
		{ID: "lafise-heavy", Partner: "LAFISE", Plan: "Flota Pesada", Category: "heavy_towing", CoverageType: "monetary_cap", LimitAmount: 150000, Currency: "CRC"},
		{ID: "ins-airport", Partner: "INS", Plan: "Viajero", Category: "airport_taxi", CoverageType: "monetary_cap", LimitAmount: 100, Currency: "USD"},
		{ID: "assa-airport-sinfee", Partner: "ASSA", Plan: "Ejecutivo", Category: "airport_taxi", CoverageType: "monetary_cap", LimitAmount: 40000, Currency: "CRC", AirportFee: &noFee},
		{ID: "ins-fuel", Partner: "INS", Plan: "Combustible", Category: "fuel_delivery", CoverageType: "fuel_liters", FuelSuper: 10, FuelRegular: 10, FuelDiesel: 15},
	}

	fmt.Println("Seeding Benefits...")
	for _, b := range benefits {
		_, err := pool.Exec(ctx, `
			INSERT INTO benefits (id, partner_name, plan_name, service_category, coverage_type,
				limit_km, limit_amount, limit_currency, fuel_super, fuel_regular, fuel_diesel,
				apply_airport_fee, apply_fixed_fee)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
			ON CONFLICT (id) DO UPDATE SET
				partner_name = EXCLUDED.partner_name,
				plan_name = EXCLUDED.plan_name,
				coverage_type = EXCLUDED.coverage_type,
				limit_km = EXCLUDED.limit_km,
				limit_amount = EXCLUDED.limit_amount,
				limit_currency = EXCLUDED.limit_currency,
				fuel_super = EXCLUDED.fuel_super,
				fuel_regular = EXCLUDED.fuel_regular,
				fuel_diesel = EXCLUDED.fuel_diesel,
				apply_airport_fee = EXCLUDED.apply_airport_fee,
				apply_fixed_fee = EXCLUDED.apply_fixed_fee;
		`, b.ID, b.Partner, b.Plan, b.Category, b.CoverageType,
			b.LimitKm, b.LimitAmount, b.Currency, b.FuelSuper, b.FuelRegular, b.FuelDiesel,
			b.AirportFee, b.FixedFee)
		if err != nil {
			log.Printf("Failed to seed benefit %s: %v", b.ID, err)
		}
	}
}

func seedAirport(ctx context.Context, pool *pgxpool.Pool) {
	fmt.Println("Seeding Airport Config...")
	_, err := pool.Exec(ctx, `
		INSERT INTO airport_configs (airport_id, fee_multiplier, parking_cost)
		VALUES ('SJO', 1.34, 750)
		ON CONFLICT (airport_id) DO UPDATE SET
			fee_multiplier = EXCLUDED.fee_multiplier,
			parking_cost = EXCLUDED.parking_cost;
	`)
	if err != nil {
		log.Printf("Failed to seed airport config: %v", err)
	}

	routes := []struct {
		ID       string
		Airport  string
		Province string
		Canton   string
		District string
		Price    float64
	}{
		{"sjo-escazu-sanrafael", "SJO", "San José", "Escazú", "San Rafael", 20000},
		{"sjo-sanjose-carmen", "SJO", "San José", "San José", "Carmen", 18000},
		{"sjo-heredia-heredia", "SJO", "Heredia", "Heredia", "Heredia", 15000},
		{"sjo-alajuela-alajuela", "SJO", "Alajuela", "Alajuela", "Alajuela", 9000},
		{"sjo-cartago-oriental", "SJO", "Cartago", "Cartago", "Oriental", 27550},
	}

	fmt.Println("Seeding Airport Routes...")
	for _, r := range routes {
		_, err := pool.Exec(ctx, `
			INSERT INTO airport_routes (id, airport_id, province, canton, district, price)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (id) DO UPDATE SET price = EXCLUDED.price;
		`, r.ID, r.Airport, r.Province, r.Canton, r.District, r.Price)
		if err != nil {
			log.Printf("Failed to seed airport route %s: %v", r.ID, err)
		}
	}
}

func seedFuelPrices(ctx context.Context, pool *pgxpool.Pool) {
	prices := []struct {
		Grade string
		Price float64
	}{
		{"super", 715},
		{"regular", 692},
		{"diesel", 589},
	}

	fmt.Println("Seeding Fuel Prices...")
	for _, p := range prices {
		_, err := pool.Exec(ctx, `
			INSERT INTO fuel_prices (grade, price_per_liter)
			VALUES ($1, $2)
			ON CONFLICT (grade) DO UPDATE SET price_per_liter = EXCLUDED.price_per_liter;
		`, p.Grade, p.Price)
		if err != nil {
			log.Printf("Failed to seed fuel price %s: %v", p.Grade, err)
		}
	}
}
