package quote

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/rodasol/cotizador-api/internal/common"
	"github.com/rodasol/cotizador-api/internal/obs"
	"github.com/rodasol/cotizador-api/internal/rates"
	"github.com/rodasol/cotizador-api/internal/rating"
)

// Service categories as stored in the rate tables.
const (
	ServiceTowing  = "towing"
	ServiceHeavy   = "heavy_towing"
	ServiceAirport = "airport_taxi"
)

// DefaultTaxKey selects the tax rule applied to every quote.
const DefaultTaxKey = "iva"

// RateSource is the slice of the rates store the quote service consumes.
type RateSource interface {
	Snapshot(ctx context.Context, serviceKey, taxKey string) (rating.Snapshot, error)
	AirportSnapshot(ctx context.Context, airportID, taxKey string) (rating.AirportSnapshot, error)
	AirportRouteByLocation(ctx context.Context, airportID string, loc rating.Location) (*rating.AirportRoute, error)
	AirportRoutes(ctx context.Context) ([]rating.AirportRoute, error)
	BenefitByID(ctx context.Context, id string) (*rates.BenefitRecord, error)
	BenefitsByCategory(ctx context.Context, category string) ([]rates.BenefitRecord, error)
	Tolls(ctx context.Context) ([]rating.Toll, error)
	FuelPrices(ctx context.Context) (rating.FuelPrices, error)
}

// ExchangeSource yields the current CRC/USD rate and whether it is a fallback.
type ExchangeSource interface {
	Rate(ctx context.Context) (float64, bool)
}

// Service orchestrates one quote: it loads the rate snapshot and the exchange
// rate, runs the pure engine, and renders the CRM note. It holds no mutable
// state; every request reads a fresh snapshot.
type Service struct {
	rates    RateSource
	exchange ExchangeSource
	taxKey   string
	logger   zerolog.Logger
}

// ServiceConfig groups Service dependencies.
type ServiceConfig struct {
	Rates    RateSource
	Exchange ExchangeSource
	TaxKey   string
	Logger   zerolog.Logger
}

// NewService constructs a Service instance.
func NewService(cfg ServiceConfig) (*Service, error) {
	if cfg.Rates == nil {
		return nil, errors.New("quote: rate source is required")
	}
	if cfg.Exchange == nil {
		return nil, errors.New("quote: exchange source is required")
	}
	taxKey := cfg.TaxKey
	if taxKey == "" {
		taxKey = DefaultTaxKey
	}
	return &Service{rates: cfg.Rates, exchange: cfg.Exchange, taxKey: taxKey, logger: cfg.Logger}, nil
}

// TowingRequest carries the operator-entered fields for a standard towing quote.
type TowingRequest struct {
	SDKm      float64  `json:"sdKm" validate:"gte=0"`
	Maneuver  float64  `json:"maneuver" validate:"gte=0"`
	TollIDs   []string `json:"tollIds" validate:"max=20"`
	BenefitID string   `json:"benefitId"`
}

// HeavyRequest carries the operator-entered fields for a heavy towing quote.
type HeavyRequest struct {
	PSKm      float64  `json:"psKm" validate:"gte=0"`
	SDKm      float64  `json:"sdKm" validate:"gte=0"`
	Maneuver  float64  `json:"maneuver" validate:"gte=0"`
	TollIDs   []string `json:"tollIds" validate:"max=20"`
	BenefitID string   `json:"benefitId"`
}

// AirportRequest selects an airport taxi destination.
type AirportRequest struct {
	AirportID string `json:"airportId" validate:"required"`
	Province  string `json:"province" validate:"required"`
	Canton    string `json:"canton" validate:"required"`
	District  string `json:"district" validate:"required"`
	BenefitID string `json:"benefitId"`
	RoundTrip bool   `json:"roundTrip"`
}

// QuoteResponse is the payload for towing and heavy towing quotes.
type QuoteResponse struct {
	Quote            rating.QuoteResult `json:"quote"`
	Note             string             `json:"note"`
	ExchangeFallback bool               `json:"exchangeFallback"`
}

// AirportResponse adds the per-leg detail the airport CRM note discloses.
type AirportResponse struct {
	Quote            rating.QuoteResult   `json:"quote"`
	Detail           rating.AirportDetail `json:"detail"`
	Note             string               `json:"note"`
	ExchangeFallback bool                 `json:"exchangeFallback"`
}

// Towing computes a standard towing quote.
func (s *Service) Towing(ctx context.Context, req TowingRequest) (QuoteResponse, error) {
	benefit, err := s.benefit(ctx, req.BenefitID)
	if err != nil {
		return QuoteResponse{}, err
	}
	rate, fallback := s.exchange.Rate(ctx)

	snap, err := s.rates.Snapshot(ctx, ServiceTowing, s.taxKey)
	if err != nil {
		return QuoteResponse{}, fmt.Errorf("towing snapshot: %w", err)
	}
	snap.ExchangeRate = rate

	result := rating.QuoteTowing(rating.TowingInput{
		SDKm:     req.SDKm,
		Maneuver: req.Maneuver,
		TollIDs:  req.TollIDs,
		Benefit:  benefit,
	}, snap)
	s.countQuote(ServiceTowing, result)

	note := rating.TowingNote(rating.NoteInput{
		PartnerName: partnerName(benefit),
		PlanName:    planName(benefit),
		SDKm:        req.SDKm,
		Maneuver:    req.Maneuver,
		TollNames:   rating.TollNames(req.TollIDs, snap.Tolls),
		Total:       result.FinalTotal,
	})
	return QuoteResponse{Quote: result, Note: note, ExchangeFallback: fallback}, nil
}

// Heavy computes a heavy towing quote.
func (s *Service) Heavy(ctx context.Context, req HeavyRequest) (QuoteResponse, error) {
	benefit, err := s.benefit(ctx, req.BenefitID)
	if err != nil {
		return QuoteResponse{}, err
	}
	rate, fallback := s.exchange.Rate(ctx)

	snap, err := s.rates.Snapshot(ctx, ServiceHeavy, s.taxKey)
	if err != nil {
		return QuoteResponse{}, fmt.Errorf("heavy snapshot: %w", err)
	}
	snap.ExchangeRate = rate

	result := rating.QuoteHeavy(rating.HeavyInput{
		PSKm:     req.PSKm,
		SDKm:     req.SDKm,
		Maneuver: req.Maneuver,
		TollIDs:  req.TollIDs,
		Benefit:  benefit,
	}, snap)
	s.countQuote(ServiceHeavy, result)

	note := rating.TowingNote(rating.NoteInput{
		PartnerName: partnerName(benefit),
		PlanName:    planName(benefit),
		PSKm:        req.PSKm,
		SDKm:        req.SDKm,
		Maneuver:    req.Maneuver,
		TollNames:   rating.TollNames(req.TollIDs, snap.Tolls),
		Total:       result.FinalTotal,
	})
	return QuoteResponse{Quote: result, Note: note, ExchangeFallback: fallback}, nil
}

// Airport computes an airport taxi quote. An unknown destination is an error;
// an unconfigured tax rule still yields a pending quote.
func (s *Service) Airport(ctx context.Context, req AirportRequest) (AirportResponse, error) {
	benefit, err := s.benefit(ctx, req.BenefitID)
	if err != nil {
		return AirportResponse{}, err
	}
	route, err := s.rates.AirportRouteByLocation(ctx, req.AirportID, rating.Location{
		Province: req.Province,
		Canton:   req.Canton,
		District: req.District,
	})
	if err != nil {
		return AirportResponse{}, fmt.Errorf("airport route: %w", err)
	}
	if route == nil {
		return AirportResponse{}, &common.AppError{
			Code:       "ROUTE_NOT_FOUND",
			Message:    "no airport route covers the requested destination",
			HTTPStatus: http.StatusNotFound,
		}
	}
	rate, fallback := s.exchange.Rate(ctx)

	snap, err := s.rates.AirportSnapshot(ctx, req.AirportID, s.taxKey)
	if err != nil {
		return AirportResponse{}, fmt.Errorf("airport snapshot: %w", err)
	}
	snap.ExchangeRate = rate

	result, detail := rating.QuoteAirport(rating.AirportInput{
		Route:     route,
		Benefit:   benefit,
		RoundTrip: req.RoundTrip,
	}, snap)
	s.countQuote(ServiceAirport, result)

	note := rating.AirportNote(route, benefit, detail)
	return AirportResponse{Quote: result, Detail: detail, Note: note, ExchangeFallback: fallback}, nil
}

// BenefitView is the catalogue entry returned by the benefits listing. Fuel
// coverages carry the colón equivalent per grade at today's pump prices.
type BenefitView struct {
	rates.BenefitRecord
	FuelEquivalents map[string]float64 `json:"fuelEquivalents,omitempty"`
}

// Benefits lists the benefits for one service category.
func (s *Service) Benefits(ctx context.Context, category string) ([]BenefitView, error) {
	records, err := s.rates.BenefitsByCategory(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("list benefits: %w", err)
	}
	var prices *rating.FuelPrices
	views := make([]BenefitView, 0, len(records))
	for _, record := range records {
		view := BenefitView{BenefitRecord: record}
		if cov, ok := record.Benefit().Coverage.(rating.FuelLiters); ok {
			if prices == nil {
				p, err := s.rates.FuelPrices(ctx)
				if err != nil {
					return nil, fmt.Errorf("fuel prices: %w", err)
				}
				prices = &p
			}
			view.FuelEquivalents = rating.FuelEquivalents(cov.Limits, *prices)
		}
		views = append(views, view)
	}
	return views, nil
}

// Tolls lists every toll booth.
func (s *Service) Tolls(ctx context.Context) ([]rating.Toll, error) {
	return s.rates.Tolls(ctx)
}

// AirportRoutes lists every airport taxi route.
func (s *Service) AirportRoutes(ctx context.Context) ([]rating.AirportRoute, error) {
	return s.rates.AirportRoutes(ctx)
}

// ExchangeRate returns the current CRC/USD rate and whether it is a fallback.
func (s *Service) ExchangeRate(ctx context.Context) (float64, bool) {
	return s.exchange.Rate(ctx)
}

func (s *Service) benefit(ctx context.Context, id string) (*rating.Benefit, error) {
	if id == "" {
		return nil, nil
	}
	record, err := s.rates.BenefitByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("benefit by id: %w", err)
	}
	if record == nil {
		return nil, &common.AppError{
			Code:       "BENEFIT_NOT_FOUND",
			Message:    "benefit not found",
			HTTPStatus: http.StatusNotFound,
		}
	}
	b := record.Benefit()
	return &b, nil
}

func (s *Service) countQuote(service string, result rating.QuoteResult) {
	outcome := "ok"
	if !result.RulesLoaded {
		outcome = "pending"
		if obs.QuotePendingTotal != nil {
			obs.QuotePendingTotal.WithLabelValues(service).Inc()
		}
		s.logger.Warn().Str("service", service).Msg("quote pending, rate tables missing")
	}
	if obs.QuoteTotal != nil {
		obs.QuoteTotal.WithLabelValues(service, outcome).Inc()
	}
}

func partnerName(b *rating.Benefit) string {
	if b == nil {
		return ""
	}
	return b.PartnerName
}

func planName(b *rating.Benefit) string {
	if b == nil {
		return ""
	}
	return b.PlanName
}
