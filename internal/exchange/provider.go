package exchange

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/rodasol/cotizador-api/internal/obs"
	"github.com/rodasol/cotizador-api/internal/resilience"
)

// FallbackRate is the CRC per USD constant used when no live or cached rate is
// available. Computation proceeds with it; callers are told via the fallback
// flag so the UI can warn the user.
const FallbackRate = 500

// DefaultEndpoint is the Hacienda daily dollar indicator API.
const DefaultEndpoint = "https://api.hacienda.go.cr/indicadores/tc/dolar"

const redisKey = "exchange:crc_usd"

// Provider serves the daily CRC/USD sell rate. The value is cached in Redis
// with its fetch date; a value fetched today is served without touching the
// upstream API. Fetch failures fall back to the last cached value, and with no
// cache at all the fallback constant is used. Rate never fails the quote flow.
type Provider struct {
	Redis       *redis.Client
	HTTP        *http.Client
	Breaker     *resilience.Breaker
	Endpoint    string
	MaxAttempts int
	BaseBackoff time.Duration
	Logger      zerolog.Logger
	Now         func() time.Time
}

// Rate returns the current exchange rate and whether it is a stale/fallback
// value. The flag is true whenever the served value was not confirmed against
// the upstream API today: a stale cached rate after a failed refresh, or the
// fallback constant when no cache exists.
func (p *Provider) Rate(ctx context.Context) (float64, bool) {
	cached, date, ok := p.cached(ctx)
	if ok && date == p.today() {
		return cached, false
	}

	value, err := p.Refresh(ctx)
	if err == nil {
		return value, false
	}
	p.Logger.Warn().Err(err).Msg("exchange refresh failed, serving cached value")

	if obs.ExchangeFallbackTotal != nil {
		obs.ExchangeFallbackTotal.Inc()
	}
	if ok {
		return cached, true
	}
	return FallbackRate, true
}

// Refresh fetches the sell rate from the upstream API and stores it with
// today's date. It is also invoked by the daily worker task.
func (p *Provider) Refresh(ctx context.Context) (float64, error) {
	attempts := p.MaxAttempts
	if attempts <= 0 {
		attempts = 1
	}
	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		value, err := p.fetch(ctx)
		if err == nil {
			p.store(ctx, value)
			countRefresh("ok")
			return value, nil
		}
		lastErr = err
		if attempt == attempts || errors.Is(err, resilience.ErrOpenCircuit) {
			break
		}
		timer := time.NewTimer(resilience.Backoff(p.BaseBackoff, attempt, 0.2))
		select {
		case <-ctx.Done():
			timer.Stop()
			countRefresh("error")
			return 0, ctx.Err()
		case <-timer.C:
		}
	}
	countRefresh("error")
	return 0, lastErr
}

type indicatorResponse struct {
	Venta struct {
		Valor float64 `json:"valor"`
	} `json:"venta"`
}

func (p *Provider) fetch(ctx context.Context) (float64, error) {
	if p.Breaker != nil && !p.Breaker.Allow() {
		return 0, resilience.ErrOpenCircuit
	}
	endpoint := p.Endpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	client := p.HTTP
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, err
	}
	resp, err := client.Do(req)
	if err != nil {
		p.report(false)
		return 0, err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		p.report(false)
		return 0, fmt.Errorf("exchange: upstream returned %s", resp.Status)
	}
	var payload indicatorResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		p.report(false)
		return 0, err
	}
	if payload.Venta.Valor <= 0 {
		p.report(false)
		return 0, fmt.Errorf("exchange: invalid sell rate %v", payload.Venta.Valor)
	}
	p.report(true)
	return payload.Venta.Valor, nil
}

func (p *Provider) report(success bool) {
	if p.Breaker != nil {
		p.Breaker.Report(success)
	}
}

func (p *Provider) cached(ctx context.Context) (value float64, date string, ok bool) {
	if p.Redis == nil {
		return 0, "", false
	}
	fields, err := p.Redis.HGetAll(ctx, redisKey).Result()
	if err != nil || len(fields) == 0 {
		return 0, "", false
	}
	value, err = strconv.ParseFloat(fields["value"], 64)
	if err != nil || value <= 0 {
		return 0, "", false
	}
	return value, fields["date"], true
}

func (p *Provider) store(ctx context.Context, value float64) {
	if p.Redis == nil {
		return
	}
	err := p.Redis.HSet(ctx, redisKey,
		"value", strconv.FormatFloat(value, 'f', -1, 64),
		"date", p.today(),
		"source", "hacienda",
	).Err()
	if err != nil {
		p.Logger.Error().Err(err).Msg("store exchange rate")
	}
}

func (p *Provider) today() string {
	now := time.Now
	if p.Now != nil {
		now = p.Now
	}
	return now().UTC().Format("2006-01-02")
}

func countRefresh(result string) {
	if obs.ExchangeRefreshTotal != nil {
		obs.ExchangeRefreshTotal.WithLabelValues(result).Inc()
	}
}
