package obs

import (
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	domainOnce sync.Once

	// QuoteTotal counts quote computations by service and outcome.
	QuoteTotal *prometheus.CounterVec
	// QuotePendingTotal counts quotes returned in the pending state because a
	// required rate table was not loaded.
	QuotePendingTotal *prometheus.CounterVec
	// ExchangeRefreshTotal counts exchange-rate refresh attempts by outcome.
	ExchangeRefreshTotal *prometheus.CounterVec
	// ExchangeFallbackTotal counts quotes served with the fallback exchange rate.
	ExchangeFallbackTotal prometheus.Counter
	// RateSnapshotLatency records rate-table snapshot load latency in milliseconds.
	RateSnapshotLatency *prometheus.HistogramVec
)

// MustRegisterDomainMetrics initialises and registers domain-specific Prometheus collectors.
func MustRegisterDomainMetrics(namespace string, reg prometheus.Registerer) {
	domainOnce.Do(func() {
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}
		QuoteTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "quote_total",
			Help:      "Count of quote computations by service and result.",
		}, []string{"service", "result"})
		QuotePendingTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "quote_pending_total",
			Help:      "Count of quotes returned pending because rate tables were missing.",
		}, []string{"service"})
		ExchangeRefreshTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "exchange_refresh_total",
			Help:      "Count of exchange-rate refresh attempts by result.",
		}, []string{"result"})
		ExchangeFallbackTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "exchange_fallback_total",
			Help:      "Number of times the fallback exchange rate was served.",
		})
		RateSnapshotLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rate_snapshot_duration_ms",
			Help:      "Latency for rate-table snapshot loads in milliseconds.",
			Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500},
		}, []string{"table"})

		mustRegisterCollector(reg, QuoteTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				QuoteTotal = v
			}
		})
		mustRegisterCollector(reg, QuotePendingTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				QuotePendingTotal = v
			}
		})
		mustRegisterCollector(reg, ExchangeRefreshTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				ExchangeRefreshTotal = v
			}
		})
		mustRegisterCollector(reg, ExchangeFallbackTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(prometheus.Counter); ok {
				ExchangeFallbackTotal = v
			}
		})
		mustRegisterCollector(reg, RateSnapshotLatency, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.HistogramVec); ok {
				RateSnapshotLatency = v
			}
		})
	})
}

func mustRegisterCollector(reg prometheus.Registerer, collector prometheus.Collector, reuse func(prometheus.Collector)) {
	if err := reg.Register(collector); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if reuse != nil {
				reuse(are.ExistingCollector)
			}
			return
		}
		panic(fmt.Errorf("register domain metric: %w", err))
	}
}
