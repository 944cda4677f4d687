package exchange

import (
	"context"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/rodasol/cotizador-api/internal/lock"
)

// TypeRefresh is the asynq task type for the daily exchange-rate refresh.
const TypeRefresh = "exchange:refresh"

const refreshLockKey = "lock:exchange:refresh"

// NewRefreshTask builds the scheduled refresh task.
func NewRefreshTask() *asynq.Task {
	return asynq.NewTask(TypeRefresh, nil)
}

// RefreshHandler processes the daily refresh task under a distributed lock so
// overlapping workers fetch the upstream API at most once.
type RefreshHandler struct {
	Provider *Provider
	Locker   lock.Locker
	LockTTL  time.Duration
	Logger   zerolog.Logger
}

// ProcessTask implements asynq.Handler.
func (h RefreshHandler) ProcessTask(ctx context.Context, _ *asynq.Task) error {
	ttl := h.LockTTL
	if ttl <= 0 {
		ttl = time.Minute
	}
	return h.Locker.WithLock(ctx, refreshLockKey, ttl, func(ctx context.Context) error {
		value, err := h.Provider.Refresh(ctx)
		if err != nil {
			h.Logger.Error().Err(err).Msg("exchange refresh task failed")
			return err
		}
		h.Logger.Info().Float64("rate", value).Msg("exchange rate refreshed")
		return nil
	})
}
