package scheduler

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/paradigma/diagnostico/internal/clients/coingecko"
)

// WarmTopCoinsJob refreshes the top-coins cache so autocomplete requests hit
// a warm entry instead of paying the CoinGecko round-trip.
type WarmTopCoinsJob struct {
	client *coingecko.Client
	limit  int
	log    zerolog.Logger
}

// NewWarmTopCoinsJob creates the cache warm job.
func NewWarmTopCoinsJob(client *coingecko.Client, limit int, log zerolog.Logger) *WarmTopCoinsJob {
	if limit <= 0 {
		limit = 200
	}
	return &WarmTopCoinsJob{
		client: client,
		limit:  limit,
		log:    log.With().Str("job", "warm_top_coins").Logger(),
	}
}

// Run fetches the top coins, refreshing the persistent cache as a side
// effect.
func (j *WarmTopCoinsJob) Run() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	coins, err := j.client.GetTopCoins(ctx, j.limit)
	if err != nil {
		j.log.Error().Err(err).Msg("Failed to refresh top coins cache")
		return err
	}

	j.log.Info().Int("count", len(coins)).Msg("Top coins cache refreshed")
	return nil
}

// Name returns the job name for scheduling and logging.
func (j *WarmTopCoinsJob) Name() string {
	return "warm_top_coins"
}
