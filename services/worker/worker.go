package worker

import (
	"context"
	"encoding/json"
	"time"

	"rtanks/ratingsworker/internal/scraper"
	"rtanks/ratingsworker/logger"
	scrapeerrors "rtanks/ratingsworker/pkg/errors"
	"rtanks/ratingsworker/services/publisher"
)

// StatsProvider is the slice of the scraper service the worker needs
type StatsProvider interface {
	GetLeaderboard(category string) []scraper.LeaderboardEntry
}

// Worker periodically refreshes leaderboard snapshots and publishes them
// for downstream bot processes
type Worker struct {
	ctx        context.Context
	provider   StatsProvider
	publisher  publisher.Publisher
	categories []string
	interval   time.Duration
	log        *logger.Logger
}

// NewWorker creates a new refresh worker
func NewWorker(
	ctx context.Context,
	provider StatsProvider,
	pub publisher.Publisher,
	categories []string,
	interval time.Duration,
) *Worker {
	return &Worker{
		ctx:        ctx,
		provider:   provider,
		publisher:  pub,
		categories: categories,
		interval:   interval,
		log:        logger.ForWorker(),
	}
}

// Start runs the refresh loop until the context is cancelled
func (w *Worker) Start() error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.refresh()

	for {
		select {
		case <-w.ctx.Done():
			return w.ctx.Err()
		case <-ticker.C:
			w.refresh()
		}
	}
}

// refresh pulls every configured category through the service and publishes
// the snapshots that came back with data
func (w *Worker) refresh() {
	start := time.Now()

	for _, category := range w.categories {
		entries := w.provider.GetLeaderboard(category)
		if len(entries) == 0 {
			w.log.Warn().Str("category", category).Msg("No leaderboard data to publish")
			continue
		}

		payload, err := json.Marshal(entries)
		if err != nil {
			w.log.Error().Err(err).Str("category", category).Msg("Failed to encode snapshot")
			continue
		}

		if err := w.publisher.Publish("leaderboard_"+category, payload); err != nil {
			perr := scrapeerrors.NewPublisher(category, "failed to publish snapshot", err)
			w.log.Error().Err(perr).Str("category", category).Msg("Failed to publish snapshot")
			continue
		}

		w.log.Info().
			Str("category", category).
			Int("entries", len(entries)).
			Msg("Published leaderboard snapshot")
	}

	if err := w.publisher.TrimStreams(); err != nil {
		w.log.Error().Err(err).Msg("Failed to trim streams")
	}

	w.log.Debug().Dur("elapsed", time.Since(start)).Msg("Refresh cycle finished")
}
