package app

import (
	"context"
	"log"
	"time"

	"github.com/hermadata/console/internal/auth"
	"github.com/hermadata/console/internal/hermadata"
	"github.com/hermadata/console/internal/querycache"
)

const defaultStatsInterval = 30 * time.Second

// StartStatsRefresher launches a background goroutine that keeps the
// dashboard aggregates warm at a fixed cadence. It returns immediately.
//
// Refreshes go through the cache's forced-refetch path, so every
// subscribed dashboard view picks the new numbers up on its next read;
// nothing happens while no operator is logged in.
func StartStatsRefresher(ctx context.Context, cache *querycache.Cache, client *hermadata.Client, gate *auth.Gate, interval time.Duration) {
	if interval <= 0 {
		interval = defaultStatsInterval
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
			refreshStats(ctx, cache, client, gate)
		}
	}()
}

func refreshStats(ctx context.Context, cache *querycache.Cache, client *hermadata.Client, gate *auth.Gate) {
	if !gate.Authenticated() {
		return
	}
	_, err := querycache.Refresh(ctx, cache, hermadata.StatsKey(), func(ctx context.Context) (hermadata.ShelterStats, error) {
		return client.FetchStats(ctx)
	})
	if err != nil {
		log.Printf("stats refresh failed: %v", err)
	}
}
