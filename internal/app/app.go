package app

import (
	"context"
	"fmt"
	"time"

	"github.com/hermadata/console/internal/auth"
	"github.com/hermadata/console/internal/config"
	"github.com/hermadata/console/internal/hermadata"
	"github.com/hermadata/console/internal/prefs"
	"github.com/hermadata/console/internal/querycache"
	"github.com/hermadata/console/internal/ui"
)

// Options configure the console application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/hermadata/prefs.toml
	StatsEvery int    // seconds; zero uses the configured cadence
}

// Run boots the console TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	userPrefs := prefs.Load(opts.PrefsPath)

	client, err := hermadata.NewClient(cfg.APIEndpoint)
	if err != nil {
		return fmt.Errorf("init api client: %w", err)
	}

	cache := querycache.New(cachePolicy(cfg.Cache))
	gate := auth.NewGate(client)

	interval := cfg.Cache.StatsRefresh
	if opts.StatsEvery > 0 {
		interval = time.Duration(opts.StatsEvery) * time.Second
	}
	StartStatsRefresher(ctx, cache, client, gate, interval)

	return ui.Run(ui.Options{
		Context:   ctx,
		Client:    client,
		Cache:     cache,
		Gate:      gate,
		ThemeName: userPrefs.Theme,
		PageSize:  userPrefs.PageSize,
		PrefsPath: opts.PrefsPath,
	})
}

// cachePolicy maps the config's coarse TTL groups onto the cache's
// per-kind policy.
func cachePolicy(cc config.CacheConfig) querycache.Policy {
	lookup := querycache.KindPolicy{TTL: cc.LookupTTL, Retention: cc.Retention}
	search := querycache.KindPolicy{TTL: cc.SearchTTL, Retention: cc.Retention}
	detail := querycache.KindPolicy{TTL: cc.DetailTTL, Retention: cc.Retention}
	return querycache.Policy{
		Default: search,
		Kinds: map[string]querycache.KindPolicy{
			hermadata.KindRaces:     lookup,
			hermadata.KindBreeds:    lookup,
			hermadata.KindProvinces: lookup,
			hermadata.KindCities:    lookup,
			hermadata.KindDocKinds:  lookup,
			hermadata.KindAnimal:    detail,
			hermadata.KindAdopter:   detail,
			hermadata.KindAnimalDocs: {
				TTL: cc.DetailTTL, Retention: cc.Retention,
			},
			hermadata.KindUsers: detail,
			hermadata.KindStats: {TTL: cc.StatsTTL, Retention: cc.Retention},
		},
	}
}
