package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures the fields the console needs: where the Hermadata API
// lives and how aggressively to cache what it serves.
type Config struct {
	APIEndpoint string
	Cache       CacheConfig
}

// CacheConfig tunes the query cache. All durations are seconds in the
// TOML file.
type CacheConfig struct {
	LookupTTL    time.Duration // races, breeds, provinces, cities, document kinds
	SearchTTL    time.Duration // paginated search windows
	DetailTTL    time.Duration // single records (animal, adopter)
	StatsTTL     time.Duration // dashboard aggregates
	Retention    time.Duration // unreferenced-entry grace period
	StatsRefresh time.Duration // background dashboard refresh cadence
}

const (
	defaultConfigPath = "~/.config/hermadata/config.toml"
	defaultEndpoint   = "127.0.0.1:8050"
)

func defaultCache() CacheConfig {
	return CacheConfig{
		LookupTTL:    time.Hour,
		SearchTTL:    30 * time.Second,
		DetailTTL:    5 * time.Minute,
		StatsTTL:     time.Minute,
		Retention:    time.Minute,
		StatsRefresh: 30 * time.Second,
	}
}

// Load locates and parses the console config, falling back to defaults
// when missing. A missing file is not an error: the console works against
// a local backend out of the box.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{APIEndpoint: defaultEndpoint, Cache: defaultCache()}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		APIURL string `toml:"api_url"`
		Cache  struct {
			LookupTTLSeconds    int `toml:"lookup_ttl_seconds"`
			SearchTTLSeconds    int `toml:"search_ttl_seconds"`
			DetailTTLSeconds    int `toml:"detail_ttl_seconds"`
			StatsTTLSeconds     int `toml:"stats_ttl_seconds"`
			RetentionSeconds    int `toml:"retention_seconds"`
			StatsRefreshSeconds int `toml:"stats_refresh_seconds"`
		} `toml:"cache"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if endpoint := strings.TrimSpace(raw.APIURL); endpoint != "" {
		cfg.APIEndpoint = endpoint
	}
	applySeconds(&cfg.Cache.LookupTTL, raw.Cache.LookupTTLSeconds)
	applySeconds(&cfg.Cache.SearchTTL, raw.Cache.SearchTTLSeconds)
	applySeconds(&cfg.Cache.DetailTTL, raw.Cache.DetailTTLSeconds)
	applySeconds(&cfg.Cache.StatsTTL, raw.Cache.StatsTTLSeconds)
	applySeconds(&cfg.Cache.Retention, raw.Cache.RetentionSeconds)
	applySeconds(&cfg.Cache.StatsRefresh, raw.Cache.StatsRefreshSeconds)

	return cfg, nil
}

// applySeconds overrides dst only when the file carried a positive value.
func applySeconds(dst *time.Duration, seconds int) {
	if seconds > 0 {
		*dst = time.Duration(seconds) * time.Second
	}
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
