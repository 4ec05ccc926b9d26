package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/karmicdd/karmicdd-cli/internal/adapters/driven/api"
	"github.com/karmicdd/karmicdd-cli/internal/adapters/driven/cache/redis"
	"github.com/karmicdd/karmicdd-cli/internal/adapters/driven/config/env"
	"github.com/karmicdd/karmicdd-cli/internal/adapters/driven/config/file"
	"github.com/karmicdd/karmicdd-cli/internal/adapters/driven/storage/memory"
	"github.com/karmicdd/karmicdd-cli/internal/adapters/driven/storage/sqlite"
	"github.com/karmicdd/karmicdd-cli/internal/adapters/driving/cli"
	"github.com/karmicdd/karmicdd-cli/internal/core/domain"
	"github.com/karmicdd/karmicdd-cli/internal/core/ports/driven"
	"github.com/karmicdd/karmicdd-cli/internal/core/services"
	"github.com/karmicdd/karmicdd-cli/internal/logger"
)

const cacheConnectTimeout = 3 * time.Second

// bootstrap wires adapters and services from configuration.
func bootstrap(opts cli.Options) (*cli.Services, error) {
	if path := env.LoadDotEnv(); path != "" {
		logger.Debug("Loaded environment from %s", path)
	}

	dir, err := file.DefaultDir()
	if err != nil {
		return nil, err
	}
	fileStore, err := file.NewConfigStore(dir)
	if err != nil {
		return nil, fmt.Errorf("opening config: %w", err)
	}
	config := env.NewOverlay(fileStore)

	settingsService := services.NewSettingsService(config)
	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("reading settings: %w", err)
	}
	configureLogging(settings.Log, opts.Verbose)
	if opts.APIURL != "" {
		settings.API.URL = opts.APIURL
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	tokens := file.NewTokenStore(config)
	client, err := api.NewClient(api.Config{
		BaseURL:   settings.API.URL,
		Timeout:   settings.API.Timeout,
		RateLimit: settings.API.RateLimit,
		Burst:     settings.API.Burst,
		Tokens:    tokens,
		Metrics:   api.NewMetrics(reg),
	})
	if err != nil {
		return nil, err
	}
	logger.Debug("API base %s", client.BaseURL())

	var closers []func() error

	bookmarkStore, kv, closeStore, err := openStores(dir, opts.Ephemeral)
	if err != nil {
		return nil, err
	}
	if closeStore != nil {
		closers = append(closers, closeStore)
	}

	cache, closeCache := openCache(settings.Cache.URL)
	if closeCache != nil {
		closers = append(closers, closeCache)
	}

	sessions := services.NewSessionService(tokens, client, api.NewClaimsDecoder(), kv)
	search := services.NewSearchService(client, cache, settings.Cache.TTL)
	bookmarks := services.NewBookmarkService(bookmarkStore, sessions)
	matches := services.NewMatchCoordinator(search, sessions, settings.Search)

	return &cli.Services{
		Search:          search,
		Matches:         matches,
		Bookmarks:       bookmarks,
		Compatibility:   services.NewCompatibilityViewer(client, sessions, cache, settings.Cache.TTL),
		Recommendations: services.NewRecommendationService(client, sessions),
		Session:         sessions,
		Dashboard:       services.NewDashboardService(sessions, search, bookmarks, matches),
		Settings:        settingsService,
		Metrics:         promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		Close:           closeAll(closers),
	}, nil
}

func configureLogging(s domain.LogSettings, verbose bool) {
	logger.SetFormat(s.Format.String())
	logger.SetLevel(s.Level)
	if verbose {
		logger.SetVerbose(true)
	}
}

// openStores returns the bookmark and key-value stores. Ephemeral mode
// keeps everything in memory for the life of the process.
func openStores(dir string, ephemeral bool) (driven.BookmarkStore, driven.KVStore, func() error, error) {
	if ephemeral {
		logger.Debug("Using in-memory stores")
		return memory.NewBookmarkStore(), memory.NewKVStore(), nil, nil
	}

	store, err := sqlite.NewStore(filepath.Join(dir, "data"))
	if err != nil {
		return nil, nil, nil, fmt.Errorf("opening local store: %w", err)
	}
	logger.Debug("Using local store %s", store.Path())
	return store.BookmarkStore(), store.KVStore(), store.Close, nil
}

// openCache connects to the configured Redis cache. An unreachable cache
// is logged and skipped.
func openCache(url string) (driven.Cache, func() error) {
	if url == "" {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), cacheConnectTimeout)
	defer cancel()

	c, err := redis.New(ctx, url)
	if err != nil {
		logger.Warn("cache disabled: %v", err)
		return nil, nil
	}
	return c, c.Close
}

func closeAll(closers []func() error) func() error {
	return func() error {
		var errs []error
		for _, c := range closers {
			errs = append(errs, c())
		}
		return errors.Join(errs...)
	}
}
