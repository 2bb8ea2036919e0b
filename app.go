package main

import (
	"fmt"

	"barber-prices/config"
	"barber-prices/fetcher"
	"barber-prices/filter"
	"barber-prices/logger"
	"barber-prices/pipeline"
	"barber-prices/refresher"
)

// app holds the wired pipeline shared by every command
type app struct {
	cfg       *config.Config
	log       *logger.Logger
	rod       *fetcher.RodFetcher
	refresher *refresher.Refresher
}

func newApp(path string, verbose bool) (*app, error) {
	cfg, err := loadConfig(path)
	if err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.Log.Mode, verbose)
	if err != nil {
		return nil, err
	}

	// each engine gets its own rate limiter
	colly := fetcher.NewCollyFetcher(cfg.Fetch.UserAgent, cfg.Fetch.Timeout, log)
	rod := fetcher.NewRodFetcher(cfg.Fetch.Timeout, log)
	fetchers := map[string]fetcher.PageFetcher{
		config.EngineColly: fetcher.NewThrottled(colly, cfg.Fetch.Rate, cfg.Fetch.Burst),
		config.EngineRod:   fetcher.NewThrottled(rod, cfg.Fetch.Rate, cfg.Fetch.Burst),
	}

	sources, err := pipeline.BuildSources(cfg, fetchers)
	if err != nil {
		return nil, fmt.Errorf("failed to build sources: %w", err)
	}

	f := filter.NewFilter(cfg.Filters)
	if f.Enabled() {
		log.Info("price filter enabled", "min_price", cfg.Filters.MinPrice, "max_price", cfg.Filters.MaxPrice)
	}

	orch := pipeline.NewOrchestrator(sources, cfg.Pipeline.Concurrency, log)
	log.Debug("pipeline ready", "sources", len(sources), "concurrency", cfg.Pipeline.Concurrency)

	return &app{
		cfg:       cfg,
		log:       log,
		rod:       rod,
		refresher: refresher.NewRefresher(orch, f, log),
	}, nil
}

func (a *app) Close() {
	a.refresher.Stop()
	if err := a.rod.Close(); err != nil {
		a.log.Warn("failed to close browser", "error", err)
	}
	a.log.Sync()
}
