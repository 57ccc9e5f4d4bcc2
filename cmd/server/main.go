package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/kitbuilder587/trendgate/internal/cache/memory"
	"github.com/kitbuilder587/trendgate/internal/config"
	"github.com/kitbuilder587/trendgate/internal/explore"
	"github.com/kitbuilder587/trendgate/internal/fallback"
	gsearchClient "github.com/kitbuilder587/trendgate/internal/gsearch/google"
	"github.com/kitbuilder587/trendgate/internal/metrics"
	"github.com/kitbuilder587/trendgate/internal/ratelimit"
	"github.com/kitbuilder587/trendgate/internal/server"
	"github.com/kitbuilder587/trendgate/internal/service"
	suggestClient "github.com/kitbuilder587/trendgate/internal/suggest/google"
	trendsClient "github.com/kitbuilder587/trendgate/internal/trends/google"
	"github.com/kitbuilder587/trendgate/internal/youtube"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := config.NewLogger(cfg.Log)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := metrics.New()
	limiter := ratelimit.New(ratelimit.Config{
		MaxCalls: cfg.RateLimit.MaxCalls,
		Window:   cfg.RateLimit.Window,
	})
	store := memory.NewWithContext(ctx)
	resolver := fallback.New(logger, m)

	trendsProvider := trendsClient.New(trendsClient.Config{
		BaseURL: cfg.Trends.BaseURL,
		Timeout: cfg.Trends.Timeout,
		Retries: cfg.Trends.Retries,
		Backoff: cfg.Trends.Backoff,
	}, logger)
	searchProvider := gsearchClient.New(gsearchClient.Config{
		BaseURL: cfg.Search.BaseURL,
		Timeout: cfg.Search.Timeout,
	}, logger)
	suggestProvider := suggestClient.New(suggestClient.Config{
		BaseURL: cfg.Suggest.BaseURL,
		Timeout: cfg.Suggest.Timeout,
	}, logger)
	youtubeProvider := youtube.NewClient(youtube.Config{
		BaseURL: cfg.YouTube.BaseURL,
		Timeout: cfg.YouTube.Timeout,
	}, logger)

	trendsService := service.NewTrendsService(service.TrendsServiceDeps{
		Provider: trendsProvider,
		Cache:    store,
		Resolver: resolver,
		Logger:   logger,
		Metrics:  m,
		Config:   service.TrendsConfig{CacheTTL: cfg.Cache.TTL},
	})

	srv := server.New(server.Deps{
		Config:  cfg,
		Logger:  logger,
		Metrics: m,
		Limiter: limiter,
		Trends:  trendsService,
		Search: service.NewSearchService(service.SearchServiceDeps{
			Provider: searchProvider,
			Trends:   trendsService,
			Logger:   logger,
			Metrics:  m,
		}),
		Autocomplete: service.NewAutocompleteService(service.AutocompleteServiceDeps{
			Provider: suggestProvider,
			Cache:    store,
			Logger:   logger,
			Metrics:  m,
			Config:   service.AutocompleteConfig{CacheTTL: cfg.Cache.TTL},
		}),
		Topics: service.NewTopicService(service.TopicServiceDeps{
			Explorer: explore.New(explore.Config{Delay: cfg.Explore.Delay}, logger),
			Provider: suggestProvider,
			Logger:   logger,
		}),
		Transcripts: service.NewTranscriptService(service.TranscriptServiceDeps{
			Provider: youtubeProvider,
			Logger:   logger,
			Metrics:  m,
		}),
	})

	go func() {
		if err := srv.Listen(); err != nil {
			logger.Error("server stopped", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	if err := srv.Shutdown(); err != nil {
		logger.Fatal("forced shutdown", zap.Error(err))
	}
	logger.Info("server exited")
}
