package app

import (
	"context"
	"fmt"
	"time"

	"github.com/deusflow/newsbrief/internal/cache"
	"github.com/deusflow/newsbrief/internal/config"
	"github.com/deusflow/newsbrief/internal/entities"
	"github.com/deusflow/newsbrief/internal/gemini"
	"github.com/deusflow/newsbrief/internal/logger"
	"github.com/deusflow/newsbrief/internal/news"
	"github.com/deusflow/newsbrief/internal/newsapi"
	"github.com/deusflow/newsbrief/internal/rss"
	"github.com/deusflow/newsbrief/internal/scraper"
	"github.com/deusflow/newsbrief/internal/summarizer"
)

// Build assembles a Service from configuration. The returned func
// releases the cache and the Gemini client.
func Build(ctx context.Context, cfg *config.Config) (*Service, func(), error) {
	order, err := summarizer.ParseOrder(cfg.SummaryOrder)
	if err != nil {
		return nil, nil, err
	}
	sum, err := summarizer.New(cfg.SummaryLanguage, order)
	if err != nil {
		return nil, nil, err
	}

	var source news.Source
	if cfg.NewsAPIKey != "" {
		source = newsapi.NewClient(cfg.NewsAPIURL, cfg.NewsAPIKey, cfg.NewsSource, cfg.RequestTimeout)
		logger.Info("using NewsAPI", "url", cfg.NewsAPIURL, "source", cfg.NewsSource)
	} else {
		feeds, err := rss.LoadFeeds(cfg.FeedsConfigPath)
		if err != nil {
			return nil, nil, err
		}
		source = rss.NewSource(feeds, cfg.RequestTimeout)
		logger.Info("using RSS feeds", "count", len(feeds))
	}

	c := cache.New(cfg.CacheTTL, time.Hour)
	closers := []func(){c.Close}

	var ai AISummarizer
	if cfg.GeminiAPIKey != "" {
		client, err := gemini.NewClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			c.Close()
			return nil, nil, fmt.Errorf("gemini: %w", err)
		}
		ai = client
		closers = append(closers, client.Close)
	}

	svc := NewService(
		NewCachedSource(source, c),
		NewCachedFetcher(scraper.New(cfg.RequestTimeout), c),
		sum,
		entities.ProseExtractor{},
		ai,
		Options{NumArticles: cfg.NumArticles, SummaryLength: cfg.SummaryLength},
	)

	cleanup := func() {
		for _, fn := range closers {
			fn()
		}
	}
	return svc, cleanup, nil
}
