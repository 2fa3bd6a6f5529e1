// Package rss is the headline source used when no NewsAPI key is configured.
package rss

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
	"gopkg.in/yaml.v3"

	"github.com/deusflow/newsbrief/internal/logger"
	"github.com/deusflow/newsbrief/internal/news"
)

// FeedsConfig is YAML config structure
// feeds:
//   - https://...
type FeedsConfig struct {
	Feeds []string `yaml:"feeds"`
}

// LoadFeeds reads RSS feeds list from YAML file
func LoadFeeds(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open feeds config: %w", err)
	}
	defer f.Close()

	var cfg FeedsConfig
	dec := yaml.NewDecoder(f)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse feeds config %s: %w", path, err)
	}
	return cfg.Feeds, nil
}

type Source struct {
	feeds   []string
	parser  *gofeed.Parser
	timeout time.Duration
}

func NewSource(feeds []string, timeout time.Duration) *Source {
	return &Source{feeds: feeds, parser: gofeed.NewParser(), timeout: timeout}
}

// Search fetches every feed, keeps the items whose title or description
// matches the query, newest first, and returns at most limit of them.
// A feed that fails to load is logged and skipped.
func (s *Source) Search(ctx context.Context, query string, limit int) ([]news.Article, error) {
	var articles []news.Article
	ok := 0

	for _, url := range s.feeds {
		fctx, cancel := context.WithTimeout(ctx, s.timeout)
		feed, err := s.parser.ParseURLWithContext(url, fctx)
		cancel()
		if err != nil {
			logger.Warn("failed to parse feed", "url", url, "error", err)
			continue
		}
		ok++

		for _, item := range feed.Items {
			if !news.MatchesQuery(item.Title+" "+item.Description, query) {
				continue
			}
			articles = append(articles, toArticle(feed, item))
		}
	}

	if ok == 0 && len(s.feeds) > 0 {
		return nil, fmt.Errorf("all %d feeds failed", len(s.feeds))
	}
	logger.Debug("processed feeds", "ok", ok, "total", len(s.feeds), "matches", len(articles))

	sort.SliceStable(articles, func(i, j int) bool {
		return articles[i].PublishedAt.After(articles[j].PublishedAt)
	})
	return news.Limit(news.Dedupe(articles), limit), nil
}

func toArticle(feed *gofeed.Feed, item *gofeed.Item) news.Article {
	a := news.Article{
		Title:       strings.TrimSpace(item.Title),
		URL:         item.Link,
		Source:      feed.Title,
		Description: item.Description,
	}
	if item.PublishedParsed != nil {
		a.PublishedAt = *item.PublishedParsed
	}
	if item.Image != nil {
		a.URLToImage = item.Image.URL
	} else if feed.Image != nil {
		a.URLToImage = feed.Image.URL
	}
	for _, enc := range item.Enclosures {
		if a.URLToImage == "" && strings.HasPrefix(enc.Type, "image/") {
			a.URLToImage = enc.URL
		}
	}
	return a
}
