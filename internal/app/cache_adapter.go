package app

import (
	"context"
	"strconv"
	"strings"

	"github.com/deusflow/newsbrief/internal/cache"
	"github.com/deusflow/newsbrief/internal/logger"
	"github.com/deusflow/newsbrief/internal/news"
)

// CachedSource memoizes searches by query and limit. Callers get their
// own copy of the cached slice.
type CachedSource struct {
	next  news.Source
	cache *cache.Cache
}

func NewCachedSource(next news.Source, c *cache.Cache) *CachedSource {
	return &CachedSource{next: next, cache: c}
}

func (s *CachedSource) Search(ctx context.Context, query string, limit int) ([]news.Article, error) {
	key := cache.GenerateKey("search", strings.ToLower(query), strconv.Itoa(limit))
	if v, ok := s.cache.Get(key); ok {
		logger.Debug("search cache hit", "query", query)
		return append([]news.Article(nil), v.([]news.Article)...), nil
	}

	articles, err := s.next.Search(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	s.cache.Set(key, append([]news.Article(nil), articles...))
	return articles, nil
}

// CachedFetcher memoizes whole link lists, as one search's fetch.
type CachedFetcher struct {
	next  Fetcher
	cache *cache.Cache
}

func NewCachedFetcher(next Fetcher, c *cache.Cache) *CachedFetcher {
	return &CachedFetcher{next: next, cache: c}
}

func (f *CachedFetcher) FetchAll(ctx context.Context, urls []string) []string {
	key := cache.GenerateKey(append([]string{"fetch"}, urls...)...)
	if v, ok := f.cache.Get(key); ok {
		logger.Debug("fetch cache hit", "links", len(urls))
		return append([]string(nil), v.([]string)...)
	}

	texts := f.next.FetchAll(ctx, urls)
	f.cache.Set(key, append([]string(nil), texts...))
	return texts
}
