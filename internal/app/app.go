// Package app ties the headline source, the scraper and the summarizer
// together into one digest per search query.
package app

import (
	"context"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/deusflow/newsbrief/internal/entities"
	"github.com/deusflow/newsbrief/internal/logger"
	"github.com/deusflow/newsbrief/internal/metrics"
	"github.com/deusflow/newsbrief/internal/news"
	"github.com/deusflow/newsbrief/internal/scraper"
)

// Fetcher returns one text per url, in order. Failed fetches are
// represented by placeholder text, never dropped.
type Fetcher interface {
	FetchAll(ctx context.Context, urls []string) []string
}

type TextSummarizer interface {
	Summarize(text string, n int) (string, error)
}

// AISummarizer is the optional abstractive summary backend.
type AISummarizer interface {
	Summarize(ctx context.Context, title, content string) (string, error)
}

// Card is everything the page shows for one article.
type Card struct {
	Title       string
	Link        string
	Thumbnail   string
	Source      string
	Summary     string
	AISummary   string
	Entities    []entities.Entity
	Labels      []string
	Highlighted template.HTML
}

type Digest struct {
	Query string
	Cards []Card
	Empty bool
}

type Options struct {
	NumArticles   int
	SummaryLength int
}

type Service struct {
	source     news.Source
	fetcher    Fetcher
	summarizer TextSummarizer
	extractor  entities.Extractor
	ai         AISummarizer
	opts       Options
}

// NewService wires a Service. ai may be nil.
func NewService(source news.Source, fetcher Fetcher, s TextSummarizer, ex entities.Extractor, ai AISummarizer, opts Options) *Service {
	return &Service{
		source:     source,
		fetcher:    fetcher,
		summarizer: s,
		extractor:  ex,
		ai:         ai,
		opts:       opts,
	}
}

// Digest searches for query, fetches every hit and summarizes it. A
// search that finds nothing is not an error; the Digest is marked Empty.
func (s *Service) Digest(ctx context.Context, query string) (*Digest, error) {
	start := time.Now()
	query = strings.TrimSpace(query)
	log := logger.With("query", query)

	articles, err := s.source.Search(ctx, query, s.opts.NumArticles)
	if err != nil {
		metrics.Global.SetError(err.Error())
		return nil, fmt.Errorf("search failed: %w", err)
	}
	metrics.Global.IncrementSearches()

	d := &Digest{Query: query}
	if len(articles) == 0 {
		d.Empty = true
		log.Info("no results")
		return d, nil
	}

	links := make([]string, len(articles))
	for i, a := range articles {
		links[i] = a.URL
	}
	texts := s.fetcher.FetchAll(ctx, links)

	for i, a := range articles {
		text := ""
		if i < len(texts) {
			text = texts[i]
		}
		d.Cards = append(d.Cards, s.buildCard(ctx, a, text))
	}

	elapsed := time.Since(start)
	metrics.Global.RecordDigestTime(elapsed)
	metrics.Global.SetLastRun()
	log.Info("digest ready", "articles", len(d.Cards), "elapsed", elapsed)
	return d, nil
}

func (s *Service) buildCard(ctx context.Context, a news.Article, text string) Card {
	card := Card{
		Title:     a.Title,
		Link:      a.URL,
		Thumbnail: a.URLToImage,
		Source:    a.Source,
	}

	summary, err := s.summarizer.Summarize(text, s.opts.SummaryLength)
	if err != nil {
		logger.Warn("summarize failed", "url", a.URL, "error", err)
	} else {
		metrics.Global.IncrementSummaries()
	}
	card.Summary = summary

	if s.extractor != nil && summary != "" {
		ents, err := s.extractor.Extract(summary)
		if err != nil {
			logger.Warn("entity extraction failed", "url", a.URL, "error", err)
		}
		card.Entities = ents
		card.Labels = entities.Labels(ents)
	}
	card.Highlighted = entities.Highlight(summary, card.Entities)

	if s.ai != nil && text != "" && !scraper.IsPlaceholder(text) {
		ai, err := s.ai.Summarize(ctx, a.Title, text)
		if err != nil {
			// extractive summary stays on the card
			logger.Warn("gemini summary failed", "url", a.URL, "error", err)
			metrics.Global.IncrementAIFailures()
		} else {
			card.AISummary = ai
			metrics.Global.IncrementAISummaries()
		}
	}
	return card
}
