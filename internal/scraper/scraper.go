// Package scraper downloads article pages and extracts their body text.
package scraper

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"

	"github.com/deusflow/newsbrief/internal/logger"
	"github.com/deusflow/newsbrief/internal/metrics"
)

const (
	userAgent    = "Mozilla/5.0 (compatible; newsbrief/1.0)"
	maxBodyBytes = 5 << 20

	placeholderPrefix = "Could not fetch content from "
)

type Scraper struct {
	client *http.Client
}

func New(timeout time.Duration) *Scraper {
	return &Scraper{client: &http.Client{Timeout: timeout}}
}

// Fetch returns the text of every <p> on the page joined by a single space.
// Pages without paragraph text fall back to readability extraction.
func (s *Scraper) Fetch(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("error building request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("error loading page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP error: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", fmt.Errorf("error reading page: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("error parsing HTML: %w", err)
	}

	if text := paragraphText(doc); text != "" {
		return text, nil
	}

	parsedURL, err := url.Parse(pageURL)
	if err != nil {
		return "", fmt.Errorf("invalid url: %w", err)
	}
	article, err := readability.FromReader(bytes.NewReader(body), parsedURL)
	if err != nil {
		return "", fmt.Errorf("readability failed: %w", err)
	}
	text := blockText(article.Content)
	if text == "" {
		text = collapseSpaces(article.TextContent)
	}
	logger.Debug("no paragraphs, used readability", "url", pageURL, "chars", len(text))
	return text, nil
}

const blockSelector = "p, div, section, article, li, blockquote, pre, td, th, h1, h2, h3, h4, h5, h6"

// blockText joins the text of the innermost block elements of an HTML
// fragment with a single space, so adjacent blocks never run together.
func blockText(fragment string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return ""
	}

	var blocks []string
	doc.Find(blockSelector).Each(func(i int, sel *goquery.Selection) {
		if sel.Find(blockSelector).Length() > 0 {
			return
		}
		if text := collapseSpaces(sel.Text()); text != "" {
			blocks = append(blocks, text)
		}
	})
	return strings.Join(blocks, " ")
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// IsPlaceholder reports whether text is a Placeholder rather than page content.
func IsPlaceholder(text string) bool {
	return strings.HasPrefix(text, placeholderPrefix)
}

func paragraphText(doc *goquery.Document) string {
	var paragraphs []string
	doc.Find("p").Each(func(i int, sel *goquery.Selection) {
		paragraphs = append(paragraphs, sel.Text())
	})
	text := strings.Join(paragraphs, " ")
	if strings.TrimSpace(text) == "" {
		return ""
	}
	return text
}

// Placeholder is the text stored in place of an article that could not be
// fetched.
func Placeholder(pageURL string, err error) string {
	return fmt.Sprintf(placeholderPrefix+"%s. Error: %v", pageURL, err)
}

// FetchAll fetches urls one after another. The result has one entry per
// url, in order; failures are replaced by Placeholder text.
func (s *Scraper) FetchAll(ctx context.Context, urls []string) []string {
	out := make([]string, 0, len(urls))
	for i, u := range urls {
		logger.Debug("fetching article", "n", i+1, "total", len(urls), "url", u)

		text, err := s.Fetch(ctx, u)
		if err != nil {
			logger.Warn("can't get content", "url", u, "error", err)
			metrics.Global.IncrementFetchFailures()
			out = append(out, Placeholder(u, err))
			continue
		}
		metrics.Global.IncrementArticlesFetched()
		out = append(out, text)
	}
	return out
}
