// Package newsapi is a small client for the newsapi.org search endpoints.
package newsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/deusflow/newsbrief/internal/logger"
	"github.com/deusflow/newsbrief/internal/news"
)

// APIError is returned for non-2xx answers and for bodies with
// "status": "error".
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("newsapi error (HTTP %d, %s): %s", e.StatusCode, e.Code, e.Message)
}

type Client struct {
	baseURL    string
	apiKey     string
	source     string
	language   string
	httpClient *http.Client
}

// NewClient builds a client. source is the top-headlines source used when
// a search has no query.
func NewClient(baseURL, apiKey, source string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		source:     source,
		language:   "en",
		httpClient: &http.Client{Timeout: timeout},
	}
}

type response struct {
	Status   string `json:"status"`
	Code     string `json:"code"`
	Message  string `json:"message"`
	Articles []struct {
		Source struct {
			Name string `json:"name"`
		} `json:"source"`
		Title       string    `json:"title"`
		Description string    `json:"description"`
		URL         string    `json:"url"`
		URLToImage  string    `json:"urlToImage"`
		PublishedAt time.Time `json:"publishedAt"`
	} `json:"articles"`
}

// Search queries /v2/everything, or /v2/top-headlines for an empty query,
// and returns at most limit articles.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]news.Article, error) {
	params := url.Values{}
	params.Set("language", c.language)

	endpoint := "/v2/everything"
	if strings.TrimSpace(query) != "" {
		params.Set("q", query)
	} else {
		endpoint = "/v2/top-headlines"
		params.Set("sources", c.source)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build newsapi request: %w", err)
	}
	req.Header.Set("X-Api-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("newsapi request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read newsapi response: %w", err)
	}

	var parsed response
	if err := json.Unmarshal(body, &parsed); err != nil {
		if resp.StatusCode/100 != 2 {
			return nil, &APIError{StatusCode: resp.StatusCode, Code: "http", Message: strings.TrimSpace(string(body))}
		}
		return nil, fmt.Errorf("failed to decode newsapi response: %w", err)
	}
	if resp.StatusCode/100 != 2 || parsed.Status == "error" {
		return nil, &APIError{StatusCode: resp.StatusCode, Code: parsed.Code, Message: parsed.Message}
	}

	articles := make([]news.Article, 0, len(parsed.Articles))
	for _, a := range parsed.Articles {
		articles = append(articles, news.Article{
			Title:       a.Title,
			URL:         a.URL,
			URLToImage:  a.URLToImage,
			Source:      a.Source.Name,
			Description: a.Description,
			PublishedAt: a.PublishedAt,
		})
	}

	logger.Debug("newsapi search", "endpoint", endpoint, "query", query, "results", len(articles))
	return news.Limit(articles, limit), nil
}
