// Package news holds the article shape shared by the headline sources and
// the helpers used to filter and trim their results.
package news

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"regexp"
	"strings"
	"time"
)

// Article is one search hit: where it lives and how to show it.
type Article struct {
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	URLToImage  string    `json:"urlToImage"`
	Source      string    `json:"source"`
	Description string    `json:"description,omitempty"`
	PublishedAt time.Time `json:"publishedAt"`
}

// Source finds recent articles for a query. An empty query asks for the
// source's top headlines. At most limit articles are returned.
type Source interface {
	Search(ctx context.Context, query string, limit int) ([]Article, error)
}

// MatchesQuery reports whether the query occurs in text. Phrases and long
// words match as substrings; words of three letters or less must match a
// whole word so "ai" does not hit "said".
func MatchesQuery(text, query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	text = strings.ToLower(text)

	if strings.Contains(q, " ") || len(q) > 3 {
		return strings.Contains(text, q)
	}

	re := regexp.MustCompile(`\b` + regexp.QuoteMeta(q) + `\b`)
	return re.MatchString(text)
}

// Key identifies an article for deduplication.
func Key(a Article) string {
	h := sha1.New()
	h.Write([]byte(strings.ToLower(strings.TrimSpace(a.URL))))
	return hex.EncodeToString(h.Sum(nil))
}

// Dedupe drops articles whose URL was already seen, keeping the first.
func Dedupe(articles []Article) []Article {
	seen := make(map[string]bool, len(articles))
	out := articles[:0:0]
	for _, a := range articles {
		k := Key(a)
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, a)
	}
	return out
}

// Limit truncates to the first n articles.
func Limit(articles []Article, n int) []Article {
	if n >= 0 && len(articles) > n {
		return articles[:n]
	}
	return articles
}
