package metrics

import (
	"sync"
	"time"
)

type Metrics struct {
	mu sync.RWMutex

	// Counters
	SearchesServed     int64
	ArticlesFetched    int64
	FetchFailures      int64
	SummariesGenerated int64
	AISummaries        int64
	AIFailures         int64

	// Timings
	LastDigestTime    time.Duration
	AverageDigestTime time.Duration
	TotalDigestTime   time.Duration
	DigestCount       int64

	// Status
	LastRunTime   time.Time
	LastErrorTime time.Time
	LastError     string
	IsHealthy     bool
}

var Global = &Metrics{IsHealthy: true}

func (m *Metrics) IncrementSearches() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SearchesServed++
	searchesTotal.Inc()
}

func (m *Metrics) IncrementArticlesFetched() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ArticlesFetched++
	fetchesTotal.WithLabelValues("ok").Inc()
}

func (m *Metrics) IncrementFetchFailures() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FetchFailures++
	fetchesTotal.WithLabelValues("error").Inc()
}

func (m *Metrics) IncrementSummaries() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SummariesGenerated++
	summariesTotal.Inc()
}

func (m *Metrics) IncrementAISummaries() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AISummaries++
	aiSummariesTotal.WithLabelValues("ok").Inc()
}

func (m *Metrics) IncrementAIFailures() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AIFailures++
	aiSummariesTotal.WithLabelValues("error").Inc()
}

func (m *Metrics) RecordDigestTime(duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.LastDigestTime = duration
	m.TotalDigestTime += duration
	m.DigestCount++

	if m.DigestCount > 0 {
		m.AverageDigestTime = m.TotalDigestTime / time.Duration(m.DigestCount)
	}
	digestDuration.Observe(duration.Seconds())
}

func (m *Metrics) SetLastRun() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastRunTime = time.Now()
	m.IsHealthy = true
}

func (m *Metrics) SetError(err string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastError = err
	m.LastErrorTime = time.Now()
	m.IsHealthy = false
}

func (m *Metrics) GetStats() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return map[string]interface{}{
		"searches_served":        m.SearchesServed,
		"articles_fetched":       m.ArticlesFetched,
		"fetch_failures":         m.FetchFailures,
		"summaries_generated":    m.SummariesGenerated,
		"ai_summaries":           m.AISummaries,
		"ai_failures":            m.AIFailures,
		"last_digest_time_ms":    m.LastDigestTime.Milliseconds(),
		"average_digest_time_ms": m.AverageDigestTime.Milliseconds(),
		"last_run_time":          m.LastRunTime.Format(time.RFC3339),
		"last_error_time":        m.LastErrorTime.Format(time.RFC3339),
		"last_error":             m.LastError,
		"is_healthy":             m.IsHealthy,
	}
}
