package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMetrics_CountersAndStats(t *testing.T) {
	m := &Metrics{IsHealthy: true}

	m.IncrementSearches()
	m.IncrementArticlesFetched()
	m.IncrementFetchFailures()
	m.IncrementSummaries()
	m.RecordDigestTime(2 * time.Second)
	m.RecordDigestTime(4 * time.Second)

	stats := m.GetStats()
	assert.Equal(t, int64(1), stats["searches_served"])
	assert.Equal(t, int64(1), stats["fetch_failures"])
	assert.Equal(t, int64(3000), stats["average_digest_time_ms"])
	assert.Equal(t, true, stats["is_healthy"])
}

func TestMetrics_ErrorThenRecover(t *testing.T) {
	m := &Metrics{IsHealthy: true}

	m.SetError("newsapi down")
	assert.Equal(t, false, m.GetStats()["is_healthy"])
	assert.Equal(t, "newsapi down", m.GetStats()["last_error"])

	m.SetLastRun()
	assert.Equal(t, true, m.GetStats()["is_healthy"])
}
