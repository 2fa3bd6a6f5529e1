package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	searchesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "newsbrief_searches_total",
		Help: "Total number of news searches served.",
	})

	fetchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "newsbrief_article_fetches_total",
		Help: "Article page fetches by result.",
	}, []string{"result"})

	summariesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "newsbrief_summaries_total",
		Help: "Extractive summaries generated.",
	})

	aiSummariesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "newsbrief_ai_summaries_total",
		Help: "Gemini summary requests by result.",
	}, []string{"result"})

	digestDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "newsbrief_digest_duration_seconds",
		Help:    "Time to search, fetch and summarize one query.",
		Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
	})
)

// Handler exposes the default Prometheus registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
