// Package web serves the search page and the health endpoints.
package web

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/deusflow/newsbrief/internal/app"
	"github.com/deusflow/newsbrief/internal/logger"
	"github.com/deusflow/newsbrief/internal/metrics"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTmpl = template.Must(template.ParseFS(templateFS, "templates/index.html"))

// Digester is the part of app.Service the page needs.
type Digester interface {
	Digest(ctx context.Context, query string) (*app.Digest, error)
}

type Server struct {
	digester Digester
	handler  http.Handler
}

func NewServer(d Digester) *Server {
	s := &Server{digester: d}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /health", handleHealth)
	mux.HandleFunc("GET /stats", handleStats)
	mux.Handle("GET /metrics", metrics.Handler())

	s.handler = requestID(accessLog(mux))
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

type pageData struct {
	Query  string
	Digest *app.Digest
	Error  string
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	data := pageData{Query: strings.TrimSpace(r.URL.Query().Get("q"))}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	if data.Query != "" {
		d, err := s.digester.Digest(r.Context(), data.Query)
		if err != nil {
			logger.Error("digest failed", "request_id", RequestIDFromContext(r.Context()), "error", err)
			data.Error = "Could not load news right now. Please try again later."
			w.WriteHeader(http.StatusBadGateway)
		}
		data.Digest = d
	}

	if err := pageTmpl.Execute(w, data); err != nil {
		logger.Error("render failed", "error", err)
	}
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	stats := metrics.Global.GetStats()

	status := "ok"
	code := http.StatusOK
	if !stats["is_healthy"].(bool) {
		status = "error"
		code = http.StatusServiceUnavailable
	}

	writeJSON(w, code, map[string]interface{}{
		"status":     status,
		"last_run":   stats["last_run_time"],
		"last_error": stats["last_error"],
	})
}

func handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, metrics.Global.GetStats())
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("failed to encode response", "error", err)
	}
}

// ListenAndServe runs until ctx is cancelled, then shuts down gracefully.
func ListenAndServe(ctx context.Context, addr string, h http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting web server", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		logger.Info("shutting down web server")
		return srv.Shutdown(shutdownCtx)
	}
}
