// Package http serves the search API over HTTP.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/custodia-labs/searchbox/internal/core/domain"
	"github.com/custodia-labs/searchbox/internal/core/ports/driving"
	"github.com/custodia-labs/searchbox/internal/logger"
)

var log = logger.For("http")

// Routes.
const (
	PathSearch  = "/api/search"
	PathHealth  = "/healthz"
	PathMetrics = "/metrics"
)

const shutdownTimeout = 5 * time.Second

// errorBody is the error payload, e.g. {"message": "Temporary glitch..."}.
type errorBody struct {
	Message string `json:"message"`
}

// Server exposes a SearchService as GET /api/search.
type Server struct {
	search   driving.SearchService
	metrics  *Metrics
	registry *prometheus.Registry
	handler  http.Handler
}

// NewServer creates a server with its own metrics registry.
func NewServer(search driving.SearchService) *Server {
	reg := prometheus.NewRegistry()
	s := &Server{
		search:   search,
		metrics:  NewMetrics(reg),
		registry: reg,
	}
	s.handler = s.routes()
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	r.Get(PathSearch, s.handleSearch)
	r.Get(PathHealth, handleHealth)
	r.Method(http.MethodGet, PathMetrics, promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	log.Info("listening on %s", ln.Addr())

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	query := r.URL.Query().Get("q")
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit")) // invalid means no limit

	resp, err := s.search.Search(r.Context(), query, domain.SearchOptions{Limit: limit})
	if err != nil {
		if domain.IsCanceled(err) {
			log.Debug("request %s: client went away", middleware.GetReqID(r.Context()))
			return
		}

		code := http.StatusInternalServerError
		body := errorBody{Message: domain.MessageFetchFailed}
		var apiErr *domain.APIError
		if errors.As(err, &apiErr) {
			code = apiErr.StatusCode
			body.Message = apiErr.Message
			s.metrics.failures.Inc()
		} else {
			log.Error("request %s: search %q: %v", middleware.GetReqID(r.Context()), query, err)
		}
		writeJSON(w, code, body)
		s.metrics.observe(code, time.Since(start))
		return
	}

	if resp.Results == nil {
		resp.Results = []domain.SearchResult{}
	}
	writeJSON(w, http.StatusOK, resp)
	s.metrics.observe(http.StatusOK, time.Since(start))
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn("encode response: %v", err)
	}
}

// requestLogger logs one line per request.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		log.Info("%s %s %d %s (request %s)",
			r.Method, r.URL.RequestURI(), ww.Status(), time.Since(start).Round(time.Millisecond),
			middleware.GetReqID(r.Context()))
	})
}
