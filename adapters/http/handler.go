// Package http assembles the service's HTTP surface: router, middleware
// and the operational endpoints around the definition API.
package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/mockgate/mockgate/adapters/metrics"
	_ "github.com/mockgate/mockgate/docs/swagger" // swagger docs
	"github.com/mockgate/mockgate/pkg/httpjson"
	"github.com/mockgate/mockgate/ports"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	httpSwagger "github.com/swaggo/http-swagger"
	"github.com/swaggo/swag"
)

// VersionResponse represents the version endpoint response.
type VersionResponse struct {
	Version string `json:"version"`
	Service string `json:"service"`
}

// Version is set via ldflags at build time.
var Version = "dev"

// RouterConfig holds optional configuration for the router.
type RouterConfig struct {
	Metrics       *metrics.Collector
	MetricsPath   string            // where to expose prometheus (default "/metrics")
	EnableOpenAPI bool              // serve the swagger UI and spec
	AdminHandler  http.Handler      // definition API, mounted at /api
	IDs           ports.IDGenerator // request-id source (default chi's)
}

// NewRouter creates the main HTTP router with the definition API mounted
// and nothing else configured.
func NewRouter(adminHandler http.Handler, logger zerolog.Logger) chi.Router {
	return NewRouterWithConfig(logger, RouterConfig{AdminHandler: adminHandler})
}

// NewRouterWithConfig creates the main HTTP router.
func NewRouterWithConfig(logger zerolog.Logger, cfg RouterConfig) chi.Router {
	r := chi.NewRouter()

	// Middleware
	if cfg.IDs != nil {
		r.Use(NewRequestIDMiddleware(cfg.IDs))
	} else {
		r.Use(middleware.RequestID)
	}
	r.Use(middleware.RealIP)
	r.Use(NewLoggingMiddleware(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// Metrics middleware (if enabled)
	if cfg.Metrics != nil {
		r.Use(NewMetricsMiddleware(cfg.Metrics))
	}

	// Status probe (no body beyond the empty object)
	r.Get("/healthz", Healthz)

	// Metrics endpoint
	if cfg.Metrics != nil {
		path := cfg.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		r.Handle(path, promhttp.Handler())
	}

	// OpenAPI/Swagger endpoints (if enabled)
	if cfg.EnableOpenAPI {
		// Serve the OpenAPI document at a well-known location
		r.Get("/.well-known/openapi.json", openAPIDoc)

		// Swagger UI
		r.Get("/swagger/*", httpSwagger.Handler(
			httpSwagger.URL("/.well-known/openapi.json"),
		))
	}

	// Version endpoint
	r.Get("/version", version)

	// Definition API
	if cfg.AdminHandler != nil {
		r.Mount("/api", cfg.AdminHandler)
	}

	// Everything else is a JSON 404, matching the API's envelope
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httpjson.WriteNotFound(w, "Not found")
	})

	return r
}

// Healthz reports liveness. The empty object is the whole contract:
// clients probe for the 200.
//
//	@Summary		Health check
//	@Description	Returns an empty object while the service is running
//	@Tags			System
//	@Produce		json
//	@Success		200	{object}	map[string]string	"Empty object"
//	@Router			/healthz [get]
func Healthz(w http.ResponseWriter, r *http.Request) {
	httpjson.WriteEmpty(w)
}

// version returns the service version.
//
//	@Summary		Get service version
//	@Description	Returns the version information for the service
//	@Tags			System
//	@Produce		json
//	@Success		200	{object}	VersionResponse	"Version information"
//	@Router			/version [get]
func version(w http.ResponseWriter, r *http.Request) {
	httpjson.Write(w, http.StatusOK, VersionResponse{
		Version: Version,
		Service: "mockgate",
	})
}

// openAPIDoc serves the registered swagger document.
func openAPIDoc(w http.ResponseWriter, r *http.Request) {
	doc, err := swag.ReadDoc()
	if err != nil {
		httpjson.WriteInternalError(w, "OpenAPI document unavailable")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Write([]byte(doc))
}

// NewRequestIDMiddleware tags every request with an id from the given
// generator, honouring an inbound X-Request-Id header. The id is stored
// under chi's context key, so middleware.GetReqID finds it.
func NewRequestIDMiddleware(ids ports.IDGenerator) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqID := r.Header.Get("X-Request-Id")
			if reqID == "" {
				reqID = ids.New()
			}
			ctx := context.WithValue(r.Context(), middleware.RequestIDKey, reqID)
			w.Header().Set("X-Request-Id", reqID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// NewMetricsMiddleware creates middleware that records request metrics.
func NewMetricsMiddleware(m *metrics.Collector) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Skip metrics for internal endpoints
			if r.URL.Path == "/healthz" || r.URL.Path == "/metrics" ||
				strings.HasPrefix(r.URL.Path, "/swagger") || strings.HasPrefix(r.URL.Path, "/.well-known") {
				next.ServeHTTP(w, r)
				return
			}

			m.RequestsInFlight.Inc()
			defer m.RequestsInFlight.Dec()

			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			duration := time.Since(start).Seconds()
			status := statusLabel(ww.Status())
			path := routePattern(r)

			m.RequestsTotal.WithLabelValues(r.Method, path, status).Inc()
			m.RequestDuration.WithLabelValues(r.Method, path, status).Observe(duration)
		})
	}
}

// routePattern labels the request with the matched chi pattern, keeping
// the cardinality of the path label bounded. Unmatched requests fall back
// to the normalized raw path.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return metrics.NormalizePath(r.URL.Path)
}

// statusLabel returns a string label for the status code.
func statusLabel(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	case status >= 200:
		return "2xx"
	default:
		return "other"
	}
}

// NewLoggingMiddleware creates a new logging middleware.
func NewLoggingMiddleware(logger zerolog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			// Skip logging for health checks and metrics
			if r.URL.Path == "/healthz" || r.URL.Path == "/metrics" {
				return
			}

			logger.Debug().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Int("bytes", ww.BytesWritten()).
				Dur("duration", time.Since(start)).
				Str("request_id", middleware.GetReqID(r.Context())).
				Msg("http request")
		})
	}
}
