package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"github.com/candlelight-lab/quarterdeck/frontend"
	"github.com/candlelight-lab/quarterdeck/pkg/domain/interfaces"
)

// Server represents the HTTP server
type Server struct {
	*http.Server
	router chi.Router
}

// NewServer creates a new HTTP server over the dashboard use cases
func NewServer(
	ctx context.Context,
	addr string,
	dashboardUC interfaces.Dashboard,
	drillUC interfaces.DrillDown,
) (*Server, error) {
	router := chi.NewRouter()

	// Apply global middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(LoggingMiddleware(ctx))
	router.Use(middleware.Recoverer)

	handler := NewDashboardHandler(dashboardUC, drillUC)

	// Health check
	router.Get("/health", handleHealth)

	// API routes
	router.Route("/api", func(r chi.Router) {
		// The four raw dataset endpoints
		r.Get("/data/{kind}", handler.HandleRawData)

		// Aggregated views and load lifecycle
		r.Route("/dashboard/{kind}", func(r chi.Router) {
			r.Get("/", handler.HandleDashboardView)
			r.Post("/load", handler.HandleDashboardLoad)
		})

		// Drill-down selection state machine
		r.Route("/drilldown", func(r chi.Router) {
			r.Get("/", handler.HandleDrillDownGet)
			r.Post("/", handler.HandleDrillDownSelect)
			r.Delete("/", handler.HandleDrillDownDismiss)
		})
	})

	// Frontend (embedded SPA with index.html fallback)
	fs, err := frontend.GetHTTPFS()
	if err != nil {
		ctxlog.From(ctx).Warn("Embedded frontend unavailable, serving API only",
			"error", err,
		)
		router.Get("/*", handleFallbackHome)
	} else {
		spa, err := NewSPAHandler(fs)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to create SPA handler")
		}
		router.Handle("/*", spa)
	}

	server := &Server{
		Server: &http.Server{
			Addr:              addr,
			Handler:           router,
			ReadHeaderTimeout: 15 * time.Second,
		},
		router: router,
	}

	return server, nil
}

// Router exposes the chi router (used by tests)
func (s *Server) Router() http.Handler {
	return s.router
}

// handleHealth handles health check requests
func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(map[string]string{
		"status":  "healthy",
		"service": "quarterdeck",
	}); err != nil {
		ctxlog.From(r.Context()).Error("Failed to encode health response", "error", err)
	}
}

// handleFallbackHome handles the root path when the frontend is not built
func handleFallbackHome(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(`<!DOCTYPE html>
<html>
<head><title>quarterdeck</title></head>
<body>
  <h1>quarterdeck</h1>
  <p>Sales analytics dashboard API. Frontend not built.</p>
  <p>Try <a href="/api/dashboard/customer-type/">/api/dashboard/customer-type/</a></p>
</body>
</html>`)); err != nil {
		ctxlog.From(r.Context()).Error("Failed to write fallback home page", "error", err)
	}
}
