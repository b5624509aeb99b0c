package server

import (
	"log/slog"
	"net/http"

	"olist-dashboard/internal/charts"
	"olist-dashboard/internal/config"
	"olist-dashboard/internal/handlers"
	"olist-dashboard/internal/services"
)

type Server struct {
	mux            *http.ServeMux
	logger         *slog.Logger
	apiHandlers    *handlers.APIHandlers
	sseHandlers    *handlers.SSEHandlers
	renderHandlers *handlers.RenderHandlers
}

func NewServer(analytics *services.Analytics, logger *slog.Logger, cfg *config.Config) *Server {
	renderer := charts.NewRenderer(cfg.Display.ChartWidth, cfg.Display.ChartHeight)

	s := &Server{
		mux:            http.NewServeMux(),
		logger:         logger,
		apiHandlers:    handlers.NewAPIHandlers(analytics, logger),
		sseHandlers:    handlers.NewSSEHandlers(analytics, logger, cfg.Server.RenderTimeout),
		renderHandlers: handlers.NewRenderHandlers(analytics, renderer, logger, cfg.Server.RenderTimeout),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	// Pages and metadata
	s.mux.HandleFunc("GET /", s.renderHandlers.HandleDashboard)
	s.mux.HandleFunc("GET /health", s.apiHandlers.HandleHealth)
	s.mux.HandleFunc("GET /admin/stats", s.apiHandlers.HandleStats)
	s.mux.HandleFunc("GET /api/range", s.apiHandlers.HandleRange)

	// Derived tables, all taking ?start=YYYY-MM-DD&end=YYYY-MM-DD
	s.mux.HandleFunc("GET /api/summary", s.apiHandlers.HandleSummary)
	s.mux.HandleFunc("GET /api/daily-orders", s.apiHandlers.HandleDailyOrders)
	s.mux.HandleFunc("GET /api/category-orders", s.apiHandlers.HandleCategoryOrders)
	s.mux.HandleFunc("GET /api/category-revenue", s.apiHandlers.HandleCategoryRevenue)
	s.mux.HandleFunc("GET /api/customers-by-state", s.apiHandlers.HandleCustomersByState)
	s.mux.HandleFunc("GET /api/customers-by-city", s.apiHandlers.HandleCustomersByCity)
	s.mux.HandleFunc("GET /api/top-cities", s.apiHandlers.HandleTopCities)

	// Datastar SSE
	s.mux.HandleFunc("GET /sse/dashboard", s.sseHandlers.HandleDashboard)

	// Binary outputs
	s.mux.HandleFunc("GET /charts/{name}", s.renderHandlers.HandleChart)
	s.mux.HandleFunc("GET /export.xlsx", s.renderHandlers.HandleExport)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}
