package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"olist-dashboard/internal/errors"
	"olist-dashboard/internal/models"
	"olist-dashboard/internal/services"
)

const cacheMaxAge = "public, max-age=300"

type APIHandlers struct {
	analytics *services.Analytics
	logger    *slog.Logger
}

func NewAPIHandlers(analytics *services.Analytics, logger *slog.Logger) *APIHandlers {
	return &APIHandlers{
		analytics: analytics,
		logger:    logger,
	}
}

type viewResponse struct {
	Range rangeJSON `json:"range"`
	Rows  any       `json:"rows"`
}

// serveView resolves the request range, computes one view over it and
// writes it inside the success envelope.
func serveView[T any](h *APIHandlers, w http.ResponseWriter, r *http.Request, view func(models.DateRange) (T, error)) {
	rng, err := requestRange(r, h.analytics.DefaultRange())
	if err != nil {
		errors.WriteError(r.Context(), w, h.logger, err)
		return
	}

	rows, err := view(rng)
	if err != nil {
		errors.WriteError(r.Context(), w, h.logger, serviceError(err))
		return
	}

	errors.WriteSuccessWithHeaders(w, viewResponse{Range: toRangeJSON(rng), Rows: rows}, map[string]string{
		"Cache-Control": cacheMaxAge,
	})
}

func (h *APIHandlers) HandleSummary(w http.ResponseWriter, r *http.Request) {
	serveView(h, w, r, h.analytics.Summary)
}

func (h *APIHandlers) HandleDailyOrders(w http.ResponseWriter, r *http.Request) {
	serveView(h, w, r, h.analytics.DailyOrders)
}

func (h *APIHandlers) HandleCategoryOrders(w http.ResponseWriter, r *http.Request) {
	serveView(h, w, r, h.analytics.CategoryOrders)
}

func (h *APIHandlers) HandleCategoryRevenue(w http.ResponseWriter, r *http.Request) {
	serveView(h, w, r, h.analytics.CategoryRevenue)
}

func (h *APIHandlers) HandleCustomersByState(w http.ResponseWriter, r *http.Request) {
	serveView(h, w, r, h.analytics.CustomersByState)
}

func (h *APIHandlers) HandleCustomersByCity(w http.ResponseWriter, r *http.Request) {
	serveView(h, w, r, h.analytics.CustomersByCity)
}

func (h *APIHandlers) HandleTopCities(w http.ResponseWriter, r *http.Request) {
	serveView(h, w, r, h.analytics.TopCities)
}

type datasetRange struct {
	Min     time.Time `json:"min_purchase"`
	Max     time.Time `json:"max_purchase"`
	Default rangeJSON `json:"default_range"`
}

// HandleRange reports the dataset bounds that limit the date selector.
func (h *APIHandlers) HandleRange(w http.ResponseWriter, r *http.Request) {
	minTime, maxTime, ok := h.analytics.Bounds()
	if !ok {
		errors.WriteError(r.Context(), w, h.logger, errors.ServiceUnavailable("No data loaded"))
		return
	}

	errors.WriteSuccessWithHeaders(w, datasetRange{
		Min:     minTime,
		Max:     maxTime,
		Default: toRangeJSON(h.analytics.DefaultRange()),
	}, map[string]string{"Cache-Control": cacheMaxAge})
}

func (h *APIHandlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	_, _, loaded := h.analytics.Bounds()

	status := "healthy"
	if !loaded {
		status = "degraded"
	}

	errors.WriteSuccessWithHeaders(w, map[string]any{
		"status":      status,
		"data_loaded": loaded,
		"timestamp":   time.Now().Format(time.RFC3339),
		"version":     "1.0.0",
	}, map[string]string{"Cache-Control": "no-cache"})
}

func (h *APIHandlers) HandleStats(w http.ResponseWriter, r *http.Request) {
	errors.WriteSuccess(w, h.analytics.Stats())
}
