package handlers

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"slices"
	"strconv"
	"time"

	"olist-dashboard/internal/charts"
	"olist-dashboard/internal/errors"
	"olist-dashboard/internal/export"
	"olist-dashboard/internal/services"
	"olist-dashboard/internal/ui/templates"
)

// RenderHandlers serve the page and the binary outputs of a dashboard: PNG
// charts and the XLSX export.
type RenderHandlers struct {
	analytics *services.Analytics
	renderer  *charts.Renderer
	logger    *slog.Logger
	timeout   time.Duration
}

func NewRenderHandlers(analytics *services.Analytics, renderer *charts.Renderer, logger *slog.Logger, timeout time.Duration) *RenderHandlers {
	return &RenderHandlers{
		analytics: analytics,
		renderer:  renderer,
		logger:    logger,
		timeout:   timeout,
	}
}

func (h *RenderHandlers) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		errors.WriteError(r.Context(), w, h.logger, errors.NotFound("Page not found"))
		return
	}

	rng, err := requestRange(r, h.analytics.DefaultRange())
	if err != nil {
		errors.WriteError(r.Context(), w, h.logger, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	d, err := h.analytics.Dashboard(ctx, rng)
	if err != nil {
		errors.WriteError(ctx, w, h.logger, serviceError(err))
		return
	}

	minTime, maxTime, _ := h.analytics.Bounds()
	page := templates.Dashboard(templates.PageData{
		Dashboard: d,
		Min:       minTime,
		Max:       maxTime,
		Money:     h.analytics.Currency(),
	})

	var buf bytes.Buffer
	if err := page.Render(ctx, &buf); err != nil {
		errors.WriteError(ctx, w, h.logger, errors.InternalWrap(err, "Failed to render dashboard"))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	_, _ = buf.WriteTo(w)
}

func (h *RenderHandlers) HandleChart(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if !slices.Contains(charts.Names, name) {
		errors.WriteError(r.Context(), w, h.logger, errors.NotFound("Unknown chart").WithDetails(name))
		return
	}

	rng, err := requestRange(r, h.analytics.DefaultRange())
	if err != nil {
		errors.WriteError(r.Context(), w, h.logger, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	d, err := h.analytics.Dashboard(ctx, rng)
	if err != nil {
		errors.WriteError(ctx, w, h.logger, serviceError(err))
		return
	}

	var buf bytes.Buffer
	if err := h.renderer.Render(&buf, name, d); err != nil {
		errors.WriteError(ctx, w, h.logger, errors.InternalWrap(err, "Failed to render chart"))
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Header().Set("Cache-Control", cacheMaxAge)
	_, _ = buf.WriteTo(w)
}

func (h *RenderHandlers) HandleExport(w http.ResponseWriter, r *http.Request) {
	rng, err := requestRange(r, h.analytics.DefaultRange())
	if err != nil {
		errors.WriteError(r.Context(), w, h.logger, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	d, err := h.analytics.Dashboard(ctx, rng)
	if err != nil {
		errors.WriteError(ctx, w, h.logger, serviceError(err))
		return
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, d); err != nil {
		errors.WriteError(ctx, w, h.logger, errors.InternalWrap(err, "Failed to build workbook"))
		return
	}

	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+export.Filename(rng)+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	_, _ = buf.WriteTo(w)
}
