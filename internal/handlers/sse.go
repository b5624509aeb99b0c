package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/a-h/templ"
	"github.com/starfederation/datastar-go/datastar"

	"olist-dashboard/internal/errors"
	"olist-dashboard/internal/services"
	"olist-dashboard/internal/ui/templates"
)

type SSEHandlers struct {
	analytics *services.Analytics
	logger    *slog.Logger
	timeout   time.Duration
}

func NewSSEHandlers(analytics *services.Analytics, logger *slog.Logger, timeout time.Duration) *SSEHandlers {
	return &SSEHandlers{
		analytics: analytics,
		logger:    logger,
		timeout:   timeout,
	}
}

func renderString(ctx context.Context, c templ.Component) (string, error) {
	var sb strings.Builder
	if err := c.Render(ctx, &sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// HandleDashboard recomputes the dashboard for the start/end signals and
// patches metrics, charts and tables. An invalid range only replaces the
// error banner so the previous view stays on screen.
func (h *SSEHandlers) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	var params rangeParams
	if err := datastar.ReadSignals(r, &params); err != nil {
		h.logger.WarnContext(r.Context(), "read signals", "error", err)
	}

	rng, rangeErr := params.resolve(h.analytics.DefaultRange())

	sse := datastar.NewSSE(w, r)

	if rangeErr != nil {
		h.patchError(r.Context(), sse, rangeErr)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	d, err := h.analytics.Dashboard(ctx, rng)
	if err != nil {
		h.patchError(ctx, sse, serviceError(err))
		return
	}

	fragments := []templ.Component{
		templates.ErrorBanner(""),
		templates.Metrics(d.Summary, d.RecordCount),
		templates.Charts(d.Range),
		templates.Tables(d, h.analytics.Currency()),
	}
	for _, c := range fragments {
		html, err := renderString(ctx, c)
		if err != nil {
			h.logger.ErrorContext(ctx, "render fragment", "error", err)
			return
		}
		if err := sse.PatchElements(html); err != nil {
			h.logger.WarnContext(ctx, "patch elements", "error", err)
			return
		}
	}

	signals, err := json.Marshal(templates.SignalsFor(d.Range))
	if err != nil {
		h.logger.ErrorContext(ctx, "marshal signals", "error", err)
		return
	}
	if err := sse.PatchSignals(signals); err != nil {
		h.logger.WarnContext(ctx, "patch signals", "error", err)
	}
}

func (h *SSEHandlers) patchError(ctx context.Context, sse *datastar.ServerSentEventGenerator, err error) {
	appErr := errors.From(err)
	h.logger.WarnContext(ctx, "dashboard update rejected", "error_code", appErr.Code, "cause", appErr.Cause)

	html, renderErr := renderString(ctx, templates.ErrorBanner(appErr.Message))
	if renderErr != nil {
		h.logger.ErrorContext(ctx, "render error banner", "error", renderErr)
		return
	}
	if patchErr := sse.PatchElements(html); patchErr != nil {
		h.logger.WarnContext(ctx, "patch elements", "error", patchErr)
	}
}
