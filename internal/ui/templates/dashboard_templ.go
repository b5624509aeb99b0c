package templates

// Rendering of dashboard.templ, kept in step with it by hand.
// Running templ generate replaces this file.

import (
	"context"
	"time"

	"github.com/a-h/templ"

	"olist-dashboard/internal/models"
)

func Dashboard(p PageData) templ.Component {
	return component(func(ctx context.Context, w *writer) {
		signals, err := signalsAttr(p.Dashboard.Range)
		if err != nil {
			w.err = err
			return
		}

		w.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`,
			`<meta name="viewport" content="width=device-width, initial-scale=1">`,
			`<title>E-Commerce Orders Dashboard</title>`,
			`<script type="module" src="`, datastarScript, `"></script>`,
			`<style>`, stylesheet, `</style></head>`)

		w.raw(`<body data-signals="`)
		w.text(signals)
		w.raw(`"><header><h1>E-Commerce Orders Dashboard</h1></header><main>`)

		w.component(ctx, Filters(p.Min, p.Max))
		w.component(ctx, ErrorBanner(""))
		w.component(ctx, Metrics(p.Dashboard.Summary, p.Dashboard.RecordCount))
		w.component(ctx, Charts(p.Dashboard.Range))
		w.component(ctx, Tables(p.Dashboard, p.Money))

		w.raw(`</main></body></html>`)
	})
}

func Filters(minDate, maxDate time.Time) templ.Component {
	return component(func(ctx context.Context, w *writer) {
		lo := minDate.Format(models.DateLayout)
		hi := maxDate.Format(models.DateLayout)

		w.raw(`<section id="filters" class="filters">`)
		for _, input := range []struct{ name, label string }{
			{"start", "Start date"},
			{"end", "End date"},
		} {
			w.raw(`<label>`, input.label, ` <input type="date" name="`, input.name, `" data-bind:`, input.name)
			w.raw(` min="`, lo, `" max="`, hi, `"`)
			w.raw(` data-on:change="@get('/sse/dashboard')"></label>`)
		}
		w.raw(`<a class="export" data-attr:href="'/export.xlsx?start=' + $start + '&amp;end=' + $end" href="/export.xlsx">Download XLSX</a>`)
		w.raw(`</section>`)
	})
}

func ErrorBanner(msg string) templ.Component {
	return component(func(ctx context.Context, w *writer) {
		if msg == "" {
			w.raw(`<div id="`, IDErrorBanner, `" class="banner" hidden></div>`)
			return
		}
		w.raw(`<div id="`, IDErrorBanner, `" class="banner error" role="alert">`)
		w.text(msg)
		w.raw(`</div>`)
	})
}

func Metrics(s models.Summary, records int) templ.Component {
	return component(func(ctx context.Context, w *writer) {
		w.raw(`<section id="`, IDMetrics, `" class="metrics">`)
		w.raw(`<div class="metric"><span class="label">Total orders</span><span class="value">`)
		w.number(s.TotalOrders)
		w.raw(`</span></div><div class="metric"><span class="label">Total revenue</span><span class="value">`)
		w.text(s.FormattedRevenue)
		w.raw(`</span></div><div class="metric"><span class="label">Order lines</span><span class="value">`)
		w.number(records)
		w.raw(`</span></div></section>`)
	})
}

func Charts(rng models.DateRange) templ.Component {
	return component(func(ctx context.Context, w *writer) {
		w.raw(`<section id="`, IDCharts, `" class="charts">`)
		for _, c := range chartPanels {
			w.raw(`<figure><img src="`)
			w.text(ChartURL(c.Name, rng))
			w.raw(`" alt="`)
			w.text(c.Alt)
			w.raw(`" loading="lazy"></figure>`)
		}
		w.raw(`</section>`)
	})
}

func Tables(d *models.Dashboard, money Money) templ.Component {
	return component(func(ctx context.Context, w *writer) {
		w.raw(`<section id="`, IDTables, `" class="tables">`)
		for _, t := range dashboardTables(d, money) {
			w.component(ctx, dataTable(t))
		}
		w.raw(`</section>`)
	})
}

func dataTable(t tableData) templ.Component {
	return component(func(ctx context.Context, w *writer) {
		w.raw(`<div class="table-card"><h2>`)
		w.text(t.Title)
		w.raw(`</h2>`)

		if len(t.Rows) == 0 {
			w.raw(`<p class="empty">No data for the selected range</p></div>`)
			return
		}

		w.raw(`<table><thead><tr>`)
		for _, h := range t.Headers {
			w.raw(`<th>`)
			w.text(h)
			w.raw(`</th>`)
		}
		w.raw(`</tr></thead><tbody>`)

		for _, row := range t.Rows {
			w.raw(`<tr>`)
			for _, cell := range row {
				w.raw(`<td>`)
				w.text(cell)
				w.raw(`</td>`)
			}
			w.raw(`</tr>`)
		}
		w.raw(`</tbody></table>`)

		if t.Truncated() {
			w.raw(`<p class="more">Showing `, itoa(len(t.Rows)), ` of `, itoa(t.Total), ` rows</p>`)
		}
		w.raw(`</div>`)
	})
}
