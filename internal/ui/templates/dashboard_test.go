package templates

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/a-h/templ"

	"olist-dashboard/internal/currency"
	"olist-dashboard/internal/models"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var sb strings.Builder
	if err := c.Render(context.Background(), &sb); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	return sb.String()
}

func testDashboard() *models.Dashboard {
	day := func(d int) time.Time { return time.Date(2018, 1, d, 0, 0, 0, 0, time.UTC) }
	return &models.Dashboard{
		Range:                 models.NewDateRange(day(1), day(2)),
		Summary:               models.Summary{TotalOrders: 2, TotalRevenue: 35, FormattedRevenue: "R$ 35,00"},
		CategoryOrders:        []models.CategoryOrders{{Category: "toys", OrderCount: 1}, {Category: "books", OrderCount: 1}},
		LowestCategoryOrders:  []models.CategoryOrders{{Category: "toys", OrderCount: 1}, {Category: "books", OrderCount: 1}},
		CategoryRevenue:       []models.CategoryRevenue{{Category: "books", Revenue: 20}, {Category: "toys", Revenue: 15}},
		LowestCategoryRevenue: []models.CategoryRevenue{{Category: "toys", Revenue: 15}, {Category: "books", Revenue: 20}},
		CustomersByState:      []models.StateCustomers{{State: "RJ", CustomerCount: 1}},
		CustomersByCity:       []models.CityCustomers{{City: "<script>", CustomerCount: 1}},
		TopCities:             []models.CityRevenue{{City: "SP", PaymentValue: 20}},
		RecordCount:           3,
	}
}

func TestDashboard_Page(t *testing.T) {
	d := testDashboard()
	html := render(t, Dashboard(PageData{
		Dashboard: d,
		Min:       time.Date(2016, 9, 4, 21, 15, 19, 0, time.UTC),
		Max:       time.Date(2018, 10, 17, 17, 30, 18, 0, time.UTC),
		Money:     currency.Default(),
	}))

	for _, want := range []string{
		"<!DOCTYPE html>",
		datastarScript,
		`data-signals="{&#34;start&#34;:&#34;2018-01-01&#34;,&#34;end&#34;:&#34;2018-01-02&#34;}"`,
		`min="2016-09-04"`,
		`max="2018-10-17"`,
		`data-bind:start`,
		`@get('/sse/dashboard')`,
		`id="` + IDErrorBanner + `"`,
		`id="` + IDMetrics + `"`,
		`id="` + IDCharts + `"`,
		`id="` + IDTables + `"`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("page should contain %q", want)
		}
	}
}

func TestMetrics(t *testing.T) {
	html := render(t, Metrics(models.Summary{TotalOrders: 1234, FormattedRevenue: "R$ 1.234,50"}, 2000))

	if !strings.Contains(html, ">1234<") || !strings.Contains(html, "R$ 1.234,50") || !strings.Contains(html, ">2000<") {
		t.Errorf("metrics = %s", html)
	}
}

func TestCharts_URLsCarryRange(t *testing.T) {
	rng := models.NewDateRange(time.Date(2017, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2017, 12, 31, 0, 0, 0, 0, time.UTC))
	html := render(t, Charts(rng))

	if got := strings.Count(html, "<img "); got != 6 {
		t.Errorf("img count = %d, want 6", got)
	}
	if !strings.Contains(html, `/charts/top-cities.png?end=2017-12-31&amp;start=2017-01-01`) {
		t.Errorf("charts = %s", html)
	}
}

func TestChartURL(t *testing.T) {
	rng := models.NewDateRange(time.Date(2018, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2018, 1, 2, 0, 0, 0, 0, time.UTC))
	if got := ChartURL("daily-orders.png", rng); got != "/charts/daily-orders.png?end=2018-01-02&start=2018-01-01" {
		t.Errorf("ChartURL() = %q", got)
	}
}

func TestTables(t *testing.T) {
	html := render(t, Tables(testDashboard(), currency.Default()))

	if strings.Contains(html, "<script>") {
		t.Error("cell text must be escaped")
	}
	if !strings.Contains(html, "&lt;script&gt;") {
		t.Error("escaped city should be present")
	}
	if !strings.Contains(html, "R$") {
		t.Error("revenue cells should be formatted as currency")
	}
	if got := strings.Count(html, `class="table-card"`); got != 7 {
		t.Errorf("table count = %d, want 7", got)
	}
}

func TestTables_EmptyAndTruncated(t *testing.T) {
	d := &models.Dashboard{}
	for i := 0; i < maxTableRows+5; i++ {
		d.CustomersByCity = append(d.CustomersByCity, models.CityCustomers{City: "c" + itoa(i), CustomerCount: 1})
	}

	html := render(t, Tables(d, currency.Default()))

	if got := strings.Count(html, "No data for the selected range"); got != 6 {
		t.Errorf("empty placeholders = %d, want 6", got)
	}
	if !strings.Contains(html, "Showing 50 of 55 rows") {
		t.Error("truncated table should say how many rows were hidden")
	}
	if strings.Contains(html, ">c50<") {
		t.Error("rows past the limit should not render")
	}
}

func TestDashboardTables(t *testing.T) {
	tables := dashboardTables(testDashboard(), currency.Default())

	if len(tables) != 7 {
		t.Fatalf("dashboardTables() len = %d, want 7", len(tables))
	}
	top := tables[0]
	if top.Title != "Top categories by orders" || len(top.Rows) != 2 || top.Truncated() {
		t.Errorf("first table = %+v", top)
	}
	if got := top.Rows[0]; got[0] != "toys" || got[1] != "1" {
		t.Errorf("first row = %v, want [toys 1]", got)
	}
	if cities := tables[4]; cities.Rows[0][1] != currency.Default().Format(20) {
		t.Errorf("payment cell = %q, want formatted currency", cities.Rows[0][1])
	}
}

func TestErrorBanner(t *testing.T) {
	empty := render(t, ErrorBanner(""))
	if !strings.Contains(empty, "hidden") || strings.Contains(empty, "role=") {
		t.Errorf("empty banner = %s", empty)
	}

	shown := render(t, ErrorBanner(`start date is after end date & "more"`))
	if !strings.Contains(shown, `role="alert"`) || !strings.Contains(shown, "&amp; &#34;more&#34;") {
		t.Errorf("banner = %s", shown)
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestRender_PropagatesWriteError(t *testing.T) {
	err := Metrics(models.Summary{}, 0).Render(context.Background(), failingWriter{})
	if err == nil {
		t.Error("Render() should report write failures")
	}
}
