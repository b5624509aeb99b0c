// Package templates renders the dashboard page and the fragments patched
// into it over SSE. Markup lives in dashboard.templ; this file holds the
// data the components are fed.
package templates

import (
	"net/url"
	"time"

	"github.com/a-h/templ"

	"olist-dashboard/internal/charts"
	"olist-dashboard/internal/models"
	"olist-dashboard/internal/services"
)

// Element ids targeted by SSE patches.
const (
	IDErrorBanner = "error-banner"
	IDMetrics     = "metrics"
	IDCharts      = "charts"
	IDTables      = "tables"
)

const (
	datastarScript = "https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0-RC.6/bundles/datastar.js"
	maxTableRows   = 50
)

// Money formats a monetary amount for display.
type Money interface {
	Format(amount float64) string
}

type PageData struct {
	Dashboard *models.Dashboard
	// Dataset bounds, used to limit the date inputs.
	Min, Max time.Time
	Money    Money
}

// Signals is the client state exchanged with /sse/dashboard.
type Signals struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

func SignalsFor(rng models.DateRange) Signals {
	return Signals{
		Start: rng.Start.Format(models.DateLayout),
		End:   rng.End.Format(models.DateLayout),
	}
}

// ChartURL addresses the PNG for chart name over rng.
func ChartURL(name string, rng models.DateRange) string {
	q := url.Values{}
	q.Set("start", rng.Start.Format(models.DateLayout))
	q.Set("end", rng.End.Format(models.DateLayout))
	return "/charts/" + name + "?" + q.Encode()
}

func signalsAttr(rng models.DateRange) (string, error) {
	return templ.JSONString(SignalsFor(rng))
}

type chartPanel struct {
	Name, Alt string
}

var chartPanels = []chartPanel{
	{charts.DailyOrders, "Daily orders"},
	{charts.CategoryOrders, "Best performing categories by orders"},
	{charts.CategoryOrdersLowest, "Worst performing categories by orders"},
	{charts.CategoryRevenue, "Best performing categories by revenue"},
	{charts.CategoryRevenueLowest, "Worst performing categories by revenue"},
	{charts.TopCities, "Top cities by payment value"},
}

// tableData is one rendered table. Rows holds at most maxTableRows rows;
// Total is the row count before truncation.
type tableData struct {
	Title   string
	Headers []string
	Rows    [][]string
	Total   int
}

func (t tableData) Truncated() bool {
	return t.Total > len(t.Rows)
}

func newTable[T any](title string, headers []string, rows []T, cells func(T) []string) tableData {
	t := tableData{Title: title, Headers: headers, Total: len(rows)}
	for _, row := range services.Head(rows, maxTableRows) {
		t.Rows = append(t.Rows, cells(row))
	}
	return t
}

// dashboardTables lists the tables shown under the charts, in page order.
func dashboardTables(d *models.Dashboard, money Money) []tableData {
	return []tableData{
		newTable("Top categories by orders", []string{"Category", "Orders"}, services.Head(d.CategoryOrders, services.CategorySlice),
			func(r models.CategoryOrders) []string { return []string{r.Category, itoa(r.OrderCount)} }),
		newTable("Bottom categories by orders", []string{"Category", "Orders"}, services.Head(d.LowestCategoryOrders, services.CategorySlice),
			func(r models.CategoryOrders) []string { return []string{r.Category, itoa(r.OrderCount)} }),
		newTable("Top categories by revenue", []string{"Category", "Revenue"}, services.Head(d.CategoryRevenue, services.CategorySlice),
			func(r models.CategoryRevenue) []string { return []string{r.Category, money.Format(r.Revenue)} }),
		newTable("Bottom categories by revenue", []string{"Category", "Revenue"}, services.Head(d.LowestCategoryRevenue, services.CategorySlice),
			func(r models.CategoryRevenue) []string { return []string{r.Category, money.Format(r.Revenue)} }),
		newTable("Top cities by payment value", []string{"City", "Payment value"}, d.TopCities,
			func(r models.CityRevenue) []string { return []string{r.City, money.Format(r.PaymentValue)} }),
		newTable("Customers by state", []string{"State", "Customers"}, d.CustomersByState,
			func(r models.StateCustomers) []string { return []string{r.State, itoa(r.CustomerCount)} }),
		newTable("Customers by city", []string{"City", "Customers"}, d.CustomersByCity,
			func(r models.CityCustomers) []string { return []string{r.City, itoa(r.CustomerCount)} }),
	}
}
