// Package charts draws dashboard tables as PNG images.
package charts

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"slices"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"olist-dashboard/internal/models"
	"olist-dashboard/internal/services"
)

// Chart file names served under /charts/.
const (
	DailyOrders           = "daily-orders.png"
	CategoryOrders        = "category-orders.png"
	CategoryOrdersLowest  = "category-orders-lowest.png"
	CategoryRevenue       = "category-revenue.png"
	CategoryRevenueLowest = "category-revenue-lowest.png"
	TopCities             = "top-cities.png"
)

var Names = []string{
	DailyOrders,
	CategoryOrders,
	CategoryOrdersLowest,
	CategoryRevenue,
	CategoryRevenueLowest,
	TopCities,
}

var ErrUnknownChart = errors.New("unknown chart")

const (
	noDataTitle = "No data for the selected range"
	pixelDPI    = 96
)

var (
	highlight = color.RGBA{R: 0x72, G: 0xBC, B: 0xD4, A: 0xFF}
	muted     = color.RGBA{R: 0xD3, G: 0xD3, B: 0xD3, A: 0xFF}
)

type Renderer struct {
	width  vg.Length
	height vg.Length
}

// NewRenderer sizes every chart to widthPx x heightPx pixels.
func NewRenderer(widthPx, heightPx int) *Renderer {
	return &Renderer{
		width:  pixels(widthPx),
		height: pixels(heightPx),
	}
}

func pixels(n int) vg.Length {
	return vg.Length(n) * vg.Inch / pixelDPI
}

// Render writes the named chart for d as PNG.
func (r *Renderer) Render(w io.Writer, name string, d *models.Dashboard) error {
	var (
		p   *plot.Plot
		err error
	)

	switch name {
	case DailyOrders:
		p, err = dailyOrdersPlot(d.DailyOrders)
	case CategoryOrders:
		p, err = categoryOrdersPlot("Best performing categories by orders", services.Head(d.CategoryOrders, services.CategorySlice))
	case CategoryOrdersLowest:
		p, err = categoryOrdersPlot("Worst performing categories by orders", services.Head(d.LowestCategoryOrders, services.CategorySlice))
	case CategoryRevenue:
		p, err = categoryRevenuePlot("Best performing categories by revenue", services.Head(d.CategoryRevenue, services.CategorySlice))
	case CategoryRevenueLowest:
		p, err = categoryRevenuePlot("Worst performing categories by revenue", services.Head(d.LowestCategoryRevenue, services.CategorySlice))
	case TopCities:
		p, err = topCitiesPlot(d.TopCities)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownChart, name)
	}
	if err != nil {
		return fmt.Errorf("build %s: %w", name, err)
	}

	return r.write(w, p)
}

func (r *Renderer) write(w io.Writer, p *plot.Plot) error {
	wt, err := p.WriterTo(r.width, r.height, "png")
	if err != nil {
		return fmt.Errorf("create png writer: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("write png: %w", err)
	}
	return nil
}

func newPlot(title string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = vg.Points(14)
	return p
}

func placeholder(title string) *plot.Plot {
	p := newPlot(title + "\n" + noDataTitle)
	p.HideAxes()
	return p
}

func dailyOrdersPlot(rows []models.DailyOrders) (*plot.Plot, error) {
	const title = "Daily orders"
	if len(rows) == 0 {
		return placeholder(title), nil
	}

	points := make(plotter.XYs, len(rows))
	for i, row := range rows {
		points[i].X = float64(row.Date.Unix())
		points[i].Y = float64(row.OrderCount)
	}

	line, scatter, err := plotter.NewLinePoints(points)
	if err != nil {
		return nil, err
	}
	line.Color = highlight
	line.Width = vg.Points(2)
	scatter.Color = highlight
	scatter.GlyphStyle.Shape = draw.CircleGlyph{}
	scatter.GlyphStyle.Radius = vg.Points(2)

	p := newPlot(title)
	p.X.Tick.Marker = plot.TimeTicks{Format: models.DateLayout}
	p.Y.Label.Text = "Orders"
	p.Y.Min = 0
	p.Add(plotter.NewGrid(), line, scatter)
	return p, nil
}

func categoryOrdersPlot(title string, rows []models.CategoryOrders) (*plot.Plot, error) {
	labels := make([]string, len(rows))
	values := make([]float64, len(rows))
	for i, row := range rows {
		labels[i] = row.Category
		values[i] = float64(row.OrderCount)
	}
	return horizontalBars(title, "Number of orders", labels, values)
}

func categoryRevenuePlot(title string, rows []models.CategoryRevenue) (*plot.Plot, error) {
	labels := make([]string, len(rows))
	values := make([]float64, len(rows))
	for i, row := range rows {
		labels[i] = row.Category
		values[i] = row.Revenue
	}
	return horizontalBars(title, "Revenue", labels, values)
}

func topCitiesPlot(rows []models.CityRevenue) (*plot.Plot, error) {
	labels := make([]string, len(rows))
	values := make([]float64, len(rows))
	for i, row := range rows {
		labels[i] = row.City
		values[i] = row.PaymentValue
	}
	return horizontalBars("Top cities by payment value", "Payment value", labels, values)
}

// horizontalBars draws one bar per label, first row on top. The first bar is
// highlighted and the rest are muted.
func horizontalBars(title, valueLabel string, labels []string, values []float64) (*plot.Plot, error) {
	if len(values) == 0 {
		return placeholder(title), nil
	}

	n := len(values)
	first := make(plotter.Values, n)
	rest := make(plotter.Values, n)
	for i, v := range values {
		// row i is drawn at y = n-1-i so the table order reads top-down
		y := n - 1 - i
		if i == 0 {
			first[y] = v
		} else {
			rest[y] = v
		}
	}

	p := newPlot(title)
	p.X.Label.Text = valueLabel
	p.X.Min = 0

	for _, series := range []struct {
		values plotter.Values
		color  color.Color
	}{
		{first, highlight},
		{rest, muted},
	} {
		bars, err := plotter.NewBarChart(series.values, vg.Points(14))
		if err != nil {
			return nil, err
		}
		bars.Horizontal = true
		bars.Color = series.color
		bars.LineStyle.Width = 0
		p.Add(bars)
	}

	names := slices.Clone(labels)
	slices.Reverse(names)
	p.NominalY(names...)
	return p, nil
}
