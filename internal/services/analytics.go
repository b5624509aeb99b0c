package services

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"sync"
	"time"

	"olist-dashboard/internal/currency"
	"olist-dashboard/internal/models"
	"olist-dashboard/internal/observability"
)

// Analytics owns the order-line dataset for the process lifetime and derives
// dashboard views from it. The dataset is never mutated after it is set, so
// concurrent readers only share the slice header under the read lock.
type Analytics struct {
	mu       sync.RWMutex
	lines    []models.OrderLine
	minTime  time.Time
	maxTime  time.Time
	csvPath  string
	skipped  int64
	loadedAt time.Time

	currency *currency.Formatter
	logger   *slog.Logger
}

type Option func(*Analytics)

func WithCurrency(f *currency.Formatter) Option {
	return func(a *Analytics) {
		if f != nil {
			a.currency = f
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(a *Analytics) {
		if l != nil {
			a.logger = l
		}
	}
}

func NewAnalytics(opts ...Option) *Analytics {
	a := &Analytics{
		currency: currency.Default(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// SetData replaces the dataset. The slice is copied and sorted by purchase time.
func (a *Analytics) SetData(lines []models.OrderLine) {
	sorted := slices.Clone(lines)
	slices.SortStableFunc(sorted, func(x, y models.OrderLine) int {
		return x.PurchasedAt.Compare(y.PurchasedAt)
	})

	a.mu.Lock()
	defer a.mu.Unlock()
	a.setLocked(sorted)
}

func (a *Analytics) setLocked(sorted []models.OrderLine) {
	a.lines = sorted
	a.loadedAt = time.Now()
	a.minTime, a.maxTime = time.Time{}, time.Time{}
	if len(sorted) > 0 {
		a.minTime = sorted[0].PurchasedAt
		a.maxTime = sorted[len(sorted)-1].PurchasedAt
	}
}

// LoadFromCSV reads the dataset from filename. Missing files, missing
// required columns and files without a single usable row are errors.
func (a *Analytics) LoadFromCSV(ctx context.Context, filename string) error {
	start := time.Now()
	a.logger.Info("processing CSV file", "filename", filename)

	result, err := openAndRead(ctx, filename)
	if err != nil {
		return fmt.Errorf("process csv: %w", err)
	}

	a.mu.Lock()
	a.csvPath = filename
	a.skipped = result.skipped
	a.setLocked(result.lines)
	a.mu.Unlock()

	duration := time.Since(start)
	count := len(result.lines)
	a.logger.Info("csv processing complete",
		"records", count,
		"skipped", result.skipped,
		"duration", duration,
		"rate", fmt.Sprintf("%.0f records/sec", float64(count)/duration.Seconds()))

	if result.skipped > 0 {
		a.logger.Warn("skipped unparseable rows", "count", result.skipped)
	}
	return nil
}

func (a *Analytics) snapshot() []models.OrderLine {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.lines
}

// Bounds returns the earliest and latest purchase timestamps in the dataset.
// ok is false when no data is loaded.
func (a *Analytics) Bounds() (minTime, maxTime time.Time, ok bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.minTime, a.maxTime, len(a.lines) > 0
}

// DefaultRange spans every day present in the dataset.
func (a *Analytics) DefaultRange() models.DateRange {
	minTime, maxTime, ok := a.Bounds()
	if !ok {
		today := models.Day(time.Now())
		return models.DateRange{Start: today, End: today}
	}
	return models.NewDateRange(minTime, maxTime)
}

func (a *Analytics) filtered(rng models.DateRange) ([]models.OrderLine, error) {
	return FilterByRange(a.snapshot(), rng)
}

// Dashboard runs one full recomputation pass for rng.
func (a *Analytics) Dashboard(ctx context.Context, rng models.DateRange) (*models.Dashboard, error) {
	ctx, span := observability.StartSpan(ctx, "analytics.dashboard")
	defer span.End(ctx, a.logger)
	span.SetTag("range", rng.String())

	if err := ctx.Err(); err != nil {
		span.SetError(err)
		return nil, err
	}

	lines, err := a.filtered(rng)
	if err != nil {
		span.SetError(err)
		return nil, err
	}

	daily := DailyOrders(lines)
	categoryOrders := CategoryOrderCounts(lines)
	categoryRevenue := CategoryRevenue(lines)

	d := &models.Dashboard{
		Range:                 rng,
		Summary:               a.summarize(daily),
		DailyOrders:           daily,
		CategoryOrders:        categoryOrders,
		LowestCategoryOrders:  LowestCategoryOrders(categoryOrders),
		CategoryRevenue:       categoryRevenue,
		LowestCategoryRevenue: LowestCategoryRevenue(categoryRevenue),
		CustomersByState:      CustomersByState(lines),
		CustomersByCity:       CustomersByCity(lines),
		TopCities:             TopCitiesByRevenue(lines, TopCitiesLimit),
		RecordCount:           len(lines),
	}
	span.SetTag("records", strconv.Itoa(len(lines)))

	a.logger.DebugContext(ctx, "dashboard computed", "range", rng.String(), "records", len(lines))
	return d, nil
}

func (a *Analytics) summarize(daily []models.DailyOrders) models.Summary {
	s := Summarize(daily)
	s.FormattedRevenue = a.currency.Format(s.TotalRevenue)
	return s
}

func (a *Analytics) Summary(rng models.DateRange) (models.Summary, error) {
	lines, err := a.filtered(rng)
	if err != nil {
		return models.Summary{}, err
	}
	return a.summarize(DailyOrders(lines)), nil
}

func (a *Analytics) DailyOrders(rng models.DateRange) ([]models.DailyOrders, error) {
	lines, err := a.filtered(rng)
	if err != nil {
		return nil, err
	}
	return DailyOrders(lines), nil
}

func (a *Analytics) CategoryOrders(rng models.DateRange) ([]models.CategoryOrders, error) {
	lines, err := a.filtered(rng)
	if err != nil {
		return nil, err
	}
	return CategoryOrderCounts(lines), nil
}

func (a *Analytics) CategoryRevenue(rng models.DateRange) ([]models.CategoryRevenue, error) {
	lines, err := a.filtered(rng)
	if err != nil {
		return nil, err
	}
	return CategoryRevenue(lines), nil
}

func (a *Analytics) CustomersByState(rng models.DateRange) ([]models.StateCustomers, error) {
	lines, err := a.filtered(rng)
	if err != nil {
		return nil, err
	}
	return CustomersByState(lines), nil
}

func (a *Analytics) CustomersByCity(rng models.DateRange) ([]models.CityCustomers, error) {
	lines, err := a.filtered(rng)
	if err != nil {
		return nil, err
	}
	return CustomersByCity(lines), nil
}

func (a *Analytics) TopCities(rng models.DateRange) ([]models.CityRevenue, error) {
	lines, err := a.filtered(rng)
	if err != nil {
		return nil, err
	}
	return TopCitiesByRevenue(lines, TopCitiesLimit), nil
}

func (a *Analytics) Currency() *currency.Formatter {
	return a.currency
}

// Stats reports dataset metadata for monitoring.
func (a *Analytics) Stats() map[string]any {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return map[string]any{
		"record_count":    len(a.lines),
		"skipped_rows":    a.skipped,
		"source":          a.csvPath,
		"loaded_at":       a.loadedAt,
		"min_purchase":    a.minTime,
		"max_purchase":    a.maxTime,
		"currency":        a.currency.Code(),
		"currency_locale": a.currency.Locale(),
	}
}
