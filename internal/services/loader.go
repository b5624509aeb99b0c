package services

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"olist-dashboard/internal/models"
)

const (
	batchSize  = 10000
	maxWorkers = 10
)

// Input column names.
const (
	ColOrderID          = "order_id"
	ColPurchasedAt      = "order_purchase_timestamp"
	ColCategory         = "product_category_name_english_x"
	ColItemValue        = "order_item_value"
	ColPaymentValue     = "payment_value"
	ColCustomerUniqueID = "customer_unique_id"
	ColCustomerCity     = "customer_city"
	ColCustomerState    = "customer_state"
)

var requiredColumns = []string{
	ColOrderID,
	ColPurchasedAt,
	ColCategory,
	ColItemValue,
	ColPaymentValue,
	ColCustomerUniqueID,
	ColCustomerCity,
	ColCustomerState,
}

var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02T15:04:05",
	models.DateLayout,
}

var (
	ErrEmptyFile     = errors.New("empty file")
	ErrNoValidRecord = errors.New("no valid records found")
)

// MissingColumnsError reports required header columns absent from the input.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return "missing required columns: " + strings.Join(e.Columns, ", ")
}

// columnIndex maps required column names to their position in a row.
type columnIndex map[string]int

func newColumnIndex(header []string) (columnIndex, error) {
	idx := make(columnIndex, len(header))
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if _, dup := idx[name]; !dup {
			idx[name] = i
		}
	}

	var missing []string
	for _, col := range requiredColumns {
		if _, ok := idx[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingColumnsError{Columns: missing}
	}
	return idx, nil
}

func (c columnIndex) field(record []string, col string) string {
	i := c[col]
	if i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

type loadResult struct {
	lines   []models.OrderLine
	skipped int64
}

// readOrderLines reads the whole CSV and parses rows in batches on a bounded
// worker pool. Unparseable rows are skipped and counted.
func readOrderLines(ctx context.Context, r io.Reader) (*loadResult, error) {
	reader := csv.NewReader(r)
	reader.ReuseRecord = false
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrEmptyFile
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	cols, err := newColumnIndex(header)
	if err != nil {
		return nil, err
	}

	result := &loadResult{}
	var skipped atomic.Int64
	batch := make([][]string, 0, batchSize)

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				skipped.Add(1)
				continue
			}
			return nil, fmt.Errorf("read row: %w", err)
		}

		batch = append(batch, record)
		if len(batch) >= batchSize {
			parsed, err := parseBatch(ctx, batch, cols, &skipped)
			if err != nil {
				return nil, err
			}
			result.lines = append(result.lines, parsed...)
			batch = make([][]string, 0, batchSize)
		}
	}

	if len(batch) > 0 {
		parsed, err := parseBatch(ctx, batch, cols, &skipped)
		if err != nil {
			return nil, err
		}
		result.lines = append(result.lines, parsed...)
	}

	result.skipped = skipped.Load()
	if len(result.lines) == 0 {
		return nil, ErrNoValidRecord
	}

	slices.SortStableFunc(result.lines, func(a, b models.OrderLine) int {
		return a.PurchasedAt.Compare(b.PurchasedAt)
	})
	return result, nil
}

func parseBatch(ctx context.Context, batch [][]string, cols columnIndex, skipped *atomic.Int64) ([]models.OrderLine, error) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxWorkers)

	parsed := make([]models.OrderLine, len(batch))
	valid := make([]bool, len(batch))

	for i, record := range batch {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			line, err := parseOrderLine(record, cols)
			if err != nil {
				skipped.Add(1)
				return nil
			}
			parsed[i] = line
			valid[i] = true
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	lines := make([]models.OrderLine, 0, len(batch))
	for i, ok := range valid {
		if ok {
			lines = append(lines, parsed[i])
		}
	}
	return lines, nil
}

func parseOrderLine(record []string, cols columnIndex) (models.OrderLine, error) {
	purchasedAt, err := parseTimestamp(cols.field(record, ColPurchasedAt))
	if err != nil {
		return models.OrderLine{}, err
	}

	itemValue, err := parseAmount(cols.field(record, ColItemValue))
	if err != nil {
		return models.OrderLine{}, fmt.Errorf("%s: %w", ColItemValue, err)
	}

	paymentValue, err := parseAmount(cols.field(record, ColPaymentValue))
	if err != nil {
		return models.OrderLine{}, fmt.Errorf("%s: %w", ColPaymentValue, err)
	}

	return models.OrderLine{
		OrderID:          cols.field(record, ColOrderID),
		PurchasedAt:      purchasedAt,
		Category:         cols.field(record, ColCategory),
		ItemValue:        itemValue,
		PaymentValue:     paymentValue,
		CustomerUniqueID: cols.field(record, ColCustomerUniqueID),
		CustomerCity:     cols.field(record, ColCustomerCity),
		CustomerState:    cols.field(record, ColCustomerState),
	}, nil
}

// parseTimestamp keeps the wall clock of an offset timestamp and drops the
// offset, so purchases stay on the calendar day they were recorded.
func parseTimestamp(value string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			y, m, d := t.Date()
			return time.Date(y, m, d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised timestamp %q", value)
}

// parseAmount treats an empty cell as zero, matching how missing values drop
// out of a sum.
func parseAmount(value string) (float64, error) {
	if value == "" {
		return 0, nil
	}
	return strconv.ParseFloat(value, 64)
}

func openAndRead(ctx context.Context, filename string) (*loadResult, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer file.Close()

	return readOrderLines(ctx, file)
}
