package export

import (
	"bytes"
	"slices"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"olist-dashboard/internal/models"
)

func testDashboard() *models.Dashboard {
	day := func(d int) time.Time { return time.Date(2018, 1, d, 0, 0, 0, 0, time.UTC) }
	return &models.Dashboard{
		Range:   models.NewDateRange(day(1), day(2)),
		Summary: models.Summary{TotalOrders: 2, TotalRevenue: 35, FormattedRevenue: "R$ 35,00"},
		DailyOrders: []models.DailyOrders{
			{Date: day(1), OrderCount: 1, Revenue: 15},
			{Date: day(2), OrderCount: 1, Revenue: 20},
		},
		CategoryOrders:   []models.CategoryOrders{{Category: "toys", OrderCount: 1}, {Category: "books", OrderCount: 1}},
		CategoryRevenue:  []models.CategoryRevenue{{Category: "books", Revenue: 20}, {Category: "toys", Revenue: 15}},
		CustomersByState: []models.StateCustomers{{State: "RJ", CustomerCount: 1}, {State: "SP", CustomerCount: 1}},
		CustomersByCity:  []models.CityCustomers{{City: "Rio", CustomerCount: 1}, {City: "SP", CustomerCount: 1}},
		TopCities:        []models.CityRevenue{{City: "SP", PaymentValue: 20}, {City: "Rio", PaymentValue: 10.5}},
		RecordCount:      3,
	}
}

func readBack(t *testing.T, d *models.Dashboard) *excelize.File {
	t.Helper()

	var buf bytes.Buffer
	if err := Write(&buf, d); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader() error = %v", err)
	}
	t.Cleanup(func() { f.Close() })
	return f
}

func TestWrite_Sheets(t *testing.T) {
	f := readBack(t, testDashboard())

	want := []string{
		SheetSummary, SheetDailyOrders, SheetCategoryOrders, SheetCategoryRevenue,
		SheetCustomersByState, SheetCustomersByCity, SheetTopCities,
	}
	if got := f.GetSheetList(); !slices.Equal(got, want) {
		t.Errorf("GetSheetList() = %v, want %v", got, want)
	}
}

func TestWrite_Contents(t *testing.T) {
	f := readBack(t, testDashboard())

	tests := []struct {
		sheet string
		want  [][]string
	}{
		{SheetDailyOrders, [][]string{
			{"Date", "Orders", "Revenue"},
			{"2018-01-01", "1", "15"},
			{"2018-01-02", "1", "20"},
		}},
		{SheetCategoryRevenue, [][]string{
			{"Category", "Revenue"},
			{"books", "20"},
			{"toys", "15"},
		}},
		{SheetTopCities, [][]string{
			{"City", "Payment value"},
			{"SP", "20"},
			{"Rio", "10.5"},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.sheet, func(t *testing.T) {
			rows, err := f.GetRows(tt.sheet)
			if err != nil {
				t.Fatal(err)
			}
			if len(rows) != len(tt.want) {
				t.Fatalf("rows = %v, want %v", rows, tt.want)
			}
			for i := range rows {
				if !slices.Equal(rows[i], tt.want[i]) {
					t.Errorf("row %d = %v, want %v", i, rows[i], tt.want[i])
				}
			}
		})
	}
}

func TestWrite_Summary(t *testing.T) {
	f := readBack(t, testDashboard())

	cases := map[string]string{
		"B2": "2018-01-01",
		"B3": "2018-01-02",
		"B4": "2",
		"B6": "R$ 35,00",
		"B7": "3",
	}
	for cell, want := range cases {
		got, err := f.GetCellValue(SheetSummary, cell)
		if err != nil {
			t.Fatal(err)
		}
		if got != want {
			t.Errorf("%s = %q, want %q", cell, got, want)
		}
	}
}

func TestWrite_EmptyDashboard(t *testing.T) {
	d := &models.Dashboard{Range: models.NewDateRange(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC))}
	f := readBack(t, d)

	rows, err := f.GetRows(SheetTopCities)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 {
		t.Errorf("empty table should keep only its header row, got %v", rows)
	}
}

func TestFilename(t *testing.T) {
	rng := models.NewDateRange(time.Date(2017, 3, 1, 0, 0, 0, 0, time.UTC), time.Date(2017, 3, 31, 0, 0, 0, 0, time.UTC))
	if got := Filename(rng); got != "orders_2017-03-01_2017-03-31.xlsx" {
		t.Errorf("Filename() = %q", got)
	}
}
