// Package export writes a dashboard to an Excel workbook.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"olist-dashboard/internal/models"
)

const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Sheet names, in workbook order.
const (
	SheetSummary          = "Summary"
	SheetDailyOrders      = "Daily Orders"
	SheetCategoryOrders   = "Category Orders"
	SheetCategoryRevenue  = "Category Revenue"
	SheetCustomersByState = "Customers by State"
	SheetCustomersByCity  = "Customers by City"
	SheetTopCities        = "Top Cities"
)

type sheet struct {
	name    string
	headers []string
	widths  []float64
	rows    [][]any
}

// Filename suggests a download name for the range.
func Filename(rng models.DateRange) string {
	return fmt.Sprintf("orders_%s_%s.xlsx", rng.Start.Format(models.DateLayout), rng.End.Format(models.DateLayout))
}

// Workbook lays out every table of d on its own sheet. The caller must Close
// the returned file.
func Workbook(d *models.Dashboard) (*excelize.File, error) {
	f := excelize.NewFile()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"72BCD4"}},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("create header style: %w", err)
	}

	for i, s := range sheets(d) {
		if i == 0 {
			err = f.SetSheetName("Sheet1", s.name)
		} else {
			_, err = f.NewSheet(s.name)
		}
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("create sheet %q: %w", s.name, err)
		}

		if err := writeSheet(f, s, headerStyle); err != nil {
			f.Close()
			return nil, fmt.Errorf("write sheet %q: %w", s.name, err)
		}
	}

	f.SetActiveSheet(0)
	return f, nil
}

// Write streams the workbook for d to w.
func Write(w io.Writer, d *models.Dashboard) error {
	f, err := Workbook(d)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, s sheet, headerStyle int) error {
	header := make([]any, len(s.headers))
	for i, h := range s.headers {
		header[i] = h
	}
	if err := f.SetSheetRow(s.name, "A1", &header); err != nil {
		return err
	}

	last, err := excelize.CoordinatesToCellName(len(s.headers), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(s.name, "A1", last, headerStyle); err != nil {
		return err
	}

	for i, width := range s.widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(s.name, col, col, width); err != nil {
			return err
		}
	}

	for i, row := range s.rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(s.name, cell, &row); err != nil {
			return err
		}
	}

	return f.SetPanes(s.name, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

func sheets(d *models.Dashboard) []sheet {
	summary := sheet{
		name:    SheetSummary,
		headers: []string{"Metric", "Value"},
		widths:  []float64{22, 24},
		rows: [][]any{
			{"Start date", d.Range.Start.Format(models.DateLayout)},
			{"End date", d.Range.End.Format(models.DateLayout)},
			{"Total orders", d.Summary.TotalOrders},
			{"Total revenue", d.Summary.TotalRevenue},
			{"Total revenue (formatted)", d.Summary.FormattedRevenue},
			{"Order lines in range", d.RecordCount},
		},
	}

	daily := sheet{name: SheetDailyOrders, headers: []string{"Date", "Orders", "Revenue"}, widths: []float64{14, 10, 14}}
	for _, r := range d.DailyOrders {
		daily.rows = append(daily.rows, []any{r.Date.Format(models.DateLayout), r.OrderCount, r.Revenue})
	}

	categoryOrders := sheet{name: SheetCategoryOrders, headers: []string{"Category", "Orders"}, widths: []float64{36, 10}}
	for _, r := range d.CategoryOrders {
		categoryOrders.rows = append(categoryOrders.rows, []any{r.Category, r.OrderCount})
	}

	categoryRevenue := sheet{name: SheetCategoryRevenue, headers: []string{"Category", "Revenue"}, widths: []float64{36, 14}}
	for _, r := range d.CategoryRevenue {
		categoryRevenue.rows = append(categoryRevenue.rows, []any{r.Category, r.Revenue})
	}

	byState := sheet{name: SheetCustomersByState, headers: []string{"State", "Customers"}, widths: []float64{10, 12}}
	for _, r := range d.CustomersByState {
		byState.rows = append(byState.rows, []any{r.State, r.CustomerCount})
	}

	byCity := sheet{name: SheetCustomersByCity, headers: []string{"City", "Customers"}, widths: []float64{32, 12}}
	for _, r := range d.CustomersByCity {
		byCity.rows = append(byCity.rows, []any{r.City, r.CustomerCount})
	}

	topCities := sheet{name: SheetTopCities, headers: []string{"City", "Payment value"}, widths: []float64{32, 16}}
	for _, r := range d.TopCities {
		topCities.rows = append(topCities.rows, []any{r.City, r.PaymentValue})
	}

	return []sheet{summary, daily, categoryOrders, categoryRevenue, byState, byCity, topCities}
}
