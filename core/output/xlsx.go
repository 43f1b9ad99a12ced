package output

import (
	"fmt"
	"io"
	"math"

	"github.com/xuri/excelize/v2"

	"payoff/core/determinism"
	"payoff/core/locale"
)

// SheetName is the worksheet holding the results
const SheetName = "payoff"

// XLSXFormatter renders an Excel workbook, one row per item
type XLSXFormatter struct{}

// Format returns FormatXLSX
func (f *XLSXFormatter) Format() Format {
	return FormatXLSX
}

// Render writes the workbook to w
func (f *XLSXFormatter) Render(w io.Writer, report *Report) error {
	cat := locale.Get(report.Locale)

	xf := excelize.NewFile()
	defer func() { _ = xf.Close() }()

	if err := xf.SetSheetName(xf.GetSheetName(xf.GetActiveSheetIndex()), SheetName); err != nil {
		return err
	}

	header := []interface{}{
		"name",
		"price",
		"period_in_days",
		"total_uses",
		"total_hours",
		"mode",
		"unit_cost",
		"cost_per_day",
		"cost_ratio_percent",
		"category",
		"verdict",
		"message",
	}
	if err := xf.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	row := 2
	for _, it := range report.Items {
		r := it.Result
		b := r.Breakdown
		excelRow := []interface{}{
			it.Name,
			cell(it.Input.Price),
			cell(b.PeriodInDays),
			cell(b.TotalUses),
			cell(b.TotalHours),
			r.Mode.String(),
			cell(r.UnitCost),
			cell(b.CostPerDay),
			cell(b.CostRatioPercent),
			r.Category.Emoji() + " " + r.Category.String(),
			r.Verdict.String(),
			cat.Verdict(r.Verdict),
		}
		addr, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		if err := xf.SetSheetRow(SheetName, addr, &excelRow); err != nil {
			return fmt.Errorf("write row %d: %w", row, err)
		}
		row++
	}

	if s := report.Summary; s != nil {
		addr, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		summary := []interface{}{"total", s.TotalPrice, "", "", "", "", "", "", "", s.Worst.String(), fmt.Sprintf("%d wasteful", s.Wasteful)}
		if err := xf.SetSheetRow(SheetName, addr, &summary); err != nil {
			return fmt.Errorf("write summary: %w", err)
		}
	}

	return xf.Write(w)
}

// cell keeps finite numbers numeric and spells out the rest
func cell(x float64) interface{} {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return determinism.FormatAmount(x, 2)
	}
	return determinism.Round(x, 4)
}
