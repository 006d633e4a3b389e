// Package export renders the ledger and inventory as XLSX and PDF reports.
package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"

	"github.com/jgoulah/greencalc/internal/estimate"
	"github.com/jgoulah/greencalc/internal/ledger"
	"github.com/jgoulah/greencalc/pkg/models"
)

const (
	billsSheet      = "bills"
	appliancesSheet = "appliances"
)

// Report is the data rendered by the exporters
type Report struct {
	Bills       []models.BillRecord
	Appliances  []models.ApplianceRecord
	Summary     ledger.Summary
	Currency    string
	GeneratedAt time.Time
}

// XLSX renders the report as a workbook with a bills sheet and an appliances sheet
func XLSX(r Report) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", billsSheet); err != nil {
		return nil, fmt.Errorf("naming sheet: %w", err)
	}
	if _, err := f.NewSheet(appliancesSheet); err != nil {
		return nil, fmt.Errorf("creating sheet: %w", err)
	}

	_ = f.SetCellValue(billsSheet, "A1", "Date")
	_ = f.SetCellValue(billsSheet, "B1", "Consumption (kWh)")
	_ = f.SetCellValue(billsSheet, "C1", fmt.Sprintf("Cost (%s)", r.Currency))
	for i, b := range r.Bills {
		row := i + 2
		_ = f.SetCellValue(billsSheet, fmt.Sprintf("A%d", row), b.DateString())
		_ = f.SetCellValue(billsSheet, fmt.Sprintf("B%d", row), b.KWh)
		_ = f.SetCellValue(billsSheet, fmt.Sprintf("C%d", row), b.Cost)
	}
	if r.Summary.Count > 0 {
		row := len(r.Bills) + 3
		_ = f.SetCellValue(billsSheet, fmt.Sprintf("A%d", row), "Average (kWh)")
		_ = f.SetCellValue(billsSheet, fmt.Sprintf("B%d", row), r.Summary.AverageKWh)
		_ = f.SetCellValue(billsSheet, fmt.Sprintf("A%d", row+1), "Reference (kWh)")
		_ = f.SetCellValue(billsSheet, fmt.Sprintf("B%d", row+1), r.Summary.ReferenceKWh)
	}

	headers := []string{"Kind", "Quantity", "Power (W)", "Standby (W)", "Hours/day", "Days/week", "Months/year", "Monthly kWh"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(appliancesSheet, cell, h)
	}
	for i, a := range r.Appliances {
		values := []interface{}{
			a.Kind, a.Quantity, a.RatedPowerW, a.StandbyPowerW,
			a.HoursPerDay, a.DaysPerWeek, a.MonthsPerYear,
			float64(a.Quantity) * estimate.MonthlyKWh(a),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			_ = f.SetCellValue(appliancesSheet, cell, v)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("writing workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// PDF renders a one-document summary of bills and appliances
func PDF(r Report) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetFont("Arial", "", 12)
	pdf.AddPage()

	pdf.Cell(0, 8, "GreenCalc Household Report")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Generated: %s", r.GeneratedAt.Format(time.RFC3339)))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Bills: %d", r.Summary.Count))
	pdf.Ln(5)
	if r.Summary.Count > 0 {
		pdf.Cell(0, 6, fmt.Sprintf("Average consumption (kWh): %.1f", r.Summary.AverageKWh))
		pdf.Ln(5)
		pdf.Cell(0, 6, fmt.Sprintf("Reference (kWh): %.0f, delta %+.1f", r.Summary.ReferenceKWh, r.Summary.DeltaKWh))
		pdf.Ln(5)
		pdf.Cell(0, 6, fmt.Sprintf("Total cost (%s): %.2f", r.Currency, r.Summary.TotalCost))
		pdf.Ln(5)
	}
	pdf.Cell(0, 6, fmt.Sprintf("Estimated appliance consumption (kWh/month): %.2f", estimate.InventoryTotal(r.Appliances)))
	pdf.Ln(8)

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(40, 6, "Date", "1", 0, "C", false, 0, "")
	pdf.CellFormat(50, 6, "Energy (kWh)", "1", 0, "C", false, 0, "")
	pdf.CellFormat(50, 6, "Cost", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 10)
	for _, b := range r.Bills {
		pdf.CellFormat(40, 6, b.DateString(), "1", 0, "C", false, 0, "")
		pdf.CellFormat(50, 6, fmt.Sprintf("%.2f", b.KWh), "1", 0, "R", false, 0, "")
		pdf.CellFormat(50, 6, fmt.Sprintf("%.2f", b.Cost), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	pdf.Ln(6)
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(70, 6, "Appliance", "1", 0, "C", false, 0, "")
	pdf.CellFormat(20, 6, "Qty", "1", 0, "C", false, 0, "")
	pdf.CellFormat(50, 6, "kWh/month", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 10)
	for _, a := range r.Appliances {
		pdf.CellFormat(70, 6, tr(a.Kind), "1", 0, "L", false, 0, "")
		pdf.CellFormat(20, 6, fmt.Sprintf("%d", a.Quantity), "1", 0, "R", false, 0, "")
		pdf.CellFormat(50, 6, fmt.Sprintf("%.2f", float64(a.Quantity)*estimate.MonthlyKWh(a)), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("rendering pdf: %w", err)
	}
	return buf.Bytes(), nil
}
