package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"fueleu/fleet-portal/fleet-portal-backend/internal/compliance"
)

var summaryColumns = []string{"Ship", "Year", "Compliance Balance (gCO2eq)", "Banked (gCO2eq)", "Compliant"}

// ExcelExporter writes fleet compliance summaries as Excel workbooks.
type ExcelExporter struct{}

// NewExcelExporter creates a new fleet summary exporter.
func NewExcelExporter() *ExcelExporter {
	return &ExcelExporter{}
}

// WriteFleetSummary renders one sheet with a styled, frozen header
// row followed by one row per ship, and streams the workbook to w.
func (e *ExcelExporter) WriteFleetSummary(w io.Writer, year int, rows []compliance.ShipStatus) error {
	file := excelize.NewFile()
	defer file.Close()

	sheetName := fmt.Sprintf("Fleet %d", year)
	file.SetSheetName("Sheet1", sheetName)

	headerStyle, err := file.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"4472C4"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	for i, col := range summaryColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		file.SetCellValue(sheetName, cell, col)
		file.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	file.SetPanes(sheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})

	for i, row := range rows {
		rowNum := i + 2
		values := []interface{}{row.ShipID, row.Year, row.Balance, row.Banked, row.Compliant}
		for col, val := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, rowNum)
			if err := file.SetCellValue(sheetName, cell, val); err != nil {
				return fmt.Errorf("failed to set cell value: %w", err)
			}
		}
	}

	lastCol, _ := excelize.ColumnNumberToName(len(summaryColumns))
	file.SetColWidth(sheetName, "A", lastCol, 26)
	if len(rows) > 0 {
		file.AutoFilter(sheetName, fmt.Sprintf("A1:%s1", lastCol), nil)
	}

	if err := file.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}

	return nil
}
