// Package export implements the report exporter on XLSX workbooks.
package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/hadir-app/hadir/internal/application/query"
)

// Workbook styling. Header is white on green; good rows carry the light
// green presence tint, bad rows the light red absence tint.
const (
	headerFill = "4CAF50"
	goodFill   = "C6EFCE"
	goodFont   = "006100"
	badFill    = "FFC7CE"
	badFont    = "9C0006"
)

const columnWidth = 20.0

// ExcelExporter writes tables as styled XLSX files.
type ExcelExporter struct{}

var _ query.Exporter = (*ExcelExporter)(nil)

// NewExcelExporter returns a workbook exporter.
func NewExcelExporter() *ExcelExporter {
	return &ExcelExporter{}
}

// Write renders the table into an XLSX file at path, creating parent
// directories as needed.
func (e *ExcelExporter) Write(_ context.Context, table query.Table, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("export: create dir: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := table.Sheet
	if sheet == "" {
		sheet = "Sheet1"
	}
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("export: name sheet: %w", err)
	}

	headerStyle, goodStyle, badStyle, err := makeStyles(f)
	if err != nil {
		return err
	}

	for col, header := range table.Headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("export: header cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return fmt.Errorf("export: header value: %w", err)
		}
		if err := f.SetCellStyle(sheet, cell, cell, headerStyle); err != nil {
			return fmt.Errorf("export: header style: %w", err)
		}
	}

	for i, row := range table.Rows {
		for col, value := range row.Cells {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return fmt.Errorf("export: row cell: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return fmt.Errorf("export: row value: %w", err)
			}
			style := 0
			switch row.Tone {
			case query.ToneGood:
				style = goodStyle
			case query.ToneBad:
				style = badStyle
			}
			if style != 0 {
				if err := f.SetCellStyle(sheet, cell, cell, style); err != nil {
					return fmt.Errorf("export: row style: %w", err)
				}
			}
		}
	}

	// Summary lines sit two rows below the table.
	summaryStart := len(table.Rows) + 3
	for i, line := range table.Summary {
		cell, err := excelize.CoordinatesToCellName(1, summaryStart+i)
		if err != nil {
			return fmt.Errorf("export: summary cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, line); err != nil {
			return fmt.Errorf("export: summary value: %w", err)
		}
	}

	if len(table.Headers) > 0 {
		lastCol, err := excelize.ColumnNumberToName(len(table.Headers))
		if err != nil {
			return fmt.Errorf("export: column name: %w", err)
		}
		if err := f.SetColWidth(sheet, "A", lastCol, columnWidth); err != nil {
			return fmt.Errorf("export: column width: %w", err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("export: save %s: %w", path, err)
	}
	return nil
}

func makeStyles(f *excelize.File) (header, good, bad int, err error) {
	header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{headerFill}},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border: []excelize.Border{
			{Type: "left", Style: 1, Color: "000000"},
			{Type: "right", Style: 1, Color: "000000"},
			{Type: "top", Style: 1, Color: "000000"},
			{Type: "bottom", Style: 1, Color: "000000"},
		},
	})
	if err != nil {
		return 0, 0, 0, fmt.Errorf("export: header style: %w", err)
	}

	good, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Color: goodFont},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{goodFill}},
	})
	if err != nil {
		return 0, 0, 0, fmt.Errorf("export: good style: %w", err)
	}

	bad, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Color: badFont},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{badFill}},
	})
	if err != nil {
		return 0, 0, 0, fmt.Errorf("export: bad style: %w", err)
	}
	return header, good, bad, nil
}
