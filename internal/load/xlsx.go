package load

import (
	"fmt"

	"banks-etl/lib/table"

	"github.com/xuri/excelize/v2"
)

// SaveXLSX writes t to a workbook at path with a single sheet called
// sheetName. Numeric cells stay numeric.
func SaveXLSX(t table.Table, path string, sheetName string) error {
	f := excelize.NewFile()
	defer f.Close()

	defaultSheet := f.GetSheetName(0)
	if sheetName != "" && sheetName != defaultSheet {
		err := f.SetSheetName(defaultSheet, sheetName)
		if err != nil {
			return fmt.Errorf("rename sheet: %w", err)
		}
	} else {
		sheetName = defaultSheet
	}

	header := make([]any, len(t.Columns))
	for i, c := range t.Columns {
		header[i] = c
	}
	err := f.SetSheetRow(sheetName, "A1", &header)
	if err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, row := range t.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := []any(row)
		err = f.SetSheetRow(sheetName, cell, &values)
		if err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}

	err = f.SaveAs(path)
	if err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}
