package load

import (
	"encoding/csv"
	"fmt"
	"os"

	"banks-etl/lib/table"
)

// SaveCSV writes the header and every row of t to path, replacing any
// existing file. No index column is written.
func SaveCSV(t table.Table, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	err = w.Write(t.Columns)
	if err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	record := []string{}
	for _, row := range t.Rows {
		record = record[:0]
		for _, cell := range row {
			record = append(record, table.FormatCell(cell))
		}
		err = w.Write(record)
		if err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	w.Flush()
	err = w.Error()
	if err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return f.Close()
}
