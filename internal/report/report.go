package report

import (
	"banks-etl/lib/table"

	"github.com/montanaflynn/stats"
)

// Stat describes the distribution of one numeric column.
type Stat struct {
	Column string
	Count  int
	Min    float64
	Max    float64
	Mean   float64
	Median float64
}

// Summarize computes a Stat for every column whose cells are all numeric,
// numeric strings included. Columns with a missing or non-numeric cell are
// skipped.
func Summarize(t table.Table) ([]Stat, error) {
	var out []Stat
	for col, name := range t.Columns {
		data, ok := numericColumn(t, col)
		if !ok {
			continue
		}

		stat := Stat{Column: name, Count: len(data)}
		var err error
		stat.Min, err = stats.Min(data)
		if err != nil {
			return nil, err
		}
		stat.Max, err = stats.Max(data)
		if err != nil {
			return nil, err
		}
		stat.Mean, err = stats.Mean(data)
		if err != nil {
			return nil, err
		}
		stat.Median, err = stats.Median(data)
		if err != nil {
			return nil, err
		}
		out = append(out, stat)
	}
	return out, nil
}

func numericColumn(t table.Table, col int) (stats.Float64Data, bool) {
	if len(t.Rows) == 0 {
		return nil, false
	}
	data := make(stats.Float64Data, 0, len(t.Rows))
	for i := range t.Rows {
		cell, ok := t.Cell(i, col)
		if !ok {
			return nil, false
		}
		v, err := table.Float(cell)
		if err != nil {
			return nil, false
		}
		data = append(data, v)
	}
	return data, true
}
