package tableview

import (
	"io"

	"banks-etl/lib/table"

	prettytable "github.com/jedib0t/go-pretty/v6/table"
)

func NewWriter(out io.Writer) prettytable.Writer {
	t := prettytable.NewWriter()
	t.SetStyle(prettytable.StyleRounded)
	t.SetOutputMirror(out)
	return t
}

// Render writes t to out as a bordered text table, the first column holds
// the row index.
func Render(out io.Writer, t table.Table) {
	w := NewWriter(out)

	header := prettytable.Row{""}
	for _, c := range t.Columns {
		header = append(header, c)
	}
	w.AppendHeader(header)

	for i, row := range t.Rows {
		r := prettytable.Row{i}
		for _, cell := range row {
			r = append(r, table.FormatCell(cell))
		}
		w.AppendRow(r)
	}
	w.Render()
}
