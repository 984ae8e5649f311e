package table

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Row is a single record, cells line up with Table.Columns by index.
// A row may be shorter or longer than the header when the source document
// was malformed.
type Row []any

// Table is an in-memory tabular structure: ordered column names plus
// ordered rows of cells.
type Table struct {
	Columns []string
	Rows    []Row
}

func New(columns []string) Table {
	return Table{Columns: columns}
}

// ColumnIndex returns the index of the column with the exact given name,
// or -1 if no such column exists.
func (t Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Cell returns the cell at (row, col), the second return value is false
// when the row is too short to contain it.
func (t Table) Cell(row, col int) (any, bool) {
	r := t.Rows[row]
	if col < 0 || col >= len(r) {
		return nil, false
	}
	return r[col], true
}

// Column returns every cell of the named column, in row order.
func (t Table) Column(name string) ([]any, error) {
	idx := t.ColumnIndex(name)
	if idx < 0 {
		return nil, fmt.Errorf("no column named %q", name)
	}
	out := make([]any, len(t.Rows))
	for i := range t.Rows {
		out[i], _ = t.Cell(i, idx)
	}
	return out, nil
}

// Clone returns a deep copy of the column list and row slices, the cell
// values themselves are immutable scalars and are shared.
func (t Table) Clone() Table {
	out := Table{
		Columns: append([]string(nil), t.Columns...),
		Rows:    make([]Row, len(t.Rows)),
	}
	for i, r := range t.Rows {
		out.Rows[i] = append(Row(nil), r...)
	}
	return out
}

// FormatCell renders a cell the way it is written to flat files. Floats
// always keep a decimal point so 80 is written as 80.0, magnitudes of 1e16
// and above or below 1e-4 switch to exponent notation (1e+16).
func FormatCell(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case float64:
		abs := math.Abs(v)
		if v != 0 && !math.IsInf(v, 0) && (abs >= 1e16 || abs < 1e-4) {
			return strconv.FormatFloat(v, 'g', -1, 64)
		}
		s := strconv.FormatFloat(v, 'f', -1, 64)
		if math.IsInf(v, 0) || math.IsNaN(v) || strings.Contains(s, ".") {
			return s
		}
		return s + ".0"
	case float32:
		return FormatCell(float64(v))
	case int64:
		return strconv.FormatInt(v, 10)
	case int:
		return strconv.Itoa(v)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprint(v)
	}
}

// Float interprets a cell as a number, strings are parsed.
func Float(v any) (float64, error) {
	switch v := v.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case int:
		return float64(v), nil
	case string:
		return strconv.ParseFloat(v, 64)
	case []byte:
		return strconv.ParseFloat(string(v), 64)
	default:
		return 0, fmt.Errorf("cell of type %T is not numeric", v)
	}
}
