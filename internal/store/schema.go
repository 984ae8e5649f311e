package store

import (
	"strings"

	"banks-etl/lib/table"
)

type columnType int

const (
	columnTypeText columnType = iota
	columnTypeInteger
	columnTypeReal
)

func (ct columnType) String() string {
	switch ct {
	case columnTypeInteger:
		return "INTEGER"
	case columnTypeReal:
		return "REAL"
	default:
		return "TEXT"
	}
}

func cellType(v any) (columnType, bool) {
	switch v.(type) {
	case nil:
		return 0, false
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32:
		return columnTypeInteger, true
	case float32, float64:
		return columnTypeReal, true
	default:
		return columnTypeText, true
	}
}

// inferColumnTypes types every column by looking at its values: all
// integers is INTEGER, integers mixed with floats is REAL, anything else is
// TEXT. Columns with only nulls are TEXT.
func inferColumnTypes(t table.Table) []columnType {
	out := make([]columnType, len(t.Columns))
	for col := range t.Columns {
		seen := false
		inferred := columnTypeText
		for i := range t.Rows {
			v, ok := t.Cell(i, col)
			if !ok {
				continue
			}
			ct, ok := cellType(v)
			if !ok {
				continue
			}
			switch {
			case !seen:
				inferred = ct
			case inferred == columnTypeText || ct == columnTypeText:
				inferred = columnTypeText
			case inferred != ct:
				inferred = columnTypeReal
			}
			seen = true
		}
		out[col] = inferred
	}
	return out
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
