package store

import (
	"context"
	"fmt"

	"banks-etl/lib/table"

	"go.opentelemetry.io/otel/attribute"
)

// Query runs statement as is and returns its result set. The statement is
// not parameterized, it must come from a trusted operator.
func (s *Store) Query(ctx context.Context, statement string) (table.Table, error) {
	ctx, span := tracer.Start(ctx, "Query")
	defer span.End()
	span.SetAttributes(attribute.String("statement", statement))

	rows, err := s.db.QueryxContext(ctx, statement)
	if err != nil {
		span.RecordError(err)
		return table.Table{}, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return table.Table{}, err
	}

	out := table.New(columns)
	for rows.Next() {
		values, err := rows.SliceScan()
		if err != nil {
			return table.Table{}, fmt.Errorf("scan: %w", err)
		}
		row := make(table.Row, len(values))
		for i, v := range values {
			if b, ok := v.([]byte); ok {
				v = string(b)
			}
			row[i] = v
		}
		out.Rows = append(out.Rows, row)
	}
	err = rows.Err()
	if err != nil {
		return table.Table{}, err
	}
	return out, nil
}
