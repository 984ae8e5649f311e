package store

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"banks-etl/lib/table"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// SaveTable replaces the table called name with the contents of t. The
// drop, create and inserts happen in one transaction. Rows shorter than
// the header are padded with nulls.
func (s *Store) SaveTable(ctx context.Context, t table.Table, name string) error {
	ctx, span := tracer.Start(ctx, "SaveTable")
	defer span.End()
	span.SetAttributes(attribute.String("table", name))

	for i, row := range t.Rows {
		if len(row) > len(t.Columns) {
			err := fmt.Errorf(
				"%w: row %d has %d cells, %d columns",
				ErrRowTooLong, i, len(row), len(t.Columns),
			)
			span.SetStatus(codes.Error, err.Error())
			return err
		}
	}

	types := inferColumnTypes(t)
	defs := make([]string, len(t.Columns))
	placeholders := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		defs[i] = fmt.Sprintf("%s %s", quoteIdent(c), types[i])
		placeholders[i] = "?"
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s", quoteIdent(name)))
	if err != nil {
		return fmt.Errorf("drop table: %w", err)
	}
	_, err = tx.ExecContext(ctx, fmt.Sprintf(
		"CREATE TABLE %s (%s)",
		quoteIdent(name), strings.Join(defs, ", "),
	))
	if err != nil {
		return fmt.Errorf("create table: %w", err)
	}

	insert, err := tx.PreparexContext(ctx, fmt.Sprintf(
		"INSERT INTO %s VALUES (%s)",
		quoteIdent(name), strings.Join(placeholders, ", "),
	))
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer insert.Close()

	args := make([]any, len(t.Columns))
	for i, row := range t.Rows {
		for j := range args {
			args[j] = nil
			if j < len(row) {
				args[j] = row[j]
			}
		}
		_, err = insert.ExecContext(ctx, args...)
		if err != nil {
			return fmt.Errorf("insert row %d: %w", i, err)
		}
	}

	err = tx.Commit()
	if err != nil {
		return err
	}

	rowsLoaded.Add(ctx, int64(len(t.Rows)))
	slog.DebugContext(ctx, "saved table", "table", name, "rows", len(t.Rows))
	return nil
}

// Load opens the store described by config and replaces the table called
// name with t. The returned store is still open.
func Load(ctx context.Context, config Config, t table.Table, name string) (*Store, error) {
	s, err := Open(config)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	err = s.SaveTable(ctx, t, name)
	if err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}
