package transform

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"banks-etl/lib/table"
	"banks-etl/lib/telemetry"

	"github.com/go-resty/resty/v2"
)

var tracer = telemetry.Tracer("banks-etl.internal.transform")

var (
	ErrMissingColumn = errors.New("missing column")
	ErrMissingRate   = errors.New("missing exchange rate")
	ErrRowTooLong    = errors.New("row has more cells than the header")
)

const SourceColumn = "Market cap(US$ billion)"

type Conversion struct {
	Currency string
	Column   string
}

// Conversions are appended to the table in this order.
var Conversions = []Conversion{
	{Currency: "GBP", Column: "MC_GBP_Billion"},
	{Currency: "EUR", Column: "MC_EUR_Billion"},
	{Currency: "INR", Column: "MC_INR_Billion"},
}

// Round rounds v to the given amount of decimal places, halves go to the
// nearest even digit.
func Round(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.RoundToEven(v*scale) / scale
}

// Apply returns a copy of t with one derived column per conversion. Every
// cell of the source column must parse as a number.
func Apply(t table.Table, rates Rates) (table.Table, error) {
	srcIdx := t.ColumnIndex(SourceColumn)
	if srcIdx < 0 {
		return table.Table{}, fmt.Errorf("%w: %q", ErrMissingColumn, SourceColumn)
	}
	multipliers := make([]float64, len(Conversions))
	for i, c := range Conversions {
		rate, ok := rates[c.Currency]
		if !ok {
			return table.Table{}, fmt.Errorf("%w: %s", ErrMissingRate, c.Currency)
		}
		multipliers[i] = rate
	}

	values := make([]float64, len(t.Rows))
	for i, row := range t.Rows {
		if len(row) > len(t.Columns) {
			return table.Table{}, fmt.Errorf(
				"%w: row %d has %d cells, header has %d",
				ErrRowTooLong, i, len(row), len(t.Columns),
			)
		}
		cell, ok := t.Cell(i, srcIdx)
		if !ok {
			return table.Table{}, fmt.Errorf("row %d has no %q cell", i, SourceColumn)
		}
		v, err := table.Float(cell)
		if err != nil {
			return table.Table{}, fmt.Errorf("row %d: %w", i, err)
		}
		values[i] = v
	}

	out := t.Clone()
	for _, c := range Conversions {
		out.Columns = append(out.Columns, c.Column)
	}
	for i, v := range values {
		// pad short rows so derived cells line up with their columns
		for len(out.Rows[i]) < len(t.Columns) {
			out.Rows[i] = append(out.Rows[i], nil)
		}
		for j := range Conversions {
			out.Rows[i] = append(out.Rows[i], Round(v*multipliers[j], 2))
		}
	}
	return out, nil
}

// Transform loads the rates at rateLocation and applies them to t.
func Transform(ctx context.Context, client *resty.Client, t table.Table, rateLocation string) (table.Table, error) {
	ctx, span := tracer.Start(ctx, "Transform")
	defer span.End()

	rates, err := LoadRates(ctx, client, rateLocation)
	if err != nil {
		return table.Table{}, err
	}
	slog.DebugContext(ctx, "loaded exchange rates", "count", len(rates))

	out, err := Apply(t, rates)
	if err != nil {
		span.RecordError(err)
		return table.Table{}, err
	}
	return out, nil
}
