package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"banks-etl/internal/config"
	"banks-etl/internal/extract"
	"banks-etl/internal/load"
	"banks-etl/internal/reconcile"
	"banks-etl/internal/report"
	"banks-etl/internal/store"
	"banks-etl/internal/transform"
	"banks-etl/lib/progresslog"
	"banks-etl/lib/restyutil"
	"banks-etl/lib/table"
	"banks-etl/lib/tableview"
	"banks-etl/lib/telemetry"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

var tracer = telemetry.Tracer("banks-etl.internal.pipeline")

// Result is what a run leaves in memory once it has finished.
type Result struct {
	Final   table.Table
	Queries []table.Table
	Summary []report.Stat
}

// Queries returns the configured statements with {table} replaced.
func Queries(cfg config.Config) []string {
	out := make([]string, len(cfg.Queries))
	for i, q := range cfg.Queries {
		out[i] = strings.ReplaceAll(q, "{table}", cfg.TableName)
	}
	return out
}

// newHttpClient builds the client shared by the page and rate fetches.
func newHttpClient(cfg config.Config) (*resty.Client, error) {
	opts := restyutil.ClientOptions{
		Timeout:          time.Duration(cfg.HttpTimeoutSeconds) * time.Second,
		BypassCloudflare: cfg.BypassCloudflare,
		Tracer:           tracer,
	}
	if cfg.HttpDumpDir != "" {
		out, err := restyutil.NewFilesystemOutput(cfg.HttpDumpDir)
		if err != nil {
			return nil, err
		}
		opts.Output = out
	}
	return restyutil.NewClient(opts), nil
}

// Run extracts, transforms and loads the banks table, then runs and
// prints every configured query to out. Any failure stops the run.
func Run(ctx context.Context, cfg config.Config, out io.Writer) (Result, error) {
	runId := uuid.NewString()
	ctx, span := tracer.Start(ctx, "Run")
	defer span.End()
	span.SetAttributes(attribute.String("run_id", runId))

	logger := slog.Default().With("run_id", runId)
	progress := progresslog.New(cfg.LogPath)

	var result Result

	err := progress.Log("Preliminaries complete. Initiating ETL process")
	if err != nil {
		return result, err
	}

	httpClient, err := newHttpClient(cfg)
	if err != nil {
		return result, fmt.Errorf("http client: %w", err)
	}
	extractor := extract.NewClient(extract.Options{
		Selector:   cfg.Selector,
		RowLimit:   cfg.RowLimit,
		StrictRows: cfg.StrictRows,
		HTTP:       httpClient,
	})
	raw, err := extractor.Extract(ctx, cfg.SourceURL, cfg.ExpectedColumns)
	if err != nil {
		return result, fmt.Errorf("extract: %w", err)
	}
	logger.InfoContext(ctx, "extracted table", "columns", raw.Columns, "rows", len(raw.Rows))
	for _, link := range reconcile.Columns(cfg.ExpectedColumns, raw.Columns) {
		logger.DebugContext(
			ctx, "expected column",
			"expected", link.Expected,
			"header", link.Actual,
			"similarity", link.Similarity,
		)
	}

	err = progress.Log("Data extraction complete. Initiating Transformation process")
	if err != nil {
		return result, err
	}

	final, err := transform.Transform(ctx, httpClient, raw, cfg.RateSourceURL)
	if err != nil {
		return result, fmt.Errorf("transform: %w", err)
	}
	result.Final = final

	err = progress.Log("Data transformation complete. Initiating Loading process")
	if err != nil {
		return result, err
	}

	err = load.SaveCSV(final, cfg.CSVPath)
	if err != nil {
		return result, fmt.Errorf("load csv: %w", err)
	}
	logger.InfoContext(ctx, "saved csv", "path", cfg.CSVPath)
	if cfg.XLSXPath != "" {
		err = load.SaveXLSX(final, cfg.XLSXPath, cfg.TableName)
		if err != nil {
			return result, fmt.Errorf("load xlsx: %w", err)
		}
		logger.InfoContext(ctx, "saved xlsx", "path", cfg.XLSXPath)
	}

	err = progress.Log("Data saved to CSV file")
	if err != nil {
		return result, err
	}

	db, err := store.Load(ctx, cfg.Store(), final, cfg.TableName)
	if err != nil {
		return result, fmt.Errorf("load db: %w", err)
	}
	defer db.Close()

	err = progress.Log("SQL Connection initiated")
	if err != nil {
		return result, err
	}
	err = progress.Log("Data loaded to Database as a table, Executing queries")
	if err != nil {
		return result, err
	}

	for _, statement := range Queries(cfg) {
		res, err := db.Query(ctx, statement)
		if err != nil {
			return result, fmt.Errorf("query %q: %w", statement, err)
		}
		result.Queries = append(result.Queries, res)
		fmt.Fprintln(out, statement)
		tableview.Render(out, res)
	}

	result.Summary, err = report.Summarize(final)
	if err != nil {
		return result, fmt.Errorf("summarize: %w", err)
	}
	for _, s := range result.Summary {
		logger.InfoContext(
			ctx, "column summary",
			"column", s.Column,
			"min", s.Min,
			"max", s.Max,
			"mean", s.Mean,
			"median", s.Median,
		)
	}

	err = progress.Log("Process Complete")
	if err != nil {
		return result, err
	}

	err = db.Close()
	if err != nil {
		return result, fmt.Errorf("close db: %w", err)
	}
	return result, progress.Log("Server Connection closed")
}
