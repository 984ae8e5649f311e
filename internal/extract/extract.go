package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"banks-etl/lib/htmlutil"
	"banks-etl/lib/restyutil"
	"banks-etl/lib/table"
	"banks-etl/lib/telemetry"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = telemetry.Tracer("banks-etl.internal.extract")
var meter = telemetry.Meter("banks-etl.internal.extract")
var rowsExtracted = telemetry.Int64Counter(meter, "rows_extracted")

var (
	ErrTableNotFound = errors.New("no table matched the selector")
	ErrBadStatus     = errors.New("unexpected http status")
	ErrRaggedRow     = errors.New("row cell count does not match header")
)

const (
	DefaultSelector = "table.wikitable"
	DefaultRowLimit = 10
)

type Options struct {
	// css selector of the table, the first match is used
	Selector   string
	// maximum amount of data rows read, rows after it are ignored
	RowLimit   int
	// reject rows whose cell count differs from the header instead of
	// keeping them as is
	StrictRows bool

	// when set, requests go through this client and the fields below are
	// ignored
	HTTP *resty.Client

	Timeout          time.Duration
	BypassCloudflare bool
	// when non-nil and debug logging is enabled, every http exchange is
	// written here
	Output           restyutil.InstrumentOutput
}

type Client struct {
	http *resty.Client
	opts Options
}

func NewClient(opts Options) *Client {
	if opts.Selector == "" {
		opts.Selector = DefaultSelector
	}
	if opts.RowLimit <= 0 {
		opts.RowLimit = DefaultRowLimit
	}
	httpClient := opts.HTTP
	if httpClient == nil {
		httpClient = restyutil.NewClient(restyutil.ClientOptions{
			Timeout:          opts.Timeout,
			BypassCloudflare: opts.BypassCloudflare,
			Tracer:           tracer,
			Output:           opts.Output,
		})
	}
	return &Client{http: httpClient, opts: opts}
}

// Extract downloads the document at sourceURL and parses its table.
// expectedColumns is informational, the header row of the document is
// always adopted as the column names.
func (c *Client) Extract(ctx context.Context, sourceURL string, expectedColumns []string) (table.Table, error) {
	ctx, span := tracer.Start(ctx, "Extract")
	defer span.End()
	span.SetAttributes(attribute.String("source_url", sourceURL))

	res, err := c.http.R().
		SetContext(ctx).
		Get(sourceURL)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch document")
		return table.Table{}, fmt.Errorf("fetch %s: %w", sourceURL, err)
	}
	if res.IsError() {
		err = fmt.Errorf("%w: %s returned %s", ErrBadStatus, sourceURL, res.Status())
		span.RecordError(err)
		span.SetStatus(codes.Error, "bad status")
		return table.Table{}, err
	}

	return c.Parse(ctx, bytes.NewReader(res.Body()), expectedColumns)
}

// Parse is the document -> table half of Extract.
func (c *Client) Parse(ctx context.Context, r io.Reader, expectedColumns []string) (table.Table, error) {
	ctx, span := tracer.Start(ctx, "Parse")
	defer span.End()

	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		span.RecordError(err)
		return table.Table{}, fmt.Errorf("parse document: %w", err)
	}

	target := doc.Find(c.opts.Selector).First()
	if target.Length() == 0 {
		span.SetStatus(codes.Error, "table not found")
		return table.Table{}, fmt.Errorf("%w: %s", ErrTableNotFound, c.opts.Selector)
	}

	out := table.New(htmlutil.TrimmedTexts(target.Find("th")))
	if len(expectedColumns) > 0 && len(expectedColumns) != len(out.Columns) {
		slog.DebugContext(
			ctx, "document header differs from expected columns",
			"expected", expectedColumns,
			"header", out.Columns,
		)
	}

	// the first row holds the header
	rows := target.Find("tr")
	end := min(rows.Length(), c.opts.RowLimit+1)
	for i := 1; i < end; i++ {
		cells := htmlutil.TrimmedTexts(rows.Eq(i).Find("td"))
		if len(cells) != len(out.Columns) {
			if c.opts.StrictRows {
				return table.Table{}, fmt.Errorf(
					"%w: row %d has %d cells, header has %d",
					ErrRaggedRow, i, len(cells), len(out.Columns),
				)
			}
			slog.WarnContext(
				ctx, "row cell count does not match header",
				"row", i,
				"cells", len(cells),
				"columns", len(out.Columns),
			)
		}

		row := make(table.Row, len(cells))
		for j, cell := range cells {
			row[j] = cell
		}
		out.Rows = append(out.Rows, row)
	}

	span.SetAttributes(
		attribute.Int("columns", len(out.Columns)),
		attribute.Int("rows", len(out.Rows)),
	)
	rowsExtracted.Add(ctx, int64(len(out.Rows)))

	return out, nil
}
