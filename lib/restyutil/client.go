package restyutil

import (
	"net/http"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel/trace"
)

type ClientOptions struct {
	// zero means no timeout
	Timeout          time.Duration
	// wraps the transport so requests look like they come from a browser,
	// some archive mirrors sit behind cloudflare
	BypassCloudflare bool
	Tracer           trace.Tracer
	Output           InstrumentOutput
}

// NewClient returns an instrumented resty client. Retries are left at
// resty's default of zero.
func NewClient(opts ClientOptions) *resty.Client {
	client := resty.New()
	if opts.BypassCloudflare {
		client.SetTransport(cloudflarebp.AddCloudFlareByPass(http.DefaultTransport))
	}
	if opts.Timeout > 0 {
		client.SetTimeout(opts.Timeout)
	}
	InstrumentClient(client, opts.Tracer, opts.Output)
	return client
}
