package telemetry

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

func TestSetupWithoutEndpoints(t *testing.T) {
	tel, err := Setup(context.Background(), "test:telemetry", Config{})
	require.NoError(t, err)
	require.Nil(t, tel.TracerProvider)
	require.Nil(t, tel.MeterProvider)
	require.NoError(t, tel.Shutdown(context.Background()))
}

func TestParseLevel(t *testing.T) {
	require.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	require.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	require.Equal(t, slog.LevelError, ParseLevel("error"))
	require.Equal(t, slog.LevelInfo, ParseLevel(""))
}

func TestNewLoggerJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "info", "json")
	logger.Debug("hidden")
	logger.Info("shown", "rows", 10)

	require.NotContains(t, buf.String(), "hidden")
	require.Contains(t, buf.String(), `"msg":"shown"`)
	require.Contains(t, buf.String(), `"rows":10`)
}

func TestNewLoggerText(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "debug", "text")
	logger.Debug("shown", "rows", 10)

	require.Contains(t, buf.String(), "DBG")
	require.Contains(t, buf.String(), "shown")
	require.Contains(t, buf.String(), "rows=10")
	require.NotContains(t, buf.String(), "\x1b[")
}

type rejectingMeter struct {
	noop.Meter
}

func (rejectingMeter) Int64Counter(string, ...metric.Int64CounterOption) (metric.Int64Counter, error) {
	return nil, errors.New("rejected")
}

func TestInt64Counter(t *testing.T) {
	counter := Int64Counter(Meter("test:telemetry"), "rows")
	require.NotNil(t, counter)
	counter.Add(context.Background(), 1)

	counter = Int64Counter(rejectingMeter{}, "rows")
	require.IsType(t, noop.Int64Counter{}, counter)
	counter.Add(context.Background(), 1)
}
