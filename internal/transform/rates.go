package transform

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/go-resty/resty/v2"
)

const (
	currencyColumn = "Currency"
	rateColumn     = "Rate"
)

// Rates maps a currency code to the multiplier that converts one US dollar
// into that currency.
type Rates map[string]float64

func isRemote(location string) bool {
	u, err := url.Parse(location)
	if err != nil {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}

// LoadRates reads a Currency,Rate csv from an http(s) url or a local path.
// Urls are fetched with client.
func LoadRates(ctx context.Context, client *resty.Client, location string) (Rates, error) {
	ctx, span := tracer.Start(ctx, "LoadRates")
	defer span.End()

	var body io.Reader
	if isRemote(location) {
		res, err := client.R().
			SetContext(ctx).
			Get(location)
		if err != nil {
			span.RecordError(err)
			return nil, fmt.Errorf("fetch rates: %w", err)
		}
		if res.IsError() {
			return nil, fmt.Errorf("fetch rates: %s returned %s", location, res.Status())
		}
		body = bytes.NewReader(res.Body())
	} else {
		f, err := os.Open(location)
		if err != nil {
			span.RecordError(err)
			return nil, fmt.Errorf("open rates: %w", err)
		}
		defer f.Close()
		body = f
	}

	rates, err := ParseRates(body)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return rates, nil
}

func ParseRates(r io.Reader) (Rates, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: rate file is empty", ErrMissingColumn)
	}
	if err != nil {
		return nil, fmt.Errorf("read rate header: %w", err)
	}

	currencyIdx, rateIdx := -1, -1
	for i, h := range header {
		switch strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")) {
		case currencyColumn:
			currencyIdx = i
		case rateColumn:
			rateIdx = i
		}
	}
	if currencyIdx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, currencyColumn)
	}
	if rateIdx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, rateColumn)
	}

	rates := Rates{}
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("read rate line %d: %w", line, err)
		}

		currency := strings.TrimSpace(record[currencyIdx])
		rate, err := strconv.ParseFloat(strings.TrimSpace(record[rateIdx]), 64)
		if err != nil {
			return nil, fmt.Errorf("rate for %q on line %d: %w", currency, line, err)
		}
		rates[currency] = rate
	}
	return rates, nil
}
