package source

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel/trace"
)

const (
	fredBaseURL      = "https://api.stlouisfed.org/fred/series/observations"
	fredLookbackDays = 365 * 3
)

// Observation is one dated value from a macro time series.
type Observation struct {
	Date  time.Time
	Value float64
}

// FREDClient fetches observations for a FRED series. Missing values
// (reported as ".") are filtered out; results come back sorted ascending
// by date.
type FREDClient struct {
	client *resty.Client
	apiKey string
	tracer trace.Tracer
}

func NewFREDClient(apiKey string, tracer trace.Tracer) *FREDClient {
	client := resty.New()
	client.SetTimeout(15 * time.Second)
	client.SetBaseURL(fredBaseURL)
	return &FREDClient{
		client: client,
		apiKey: strings.TrimSpace(apiKey),
		tracer: tracer,
	}
}

// SetBaseURL points the client at a different endpoint. Used by tests.
func (c *FREDClient) SetBaseURL(u string) {
	c.client.SetBaseURL(u)
}

// HasCredential reports whether an API key is configured.
func (c *FREDClient) HasCredential() bool {
	return c.apiKey != ""
}

// Observations fetches roughly the last three years of observations for
// the given series id.
func (c *FREDClient) Observations(ctx context.Context, seriesID string) ([]Observation, error) {
	_, span := c.tracer.Start(ctx, "fred.observations")
	defer span.End()

	if !c.HasCredential() {
		return nil, credentialMissing("fred:" + seriesID)
	}
	seriesID = strings.TrimSpace(seriesID)
	if seriesID == "" {
		return nil, parseError("fred", errors.New("series id is required"))
	}

	start := time.Now().UTC().AddDate(0, 0, -fredLookbackDays)
	var payload struct {
		Observations []struct {
			Date  string `json:"date"`
			Value string `json:"value"`
		} `json:"observations"`
	}
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"series_id":         seriesID,
			"api_key":           c.apiKey,
			"file_type":         "json",
			"observation_start": start.Format("2006-01-02"),
		}).
		SetResult(&payload).
		Get("")
	if err != nil {
		return nil, transportError("fred:"+seriesID, err)
	}
	if resp.IsError() {
		return nil, transportError("fred:"+seriesID, fmt.Errorf("status %d: %s", resp.StatusCode(), resp.String()))
	}

	out := make([]Observation, 0, len(payload.Observations))
	for _, row := range payload.Observations {
		v := strings.TrimSpace(row.Value)
		if v == "" || v == "." {
			continue
		}
		value, err := strconv.ParseFloat(v, 64)
		if err != nil {
			continue
		}
		date, err := time.Parse("2006-01-02", strings.TrimSpace(row.Date))
		if err != nil {
			continue
		}
		out = append(out, Observation{Date: date, Value: value})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}
