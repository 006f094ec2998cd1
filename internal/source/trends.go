package source

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel/trace"
)

// Minimum series length needed to standardize the current value against a
// meaningful trailing window.
const trendsMinPoints = 10

// TrendsClient fetches a recent search-interest time series for one term
// from an interest-over-time endpoint. The provider is interchangeable;
// only the "recent values for term X, most recent last" shape matters.
type TrendsClient struct {
	client *resty.Client
	tracer trace.Tracer
}

func NewTrendsClient(baseURL string, tracer trace.Tracer) *TrendsClient {
	client := resty.New()
	client.SetTimeout(15 * time.Second)
	client.SetBaseURL(strings.TrimRight(baseURL, "/"))
	return &TrendsClient{client: client, tracer: tracer}
}

// Available reports whether a provider endpoint is configured at all.
func (c *TrendsClient) Available() bool {
	return c.client.BaseURL != ""
}

// Series returns the interest-over-time values for the term, most recent
// point last. Fewer than 10 points is treated as unavailable.
func (c *TrendsClient) Series(ctx context.Context, term string) ([]float64, error) {
	_, span := c.tracer.Start(ctx, "trends.fetch-series")
	defer span.End()

	if !c.Available() {
		return nil, credentialMissing("trends")
	}
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, parseError("trends", fmt.Errorf("term is required"))
	}

	var payload struct {
		Values []float64 `json:"values"`
	}
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParam("term", term).
		SetResult(&payload).
		Get("/interest")
	if err != nil {
		return nil, transportError("trends:"+term, err)
	}
	if resp.IsError() {
		return nil, transportError("trends:"+term, fmt.Errorf("status %d: %s", resp.StatusCode(), resp.String()))
	}
	if len(payload.Values) < trendsMinPoints {
		return nil, insufficientData("trends:"+term, fmt.Errorf("got %d points, need %d", len(payload.Values), trendsMinPoints))
	}
	return payload.Values, nil
}
