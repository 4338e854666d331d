package fred

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	dservice "FXLens/internal/domain/service"
	"FXLens/internal/service/ratelimit"
	fxhttp "FXLens/pkg/http"
)

const limiterKey = "fred"

// Client implements a PolicyRateProvider backed by the FRED API.
type Client struct {
	http      *fxhttp.Client
	apiKey    string
	baseURL   string
	obsStart  string
	limiter   *ratelimit.Limiter
	maxRPS    float64
	waitLimit time.Duration
}

// New creates a FRED policy-rate client.
func New(apiKey, baseURL, observationStart string, timeout time.Duration, maxRPS float64) dservice.PolicyRateProvider {
	return &Client{
		http:      fxhttp.NewClient(fxhttp.WithTimeout(timeout)),
		apiKey:    apiKey,
		baseURL:   baseURL,
		obsStart:  observationStart,
		limiter:   ratelimit.New(),
		maxRPS:    maxRPS,
		waitLimit: 5 * time.Second,
	}
}

type observation struct {
	Date  string `json:"date"`
	Value string `json:"value"`
}

type observationsResponse struct {
	Observations []observation `json:"observations"`
}

// LatestRate returns the most recent non-missing value for a series.
// FRED encodes missing observations as the literal ".".
func (c *Client) LatestRate(ctx context.Context, series string) (float64, bool, error) {
	if !c.limiter.Wait(limiterKey, c.maxRPS, c.maxRPS, c.waitLimit) {
		return 0, false, fmt.Errorf("fred: rate limit wait exceeded for %s", series)
	}

	q := url.Values{}
	q.Set("series_id", series)
	q.Set("api_key", c.apiKey)
	q.Set("file_type", "json")
	q.Set("sort_order", "desc")
	q.Set("limit", "1")
	q.Set("observation_start", c.obsStart)

	var resp observationsResponse
	endpoint := c.baseURL + "/series/observations"
	if err := c.http.GetJSON(ctx, endpoint, q, nil, &resp); err != nil {
		return 0, false, fmt.Errorf("fred %s: %w", series, err)
	}

	if len(resp.Observations) == 0 || resp.Observations[0].Value == "." {
		return 0, false, nil
	}

	v, err := strconv.ParseFloat(resp.Observations[0].Value, 64)
	if err != nil {
		return 0, false, fmt.Errorf("fred %s: parse %q: %w", series, resp.Observations[0].Value, err)
	}
	return v, true, nil
}
