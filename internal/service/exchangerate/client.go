package exchangerate

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"

	dservice "FXLens/internal/domain/service"
	"FXLens/pkg/http"
	"FXLens/pkg/util"
)

// Client implements a SpotRateProvider backed by exchangerate.host.
// All requests use a USD base; rates come back as units of currency
// per 1 USD.
type Client struct {
	latest  *http.Client
	history *http.Client
	baseURL string
}

// New creates an exchangerate.host client. History requests get a
// longer timeout since timeseries responses are larger.
func New(baseURL string, latestTimeout, historyTimeout time.Duration) dservice.SpotRateProvider {
	return &Client{
		latest:  http.NewClient(http.WithTimeout(latestTimeout)),
		history: http.NewClient(http.WithTimeout(historyTimeout)),
		baseURL: baseURL,
	}
}

type latestResponse struct {
	Rates map[string]float64 `json:"rates"`
}

type timeseriesResponse struct {
	Rates map[string]map[string]float64 `json:"rates"`
}

// Current fetches spot rates for a batch of codes in one call.
func (c *Client) Current(ctx context.Context, codes []string) (map[string]float64, error) {
	q := url.Values{}
	q.Set("base", "USD")
	q.Set("symbols", strings.Join(codes, ","))

	var resp latestResponse
	if err := c.latest.GetJSON(ctx, c.baseURL+"/latest", q, nil, &resp); err != nil {
		return nil, fmt.Errorf("spot latest: %w", err)
	}
	return resp.Rates, nil
}

// History fetches daily spot rates for one code, date-ordered.
func (c *Client) History(ctx context.Context, code string, from, to time.Time) ([]dservice.DatedRate, error) {
	q := url.Values{}
	q.Set("base", "USD")
	q.Set("symbols", code)
	q.Set("start_date", util.FormatDay(from))
	q.Set("end_date", util.FormatDay(to))

	var resp timeseriesResponse
	if err := c.history.GetJSON(ctx, c.baseURL+"/timeseries", q, nil, &resp); err != nil {
		return nil, fmt.Errorf("spot history %s: %w", code, err)
	}

	days := make([]string, 0, len(resp.Rates))
	for d := range resp.Rates {
		days = append(days, d)
	}
	sort.Strings(days)

	out := make([]dservice.DatedRate, 0, len(days))
	for _, d := range days {
		rate, ok := resp.Rates[d][code]
		if !ok {
			continue
		}
		day, ok := util.ParseDay(d)
		if !ok {
			continue
		}
		out = append(out, dservice.DatedRate{Date: day, Rate: rate})
	}
	return out, nil
}
