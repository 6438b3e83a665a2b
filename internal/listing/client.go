package listing

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"krisik-bazar/internal/model"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Client reads the remote price board.
type Client struct {
	url    string
	http   *http.Client
	logger zerolog.Logger
}

// NewClient creates a client for url. Every request is bounded by timeout.
func NewClient(url string, timeout time.Duration, logger zerolog.Logger) *Client {
	return &Client{
		url: url,
		http: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		logger: logger.With().Str("component", "listing-client").Logger(),
	}
}

// FetchPrices issues a single GET and decodes the price records. Non-2xx
// responses and timeouts are errors.
func (c *Client) FetchPrices(ctx context.Context) ([]model.PriceRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build listing request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch listing: %w", err)
	}
	defer resp.Body.Close()

	c.logger.Debug().
		Str("url", c.url).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("listing response")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("failed to fetch listing: unexpected status %d", resp.StatusCode)
	}

	var records []model.PriceRecord
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to decode listing: %w", err)
	}

	return records, nil
}
