package countries

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	apperrors "countryhub/internal/errors"
)

// Client talks to the third-party country-data API. The API is consumed
// read-only and its payloads are treated as opaque snapshots: responses are
// passed through verbatim, never reshaped.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the given API base URL,
// e.g. https://restcountries.com/v3.1.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// All returns the full country list.
func (c *Client) All(ctx context.Context) (json.RawMessage, error) {
	return c.get(ctx, "/all")
}

// ByName returns countries matching a name fragment.
func (c *Client) ByName(ctx context.Context, name string) (json.RawMessage, error) {
	return c.get(ctx, "/name/"+url.PathEscape(name))
}

// ByRegion returns countries in a region.
func (c *Client) ByRegion(ctx context.Context, region string) (json.RawMessage, error) {
	return c.get(ctx, "/region/"+url.PathEscape(region))
}

// ByCode returns the country with an alpha code.
func (c *Client) ByCode(ctx context.Context, code string) (json.RawMessage, error) {
	return c.get(ctx, "/alpha/"+url.PathEscape(code))
}

func (c *Client) get(ctx context.Context, path string) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("country api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, apperrors.ErrCountryNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("country api: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read country api response: %w", err)
	}
	return json.RawMessage(body), nil
}
