package cwa

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// ErrMissingAPIKey is returned before any network I/O when no CWA
// authorization key is configured.
var ErrMissingAPIKey = errors.New("CWA API key is not configured; set CWA_API_KEY")

// UpstreamError is a non-success response from the CWA API. The status code
// and body are preserved verbatim so the route layer can pass them through.
type UpstreamError struct {
	StatusCode int
	Payload    json.RawMessage
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("CWA API error %d: %s", e.StatusCode, e.Payload)
}

// Client fetches the township forecast dataset from the CWA open-data API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	datasetID  string
	apiKey     string
}

// NewClient creates a CWA datastore client. The http.Client's transport
// timeout is the only deadline applied; there are no retries and no caching.
func NewClient(httpClient *http.Client, baseURL, datasetID, apiKey string) *Client {
	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		datasetID:  datasetID,
		apiKey:     apiKey,
	}
}

// FetchForecast performs one GET against the configured dataset and decodes
// the full county document. No township filter is sent; selection happens
// downstream in the normalizer.
func (c *Client) FetchForecast(ctx context.Context) (*RawDocument, error) {
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	values := url.Values{}
	values.Set("Authorization", c.apiKey)

	u := fmt.Sprintf("%s/%s?%s", c.baseURL, c.datasetID, values.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch forecast: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Payload: body}
	}

	var doc RawDocument
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode forecast response: %w", err)
	}

	return &doc, nil
}
