// Package client fetches sales records from the report API.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"report-portal/internal/report/domain"
	"report-portal/internal/reportapi"
)

// TransportError is returned when the fetch fails or the body is not a record array.
// The caller's store must be left untouched.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Fetcher is the report-fetch collaborator used by a workspace sync.
type Fetcher interface {
	FetchReports(ctx context.Context) ([]domain.SalesReport, error)
}

// Client is an HTTP Fetcher.
type Client struct {
	url  string
	http *http.Client
}

// New returns a client for the API rooted at baseURL. timeout <= 0 means 10s.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		url:  strings.TrimRight(baseURL, "/") + reportapi.Path,
		http: &http.Client{Timeout: timeout},
	}
}

// URL returns the report route the client fetches from.
func (c *Client) URL() string { return c.url }

// PingContext checks that the API answers the report route with a 2xx status.
// The body is not read; any backend serving the report route counts as ready.
func (c *Client) PingContext(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return &TransportError{URL: c.url, Err: err}
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return &TransportError{URL: c.url, Err: err}
	}
	resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &TransportError{URL: c.url, Err: fmt.Errorf("status %d", resp.StatusCode)}
	}
	return nil
}

// FetchReports returns every record served by the API, in served order.
func (c *Client) FetchReports(ctx context.Context) ([]domain.SalesReport, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, &TransportError{URL: c.url, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{URL: c.url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &TransportError{URL: c.url, Err: fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))}
	}

	var records []reportapi.Record
	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err := dec.Decode(&records); err != nil {
		return nil, &TransportError{URL: c.url, Err: fmt.Errorf("decode: %w", err)}
	}
	out := make([]domain.SalesReport, 0, len(records))
	for _, rec := range records {
		r, err := rec.ToDomain()
		if err != nil {
			return nil, &TransportError{URL: c.url, Err: err}
		}
		out = append(out, r)
	}
	return out, nil
}
