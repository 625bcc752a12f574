// ABOUTME: HTTP client for the rota availability and events APIs.
// ABOUTME: Panels consume the Client interface so tests can substitute stubs.

package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/2389/rota/internal/schedule"
)

// Client is the collaborator surface the panels pull data through.
type Client interface {
	GetAvailability(ctx context.Context, startISO, endISO string) ([]schedule.Slot, error)
	GetEvents(ctx context.Context, startISO, endISO string) ([]schedule.Event, error)
}

// HTTPClient talks to a rota server over HTTP.
type HTTPClient struct {
	baseURL string
	token   string
	http    *http.Client
}

// New constructs an HTTPClient. token may be empty for unauthenticated
// development use.
func New(baseURL, token string) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *HTTPClient) GetAvailability(ctx context.Context, startISO, endISO string) ([]schedule.Slot, error) {
	var resp struct {
		Items []schedule.Slot `json:"items"`
	}
	if err := c.get(ctx, "/v1/availability", startISO, endISO, &resp); err != nil {
		return nil, fmt.Errorf("get availability: %w", err)
	}
	return resp.Items, nil
}

func (c *HTTPClient) GetEvents(ctx context.Context, startISO, endISO string) ([]schedule.Event, error) {
	var resp struct {
		Items []schedule.Event `json:"items"`
	}
	if err := c.get(ctx, "/v1/events", startISO, endISO, &resp); err != nil {
		return nil, fmt.Errorf("get events: %w", err)
	}
	return resp.Items, nil
}

func (c *HTTPClient) get(ctx context.Context, path, startISO, endISO string, out any) error {
	q := url.Values{}
	q.Set("start", startISO)
	q.Set("end", endISO)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return err
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server returned %s", resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
