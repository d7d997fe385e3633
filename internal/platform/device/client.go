// Package device talks to the biometric device gateway that collects punches from the
// attendance terminals.
package device

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"hradmin/internal/platform/apperr"
)

// Punch is one attendance event as the gateway reports it.
type Punch struct {
	EmployeeUUID string    `json:"employee_uuid"`
	PunchTime    time.Time `json:"punch_time"`
	PunchType    string    `json:"punch_type"`
}

type Status struct {
	Online bool `json:"online"`
}

type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
}

// New returns a client whose every call is bounded by timeout. No call is retried.
func New(baseURL string, timeout time.Duration) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid device service url %q", baseURL)
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{baseURL: u, httpClient: &http.Client{Timeout: timeout}}, nil
}

// Punches lists the punches a device recorded at or after since.
func (c *Client) Punches(ctx context.Context, identifier string, since time.Time) ([]Punch, error) {
	query := url.Values{}
	if !since.IsZero() {
		query.Set("since", since.UTC().Format(time.RFC3339))
	}
	var out []Punch
	if err := c.getJSON(ctx, "/devices/"+url.PathEscape(identifier)+"/punches", query, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Status(ctx context.Context, identifier string) (Status, error) {
	var out Status
	err := c.getJSON(ctx, "/devices/"+url.PathEscape(identifier)+"/status", nil, &out)
	return out, err
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + path
	if query != nil {
		u.RawQuery = query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", apperr.ErrUpstream, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return fmt.Errorf("%w: read body: %v", apperr.ErrUpstream, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: %s returned %d", apperr.ErrUpstream, path, resp.StatusCode)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: decode %s: %v", apperr.ErrUpstream, path, err)
	}
	return nil
}

// Unconfigured stands in for the client when no gateway URL is set; every call fails as an
// upstream error.
type Unconfigured struct{}

func (Unconfigured) Punches(context.Context, string, time.Time) ([]Punch, error) {
	return nil, fmt.Errorf("%w: device service is not configured", apperr.ErrUpstream)
}

func (Unconfigured) Status(context.Context, string) (Status, error) {
	return Status{}, fmt.Errorf("%w: device service is not configured", apperr.ErrUpstream)
}
