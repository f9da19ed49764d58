package soundtouch

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	// DefaultPort is the SoundTouch control API port
	DefaultPort = 8090

	// DefaultTimeout is the default HTTP request timeout
	DefaultTimeout = 10 * time.Second
)

// Client represents an HTTP client for a SoundTouch device's control API
type Client struct {
	// HTTPClient is the underlying HTTP client
	HTTPClient *http.Client
}

// NewClient creates a new control API client with default settings
func NewClient() *Client {
	return &Client{
		HTTPClient: &http.Client{Timeout: DefaultTimeout},
	}
}

// SetTimeout sets the HTTP request timeout
func (c *Client) SetTimeout(timeout time.Duration) {
	c.HTTPClient.Timeout = timeout
}

// GetInfo queries a device's /info endpoint for its authoritative identity.
// baseURL is the device's control API base (e.g. "http://192.168.1.100:8090").
//
// Unreachable devices yield a connection-type DeviceError; callers can
// test for it with IsConnectionError.
func (c *Client) GetInfo(ctx context.Context, baseURL string) (*DeviceInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"/info", nil)
	if err != nil {
		return nil, NewConnectionError("failed to create info request", err)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, NewConnectionError("device unreachable", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, NewHTTPError(resp.StatusCode, fmt.Sprintf("unexpected status code: %d", resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, NewConnectionError("failed to read response body", err)
	}

	var parsed infoResponse
	if err := xml.Unmarshal(body, &parsed); err != nil {
		return nil, NewParseError("failed to parse info response", err)
	}

	if parsed.DeviceID == "" {
		return nil, NewParseError("info response has no deviceID", nil)
	}

	return parsed.toDeviceInfo(), nil
}

// Ping performs a lightweight reachability check against the control API
func (c *Client) Ping(ctx context.Context, baseURL string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"/info", nil)
	if err != nil {
		return NewConnectionError("failed to create ping request", err)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return NewConnectionError("device unreachable", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return NewHTTPError(resp.StatusCode, fmt.Sprintf("unexpected status code: %d", resp.StatusCode))
	}

	return nil
}
