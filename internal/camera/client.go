// Package camera talks to the camera's WiFi HTTP API. Once powered on,
// the camera brings up an access point and serves a CGI-style command
// interface on a fixed address.
package camera

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/openair/airwake/internal/config"
)

// DefaultHost is the camera's address on its own access point.
const DefaultHost = "192.168.0.10"

// userAgent is required by the camera firmware; requests without it are
// rejected by some models.
const userAgent = "OlympusCameraKit"

// Modes accepted by SwitchMode.
const (
	ModeRec     = "rec"
	ModePlay    = "play"
	ModeShutter = "shutter"
)

// Client provides typed methods for the camera's HTTP endpoints.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client for the camera at the given host (IP or
// host:port).
func New(host string) *Client {
	if host == "" {
		host = DefaultHost
	}
	return &Client{
		baseURL: "http://" + host,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// SetTimeout sets the per-request timeout.
func (c *Client) SetTimeout(d time.Duration) {
	c.http.Timeout = d
}

// get performs a GET against a CGI endpoint and returns the body.
// Non-200 responses become errors carrying a body snippet.
func (c *Client) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	config.Debugf("GET %s", reqURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "*/*")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response for %s: %w", path, err)
	}

	if resp.StatusCode != http.StatusOK {
		snippet := strings.TrimSpace(string(body))
		if len(snippet) > 120 {
			snippet = snippet[:120] + "..."
		}
		if snippet != "" {
			return nil, fmt.Errorf("%s: status %d: %s", path, resp.StatusCode, snippet)
		}
		return nil, fmt.Errorf("%s: status %d", path, resp.StatusCode)
	}

	config.Debugf("Response: %d bytes", len(body))
	return body, nil
}

// SwitchMode switches the camera between rec, play and shutter modes.
// Mode switches take the camera a moment to settle; callers that switch
// and immediately issue mode-specific commands should pause briefly.
func (c *Client) SwitchMode(ctx context.Context, mode string) error {
	_, err := c.get(ctx, "/switch_cammode.cgi", url.Values{"mode": {mode}})
	if err != nil {
		return fmt.Errorf("switch to %s mode: %w", mode, err)
	}
	return nil
}

// SwitchToRec switches to rec mode with the given live view quality
// (e.g. "0640x0480"). An empty quality uses the camera default.
func (c *Client) SwitchToRec(ctx context.Context, lvqty string) error {
	query := url.Values{"mode": {ModeRec}}
	if lvqty != "" {
		query.Set("lvqty", lvqty)
	}
	_, err := c.get(ctx, "/switch_cammode.cgi", query)
	if err != nil {
		return fmt.Errorf("switch to rec mode: %w", err)
	}
	return nil
}

// CommandList fetches the camera's command description XML. Useful for
// discovering what a particular model supports.
func (c *Client) CommandList(ctx context.Context) (string, error) {
	body, err := c.get(ctx, "/get_commandlist.cgi", nil)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// TakePicture triggers a full shutter press and release. The camera
// must already be in rec mode.
func (c *Client) TakePicture(ctx context.Context) error {
	if _, err := c.get(ctx, "/exec_takemotion.cgi", url.Values{"com": {"starttake"}}); err != nil {
		return fmt.Errorf("start take: %w", err)
	}
	if _, err := c.get(ctx, "/exec_takemotion.cgi", url.Values{"com": {"stoptake"}}); err != nil {
		return fmt.Errorf("stop take: %w", err)
	}
	return nil
}

// Screennail downloads the mid-size JPEG rendition of an image by its
// full on-camera path (e.g. "/DCIM/100OLYMP/P1010001.JPG").
func (c *Client) Screennail(ctx context.Context, path string) ([]byte, error) {
	return c.get(ctx, "/get_screennail.cgi", url.Values{"DIR": {path}})
}

// Thumbnail downloads the small JPEG rendition of an image.
func (c *Client) Thumbnail(ctx context.Context, path string) ([]byte, error) {
	return c.get(ctx, "/get_thumbnail.cgi", url.Values{"DIR": {path}})
}
