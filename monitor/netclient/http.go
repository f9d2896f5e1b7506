//go:build !tinygo

package netclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// HTTP is the host-side Client over plain net/http.
type HTTP struct {
	base string
	hc   *http.Client
}

// NewHTTP creates a backend client. base is the server root, e.g.
// "http://your-server.com:80"; queries go to base + "/api/query".
func NewHTTP(base string, timeout time.Duration) *HTTP {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTP{
		base: base,
		hc:   &http.Client{Timeout: timeout},
	}
}

type queryRequest struct {
	Query string `json:"query"`
}

// Query posts one text query and returns the raw reply body.
func (c *HTTP) Query(ctx context.Context, text string) (string, error) {
	body, err := json.Marshal(queryRequest{Query: text})
	if err != nil {
		return "", fmt.Errorf("netclient: encode query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/api/query", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("netclient: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		return "", fmt.Errorf("netclient: query: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("netclient: query: backend returned %s", resp.Status)
	}

	reply, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil {
		return "", fmt.Errorf("netclient: read reply: %w", err)
	}
	return string(reply), nil
}

// Directions phrases a navigation request as a query and decodes the
// structured reply.
func (c *HTTP) Directions(ctx context.Context, from, to string) (TripDirections, error) {
	reply, err := c.Query(ctx, "directions from "+from+" to "+to)
	if err != nil {
		return TripDirections{}, err
	}

	var d TripDirections
	if err := json.Unmarshal([]byte(reply), &d); err != nil {
		return TripDirections{}, fmt.Errorf("netclient: decode directions: %w", err)
	}
	if d.From == "" {
		d.From = from
	}
	if d.To == "" {
		d.To = to
	}
	return d, nil
}
