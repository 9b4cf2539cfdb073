// Package agent talks to the external content agent. The agent selects
// sources and scores content; this side treats it as an opaque provider.
package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"alfredhub/config"
)

// Client is a thin HTTP client for the agent service.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates an agent client. An empty baseURL falls back to the
// default local agent address.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = config.DefaultAgentURL
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: config.AgentTimeout},
	}
}

// RefreshResult carries the agent's raw JSON reply and whether the agent
// answered with a 2xx status.
type RefreshResult struct {
	StatusOK bool
	Body     json.RawMessage
}

// RequestRefresh asks the agent to fetch fresh content for the given genres.
// No retries: a failed call is reported to the caller, which degrades to
// ok:false rather than failing the request.
func (c *Client) RequestRefresh(ctx context.Context, genres []string, limit int) (*RefreshResult, error) {
	payload, err := json.Marshal(map[string]any{
		"genres": genres,
		"limit":  limit,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/myblog/refresh", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("agent request failed: %w", err)
	}
	defer resp.Body.Close()

	var body json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("agent returned invalid JSON: %w", err)
	}

	return &RefreshResult{
		StatusOK: resp.StatusCode >= 200 && resp.StatusCode < 300,
		Body:     body,
	}, nil
}
