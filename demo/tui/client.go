package tui

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"alfredhub/types"
)

// APIClient is a thin HTTP client for the alfredhub API
type APIClient struct {
	baseURL string
	client  *http.Client
}

// NewAPIClient creates a new API client
func NewAPIClient(baseURL string) *APIClient {
	return &APIClient{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

// GetGenres fetches the ranked genre list
func (c *APIClient) GetGenres() ([]types.Genre, error) {
	var out struct {
		Genres []types.Genre `json:"genres"`
	}
	if err := c.getJSON("/genres", &out); err != nil {
		return nil, err
	}
	return out.Genres, nil
}

// GetTodaysFeed fetches the ranked same-day feed
func (c *APIClient) GetTodaysFeed(limit int) ([]types.Article, error) {
	var out struct {
		Articles []types.Article `json:"articles"`
	}
	if err := c.getJSON(fmt.Sprintf("/articles/today?limit=%d", limit), &out); err != nil {
		return nil, err
	}
	return out.Articles, nil
}

// GetRecentArticles fetches the sliding-window article list
func (c *APIClient) GetRecentArticles(limit int) ([]types.Article, error) {
	var out struct {
		Articles []types.Article `json:"articles"`
	}
	if err := c.getJSON(fmt.Sprintf("/articles?limit=%d", limit), &out); err != nil {
		return nil, err
	}
	return out.Articles, nil
}

// TriggerRefresh asks the server to forward a refresh request to the agent
func (c *APIClient) TriggerRefresh() error {
	resp, err := c.client.Post(c.baseURL+"/refresh", "application/json", bytes.NewReader([]byte("{}")))
	if err != nil {
		return fmt.Errorf("failed to trigger refresh: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, string(body))
	}
	return nil
}

func (c *APIClient) getJSON(path string, out any) error {
	resp, err := c.client.Get(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, string(body))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
