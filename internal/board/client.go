package board

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"svitlo-board/internal/snapshot"
)

// Client talks to the board service API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new board service client.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// GetRegions fetches the list of available regions.
func (c *Client) GetRegions() ([]snapshot.RegionInfo, error) {
	url := fmt.Sprintf("%s/api/board/regions", c.baseURL)
	resp, err := c.httpClient.Get(url)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("board service returned %d: %s", resp.StatusCode, string(body))
	}

	var result []snapshot.RegionInfo
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return result, nil
}

// GroupsResponse is the response from the /groups endpoint.
type GroupsResponse struct {
	Region string               `json:"region"`
	Groups []snapshot.GroupInfo `json:"groups"`
}

// GetGroups fetches the list of groups present in today's schedule.
func (c *Client) GetGroups(region string) ([]snapshot.GroupInfo, error) {
	url := fmt.Sprintf("%s/api/board/%s/groups", c.baseURL, region)
	resp, err := c.httpClient.Get(url)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("board service returned %d: %s", resp.StatusCode, string(body))
	}

	var result GroupsResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return result.Groups, nil
}

// GetDayBoard fetches the full derived board for a region.
func (c *Client) GetDayBoard(region string) (*DayBoard, error) {
	url := fmt.Sprintf("%s/api/board/%s", c.baseURL, region)
	resp, err := c.httpClient.Get(url)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("board service returned %d: %s", resp.StatusCode, string(body))
	}

	var result DayBoard
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &result, nil
}
