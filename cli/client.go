package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"
)

// ApiClient handles API requests to the pantry server
type ApiClient struct {
	httpClient *http.Client
	BaseURL    string
	UseMock    bool
}

// NewApiClient creates a new API client
func NewApiClient() *ApiClient {
	baseURL := os.Getenv("PANTRY_API_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	client := &ApiClient{
		httpClient: &http.Client{
			Timeout: time.Second * 10,
		},
		BaseURL: baseURL,
		UseMock: false, // Default to trying the real server first
	}

	// Verify connectivity - if server is not available, use mock data
	if !client.ping() {
		fmt.Printf("Warning: API server at %s is not available. Using mock data.\n", baseURL)
		client.UseMock = true
	}

	return client
}

// ping checks if the API server is available
func (c *ApiClient) ping() bool {
	resp, err := c.httpClient.Get(c.BaseURL + "/health")
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// ItemInfo mirrors the API's view of one tracked item
type ItemInfo struct {
	Name            string  `json:"name"`
	Category        string  `json:"category,omitempty"`
	TimeSensitive   bool    `json:"time_sensitive"`
	Frequency       int     `json:"frequency"`
	LastPurchase    int     `json:"last_purchase_week"`
	AverageInterval float64 `json:"average_interval"`
}

// SuggestionsResponse is the suggestion list with its evaluation week
type SuggestionsResponse struct {
	CurrentWeek int      `json:"current_week"`
	Suggestions []string `json:"suggestions"`
}

// RotateResponse lists the items re-added by a rotation
type RotateResponse struct {
	Week    int      `json:"week"`
	Rotated []string `json:"rotated"`
}

// RecordPurchase records one purchase, optionally assigning a category
func (c *ApiClient) RecordPurchase(item string, week int, category string) (*ItemInfo, error) {
	if c.UseMock {
		return &ItemInfo{Name: item, Category: category, Frequency: 1, LastPurchase: week, AverageInterval: -1}, nil
	}

	payload := map[string]interface{}{"item": item, "week": week}
	if category != "" {
		payload["category"] = category
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Post(c.BaseURL+"/api/v1/purchases", "application/json", bytes.NewBuffer(data))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return nil, decodeError(resp)
	}

	var info ItemInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, err
	}
	return &info, nil
}

// GetSuggestions retrieves the current suggestion list
func (c *ApiClient) GetSuggestions() (*SuggestionsResponse, error) {
	if c.UseMock {
		return c.mockSuggestions(), nil
	}

	resp, err := c.httpClient.Get(c.BaseURL + "/api/v1/suggestions")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, decodeError(resp)
	}

	var suggestions SuggestionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&suggestions); err != nil {
		return nil, err
	}
	return &suggestions, nil
}

// GetFrequent retrieves the most purchased items
func (c *ApiClient) GetFrequent(limit int) ([]string, error) {
	if c.UseMock {
		return []string{"Milk", "Bread", "Eggs", "Bananas"}, nil
	}

	url := fmt.Sprintf("%s/api/v1/frequent?limit=%d", c.BaseURL, limit)
	resp, err := c.httpClient.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, decodeError(resp)
	}

	var result struct {
		Items []string `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}
	return result.Items, nil
}

// Rotate triggers perishable rotation for the given week
func (c *ApiClient) Rotate(week int) (*RotateResponse, error) {
	if c.UseMock {
		return &RotateResponse{Week: week, Rotated: []string{"Lettuce", "Strawberries"}}, nil
	}

	data, err := json.Marshal(map[string]int{"week": week})
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Post(c.BaseURL+"/api/v1/rotate", "application/json", bytes.NewBuffer(data))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, decodeError(resp)
	}

	var rotated RotateResponse
	if err := json.NewDecoder(resp.Body).Decode(&rotated); err != nil {
		return nil, err
	}
	return &rotated, nil
}

// GetItem retrieves the tracked view of one item
func (c *ApiClient) GetItem(name string) (*ItemInfo, error) {
	if c.UseMock {
		return &ItemInfo{Name: name, Category: "Dairy", TimeSensitive: true, Frequency: 5, LastPurchase: 12, AverageInterval: 2.0}, nil
	}

	resp, err := c.httpClient.Get(c.BaseURL + "/api/v1/items/" + name)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, decodeError(resp)
	}

	var info ItemInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, err
	}
	return &info, nil
}

// mockSuggestions generates mock suggestion data
func (c *ApiClient) mockSuggestions() *SuggestionsResponse {
	return &SuggestionsResponse{
		CurrentWeek: 12,
		Suggestions: []string{"Milk", "Lettuce", "Bread", "Eggs", "Bananas"},
	}
}

// decodeError extracts the API error message from a failed response
func decodeError(resp *http.Response) error {
	var apiErr struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Error != "" {
		return fmt.Errorf("%s", apiErr.Error)
	}
	return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
}
