package recipes

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const defaultBaseURL = "https://api.spoonacular.com"

// Client is a recipe API client authenticated with an API key.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a new recipe API client
func NewClient(apiKey string) *Client {
	return &Client{
		baseURL: defaultBaseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Search finds recipes matching the given nutrient constraints.
func (c *Client) Search(ctx context.Context, p SearchParams) ([]Recipe, error) {
	params := url.Values{}
	params.Set("apiKey", c.apiKey)
	if p.MinCalories > 0 {
		params.Set("minCalories", strconv.Itoa(p.MinCalories))
	}
	if p.MaxCalories > 0 {
		params.Set("maxCalories", strconv.Itoa(p.MaxCalories))
	}
	if p.MinProteinG > 0 {
		params.Set("minProtein", strconv.Itoa(p.MinProteinG))
	}
	if p.MaxCarbsG > 0 {
		params.Set("maxCarbs", strconv.Itoa(p.MaxCarbsG))
	}
	limit := p.MaxResults
	if limit <= 0 {
		limit = 5
	}
	params.Set("number", strconv.Itoa(limit))

	reqURL := c.baseURL + "/recipes/findByNutrients?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("searching recipes: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("recipe API error %d: %s", resp.StatusCode, string(body))
	}

	var results []Recipe
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("decoding recipes: %w", err)
	}

	return results, nil
}
