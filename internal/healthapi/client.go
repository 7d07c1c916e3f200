package healthapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/oauth2"
)

// Client is a health gateway API client
type Client struct {
	baseURL     string
	httpClient  *http.Client
	rateLimiter *RateLimiter
}

// NewClient creates a new health gateway client. baseURL is the
// gateway root, e.g. https://gateway.example.com/api/v1.
func NewClient(baseURL string, tokenSource oauth2.TokenSource) *Client {
	return &Client{
		baseURL:     baseURL,
		httpClient:  oauth2.NewClient(context.Background(), tokenSource),
		rateLimiter: NewRateLimiter(),
	}
}

// GetSamples fetches samples of one kind in [from, to).
// A gateway that has never seen the kind, or an account that has not
// granted it, answers 403 or 404; both are treated as no data rather
// than an error so that partial permission grants still sync.
func (c *Client) GetSamples(ctx context.Context, kind Kind, from, to time.Time) ([]Sample, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("from", strconv.FormatInt(from.Unix(), 10))
	params.Set("to", strconv.FormatInt(to.Unix(), 10))

	path := fmt.Sprintf("/samples/%s", kind)
	resp, err := c.get(ctx, path, params)
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, nil
	}
	defer resp.Body.Close()

	var samples []Sample
	if err := json.NewDecoder(resp.Body).Decode(&samples); err != nil {
		return nil, fmt.Errorf("decoding %s samples: %w", kind, err)
	}

	return samples, nil
}

// GetWorkouts fetches workouts in [from, to).
func (c *Client) GetWorkouts(ctx context.Context, from, to time.Time) ([]Workout, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("from", strconv.FormatInt(from.Unix(), 10))
	params.Set("to", strconv.FormatInt(to.Unix(), 10))

	resp, err := c.get(ctx, "/workouts", params)
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, nil
	}
	defer resp.Body.Close()

	var workouts []Workout
	if err := json.NewDecoder(resp.Body).Decode(&workouts); err != nil {
		return nil, fmt.Errorf("decoding workouts: %w", err)
	}

	return workouts, nil
}

// RateLimitStatus returns the current rate limit status
func (c *Client) RateLimitStatus() (shortRemaining, dailyRemaining int) {
	return c.rateLimiter.Status()
}

// get performs a GET against the gateway. A nil response with a nil
// error means the resource is unavailable (403/404) and the caller
// should treat it as empty.
func (c *Client) get(ctx context.Context, path string, params url.Values) (*http.Response, error) {
	reqURL := c.baseURL + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}

	c.rateLimiter.UpdateFromHeaders(resp.Header)

	if resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusNotFound {
		resp.Body.Close()
		return nil, nil
	}

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, fmt.Errorf("gateway error %d: %s", resp.StatusCode, string(body))
	}

	return resp, nil
}
