package fooddb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/Ruthemir95/nutritrack-sub001/internal/domain"
)

// maxAttempts bounds retries for transient provider failures.
const maxAttempts = 3

// Client queries the FoodData Central search API and maps the best hit to a
// per-100g profile. It implements domain.NutritionGateway.
type Client struct {
	httpClient  *http.Client
	apiKey      string
	baseURL     string
	rateLimiter *rate.Limiter
}

// NewClient creates a provider client. The API allows 1000 requests per
// hour; rate.Limit is requests per second, so 1000/3600 ≈ 0.278 req/sec
// with a burst of 10.
func NewClient(apiKey, baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		apiKey:      apiKey,
		baseURL:     baseURL,
		rateLimiter: rate.NewLimiter(rate.Limit(0.278), 10),
	}
}

// Resolve searches the provider for foodName and returns the top match as a
// per-100g profile. Match ranking is the provider's business; the first
// returned food wins.
func (c *Client) Resolve(ctx context.Context, foodName string) (*domain.FoodProfile, error) {
	endpoint := fmt.Sprintf("%s/v1/foods/search", c.baseURL)
	params := url.Values{}
	params.Add("query", foodName)
	params.Add("api_key", c.apiKey)
	params.Add("dataType", "Survey (FNDDS),Foundation,Branded")
	params.Add("pageSize", "1")

	reqURL := fmt.Sprintf("%s?%s", endpoint, params.Encode())

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter error: %w", err)
		}

		body, err := c.doRequest(ctx, reqURL)
		if err != nil {
			if errors.Is(err, domain.ErrFoodNotFound) {
				return nil, err
			}
			log.Printf("[fooddb] request error (attempt %d): %v", attempt, err)
			lastErr = err
			if attempt < maxAttempts {
				sleepBackoff(attempt)
			}
			continue
		}

		var searchResp searchResponse
		if err := json.Unmarshal(body, &searchResp); err != nil {
			return nil, fmt.Errorf("%w: decode response: %v", domain.ErrProviderFailure, err)
		}
		if len(searchResp.Foods) == 0 {
			return nil, domain.ErrFoodNotFound
		}

		return mapToProfile(&searchResp.Foods[0]), nil
	}

	return nil, lastErr
}

// doRequest executes one GET and returns the body for 200, ErrFoodNotFound
// for 404, and a retryable ErrProviderFailure for everything else.
func (c *Client) doRequest(ctx context.Context, reqURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "NutriTrack/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrProviderFailure, err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	switch {
	case resp.StatusCode == http.StatusOK:
		return body, nil
	case resp.StatusCode == http.StatusNotFound:
		return nil, domain.ErrFoodNotFound
	default:
		return nil, fmt.Errorf("%w: status %d", domain.ErrProviderFailure, resp.StatusCode)
	}
}

func sleepBackoff(attempt int) {
	time.Sleep(exponentialBackoff(attempt))
}

func exponentialBackoff(attempt int) time.Duration {
	return time.Duration(500*(1<<(attempt-1))) * time.Millisecond
}

// searchResponse models the provider's search payload.
type searchResponse struct {
	Foods     []providerFood `json:"foods"`
	TotalHits int            `json:"totalHits"`
}

type providerFood struct {
	FdcID        int64              `json:"fdcId"`
	Description  string             `json:"description"`
	DataType     string             `json:"dataType"`
	FoodCategory string             `json:"foodCategory,omitempty"`
	Nutrients    []providerNutrient `json:"foodNutrients"`
}

type providerNutrient struct {
	NutrientID   int     `json:"nutrientId"`
	NutrientName string  `json:"nutrientName"`
	UnitName     string  `json:"unitName"`
	Value        float64 `json:"value"`
}
