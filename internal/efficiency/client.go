package efficiency

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/Christbey/picksports-sub004/internal/models"
	"github.com/google/uuid"
)

// ClientConfig holds configuration for the efficiency provider client
type ClientConfig struct {
	BaseURL      string
	APIKey       string
	Timeout      time.Duration
	MaxRetries   int
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration
	RateLimit    float64 // requests per second
}

// DefaultClientConfig returns recommended defaults
func DefaultClientConfig(baseURL string) ClientConfig {
	return ClientConfig{
		BaseURL:      baseURL,
		Timeout:      30 * time.Second,
		MaxRetries:   5,
		RetryWaitMin: 100 * time.Millisecond,
		RetryWaitMax: 10 * time.Second,
		RateLimit:    10.0,
	}
}

// Client fetches team efficiency metrics from the internal stats service.
// It implements Source and is safe for concurrent use.
type Client struct {
	cfg     ClientConfig
	client  *retryablehttp.Client
	limiter *rate.Limiter
	logger  *logrus.Logger
}

// NewClient creates an efficiency provider client with retries and rate limiting
func NewClient(cfg ClientConfig, logger *logrus.Logger) *Client {
	if logger == nil {
		logger = logrus.New()
	}

	retryClient := retryablehttp.NewClient()
	retryClient.HTTPClient.Timeout = cfg.Timeout
	retryClient.RetryMax = cfg.MaxRetries
	retryClient.RetryWaitMin = cfg.RetryWaitMin
	retryClient.RetryWaitMax = cfg.RetryWaitMax
	retryClient.CheckRetry = retryPolicy()
	retryClient.Logger = nil

	return &Client{
		cfg:     cfg,
		client:  retryClient,
		limiter: rate.NewLimiter(rate.Limit(cfg.RateLimit), 1),
		logger:  logger,
	}
}

type efficiencyResponse struct {
	TeamID             uuid.UUID `json:"team_id"`
	Season             int       `json:"season"`
	OffensiveRating    float64   `json:"offensive_rating"`
	DefensiveRating    float64   `json:"defensive_rating"`
	StrengthOfSchedule float64   `json:"strength_of_schedule"`
	Tempo              float64   `json:"tempo"`
}

// ForTeam implements Source by calling the stats service. A 404 maps to
// models.ErrNotFound so callers treat missing metrics as a fallback case,
// not a failure.
func (c *Client) ForTeam(ctx context.Context, teamID uuid.UUID, season int) (*models.TeamEfficiency, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	url := fmt.Sprintf("%s/v1/efficiency/%s?season=%d", c.cfg.BaseURL, teamID, season)
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build efficiency request: %w", err)
	}
	if c.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("efficiency request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, models.ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("efficiency service returned status %d", resp.StatusCode)
	}

	var body efficiencyResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode efficiency response: %w", err)
	}

	return &models.TeamEfficiency{
		TeamID:             body.TeamID,
		Season:             body.Season,
		OffensiveRating:    body.OffensiveRating,
		DefensiveRating:    body.DefensiveRating,
		StrengthOfSchedule: body.StrengthOfSchedule,
		Tempo:              body.Tempo,
	}, nil
}

// retryPolicy retries network errors, 429s, and 5xx responses
func retryPolicy() retryablehttp.CheckRetry {
	return func(ctx context.Context, resp *http.Response, err error) (bool, error) {
		if err != nil {
			return true, err
		}
		switch resp.StatusCode {
		case http.StatusTooManyRequests, http.StatusInternalServerError,
			http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			return true, nil
		}
		return false, nil
	}
}
