package refdata

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"
)

// Collaborator is the contract this package expects from the remote
// backend. Both operations are single-shot: no retries happen at this
// layer, and timeouts belong to the implementation.
// Version: 1.0
type Collaborator interface {
	// ListCountries returns the full country reference list.
	ListCountries(ctx context.Context) ([]Country, error)

	// EducationFramework returns the framework for one country code.
	// A country without a framework yields an empty (non-nil) record.
	EducationFramework(ctx context.Context, countryCode string) (*EducationFramework, error)
}

// ClientConfig holds the settings for the HTTP backend client.
type ClientConfig struct {
	BaseURL   string
	APIKey    string
	Timeout   time.Duration
	RateLimit float64
	Burst     int
}

// Client talks to the hosted backend over HTTP: the country list is a
// table read, the education framework a remote procedure call. Calls are
// rate limited client-side and wrapped in a circuit breaker so a failing
// backend sheds load quickly instead of queueing requests.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	limiter    *rate.Limiter
	breaker    *gobreaker.CircuitBreaker
}

// Ensure Client implements the Collaborator interface
var _ Collaborator = (*Client)(nil)

// NewClient creates a backend client from the given configuration,
// applying sensible defaults for anything unset.
func NewClient(cfg ClientConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	limit := rate.Limit(cfg.RateLimit)
	if cfg.RateLimit <= 0 {
		limit = rate.Inf
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "refdata-backend",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:    100,
				IdleConnTimeout: 90 * time.Second,
			},
		},
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		limiter: rate.NewLimiter(limit, burst),
		breaker: breaker,
	}
}

// remoteEnvelope is the response shape shared by the table read and the
// RPC: either data or a structured error is populated.
type remoteEnvelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// ListCountries implements Collaborator.ListCountries.
func (c *Client) ListCountries(ctx context.Context) ([]Country, error) {
	raw, err := c.call(ctx, http.MethodGet, "/rest/v1/countries", nil)
	if err != nil {
		return nil, err
	}

	var countries []Country
	if err := json.Unmarshal(raw, &countries); err != nil {
		return nil, fmt.Errorf("failed to decode countries payload: %w", err)
	}
	return countries, nil
}

// EducationFramework implements Collaborator.EducationFramework.
func (c *Client) EducationFramework(ctx context.Context, countryCode string) (*EducationFramework, error) {
	body := map[string]string{"country_code": countryCode}

	raw, err := c.call(ctx, http.MethodPost, "/rest/v1/rpc/education_framework", body)
	if err != nil {
		return nil, err
	}

	if len(raw) == 0 || string(raw) == "null" {
		// The backend reported neither data nor an error; treat the
		// framework as empty rather than failing the call.
		return &EducationFramework{CountryCode: countryCode}, nil
	}

	var framework EducationFramework
	if err := json.Unmarshal(raw, &framework); err != nil {
		return nil, fmt.Errorf("failed to decode framework payload: %w", err)
	}
	if framework.CountryCode == "" {
		framework.CountryCode = countryCode
	}
	return &framework, nil
}

// call performs one rate-limited, breaker-guarded request and unwraps the
// backend's data/error envelope.
func (c *Client) call(ctx context.Context, method, path string, body any) (json.RawMessage, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("request canceled while rate limited: %w", err)
	}

	result, err := c.breaker.Execute(func() (any, error) {
		return c.do(ctx, method, path, body)
	})
	if err != nil {
		return nil, err
	}
	return result.(json.RawMessage), nil
}

func (c *Client) do(ctx context.Context, method, path string, body any) (json.RawMessage, error) {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("apikey", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("backend request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read backend response: %w", err)
	}

	var env remoteEnvelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return nil, fmt.Errorf("unexpected backend response (status %d): %w", resp.StatusCode, err)
	}

	if env.Error != nil {
		return nil, &RemoteError{Message: env.Error.Message}
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("backend returned status %d", resp.StatusCode)
	}

	return env.Data, nil
}
