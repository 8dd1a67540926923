package campaigns

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	dashboard "github.com/goliatone/go-campaign-dashboard/components/dashboard"
)

// DefaultTimeout bounds every request made by HTTPClient.
const DefaultTimeout = 10 * time.Second

// ErrRemote is wrapped by errors returned for non-2xx responses.
var ErrRemote = errors.New("campaigns: remote error")

// HTTPConfig configures the HTTP campaign client.
type HTTPConfig struct {
	BaseURL    string
	APIKey     string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// HTTPClient talks to the campaign API over REST.
type HTTPClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

var _ dashboard.CampaignClient = (*HTTPClient)(nil)

// NewHTTPClient builds a client for the campaign API.
func NewHTTPClient(cfg HTTPConfig) (*HTTPClient, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("campaigns: base url is required")
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		client:  httpClient,
	}, nil
}

// ListCampaigns calls GET /campaigns.
func (c *HTTPClient) ListCampaigns(ctx context.Context) ([]dashboard.Campaign, error) {
	var resp []dashboard.Campaign
	if err := c.do(ctx, http.MethodGet, "/campaigns", nil, &resp); err != nil {
		return nil, err
	}
	if resp == nil {
		resp = []dashboard.Campaign{}
	}
	return resp, nil
}

// CreateCampaign calls POST /campaigns and returns the server record.
func (c *HTTPClient) CreateCampaign(ctx context.Context, form dashboard.CampaignForm) (dashboard.Campaign, error) {
	var resp dashboard.Campaign
	if err := c.do(ctx, http.MethodPost, "/campaigns", form, &resp); err != nil {
		return dashboard.Campaign{}, err
	}
	return resp, nil
}

func (c *HTTPClient) do(ctx context.Context, method, path string, payload any, target any) error {
	var body *bytes.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("campaigns: encode payload: %w", err)
		}
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("campaigns: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("campaigns: http request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var buf bytes.Buffer
		_, _ = buf.ReadFrom(resp.Body)
		return fmt.Errorf("%w %d: %s", ErrRemote, resp.StatusCode, strings.TrimSpace(buf.String()))
	}
	if target == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("campaigns: decode response: %w", err)
	}
	return nil
}
