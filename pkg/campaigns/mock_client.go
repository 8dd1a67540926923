package campaigns

import (
	"context"
	"sync"

	dashboard "github.com/goliatone/go-campaign-dashboard/components/dashboard"
)

// BackendPalette is the set of colors the campaign API assigns to new campaigns.
var BackendPalette = []string{"#2563eb", "#16a34a", "#d97706", "#dc2626", "#8b5cf6", "#0891b2"}

// MockClient implements dashboard.CampaignClient in memory. New campaigns get the
// next id and the next palette color in rotation.
type MockClient struct {
	mu        sync.RWMutex
	campaigns []dashboard.Campaign
	nextID    int64
	created   int
	// ListErr and CreateErr force failures for tests and demos.
	ListErr   error
	CreateErr error
}

var _ dashboard.CampaignClient = (*MockClient)(nil)

// NewMockClient builds a mock client seeded with the provided campaigns.
func NewMockClient(seed []dashboard.Campaign) *MockClient {
	c := &MockClient{campaigns: append([]dashboard.Campaign(nil), seed...)}
	for _, campaign := range seed {
		if campaign.ID > c.nextID {
			c.nextID = campaign.ID
		}
	}
	return c
}

// ListCampaigns returns a copy of the stored campaigns.
func (c *MockClient) ListCampaigns(context.Context) ([]dashboard.Campaign, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.ListErr != nil {
		return nil, c.ListErr
	}
	return append([]dashboard.Campaign{}, c.campaigns...), nil
}

// CreateCampaign stores the form as a new campaign.
func (c *MockClient) CreateCampaign(_ context.Context, form dashboard.CampaignForm) (dashboard.Campaign, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.CreateErr != nil {
		return dashboard.Campaign{}, c.CreateErr
	}
	c.nextID++
	campaign := dashboard.Campaign{
		ID:          c.nextID,
		Name:        form.Name,
		Status:      form.Status,
		Clicks:      form.Clicks,
		Cost:        form.Cost,
		Impressions: form.Impressions,
		Color:       BackendPalette[c.created%len(BackendPalette)],
	}
	c.created++
	c.campaigns = append(c.campaigns, campaign)
	return campaign, nil
}
