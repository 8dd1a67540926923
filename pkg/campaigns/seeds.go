package campaigns

import dashboard "github.com/goliatone/go-campaign-dashboard/components/dashboard"

// DefaultSeedCampaigns returns demo fixtures for local runs.
func DefaultSeedCampaigns() []dashboard.Campaign {
	return []dashboard.Campaign{
		{ID: 1, Name: "Summer Sale", Status: dashboard.StatusActive, Clicks: 1250, Cost: 450.00, Impressions: 1000, Color: "#2563eb"},
		{ID: 2, Name: "Black Friday", Status: dashboard.StatusPaused, Clicks: 320, Cost: 89.50, Impressions: 2500, Color: "#94a3b8"},
		{ID: 3, Name: "Influencer", Status: dashboard.StatusActive, Clicks: 800, Cost: 210.20, Impressions: 5600, Color: "#16a34a"},
		{ID: 4, Name: "Retargeting", Status: dashboard.StatusActive, Clicks: 450, Cost: 125.00, Impressions: 3400, Color: "#d97706"},
	}
}
