package dashboard

import (
	core "github.com/goliatone/go-campaign-dashboard/components/dashboard"
)

// Service exposes the underlying components/dashboard.Service type.
type Service = core.Service

// Options re-export for convenience.
type Options = core.Options

// Campaign re-export for convenience.
type Campaign = core.Campaign

// CampaignForm re-export for convenience.
type CampaignForm = core.CampaignForm

// NewService proxies to the internal constructor.
func NewService(opts Options) (*Service, error) {
	return core.NewService(opts)
}
