package commands

import (
	"context"
	"errors"
	"net/url"

	dashboard "github.com/goliatone/go-campaign-dashboard/components/dashboard"
	gocommand "github.com/goliatone/go-command"
)

// LoadCampaignsInput triggers the campaign fetch.
type LoadCampaignsInput struct{}

type loadService interface {
	LoadCampaigns(ctx context.Context) error
}

// LoadCampaignsCommand wraps Service.LoadCampaigns.
type LoadCampaignsCommand struct {
	service   loadService
	telemetry Telemetry
}

// NewLoadCampaignsCommand builds the command.
func NewLoadCampaignsCommand(service loadService, telemetry Telemetry) *LoadCampaignsCommand {
	return &LoadCampaignsCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[LoadCampaignsInput] = (*LoadCampaignsCommand)(nil)

// Execute fetches the campaigns.
func (c *LoadCampaignsCommand) Execute(ctx context.Context, _ LoadCampaignsInput) error {
	if c.service == nil {
		return errors.New("load command requires service")
	}
	if err := c.service.LoadCampaigns(ctx); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "dashboard.command.load", nil)
	return nil
}

// CreateCampaignInput carries either a typed form or raw form values. Values take
// precedence when set. OnCreated receives the server record on success.
type CreateCampaignInput struct {
	Form      dashboard.CampaignForm
	Values    url.Values
	OnCreated func(dashboard.Campaign)
}

type createService interface {
	SubmitCreate(ctx context.Context, form dashboard.CampaignForm) (dashboard.Campaign, error)
	SubmitCreateValues(ctx context.Context, values url.Values) (dashboard.Campaign, error)
}

// CreateCampaignCommand wraps Service.SubmitCreate.
type CreateCampaignCommand struct {
	service   createService
	telemetry Telemetry
}

// NewCreateCampaignCommand builds the command.
func NewCreateCampaignCommand(service createService, telemetry Telemetry) *CreateCampaignCommand {
	return &CreateCampaignCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[CreateCampaignInput] = (*CreateCampaignCommand)(nil)

// Execute submits the campaign.
func (c *CreateCampaignCommand) Execute(ctx context.Context, msg CreateCampaignInput) error {
	if c.service == nil {
		return errors.New("create command requires service")
	}
	var (
		campaign dashboard.Campaign
		err      error
	)
	if msg.Values != nil {
		campaign, err = c.service.SubmitCreateValues(ctx, msg.Values)
	} else {
		campaign, err = c.service.SubmitCreate(ctx, msg.Form)
	}
	if err != nil {
		return err
	}
	if msg.OnCreated != nil {
		msg.OnCreated(campaign)
	}
	c.telemetry.Record(ctx, "dashboard.command.create", map[string]any{"campaign_id": campaign.ID})
	return nil
}
